package nlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to a remote dependency-parser service.
//
//	POST {base}/parse     {"text": "..."} -> {"tokens": [TokenData...]}
//	POST {base}/tokenize  {"text": "..."} -> {"tokens": [{"text": "..."}...]}
//	GET  {base}/health
type Client struct {
	baseURL string
	http    *http.Client
}

type textRequest struct {
	Text string `json:"text"`
}

type tokensResponse struct {
	Tokens []TokenData `json:"tokens"`
}

// NewClient returns a Client for baseURL; timeout bounds every call.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Parse sends text for full dependency parsing.
func (c *Client) Parse(ctx context.Context, text string) (*Document, error) {
	resp, err := c.post(ctx, "/parse", text)
	if err != nil {
		return nil, err
	}
	doc, err := NewDocument(resp.Tokens)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return doc, nil
}

// Tokenize splits text the same way Parse does, without tagging.
func (c *Client) Tokenize(ctx context.Context, text string) ([]string, error) {
	resp, err := c.post(ctx, "/tokenize", text)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(resp.Tokens))
	for i, t := range resp.Tokens {
		out[i] = t.Text
	}
	return out, nil
}

// Ping checks the service health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("build health request: %w", err)
	}
	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("nlp health: %w", err)
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, res.Body)
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("nlp health: status %d", res.StatusCode)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path, text string) (*tokensResponse, error) {
	body, err := json.Marshal(textRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nlp %s: %w", path, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, fmt.Errorf("nlp %s: status %d: %s", path, res.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out tokensResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("nlp %s: decode response: %w", path, err)
	}
	return &out, nil
}
