package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Skufu/symptomrx/internal/medication"
	"github.com/Skufu/symptomrx/internal/nlp"
	"github.com/Skufu/symptomrx/internal/symptom"
)

type HealthChecker interface {
	Ping(ctx context.Context) error
}

type SymptomExtractor interface {
	Extract(ctx context.Context, text string) ([]string, error)
}

type Config struct {
	Port              string
	GinMode           string
	KnowledgeBasePath string
	NLPServiceURL     string
	NLPTimeout        time.Duration
	EnableDB          bool
	DatabaseURL       string
	LogLevel          string
	LogFormat         string
	MaxBodyBytes      int64
}

type parseRequest struct {
	Input string `json:"input"`
}

// routerDeps is everything the handlers read. All of it is immutable after
// startup and shared across requests.
type routerDeps struct {
	extractor    SymptomExtractor
	medications  []medication.Medication
	checks       map[string]HealthChecker // nil value: dependency disabled
	logger       *zap.Logger
	maxBodyBytes int64
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	gin.SetMode(cfg.GinMode)

	logger, err := newLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	checks := map[string]HealthChecker{"db": nil}

	var meds []medication.Medication
	if cfg.EnableDB {
		pool, err := connectDB(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("database connection failed", zap.Error(err))
		}
		defer pool.Close()
		checks["db"] = pool

		meds, err = medication.LoadDB(ctx, pool)
		if err != nil {
			logger.Fatal("load knowledge base", zap.Error(err))
		}
	} else {
		meds, err = medication.LoadFile(cfg.KnowledgeBasePath)
		if err != nil {
			logger.Fatal("load knowledge base", zap.String("path", cfg.KnowledgeBasePath), zap.Error(err))
		}
	}

	engine := nlp.NewClient(cfg.NLPServiceURL, cfg.NLPTimeout)
	checks["nlp"] = engine

	lexicon, err := symptom.NewLexicon(ctx, engine, meds)
	if err != nil {
		logger.Fatal("build symptom lexicon", zap.Error(err))
	}
	logger.Info("knowledge base loaded",
		zap.Int("medications", len(meds)),
		zap.Int("symptoms", len(lexicon.Phrases())),
	)

	router := setupRouter(routerDeps{
		extractor:    symptom.NewExtractor(engine, lexicon, logger.Named("symptom")),
		medications:  meds,
		checks:       checks,
		logger:       logger,
		maxBodyBytes: cfg.MaxBodyBytes,
	})
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.NLPTimeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	logger.Info("server listening", zap.String("port", cfg.Port))
	waitForShutdown(server, logger)
}

func loadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "5003"),
		GinMode:           getEnv("GIN_MODE", gin.ReleaseMode),
		KnowledgeBasePath: getEnv("KNOWLEDGE_BASE_PATH", "medicine.json"),
		NLPServiceURL:     os.Getenv("NLP_SERVICE_URL"),
		EnableDB:          strings.EqualFold(getEnv("ENABLE_DB", "false"), "true"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "json"),
	}

	if cfg.NLPServiceURL == "" {
		return nil, fmt.Errorf("NLP_SERVICE_URL is required")
	}
	if cfg.EnableDB && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required when ENABLE_DB=true")
	}

	timeout, err := time.ParseDuration(getEnv("NLP_TIMEOUT", "10s"))
	if err != nil || timeout <= 0 {
		return nil, fmt.Errorf("NLP_TIMEOUT must be a positive duration")
	}
	cfg.NLPTimeout = timeout

	maxBody, err := strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64)
	if err != nil || maxBody <= 0 {
		return nil, fmt.Errorf("MAX_BODY_BYTES must be a positive integer")
	}
	cfg.MaxBodyBytes = maxBody

	return cfg, nil
}

func connectDB(ctx context.Context, url string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse db url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return pool, nil
}

func setupRouter(deps routerDeps) *gin.Engine {
	if deps.logger == nil {
		deps.logger = zap.NewNop()
	}
	if deps.maxBodyBytes <= 0 {
		deps.maxBodyBytes = 1 << 20
	}

	router := gin.New()
	router.Use(
		requestID(),
		accessLog(deps.logger),
		gin.Recovery(),
		observeRequests(),
		limitBodySize(deps.maxBodyBytes),
		cors.New(cors.Config{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Authorization", requestIDHeader},
			MaxAge:       12 * time.Hour,
		}),
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	router.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status, code := "ok", http.StatusOK
		body := gin.H{}
		for name, check := range deps.checks {
			if check == nil {
				body[name] = "disabled"
				continue
			}
			if err := check.Ping(ctx); err != nil {
				body[name] = fmt.Sprintf("unhealthy: %v", err)
				status, code = "degraded", http.StatusServiceUnavailable
				continue
			}
			body[name] = "ok"
		}
		body["status"] = status
		c.JSON(code, body)
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/parse_and_recommend", func(c *gin.Context) {
		if !isJSON(c.ContentType()) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Content-Type must be application/json"})
			return
		}

		var payload parseRequest
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Content-Type must be application/json"})
			return
		}
		if payload.Input == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Input field is empty"})
			return
		}

		symptoms, err := deps.extractor.Extract(c.Request.Context(), payload.Input)
		if err != nil {
			deps.logger.Error("extract symptoms",
				zap.String("request_id", c.GetString(requestIDKey)),
				zap.Error(err),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to parse input"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"recommendations": medication.Recommend(deps.medications, symptoms),
		})
	})

	return router
}

func isJSON(contentType string) bool {
	return contentType == "application/json" ||
		(strings.HasPrefix(contentType, "application/") && strings.HasSuffix(contentType, "+json"))
}

func waitForShutdown(server *http.Server, logger *zap.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func limitBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
