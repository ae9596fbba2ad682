package medication

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
)

type fileFormat struct {
	Medications []Medication `json:"medications"`
}

// LoadFile reads a {"medications": [...]} JSON document.
func LoadFile(path string) ([]Medication, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge base %s: %w", path, err)
	}
	var f fileFormat
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode knowledge base %s: %w", path, err)
	}
	return validate(f.Medications)
}

// Querier is the subset of pgxpool.Pool the loader needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const selectMedications = `SELECT name, symptoms FROM medications ORDER BY name`

// LoadDB reads medications from the medications(name text, symptoms text[]) table.
func LoadDB(ctx context.Context, db Querier) ([]Medication, error) {
	rows, err := db.Query(ctx, selectMedications)
	if err != nil {
		return nil, fmt.Errorf("query medications: %w", err)
	}
	defer rows.Close()

	var meds []Medication
	for rows.Next() {
		var m Medication
		if err := rows.Scan(&m.Name, &m.Symptoms); err != nil {
			return nil, fmt.Errorf("scan medication: %w", err)
		}
		meds = append(meds, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read medications: %w", err)
	}
	return validate(meds)
}
