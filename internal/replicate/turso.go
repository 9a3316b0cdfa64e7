// Package replicate pushes the local sqlite archive to a Turso (libSQL)
// database over its HTTP pipeline API, so the read-only frontend can query a
// hosted copy.
package replicate

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const batchSize = 50

// Replicator uploads a database dump statement by statement.
type Replicator struct {
	db     *sql.DB
	url    string
	token  string
	client *http.Client
}

// NewReplicator builds a replicator for a libsql:// or https:// target.
func NewReplicator(db *sql.DB, url, token string) *Replicator {
	return &Replicator{
		db:     db,
		url:    url,
		token:  token,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// Upload dumps the local database and replays it against the target in
// batches. A failed batch is retried one statement at a time; "already
// exists" errors are ignored so re-uploads are harmless.
func (r *Replicator) Upload(ctx context.Context) error {
	statements, err := r.dump(ctx)
	if err != nil {
		return err
	}
	log.Printf("[replicate] %d statements to upload", len(statements))

	executed, errors := 0, 0
	for i := 0; i < len(statements); i += batchSize {
		end := i + batchSize
		if end > len(statements) {
			end = len(statements)
		}
		batch := statements[i:end]

		if err := r.execute(ctx, batch); err != nil {
			for _, stmt := range batch {
				if err := r.execute(ctx, []string{stmt}); err != nil {
					if !strings.Contains(err.Error(), "already exists") {
						errors++
						if errors <= 5 {
							log.Printf("[replicate] statement failed: %v", err)
						}
					}
				}
				executed++
			}
		} else {
			executed += len(batch)
		}
	}
	log.Printf("[replicate] done: %d statements, %d errors", executed, errors)

	if count, err := r.verify(ctx); err != nil {
		log.Printf("[replicate] verification query failed: %v", err)
	} else {
		log.Printf("[replicate] verification: %s games in target", count)
	}
	return nil
}

// dump produces the schema and data statements of the local database, in
// the order sqlite_master lists them.
func (r *Replicator) dump(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, type, sql FROM sqlite_master
		WHERE sql IS NOT NULL AND name NOT LIKE 'sqlite_%'
		ORDER BY CASE type WHEN 'table' THEN 0 ELSE 1 END, name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}
	defer rows.Close()

	var statements []string
	var tables []string
	for rows.Next() {
		var name, typ, ddl string
		if err := rows.Scan(&name, &typ, &ddl); err != nil {
			return nil, err
		}
		statements = append(statements, ddl)
		if typ == "table" {
			tables = append(tables, name)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, table := range tables {
		inserts, err := r.dumpTable(ctx, table)
		if err != nil {
			return nil, err
		}
		statements = append(statements, inserts...)
	}
	return statements, nil
}

func (r *Replicator) dumpTable(ctx context.Context, table string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT * FROM "+table)
	if err != nil {
		return nil, fmt.Errorf("failed to dump %s: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var inserts []string
	for rows.Next() {
		values := make([]interface{}, len(cols))
		scan := make([]interface{}, len(cols))
		for i := range values {
			scan[i] = &values[i]
		}
		if err := rows.Scan(scan...); err != nil {
			return nil, err
		}

		literals := make([]string, len(values))
		for i, v := range values {
			literals[i] = sqlLiteral(v)
		}
		inserts = append(inserts, fmt.Sprintf(
			"INSERT INTO %s VALUES (%s)", table, strings.Join(literals, ", ")))
	}
	return inserts, rows.Err()
}

func sqlLiteral(v interface{}) string {
	switch n := v.(type) {
	case nil:
		return "NULL"
	case int64:
		return fmt.Sprintf("%d", n)
	case float64:
		return fmt.Sprintf("%g", n)
	case bool:
		if n {
			return "1"
		}
		return "0"
	case []byte:
		return "'" + strings.ReplaceAll(string(n), "'", "''") + "'"
	default:
		return "'" + strings.ReplaceAll(fmt.Sprintf("%v", n), "'", "''") + "'"
	}
}

type pipelineRequest struct {
	Requests []pipelineEntry `json:"requests"`
}

type pipelineEntry struct {
	Type string        `json:"type"`
	Stmt *pipelineStmt `json:"stmt,omitempty"`
}

type pipelineStmt struct {
	SQL string `json:"sql"`
}

// execute sends a batch through /v3/pipeline.
func (r *Replicator) execute(ctx context.Context, statements []string) error {
	entries := make([]pipelineEntry, 0, len(statements)+1)
	for _, s := range statements {
		entries = append(entries, pipelineEntry{Type: "execute", Stmt: &pipelineStmt{SQL: s}})
	}
	entries = append(entries, pipelineEntry{Type: "close"})

	body, err := json.Marshal(pipelineRequest{Requests: entries})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+r.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("pipeline request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("pipeline HTTP %d: %s", resp.StatusCode, respBody)
	}

	// The pipeline returns 200 with per-statement errors inside the body.
	var parsed struct {
		Results []struct {
			Type  string `json:"type"`
			Error *struct {
				Message string `json:"message"`
			} `json:"error"`
		} `json:"results"`
	}
	if err := json.Unmarshal(respBody, &parsed); err == nil {
		for _, res := range parsed.Results {
			if res.Error != nil {
				return fmt.Errorf("pipeline statement error: %s", res.Error.Message)
			}
		}
	}
	return nil
}

// verify runs a count query against the target.
func (r *Replicator) verify(ctx context.Context) (string, error) {
	body, err := json.Marshal(pipelineRequest{Requests: []pipelineEntry{
		{Type: "execute", Stmt: &pipelineStmt{SQL: "SELECT COUNT(*) FROM games"}},
		{Type: "close"},
	}})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint(), bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+r.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var parsed struct {
		Results []struct {
			Response struct {
				Result struct {
					Rows [][]struct {
						Value string `json:"value"`
					} `json:"rows"`
				} `json:"result"`
			} `json:"response"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Results) > 0 && len(parsed.Results[0].Response.Result.Rows) > 0 &&
		len(parsed.Results[0].Response.Result.Rows[0]) > 0 {
		return parsed.Results[0].Response.Result.Rows[0][0].Value, nil
	}
	return "", fmt.Errorf("no rows in verification response")
}

// endpoint converts libsql:// to the https pipeline URL.
func (r *Replicator) endpoint() string {
	url := strings.Replace(r.url, "libsql://", "https://", 1)
	if !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}
	return url + "/v3/pipeline"
}
