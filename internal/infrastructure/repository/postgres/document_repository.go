package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/complykit/filingreview/internal/core/domain"
)

type DocumentRepository struct {
	db *sql.DB
}

func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *DocumentRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026030801)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS documents (
	id TEXT PRIMARY KEY,
	filename TEXT NOT NULL,
	mime_type TEXT NOT NULL,
	storage_path TEXT NOT NULL,
	status TEXT NOT NULL,
	error_message TEXT,
	raw_text TEXT NOT NULL DEFAULT '',
	word_count INTEGER NOT NULL DEFAULT 0,
	paragraphs JSONB NOT NULL DEFAULT '[]'::jsonb,
	tables JSONB NOT NULL DEFAULT '[]'::jsonb,
	properties JSONB NOT NULL DEFAULT '{}'::jsonb,
	inferred_type TEXT,
	detected_sections JSONB NOT NULL DEFAULT '[]'::jsonb,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_documents_status ON documents(status);
CREATE INDEX IF NOT EXISTS idx_documents_created_at ON documents(created_at DESC);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (r *DocumentRepository) Create(ctx context.Context, doc *domain.Document) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO documents (
	id, filename, mime_type, storage_path, status, error_message, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
`,
		doc.ID, doc.Filename, doc.MimeType, doc.StoragePath, string(doc.Status), doc.Error,
		doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (r *DocumentRepository) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, filename, mime_type, storage_path, status, error_message, raw_text, word_count,
	paragraphs, tables, properties, inferred_type, detected_sections, created_at, updated_at
FROM documents
WHERE id = $1
`, id)

	var doc domain.Document
	var status string
	var errMessage, inferredType sql.NullString
	var paragraphsRaw, tablesRaw, propertiesRaw, sectionsRaw []byte

	err := row.Scan(
		&doc.ID, &doc.Filename, &doc.MimeType, &doc.StoragePath, &status, &errMessage,
		&doc.RawText, &doc.WordCount, &paragraphsRaw, &tablesRaw, &propertiesRaw,
		&inferredType, &sectionsRaw, &doc.CreatedAt, &doc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrDocumentNotFound, "get document", fmt.Errorf("id=%s", id))
		}
		return nil, fmt.Errorf("scan document: %w", err)
	}

	if err := json.Unmarshal(paragraphsRaw, &doc.Paragraphs); err != nil {
		return nil, fmt.Errorf("unmarshal paragraphs: %w", err)
	}
	if err := json.Unmarshal(tablesRaw, &doc.Tables); err != nil {
		return nil, fmt.Errorf("unmarshal tables: %w", err)
	}
	if err := json.Unmarshal(propertiesRaw, &doc.Properties); err != nil {
		return nil, fmt.Errorf("unmarshal properties: %w", err)
	}
	if err := json.Unmarshal(sectionsRaw, &doc.DetectedSections); err != nil {
		return nil, fmt.Errorf("unmarshal detected sections: %w", err)
	}
	doc.Status = domain.DocumentStatus(status)
	doc.Error = errMessage.String
	doc.InferredType = domain.DocumentType(inferredType.String)
	return &doc, nil
}

// ListByIDs loads documents one by one, preserving the caller's order.
// Review runs depend on input order for deterministic issue sequences.
func (r *DocumentRepository) ListByIDs(ctx context.Context, ids []string) ([]domain.Document, error) {
	out := make([]domain.Document, 0, len(ids))
	for _, id := range ids {
		doc, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, *doc)
	}
	return out, nil
}

func (r *DocumentRepository) UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, errMessage string) error {
	result, err := r.db.ExecContext(ctx, `
UPDATE documents
SET status = $2, error_message = $3, updated_at = $4
WHERE id = $1
`, id, string(status), errMessage, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update document status: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return domain.WrapError(domain.ErrDocumentNotFound, "update document status", fmt.Errorf("id=%s", id))
	}
	return nil
}

func (r *DocumentRepository) SaveAnalysis(ctx context.Context, id string, analysis domain.Analysis) error {
	paragraphsJSON, err := json.Marshal(orEmptySlice(analysis.Paragraphs))
	if err != nil {
		return fmt.Errorf("marshal paragraphs: %w", err)
	}
	tablesJSON, err := json.Marshal(orEmptyTables(analysis.Tables))
	if err != nil {
		return fmt.Errorf("marshal tables: %w", err)
	}
	propertiesJSON, err := json.Marshal(orEmptyMap(analysis.Properties))
	if err != nil {
		return fmt.Errorf("marshal properties: %w", err)
	}
	sectionsJSON, err := json.Marshal(orEmptySlice(analysis.DetectedSections))
	if err != nil {
		return fmt.Errorf("marshal detected sections: %w", err)
	}

	result, err := r.db.ExecContext(ctx, `
UPDATE documents
SET raw_text = $2, word_count = $3, paragraphs = $4, tables = $5, properties = $6,
	inferred_type = $7, detected_sections = $8, updated_at = $9
WHERE id = $1
`, id, analysis.RawText, analysis.WordCount, paragraphsJSON, tablesJSON, propertiesJSON,
		string(analysis.InferredType), sectionsJSON, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save analysis: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return domain.WrapError(domain.ErrDocumentNotFound, "save analysis", fmt.Errorf("id=%s", id))
	}
	return nil
}

func orEmptySlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func orEmptyTables(t [][][]string) [][][]string {
	if t == nil {
		return [][][]string{}
	}
	return t
}

func orEmptyMap(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}
