package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// DocumentChunk is one embedded slice of a knowledge base document.
type DocumentChunk struct {
	ID         uuid.UUID
	Source     string
	ChunkIndex int
	Content    string
	Embedding  []float32
}

// ReplaceDocument atomically swaps all chunks for a source document: the
// old chunks are removed and the new set inserted in one transaction, so
// retrieval never sees a half-ingested document.
func (db *DB) ReplaceDocument(ctx context.Context, source string, chunks []DocumentChunk) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx,
		`DELETE FROM document_chunks WHERE source = $1`, source); err != nil {
		return fmt.Errorf("failed to delete old chunks: %w", err)
	}

	for _, c := range chunks {
		if _, err := tx.Exec(ctx,
			`INSERT INTO document_chunks (source, chunk_index, content, embedding)
			 VALUES ($1, $2, $3, $4)`,
			source, c.ChunkIndex, c.Content, c.Embedding,
		); err != nil {
			return fmt.Errorf("failed to insert chunk %d of %s: %w", c.ChunkIndex, source, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit document: %w", err)
	}
	return nil
}

// AllChunks loads every stored chunk. The corpus is small enough that
// retrieval scores it in memory.
func (db *DB) AllChunks(ctx context.Context) ([]DocumentChunk, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, source, chunk_index, content, embedding
		 FROM document_chunks ORDER BY source, chunk_index`)
	if err != nil {
		return nil, fmt.Errorf("failed to load chunks: %w", err)
	}
	defer rows.Close()

	var chunks []DocumentChunk
	for rows.Next() {
		var c DocumentChunk
		if err := rows.Scan(&c.ID, &c.Source, &c.ChunkIndex, &c.Content, &c.Embedding); err != nil {
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}
		chunks = append(chunks, c)
	}
	return chunks, rows.Err()
}

// CountChunks returns the number of stored chunks, used by the health and
// ingest reporting paths.
func (db *DB) CountChunks(ctx context.Context) (int, error) {
	var n int
	if err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM document_chunks`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count chunks: %w", err)
	}
	return n, nil
}
