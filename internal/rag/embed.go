package rag

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Embedder produces embedding vectors for texts. llm.Client satisfies it.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// embedConcurrency bounds the parallel embedding calls per document so
// ingestion does not trip provider rate limits.
const embedConcurrency = 4

// EmbedChunks embeds every chunk concurrently, preserving input order.
// The first failure cancels the remaining work.
func EmbedChunks(ctx context.Context, embedder Embedder, chunks []string) ([][]float32, error) {
	vectors := make([][]float32, len(chunks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(embedConcurrency)

	for i, chunk := range chunks {
		g.Go(func() error {
			v, err := embedder.Embed(ctx, chunk)
			if err != nil {
				return fmt.Errorf("chunk %d: %w", i, err)
			}
			vectors[i] = v
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return vectors, nil
}
