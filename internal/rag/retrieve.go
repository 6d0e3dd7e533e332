package rag

import (
	"math"
	"sort"

	"github.com/Dileep2896/visapath/internal/db"
)

// Retrieval defaults: top 4 chunks, dropping anything below a weak
// similarity floor so off-topic questions return no sources.
const (
	DefaultTopK     = 4
	DefaultMinScore = 0.3
)

// ScoredChunk is a stored chunk with its similarity to the query.
type ScoredChunk struct {
	Chunk db.DocumentChunk
	Score float64
}

// CosineSimilarity computes the cosine similarity of two vectors.
// Returns 0 for mismatched lengths or zero vectors.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// TopK scores every chunk against the query vector and returns the k best
// at or above minScore, highest first.
func TopK(query []float32, chunks []db.DocumentChunk, k int, minScore float64) []ScoredChunk {
	if k <= 0 {
		k = DefaultTopK
	}

	scored := make([]ScoredChunk, 0, len(chunks))
	for _, c := range chunks {
		score := CosineSimilarity(query, c.Embedding)
		if score >= minScore {
			scored = append(scored, ScoredChunk{Chunk: c, Score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > k {
		scored = scored[:k]
	}
	return scored
}
