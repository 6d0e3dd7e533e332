package rag

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dileep2896/visapath/internal/db"
)

func TestSplitText_ShortTextIsSingleChunk(t *testing.T) {
	chunks := SplitText("a short document", DefaultChunkSize, DefaultChunkOverlap)
	require.Len(t, chunks, 1)
	assert.Equal(t, "a short document", chunks[0])
}

func TestSplitText_Empty(t *testing.T) {
	assert.Nil(t, SplitText("", DefaultChunkSize, DefaultChunkOverlap))
	assert.Nil(t, SplitText("   \n  ", DefaultChunkSize, DefaultChunkOverlap))
}

func TestSplitText_OverlapAndCoverage(t *testing.T) {
	text := strings.Repeat("immigration deadline planning ", 200) // ~6000 chars
	chunks := SplitText(text, 1000, 200)

	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 1000)
		assert.NotEqual(t, " ", c[:1], "chunks must be trimmed")
	}
	// Overlap: the start of chunk 2 appears inside chunk 1.
	head := chunks[1][:50]
	assert.Contains(t, chunks[0], head)
}

func TestSplitText_DoesNotCutWords(t *testing.T) {
	text := strings.Repeat("alpha beta gamma delta ", 100)
	for _, c := range SplitText(text, 100, 20) {
		for _, w := range strings.Fields(c) {
			assert.Contains(t, []string{"alpha", "beta", "gamma", "delta"}, w)
		}
	}
}

func TestStripHTML(t *testing.T) {
	html := `<html><head><style>body{color:red}</style></head>
		<body><h1>OPT Basics</h1><script>alert(1)</script>
		<p>Apply   within 60 days.</p></body></html>`

	text, err := StripHTML(html)
	require.NoError(t, err)
	assert.Equal(t, "OPT Basics Apply within 60 days.", text)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, CosineSimilarity([]float32{1, 0}, []float32{2, 0}), 1e-9)
	assert.InDelta(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, CosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-9)
	assert.Equal(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{1}))
	assert.Equal(t, 0.0, CosineSimilarity([]float32{0, 0}, []float32{1, 1}))
}

func TestTopK(t *testing.T) {
	chunks := []db.DocumentChunk{
		{Content: "orthogonal", Embedding: []float32{0, 1}},
		{Content: "close", Embedding: []float32{0.9, 0.1}},
		{Content: "exact", Embedding: []float32{1, 0}},
		{Content: "opposite", Embedding: []float32{-1, 0}},
	}

	got := TopK([]float32{1, 0}, chunks, 2, DefaultMinScore)
	require.Len(t, got, 2)
	assert.Equal(t, "exact", got[0].Chunk.Content)
	assert.Equal(t, "close", got[1].Chunk.Content)
}

func TestTopK_MinScoreFiltersEverything(t *testing.T) {
	chunks := []db.DocumentChunk{{Content: "orthogonal", Embedding: []float32{0, 1}}}
	assert.Empty(t, TopK([]float32{1, 0}, chunks, 4, DefaultMinScore))
}

type fakeEmbedder struct{ calls int }

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.calls++
	return []float32{float32(len(text))}, nil
}

func TestEmbedChunks_PreservesOrder(t *testing.T) {
	emb := &fakeEmbedder{}
	vectors, err := EmbedChunks(context.Background(), emb, []string{"a", "bb", "ccc"})
	require.NoError(t, err)

	require.Len(t, vectors, 3)
	assert.Equal(t, []float32{1}, vectors[0])
	assert.Equal(t, []float32{2}, vectors[1])
	assert.Equal(t, []float32{3}, vectors[2])
	assert.Equal(t, 3, emb.calls)
}
