// Package rag implements the retrieval pipeline for the knowledge base:
// document cleanup and chunking, concurrent embedding, and cosine
// similarity retrieval over the stored chunks.
package rag

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Chunking defaults. Overlap keeps sentences that straddle a boundary
// retrievable from both sides.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// SplitText slices text into overlapping chunks of roughly size runes.
// Boundaries back up to the nearest whitespace so words are never cut.
func SplitText(text string, size, overlap int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = DefaultChunkOverlap
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	runes := []rune(text)
	if len(runes) <= size {
		return []string{text}
	}

	var chunks []string
	step := size - overlap
	start := 0
	for start < len(runes) {
		end := start + size
		if end >= len(runes) {
			if c := strings.TrimSpace(string(runes[start:])); c != "" {
				chunks = append(chunks, c)
			}
			break
		}
		// Back up to a whitespace boundary when one is close.
		cut := end
		for cut > start+step && !isSpace(runes[cut-1]) {
			cut--
		}
		if cut == start+step {
			cut = end
		}
		if c := strings.TrimSpace(string(runes[start:cut])); c != "" {
			chunks = append(chunks, c)
		}
		next := cut - overlap
		if next <= start {
			next = cut
		}
		// Chunks start on a word boundary so no word is split in half.
		for next < len(runes) && !isSpace(runes[next-1]) {
			next++
		}
		start = next
	}
	return chunks
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\n' || r == '\t' || r == '\r'
}

// StripHTML extracts readable text from an HTML document, dropping script
// and style elements and collapsing whitespace.
func StripHTML(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc.Find("script, style, noscript").Remove()

	text := doc.Text()
	return strings.Join(strings.Fields(text), " "), nil
}
