package llm

import "strings"

// maxFenceInfoLen bounds what counts as a fence info string, e.g. "json".
const maxFenceInfoLen = 20

// CleanJSONBlock strips a markdown code fence from a model response.
// Gemini wraps JSON in ```json fences even with a JSON response MIME set,
// and the schema validator rejects the fenced form.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	body := strings.TrimPrefix(text, "```json")
	if body == text {
		body = strings.TrimPrefix(text, "```")
		// Drop a bare info string like "yaml" on the opening line, but
		// not a brace that starts the payload itself.
		if nl := strings.Index(body, "\n"); nl >= 0 {
			info := body[:nl]
			if len(info) < maxFenceInfoLen && !strings.ContainsAny(info, " {") {
				body = body[nl+1:]
			}
		}
	}

	if end := strings.LastIndex(body, "```"); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}
