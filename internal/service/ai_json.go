package service

import "strings"

// extractJSONArray pulls the first JSON array out of a model reply. Models
// often wrap JSON in markdown fences or add prose around it; we take
// everything between the first '[' and the last ']'.
func extractJSONArray(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")

	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return cleaned[start : end+1]
}
