package enrich

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/ternarybob/scrutari/internal/models"
)

// rankResponse is the shape the ranking prompt asks the model for
type rankResponse struct {
	Score  int    `json:"score"`
	Reason string `json:"reason"`
}

// Closing fragments appended in order when the model truncates its
// JSON output mid-object.
var bracketFixes = []string{`]`, `"}]`, `"}]}]`, `"]}]`}

var jsonObjectRe = regexp.MustCompile(`\{[^{}]+\}`)

// ParseRank extracts a newsworthiness ranking from model output using a
// fallback ladder: strip code fences, strict parse, closing-bracket
// repair, then a per-object scan. Unparsable output yields an Unranked
// result, never an error.
func ParseRank(raw string) models.NewsRank {
	text := stripCodeFence(strings.TrimSpace(raw))
	if text == "" {
		return models.Unranked()
	}

	var parsed rankResponse
	if err := json.Unmarshal([]byte(text), &parsed); err == nil {
		return models.NewsRank{Parsed: true, Score: parsed.Score, Reason: parsed.Reason}
	}

	for _, fix := range bracketFixes {
		if err := json.Unmarshal([]byte(text+fix), &parsed); err == nil {
			return models.NewsRank{Parsed: true, Score: parsed.Score, Reason: parsed.Reason}
		}
	}

	for _, obj := range jsonObjectRe.FindAllString(text, -1) {
		if err := json.Unmarshal([]byte(obj), &parsed); err == nil {
			return models.NewsRank{Parsed: true, Score: parsed.Score, Reason: parsed.Reason}
		}
	}

	return models.Unranked()
}

// stripCodeFence removes a surrounding markdown code fence if present
func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	if idx := strings.Index(text, "\n"); idx >= 0 {
		text = text[idx+1:]
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
