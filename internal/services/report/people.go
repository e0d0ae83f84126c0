package report

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"

	"github.com/ternarybob/scrutari/internal/models"
)

// Closing fragments tried in order against truncated JSON arrays
var bracketFixes = []string{`]`, `"}]`, `"]}]`, `"]}}]`}

var personObjectRe = regexp.MustCompile(`\{[^{}]{20,}\}`)

// severityRank orders severities for merging (higher wins) and sorting
var severityRank = map[string]int{
	"critical": 4,
	"high":     3,
	"medium":   2,
	"low":      1,
}

// ParsePeople extracts a people list from model output with the same
// fallback ladder as rank parsing: strip fences, strict parse, bracket
// repair, then per-object scan keeping only objects carrying a name.
func ParsePeople(raw string) []*models.ReportPerson {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```") {
		if idx := strings.Index(text, "\n"); idx >= 0 {
			text = text[idx+1:]
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}
	if text == "" {
		return nil
	}

	var people []*models.ReportPerson
	if err := json.Unmarshal([]byte(text), &people); err == nil {
		return people
	}

	for _, fix := range bracketFixes {
		if err := json.Unmarshal([]byte(text+fix), &people); err == nil {
			return people
		}
	}

	people = nil
	for _, obj := range personObjectRe.FindAllString(text, -1) {
		var p models.ReportPerson
		if err := json.Unmarshal([]byte(obj), &p); err == nil && p.Name != "" {
			people = append(people, &p)
		}
	}
	return people
}

// MergePeople deduplicates by name (case-insensitive), unioning
// allegations and sources and keeping the highest severity, then sorts
// by severity descending.
func MergePeople(people []*models.ReportPerson) []*models.ReportPerson {
	merged := make(map[string]*models.ReportPerson)
	order := make([]string, 0)

	for _, p := range people {
		name := strings.TrimSpace(p.Name)
		if len(name) < 3 {
			continue
		}
		key := strings.ToLower(name)

		existing, ok := merged[key]
		if !ok {
			copied := *p
			copied.Name = name
			copied.Allegations = dedupe(p.Allegations)
			copied.Sources = dedupe(p.Sources)
			merged[key] = &copied
			order = append(order, key)
			continue
		}

		existing.Allegations = dedupe(append(existing.Allegations, p.Allegations...))
		existing.Sources = dedupe(append(existing.Sources, p.Sources...))
		if severityRank[p.Severity] > severityRank[existing.Severity] {
			existing.Severity = p.Severity
		}
	}

	result := make([]*models.ReportPerson, 0, len(merged))
	for _, key := range order {
		result = append(result, merged[key])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return severityRank[result[i].Severity] > severityRank[result[j].Severity]
	})
	return result
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}
