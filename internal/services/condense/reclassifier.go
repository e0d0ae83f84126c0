package condense

import (
	"regexp"
	"strings"

	"github.com/ternarybob/scrutari/internal/models"
)

var (
	dialogueMarkerRe = regexp.MustCompile(`\b[QA]\.\s`)
	sentenceRe       = regexp.MustCompile(`[.!?]\s+[A-Z]`)
	investigativeRe  = regexp.MustCompile(`(?i)(investigation|arrest|surveillance|interview|witness|statement|allegation)`)
	legalSubstanceRe = regexp.MustCompile(`(?i)(plea agreement|indictment|non-prosecution|immunity|cooperat|sentenc)`)
	emailContentRe   = regexp.MustCompile(`(?m)^(From:|Subject:)`)
)

// Reclassification watchlist: the classifier names plus victim and
// trafficking vocabulary. Each distinct hit adds 8.
var reclassifyWatchlist = []string{
	"epstein", "maxwell", "ghislaine", "prince andrew", "giuffre", "roberts",
	"dershowitz", "clinton", "trump", "black", "wexner", "brunel", "dubin",
	"victim", "minor", "underage", "abuse", "trafficking",
}

// Reclassify is the second, stricter scoring pass over condensed text.
// It fully replaces the first-pass type and score; there is no merge.
// Pure function with the same domain guarantees as Classify.
func Reclassify(text, condensed, docType string, pageCount int) (string, int) {
	if len(strings.TrimSpace(condensed)) < 30 {
		return models.DocTypeEmpty, 0
	}

	lower := strings.ToLower(condensed)
	score := 0

	for _, name := range reclassifyWatchlist {
		if strings.Contains(lower, name) {
			score += 8
		}
	}

	// dialogue/testimony (Q&A format)
	if len(dialogueMarkerRe.FindAllString(condensed, -1)) > 5 {
		docType = models.DocTypeDeposition
		score += 30
	}

	// narrative content (sentences, not just data)
	sentences := len(sentenceRe.FindAllString(condensed, -1))
	if sentences > 5 {
		score += 20
	} else if sentences > 2 {
		score += 10
	}

	if investigativeRe.MatchString(lower) {
		score += 20
		if docType != models.DocTypeDeposition && docType != models.DocTypeEmail {
			docType = models.DocTypeLawEnforcement
		}
	}

	if legalSubstanceRe.MatchString(lower) {
		score += 25
	}

	// emails with actual content, not just headers
	if emailContentRe.MatchString(condensed) {
		if sentences > 2 || len(condensed) > 300 {
			docType = models.DocTypeEmail
			score += 15
		}
	}

	// demote mostly tabular pages
	lines := strings.Split(condensed, "\n")
	shortLines := 0
	for _, l := range lines {
		if len(strings.TrimSpace(l)) < 20 {
			shortLines++
		}
	}
	if len(lines) > 10 && float64(shortLines)/float64(len(lines)) > 0.7 {
		score = max(score-20, 0)
	}

	if len(condensed) > 2000 {
		score += 10
	}
	if len(condensed) > 5000 {
		score += 10
	}

	return docType, min(score, 100)
}
