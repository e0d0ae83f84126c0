package classify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ternarybob/scrutari/internal/models"
)

func TestClassifyTerminalGates(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantType string
	}{
		{"empty string", "", models.DocTypeEmpty},
		{"whitespace only", "   \n\t  ", models.DocTypeEmpty},
		{"under twenty chars", "short text", models.DocTypeEmpty},
		{"symbol soup", strings.Repeat("#$%^&*()123 ", 10), models.DocTypeScanGarbage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docType, score := Classify(tt.text, 1)
			assert.Equal(t, tt.wantType, docType)
			assert.Equal(t, 0, score)
		})
	}
}

func TestClassifyEmailHeaders(t *testing.T) {
	docType, score := Classify("From: a@b.com\nSubject: Meeting\nLet's discuss the schedule for next week.", 1)
	assert.Equal(t, models.DocTypeEmail, docType)
	assert.GreaterOrEqual(t, score, 60)
}

func TestClassifyTypeOverrides(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantType  string
		wantScore int
	}{
		{
			name:      "deposition markers",
			text:      "transcript of the deposition taken under oath before the notary public",
			wantType:  models.DocTypeDeposition,
			wantScore: 70,
		},
		{
			name: "law enforcement wins over deposition",
			// both marker sets present; law enforcement forces the type
			text:      "fbi case number 12345 concerning grand jury testimony of the subject",
			wantType:  models.DocTypeLawEnforcement,
			wantScore: 80,
		},
		{
			name:      "legal filing",
			text:      "the plaintiff moves this honorable tribunal for summary relief",
			wantType:  models.DocTypeLegal,
			wantScore: 50,
		},
		{
			name: "email keeps type over deposition score",
			// deposition raises the score but type stays email
			text:      "From: x@y.com\nregarding the testimony transcript attached hereto",
			wantType:  models.DocTypeEmail,
			wantScore: 70,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docType, score := Classify(tt.text, 1)
			assert.Equal(t, tt.wantType, docType)
			assert.Equal(t, tt.wantScore, score)
		})
	}
}

func TestClassifyPhoneRecordsAssignsScore(t *testing.T) {
	// phone check assigns 20 outright, discarding a higher running score
	docType, score := Classify("fax activity summary for the deposition transcript office line", 1)
	assert.Equal(t, models.DocTypePhoneRecords, docType)
	assert.Equal(t, 20, score)
}

func TestClassifyFileListing(t *testing.T) {
	text := "photo001.jpg photo002.jpg photo003.jpg photo004.jpg and related imagery"
	docType, score := Classify(text, 1)
	assert.Equal(t, models.DocTypeFileListing, docType)
	assert.Equal(t, 10, score)
}

func TestClassifyWatchlistBoost(t *testing.T) {
	base := "the plaintiff moves this honorable tribunal for summary relief"
	_, baseScore := Classify(base, 1)

	_, boosted := Classify(base+" concerning epstein and maxwell", 1)
	assert.Equal(t, baseScore+20, boosted)
}

func TestClassifyLengthBonusAndClamp(t *testing.T) {
	long := strings.Repeat("the investigation of the arrest records continued apace. ", 120)
	docType, score := Classify(long, 1)
	assert.Equal(t, models.DocTypeLawEnforcement, docType)
	assert.LessOrEqual(t, score, 100)
	assert.GreaterOrEqual(t, score, 90)
}

func TestClassifyMinimalAndDocumentFallback(t *testing.T) {
	// typeless short text under 100 chars
	docType, score := Classify("weekly newsletter about gardening tips and soil", 1)
	assert.Equal(t, models.DocTypeMinimal, docType)
	assert.Less(t, score, 20)

	// typeless but substantial text
	long := strings.Repeat("gardening tips about soil and watering routines without notable vocabulary here ", 3)
	docType, _ = Classify(long, 1)
	assert.Equal(t, models.DocTypeDocument, docType)
}

func TestClassifyPure(t *testing.T) {
	text := "From: a@b.com\nthe witness described the investigation involving epstein"
	t1, s1 := Classify(text, 3)
	t2, s2 := Classify(text, 3)
	assert.Equal(t, t1, t2)
	assert.Equal(t, s1, s2)
}

func TestClassifyClosedDomain(t *testing.T) {
	valid := make(map[string]bool, len(models.DocTypes))
	for _, dt := range models.DocTypes {
		valid[dt] = true
	}

	inputs := []string{
		"", "a", strings.Repeat("z", 5000), "1234567890 1234567890 1234567890",
		"From: someone\nSubject: thing\nbody", "court filed motion order",
		strings.Repeat(".tif ", 50), "evidence property contents list",
	}
	for _, input := range inputs {
		docType, score := Classify(input, 1)
		assert.True(t, valid[docType], "type %q not in closed set", docType)
		assert.GreaterOrEqual(t, score, 0)
		assert.LessOrEqual(t, score, 100)
	}
}
