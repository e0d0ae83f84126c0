package condense

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsJunkPage(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"short page", "abcdefgh", true},
		{"empty page", "", true},
		{"symbol heavy", "### $$$ %%% &&& ((( ))) 123", true},
		{"mostly digits", strings.Repeat("2024-01-15 08:33 555-0101 ", 4), true},
		{"substantive prose", "The witness described the events of that evening in detail.", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsJunkPage(tt.text))
		})
	}
}

func TestCondenseDropsJunkPages(t *testing.T) {
	full := strings.Join([]string{
		"The first substantive page describing the interview in detail.",
		"abcdefgh",
		"A second substantive page covering the follow-up conversation.",
	}, "\n\n")

	condensed := Condense(full)
	assert.Contains(t, condensed, "first substantive page")
	assert.Contains(t, condensed, "second substantive page")
	assert.NotContains(t, condensed, "abcdefgh")
}

func TestCondenseStripsBoilerplate(t *testing.T) {
	tests := []struct {
		name    string
		page    string
		removed string
	}{
		{
			name:    "chain of custody block",
			page:    "The agent recovered the notebook from the premises during the search.\nChain of custody log entry item four transferred to the field office",
			removed: "Chain of custody",
		},
		{
			name:    "email disclaimer",
			page:    "Please call me when you land so we can talk about the arrangements.\nThis e-mail and any attachments are confidential and intended solely for the addressee",
			removed: "attachments are confidential",
		},
		{
			name:    "fbi footer",
			page:    "The interview subject stated that she had worked there two summers.\nThis document contains neither recommendations nor conclusions of the FBI and is loaned to your agency",
			removed: "neither recommendations",
		},
		{
			name:    "exhibit stamps",
			page:    "Substantive narrative describing the flight manifest in plain prose here.\nGM_EXHIBIT_001 GM_EXHIBIT_002 GM_EXHIBIT_003",
			removed: "GM_EXHIBIT_001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			condensed := Condense(tt.page)
			assert.NotContains(t, condensed, tt.removed)
		})
	}
}

func TestCondenseEmptyInput(t *testing.T) {
	assert.Equal(t, "", Condense(""))
}

func TestCondenseDropsPagesBelowFloor(t *testing.T) {
	// page is substantive enough to pass the junk gate but shrinks
	// under the retention floor once the boilerplate is stripped
	page := "Chain of custody form one two three four five six seven eight nine ten eleven"
	assert.Equal(t, "", Condense(page))
}

func TestCondenseMonotonicShrink(t *testing.T) {
	full := strings.Join([]string{
		"The first substantive page describing the interview process in detail.\nThis e-mail is confidential and intended only for the named recipient",
		"### $$$ %%%",
		"Another substantive page with enough narrative text to survive the filters easily.",
	}, "\n\n")

	once := Condense(full)
	twice := Condense(once)
	assert.LessOrEqual(t, len(twice), len(once))
	assert.Equal(t, twice, Condense(twice))
}
