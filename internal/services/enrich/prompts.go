package enrich

// Prompt templates for the enrichment passes. Document text is appended
// to the summary prompt; the resulting summary is appended to the rank
// prompt.
const (
	summaryPrompt = `You are analyzing a declassified DOJ document from the Jeffrey Epstein case.

Provide a concise summary with these sections:
- **What this is**: Document type (email, deposition, FBI report, etc) and date if available
- **Key people**: Names mentioned and their roles
- **Key facts**: The most important revelations, allegations, or facts (bullet points)
- **Notable**: Anything particularly significant or surprising

Be specific. Use names, dates, and direct references. Skip boilerplate and focus on substance. If the text is too garbled to extract meaning, say so briefly.

Document text:
`

	rankPrompt = `Rate this document summary's newsworthiness on a scale of 1-100 for someone investigating the Epstein case. Consider:
- Does it contain specific allegations of crimes?
- Does it name powerful/famous people in compromising situations?
- Does it reveal cover-ups, obstruction, or corruption?
- Does it contain firsthand witness testimony about abuse?
- Does it show connections between Epstein and institutions?

Respond with ONLY a JSON object: {"score": <number>, "reason": "<one sentence>"}

Summary:
`
)

// summaryInputLimit caps the document text sent with the summary prompt
const summaryInputLimit = 7000

// adhocInputLimit caps text posted to the ad hoc summarize endpoint
const adhocInputLimit = 8000
