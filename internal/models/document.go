package models

// Document type classifications assigned by the heuristic pipeline.
// The set is closed: classify and reclassify only ever produce these values.
const (
	DocTypeEmpty          = "empty"
	DocTypeScanGarbage    = "scan_garbage"
	DocTypeEmail          = "email"
	DocTypeDeposition     = "deposition"
	DocTypeLawEnforcement = "law_enforcement"
	DocTypeLegal          = "legal"
	DocTypePhoneRecords   = "phone_records"
	DocTypeFileListing    = "file_listing"
	DocTypeEvidenceList   = "evidence_list"
	DocTypeDocument       = "document"
	DocTypeMinimal        = "minimal"
	DocTypeOther          = "other"
)

// DocTypes lists every valid document type.
var DocTypes = []string{
	DocTypeEmpty,
	DocTypeScanGarbage,
	DocTypeEmail,
	DocTypeDeposition,
	DocTypeLawEnforcement,
	DocTypeLegal,
	DocTypePhoneRecords,
	DocTypeFileListing,
	DocTypeEvidenceList,
	DocTypeDocument,
	DocTypeMinimal,
	DocTypeOther,
}

// PageSeparator joins page texts into a document's full text. Condensing
// splits on the same separator, so the two must never diverge.
const PageSeparator = "\n\n"

// Document is one ingested source file with its derived pipeline fields.
// FullText is always the ordered join of the document's page texts.
type Document struct {
	ID            int64  `json:"id"`
	Filename      string `json:"filename"`
	Filepath      string `json:"filepath"`
	PageCount     int    `json:"page_count"`
	FullText      string `json:"full_text,omitempty"`
	Condensed     string `json:"condensed,omitempty"`
	BatesStart    string `json:"bates_start"`
	BatesEnd      string `json:"bates_end"`
	DocType       string `json:"doc_type"`
	InterestScore int    `json:"interest_score"`

	// Enrichment fields are owned by the LLM collaborator. The pipeline
	// never computes them; it only stores and serves them.
	AISummary  string `json:"ai_summary,omitempty"`
	NewsScore  int    `json:"news_score"`
	NewsReason string `json:"news_reason,omitempty"`
}

// Page is one page of a document. PageNum is 1-based and unique within
// the owning document.
type Page struct {
	ID      int64  `json:"id"`
	DocID   int64  `json:"doc_id"`
	PageNum int    `json:"page_num"`
	Text    string `json:"text"`
}

// SearchHit is a single search result tuple.
type SearchHit struct {
	DocID    int64  `json:"doc_id"`
	Filename string `json:"filename"`
	PageNum  int    `json:"page_num"`
	Snippet  string `json:"snippet"`
}

// Highlight is a high-interest document with its enrichment preview, as
// served by the highlights endpoint.
type Highlight struct {
	ID            int64  `json:"id"`
	Filename      string `json:"filename"`
	PageCount     int    `json:"page_count"`
	DocType       string `json:"doc_type"`
	InterestScore int    `json:"interest_score"`
	Preview       string `json:"preview"`
	NewsScore     int    `json:"news_score"`
	NewsReason    string `json:"news_reason"`
}

// TypeCount is an aggregate count for one document type.
type TypeCount struct {
	DocType string `json:"doc_type"`
	Count   int    `json:"c"`
}

// CorpusStats holds corpus-wide counts.
type CorpusStats struct {
	Documents int `json:"documents"`
	Pages     int `json:"pages"`
}
