package dto

// Extraction error codes reported inside ExtractionResult.Error
const (
	ExtractionNoResults        = "NO_RESULTS"
	ExtractionProviderError    = "PROVIDER_ERROR"
	ExtractionPersistenceError = "PERSISTENCE_ERROR"
	ExtractionCancelled        = "CANCELLED"
)

// ExtractionRequest is the body of the extract and preview endpoints
// @Description Deep discovery request
type ExtractionRequest struct {
	Params SearchParams `json:"params"`
	// Target number of new leads (default: 200 for extract, 50 for preview)
	Limit int `json:"limit" binding:"omitempty,min=1,max=1000" example:"50"`
}

// ExtractionError describes why a run stopped early
type ExtractionError struct {
	Code    string `json:"code" example:"PROVIDER_ERROR"`
	Message string `json:"message" example:"casa dos dados returned status 429"`
	// Upstream HTTP status, when the provider answered
	Status int `json:"status,omitempty"`
}

// ExtractionResult is the outcome of an extraction run. Work accepted before
// an error is always reported alongside it.
// @Description Extraction run summary
type ExtractionResult struct {
	TotalSaved      int              `json:"totalSaved"`
	TotalDuplicates int              `json:"totalDuplicates"`
	TotalChecked    int              `json:"totalChecked"`
	PagesScanned    int              `json:"pagesScanned"`
	SearchExhausted bool             `json:"searchExhausted"`
	PageCapReached  bool             `json:"pageCapReached"`
	Candidates      []LeadInput      `json:"candidates"`
	Error           *ExtractionError `json:"error"`
}
