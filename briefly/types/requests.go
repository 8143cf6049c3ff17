// briefly/types/requests.go
package types

type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

type SummarizeRequest struct {
	URL string `json:"url"`
}

type UpdateSummaryRequest struct {
	Content string `json:"content"`
}

type EditSummaryRequest struct {
	Summary string `json:"summary"`
	Prompt  string `json:"prompt"`
}

type EditSummaryResponse struct {
	UpdatedSummary string `json:"updatedSummary"`
}
