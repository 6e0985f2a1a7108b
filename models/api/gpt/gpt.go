package gptmodels

type ReviewSummaryResponse struct {
	Summary string `json:"summary"`
}
