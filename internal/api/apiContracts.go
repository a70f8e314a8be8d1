package api

type ChatRequest struct {
	Query string `json:"query" validate:"required"`
}

type ChatResponse struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
}

type IngestResponse struct {
	State     string `json:"state"`
	Reason    string `json:"reason,omitempty"`
	Documents int    `json:"documents"`
	Chunks    int    `json:"chunks"`
}

type HealthResponse struct {
	Status        string `json:"status"`
	DatabaseFound bool   `json:"database_found"`
	RagReady      bool   `json:"rag_ready"`
}

type ErrorResponse struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"query is required"`
}
