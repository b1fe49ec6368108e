package domain

// Bundle status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Diagnostics describes how a query was answered.
type Diagnostics struct {
	VectorSize   int    `json:"vector_size"`
	ResultsFound int    `json:"results_found"`
	Collection   string `json:"collection_name"`
}

// AnswerBundle is the structured result of a single query. The orchestrator
// always returns a bundle: failures are captured in Status/Error, never
// propagated as raw faults.
type AnswerBundle struct {
	Status           string       `json:"status"`
	TextResponse     string       `json:"text_response,omitempty"`
	SpeechDirections string       `json:"tts_instructions,omitempty"`
	AudioPath        string       `json:"audio_path,omitempty"`
	Sources          []string     `json:"sources,omitempty"`
	Error            string       `json:"error,omitempty"`
	Query            string       `json:"query,omitempty"`
	Diagnostics      *Diagnostics `json:"query_details,omitempty"`
}

// ErrorBundle builds an error-status bundle for a failed query.
func ErrorBundle(query, msg string) AnswerBundle {
	return AnswerBundle{Status: StatusError, Error: msg, Query: query}
}
