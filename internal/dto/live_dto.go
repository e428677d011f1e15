package dto

// Live session message types.
const (
	LiveAnalyze = "analyze"
	LiveCancel  = "cancel"

	LiveAnalysis   = "analysis"
	LiveSuggestion = "suggestion"
	LiveDone       = "done"
	LiveError      = "error"
)

// LiveRequest is a client frame on the live analysis socket. An analyze
// frame supersedes any round still running on the same socket.
type LiveRequest struct {
	Type      string         `json:"type" validate:"required,oneof=analyze cancel"`
	RequestId string         `json:"request_id" validate:"max=64"`
	Blocks    []BlockRequest `json:"blocks" validate:"required_if=Type analyze,max=500"`
}

// LiveMessage is a server frame. Data holds an AnalyzeResponse for
// "analysis" and a SuggestionResponse for "suggestion".
type LiveMessage struct {
	Type      string `json:"type"`
	RequestId string `json:"request_id,omitempty"`
	Data      any    `json:"data,omitempty"`
	Message   string `json:"message,omitempty"`
}
