package model

// DebateStatus classifies the outcome of a debate generation request
type DebateStatus string

const (
	// DebateOK means all required sections were recovered from the reply
	DebateOK DebateStatus = "ok"
	// DebateParseError means the service replied but the reply lacked the
	// required Support/Counterpoint sections; Raw carries the reply verbatim
	DebateParseError DebateStatus = "parse_error"
	// DebateUpstreamError means the completion service itself failed;
	// segmentation was never attempted
	DebateUpstreamError DebateStatus = "upstream_error"
)

// DebateResult is the structured three-part debate built from an answer.
// Callers must check Status before rendering the sections as content.
type DebateResult struct {
	Support    string       `json:"support"`
	Counter    string       `json:"counter"`
	Reflection string       `json:"reflection"`
	Status     DebateStatus `json:"status"`
	// Raw holds the unparsed service reply on parse_error, or the upstream
	// error message on upstream_error. Empty on ok.
	Raw string `json:"raw,omitempty"`
}
