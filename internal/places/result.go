package places

import "fmt"

// Provider status strings.
const (
	StatusOK          = "OK"
	StatusZeroResults = "ZERO_RESULTS"
)

// Outcome is the closed set of provider answers.
type Outcome int

const (
	OutcomeError Outcome = iota
	OutcomeSuccess
	OutcomeNoResults
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeNoResults:
		return "no_results"
	default:
		return "error"
	}
}

// Result is the decoded provider status. Code and Message are set only for OutcomeError.
type Result struct {
	Outcome Outcome
	Code    string
	Message string
}

// OK reports whether the provider answered without an error.
func (r Result) OK() bool {
	return r.Outcome == OutcomeSuccess || r.Outcome == OutcomeNoResults
}

// Describe renders the error outcome as "<code> - <message>".
func (r Result) Describe() string {
	msg := r.Message
	if msg == "" {
		msg = "Unknown error"
	}
	return fmt.Sprintf("%s - %s", r.Code, msg)
}

func decodeResult(status, message string) Result {
	switch status {
	case StatusOK:
		return Result{Outcome: OutcomeSuccess}
	case StatusZeroResults:
		return Result{Outcome: OutcomeNoResults}
	default:
		if status == "" {
			status = "UNKNOWN_ERROR"
		}
		return Result{Outcome: OutcomeError, Code: status, Message: message}
	}
}
