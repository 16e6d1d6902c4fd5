package model

import "fmt"

// ConfigurationError reports missing or invalid credentials/configuration.
// Always fatal and surfaced before any processing begins.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration: " + e.Reason
}

// ExtractionError reports an unreadable PDF or a PDF without a text layer.
// Fatal for the run.
type ExtractionError struct {
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extract text: %s: %v", e.Reason, e.Err)
	}
	return "extract text: " + e.Reason
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// LLMError reports a failed, timed out or unparseable model call.
// Fatal during claim extraction; downgraded to a per-claim Error verdict
// during verdict synthesis.
type LLMError struct {
	Op  string // "extract claims", "synthesize verdict"
	Err error
}

func (e *LLMError) Error() string {
	return fmt.Sprintf("llm %s: %v", e.Op, e.Err)
}

func (e *LLMError) Unwrap() error { return e.Err }

// SearchError reports a failed or timed out search provider call.
// Always local: the affected claim degrades to a per-claim Error verdict
// with empty evidence and the run continues.
type SearchError struct {
	Query string
	Err   error
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("search %q: %v", e.Query, e.Err)
}

func (e *SearchError) Unwrap() error { return e.Err }
