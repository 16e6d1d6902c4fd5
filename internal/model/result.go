package model

import (
	"fmt"
	"time"
)

// Verdict classifies a claim against retrieved evidence.
// The set is closed: anything outside these six labels is rejected at parse time.
type Verdict string

const (
	VerdictVerified     Verdict = "Verified"     // Evidence directly supports the claim
	VerdictInaccurate   Verdict = "Inaccurate"   // Specific numbers, names or attributions are wrong
	VerdictFalse        Verdict = "False"        // Evidence contradicts the claim
	VerdictOutdated     Verdict = "Outdated"     // Once true, but current sources show it no longer holds
	VerdictUnverifiable Verdict = "Unverifiable" // No relevant evidence either way
	VerdictError        Verdict = "Error"        // Search or synthesis failed for this claim
)

// AllVerdicts lists every valid verdict in display order.
var AllVerdicts = []Verdict{
	VerdictVerified,
	VerdictInaccurate,
	VerdictFalse,
	VerdictOutdated,
	VerdictUnverifiable,
	VerdictError,
}

// ParseVerdict validates a verdict label against the closed set.
func ParseVerdict(s string) (Verdict, error) {
	for _, v := range AllVerdicts {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown verdict %q", s)
}

// VerificationResult associates one claim with its verdict, justification and evidence.
// Invariant: exactly one per claim per run.
type VerificationResult struct {
	Claim         Claim      `json:"claim"`
	Verdict       Verdict    `json:"verdict"`
	Justification string     `json:"justification"`
	Evidence      []Evidence `json:"evidence"`
}

// RunResult is the complete ordered output of one document's verification pass.
// Results preserve claim extraction order. Nothing survives beyond the run;
// the caller owns this value and the pipeline retains no state.
type RunResult struct {
	RunID     string               `json:"run_id"`
	Document  string               `json:"document"` // Display name of the source document
	StartedAt time.Time            `json:"started_at"`
	Duration  time.Duration        `json:"duration"`
	Results   []VerificationResult `json:"results"`
}

// Tally counts results per verdict.
func (r *RunResult) Tally() map[Verdict]int {
	tally := make(map[Verdict]int, len(AllVerdicts))
	for _, res := range r.Results {
		tally[res.Verdict]++
	}
	return tally
}
