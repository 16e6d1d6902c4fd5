package model

// Claim represents an atomic, verifiable factual assertion extracted from a document
type Claim struct {
	Text  string    `json:"text"`           // The claim text itself, self-contained
	Type  ClaimType `json:"type,omitempty"` // Category assigned by the extractor
	Index int       `json:"index"`          // Extraction order (0-based), stable for display
}

// ClaimType categorizes the nature of the claim
type ClaimType string

const (
	ClaimTypeStatistic ClaimType = "statistic" // Claims with specific numbers
	ClaimTypeDate      ClaimType = "date"      // Dates and temporal assertions
	ClaimTypeFinancial ClaimType = "financial" // Monetary values and financial figures
	ClaimTypeTechnical ClaimType = "technical" // Technical specifications and measurements
	ClaimTypeFactual   ClaimType = "factual"   // Concrete statements about events or entities
)

// NormalizeClaimType maps free-form extractor output onto the known categories.
// Anything unrecognized falls back to factual rather than carrying an open-ended string.
func NormalizeClaimType(s string) ClaimType {
	switch ClaimType(s) {
	case ClaimTypeStatistic, ClaimTypeDate, ClaimTypeFinancial, ClaimTypeTechnical, ClaimTypeFactual:
		return ClaimType(s)
	default:
		return ClaimTypeFactual
	}
}
