package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/veridoc/veridoc/internal/llm"
	"github.com/veridoc/veridoc/internal/model"
	"github.com/veridoc/veridoc/internal/schema"
)

// ClaimExtractor asks the model for discrete, checkable factual claims
type ClaimExtractor struct {
	provider  llm.Provider
	maxClaims int
}

// NewClaimExtractor creates a new claim extractor
func NewClaimExtractor(provider llm.Provider, maxClaims int) *ClaimExtractor {
	if maxClaims <= 0 {
		maxClaims = 25
	}
	return &ClaimExtractor{
		provider:  provider,
		maxClaims: maxClaims,
	}
}

const claimsSystemPrompt = `You are a critical fact-checking analyst with expertise in identifying verifiable claims.
Your task is to extract ONLY atomic, verifiable claims from the provided text.

FOCUS ON:
- Statistical claims with specific numbers
- Dates and temporal assertions
- Financial figures and monetary values
- Technical specifications and measurements
- Concrete factual statements about events or entities

IGNORE:
- Subjective opinions and value judgments
- Predictions or speculations
- General statements without specific data
- Contextual information without verifiable facts

Be skeptical and precise. Extract each claim as a standalone statement that can be
independently verified against external sources, with no pronouns referring outside
the claim itself. Look for claims that could be intentionally misleading, outdated,
or factually incorrect.

Respond with a single JSON object of the form:
{"claims": [{"claim_text": "...", "claim_type": "statistic|date|financial|technical|factual"}]}
Return at most %d claims, in the order they appear in the text. If the text contains
no verifiable claims, return {"claims": []}.`

// claimsPayload mirrors the schema.ClaimsSchema shape
type claimsPayload struct {
	Claims []struct {
		ClaimText string `json:"claim_text"`
		ClaimType string `json:"claim_type"`
	} `json:"claims"`
}

// Extract extracts an ordered claim list from document text.
// Any call, timeout or parse failure is a model.LLMError: the run aborts with
// zero claims rather than guessing. Repeated runs on the same document may
// yield different claim sets; that is a property of the model, not a bug.
func (e *ClaimExtractor) Extract(ctx context.Context, text string) ([]model.Claim, error) {
	resp, err := e.provider.Complete(ctx, llm.CompletionRequest{
		System:   fmt.Sprintf(claimsSystemPrompt, e.maxClaims),
		User:     "Extract all verifiable claims from this text:\n\n" + text,
		JSONOnly: true,
	})
	if err != nil {
		return nil, &model.LLMError{Op: "extract claims", Err: err}
	}

	raw := []byte(llm.FirstJSONObject(resp.Content))
	if err := schema.Validate(schema.ClaimsSchema, raw); err != nil {
		return nil, &model.LLMError{Op: "extract claims", Err: err}
	}

	var payload claimsPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, &model.LLMError{Op: "extract claims", Err: err}
	}

	claims := make([]model.Claim, 0, len(payload.Claims))
	for _, c := range payload.Claims {
		claimText := strings.TrimSpace(c.ClaimText)
		if claimText == "" {
			continue
		}
		claims = append(claims, model.Claim{
			Text:  claimText,
			Type:  model.NormalizeClaimType(c.ClaimType),
			Index: len(claims),
		})
		if len(claims) >= e.maxClaims {
			break
		}
	}

	return claims, nil
}
