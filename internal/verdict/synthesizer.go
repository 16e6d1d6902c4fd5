// Package verdict judges claims against retrieved evidence.
package verdict

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/veridoc/veridoc/internal/llm"
	"github.com/veridoc/veridoc/internal/model"
	"github.com/veridoc/veridoc/internal/schema"
	"github.com/veridoc/veridoc/internal/util"
)

// Where the verdict boundaries lie (Inaccurate vs False vs Outdated) is
// delegated entirely to the model's reasoning, constrained only by the
// closed label set and the rubric below. That is inherently
// non-deterministic and an accepted limitation.

const synthesisSystemPrompt = `You are a skeptical fact-checker analyzing claims against evidence.

STRICT VERIFICATION RULES:
1. If numbers in the claim do NOT match the sources, the verdict is "Inaccurate"
2. If the claim's data is outdated (the claim cites an old period but sources show newer data), the verdict is "Outdated"
3. If the claim contradicts the evidence, the verdict is "False"
4. Only use "Verified" if evidence directly supports the claim with matching data
5. If none of the sources are relevant to the claim, the verdict is "Unverifiable"
6. Look for intentional deception, cherry-picked statistics, or misleading context

Respond with a single JSON object:
{"verdict": "Verified|Inaccurate|Outdated|False|Unverifiable", "justification": "..."}
The justification must be one or two sentences and must name which source
(e.g. "Source 2") drove the verdict.`

// maxPromptSources bounds how many evidence snippets reach the model
const maxPromptSources = 3

// maxJustificationLen bounds the stored justification text
const maxJustificationLen = 300

// Synthesizer produces one VerificationResult per claim
type Synthesizer struct {
	provider llm.Provider
}

// NewSynthesizer creates a new verdict synthesizer
func NewSynthesizer(provider llm.Provider) *Synthesizer {
	return &Synthesizer{provider: provider}
}

type verdictPayload struct {
	Verdict       string `json:"verdict"`
	Justification string `json:"justification"`
}

// Synthesize judges one claim against its evidence. It never fails the run:
// model errors, timeouts and malformed output all collapse into a
// VerificationResult with Verdict=Error for this claim only.
func (s *Synthesizer) Synthesize(ctx context.Context, claim model.Claim, evidence []model.Evidence) model.VerificationResult {
	result := model.VerificationResult{
		Claim:    claim,
		Evidence: evidence,
	}

	// No evidence means nothing to judge against; skip the model call.
	if len(evidence) == 0 {
		result.Verdict = model.VerdictUnverifiable
		result.Justification = "Unable to find relevant sources to verify this claim."
		return result
	}

	resp, err := s.provider.Complete(ctx, llm.CompletionRequest{
		System:   synthesisSystemPrompt,
		User:     buildEvidencePrompt(claim, evidence),
		JSONOnly: true,
	})
	if err != nil {
		return errorResult(result, &model.LLMError{Op: "synthesize verdict", Err: err})
	}

	raw := []byte(llm.FirstJSONObject(resp.Content))
	if err := schema.Validate(schema.VerdictSchema, raw); err != nil {
		return errorResult(result, &model.LLMError{Op: "synthesize verdict", Err: err})
	}

	var payload verdictPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return errorResult(result, &model.LLMError{Op: "synthesize verdict", Err: err})
	}

	verdict, err := model.ParseVerdict(payload.Verdict)
	if err != nil {
		return errorResult(result, &model.LLMError{Op: "synthesize verdict", Err: err})
	}

	result.Verdict = verdict
	result.Justification = truncate(strings.TrimSpace(payload.Justification), maxJustificationLen)
	return result
}

// buildEvidencePrompt renders the claim and its top evidence as numbered sources
func buildEvidencePrompt(claim model.Claim, evidence []model.Evidence) string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Claim: %s\n\nEvidence from search results:\n", claim.Text)

	n := 0
	for _, ev := range evidence {
		if ev.Dead {
			continue
		}
		n++
		fmt.Fprintf(&buf, "\nSource %d (%s): %s\n", n, ev.URL, ev.Snippet)
		if n >= maxPromptSources {
			break
		}
	}
	if n == 0 {
		// Every link failed validation; still let the model see the snippets
		// rather than silently judging against nothing.
		for i, ev := range evidence {
			if i >= maxPromptSources {
				break
			}
			fmt.Fprintf(&buf, "\nSource %d (%s): %s\n", i+1, ev.URL, ev.Snippet)
		}
	}

	buf.WriteString("\nProvide verdict and justification:")
	return buf.String()
}

func errorResult(result model.VerificationResult, err error) model.VerificationResult {
	result.Verdict = model.VerdictError
	result.Justification = truncate("Verification failed: "+err.Error(), maxJustificationLen)
	return result
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.TrimSpace(util.TruncateUTF8(s, n))
}
