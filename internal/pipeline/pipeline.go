// Package pipeline orchestrates one document verification run:
// text extraction, claim extraction, then per-claim evidence search and
// verdict synthesis. The pipeline holds no state between runs; each call
// to Run returns a self-contained RunResult owned by the caller.
package pipeline

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/veridoc/veridoc/internal/model"
	"github.com/veridoc/veridoc/internal/search"
	"github.com/veridoc/veridoc/internal/worker"
)

// Phase is the pipeline state machine position:
// Idle → Extracting → ClaimsExtracted → Verifying → Complete.
// Failed is reachable only from Extracting: once verification starts,
// per-claim failures degrade to Verdict=Error and the run always completes.
type Phase string

const (
	PhaseIdle            Phase = "idle"
	PhaseExtracting      Phase = "extracting"
	PhaseClaimsExtracted Phase = "claims_extracted"
	PhaseVerifying       Phase = "verifying"
	PhaseComplete        Phase = "complete"
	PhaseFailed          Phase = "failed"
)

// Progress reports pipeline position to the presentation layer
type Progress struct {
	Phase    Phase
	Verified int // Claims verified so far
	Total    int // Total claims in this run
}

// ProgressFunc receives progress updates. It may be called from multiple
// goroutines when verification runs in parallel.
type ProgressFunc func(Progress)

// TextExtractor converts document bytes to plain text
type TextExtractor interface {
	Extract(data []byte) (string, error)
}

// ClaimExtractor produces an ordered claim list from document text
type ClaimExtractor interface {
	Extract(ctx context.Context, text string) ([]model.Claim, error)
}

// Synthesizer judges one claim against its evidence; never fails the run
type Synthesizer interface {
	Synthesize(ctx context.Context, claim model.Claim, evidence []model.Evidence) model.VerificationResult
}

// LinkValidator annotates evidence accessibility (optional stage)
type LinkValidator interface {
	Annotate(ctx context.Context, evidence []model.Evidence) []model.Evidence
}

// Pipeline runs the verification stages for one document at a time
type Pipeline struct {
	extractor   TextExtractor
	claims      ClaimExtractor
	searcher    search.Searcher
	synthesizer Synthesizer
	validator   LinkValidator // nil when link validation is disabled

	maxResults    int
	searchTimeout time.Duration
	claimsTimeout time.Duration
	workers       int

	onProgress ProgressFunc
}

// New creates a pipeline from its stage implementations.
// workers <= 1 processes claims sequentially in extraction order; higher
// values verify claims in parallel while results keep extraction order.
func New(extractor TextExtractor, claims ClaimExtractor, searcher search.Searcher, synthesizer Synthesizer, cfg *model.Config) *Pipeline {
	workers := cfg.Concurrency.VerifyWorkers
	if workers <= 0 {
		workers = 1
	}
	return &Pipeline{
		extractor:     extractor,
		claims:        claims,
		searcher:      searcher,
		synthesizer:   synthesizer,
		maxResults:    cfg.Search.MaxResults,
		searchTimeout: cfg.Search.Timeout,
		claimsTimeout: cfg.Extract.Timeout,
		workers:       workers,
	}
}

// WithValidator enables the evidence link validation stage
func (p *Pipeline) WithValidator(v LinkValidator) *Pipeline {
	p.validator = v
	return p
}

// WithProgress registers a progress callback
func (p *Pipeline) WithProgress(fn ProgressFunc) *Pipeline {
	p.onProgress = fn
	return p
}

// Run verifies one document. Extraction and claim extraction failures are
// fatal: no RunResult is produced. After that, every extracted claim
// appears exactly once in the result, in extraction order, even when its
// own search or synthesis failed.
func (p *Pipeline) Run(ctx context.Context, document string, data []byte) (*model.RunResult, error) {
	started := time.Now().UTC()

	p.report(Progress{Phase: PhaseExtracting})
	text, err := p.extractor.Extract(data)
	if err != nil {
		p.report(Progress{Phase: PhaseFailed})
		return nil, err
	}

	claimsCtx, cancel := context.WithTimeout(ctx, p.claimsTimeout)
	claims, err := p.claims.Extract(claimsCtx, text)
	cancel()
	if err != nil {
		p.report(Progress{Phase: PhaseFailed})
		return nil, err
	}
	p.report(Progress{Phase: PhaseClaimsExtracted, Total: len(claims)})

	run := &model.RunResult{
		RunID:     uuid.NewString(),
		Document:  document,
		StartedAt: started,
	}

	if len(claims) == 0 {
		run.Results = []model.VerificationResult{}
		run.Duration = time.Since(started)
		p.report(Progress{Phase: PhaseComplete})
		return run, nil
	}

	p.report(Progress{Phase: PhaseVerifying, Total: len(claims)})
	run.Results = p.verifyAll(ctx, claims)
	run.Duration = time.Since(started)

	p.report(Progress{Phase: PhaseComplete, Verified: len(claims), Total: len(claims)})
	return run, nil
}

// verifyAll runs search+synthesis for every claim on a bounded worker pool.
// Results land in index-addressed slots so the output order equals
// extraction order regardless of completion order.
func (p *Pipeline) verifyAll(ctx context.Context, claims []model.Claim) []model.VerificationResult {
	results := make([]model.VerificationResult, len(claims))
	var done atomic.Int64

	pool := worker.NewPool(p.workers)
	pool.Start()

	for i, claim := range claims {
		pool.Submit(&verifyJob{
			index:    i,
			claim:    claim,
			pipeline: p,
			runCtx:   ctx,
			total:    len(claims),
			done:     &done,
		})
	}

	for _, r := range pool.Wait() {
		jr := r.(*verifyJobResult)
		results[jr.index] = jr.result
	}

	return results
}

// verifyJob verifies a single claim on the worker pool
type verifyJob struct {
	index    int
	claim    model.Claim
	pipeline *Pipeline
	runCtx   context.Context
	total    int
	done     *atomic.Int64
}

type verifyJobResult struct {
	index  int
	result model.VerificationResult
}

func (r *verifyJobResult) GetError() error { return nil }

// Execute runs search then synthesis for one claim. The pool's context only
// cancels on shutdown; the run context carries the caller's deadline.
func (j *verifyJob) Execute(_ context.Context) worker.Result {
	result := j.pipeline.verifyOne(j.runCtx, j.claim)

	verified := int(j.done.Add(1))
	j.pipeline.report(Progress{Phase: PhaseVerifying, Verified: verified, Total: j.total})

	return &verifyJobResult{index: j.index, result: result}
}

// verifyOne searches for evidence and synthesizes the verdict for one claim.
// A search failure or timeout degrades this claim to Verdict=Error with
// empty evidence; it never aborts the run.
func (p *Pipeline) verifyOne(ctx context.Context, claim model.Claim) model.VerificationResult {
	query := search.FormulateQuery(claim.Text)

	searchCtx, cancel := context.WithTimeout(ctx, p.searchTimeout)
	evidence, err := p.searcher.Search(searchCtx, query, p.maxResults)
	cancel()
	if err != nil {
		searchErr := &model.SearchError{Query: query, Err: err}
		return model.VerificationResult{
			Claim:         claim,
			Verdict:       model.VerdictError,
			Justification: fmt.Sprintf("Search failed: %v", searchErr.Err),
			Evidence:      []model.Evidence{},
		}
	}
	if evidence == nil {
		evidence = []model.Evidence{}
	}

	if p.validator != nil && len(evidence) > 0 {
		evidence = p.validator.Annotate(ctx, evidence)
	}

	return p.synthesizer.Synthesize(ctx, claim, evidence)
}

func (p *Pipeline) report(progress Progress) {
	if p.onProgress != nil {
		p.onProgress(progress)
	}
}
