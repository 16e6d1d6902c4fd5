package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/veridoc/veridoc/internal/model"
)

// fakeTextExtractor returns fixed text or an error
type fakeTextExtractor struct {
	text string
	err  error
}

func (f *fakeTextExtractor) Extract(_ []byte) (string, error) {
	return f.text, f.err
}

// fakeClaimExtractor returns a fixed claim list or an error
type fakeClaimExtractor struct {
	claims []model.Claim
	err    error
}

func (f *fakeClaimExtractor) Extract(_ context.Context, _ string) ([]model.Claim, error) {
	return f.claims, f.err
}

// fakeSearcher returns one evidence entry per query, optionally failing or
// stalling specific queries
type fakeSearcher struct {
	failQueries  map[string]bool
	delayQueries map[string]time.Duration
}

func (f *fakeSearcher) Name() string { return "fake" }

func (f *fakeSearcher) Search(ctx context.Context, query string, k int) ([]model.Evidence, error) {
	if d, ok := f.delayQueries[query]; ok {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.failQueries[query] {
		return nil, errors.New("provider unavailable")
	}
	return []model.Evidence{
		{Title: "result", URL: "https://example.com/" + query, Snippet: "snippet for " + query},
	}, nil
}

// fakeSynthesizer marks every claim Verified and echoes its evidence
type fakeSynthesizer struct{}

func (f *fakeSynthesizer) Synthesize(_ context.Context, claim model.Claim, evidence []model.Evidence) model.VerificationResult {
	return model.VerificationResult{
		Claim:         claim,
		Verdict:       model.VerdictVerified,
		Justification: "Source 1 confirms it.",
		Evidence:      evidence,
	}
}

// progressRecorder collects progress updates safely across goroutines
type progressRecorder struct {
	mu     sync.Mutex
	phases []Phase
}

func (r *progressRecorder) record(p Progress) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.phases) == 0 || r.phases[len(r.phases)-1] != p.Phase {
		r.phases = append(r.phases, p.Phase)
	}
}

func numericClaims(n int) []model.Claim {
	claims := make([]model.Claim, n)
	for i := range claims {
		// Numeric text keeps query formulation verbatim so each claim maps
		// to a distinct query
		claims[i] = model.Claim{Text: fmt.Sprintf("value %d is 42", i), Index: i}
	}
	return claims
}

func testConfig(workers int) *model.Config {
	cfg := model.DefaultConfig()
	cfg.Concurrency.VerifyWorkers = workers
	cfg.Cache.Enabled = false
	return cfg
}

func newTestPipeline(claims []model.Claim, searcher *fakeSearcher, workers int) *Pipeline {
	return New(
		&fakeTextExtractor{text: "document text"},
		&fakeClaimExtractor{claims: claims},
		searcher,
		&fakeSynthesizer{},
		testConfig(workers),
	)
}

func TestRun_OrderPreservedUnderParallelism(t *testing.T) {
	claims := numericClaims(8)

	// Stall the first claims so completion order inverts extraction order
	delays := make(map[string]time.Duration)
	for i := 0; i < 4; i++ {
		delays[claims[i].Text] = time.Duration(4-i) * 20 * time.Millisecond
	}

	p := newTestPipeline(claims, &fakeSearcher{delayQueries: delays}, 4)

	run, err := p.Run(context.Background(), "doc.pdf", []byte("pdf"))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(run.Results) != len(claims) {
		t.Fatalf("expected %d results, got %d", len(claims), len(run.Results))
	}
	for i, res := range run.Results {
		if res.Claim.Index != i {
			t.Errorf("result %d carries claim index %d; extraction order lost", i, res.Claim.Index)
		}
		if res.Claim.Text != claims[i].Text {
			t.Errorf("result %d carries wrong claim text %q", i, res.Claim.Text)
		}
	}
}

func TestRun_ManyClaimsFewWorkers(t *testing.T) {
	// The default claim cap is well past the worker pool's channel capacity;
	// a full-size document must still finish with every claim accounted for.
	claims := numericClaims(25)
	p := newTestPipeline(claims, &fakeSearcher{}, 4)

	type outcome struct {
		run *model.RunResult
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		run, err := p.Run(context.Background(), "doc.pdf", []byte("pdf"))
		done <- outcome{run, err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			t.Fatalf("Run failed: %v", out.err)
		}
		if len(out.run.Results) != len(claims) {
			t.Fatalf("expected %d results, got %d", len(claims), len(out.run.Results))
		}
		for i, res := range out.run.Results {
			if res.Claim.Index != i {
				t.Errorf("result %d carries claim index %d", i, res.Claim.Index)
			}
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not finish with 25 claims / 4 workers")
	}
}

func TestRun_SearchFailureDegradesOneClaim(t *testing.T) {
	claims := numericClaims(5)
	searcher := &fakeSearcher{failQueries: map[string]bool{claims[2].Text: true}}

	p := newTestPipeline(claims, searcher, 3)

	run, err := p.Run(context.Background(), "doc.pdf", []byte("pdf"))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(run.Results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(run.Results))
	}
	for i, res := range run.Results {
		if i == 2 {
			if res.Verdict != model.VerdictError {
				t.Errorf("failed claim should carry Error verdict, got %s", res.Verdict)
			}
			if res.Evidence == nil || len(res.Evidence) != 0 {
				t.Errorf("failed claim should carry empty evidence, got %v", res.Evidence)
			}
			continue
		}
		if res.Verdict != model.VerdictVerified {
			t.Errorf("claim %d should be unaffected, got %s", i, res.Verdict)
		}
	}
}

func TestRun_SearchTimeoutDegradesOneClaim(t *testing.T) {
	claims := numericClaims(5)
	searcher := &fakeSearcher{
		delayQueries: map[string]time.Duration{claims[3].Text: time.Minute},
	}

	cfg := testConfig(2)
	cfg.Search.Timeout = 50 * time.Millisecond

	p := New(
		&fakeTextExtractor{text: "document text"},
		&fakeClaimExtractor{claims: claims},
		searcher,
		&fakeSynthesizer{},
		cfg,
	)

	run, err := p.Run(context.Background(), "doc.pdf", []byte("pdf"))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if run.Results[3].Verdict != model.VerdictError {
		t.Errorf("timed-out claim should carry Error verdict, got %s", run.Results[3].Verdict)
	}
	for _, i := range []int{0, 1, 2, 4} {
		if run.Results[i].Verdict != model.VerdictVerified {
			t.Errorf("claim %d should be unaffected, got %s", i, run.Results[i].Verdict)
		}
	}
}

func TestRun_TextExtractionFailureIsFatal(t *testing.T) {
	extractErr := &model.ExtractionError{Reason: "no extractable text layer"}
	p := New(
		&fakeTextExtractor{err: extractErr},
		&fakeClaimExtractor{},
		&fakeSearcher{},
		&fakeSynthesizer{},
		testConfig(2),
	)

	recorder := &progressRecorder{}
	p.WithProgress(recorder.record)

	run, err := p.Run(context.Background(), "doc.pdf", []byte("not a pdf"))
	if run != nil {
		t.Error("no RunResult should be produced on fatal extraction failure")
	}
	var ee *model.ExtractionError
	if !errors.As(err, &ee) {
		t.Fatalf("expected ExtractionError, got %T: %v", err, err)
	}
	if got := recorder.phases[len(recorder.phases)-1]; got != PhaseFailed {
		t.Errorf("expected terminal phase failed, got %s", got)
	}
}

func TestRun_ClaimExtractionFailureIsFatal(t *testing.T) {
	llmErr := &model.LLMError{Op: "extract claims", Err: errors.New("timeout")}
	p := New(
		&fakeTextExtractor{text: "document text"},
		&fakeClaimExtractor{err: llmErr},
		&fakeSearcher{},
		&fakeSynthesizer{},
		testConfig(2),
	)

	run, err := p.Run(context.Background(), "doc.pdf", []byte("pdf"))
	if run != nil {
		t.Error("no RunResult should be produced on fatal claim extraction failure")
	}
	var le *model.LLMError
	if !errors.As(err, &le) {
		t.Fatalf("expected LLMError, got %T: %v", err, err)
	}
}

func TestRun_NoClaimsCompletesEmpty(t *testing.T) {
	p := newTestPipeline(nil, &fakeSearcher{}, 2)

	recorder := &progressRecorder{}
	p.WithProgress(recorder.record)

	run, err := p.Run(context.Background(), "doc.pdf", []byte("pdf"))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if run.Results == nil || len(run.Results) != 0 {
		t.Errorf("expected empty result table, got %v", run.Results)
	}
	if run.RunID == "" {
		t.Error("expected a run ID")
	}
	if got := recorder.phases[len(recorder.phases)-1]; got != PhaseComplete {
		t.Errorf("expected terminal phase complete, got %s", got)
	}
}

func TestRun_PhaseSequence(t *testing.T) {
	p := newTestPipeline(numericClaims(2), &fakeSearcher{}, 1)

	recorder := &progressRecorder{}
	p.WithProgress(recorder.record)

	if _, err := p.Run(context.Background(), "doc.pdf", []byte("pdf")); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	want := []Phase{PhaseExtracting, PhaseClaimsExtracted, PhaseVerifying, PhaseComplete}
	if len(recorder.phases) != len(want) {
		t.Fatalf("expected phases %v, got %v", want, recorder.phases)
	}
	for i, phase := range want {
		if recorder.phases[i] != phase {
			t.Fatalf("expected phases %v, got %v", want, recorder.phases)
		}
	}
}

func TestRun_SequentialMatchesParallel(t *testing.T) {
	claims := numericClaims(6)
	failing := map[string]bool{claims[1].Text: true, claims[4].Text: true}

	runWith := func(workers int) *model.RunResult {
		p := newTestPipeline(claims, &fakeSearcher{failQueries: failing}, workers)
		run, err := p.Run(context.Background(), "doc.pdf", []byte("pdf"))
		if err != nil {
			t.Fatalf("Run with %d workers failed: %v", workers, err)
		}
		return run
	}

	sequential := runWith(1)
	parallel := runWith(4)

	for i := range sequential.Results {
		if sequential.Results[i].Verdict != parallel.Results[i].Verdict {
			t.Errorf("claim %d: sequential %s vs parallel %s",
				i, sequential.Results[i].Verdict, parallel.Results[i].Verdict)
		}
		if sequential.Results[i].Claim.Text != parallel.Results[i].Claim.Text {
			t.Errorf("claim %d text diverged between worker counts", i)
		}
	}
}
