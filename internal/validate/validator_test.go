package validate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/veridoc/veridoc/internal/model"
)

func noSleep(t *testing.T) {
	t.Helper()
	orig := sleepFunc
	sleepFunc = func(time.Duration) {}
	t.Cleanup(func() { sleepFunc = orig })
}

func newProbeServer(t *testing.T) (*httptest.Server, *int32) {
	t.Helper()
	var serverErrors int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/robots.txt":
			http.NotFound(w, r)
		case "/alive":
			w.WriteHeader(http.StatusOK)
		case "/gone":
			w.WriteHeader(http.StatusNotFound)
		case "/flaky":
			atomic.AddInt32(&serverErrors, 1)
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusOK)
		}
	}))
	t.Cleanup(server.Close)
	return server, &serverErrors
}

func TestValidator_AnnotatePreservesOrder(t *testing.T) {
	noSleep(t)
	server, _ := newProbeServer(t)

	v := NewValidator(5*time.Second, 4, "test-agent", nil, "", "", "")

	evidence := []model.Evidence{
		{URL: server.URL + "/alive", Rank: 0},
		{URL: server.URL + "/gone", Rank: 1},
		{URL: server.URL + "/alive", Rank: 2},
	}

	annotated := v.Annotate(context.Background(), evidence)

	if len(annotated) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(annotated))
	}
	for i, ev := range annotated {
		if ev.Rank != i {
			t.Errorf("entry %d has rank %d; order lost", i, ev.Rank)
		}
	}
	if annotated[0].Dead || annotated[2].Dead {
		t.Error("reachable links flagged dead")
	}
	if !annotated[1].Dead {
		t.Error("404 link should be flagged dead")
	}

	// The input slice must not be mutated
	for _, ev := range evidence {
		if ev.Dead {
			t.Error("Annotate mutated its input")
		}
	}
}

func TestValidator_RetriesServerErrors(t *testing.T) {
	noSleep(t)
	server, serverErrors := newProbeServer(t)

	v := NewValidator(5*time.Second, 1, "test-agent", nil, "", "", "")

	annotated := v.Annotate(context.Background(), []model.Evidence{
		{URL: server.URL + "/flaky"},
	})

	if !annotated[0].Dead {
		t.Error("persistently failing link should be flagged dead")
	}
	if got := atomic.LoadInt32(serverErrors); got != maxRetries {
		t.Errorf("expected %d probe attempts, got %d", maxRetries, got)
	}
}

func TestValidator_EmptyEvidence(t *testing.T) {
	v := NewValidator(time.Second, 2, "test-agent", nil, "", "", "")

	if got := v.Annotate(context.Background(), nil); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}
