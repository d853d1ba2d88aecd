package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kalambet/doclens/internal/action"
	"github.com/kalambet/doclens/internal/intent"
	"github.com/kalambet/doclens/internal/storage"
)

// fakeInvoker returns a fixed response for every prompt.
type fakeInvoker struct {
	response string
	err      error
	calls    int
}

func (f *fakeInvoker) Invoke(ctx context.Context, prompt string) (string, error) {
	f.calls++
	return f.response, f.err
}

func newTestAgent(inv action.Invoker, docs DocumentStore) *Agent {
	return New(action.NewDispatcher(inv), docs)
}

func TestProcess_AssemblesEnvelope(t *testing.T) {
	a := newTestAgent(&fakeInvoker{response: "a summary"}, nil)

	env := a.Process(context.Background(), "Summarize this document", "short doc", "")

	if env.UserQuery != "Summarize this document" {
		t.Errorf("UserQuery = %q", env.UserQuery)
	}
	if env.IntentAnalysis.Action != intent.ActionSummarize {
		t.Errorf("Action = %q, want summarize", env.IntentAnalysis.Action)
	}
	if env.ActionResult.Summary != "a summary" {
		t.Errorf("Summary = %q", env.ActionResult.Summary)
	}
	if env.Confidence != 0.8 {
		t.Errorf("Confidence = %v, want 0.8", env.Confidence)
	}
	if env.AgentReasoning != env.IntentAnalysis.Reasoning {
		t.Error("AgentReasoning does not mirror the intent reasoning")
	}
	if env.Complexity != intent.TierSimple {
		t.Errorf("Complexity = %q, want simple", env.Complexity)
	}
}

func TestProcess_ModelFailureYieldsErrorResult(t *testing.T) {
	a := newTestAgent(&fakeInvoker{err: errors.New("backend down")}, nil)

	env := a.Process(context.Background(), "Summarize this document", "doc", "")

	if !env.ActionResult.IsError() {
		t.Fatalf("expected error result, got %+v", env.ActionResult)
	}
	if !strings.Contains(env.ActionResult.Err, "backend down") {
		t.Errorf("Err = %q, want upstream message", env.ActionResult.Err)
	}
	// The envelope itself is still well formed.
	if env.IntentAnalysis.Action != intent.ActionSummarize {
		t.Errorf("Action = %q, want summarize", env.IntentAnalysis.Action)
	}
	if env.Confidence != 0.8 {
		t.Errorf("Confidence = %v, want the intent confidence", env.Confidence)
	}
}

func TestProcess_CachesDocumentByID(t *testing.T) {
	docs := storage.NewMemoryStore(8)
	a := newTestAgent(&fakeInvoker{response: "ok"}, docs)

	a.Process(context.Background(), "Summarize this document", "the content", "doc-9")

	content, ok, err := docs.Get(context.Background(), "doc-9")
	if err != nil || !ok {
		t.Fatalf("document not cached: ok=%v err=%v", ok, err)
	}
	if content != "the content" {
		t.Errorf("cached content = %q", content)
	}
}

func TestProcess_LoadsCachedDocument(t *testing.T) {
	docs := storage.NewMemoryStore(8)
	docs.Put(context.Background(), "doc-1", "cached body text")

	inv := &capturingInvoker{response: "answer"}
	a := New(action.NewDispatcher(inv), docs)

	env := a.Process(context.Background(), "What is this about?", "", "doc-1")

	if env.ActionResult.IsError() {
		t.Fatalf("unexpected error: %s", env.ActionResult.Err)
	}
	if !strings.Contains(inv.lastPrompt, "cached body text") {
		t.Error("prompt does not embed the cached document content")
	}
}

// capturingInvoker records the last prompt.
type capturingInvoker struct {
	response   string
	lastPrompt string
}

func (c *capturingInvoker) Invoke(ctx context.Context, prompt string) (string, error) {
	c.lastPrompt = prompt
	return c.response, nil
}

// failingStore always errors.
type failingStore struct{}

func (failingStore) Put(context.Context, string, string) error { return errors.New("disk full") }
func (failingStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk full")
}

func TestProcess_StoreFailureIsNonFatal(t *testing.T) {
	a := newTestAgent(&fakeInvoker{response: "summary"}, failingStore{})

	env := a.Process(context.Background(), "Summarize this document", "doc", "id-1")
	if env.ActionResult.IsError() {
		t.Errorf("store failure degraded the request: %s", env.ActionResult.Err)
	}
}

func TestProcess_PanicYieldsDegradedEnvelope(t *testing.T) {
	// A panicking store escapes the dispatcher boundary and must be
	// absorbed by the orchestrator boundary.
	a := newTestAgent(&fakeInvoker{response: "x"}, panickingStore{})

	env := a.Process(context.Background(), "Summarize this document", "doc", "id")

	if env.IntentAnalysis.Action != "error" {
		t.Errorf("Action = %q, want \"error\"", env.IntentAnalysis.Action)
	}
	if env.Confidence != 0.0 {
		t.Errorf("Confidence = %v, want 0.0", env.Confidence)
	}
	if !strings.HasPrefix(env.ActionResult.Err, "Processing error:") {
		t.Errorf("Err = %q, want Processing error prefix", env.ActionResult.Err)
	}
	if env.UserQuery != "Summarize this document" {
		t.Errorf("UserQuery = %q, want the original query preserved", env.UserQuery)
	}
}

type panickingStore struct{}

func (panickingStore) Put(context.Context, string, string) error { panic("store corrupted") }
func (panickingStore) Get(context.Context, string) (string, bool, error) {
	panic("store corrupted")
}

func TestProcess_UnknownQueryAsksClarification(t *testing.T) {
	inv := &fakeInvoker{response: "never used"}
	a := newTestAgent(inv, nil)

	env := a.Process(context.Background(), "xyzzy blorp", "doc", "")

	if env.IntentAnalysis.Action != intent.ActionAskClarification {
		t.Fatalf("Action = %q, want ask_clarification", env.IntentAnalysis.Action)
	}
	if inv.calls != 0 {
		t.Errorf("clarification made %d model calls, want 0", inv.calls)
	}
	if env.ActionResult.Message == "" {
		t.Error("clarification message is empty")
	}
}
