package action

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/kalambet/doclens/internal/intent"
)

// fakeInvoker implements Invoker for testing. It records every prompt it
// receives and returns canned responses in order (the last one repeats).
type fakeInvoker struct {
	responses []string
	err       error
	prompts   []string
}

func (f *fakeInvoker) Invoke(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	i := len(f.prompts) - 1
	if i >= len(f.responses) {
		i = len(f.responses) - 1
	}
	if i < 0 {
		return "", nil
	}
	return f.responses[i], nil
}

func TestDispatch_UnknownAction(t *testing.T) {
	d := NewDispatcher(&fakeInvoker{})
	res := d.Dispatch(context.Background(), "launch_rockets", "doc", intent.Parameters{}, intent.TierModerate)

	if !res.IsError() {
		t.Fatalf("expected error result, got %+v", res)
	}
	if want := "Unknown action: launch_rockets"; res.Err != want {
		t.Errorf("Err = %q, want %q", res.Err, want)
	}
}

func TestDispatch_InvokerFailure(t *testing.T) {
	d := NewDispatcher(&fakeInvoker{err: errors.New("quota exceeded")})
	res := d.Dispatch(context.Background(), intent.ActionSummarize, "doc", intent.Parameters{}, intent.TierModerate)

	if !res.IsError() {
		t.Fatalf("expected error result, got %+v", res)
	}
	if !strings.HasPrefix(res.Err, "Error executing action summarize:") {
		t.Errorf("Err = %q, want prefix %q", res.Err, "Error executing action summarize:")
	}
	if !strings.Contains(res.Err, "quota exceeded") {
		t.Errorf("Err = %q, want it to carry the upstream message", res.Err)
	}
}

func TestDispatch_HandlerPanicIsContained(t *testing.T) {
	d := NewDispatcher(&fakeInvoker{})
	d.handlers[intent.ActionSummarize] = func(context.Context, string, intent.Parameters, intent.Tier) (Result, error) {
		panic("boom")
	}

	res := d.Dispatch(context.Background(), intent.ActionSummarize, "doc", intent.Parameters{}, intent.TierSimple)
	if !res.IsError() {
		t.Fatalf("expected error result, got %+v", res)
	}
	if !strings.Contains(res.Err, "boom") {
		t.Errorf("Err = %q, want it to mention the panic value", res.Err)
	}
}

func TestDispatch_Summarize(t *testing.T) {
	inv := &fakeInvoker{responses: []string{"a fine summary"}}
	d := NewDispatcher(inv)

	res := d.Dispatch(context.Background(), intent.ActionSummarize, "the document text", intent.Parameters{}, intent.TierSimple)
	if res.IsError() {
		t.Fatalf("unexpected error: %s", res.Err)
	}
	if res.Summary != "a fine summary" {
		t.Errorf("Summary = %q, want %q", res.Summary, "a fine summary")
	}
	if len(inv.prompts) != 1 {
		t.Fatalf("got %d model calls, want 1", len(inv.prompts))
	}
	if !strings.Contains(inv.prompts[0], "the document text") {
		t.Error("prompt does not embed the document content")
	}
}

func TestDispatch_ComplexTierRunsTwoStages(t *testing.T) {
	inv := &fakeInvoker{responses: []string{"working notes", "final summary"}}
	d := NewDispatcher(inv)

	res := d.Dispatch(context.Background(), intent.ActionSummarize, "doc", intent.Parameters{}, intent.TierComplex)
	if res.IsError() {
		t.Fatalf("unexpected error: %s", res.Err)
	}
	if res.Summary != "final summary" {
		t.Errorf("Summary = %q, want the second-stage response", res.Summary)
	}
	if len(inv.prompts) != 2 {
		t.Fatalf("got %d model calls, want 2", len(inv.prompts))
	}
	if !strings.Contains(inv.prompts[1], "working notes") {
		t.Error("second-stage prompt does not carry the first-stage notes")
	}
}

func TestDispatch_TranslateIsAlwaysSingleStage(t *testing.T) {
	inv := &fakeInvoker{responses: []string{"hola"}}
	d := NewDispatcher(inv)

	res := d.Dispatch(context.Background(), intent.ActionTranslate, "hello", intent.Parameters{}, intent.TierComplex)
	if res.IsError() {
		t.Fatalf("unexpected error: %s", res.Err)
	}
	if len(inv.prompts) != 1 {
		t.Fatalf("got %d model calls, want 1 even at complex tier", len(inv.prompts))
	}
	if res.TargetLanguage != "Spanish" {
		t.Errorf("TargetLanguage = %q, want default Spanish", res.TargetLanguage)
	}
	if res.Translation != "hola" {
		t.Errorf("Translation = %q, want %q", res.Translation, "hola")
	}
}

func TestDispatch_AnswerQuestionDefaults(t *testing.T) {
	inv := &fakeInvoker{responses: []string{"it is about ducks"}}
	d := NewDispatcher(inv)

	res := d.Dispatch(context.Background(), intent.ActionAnswerQuestion, "doc", intent.Parameters{}, intent.TierModerate)
	if res.Question != "What is this document about?" {
		t.Errorf("Question = %q, want the default question", res.Question)
	}
	if res.Answer != "it is about ducks" {
		t.Errorf("Answer = %q", res.Answer)
	}
}

func TestDispatch_ExtractEntities(t *testing.T) {
	inv := &fakeInvoker{responses: []string{
		`{"people":["Ada Lovelace"],"organizations":["Analytical Engines Ltd"],"dates":["1843"],"locations":["London"]}`,
	}}
	d := NewDispatcher(inv)

	res := d.Dispatch(context.Background(), intent.ActionExtractEntities, "doc", intent.Parameters{}, intent.TierSimple)
	if res.IsError() {
		t.Fatalf("unexpected error: %s", res.Err)
	}
	if res.Entities == nil {
		t.Fatal("Entities is nil")
	}
	if want := []string{"Ada Lovelace"}; !reflect.DeepEqual(res.Entities.People, want) {
		t.Errorf("People = %v, want %v", res.Entities.People, want)
	}
	if want := defaultEntityTypes; !reflect.DeepEqual(res.EntityTypes, want) {
		t.Errorf("EntityTypes = %v, want defaults %v", res.EntityTypes, want)
	}
}

func TestDispatch_ExtractEntities_FencedJSON(t *testing.T) {
	inv := &fakeInvoker{responses: []string{
		"Here you go:\n```json\n{\"people\":[\"Grace Hopper\"]}\n```",
	}}
	d := NewDispatcher(inv)

	res := d.Dispatch(context.Background(), intent.ActionExtractEntities, "doc", intent.Parameters{}, intent.TierSimple)
	if res.Entities == nil || res.Entities.ParseError != "" {
		t.Fatalf("expected parsed entities, got %+v", res.Entities)
	}
	if want := []string{"Grace Hopper"}; !reflect.DeepEqual(res.Entities.People, want) {
		t.Errorf("People = %v, want %v", res.Entities.People, want)
	}
}

func TestDispatch_ExtractEntities_ParseFallback(t *testing.T) {
	inv := &fakeInvoker{responses: []string{"The people are Alice and Bob."}}
	d := NewDispatcher(inv)

	res := d.Dispatch(context.Background(), intent.ActionExtractEntities, "doc", intent.Parameters{}, intent.TierSimple)
	if res.IsError() {
		t.Fatalf("parse failure must not fail the action: %s", res.Err)
	}
	if res.Entities == nil {
		t.Fatal("Entities is nil")
	}
	if res.Entities.RawResponse != "The people are Alice and Bob." {
		t.Errorf("RawResponse = %q, want the raw model text", res.Entities.RawResponse)
	}
	if res.Entities.ParseError == "" {
		t.Error("ParseError is empty, want a parse-failure marker")
	}
}

func TestDispatch_CompareDocumentsNote(t *testing.T) {
	inv := &fakeInvoker{responses: []string{"thematic analysis"}}
	d := NewDispatcher(inv)

	res := d.Dispatch(context.Background(), intent.ActionCompareDocuments, "doc", intent.Parameters{}, intent.TierModerate)
	if res.Analysis != "thematic analysis" {
		t.Errorf("Analysis = %q", res.Analysis)
	}
	if res.Note == "" {
		t.Error("Note is empty, want the multiple-documents caveat")
	}
}

func TestDispatch_AskClarificationSkipsModel(t *testing.T) {
	inv := &fakeInvoker{err: errors.New("must not be called")}
	d := NewDispatcher(inv)

	suggestions := []string{"Summarize this document", "Who is the author?"}
	res := d.Dispatch(context.Background(), intent.ActionAskClarification, "doc",
		intent.Parameters{Suggestions: suggestions}, intent.TierComplex)

	if res.IsError() {
		t.Fatalf("unexpected error: %s", res.Err)
	}
	if len(inv.prompts) != 0 {
		t.Errorf("clarification made %d model calls, want 0", len(inv.prompts))
	}
	if !strings.Contains(res.Message, "1. Summarize this document") {
		t.Errorf("Message does not enumerate suggestions:\n%s", res.Message)
	}
	if !reflect.DeepEqual(res.Suggestions, suggestions) {
		t.Errorf("Suggestions = %v, want %v", res.Suggestions, suggestions)
	}
}

func TestPromptTruncation(t *testing.T) {
	long := strings.Repeat("x", limitClassify+500)
	p := classifyPrompt(long)
	if strings.Contains(p, strings.Repeat("x", limitClassify+1)) {
		t.Error("classify prompt embeds content beyond the truncation limit")
	}
	if !strings.Contains(p, strings.Repeat("x", limitClassify)) {
		t.Error("classify prompt lost content under the truncation limit")
	}
}

func TestPromptTruncation_MultiByte(t *testing.T) {
	long := strings.Repeat("你", limitClassify+500)
	got := truncate(long, limitClassify)

	if !utf8.ValidString(got) {
		t.Error("truncation produced invalid UTF-8")
	}
	if n := utf8.RuneCountInString(got); n != limitClassify {
		t.Errorf("kept %d characters, want %d", n, limitClassify)
	}

	// Content at or under the limit passes through untouched.
	short := strings.Repeat("你", limitClassify)
	if truncate(short, limitClassify) != short {
		t.Error("content at the limit was modified")
	}
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"prose {\"a\":{\"b\":2}} trailing", `{"a":{"b":2}}`},
		{"no object here", ""},
		{"{unbalanced", ""},
	}
	for _, tt := range tests {
		if got := extractJSONObject(tt.in); got != tt.want {
			t.Errorf("extractJSONObject(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
