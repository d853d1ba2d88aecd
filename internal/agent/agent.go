// Package agent is the top-level entry point for query processing. It
// classifies the query, estimates a complexity tier, dispatches the
// resulting action, and assembles the response envelope. The agent is the
// last failure boundary visible to callers: it never returns an error and
// never panics — every failure path yields a normally shaped, if degraded,
// envelope.
package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kalambet/doclens/internal/action"
	"github.com/kalambet/doclens/internal/intent"
)

// DocumentStore caches document content by identifier so follow-up
// requests can reference a document without resending it. Implementations
// must support concurrent insertion; reusing an id for different content
// is caller responsibility.
type DocumentStore interface {
	Put(ctx context.Context, id, content string) error
	Get(ctx context.Context, id string) (string, bool, error)
}

// Envelope is the combined response for one processed query.
type Envelope struct {
	UserQuery      string        `json:"user_query"`
	IntentAnalysis intent.Intent `json:"intent_analysis"`
	ActionResult   action.Result `json:"action_result"`
	AgentReasoning string        `json:"agent_reasoning"`
	Confidence     float64       `json:"confidence"`
	Complexity     intent.Tier   `json:"complexity,omitempty"`
}

// Agent wires the classifier, complexity estimator, dispatcher, and
// document store into the single-request processing chain.
type Agent struct {
	dispatcher *action.Dispatcher
	docs       DocumentStore
	logger     *slog.Logger
}

// New creates an Agent. docs may be nil, in which case document_id is
// ignored and nothing is cached.
func New(dispatcher *action.Dispatcher, docs DocumentStore) *Agent {
	return &Agent{
		dispatcher: dispatcher,
		docs:       docs,
		logger:     slog.Default(),
	}
}

// Process runs the full chain for one query: cache the document if an id
// was supplied, classify, estimate complexity, dispatch, assemble. When
// content is empty and documentID names a cached document, the cached
// content is used.
func (a *Agent) Process(ctx context.Context, query, content, documentID string) (env Envelope) {
	defer func() {
		if p := recover(); p != nil {
			a.logger.Error("query processing panicked", "query", query, "panic", p)
			env = degradedEnvelope(query, fmt.Errorf("%v", p))
		}
	}()

	if a.docs != nil && documentID != "" {
		switch {
		case content != "":
			if err := a.docs.Put(ctx, documentID, content); err != nil {
				// Caching is best-effort; the request still proceeds.
				a.logger.Warn("caching document failed", "document_id", documentID, "error", err)
			}
		default:
			cached, ok, err := a.docs.Get(ctx, documentID)
			if err != nil {
				a.logger.Warn("loading cached document failed", "document_id", documentID, "error", err)
			} else if ok {
				content = cached
			}
		}
	}

	it := intent.Classify(query)
	tier := intent.EstimateComplexity(query, len(content))

	a.logger.Debug("query classified",
		"action", it.Action,
		"confidence", it.Confidence,
		"complexity", tier,
		"document_length", len(content),
	)

	result := a.dispatcher.Dispatch(ctx, it.Action, content, it.Parameters, tier)
	if result.IsError() {
		a.logger.Warn("action returned error result", "action", it.Action, "error", result.Err)
	}

	return Envelope{
		UserQuery:      query,
		IntentAnalysis: it,
		ActionResult:   result,
		AgentReasoning: it.Reasoning,
		Confidence:     it.Confidence,
		Complexity:     tier,
	}
}

// degradedEnvelope is the zero-confidence envelope returned when
// processing itself fails. Its intent action is the sentinel "error",
// which is not a dispatchable action.
func degradedEnvelope(query string, err error) Envelope {
	return Envelope{
		UserQuery: query,
		IntentAnalysis: intent.Intent{
			Action:     "error",
			Confidence: 0.0,
			Reasoning:  "Error occurred",
		},
		ActionResult:   action.Result{Err: fmt.Sprintf("Processing error: %v", err)},
		AgentReasoning: fmt.Sprintf("Error occurred: %v", err),
		Confidence:     0.0,
	}
}
