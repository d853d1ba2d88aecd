package action

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kalambet/doclens/internal/intent"
)

// Invoker sends a composed instruction to a text-generation backend and
// returns the raw response text. Implementations live in internal/engine;
// tests substitute deterministic fakes.
type Invoker interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}

// Handler executes one action against document content.
type Handler func(ctx context.Context, content string, params intent.Parameters, tier intent.Tier) (Result, error)

// Dispatcher routes actions to their registered handlers and normalizes
// every failure into an error Result. Exactly one handler is registered
// per action.
type Dispatcher struct {
	invoker  Invoker
	handlers map[intent.Action]Handler
	logger   *slog.Logger
}

// NewDispatcher creates a Dispatcher with all action handlers registered
// against the given invoker.
func NewDispatcher(invoker Invoker) *Dispatcher {
	d := &Dispatcher{
		invoker: invoker,
		logger:  slog.Default(),
	}
	d.handlers = map[intent.Action]Handler{
		intent.ActionSummarize:          d.summarize,
		intent.ActionExtractEntities:    d.extractEntities,
		intent.ActionAnswerQuestion:     d.answerQuestion,
		intent.ActionCompareDocuments:   d.compareDocuments,
		intent.ActionTranslate:          d.translate,
		intent.ActionClassify:           d.classify,
		intent.ActionExtractInsights:    d.extractInsights,
		intent.ActionFindInformation:    d.findInformation,
		intent.ActionAnalyzeSentiment:   d.analyzeSentiment,
		intent.ActionExtractActionItems: d.extractActionItems,
		intent.ActionAskClarification:   d.askClarification,
	}
	return d
}

// Dispatch looks up the handler for action and runs it inside the failure
// boundary. An unregistered action or a failing handler yields an error
// Result; Dispatch itself never returns an error and never panics.
func (d *Dispatcher) Dispatch(ctx context.Context, action intent.Action, content string, params intent.Parameters, tier intent.Tier) Result {
	h, ok := d.handlers[action]
	if !ok {
		return errorResult(fmt.Sprintf("Unknown action: %s", action))
	}

	res, err := d.runSafely(ctx, h, content, params, tier)
	if err != nil {
		d.logger.Warn("action execution failed", "action", action, "error", err)
		return errorResult(fmt.Sprintf("Error executing action %s: %v", action, err))
	}
	return res
}

// runSafely converts a handler panic into an error so the boundary holds
// even against programming mistakes in a handler.
func (d *Dispatcher) runSafely(ctx context.Context, h Handler, content string, params intent.Parameters, tier intent.Tier) (res Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("handler panic: %v", p)
		}
	}()
	return h(ctx, content, params, tier)
}

// generate performs the model invocation for a handler. Complex-tier
// requests run two stages: an analysis pass over the document whose notes
// are fed into the task prompt. All other tiers run the task prompt alone.
func (d *Dispatcher) generate(ctx context.Context, content, taskPrompt string, tier intent.Tier) (string, error) {
	if tier == intent.TierComplex {
		notes, err := d.invoker.Invoke(ctx, analysisPrompt(content))
		if err != nil {
			return "", err
		}
		taskPrompt = refinePrompt(taskPrompt, notes)
	}
	return d.invoker.Invoke(ctx, taskPrompt)
}
