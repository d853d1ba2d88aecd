package action

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/kalambet/doclens/internal/intent"
)

// Defaults applied when the classifier extracted no explicit parameter.
var (
	defaultEntityTypes = []string{"PERSON", "ORGANIZATION", "DATE", "LOCATION"}
	defaultSearchTerms = []string{"key", "important", "main"}
)

const (
	defaultQuestion       = "What is this document about?"
	defaultTargetLanguage = "Spanish"
)

func (d *Dispatcher) summarize(ctx context.Context, content string, _ intent.Parameters, tier intent.Tier) (Result, error) {
	resp, err := d.generate(ctx, content, summarizePrompt(content), tier)
	if err != nil {
		return Result{}, err
	}
	return Result{Action: intent.ActionSummarize, Summary: resp}, nil
}

func (d *Dispatcher) extractEntities(ctx context.Context, content string, params intent.Parameters, tier intent.Tier) (Result, error) {
	entityTypes := params.EntityTypes
	if len(entityTypes) == 0 {
		entityTypes = defaultEntityTypes
	}

	resp, err := d.generate(ctx, content, entitiesPrompt(content, entityTypes), tier)
	if err != nil {
		return Result{}, err
	}

	entities := parseEntities(resp)
	if entities.ParseError != "" {
		d.logger.Warn("entity response was not valid JSON, returning raw text",
			"response_length", len(resp))
	}
	return Result{
		Action:      intent.ActionExtractEntities,
		Entities:    &entities,
		EntityTypes: entityTypes,
	}, nil
}

func (d *Dispatcher) answerQuestion(ctx context.Context, content string, params intent.Parameters, tier intent.Tier) (Result, error) {
	question := params.Question
	if question == "" {
		question = defaultQuestion
	}

	resp, err := d.generate(ctx, content, answerPrompt(content, question), tier)
	if err != nil {
		return Result{}, err
	}
	return Result{Action: intent.ActionAnswerQuestion, Question: question, Answer: resp}, nil
}

func (d *Dispatcher) compareDocuments(ctx context.Context, content string, _ intent.Parameters, tier intent.Tier) (Result, error) {
	resp, err := d.generate(ctx, content, comparePrompt(content), tier)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Action:   intent.ActionCompareDocuments,
		Analysis: resp,
		Note:     "Multiple document comparison requires additional documents",
	}, nil
}

// translate is always single-stage regardless of tier.
func (d *Dispatcher) translate(ctx context.Context, content string, params intent.Parameters, _ intent.Tier) (Result, error) {
	lang := params.TargetLanguage
	if lang == "" {
		lang = defaultTargetLanguage
	}

	resp, err := d.invoker.Invoke(ctx, translatePrompt(content, lang))
	if err != nil {
		return Result{}, err
	}
	return Result{Action: intent.ActionTranslate, TargetLanguage: lang, Translation: resp}, nil
}

func (d *Dispatcher) classify(ctx context.Context, content string, _ intent.Parameters, tier intent.Tier) (Result, error) {
	resp, err := d.generate(ctx, content, classifyPrompt(content), tier)
	if err != nil {
		return Result{}, err
	}
	return Result{Action: intent.ActionClassify, Classification: resp}, nil
}

func (d *Dispatcher) extractInsights(ctx context.Context, content string, _ intent.Parameters, tier intent.Tier) (Result, error) {
	resp, err := d.generate(ctx, content, insightsPrompt(content), tier)
	if err != nil {
		return Result{}, err
	}
	return Result{Action: intent.ActionExtractInsights, Insights: resp}, nil
}

func (d *Dispatcher) findInformation(ctx context.Context, content string, params intent.Parameters, tier intent.Tier) (Result, error) {
	terms := params.SearchTerms
	if len(terms) == 0 {
		terms = defaultSearchTerms
	}

	resp, err := d.generate(ctx, content, findPrompt(content, terms), tier)
	if err != nil {
		return Result{}, err
	}
	return Result{Action: intent.ActionFindInformation, SearchTerms: terms, Findings: resp}, nil
}

func (d *Dispatcher) analyzeSentiment(ctx context.Context, content string, _ intent.Parameters, tier intent.Tier) (Result, error) {
	resp, err := d.generate(ctx, content, sentimentPrompt(content), tier)
	if err != nil {
		return Result{}, err
	}
	return Result{Action: intent.ActionAnalyzeSentiment, SentimentAnalysis: resp}, nil
}

func (d *Dispatcher) extractActionItems(ctx context.Context, content string, _ intent.Parameters, tier intent.Tier) (Result, error) {
	resp, err := d.generate(ctx, content, actionItemsPrompt(content), tier)
	if err != nil {
		return Result{}, err
	}
	return Result{Action: intent.ActionExtractActionItems, ActionItems: resp}, nil
}

// askClarification is pure formatting; it never invokes the model.
func (d *Dispatcher) askClarification(_ context.Context, _ string, params intent.Parameters, _ intent.Tier) (Result, error) {
	return Result{
		Action:      intent.ActionAskClarification,
		Message:     clarificationMessage(params.Suggestions),
		Suggestions: params.Suggestions,
	}, nil
}

// parseEntities decodes the model's entity response. Models often wrap
// JSON in code fences or prose, so the first balanced object in the text
// is extracted before decoding. A response with no parseable object
// degrades to the raw-text fallback instead of failing the action.
func parseEntities(resp string) Entities {
	raw := extractJSONObject(resp)
	if raw != "" {
		var e Entities
		if err := json.Unmarshal([]byte(raw), &e); err == nil {
			return e
		}
	}
	return Entities{RawResponse: resp, ParseError: "JSON parsing failed"}
}

// extractJSONObject returns the first top-level {...} span in s, or "".
func extractJSONObject(s string) string {
	start := strings.Index(s, "{")
	if start < 0 {
		return ""
	}
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
