// Package action executes document-analysis actions against document
// content through a model-invocation boundary. The dispatcher owns the
// handler registry and converts every handler failure into a structured
// error result; nothing escapes it.
package action

import "github.com/kalambet/doclens/internal/intent"

// Result is the outcome of one action execution. It is a tagged union in
// struct form: Action names the variant and exactly the payload fields for
// that variant are populated. The error variant sets Err and nothing else.
type Result struct {
	Action intent.Action `json:"action,omitempty"`

	// summarize
	Summary string `json:"result,omitempty"`

	// extract_entities
	Entities    *Entities `json:"entities,omitempty"`
	EntityTypes []string  `json:"entity_types,omitempty"`

	// answer_question
	Question string `json:"question,omitempty"`
	Answer   string `json:"answer,omitempty"`

	// compare_documents
	Analysis string `json:"analysis,omitempty"`
	Note     string `json:"note,omitempty"`

	// translate
	TargetLanguage string `json:"target_language,omitempty"`
	Translation    string `json:"translation,omitempty"`

	// classify
	Classification string `json:"classification,omitempty"`

	// extract_insights
	Insights string `json:"insights,omitempty"`

	// find_information
	SearchTerms []string `json:"search_terms,omitempty"`
	Findings    string   `json:"results,omitempty"`

	// analyze_sentiment
	SentimentAnalysis string `json:"sentiment_analysis,omitempty"`

	// extract_action_items
	ActionItems string `json:"action_items,omitempty"`

	// ask_clarification
	Message     string   `json:"message,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`

	// error variant
	Err string `json:"error,omitempty"`
}

// IsError reports whether r is the error variant.
func (r Result) IsError() bool {
	return r.Err != ""
}

// errorResult builds the error variant. It carries the error string and
// nothing else, so the JSON shape is exactly {"error": "..."}.
func errorResult(msg string) Result {
	return Result{Err: msg}
}

// Entities is the structured output of entity extraction. When the model
// response cannot be parsed as JSON, RawResponse carries the raw text and
// ParseError marks the degradation; the action itself still succeeds.
type Entities struct {
	People        []string `json:"people,omitempty"`
	Organizations []string `json:"organizations,omitempty"`
	Dates         []string `json:"dates,omitempty"`
	Locations     []string `json:"locations,omitempty"`

	RawResponse string `json:"raw_response,omitempty"`
	ParseError  string `json:"error,omitempty"`
}
