// Package intent maps free-text user queries to document-analysis actions.
// Classification is a pure function over the lowercased query text: an
// ordered rule cascade where the first matching rule wins. It never fails —
// a query no rule recognizes resolves to a clarification request.
package intent

// Action identifies one document-analysis operation.
type Action string

const (
	ActionSummarize          Action = "summarize"
	ActionExtractEntities    Action = "extract_entities"
	ActionAnswerQuestion     Action = "answer_question"
	ActionCompareDocuments   Action = "compare_documents"
	ActionTranslate          Action = "translate"
	ActionClassify           Action = "classify"
	ActionExtractInsights    Action = "extract_insights"
	ActionFindInformation    Action = "find_information"
	ActionAnalyzeSentiment   Action = "analyze_sentiment"
	ActionExtractActionItems Action = "extract_action_items"
	ActionAskClarification   Action = "ask_clarification"
)

// Actions returns every dispatchable action in a stable order.
func Actions() []Action {
	return []Action{
		ActionSummarize,
		ActionExtractEntities,
		ActionAnswerQuestion,
		ActionCompareDocuments,
		ActionTranslate,
		ActionClassify,
		ActionExtractInsights,
		ActionFindInformation,
		ActionAnalyzeSentiment,
		ActionExtractActionItems,
		ActionAskClarification,
	}
}

// Parameters carries the action-specific values extracted from a query.
// Only the fields relevant to the classified action are set; the JSON
// shape therefore contains exactly the keys the action consumes.
type Parameters struct {
	Question       string   `json:"question,omitempty"`
	EntityTypes    []string `json:"entity_types,omitempty"`
	TargetLanguage string   `json:"target_language,omitempty"`
	SearchTerms    []string `json:"search_terms,omitempty"`
	Suggestions    []string `json:"suggestions,omitempty"`
}

// Intent is the classifier's decision for a single query.
type Intent struct {
	Action               Action     `json:"action"`
	Confidence           float64    `json:"confidence"`
	Reasoning            string     `json:"reasoning"`
	Parameters           Parameters `json:"parameters"`
	RequiresMultipleDocs bool       `json:"requires_multiple_docs"`
}
