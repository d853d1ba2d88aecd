package intent

import "strings"

// rule pairs a match predicate with an Intent builder. Rules are evaluated
// in list order and the first match wins; order encodes priority, the
// predicates are not mutually exclusive. Matching is plain substring
// containment on the lowercased query — a term embedded inside a longer
// word still matches. That imprecision is part of the contract; tests pin it.
type rule struct {
	name  string
	match func(q string) bool
	build func(raw, q string) Intent
}

// ClarificationSuggestions is offered to the user when no rule matches.
var ClarificationSuggestions = []string{
	"What is this document about?",
	"Who is the author?",
	"What is the conclusion?",
	"Who are the key people mentioned?",
	"What organizations are mentioned?",
	"What are the main findings?",
	"Extract action items",
	"Summarize this document",
	"Classify document type",
	"Analyze sentiment",
}

var rules = []rule{
	{
		name:  "conclusion",
		match: containsAny("conclusion", "conclude", "concluding", "final", "ending", "summary of findings"),
		build: func(raw, q string) Intent {
			return Intent{
				Action:     ActionAnswerQuestion,
				Confidence: 0.9,
				Reasoning:  "User asking about the conclusion of the document",
				Parameters: Parameters{Question: "What is the conclusion of this document?"},
			}
		},
	},
	{
		// Must precede every people/"who" rule, otherwise "who is the
		// author" would classify as entity extraction.
		name:  "author",
		match: containsAny("author", "writer", "who wrote", "who is the author", "who created", "who is author"),
		build: func(raw, q string) Intent {
			return Intent{
				Action:     ActionAnswerQuestion,
				Confidence: 0.9,
				Reasoning:  "User asking about the author of the document",
				Parameters: Parameters{Question: "Who is the author of this document?"},
			}
		},
	},
	{
		name:  "findings",
		match: containsAny("finding", "findings", "main finding", "key finding", "result"),
		build: func(raw, q string) Intent {
			return Intent{
				Action:     ActionAnswerQuestion,
				Confidence: 0.8,
				Reasoning:  "User asking about specific findings in the document",
				Parameters: Parameters{Question: raw},
			}
		},
	},
	{
		name: "people",
		match: func(q string) bool {
			return containsAny("person", "people", "personnel", "individuals", "names")(q) &&
				!strings.Contains(q, "author")
		},
		build: buildPeopleEntities,
	},
	{
		name: "who",
		match: func(q string) bool {
			return strings.Contains(q, "who") && !strings.Contains(q, "author")
		},
		build: buildPeopleEntities,
	},
	{
		name:  "organizations",
		match: containsAny("organization", "company", "institution", "university", "college", "school"),
		build: func(raw, q string) Intent {
			return Intent{
				Action:     ActionExtractEntities,
				Confidence: 0.8,
				Reasoning:  "User asking about organizations or institutions",
				Parameters: Parameters{EntityTypes: []string{"ORGANIZATION"}},
			}
		},
	},
	{
		name:  "action items",
		match: containsAny("action item", "task", "todo", "deadline", "responsibility", "recommendation", "suggestion"),
		build: func(raw, q string) Intent {
			return Intent{
				Action:     ActionExtractActionItems,
				Confidence: 0.8,
				Reasoning:  "User wants action items and tasks",
			}
		},
	},
	{
		name:  "translation",
		match: containsAny("translate", "spanish", "french", "german", "chinese", "japanese", "language"),
		build: func(raw, q string) Intent {
			lang := targetLanguage(q)
			return Intent{
				Action:     ActionTranslate,
				Confidence: 0.9,
				Reasoning:  "User requested translation to " + lang,
				Parameters: Parameters{TargetLanguage: lang},
			}
		},
	},
	{
		name:  "classification",
		match: containsAny("classify", "type", "category", "what kind", "document type"),
		build: func(raw, q string) Intent {
			return Intent{
				Action:     ActionClassify,
				Confidence: 0.8,
				Reasoning:  "User wants to classify the document type",
			}
		},
	},
	{
		name:  "insights",
		match: containsAny("insight", "pattern", "trend", "discovery"),
		build: func(raw, q string) Intent {
			return Intent{
				Action:     ActionExtractInsights,
				Confidence: 0.8,
				Reasoning:  "User wants key insights and patterns",
			}
		},
	},
	{
		name:  "sentiment",
		match: containsAny("sentiment", "tone", "emotion", "mood", "attitude", "feeling"),
		build: func(raw, q string) Intent {
			return Intent{
				Action:     ActionAnalyzeSentiment,
				Confidence: 0.8,
				Reasoning:  "User wants sentiment analysis",
			}
		},
	},
	{
		name:  "comparison",
		match: containsAny("compare", "difference", "similar", "versus", "vs", "against"),
		build: func(raw, q string) Intent {
			return Intent{
				Action:               ActionCompareDocuments,
				Confidence:           0.7,
				Reasoning:            "User wants to compare documents",
				RequiresMultipleDocs: true,
			}
		},
	},
	{
		name:  "summarization",
		match: containsAny("summarize", "summary", "overview", "brief"),
		build: func(raw, q string) Intent {
			return Intent{
				Action:     ActionSummarize,
				Confidence: 0.8,
				Reasoning:  "User requested summarization",
			}
		},
	},
	{
		// Catch-all for questions not caught by the conclusion, author,
		// or findings rules above.
		name:  "question",
		match: containsAny("what", "how", "why", "when", "where", "which", "question"),
		build: func(raw, q string) Intent {
			return Intent{
				Action:     ActionAnswerQuestion,
				Confidence: 0.7,
				Reasoning:  "User asking a general question about the document",
				Parameters: Parameters{Question: raw},
			}
		},
	},
}

// Classify maps a raw query to an Intent by evaluating the rule cascade.
// It is deterministic and has no side effects: the same query always
// yields the same Intent.
func Classify(query string) Intent {
	q := strings.ToLower(query)
	for _, r := range rules {
		if r.match(q) {
			return r.build(query, q)
		}
	}
	// Each Intent gets its own copy so callers mutating the returned
	// parameters cannot corrupt the package-level defaults.
	suggestions := make([]string, len(ClarificationSuggestions))
	copy(suggestions, ClarificationSuggestions)
	return Intent{
		Action:     ActionAskClarification,
		Confidence: 0.3,
		Reasoning:  "User query unclear - need clarification on what they want",
		Parameters: Parameters{Suggestions: suggestions},
	}
}

func containsAny(terms ...string) func(string) bool {
	return func(q string) bool {
		for _, t := range terms {
			if strings.Contains(q, t) {
				return true
			}
		}
		return false
	}
}

func buildPeopleEntities(raw, q string) Intent {
	return Intent{
		Action:     ActionExtractEntities,
		Confidence: 0.8,
		Reasoning:  "User asking about people or individuals mentioned",
		Parameters: Parameters{EntityTypes: []string{"PERSON", "ORGANIZATION"}},
	}
}

// targetLanguage resolves the translation target from language-name
// substrings. Spanish is the default when no other language is named.
func targetLanguage(q string) string {
	switch {
	case strings.Contains(q, "french"):
		return "French"
	case strings.Contains(q, "german"):
		return "German"
	case strings.Contains(q, "chinese"):
		return "Chinese"
	case strings.Contains(q, "japanese"):
		return "Japanese"
	default:
		return "Spanish"
	}
}
