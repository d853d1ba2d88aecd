package action

import "github.com/kalambet/doclens/internal/intent"

// Capability describes one action for the capabilities catalog exposed
// over the API, CLI, and MCP surfaces.
type Capability struct {
	Action      intent.Action `json:"action"`
	Description string        `json:"description"`
	Examples    []string      `json:"examples"`
}

// Capabilities returns the catalog of supported actions with example queries.
func Capabilities() []Capability {
	return []Capability{
		{
			Action:      intent.ActionSummarize,
			Description: "Create a structured summary of the document",
			Examples:    []string{"Summarize this document", "Give me a brief overview"},
		},
		{
			Action:      intent.ActionExtractEntities,
			Description: "Extract people, organizations, dates, and locations",
			Examples:    []string{"Who are the key people mentioned?", "What organizations are mentioned?"},
		},
		{
			Action:      intent.ActionAnswerQuestion,
			Description: "Answer a specific question about the document",
			Examples:    []string{"What is the conclusion?", "Who is the author?"},
		},
		{
			Action:      intent.ActionCompareDocuments,
			Description: "Analyze the document for comparison with others",
			Examples:    []string{"Compare this against the previous report"},
		},
		{
			Action:      intent.ActionTranslate,
			Description: "Translate the document (Spanish, French, German, Chinese, Japanese)",
			Examples:    []string{"Translate to French"},
		},
		{
			Action:      intent.ActionClassify,
			Description: "Classify the document into a fixed category list",
			Examples:    []string{"What kind of document is this?"},
		},
		{
			Action:      intent.ActionExtractInsights,
			Description: "Extract key findings, trends, and recommendations",
			Examples:    []string{"What patterns emerge from this document?"},
		},
		{
			Action:      intent.ActionFindInformation,
			Description: "Find excerpts related to specific search terms",
			Examples:    []string{"Find information about the budget"},
		},
		{
			Action:      intent.ActionAnalyzeSentiment,
			Description: "Analyze sentiment, tone, and writing style",
			Examples:    []string{"What is the overall tone?"},
		},
		{
			Action:      intent.ActionExtractActionItems,
			Description: "Extract action items, tasks, deadlines, and owners",
			Examples:    []string{"Extract action items"},
		},
	}
}
