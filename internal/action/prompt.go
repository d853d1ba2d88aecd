package action

import (
	"fmt"
	"strings"
)

// Per-action truncation limits, in characters. Document content beyond the
// limit is not sent to the model; truncation is silent.
const (
	limitSummarize   = 8000
	limitEntities    = 6000
	limitAnswer      = 8000
	limitCompare     = 6000
	limitTranslate   = 6000
	limitClassify    = 4000
	limitInsights    = 8000
	limitFind        = 8000
	limitSentiment   = 6000
	limitActionItems = 8000
)

// truncate returns at most n characters of s. Limits count characters,
// not bytes, so multi-byte text keeps its full contracted prefix and the
// cut never lands inside a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func summarizePrompt(content string) string {
	return fmt.Sprintf(`Create a comprehensive summary of the following document. Include:
1. Main topic and purpose
2. Key points and findings
3. Important conclusions
4. Any recommendations or action items

Document:
%s

Provide the summary in a structured format.`, truncate(content, limitSummarize))
}

func entitiesPrompt(content string, entityTypes []string) string {
	return fmt.Sprintf(`You are an expert entity extraction specialist. Extract the following types of entities from the document with high accuracy.

IMPORTANT INSTRUCTIONS:
1. Extract ONLY entities that are clearly mentioned in the document
2. For people: Include full names, titles, and affiliations when available
3. For organizations: Include full organization names and any relevant details
4. For dates: Include specific dates, years, time periods mentioned
5. For locations: Include cities, countries, institutions, addresses mentioned
6. Be precise and avoid duplicates
7. If no entities of a type are found, return an empty list

Entity types to extract: %s

Document Content:
%s

Return the results in this exact JSON format:
{
    "people": ["Full Name 1", "Full Name 2"],
    "organizations": ["Organization Name 1", "Organization Name 2"],
    "dates": ["Date 1", "Date 2"],
    "locations": ["Location 1", "Location 2"]
}

Ensure the JSON is valid and properly formatted.`, strings.Join(entityTypes, ", "), truncate(content, limitEntities))
}

func answerPrompt(content, question string) string {
	return fmt.Sprintf(`You are an expert document analyst. Answer the following question about the document with high accuracy and detail.

IMPORTANT INSTRUCTIONS:
1. Answer ONLY based on the information present in the document
2. If the information is not in the document, clearly state "This information is not mentioned in the document"
3. Be specific and provide exact details when available
4. For author questions, provide the exact name and affiliation
5. For conclusion questions, provide the actual conclusion from the document
6. Use direct quotes from the document when appropriate
7. Structure your answer clearly and logically
8. Keep answers concise and focused on what was asked

Question: %s

Document Content:
%s

Provide a focused, accurate answer based solely on the document content. Do not include extra information.`, question, truncate(content, limitAnswer))
}

func comparePrompt(content string) string {
	return fmt.Sprintf(`Analyze this document and provide insights about:
1. Document type and purpose
2. Key themes and topics
3. Writing style and tone
4. Potential areas for comparison with other documents

Document:
%s`, truncate(content, limitCompare))
}

func translatePrompt(content, targetLanguage string) string {
	return fmt.Sprintf(`Translate the following document to %s. Maintain the original meaning and tone.

Document:
%s

Provide the translation in %s.`, targetLanguage, truncate(content, limitTranslate), targetLanguage)
}

func classifyPrompt(content string) string {
	return fmt.Sprintf(`Classify this document into one of the following categories:
- Business Report
- Legal Document
- Academic Paper
- News Article
- Technical Manual
- Financial Statement
- Meeting Minutes
- Policy Document
- Research Paper
- Other

Document:
%s

Provide the classification and confidence level.`, truncate(content, limitClassify))
}

func insightsPrompt(content string) string {
	return fmt.Sprintf(`Extract key insights from this document:

Document:
%s

Provide insights in these categories:
1. Key Findings
2. Important Trends
3. Critical Issues
4. Recommendations
5. Implications`, truncate(content, limitInsights))
}

func findPrompt(content string, searchTerms []string) string {
	return fmt.Sprintf(`Find information related to these terms in the document:
%s

Document:
%s

Provide relevant excerpts and context for each term.`, strings.Join(searchTerms, ", "), truncate(content, limitFind))
}

func sentimentPrompt(content string) string {
	return fmt.Sprintf(`Analyze the sentiment and tone of this document:

Document:
%s

Provide analysis of:
1. Overall sentiment (positive/negative/neutral)
2. Tone (formal/informal, objective/subjective)
3. Emotional content
4. Writing style`, truncate(content, limitSentiment))
}

func actionItemsPrompt(content string) string {
	return fmt.Sprintf(`Extract action items, tasks, deadlines, and responsibilities from this document:

Document:
%s

Identify:
1. Action items and tasks
2. Deadlines and due dates
3. Responsible parties
4. Priority levels
5. Dependencies`, truncate(content, limitActionItems))
}

// analysisPrompt is the first stage of the two-stage pipeline used for
// complex requests: a coordinator pass that produces working notes the
// final pass refines.
func analysisPrompt(content string) string {
	return fmt.Sprintf(`You are a document analysis coordinator. Read the document and produce concise working notes covering:
1. Document type and structure
2. Main topics and their locations in the text
3. Key facts, names, and figures
4. Anything ambiguous or noteworthy

Document:
%s

Keep the notes brief and factual.`, truncate(content, limitSummarize))
}

// refinePrompt wraps a task prompt with first-stage notes for the final pass.
func refinePrompt(taskPrompt, notes string) string {
	return fmt.Sprintf(`A coordinator reviewed the document and produced these working notes:

%s

Using the notes where helpful, complete the following task.

%s`, notes, taskPrompt)
}

func clarificationMessage(suggestions []string) string {
	var sb strings.Builder
	sb.WriteString("I'm not sure what you'd like me to do with this document. Here are some common questions you can ask:\n\n")
	for i, s := range suggestions {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, s)
	}
	sb.WriteString(`
You can also ask me to:
- Translate the document to another language
- Extract specific information
- Compare with other documents
- Find patterns or insights

Just tell me what you're looking for, and I'll help you find it!
`)
	return sb.String()
}
