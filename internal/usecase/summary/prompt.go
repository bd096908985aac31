package summary

import "strings"

// closingDirective is appended to every request regardless of preset.
const closingDirective = "Provide the summary in clear, grammatically correct language. " +
	"Maintain key details, context, and logical flow. " +
	"Do not include unrelated information or filler."

// BuildPrompt combines the length instruction, the verbatim source text and
// the closing directive into the request sent to the summarization service.
func BuildPrompt(text, instruction string) string {
	var b strings.Builder
	b.Grow(len(text) + len(instruction) + len(closingDirective) + 64)
	b.WriteString("You are an expert text summarizer. ")
	b.WriteString(instruction)
	b.WriteString("\n\nOriginal Text:\n")
	b.WriteString(text)
	b.WriteString("\n\n")
	b.WriteString(closingDirective)
	return b.String()
}
