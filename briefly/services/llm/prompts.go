// briefly/services/llm/prompts.go
package llm

import "fmt"

// The summary format contract: a title line, a one-line subtitle, and 3-5
// bullet points each with a short bolded heading. The parser downstream is
// lenient, but these prompts keep the shape stable at temperature 0.2.
const summarySystemPrompt = `Create a clear, professional summary following this exact format:

# [Keep the original title]

SUBTITLE: [Brief description of the core message]

• [Concise heading]: [Brief explanation in 8-10 words maximum]

• [Concise heading]: [Brief explanation in 8-10 words maximum]

• [Concise heading]: [Brief explanation in 8-10 words maximum]

• [Concise heading]: [Brief explanation in 8-10 words maximum]

• [Concise heading]: [Brief explanation in 8-10 words maximum]

Guidelines:
- Keep the original title unchanged
- Subtitle should be clear and concise, on the SUBTITLE: line
- Make headings brief and impactful
- Keep explanations very concise (1-2 sentences maximum)
- Use proper sentence case and punctuation
- Maintain consistent formatting`

const editSystemPrompt = `You are a helpful AI editor. Edit the provided summary based on the user's request while maintaining the exact same format:

# [Title]
SUBTITLE: [Subtitle]
• [Point]: [Explanation]

Guidelines:
- Keep the exact same format
- Maintain bullet points and structure
- Preserve the professional tone
- Follow the user's editing request
- Keep explanations concise (1-2 sentences)`

func buildEditPrompt(summary, prompt string) string {
	return fmt.Sprintf("Here's the current summary:\n\n%s\n\nEdit request: %s", summary, prompt)
}
