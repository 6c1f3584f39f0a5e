package collaborator

import "fmt"

func refinePrompt(promise, reason, category string) string {
	return fmt.Sprintf(`You are helping a user reframe a missed promise.

Original Promise: "%[1]s"
Reason for missing: %[2]s
Failure Category: %[3]s

Generate THREE distinct solutions to help this person succeed:

1. Conservative Solution:
- Revised promise: I promise I will ...

2. Moderate Solution:
- Revised promise: I promise I will ...

3. Progressive Solution:
- Revised promise: I promise I will ...

Rules:
- Keep the core intent of the original promise
- Be specific and actionable
- Address the %[3]s issue directly
- Write the revised promise as a single short sentence that starts with: I promise I will
- Output plain text only: no quotes, no markdown, no **__**, no code blocks
- Sound friendly and human
`, promise, reason, category)
}

func updatePrompt(promise, reason, category, solutionLabel string) string {
	return fmt.Sprintf(`You are updating a missed promise after the user picked a solution.

Original Promise: %s
Reason for missing: %s
Failure Category: %s
Selected Solution: %s

Return ONLY these 3 lines with no extra text:
Name: <short name, 2-6 words>
Promise: I promise I will <one short sentence>
Deadline: <duration like 30m, 1h 15m, or 2h>

Rules:
- Keep the core intent of the original promise
- Be specific and actionable
- Output plain text only: no quotes, no markdown, no **__**, no code blocks
- Sound friendly and human
`, promise, reason, category, solutionLabel)
}

func createPrompt(rawText string) string {
	return fmt.Sprintf(`You are helping format a new promise.

Raw input: %s

Return ONLY these 3 lines with no extra text:
Name: <short name, 2-6 words>
Type: <self|others|world>
Promise: I promise I will <one short sentence>

Rules:
- Keep the core intent of the raw input
- Promise must start with: I promise I will
- Output plain text only: no quotes, no markdown, no **__**, no code blocks
- Sound friendly and human
`, rawText)
}
