package openai

import (
	"fmt"
	"strings"

	"ragserve/internal/core/domain"
)

// notFoundToken is the exact reply the system prompt demands when the
// retrieved context does not contain the answer. The use case maps it to
// Answer.Found=false so callers never have to string-match English prose.
const notFoundToken = "NOT_IN_CONTEXT"

const answerSystemPrompt = `You are a helpful assistant. Answer the user's question based ONLY on the provided context.
If the context doesn't contain the answer, reply with exactly ` + notFoundToken + ` and nothing else. Be concise and accurate.`

const contextSeparator = "\n\n---\n\n"

func buildAnswerPrompt(question string, chunks []domain.RetrievedChunk) string {
	parts := make([]string, len(chunks))
	for i, hit := range chunks {
		parts[i] = hit.Chunk.Text
	}

	return fmt.Sprintf(`Context from the document:

%s

---

Question: %s

Answer:`, strings.Join(parts, contextSeparator), question)
}

func isNotFoundReply(text string) bool {
	return strings.Contains(text, notFoundToken)
}
