package openai

import (
	"context"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"ragserve/internal/core/domain"
)

// Generator produces the grounded answer text. ok is false when the model
// replied with the not-found token, which the prompt requires whenever the
// context lacks the answer.
type Generator struct {
	client *Client
}

func NewGenerator(client *Client) *Generator {
	return &Generator{client: client}
}

func (g *Generator) GenerateAnswer(ctx context.Context, question string, chunks []domain.RetrievedChunk) (string, bool, error) {
	var resp goopenai.ChatCompletionResponse
	err := g.client.execute(ctx, "openai.generate", func(callCtx context.Context) error {
		var callErr error
		resp, callErr = g.client.api.CreateChatCompletion(callCtx, goopenai.ChatCompletionRequest{
			Model: g.client.genModel,
			Messages: []goopenai.ChatCompletionMessage{
				{Role: goopenai.ChatMessageRoleSystem, Content: answerSystemPrompt},
				{Role: goopenai.ChatMessageRoleUser, Content: buildAnswerPrompt(question, chunks)},
			},
		})
		return callErr
	})
	if err != nil {
		return "", false, wrapProviderError(domain.ErrGeneration, "create chat completion", err)
	}
	if len(resp.Choices) == 0 {
		return "", false, wrapProviderError(domain.ErrGeneration, "create chat completion",
			errEmptyCompletion)
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if isNotFoundReply(text) {
		return text, false, nil
	}
	return text, true, nil
}
