package repository

import (
	"context"
	"fmt"

	"github.com/ayush6624/go-chatgpt"
)

type GptRepository interface {
	ExplainTradeScore(ctx context.Context, request string) (string, error)
}

type gptRepositoryHandler struct {
	GptClient *chatgpt.Client
}

func NewGptRepository(apiKey string) (GptRepository, error) {
	client, err := chatgpt.NewClient(apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to construct gpt client: %w", err)
	}

	return gptRepositoryHandler{
		GptClient: client,
	}, nil
}

const explainPrompt = `
You are writing entries for an options-trading journal. The user gives you the numeric results of scoring a trade candidate against a rubric: the raw composite score out of 100, the calibrated probability of success, a confidence tier, and per-metric reason lines of the form "metric: raw value -> score".

Write a short plain-English explanation of the result for the journal. Mention the strongest and weakest inputs by name, state the probability once, and do not invent numbers that are not in the input. Respect the word limit the user gives you. Do not use bullet points or headings.
`

func (h gptRepositoryHandler) ExplainTradeScore(ctx context.Context, request string) (string, error) {
	res, err := h.GptClient.Send(ctx, &chatgpt.ChatCompletionRequest{
		Model: chatgpt.GPT35Turbo,
		Messages: []chatgpt.ChatMessage{
			{
				Role:    chatgpt.ChatGPTModelRoleSystem,
				Content: explainPrompt,
			},
			{
				Role:    chatgpt.ChatGPTModelRoleUser,
				Content: request,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to send explain request: %w", err)
	}
	if len(res.Choices) == 0 {
		return "", fmt.Errorf("explain response contained no choices")
	}

	return res.Choices[0].Message.Content, nil
}
