package repository

import (
	"context"
	"fmt"

	"tabletalk-service/internal/domain/repository"
	"tabletalk-service/pkg/logger"

	"github.com/sashabaranov/go-openai"
)

const knowledgeSystemPrompt = `You answer questions about a restaurant on behalf of its reservation assistant.
Answer using only the fact sheet below. Quote opening hours exactly as written there,
one line per day range. If the fact sheet does not cover the question, say you don't know.

Fact sheet:
%s`

// OpenAIKnowledgeRepository answers restaurant questions through a chat
// completion grounded on the fact sheet
type OpenAIKnowledgeRepository struct {
	client    *openai.Client
	model     string
	factSheet string
	logger    logger.Logger
}

// NewOpenAIKnowledgeRepository creates a new OpenAI-backed knowledge repository
func NewOpenAIKnowledgeRepository(apiKey, model, factSheet string, logger logger.Logger) repository.KnowledgeRepository {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIKnowledgeRepository{
		client:    openai.NewClient(apiKey),
		model:     model,
		factSheet: factSheet,
		logger:    logger,
	}
}

// Ask sends the question with the fact sheet as grounding context
func (r *OpenAIKnowledgeRepository) Ask(ctx context.Context, question string) (string, error) {
	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: fmt.Sprintf(knowledgeSystemPrompt, r.factSheet),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: question,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	answer := resp.Choices[0].Message.Content
	r.logger.Debug("Knowledge source answered", "question", question, "length", len(answer))
	return answer, nil
}
