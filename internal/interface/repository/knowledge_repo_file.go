package repository

import (
	"context"

	"tabletalk-service/internal/domain/repository"
	"tabletalk-service/pkg/logger"
)

// FileKnowledgeRepository serves the raw fact sheet as the answer to every
// question. Callers that need a specific line (the hours oracle) extract it
// themselves, so handing back the whole sheet keeps the deployment working
// without an LLM credential.
type FileKnowledgeRepository struct {
	factSheet string
	logger    logger.Logger
}

// NewFileKnowledgeRepository creates a knowledge repository over a static fact sheet
func NewFileKnowledgeRepository(factSheet string, logger logger.Logger) repository.KnowledgeRepository {
	return &FileKnowledgeRepository{
		factSheet: factSheet,
		logger:    logger,
	}
}

// Ask returns the fact sheet text
func (r *FileKnowledgeRepository) Ask(ctx context.Context, question string) (string, error) {
	r.logger.Debug("Answering from static fact sheet", "question", question)
	return r.factSheet, nil
}
