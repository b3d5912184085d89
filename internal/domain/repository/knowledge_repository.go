package repository

import "context"

// KnowledgeRepository defines the interface to the restaurant knowledge
// source. Answers are unstructured text; callers extract what they need.
type KnowledgeRepository interface {
	Ask(ctx context.Context, question string) (string, error)
}
