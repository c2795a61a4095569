package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"nationwide/internal/models"

	"go.uber.org/zap"
)

// KnowledgeRepository serves the knowledge base document from disk.
// A successful load is cached for the life of the process; a failed load is retried on the next call.
type KnowledgeRepository struct {
	path   string
	logger *zap.Logger

	mu sync.Mutex
	kb *models.KnowledgeBase
}

func NewKnowledgeRepository(path string, logger *zap.Logger) *KnowledgeRepository {
	return &KnowledgeRepository{
		path:   path,
		logger: logger,
	}
}

func (r *KnowledgeRepository) Get(ctx context.Context) (*models.KnowledgeBase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.kb != nil {
		return r.kb, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open knowledge base: %w", err)
	}
	defer f.Close()

	kb, err := DecodeKnowledgeBase(f)
	if err != nil {
		return nil, err
	}

	r.logger.Info("Knowledge base loaded",
		zap.String("path", r.path),
		zap.String("institute", kb.InstituteName),
		zap.Int("offices", len(kb.Contact.Offices)),
		zap.Int("faqs", len(kb.FAQs)),
	)
	r.kb = kb
	return kb, nil
}

// DecodeKnowledgeBase parses and validates a knowledge base document. Unknown keys are rejected.
func DecodeKnowledgeBase(rd io.Reader) (*models.KnowledgeBase, error) {
	dec := json.NewDecoder(rd)
	dec.DisallowUnknownFields()

	var kb models.KnowledgeBase
	if err := dec.Decode(&kb); err != nil {
		return nil, fmt.Errorf("failed to decode knowledge base: %w", err)
	}
	if err := kb.Validate(); err != nil {
		return nil, err
	}
	return &kb, nil
}
