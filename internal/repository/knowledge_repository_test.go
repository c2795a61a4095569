package repository

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nationwide/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const minimalKnowledge = `{
  "instituteName": "Nationwide",
  "contact": {"offices": [{"country": "Canada", "address": "Toronto", "phone": ["+1 905-462-6465"]}]}
}`

func TestDecodeKnowledgeBase(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{"minimal", minimalKnowledge, false},
		{"missing institute", `{"contact": {"offices": [{"country": "Canada", "phone": ["1"]}]}}`, true},
		{"no offices", `{"instituteName": "X", "contact": {"offices": []}}`, true},
		{"office without phone", `{"instituteName": "X", "contact": {"offices": [{"country": "Canada"}]}}`, true},
		{"unknown key", `{"instituteName": "X", "courses": [], "contact": {"offices": [{"country": "C", "phone": ["1"]}]}}`, true},
		{"half faq", `{"instituteName": "X", "contact": {"offices": [{"country": "C", "phone": ["1"]}]}, "faqs": [{"q": "?"}]}`, true},
		{"not json", `instituteName: X`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kb, err := DecodeKnowledgeBase(strings.NewReader(tt.doc))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, kb.Highlights, "optional lists default to empty")
			assert.NotNil(t, kb.FAQs)
		})
	}
}

func TestDecodeKnowledgeBase_ValidationSentinel(t *testing.T) {
	_, err := DecodeKnowledgeBase(strings.NewReader(`{"contact": {"offices": []}}`))
	assert.ErrorIs(t, err, models.ErrInvalidKnowledgeBase)
}

func TestKnowledgeRepository_ShippedDocument(t *testing.T) {
	repo := NewKnowledgeRepository(filepath.Join("..", "..", "data", "knowledge.json"), zap.NewNop())

	kb, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Nationwide", kb.InstituteName)
	assert.Len(t, kb.Contact.Offices, 2)
	assert.Equal(t, []string{"+1 905-462-6465", "+1 647-706-0737", "+91-96272-00088"}, kb.AllPhones())
}

func TestKnowledgeRepository_RetriesAfterFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.json")
	repo := NewKnowledgeRepository(path, zap.NewNop())

	_, err := repo.Get(context.Background())
	require.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte(minimalKnowledge), 0o644))
	kb, err := repo.Get(context.Background())
	require.NoError(t, err)

	// Cached: later edits are not observed.
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))
	again, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Same(t, kb, again)
}
