package upstream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRelatedQueries(t *testing.T) {
	suggestions := GenerateRelatedQueries("chemical storage", 3)
	require.Len(t, suggestions, 3)

	seen := make(map[string]bool)
	for _, s := range suggestions {
		assert.Contains(t, s.Query, "chemical storage")
		assert.Equal(t, generatedContext, s.Context)
		assert.False(t, seen[s.Query], "suggestions should not repeat")
		seen[s.Query] = true
	}
}

func TestGenerateRelatedQueriesCappedAtTemplateCount(t *testing.T) {
	suggestions := GenerateRelatedQueries("x", 100)
	assert.Len(t, suggestions, len(suggestionTemplates))
}
