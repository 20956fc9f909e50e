package upstream

import (
	"fmt"
	"math/rand"

	"gcn-backend/pkg/api"
)

const generatedContext = "Generated suggestion"

var suggestionTemplates = []string{
	"What are the best practices for implementing %s?",
	"How do regulatory requirements affect %s?",
	"What documentation is required for %s compliance?",
	"How do different industries approach %s?",
	"What are the latest updates regarding %s?",
	"How can organizations measure success in %s?",
	"What are common challenges when implementing %s?",
	"How does %s impact risk management?",
}

// GenerateRelatedQueries fills in n suggestion templates with the user's query,
// in shuffled template order. Used to pad the AI backend's related_queries when
// it returns fewer than five.
func GenerateRelatedQueries(query string, n int) []api.RelatedQuery {
	order := rand.Perm(len(suggestionTemplates))
	if n > len(order) {
		n = len(order)
	}

	suggestions := make([]api.RelatedQuery, 0, n)
	for _, i := range order[:n] {
		suggestions = append(suggestions, api.RelatedQuery{
			Query:   fmt.Sprintf(suggestionTemplates[i], query),
			Context: generatedContext,
		})
	}
	return suggestions
}
