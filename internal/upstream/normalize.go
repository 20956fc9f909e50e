package upstream

import (
	"encoding/json"

	"gcn-backend/pkg/api"
)

const relatedQueryCount = 5

// QueryResponse is the raw payload returned by the AI backend's /api/query.
// Side-channel fields are kept raw because the upstream is not consistent
// about their shapes (array vs. object vs. null).
type QueryResponse struct {
	Query          string          `json:"query"`
	Answer         string          `json:"answer"`
	ChatName       string          `json:"chat_name"`
	PdfReferences  json.RawMessage `json:"pdf_references"`
	OnlineImages   json.RawMessage `json:"online_images"`
	OnlineVideos   json.RawMessage `json:"online_videos"`
	OnlineLinks    json.RawMessage `json:"online_links"`
	RelatedQueries json.RawMessage `json:"related_queries"`
	ProductColors  json.RawMessage `json:"product_colors"`
}

// NormalizeList coerces a side-channel field to a JSON array. Anything that is
// not already an array (absent, null, object, malformed) becomes an empty list.
func NormalizeList(raw json.RawMessage) json.RawMessage {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return json.RawMessage("[]")
	}
	return raw
}

// NormalizeRelatedQueries coerces the upstream related_queries field to exactly
// relatedQueryCount suggestions of shape {query, context}. Upstream entries may
// be bare strings or objects; valid ones are kept in order, then the list is
// padded with generated suggestions for the original query text.
func NormalizeRelatedQueries(raw json.RawMessage, query string) []api.RelatedQuery {
	queries := parseRelatedQueries(raw)
	if missing := relatedQueryCount - len(queries); missing > 0 {
		queries = append(queries, GenerateRelatedQueries(query, missing)...)
	}
	return queries[:relatedQueryCount]
}

func parseRelatedQueries(raw json.RawMessage) []api.RelatedQuery {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}

	queries := make([]api.RelatedQuery, 0, len(items))
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			queries = append(queries, api.RelatedQuery{Query: s, Context: generatedContext})
			continue
		}

		var q api.RelatedQuery
		if err := json.Unmarshal(item, &q); err != nil || q.Query == "" {
			continue
		}
		if q.Context == "" {
			q.Context = generatedContext
		}
		queries = append(queries, q)

		if len(queries) == relatedQueryCount {
			break
		}
	}
	return queries
}

// Normalize converts a raw upstream payload into the response shape served to
// clients. The chat id is resolved by the caller.
func (r *QueryResponse) Normalize(chatId string) api.QueryResponse {
	return api.QueryResponse{
		Query:          r.Query,
		Answer:         r.Answer,
		ChatName:       r.ChatName,
		ChatId:         chatId,
		PdfReferences:  NormalizeList(r.PdfReferences),
		OnlineImages:   NormalizeList(r.OnlineImages),
		OnlineVideos:   NormalizeList(r.OnlineVideos),
		OnlineLinks:    NormalizeList(r.OnlineLinks),
		RelatedQueries: NormalizeRelatedQueries(r.RelatedQueries, r.Query),
		ProductColors:  NormalizeList(r.ProductColors),
	}
}
