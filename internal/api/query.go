package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"gcn-backend/internal/chat"
	"gcn-backend/internal/database"
	"gcn-backend/pkg/api"
)

// Query handles POST /api/query: it forwards the question to the AI backend
// with the session's conversation memory, persists the exchange, and returns
// the normalized answer.
//
// Nothing is persisted when the upstream call fails. When a persistence step
// fails after a successful upstream call the request still fails with a 500;
// the client is expected to resubmit, which the AI backend tolerates.
func (s *BackendService) Query(r *http.Request) (any, error) {
	req, err := ParseRequest[api.QueryRequest](r)
	if err != nil {
		return nil, err
	}
	if req.Query == "" {
		return nil, CodedErrorf(http.StatusBadRequest, "query is required")
	}
	if req.UserId == 0 {
		return nil, CodedErrorf(http.StatusBadRequest, "userId is required")
	}
	if req.OrgQuery == "" {
		req.OrgQuery = req.Query
	}

	chatId := req.ChatId
	if chatId == "" {
		chatId = uuid.New().String()
	}
	// The AI backend keys its own per-conversation context on chat_id, so the
	// resolved id is forwarded even when it was just minted.
	req.ChatId = chatId

	ctx, cancel := context.WithTimeout(r.Context(), s.queryTimeout)
	defer cancel()

	// A memory read failure degrades to an empty window rather than aborting
	// the query.
	memory, err := s.chats.GetMemory(ctx, chatId)
	if err != nil {
		slog.Warn("error loading chat memory, continuing without context", "chat_id", chatId, "error", err)
		memory = nil
	}

	slog.Info("forwarding query to ai backend", "chat_id", chatId, "user_id", req.UserId)

	payload, err := s.ai.Query(ctx, req, memory)
	if err != nil {
		slog.Error("ai backend query failed", "chat_id", chatId, "error", err)
		return nil, CodedErrorf(http.StatusInternalServerError, "error processing query: %v", err)
	}

	resp := payload.Normalize(chatId)

	if resp.ChatName == "" {
		resp.ChatName = "Chat " + time.Now().Format("2006-01-02 15:04")
	}

	if err := s.persistExchange(ctx, chatId, resp.ChatName, req, resp, memory); err != nil {
		slog.Error("error persisting query exchange", "chat_id", chatId, "error", err)
		return nil, CodedErrorf(http.StatusInternalServerError, "error saving chat history: %v", err)
	}

	return resp, nil
}

func (s *BackendService) persistExchange(ctx context.Context, chatId, chatName string, req api.QueryRequest, resp api.QueryResponse, memory []api.MemoryMessage) error {
	if err := s.chats.EnsureSession(ctx, chatId, chatName, req.UserId); err != nil {
		return err
	}

	relatedQueries, err := json.Marshal(resp.RelatedQueries)
	if err != nil {
		return fmt.Errorf("error encoding related queries: %w", err)
	}

	entry := database.ChatHistory{
		ChatId:         chatId,
		UserId:         req.UserId,
		Query:          req.OrgQuery,
		Answer:         resp.Answer,
		PdfReferences:  []byte(resp.PdfReferences),
		OnlineImages:   []byte(resp.OnlineImages),
		OnlineVideos:   []byte(resp.OnlineVideos),
		OnlineLinks:    []byte(resp.OnlineLinks),
		RelatedQueries: relatedQueries,
		ProductColors:  []byte(resp.ProductColors),
	}
	if err := s.chats.AppendHistory(ctx, &entry); err != nil {
		return err
	}

	memory = chat.AppendExchange(memory, req.OrgQuery, resp.Answer)
	return s.chats.PutMemory(ctx, chatId, memory)
}
