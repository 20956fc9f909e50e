package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	backend "gcn-backend/internal/api"
	"gcn-backend/internal/database"
	"gcn-backend/internal/logbuf"
	"gcn-backend/internal/upstream"
	"gcn-backend/pkg/api"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func createDB(t *testing.T, create ...any) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, database.GetMigrator(db).Migrate())

	for _, c := range create {
		require.NoError(t, db.Create(c).Error)
	}

	return db
}

func createRouter(t *testing.T, db *gorm.DB, aiBackendURL string) chi.Router {
	t.Helper()

	ai := upstream.NewClient(upstream.Config{
		BaseURL:    aiBackendURL,
		MaxRetries: 1,
		RetryDelay: time.Millisecond,
	})
	service := backend.NewBackendService(db, ai, logbuf.NewBuffer(0), backend.Options{
		QueryTimeout: 10 * time.Second,
		ProxyTimeout: time.Second,
	})

	router := chi.NewRouter()
	router.Route("/api", service.AddRoutes)
	return router
}

func doJson(t *testing.T, router chi.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func parseBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

func TestSignupAndLogin(t *testing.T) {
	db := createDB(t)
	router := createRouter(t, db, "http://localhost:1")

	rec := doJson(t, router, http.MethodPost, "/api/signup", api.SignupRequest{
		Username: "alice", Email: "alice@example.com", Password: "hunter22",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	signup := parseBody[api.SignupResponse](t, rec)
	assert.NotZero(t, signup.UserId)
	assert.Equal(t, "alice", signup.Username)

	rec = doJson(t, router, http.MethodPost, "/api/signup", api.SignupRequest{
		Username: "alice", Email: "other@example.com", Password: "hunter22",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJson(t, router, http.MethodPost, "/api/login", api.LoginRequest{
		Username: "alice", Password: "hunter22",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	login := parseBody[api.LoginResponse](t, rec)
	assert.Equal(t, signup.UserId, login.UserId)

	rec = doJson(t, router, http.MethodPost, "/api/login", api.LoginRequest{
		Username: "alice", Password: "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJson(t, router, http.MethodPost, "/api/login", api.LoginRequest{
		Username: "nobody", Password: "hunter22",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var user database.User
	require.NoError(t, db.First(&user, signup.UserId).Error)
	assert.NotEqual(t, "hunter22", user.PasswordHash)
}

func fakeAiBackend(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestQueryFlow(t *testing.T) {
	var forwarded struct {
		Query    string              `json:"query"`
		OrgQuery string              `json:"org_query"`
		ChatId   string              `json:"chat_id"`
		UserId   uint                `json:"userId"`
		Memory   []api.MemoryMessage `json:"memory"`
	}
	calls := 0
	server := fakeAiBackend(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		require.Equal(t, "/api/query", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&forwarded))
		json.NewEncoder(w).Encode(map[string]any{
			"query":           forwarded.Query,
			"answer":          fmt.Sprintf("answer %d", calls),
			"chat_name":       "GDPR basics",
			"pdf_references":  []string{"gdpr.pdf"},
			"online_images":   "not a list",
			"related_queries": []string{"What is article 17?"},
		})
	})

	db := createDB(t)
	router := createRouter(t, db, server.URL)

	rec := doJson(t, router, http.MethodPost, "/api/query", api.QueryRequest{
		Query: "What is GDPR?", UserId: 1,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	first := parseBody[api.QueryResponse](t, rec)

	assert.NotEmpty(t, first.ChatId)
	assert.Equal(t, "answer 1", first.Answer)
	assert.Equal(t, "GDPR basics", first.ChatName)
	assert.JSONEq(t, `["gdpr.pdf"]`, string(first.PdfReferences))
	assert.JSONEq(t, `[]`, string(first.OnlineImages))
	assert.JSONEq(t, `[]`, string(first.OnlineVideos))

	require.Len(t, first.RelatedQueries, 5)
	assert.Equal(t, "What is article 17?", first.RelatedQueries[0].Query)
	for _, rq := range first.RelatedQueries[1:] {
		assert.Equal(t, "Generated suggestion", rq.Context)
		assert.Contains(t, rq.Query, "What is GDPR?")
	}

	// empty memory on the first turn, org_query defaults to the query, and the
	// minted chat id is forwarded so the backend can key its own context on it
	assert.Empty(t, forwarded.Memory)
	assert.Equal(t, "What is GDPR?", forwarded.OrgQuery)
	assert.Equal(t, first.ChatId, forwarded.ChatId)

	rec = doJson(t, router, http.MethodPost, "/api/query", api.QueryRequest{
		Query: "And the fines?", ChatId: first.ChatId, UserId: 1,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	second := parseBody[api.QueryResponse](t, rec)
	assert.Equal(t, first.ChatId, second.ChatId)

	require.Len(t, forwarded.Memory, 2)
	assert.Equal(t, api.MemoryMessage{Role: "user", Content: "What is GDPR?"}, forwarded.Memory[0])
	assert.Equal(t, api.MemoryMessage{Role: "assistant", Content: "answer 1"}, forwarded.Memory[1])

	var sessions []database.ChatSession
	require.NoError(t, db.Find(&sessions).Error)
	require.Len(t, sessions, 1)
	assert.Equal(t, "GDPR basics", sessions[0].Name)
	assert.Equal(t, uint(1), sessions[0].UserId)

	var history []database.ChatHistory
	require.NoError(t, db.Order("id ASC").Find(&history).Error)
	require.Len(t, history, 2)
	assert.Equal(t, "What is GDPR?", history[0].Query)
	assert.Equal(t, "And the fines?", history[1].Query)
}

func TestQueryValidation(t *testing.T) {
	db := createDB(t)
	router := createRouter(t, db, "http://localhost:1")

	rec := doJson(t, router, http.MethodPost, "/api/query", api.QueryRequest{UserId: 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJson(t, router, http.MethodPost, "/api/query", api.QueryRequest{Query: "hello"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQueryUpstreamFailureLeavesNothingPersisted(t *testing.T) {
	server := fakeAiBackend(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	})

	db := createDB(t)
	router := createRouter(t, db, server.URL)

	rec := doJson(t, router, http.MethodPost, "/api/query", api.QueryRequest{
		Query: "What is GDPR?", UserId: 1,
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var count int64
	require.NoError(t, db.Model(&database.ChatSession{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&database.ChatHistory{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestChatListAndHistory(t *testing.T) {
	calls := 0
	server := fakeAiBackend(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(map[string]any{
			"answer":    fmt.Sprintf("answer %d", calls),
			"chat_name": fmt.Sprintf("chat %d", calls),
		})
	})

	db := createDB(t)
	router := createRouter(t, db, server.URL)

	rec := doJson(t, router, http.MethodPost, "/api/query", api.QueryRequest{Query: "first question", UserId: 7})
	require.Equal(t, http.StatusOK, rec.Code)
	chatId := parseBody[api.QueryResponse](t, rec).ChatId

	rec = doJson(t, router, http.MethodPost, "/api/query", api.QueryRequest{Query: "followup", ChatId: chatId, UserId: 7})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJson(t, router, http.MethodGet, "/api/chat-list?userId=7", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := parseBody[api.ChatListResponse](t, rec)
	require.Len(t, list.Chats, 1)
	assert.Equal(t, chatId, list.Chats[0].ChatId)
	assert.Equal(t, "chat 1", list.Chats[0].Name)
	assert.Equal(t, "first question", list.Chats[0].FirstQuery)
	assert.Equal(t, "answer 1", list.Chats[0].FirstAnswer)

	rec = doJson(t, router, http.MethodGet, "/api/chat-list?userId=8", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, parseBody[api.ChatListResponse](t, rec).Chats)

	rec = doJson(t, router, http.MethodGet, fmt.Sprintf("/api/chat-history/%s?userId=7", chatId), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	history := parseBody[api.ChatHistoryResponse](t, rec)
	require.Len(t, history.History, 2)
	assert.Equal(t, "first question", history.History[0].Query)
	assert.Equal(t, "followup", history.History[1].Query)

	rec = doJson(t, router, http.MethodGet, fmt.Sprintf("/api/chat-history/%s?userId=8", chatId), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJson(t, router, http.MethodGet, "/api/chat-history/no-such-chat?userId=7", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateChatFavoriteAndDelete(t *testing.T) {
	db := createDB(t,
		&database.ChatSession{ChatId: "chat-1", Name: "keep", UserId: 3, CreatedAt: time.Now()},
		&database.ChatHistory{ChatId: "chat-1", UserId: 3, Query: "q", Answer: "a", CreatedAt: time.Now()},
	)
	router := createRouter(t, db, "http://localhost:1")

	rec := doJson(t, router, http.MethodPost, "/api/update-chat-favorite", api.UpdateFavoriteRequest{
		ChatId: "chat-1", UserId: 3, Favorite: true,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var session database.ChatSession
	require.NoError(t, db.First(&session, "chat_id = ?", "chat-1").Error)
	assert.True(t, session.Favorite)

	rec = doJson(t, router, http.MethodDelete, "/api/chat", api.DeleteChatRequest{ChatId: "chat-1", UserId: 4})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJson(t, router, http.MethodDelete, "/api/chat", api.DeleteChatRequest{ChatId: "chat-1", UserId: 3})
	require.Equal(t, http.StatusOK, rec.Code)

	var count int64
	require.NoError(t, db.Model(&database.ChatSession{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&database.ChatHistory{}).Count(&count).Error)
	assert.Zero(t, count)

	rec = doJson(t, router, http.MethodDelete, "/api/chat", api.DeleteChatRequest{ChatId: "chat-1", UserId: 3})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductCrud(t *testing.T) {
	db := createDB(t)
	router := createRouter(t, db, "http://localhost:1")

	rec := doJson(t, router, http.MethodPost, "/api/products", api.ProductRequest{
		UserId: 1, Title: "Access Manager", Info: "SSO gateway",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	created := parseBody[api.Product](t, rec)
	assert.Equal(t, "red", created.Color)

	rec = doJson(t, router, http.MethodPost, "/api/products", api.ProductRequest{UserId: 1, Title: "Audit Trail"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "purple", parseBody[api.Product](t, rec).Color)

	rec = doJson(t, router, http.MethodPost, "/api/products", api.ProductRequest{UserId: 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJson(t, router, http.MethodGet, "/api/products?userId=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, parseBody[api.ProductListResponse](t, rec).Products, 2)

	rec = doJson(t, router, http.MethodPut, fmt.Sprintf("/api/products/%d", created.Id), api.ProductRequest{
		UserId: 1, Title: "Access Manager v2", Info: "SSO gateway", Color: "white",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := parseBody[api.Product](t, rec)
	assert.Equal(t, "Access Manager v2", updated.Title)
	assert.Equal(t, "white", updated.Color)

	rec = doJson(t, router, http.MethodPut, fmt.Sprintf("/api/products/%d", created.Id), api.ProductRequest{
		UserId: 2, Title: "hijack",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJson(t, router, http.MethodDelete, fmt.Sprintf("/api/products/%d?userId=1", created.Id), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJson(t, router, http.MethodDelete, fmt.Sprintf("/api/products/%d?userId=1", created.Id), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJson(t, router, http.MethodPut, "/api/products/abc", api.ProductRequest{UserId: 1, Title: "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadPdfForwarding(t *testing.T) {
	var gotFilename, gotUserId string
	var gotBytes []byte
	server := fakeAiBackend(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/upload-pdf", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		gotFilename = header.Filename
		gotBytes = make([]byte, header.Size)
		file.Read(gotBytes)
		gotUserId = r.FormValue("userId")
		json.NewEncoder(w).Encode(map[string]string{"message": "uploaded"})
	})

	db := createDB(t)
	router := createRouter(t, db, server.URL)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "policy.pdf")
	require.NoError(t, err)
	part.Write([]byte("%PDF-1.4 fake"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload-pdf?userId=9", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "policy.pdf", gotFilename)
	assert.Equal(t, "9", gotUserId)
	assert.Equal(t, []byte("%PDF-1.4 fake"), gotBytes)

	// missing file part
	req = httptest.NewRequest(http.MethodPost, "/api/upload-pdf?userId=9", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPdfEndpointsForward(t *testing.T) {
	server := fakeAiBackend(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/search-pdfs":
			assert.Equal(t, "gdpr", r.URL.Query().Get("search_query"))
			assert.Equal(t, "2", r.URL.Query().Get("userId"))
			json.NewEncoder(w).Encode(map[string]any{"pdfs": []string{"gdpr.pdf"}})
		case r.URL.Path == "/api/delete-pdf/old.pdf":
			assert.Equal(t, http.MethodDelete, r.Method)
			json.NewEncoder(w).Encode(map[string]string{"message": "deleted"})
		case r.URL.Path == "/api/update-pdf-info/old.pdf":
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "new description", r.URL.Query().Get("new_info"))
			json.NewEncoder(w).Encode(map[string]string{"message": "updated"})
		case r.URL.Path == "/api/random-product-queries":
			json.NewEncoder(w).Encode(map[string]any{"queries": []string{"q1"}})
		default:
			t.Errorf("unexpected upstream path %s", r.URL.Path)
		}
	})

	db := createDB(t)
	router := createRouter(t, db, server.URL)

	rec := doJson(t, router, http.MethodGet, "/api/search-pdfs?search_query=gdpr&userId=2", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "gdpr.pdf")

	rec = doJson(t, router, http.MethodDelete, "/api/delete-pdf/old.pdf?userId=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJson(t, router, http.MethodPut, "/api/update-pdf-info/old.pdf?new_info=new+description&userId=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJson(t, router, http.MethodGet, "/api/random-product-queries", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "q1")
}

func TestGetPdfStreamsStoredBytes(t *testing.T) {
	db := createDB(t)

	// The pdfdata table is created by the AI backend, not by our migrations.
	require.NoError(t, db.Exec(
		`CREATE TABLE pdfdata (pdf_name TEXT PRIMARY KEY, user_id INTEGER, pdf_file BLOB, text_vectors TEXT, pdf_info TEXT)`,
	).Error)
	require.NoError(t, db.Create(&database.PdfDocument{
		PdfName: "handbook",
		UserId:  5,
		PdfFile: []byte("%PDF-1.4 stored"),
	}).Error)

	router := createRouter(t, db, "http://localhost:1")

	rec := doJson(t, router, http.MethodGet, "/api/pdf?name=handbook&userId=5&page=3", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, []byte("%PDF-1.4 stored"), rec.Body.Bytes())

	rec = doJson(t, router, http.MethodGet, "/api/pdf?name=handbook&userId=6", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJson(t, router, http.MethodGet, "/api/pdf?name=handbook", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJson(t, router, http.MethodGet, "/api/pdf?name=handbook&userId=five", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPdfForwardingTimesOutOnStalledBackend(t *testing.T) {
	server := fakeAiBackend(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(10 * time.Second):
		}
	})

	db := createDB(t)
	ai := upstream.NewClient(upstream.Config{
		BaseURL:    server.URL,
		MaxRetries: 1,
		RetryDelay: time.Millisecond,
	})
	service := backend.NewBackendService(db, ai, logbuf.NewBuffer(0), backend.Options{
		ProxyTimeout: 50 * time.Millisecond,
	})
	router := chi.NewRouter()
	router.Route("/api", service.AddRoutes)

	start := time.Now()
	rec := doJson(t, router, http.MethodGet, "/api/search-pdfs?search_query=gdpr&userId=2", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Less(t, time.Since(start), 5*time.Second)

	start = time.Now()
	rec = doJson(t, router, http.MethodGet, "/api/random-product-queries", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestProxyDegradesOnFailure(t *testing.T) {
	db := createDB(t)
	router := createRouter(t, db, "http://localhost:1")

	target := fakeAiBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><title>hello</title></html>"))
	})

	rec := doJson(t, router, http.MethodGet, "/api/proxy?url="+target.URL, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<title>hello</title>")

	// unreachable target still yields a renderable 200
	rec = doJson(t, router, http.MethodGet, "/api/proxy?url=http://localhost:1/nope", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	meta := parseBody[api.LinkMetadata](t, rec)
	assert.Equal(t, "http://localhost:1/nope", meta.Url)
	assert.Equal(t, "localhost:1", meta.Title)

	rec = doJson(t, router, http.MethodGet, "/api/proxy?url=::bad::", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJson(t, router, http.MethodGet, "/api/proxy", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetLogs(t *testing.T) {
	db := createDB(t)

	buf := logbuf.NewBuffer(0)
	logger := slog.New(logbuf.NewHandler(slog.NewTextHandler(&bytes.Buffer{}, nil), buf))
	logger.Info("request handled", "path", "/api/query")
	logger.Warn("upstream slow")

	ai := upstream.NewClient(upstream.Config{BaseURL: "http://localhost:1", MaxRetries: 1, RetryDelay: time.Millisecond})
	service := backend.NewBackendService(db, ai, buf, backend.Options{})
	router := chi.NewRouter()
	router.Route("/api", service.AddRoutes)

	rec := doJson(t, router, http.MethodGet, "/api/logs", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	logs := parseBody[api.LogsResponse](t, rec)
	require.Len(t, logs.Logs, 2)
	assert.Contains(t, logs.Logs[0].Message, "request handled")
	assert.Equal(t, logs.Logs[1].Id, logs.LastId)

	rec = doJson(t, router, http.MethodGet, fmt.Sprintf("/api/logs?lastId=%d", logs.Logs[0].Id), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	tail := parseBody[api.LogsResponse](t, rec)
	require.Len(t, tail.Logs, 1)
	assert.Contains(t, tail.Logs[0].Message, "upstream slow")
}

func TestUnknownEndpointReturnsJson404(t *testing.T) {
	db := createDB(t)
	router := createRouter(t, db, "http://localhost:1")

	rec := doJson(t, router, http.MethodGet, "/api/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	errRes := parseBody[api.ErrorResponse](t, rec)
	assert.NotEmpty(t, errRes.Error)
}
