package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-resty/resty/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"gcn-backend/internal/chat"
	"gcn-backend/internal/database"
	"gcn-backend/internal/logbuf"
	"gcn-backend/internal/products"
	"gcn-backend/internal/upstream"
	"gcn-backend/pkg/api"
)

type BackendService struct {
	db       *gorm.DB
	chats    *chat.Store
	products *products.Store
	ai       *upstream.Client
	logs     *logbuf.Buffer
	proxy    *resty.Client

	queryTimeout time.Duration
	proxyTimeout time.Duration
}

type Options struct {
	QueryTimeout time.Duration
	ProxyTimeout time.Duration
}

func NewBackendService(db *gorm.DB, ai *upstream.Client, logs *logbuf.Buffer, opts Options) *BackendService {
	if opts.QueryTimeout == 0 {
		opts.QueryTimeout = 5 * time.Minute
	}
	if opts.ProxyTimeout == 0 {
		opts.ProxyTimeout = 10 * time.Second
	}
	return &BackendService{
		db:           db,
		chats:        chat.NewStore(db),
		products:     products.NewStore(db),
		ai:           ai,
		logs:         logs,
		proxy:        resty.New().SetTimeout(opts.ProxyTimeout),
		queryTimeout: opts.QueryTimeout,
		proxyTimeout: opts.ProxyTimeout,
	}
}

func (s *BackendService) AddRoutes(r chi.Router) {
	r.Post("/signup", RestHandler(s.Signup))
	r.Post("/login", RestHandler(s.Login))

	r.Get("/chat-list", RestHandler(s.GetChatList))
	r.Get("/chat-history/{chat_id}", RestHandler(s.GetChatHistory))
	r.Delete("/chat", RestHandler(s.DeleteChat))
	r.Post("/update-chat-favorite", RestHandler(s.UpdateChatFavorite))
	r.Post("/query", RestHandler(s.Query))

	r.Route("/products", func(r chi.Router) {
		r.Get("/", RestHandler(s.GetProducts))
		r.Post("/", RestHandler(s.CreateProduct))
		r.Put("/{product_id}", RestHandler(s.UpdateProduct))
		r.Delete("/{product_id}", RestHandler(s.DeleteProduct))
	})

	r.Post("/upload-pdf", RestHandler(s.UploadPdf))
	r.Get("/search-pdfs", RestHandler(s.SearchPdfs))
	r.Delete("/delete-pdf/{pdf_name}", RestHandler(s.DeletePdf))
	r.Put("/update-pdf-info/{pdf_name}", RestHandler(s.UpdatePdfInfo))
	r.Get("/pdf", s.GetPdf)
	r.Get("/random-product-queries", RestHandler(s.RandomProductQueries))

	r.Get("/proxy", s.Proxy)
	r.Get("/logs", RestHandler(s.GetLogs))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteJsonError(w, http.StatusNotFound, "endpoint not found")
	})
}

// storeError maps store sentinel errors onto response codes; anything else
// surfaces as a 500 through RestHandler.
func storeError(err error) error {
	switch {
	case errors.Is(err, chat.ErrNotFound), errors.Is(err, products.ErrNotFound):
		return CodedError(http.StatusNotFound, err)
	case errors.Is(err, chat.ErrAccessDenied), errors.Is(err, products.ErrAccessDenied):
		return CodedError(http.StatusForbidden, err)
	default:
		return err
	}
}

func (s *BackendService) Signup(r *http.Request) (any, error) {
	req, err := ParseRequest[api.SignupRequest](r)
	if err != nil {
		return nil, err
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, CodedErrorf(http.StatusBadRequest, "username, email, and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	// Uniqueness is enforced by the indexes on username and email; a failed
	// insert is the duplicate check, so concurrent signups cannot race it.
	user := database.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := s.db.WithContext(r.Context()).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, CodedErrorf(http.StatusBadRequest, "username or email already exists")
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	slog.Info("user created", "user_id", user.Id, "username", user.Username)
	return api.SignupResponse{UserId: user.Id, Username: user.Username}, nil
}

func (s *BackendService) Login(r *http.Request) (any, error) {
	req, err := ParseRequest[api.LoginRequest](r)
	if err != nil {
		return nil, err
	}
	if req.Username == "" || req.Password == "" {
		return nil, CodedErrorf(http.StatusBadRequest, "username and password are required")
	}

	var user database.User
	err = s.db.WithContext(r.Context()).Where("username = ?", req.Username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, CodedErrorf(http.StatusUnauthorized, "invalid username or password")
	}
	if err != nil {
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, CodedErrorf(http.StatusUnauthorized, "invalid username or password")
	}

	return api.LoginResponse{UserId: user.Id, Username: user.Username}, nil
}

type userScopedParams struct {
	UserId uint `schema:"userId"`
}

func (s *BackendService) GetChatList(r *http.Request) (any, error) {
	params, err := ParseRequestQueryParams[userScopedParams](r)
	if err != nil {
		return nil, err
	}
	if params.UserId == 0 {
		return nil, CodedErrorf(http.StatusBadRequest, "userId is required")
	}

	previews, err := s.chats.ListSessions(r.Context(), params.UserId)
	if err != nil {
		return nil, err
	}

	resp := api.ChatListResponse{Chats: []api.ChatListItem{}}
	for _, p := range previews {
		item := api.ChatListItem{
			ChatId:    p.ChatId,
			Name:      p.Name,
			Favorite:  p.Favorite,
			CreatedAt: p.CreatedAt,
		}
		if p.FirstQuery != nil {
			item.FirstQuery = *p.FirstQuery
		}
		if p.FirstAnswer != nil {
			item.FirstAnswer = *p.FirstAnswer
		}
		resp.Chats = append(resp.Chats, item)
	}
	return resp, nil
}

func (s *BackendService) GetChatHistory(r *http.Request) (any, error) {
	chatId, err := URLParam(r, "chat_id")
	if err != nil {
		return nil, err
	}
	params, err := ParseRequestQueryParams[userScopedParams](r)
	if err != nil {
		return nil, err
	}
	if params.UserId == 0 {
		return nil, CodedErrorf(http.StatusBadRequest, "userId is required")
	}

	history, err := s.chats.GetHistory(r.Context(), chatId, params.UserId)
	if err != nil {
		return nil, storeError(err)
	}

	resp := api.ChatHistoryResponse{History: []api.ChatHistoryItem{}}
	for _, entry := range history {
		resp.History = append(resp.History, api.ChatHistoryItem{
			Query:          entry.Query,
			Answer:         entry.Answer,
			PdfReferences:  []byte(entry.PdfReferences),
			OnlineImages:   []byte(entry.OnlineImages),
			OnlineVideos:   []byte(entry.OnlineVideos),
			OnlineLinks:    []byte(entry.OnlineLinks),
			RelatedQueries: []byte(entry.RelatedQueries),
			ProductColors:  []byte(entry.ProductColors),
			CreatedAt:      entry.CreatedAt,
		})
	}
	return resp, nil
}

func (s *BackendService) DeleteChat(r *http.Request) (any, error) {
	req, err := ParseRequest[api.DeleteChatRequest](r)
	if err != nil {
		return nil, err
	}
	if req.ChatId == "" || req.UserId == 0 {
		return nil, CodedErrorf(http.StatusBadRequest, "chatId and userId are required")
	}

	if err := s.chats.DeleteSession(r.Context(), req.ChatId, req.UserId); err != nil {
		return nil, storeError(err)
	}

	slog.Info("chat session deleted", "chat_id", req.ChatId, "user_id", req.UserId)
	return nil, nil
}

func (s *BackendService) UpdateChatFavorite(r *http.Request) (any, error) {
	req, err := ParseRequest[api.UpdateFavoriteRequest](r)
	if err != nil {
		return nil, err
	}
	if req.ChatId == "" || req.UserId == 0 {
		return nil, CodedErrorf(http.StatusBadRequest, "chatId and userId are required")
	}

	if err := s.chats.SetFavorite(r.Context(), req.ChatId, req.UserId, req.Favorite); err != nil {
		return nil, storeError(err)
	}
	return nil, nil
}

type logsParams struct {
	LastId uint64 `schema:"lastId"`
}

func (s *BackendService) GetLogs(r *http.Request) (any, error) {
	params, err := ParseRequestQueryParams[logsParams](r)
	if err != nil {
		return nil, err
	}

	entries, lastId := s.logs.Since(params.LastId)
	if entries == nil {
		entries = []api.LogEntry{}
	}
	return api.LogsResponse{Logs: entries, LastId: lastId}, nil
}

// Proxy is a CORS-bypassing GET relay used by the frontend for link previews.
// When the target cannot be fetched it degrades to minimal metadata derived
// from the URL instead of failing the request.
func (s *BackendService) Proxy(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("url")
	if target == "" {
		WriteJsonError(w, http.StatusBadRequest, "url query parameter is required")
		return
	}

	parsed, err := url.Parse(target)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		WriteJsonError(w, http.StatusBadRequest, "url must be an absolute http or https URL")
		return
	}

	res, err := s.proxy.R().SetContext(r.Context()).SetDoNotParseResponse(true).Get(target)
	if err != nil {
		slog.Warn("proxy target unreachable, synthesizing metadata", "url", target, "error", err)
		WriteJsonResponse(w, api.LinkMetadata{Url: target, Title: parsed.Host})
		return
	}
	body := res.RawBody()
	defer body.Close()

	if res.StatusCode() >= http.StatusBadRequest {
		slog.Warn("proxy target returned error, synthesizing metadata", "url", target, "status", res.StatusCode())
		WriteJsonResponse(w, api.LinkMetadata{Url: target, Title: parsed.Host})
		return
	}

	if ct := res.Header().Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, body); err != nil {
		slog.Error("error relaying proxied response", "url", target, "error", err)
	}
}
