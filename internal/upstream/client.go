package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"gcn-backend/pkg/api"
)

// Client talks to the AI backend. All calls go through Retry; the backend is
// expected to tolerate duplicate submissions.
type Client struct {
	http       *resty.Client
	maxRetries int
	retryDelay time.Duration
}

type Config struct {
	BaseURL    string
	MaxRetries int
	RetryDelay time.Duration
}

func NewClient(cfg Config) *Client {
	return &Client{
		http:       resty.New().SetBaseURL(cfg.BaseURL),
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
	}
}

// queryRequest is the payload forwarded to the AI backend's /api/query. It is
// the client request plus the stored conversation memory.
type queryRequest struct {
	Query    string              `json:"query"`
	OrgQuery string              `json:"org_query"`
	ChatId   string              `json:"chat_id,omitempty"`
	UserId   uint                `json:"userId"`
	Memory   []api.MemoryMessage `json:"memory"`
}

func upstreamStatusError(res *resty.Response) error {
	return fmt.Errorf("ai backend returned status %d: %s", res.StatusCode(), res.String())
}

// Query forwards a user query, with conversation memory, to the AI backend.
// The caller bounds the total time through ctx; answer generation can take
// minutes.
func (c *Client) Query(ctx context.Context, req api.QueryRequest, memory []api.MemoryMessage) (*QueryResponse, error) {
	if memory == nil {
		memory = []api.MemoryMessage{}
	}
	body := queryRequest{
		Query:    req.Query,
		OrgQuery: req.OrgQuery,
		ChatId:   req.ChatId,
		UserId:   req.UserId,
		Memory:   memory,
	}

	return Retry(ctx, c.maxRetries, c.retryDelay, func(ctx context.Context) (*QueryResponse, error) {
		res, err := c.http.R().SetContext(ctx).SetBody(body).Post("/api/query")
		if err != nil {
			return nil, err
		}
		if !res.IsSuccess() {
			return nil, upstreamStatusError(res)
		}

		var payload QueryResponse
		if err := json.Unmarshal(res.Body(), &payload); err != nil {
			return nil, fmt.Errorf("error parsing ai backend response: %w", err)
		}
		return &payload, nil
	})
}

// UploadPdf forwards a PDF to the AI backend for indexing. The file is fully
// buffered by the caller so the request can be re-sent on retry.
func (c *Client) UploadPdf(ctx context.Context, filename string, data []byte, userId uint) (json.RawMessage, error) {
	return Retry(ctx, c.maxRetries, c.retryDelay, func(ctx context.Context) (json.RawMessage, error) {
		res, err := c.http.R().
			SetContext(ctx).
			SetFileReader("file", filename, bytes.NewReader(data)).
			SetFormData(map[string]string{"userId": fmt.Sprint(userId)}).
			Post("/api/upload-pdf")
		if err != nil {
			return nil, err
		}
		if !res.IsSuccess() {
			return nil, upstreamStatusError(res)
		}
		return json.RawMessage(res.Body()), nil
	})
}

func (c *Client) SearchPdfs(ctx context.Context, searchQuery string, userId uint) (json.RawMessage, error) {
	params := map[string]string{"userId": fmt.Sprint(userId)}
	if searchQuery != "" {
		params["search_query"] = searchQuery
	}
	return c.forward(ctx, http.MethodGet, "/api/search-pdfs", params)
}

func (c *Client) DeletePdf(ctx context.Context, pdfName string, userId uint) (json.RawMessage, error) {
	return c.forward(ctx, http.MethodDelete, "/api/delete-pdf/"+pdfName, map[string]string{
		"userId": fmt.Sprint(userId),
	})
}

func (c *Client) UpdatePdfInfo(ctx context.Context, pdfName, newInfo string, userId uint) (json.RawMessage, error) {
	return c.forward(ctx, http.MethodPut, "/api/update-pdf-info/"+pdfName, map[string]string{
		"new_info": newInfo,
		"userId":   fmt.Sprint(userId),
	})
}

func (c *Client) RandomProductQueries(ctx context.Context) (json.RawMessage, error) {
	return c.forward(ctx, http.MethodGet, "/api/random-product-queries", nil)
}

func (c *Client) forward(ctx context.Context, method, path string, params map[string]string) (json.RawMessage, error) {
	return Retry(ctx, c.maxRetries, c.retryDelay, func(ctx context.Context) (json.RawMessage, error) {
		req := c.http.R().SetContext(ctx)
		if params != nil {
			req.SetQueryParams(params)
		}

		res, err := req.Execute(method, path)
		if err != nil {
			return nil, err
		}
		if !res.IsSuccess() {
			return nil, upstreamStatusError(res)
		}
		return json.RawMessage(res.Body()), nil
	})
}
