package api

import (
	"encoding/json"
	"time"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupResponse struct {
	UserId   uint   `json:"userId"`
	Username string `json:"username"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	UserId   uint   `json:"userId"`
	Username string `json:"username"`
}

// QueryRequest is the client payload for /api/query. The same shape (minus
// memory, which the backend injects) is forwarded to the AI backend.
type QueryRequest struct {
	Query    string `json:"query"`
	OrgQuery string `json:"org_query"`
	ChatId   string `json:"chat_id,omitempty"`
	UserId   uint   `json:"userId"`
}

type MemoryMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type RelatedQuery struct {
	Query   string `json:"query"`
	Context string `json:"context"`
}

type QueryResponse struct {
	Query          string          `json:"query"`
	Answer         string          `json:"answer"`
	ChatName       string          `json:"chat_name"`
	ChatId         string          `json:"chat_id"`
	PdfReferences  json.RawMessage `json:"pdf_references"`
	OnlineImages   json.RawMessage `json:"online_images"`
	OnlineVideos   json.RawMessage `json:"online_videos"`
	OnlineLinks    json.RawMessage `json:"online_links"`
	RelatedQueries []RelatedQuery  `json:"related_queries"`
	ProductColors  json.RawMessage `json:"product_colors"`
}

type ChatListItem struct {
	ChatId      string    `json:"chat_id"`
	Name        string    `json:"name"`
	Favorite    bool      `json:"favorite"`
	CreatedAt   time.Time `json:"created_at"`
	FirstQuery  string    `json:"first_query,omitempty"`
	FirstAnswer string    `json:"first_answer,omitempty"`
}

type ChatListResponse struct {
	Chats []ChatListItem `json:"chats"`
}

type ChatHistoryItem struct {
	Query          string          `json:"query"`
	Answer         string          `json:"answer"`
	PdfReferences  json.RawMessage `json:"pdf_references"`
	OnlineImages   json.RawMessage `json:"online_images"`
	OnlineVideos   json.RawMessage `json:"online_videos"`
	OnlineLinks    json.RawMessage `json:"online_links"`
	RelatedQueries json.RawMessage `json:"related_queries"`
	ProductColors  json.RawMessage `json:"product_colors"`
	CreatedAt      time.Time       `json:"created_at"`
}

type ChatHistoryResponse struct {
	History []ChatHistoryItem `json:"history"`
}

type DeleteChatRequest struct {
	ChatId string `json:"chatId"`
	UserId uint   `json:"userId"`
}

type UpdateFavoriteRequest struct {
	ChatId   string `json:"chatId"`
	UserId   uint   `json:"userId"`
	Favorite bool   `json:"favorite"`
}

type ProductRequest struct {
	UserId uint   `json:"userId"`
	Title  string `json:"title"`
	Info   string `json:"info"`
	Color  string `json:"color,omitempty"`
}

type Product struct {
	Id        uint      `json:"id"`
	Title     string    `json:"title"`
	Info      string    `json:"info"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

type ProductListResponse struct {
	Products []Product `json:"products"`
}

type LogEntry struct {
	Id      uint64    `json:"id"`
	Time    time.Time `json:"time"`
	Level   string    `json:"level"`
	Message string    `json:"message"`
}

type LogsResponse struct {
	Logs   []LogEntry `json:"logs"`
	LastId uint64     `json:"lastId"`
}

// LinkMetadata is the degraded /api/proxy response when the target cannot be
// fetched: the frontend still gets something renderable for a link preview.
type LinkMetadata struct {
	Url   string `json:"url"`
	Title string `json:"title"`
}
