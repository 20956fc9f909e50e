package database

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	Id           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;size:100;not null"`
	Email        string `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string `gorm:"not null" json:"-"`
	CreatedAt    time.Time
}

// ChatSession is one conversation thread. ChatId is an opaque identifier,
// usually a UUID minted by the client or by the query endpoint.
type ChatSession struct {
	ChatId    string `gorm:"primaryKey;size:64"`
	Name      string
	Favorite  bool `gorm:"default:false"`
	UserId    uint `gorm:"index;not null"`
	CreatedAt time.Time
}

// ChatHistory is one query/answer exchange. Rows are immutable once written;
// conversation order is reconstructed by ascending insertion order.
type ChatHistory struct {
	Id     uint   `gorm:"primaryKey"`
	ChatId string `gorm:"index;size:64;not null"`
	UserId uint   `gorm:"index;not null"`
	Query  string
	Answer string

	PdfReferences  datatypes.JSON
	OnlineImages   datatypes.JSON
	OnlineVideos   datatypes.JSON
	OnlineLinks    datatypes.JSON
	RelatedQueries datatypes.JSON
	ProductColors  datatypes.JSON

	CreatedAt time.Time
}

// ChatMemory holds the bounded recent-message window for a session, exactly
// one row per chat id, replaced wholesale on every update.
type ChatMemory struct {
	Id        uint   `gorm:"primaryKey"`
	ChatId    string `gorm:"uniqueIndex;size:64;not null"`
	Memory    datatypes.JSON
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Product struct {
	Id        uint   `gorm:"primaryKey"`
	UserId    uint   `gorm:"index;not null"`
	Title     string `gorm:"not null"`
	Info      string
	Color     string `gorm:"size:20;not null"`
	CreatedAt time.Time
}

// PdfDocument maps the pdfdata table created and written by the AI backend
// when a PDF is uploaded: pdf_name is the primary key, there is no surrogate
// id column. This service only reads it, to stream document bytes to the
// viewer, so the model is excluded from migrations.
type PdfDocument struct {
	PdfName string `gorm:"column:pdf_name;primaryKey"`
	UserId  uint   `gorm:"column:user_id"`
	PdfFile []byte `gorm:"column:pdf_file"`
	PdfInfo string `gorm:"column:pdf_info"`
}

func (PdfDocument) TableName() string {
	return "pdfdata"
}
