package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gcn-backend/internal/database"
	"gcn-backend/pkg/api"
)

// Store holds the persistence operations for sessions, history, and memory.
// Every operation that takes a userId verifies ownership before touching the
// row and returns ErrAccessDenied or ErrNotFound on mismatch.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// checkOwnership loads the session and verifies it belongs to userId.
func (s *Store) checkOwnership(txn *gorm.DB, chatId string, userId uint) error {
	var session database.ChatSession
	if err := txn.Where("chat_id = ?", chatId).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if session.UserId != userId {
		return ErrAccessDenied
	}
	return nil
}

type SessionPreview struct {
	ChatId      string
	Name        string
	Favorite    bool
	CreatedAt   time.Time
	FirstQuery  *string
	FirstAnswer *string
}

// ListSessions returns the user's sessions newest first, each joined with its
// chronologically first history entry for preview purposes.
func (s *Store) ListSessions(ctx context.Context, userId uint) ([]SessionPreview, error) {
	var previews []SessionPreview
	err := s.db.WithContext(ctx).
		Table("chat_sessions AS s").
		Select("s.chat_id, s.name, s.favorite, s.created_at, h.query AS first_query, h.answer AS first_answer").
		Joins("LEFT JOIN chat_histories AS h ON h.id = (SELECT min(h2.id) FROM chat_histories AS h2 WHERE h2.chat_id = s.chat_id)").
		Where("s.user_id = ?", userId).
		Order("s.created_at DESC").
		Scan(&previews).Error
	if err != nil {
		return nil, fmt.Errorf("error listing chat sessions: %w", err)
	}
	return previews, nil
}

func (s *Store) GetHistory(ctx context.Context, chatId string, userId uint) ([]database.ChatHistory, error) {
	txn := s.db.WithContext(ctx)
	if err := s.checkOwnership(txn, chatId, userId); err != nil {
		return nil, err
	}

	var history []database.ChatHistory
	if err := txn.Where("chat_id = ?", chatId).Order("id ASC").Find(&history).Error; err != nil {
		return nil, fmt.Errorf("error loading chat history: %w", err)
	}
	return history, nil
}

// EnsureSession creates the session row if it does not exist. Idempotent:
// the first writer wins on the name.
func (s *Store) EnsureSession(ctx context.Context, chatId, name string, userId uint) error {
	session := database.ChatSession{
		ChatId:    chatId,
		Name:      name,
		UserId:    userId,
		CreatedAt: time.Now().UTC(),
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "chat_id"}}, DoNothing: true}).
		Create(&session).Error
	if err != nil {
		return fmt.Errorf("error ensuring chat session: %w", err)
	}
	return nil
}

// AppendHistory appends one exchange. Prior entries are never updated.
func (s *Store) AppendHistory(ctx context.Context, entry *database.ChatHistory) error {
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("error appending chat history: %w", err)
	}
	return nil
}

// GetMemory returns the stored memory for a session, or an empty list if no
// row exists yet.
func (s *Store) GetMemory(ctx context.Context, chatId string) ([]api.MemoryMessage, error) {
	var row database.ChatMemory
	err := s.db.WithContext(ctx).Where("chat_id = ?", chatId).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error loading chat memory: %w", err)
	}
	if len(row.Memory) == 0 {
		return nil, nil
	}

	var memory []api.MemoryMessage
	if err := json.Unmarshal(row.Memory, &memory); err != nil {
		return nil, fmt.Errorf("error parsing chat memory: %w", err)
	}
	return memory, nil
}

// PutMemory stores the message window for a session, replacing any previous
// row (create-if-absent, else full replace).
func (s *Store) PutMemory(ctx context.Context, chatId string, memory []api.MemoryMessage) error {
	data, err := json.Marshal(memory)
	if err != nil {
		return fmt.Errorf("error encoding chat memory: %w", err)
	}

	row := database.ChatMemory{ChatId: chatId, Memory: data}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "chat_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"memory", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("error storing chat memory: %w", err)
	}
	return nil
}

func (s *Store) SetFavorite(ctx context.Context, chatId string, userId uint, favorite bool) error {
	txn := s.db.WithContext(ctx)
	if err := s.checkOwnership(txn, chatId, userId); err != nil {
		return err
	}
	err := txn.Model(&database.ChatSession{}).Where("chat_id = ?", chatId).Update("favorite", favorite).Error
	if err != nil {
		return fmt.Errorf("error updating favorite flag: %w", err)
	}
	return nil
}

// DeleteSession removes the session's memory, history, and the session row in
// a single transaction. Nothing is deleted if the ownership check fails.
func (s *Store) DeleteSession(ctx context.Context, chatId string, userId uint) error {
	return s.db.WithContext(ctx).Transaction(func(txn *gorm.DB) error {
		if err := s.checkOwnership(txn, chatId, userId); err != nil {
			return err
		}
		if err := txn.Delete(&database.ChatMemory{}, "chat_id = ?", chatId).Error; err != nil {
			return err
		}
		if err := txn.Delete(&database.ChatHistory{}, "chat_id = ?", chatId).Error; err != nil {
			return err
		}
		return txn.Delete(&database.ChatSession{}, "chat_id = ?", chatId).Error
	})
}
