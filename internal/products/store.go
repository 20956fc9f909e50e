package products

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"gcn-backend/internal/database"
)

var (
	ErrNotFound     = errors.New("product not found")
	ErrAccessDenied = errors.New("product belongs to a different user")
)

// Palette is the fixed set of product colors, in assignment order.
var Palette = []string{"red", "purple", "orange", "green", "blue", "white"}

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) List(ctx context.Context, userId uint) ([]database.Product, error) {
	var products []database.Product
	err := s.db.WithContext(ctx).Where("user_id = ?", userId).Order("created_at DESC").Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("error listing products: %w", err)
	}
	return products, nil
}

// Create assigns the first palette color the user's products do not already
// hold, falling back to the first palette color when all are in use.
func (s *Store) Create(ctx context.Context, userId uint, title, info string) (*database.Product, error) {
	var used []string
	err := s.db.WithContext(ctx).Model(&database.Product{}).Where("user_id = ?", userId).Pluck("color", &used).Error
	if err != nil {
		return nil, fmt.Errorf("error loading product colors: %w", err)
	}

	product := database.Product{
		UserId:    userId,
		Title:     title,
		Info:      info,
		Color:     nextColor(used),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, fmt.Errorf("error creating product: %w", err)
	}
	return &product, nil
}

func nextColor(used []string) string {
	inUse := make(map[string]bool, len(used))
	for _, c := range used {
		inUse[c] = true
	}
	for _, c := range Palette {
		if !inUse[c] {
			return c
		}
	}
	return Palette[0]
}

func (s *Store) get(txn *gorm.DB, id, userId uint) (*database.Product, error) {
	var product database.Product
	if err := txn.Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if product.UserId != userId {
		return nil, ErrAccessDenied
	}
	return &product, nil
}

func (s *Store) Update(ctx context.Context, id, userId uint, title, info, color string) (*database.Product, error) {
	txn := s.db.WithContext(ctx)
	product, err := s.get(txn, id, userId)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{"title": title, "info": info}
	if color != "" {
		updates["color"] = color
	}
	if err := txn.Model(product).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("error updating product: %w", err)
	}
	return product, nil
}

func (s *Store) Delete(ctx context.Context, id, userId uint) error {
	txn := s.db.WithContext(ctx)
	if _, err := s.get(txn, id, userId); err != nil {
		return err
	}
	if err := txn.Delete(&database.Product{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("error deleting product: %w", err)
	}
	return nil
}
