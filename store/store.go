// Package store persists users and their styling history.
package store

import (
	"context"
	"errors"

	"github.com/raushankrgupta/stylewise/models"
)

var (
	ErrNotFound       = errors.New("store: not found")
	ErrDuplicateEmail = errors.New("store: email already registered")
)

// ProfileStore holds user records, including their analyses and preferences.
type ProfileStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
}

type ConsultationStore interface {
	SaveConsultation(ctx context.Context, c *models.Consultation) error
	// ListConsultations returns the newest consultations first.
	ListConsultations(ctx context.Context, userID string, limit int) ([]models.Consultation, error)
}

type PreviewStore interface {
	SavePreview(ctx context.Context, p *models.OutfitPreview) error
	// ListPreviews pages through completed previews, newest first, and reports the total count.
	ListPreviews(ctx context.Context, userID string, page, limit int) ([]models.OutfitPreview, int64, error)
}

type WardrobeStore interface {
	SaveItem(ctx context.Context, item *models.WardrobeItem) error
	ListItems(ctx context.Context, userID string) ([]models.WardrobeItem, error)
}

// Store is everything the API needs from persistence.
type Store interface {
	ProfileStore
	ConsultationStore
	PreviewStore
	WardrobeStore
}

// pageBounds normalizes 1-based paging input and returns the number of records to skip.
func pageBounds(page, limit int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	return page, limit, (page - 1) * limit
}

const DefaultPageSize = 10
