package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/raushankrgupta/stylewise/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore implements Store in process memory. Records are copied in and out,
// so callers never share state with the store.
type MemoryStore struct {
	mu            sync.RWMutex
	users         map[primitive.ObjectID]models.User
	emails        map[string]primitive.ObjectID
	consultations []models.Consultation
	previews      []models.OutfitPreview
	wardrobe      []models.WardrobeItem
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:  make(map[primitive.ObjectID]models.User),
		emails: make(map[string]primitive.ObjectID),
	}
}

func (s *MemoryStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := normalizeEmail(user.Email)
	if _, ok := s.emails[email]; ok {
		return ErrDuplicateEmail
	}
	now := time.Now()
	user.ID = primitive.NewObjectID()
	user.Email = email
	user.CreatedAt, user.UpdatedAt = now, now

	s.users[user.ID] = cloneUser(*user)
	s.emails[email] = user.ID
	return nil
}

func (s *MemoryStore) GetUser(_ context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[oid]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneUser(u)
	return &out, nil
}

func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	id, ok := s.emails[normalizeEmail(email)]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return s.GetUser(ctx, id.Hex())
}

func (s *MemoryStore) UpdateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.users[user.ID]
	if !ok {
		return ErrNotFound
	}
	// email is the login key and is not changed through updates
	user.Email = old.Email
	user.CreatedAt = old.CreatedAt
	user.UpdatedAt = time.Now()
	s.users[user.ID] = cloneUser(*user)
	return nil
}

func (s *MemoryStore) SaveConsultation(_ context.Context, c *models.Consultation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = primitive.NewObjectID()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	s.consultations = append(s.consultations, *c)
	return nil
}

func (s *MemoryStore) ListConsultations(_ context.Context, userID string, limit int) ([]models.Consultation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Consultation{}
	for i := len(s.consultations) - 1; i >= 0; i-- {
		if s.consultations[i].UserID == userID {
			out = append(out, s.consultations[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) SavePreview(_ context.Context, p *models.OutfitPreview) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = primitive.NewObjectID()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	s.previews = append(s.previews, *p)
	return nil
}

func (s *MemoryStore) ListPreviews(_ context.Context, userID string, page, limit int) ([]models.OutfitPreview, int64, error) {
	_, limit, skip := pageBounds(page, limit)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []models.OutfitPreview
	for i := len(s.previews) - 1; i >= 0; i-- {
		p := s.previews[i]
		if p.UserID == userID && p.Status == models.PreviewCompleted && !p.IsDeleted {
			matched = append(matched, p)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	out := []models.OutfitPreview{}
	if skip < len(matched) {
		end := min(skip+limit, len(matched))
		out = append(out, matched[skip:end]...)
	}
	return out, int64(len(matched)), nil
}

func (s *MemoryStore) SaveItem(_ context.Context, item *models.WardrobeItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item.ID = primitive.NewObjectID()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	stored := *item
	stored.ImageKeys = append([]string(nil), item.ImageKeys...)
	s.wardrobe = append(s.wardrobe, stored)
	return nil
}

func (s *MemoryStore) ListItems(_ context.Context, userID string) ([]models.WardrobeItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.WardrobeItem{}
	for i := len(s.wardrobe) - 1; i >= 0; i-- {
		if s.wardrobe[i].UserID == userID {
			item := s.wardrobe[i]
			item.ImageKeys = append([]string(nil), item.ImageKeys...)
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func cloneUser(u models.User) models.User {
	if u.Measurements.Body != nil {
		b := *u.Measurements.Body
		u.Measurements.Body = &b
	}
	if u.Measurements.Face != nil {
		f := *u.Measurements.Face
		u.Measurements.Face = &f
	}
	if u.BodyShape != nil {
		b := *u.BodyShape
		u.BodyShape = &b
	}
	if u.FaceShape != nil {
		f := *u.FaceShape
		u.FaceShape = &f
	}
	if u.BMI != nil {
		b := *u.BMI
		b.Recommendations = append([]string(nil), u.BMI.Recommendations...)
		u.BMI = &b
	}
	u.Preferences.StylePreferences = append([]string(nil), u.Preferences.StylePreferences...)
	u.Preferences.FitnessGoals = append([]string(nil), u.Preferences.FitnessGoals...)
	u.Preferences.FavoriteColors = append([]string(nil), u.Preferences.FavoriteColors...)
	u.Preferences.Occasions = append([]string(nil), u.Preferences.Occasions...)
	return u
}
