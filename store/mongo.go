package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/raushankrgupta/stylewise/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	usersCollection         = "users"
	consultationsCollection = "consultations"
	previewsCollection      = "previews"
	wardrobeCollection      = "wardrobe"
)

// MongoStore implements Store on MongoDB.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
	log    *zap.Logger
}

// ConnectMongo opens and pings a MongoDB connection and makes sure the indexes exist.
func ConnectMongo(ctx context.Context, uri, dbName string, log *zap.Logger) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	s := &MongoStore{client: client, db: client.Database(dbName), log: log}
	if err := s.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	log.Info("connected to mongodb", zap.String("database", dbName))
	return s, nil
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create email index: %w", err)
	}
	for _, name := range []string{consultationsCollection, previewsCollection, wardrobeCollection} {
		_, err := s.db.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
		})
		if err != nil {
			return fmt.Errorf("failed to create %s index: %w", name, err)
		}
	}
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) CreateUser(ctx context.Context, user *models.User) error {
	user.Email = normalizeEmail(user.Email)
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now

	result, err := s.db.Collection(usersCollection).InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

func (s *MongoStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.findUser(ctx, bson.M{"_id": oid})
}

func (s *MongoStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findUser(ctx, bson.M{"email": normalizeEmail(email)})
}

func (s *MongoStore) findUser(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	err := s.db.Collection(usersCollection).FindOne(ctx, filter).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

func (s *MongoStore) UpdateUser(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()
	result, err := s.db.Collection(usersCollection).ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) SaveConsultation(ctx context.Context, c *models.Consultation) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	return s.insert(ctx, consultationsCollection, c, &c.ID)
}

func (s *MongoStore) ListConsultations(ctx context.Context, userID string, limit int) ([]models.Consultation, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(int64(limit))
	}
	consultations := []models.Consultation{}
	if err := s.findAll(ctx, consultationsCollection, bson.M{"user_id": userID}, findOptions, &consultations); err != nil {
		return nil, err
	}
	return consultations, nil
}

func (s *MongoStore) SavePreview(ctx context.Context, p *models.OutfitPreview) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	return s.insert(ctx, previewsCollection, p, &p.ID)
}

func (s *MongoStore) ListPreviews(ctx context.Context, userID string, page, limit int) ([]models.OutfitPreview, int64, error) {
	_, limit, skip := pageBounds(page, limit)
	filter := bson.M{"user_id": userID, "status": models.PreviewCompleted, "is_deleted": false}

	total, err := s.db.Collection(previewsCollection).CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count previews: %w", err)
	}

	findOptions := options.Find()
	findOptions.SetSort(bson.D{{Key: "created_at", Value: -1}}) // latest first
	findOptions.SetSkip(int64(skip))
	findOptions.SetLimit(int64(limit))

	previews := []models.OutfitPreview{}
	if err := s.findAll(ctx, previewsCollection, filter, findOptions, &previews); err != nil {
		return nil, 0, err
	}
	return previews, total, nil
}

func (s *MongoStore) SaveItem(ctx context.Context, item *models.WardrobeItem) error {
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	return s.insert(ctx, wardrobeCollection, item, &item.ID)
}

func (s *MongoStore) ListItems(ctx context.Context, userID string) ([]models.WardrobeItem, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	items := []models.WardrobeItem{}
	if err := s.findAll(ctx, wardrobeCollection, bson.M{"user_id": userID}, findOptions, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *MongoStore) insert(ctx context.Context, collection string, doc interface{}, id *primitive.ObjectID) error {
	result, err := s.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to insert into %s: %w", collection, err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		*id = oid
	}
	return nil
}

func (s *MongoStore) findAll(ctx context.Context, collection string, filter bson.M, opts *options.FindOptions, out interface{}) error {
	cursor, err := s.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", collection, err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
