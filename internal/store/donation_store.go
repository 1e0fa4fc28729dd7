package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/foodbridge-app/foodbridge-backend/internal/models"
)

type DonationStore interface {
	Insert(ctx context.Context, d *models.Donation) error
	FindAll(ctx context.Context) ([]models.Donation, error)
	FindByID(ctx context.Context, id string) (*models.Donation, error)
}

type mongoDonationStore struct {
	col *mongo.Collection
}

func NewMongoDonationStore(db *mongo.Database) DonationStore {
	return &mongoDonationStore{col: db.Collection("donations")}
}

func (s *mongoDonationStore) Insert(ctx context.Context, d *models.Donation) error {
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	now := time.Now()
	d.CreatedAt = now
	d.UpdatedAt = now

	_, err := s.col.InsertOne(ctx, d)
	return err
}

func (s *mongoDonationStore) FindAll(ctx context.Context) ([]models.Donation, error) {
	cursor, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	donations := []models.Donation{}
	if err := cursor.All(ctx, &donations); err != nil {
		return nil, err
	}
	return donations, nil
}

func (s *mongoDonationStore) FindByID(ctx context.Context, id string) (*models.Donation, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var d models.Donation
	err = s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&d)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}
