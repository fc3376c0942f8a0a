package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Moulipolnati/Anika/internal/domain"
)

type mongoWishlistRepository struct {
	collection *mongo.Collection
}

func NewMongoWishlistRepository(db *mongo.Database) WishlistRepository {
	return &mongoWishlistRepository{
		collection: db.Collection("wishlist"),
	}
}

func (m *mongoWishlistRepository) GetWishlist(ctx context.Context, shopperID string) (*domain.Wishlist, error) {
	filter := bson.M{"shopper_id": shopperID}
	opts := options.Find().SetSort(bson.D{{Key: "added_at", Value: 1}})

	cursor, err := m.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get wishlist: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []domain.WishlistEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode wishlist entries: %w", err)
	}

	return &domain.Wishlist{ShopperID: shopperID, Entries: entries}, nil
}

func (m *mongoWishlistRepository) AddEntry(ctx context.Context, entry domain.WishlistEntry) error {
	if entry.AddedAt.IsZero() {
		entry.AddedAt = time.Now()
	}

	_, err := m.collection.InsertOne(ctx, entry)
	if err != nil {
		// The unique (shopper_id, product_id) index turns a repeat add into
		// a duplicate-key error; the entry already exists, which is what
		// the caller asked for.
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("failed to add wishlist entry: %w", err)
	}
	return nil
}

func (m *mongoWishlistRepository) RemoveEntry(ctx context.Context, shopperID, productID string) error {
	filter := bson.M{"shopper_id": shopperID, "product_id": productID}

	// Removing an entry that is already gone is a no-op, not an error.
	if _, err := m.collection.DeleteOne(ctx, filter); err != nil {
		return fmt.Errorf("failed to remove wishlist entry: %w", err)
	}
	return nil
}

func (m *mongoWishlistRepository) DeleteWishlist(ctx context.Context, shopperID string) error {
	filter := bson.M{"shopper_id": shopperID}

	if _, err := m.collection.DeleteMany(ctx, filter); err != nil {
		return fmt.Errorf("failed to clear wishlist: %w", err)
	}
	return nil
}

// EnsureWishlistIndexes creates the unique (shopper, product) index that
// makes duplicate adds benign. Called once at startup.
func EnsureWishlistIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "shopper_id", Value: 1},
				{Key: "product_id", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}

	if _, err := db.Collection("wishlist").Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create wishlist indexes: %w", err)
	}
	return nil
}
