package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Moulipolnati/Anika/internal/domain"
)

type mongoCartRepository struct {
	collection *mongo.Collection
}

func NewMongoCartRepository(db *mongo.Database) CartRepository {
	return &mongoCartRepository{
		collection: db.Collection("cart"),
	}
}

func (m *mongoCartRepository) GetCart(ctx context.Context, shopperID string) (*domain.Cart, error) {
	var cart domain.Cart

	filter := bson.M{"shopper_id": shopperID}
	err := m.collection.FindOne(ctx, filter).Decode(&cart)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	return &cart, nil
}

func (m *mongoCartRepository) AddLine(ctx context.Context, shopperID string, line domain.CartLine) error {
	now := time.Now()
	line.AddedAt = now

	filter := bson.M{"shopper_id": shopperID}

	var existing domain.Cart
	err := m.collection.FindOne(ctx, filter).Decode(&existing)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			cart := &domain.Cart{
				ShopperID: shopperID,
				Lines:     []domain.CartLine{line},
				CreatedAt: now,
				UpdatedAt: now,
			}

			if _, err := m.collection.InsertOne(ctx, cart); err != nil {
				return fmt.Errorf("failed to create cart with line: %w", err)
			}
			return nil
		}
		return fmt.Errorf("failed to check existing cart: %w", err)
	}

	if existing.Line(line.ProductID) != nil {
		// Merge: increment the quantity and refresh the cached display
		// fields so the line reflects the current catalog state.
		update := bson.M{
			"$inc": bson.M{"lines.$[elem].quantity": line.Quantity},
			"$set": bson.M{
				"lines.$[elem].name":                 line.Name,
				"lines.$[elem].price_paise":          line.PricePaise,
				"lines.$[elem].discount_price_paise": line.DiscountPricePaise,
				"lines.$[elem].image":                line.Image,
				"lines.$[elem].category":             line.Category,
				"updated_at":                         now,
			},
		}
		arrayFilters := options.Update().SetArrayFilters(options.ArrayFilters{
			Filters: []interface{}{
				bson.M{"elem.product_id": line.ProductID},
			},
		})

		if _, err := m.collection.UpdateOne(ctx, filter, update, arrayFilters); err != nil {
			return fmt.Errorf("failed to merge existing line: %w", err)
		}
		return nil
	}

	update := bson.M{
		"$push": bson.M{"lines": line},
		"$set":  bson.M{"updated_at": now},
	}

	if _, err := m.collection.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to add new line: %w", err)
	}
	return nil
}

func (m *mongoCartRepository) UpdateLineQuantity(ctx context.Context, shopperID, productID string, quantity int) error {
	filter := bson.M{
		"shopper_id":       shopperID,
		"lines.product_id": productID,
	}

	update := bson.M{
		"$set": bson.M{
			"lines.$[elem].quantity": quantity,
			"updated_at":             time.Now(),
		},
	}

	arrayFilters := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{
			bson.M{"elem.product_id": productID},
		},
	})

	result, err := m.collection.UpdateOne(ctx, filter, update, arrayFilters)
	if err != nil {
		return fmt.Errorf("failed to update line quantity: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrLineNotFound
	}
	return nil
}

func (m *mongoCartRepository) RemoveLine(ctx context.Context, shopperID, productID string) error {
	filter := bson.M{"shopper_id": shopperID}
	update := bson.M{
		"$pull": bson.M{
			"lines": bson.M{"product_id": productID},
		},
		"$set": bson.M{"updated_at": time.Now()},
	}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to remove line: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrLineNotFound
	}
	return nil
}

func (m *mongoCartRepository) DeleteCart(ctx context.Context, shopperID string) error {
	filter := bson.M{"shopper_id": shopperID}

	result, err := m.collection.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrCartNotFound
	}
	return nil
}

// EnsureCartIndexes creates the one-cart-per-shopper unique index. Called
// once at startup.
func EnsureCartIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "shopper_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	if _, err := db.Collection("cart").Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create cart indexes: %w", err)
	}
	return nil
}
