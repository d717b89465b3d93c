package repositories

import (
	"context"
	"fmt"
	"time"

	"sparemart/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoOrderRepository is a MongoDB implementation of OrderRepository.
type MongoOrderRepository struct {
	coll *mongo.Collection
}

// NewMongoOrderRepository creates a new instance of MongoOrderRepository.
func NewMongoOrderRepository(store *Store) *MongoOrderRepository {
	return &MongoOrderRepository{coll: store.Collection("orders")}
}

// Create inserts a new order.
func (r *MongoOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	if _, err := r.coll.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// GetByUser returns the user's orders, newest first.
func (r *MongoOrderRepository) GetByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

// GetAll returns every order, newest first.
func (r *MongoOrderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoOrderRepository) find(ctx context.Context, query bson.M) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cur.Close(ctx)

	orders := []models.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus sets the fulfillment status of an order.
func (r *MongoOrderRepository) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"order_status": status}})
	if err != nil {
		return fmt.Errorf("failed to update order status for %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return models.ErrOrderNotFound
	}
	return nil
}

// SetPaymentResult records the provider payment ID and payment status on the
// order, matching on both order ID and owning user so one user cannot settle
// another's order.
func (r *MongoOrderRepository) SetPaymentResult(ctx context.Context, orderID, userID, paymentID string, status models.PaymentStatus) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": orderID, "user_id": userID},
		bson.M{"$set": bson.M{"payment_id": paymentID, "payment_status": status}})
	if err != nil {
		return fmt.Errorf("failed to set payment result for order %s: %w", orderID, err)
	}
	if res.MatchedCount == 0 {
		return models.ErrOrderNotFound
	}
	return nil
}

// Count returns the number of orders.
func (r *MongoOrderRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

// SuccessfulRevenue sums total_amount over successfully paid orders.
func (r *MongoOrderRepository) SuccessfulRevenue(ctx context.Context) (float64, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"payment_status": models.PaymentSuccess}},
		{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": "$total_amount"}}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate revenue: %w", err)
	}
	defer cur.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cur.All(ctx, &results); err != nil {
		return 0, fmt.Errorf("failed to decode revenue: %w", err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}
