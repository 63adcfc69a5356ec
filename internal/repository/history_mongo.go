package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/contrib-fyi/server/internal/models"
)

// maxHistory bounds the viewed-issue log.
const maxHistory = 50

// HistoryMongo satisfies service.HistoryRepository on a "history" collection.
type HistoryMongo struct {
	col *mongo.Collection
}

// NewHistoryRepository wires the collection.
func NewHistoryRepository(db *mongo.Database) *HistoryMongo {
	return &HistoryMongo{col: db.Collection("history")}
}

// Upsert records a view. Re-viewing an issue refreshes its viewed_at, which
// moves it to the top of the log.
func (r *HistoryMongo) Upsert(ctx context.Context, snapshot models.IssueSnapshot) error {
	entry := models.HistoryEntry{IssueSnapshot: snapshot, ViewedAt: time.Now()}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.col.ReplaceOne(ctx, bson.M{"id": snapshot.ID}, entry, opts); err != nil {
		return err
	}

	return r.trim(ctx)
}

// List returns the log, most recently viewed first.
func (r *HistoryMongo) List(ctx context.Context) ([]models.HistoryEntry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "viewed_at", Value: -1}}).
		SetLimit(maxHistory)
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var entries []models.HistoryEntry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Clear empties the log.
func (r *HistoryMongo) Clear(ctx context.Context) error {
	_, err := r.col.DeleteMany(ctx, bson.M{})
	return err
}

// trim deletes the least recently viewed entries beyond the bound.
func (r *HistoryMongo) trim(ctx context.Context) error {
	count, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	excess := count - maxHistory
	if excess <= 0 {
		return nil
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "viewed_at", Value: 1}}).
		SetLimit(excess).
		SetProjection(bson.M{"_id": 1})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	var oldest []struct {
		ID interface{} `bson:"_id"`
	}
	if err := cur.All(ctx, &oldest); err != nil {
		return err
	}

	ids := make([]interface{}, len(oldest))
	for i, doc := range oldest {
		ids[i] = doc.ID
	}
	_, err = r.col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	return err
}
