package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/contrib-fyi/server/internal/models"
)

// maxPicks bounds the bookmark list; the oldest picks fall off first.
const maxPicks = 200

// pickDoc is the stored shape: the snapshot plus when it was bookmarked.
type pickDoc struct {
	models.IssueSnapshot `bson:",inline"`
	PickedAt             time.Time `bson:"picked_at"`
}

// PickMongo satisfies service.PickRepository on a "picks" collection.
type PickMongo struct {
	col *mongo.Collection
}

// NewPickRepository wires the collection.
func NewPickRepository(db *mongo.Database) *PickMongo {
	return &PickMongo{col: db.Collection("picks")}
}

// Insert stores a bookmark unless the issue is already picked, then trims the
// collection back to the bound.
func (r *PickMongo) Insert(ctx context.Context, snapshot models.IssueSnapshot) error {
	count, err := r.col.CountDocuments(ctx, bson.M{"id": snapshot.ID})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	doc := pickDoc{IssueSnapshot: snapshot, PickedAt: time.Now()}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return err
	}

	return r.trim(ctx)
}

// Remove deletes a bookmark by issue id.
func (r *PickMongo) Remove(ctx context.Context, issueID int64) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"id": issueID})
	return err
}

// List returns every bookmark, newest first.
func (r *PickMongo) List(ctx context.Context) ([]models.IssueSnapshot, error) {
	opts := options.Find().SetSort(bson.D{{Key: "picked_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []pickDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	picks := make([]models.IssueSnapshot, len(docs))
	for i, doc := range docs {
		picks[i] = doc.IssueSnapshot
	}
	return picks, nil
}

// Exists reports whether the issue is bookmarked.
func (r *PickMongo) Exists(ctx context.Context, issueID int64) (bool, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{"id": issueID})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// trim deletes the oldest picks beyond the bound.
func (r *PickMongo) trim(ctx context.Context) error {
	count, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	excess := count - maxPicks
	if excess <= 0 {
		return nil
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "picked_at", Value: 1}}).
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
