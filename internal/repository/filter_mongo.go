package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/contrib-fyi/server/internal/models"
)

// filterDocID keys the single saved-filters document.
const filterDocID = "default"

type filterDoc struct {
	ID      string               `bson:"_id"`
	Filters models.SearchFilters `bson:"filters"`
}

// FilterMongo satisfies service.FilterRepository on a "filters" collection.
type FilterMongo struct {
	col *mongo.Collection
}

// NewFilterRepository wires the collection.
func NewFilterRepository(db *mongo.Database) *FilterMongo {
	return &FilterMongo{col: db.Collection("filters")}
}

// Get loads the saved filter defaults. The boolean reports whether anything
// was saved.
func (r *FilterMongo) Get(ctx context.Context) (models.SearchFilters, bool, error) {
	var doc filterDoc
	err := r.col.FindOne(ctx, bson.M{"_id": filterDocID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.SearchFilters{}, false, nil
	}
	if err != nil {
		return models.SearchFilters{}, false, err
	}
	return doc.Filters, true, nil
}

// Put saves the filter defaults, replacing any previous document.
func (r *FilterMongo) Put(ctx context.Context, filters models.SearchFilters) error {
	doc := filterDoc{ID: filterDocID, Filters: filters}
	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": filterDocID}, doc, opts)
	return err
}

// Delete removes the saved defaults so the stock ones apply again.
func (r *FilterMongo) Delete(ctx context.Context) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": filterDocID})
	return err
}
