package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainproperty "stayseek/internal/domain/property"
)

type CategoryRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{db: db, col: db.Collection("categories")}
}

// Visible returns global categories plus the tenant's own ones.
func (r *CategoryRepository) Visible(ctx context.Context, tenant domainproperty.TenantID) ([]domainproperty.Category, error) {
	filter := bson.M{"tenant_id": int64(0)}
	if tenant != 0 {
		filter = bson.M{"$or": bson.A{
			bson.M{"tenant_id": int64(0)},
			bson.M{"tenant_id": int64(tenant)},
		}}
	}
	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []domainproperty.Category
	for cursor.Next(ctx) {
		var doc categoryDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, domainproperty.Category{
			ID:     domainproperty.CategoryID(doc.ID),
			Name:   doc.Name,
			Tenant: domainproperty.TenantID(doc.TenantID),
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Seed inserts a category when absent, used by bootstrap fixtures.
func (r *CategoryRepository) Seed(ctx context.Context, c domainproperty.Category) (domainproperty.Category, error) {
	if c.ID == 0 {
		id, err := nextSequence(ctx, r.db, "category")
		if err != nil {
			return c, err
		}
		c.ID = domainproperty.CategoryID(id)
	}
	doc := categoryDocument{ID: int64(c.ID), Name: c.Name, TenantID: int64(c.Tenant)}
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	return c, err
}

type categoryDocument struct {
	ID       int64  `bson:"_id"`
	Name     string `bson:"name"`
	TenantID int64  `bson:"tenant_id"`
}

var _ domainproperty.CategoryRepository = (*CategoryRepository)(nil)
