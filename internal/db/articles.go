package db

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/arzan03/newsroom/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ArticleRepository stores articles in the articles collection.
type ArticleRepository struct {
	coll *mongo.Collection
}

// NewArticleRepository uses the articles collection of database.
func NewArticleRepository(database *mongo.Database) *ArticleRepository {
	return &ArticleRepository{coll: database.Collection(articlesCollection)}
}

// Create inserts a and sets its id.
func (r *ArticleRepository) Create(ctx context.Context, a *models.Article) error {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, a); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.ErrSlugExists
		}
		return fmt.Errorf("insert article: %w", err)
	}
	return nil
}

// FindByID returns the article with id.
func (r *ArticleRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Article, error) {
	var a models.Article
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("find article: %w", err)
	}
	return &a, nil
}

// SlugTaken reports whether another article than except already uses slug.
func (r *ArticleRepository) SlugTaken(ctx context.Context, slug string, except primitive.ObjectID) (bool, error) {
	filter := bson.M{"slug": slug}
	if !except.IsZero() {
		filter["_id"] = bson.M{"$ne": except}
	}
	n, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("check slug: %w", err)
	}
	return n > 0, nil
}

// List returns matching articles, newest first, in the skip/limit window.
func (r *ArticleRepository) List(ctx context.Context, f models.ArticleFilter, skip, limit int64) ([]models.Article, error) {
	if skip < 0 || limit < 0 {
		return nil, errNegativeWindow
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "publishedAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, articleFilter(f), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve articles: %w", err)
	}
	defer cursor.Close(ctx)

	articles := []models.Article{}
	if err := cursor.All(ctx, &articles); err != nil {
		return nil, fmt.Errorf("error decoding articles: %w", err)
	}
	return articles, nil
}

// Count returns the number of matching articles.
func (r *ArticleRepository) Count(ctx context.Context, f models.ArticleFilter) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, articleFilter(f))
	if err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return n, nil
}

// IncrementViewsByID atomically bumps the view counter of id.
func (r *ArticleRepository) IncrementViewsByID(ctx context.Context, id primitive.ObjectID) (*models.Article, error) {
	return r.incrementViews(ctx, bson.M{"_id": id})
}

// IncrementViewsBySlug atomically bumps the view counter of slug.
func (r *ArticleRepository) IncrementViewsBySlug(ctx context.Context, slug string) (*models.Article, error) {
	return r.incrementViews(ctx, bson.M{"slug": slug})
}

func (r *ArticleRepository) incrementViews(ctx context.Context, filter bson.M) (*models.Article, error) {
	return r.findOneAndUpdate(ctx, filter, bson.M{"$inc": bson.M{"views": 1}})
}

// Update writes every editable field of a. Views and CreatedAt are left to
// the stored document.
func (r *ArticleRepository) Update(ctx context.Context, a *models.Article) (*models.Article, error) {
	set := bson.M{
		"title":       a.Title,
		"content":     a.Content,
		"author":      a.Author,
		"category":    a.Category,
		"featured":    a.Featured,
		"publishedAt": a.PublishedAt,
		"slug":        a.Slug,
		"updatedAt":   a.UpdatedAt,
	}
	update := bson.M{"$set": set}
	if a.SourceURL != "" {
		set["sourceUrl"] = a.SourceURL
	} else {
		update["$unset"] = bson.M{"sourceUrl": ""}
	}

	updated, err := r.findOneAndUpdate(ctx, bson.M{"_id": a.ID}, update)
	if err != nil && mongo.IsDuplicateKeyError(err) {
		return nil, models.ErrSlugExists
	}
	return updated, err
}

// Delete removes the article with id.
func (r *ArticleRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *ArticleRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*models.Article, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var a models.Article
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("update article: %w", err)
	}
	return &a, nil
}

func articleFilter(f models.ArticleFilter) bson.M {
	filter := bson.M{}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": re},
			bson.M{"content": re},
		}
	}
	return filter
}
