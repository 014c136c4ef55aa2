package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CategoryAll = "All"

	DefaultAuthor = "Staff"
)

// Categories lists every category an article may be filed under.
var Categories = []string{
	"Technology",
	"Business",
	"Politics",
	"Sports",
	"Entertainment",
	"Health",
	"Science",
	"World",
}

// IsValidCategory checks if a category is one of Categories.
func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Article is a published news item.
type Article struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Content     string             `bson:"content" json:"content"`
	Author      string             `bson:"author" json:"author"`
	Category    string             `bson:"category" json:"category"`
	Featured    bool               `bson:"featured" json:"featured"`
	PublishedAt time.Time          `bson:"publishedAt" json:"publishedAt"`
	Views       int64              `bson:"views" json:"views"`
	Slug        string             `bson:"slug" json:"slug"`
	SourceURL   string             `bson:"sourceUrl,omitempty" json:"sourceUrl,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ArticleFilter narrows an article listing. Empty fields do not filter.
type ArticleFilter struct {
	Category string
	Search   string
}
