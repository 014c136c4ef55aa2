package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/arzan03/newsroom/internal/metrics"
	"github.com/arzan03/newsroom/internal/models"
	"github.com/arzan03/newsroom/internal/utils"
	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 50

	// maxSlugAttempts bounds the numeric suffixes tried for a taken slug.
	maxSlugAttempts = 100
)

// ListParams are the raw paging and filter inputs of a listing request.
type ListParams struct {
	Page     int
	Limit    int
	Category string
	Search   string
}

// ArticlePage is one page of a listing plus the total match count.
type ArticlePage struct {
	Articles []models.Article `json:"articles"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
	HasMore  bool             `json:"hasMore"`
}

// ArticleInput is the payload for creating an article.
type ArticleInput struct {
	Title       string     `json:"title" validate:"required,max=300"`
	Content     string     `json:"content" validate:"required"`
	Author      string     `json:"author" validate:"max=120"`
	Category    string     `json:"category" validate:"required,category"`
	Featured    bool       `json:"featured"`
	PublishedAt *time.Time `json:"publishedAt"`
	SourceURL   string     `json:"sourceUrl" validate:"omitempty,url"`
}

// ArticlePatch holds the fields of an edit; nil fields are left unchanged.
type ArticlePatch struct {
	Title       *string    `json:"title" validate:"omitempty,min=1,max=300"`
	Content     *string    `json:"content" validate:"omitempty,min=1"`
	Author      *string    `json:"author" validate:"omitempty,max=120"`
	Category    *string    `json:"category" validate:"omitempty,category"`
	Featured    *bool      `json:"featured"`
	PublishedAt *time.Time `json:"publishedAt"`
	SourceURL   *string    `json:"sourceUrl" validate:"omitempty,url"`
}

// ArticleService implements article listing, reads and editing.
type ArticleService struct {
	articles ArticleStore
	now      func() time.Time
	log      *zap.Logger
}

// NewArticleService creates an ArticleService over the given store.
func NewArticleService(articles ArticleStore, log *zap.Logger) *ArticleService {
	return &ArticleService{articles: articles, now: time.Now, log: log}
}

// List returns one page of articles, newest first. Page is clamped to >= 1 and
// limit to [1, MaxPageSize]; zero values mean the defaults.
func (s *ArticleService) List(ctx context.Context, p ListParams) (*ArticlePage, error) {
	page, limit := normalizePage(p.Page, p.Limit)

	filter := models.ArticleFilter{Search: strings.TrimSpace(p.Search)}
	if p.Category != models.CategoryAll {
		filter.Category = strings.TrimSpace(p.Category)
	}

	var (
		articles []models.Article
		total    int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		articles, err = s.articles.List(gctx, filter, int64((page-1)*limit), int64(limit))
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.articles.Count(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &ArticlePage{
		Articles: articles,
		Total:    total,
		Page:     page,
		Limit:    limit,
		HasMore:  int64(page*limit) < total,
	}, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit == 0 {
		limit = DefaultPageSize
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	// keep page*limit within int
	if maxPage := math.MaxInt / limit; page > maxPage {
		page = maxPage
	}
	return page, limit
}

// Get fetches one article by id or slug and counts the read.
func (s *ArticleService) Get(ctx context.Context, idOrSlug string) (*models.Article, error) {
	var (
		article *models.Article
		err     error
	)
	if primitive.IsValidObjectID(idOrSlug) {
		id, _ := primitive.ObjectIDFromHex(idOrSlug)
		article, err = s.articles.IncrementViewsByID(ctx, id)
	} else {
		article, err = s.articles.IncrementViewsBySlug(ctx, idOrSlug)
	}
	if err != nil {
		return nil, err
	}
	metrics.ArticleViewsTotal.Inc()
	return article, nil
}

// Create validates in, derives a unique slug and stores the article.
func (s *ArticleService) Create(ctx context.Context, in ArticleInput) (*models.Article, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Author = strings.TrimSpace(in.Author)
	if err := utils.Validate(in); err != nil {
		return nil, err
	}

	now := s.now()
	article := &models.Article{
		Title:       in.Title,
		Content:     in.Content,
		Author:      in.Author,
		Category:    in.Category,
		Featured:    in.Featured,
		PublishedAt: now,
		SourceURL:   in.SourceURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if article.Author == "" {
		article.Author = models.DefaultAuthor
	}
	if in.PublishedAt != nil {
		article.PublishedAt = *in.PublishedAt
	}

	var err error
	if article.Slug, err = s.uniqueSlug(ctx, article.Title, primitive.NilObjectID); err != nil {
		return nil, err
	}
	if err := s.articles.Create(ctx, article); err != nil {
		return nil, err
	}
	s.log.Info("Article created", zap.String("articleID", article.ID.Hex()), zap.String("slug", article.Slug))
	return article, nil
}

// Update applies patch to the article with id. The slug is recomputed only
// when the title changes.
func (s *ArticleService) Update(ctx context.Context, id string, patch ArticlePatch) (*models.Article, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil {
		t := strings.TrimSpace(*patch.Title)
		patch.Title = &t
	}
	if err := utils.Validate(patch); err != nil {
		return nil, err
	}

	article, err := s.articles.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil && *patch.Title != article.Title {
		article.Title = *patch.Title
		if article.Slug, err = s.uniqueSlug(ctx, article.Title, article.ID); err != nil {
			return nil, err
		}
	}
	if patch.Content != nil {
		article.Content = *patch.Content
	}
	if patch.Author != nil {
		article.Author = strings.TrimSpace(*patch.Author)
		if article.Author == "" {
			article.Author = models.DefaultAuthor
		}
	}
	if patch.Category != nil {
		article.Category = *patch.Category
	}
	if patch.Featured != nil {
		article.Featured = *patch.Featured
	}
	if patch.PublishedAt != nil {
		article.PublishedAt = *patch.PublishedAt
	}
	if patch.SourceURL != nil {
		article.SourceURL = *patch.SourceURL
	}
	article.UpdatedAt = s.now()

	updated, err := s.articles.Update(ctx, article)
	if err != nil {
		return nil, err
	}
	s.log.Info("Article updated", zap.String("articleID", updated.ID.Hex()))
	return updated, nil
}

// Delete removes the article with id.
func (s *ArticleService) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.articles.Delete(ctx, oid); err != nil {
		return err
	}
	s.log.Info("Article deleted", zap.String("articleID", id))
	return nil
}

// Slugify turns a title into a lower-case, ASCII, dash-separated slug.
func Slugify(title string) string {
	return slug.Make(title)
}

func (s *ArticleService) uniqueSlug(ctx context.Context, title string, self primitive.ObjectID) (string, error) {
	base := Slugify(title)
	if base == "" {
		base = "article"
	}
	candidate := base
	for i := 2; i <= maxSlugAttempts+1; i++ {
		taken, err := s.articles.SlugTaken(ctx, candidate, self)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return "", errors.Join(models.ErrSlugExists, fmt.Errorf("no free slug for %q", base))
}
