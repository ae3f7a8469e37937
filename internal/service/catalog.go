package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Skotchmaster/online_bookstore/internal/logging"
	"github.com/Skotchmaster/online_bookstore/internal/models"
	"github.com/Skotchmaster/online_bookstore/internal/mykafka"
	"github.com/Skotchmaster/online_bookstore/internal/repo"
	"github.com/Skotchmaster/online_bookstore/internal/transport"
	"github.com/Skotchmaster/online_bookstore/internal/util"
)

// BookSearcher runs the title search. The gorm repo and the Elasticsearch
// backend both satisfy it.
type BookSearcher interface {
	SearchBooks(ctx context.Context, f repo.BookFilter, page repo.Page) ([]models.Book, error)
}

// BookIndexer keeps an external search index in step with book writes.
type BookIndexer interface {
	IndexBook(ctx context.Context, b *models.Book) error
	DeleteBook(ctx context.Context, id uint) error
}

type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key, eventType string, payload any) error
}

type CatalogService struct {
	Repo     *repo.GormRepo
	Searcher BookSearcher
	Indexer  BookIndexer
	Events   EventPublisher
}

func (s *CatalogService) searcher() BookSearcher {
	if s.Searcher != nil {
		return s.Searcher
	}
	return s.Repo
}

func (s *CatalogService) ListBooks(ctx context.Context, limit, offset int) ([]models.Book, error) {
	p, err := page(limit, offset, util.MaxPageSize)
	if err != nil {
		return nil, err
	}
	return s.Repo.ListBooks(ctx, p)
}

func (s *CatalogService) SearchBooks(ctx context.Context, f repo.BookFilter, limit, offset int) ([]models.Book, error) {
	if f.Query == "" {
		return nil, fmt.Errorf("%w: query required", ErrValidation)
	}
	p, err := page(limit, offset, util.MaxPageSize)
	if err != nil {
		return nil, err
	}
	return s.searcher().SearchBooks(ctx, f, p)
}

func (s *CatalogService) FeaturedBooks(ctx context.Context, limit int) ([]models.Book, error) {
	if _, err := page(limit, 0, FeaturedMaxLimit); err != nil {
		return nil, err
	}
	return s.Repo.FeaturedBooks(ctx, limit)
}

func (s *CatalogService) GetBook(ctx context.Context, id uint) (*models.Book, error) {
	return s.Repo.GetBook(ctx, id)
}

func (s *CatalogService) CreateBook(ctx context.Context, req transport.CreateBookRequest) (*models.Book, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	price, err := models.ParseMoneyMax(req.Price, models.MaxPrice)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	book := &models.Book{
		Title:         req.Title,
		Description:   req.Description,
		AuthorID:      req.AuthorID,
		PublisherID:   req.PublisherID,
		CategoryID:    req.CategoryID,
		Price:         price,
		Stock:         uint(req.Stock),
		CoverImageURL: req.CoverImageURL,
		CoverImageKey: req.CoverImageKey,
		ISBN:          req.ISBN,
		Pages:         req.Pages,
		PublishedYear: req.PublishedYear,
		IsFeatured:    req.IsFeatured,
	}

	created, err := s.Repo.CreateBook(ctx, book)
	if err != nil {
		return nil, err
	}

	s.index(ctx, created)
	s.publish(ctx, created.ID, "book.created", created)
	return created, nil
}

func (s *CatalogService) UpdateBook(ctx context.Context, id uint, req transport.PatchBookRequest) (*models.Book, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.AuthorID != nil {
		fields["author_id"] = *req.AuthorID
	}
	if req.PublisherID != nil {
		fields["publisher_id"] = *req.PublisherID
	}
	if req.CategoryID != nil {
		fields["category_id"] = *req.CategoryID
	}
	if req.Price != nil {
		price, err := models.ParseMoneyMax(*req.Price, models.MaxPrice)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		fields["price"] = price
	}
	if req.Stock != nil {
		fields["stock"] = uint(*req.Stock)
	}
	if req.CoverImageURL != nil {
		fields["cover_image_url"] = *req.CoverImageURL
	}
	if req.CoverImageKey != nil {
		fields["cover_image_key"] = *req.CoverImageKey
	}
	if req.ISBN != nil {
		fields["isbn"] = *req.ISBN
	}
	if req.Pages != nil {
		fields["pages"] = *req.Pages
	}
	if req.PublishedYear != nil {
		fields["published_year"] = *req.PublishedYear
	}
	if req.IsFeatured != nil {
		fields["is_featured"] = *req.IsFeatured
	}

	updated, err := s.Repo.UpdateBook(ctx, id, fields)
	if err != nil || updated == nil {
		return updated, err
	}

	s.index(ctx, updated)
	s.publish(ctx, updated.ID, "book.updated", updated)
	return updated, nil
}

func (s *CatalogService) DeleteBook(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteBook(ctx, id); err != nil {
		return err
	}

	if s.Indexer != nil {
		if err := s.Indexer.DeleteBook(ctx, id); err != nil {
			logging.FromContext(ctx).Warn("book_unindex_failed", "book_id", id, "error", err)
		}
	}
	s.publish(ctx, id, "book.deleted", map[string]uint{"id": id})
	return nil
}

func (s *CatalogService) index(ctx context.Context, b *models.Book) {
	if s.Indexer == nil {
		return
	}
	if err := s.Indexer.IndexBook(ctx, b); err != nil {
		logging.FromContext(ctx).Warn("book_index_failed", "book_id", b.ID, "error", err)
	}
}

func (s *CatalogService) publish(ctx context.Context, id uint, eventType string, payload any) {
	publishCatalogEvent(ctx, s.Events, id, eventType, payload)
}

func publishCatalogEvent(ctx context.Context, events EventPublisher, id uint, eventType string, payload any) {
	if events == nil {
		return
	}
	key := strconv.FormatUint(uint64(id), 10)
	if err := events.PublishEvent(ctx, mykafka.TopicCatalogEvents, key, eventType, payload); err != nil {
		logging.FromContext(ctx).Warn("catalog_event_failed", "event_type", eventType, "key", key, "error", err)
	}
}
