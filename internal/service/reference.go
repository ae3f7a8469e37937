package service

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/online_bookstore/internal/models"
	"github.com/Skotchmaster/online_bookstore/internal/repo"
	"github.com/Skotchmaster/online_bookstore/internal/transport"
	"github.com/Skotchmaster/online_bookstore/internal/validation"
)

// ReferenceService manages authors, publishers and categories.
type ReferenceService struct {
	Repo   *repo.GormRepo
	Events EventPublisher
}

func validate(req any) error {
	if err := validation.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

func setIfPresent[T any](fields map[string]any, column string, v *T) {
	if v != nil {
		fields[column] = *v
	}
}

func (s *ReferenceService) ListAuthors(ctx context.Context) ([]models.Author, error) {
	return s.Repo.ListAuthors(ctx)
}

func (s *ReferenceService) GetAuthor(ctx context.Context, id uint) (*models.Author, error) {
	return s.Repo.GetAuthor(ctx, id)
}

func (s *ReferenceService) CreateAuthor(ctx context.Context, req transport.CreateAuthorRequest) (*models.Author, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	a, err := s.Repo.CreateAuthor(ctx, &models.Author{Name: req.Name, Bio: req.Bio})
	if err != nil {
		return nil, err
	}
	publishCatalogEvent(ctx, s.Events, a.ID, "author.created", a)
	return a, nil
}

func (s *ReferenceService) UpdateAuthor(ctx context.Context, id uint, req transport.PatchAuthorRequest) (*models.Author, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	fields := map[string]any{}
	setIfPresent(fields, "name", req.Name)
	setIfPresent(fields, "bio", req.Bio)

	a, err := s.Repo.UpdateAuthor(ctx, id, fields)
	if err != nil || a == nil {
		return a, err
	}
	publishCatalogEvent(ctx, s.Events, a.ID, "author.updated", a)
	return a, nil
}

func (s *ReferenceService) DeleteAuthor(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteAuthor(ctx, id); err != nil {
		return err
	}
	publishCatalogEvent(ctx, s.Events, id, "author.deleted", map[string]uint{"id": id})
	return nil
}

func (s *ReferenceService) ListPublishers(ctx context.Context) ([]models.Publisher, error) {
	return s.Repo.ListPublishers(ctx)
}

func (s *ReferenceService) GetPublisher(ctx context.Context, id uint) (*models.Publisher, error) {
	return s.Repo.GetPublisher(ctx, id)
}

func (s *ReferenceService) CreatePublisher(ctx context.Context, req transport.CreatePublisherRequest) (*models.Publisher, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	p, err := s.Repo.CreatePublisher(ctx, &models.Publisher{Name: req.Name, Website: req.Website})
	if err != nil {
		return nil, err
	}
	publishCatalogEvent(ctx, s.Events, p.ID, "publisher.created", p)
	return p, nil
}

func (s *ReferenceService) UpdatePublisher(ctx context.Context, id uint, req transport.PatchPublisherRequest) (*models.Publisher, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	fields := map[string]any{}
	setIfPresent(fields, "name", req.Name)
	setIfPresent(fields, "website", req.Website)

	p, err := s.Repo.UpdatePublisher(ctx, id, fields)
	if err != nil || p == nil {
		return p, err
	}
	publishCatalogEvent(ctx, s.Events, p.ID, "publisher.updated", p)
	return p, nil
}

func (s *ReferenceService) DeletePublisher(ctx context.Context, id uint) error {
	if err := s.Repo.DeletePublisher(ctx, id); err != nil {
		return err
	}
	publishCatalogEvent(ctx, s.Events, id, "publisher.deleted", map[string]uint{"id": id})
	return nil
}

func (s *ReferenceService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.ListCategories(ctx)
}

func (s *ReferenceService) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	return s.Repo.GetCategory(ctx, id)
}

func (s *ReferenceService) CreateCategory(ctx context.Context, req transport.CreateCategoryRequest) (*models.Category, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	c, err := s.Repo.CreateCategory(ctx, &models.Category{Name: req.Name, Description: req.Description})
	if err != nil {
		return nil, err
	}
	publishCatalogEvent(ctx, s.Events, c.ID, "category.created", c)
	return c, nil
}

func (s *ReferenceService) UpdateCategory(ctx context.Context, id uint, req transport.PatchCategoryRequest) (*models.Category, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	fields := map[string]any{}
	setIfPresent(fields, "name", req.Name)
	setIfPresent(fields, "description", req.Description)

	c, err := s.Repo.UpdateCategory(ctx, id, fields)
	if err != nil || c == nil {
		return c, err
	}
	publishCatalogEvent(ctx, s.Events, c.ID, "category.updated", c)
	return c, nil
}

func (s *ReferenceService) DeleteCategory(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteCategory(ctx, id); err != nil {
		return err
	}
	publishCatalogEvent(ctx, s.Events, id, "category.deleted", map[string]uint{"id": id})
	return nil
}
