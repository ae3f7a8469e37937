package repo

import (
	"context"

	"github.com/Skotchmaster/online_bookstore/internal/models"
)

func (r *GormRepo) ListAuthors(ctx context.Context) ([]models.Author, error) {
	q := r.DB.WithContext(ctx).Model(&models.Author{}).Order("name ASC")
	return list[models.Author](ctx, "authors.list", q)
}

func (r *GormRepo) GetAuthor(ctx context.Context, id uint) (*models.Author, error) {
	return getByID[models.Author](ctx, r.DB, "authors.get", id)
}

func (r *GormRepo) CreateAuthor(ctx context.Context, a *models.Author) (*models.Author, error) {
	return create(ctx, r.DB, a)
}

func (r *GormRepo) UpdateAuthor(ctx context.Context, id uint, fields map[string]any) (*models.Author, error) {
	return updateByID[models.Author](ctx, r.DB, id, fields)
}

func (r *GormRepo) DeleteAuthor(ctx context.Context, id uint) error {
	return deleteByID[models.Author](ctx, r.DB, id)
}

func (r *GormRepo) ListPublishers(ctx context.Context) ([]models.Publisher, error) {
	q := r.DB.WithContext(ctx).Model(&models.Publisher{}).Order("name ASC")
	return list[models.Publisher](ctx, "publishers.list", q)
}

func (r *GormRepo) GetPublisher(ctx context.Context, id uint) (*models.Publisher, error) {
	return getByID[models.Publisher](ctx, r.DB, "publishers.get", id)
}

func (r *GormRepo) CreatePublisher(ctx context.Context, p *models.Publisher) (*models.Publisher, error) {
	return create(ctx, r.DB, p)
}

func (r *GormRepo) UpdatePublisher(ctx context.Context, id uint, fields map[string]any) (*models.Publisher, error) {
	return updateByID[models.Publisher](ctx, r.DB, id, fields)
}

func (r *GormRepo) DeletePublisher(ctx context.Context, id uint) error {
	return deleteByID[models.Publisher](ctx, r.DB, id)
}

func (r *GormRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	q := r.DB.WithContext(ctx).Model(&models.Category{}).Order("name ASC")
	return list[models.Category](ctx, "categories.list", q)
}

func (r *GormRepo) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	return getByID[models.Category](ctx, r.DB, "categories.get", id)
}

func (r *GormRepo) CreateCategory(ctx context.Context, c *models.Category) (*models.Category, error) {
	return create(ctx, r.DB, c)
}

func (r *GormRepo) UpdateCategory(ctx context.Context, id uint, fields map[string]any) (*models.Category, error) {
	return updateByID[models.Category](ctx, r.DB, id, fields)
}

func (r *GormRepo) DeleteCategory(ctx context.Context, id uint) error {
	return deleteByID[models.Category](ctx, r.DB, id)
}
