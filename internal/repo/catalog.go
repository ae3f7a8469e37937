package repo

import (
	"context"
	"strings"

	"github.com/Skotchmaster/online_bookstore/internal/models"
)

type BookFilter struct {
	Query       string
	CategoryID  *uint
	AuthorID    *uint
	PublisherID *uint
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func (r *GormRepo) ListBooks(ctx context.Context, page Page) ([]models.Book, error) {
	q := r.DB.WithContext(ctx).Model(&models.Book{}).Order("created_at DESC").Order("id DESC")
	return list[models.Book](ctx, "books.list", page.apply(q))
}

func (r *GormRepo) SearchBooks(ctx context.Context, f BookFilter, page Page) ([]models.Book, error) {
	q := r.DB.WithContext(ctx).Model(&models.Book{}).
		Where(`title LIKE ? ESCAPE '\'`, "%"+escapeLike(f.Query)+"%")

	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.AuthorID != nil {
		q = q.Where("author_id = ?", *f.AuthorID)
	}
	if f.PublisherID != nil {
		q = q.Where("publisher_id = ?", *f.PublisherID)
	}

	q = q.Order("created_at DESC").Order("id DESC")
	return list[models.Book](ctx, "books.search", page.apply(q))
}

func (r *GormRepo) FeaturedBooks(ctx context.Context, limit int) ([]models.Book, error) {
	q := r.DB.WithContext(ctx).Model(&models.Book{}).
		Where("is_featured = ?", true).
		Order("created_at DESC").Order("id DESC")
	return list[models.Book](ctx, "books.featured", Page{Limit: limit}.apply(q))
}

func (r *GormRepo) GetBook(ctx context.Context, id uint) (*models.Book, error) {
	return getByID[models.Book](ctx, r.DB, "books.get", id)
}

func (r *GormRepo) CreateBook(ctx context.Context, b *models.Book) (*models.Book, error) {
	return create(ctx, r.DB, b)
}

func (r *GormRepo) UpdateBook(ctx context.Context, id uint, fields map[string]any) (*models.Book, error) {
	return updateByID[models.Book](ctx, r.DB, id, fields)
}

func (r *GormRepo) DeleteBook(ctx context.Context, id uint) error {
	return deleteByID[models.Book](ctx, r.DB, id)
}
