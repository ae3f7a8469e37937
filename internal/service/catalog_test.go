package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/online_bookstore/internal/models"
	"github.com/Skotchmaster/online_bookstore/internal/mykafka"
	"github.com/Skotchmaster/online_bookstore/internal/repo"
	"github.com/Skotchmaster/online_bookstore/internal/transport"
)

func validBook(title string) transport.CreateBookRequest {
	return transport.CreateBookRequest{
		Title:       title,
		AuthorID:    1,
		PublisherID: 1,
		CategoryID:  1,
		Price:       "10000.00",
		Stock:       5,
	}
}

func TestCatalogService_CreateAndGetBook(t *testing.T) {
	r, _ := newTestRepo(t)
	events := &fakeEvents{}
	idx := &fakeIndexer{}
	svc := &CatalogService{Repo: r, Events: events, Indexer: idx}
	ctx := context.Background()

	created, err := svc.CreateBook(ctx, validBook("X"))
	require.NoError(t, err)

	got, err := svc.GetBook(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "X", got.Title)
	assert.Equal(t, "10000.00", got.Price.String())
	assert.Equal(t, uint(5), got.Stock)
	assert.Nil(t, got.Description)
	assert.Nil(t, got.ISBN)
	assert.False(t, got.IsFeatured)

	assert.Equal(t, []uint{created.ID}, idx.indexed)
	assert.Equal(t, []string{"book.created"}, events.types())
	assert.Equal(t, mykafka.TopicCatalogEvents, events.events[0].Topic)
}

func TestCatalogService_CreateBook_Validation(t *testing.T) {
	r, _ := newTestRepo(t)
	svc := &CatalogService{Repo: r}

	tests := []struct {
		name   string
		mutate func(*transport.CreateBookRequest)
	}{
		{"empty title", func(req *transport.CreateBookRequest) { req.Title = "" }},
		{"bad price", func(req *transport.CreateBookRequest) { req.Price = "10.5" }},
		{"negative stock", func(req *transport.CreateBookRequest) { req.Stock = -1 }},
		{"missing author", func(req *transport.CreateBookRequest) { req.AuthorID = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validBook("Y")
			tt.mutate(&req)
			_, err := svc.CreateBook(context.Background(), req)
			require.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCatalogService_UpdateBook(t *testing.T) {
	r, _ := newTestRepo(t)
	events := &fakeEvents{}
	svc := &CatalogService{Repo: r, Events: events}
	ctx := context.Background()

	created, err := svc.CreateBook(ctx, validBook("Old"))
	require.NoError(t, err)

	updated, err := svc.UpdateBook(ctx, created.ID, transport.PatchBookRequest{
		Title:      strPtr("New"),
		Price:      strPtr("9.99"),
		Stock:      intPtr(0),
		IsFeatured: boolPtr(true),
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, "9.99", updated.Price.String())
	assert.Equal(t, uint(0), updated.Stock)
	assert.True(t, updated.IsFeatured)
	assert.Equal(t, uint(1), updated.AuthorID)

	missing, err := svc.UpdateBook(ctx, 999, transport.PatchBookRequest{Title: strPtr("Z")})
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = svc.UpdateBook(ctx, created.ID, transport.PatchBookRequest{Price: strPtr("abc")})
	require.ErrorIs(t, err, ErrValidation)

	assert.Equal(t, []string{"book.created", "book.updated"}, events.types())
}

func TestCatalogService_DeleteBook(t *testing.T) {
	r, _ := newTestRepo(t)
	idx := &fakeIndexer{}
	svc := &CatalogService{Repo: r, Indexer: idx}
	ctx := context.Background()

	created, err := svc.CreateBook(ctx, validBook("Gone"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteBook(ctx, created.ID))
	require.NoError(t, svc.DeleteBook(ctx, created.ID))

	got, err := svc.GetBook(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, []uint{created.ID, created.ID}, idx.deleted)
}

func TestCatalogService_SideEffectFailuresDoNotFailWrites(t *testing.T) {
	r, _ := newTestRepo(t)
	svc := &CatalogService{
		Repo:    r,
		Events:  &fakeEvents{err: errBoom},
		Indexer: &fakeIndexer{err: errBoom},
	}
	ctx := context.Background()

	created, err := svc.CreateBook(ctx, validBook("Sturdy"))
	require.NoError(t, err)
	require.NoError(t, svc.DeleteBook(ctx, created.ID))
}

func TestCatalogService_SearchAndPaging(t *testing.T) {
	r, _ := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	ctx := context.Background()

	for _, title := range []string{"Go in Action", "Learning Go", "Rust Book"} {
		_, err := svc.CreateBook(ctx, validBook(title))
		require.NoError(t, err)
	}

	found, err := svc.SearchBooks(ctx, repo.BookFilter{Query: "Go"}, BooksDefaultLimit, 0)
	require.NoError(t, err)
	assert.Len(t, found, 2)

	none, err := svc.SearchBooks(ctx, repo.BookFilter{Query: "nonexistent-xyz"}, BooksDefaultLimit, 0)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = svc.SearchBooks(ctx, repo.BookFilter{Query: ""}, BooksDefaultLimit, 0)
	require.ErrorIs(t, err, ErrValidation)

	spaced, err := svc.SearchBooks(ctx, repo.BookFilter{Query: " "}, BooksDefaultLimit, 0)
	require.NoError(t, err)
	assert.Len(t, spaced, 3)

	_, err = svc.ListBooks(ctx, 0, 0)
	require.ErrorIs(t, err, ErrValidation)
	_, err = svc.ListBooks(ctx, 101, 0)
	require.ErrorIs(t, err, ErrValidation)
	_, err = svc.ListBooks(ctx, 10, -1)
	require.ErrorIs(t, err, ErrValidation)

	books, err := svc.ListBooks(ctx, 2, 0)
	require.NoError(t, err)
	assert.Len(t, books, 2)
	assert.Equal(t, "Rust Book", books[0].Title)
}

type stubSearcher struct {
	called bool
}

func (s *stubSearcher) SearchBooks(context.Context, repo.BookFilter, repo.Page) ([]models.Book, error) {
	s.called = true
	return []models.Book{{Title: "from index"}}, nil
}

func TestCatalogService_UsesConfiguredSearcher(t *testing.T) {
	r, _ := newTestRepo(t)
	stub := &stubSearcher{}
	svc := &CatalogService{Repo: r, Searcher: stub}

	books, err := svc.SearchBooks(context.Background(), repo.BookFilter{Query: "x"}, 5, 0)
	require.NoError(t, err)
	assert.True(t, stub.called)
	require.Len(t, books, 1)
	assert.Equal(t, "from index", books[0].Title)
}

func TestCatalogService_Featured(t *testing.T) {
	r, _ := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	ctx := context.Background()

	req := validBook("Star")
	req.IsFeatured = true
	_, err := svc.CreateBook(ctx, req)
	require.NoError(t, err)
	_, err = svc.CreateBook(ctx, validBook("Plain"))
	require.NoError(t, err)

	featured, err := svc.FeaturedBooks(ctx, FeaturedDefaultLimit)
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, "Star", featured[0].Title)

	_, err = svc.FeaturedBooks(ctx, FeaturedMaxLimit+1)
	require.ErrorIs(t, err, ErrValidation)
}
