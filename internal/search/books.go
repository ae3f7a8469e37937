package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/elastic/go-elasticsearch/v9/esapi"

	"github.com/Skotchmaster/online_bookstore/internal/logging"
	"github.com/Skotchmaster/online_bookstore/internal/models"
	"github.com/Skotchmaster/online_bookstore/internal/repo"
)

var bookMapping = map[string]any{
	"mappings": map[string]any{
		"properties": map[string]any{
			"id":           map[string]any{"type": "long"},
			"title":        map[string]any{"type": "keyword"},
			"author_id":    map[string]any{"type": "long"},
			"publisher_id": map[string]any{"type": "long"},
			"category_id":  map[string]any{"type": "long"},
			"is_featured":  map[string]any{"type": "boolean"},
			"price":        map[string]any{"type": "keyword"},
			"created_at":   map[string]any{"type": "date"},
		},
	},
}

// BookIndex serves title search from Elasticsearch and keeps the index in
// step with catalog writes. Matching mirrors the SQL search: case-sensitive
// substring on title, exact filters, newest first, no scoring.
type BookIndex struct {
	ES    *elasticsearch.Client
	Index string
}

func NewBookIndex(es *elasticsearch.Client, index string) *BookIndex {
	return &BookIndex{ES: es, Index: index}
}

// EnsureIndex creates the index with its mapping when it does not exist yet.
func (b *BookIndex) EnsureIndex(ctx context.Context) error {
	res, err := b.ES.Indices.Exists([]string{b.Index}, b.ES.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("index exists: %w", err)
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}

	body, err := encode(bookMapping)
	if err != nil {
		return err
	}
	res, err = b.ES.Indices.Create(b.Index, b.ES.Indices.Create.WithContext(ctx), b.ES.Indices.Create.WithBody(body))
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer res.Body.Close()
	return responseErr("create index", res.StatusCode, res.IsError(), res.Body)
}

func wildcardEscape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)
	return r.Replace(s)
}

func buildQuery(f repo.BookFilter, page repo.Page) map[string]any {
	filters := []any{
		map[string]any{"wildcard": map[string]any{
			"title": map[string]any{"value": "*" + wildcardEscape(f.Query) + "*"},
		}},
	}
	terms := []struct {
		field string
		v     *uint
	}{
		{"category_id", f.CategoryID},
		{"author_id", f.AuthorID},
		{"publisher_id", f.PublisherID},
	}
	for _, t := range terms {
		if t.v != nil {
			filters = append(filters, map[string]any{"term": map[string]any{t.field: *t.v}})
		}
	}

	return map[string]any{
		"query": map[string]any{"bool": map[string]any{"filter": filters}},
		"sort": []any{
			map[string]any{"created_at": "desc"},
			map[string]any{"id": "desc"},
		},
		"from": page.Offset,
		"size": page.Limit,
	}
}

func (b *BookIndex) SearchBooks(ctx context.Context, f repo.BookFilter, page repo.Page) ([]models.Book, error) {
	body, err := encode(buildQuery(f, page))
	if err != nil {
		return nil, err
	}

	res, err := b.ES.Search(
		b.ES.Search.WithContext(ctx),
		b.ES.Search.WithIndex(b.Index),
		b.ES.Search.WithBody(body),
	)
	if err != nil {
		logging.FromContext(ctx).Warn("search_unavailable", "index", b.Index, "error", err)
		return []models.Book{}, nil
	}
	defer res.Body.Close()
	if err := responseErr("search", res.StatusCode, res.IsError(), res.Body); err != nil {
		return nil, err
	}

	var r struct {
		Hits struct {
			Hits []struct {
				Source models.Book `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	books := make([]models.Book, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		books[i] = hit.Source
	}
	return books, nil
}

// IndexBook writes the document and waits until it is visible to search.
func (b *BookIndex) IndexBook(ctx context.Context, book *models.Book) error {
	return b.put(ctx, book, "wait_for")
}

func (b *BookIndex) put(ctx context.Context, book *models.Book, refresh string) error {
	body, err := encode(book)
	if err != nil {
		return err
	}
	opts := []func(*esapi.IndexRequest){
		b.ES.Index.WithContext(ctx),
		b.ES.Index.WithDocumentID(docID(book.ID)),
	}
	if refresh != "" {
		opts = append(opts, b.ES.Index.WithRefresh(refresh))
	}
	res, err := b.ES.Index(b.Index, body, opts...)
	if err != nil {
		return fmt.Errorf("index book %d: %w", book.ID, err)
	}
	defer res.Body.Close()
	return responseErr("index book", res.StatusCode, res.IsError(), res.Body)
}

// BookSource pages through every stored book.
type BookSource interface {
	ListBooks(ctx context.Context, page repo.Page) ([]models.Book, error)
}

var reindexBatch = 100

// Reindex copies every book from src into the index and refreshes it once at
// the end. It returns the number of documents written.
func (b *BookIndex) Reindex(ctx context.Context, src BookSource) (int, error) {
	n := 0
	for offset := 0; ; offset += reindexBatch {
		books, err := src.ListBooks(ctx, repo.Page{Limit: reindexBatch, Offset: offset})
		if err != nil {
			return n, fmt.Errorf("reindex: list books: %w", err)
		}
		for i := range books {
			if err := b.put(ctx, &books[i], ""); err != nil {
				return n, fmt.Errorf("reindex: %w", err)
			}
			n++
		}
		if len(books) < reindexBatch {
			break
		}
	}

	res, err := b.ES.Indices.Refresh(
		b.ES.Indices.Refresh.WithContext(ctx),
		b.ES.Indices.Refresh.WithIndex(b.Index),
	)
	if err != nil {
		return n, fmt.Errorf("reindex: refresh: %w", err)
	}
	defer res.Body.Close()
	return n, responseErr("refresh", res.StatusCode, res.IsError(), res.Body)
}

// DeleteBook removes the document. A document that is already gone is fine.
func (b *BookIndex) DeleteBook(ctx context.Context, id uint) error {
	res, err := b.ES.Delete(b.Index, docID(id),
		b.ES.Delete.WithContext(ctx),
		b.ES.Delete.WithRefresh("wait_for"),
	)
	if err != nil {
		return fmt.Errorf("delete book %d: %w", id, err)
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusNotFound {
		return nil
	}
	return responseErr("delete book", res.StatusCode, res.IsError(), res.Body)
}

func docID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func encode(v any) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		return nil, fmt.Errorf("encode body: %w", err)
	}
	return &buf, nil
}

func responseErr(op string, status int, isErr bool, body io.Reader) error {
	if !isErr {
		return nil
	}
	msg, _ := io.ReadAll(io.LimitReader(body, 1024))
	return fmt.Errorf("%s: status %d: %s", op, status, msg)
}
