package seed

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/online_bookstore/internal/logging"
	"github.com/Skotchmaster/online_bookstore/internal/service"
	"github.com/Skotchmaster/online_bookstore/internal/transport"
)

type book struct {
	title, description, price, isbn string
	author, publisher, category     int
	stock, pages, year              int
	featured                        bool
}

var (
	authors = []transport.CreateAuthorRequest{
		{Name: "Pramoedya Ananta Toer", Bio: ptr("Penulis Indonesia terkenal")},
		{Name: "Andrea Hirata", Bio: ptr("Penulis Laskar Pelangi")},
		{Name: "Tere Liye", Bio: ptr("Penulis novel bestseller Indonesia")},
		{Name: "Haruki Murakami", Bio: ptr("Penulis Jepang terkenal")},
		{Name: "J.K. Rowling", Bio: ptr("Penulis Harry Potter")},
	}
	publishers = []transport.CreatePublisherRequest{
		{Name: "Gramedia Pustaka Utama", Website: ptr("https://gramedia.com")},
		{Name: "Bentang Pustaka", Website: ptr("https://bentangpustaka.com")},
		{Name: "Penerbit Erlangga", Website: ptr("https://erlangga.co.id")},
		{Name: "Bloomsbury Publishing", Website: ptr("https://bloomsbury.com")},
		{Name: "Kodansha", Website: ptr("https://kodansha.co.jp")},
	}
	categories = []transport.CreateCategoryRequest{
		{Name: "Fiksi", Description: ptr("Buku cerita fiksi")},
		{Name: "Non-Fiksi", Description: ptr("Buku non-fiksi dan referensi")},
		{Name: "Misteri", Description: ptr("Novel misteri dan thriller")},
		{Name: "Fantasi", Description: ptr("Buku fantasi dan petualangan")},
		{Name: "Biografi", Description: ptr("Buku biografi dan sejarah")},
		{Name: "Anak-anak", Description: ptr("Buku untuk anak-anak")},
		{Name: "Pengembangan Diri", Description: ptr("Buku pengembangan diri")},
		{Name: "Seni & Budaya", Description: ptr("Buku tentang seni dan budaya")},
	}
	// author, publisher and category are indexes into the slices above
	books = []book{
		{"Laskar Pelangi", "Kisah inspiratif tentang anak-anak di Belitung", "79000.00", "9789793062847", 1, 1, 0, 50, 529, 2005, true},
		{"Bumi Manusia", "Tetralogi Buru karya Pramoedya Ananta Toer", "89000.00", "9789793062854", 0, 0, 0, 35, 540, 1980, true},
		{"Pulang", "Novel tentang perjalanan pulang ke akar", "75000.00", "9789793063561", 2, 1, 0, 45, 384, 2015, true},
		{"Norwegian Wood", "Novel romantis dari Haruki Murakami", "95000.00", "9784061329935", 3, 4, 0, 30, 296, 1987, false},
		{"Harry Potter and the Philosopher's Stone", "Petualangan pertama Harry Potter", "120000.00", "9780747532699", 4, 3, 3, 60, 223, 1997, true},
		{"Atomic Habits", "Panduan untuk membangun kebiasaan yang baik", "85000.00", "9780735211292", 0, 0, 6, 40, 320, 2018, false},
	}
)

func ptr[T any](v T) *T { return &v }

type Result struct {
	Authors, Publishers, Categories, Books int
}

// Run loads the demo catalog through the regular services, so catalog events
// and index updates fire like they do for admin writes.
func Run(ctx context.Context, refs *service.ReferenceService, catalog *service.CatalogService) (Result, error) {
	l := logging.FromContext(ctx)
	var res Result

	authorIDs := make([]uint, 0, len(authors))
	for _, a := range authors {
		created, err := refs.CreateAuthor(ctx, a)
		if err != nil {
			return res, fmt.Errorf("author %q: %w", a.Name, err)
		}
		authorIDs = append(authorIDs, created.ID)
	}
	res.Authors = len(authorIDs)

	publisherIDs := make([]uint, 0, len(publishers))
	for _, p := range publishers {
		created, err := refs.CreatePublisher(ctx, p)
		if err != nil {
			return res, fmt.Errorf("publisher %q: %w", p.Name, err)
		}
		publisherIDs = append(publisherIDs, created.ID)
	}
	res.Publishers = len(publisherIDs)

	categoryIDs := make([]uint, 0, len(categories))
	for _, c := range categories {
		created, err := refs.CreateCategory(ctx, c)
		if err != nil {
			return res, fmt.Errorf("category %q: %w", c.Name, err)
		}
		categoryIDs = append(categoryIDs, created.ID)
	}
	res.Categories = len(categoryIDs)

	for _, b := range books {
		_, err := catalog.CreateBook(ctx, transport.CreateBookRequest{
			Title:         b.title,
			Description:   ptr(b.description),
			AuthorID:      authorIDs[b.author],
			PublisherID:   publisherIDs[b.publisher],
			CategoryID:    categoryIDs[b.category],
			Price:         b.price,
			Stock:         b.stock,
			ISBN:          ptr(b.isbn),
			Pages:         ptr(b.pages),
			PublishedYear: ptr(b.year),
			IsFeatured:    b.featured,
		})
		if err != nil {
			return res, fmt.Errorf("book %q: %w", b.title, err)
		}
		res.Books++
	}

	l.Info("seed_complete", "authors", res.Authors, "publishers", res.Publishers, "categories", res.Categories, "books", res.Books)
	return res, nil
}
