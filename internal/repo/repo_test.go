package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/online_bookstore/internal/db"
	"github.com/Skotchmaster/online_bookstore/internal/models"
)

func newTestRepo(t *testing.T) (*GormRepo, *gorm.DB) {
	t.Helper()

	gdb, err := db.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })

	return New(gdb), gdb
}

func strPtr(s string) *string { return &s }
func uintPtr(v uint) *uint    { return &v }

func seedBook(t *testing.T, r *GormRepo, title string, categoryID uint, featured bool) *models.Book {
	t.Helper()
	b, err := r.CreateBook(context.Background(), &models.Book{
		Title:       title,
		AuthorID:    1,
		PublisherID: 1,
		CategoryID:  categoryID,
		Price:       models.MustMoney("12.50"),
		IsFeatured:  featured,
	})
	require.NoError(t, err)
	return b
}

func TestBook_CreateGetRoundTrip(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	pages := 320
	created, err := r.CreateBook(ctx, &models.Book{
		Title:       "Laskar Pelangi",
		Description: strPtr("Belitung"),
		AuthorID:    2,
		PublisherID: 3,
		CategoryID:  4,
		Price:       models.MustMoney("79000.00"),
		Stock:       50,
		Pages:       &pages,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := r.GetBook(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Laskar Pelangi", got.Title)
	assert.Equal(t, "Belitung", *got.Description)
	assert.Equal(t, uint(2), got.AuthorID)
	assert.Equal(t, uint(3), got.PublisherID)
	assert.Equal(t, uint(4), got.CategoryID)
	assert.Equal(t, "79000.00", got.Price.String())
	assert.Equal(t, uint(50), got.Stock)
	assert.Equal(t, 320, *got.Pages)
	assert.Nil(t, got.ISBN)
	assert.Nil(t, got.PublishedYear)
	assert.False(t, got.IsFeatured)
}

func TestBook_GetUnknownIsAbsent(t *testing.T) {
	r, _ := newTestRepo(t)

	got, err := r.GetBook(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestBook_UpdatePartialAndUnknown(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()
	b := seedBook(t, r, "Old", 1, false)

	updated, err := r.UpdateBook(ctx, b.ID, map[string]any{
		"title": "New",
		"price": models.MustMoney("15.00"),
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, "15.00", updated.Price.String())
	assert.Equal(t, uint(1), updated.CategoryID)

	missing, err := r.UpdateBook(ctx, 12345, map[string]any{"title": "ghost"})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestBook_DeleteIsHardAndIdempotent(t *testing.T) {
	r, gdb := newTestRepo(t)
	ctx := context.Background()
	b := seedBook(t, r, "Gone", 1, false)

	require.NoError(t, r.DeleteBook(ctx, b.ID))
	require.NoError(t, r.DeleteBook(ctx, b.ID))

	var count int64
	require.NoError(t, gdb.Unscoped().Model(&models.Book{}).Where("id = ?", b.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSearchBooks_SubstringAndFilters(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	seedBook(t, r, "Go in Action", 1, false)
	seedBook(t, r, "Learning Go", 2, false)
	seedBook(t, r, "Rust Book", 1, false)
	seedBook(t, r, "100% Go", 1, false)

	all, err := r.SearchBooks(ctx, BookFilter{Query: "Go"}, Page{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "100% Go", all[0].Title, "newest first")

	inCat, err := r.SearchBooks(ctx, BookFilter{Query: "Go", CategoryID: uintPtr(2)}, Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, inCat, 1)
	assert.Equal(t, "Learning Go", inCat[0].Title)

	literal, err := r.SearchBooks(ctx, BookFilter{Query: "%"}, Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, literal, 1)
	assert.Equal(t, "100% Go", literal[0].Title)

	none, err := r.SearchBooks(ctx, BookFilter{Query: "nonexistent-xyz"}, Page{Limit: 10})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	paged, err := r.SearchBooks(ctx, BookFilter{Query: "Go"}, Page{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, "Go in Action", paged[0].Title)
}

func TestFeaturedBooks(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	seedBook(t, r, "A", 1, true)
	seedBook(t, r, "B", 1, false)
	seedBook(t, r, "C", 1, true)
	seedBook(t, r, "D", 1, true)

	got, err := r.FeaturedBooks(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "D", got[0].Title)
	assert.Equal(t, "C", got[1].Title)
}

func TestReferenceEntities_OrderedByName(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	_, err := r.CreateAuthor(ctx, &models.Author{Name: "Tere Liye"})
	require.NoError(t, err)
	_, err = r.CreateAuthor(ctx, &models.Author{Name: "Andrea Hirata", Bio: strPtr("Laskar Pelangi")})
	require.NoError(t, err)

	authors, err := r.ListAuthors(ctx)
	require.NoError(t, err)
	require.Len(t, authors, 2)
	assert.Equal(t, "Andrea Hirata", authors[0].Name)

	p, err := r.CreatePublisher(ctx, &models.Publisher{Name: "Gramedia"})
	require.NoError(t, err)
	p2, err := r.UpdatePublisher(ctx, p.ID, map[string]any{"website": "https://gramedia.com"})
	require.NoError(t, err)
	require.NotNil(t, p2.Website)
	assert.Equal(t, "https://gramedia.com", *p2.Website)

	c, err := r.CreateCategory(ctx, &models.Category{Name: "Fiksi"})
	require.NoError(t, err)
	_, err = r.CreateCategory(ctx, &models.Category{Name: "Fiksi"})
	require.ErrorIs(t, err, ErrConflict)

	require.NoError(t, r.DeleteCategory(ctx, c.ID))
	gone, err := r.GetCategory(ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestCreateOrder_PersistsItemsWithSubmittedPrice(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	order, err := r.CreateOrder(ctx, &models.Order{
		UserID:          7,
		Status:          models.OrderStatusPending,
		TotalPrice:      models.MustMoney("25.00"),
		ShippingAddress: "Jl. Sudirman 1",
		ShippingCity:    "Jakarta",
		ShippingZip:     "10110",
		ShippingPhone:   "0812",
	}, []models.OrderItem{
		{BookID: 1, Quantity: 2, Price: models.MustMoney("10.00")},
		{BookID: 2, Quantity: 1, Price: models.MustMoney("5.00")},
	})
	require.NoError(t, err)
	require.NotZero(t, order.ID)

	got, err := r.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.OrderStatusPending, got.Status)
	assert.Equal(t, "25.00", got.TotalPrice.String())
	require.Len(t, got.Items, 2)
	assert.Equal(t, uint(1), got.Items[0].BookID)
	assert.Equal(t, uint(2), got.Items[0].Quantity)
	assert.Equal(t, "10.00", got.Items[0].Price.String())
	assert.Equal(t, order.ID, got.Items[1].OrderID)
}

func TestCreateOrder_RollsBackOnItemFailure(t *testing.T) {
	r, gdb := newTestRepo(t)
	ctx := context.Background()

	_, err := r.CreateOrder(ctx, &models.Order{
		UserID:          7,
		Status:          models.OrderStatusPending,
		TotalPrice:      models.MustMoney("10.00"),
		ShippingAddress: "a",
		ShippingCity:    "b",
		ShippingZip:     "c",
		ShippingPhone:   "d",
	}, []models.OrderItem{
		{BookID: 1, Quantity: 1, Price: models.MustMoney("10.00")},
		{BookID: 2, Quantity: 0, Price: models.MustMoney("0.00")},
	})
	require.Error(t, err)

	var orders, items int64
	require.NoError(t, gdb.Model(&models.Order{}).Count(&orders).Error)
	require.NoError(t, gdb.Model(&models.OrderItem{}).Count(&items).Error)
	assert.Zero(t, orders)
	assert.Zero(t, items)
}

func TestOrders_ScopedListingAndStatusUpdate(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	mk := func(userID uint) *models.Order {
		o, err := r.CreateOrder(ctx, &models.Order{
			UserID: userID, Status: models.OrderStatusPending, TotalPrice: models.MustMoney("1.00"),
			ShippingAddress: "a", ShippingCity: "b", ShippingZip: "c", ShippingPhone: "d",
		}, []models.OrderItem{{BookID: 1, Quantity: 1, Price: models.MustMoney("1.00")}})
		require.NoError(t, err)
		return o
	}
	first := mk(1)
	mk(2)
	mk(1)

	mine, err := r.ListUserOrders(ctx, 1, Page{Limit: 20})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, o := range mine {
		assert.Equal(t, uint(1), o.UserID)
	}

	all, err := r.ListOrders(ctx, Page{Limit: 50})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	updated, err := r.UpdateOrderStatus(ctx, first.ID, models.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, updated.Status)

	again, err := r.UpdateOrderStatus(ctx, first.ID, models.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, again.Status)

	missing, err := r.UpdateOrderStatus(ctx, 999, models.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUpsertUser_KeepsRoleAndProfile(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	u, err := r.UpsertUser(ctx, &models.User{OpenID: "oid-1", Name: "Budi", Email: "budi@example.com"}, false)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, u.Role)

	admin, err := r.UpsertUser(ctx, &models.User{OpenID: "oid-1", Role: models.RoleAdmin}, true)
	require.NoError(t, err)
	assert.Equal(t, u.ID, admin.ID)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.Equal(t, "Budi", admin.Name)

	again, err := r.UpsertUser(ctx, &models.User{OpenID: "oid-1", Name: "Budi S."}, false)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, again.Role)
	assert.Equal(t, "Budi S.", again.Name)
	assert.Equal(t, "budi@example.com", again.Email)

	byOpenID, err := r.GetUserByOpenID(ctx, "oid-1")
	require.NoError(t, err)
	require.NotNil(t, byOpenID)
	assert.Equal(t, u.ID, byOpenID.ID)

	users, err := r.ListUsers(ctx, Page{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, users, 1)

	n, err := r.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestStorageUnavailable_ReadsDegradeWritesFail(t *testing.T) {
	r, gdb := newTestRepo(t)
	ctx := context.Background()
	seedBook(t, r, "Before", 1, true)

	require.NoError(t, db.Close(gdb))

	books, err := r.ListBooks(ctx, Page{Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, books)

	found, err := r.SearchBooks(ctx, BookFilter{Query: "Before"}, Page{Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, found)

	b, err := r.GetBook(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, b)

	n, err := r.CountUsers(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = r.CreateAuthor(ctx, &models.Author{Name: "x"})
	require.ErrorIs(t, err, ErrStorageUnavailable)

	err = r.DeleteBook(ctx, 1)
	require.ErrorIs(t, err, ErrStorageUnavailable)
}
