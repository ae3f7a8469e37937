package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/online_bookstore/internal/transport"
)

func TestReferenceService_Authors(t *testing.T) {
	r, _ := newTestRepo(t)
	events := &fakeEvents{}
	svc := &ReferenceService{Repo: r, Events: events}
	ctx := context.Background()

	a, err := svc.CreateAuthor(ctx, transport.CreateAuthorRequest{Name: "Pramoedya", Bio: strPtr("novelist")})
	require.NoError(t, err)

	_, err = svc.CreateAuthor(ctx, transport.CreateAuthorRequest{Name: ""})
	require.ErrorIs(t, err, ErrValidation)

	updated, err := svc.UpdateAuthor(ctx, a.ID, transport.PatchAuthorRequest{Name: strPtr("Pramoedya A. Toer")})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Pramoedya A. Toer", updated.Name)
	require.NotNil(t, updated.Bio)
	assert.Equal(t, "novelist", *updated.Bio)

	missing, err := svc.UpdateAuthor(ctx, 999, transport.PatchAuthorRequest{Name: strPtr("x")})
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, svc.DeleteAuthor(ctx, a.ID))
	authors, err := svc.ListAuthors(ctx)
	require.NoError(t, err)
	assert.Empty(t, authors)

	assert.Equal(t, []string{"author.created", "author.updated", "author.deleted"}, events.types())
}

func TestReferenceService_PublishersAndCategories(t *testing.T) {
	r, _ := newTestRepo(t)
	svc := &ReferenceService{Repo: r}
	ctx := context.Background()

	p, err := svc.CreatePublisher(ctx, transport.CreatePublisherRequest{Name: "Gramedia", Website: strPtr("https://gramedia.com")})
	require.NoError(t, err)
	got, err := svc.GetPublisher(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Gramedia", got.Name)

	renamed, err := svc.UpdatePublisher(ctx, p.ID, transport.PatchPublisherRequest{Name: strPtr("Gramedia Pustaka")})
	require.NoError(t, err)
	assert.Equal(t, "Gramedia Pustaka", renamed.Name)
	require.NoError(t, svc.DeletePublisher(ctx, p.ID))

	_, err = svc.CreateCategory(ctx, transport.CreateCategoryRequest{Name: "Fiction"})
	require.NoError(t, err)
	_, err = svc.CreateCategory(ctx, transport.CreateCategoryRequest{Name: "Biography"})
	require.NoError(t, err)
	_, err = svc.CreateCategory(ctx, transport.CreateCategoryRequest{Name: "Fiction"})
	require.ErrorIs(t, err, ErrConflict)

	cats, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Biography", cats[0].Name)

	desc, err := svc.UpdateCategory(ctx, cats[0].ID, transport.PatchCategoryRequest{Description: strPtr("lives")})
	require.NoError(t, err)
	require.NotNil(t, desc.Description)

	require.NoError(t, svc.DeleteCategory(ctx, cats[0].ID))
	gone, err := svc.GetCategory(ctx, cats[0].ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}
