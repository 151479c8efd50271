//go:build integration

package repository_test

import (
	"context"
	"testing"
	"time"

	"parcelio-api-server/internal/models"
	"parcelio-api-server/internal/repository"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParcelRepository_CreateGetDelete(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewParcelRepository(freshDB(t))

	doc := models.NewParcel(map[string]interface{}{
		"created_by": "sender@parcelio.dev",
		"title":      "Books",
		"weight":     1.5,
	}, time.Now())

	res, err := repo.Create(ctx, doc)
	require.NoError(t, err)
	require.True(t, res.Acknowledged)
	id := res.InsertedHex()
	require.NotEmpty(t, id)

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Books", got["title"])
	require.Equal(t, 1.5, got["weight"])
	require.Equal(t, "sender@parcelio.dev", models.CreatedBy(got))

	del, deleted, err := repo.Delete(ctx, id)
	require.NoError(t, err)
	require.Equal(t, int64(1), del.DeletedCount)
	require.Equal(t, id, models.ParcelID(deleted))

	_, err = repo.Get(ctx, id)
	require.ErrorIs(t, err, repository.ErrNotFound)

	del, deleted, err = repo.Delete(ctx, id)
	require.NoError(t, err)
	require.Equal(t, int64(0), del.DeletedCount)
	require.Nil(t, deleted)
}

func TestParcelRepository_ListFiltersAndSorts(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewParcelRepository(freshDB(t))

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	seed := []struct {
		owner string
		at    time.Time
	}{
		{"a@parcelio.dev", base},
		{"b@parcelio.dev", base.Add(time.Hour)},
		{"a@parcelio.dev", base.Add(2 * time.Hour)},
		{"a@parcelio.dev", base.Add(time.Minute)},
	}
	for _, s := range seed {
		_, err := repo.Create(ctx, models.NewParcel(map[string]interface{}{"created_by": s.owner}, s.at))
		require.NoError(t, err)
	}

	mine, err := repo.List(ctx, "a@parcelio.dev")
	require.NoError(t, err)
	require.Len(t, mine, 3)
	var prev time.Time
	for i, p := range mine {
		require.Equal(t, "a@parcelio.dev", models.CreatedBy(p))
		at := p[models.ParcelFieldCreatedAt].(primitive.DateTime).Time()
		if i > 0 {
			require.True(t, at.Before(prev), "parcels must be newest first")
		}
		prev = at
	}

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 4)

	none, err := repo.List(ctx, "nobody@parcelio.dev")
	require.NoError(t, err)
	require.NotNil(t, none)
	require.Empty(t, none)
}

func TestParcelRepository_InvalidID(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewParcelRepository(freshDB(t))

	_, err := repo.Get(ctx, "not-an-object-id")
	require.ErrorIs(t, err, repository.ErrInvalidID)

	_, _, err = repo.Delete(ctx, "xyz")
	require.ErrorIs(t, err, repository.ErrInvalidID)
}

func TestParcelRepository_AddPhoto(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewParcelRepository(freshDB(t))

	res, err := repo.Create(ctx, models.NewParcel(map[string]interface{}{"created_by": "a@parcelio.dev"}, time.Now()))
	require.NoError(t, err)

	photo := models.MediaPointer{ID: "p1", URL: "https://cdn.example/p1.jpg", FileName: "box.jpg", FileType: "image/jpeg"}
	updated, err := repo.AddPhoto(ctx, res.InsertedHex(), photo)
	require.NoError(t, err)
	photos := updated[models.ParcelFieldPhotos].(primitive.A)
	require.Len(t, photos, 1)

	exists, err := repo.Exists(ctx, res.InsertedHex())
	require.NoError(t, err)
	require.True(t, exists)

	_, err = repo.AddPhoto(ctx, primitive.NewObjectID().Hex(), photo)
	require.ErrorIs(t, err, repository.ErrNotFound)
}
