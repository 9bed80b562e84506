package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
)

func testDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}))
	return db
}

func TestCreateUserRejectsDuplicateUsername(t *testing.T) {
	users := NewUsers(testDB(t))
	ctx := context.Background()

	first := models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	require.NoError(t, users.Create(ctx, &first))

	dup := models.User{Username: "alice", Email: "other@example.com", PasswordHash: "y"}
	err := users.Create(ctx, &dup)
	require.ErrorIs(t, err, ErrUserAlreadyExist)

	var count int64
	users.DB.Model(&models.User{}).Count(&count)
	require.EqualValues(t, 1, count)
}

func TestFindUserByUsername(t *testing.T) {
	users := NewUsers(testDB(t))
	ctx := context.Background()

	_, err := users.FindByUsername(ctx, "ghost")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, users.Create(ctx, &models.User{Username: "bob", Email: "b@example.com", PasswordHash: "x"}))
	user, err := users.FindByUsername(ctx, "bob")
	require.NoError(t, err)
	require.Equal(t, "bob", user.Username)
	require.False(t, user.IsAdmin)
}

func TestSearchByNameIsCaseInsensitive(t *testing.T) {
	products := NewProducts(testDB(t))
	ctx := context.Background()

	require.NoError(t, products.Create(ctx, &models.Product{Name: "Blue Shirt", Price: 19.99, Img: "default.jpg"}))
	require.NoError(t, products.Create(ctx, &models.Product{Name: "Red Hat", Price: 5, Img: "default.jpg"}))

	for _, q := range []string{"blue", "BLUE", "lue Sh"} {
		found, err := products.SearchByName(ctx, q)
		require.NoError(t, err)
		require.Len(t, found, 1, "query %q", q)
		require.Equal(t, "Blue Shirt", found[0].Name)
	}

	found, err := products.SearchByName(ctx, "green")
	require.NoError(t, err)
	require.Empty(t, found)
}

func TestProductCRUD(t *testing.T) {
	products := NewProducts(testDB(t))
	ctx := context.Background()

	prod := models.Product{Name: "Blue Shirt", Price: 19.99, Description: "soft", Img: "default.jpg"}
	require.NoError(t, products.Create(ctx, &prod))
	require.NotZero(t, prod.ID)

	got, err := products.FindByID(ctx, prod.ID)
	require.NoError(t, err)
	require.Equal(t, "Blue Shirt", got.Name)

	got.Price = 24.99
	require.NoError(t, products.Update(ctx, got))
	updated, err := products.FindByID(ctx, prod.ID)
	require.NoError(t, err)
	require.InDelta(t, 24.99, updated.Price, 1e-9)

	require.NoError(t, products.Delete(ctx, prod.ID))
	_, err = products.FindByID(ctx, prod.ID)
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, products.Delete(ctx, prod.ID), ErrNotFound)
}

func TestListKeepsInsertionOrder(t *testing.T) {
	products := NewProducts(testDB(t))
	ctx := context.Background()

	for _, name := range []string{"first", "second", "third"} {
		require.NoError(t, products.Create(ctx, &models.Product{Name: name, Img: "default.jpg"}))
	}

	items, err := products.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	require.Equal(t, "first", items[0].Name)
	require.Equal(t, "third", items[2].Name)
}
