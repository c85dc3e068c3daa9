package service_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"bookhaven-api/internal/model"
	"bookhaven-api/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// eachStore runs a service test against both storage backends so the
// services cannot come to depend on one implementation's quirks.
func eachStore(t *testing.T, fn func(t *testing.T, store repository.Store)) {
	t.Run("memory", func(t *testing.T) {
		fn(t, repository.NewMemoryStore())
	})
	t.Run("gorm", func(t *testing.T) {
		dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
		db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
			TranslateError: true,
			Logger:         logger.Default.LogMode(logger.Silent),
		})
		require.NoError(t, err)
		require.NoError(t, db.AutoMigrate(
			&model.User{},
			&model.Category{},
			&model.Book{},
			&model.CartItem{},
			&model.Order{},
			&model.OrderItem{},
			&model.Subscriber{},
		))
		fn(t, repository.NewGormStore(db))
	})
}

func mustCategory(t *testing.T, store repository.Store, name string) *model.Category {
	t.Helper()
	category := &model.Category{Name: name, Icon: "icon"}
	require.NoError(t, store.Categories().Create(context.Background(), category))
	return category
}

func mustBook(t *testing.T, store repository.Store, categoryID int, title string, price float64) *model.Book {
	t.Helper()
	book := &model.Book{
		Title:      title,
		Author:     "Author",
		Price:      price,
		Pages:      100,
		CategoryID: categoryID,
		InStock:    true,
	}
	require.NoError(t, store.Books().Create(context.Background(), book))
	return book
}

func mustUser(t *testing.T, store repository.Store, username string, admin bool) *model.User {
	t.Helper()
	user := &model.User{
		Username:  username,
		Password:  "not-a-real-hash",
		FirstName: "Test",
		LastName:  "User",
		Email:     username + "@example.com",
		IsAdmin:   admin,
	}
	require.NoError(t, store.Users().Create(context.Background(), user))
	return user
}
