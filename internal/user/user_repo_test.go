package user_test

import (
	"context"
	"testing"

	"github.com/DOINGGOODPROJECTS/timetracking/internal/user"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)

	return gdb, mock
}

func TestRepository_FindByEmail(t *testing.T) {
	gdb, mock := openMockDB(t)
	repo := user.NewRepository(gdb)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		id := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "is_admin", "language", "theme"}).
			AddRow(id.String(), "John Doe", "john@example.com", "$2a$10$hash", false, "fr", "system")

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
			WithArgs("john@example.com", 1).
			WillReturnRows(rows)

		u, err := repo.FindByEmail(ctx, "john@example.com")
		assert.NoError(t, err)
		assert.Equal(t, id, u.ID)
		assert.Equal(t, "John Doe", u.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
			WithArgs("ghost@example.com", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindByEmail(ctx, "ghost@example.com")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
