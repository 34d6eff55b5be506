package user_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/DOINGGOODPROJECTS/timetracking/internal/timerecord"
	"github.com/DOINGGOODPROJECTS/timetracking/internal/user"
	usererrors "github.com/DOINGGOODPROJECTS/timetracking/internal/user/errors"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB builds an in-memory sqlite database with the two tables the
// user flows touch. DDL is written out by hand because the postgres column
// defaults in the entities do not parse on sqlite.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// one named in-memory database per test, shared across pool connections
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)

	ddl := []string{
		`CREATE TABLE users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			is_admin BOOLEAN NOT NULL DEFAULT 0,
			is_checked_in BOOLEAN NOT NULL DEFAULT 0,
			is_checked_out BOOLEAN NOT NULL DEFAULT 0,
			last_activity DATETIME,
			last_location_latitude REAL,
			last_location_longitude REAL,
			last_location_accuracy REAL,
			last_location_address TEXT,
			department TEXT,
			language TEXT NOT NULL DEFAULT 'fr',
			theme TEXT NOT NULL DEFAULT 'system',
			created_at DATETIME,
			updated_at DATETIME,
			deleted_at DATETIME
		)`,
		`CREATE TABLE time_records (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			record_date DATE NOT NULL,
			type TEXT NOT NULL,
			recorded_at DATETIME NOT NULL,
			status TEXT NOT NULL,
			location_latitude REAL,
			location_longitude REAL,
			location_accuracy REAL,
			location_address TEXT,
			created_at DATETIME,
			deleted_at DATETIME,
			CONSTRAINT uq_time_records_user_date_type UNIQUE (user_id, record_date, type)
		)`,
	}
	for _, stmt := range ddl {
		assert.NoError(t, db.Exec(stmt).Error)
	}

	return db
}

func newService(db *gorm.DB) user.Service {
	return user.NewService(db, user.NewRepository(db), timerecord.NewRepository(db), nil)
}

func seedUser(t *testing.T, db *gorm.DB, name, email, password string, admin bool) user.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)

	u := user.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		IsAdmin:      admin,
		Language:     "fr",
		Theme:        user.ThemeSystem,
	}
	assert.NoError(t, db.Create(&u).Error)
	return u
}

func TestUserService_CreateEmployee(t *testing.T) {
	db := openTestDB(t)
	svc := newService(db)
	ctx := context.Background()

	t.Run("success with defaults", func(t *testing.T) {
		res, err := svc.CreateEmployee(ctx, user.CreateEmployeeRequest{
			Name:     "John Doe",
			Email:    "john@example.com",
			Password: "password123",
		})
		assert.NoError(t, err)
		assert.Equal(t, "John Doe", res.Name)
		assert.Equal(t, "fr", res.Language)
		assert.Equal(t, user.ThemeSystem, res.Theme)
		assert.False(t, res.IsAdmin)

		// password is stored hashed
		var stored user.User
		assert.NoError(t, db.First(&stored, "email = ?", "john@example.com").Error)
		assert.NotEqual(t, "password123", stored.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")))
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.CreateEmployee(ctx, user.CreateEmployeeRequest{
			Name:     "John Clone",
			Email:    "john@example.com",
			Password: "password123",
		})
		assert.ErrorIs(t, err, usererrors.ErrEmailTaken)
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	db := openTestDB(t)
	svc := newService(db)
	ctx := context.Background()

	u := seedUser(t, db, "Jane Smith", "jane@example.com", "oldpassword", false)

	t.Run("wrong current password", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, u.ID.String(), user.UpdateProfileRequest{
			CurrentPassword: "nope",
			NewPassword:     "newpassword1",
		})
		assert.ErrorIs(t, err, usererrors.ErrWrongPassword)
	})

	t.Run("changes name and password", func(t *testing.T) {
		newName := "Jane S."
		res, err := svc.UpdateProfile(ctx, u.ID.String(), user.UpdateProfileRequest{
			Name:            &newName,
			CurrentPassword: "oldpassword",
			NewPassword:     "newpassword1",
		})
		assert.NoError(t, err)
		assert.Equal(t, "Jane S.", res.Name)

		var stored user.User
		assert.NoError(t, db.First(&stored, "id = ?", u.ID).Error)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("newpassword1")))
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, uuid.NewString(), user.UpdateProfileRequest{})
		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
	})
}

func TestUserService_UpdatePreferences(t *testing.T) {
	db := openTestDB(t)
	svc := newService(db)
	ctx := context.Background()

	u := seedUser(t, db, "Pref User", "pref@example.com", "password", false)

	lang := "en"
	theme := user.ThemeDark
	res, err := svc.UpdatePreferences(ctx, u.ID.String(), user.UpdatePreferencesRequest{
		Language: &lang,
		Theme:    &theme,
	})
	assert.NoError(t, err)
	assert.Equal(t, "en", res.Language)
	assert.Equal(t, user.ThemeDark, res.Theme)
}

func TestUserService_DeleteEmployee(t *testing.T) {
	db := openTestDB(t)
	svc := newService(db)
	ctx := context.Background()

	admin := seedUser(t, db, "Admin", "admin@example.com", "password", true)
	victim := seedUser(t, db, "Target", "target@example.com", "password", false)

	rec := timerecord.TimeRecord{
		ID:         uuid.New(),
		UserID:     victim.ID,
		RecordDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Type:       timerecord.TypeCheckIn,
		RecordedAt: time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC),
		Status:     timerecord.StatusEarly,
	}
	assert.NoError(t, db.Create(&rec).Error)

	t.Run("self deletion rejected", func(t *testing.T) {
		err := svc.DeleteEmployee(ctx, admin.ID.String(), admin.ID.String())
		assert.ErrorIs(t, err, usererrors.ErrSelfDeletion)
	})

	t.Run("unknown user", func(t *testing.T) {
		err := svc.DeleteEmployee(ctx, admin.ID.String(), uuid.NewString())
		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
	})

	t.Run("removes account and clock history", func(t *testing.T) {
		err := svc.DeleteEmployee(ctx, admin.ID.String(), victim.ID.String())
		assert.NoError(t, err)

		var userCount, recordCount int64
		db.Model(&user.User{}).Where("id = ?", victim.ID).Count(&userCount)
		db.Model(&timerecord.TimeRecord{}).Where("user_id = ?", victim.ID).Count(&recordCount)
		assert.Zero(t, userCount)
		assert.Zero(t, recordCount)
	})
}

func TestUserService_ListEmployees_Cache(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	t.Run("serves from cache when present", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		svc := user.NewService(db, user.NewRepository(db), timerecord.NewRepository(db), rdb)

		cached := []user.UserResponse{{ID: uuid.NewString(), Name: "Cached"}}
		payload, _ := json.Marshal(cached)
		redisMock.ExpectGet(user.DirectoryCacheKey).SetVal(string(payload))

		res, err := svc.ListEmployees(ctx)
		assert.NoError(t, err)
		assert.Equal(t, cached, res)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("fills cache on miss", func(t *testing.T) {
		seedUser(t, db, "Only One", "only@example.com", "password", false)

		rdb, redisMock := redismock.NewClientMock()
		svc := user.NewService(db, user.NewRepository(db), timerecord.NewRepository(db), rdb)

		redisMock.ExpectGet(user.DirectoryCacheKey).RedisNil()
		redisMock.Regexp().ExpectSet(user.DirectoryCacheKey, `.*Only One.*`, 5*time.Minute).SetVal("OK")

		res, err := svc.ListEmployees(ctx)
		assert.NoError(t, err)
		assert.Len(t, res, 1)
		assert.Equal(t, "Only One", res[0].Name)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})
}
