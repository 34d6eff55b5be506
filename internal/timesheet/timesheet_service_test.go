package timesheet_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DOINGGOODPROJECTS/timetracking/internal/timerecord"
	"github.com/DOINGGOODPROJECTS/timetracking/internal/timesheet"
	"github.com/DOINGGOODPROJECTS/timetracking/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

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

func seedSheetUser(t *testing.T, db *gorm.DB, name, email string) user.User {
	t.Helper()

	u := user.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: "x",
		Language:     "fr",
		Theme:        user.ThemeSystem,
	}
	assert.NoError(t, db.Create(&u).Error)
	return u
}

func TestTimesheetService_GetTimesheet(t *testing.T) {
	db := openTestDB(t)
	svc := timesheet.NewService(user.NewRepository(db), timerecord.NewRepository(db))
	ctx := context.Background()

	owner := seedSheetUser(t, db, "Owner", "owner@example.com")
	other := seedSheetUser(t, db, "Other", "other@example.com")

	day1 := at(2026, 3, 2, 8, 30, 0)
	day2 := at(2026, 3, 3, 9, 15, 0)
	for _, rec := range []timerecord.TimeRecord{
		record(owner.ID, timerecord.TypeCheckIn, timerecord.StatusEarly, day1),
		record(owner.ID, timerecord.TypeCheckOut, timerecord.StatusOnTime, at(2026, 3, 2, 17, 0, 0)),
		record(owner.ID, timerecord.TypeCheckIn, timerecord.StatusLate, day2),
	} {
		assert.NoError(t, db.Create(&rec).Error)
	}

	t.Run("own sheet sorted newest first", func(t *testing.T) {
		entries, err := svc.GetTimesheet(ctx, owner.ID.String(), false, "")
		assert.NoError(t, err)
		assert.Len(t, entries, 2)
		assert.Equal(t, "2026-03-03", entries[0].Date)
		assert.Equal(t, "2026-03-02", entries[1].Date)
		assert.Equal(t, "Owner", entries[0].EmployeeName)
	})

	t.Run("admin reads someone else's sheet", func(t *testing.T) {
		entries, err := svc.GetTimesheet(ctx, other.ID.String(), true, owner.ID.String())
		assert.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("non-admin asking about someone else sees nothing", func(t *testing.T) {
		entries, err := svc.GetTimesheet(ctx, other.ID.String(), false, owner.ID.String())
		assert.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("missing user resolves to empty sheet", func(t *testing.T) {
		entries, err := svc.GetTimesheet(ctx, owner.ID.String(), true, uuid.NewString())
		assert.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestTimesheetService_Summary(t *testing.T) {
	db := openTestDB(t)
	svc := timesheet.NewService(user.NewRepository(db), timerecord.NewRepository(db))
	ctx := context.Background()

	u := seedSheetUser(t, db, "Sum User", "sum@example.com")

	// one complete day this week
	now := time.Now()
	in := record(u.ID, timerecord.TypeCheckIn, timerecord.StatusOnTime,
		time.Date(now.Year(), now.Month(), now.Day(), 9, 0, 0, 0, now.Location()))
	out := record(u.ID, timerecord.TypeCheckOut, timerecord.StatusOnTime,
		time.Date(now.Year(), now.Month(), now.Day(), 17, 30, 0, 0, now.Location()))
	assert.NoError(t, db.Create(&in).Error)
	assert.NoError(t, db.Create(&out).Error)

	res, err := svc.Summary(ctx, u.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, "8h 30m", res.WeeklyHours)
	assert.Equal(t, 100, res.Punctuality)
}
