package app

import (
	"time"

	"github.com/DOINGGOODPROJECTS/timetracking/internal/timerecord"
	"github.com/DOINGGOODPROJECTS/timetracking/internal/user"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// seedDemoData inserts a demo admin and two employees with a few past clock
// events. It is a no-op once any user exists.
func seedDemoData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&user.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash := func(pw string) (string, error) {
		b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
		return string(b), err
	}

	adminHash, err := hash("admin123")
	if err != nil {
		return err
	}
	employeeHash, err := hash("employee123")
	if err != nil {
		return err
	}

	engineering := "Engineering"
	sales := "Sales"

	admin := user.User{
		ID:           uuid.New(),
		Name:         "Admin",
		Email:        "admin@example.com",
		PasswordHash: adminHash,
		IsAdmin:      true,
		Language:     "fr",
		Theme:        user.ThemeSystem,
	}
	john := user.User{
		ID:           uuid.New(),
		Name:         "John Doe",
		Email:        "john.doe@example.com",
		PasswordHash: employeeHash,
		Department:   &engineering,
		Language:     "fr",
		Theme:        user.ThemeSystem,
	}
	jane := user.User{
		ID:           uuid.New(),
		Name:         "Jane Smith",
		Email:        "jane.smith@example.com",
		PasswordHash: employeeHash,
		Department:   &sales,
		Language:     "en",
		Theme:        user.ThemeLight,
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, u := range []user.User{admin, john, jane} {
			if err := tx.Create(&u).Error; err != nil {
				return err
			}
		}

		classifier := timerecord.DefaultClassifier()
		yesterday := time.Now().AddDate(0, 0, -1)
		day := time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, time.UTC)

		checkIn := time.Date(day.Year(), day.Month(), day.Day(), 8, 45, 0, 0, time.UTC)
		checkOut := time.Date(day.Year(), day.Month(), day.Day(), 17, 30, 0, 0, time.UTC)

		records := []timerecord.TimeRecord{
			{
				ID:         uuid.New(),
				UserID:     john.ID,
				RecordDate: day,
				Type:       timerecord.TypeCheckIn,
				RecordedAt: checkIn,
				Status:     classifier.Classify(timerecord.TypeCheckIn, checkIn.Hour()),
			},
			{
				ID:         uuid.New(),
				UserID:     john.ID,
				RecordDate: day,
				Type:       timerecord.TypeCheckOut,
				RecordedAt: checkOut,
				Status:     classifier.Classify(timerecord.TypeCheckOut, checkOut.Hour()),
			},
		}
		for _, rec := range records {
			if err := tx.Create(&rec).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
