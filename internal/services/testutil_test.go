package services

import (
	"fmt"
	"testing"
	"time"

	"laundry_app/internal/database"
	"laundry_app/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB opens an in-memory SQLite database with the full schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()
	user := &models.User{
		Email:        fmt.Sprintf("%s-%d-%s@test.id", role, time.Now().UnixNano(), t.Name()),
		PasswordHash: "x",
		FullName:     "Test " + role,
		Role:         role,
		IsActive:     true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create %s: %v", role, err)
	}
	return user
}

func testOrder(userID uint) *models.Order {
	return &models.Order{
		UserID:       userID,
		OrderType:    string(models.OrderKiloan),
		ServiceSpeed: string(models.SpeedRegular),
		WeightKg:     3,
		Subtotal:     21000,
		Total:        21000,
		CustomerName: "Budi",
		WhatsApp:     "6281234567890",
		Address:      "Jl. Test No.1",
	}
}

// fakeOrderCache records prepends and can be forced to fail.
type fakeOrderCache struct {
	err   error
	calls int
}

func (f *fakeOrderCache) PrependRecentOrder(userID uint, order interface{}, max int) error {
	f.calls++
	return f.err
}

// fakePublisher records published events.
type fakePublisher struct {
	events []OrderEvent
}

func (f *fakePublisher) PublishOrderEvent(merchantID uint, event interface{}) error {
	if e, ok := event.(OrderEvent); ok {
		f.events = append(f.events, e)
	}
	return nil
}
