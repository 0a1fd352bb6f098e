package main

import (
	"fmt"
	"log"

	"laundry_app/internal/config"
	"laundry_app/internal/database"
	"laundry_app/internal/models"
	"laundry_app/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	fmt.Println("Initializing database...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Force recreate all tables
	fmt.Println("Dropping existing tables...")
	err = db.Migrator().DropTable(
		&models.User{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusHistory{},
		&models.PlatformService{},
		&models.SiteSettings{},
	)
	if err != nil {
		log.Printf("Warning: Error dropping tables: %v", err)
	}

	// Create tables with proper schema
	fmt.Println("Creating tables...")
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Create default admin user
	fmt.Println("Creating default admin user...")
	userRepo := repository.NewUserRepository(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash admin password:", err)
	}

	admin := &models.User{
		Email:        "admin@laundrytime.id",
		PasswordHash: string(hash),
		FullName:     "Administrator",
		Phone:        "6281234567890",
		Role:         string(models.RoleAdmin),
		IsActive:     true,
	}
	if err := userRepo.Create(admin); err != nil {
		log.Printf("Warning: Failed to create admin user: %v", err)
	} else {
		fmt.Println("Admin user created successfully")
		fmt.Println("Email: admin@laundrytime.id")
		fmt.Println("Password: admin123")
	}

	// Create default site settings
	fmt.Println("Creating default site settings...")
	settingsRepo := repository.NewSettingsRepository(db)
	settings := repository.DefaultSettings()
	if err := settingsRepo.Upsert(&settings); err != nil {
		log.Printf("Warning: Failed to create site settings: %v", err)
	}

	// Seed starter catalog
	fmt.Println("Seeding catalog...")
	catalogRepo := repository.NewCatalogRepository(db)
	starter := []models.PlatformService{
		{Name: "Kemeja", Icon: "shirt", Price: 5000, UnitType: string(models.UnitPcs), IsActive: true, SortOrder: 1},
		{Name: "Celana", Icon: "pants", Price: 5000, UnitType: string(models.UnitPcs), IsActive: true, SortOrder: 2},
		{Name: "Jaket", Icon: "jacket", Price: 10000, UnitType: string(models.UnitPcs), IsActive: true, SortOrder: 3},
		{Name: "Handuk", Icon: "towel", Price: 8000, UnitType: string(models.UnitPcs), IsActive: true, SortOrder: 4},
		{Name: "Bed Cover", Icon: "bed", Price: 25000, UnitType: string(models.UnitPcs), IsActive: true, SortOrder: 5},
		{Name: "Sprei", Icon: "sheet", Price: 15000, UnitType: string(models.UnitPcs), IsActive: true, SortOrder: 6},
	}
	for _, svc := range starter {
		item := svc
		if err := catalogRepo.Create(&item); err != nil {
			log.Printf("Warning: Failed to seed service %s: %v", svc.Name, err)
		}
	}

	fmt.Println("Database initialization completed successfully!")
}
