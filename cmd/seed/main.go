package main

import (
	"flag"
	"fmt"

	"github.com/therealrustam/yamdb-final/internal/model"
	"github.com/therealrustam/yamdb-final/pkg/config"
	"github.com/therealrustam/yamdb-final/pkg/database"
	"github.com/therealrustam/yamdb-final/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	var (
		adminUsername = flag.String("admin-username", "admin", "username of the bootstrap administrator")
		adminEmail    = flag.String("admin-email", "admin@yamdb.local", "email of the bootstrap administrator")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	if err := seedDatabase(db, *adminUsername, *adminEmail, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, adminUsername, adminEmail string, log *logger.Logger) error {
	if err := seedAdmin(db, adminUsername, adminEmail, log); err != nil {
		return err
	}
	if err := seedCatalog(db, log); err != nil {
		return err
	}
	return nil
}

// seedAdmin creates the bootstrap staff administrator and prints its
// one-time confirmation code; only the bcrypt hash is stored.
func seedAdmin(db *gorm.DB, username, email string, log *logger.Logger) error {
	var existing model.UserModel
	result := db.Where("username = ? OR email = ?", username, email).First(&existing)
	if result.Error == nil {
		log.Info("User %s already exists, skipping", existing.Username)
		return nil
	}

	code := uuid.New().String()
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash confirmation code: %w", err)
	}

	admin := &model.UserModel{
		Username:         username,
		Email:            email,
		Role:             "admin",
		IsStaff:          true,
		ConfirmationCode: string(hash),
	}
	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	log.Info("Created admin: %s (%s)", admin.Username, admin.Email)
	log.Info("Admin confirmation code: %s", code)
	return nil
}

func seedCatalog(db *gorm.DB, log *logger.Logger) error {
	categories := []model.CategoryModel{
		{Name: "Books", Slug: "books"},
		{Name: "Films", Slug: "films"},
		{Name: "Music", Slug: "music"},
	}
	for _, category := range categories {
		var existing model.CategoryModel
		if err := db.Where("slug = ?", category.Slug).First(&existing).Error; err == nil {
			log.Info("Category %s already exists, skipping", category.Slug)
			continue
		}
		if err := db.Create(&category).Error; err != nil {
			return fmt.Errorf("failed to create category %s: %w", category.Slug, err)
		}
		log.Info("Created category: %s", category.Slug)
	}

	genres := []model.GenreModel{
		{Name: "Drama", Slug: "drama"},
		{Name: "Comedy", Slug: "comedy"},
		{Name: "Fantasy", Slug: "fantasy"},
		{Name: "Rock", Slug: "rock"},
		{Name: "Classic", Slug: "classic"},
	}
	for _, genre := range genres {
		var existing model.GenreModel
		if err := db.Where("slug = ?", genre.Slug).First(&existing).Error; err == nil {
			log.Info("Genre %s already exists, skipping", genre.Slug)
			continue
		}
		if err := db.Create(&genre).Error; err != nil {
			return fmt.Errorf("failed to create genre %s: %w", genre.Slug, err)
		}
		log.Info("Created genre: %s", genre.Slug)
	}

	return nil
}
