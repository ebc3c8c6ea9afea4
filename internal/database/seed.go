package database

import (
	"context"
	"fmt"

	"gear4music/internal/auth"
	"gear4music/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	defaultCategories = []string{"Guitars", "Basses", "Drums", "Keyboards", "Wind", "Strings"}
	defaultSuppliers  = []string{"Fender", "Gibson", "Yamaha", "Roland", "Pearl"}
)

// Seed creates the default admin (only while no admin exists) and fills the
// category and supplier tables when they are empty.
func Seed(ctx context.Context, db *gorm.DB, log *logrus.Logger, adminName, adminPassword string) error {
	if err := createDefaultAdmin(ctx, db, log, adminName, adminPassword); err != nil {
		return err
	}
	if err := seedCategories(ctx, db, log); err != nil {
		return err
	}
	return seedSuppliers(ctx, db, log)
}

func createDefaultAdmin(ctx context.Context, db *gorm.DB, log *logrus.Logger, name, password string) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.User{}).
		Where("role = ?", models.RoleAdmin).
		Count(&count).Error; err != nil {
		return fmt.Errorf("check admin user: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash default admin password: %w", err)
	}

	admin := models.User{
		Name:     name,
		Password: hash,
		Role:     models.RoleAdmin,
	}
	if err := db.WithContext(ctx).Create(&admin).Error; err != nil {
		return fmt.Errorf("create default admin: %w", err)
	}

	log.WithField("user", name).Info("created default admin user")
	return nil
}

func seedCategories(ctx context.Context, db *gorm.DB, log *logrus.Logger) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Category{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	rows := make([]models.Category, 0, len(defaultCategories))
	for _, name := range defaultCategories {
		rows = append(rows, models.Category{Name: name})
	}
	if err := db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	log.Infof("seeded %d categories", len(rows))
	return nil
}

func seedSuppliers(ctx context.Context, db *gorm.DB, log *logrus.Logger) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Supplier{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count suppliers: %w", err)
	}
	if count > 0 {
		return nil
	}

	rows := make([]models.Supplier, 0, len(defaultSuppliers))
	for _, name := range defaultSuppliers {
		rows = append(rows, models.Supplier{Name: name})
	}
	if err := db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("seed suppliers: %w", err)
	}
	log.Infof("seeded %d suppliers", len(rows))
	return nil
}
