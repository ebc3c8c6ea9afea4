package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gear4music/internal/models"

	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrNameTaken = errors.New("user name already taken")
)

// Store is the only path to persisted entities. Every read hits the database.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Ping checks the underlying connection.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

//
// CATEGORIES / SUPPLIERS
//

func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).Order("name asc").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *Store) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	var suppliers []models.Supplier
	if err := s.db.WithContext(ctx).Order("name asc").Find(&suppliers).Error; err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	return suppliers, nil
}

//
// INSTRUMENTS
//

func (s *Store) ListInstruments(ctx context.Context) ([]models.Instrument, error) {
	var instruments []models.Instrument
	err := s.db.WithContext(ctx).
		Preload("Category").
		Preload("Supplier").
		Order("id asc").
		Find(&instruments).Error
	if err != nil {
		return nil, fmt.Errorf("list instruments: %w", err)
	}
	return instruments, nil
}

func (s *Store) GetInstrument(ctx context.Context, id uint) (*models.Instrument, error) {
	var instrument models.Instrument
	err := s.db.WithContext(ctx).
		Preload("Category").
		Preload("Supplier").
		First(&instrument, id).Error
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("instrument %d", id))
	}
	return &instrument, nil
}

// SearchInstruments matches term as a case-insensitive substring of the name.
// Both sides are folded in Go, since SQLite's LOWER only folds ASCII.
// LIKE wildcards inside term are matched literally.
func (s *Store) SearchInstruments(ctx context.Context, term string) ([]models.Instrument, error) {
	pattern := "%" + escapeLike(searchKey(term)) + "%"

	var instruments []models.Instrument
	err := s.db.WithContext(ctx).
		Preload("Category").
		Preload("Supplier").
		Where(`search_name LIKE ? ESCAPE '\'`, pattern).
		Order("name asc").
		Find(&instruments).Error
	if err != nil {
		return nil, fmt.Errorf("search instruments: %w", err)
	}
	return instruments, nil
}

// CreateInstrument inserts the instrument and its audit record atomically.
func (s *Store) CreateInstrument(ctx context.Context, actorID uint, instrument *models.Instrument) error {
	instrument.SearchName = searchKey(instrument.Name)
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Category", "Supplier").Create(instrument).Error; err != nil {
			return fmt.Errorf("create instrument: %w", err)
		}
		return writeAudit(tx, actorID, instrument.ID, "create", "Created instrument: "+instrument.Name)
	})
}

// UpdateInstrument overwrites every editable column of an existing row.
func (s *Store) UpdateInstrument(ctx context.Context, actorID uint, instrument *models.Instrument) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Instrument
		if err := tx.Select("id").First(&existing, instrument.ID).Error; err != nil {
			return notFound(err, fmt.Sprintf("instrument %d", instrument.ID))
		}

		err := tx.Model(&existing).Updates(map[string]any{
			"name":        instrument.Name,
			"search_name": searchKey(instrument.Name),
			"image":       instrument.Image,
			"image_2":     instrument.Image2,
			"category_id": instrument.CategoryID,
			"supplier_id": instrument.SupplierID,
		}).Error
		if err != nil {
			return fmt.Errorf("update instrument %d: %w", instrument.ID, err)
		}
		return writeAudit(tx, actorID, instrument.ID, "update", "Updated instrument: "+instrument.Name)
	})
}

func (s *Store) DeleteInstrument(ctx context.Context, actorID, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var instrument models.Instrument
		if err := tx.First(&instrument, id).Error; err != nil {
			return notFound(err, fmt.Sprintf("instrument %d", id))
		}
		if err := tx.Delete(&instrument).Error; err != nil {
			return fmt.Errorf("delete instrument %d: %w", id, err)
		}
		return writeAudit(tx, actorID, id, "delete", "Deleted instrument: "+instrument.Name)
	})
}

//
// USERS
//

func (s *Store) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err, fmt.Sprintf("user %d", id))
	}
	return &user, nil
}

// FindUserByName returns the first user with exactly this name.
func (s *Store) FindUserByName(ctx context.Context, name string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("name = ?", name).
		Order("id asc").
		First(&user).Error
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("user %q", name))
	}
	return &user, nil
}

// NameTaken reports whether a user with exactly this name exists.
func (s *Store) NameTaken(ctx context.Context, name string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("name = ?", name).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check user name: %w", err)
	}
	return count > 0, nil
}

// CreateUser inserts a new user. A concurrent insert of the same name loses
// on the unique index and gets ErrNameTaken.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if user.Role == "" {
		user.Role = models.RoleClient
	}
	err := s.db.WithContext(ctx).Create(user).Error
	if err == nil {
		return nil
	}
	if isDuplicateKey(err) {
		return fmt.Errorf("user %q: %w", user.Name, ErrNameTaken)
	}
	return fmt.Errorf("create user: %w", err)
}

func (s *Store) UpdateUserPassword(ctx context.Context, id uint, hash string) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("password", hash)
	if res.Error != nil {
		return fmt.Errorf("update password for user %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return nil
}

//
// AUDIT
//

func (s *Store) ListAuditLogs(ctx context.Context, limit int) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	err := s.db.WithContext(ctx).
		Preload("User").
		Order("created_at desc, id desc").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	return logs, nil
}

func writeAudit(tx *gorm.DB, userID, entityID uint, action, details string) error {
	record := models.AuditLog{
		UserID:   userID,
		Entity:   "instrument",
		EntityID: entityID,
		Action:   action,
		Details:  details,
	}
	if err := tx.Omit("User").Create(&record).Error; err != nil {
		return fmt.Errorf("write audit log: %w", err)
	}
	return nil
}

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", what, err)
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// drivers without error translation
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

func searchKey(name string) string {
	return strings.ToLower(name)
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
