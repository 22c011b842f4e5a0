// Package store is the persistence adapter for the directory. State
// lives in four named records, each a self-contained JSON document that
// is replaced wholesale on every save. There is no incremental write
// and no transactional guarantee across records.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"venicelocal/internal/model"
)

const (
	recordUsers      = "vl_users"
	recordBusinesses = "vl_businesses"
	recordFavorites  = "vl_favorites"
	recordSeeded     = "vl_seeded"
)

// Record is one named JSON document.
type Record struct {
	Name      string `gorm:"primaryKey;size:64"`
	Document  []byte `gorm:"not null"`
	UpdatedAt time.Time
}

// Store reads and writes the four directory records.
type Store struct {
	db *gorm.DB
}

// New migrates the records table and returns a Store.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("migrate records: %w", err)
	}
	return &Store{db: db}, nil
}

// load unmarshals the named record into out. It reports false without
// touching out when the record is absent.
func (s *Store) load(ctx context.Context, name string, out interface{}) (bool, error) {
	var rec Record
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s: %w", name, err)
	}
	if err := json.Unmarshal(rec.Document, out); err != nil {
		return false, fmt.Errorf("decode %s: %w", name, err)
	}
	return true, nil
}

// save replaces the named record with the JSON encoding of v.
func (s *Store) save(ctx context.Context, name string, v interface{}) error {
	doc, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	rec := Record{Name: name, Document: doc, UpdatedAt: time.Now()}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"document", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}

// LoadUsers returns the user collection, empty when absent.
func (s *Store) LoadUsers(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	if _, err := s.load(ctx, recordUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SaveUsers replaces the user record.
func (s *Store) SaveUsers(ctx context.Context, users []model.User) error {
	if users == nil {
		users = []model.User{}
	}
	return s.save(ctx, recordUsers, users)
}

// LoadBusinesses returns the business catalog, empty when absent.
func (s *Store) LoadBusinesses(ctx context.Context) ([]model.Business, error) {
	businesses := []model.Business{}
	if _, err := s.load(ctx, recordBusinesses, &businesses); err != nil {
		return nil, err
	}
	return businesses, nil
}

// SaveBusinesses replaces the business record.
func (s *Store) SaveBusinesses(ctx context.Context, businesses []model.Business) error {
	if businesses == nil {
		businesses = []model.Business{}
	}
	return s.save(ctx, recordBusinesses, businesses)
}

// LoadFavorites returns the user id to business id list mapping, empty
// when absent.
func (s *Store) LoadFavorites(ctx context.Context) (map[string][]string, error) {
	favorites := map[string][]string{}
	if _, err := s.load(ctx, recordFavorites, &favorites); err != nil {
		return nil, err
	}
	return favorites, nil
}

// SaveFavorites replaces the favorites record.
func (s *Store) SaveFavorites(ctx context.Context, favorites map[string][]string) error {
	if favorites == nil {
		favorites = map[string][]string{}
	}
	return s.save(ctx, recordFavorites, favorites)
}

// Seeded reports whether the one-time seed has already run. The flag is
// presence-only.
func (s *Store) Seeded(ctx context.Context) (bool, error) {
	var flag bool
	found, err := s.load(ctx, recordSeeded, &flag)
	if err != nil {
		return false, err
	}
	return found, nil
}

// MarkSeeded sets the seeded flag so the seed never repeats.
func (s *Store) MarkSeeded(ctx context.Context) error {
	return s.save(ctx, recordSeeded, true)
}
