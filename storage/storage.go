package storage

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/robmarkaryan/quoteserver/storage/model"
)

// Storage is a GORM-based storage implementation
type Storage struct {
	db         *gorm.DB
	userParams Argon2idParams
}

var models = []any{
	&model.Author{},
	&model.Quote{},
	&model.User{},
}

// NewStorage creates a new GORM-based storage
func NewStorage(config Config) (*Storage, error) {
	db, err := Connect(config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto migrate the schemas
	if err = db.AutoMigrate(models...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// Fill user hash params with defaults if zero values
	params := config.UsersHash
	if params.Time == 0 {
		params = defaultArgon2idParams()
	}

	return &Storage{
		db:         db,
		userParams: params,
	}, nil
}

// AuthorStorage returns an AuthorStorage
func (s *Storage) AuthorStorage() *AuthorStorage {
	return &AuthorStorage{db: s.db}
}

// QuoteStorage returns a QuoteStorage
func (s *Storage) QuoteStorage() *QuoteStorage {
	return &QuoteStorage{db: s.db}
}

// UsersStorage returns a UsersStorage
func (s *Storage) UsersStorage() *UsersStorage {
	return &UsersStorage{db: s.db, params: s.userParams}
}

// Backends returns the model.Backends served by this storage
func (s *Storage) Backends() model.Backends {
	return model.Backends{
		Authors: s.AuthorStorage(),
		Quotes:  s.QuoteStorage(),
		Users:   s.UsersStorage(),
	}
}

// LoadStorageBackends loads and returns the storage backends for the passed Config
func LoadStorageBackends(cfg Config) (model.Backends, error) {
	if cfg.Driver == DriverMemory {
		return NewMemoryBackends(cfg.UsersHash), nil
	}
	s, err := NewStorage(cfg)
	if err != nil {
		return model.Backends{}, err
	}
	return s.Backends(), nil
}
