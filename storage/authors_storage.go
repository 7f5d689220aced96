package storage

import (
	"gorm.io/gorm"

	"github.com/robmarkaryan/quoteserver/storage/model"
)

// AuthorStorage implements model.AuthorsStore using GORM
type AuthorStorage struct {
	db *gorm.DB
}

// authorSortColumns whitelists the columns a client may sort by.
var authorSortColumns = map[string]string{
	"":        "id",
	"id":      "id",
	"name":    "name",
	"surname": "surname",
}

// Create creates an author with a unique name
func (s *AuthorStorage) Create(name, surname string) (*model.Author, error) {
	if name == "" {
		return nil, model.ValidationError("author name is required")
	}
	var existing int64
	if err := s.db.Model(&model.Author{}).Where("name = ?", name).Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, model.AlreadyExistsErrorFmt("author already exists: %s", name)
	}
	a := model.Author{Name: name, Surname: surname, Status: model.StatusActive}
	if err := s.db.Create(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// Get returns an author by id
func (s *AuthorStorage) Get(id uint, includeDeleted bool) (*model.Author, error) {
	var a model.Author
	q := s.db.Where("id = ?", id)
	if !includeDeleted {
		q = q.Where("changed = ?", model.StatusActive)
	}
	if err := q.First(&a).Error; err != nil {
		return nil, model.NotFoundErrorFmt("author not found: %d", id)
	}
	return &a, nil
}

// List returns all authors ordered by the passed column
func (s *AuthorStorage) List(sortBy string, includeDeleted bool) ([]model.Author, error) {
	column, ok := authorSortColumns[sortBy]
	if !ok {
		return nil, model.ValidationErrorFmt("cannot sort authors by '%s'", sortBy)
	}
	q := s.db.Model(&model.Author{}).Order(column)
	if !includeDeleted {
		q = q.Where("changed = ?", model.StatusActive)
	}
	var authors []model.Author
	if err := q.Find(&authors).Error; err != nil {
		return nil, err
	}
	return authors, nil
}

// Update applies the non-nil fields of upd
func (s *AuthorStorage) Update(id uint, upd model.AuthorUpdate) (*model.Author, error) {
	var a model.Author
	if err := s.db.First(&a, id).Error; err != nil {
		return nil, model.NotFoundErrorFmt("author not found: %d", id)
	}
	if upd.Name != nil {
		if *upd.Name == "" {
			return nil, model.ValidationError("author name must not be empty")
		}
		var taken int64
		if err := s.db.Model(&model.Author{}).Where("name = ? AND id <> ?", *upd.Name, id).
			Count(&taken).Error; err != nil {
			return nil, err
		}
		if taken > 0 {
			return nil, model.AlreadyExistsErrorFmt("author already exists: %s", *upd.Name)
		}
		a.Name = *upd.Name
	}
	if upd.Surname != nil {
		a.Surname = *upd.Surname
	}
	if err := s.db.Save(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// Delete soft-deletes the author and cascades the status to every owned
// quote; the whole cascade commits or fails as a unit.
func (s *AuthorStorage) Delete(id uint) error {
	return s.db.Transaction(
		func(tx *gorm.DB) error {
			var a model.Author
			if err := tx.Preload("Quotes").First(&a, id).Error; err != nil {
				return model.NotFoundErrorFmt("author not found: %d", id)
			}
			a.MarkDeleted()
			if err := tx.Model(&model.Quote{}).Where("author_id = ?", a.ID).
				Update("changed", model.StatusDeleted).Error; err != nil {
				return err
			}
			return tx.Model(&model.Author{}).Where("id = ?", a.ID).
				Update("changed", model.StatusDeleted).Error
		},
	)
}
