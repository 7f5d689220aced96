package storage

import (
	"math/rand"
	"time"

	"gorm.io/gorm"

	"github.com/robmarkaryan/quoteserver/storage/model"
)

// QuoteStorage implements model.QuotesStore using GORM
type QuoteStorage struct {
	db *gorm.DB
}

// Create creates a quote for an existing author. A nil rating takes the
// default of 1; out-of-range values saturate at the bounds.
func (s *QuoteStorage) Create(authorID uint, text string, rating *int) (*model.Quote, error) {
	var a model.Author
	if err := s.db.Where("id = ? AND changed = ?", authorID, model.StatusActive).
		First(&a).Error; err != nil {
		return nil, model.NotFoundErrorFmt("author not found: %d", authorID)
	}
	r := model.RatingMin
	if rating != nil {
		r = *rating
	}
	q, err := model.NewQuote(&a, text, time.Now(), r)
	if err != nil {
		return nil, err
	}
	if err := s.db.Create(q).Error; err != nil {
		return nil, err
	}
	return q, nil
}

// Get returns a quote by id
func (s *QuoteStorage) Get(id uint, includeDeleted bool) (*model.Quote, error) {
	var q model.Quote
	query := s.db.Where("id = ?", id)
	if !includeDeleted {
		query = query.Where("changed = ?", model.StatusActive)
	}
	if err := query.First(&q).Error; err != nil {
		return nil, model.NotFoundErrorFmt("quote not found: %d", id)
	}
	return &q, nil
}

// List returns all quotes matching the filter, ordered by id. Set filter
// fields are combined with AND semantics, equality only.
func (s *QuoteStorage) List(filter model.QuoteFilter, includeDeleted bool) ([]model.Quote, error) {
	q := s.db.Model(&model.Quote{}).Order("id")
	if filter.AuthorID != nil {
		q = q.Where("author_id = ?", *filter.AuthorID)
	}
	if filter.Text != nil {
		q = q.Where("text = ?", *filter.Text)
	}
	if filter.Rating != nil {
		q = q.Where("rating = ?", *filter.Rating)
	}
	if filter.Status != nil {
		if !filter.Status.Valid() {
			return nil, model.ValidationErrorFmt("invalid status filter: %d", *filter.Status)
		}
		q = q.Where("changed = ?", *filter.Status)
	} else if !includeDeleted {
		q = q.Where("changed = ?", model.StatusActive)
	}
	var quotes []model.Quote
	if err := q.Find(&quotes).Error; err != nil {
		return nil, err
	}
	return quotes, nil
}

// ListByAuthor returns all quotes owned by the author
func (s *QuoteStorage) ListByAuthor(authorID uint, includeDeleted bool) ([]model.Quote, error) {
	return s.List(model.QuoteFilter{AuthorID: &authorID}, includeDeleted)
}

// Update applies the non-nil fields of upd. Moving the quote to another
// author validates that the target author exists.
func (s *QuoteStorage) Update(id uint, upd model.QuoteUpdate) (*model.Quote, error) {
	var q model.Quote
	if err := s.db.First(&q, id).Error; err != nil {
		return nil, model.NotFoundErrorFmt("quote not found: %d", id)
	}
	if upd.AuthorID != nil {
		var a model.Author
		if err := s.db.Where("id = ? AND changed = ?", *upd.AuthorID, model.StatusActive).
			First(&a).Error; err != nil {
			return nil, model.NotFoundErrorFmt("author not found: %d", *upd.AuthorID)
		}
		q.AuthorID = a.ID
	}
	if upd.Text != nil {
		if *upd.Text == "" {
			return nil, model.ValidationError("quote text must not be empty")
		}
		q.Text = *upd.Text
	}
	if err := s.db.Save(&q).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

// AdjustRating changes the rating by delta, saturating at the [1,5] bounds
func (s *QuoteStorage) AdjustRating(id uint, delta int) (*model.Quote, error) {
	var q model.Quote
	if err := s.db.First(&q, id).Error; err != nil {
		return nil, model.NotFoundErrorFmt("quote not found: %d", id)
	}
	q.AdjustRating(delta)
	if err := s.db.Save(&q).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

// Delete soft-deletes the quote; with purge the row is physically erased
func (s *QuoteStorage) Delete(id uint, purge bool) error {
	if purge {
		res := s.db.Delete(&model.Quote{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return model.NotFoundErrorFmt("quote not found: %d", id)
		}
		return nil
	}
	var q model.Quote
	if err := s.db.First(&q, id).Error; err != nil {
		return model.NotFoundErrorFmt("quote not found: %d", id)
	}
	q.MarkDeleted()
	return s.db.Model(&q).Update("changed", model.StatusDeleted).Error
}

// Count returns the number of quotes present
func (s *QuoteStorage) Count(includeDeleted bool) (int64, error) {
	q := s.db.Model(&model.Quote{})
	if !includeDeleted {
		q = q.Where("changed = ?", model.StatusActive)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Random returns one random quote. Driver-independent: pick a random id in
// Go instead of relying on the SQL dialect's RANDOM().
func (s *QuoteStorage) Random(includeDeleted bool) (*model.Quote, error) {
	q := s.db.Model(&model.Quote{})
	if !includeDeleted {
		q = q.Where("changed = ?", model.StatusActive)
	}
	var ids []uint
	if err := q.Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, model.NotFoundError("no quotes stored")
	}
	return s.Get(ids[rand.Intn(len(ids))], includeDeleted)
}
