package model

import (
	"time"
)

// Rating bounds. Ratings saturate at the bounds instead of being rejected.
const (
	RatingMin = 1
	RatingMax = 5
)

// createdDateFormat is the wire format for the created timestamp.
const createdDateFormat = "02.01.2006"

// Quote represents a stored quote. Every quote belongs to exactly one
// author; orphan quotes are not allowed.
type Quote struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	AuthorID uint      `gorm:"index;not null" json:"author_id"`
	Text     string    `gorm:"size:255;not null" json:"text"`
	Rating   int       `gorm:"not null;default:1" json:"rating"`
	Status   Status    `gorm:"column:changed;default:1" json:"status"`
	Created  time.Time `json:"created"`
}

// TableName keeps the table name of the original schema
func (Quote) TableName() string {
	return "quotes"
}

// NewQuote builds a quote for a persisted author. The rating is clamped
// into [RatingMin, RatingMax]; a zero rating takes the default of 1.
// Returns a ValidationError if the author is not persisted or the text is
// empty.
func NewQuote(author *Author, text string, created time.Time, rating int) (*Quote, error) {
	if author == nil || author.ID == 0 {
		return nil, ValidationError("quote author must be a persisted author")
	}
	if text == "" {
		return nil, ValidationError("quote text must not be empty")
	}
	return &Quote{
		AuthorID: author.ID,
		Text:     text,
		Rating:   ClampRating(rating),
		Status:   StatusActive,
		Created:  created,
	}, nil
}

// ClampRating saturates v into [RatingMin, RatingMax]. Clamping an
// already-valid rating is a no-op.
func ClampRating(v int) int {
	if v < RatingMin {
		return RatingMin
	}
	if v > RatingMax {
		return RatingMax
	}
	return v
}

// AdjustRating changes the rating by delta, saturating at the bounds. It
// always succeeds; the caller is responsible for persisting the quote.
func (q *Quote) AdjustRating(delta int) {
	q.Rating = ClampRating(q.Rating + delta)
}

// MarkDeleted flips the quote to StatusDeleted.
func (q *Quote) MarkDeleted() {
	q.Status = StatusDeleted
}

// QuoteView is the externally visible representation of a Quote. Created is
// rendered as a calendar date (DD.MM.YYYY).
type QuoteView struct {
	ID      uint   `json:"id"`
	Author  uint   `json:"author"`
	Text    string `json:"text"`
	Rating  int    `json:"rating"`
	Status  Status `json:"status"`
	Created string `json:"created"`
}

// View returns the quote's externally visible fields, omitting storage
// internals.
func (q Quote) View() QuoteView {
	return QuoteView{
		ID:      q.ID,
		Author:  q.AuthorID,
		Text:    q.Text,
		Rating:  q.Rating,
		Status:  q.Status,
		Created: q.Created.Format(createdDateFormat),
	}
}

// QuoteFilter is an exact-match predicate over a subset of quote fields.
// Nil fields do not constrain the result; set fields are combined with AND
// semantics. No ranges, no text search.
type QuoteFilter struct {
	AuthorID *uint
	Text     *string
	Rating   *int
	Status   *Status
}

// QuoteUpdate holds the updatable fields of a Quote; nil fields are left
// unchanged. Created is immutable and therefore absent.
type QuoteUpdate struct {
	AuthorID *uint   `json:"author"`
	Text     *string `json:"text"`
}

// QuotesStore abstracts CRUD and rating operations for quotes.
type QuotesStore interface {
	// Create creates a quote for an existing author; a nil rating takes
	// the default of 1, any other value is clamped
	Create(authorID uint, text string, rating *int) (*Quote, error)
	// Get returns a quote by id
	Get(id uint, includeDeleted bool) (*Quote, error)
	// List returns all quotes matching the filter, ordered by id
	List(filter QuoteFilter, includeDeleted bool) ([]Quote, error)
	// ListByAuthor returns all quotes owned by the author
	ListByAuthor(authorID uint, includeDeleted bool) ([]Quote, error)
	// Update applies the non-nil fields of upd; changing the author
	// validates that the new author exists
	Update(id uint, upd QuoteUpdate) (*Quote, error)
	// AdjustRating changes the rating by delta, clamped into [1,5]
	AdjustRating(id uint, delta int) (*Quote, error)
	// Delete soft-deletes the quote; with purge it erases the row
	Delete(id uint, purge bool) error
	// Count returns the number of quotes present
	Count(includeDeleted bool) (int64, error)
	// Random returns one random quote
	Random(includeDeleted bool) (*Quote, error)
}
