package model

// Author represents a quote author for storage.
// Name is unique across all authors; Surname is optional.
type Author struct {
	ID      uint    `gorm:"primaryKey" json:"id"`
	Name    string  `gorm:"size:32;uniqueIndex;not null" json:"name"`
	Surname string  `gorm:"size:32" json:"surname,omitempty"`
	Status  Status  `gorm:"column:changed;default:1" json:"status"`
	Quotes  []Quote `gorm:"foreignKey:AuthorID" json:"-"`
}

// TableName keeps the table name of the original schema
func (Author) TableName() string {
	return "authors"
}

// MarkDeleted flips the author to StatusDeleted and cascades the status to
// every loaded quote. Quote→Author is a single directed reference, so this
// is a one-level walk, no cycles possible.
func (a *Author) MarkDeleted() {
	a.Status = StatusDeleted
	for i := range a.Quotes {
		a.Quotes[i].MarkDeleted()
	}
}

// AuthorView is the externally visible representation of an Author.
type AuthorView struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname,omitempty"`
	Status  Status `json:"status"`
}

// View returns the author's externally visible fields, omitting storage
// internals.
func (a Author) View() AuthorView {
	return AuthorView{
		ID:      a.ID,
		Name:    a.Name,
		Surname: a.Surname,
		Status:  a.Status,
	}
}

// AuthorUpdate holds the updatable fields of an Author; nil fields are left
// unchanged.
type AuthorUpdate struct {
	Name    *string `json:"name"`
	Surname *string `json:"surname"`
}

// AuthorsStore abstracts CRUD for authors.
type AuthorsStore interface {
	// Create creates an author; the name must not already be taken
	Create(name, surname string) (*Author, error)
	// Get returns an author by id
	Get(id uint, includeDeleted bool) (*Author, error)
	// List returns all authors ordered by the passed column (id, name or
	// surname; empty means id)
	List(sortBy string, includeDeleted bool) ([]Author, error)
	// Update applies the non-nil fields of upd
	Update(id uint, upd AuthorUpdate) (*Author, error)
	// Delete soft-deletes the author and all of its quotes as one unit
	Delete(id uint) error
}
