package storage

import (
	"math/rand"
	"sort"
	"sync"
	"time"

	arrays "github.com/adam-hanna/arrayOperations"
	"github.com/pkg/errors"
	"tideland.dev/go/slices"

	"github.com/robmarkaryan/quoteserver/storage/model"
)

// memoryStore is the shared state behind the in-memory backend. It keeps
// the same semantics as the GORM backend (status handling, clamping, FK
// checks) without any persistence; useful for tests and for running the
// service with `driver: memory`.
type memoryStore struct {
	mu           sync.Mutex
	authors      map[uint]model.Author
	quotes       map[uint]model.Quote
	users        map[string]model.User
	nextAuthorID uint
	nextQuoteID  uint
	nextUserID   uint
	userParams   Argon2idParams
}

// NewMemoryBackends returns model.Backends backed by process memory
func NewMemoryBackends(userParams Argon2idParams) model.Backends {
	if userParams.Time == 0 {
		userParams = defaultArgon2idParams()
	}
	m := &memoryStore{
		authors:    make(map[uint]model.Author),
		quotes:     make(map[uint]model.Quote),
		users:      make(map[string]model.User),
		userParams: userParams,
	}
	return model.Backends{
		Authors: &MemoryAuthorStorage{m},
		Quotes:  &MemoryQuoteStorage{m},
		Users:   &MemoryUsersStorage{m},
	}
}

// MemoryAuthorStorage implements model.AuthorsStore on a memoryStore
type MemoryAuthorStorage struct {
	store *memoryStore
}

// MemoryQuoteStorage implements model.QuotesStore on a memoryStore
type MemoryQuoteStorage struct {
	store *memoryStore
}

// MemoryUsersStorage implements model.UsersStore on a memoryStore
type MemoryUsersStorage struct {
	store *memoryStore
}

func (m *memoryStore) sortedQuoteIDs() []uint {
	ids := make([]uint, 0, len(m.quotes))
	for id := range m.quotes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (m *memoryStore) deletedQuoteIDs() []uint {
	var ids []uint
	for id, q := range m.quotes {
		if q.Status == model.StatusDeleted {
			ids = append(ids, id)
		}
	}
	return ids
}

// Create creates an author with a unique name
func (s *MemoryAuthorStorage) Create(name, surname string) (*model.Author, error) {
	if name == "" {
		return nil, model.ValidationError("author name is required")
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	for _, a := range s.store.authors {
		if a.Name == name {
			return nil, model.AlreadyExistsErrorFmt("author already exists: %s", name)
		}
	}
	s.store.nextAuthorID++
	a := model.Author{
		ID:      s.store.nextAuthorID,
		Name:    name,
		Surname: surname,
		Status:  model.StatusActive,
	}
	s.store.authors[a.ID] = a
	return &a, nil
}

// Get returns an author by id
func (s *MemoryAuthorStorage) Get(id uint, includeDeleted bool) (*model.Author, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	a, ok := s.store.authors[id]
	if !ok || (!includeDeleted && a.Status == model.StatusDeleted) {
		return nil, model.NotFoundErrorFmt("author not found: %d", id)
	}
	return &a, nil
}

// List returns all authors ordered by the passed column
func (s *MemoryAuthorStorage) List(sortBy string, includeDeleted bool) ([]model.Author, error) {
	if _, ok := authorSortColumns[sortBy]; !ok {
		return nil, model.ValidationErrorFmt("cannot sort authors by '%s'", sortBy)
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	authors := make([]model.Author, 0, len(s.store.authors))
	for _, a := range s.store.authors {
		if !includeDeleted && a.Status == model.StatusDeleted {
			continue
		}
		authors = append(authors, a)
	}
	sort.Slice(
		authors, func(i, j int) bool {
			switch sortBy {
			case "name":
				return authors[i].Name < authors[j].Name
			case "surname":
				return authors[i].Surname < authors[j].Surname
			default:
				return authors[i].ID < authors[j].ID
			}
		},
	)
	return authors, nil
}

// Update applies the non-nil fields of upd
func (s *MemoryAuthorStorage) Update(id uint, upd model.AuthorUpdate) (*model.Author, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	a, ok := s.store.authors[id]
	if !ok {
		return nil, model.NotFoundErrorFmt("author not found: %d", id)
	}
	if upd.Name != nil {
		if *upd.Name == "" {
			return nil, model.ValidationError("author name must not be empty")
		}
		for _, other := range s.store.authors {
			if other.ID != id && other.Name == *upd.Name {
				return nil, model.AlreadyExistsErrorFmt("author already exists: %s", *upd.Name)
			}
		}
		a.Name = *upd.Name
	}
	if upd.Surname != nil {
		a.Surname = *upd.Surname
	}
	s.store.authors[id] = a
	return &a, nil
}

// Delete soft-deletes the author and cascades the status to its quotes
func (s *MemoryAuthorStorage) Delete(id uint) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	a, ok := s.store.authors[id]
	if !ok {
		return model.NotFoundErrorFmt("author not found: %d", id)
	}
	for _, q := range s.store.quotes {
		if q.AuthorID == id {
			a.Quotes = append(a.Quotes, q)
		}
	}
	a.MarkDeleted()
	for _, q := range a.Quotes {
		s.store.quotes[q.ID] = q
	}
	a.Quotes = nil
	s.store.authors[id] = a
	return nil
}

// Create creates a quote for an existing author
func (s *MemoryQuoteStorage) Create(authorID uint, text string, rating *int) (*model.Quote, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	a, ok := s.store.authors[authorID]
	if !ok || a.Status == model.StatusDeleted {
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
	s.store.nextQuoteID++
	q.ID = s.store.nextQuoteID
	s.store.quotes[q.ID] = *q
	return q, nil
}

// Get returns a quote by id
func (s *MemoryQuoteStorage) Get(id uint, includeDeleted bool) (*model.Quote, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	q, ok := s.store.quotes[id]
	if !ok || (!includeDeleted && q.Status == model.StatusDeleted) {
		return nil, model.NotFoundErrorFmt("quote not found: %d", id)
	}
	return &q, nil
}

// List returns all quotes matching the filter, ordered by id. Each set
// predicate produces a set of matching ids; the result is their
// intersection (AND semantics, equality only).
func (s *MemoryQuoteStorage) List(filter model.QuoteFilter, includeDeleted bool) ([]model.Quote, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, model.ValidationErrorFmt("invalid status filter: %d", *filter.Status)
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	ids := s.store.sortedQuoteIDs()
	if filter.AuthorID != nil {
		ids = arrays.Intersect(ids, s.matchingIDs(func(q model.Quote) bool { return q.AuthorID == *filter.AuthorID }))
	}
	if filter.Text != nil {
		ids = arrays.Intersect(ids, s.matchingIDs(func(q model.Quote) bool { return q.Text == *filter.Text }))
	}
	if filter.Rating != nil {
		ids = arrays.Intersect(ids, s.matchingIDs(func(q model.Quote) bool { return q.Rating == *filter.Rating }))
	}
	if filter.Status != nil {
		ids = arrays.Intersect(ids, s.matchingIDs(func(q model.Quote) bool { return q.Status == *filter.Status }))
	} else if !includeDeleted {
		ids = slices.Subtract(ids, s.store.deletedQuoteIDs())
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	quotes := make([]model.Quote, 0, len(ids))
	for _, id := range ids {
		quotes = append(quotes, s.store.quotes[id])
	}
	return quotes, nil
}

func (s *MemoryQuoteStorage) matchingIDs(pred func(model.Quote) bool) []uint {
	var ids []uint
	for id, q := range s.store.quotes {
		if pred(q) {
			ids = append(ids, id)
		}
	}
	return ids
}

// ListByAuthor returns all quotes owned by the author
func (s *MemoryQuoteStorage) ListByAuthor(authorID uint, includeDeleted bool) ([]model.Quote, error) {
	return s.List(model.QuoteFilter{AuthorID: &authorID}, includeDeleted)
}

// Update applies the non-nil fields of upd
func (s *MemoryQuoteStorage) Update(id uint, upd model.QuoteUpdate) (*model.Quote, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	q, ok := s.store.quotes[id]
	if !ok {
		return nil, model.NotFoundErrorFmt("quote not found: %d", id)
	}
	if upd.AuthorID != nil {
		a, ok := s.store.authors[*upd.AuthorID]
		if !ok || a.Status == model.StatusDeleted {
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
	s.store.quotes[id] = q
	return &q, nil
}

// AdjustRating changes the rating by delta, saturating at the [1,5] bounds
func (s *MemoryQuoteStorage) AdjustRating(id uint, delta int) (*model.Quote, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	q, ok := s.store.quotes[id]
	if !ok {
		return nil, model.NotFoundErrorFmt("quote not found: %d", id)
	}
	q.AdjustRating(delta)
	s.store.quotes[id] = q
	return &q, nil
}

// Delete soft-deletes the quote; with purge the record is erased
func (s *MemoryQuoteStorage) Delete(id uint, purge bool) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	q, ok := s.store.quotes[id]
	if !ok {
		return model.NotFoundErrorFmt("quote not found: %d", id)
	}
	if purge {
		delete(s.store.quotes, id)
		return nil
	}
	q.MarkDeleted()
	s.store.quotes[id] = q
	return nil
}

// Count returns the number of quotes present
func (s *MemoryQuoteStorage) Count(includeDeleted bool) (int64, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	var count int64
	for _, q := range s.store.quotes {
		if !includeDeleted && q.Status == model.StatusDeleted {
			continue
		}
		count++
	}
	return count, nil
}

// Random returns one random quote
func (s *MemoryQuoteStorage) Random(includeDeleted bool) (*model.Quote, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	ids := s.store.sortedQuoteIDs()
	if !includeDeleted {
		ids = slices.Subtract(ids, s.store.deletedQuoteIDs())
	}
	if len(ids) == 0 {
		return nil, model.NotFoundError("no quotes stored")
	}
	q := s.store.quotes[ids[rand.Intn(len(ids))]]
	return &q, nil
}

// Count returns the number of users present in the store
func (s *MemoryUsersStorage) Count() (int64, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	return int64(len(s.store.users)), nil
}

// List returns all users (without password hashes)
func (s *MemoryUsersStorage) List() ([]model.User, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	users := make([]model.User, 0, len(s.store.users))
	for _, u := range s.store.users {
		u.PasswordHash = ""
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// Get returns a user by username
func (s *MemoryUsersStorage) Get(username string) (*model.User, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	u, ok := s.store.users[username]
	if !ok {
		return nil, model.NotFoundErrorFmt("user not found: %s", username)
	}
	u.PasswordHash = ""
	return &u, nil
}

// Create creates a user with an Argon2id-hashed password
func (s *MemoryUsersStorage) Create(username, password, displayName string) (*model.User, error) {
	if len(username) == 0 || len(password) == 0 {
		return nil, model.ValidationError("username and password are required")
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if _, ok := s.store.users[username]; ok {
		return nil, model.AlreadyExistsErrorFmt("user already exists: %s", username)
	}
	hash, err := hashPasswordArgon2id(password, s.store.userParams)
	if err != nil {
		return nil, err
	}
	s.store.nextUserID++
	u := model.User{
		ID:           s.store.nextUserID,
		Username:     username,
		PasswordHash: hash,
		DisplayName:  displayName,
	}
	s.store.users[username] = u
	u.PasswordHash = ""
	return &u, nil
}

// Update updates display name / password / disabled
func (s *MemoryUsersStorage) Update(username string, displayName *string, newPassword *string, disabled *bool) (*model.User, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	u, ok := s.store.users[username]
	if !ok {
		return nil, model.NotFoundErrorFmt("user not found: %s", username)
	}
	if displayName != nil {
		u.DisplayName = *displayName
	}
	if disabled != nil {
		u.Disabled = *disabled
	}
	if newPassword != nil {
		if len(*newPassword) == 0 {
			return nil, model.ValidationError("password cannot be empty")
		}
		hash, err := hashPasswordArgon2id(*newPassword, s.store.userParams)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	s.store.users[username] = u
	u.PasswordHash = ""
	return &u, nil
}

// Delete deletes a user by username
func (s *MemoryUsersStorage) Delete(username string) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if _, ok := s.store.users[username]; !ok {
		return model.NotFoundErrorFmt("user not found: %s", username)
	}
	delete(s.store.users, username)
	return nil
}

// Authenticate checks a username/password combo and returns the user
func (s *MemoryUsersStorage) Authenticate(username, password string) (*model.User, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	u, ok := s.store.users[username]
	if !ok {
		return nil, model.NotFoundErrorFmt("user not found: %s", username)
	}
	if u.Disabled {
		return nil, errors.Errorf("user disabled")
	}
	ok, err := verifyPasswordArgon2id(u.PasswordHash, password)
	if err != nil || !ok {
		return nil, errors.Errorf("invalid credentials")
	}
	u.PasswordHash = ""
	return &u, nil
}
