package storage

import (
	"testing"

	"github.com/robmarkaryan/quoteserver/storage/model"
)

func newTestBackends() model.Backends {
	return NewMemoryBackends(Argon2idParams{Time: 1, MemoryKiB: 8, Parallelism: 1, KeyLen: 16, SaltLen: 8})
}

// TestMemoryAuthorCRUD tests author create/get/list/update semantics
func TestMemoryAuthorCRUD(t *testing.T) {
	b := newTestBackends()

	a, err := b.Authors.Create("Mark Twain", "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if a.ID == 0 {
		t.Fatal("expected a storage-assigned id")
	}

	if _, err = b.Authors.Create("Mark Twain", ""); err == nil {
		t.Fatal("expected duplicate name to be rejected")
	} else if _, ok := err.(model.AlreadyExistsError); !ok {
		t.Fatalf("expected AlreadyExistsError, got %T", err)
	}

	got, err := b.Authors.Get(a.ID, false)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != "Mark Twain" {
		t.Errorf("expected name 'Mark Twain', got %q", got.Name)
	}

	if _, err = b.Authors.Get(999, false); err == nil {
		t.Fatal("expected NotFoundError for an absent id")
	} else if _, ok := err.(model.NotFoundError); !ok {
		t.Fatalf("expected NotFoundError, got %T", err)
	}

	if _, err = b.Authors.Create("Kurt Vonnegut", "Jr."); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	list, err := b.Authors.List("name", false)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 2 || list[0].Name != "Kurt Vonnegut" {
		t.Errorf("expected 2 authors sorted by name, got %+v", list)
	}

	if _, err = b.Authors.List("rating", false); err == nil {
		t.Fatal("expected an error for a non-whitelisted sort column")
	}

	newName := "Samuel Clemens"
	upd, err := b.Authors.Update(a.ID, model.AuthorUpdate{Name: &newName})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if upd.Name != newName {
		t.Errorf("expected updated name %q, got %q", newName, upd.Name)
	}

	taken := "Kurt Vonnegut"
	if _, err = b.Authors.Update(a.ID, model.AuthorUpdate{Name: &taken}); err == nil {
		t.Fatal("expected renaming to a taken name to be rejected")
	}
}

// TestMemoryQuoteCreateRequiresAuthor tests the FK invariant: creating a
// quote for a non-existent author fails and persists nothing
func TestMemoryQuoteCreateRequiresAuthor(t *testing.T) {
	b := newTestBackends()

	if _, err := b.Quotes.Create(42, "orphan", nil); err == nil {
		t.Fatal("expected NotFoundError for a missing author")
	} else if _, ok := err.(model.NotFoundError); !ok {
		t.Fatalf("expected NotFoundError, got %T", err)
	}
	count, err := b.Quotes.Count(true)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no persisted quotes, got %d", count)
	}
}

// TestMemoryQuoteLifecycle tests create, rating adjustment and deletion
func TestMemoryQuoteLifecycle(t *testing.T) {
	b := newTestBackends()
	a, err := b.Authors.Create("Mark Twain", "")
	if err != nil {
		t.Fatalf("Create author failed: %v", err)
	}

	q, err := b.Quotes.Create(a.ID, "the reports of my death...", nil)
	if err != nil {
		t.Fatalf("Create quote failed: %v", err)
	}
	if q.Rating != 1 {
		t.Errorf("expected default rating 1, got %d", q.Rating)
	}

	q, err = b.Quotes.AdjustRating(q.ID, 10)
	if err != nil {
		t.Fatalf("AdjustRating failed: %v", err)
	}
	if q.Rating != 5 {
		t.Errorf("expected clamped rating 5, got %d", q.Rating)
	}

	q, err = b.Quotes.AdjustRating(q.ID, -10)
	if err != nil {
		t.Fatalf("AdjustRating failed: %v", err)
	}
	if q.Rating != 1 {
		t.Errorf("expected clamped rating 1, got %d", q.Rating)
	}

	if err = b.Quotes.Delete(q.ID, false); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err = b.Quotes.Get(q.ID, false); err == nil {
		t.Fatal("expected a soft-deleted quote to be hidden")
	}
	deleted, err := b.Quotes.Get(q.ID, true)
	if err != nil {
		t.Fatalf("Get with includeDeleted failed: %v", err)
	}
	if deleted.Status != model.StatusDeleted {
		t.Errorf("expected status deleted, got %s", deleted.Status)
	}

	if err = b.Quotes.Delete(q.ID, true); err != nil {
		t.Fatalf("purge failed: %v", err)
	}
	if _, err = b.Quotes.Get(q.ID, true); err == nil {
		t.Fatal("expected a purged quote to be gone")
	}
	if err = b.Quotes.Delete(q.ID, false); err == nil {
		t.Fatal("expected NotFoundError when deleting an absent quote")
	}
}

// TestMemoryQuoteFilter tests exact-match AND semantics of the filter
func TestMemoryQuoteFilter(t *testing.T) {
	b := newTestBackends()
	twain, _ := b.Authors.Create("Mark Twain", "")
	yogi, _ := b.Authors.Create("Yogi Berra", "")

	three := 3
	if _, err := b.Quotes.Create(twain.ID, "first", &three); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := b.Quotes.Create(twain.ID, "second", nil); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := b.Quotes.Create(yogi.ID, "third", &three); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := b.Quotes.List(model.QuoteFilter{AuthorID: &twain.ID, Rating: &three}, false)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 || got[0].Text != "first" {
		t.Fatalf("expected exactly the one quote matching both predicates, got %+v", got)
	}

	// No partial matching on text
	prefix := "fir"
	got, err = b.Quotes.List(model.QuoteFilter{Text: &prefix}, false)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no partial matches, got %+v", got)
	}

	all, err := b.Quotes.List(model.QuoteFilter{}, false)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 quotes, got %d", len(all))
	}
}

// TestMemoryCascadeDelete tests that deleting an author soft-deletes all of
// its quotes and only its quotes
func TestMemoryCascadeDelete(t *testing.T) {
	b := newTestBackends()
	twain, _ := b.Authors.Create("Mark Twain", "")
	yogi, _ := b.Authors.Create("Yogi Berra", "")
	for _, text := range []string{"one", "two", "three"} {
		if _, err := b.Quotes.Create(twain.ID, text, nil); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}
	keep, err := b.Quotes.Create(yogi.ID, "kept", nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := b.Authors.Delete(twain.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := b.Authors.Get(twain.ID, false); err == nil {
		t.Fatal("expected the deleted author to be hidden")
	}
	a, err := b.Authors.Get(twain.ID, true)
	if err != nil {
		t.Fatalf("Get with includeDeleted failed: %v", err)
	}
	if a.Status != model.StatusDeleted {
		t.Errorf("expected author status deleted, got %s", a.Status)
	}

	deleted, err := b.Quotes.ListByAuthor(twain.ID, true)
	if err != nil {
		t.Fatalf("ListByAuthor failed: %v", err)
	}
	if len(deleted) != 3 {
		t.Fatalf("expected 3 quotes, got %d", len(deleted))
	}
	for _, q := range deleted {
		if q.Status != model.StatusDeleted {
			t.Errorf("expected quote %d to be deleted, got %s", q.ID, q.Status)
		}
	}

	// The other author's quote is untouched
	got, err := b.Quotes.Get(keep.ID, false)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Status != model.StatusActive {
		t.Errorf("expected the other author's quote to stay active, got %s", got.Status)
	}

	if err := b.Authors.Delete(999); err == nil {
		t.Fatal("expected NotFoundError for an absent author")
	}
}

// TestMemoryRandomAndCount tests the random and count helpers
func TestMemoryRandomAndCount(t *testing.T) {
	b := newTestBackends()

	if _, err := b.Quotes.Random(false); err == nil {
		t.Fatal("expected an error for an empty store")
	}

	a, _ := b.Authors.Create("Mark Twain", "")
	for _, text := range []string{"one", "two"} {
		if _, err := b.Quotes.Create(a.ID, text, nil); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	count, err := b.Quotes.Count(false)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected count 2, got %d", count)
	}

	q, err := b.Quotes.Random(false)
	if err != nil {
		t.Fatalf("Random failed: %v", err)
	}
	if q.Text != "one" && q.Text != "two" {
		t.Fatalf("random returned an unknown quote: %+v", q)
	}
}

// TestMemoryUsers tests the user store including authentication
func TestMemoryUsers(t *testing.T) {
	b := newTestBackends()

	u, err := b.Users.Create("admin", "secret", "The Admin")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if u.PasswordHash != "" {
		t.Error("expected the password hash to be stripped from responses")
	}

	if _, err = b.Users.Create("admin", "other", ""); err == nil {
		t.Fatal("expected duplicate username to be rejected")
	}

	if _, err = b.Users.Authenticate("admin", "secret"); err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if _, err = b.Users.Authenticate("admin", "wrong"); err == nil {
		t.Fatal("expected wrong password to be rejected")
	}

	disabled := true
	if _, err = b.Users.Update("admin", nil, nil, &disabled); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if _, err = b.Users.Authenticate("admin", "secret"); err == nil {
		t.Fatal("expected a disabled user to be rejected")
	}

	if err = b.Users.Delete("admin"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err = b.Users.Delete("admin"); err == nil {
		t.Fatal("expected NotFoundError for an absent user")
	}
}
