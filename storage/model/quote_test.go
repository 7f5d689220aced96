package model

import (
	"testing"
	"time"
)

// TestClampRating tests that clamping is total and idempotent
func TestClampRating(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-100, 1},
		{0, 1},
		{1, 1},
		{3, 3},
		{5, 5},
		{6, 5},
		{100, 5},
	}
	for _, tt := range tests {
		got := ClampRating(tt.in)
		if got != tt.want {
			t.Errorf("ClampRating(%d) = %d, want %d", tt.in, got, tt.want)
		}
		// Clamping an already-valid rating is a no-op
		if again := ClampRating(got); again != got {
			t.Errorf("ClampRating(%d) = %d, clamp is not idempotent", got, again)
		}
	}
}

// TestAdjustRatingSaturates tests that rating adjustments saturate at the
// bounds and are not reversible after saturation
func TestAdjustRatingSaturates(t *testing.T) {
	q := Quote{Rating: 3}
	q.AdjustRating(10)
	if q.Rating != 5 {
		t.Fatalf("expected rating 5 after +10, got %d", q.Rating)
	}
	q.AdjustRating(-10)
	if q.Rating != 1 {
		t.Fatalf("expected rating 1 after -10, got %d", q.Rating)
	}
	// The original rating of 3 is lost: clamping is lossy
	if q.Rating == 3 {
		t.Fatal("adjusting +10 then -10 must not restore the original rating")
	}
}

// TestNewQuote tests quote construction validation and rating defaulting
func TestNewQuote(t *testing.T) {
	author := &Author{ID: 1, Name: "Mark Twain"}

	q, err := NewQuote(author, "some text", time.Now(), 0)
	if err != nil {
		t.Fatalf("NewQuote failed: %v", err)
	}
	if q.Rating != 1 {
		t.Errorf("expected default rating 1, got %d", q.Rating)
	}
	if q.Status != StatusActive {
		t.Errorf("expected new quote to be active, got %s", q.Status)
	}
	if q.AuthorID != author.ID {
		t.Errorf("expected author id %d, got %d", author.ID, q.AuthorID)
	}

	q, err = NewQuote(author, "some text", time.Now(), 42)
	if err != nil {
		t.Fatalf("NewQuote failed: %v", err)
	}
	if q.Rating != 5 {
		t.Errorf("expected clamped rating 5, got %d", q.Rating)
	}

	if _, err = NewQuote(nil, "some text", time.Now(), 1); err == nil {
		t.Error("expected an error for a nil author")
	} else if _, ok := err.(ValidationError); !ok {
		t.Errorf("expected ValidationError, got %T", err)
	}

	if _, err = NewQuote(&Author{}, "some text", time.Now(), 1); err == nil {
		t.Error("expected an error for an unsaved author")
	}

	if _, err = NewQuote(author, "", time.Now(), 1); err == nil {
		t.Error("expected an error for empty text")
	}
}

// TestQuoteView tests that the view renders the created timestamp as a
// calendar date and carries only the externally visible fields
func TestQuoteView(t *testing.T) {
	created := time.Date(2024, time.March, 7, 15, 4, 5, 0, time.UTC)
	q := Quote{
		ID:       12,
		AuthorID: 3,
		Text:     "so it goes",
		Rating:   4,
		Status:   StatusActive,
		Created:  created,
	}
	v := q.View()
	if v.Created != "07.03.2024" {
		t.Errorf("expected created date 07.03.2024, got %s", v.Created)
	}
	if v.ID != q.ID || v.Author != q.AuthorID || v.Text != q.Text || v.Rating != q.Rating {
		t.Errorf("view does not match quote: %+v vs %+v", v, q)
	}
}

// TestAuthorMarkDeletedCascades tests that deleting an author flips its own
// status and the status of every loaded quote
func TestAuthorMarkDeletedCascades(t *testing.T) {
	a := Author{
		ID:     1,
		Name:   "Mark Twain",
		Status: StatusActive,
		Quotes: []Quote{
			{ID: 1, AuthorID: 1, Status: StatusActive},
			{ID: 2, AuthorID: 1, Status: StatusActive},
			{ID: 3, AuthorID: 1, Status: StatusActive},
		},
	}
	a.MarkDeleted()
	if a.Status != StatusDeleted {
		t.Fatalf("expected author to be deleted, got %s", a.Status)
	}
	for _, q := range a.Quotes {
		if q.Status != StatusDeleted {
			t.Errorf("expected quote %d to be deleted, got %s", q.ID, q.Status)
		}
	}
}

// TestAuthorMarkDeletedNoQuotes tests that the cascade is a bare status
// flip for an author without quotes
func TestAuthorMarkDeletedNoQuotes(t *testing.T) {
	a := Author{ID: 2, Name: "Nobody", Status: StatusActive}
	a.MarkDeleted()
	if a.Status != StatusDeleted {
		t.Fatalf("expected author to be deleted, got %s", a.Status)
	}
	if len(a.Quotes) != 0 {
		t.Fatalf("expected no quotes, got %d", len(a.Quotes))
	}
}
