package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("select player: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped sql.ErrNoRows to be not found")
	}
	if isNotFound(fakeErr("pq: relation players does not exist")) {
		t.Fatalf("expected unrelated error to be ignored")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches 23505", func(t *testing.T) {
		err := fmt.Errorf("insert: %w", &pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})
		if !isUniqueViolation(err) {
			t.Fatalf("expected unique violation")
		}
	})

	t.Run("ignores other codes", func(t *testing.T) {
		if isUniqueViolation(&pq.Error{Code: "23503"}) {
			t.Fatalf("expected foreign key violation to be ignored")
		}
		if isUniqueViolation(fakeErr("duplicate key")) {
			t.Fatalf("expected plain error to be ignored")
		}
	})
}

func TestIsUUID(t *testing.T) {
	if !isUUID("0b7e9c7c-3f5d-4d6a-9a57-2f3c1f1b8e21") {
		t.Fatalf("expected valid uuid")
	}
	if isUUID("missing") {
		t.Fatalf("expected malformed id to be rejected")
	}
}

func TestOptionalString(t *testing.T) {
	if got := optionalString("   "); got != nil {
		t.Fatalf("expected nil for blank string, got %q", *got)
	}
	if got := optionalString(" 00-0031234 "); got == nil || *got != "00-0031234" {
		t.Fatalf("unexpected trimmed value: %v", got)
	}
}

func TestNullDecimalRoundTrip(t *testing.T) {
	t.Run("unset stays null", func(t *testing.T) {
		if got := nullDecimal(nil); got.Valid {
			t.Fatalf("expected invalid NullDecimal for nil")
		}
		if got := decimalPtr(decimal.NullDecimal{}); got != nil {
			t.Fatalf("expected nil pointer for NULL, got %s", got)
		}
	})

	t.Run("explicit zero survives", func(t *testing.T) {
		zero := decimal.Zero
		got := decimalPtr(nullDecimal(&zero))
		if got == nil || !got.IsZero() {
			t.Fatalf("expected explicit zero, got %v", got)
		}
	})
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
