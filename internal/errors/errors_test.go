package errors

import (
	stderrors "errors"
	"testing"
)

func TestWrapPreservesCode(t *testing.T) {
	base := MissingDateColumn()
	wrapped := Wrap(base, "upload failed")

	if GetCode(wrapped) != CodeMissingDateColumn {
		t.Fatalf("expected code %s, got %s", CodeMissingDateColumn, GetCode(wrapped))
	}
	if !stderrors.Is(wrapped, base) {
		t.Fatal("wrapped error should unwrap to its cause")
	}
}

func TestWrapForeignError(t *testing.T) {
	err := Wrap(stderrors.New("boom"), "context")
	if GetCode(err) != CodeInternalError {
		t.Fatalf("expected INTERNAL_ERROR, got %s", GetCode(err))
	}
	if err.Error() != "context: boom" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Fatal("wrapping nil should stay nil")
	}
}

func TestInsufficientCategoricalColumnsMessage(t *testing.T) {
	err := InsufficientCategoricalColumns(1)
	if GetCode(err) != CodeInsufficientCategorical {
		t.Fatalf("unexpected code %s", GetCode(err))
	}
	want := "chi-square test requires at least 2 categorical columns, found 1"
	if err.Error() != want {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}

func TestGetCodeUnknown(t *testing.T) {
	if GetCode(stderrors.New("plain")) != "UNKNOWN" {
		t.Fatal("plain errors should report UNKNOWN")
	}
}
