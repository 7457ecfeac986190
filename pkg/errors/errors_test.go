package errors

import (
	"errors"
	"testing"
)

func TestStorageWrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Storage(cause, "save status posts")

	if !IsStorage(err) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be preserved")
	}
	if GetCode(err) != CodeStorage {
		t.Fatalf("unexpected code %q", GetCode(err))
	}
	if err.Error() != "save status posts: storage failure\nconnection refused" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestInvalidPayload(t *testing.T) {
	err := InvalidPayload(errors.New("Text is required"))
	if !IsInvalidPayload(err) {
		t.Fatalf("expected invalid payload, got %v", err)
	}
	if IsStorage(err) || IsNotFound(err) {
		t.Fatalf("unexpected classification for %v", err)
	}
}

func TestNilPassthrough(t *testing.T) {
	if Wrap(nil, "x") != nil || WrapWithCode(nil, "c", "x") != nil || Storage(nil, "x") != nil || InvalidPayload(nil) != nil {
		t.Fatalf("nil errors must stay nil")
	}
	if GetCode(errors.New("plain")) != "" {
		t.Fatalf("plain errors carry no code")
	}
}
