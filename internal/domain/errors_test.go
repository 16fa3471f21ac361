package domain

import "testing"

func TestResolverErrorMessage(t *testing.T) {
	err := NewOutOfRange("value %v out of range", 5)
	if err.Kind != ErrorKindOutOfRange {
		t.Fatalf("expected OutOfRange kind, got %v", err.Kind)
	}
	want := "OutOfRange: value 5 out of range"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}

func TestNewNoSubmissionsNamesQuestion(t *testing.T) {
	err := NewNoSubmissions("q1")
	if err.Kind != ErrorKindNoSubmissions {
		t.Fatalf("expected NoSubmissions kind, got %v", err.Kind)
	}
	if err.Message == "" {
		t.Fatalf("expected a non-empty message")
	}
}
