package models

import (
	"errors"
	"testing"
)

func TestSummarizeCountsEveryGuestOnce(t *testing.T) {
	guests := []Guest{
		{RSVPStatus: RSVPAttending},
		{RSVPStatus: RSVPNotAttending},
		{RSVPStatus: RSVPNoResponse},
		{RSVPStatus: ""},
		{RSVPStatus: RSVPAttending},
	}
	got := Summarize(guests)
	want := RSVPSummary{Attending: 2, NotAttending: 1, NoResponse: 2}
	if got != want {
		t.Fatalf("Summarize = %+v, want %+v", got, want)
	}
	if got.Total() != len(guests) {
		t.Fatalf("Total = %d, want %d", got.Total(), len(guests))
	}
	if (Summarize(nil) != RSVPSummary{}) {
		t.Fatal("empty guest list should summarize to zero")
	}
}

func TestParseRSVPStatus(t *testing.T) {
	tests := []struct {
		in   string
		want RSVPStatus
	}{
		{"Attending", RSVPAttending},
		{"not_attending", RSVPNotAttending},
		{"Not Attending", RSVPNotAttending},
		{"No Response", RSVPNoResponse},
		{"", RSVPNoResponse},
		{" yes ", RSVPAttending},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRSVPStatus(tt.in)
			if err != nil {
				t.Fatalf("ParseRSVPStatus(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}

	if _, err := ParseRSVPStatus("maybe"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTotalBudget(t *testing.T) {
	if TotalBudget(nil) != 0 {
		t.Fatal("empty budget should total 0")
	}
	lines := []BudgetLine{{Amount: 500}, {Amount: 300}, {Amount: 0.5}}
	if got := TotalBudget(lines); got != 800.5 {
		t.Fatalf("TotalBudget = %v, want 800.5", got)
	}
}

func TestErrorsUnwrapToSentinels(t *testing.T) {
	cause := errors.New("permission denied")
	lookup := &LookupError{Ref: "42", Err: cause}
	if !errors.Is(lookup, ErrLookup) || !errors.Is(lookup, ErrNotFound) || !errors.Is(lookup, cause) {
		t.Fatalf("lookup error does not unwrap: %v", lookup)
	}
	if !errors.Is(&LookupError{Ref: "x"}, ErrNotFound) {
		t.Fatal("lookup error without cause should still be not found")
	}

	send := &SendError{PhoneNumber: "+1", Err: cause}
	if !errors.Is(send, ErrSend) || !errors.Is(send, cause) {
		t.Fatalf("send error does not unwrap: %v", send)
	}

	var nf *NotFoundError
	if !errors.As(error(&NotFoundError{Entity: "task", ID: 3}), &nf) || nf.ID != 3 {
		t.Fatal("errors.As on NotFoundError failed")
	}
}
