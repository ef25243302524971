package models

import (
	"fmt"
	"strings"
)

// Guest represents a person on the event's guest list
type Guest struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	PhoneNumber string     `json:"phone_number"`
	IsInvited   bool       `json:"is_invited"`
	RSVPStatus  RSVPStatus `json:"rsvp_status"`
}

// RSVPStatus represents the attendance confirmation status
type RSVPStatus string

const (
	RSVPAttending    RSVPStatus = "attending"
	RSVPNotAttending RSVPStatus = "not_attending"
	RSVPNoResponse   RSVPStatus = "no_response"
)

// Valid reports whether s is one of the three known statuses.
func (s RSVPStatus) Valid() bool {
	switch s {
	case RSVPAttending, RSVPNotAttending, RSVPNoResponse:
		return true
	}
	return false
}

// Label is the human readable form used in summaries and replies.
func (s RSVPStatus) Label() string {
	switch s {
	case RSVPAttending:
		return "Attending"
	case RSVPNotAttending:
		return "Not Attending"
	default:
		return "No Response"
	}
}

// ParseRSVPStatus accepts the stored form ("not_attending") as well as the
// labels shown to users ("Not Attending"). An empty string means no response.
func ParseRSVPStatus(raw string) (RSVPStatus, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	switch key {
	case "attending", "yes":
		return RSVPAttending, nil
	case "not_attending", "no":
		return RSVPNotAttending, nil
	case "no_response", "none", "":
		return RSVPNoResponse, nil
	}
	return "", &ValidationError{Field: "rsvp_status", Msg: fmt.Sprintf("unknown status %q", raw)}
}

// RSVPSummary counts guests per RSVP bucket.
type RSVPSummary struct {
	Attending    int `json:"attending"`
	NotAttending int `json:"not_attending"`
	NoResponse   int `json:"no_response"`
}

// Total is the number of guests counted.
func (s RSVPSummary) Total() int {
	return s.Attending + s.NotAttending + s.NoResponse
}

// Summarize counts guests in a single pass. Anything that is not an explicit
// Attending or NotAttending lands in NoResponse, so every guest is counted once.
func Summarize(guests []Guest) RSVPSummary {
	var s RSVPSummary
	for _, g := range guests {
		switch g.RSVPStatus {
		case RSVPAttending:
			s.Attending++
		case RSVPNotAttending:
			s.NotAttending++
		default:
			s.NoResponse++
		}
	}
	return s
}
