package contacts

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"event-planner/internal/models"
)

// Contact is the part of an address book entry needed to add a guest.
type Contact struct {
	DisplayName string `json:"display_name"`
	PhoneNumber string `json:"phone_number"`
}

// AddressBook looks up a single entry by an opaque reference.
type AddressBook interface {
	Lookup(ctx context.Context, ref string) (Contact, error)
}

// Resolver turns contact references into name and phone number pairs.
type Resolver struct {
	book AddressBook
	log  zerolog.Logger
}

func NewResolver(book AddressBook, log zerolog.Logger) *Resolver {
	return &Resolver{
		book: book,
		log:  log.With().Str("component", "contacts").Logger(),
	}
}

var errIncomplete = errors.New("contact has no name or phone number")

// Resolve looks ref up in the address book. Every failure, including an entry
// without a name or number, comes back as *models.LookupError and is logged.
func (r *Resolver) Resolve(ctx context.Context, ref string) (Contact, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Contact{}, r.fail(ref, errors.New("empty reference"))
	}

	c, err := r.book.Lookup(ctx, ref)
	if err != nil {
		return Contact{}, r.fail(ref, err)
	}

	c.DisplayName = strings.TrimSpace(c.DisplayName)
	c.PhoneNumber = strings.TrimSpace(c.PhoneNumber)
	if c.DisplayName == "" || c.PhoneNumber == "" {
		return Contact{}, r.fail(ref, errIncomplete)
	}
	return c, nil
}

func (r *Resolver) fail(ref string, err error) error {
	r.log.Warn().Err(err).Str("ref", ref).Msg("Contact details not found")
	return &models.LookupError{Ref: ref, Err: err}
}
