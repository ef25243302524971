package contacts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/emersion/go-vcard"
)

// VCardBook is an address book backed by a .vcf file. A reference is either
// the card's UID or its 1-based position in the file.
type VCardBook struct {
	path string
}

func NewVCardBook(path string) *VCardBook {
	return &VCardBook{path: path}
}

// Entry is a card together with the reference that resolves it.
type Entry struct {
	Ref string
	Contact
}

// Lookup implements AddressBook.
func (b *VCardBook) Lookup(ctx context.Context, ref string) (Contact, error) {
	entries, err := b.List(ctx)
	if err != nil {
		return Contact{}, err
	}
	for _, e := range entries {
		if e.Ref == ref {
			return e.Contact, nil
		}
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(entries) {
		return entries[n-1].Contact, nil
	}
	return Contact{}, fmt.Errorf("no card with reference %q", ref)
}

// List reads every card in the file, in file order.
func (b *VCardBook) List(ctx context.Context) ([]Entry, error) {
	f, err := os.Open(b.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open address book: %w", err)
	}
	defer f.Close()

	var entries []Entry
	dec := vcard.NewDecoder(f)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		card, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode card %d: %w", len(entries)+1, err)
		}

		ref := card.Value(vcard.FieldUID)
		if ref == "" {
			ref = strconv.Itoa(len(entries) + 1)
		}
		entries = append(entries, Entry{
			Ref: ref,
			Contact: Contact{
				DisplayName: displayName(card),
				PhoneNumber: card.PreferredValue(vcard.FieldTelephone),
			},
		})
	}
	return entries, nil
}

func displayName(card vcard.Card) string {
	if fn := card.PreferredValue(vcard.FieldFormattedName); fn != "" {
		return fn
	}
	if n := card.Name(); n != nil {
		return strings.TrimSpace(n.GivenName + " " + n.FamilyName)
	}
	return ""
}
