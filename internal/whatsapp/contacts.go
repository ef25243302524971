package whatsapp

import (
	"context"
	"fmt"

	"go.mau.fi/whatsmeow/types"

	"event-planner/internal/contacts"
)

// Lookup resolves a contact from the linked device's address book. ref is a
// JID or a phone number.
func (s *Service) Lookup(ctx context.Context, ref string) (contacts.Contact, error) {
	jid, err := s.jidFor(ref)
	if err != nil {
		return contacts.Contact{}, err
	}

	info, err := s.client.Store.Contacts.GetContact(ctx, jid)
	if err != nil {
		return contacts.Contact{}, fmt.Errorf("failed to read contact store: %w", err)
	}
	if !info.Found {
		return contacts.Contact{}, fmt.Errorf("contact %s not in address book", jid)
	}
	return contacts.Contact{
		DisplayName: contactName(info),
		PhoneNumber: "+" + jid.User,
	}, nil
}

func contactName(info types.ContactInfo) string {
	for _, name := range []string{info.FullName, info.FirstName, info.BusinessName, info.PushName} {
		if name != "" {
			return name
		}
	}
	return ""
}
