package whatsapp

import (
	"testing"

	"go.mau.fi/whatsmeow/types"
)

func TestJIDFor(t *testing.T) {
	s := &Service{cfg: &Config{DefaultCountryCode: "972"}}

	tests := []struct {
		ref  string
		want string
	}{
		{"15550001@s.whatsapp.net", "15550001@s.whatsapp.net"},
		{"052-123-4567", "972521234567@s.whatsapp.net"},
		{"+972 52 123 4567", "972521234567@s.whatsapp.net"},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			jid, err := s.jidFor(tt.ref)
			if err != nil {
				t.Fatalf("jidFor(%q): %v", tt.ref, err)
			}
			if jid.String() != tt.want {
				t.Errorf("jidFor(%q) = %s, want %s", tt.ref, jid, tt.want)
			}
		})
	}

	if _, err := s.jidFor("no digits"); err == nil {
		t.Fatal("expected error for reference without digits")
	}
}

func TestContactName(t *testing.T) {
	tests := []struct {
		info types.ContactInfo
		want string
	}{
		{types.ContactInfo{FullName: "Jane Doe", PushName: "jd"}, "Jane Doe"},
		{types.ContactInfo{FirstName: "Jane", PushName: "jd"}, "Jane"},
		{types.ContactInfo{PushName: "jd"}, "jd"},
		{types.ContactInfo{}, ""},
	}
	for _, tt := range tests {
		if got := contactName(tt.info); got != tt.want {
			t.Errorf("contactName(%+v) = %q, want %q", tt.info, got, tt.want)
		}
	}
}
