package phone

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, cc, want string
	}{
		{"+1 (555) 000-1", "", "15550001"},
		{"052-123-4567", "972", "972521234567"},
		{"+972 052 123 4567", "972", "972521234567"},
		{"0044 20 7946 0000", "1", "442079460000"},
		{"+15550001", "+1", "15550001"},
		{"", "972", ""},
		{"+1 555 ٠٠٠١", "", "1555"},
		{"٠٥٢١٢٣٤٥٦٧", "972", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Normalize(tt.in, tt.cc); got != tt.want {
				t.Errorf("Normalize(%q, %q) = %q, want %q", tt.in, tt.cc, got, tt.want)
			}
		})
	}
}

func TestSame(t *testing.T) {
	if !Same("+1 555-0001", "15550001", "") {
		t.Error("formatted and bare numbers should match")
	}
	if Same("", "", "") {
		t.Error("empty numbers should not match")
	}
	if Same("+15550001", "+15550002", "") {
		t.Error("different numbers matched")
	}
}
