package dirsum

import (
	"testing"
)

func TestParseHumanSize(t *testing.T) {
	tests := []struct {
		input    string
		expected int
		wantErr  bool
	}{
		{"512", 512, false},
		{"512B", 512, false},
		{"64K", 64 * 1024, false},
		{"64kb", 64 * 1024, false},
		{"2M", 2 * 1024 * 1024, false},
		{" 2MB ", 2 * 1024 * 1024, false},
		{"1.5G", 3 * 512 * 1024 * 1024, false},
		{"", 0, true},
		{"M", 0, true},
		{"12Q", 0, true},
		{"0", 0, true},
		{"1.2.3K", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseHumanSize(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseHumanSize(%q) expected error, got %d", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseHumanSize(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseHumanSize(%q) = %d, expected %d", tt.input, got, tt.expected)
		}
	}
}
