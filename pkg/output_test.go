package dirsum

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteLines_Buffer(t *testing.T) {
	var buf bytes.Buffer
	if err := writeLines(&buf, []string{"a.txt", "sub/b.txt"}); err != nil {
		t.Fatalf("writeLines failed: %v", err)
	}
	if buf.String() != "a.txt\nsub/b.txt\n" {
		t.Errorf("Unexpected output %q", buf.String())
	}
}

func TestWriteLines_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := writeLines(&buf, nil); err != nil {
		t.Fatalf("writeLines failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Expected no output, got %q", buf.String())
	}
}

func TestWriteLines_FileSpansIOVMaxChunks(t *testing.T) {
	lines := make([]string, fallbackIOVMax*2+17)
	for i := range lines {
		lines[i] = fmt.Sprintf("dir%04d/file%05d.txt", i%97, i)
	}

	path := filepath.Join(t.TempDir(), "out")
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create output file: %v", err)
	}
	if err := writeLines(file, lines); err != nil {
		file.Close()
		t.Fatalf("writeLines failed: %v", err)
	}
	if err := file.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	expected := strings.Join(lines, "\n") + "\n"
	if string(data) != expected {
		t.Errorf("File content mismatch: got %d bytes, expected %d", len(data), len(expected))
	}
}

func TestWriteRemainder(t *testing.T) {
	chunk := [][]byte{[]byte("abc\n"), []byte("de\n"), []byte("f\n")}

	tests := []struct {
		skip     int
		expected string
	}{
		{0, "abc\nde\nf\n"},
		{2, "c\nde\nf\n"},
		{4, "de\nf\n"},
		{8, "\n"},
		{9, ""},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		if err := writeRemainder(&buf, chunk, tt.skip); err != nil {
			t.Fatalf("writeRemainder(%d) failed: %v", tt.skip, err)
		}
		if buf.String() != tt.expected {
			t.Errorf("writeRemainder(%d) = %q, expected %q", tt.skip, buf.String(), tt.expected)
		}
	}
}
