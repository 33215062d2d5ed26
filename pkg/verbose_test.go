package dirsum

import (
	"bytes"
	"strings"
	"testing"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := SetLogOutput(&buf)
	prevLevel := GetVerboseLevel()
	t.Cleanup(func() {
		SetLogOutput(prev)
		SetVerboseLevel(prevLevel)
		SetDebugFlags("")
	})
	return &buf
}

func TestSetDebugFlags(t *testing.T) {
	captureLog(t)

	SetDebugFlags("walk, HASH ,config:off,extra:yes")

	if !IsDebugEnabled("walk") {
		t.Error("Expected walk to be enabled")
	}
	if !IsDebugEnabled("hash") || !IsDebugEnabled("Hash") {
		t.Error("Expected hash to be enabled regardless of case")
	}
	if IsDebugEnabled("config") {
		t.Error("Expected config:off to be disabled")
	}
	if !IsDebugEnabled("extra") {
		t.Error("Expected extra:yes to be enabled")
	}
	if IsDebugEnabled("unknown") {
		t.Error("Expected unknown flag to be disabled")
	}

	SetDebugFlags("")
	if IsDebugEnabled("walk") {
		t.Error("Expected empty string to clear flags")
	}
}

func TestVerboseLog_Levels(t *testing.T) {
	buf := captureLog(t)

	SetVerboseLevel(1)
	VerboseLog(1, "shown %d", 1)
	VerboseLog(2, "hidden %d", 2)

	out := buf.String()
	if !strings.Contains(out, "[VERBOSE-1] shown 1\n") {
		t.Errorf("Expected level 1 message, got %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("Level 2 message should be suppressed, got %q", out)
	}
}

func TestVerboseEnter_Trace(t *testing.T) {
	buf := captureLog(t)

	SetVerboseLevel(2)
	VerboseEnter()()
	if buf.Len() != 0 {
		t.Errorf("Expected no trace below level 3, got %q", buf.String())
	}

	SetVerboseLevel(3)
	VerboseEnter()()
	out := buf.String()
	if !strings.Contains(out, "[TRACE] Entering function:") || !strings.Contains(out, "[TRACE] Exiting function:") {
		t.Errorf("Expected entry and exit trace, got %q", out)
	}
}

func TestDebugLog_WalkTrace(t *testing.T) {
	buf := captureLog(t)
	SetDebugFlags("walk")

	tree, _ := newTestTree(t, map[string]string{"a.txt": "hello"})
	if _, err := tree.Files(); err != nil {
		t.Fatalf("Files failed: %v", err)
	}

	if !strings.Contains(buf.String(), "[WALK] found file a.txt") {
		t.Errorf("Expected walk debug output, got %q", buf.String())
	}
}
