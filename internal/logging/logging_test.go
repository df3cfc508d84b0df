package logging

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	saved := baseLogger
	savedLevel := GetLevel()
	baseLogger = log.New(&buf, "", 0)
	t.Cleanup(func() {
		baseLogger = saved
		SetLevel(strings.ToLower(savedLevel.String()))
	})
	return &buf
}

func TestWarnfNoDoubleFormatting(t *testing.T) {
	buf := capture(t)
	SetLevel("info")

	Warnf("%s", "sequence colour 100% invalid")
	output(LevelWarn, "row 50% hidden")
	out := buf.String()
	for _, want := range []string{"[WARN] sequence colour 100% invalid", "[WARN] row 50% hidden"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %q", want, out)
		}
	}
	if strings.Contains(out, "MISSING") || strings.Contains(out, "%!") {
		t.Fatalf("fmt artifact in output: %q", out)
	}
}

func TestLevelFilter(t *testing.T) {
	buf := capture(t)
	SetLevel("warn")

	Debugf("d %d", 1)
	Infof("i %d", 2)
	Errorf("e %d", 3)
	out := buf.String()
	if strings.Contains(out, "d 1") || strings.Contains(out, "i 2") {
		t.Fatalf("filtered levels logged: %q", out)
	}
	if !strings.Contains(out, "[ERROR] e 3") {
		t.Fatalf("error missing: %q", out)
	}
}

func TestSetLevelUnknown(t *testing.T) {
	capture(t)
	SetLevel("error")
	if SetLevel("loud") {
		t.Fatalf("unknown level accepted")
	}
	if GetLevel() != LevelError {
		t.Fatalf("level changed to %v", GetLevel())
	}
}

func TestSetupWritesFile(t *testing.T) {
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	path := filepath.Join(t.TempDir(), "seqview.log")
	cleanup, err := Setup(path)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	log.Print("hello board")
	cleanup()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(b), "hello board") {
		t.Fatalf("log file missing message: %q", b)
	}
}

func TestSetupBadPath(t *testing.T) {
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	if _, err := Setup(filepath.Join(t.TempDir(), "missing", "x.log")); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}
