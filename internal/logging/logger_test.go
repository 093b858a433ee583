package logging_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"asempv/internal/logging"
)

func TestSetup_WritesJSONLines(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	cleanup, err := logging.Setup(logging.Config{Dir: dir, Debug: true})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := logging.IsReady(); err != nil {
		t.Fatalf("not ready: %v", err)
	}

	logging.L().Debug("pager.page.loaded", "page", 2)

	path := logging.Path()
	if err := cleanup(); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if logging.IsReady() == nil {
		t.Fatal("expected logger to be reset after cleanup")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 2 {
		t.Fatalf("want 2 lines, got %d: %q", len(lines), raw)
	}

	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rec["msg"] != "pager.page.loaded" {
		t.Fatalf("msg = %v", rec["msg"])
	}
	if rec["page"] != float64(2) {
		t.Fatalf("page = %v", rec["page"])
	}
}

func TestOrDiscard(t *testing.T) {
	if logging.OrDiscard(nil) == nil {
		t.Fatal("expected a logger")
	}
}
