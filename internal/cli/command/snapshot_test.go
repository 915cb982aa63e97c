package command

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func TestSnapshotCommands(t *testing.T) {
	isolate(t)
	dir := filepath.Join(t.TempDir(), "data")

	if _, _, code := run(t, "snapshot", "--dir", dir, "diff"); code == 0 {
		t.Fatal("diff before save exit code = 0")
	}

	for i := 0; i < 3; i++ {
		out, stderr, code := run(t, "snapshot", "--dir", dir, "save", "--version", "test")
		if code != 0 {
			t.Fatalf("save exit code = %d: %s", code, stderr)
		}
		if !strings.HasPrefix(out, "saved ") {
			t.Errorf("save output = %q", out)
		}
	}

	out, _, code := run(t, "-o", "json", "snapshot", "--dir", dir, "diff")
	if code != 0 {
		t.Fatalf("diff exit code = %d", code)
	}
	var report DiffReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if report.Breaking || report.Snapshot.Version != "test" {
		t.Errorf("report = %+v", report)
	}

	out, _, _ = run(t, "snapshot", "--dir", dir, "list")
	if n := strings.Count(out, "test"); n != 3 {
		t.Errorf("list shows %d generations, want 3:\n%s", n, out)
	}

	out, _, code = run(t, "snapshot", "--dir", dir, "prune", "--keep", "1")
	if code != 0 || !strings.Contains(out, "pruned 2") {
		t.Errorf("prune = %q, code %d", out, code)
	}

	backup := filepath.Join(t.TempDir(), "snap.bak")
	if _, _, code := run(t, "snapshot", "--dir", dir, "backup", "--out", backup); code != 0 {
		t.Fatalf("backup exit code = %d", code)
	}
	restored := filepath.Join(t.TempDir(), "restored")
	if _, _, code := run(t, "snapshot", "--dir", restored, "restore", "--in", backup); code != 0 {
		t.Fatalf("restore exit code = %d", code)
	}
	out, _, code = run(t, "snapshot", "--dir", restored, "diff")
	if code != 0 || !strings.Contains(out, "no drift") {
		t.Errorf("diff after restore = %q, code %d", out, code)
	}

	if _, _, code := run(t, "snapshot", "--dir", dir, "gc"); code != 0 {
		t.Errorf("gc exit code = %d", code)
	}
}
