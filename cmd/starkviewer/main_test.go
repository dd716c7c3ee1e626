package main

import (
	"strings"
	"testing"
)

func TestTruncatePath(t *testing.T) {
	if got := truncatePath("", 10); got != "(no file)" {
		t.Fatalf("empty path: got %q", got)
	}
	if got := truncatePath("/tmp/mol.jsonl", 60); got != "/tmp/mol.jsonl" {
		t.Fatalf("short path altered: got %q", got)
	}
	long := "/data/results/2026/benzonitrile/run-17/benzonitrile.jsonl"
	got := truncatePath(long, 20)
	if !strings.HasPrefix(got, "…") {
		t.Fatalf("long path not marked truncated: got %q", got)
	}
	if !strings.HasSuffix(got, "benzonitrile.jsonl") {
		t.Fatalf("tail of path lost: got %q", got)
	}
	if len(got) > len("…")+20 {
		t.Fatalf("truncated path too long: %d bytes", len(got))
	}
}
