package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRun_RenderHTML(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-form", "contact", "-render", "html", "-variant", "dark", "-pretty"}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("run: %v (stderr: %s)", err, stderr.String())
	}
	out := stdout.String()
	if !strings.Contains(out, `id="contact-form"`) || !strings.Contains(out, "leadform--dark") {
		t.Fatalf("unexpected html output:\n%s", out)
	}
}

func TestRun_RenderPricingTextToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricing.txt")
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-plan", "professional", "-render", "text", "-output", path}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), "Professional Plan") {
		t.Fatalf("expected plan title in output:\n%s", data)
	}
	if !strings.Contains(stdout.String(), "Form written to") {
		t.Fatalf("expected confirmation line, got %q", stdout.String())
	}
}

func TestRun_Errors(t *testing.T) {
	cases := [][]string{
		{"-form", "newsletter", "-render", "html"},
		{"-plan", "enterprise", "-render", "html"},
		{"-form", "quote", "-render", "pdf"},
		{"-config", "/does/not/exist.yaml"},
	}
	for _, args := range cases {
		var stdout, stderr bytes.Buffer
		if err := run(context.Background(), args, &stdout, &stderr); err == nil {
			t.Errorf("args %v: expected error", args)
		}
	}
}
