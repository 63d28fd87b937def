package trace

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew_nilWriter_returnsTracer(t *testing.T) {
	tr := New(nil)
	if tr == nil {
		t.Error("New(nil) returned nil")
	}
}

func TestEnabled_nilWriter_returnsFalse(t *testing.T) {
	tr := New(nil)
	if tr.Enabled() {
		t.Error("Enabled() with nil writer = true, want false")
	}
}

func TestEnabled_nonNilWriter_returnsTrue(t *testing.T) {
	var buf bytes.Buffer
	tr := New(&buf)
	if !tr.Enabled() {
		t.Error("Enabled() with non-nil writer = false, want true")
	}
}

func TestSection_nilWriter_noOutput(t *testing.T) {
	tr := New(nil)
	tr.Section("Expand")
	// No panic and no writer to check
}

func TestSection_nonNilWriter_writesHeader(t *testing.T) {
	var buf bytes.Buffer
	tr := New(&buf)
	tr.Section("Expand")
	got := buf.String()
	if !strings.Contains(got, "[cssmin:trace]") || !strings.Contains(got, "Expand") {
		t.Errorf("Section output = %q, want header containing tag and name", got)
	}
}

func TestPrintf_writesWhenEnabled(t *testing.T) {
	var buf bytes.Buffer
	tr := New(&buf)
	tr.Printf("%d files\n", 3)
	if got := buf.String(); got != "3 files\n" {
		t.Errorf("Printf output = %q", got)
	}
}

func TestPrintf_nilTracer_noPanic(t *testing.T) {
	var tr *Tracer
	if tr.Enabled() {
		t.Error("nil Tracer Enabled() = true")
	}
	tr.Printf("ignored")
	tr.Section("ignored")
}
