package oracle

import (
	"context"
	"errors"
	"testing"
)

func TestNewRequiresOptIn(t *testing.T) {
	t.Setenv(EnvVar, "")
	if _, err := New(); !errors.Is(err, ErrUnavailable) {
		t.Errorf("New without %s: err = %v, want ErrUnavailable", EnvVar, err)
	}
}

func TestRun(t *testing.T) {
	if !Available() {
		t.Skipf("set %s and install nvim to run oracle tests", EnvVar)
	}
	o, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	got, err := o.Run(context.Background(), []string{"hello world"}, "dw")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(got) != 1 || got[0] != "world" {
		t.Errorf("Run(dw) = %q, want [world]", got)
	}
}
