package monitoring

import (
	"fmt"
	"testing"
)

func TestSetLogger(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	var got string
	SetLogger(func(format string, v ...interface{}) {
		got = fmt.Sprintf(format, v...)
	})
	Logf("run %d at %s", 3, "128px")
	if got != "run 3 at 128px" {
		t.Errorf("logged %q", got)
	}

	// nil installs a no-op, not a nil func.
	called := false
	SetLogger(func(string, ...interface{}) { called = true })
	SetLogger(nil)
	Logf("dropped")
	if called {
		t.Error("previous logger still installed after SetLogger(nil)")
	}
}

func TestLogfDefaultNotNil(t *testing.T) {
	if Logf == nil {
		t.Fatal("Logf is nil by default")
	}
}
