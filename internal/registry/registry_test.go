package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/ice-jumper/internal/storage"
)

var errTestBackend = errors.New("test backend")

func TestRegisterAndOpen(t *testing.T) {
	Register("test-open", func(opts storage.Options) (storage.Backend, error) {
		if opts.Dir != "/data" {
			t.Errorf("factory got dir %q", opts.Dir)
		}
		return nil, errTestBackend
	})

	if !Exists("test-open") {
		t.Fatal("registered backend should exist")
	}
	if _, err := Open("test-open", storage.Options{Dir: "/data"}); !errors.Is(err, errTestBackend) {
		t.Errorf("Open() should call the factory, got %v", err)
	}

	found := false
	for _, name := range List() {
		if name == "test-open" {
			found = true
		}
	}
	if !found {
		t.Error("List() should include the registered backend")
	}
}

func TestOpenUnknown(t *testing.T) {
	if _, err := Open("no-such-backend", storage.Options{}); err == nil {
		t.Error("Open() of an unknown backend should fail")
	}
	if Exists("no-such-backend") {
		t.Error("unknown backend should not exist")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	f := func(storage.Options) (storage.Backend, error) { return nil, nil }
	Register("test-dup", f)

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("test-dup", f)
}
