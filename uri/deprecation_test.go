package uri

import (
	"testing"

	"github.com/ghettovoice/gohttp/internal/log"
)

// No t.Parallel: the deprecation logger is process-global.
func TestSetDeprecationLogger(t *testing.T) {
	t.Cleanup(func() { SetDeprecationLogger(nil) })

	// Warnings are visible by default.
	if deprecationLog() != log.Def {
		t.Errorf("default deprecation logger is not log.Def")
	}

	SetDeprecationLogger(log.Noop)
	if deprecationLog() != log.Noop {
		t.Errorf("SetDeprecationLogger did not install the given logger")
	}

	SetDeprecationLogger(nil)
	if deprecationLog() != log.Def {
		t.Errorf("SetDeprecationLogger(nil) did not restore the default logger")
	}
}
