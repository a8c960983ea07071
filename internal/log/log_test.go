package log

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/golang-cz/devslog"
	"github.com/phsym/console-slog"
)

func TestHandlerStack(t *testing.T) {
	t.Parallel()

	t.Run("console", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		l := slog.New(newHandler(console.NewHandler(&buf, &console.HandlerOptions{
			Level:      slog.LevelDebug,
			NoColor:    true,
			TimeFormat: time.RFC3339Nano,
		})))

		l.Warn("auto-correct", slog.Any("error", errors.New("boom")), slog.String("path", "/a"))

		out := buf.String()
		for _, want := range []string{"auto-correct", "boom", "/a"} {
			if !strings.Contains(out, want) {
				t.Errorf("log output %q does not contain %q", out, want)
			}
		}
	})

	t.Run("devslog", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		l := slog.New(newHandler(devslog.NewHandler(&buf, &devslog.Options{
			HandlerOptions: &slog.HandlerOptions{Level: slog.LevelDebug},
			NoColor:        true,
		})))

		l.Debug("parsed", slog.String("uri", "//example.com"))

		if out := buf.String(); !strings.Contains(out, "example.com") {
			t.Errorf("log output %q does not contain the uri attr", out)
		}
	})
}

func TestLoggers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if !Def.Enabled(ctx, slog.LevelWarn) {
		t.Errorf("Def discards warnings")
	}
	if !Dev.Enabled(ctx, slog.LevelDebug) {
		t.Errorf("Dev discards debug records")
	}
	if Noop.Enabled(ctx, slog.LevelError) {
		t.Errorf("Noop accepts records")
	}
}

func TestFmtValue(t *testing.T) {
	t.Parallel()

	type pair struct{ A, B int }

	if got, want := FmtValue(pair{1, 2}, false).LogValue().String(), "{A:1 B:2}"; got != want {
		t.Errorf("FmtValue(v, false) = %q, want %q", got, want)
	}
	if got := FmtValue(pair{1, 2}, true).LogValue().String(); !strings.Contains(got, "pair{A:1, B:2}") {
		t.Errorf("FmtValue(v, true) = %q, want go syntax", got)
	}
}

func TestStringValue(t *testing.T) {
	t.Parallel()

	if got, want := StringValue("abc").LogValue().String(), "abc"; got != want {
		t.Errorf("StringValue(string) = %q, want %q", got, want)
	}
	if got, want := StringValue([]byte("abc")).LogValue().String(), "abc"; got != want {
		t.Errorf("StringValue([]byte) = %q, want %q", got, want)
	}
}
