package message_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"github.com/ghettovoice/gohttp/message"
	"github.com/ghettovoice/gohttp/stream"
	"github.com/ghettovoice/gohttp/uri"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func mustParse(t *testing.T, s string) *uri.URI {
	t.Helper()
	u, err := uri.Parse(s)
	if err != nil {
		t.Fatalf("uri.Parse(%q) error = %v, want nil", s, err)
	}
	return u
}

func TestNew(t *testing.T) {
	t.Parallel()

	m := message.New(mustParse(t, "https://example.com:8080/a"))

	if got, want := m.ProtoVersion(), "1.1"; got != want {
		t.Errorf("m.ProtoVersion() = %q, want %q", got, want)
	}
	if got, want := m.HeaderLine(message.HostHeader), "example.com:8080"; got != want {
		t.Errorf("m.HeaderLine(Host) = %q, want %q", got, want)
	}
	if m.Body() != nil {
		t.Errorf("m.Body() = %v, want nil", m.Body())
	}
}

func TestNew_NoHost(t *testing.T) {
	t.Parallel()

	m := message.New(mustParse(t, "/relative"))
	if m.HasHeader(message.HostHeader) {
		t.Errorf("m.HasHeader(Host) = true for a hostless uri, want false")
	}
}

func TestMessage_WithProtoVersion(t *testing.T) {
	t.Parallel()

	m := message.New(mustParse(t, "//example.com"))
	m2 := m.WithProtoVersion("2")

	if got, want := m2.ProtoVersion(), "2"; got != want {
		t.Errorf("m2.ProtoVersion() = %q, want %q", got, want)
	}
	if got, want := m.ProtoVersion(), "1.1"; got != want {
		t.Errorf("receiver proto changed to %q, want %q", got, want)
	}
}

func TestMessage_WithURI(t *testing.T) {
	t.Parallel()

	t.Run("rewrites host", func(t *testing.T) {
		t.Parallel()

		m := message.New(mustParse(t, "//example.com"))
		m2 := m.WithURI(mustParse(t, "https://other.org:8443/b"), false)

		if got, want := m2.HeaderLine(message.HostHeader), "other.org:8443"; got != want {
			t.Errorf("m2.HeaderLine(Host) = %q, want %q", got, want)
		}
		if got, want := m.HeaderLine(message.HostHeader), "example.com"; got != want {
			t.Errorf("receiver Host changed to %q, want %q", got, want)
		}
	})

	t.Run("preserve host", func(t *testing.T) {
		t.Parallel()

		m := message.New(mustParse(t, "//example.com"))
		m2 := m.WithURI(mustParse(t, "//other.org"), true)

		if got, want := m2.HeaderLine(message.HostHeader), "example.com"; got != want {
			t.Errorf("m2.HeaderLine(Host) = %q, want %q", got, want)
		}
	})

	t.Run("preserve host without existing header", func(t *testing.T) {
		t.Parallel()

		m := message.New(mustParse(t, "/relative"))
		m2 := m.WithURI(mustParse(t, "//other.org"), true)

		if got, want := m2.HeaderLine(message.HostHeader), "other.org"; got != want {
			t.Errorf("m2.HeaderLine(Host) = %q, want %q", got, want)
		}
	})

	t.Run("hostless uri keeps header", func(t *testing.T) {
		t.Parallel()

		m := message.New(mustParse(t, "//example.com"))
		m2 := m.WithURI(mustParse(t, "/relative"), false)

		if got, want := m2.HeaderLine(message.HostHeader), "example.com"; got != want {
			t.Errorf("m2.HeaderLine(Host) = %q, want %q", got, want)
		}
	})

	t.Run("host header placed first", func(t *testing.T) {
		t.Parallel()

		m := message.New(mustParse(t, "/relative")).
			WithHeader("Accept", "text/html").
			WithHeader("X-Token", "abc")
		m2 := m.WithURI(mustParse(t, "//example.com"), false)

		if diff := cmp.Diff(m2.Headers().Names(), []string{"Host", "Accept", "X-Token"}); diff != "" {
			t.Errorf("header order mismatch\ndiff (-got +want):\n%v", diff)
		}
	})
}

func TestMessage_Headers(t *testing.T) {
	t.Parallel()

	m := message.New(mustParse(t, "//example.com")).
		WithHeader("Accept", "text/html").
		WithAddedHeader("accept", "application/json")

	if got, want := m.HeaderLine("Accept"), "text/html, application/json"; got != want {
		t.Errorf("m.HeaderLine(\"Accept\") = %q, want %q", got, want)
	}
	if diff := cmp.Diff(m.Header("Accept"), []string{"text/html", "application/json"}); diff != "" {
		t.Errorf("m.Header(\"Accept\") mismatch\ndiff (-got +want):\n%v", diff)
	}

	m2 := m.WithoutHeader("ACCEPT")
	if m2.HasHeader("Accept") {
		t.Errorf("m2.HasHeader(\"Accept\") = true after removal, want false")
	}
	if !m.HasHeader("Accept") {
		t.Errorf("receiver lost a header removed from the copy")
	}

	// Headers() returns a copy, mutating it must not leak into the message.
	m.Headers().Set("Injected", "x")
	if m.HasHeader("Injected") {
		t.Errorf("mutating the Headers() copy changed the message")
	}
}

func TestMessage_WithBody(t *testing.T) {
	t.Parallel()

	body := stream.NewFromString("hello")
	m := message.New(mustParse(t, "//example.com"))
	m2 := m.WithBody(body)

	if m2.Body() != stream.Stream(body) {
		t.Errorf("m2.Body() is not the stream passed to WithBody")
	}
	if m.Body() != nil {
		t.Errorf("receiver body changed, want nil")
	}
}
