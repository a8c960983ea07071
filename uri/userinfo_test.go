package uri_test

import (
	"testing"

	"github.com/ghettovoice/gohttp/uri"
)

func TestUserInfo(t *testing.T) {
	t.Parallel()

	t.Run("user only", func(t *testing.T) {
		t.Parallel()

		ui := uri.User("bob")
		if got, want := ui.Username(), "bob"; got != want {
			t.Errorf("ui.Username() = %q, want %q", got, want)
		}
		if _, ok := ui.Password(); ok {
			t.Errorf("ui.Password() set = true, want false")
		}
		if got, want := ui.String(), "bob"; got != want {
			t.Errorf("ui.String() = %q, want %q", got, want)
		}
	})

	t.Run("user and password", func(t *testing.T) {
		t.Parallel()

		ui := uri.UserPassword("bob", "s3cret")
		pass, ok := ui.Password()
		if !ok || pass != "s3cret" {
			t.Errorf("ui.Password() = %q, %v, want %q, true", pass, ok, "s3cret")
		}
		if got, want := ui.String(), "bob:s3cret"; got != want {
			t.Errorf("ui.String() = %q, want %q", got, want)
		}
	})

	t.Run("escaping", func(t *testing.T) {
		t.Parallel()

		ui := uri.UserPassword("bo b", "pa@ss")
		if got, want := ui.String(), "bo%20b:pa%40ss"; got != want {
			t.Errorf("ui.String() = %q, want %q", got, want)
		}
	})

	t.Run("zero", func(t *testing.T) {
		t.Parallel()

		var ui uri.UserInfo
		if !ui.IsZero() {
			t.Errorf("ui.IsZero() = false, want true")
		}
		if got := ui.String(); got != "" {
			t.Errorf("ui.String() = %q, want \"\"", got)
		}
	})

	t.Run("decoded from uri", func(t *testing.T) {
		t.Parallel()

		u, err := uri.Parse("//bo%20b:pa%40ss@example.com")
		if err != nil {
			t.Fatalf("uri.Parse(...) error = %v, want nil", err)
		}
		if !u.User().Equal(uri.UserPassword("bo b", "pa@ss")) {
			t.Errorf("u.User() = %v, want the decoded credentials", u.User())
		}

		var zero *uri.URI
		if !zero.User().IsZero() {
			t.Errorf("nil uri User() is not zero")
		}
	})

	t.Run("equal", func(t *testing.T) {
		t.Parallel()

		if !uri.User("bob").Equal(uri.User("bob")) {
			t.Errorf("identical user infos are not equal")
		}
		if uri.User("bob").Equal(uri.UserPassword("bob", "")) {
			t.Errorf("user info with empty password equals one without")
		}
	})
}
