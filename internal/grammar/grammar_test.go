package grammar_test

import (
	"testing"

	"github.com/ghettovoice/gohttp/internal/grammar"
)

func TestIsScheme(t *testing.T) {
	t.Parallel()

	cases := []struct {
		str  string
		want bool
	}{
		{"", false},
		{"http", true},
		{"HTTP", true},
		{"h2-c+x.y", true},
		{"view-source", true},
		{"1http", false},
		{"ht tp", false},
		{"ht:tp", false},
	}

	for _, c := range cases {
		t.Run(c.str, func(t *testing.T) {
			t.Parallel()

			if got := grammar.IsScheme(c.str); got != c.want {
				t.Errorf("grammar.IsScheme(%q) = %v, want %v", c.str, got, c.want)
			}
		})
	}
}

func TestIsPort(t *testing.T) {
	t.Parallel()

	cases := []struct {
		str  string
		want bool
	}{
		{"", false},
		{"0", false},
		{"1", true},
		{"8080", true},
		{"65535", true},
		{"65536", false},
		{"123456", false},
		{"80a", false},
	}

	for _, c := range cases {
		t.Run(c.str, func(t *testing.T) {
			t.Parallel()

			if got := grammar.IsPort(c.str); got != c.want {
				t.Errorf("grammar.IsPort(%q) = %v, want %v", c.str, got, c.want)
			}
		})
	}
}

func TestIsHost(t *testing.T) {
	t.Parallel()

	cases := []struct {
		str  string
		want bool
	}{
		{"", false},
		{"example.com", true},
		{"EXAMPLE.COM", true},
		{"127.0.0.1", true},
		{"[::1]", true},
		{"[::1", false},
		{"host:80", false},
		{"ho st", false},
		{"ho\tst", false},
		{"host\n", false},
	}

	for _, c := range cases {
		t.Run(c.str, func(t *testing.T) {
			t.Parallel()

			if got := grammar.IsHost(c.str); got != c.want {
				t.Errorf("grammar.IsHost(%q) = %v, want %v", c.str, got, c.want)
			}
		})
	}
}
