package uri

import (
	"braces.dev/errtrace"

	"github.com/ghettovoice/gohttp/internal/errorutil"
)

// Mutators below are copy-on-write. Each filters its value, returns the
// receiver unchanged when the filtered value equals the stored one (an
// observable identity guarantee, not an optimization), and otherwise builds
// a new snapshot, re-applies normalization and re-validates the whole URI.
// A nil receiver mutates like the empty URI. Filter failures wrap
// [ErrInvalidArgument], whole-record failures wrap [ErrInvalidState].

// WithScheme returns a URI with the given scheme.
// An empty scheme means "no scheme".
func (u *URI) WithScheme(scheme string) (*URI, error) {
	scheme, err := filterScheme(scheme)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	if scheme == u.Scheme() {
		return u, nil
	}
	u2 := u.snapshot()
	u2.scheme = scheme
	return errtrace.Wrap2(u2.revalidate())
}

// WithUserInfo returns a URI with the given user information,
// e.g. WithUserInfo(uri.UserPassword("root", "qwe")).
// A zero [UserInfo] clears the component.
func (u *URI) WithUserInfo(ui UserInfo) (*URI, error) {
	userinfo := filterUserInfo(ui.String())
	if userinfo == u.UserInfo() {
		return u, nil
	}
	u2 := u.snapshot()
	u2.userinfo = userinfo
	return errtrace.Wrap2(u2.revalidate())
}

// WithHost returns a URI with the given host. An empty host clears the
// component, except for http and https URIs where the default host is
// filled back in.
func (u *URI) WithHost(host string) (*URI, error) {
	host, err := filterHost(host)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	if host == u.Host() {
		return u, nil
	}
	u2 := u.snapshot()
	u2.host = host
	return errtrace.Wrap2(u2.revalidate())
}

// WithPort returns a URI with the given port. Port 0 clears the component;
// a port equal to the scheme's default is elided.
func (u *URI) WithPort(port int) (*URI, error) {
	p, has, err := filterPort(port)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	if has && p == defaultPorts[u.Scheme()] {
		p, has = 0, false
	}
	if cp, chas := u.Port(); p == cp && has == chas {
		return u, nil
	}
	u2 := u.snapshot()
	u2.port, u2.hasPort = p, has
	return errtrace.Wrap2(u2.revalidate())
}

// WithPath returns a URI with the given path, percent-encoding it as needed.
func (u *URI) WithPath(path string) (*URI, error) {
	path = filterPath(path)
	if path == u.Path() {
		return u, nil
	}
	u2 := u.snapshot()
	u2.path = path
	return errtrace.Wrap2(u2.revalidate())
}

// WithQuery returns a URI with the given query, given without the leading
// "?" and percent-encoded as needed.
func (u *URI) WithQuery(query string) (*URI, error) {
	query = filterQuery(query)
	if query == u.Query() {
		return u, nil
	}
	u2 := u.snapshot()
	u2.query = query
	return errtrace.Wrap2(u2.revalidate())
}

// WithFragment returns a URI with the given fragment, given without the
// leading "#" and percent-encoded as needed.
func (u *URI) WithFragment(fragment string) (*URI, error) {
	fragment = filterQuery(fragment)
	if fragment == u.Fragment() {
		return u, nil
	}
	u2 := u.snapshot()
	u2.fragment = fragment
	return errtrace.Wrap2(u2.revalidate())
}

// snapshot returns a mutable copy of the URI. A nil receiver copies to the
// empty URI.
func (u *URI) snapshot() *URI {
	if u == nil {
		return &URI{}
	}
	u2 := *u
	return &u2
}

func (u *URI) revalidate() (*URI, error) {
	u.normalize()
	if err := u.validate(); err != nil {
		return nil, errtrace.Wrap(errorutil.NewInvalidStateError(err))
	}
	return u, nil
}
