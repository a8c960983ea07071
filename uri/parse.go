package uri

import (
	"log/slog"
	"strings"
	"sync/atomic"

	"braces.dev/errtrace"

	"github.com/ghettovoice/gohttp/internal/constraints"
	"github.com/ghettovoice/gohttp/internal/errorutil"
	"github.com/ghettovoice/gohttp/internal/grammar"
	"github.com/ghettovoice/gohttp/internal/log"
	"github.com/ghettovoice/gohttp/internal/util"
)

// DefaultHost is the host filled in when an http or https URI has none.
const DefaultHost = "localhost"

// Parse parses a URI reference from the given input src (string or []byte).
//
// An empty input yields the empty URI. Any input that cannot be split into
// structurally valid components fails with an error matching [ErrMalformedURI].
func Parse[T constraints.Byteseq](src T) (*URI, error) {
	if len(src) == 0 {
		return &URI{}, nil
	}

	ref, err := grammar.SplitURIRef(src)
	if err != nil {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrMalformedURI, err))
	}

	u, err := build(ref, nil)
	if err != nil {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrMalformedURI, err))
	}
	return u, nil
}

// Parts is a pre-split component record accepted by [FromParts].
// Port 0 means "no port". Pass is only meaningful together with HasPass or
// when non-empty.
type Parts struct {
	Scheme   string
	User     string
	Pass     string
	HasPass  bool
	Host     string
	Port     int
	Path     string
	Query    string
	Fragment string

	// Aux optionally carries component values known out of band, e.g. from a
	// reverse proxy header. The "path" and "query" keys backfill the Path and
	// Query fields when those are empty. The backfill happens here, during
	// construction; it does not participate in equality of the built URI.
	Aux map[string]string
}

// FromParts builds a URI from a pre-split component record, applying the
// same per-component filters as [Parse] followed by whole-record validation.
// Failures wrap [ErrInvalidArgument].
func FromParts(p Parts) (*URI, error) {
	path := p.Path
	query := p.Query
	if path == "" {
		path = p.Aux["path"]
	}
	if query == "" {
		query = p.Aux["query"]
	}

	var ref grammar.URIRef
	ref.Scheme = p.Scheme
	ref.Host = p.Host
	ref.Path = path
	ref.Query = query
	ref.Fragment = p.Fragment

	ui := User(p.User)
	if p.HasPass || p.Pass != "" {
		ui = UserPassword(p.User, p.Pass)
	}
	if !ui.IsZero() {
		ref.UserInfo = ui.String()
		ref.HasUserInfo = true
	}

	if p.Port != 0 {
		port, _, err := filterPort(p.Port)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		ref.Port = port
		ref.HasPort = true
	}

	u, err := build(ref, func(err error) error { return errorutil.NewInvalidArgumentError(err) })
	return u, errtrace.Wrap(err)
}

// build runs the per-component filters over a split reference, then
// normalizes and validates the candidate as a whole. wrapValidateErr, when
// non-nil, converts a whole-record validation failure into the caller's
// error kind.
func build(ref grammar.URIRef, wrapValidateErr func(error) error) (*URI, error) {
	u := &URI{}

	var err error
	if u.scheme, err = filterScheme(ref.Scheme); err != nil {
		return nil, errtrace.Wrap(err)
	}
	if u.host, err = filterHost(ref.Host); err != nil {
		return nil, errtrace.Wrap(err)
	}
	u.userinfo = filterUserInfo(ref.UserInfo)
	u.port, u.hasPort = ref.Port, ref.HasPort
	u.path = filterPath(ref.Path)
	u.query = filterQuery(ref.Query)
	u.fragment = filterQuery(ref.Fragment)

	u.normalize()
	if err := u.validate(); err != nil {
		if wrapValidateErr != nil {
			err = wrapValidateErr(err)
		}
		return nil, errtrace.Wrap(err)
	}
	return u, nil
}

func filterScheme(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	if !grammar.IsScheme(s) {
		return "", errtrace.Wrap(errorutil.NewInvalidArgumentError("invalid scheme %q", s))
	}
	return util.LCase(s), nil
}

func filterHost(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	if !grammar.IsHost(s) {
		return "", errtrace.Wrap(errorutil.NewInvalidArgumentError("invalid host %q", s))
	}
	return util.LCase(s), nil
}

// filterPort checks the [1, 65535] range. Port 0 clears the port.
func filterPort(port int) (uint16, bool, error) {
	if port == 0 {
		return 0, false, nil
	}
	if port < 1 || port > 65535 {
		return 0, false, errtrace.Wrap(errorutil.NewInvalidArgumentError("port %d out of range [1, 65535]", port))
	}
	return uint16(port), true, nil
}

// filterUserInfo encodes a raw "user[:password]" string, preserving the
// first colon as the user/password delimiter.
func filterUserInfo(s string) string {
	if s == "" {
		return ""
	}
	if i := strings.IndexByte(s, ':'); i >= 0 {
		return grammar.Escape(s[:i], shouldEscapeUserInfoChar) + ":" + grammar.Escape(s[i+1:], shouldEscapeUserInfoChar)
	}
	return grammar.Escape(s, shouldEscapeUserInfoChar)
}

func filterPath(s string) string { return grammar.Escape(s, shouldEscapePathChar) }

func filterQuery(s string) string { return grammar.Escape(s, shouldEscapeQueryChar) }

func shouldEscapeUserInfoChar(c byte) bool { return !grammar.IsUserInfoChar(c) }

func shouldEscapePathChar(c byte) bool { return !grammar.IsPathChar(c) }

func shouldEscapeQueryChar(c byte) bool { return !grammar.IsQueryChar(c) }

// normalize applies the value-preserving corrections that construction and
// every mutation re-run: default port elision, the http/https host fill and
// the deprecated relative-path-with-authority correction.
func (u *URI) normalize() {
	if u.hasPort && u.port == defaultPorts[u.scheme] {
		u.port, u.hasPort = 0, false
	}
	if (u.scheme == "http" || u.scheme == "https") && u.host == "" {
		u.host = DefaultHost
	}
	if auth := u.Authority(); auth != "" && u.path != "" && u.path[0] != '/' {
		u.path = "/" + u.path
		deprecationLog().Warn(
			"uri: relative path combined with an authority is deprecated, prefixing with \"/\"",
			slog.String("path", u.path),
			slog.String("authority", auth),
		)
	}
}

// validate checks the cross-component invariants over the full record.
// It reports plain errors; callers wrap them into their own error kind.
func (u *URI) validate() error {
	if u.Authority() != "" {
		return nil
	}
	if strings.HasPrefix(u.path, "//") {
		return errtrace.Wrap(errorutil.Errorf("path %q must not begin with \"//\" when no authority is present", u.path))
	}
	if u.scheme == "" {
		seg := u.path
		if i := strings.IndexByte(seg, '/'); i >= 0 {
			seg = seg[:i]
		}
		if strings.Contains(seg, ":") {
			return errtrace.Wrap(errorutil.Errorf("relative path %q must not contain a colon in the first segment", u.path))
		}
	}
	return nil
}

var deprLog atomic.Pointer[slog.Logger]

func init() { deprLog.Store(log.Def) }

// SetDeprecationLogger sets the logger used to report deprecated inputs that
// are auto-corrected. The warnings are visible by default; pass
// slog.New(slog.DiscardHandler) to silence them. Passing nil restores the
// default logger.
func SetDeprecationLogger(l *slog.Logger) {
	if l == nil {
		l = log.Def
	}
	deprLog.Store(l)
}

func deprecationLog() *slog.Logger { return deprLog.Load() }
