package uri

//go:generate go tool errtrace -w .

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/gohttp/internal/errorutil"
	"github.com/ghettovoice/gohttp/internal/ioutil"
	"github.com/ghettovoice/gohttp/internal/util"
)

// Errors returned by this package. All errors produced here match one of
// these sentinels with [errors.Is].
var (
	// ErrMalformedURI reports a raw URI string that cannot be split into
	// structurally valid components.
	ErrMalformedURI = errorutil.Error("malformed uri")
	// ErrInvalidArgument reports a single component value rejected by its
	// filter, e.g. an out of range port.
	ErrInvalidArgument = errorutil.ErrInvalidArgument
	// ErrInvalidState reports a component combination violating the
	// cross-component URI invariants.
	ErrInvalidState = errorutil.ErrInvalidState
)

// URI is an immutable URI value.
//
// The zero value is the empty URI. Accessors and mutators are safe on a nil
// receiver, which behaves as the empty URI: accessors report empty
// components and mutators copy on write from the empty value.
// userinfo, path, query and fragment are stored
// percent-encoded; scheme and host are stored lower-cased; a default port
// for the current scheme is never stored.
type URI struct {
	scheme   string
	userinfo string
	host     string
	path     string
	query    string
	fragment string
	port     uint16
	hasPort  bool
}

var defaultPorts = map[string]uint16{
	"http":  80,
	"https": 443,
	"ws":    80,
	"wss":   443,
}

// Scheme returns the lower-cased URI scheme, or "" when absent.
func (u *URI) Scheme() string {
	if u == nil {
		return ""
	}
	return u.scheme
}

// UserInfo returns the percent-encoded userinfo component in the form
// "user[:password]", or "" when absent.
func (u *URI) UserInfo() string {
	if u == nil {
		return ""
	}
	return u.userinfo
}

// Host returns the lower-cased host, or "" when absent.
func (u *URI) Host() string {
	if u == nil {
		return ""
	}
	return u.host
}

// Port returns the port and a flag reporting whether it is set.
// A port equal to the scheme's default is elided on construction and is
// reported as not set.
func (u *URI) Port() (uint16, bool) {
	if u == nil {
		return 0, false
	}
	return u.port, u.hasPort
}

// Path returns the percent-encoded path component.
func (u *URI) Path() string {
	if u == nil {
		return ""
	}
	return u.path
}

// Query returns the percent-encoded query component without the leading "?".
func (u *URI) Query() string {
	if u == nil {
		return ""
	}
	return u.query
}

// Fragment returns the percent-encoded fragment component without the leading "#".
func (u *URI) Fragment() string {
	if u == nil {
		return ""
	}
	return u.fragment
}

// Authority composes "[userinfo@]host[:port]", omitting userinfo when empty
// and the port when not set.
func (u *URI) Authority() string {
	if u == nil || (u.userinfo == "" && u.host == "" && !u.hasPort) {
		return ""
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	if u.userinfo != "" {
		sb.WriteString(u.userinfo)
		sb.WriteByte('@')
	}
	sb.WriteString(u.host)
	if u.hasPort {
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(int(u.port)))
	}
	return sb.String()
}

// DefaultPort returns the well-known port of the URI scheme, or 0 when the
// scheme is unknown or absent.
func (u *URI) DefaultPort() uint16 {
	if u == nil {
		return 0
	}
	return defaultPorts[u.scheme]
}

// IsDefaultPort reports whether the URI effectively uses its scheme's
// default port.
func (u *URI) IsDefaultPort() bool {
	dp := u.DefaultPort()
	if dp == 0 {
		return false
	}
	return !u.hasPort || u.port == dp
}

// IsZero reports whether all URI components are empty.
func (u *URI) IsZero() bool {
	return u == nil || *u == URI{}
}

// RenderTo writes the composed URI to the provided writer.
func (u *URI) RenderTo(w io.Writer) (num int, err error) {
	if u == nil {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	if u.scheme != "" {
		cw.Fprint(u.scheme, ":")
	}
	// The "file" scheme keeps its customary triple-slash form even though
	// the authority is empty.
	if auth := u.Authority(); auth != "" || u.scheme == "file" {
		cw.Fprint("//", auth)
	}
	cw.Fprint(u.path)
	if u.query != "" {
		cw.Fprint("?", u.query)
	}
	if u.fragment != "" {
		cw.Fprint("#", u.fragment)
	}
	return errtrace.Wrap2(cw.Result())
}

// String returns the composed URI string.
// For every string accepted by [Parse] the composition is its exact inverse.
func (u *URI) String() string {
	if u == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	u.RenderTo(sb) //nolint:errcheck
	return sb.String()
}

// ComposeComponents assembles a URI string from already encoded components
// following RFC 3986 Section 5.3. The "//" marker is emitted when the
// authority is non-empty or the scheme is "file".
func ComposeComponents(scheme, authority, path, query, fragment string) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	if scheme != "" {
		sb.WriteString(scheme)
		sb.WriteByte(':')
	}
	if authority != "" || scheme == "file" {
		sb.WriteString("//")
		sb.WriteString(authority)
	}
	sb.WriteString(path)
	if query != "" {
		sb.WriteByte('?')
		sb.WriteString(query)
	}
	if fragment != "" {
		sb.WriteByte('#')
		sb.WriteString(fragment)
	}
	return sb.String()
}

// Format implements fmt.Formatter for custom formatting of the URI.
func (u *URI) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		if f.Flag('+') {
			u.RenderTo(f) //nolint:errcheck
			return
		}
		fmt.Fprint(f, u.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(u.String()))
		return
	default:
		type hideMethods URI
		type URI hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*URI)(u))
		return
	}
}

// Equal compares this URI with another for equality, accepting URI and *URI.
func (u *URI) Equal(val any) bool {
	var other *URI
	switch v := val.(type) {
	case URI:
		other = &v
	case *URI:
		other = v
	default:
		return false
	}

	if u == other {
		return true
	} else if u == nil || other == nil {
		return u.IsZero() && other.IsZero()
	}
	return *u == *other
}

// LogValue implements [slog.LogValuer].
func (u *URI) LogValue() slog.Value {
	return slog.StringValue(u.String())
}

// MarshalText implements [encoding.TextMarshaler].
func (u *URI) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (u *URI) UnmarshalText(text []byte) error {
	u1, err := Parse(text)
	if err != nil {
		*u = URI{}
		return errtrace.Wrap(err)
	}
	*u = *u1
	return nil
}
