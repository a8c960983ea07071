package grammar

import (
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/gohttp/internal/constraints"
	"github.com/ghettovoice/gohttp/internal/errorutil"
)

func newMalformedInputErr(args ...any) error {
	return errorutil.NewWrapperError(ErrMalformedInput, args...) //errtrace:skip
}

// URIRef holds the raw components of a URI reference produced by [SplitURIRef].
// All text fields carry the input bytes verbatim, without any unescaping or
// case normalization.
type URIRef struct {
	Scheme       string
	UserInfo     string
	Host         string
	Path         string
	Query        string
	Fragment     string
	Port         uint16
	HasAuthority bool
	HasUserInfo  bool
	HasPort      bool
}

// SplitURIRef splits a URI reference into its components following the
// RFC 3986 Appendix B decomposition. The split is purely structural: component
// values are not validated beyond what is needed to locate their delimiters,
// except for the authority, whose host and port must be well-formed for the
// split to be unambiguous.
func SplitURIRef[T constraints.Byteseq](src T) (URIRef, error) {
	var ref URIRef
	if len(src) == 0 {
		return ref, errtrace.Wrap(ErrEmptyInput)
	}

	s := string(src)
	if i := strings.IndexByte(s, '#'); i >= 0 {
		ref.Fragment = s[i+1:]
		s = s[:i]
	}
	if i := strings.IndexByte(s, '?'); i >= 0 {
		ref.Query = s[i+1:]
		s = s[:i]
	}
	// A colon before the first slash marks the scheme, but only when the text
	// in front of it satisfies the scheme rule. Otherwise the whole remainder
	// is a path and the relative-reference rules decide its fate.
	if i := strings.IndexByte(s, ':'); i >= 0 {
		if j := strings.IndexByte(s, '/'); (j < 0 || i < j) && IsScheme(s[:i]) {
			ref.Scheme = s[:i]
			s = s[i+1:]
		}
	}
	if strings.HasPrefix(s, "//") {
		ref.HasAuthority = true
		s = s[2:]
		auth := s
		if i := strings.IndexByte(s, '/'); i >= 0 {
			auth, s = s[:i], s[i:]
		} else {
			s = ""
		}
		if auth == "" && s == "" {
			return URIRef{}, errtrace.Wrap(newMalformedInputErr("authority expected after %q", "//"))
		}
		if auth != "" {
			if err := splitAuthority(auth, &ref); err != nil {
				return URIRef{}, errtrace.Wrap(err)
			}
		}
	}
	ref.Path = s
	return ref, nil
}

func splitAuthority(auth string, ref *URIRef) error {
	hostport := auth
	if i := strings.LastIndexByte(auth, '@'); i >= 0 {
		ref.UserInfo = auth[:i]
		ref.HasUserInfo = true
		hostport = auth[i+1:]
	}

	host := hostport
	if i := strings.LastIndexByte(hostport, ':'); i > strings.IndexByte(hostport, ']') {
		portStr := hostport[i+1:]
		if !IsPort(portStr) {
			return errtrace.Wrap(newMalformedInputErr("invalid port %q", portStr))
		}
		n, _ := strconv.Atoi(portStr)
		ref.Port = uint16(n)
		ref.HasPort = true
		host = hostport[:i]
	}
	if !IsHost(host) {
		return errtrace.Wrap(newMalformedInputErr("invalid host %q", host))
	}
	ref.Host = host
	return nil
}
