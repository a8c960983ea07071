package uri

import (
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/gohttp/internal/grammar"
)

// WithQueryValue returns a URI whose query has the given key set to value.
// Every existing entry whose percent-decoded key equals the decoded key is
// removed first, then a freshly encoded "key=value" pair is appended.
// "=" and "&" inside key or value are escaped so they cannot corrupt the
// query grammar; the remaining encoding is left to [URI.WithQuery].
func WithQueryValue(u *URI, key, value string) (*URI, error) {
	pairs := append(stripQueryKey(u.Query(), key), escapeQueryKV(key)+"="+escapeQueryKV(value))
	return errtrace.Wrap2(u.WithQuery(strings.Join(pairs, "&")))
}

// WithQueryKey is like [WithQueryValue] but appends a bare key with no "=".
func WithQueryKey(u *URI, key string) (*URI, error) {
	pairs := append(stripQueryKey(u.Query(), key), escapeQueryKV(key))
	return errtrace.Wrap2(u.WithQuery(strings.Join(pairs, "&")))
}

// WithoutQueryValue returns a URI with every query entry matching the
// percent-decoded key removed.
func WithoutQueryValue(u *URI, key string) (*URI, error) {
	pairs := stripQueryKey(u.Query(), key)
	return errtrace.Wrap2(u.WithQuery(strings.Join(pairs, "&")))
}

// stripQueryKey returns the query pairs whose decoded key differs from the
// decoded key argument. Keys are matched after percent-decoding, so "a b"
// and "a%20b" name the same entry.
func stripQueryKey(query, key string) []string {
	if query == "" {
		return nil
	}

	decoded := grammar.Unescape(key)
	var kept []string
	for pair := range strings.SplitSeq(query, "&") {
		if pair == "" {
			continue
		}
		k := pair
		if i := strings.IndexByte(k, '='); i >= 0 {
			k = k[:i]
		}
		if grammar.Unescape(k) != decoded {
			kept = append(kept, pair)
		}
	}
	return kept
}

var queryKVRpl = strings.NewReplacer("=", "%3D", "&", "%26")

func escapeQueryKV(s string) string { return queryKVRpl.Replace(s) }
