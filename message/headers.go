package message

//go:generate go tool errtrace -w .

import (
	"io"
	"net/textproto"
	"slices"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/gohttp/internal/ioutil"
	"github.com/ghettovoice/gohttp/internal/util"
)

// Headers is an ordered collection of message headers.
//
// Names are matched case-insensitively through a shadow index of lower-cased
// names, while the original spelling and the insertion order are preserved
// for rendering. Headers is not safe for concurrent mutation; [Message]
// clones it on every change.
type Headers struct {
	names  []string            // insertion order, original spelling
	index  map[string]string   // lower-case name -> original spelling
	values map[string][]string // original spelling -> values
}

// NewHeaders creates an empty header collection.
func NewHeaders() *Headers {
	return &Headers{
		index:  make(map[string]string),
		values: make(map[string][]string),
	}
}

// Len returns the number of distinct header names.
func (hs *Headers) Len() int {
	if hs == nil {
		return 0
	}
	return len(hs.names)
}

// Has reports whether a header with the given name exists, matched
// case-insensitively.
func (hs *Headers) Has(name string) bool {
	if hs == nil {
		return false
	}
	_, ok := hs.index[util.LCase(name)]
	return ok
}

// Values returns a copy of the values of the named header,
// or nil when absent.
func (hs *Headers) Values(name string) []string {
	if hs == nil {
		return nil
	}
	orig, ok := hs.index[util.LCase(name)]
	if !ok {
		return nil
	}
	return slices.Clone(hs.values[orig])
}

// Line returns the values of the named header joined with ", ",
// or "" when absent.
func (hs *Headers) Line(name string) string {
	return strings.Join(hs.Values(name), ", ")
}

// Names returns the header names in insertion order.
func (hs *Headers) Names() []string {
	if hs == nil {
		return nil
	}
	return slices.Clone(hs.names)
}

// Set replaces the named header with the given values. An existing header
// keeps its position in the insertion order but adopts the new spelling;
// a new header is appended at the end.
func (hs *Headers) Set(name string, values ...string) *Headers {
	lc := util.LCase(name)
	if orig, ok := hs.index[lc]; ok {
		if orig != name {
			hs.names[slices.Index(hs.names, orig)] = name
			delete(hs.values, orig)
			hs.index[lc] = name
		}
	} else {
		hs.names = append(hs.names, name)
		hs.index[lc] = name
	}
	hs.values[name] = slices.Clone(values)
	return hs
}

// SetFirst is like [Headers.Set] but places the header first in the
// insertion order.
func (hs *Headers) SetFirst(name string, values ...string) *Headers {
	hs.Del(name)
	hs.names = slices.Insert(hs.names, 0, name)
	hs.index[util.LCase(name)] = name
	hs.values[name] = slices.Clone(values)
	return hs
}

// Add appends a value to the named header, creating it at the end of the
// insertion order when absent.
func (hs *Headers) Add(name, value string) *Headers {
	lc := util.LCase(name)
	orig, ok := hs.index[lc]
	if !ok {
		return hs.Set(name, value)
	}
	hs.values[orig] = append(hs.values[orig], value)
	return hs
}

// Del removes the named header, matched case-insensitively.
func (hs *Headers) Del(name string) *Headers {
	lc := util.LCase(name)
	orig, ok := hs.index[lc]
	if !ok {
		return hs
	}
	i := slices.Index(hs.names, orig)
	hs.names = slices.Delete(hs.names, i, i+1)
	delete(hs.index, lc)
	delete(hs.values, orig)
	return hs
}

// Clone returns a deep copy of the headers.
func (hs *Headers) Clone() *Headers {
	if hs == nil {
		return nil
	}
	hs2 := &Headers{
		names:  slices.Clone(hs.names),
		index:  make(map[string]string, len(hs.index)),
		values: make(map[string][]string, len(hs.values)),
	}
	for k, v := range hs.index {
		hs2.index[k] = v
	}
	for k, v := range hs.values {
		hs2.values[k] = slices.Clone(v)
	}
	return hs2
}

// RenderTo writes the headers to the provided writer, one "Name: values"
// line per header in insertion order.
func (hs *Headers) RenderTo(w io.Writer) (num int, err error) {
	if hs == nil {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	for _, name := range hs.names {
		cw.Fprint(name, ": ", strings.Join(hs.values[name], ", "), "\r\n")
	}
	return errtrace.Wrap2(cw.Result())
}

// String returns the rendered headers.
func (hs *Headers) String() string {
	if hs == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	hs.RenderTo(sb) //nolint:errcheck
	return sb.String()
}

// CanonicName converts a header name to its canonical MIME spelling,
// e.g. "content-type" to "Content-Type".
func CanonicName[T ~string](name T) string {
	return textproto.CanonicalMIMEHeaderKey(string(util.TrimSP(name)))
}
