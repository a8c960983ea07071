// Package message provides an immutable container binding a request URI,
// an ordered header collection and a body stream.
package message

import (
	"strconv"

	"github.com/ghettovoice/gohttp/stream"
	"github.com/ghettovoice/gohttp/uri"
)

// HostHeader is the name of the header synchronized from the URI authority.
const HostHeader = "Host"

// Message holds one URI, a header collection and a body stream.
//
// Like [uri.URI], a Message is a copy-on-write value: every With* method
// returns a new message and leaves the receiver untouched. The body stream
// handle is shared between snapshots; headers are deep-copied.
type Message struct {
	proto   string
	uri     *uri.URI
	headers *Headers
	body    stream.Stream
}

// New creates a message for the given URI with the Host header already
// synchronized from the URI authority.
func New(u *uri.URI) *Message {
	m := &Message{
		proto:   "1.1",
		uri:     u,
		headers: NewHeaders(),
	}
	m.syncHostHeader()
	return m
}

func (m *Message) clone() *Message {
	m2 := *m
	m2.headers = m.headers.Clone()
	return &m2
}

// ProtoVersion returns the protocol version, e.g. "1.1".
func (m *Message) ProtoVersion() string { return m.proto }

// WithProtoVersion returns a message with the given protocol version.
func (m *Message) WithProtoVersion(v string) *Message {
	m2 := m.clone()
	m2.proto = v
	return m2
}

// URI returns the message URI.
func (m *Message) URI() *uri.URI { return m.uri }

// WithURI returns a message with the given URI. Unless preserveHost is set
// and a Host header already exists, the Host header is rewritten from the
// URI host and port and placed first in the header order. A URI without a
// host never touches the Host header.
func (m *Message) WithURI(u *uri.URI, preserveHost bool) *Message {
	m2 := m.clone()
	m2.uri = u
	if preserveHost && m2.headers.Has(HostHeader) {
		return m2
	}
	m2.syncHostHeader()
	return m2
}

func (m *Message) syncHostHeader() {
	host := m.uri.Host()
	if host == "" {
		return
	}
	if port, ok := m.uri.Port(); ok {
		host += ":" + strconv.Itoa(int(port))
	}
	m.headers.SetFirst(HostHeader, host)
}

// Headers returns a copy of the message headers.
func (m *Message) Headers() *Headers { return m.headers.Clone() }

// Header returns the values of the named header.
func (m *Message) Header(name string) []string { return m.headers.Values(name) }

// HeaderLine returns the values of the named header joined with ", ".
func (m *Message) HeaderLine(name string) string { return m.headers.Line(name) }

// HasHeader reports whether the named header exists.
func (m *Message) HasHeader(name string) bool { return m.headers.Has(name) }

// WithHeader returns a message with the named header replaced by the given
// values.
func (m *Message) WithHeader(name string, values ...string) *Message {
	m2 := m.clone()
	m2.headers.Set(name, values...)
	return m2
}

// WithAddedHeader returns a message with the value appended to the named
// header.
func (m *Message) WithAddedHeader(name, value string) *Message {
	m2 := m.clone()
	m2.headers.Add(name, value)
	return m2
}

// WithoutHeader returns a message with the named header removed.
func (m *Message) WithoutHeader(name string) *Message {
	m2 := m.clone()
	m2.headers.Del(name)
	return m2
}

// Body returns the message body stream, or nil when none is set.
func (m *Message) Body() stream.Stream { return m.body }

// WithBody returns a message with the given body stream.
func (m *Message) WithBody(s stream.Stream) *Message {
	m2 := m.clone()
	m2.body = s
	return m2
}
