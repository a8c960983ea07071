// Package stream wraps readable, writable and seekable byte sources behind
// a single capability-probed interface suitable for holding a message body.
package stream

//go:generate go tool errtrace -w .

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"

	"braces.dev/errtrace"
	"github.com/qmuntal/stateless"

	"github.com/ghettovoice/gohttp/internal/errorutil"
)

// Errors returned by this package.
var (
	ErrClosed      = errorutil.Error("stream is closed")
	ErrDetached    = errorutil.Error("stream is detached")
	ErrNotReadable = errorutil.Error("stream is not readable")
	ErrNotWritable = errorutil.Error("stream is not writable")
	ErrNotSeekable = errorutil.Error("stream is not seekable")
)

// Stream is an abstract byte stream over an underlying handle.
type Stream interface {
	io.Reader
	io.Writer
	io.Seeker
	io.Closer
	// Tell returns the current offset within the stream.
	Tell() (int64, error)
	// EOF reports whether the last read hit the end of the stream.
	EOF() bool
	IsReadable() bool
	IsWritable() bool
	IsSeekable() bool
	// Size returns the total size of the underlying handle when known.
	Size() (int64, bool)
	// Metadata returns a snapshot of the stream metadata.
	Metadata() map[string]any
	// MetadataValue returns a single metadata value, or nil when absent.
	MetadataValue(key string) any
	// Detach separates the underlying handle from the stream and returns it.
	// After a detach the stream is unusable.
	Detach() any
}

// Stream lifecycle states and triggers.
const (
	stateOpen     = "open"
	stateClosed   = "closed"
	stateDetached = "detached"

	triggerClose  = "close"
	triggerDetach = "detach"
)

// Generic is a [Stream] over an arbitrary handle. Capabilities are probed
// from the io interfaces the handle implements.
type Generic struct {
	handle any
	r      io.Reader
	w      io.Writer
	s      io.Seeker
	eof    bool
	meta   map[string]any
	fsm    *stateless.StateMachine
}

var _ Stream = (*Generic)(nil)

// New creates a stream over the given handle.
func New(handle any) *Generic {
	return NewWithMetadata(handle, nil)
}

// NewWithMetadata creates a stream over the given handle with additional
// user metadata merged into [Generic.Metadata].
func NewWithMetadata(handle any, meta map[string]any) *Generic {
	g := &Generic{handle: handle, meta: meta}
	g.r, _ = handle.(io.Reader)
	g.w, _ = handle.(io.Writer)
	g.s, _ = handle.(io.Seeker)

	g.fsm = stateless.NewStateMachine(stateOpen)
	g.fsm.Configure(stateOpen).
		Permit(triggerClose, stateClosed).
		Permit(triggerDetach, stateDetached)
	g.fsm.Configure(stateClosed).
		OnEntry(func(context.Context, ...any) error {
			if c, ok := g.handle.(io.Closer); ok {
				return errtrace.Wrap(c.Close())
			}
			return nil
		}).
		Ignore(triggerClose)
	g.fsm.Configure(stateDetached).
		Ignore(triggerDetach)
	return g
}

// NewFromString creates a readable, seekable in-memory stream.
func NewFromString(s string) *Generic { return New(strings.NewReader(s)) }

// NewFromBytes creates a readable, seekable in-memory stream.
func NewFromBytes(b []byte) *Generic { return New(bytes.NewReader(b)) }

func (g *Generic) checkOpen() error {
	switch g.fsm.MustState() {
	case stateClosed:
		return errtrace.Wrap(ErrClosed)
	case stateDetached:
		return errtrace.Wrap(ErrDetached)
	}
	return nil
}

// Read implements io.Reader. It fails when the stream is closed, detached
// or not readable.
func (g *Generic) Read(p []byte) (int, error) {
	if err := g.checkOpen(); err != nil {
		return 0, errtrace.Wrap(err)
	}
	if g.r == nil {
		return 0, errtrace.Wrap(ErrNotReadable)
	}

	n, err := g.r.Read(p)
	if err == io.EOF {
		g.eof = true
		return n, io.EOF
	}
	if err != nil {
		return n, errtrace.Wrap(err)
	}
	return n, nil
}

// Write implements io.Writer. It fails when the stream is closed, detached
// or not writable.
func (g *Generic) Write(p []byte) (int, error) {
	if err := g.checkOpen(); err != nil {
		return 0, errtrace.Wrap(err)
	}
	if g.w == nil {
		return 0, errtrace.Wrap(ErrNotWritable)
	}
	return errtrace.Wrap2(g.w.Write(p))
}

// Seek implements io.Seeker. A successful seek resets the EOF flag.
func (g *Generic) Seek(offset int64, whence int) (int64, error) {
	if err := g.checkOpen(); err != nil {
		return 0, errtrace.Wrap(err)
	}
	if g.s == nil {
		return 0, errtrace.Wrap(ErrNotSeekable)
	}

	pos, err := g.s.Seek(offset, whence)
	if err != nil {
		return pos, errtrace.Wrap(err)
	}
	g.eof = false
	return pos, nil
}

// Tell returns the current offset within the stream.
func (g *Generic) Tell() (int64, error) {
	return errtrace.Wrap2(g.Seek(0, io.SeekCurrent))
}

// EOF reports whether the last read hit the end of the stream.
func (g *Generic) EOF() bool { return g.eof }

// IsReadable reports whether the stream is open and its handle is readable.
func (g *Generic) IsReadable() bool {
	return g.r != nil && g.fsm.MustState() == stateOpen
}

// IsWritable reports whether the stream is open and its handle is writable.
func (g *Generic) IsWritable() bool {
	return g.w != nil && g.fsm.MustState() == stateOpen
}

// IsSeekable reports whether the stream is open and its handle is seekable.
func (g *Generic) IsSeekable() bool {
	return g.s != nil && g.fsm.MustState() == stateOpen
}

// Size returns the total size of the underlying handle when it can be
// determined without disturbing the stream position.
func (g *Generic) Size() (int64, bool) {
	if g.checkOpen() != nil {
		return 0, false
	}
	switch h := g.handle.(type) {
	case interface{ Stat() (os.FileInfo, error) }:
		if fi, err := h.Stat(); err == nil {
			return fi.Size(), true
		}
	case interface{ Size() int64 }:
		return h.Size(), true
	}
	return 0, false
}

// Metadata returns a snapshot of the stream metadata: the lifecycle state,
// capability flags and the EOF flag, merged with any user metadata supplied
// at construction.
func (g *Generic) Metadata() map[string]any {
	md := map[string]any{
		"state":    g.fsm.MustState(),
		"eof":      g.eof,
		"readable": g.IsReadable(),
		"writable": g.IsWritable(),
		"seekable": g.IsSeekable(),
	}
	if size, ok := g.Size(); ok {
		md["size"] = size
	}
	for k, v := range g.meta {
		md[k] = v
	}
	return md
}

// MetadataValue returns a single metadata value, or nil when absent.
func (g *Generic) MetadataValue(key string) any {
	return g.Metadata()[key]
}

// Close closes the underlying handle when it is an io.Closer. Closing an
// already closed stream is a no-op; closing a detached stream fails with
// [ErrDetached].
func (g *Generic) Close() error {
	if g.fsm.MustState() == stateDetached {
		return errtrace.Wrap(ErrDetached)
	}
	return errtrace.Wrap(g.fsm.Fire(triggerClose))
}

// Detach separates the underlying handle from the stream and returns it.
// A closed or already detached stream yields nil.
func (g *Generic) Detach() any {
	if g.fsm.MustState() != stateOpen {
		return nil
	}
	if err := g.fsm.Fire(triggerDetach); err != nil {
		return nil
	}
	h := g.handle
	g.handle, g.r, g.w, g.s = nil, nil, nil, nil
	return h
}
