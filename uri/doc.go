// Package uri implements an immutable URI value type.
//
// A [URI] is built by [Parse] or [FromParts], normalized and validated as a
// whole on construction. Every With* method is copy-on-write: it returns a
// new value and never touches the receiver, so a URI can be shared between
// goroutines without synchronization. When an update is a no-op the receiver
// itself is returned, which callers may rely on to skip downstream work.
package uri
