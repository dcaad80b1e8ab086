package rx

import "sync/atomic"

// UID identifies a publisher or a subscription within the process.
type UID uint64

var lastUID atomic.Uint64

// NextUID returns a new identifier, distinct from every previous one.
func NextUID() UID {
	return UID(lastUID.Add(1))
}
