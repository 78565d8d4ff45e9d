package cacheext

// GroupID identifies a memory-resource-group (for example a cgroup name).
// The policy maintains one cold/hot segment pair per group.
type GroupID string

// String returns the group identifier as a plain string.
func (g GroupID) String() string { return string(g) }

// FileID identifies the file backing a page, typically an inode number.
// Watchlist membership is decided per FileID.
type FileID uint64

// ListID is an opaque segment handle allocated by a ListRegistry.
// The zero value is reserved and never names a valid list.
type ListID uint64

// Valid reports whether the handle names a list. Registries never
// allocate the zero handle.
func (l ListID) Valid() bool { return l != 0 }

// segments is the per-group record of the two segment handles.
// A page enters cold on first touch and moves to hot on re-touch.
type segments struct {
	cold ListID
	hot  ListID
}
