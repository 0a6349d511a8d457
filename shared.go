package bimap

import (
	"log/slog"
	"sync/atomic"
)

// mapShared contains metadata and settings common to every BiMap, independent of its element types.
type mapShared struct {
	uid             uint64
	name            string
	capacity        int
	checkInvariants bool
	base            *slog.Logger
}

func (c mapShared) logger() *slog.Logger {
	base := c.base
	if base == nil {
		base = slog.Default()
	}
	return base.With("uid", c.uid, "bimapName", c.name)
}

func newMapShared(options []Option) mapShared {
	meta := &mapShared{
		uid: nextMapUID(),
	}
	for _, option := range options {
		option(meta)
	}
	return *meta
}

// derive returns a copy of these settings under a fresh uid, for maps produced from an existing one.
func (c mapShared) derive() mapShared {
	c.uid = nextMapUID()
	return c
}

var globalMapUIDCounter = atomic.Uint64{}

func nextMapUID() uint64 {
	return globalMapUIDCounter.Add(1)
}
