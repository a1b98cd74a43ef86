package core

import (
	"fmt"
	"time"
)

// WriteMode selects how far the write probe goes on an accessible bucket.
type WriteMode int

const (
	WriteSkip WriteMode = iota
	WritePutOnly
	WritePutDelete
)

// ParseWriteMode accepts the flag spellings skip, put and put-delete.
func ParseWriteMode(s string) (WriteMode, error) {
	switch s {
	case "", "skip":
		return WriteSkip, nil
	case "put":
		return WritePutOnly, nil
	case "put-delete":
		return WritePutDelete, nil
	}
	return WriteSkip, fmt.Errorf("unknown write mode %q (want skip, put or put-delete)", s)
}

// Config holds the run-level settings shared by the backends and the engine.
// The write mode and marker arrive here already resolved; the core never
// prompts for them itself.
type Config struct {
	RunListing bool
	RunWeb     bool
	Variations bool
	Threads    int
	Timeout    time.Duration
	Rate       int // requests per second across all workers, 0 = unlimited
	Verbose    bool
	WriteMode  WriteMode
	Marker     []byte
}
