package probe

import (
	"context"

	"github.com/0xDTC/0xAWSCloud/pkg/core"
)

// WriteProbeKey is the fixed object key the write probe reserves. One marker
// object per accessible bucket, written once and deleted once at most.
const WriteProbeKey = "s3regions-write-probe.txt"

// WriteState tracks the probe's progress. DeleteAttempted is reachable only
// from PutOk.
type WriteState int

const (
	Untested WriteState = iota
	PutAttempted
	PutOk
	PutFailed
	DeleteAttempted
	DeleteOk
	DeleteFailed
)

// WriteSession runs the PUT-then-conditional-DELETE protocol for one
// accessible target. Any failure degrades to false permissions, never to an
// error for the caller.
type WriteSession struct {
	mode  core.WriteMode
	state WriteState
}

func NewWriteSession(mode core.WriteMode) *WriteSession {
	return &WriteSession{mode: mode, state: Untested}
}

func (s *WriteSession) State() WriteState { return s.state }

// Run drives the session with the backend's native put and delete
// primitives. Skip mode touches nothing.
func (s *WriteSession) Run(ctx context.Context, put, del func(context.Context) error) core.WritePermissions {
	var perms core.WritePermissions
	if s.mode == core.WriteSkip {
		return perms
	}
	if ctx.Err() != nil {
		return perms
	}

	s.state = PutAttempted
	if err := put(ctx); err != nil {
		s.state = PutFailed
		return perms
	}
	s.state = PutOk
	perms.Put = true

	if s.mode != core.WritePutDelete {
		return perms
	}

	s.state = DeleteAttempted
	if err := del(ctx); err != nil {
		s.state = DeleteFailed
		return perms
	}
	s.state = DeleteOk
	perms.Delete = true
	return perms
}
