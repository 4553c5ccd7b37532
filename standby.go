package u8core

import "sync/atomic"

// StandbyState is the core's power state (spec.md section 4.7's "state
// machine for standby").
type StandbyState uint8

const (
	StandbyRunning StandbyState = iota
	StandbyHalt
	StandbyStop
)

func (s StandbyState) String() string {
	switch s {
	case StandbyRunning:
		return "RUNNING"
	case StandbyHalt:
		return "HALT"
	case StandbyStop:
		return "STOP"
	default:
		return "UNKNOWN"
	}
}

// Standby tracks whether the core is suspended and lets either the core
// thread or the peripheral thread end the suspension (a peripheral's
// wake hook, or an NMI), per spec.md sections 4.7/5. Plain
// atomic.Uint32 gives lock-free cross-thread reads without a mutex.
type Standby struct {
	state atomic.Uint32
}

// State returns the current standby state.
func (s *Standby) State() StandbyState { return StandbyState(s.state.Load()) }

// Enter transitions into HALT or STOP.
func (s *Standby) Enter(state StandbyState) { s.state.Store(uint32(state)) }

// Exit returns to RUNNING; safe to call from either thread.
func (s *Standby) Exit() { s.state.Store(uint32(StandbyRunning)) }

// Suspended reports whether fetch/execute should be skipped.
func (s *Standby) Suspended() bool { return s.State() != StandbyRunning }
