// Package u8core implements an interpreting core for the nX-U8/U16 family
// of 16-bit microcontrollers (the OKI/LAPIS U8 architecture used in several
// scientific calculators): register file, ALU, segmented MMU, SFR
// dispatcher, timer/keyboard peripherals, standby states, and interrupt
// delivery for a single-threaded fetch/decode/execute loop.
package u8core

import "log/slog"

// DataSegmentSource selects which data segment a non-prefixed instruction's
// data access resolves against: segment 0 ordinarily, or the segment last
// latched by a DSR-prefix instruction (consumed once, by the very next
// data access).
type DataSegmentSource uint8

const (
	Page0 DataSegmentSource = iota
	DSRSegment
)

// CPU is the nX-U8/U16 core: architectural registers plus the hidden
// accounting state the decoder/executor needs (spec.md section 3).
type CPU struct {
	reg Registers

	mmu     *MMU
	sfr     *SFRDispatcher
	timer   *Timer
	kbd     *Keyboard
	standby *Standby
	mailbox InterruptMailbox

	cycleCount   int
	intMaskCycle int
	nextAccess   DataSegmentSource
	eaIncDelay   int

	// Per-instruction scratch flags an opcode handler sets before
	// returning; Step consumes them into eaIncDelay/nextAccess and
	// resets them before the next dispatch.
	usedEAInc bool
	setDSR    bool
}

// NewCPU wires a CPU to its MMU and peripherals and brings it up through
// coreZero then coreReset, the same two-stage bring-up spec.md section 3
// describes for the emulator's lifecycle.
func NewCPU(mmu *MMU, sfr *SFRDispatcher, timer *Timer, kbd *Keyboard, standby *Standby) *CPU {
	c := &CPU{mmu: mmu, sfr: sfr, timer: timer, kbd: kbd, standby: standby}
	c.coreZero()
	c.coreReset()
	return c
}

// Registers returns a snapshot of the current architectural register
// state.
func (c *CPU) Registers() Registers { return c.reg }

// IntMaskCycle reports the remaining cycle count during which maskable
// interrupts are blocked.
func (c *CPU) IntMaskCycle() int { return c.intMaskCycle }

// Standby returns the core's standby state machine.
func (c *CPU) Standby() *Standby { return c.standby }

// RequestNMI posts a non-maskable interrupt to the mailbox. Safe to call
// from any thread (spec.md section 5): NMI always wins a race against a
// pending MI since deliverInterrupt checks NMI first.
func (c *CPU) RequestNMI() {
	c.mailbox.Send(InterruptNMI, 0)
}

// coreZero sets every architectural register and all hidden accounting
// state to zero.
func (c *CPU) coreZero() {
	c.reg.Zero()
	c.standby.Enter(StandbyRunning)
	c.mailbox.Clear()
	c.cycleCount = 0
	c.intMaskCycle = 0
	c.nextAccess = Page0
	c.eaIncDelay = 0
	c.usedEAInc = false
	c.setDSR = false
}

// coreReset clears PSW/CSR/DSR, then loads SP and PC from the reset
// vectors at code segment 0, offsets 0x0000 and 0x0002.
func (c *CPU) coreReset() {
	c.reg.PSW = 0
	c.reg.CSR = 0
	c.reg.DSR = 0
	sp, _ := c.mmu.CodeWord(0, 0x0000)
	pc, _ := c.mmu.CodeWord(0, 0x0002)
	c.reg.SP = sp
	c.reg.PC = pc
}

// Reset performs a full hardware reset: coreZero followed by coreReset.
func (c *CPU) Reset() {
	c.coreZero()
	c.coreReset()
}

// Step fetches, decodes, and executes one instruction, then runs the
// post-step bookkeeping and interrupt delivery check from spec.md section
// 4.7. When the core is suspended (HALT/STOP) it skips fetch/execute
// entirely and only polls for a waking interrupt.
func (c *CPU) Step() Status {
	if c.standby.Suspended() {
		c.pollPeripherals()
		c.deliverPending()
		return StatusOK
	}

	c.usedEAInc = false
	c.setDSR = false
	c.cycleCount = 0

	word, memStatus := c.mmu.CodeWord(c.reg.CSR, c.reg.PC)
	c.reg.PC = (c.reg.PC + 2) & 0xFFFE
	if memStatus == MemUnmapped {
		slog.Debug("fetch from unmapped code segment", "csr", c.reg.CSR, "pc", c.reg.PC)
	}

	index := decodeIndex(word)
	handler := opcodeTable[index]

	var status Status
	if handler == nil {
		status = StatusIllegalInstruction
	} else {
		status = handler(c, word)
	}

	if status == StatusUnimplemented {
		slog.Debug("unimplemented opcode", "word", word, "index", index)
	}

	if status == StatusOK {
		if c.usedEAInc {
			c.eaIncDelay = 1
		} else {
			c.eaIncDelay = 0
		}
		if c.setDSR {
			c.nextAccess = DSRSegment
		} else {
			c.nextAccess = Page0
		}
		if c.intMaskCycle -= c.cycleCount; c.intMaskCycle < 0 {
			c.intMaskCycle = 0
		}
		if c.setDSR && c.intMaskCycle == 0 {
			c.intMaskCycle++
		}
	}

	c.pollPeripherals()
	c.deliverPending()
	return status
}

// pollPeripherals folds the timer's and keyboard's raised-and-unmasked IRQ
// bits into the single-slot mailbox, giving NMI priority over any pending
// MI the peripherals may have raised since the last step.
func (c *CPU) pollPeripherals() {
	if kind, _ := c.mailbox.Peek(); kind == InterruptNMI {
		return
	}
	if c.timer.PendingInterrupt() {
		c.mailbox.Send(InterruptMI, TimerInterruptIndex)
		return
	}
	if c.kbd.PendingInterrupt() {
		c.mailbox.Send(InterruptMI, KeyboardInterruptIndex)
	}
}

// deliverPending runs the interrupt commit check and, if an MI was
// actually accepted (the mailbox went from MI to empty), clears the
// raising peripheral's IRQ bit.
func (c *CPU) deliverPending() {
	kind, index := c.mailbox.Peek()
	c.deliverInterrupt()
	if kind != InterruptMI {
		return
	}
	if newKind, _ := c.mailbox.Peek(); newKind == InterruptNone {
		c.clearPeripheralInterrupt(index)
	}
}

func (c *CPU) clearPeripheralInterrupt(index uint8) {
	switch index {
	case TimerInterruptIndex:
		c.timer.ClearInterrupt()
	case KeyboardInterruptIndex:
		c.kbd.ClearInterrupt()
	}
}

// dataSegment resolves the segment a data access should use: the one-shot
// DSR segment if a prefix instruction latched it, else segment 0 (spec.md
// section 3's NextAccess rule). Calling this consumes nothing itself —
// the reset back to Page0 happens in Step's post-bookkeeping, not here.
func (c *CPU) dataSegment() uint8 {
	if c.nextAccess == DSRSegment {
		return c.reg.DSR
	}
	return 0
}
