package u8core

import "sync/atomic"

// InterruptKind identifies what, if anything, sits in the interrupt
// mailbox.
type InterruptKind uint8

const (
	InterruptNone InterruptKind = iota
	InterruptNMI
	InterruptMI
)

// Interrupt tiers and vectors (spec.md sections 4.6/6).
const (
	nmiTier       = 2
	maskableTier  = 1
	nmiVector     = 0x0004
	maskableBase  = 0x0008
	maskableStride = 4
)

// InterruptMailbox is the single-slot producer/consumer cell described
// in spec.md section 4.6/9: one peripheral (producer) writes kind+index
// and clears checked; the core (consumer) reads it between instructions.
// A release-acquire handshake on checked is sufficient since at most one
// interrupt is ever pending.
type InterruptMailbox struct {
	kind     atomic.Uint32
	index    atomic.Uint32
	checked  atomic.Bool
	accepted atomic.Bool
}

// Send posts a new pending interrupt, clearing the checked handshake
// flag (the "producer" side, called from a peripheral).
func (m *InterruptMailbox) Send(kind InterruptKind, index uint8) {
	m.checked.Store(false)
	m.kind.Store(uint32(kind))
	m.index.Store(uint32(index))
}

// Peek reports the currently pending kind and index without consuming
// the mailbox.
func (m *InterruptMailbox) Peek() (InterruptKind, uint8) {
	return InterruptKind(m.kind.Load()), uint8(m.index.Load())
}

// MarkChecked sets the handshake flag the core sets on every poll.
func (m *InterruptMailbox) MarkChecked() { m.checked.Store(true) }

// Clear empties the mailbox after a delivered interrupt.
func (m *InterruptMailbox) Clear() {
	m.kind.Store(uint32(InterruptNone))
	m.index.Store(0)
}

// deliverInterrupt is the core-thread consumer: it polls the mailbox
// between instructions (never mid-instruction, per spec.md section 5)
// and commits an NMI unconditionally or an MI if every gating condition
// holds. A committed interrupt also ends HALT/STOP.
func (c *CPU) deliverInterrupt() {
	c.mailbox.MarkChecked()
	kind, index := c.mailbox.Peek()

	switch kind {
	case InterruptNMI:
		c.commitNMI()
		c.mailbox.Clear()
		c.standby.Exit()
	case InterruptMI:
		if c.miDeliverable(index) {
			c.commitMI(index)
			c.mailbox.Clear()
			c.standby.Exit()
		}
	}
}

// miDeliverable checks the gating conditions from spec.md section 4.6:
// MIE set, no open IntMaskCycle window, current tier below 2, and the
// interrupt's priority above the current tier.
func (c *CPU) miDeliverable(index uint8) bool {
	if !c.reg.flagMIE() {
		return false
	}
	if c.intMaskCycle != 0 {
		return false
	}
	if c.reg.ELevel() >= 2 {
		return false
	}
	return maskableTier > int(c.reg.ELevel())
}

// commitNMI saves (PC,CSR)->tier-2 shadow and PSW->EPSW2, raises ELevel
// to 2, clears MIE, and jumps to the fixed NMI vector. NMI is
// unconditional and may preempt any tier below 2.
func (c *CPU) commitNMI() {
	c.saveContextTo(nmiTier)
	c.reg.setELevel(nmiTier)
	c.reg.setFlag(pswMIE, false)
	c.reg.CSR = 0
	c.reg.PC = nmiVector
}

// commitMI saves context to the tier-1 shadow (the architecture's
// single maskable-interrupt tier), sets ELevel to 1, clears MIE, and
// jumps to the vector for this index.
func (c *CPU) commitMI(index uint8) {
	c.saveContextTo(maskableTier)
	c.reg.setELevel(maskableTier)
	c.reg.setFlag(pswMIE, false)
	c.reg.CSR = 0
	c.reg.PC = uint16(maskableBase) + uint16(index)*maskableStride
}

// saveContextTo stashes (PC,CSR) and PSW into the shadow registers for
// the given target tier.
func (c *CPU) saveContextTo(tier uint8) {
	*c.reg.elrAt(tier) = c.reg.PC
	*c.reg.ecsrAt(tier) = c.reg.CSR
	if p := c.reg.epswAt(tier); p != nil {
		*p = c.reg.PSW
	}
}
