package u8core

import "testing"

func TestMailboxSendPeekClear(t *testing.T) {
	var m InterruptMailbox
	m.Send(InterruptMI, 3)
	kind, index := m.Peek()
	if kind != InterruptMI || index != 3 {
		t.Errorf("Peek = %v,%d, want InterruptMI,3", kind, index)
	}
	m.Clear()
	kind, index = m.Peek()
	if kind != InterruptNone || index != 0 {
		t.Errorf("Peek after Clear = %v,%d, want InterruptNone,0", kind, index)
	}
}

func TestMailboxMarkChecked(t *testing.T) {
	var m InterruptMailbox
	m.Send(InterruptNMI, 0)
	m.MarkChecked()
	if !m.checked.Load() {
		t.Errorf("checked = false, want true after MarkChecked")
	}
	m.Send(InterruptNMI, 0)
	if m.checked.Load() {
		t.Errorf("checked = true, want false (Send resets the handshake)")
	}
}

func TestMIDeliverableGating(t *testing.T) {
	c := newTestCPU(nil, nil)
	c.reg.setFlag(pswMIE, false)
	if c.miDeliverable(0) {
		t.Errorf("miDeliverable = true, want false (MIE clear)")
	}

	c.reg.setFlag(pswMIE, true)
	c.intMaskCycle = 1
	if c.miDeliverable(0) {
		t.Errorf("miDeliverable = true, want false (intMaskCycle open)")
	}

	c.intMaskCycle = 0
	c.reg.setELevel(2)
	if c.miDeliverable(0) {
		t.Errorf("miDeliverable = true, want false (ELevel >= 2)")
	}

	c.reg.setELevel(0)
	if !c.miDeliverable(0) {
		t.Errorf("miDeliverable = false, want true (all gates clear)")
	}
}

func TestCommitNMISavesTier2Context(t *testing.T) {
	c := newTestCPU(nil, nil)
	c.reg.PC = 0x1234
	c.reg.CSR = 0x02
	c.reg.PSW = 0x55
	c.reg.setFlag(pswMIE, true)

	c.commitNMI()

	// EPSW2 holds the PSW as it was at commit: 0x55 with MIE (0x08) set.
	if c.reg.ELR2 != 0x1234 || c.reg.ECSR2 != 0x02 || c.reg.EPSW2 != 0x5D {
		t.Errorf("tier-2 shadow = %#x,%d,%#x, want 0x1234,2,0x5d", c.reg.ELR2, c.reg.ECSR2, c.reg.EPSW2)
	}
	if c.reg.ELevel() != nmiTier {
		t.Errorf("ELevel = %d, want %d", c.reg.ELevel(), nmiTier)
	}
	if c.reg.flagMIE() {
		t.Errorf("MIE set, want cleared")
	}
	if c.reg.CSR != 0 || c.reg.PC != nmiVector {
		t.Errorf("CSR:PC = %d:%#x, want 0:%#x", c.reg.CSR, c.reg.PC, nmiVector)
	}
}

func TestCommitMISavesTier1ContextAndVectors(t *testing.T) {
	c := newTestCPU(nil, nil)
	c.reg.PC = 0x2000
	c.reg.CSR = 0x01
	c.reg.PSW = 0x11

	c.commitMI(2)

	if c.reg.ELR1 != 0x2000 || c.reg.ECSR1 != 0x01 {
		t.Errorf("tier-1 shadow ELR1:ECSR1 = %#x:%d, want 0x2000:1", c.reg.ELR1, c.reg.ECSR1)
	}
	if c.reg.ELevel() != maskableTier {
		t.Errorf("ELevel = %d, want %d", c.reg.ELevel(), maskableTier)
	}
	want := uint16(maskableBase) + 2*maskableStride
	if c.reg.PC != want {
		t.Errorf("PC = %#x, want %#x", c.reg.PC, want)
	}
}

func TestDeliverInterruptUnconditionalNMI(t *testing.T) {
	c := newTestCPU(nil, nil)
	c.reg.setFlag(pswMIE, false) // NMI must fire even with MIE clear
	c.mailbox.Send(InterruptNMI, 0)

	c.deliverInterrupt()

	if c.reg.ELevel() != nmiTier {
		t.Errorf("ELevel = %d, want %d", c.reg.ELevel(), nmiTier)
	}
	kind, _ := c.mailbox.Peek()
	if kind != InterruptNone {
		t.Errorf("mailbox kind = %v, want cleared after delivery", kind)
	}
}

func TestDeliverInterruptMINotDeliveredLeavesMailboxIntact(t *testing.T) {
	c := newTestCPU(nil, nil)
	c.reg.setFlag(pswMIE, false)
	c.mailbox.Send(InterruptMI, 1)

	c.deliverInterrupt()

	kind, index := c.mailbox.Peek()
	if kind != InterruptMI || index != 1 {
		t.Errorf("mailbox = %v,%d, want untouched InterruptMI,1", kind, index)
	}
	if c.reg.ELevel() != 0 {
		t.Errorf("ELevel = %d, want 0 (not delivered)", c.reg.ELevel())
	}
}
