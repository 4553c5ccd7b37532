package u8core

import "testing"

func TestOpLdsrReg(t *testing.T) {
	c := newTestCPU(nil, nil)
	c.reg.SetR(3, 0x05)
	word := uint16(0x900F | 3<<4) // _LDSR R3 (decode index 0x9F)
	opLdsrReg(c, word)
	if c.reg.DSR != 0x05 {
		t.Errorf("DSR = %#x, want 0x05", c.reg.DSR)
	}
	if !c.setDSR {
		t.Errorf("setDSR not latched")
	}
}

func TestOpLdsrRegIllegalDstField(t *testing.T) {
	c := newTestCPU(nil, nil)
	word := uint16(0x900F | 1<<8 | 3<<4)
	if st := opLdsrReg(c, word); st != StatusIllegalInstruction {
		t.Errorf("status = %v, want illegal", st)
	}
}

func TestOpSystemFixedRTI(t *testing.T) {
	c := newTestCPU(nil, nil)
	c.reg.setELevel(1)
	c.reg.ECSR1 = 0x02
	c.reg.ELR1 = 0x4242
	c.reg.EPSW1 = 0x55
	opSystemFixed(c, 0xFE0F)
	if c.reg.CSR != 0x02 || c.reg.PC != 0x4242 {
		t.Errorf("CSR:PC = %d:%#x, want 2:0x4242", c.reg.CSR, c.reg.PC)
	}
	if c.reg.PSW != 0x55 {
		t.Errorf("PSW = %#x, want 0x55", c.reg.PSW)
	}
}

func TestOpSystemFixedRT(t *testing.T) {
	c := newTestCPU(nil, nil)
	c.reg.LCSR = 0x03
	c.reg.LR = 0x7070
	opSystemFixed(c, 0xFE1F)
	if c.reg.CSR != 0x03 || c.reg.PC != 0x7070 {
		t.Errorf("CSR:PC = %d:%#x, want 3:0x7070", c.reg.CSR, c.reg.PC)
	}
}

func TestOpSystemFixedIncDecEA(t *testing.T) {
	data := make([]byte, 0x6000)
	data[ramOffset(0x9000)] = 0xFE
	c := newTestCPU(nil, data)
	c.reg.EA = 0x9000
	opSystemFixed(c, 0xFE2F) // INC [EA]
	if got, _ := c.mmu.DataRead(0, 0x9000, 1); got != 0xFF {
		t.Errorf("byte = %#x, want 0xFF", got)
	}
	if c.reg.flagC() {
		t.Errorf("C set by INC, want clear (no carry out of 0xFE+1)")
	}

	opSystemFixed(c, 0xFE3F) // DEC [EA]
	if got, _ := c.mmu.DataRead(0, 0x9000, 1); got != 0xFE {
		t.Errorf("byte = %#x, want 0xFE", got)
	}
}

func TestOpSystemFixedIncDecEAPreservesCarry(t *testing.T) {
	data := make([]byte, 0x6000)
	data[ramOffset(0x9000)] = 0xFE
	c := newTestCPU(nil, data)
	c.reg.EA = 0x9000
	c.reg.setFlag(pswC, true)

	opSystemFixed(c, 0xFE2F) // INC [EA]: 0xFE+1 = 0xFF, no carry out
	if !c.reg.flagC() {
		t.Errorf("C cleared by INC, want preserved (spec requires C survive unrelated to the add's own carry)")
	}

	opSystemFixed(c, 0xFE3F) // DEC [EA]: 0xFF-1 = 0xFE, no borrow
	if !c.reg.flagC() {
		t.Errorf("C cleared by DEC, want preserved")
	}
}

func TestOpSystemFixedNop(t *testing.T) {
	c := newTestCPU(nil, nil)
	if st := opSystemFixed(c, 0xFE8F); st != StatusOK {
		t.Errorf("status = %v, want OK", st)
	}
}

func TestOpSystemFixedDSRIndirect(t *testing.T) {
	c := newTestCPU(nil, nil)
	opSystemFixed(c, 0xFE9F)
	if !c.setDSR {
		t.Errorf("setDSR not latched")
	}
}

func TestOpSystemFixedCPLC(t *testing.T) {
	c := newTestCPU(nil, nil)
	c.reg.setFlag(pswC, true)
	opSystemFixed(c, 0xFECF)
	if c.reg.flagC() {
		t.Errorf("C still set after CPLC")
	}
	opSystemFixed(c, 0xFECF)
	if !c.reg.flagC() {
		t.Errorf("C not set after a second CPLC")
	}
}

func TestOpSystemFixedIllegal(t *testing.T) {
	c := newTestCPU(nil, nil)
	if st := opSystemFixed(c, 0xFE4F); st != StatusIllegalInstruction {
		t.Errorf("status = %v, want illegal", st)
	}
}

func TestOpBreakPromotesToTierTwo(t *testing.T) {
	c := newTestCPU(nil, nil)
	c.reg.PC = 0x0100
	c.reg.CSR = 0x01
	c.reg.PSW = 0x40 // ELevel 0, so BRK promotes rather than resets
	c.reg.setFlag(pswMIE, true)
	opSystemFixed(c, 0xFFFF)
	if c.reg.ELevel() != 2 {
		t.Errorf("ELevel = %d, want 2", c.reg.ELevel())
	}
	if c.reg.ELR2 != 0x0100 || c.reg.ECSR2 != 0x01 {
		t.Errorf("ELR2:ECSR2 = %#x:%d, want 0x0100:1", c.reg.ELR2, c.reg.ECSR2)
	}
	if c.reg.flagMIE() {
		t.Errorf("MIE set, want cleared on entry")
	}
	if c.reg.CSR != 0 || c.reg.PC != nmiVector {
		t.Errorf("CSR:PC = %d:%#x, want 0:%#x", c.reg.CSR, c.reg.PC, nmiVector)
	}
}

func TestOpBreakResetsAtTierTwoOrAbove(t *testing.T) {
	code := codeWords(0x1234, 0x5678)
	c := newTestCPU(code, nil)
	c.reg.setELevel(2)
	opSystemFixed(c, 0xFFFF)
	if c.reg.ELevel() != 0 {
		t.Errorf("ELevel = %d, want 0 after a full reset", c.reg.ELevel())
	}
	if c.reg.SP != 0x1234 || c.reg.PC != 0x5678 {
		t.Errorf("SP:PC = %#x:%#x, want the reset vectors 0x1234:0x5678", c.reg.SP, c.reg.PC)
	}
}
