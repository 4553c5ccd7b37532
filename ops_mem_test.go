package u8core

import "testing"

func newMemTestCPU(data []byte) *CPU {
	// offsets 0/2 are the reset SP/PC vectors; real test code, if any,
	// starts at offset 4.
	code := codeWords(0x0000, 0x0004)
	return newTestCPU(code, data)
}

func ramOffset(addr uint16) int { return int(addr) - RomWindowSize }

func TestOpLoadByteIndirectERm(t *testing.T) {
	data := make([]byte, 0x6000)
	data[ramOffset(0x9010)] = 0x42
	c := newMemTestCPU(data)
	c.reg.SetER(2, 0x9010)
	word := uint16(0x9000 | 1<<8 | 2<<4) // L R1, [ER2]
	opLoadByteIndirect(c, word)
	if got := c.reg.R(1); got != 0x42 {
		t.Errorf("R1 = %#x, want 0x42", got)
	}
}

func TestOpLoadByteIndirectAdr(t *testing.T) {
	data := make([]byte, 0x6000)
	data[ramOffset(0x9060)] = 0x99
	code := codeWords(0x0000, 0x0004, 0x9060)
	c := newTestCPU(code, data)
	c.reg.PC = 4 // points at the address operand word
	word := uint16(0x9000 | 3<<8 | 0x10) // L R3, [adr]
	opLoadByteIndirect(c, word)
	if got := c.reg.R(3); got != 0x99 {
		t.Errorf("R3 = %#x, want 0x99", got)
	}
	if c.reg.PC != 6 {
		t.Errorf("PC = %#x, want 6 (advanced past the operand)", c.reg.PC)
	}
}

func TestOpLoadByteIndirectEAPostIncrement(t *testing.T) {
	data := make([]byte, 0x6000)
	data[ramOffset(0x9080)] = 0x07
	c := newMemTestCPU(data)
	c.reg.EA = 0x9080
	word := uint16(0x9000 | 4<<8 | 0x50) // L R4, [EA+]
	opLoadByteIndirect(c, word)
	if got := c.reg.R(4); got != 0x07 {
		t.Errorf("R4 = %#x, want 0x07", got)
	}
	if c.reg.EA != 0x9081 {
		t.Errorf("EA = %#x, want 0x9081 (post-incremented)", c.reg.EA)
	}
	if !c.usedEAInc {
		t.Errorf("usedEAInc not set")
	}
}

func TestOpStoreByteIndirectEA(t *testing.T) {
	data := make([]byte, 0x6000)
	c := newMemTestCPU(data)
	c.reg.EA = 0x9090
	c.reg.SetR(5, 0xAB)
	word := uint16(0x9000 | 5<<8 | 0x31) // ST R5, [EA]
	opStoreByteIndirect(c, word)
	if got, _ := c.mmu.DataRead(0, 0x9090, 1); got != 0xAB {
		t.Errorf("stored byte = %#x, want 0xAB", got)
	}
}

func TestOpLoadByteDisp16(t *testing.T) {
	data := make([]byte, 0x6000)
	data[ramOffset(0x9020)] = 0x11
	code := codeWords(0x0000, 0x0004, 0x0010) // disp = 0x10
	c := newTestCPU(code, data)
	c.reg.SetER(2, 0x9010)
	c.reg.PC = 4
	word := uint16(0x9000 | 6<<8 | 2<<4 | 0x08) // L R6, disp16[ER2]
	opLoadByteDisp16(c, word)
	if got := c.reg.R(6); got != 0x11 {
		t.Errorf("R6 = %#x, want 0x11", got)
	}
}

func TestOpWordDisp6BPFPLoadAndStore(t *testing.T) {
	data := make([]byte, 0x6000)
	data[ramOffset(0x9100)] = 0x34
	data[ramOffset(0x9101)] = 0x12
	c := newMemTestCPU(data)
	c.reg.SetER(12, 0x90F8) // BP; disp6 = 0x08 reaches 0x9100
	word := uint16(0xB000 | 8<<8 | 0x08) // decodeIndex 0xB0, L ERn,8[BP]
	opWordDisp6BPFP(c, word)
	if got := c.reg.ER(8); got != 0x1234 {
		t.Errorf("ER8 = %#x, want 0x1234", got)
	}

	c.reg.SetER(14, 0x90F8) // FP
	c.reg.SetER(4, 0xBEEF)
	storeWord := uint16(0xB0C0 | 4<<8 | 0x08) // ST ERn,8[FP]
	opWordDisp6BPFP(c, storeWord)
	if got, _ := c.mmu.DataRead(0, 0x9100, 2); got != 0xBEEF {
		t.Errorf("stored word = %#x, want 0xBEEF", got)
	}
}

func TestOpByteDisp6BPFPUniformOperandDst(t *testing.T) {
	// Regression for the corrected FP-load case: all four sub-forms use
	// the plain dst nibble, not a shifted one.
	data := make([]byte, 0x6000)
	data[ramOffset(0x9050)] = 0x77
	c := newMemTestCPU(data)
	c.reg.SetER(14, 0x9048) // FP; disp6 = 0x08 reaches 0x9050
	word := uint16(0xD040 | 7<<8 | 0x08) // L R7, 8[FP]
	opByteDisp6BPFP(c, word)
	if got := c.reg.R(7); got != 0x77 {
		t.Errorf("R7 = %#x, want 0x77", got)
	}
}

func TestOpLoadDWordEAIllegalMask(t *testing.T) {
	c := newMemTestCPU(nil)
	if st := opLoadDWordEA(c, 0x9400); st != StatusIllegalInstruction {
		t.Errorf("status = %v, want illegal", st)
	}
}
