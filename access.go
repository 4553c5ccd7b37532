package u8core

// Shared fetch/data-access/stack helpers used by every ops_*.go file.
// None of these are themselves opcode handlers.

// fetchCodeWord reads the next code word at (CSR, PC) and advances PC,
// for instructions with a second word (displacements, absolute
// addresses). It does not touch cycleCount; callers add the appropriate
// literal per spec.md section 4.7's per-opcode formula.
func (c *CPU) fetchCodeWord() uint16 {
	w, _ := c.mmu.CodeWord(c.reg.CSR, c.reg.PC)
	c.reg.PC = (c.reg.PC + 2) & 0xFFFE
	return w
}

// dataRead reads size bytes from the current data segment (Page0 or the
// one-shot DSR segment) and folds any ROM-window bus contention into this
// instruction's cycle count.
func (c *CPU) dataRead(offset uint16, size int) uint64 {
	v, _ := c.mmu.DataRead(c.dataSegment(), offset, size)
	c.cycleCount += c.mmu.ROMWinAccessCount()
	return v
}

// dataWrite writes size bytes to the current data segment.
func (c *CPU) dataWrite(offset uint16, size int, value uint64) {
	c.mmu.DataWrite(c.dataSegment(), offset, size, value)
}

// pushValue pushes bytes (1-8, clamped) of value onto the segment-0
// stack, low byte first at the lowest address; an odd byte count
// pre-decrements SP by one extra byte so two-byte pushes stay
// word-aligned (spec.md section 3).
func (c *CPU) pushValue(value uint64, bytes int) {
	if bytes > 8 {
		bytes = 8
	}
	if bytes&1 != 0 {
		c.reg.SP--
	}
	c.reg.SP -= uint16(bytes)
	for i := 0; i < bytes; i++ {
		c.mmu.DataWrite(0, c.reg.SP+uint16(i), 1, value&0xFF)
		value >>= 8
	}
}

// popValue pops bytes (1-8, clamped) off the segment-0 stack and returns
// them reassembled little-endian, advancing SP by the even-rounded-up
// byte count.
func (c *CPU) popValue(bytes int) uint64 {
	if bytes > 8 {
		bytes = 8
	}
	var result uint64
	n := bytes
	for n > 0 {
		n--
		result <<= 8
		b, _ := c.mmu.DataRead(0, c.reg.SP+uint16(n), 1)
		result |= b
	}
	c.reg.SP += uint16(bytes+1) &^ 1
	return result
}

// applyFlags writes an ALUResult's Z/S/C/OV/HC bits into PSW, for
// handlers that want every flag the result carries.
func (c *CPU) applyFlags(r ALUResult) {
	c.reg.setFlag(pswC, r.C)
	c.reg.setFlag(pswZ, r.Z)
	c.reg.setFlag(pswS, r.S)
	c.reg.setFlag(pswOV, r.OV)
	c.reg.setFlag(pswHC, r.HC)
}

// setZS sets only Z and S, for MOV-style operations that touch no other
// flag.
func (c *CPU) setZS(z, s bool) {
	c.reg.setFlag(pswZ, z)
	c.reg.setFlag(pswS, s)
}

// applyCZSH writes C/Z/S/HC, leaving OV preserved, for DAA/DAS.
func (c *CPU) applyCZSH(r ALUResult) {
	c.reg.setFlag(pswC, r.C)
	c.reg.setFlag(pswZ, r.Z)
	c.reg.setFlag(pswS, r.S)
	c.reg.setFlag(pswHC, r.HC)
}

// applyZSOH writes Z/S/OV/HC, leaving C untouched, for INC/DEC [EA]
// which must preserve the incoming carry.
func (c *CPU) applyZSOH(r ALUResult) {
	c.reg.setFlag(pswZ, r.Z)
	c.reg.setFlag(pswS, r.S)
	c.reg.setFlag(pswOV, r.OV)
	c.reg.setFlag(pswHC, r.HC)
}
