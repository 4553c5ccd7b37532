package u8core

// ops_bit.go covers SB/TB/RB, the single-bit set/test/clear family
// (decode indices 0xA0-0xA2): a register form operating on Rn.bit, and a
// direct-address form operating on one byte at an absolute data address
// fetched as a second code word. Both forms take the bit number from the
// low 3 bits of the source nibble; bit 7 selects the form, and the
// direct-address form additionally requires the dst nibble to be zero.

func registerBitOps() {
	opcodeTable[0xA0] = opSetBit
	opcodeTable[0xA1] = opTestBit
	opcodeTable[0xA2] = opClearBit
}

func opSetBit(c *CPU, word uint16) Status {
	bit := uint8(operandSrc(word)) & 7

	if word&0x0080 == 0 {
		v, z := ALUSetBit(c.reg.R(operandDst(word)), bit)
		c.reg.SetR(operandDst(word), v)
		c.setZS(z, c.reg.flagS())
		c.cycleCount += 1
		return StatusOK
	}
	if word&0x0F80 != 0x0080 {
		return StatusIllegalInstruction
	}

	addr := c.fetchCodeWord()
	raw, _ := c.mmu.DataRead(c.dataSegment(), addr, 1)
	v, z := ALUSetBit(uint8(raw), bit)
	c.dataWrite(addr, 1, uint64(v))
	c.setZS(z, c.reg.flagS())
	c.cycleCount += 2 + c.eaIncDelay
	return StatusOK
}

func opClearBit(c *CPU, word uint16) Status {
	bit := uint8(operandSrc(word)) & 7

	if word&0x0080 == 0 {
		v, z := ALUClearBit(c.reg.R(operandDst(word)), bit)
		c.reg.SetR(operandDst(word), v)
		c.setZS(z, c.reg.flagS())
		c.cycleCount += 1
		return StatusOK
	}
	if word&0x0F80 != 0x0080 {
		return StatusIllegalInstruction
	}

	addr := c.fetchCodeWord()
	raw, _ := c.mmu.DataRead(c.dataSegment(), addr, 1)
	v, z := ALUClearBit(uint8(raw), bit)
	c.dataWrite(addr, 1, uint64(v))
	c.setZS(z, c.reg.flagS())
	c.cycleCount += 2 + c.eaIncDelay
	return StatusOK
}

func opTestBit(c *CPU, word uint16) Status {
	bit := uint8(operandSrc(word)) & 7

	if word&0x0080 == 0 {
		z := ALUTestBit(c.reg.R(operandDst(word)), bit)
		c.setZS(z, c.reg.flagS())
		c.cycleCount += 1
		return StatusOK
	}
	if word&0x0F80 != 0x0080 {
		return StatusIllegalInstruction
	}

	addr := c.fetchCodeWord()
	raw := c.dataRead(addr, 1)
	z := ALUTestBit(uint8(raw), bit)
	c.setZS(z, c.reg.flagS())
	c.cycleCount += 2 + c.eaIncDelay
	return StatusOK
}
