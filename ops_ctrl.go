package u8core

// ops_ctrl.go covers the control-register move family, decode indices
// 0xA3-0xAF (0xA8/0xA9 are handled in ops_mem.go as disp16 loads/stores,
// not control-register moves). Each of these either reads the current
// tier's shadow register (EPSW/ELR/ECSR select on PSW.ELevel) or the
// plain PSW, into or out of a general register.

func registerCtrlOps() {
	opcodeTable[0xA3] = opMovRPSW
	opcodeTable[0xA4] = opMovREPSW
	opcodeTable[0xA5] = opMovERELR
	opcodeTable[0xA6] = opMovRCR
	opcodeTable[0xA7] = opMovRECSR
	opcodeTable[0xAA] = opMovERSPOrSPER
	opcodeTable[0xAB] = opMovPSWR
	opcodeTable[0xAC] = opMovEPSWR
	opcodeTable[0xAD] = opMovELRER
	opcodeTable[0xAE] = opMovCRR
	opcodeTable[0xAF] = opMovECSRR
}

func opMovRPSW(c *CPU, word uint16) Status {
	if word&0x00F0 != 0 {
		return StatusIllegalInstruction
	}
	c.reg.SetR(operandDst(word), c.reg.PSW)
	c.cycleCount += 1
	return StatusOK
}

// opMovREPSW (MOV Rn,EPSW) only writes Rn when a nested exception tier
// is active; at tier 0 there is no current EPSW and the register is
// left untouched.
func opMovREPSW(c *CPU, word uint16) Status {
	if word&0x00F0 != 0 {
		return StatusIllegalInstruction
	}
	tier := c.reg.ELevel()
	if p := c.reg.epswAt(tier); p != nil {
		c.reg.SetR(operandDst(word), *p)
	}
	c.cycleCount += 2
	return StatusOK
}

func opMovERELR(c *CPU, word uint16) Status {
	if word&0x01F0 != 0 {
		return StatusIllegalInstruction
	}
	elr := *c.reg.elrAt(c.reg.ELevel())
	c.reg.SetER(operandDst(word)&^1, elr)
	c.cycleCount += 3
	return StatusOK
}

// opMovRCR (MOV Rn,CRm) is not implemented on this core: no coprocessor
// control registers are modeled.
func opMovRCR(c *CPU, word uint16) Status {
	return StatusUnimplemented
}

func opMovRECSR(c *CPU, word uint16) Status {
	if word&0x00F0 != 0 {
		return StatusIllegalInstruction
	}
	ecsr := *c.reg.ecsrAt(c.reg.ELevel())
	c.reg.SetR(operandDst(word), ecsr)
	c.cycleCount += 2
	return StatusOK
}

// opMovERSPOrSPER handles both MOV ERn,SP and MOV SP,ERm: the nibble
// not holding the even register number carries a fixed tag value (1)
// that distinguishes the two forms.
func opMovERSPOrSPER(c *CPU, word uint16) Status {
	if word&0x01F0 == 0x0010 {
		c.reg.SetER(operandDst(word)&^1, c.reg.SP)
		c.cycleCount += 1
		return StatusOK
	}
	if word&0x0F10 == 0x0100 {
		c.reg.SP = c.reg.ER(operandSrc(word) &^ 1)
		c.cycleCount += 1
		return StatusOK
	}
	return StatusIllegalInstruction
}

func opMovPSWR(c *CPU, word uint16) Status {
	if word&0x0F00 != 0 {
		return StatusIllegalInstruction
	}
	c.reg.PSW = c.reg.R(operandSrc(word))
	c.cycleCount += 1
	return StatusOK
}

// opMovEPSWR (MOV EPSW,Rm) requires a nested exception tier: at tier 0
// there is no EPSW shadow to write.
func opMovEPSWR(c *CPU, word uint16) Status {
	if word&0x0F00 != 0 {
		return StatusIllegalInstruction
	}
	tier := c.reg.ELevel()
	p := c.reg.epswAt(tier)
	if p == nil {
		return StatusIllegalInstruction
	}
	*p = c.reg.R(operandSrc(word))
	c.cycleCount += 2
	return StatusOK
}

func opMovELRER(c *CPU, word uint16) Status {
	if word&0x01F0 != 0 {
		return StatusIllegalInstruction
	}
	*c.reg.elrAt(c.reg.ELevel()) = c.reg.ER(operandDst(word) &^ 1)
	c.cycleCount += 3
	return StatusOK
}

// opMovCRR (MOV CRn,Rm) is not implemented on this core.
func opMovCRR(c *CPU, word uint16) Status {
	return StatusUnimplemented
}

func opMovECSRR(c *CPU, word uint16) Status {
	if word&0x0F00 != 0 {
		return StatusIllegalInstruction
	}
	*c.reg.ecsrAt(c.reg.ELevel()) = c.reg.R(operandSrc(word))
	c.cycleCount += 2
	return StatusOK
}
