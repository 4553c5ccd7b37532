package u8core

// ops_system.go covers the DSR-prefix register form (0x9F) and the
// fixed-word system-control opcodes at 0xFF: return-from-interrupt,
// return-from-call, increment/decrement through EA, NOP, the DSR
// prefix's indirect form, carry complement, and BRK.

func registerSystemOps() {
	opcodeTable[0x9F] = opLdsrReg
	opcodeTable[0xFF] = opSystemFixed
}

// opLdsrReg (_LDSR Rd) latches Rd's value as the one-shot DSR segment
// for the very next data access.
func opLdsrReg(c *CPU, word uint16) Status {
	if word&0x0F00 != 0 {
		return StatusIllegalInstruction
	}
	c.reg.DSR = c.reg.R(operandSrc(word))
	c.setDSR = true
	c.cycleCount += 1
	return StatusOK
}

func opSystemFixed(c *CPU, word uint16) Status {
	switch word {
	case 0xFE0F:
		return opRTI(c)
	case 0xFE1F:
		return opRT(c)
	case 0xFE2F:
		return opIncEA(c)
	case 0xFE3F:
		return opDecEA(c)
	case 0xFE8F:
		c.cycleCount += 1
		return StatusOK
	case 0xFE9F:
		c.setDSR = true
		c.cycleCount += 1
		return StatusOK
	case 0xFECF:
		c.reg.setFlag(pswC, !c.reg.flagC())
		c.cycleCount += 1
		return StatusOK
	case 0xFFFF:
		return opBreak(c)
	default:
		return StatusIllegalInstruction
	}
}

// opRTI restores CSR/PC/PSW from the current exception tier's shadow
// registers, returning to whatever tier nested it.
func opRTI(c *CPU) Status {
	tier := c.reg.ELevel()
	c.reg.CSR = *c.reg.ecsrAt(tier)
	c.reg.PC = *c.reg.elrAt(tier)
	if p := c.reg.epswAt(tier); p != nil {
		c.reg.PSW = *p
	}
	c.cycleCount += 2 + c.eaIncDelay
	return StatusOK
}

// opRT returns from a CALL: CSR/PC from LCSR/LR, no PSW restore.
func opRT(c *CPU) Status {
	c.reg.CSR = c.reg.LCSR
	c.reg.PC = c.reg.LR
	c.cycleCount += 2 + c.eaIncDelay
	return StatusOK
}

// opIncEA (INC [EA]) preserves the incoming C flag per spec.md's
// explicit note that INC/DEC through EA never touch carry.
func opIncEA(c *CPU) Status {
	v := uint8(c.dataRead(c.reg.EA, 1))
	r := ALUAdd(v, 1, false)
	c.dataWrite(c.reg.EA, 1, r.Result)
	c.applyZSOH(r)
	c.cycleCount += 2 + c.eaIncDelay
	return StatusOK
}

// opDecEA (DEC [EA]) preserves the incoming C flag, mirroring opIncEA.
func opDecEA(c *CPU) Status {
	v := uint8(c.dataRead(c.reg.EA, 1))
	r := ALUSub(v, 1)
	c.dataWrite(c.reg.EA, 1, r.Result)
	c.applyZSOH(r)
	c.cycleCount += 2 + c.eaIncDelay
	return StatusOK
}

// opBreak handles BRK: at exception tier 2 or above there is no further
// tier to promote into, so it performs a full core reset; otherwise it
// promotes into tier 2 through the fixed vector at code offset 0x0004,
// saving the current PC/CSR/PSW into that tier's shadow registers the
// same way commitNMI does.
func opBreak(c *CPU) Status {
	if c.reg.ELevel() >= 2 {
		c.Reset()
		return StatusOK
	}
	c.saveContextTo(nmiTier)
	c.reg.setELevel(nmiTier)
	c.reg.setFlag(pswMIE, false)
	c.reg.CSR = 0
	c.reg.PC = nmiVector
	return StatusOK
}
