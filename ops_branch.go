package u8core

// ops_branch.go covers the 16 conditional short branches (decode indices
// 0xC0-0xCF, condition code in the dst nibble, signed 8-bit word
// displacement in the low byte) and the four absolute/indirect jump
// forms (0xF0-0xF3): B/BL to a fetched code address, B/BL to the
// address held in an ER pair.

func registerBranchOps() {
	for n := 0; n < 16; n++ {
		opcodeTable[0xC0|n] = opCondBranch
	}
	opcodeTable[0xF0] = opBranchCadr
	opcodeTable[0xF1] = opBranchLinkCadr
	opcodeTable[0xF2] = opBranchER
	opcodeTable[0xF3] = opBranchLinkER
}

// opCondBranch evaluates one of the 16 condition codes against the
// current flags and, if true, adds the signed displacement (doubled,
// since it addresses instruction words) to PC.
func opCondBranch(c *CPU, word uint16) Status {
	cond := operandDst(word)
	if cond == 0xF {
		return StatusIllegalInstruction
	}

	if !evalBranchCond(c, cond) {
		c.cycleCount += 1
		return StatusOK
	}

	disp := signExtend(uint16(operandImm8(word)), 8) << 1
	c.reg.PC = (c.reg.PC + disp) & 0xFFFF
	c.cycleCount += 3
	return StatusOK
}

func evalBranchCond(c *CPU, cond int) bool {
	cf := c.reg.flagC()
	zf := c.reg.flagZ()
	sf := c.reg.flagS()
	ovf := c.reg.flagOV()
	ovXorS := ovf != sf

	switch cond {
	case 0x0: // GE
		return !cf
	case 0x1: // LT
		return cf
	case 0x2: // GT
		return !(cf || zf)
	case 0x3: // LE
		return cf || zf
	case 0x4: // GES
		return !ovXorS
	case 0x5: // LTS
		return ovXorS
	case 0x6: // GTS
		return !(ovXorS || zf)
	case 0x7: // LES
		return ovXorS || zf
	case 0x8: // NE
		return !zf
	case 0x9: // EQ
		return zf
	case 0xA: // NV
		return !ovf
	case 0xB: // OV
		return ovf
	case 0xC: // PS
		return !sf
	case 0xD: // NS
		return sf
	case 0xE: // AL
		return true
	default:
		return false
	}
}

func opBranchCadr(c *CPU, word uint16) Status {
	if word&0x00F0 != 0 {
		return StatusIllegalInstruction
	}
	addr := c.fetchCodeWord()
	c.reg.CSR = uint8(operandDst(word))
	c.reg.PC = addr & 0xFFFE
	c.cycleCount += 2 + c.eaIncDelay
	return StatusOK
}

// opBranchLinkCadr links before jumping. LR is captured right after
// fetchCodeWord advances PC past the address operand, which is already
// the correct return address — no further adjustment needed.
func opBranchLinkCadr(c *CPU, word uint16) Status {
	if word&0x00F0 != 0 {
		return StatusIllegalInstruction
	}
	addr := c.fetchCodeWord()
	c.reg.LR = c.reg.PC
	c.reg.LCSR = c.reg.CSR
	c.reg.CSR = uint8(operandDst(word))
	c.reg.PC = addr & 0xFFFE
	c.cycleCount += 2 + c.eaIncDelay
	return StatusOK
}

func opBranchER(c *CPU, word uint16) Status {
	if word&0x0F10 != 0 {
		return StatusIllegalInstruction
	}
	target := c.reg.ER(operandSrc(word) &^ 1)
	c.reg.PC = target & 0xFFFE
	c.cycleCount += 2 + c.eaIncDelay
	return StatusOK
}

func opBranchLinkER(c *CPU, word uint16) Status {
	if word&0x0F10 != 0 {
		return StatusIllegalInstruction
	}
	c.reg.LR = c.reg.PC
	c.reg.LCSR = c.reg.CSR
	target := c.reg.ER(operandSrc(word) &^ 1)
	c.reg.PC = target & 0xFFFE
	c.cycleCount += 2 + c.eaIncDelay
	return StatusOK
}
