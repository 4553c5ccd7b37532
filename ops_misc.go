package u8core

// ops_misc.go covers the immediate-operand family at 0xE0-0xEF (MOV/ADD
// ERn,#imm7; ADD SP,#signed8; the DSR prefix; MOV PSW,#u8; EI/DI/RC/SC),
// the ER/XR arithmetic family at 0xF4-0xF9 (MUL, MOV, ADD, CMP, DIV),
// and the three LEA forms at 0xFA-0xFC. The 0xE0-0xEF decode indices all
// share one handler: their low nibble is the low nibble of the
// instruction's own immediate byte, not a distinguishing opcode bit, so
// decodeIndex alone cannot tell the sixteen apart.

func registerMiscOps() {
	for n := 0; n < 16; n++ {
		opcodeTable[0xE0|n] = opImmFamily
	}
	opcodeTable[0xF4] = opMulERRm
	opcodeTable[0xF5] = opMovERERm
	opcodeTable[0xF6] = opAddERERm
	opcodeTable[0xF7] = opCmpERERm
	opcodeTable[0xF9] = opDivERRm
	opcodeTable[0xFA] = opLeaERm
	opcodeTable[0xFB] = opLeaDisp16ERm
	opcodeTable[0xFC] = opLeaDadr
	opcodeTable[0xFD] = opCoprocMov
}

func opImmFamily(c *CPU, word uint16) Status {
	dst := operandDst(word) &^ 1

	if word&0x0180 == 0x0000 {
		// MOV ERn, #imm7 (sign-extended)
		imm7 := signExtend(word&0x007F, 7)
		c.reg.SetER(dst, imm7)
		z, s := zsFlags(uint64(imm7), SizeWord)
		c.setZS(z, s)
		c.cycleCount += 2
		return StatusOK
	}
	if word&0x0180 == 0x0080 {
		// ADD ERn, #imm7 (sign-extended)
		imm7 := signExtend(word&0x007F, 7)
		r := ALUAddW(c.reg.ER(dst), imm7)
		c.reg.SetER(dst, uint16(r.Result))
		c.applyFlags(r)
		c.cycleCount += 2
		return StatusOK
	}

	switch word & 0x0F00 {
	case 0x0100:
		// ADD SP, #signed8
		c.reg.SP += signExtend(uint16(operandImm8(word)), 8)
		c.cycleCount += 2
		return StatusOK

	case 0x0300:
		// _LDSR #imm8
		c.reg.DSR = operandImm8(word)
		c.setDSR = true
		c.cycleCount += 1
		return StatusOK

	case 0x0500:
		// SWI #snum: no software-interrupt vectoring is modeled.
		return StatusUnimplemented

	case 0x0900:
		c.reg.PSW = operandImm8(word)
		c.cycleCount += 1
		return StatusOK

	case 0x0B00:
		// RC/DI are distinguished from an illegal 0x0b00 encoding by the
		// full word, not just this nibble (both keep the family's fixed
		// leading E nibble).
		switch word {
		case 0xEB7F:
			c.reg.setFlag(pswC, false)
			c.cycleCount += 1
			return StatusOK
		case 0xEBF7:
			c.reg.setFlag(pswMIE, false)
			c.cycleCount += 3
			return StatusOK
		default:
			return StatusIllegalInstruction
		}

	case 0x0D00:
		switch word {
		case 0xED08:
			c.reg.setFlag(pswMIE, true)
			c.cycleCount += 1
			return StatusOK
		case 0xED80:
			c.reg.setFlag(pswC, true)
			c.cycleCount += 1
			return StatusOK
		default:
			return StatusIllegalInstruction
		}

	default:
		return StatusIllegalInstruction
	}
}

// opMulERRm computes an 8x8 unsigned multiply into a 16-bit ER result.
// Only Z is set; C, S, OV and HC are left untouched.
func opMulERRm(c *CPU, word uint16) Status {
	if word&0x0100 != 0 {
		return StatusIllegalInstruction
	}
	dst := operandDst(word) &^ 1
	product := uint16(c.reg.R(operandDst(word))) * uint16(c.reg.R(operandSrc(word)))
	c.reg.setFlag(pswZ, product == 0)
	c.reg.SetER(dst, product)
	c.cycleCount += 8
	return StatusOK
}

func opMovERERm(c *CPU, word uint16) Status {
	if word&0x0110 != 0 {
		return StatusIllegalInstruction
	}
	src := c.reg.ER(operandSrc(word) &^ 1)
	z, s := zsFlags(uint64(src), SizeWord)
	c.setZS(z, s)
	c.reg.SetER(operandDst(word)&^1, src)
	c.cycleCount += 2
	return StatusOK
}

func opAddERERm(c *CPU, word uint16) Status {
	if word&0x0110 != 0 {
		return StatusIllegalInstruction
	}
	dst := operandDst(word) &^ 1
	r := ALUAddW(c.reg.ER(dst), c.reg.ER(operandSrc(word)&^1))
	c.reg.SetER(dst, uint16(r.Result))
	c.applyFlags(r)
	c.cycleCount += 2
	return StatusOK
}

// opCmpERERm compares two ER registers, discarding the result. The
// original source stores the comparison's result back into the
// destination register, which would make CMP mutate its operand; that
// is treated as a bug and not reproduced here.
func opCmpERERm(c *CPU, word uint16) Status {
	if word&0x0110 != 0 {
		return StatusIllegalInstruction
	}
	r := ALUCmpW(c.reg.ER(operandDst(word)&^1), c.reg.ER(operandSrc(word)&^1))
	c.applyFlags(r)
	c.cycleCount += 2
	return StatusOK
}

// opDivERRm divides a 16-bit ER by an 8-bit Rm, storing an 8-bit
// remainder back into Rm and a 16-bit quotient into ERn. Dividing by
// zero sets C, leaves the remainder as the low byte of the dividend, and
// forces the quotient to 0xFFFF.
func opDivERRm(c *CPU, word uint16) Status {
	if word&0x0100 != 0 {
		return StatusIllegalInstruction
	}
	dst := operandDst(word) &^ 1
	dividend := c.reg.ER(dst)
	divisor := c.reg.R(operandSrc(word))

	c.reg.setFlag(pswZ, dividend == 0)
	c.cycleCount += 16

	if divisor == 0 {
		c.reg.setFlag(pswC, true)
		c.reg.SetR(operandSrc(word), uint8(dividend))
		c.reg.SetER(dst, 0xFFFF)
		return StatusOK
	}

	c.reg.setFlag(pswC, false)
	c.reg.SetR(operandSrc(word), uint8(dividend%uint16(divisor)))
	c.reg.SetER(dst, dividend/uint16(divisor))
	return StatusOK
}

func opLeaERm(c *CPU, word uint16) Status {
	if word&0x0010 != 0 {
		return StatusIllegalInstruction
	}
	c.reg.EA = c.reg.ER(operandSrc(word) &^ 1)
	c.cycleCount += 1
	return StatusOK
}

func opLeaDisp16ERm(c *CPU, word uint16) Status {
	if word&0x0010 != 0 {
		return StatusIllegalInstruction
	}
	base := c.reg.ER(operandSrc(word) &^ 1)
	disp := c.fetchCodeWord()
	c.reg.EA = (base + disp) & 0xFFFF
	c.cycleCount += 2
	return StatusOK
}

func opLeaDadr(c *CPU, word uint16) Status {
	if word&0x0010 != 0 {
		return StatusIllegalInstruction
	}
	c.reg.EA = c.fetchCodeWord()
	c.cycleCount += 2
	return StatusOK
}

// opCoprocMov (MOV CRn/CERn/CXRn/CQRn, [EA]/[EA+] and their reverse
// forms) is not implemented: no coprocessor register file is modeled.
func opCoprocMov(c *CPU, word uint16) Status {
	return StatusUnimplemented
}
