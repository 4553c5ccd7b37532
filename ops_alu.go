package u8core

// ops_alu.go covers decode indices 0x00-0x8F (the Rn-op-imm8 and
// Rn-op-Rm families) plus the shift-by-immediate family at 0x9A-0x9E,
// which reuses the same ALU primitives with the count taken from the
// src nibble directly instead of from a register (spec.md section 4.7).

func registerALUOps() {
	for n := 0; n < 16; n++ {
		opcodeTable[0x00|n] = opMovRImm8
		opcodeTable[0x10|n] = opAddRImm8
		opcodeTable[0x20|n] = opAndRImm8
		opcodeTable[0x30|n] = opOrRImm8
		opcodeTable[0x40|n] = opXorRImm8
		opcodeTable[0x50|n] = opCmpcRImm8
		opcodeTable[0x60|n] = opAddcRImm8
		opcodeTable[0x70|n] = opCmpRImm8
	}

	opcodeTable[0x80] = opMovRR
	opcodeTable[0x81] = opAddRR
	opcodeTable[0x82] = opAndRR
	opcodeTable[0x83] = opOrRR
	opcodeTable[0x84] = opXorRR
	opcodeTable[0x85] = opCmpcRR
	opcodeTable[0x86] = opAddcRR
	opcodeTable[0x87] = opCmpRR
	opcodeTable[0x88] = opSubRR
	opcodeTable[0x89] = opSubcRR
	opcodeTable[0x8A] = opSllRR
	opcodeTable[0x8B] = opSllcRR
	opcodeTable[0x8C] = opSrlRR
	opcodeTable[0x8D] = opSrlcRR
	opcodeTable[0x8E] = opSraRR
	opcodeTable[0x8F] = opUnaryDispatch

	opcodeTable[0x9A] = opSllImm
	opcodeTable[0x9B] = opSllcImm
	opcodeTable[0x9C] = opSrlImm
	opcodeTable[0x9D] = opSrlcImm
	opcodeTable[0x9E] = opSraImm
}

// --- 0x00-0x7F: Rn, #imm8 ---

func opMovRImm8(c *CPU, word uint16) Status {
	dst := operandDst(word)
	imm := operandImm8(word)
	c.reg.SetR(dst, imm)
	z, s := zsFlags(uint64(imm), SizeByte)
	c.setZS(z, s)
	c.cycleCount = 1
	return StatusOK
}

func opAddRImm8(c *CPU, word uint16) Status {
	dst := operandDst(word)
	r := ALUAdd(c.reg.R(dst), operandImm8(word), false)
	c.applyFlags(r)
	c.reg.SetR(dst, uint8(r.Result))
	c.cycleCount = 1
	return StatusOK
}

func opAndRImm8(c *CPU, word uint16) Status {
	dst := operandDst(word)
	r := ALUAnd(c.reg.R(dst), operandImm8(word))
	c.setZS(r.Z, r.S)
	c.reg.SetR(dst, uint8(r.Result))
	c.cycleCount = 1
	return StatusOK
}

func opOrRImm8(c *CPU, word uint16) Status {
	dst := operandDst(word)
	r := ALUOr(c.reg.R(dst), operandImm8(word))
	c.setZS(r.Z, r.S)
	c.reg.SetR(dst, uint8(r.Result))
	c.cycleCount = 1
	return StatusOK
}

func opXorRImm8(c *CPU, word uint16) Status {
	dst := operandDst(word)
	r := ALUXor(c.reg.R(dst), operandImm8(word))
	c.setZS(r.Z, r.S)
	c.reg.SetR(dst, uint8(r.Result))
	c.cycleCount = 1
	return StatusOK
}

func opCmpcRImm8(c *CPU, word uint16) Status {
	dst := operandDst(word)
	r := ALUCmpC(c.reg.R(dst), operandImm8(word), c.reg.flagC())
	c.applyFlags(r)
	c.cycleCount = 1
	return StatusOK
}

func opAddcRImm8(c *CPU, word uint16) Status {
	dst := operandDst(word)
	r := ALUAdd(c.reg.R(dst), operandImm8(word), c.reg.flagC())
	c.applyFlags(r)
	c.reg.SetR(dst, uint8(r.Result))
	c.cycleCount = 1
	return StatusOK
}

func opCmpRImm8(c *CPU, word uint16) Status {
	dst := operandDst(word)
	r := ALUCmp(c.reg.R(dst), operandImm8(word))
	c.applyFlags(r)
	c.cycleCount = 1
	return StatusOK
}

// --- 0x80-0x8F: Rn, Rm ---

func opMovRR(c *CPU, word uint16) Status {
	src := c.reg.R(operandSrc(word))
	z, s := zsFlags(uint64(src), SizeByte)
	c.setZS(z, s)
	c.reg.SetR(operandDst(word), src)
	c.cycleCount = 1
	return StatusOK
}

func opAddRR(c *CPU, word uint16) Status {
	dst := operandDst(word)
	r := ALUAdd(c.reg.R(dst), c.reg.R(operandSrc(word)), false)
	c.applyFlags(r)
	c.reg.SetR(dst, uint8(r.Result))
	c.cycleCount = 1
	return StatusOK
}

func opAndRR(c *CPU, word uint16) Status {
	dst := operandDst(word)
	r := ALUAnd(c.reg.R(dst), c.reg.R(operandSrc(word)))
	c.setZS(r.Z, r.S)
	c.reg.SetR(dst, uint8(r.Result))
	c.cycleCount = 1
	return StatusOK
}

func opOrRR(c *CPU, word uint16) Status {
	dst := operandDst(word)
	r := ALUOr(c.reg.R(dst), c.reg.R(operandSrc(word)))
	c.setZS(r.Z, r.S)
	c.reg.SetR(dst, uint8(r.Result))
	c.cycleCount = 1
	return StatusOK
}

func opXorRR(c *CPU, word uint16) Status {
	dst := operandDst(word)
	r := ALUXor(c.reg.R(dst), c.reg.R(operandSrc(word)))
	c.setZS(r.Z, r.S)
	c.reg.SetR(dst, uint8(r.Result))
	c.cycleCount = 1
	return StatusOK
}

func opCmpcRR(c *CPU, word uint16) Status {
	r := ALUCmpC(c.reg.R(operandDst(word)), c.reg.R(operandSrc(word)), c.reg.flagC())
	c.applyFlags(r)
	c.cycleCount = 1
	return StatusOK
}

func opAddcRR(c *CPU, word uint16) Status {
	dst := operandDst(word)
	r := ALUAdd(c.reg.R(dst), c.reg.R(operandSrc(word)), c.reg.flagC())
	c.applyFlags(r)
	c.reg.SetR(dst, uint8(r.Result))
	c.cycleCount = 1
	return StatusOK
}

func opCmpRR(c *CPU, word uint16) Status {
	r := ALUCmp(c.reg.R(operandDst(word)), c.reg.R(operandSrc(word)))
	c.applyFlags(r)
	c.cycleCount = 1
	return StatusOK
}

func opSubRR(c *CPU, word uint16) Status {
	dst := operandDst(word)
	r := ALUSub(c.reg.R(dst), c.reg.R(operandSrc(word)))
	c.applyFlags(r)
	c.reg.SetR(dst, uint8(r.Result))
	c.cycleCount = 1
	return StatusOK
}

func opSubcRR(c *CPU, word uint16) Status {
	dst := operandDst(word)
	r := ALUSubC(c.reg.R(dst), c.reg.R(operandSrc(word)), c.reg.flagC())
	c.applyFlags(r)
	c.reg.SetR(dst, uint8(r.Result))
	c.cycleCount = 1
	return StatusOK
}

func opSllRR(c *CPU, word uint16) Status {
	dst := operandDst(word)
	count := c.reg.R(operandSrc(word)) & 7
	if count != 0 {
		r := ALUSll(c.reg.R(dst), count)
		c.reg.setFlag(pswC, r.C)
		c.reg.SetR(dst, uint8(r.Result))
	}
	c.cycleCount = 1 + c.eaIncDelay
	return StatusOK
}

func opSllcRR(c *CPU, word uint16) Status {
	dst := operandDst(word)
	count := c.reg.R(operandSrc(word)) & 7
	c.doSllc(dst, count)
	c.cycleCount = 1 + c.eaIncDelay
	return StatusOK
}

func opSrlRR(c *CPU, word uint16) Status {
	dst := operandDst(word)
	count := c.reg.R(operandSrc(word)) & 7
	if count != 0 {
		r := ALUSrl(c.reg.R(dst), count)
		c.reg.setFlag(pswC, r.C)
		c.reg.SetR(dst, uint8(r.Result))
	}
	c.cycleCount = 1 + c.eaIncDelay
	return StatusOK
}

func opSrlcRR(c *CPU, word uint16) Status {
	dst := operandDst(word)
	count := c.reg.R(operandSrc(word)) & 7
	c.doSrlc(dst, count)
	c.cycleCount = 1 + c.eaIncDelay
	return StatusOK
}

func opSraRR(c *CPU, word uint16) Status {
	dst := operandDst(word)
	count := c.reg.R(operandSrc(word)) & 7
	if count != 0 {
		r := ALUSra(c.reg.R(dst), count)
		c.reg.setFlag(pswC, r.C)
		c.reg.SetR(dst, uint8(r.Result))
	}
	c.cycleCount = 1 + c.eaIncDelay
	return StatusOK
}

// opUnaryDispatch handles the 0x8F sub-family: EXTBW, DAA, DAS, NEG,
// selected by matching the full word against each instruction's fixed
// bit pattern (spec.md section 4.7; exact masks grounded on original
// core's decode switch).
func opUnaryDispatch(c *CPU, word uint16) Status {
	if word&0xF11F == 0x810F {
		// EXTBW: sign-extend the byte in the src register into the
		// high byte of the dst register.
		dst := operandDst(word)
		src := operandSrc(word)
		v := c.reg.R(src)
		ext := ALUExtbw(v)
		c.reg.SetR(dst, uint8(ext>>8))
		c.setZS(v == 0, v&0x80 != 0)
		c.cycleCount = 1
		return StatusOK
	}

	switch word & 0xF0FF {
	case 0x801F:
		dst := operandDst(word)
		r := ALUDaa(c.reg.R(dst), c.reg.flagC(), c.reg.flagHC())
		c.applyCZSH(r)
		c.reg.SetR(dst, uint8(r.Result))
		c.cycleCount = 1
		return StatusOK
	case 0x803F:
		dst := operandDst(word)
		r := ALUDas(c.reg.R(dst), c.reg.flagC(), c.reg.flagHC())
		c.applyCZSH(r)
		c.reg.SetR(dst, uint8(r.Result))
		c.cycleCount = 1
		return StatusOK
	case 0x805F:
		dst := operandDst(word)
		r := ALUNeg(c.reg.R(dst))
		c.applyFlags(r)
		c.reg.SetR(dst, uint8(r.Result))
		c.cycleCount = 1
		return StatusOK
	default:
		return StatusIllegalInstruction
	}
}

// doSllc and doSrlc implement the double-register shift formula literally
// (no count==0 special case — the source computes these directly and the
// "shift of 0 leaves C unchanged" quirk is documented as applying only to
// the single-register SLL/SRL/SRA forms; see DESIGN.md).
func (c *CPU) doSllc(dst int, count uint8) {
	count &= 7
	combined := uint16(c.reg.R(dst))<<8 | uint16(c.reg.R((dst-1)&0xF))
	combined >>= 8 - count
	c.reg.setFlag(pswC, combined&0x100 != 0)
	c.reg.SetR(dst, uint8(combined))
}

func (c *CPU) doSrlc(dst int, count uint8) {
	count &= 7
	combined := uint16(c.reg.R((dst+1)&0xF))<<9 | uint16(c.reg.R(dst))<<1
	combined >>= count
	c.reg.setFlag(pswC, combined&0x01 != 0)
	combined = (combined >> 1) & 0xFF
	c.reg.SetR(dst, uint8(combined))
}

// --- 0x9A-0x9E: shift-by-immediate (count in the src nibble) ---

func opSllImm(c *CPU, word uint16) Status {
	if word&0x0080 != 0 {
		return StatusIllegalInstruction
	}
	dst := operandDst(word)
	count := uint8(operandSrc(word)) & 7
	if count != 0 {
		r := ALUSll(c.reg.R(dst), count)
		c.reg.setFlag(pswC, r.C)
		c.reg.SetR(dst, uint8(r.Result))
	}
	c.cycleCount = 1 + c.eaIncDelay
	return StatusOK
}

func opSllcImm(c *CPU, word uint16) Status {
	if word&0x0080 != 0 {
		return StatusIllegalInstruction
	}
	dst := operandDst(word)
	c.doSllc(dst, uint8(operandSrc(word)))
	c.cycleCount = 1 + c.eaIncDelay
	return StatusOK
}

func opSrlImm(c *CPU, word uint16) Status {
	if word&0x0080 != 0 {
		return StatusIllegalInstruction
	}
	dst := operandDst(word)
	count := uint8(operandSrc(word)) & 7
	if count != 0 {
		r := ALUSrl(c.reg.R(dst), count)
		c.reg.setFlag(pswC, r.C)
		c.reg.SetR(dst, uint8(r.Result))
	}
	c.cycleCount = 1 + c.eaIncDelay
	return StatusOK
}

func opSrlcImm(c *CPU, word uint16) Status {
	if word&0x0080 != 0 {
		return StatusIllegalInstruction
	}
	dst := operandDst(word)
	c.doSrlc(dst, uint8(operandSrc(word)))
	c.cycleCount = 1 + c.eaIncDelay
	return StatusOK
}

func opSraImm(c *CPU, word uint16) Status {
	if word&0x0080 != 0 {
		return StatusIllegalInstruction
	}
	dst := operandDst(word)
	count := uint8(operandSrc(word)) & 7
	if count != 0 {
		r := ALUSra(c.reg.R(dst), count)
		c.reg.setFlag(pswC, r.C)
		c.reg.SetR(dst, uint8(r.Result))
	}
	c.cycleCount = 1 + c.eaIncDelay
	return StatusOK
}
