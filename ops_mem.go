package u8core

// ops_mem.go covers the data load/store families: byte/word/dword/qword
// via [ERm], [adr], [EA], [EA+] (0x90-0x97), 16-bit-displacement byte and
// word loads (0x98-0x99, 0xA8-0xA9), and BP/FP 6-bit-displacement word
// and byte loads (0xB0-0xBF, 0xD0-0xDF) — spec.md section 4.7.

func registerMemOps() {
	opcodeTable[0x90] = opLoadByteIndirect
	opcodeTable[0x91] = opStoreByteIndirect
	opcodeTable[0x92] = opLoadWordIndirect
	opcodeTable[0x93] = opStoreWordIndirect
	opcodeTable[0x94] = opLoadDWordEA
	opcodeTable[0x95] = opStoreDWordEA
	opcodeTable[0x96] = opLoadQWordEA
	opcodeTable[0x97] = opStoreQWordEA
	opcodeTable[0x98] = opLoadByteDisp16
	opcodeTable[0x99] = opStoreByteDisp16
	opcodeTable[0xA8] = opLoadWordDisp16
	opcodeTable[0xA9] = opStoreWordDisp16

	for n := 0; n < 16; n++ {
		opcodeTable[0xB0|n] = opWordDisp6BPFP
		opcodeTable[0xD0|n] = opByteDisp6BPFP
	}
}

// signExtend sign-extends the low `bits` bits of num to a full 16-bit
// value.
func signExtend(num uint16, bits uint8) uint16 {
	shift := 16 - bits
	return uint16(int16(num<<shift) >> shift)
}

func opLoadByteIndirect(c *CPU, word uint16) Status {
	var src uint16
	switch {
	case word&0x0010 == 0:
		// L Rn, [ERm]
		src = c.reg.ER(operandSrc(word) &^ 1)
		c.cycleCount += c.eaIncDelay
	case word&0xF0FF == 0x9010:
		// L Rn, [adr]
		src = c.fetchCodeWord()
		c.cycleCount += c.eaIncDelay
	case word&0xF0FF == 0x9030:
		// L Rn, [EA]
		src = c.reg.EA
	case word&0xF0FF == 0x9050:
		// L Rn, [EA+]
		src = c.reg.EA
		c.reg.EA++
		c.usedEAInc = true
	default:
		return StatusIllegalInstruction
	}

	v := uint8(c.dataRead(src, 1))
	c.cycleCount += 1
	z, s := zsFlags(uint64(v), SizeByte)
	c.setZS(z, s)
	c.reg.SetR(operandDst(word), v)
	return StatusOK
}

func opStoreByteIndirect(c *CPU, word uint16) Status {
	var dst uint16
	switch {
	case word&0x0010 == 0:
		// ST Rn, [ERm]
		dst = c.reg.ER(operandSrc(word) &^ 1)
		c.cycleCount += c.eaIncDelay
	case word&0xF0FF == 0x9011:
		// ST Rn, [adr]
		dst = c.fetchCodeWord()
		c.cycleCount += c.eaIncDelay
	case word&0xF0FF == 0x9031:
		// ST Rn, [EA]
		dst = c.reg.EA
	case word&0xF0FF == 0x9051:
		// ST Rn, [EA+]
		dst = c.reg.EA
		c.reg.EA++
		c.usedEAInc = true
	default:
		return StatusIllegalInstruction
	}

	c.dataWrite(dst, 1, uint64(c.reg.R(operandDst(word))))
	c.cycleCount += 1
	return StatusOK
}

func opLoadWordIndirect(c *CPU, word uint16) Status {
	var src uint16
	switch {
	case word&0x0110 == 0:
		// L ERn, [ERm]
		src = c.reg.ER(operandSrc(word) &^ 1)
		c.cycleCount += c.eaIncDelay
	case word&0xF1FF == 0x9012:
		src = c.fetchCodeWord()
		c.cycleCount += c.eaIncDelay
	case word&0xF1FF == 0x9032:
		src = c.reg.EA
	case word&0xF1FF == 0x9052:
		src = c.reg.EA
		c.reg.EA = (c.reg.EA + 2) & 0xFFFE
		c.usedEAInc = true
	default:
		return StatusIllegalInstruction
	}

	v := uint16(c.dataRead(src, 2))
	c.cycleCount += 2
	z, s := zsFlags(uint64(v), SizeWord)
	c.setZS(z, s)
	c.reg.SetER(operandDst(word)&^1, v)
	return StatusOK
}

func opStoreWordIndirect(c *CPU, word uint16) Status {
	var dst uint16
	switch {
	case word&0x0110 == 0:
		dst = c.reg.ER(operandSrc(word) &^ 1)
		c.cycleCount += c.eaIncDelay
	case word&0xF1FF == 0x9013:
		dst = c.fetchCodeWord()
		c.cycleCount += c.eaIncDelay
	case word&0xF1FF == 0x9033:
		dst = c.reg.EA
	case word&0xF1FF == 0x9053:
		dst = c.reg.EA
		c.reg.EA = (c.reg.EA + 2) & 0xFFFE
		c.usedEAInc = true
	default:
		return StatusIllegalInstruction
	}

	c.dataWrite(dst, 2, uint64(c.reg.ER(operandDst(word)&^1)))
	c.cycleCount += 2
	return StatusOK
}

func opLoadDWordEA(c *CPU, word uint16) Status {
	src := c.reg.EA
	switch word & 0xF3FF {
	case 0x9034:
	case 0x9054:
		c.reg.EA = (c.reg.EA + 4) & 0xFFFE
		c.usedEAInc = true
	default:
		return StatusIllegalInstruction
	}
	v := uint32(c.dataRead(src, 4))
	c.cycleCount += 4
	z, s := zsFlags(uint64(v), SizeDWord)
	c.setZS(z, s)
	c.reg.SetXR(operandDst(word)&^3, v)
	return StatusOK
}

func opStoreDWordEA(c *CPU, word uint16) Status {
	dst := c.reg.EA
	switch word & 0xF3FF {
	case 0x9035:
	case 0x9055:
		c.reg.EA = (c.reg.EA + 4) & 0xFFFE
		c.usedEAInc = true
	default:
		return StatusIllegalInstruction
	}
	c.dataWrite(dst, 4, uint64(c.reg.XR(operandDst(word)&^3)))
	c.cycleCount += 4
	return StatusOK
}

func opLoadQWordEA(c *CPU, word uint16) Status {
	src := c.reg.EA
	switch word & 0xF7FF {
	case 0x9036:
	case 0x9056:
		c.reg.EA = (c.reg.EA + 8) & 0xFFFE
		c.usedEAInc = true
	default:
		return StatusIllegalInstruction
	}
	v := c.dataRead(src, 8)
	c.cycleCount += 8
	z, s := zsFlags(v, SizeQWord)
	c.setZS(z, s)
	c.reg.SetQR(operandDst(word)&^7, v)
	return StatusOK
}

func opStoreQWordEA(c *CPU, word uint16) Status {
	dst := c.reg.EA
	switch word & 0xF7FF {
	case 0x9037:
	case 0x9057:
		c.reg.EA = (c.reg.EA + 8) & 0xFFFE
		c.usedEAInc = true
	default:
		return StatusIllegalInstruction
	}
	c.dataWrite(dst, 8, c.reg.QR(operandDst(word)&^7))
	c.cycleCount += 8
	return StatusOK
}

func opLoadByteDisp16(c *CPU, word uint16) Status {
	if word&0xF01F != 0x9008 {
		return StatusIllegalInstruction
	}
	base := c.reg.ER(operandSrc(word) &^ 1)
	disp := c.fetchCodeWord()
	addr := (base + disp) & 0xFFFF
	v := uint8(c.dataRead(addr, 1))
	c.reg.SetR(operandDst(word), v)
	c.cycleCount += 2 + c.eaIncDelay
	return StatusOK
}

func opStoreByteDisp16(c *CPU, word uint16) Status {
	if word&0xF01F != 0x9009 {
		return StatusIllegalInstruction
	}
	base := c.reg.ER(operandSrc(word) &^ 1)
	disp := c.fetchCodeWord()
	addr := (base + disp) & 0xFFFF
	c.dataWrite(addr, 1, uint64(c.reg.R(operandDst(word))))
	c.cycleCount += 2 + c.eaIncDelay
	return StatusOK
}

func opLoadWordDisp16(c *CPU, word uint16) Status {
	if word&0xF11F != 0xA008 {
		return StatusIllegalInstruction
	}
	base := c.reg.ER(operandSrc(word) &^ 1)
	disp := c.fetchCodeWord()
	addr := (base + disp) & 0xFFFF
	v := uint16(c.dataRead(addr, 2))
	c.reg.SetER(operandDst(word)&^1, v)
	c.cycleCount += 3 + c.eaIncDelay
	return StatusOK
}

func opStoreWordDisp16(c *CPU, word uint16) Status {
	if word&0xF11F != 0xA009 {
		return StatusIllegalInstruction
	}
	base := c.reg.ER(operandSrc(word) &^ 1)
	disp := c.fetchCodeWord()
	addr := (base + disp) & 0xFFFF
	c.dataWrite(addr, 2, uint64(c.reg.ER(operandDst(word)&^1)))
	c.cycleCount += 3 + c.eaIncDelay
	return StatusOK
}

// opWordDisp6BPFP handles L/ST ERn, disp6[BP|FP] (0xB0-0xBF): bits 6-8
// select among the four variants.
func opWordDisp6BPFP(c *CPU, word uint16) Status {
	disp := signExtend(word&0x003F, 6)
	dst := operandDst(word) &^ 1

	switch word & 0x01C0 {
	case 0x0000:
		addr := (c.reg.ER(12) + disp) & 0xFFFF
		v := uint16(c.dataRead(addr, 2))
		c.reg.SetER(dst, v)
	case 0x0040:
		addr := (c.reg.ER(14) + disp) & 0xFFFF
		v := uint16(c.dataRead(addr, 2))
		c.reg.SetER(dst, v)
	case 0x0080:
		addr := (c.reg.ER(12) + disp) & 0xFFFF
		c.dataWrite(addr, 2, uint64(c.reg.ER(dst)))
	case 0x00C0:
		addr := (c.reg.ER(14) + disp) & 0xFFFF
		c.dataWrite(addr, 2, uint64(c.reg.ER(dst)))
	default:
		return StatusIllegalInstruction
	}
	c.cycleCount += 3 + c.eaIncDelay
	return StatusOK
}

// opByteDisp6BPFP handles L/ST Rn, disp6[BP|FP] (0xD0-0xDF).
func opByteDisp6BPFP(c *CPU, word uint16) Status {
	disp := signExtend(word&0x003F, 6)
	dst := operandDst(word)

	switch word & 0x00C0 {
	case 0x0000:
		addr := (c.reg.ER(12) + disp) & 0xFFFF
		v := uint8(c.dataRead(addr, 1))
		c.reg.SetR(dst, v)
	case 0x0040:
		addr := (c.reg.ER(14) + disp) & 0xFFFF
		v := uint8(c.dataRead(addr, 1))
		c.reg.SetR(dst, v)
	case 0x0080:
		addr := (c.reg.ER(12) + disp) & 0xFFFF
		c.dataWrite(addr, 1, uint64(c.reg.R(dst)))
	case 0x00C0:
		addr := (c.reg.ER(14) + disp) & 0xFFFF
		c.dataWrite(addr, 1, uint64(c.reg.R(dst)))
	default:
		return StatusIllegalInstruction
	}
	c.cycleCount += 3 + c.eaIncDelay
	return StatusOK
}
