package u8core

// ops_stack.go covers the PUSH/POP family at decode index 0xFE: single
// Rn/ERn/XRn/QRn forms, plus the two multi-register "lepa" forms that
// save or restore a selectable subset of (EA, PSW/EPSW, PC+CSR or
// LR+LCSR, ELR+ECSR) in one instruction.

func registerStackOps() {
	opcodeTable[0xFE] = opStackOp
}

func opStackOp(c *CPU, word uint16) Status {
	switch word & 0x00F0 {
	case 0x0000:
		c.reg.SetR(operandDst(word), uint8(c.popValue(1)))
		c.cycleCount += 2 + c.eaIncDelay
		return StatusOK

	case 0x0010:
		if operandDst(word)&0x01 != 0 {
			return StatusIllegalInstruction
		}
		c.reg.SetER(operandDst(word), uint16(c.popValue(2)))
		c.cycleCount += 2 + c.eaIncDelay
		return StatusOK

	case 0x0020:
		if operandDst(word)&0x03 != 0 {
			return StatusIllegalInstruction
		}
		c.reg.SetXR(operandDst(word), uint32(c.popValue(4)))
		c.cycleCount += 4 + c.eaIncDelay
		return StatusOK

	case 0x0030:
		if operandDst(word)&0x07 != 0 {
			return StatusIllegalInstruction
		}
		c.reg.SetQR(operandDst(word), c.popValue(8))
		c.cycleCount += 8 + c.eaIncDelay
		return StatusOK

	case 0x0040:
		c.pushValue(uint64(c.reg.R(operandDst(word))), 1)
		c.cycleCount += 2 + c.eaIncDelay
		return StatusOK

	case 0x0050:
		if operandDst(word)&0x01 != 0 {
			return StatusIllegalInstruction
		}
		c.pushValue(uint64(c.reg.ER(operandDst(word))), 2)
		c.cycleCount += 2 + c.eaIncDelay
		return StatusOK

	case 0x0060:
		if operandDst(word)&0x03 != 0 {
			return StatusIllegalInstruction
		}
		c.pushValue(uint64(c.reg.XR(operandDst(word))), 4)
		c.cycleCount += 4 + c.eaIncDelay
		return StatusOK

	case 0x0070:
		if operandDst(word)&0x07 != 0 {
			return StatusIllegalInstruction
		}
		c.pushValue(c.reg.QR(operandDst(word)), 8)
		c.cycleCount += 8 + c.eaIncDelay
		return StatusOK

	case 0x0080:
		return opPopLepa(c, word)

	case 0x00C0:
		return opPushLepa(c, word)

	default:
		return StatusIllegalInstruction
	}
}

// opPopLepa restores a selectable subset in EA, LR+LCSR, PSW, PC+CSR
// order (the order the original bit-check runs in, not bit order).
func opPopLepa(c *CPU, word uint16) Status {
	sel := operandDst(word)
	var spent int

	if sel&0x01 != 0 {
		c.reg.EA = uint16(c.popValue(2))
		spent += 2
	}
	if sel&0x08 != 0 {
		c.reg.LR = uint16(c.popValue(2))
		c.reg.LCSR = uint8(c.popValue(1))
		spent += 4
	}
	if sel&0x04 != 0 {
		c.reg.PSW = uint8(c.popValue(1))
		spent += 2
	}
	if sel&0x02 != 0 {
		c.reg.PC = uint16(c.popValue(2)) & 0xFFFE
		c.reg.CSR = uint8(c.popValue(1))
		spent += 7
	}

	if spent == 0 {
		c.cycleCount += 1
	} else {
		c.cycleCount += spent + c.eaIncDelay
	}
	return StatusOK
}

// opPushLepa saves a selectable subset in ELR+ECSR, EPSW, LR+CSR, EA
// order.
func opPushLepa(c *CPU, word uint16) Status {
	sel := operandDst(word)
	var spent int

	if sel&0x02 != 0 {
		c.pushValue(uint64(*c.reg.currentECSR()), 1)
		c.pushValue(uint64(*c.reg.currentELR()), 2)
		spent += 4
	}
	if sel&0x04 != 0 {
		if p := c.reg.currentEPSW(); p != nil {
			c.pushValue(uint64(*p), 1)
		}
		spent += 2
	}
	if sel&0x08 != 0 {
		c.pushValue(uint64(c.reg.CSR), 1)
		c.pushValue(uint64(c.reg.LR), 2)
		spent += 4
	}
	if sel&0x01 != 0 {
		c.pushValue(uint64(c.reg.EA), 2)
		spent += 2
	}

	if spent == 0 {
		c.cycleCount += 1
	} else {
		c.cycleCount += spent + c.eaIncDelay
	}
	return StatusOK
}
