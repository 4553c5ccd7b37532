package u8core

import (
	"encoding/binary"
	"errors"
)

// cpuSerializeVersion is incremented whenever the binary layout changes.
const cpuSerializeVersion = 1

// cpuSerializeSize is the number of bytes produced by CPU.Serialize.
// Update this constant whenever the binary layout changes.
const cpuSerializeSize = 1 + 16 + 6 + 10 + 4 + 4 + 1 + 2 + 1 + 4 + 2 + 1 + 1 + 1

// SerializeSize returns the number of bytes needed for Serialize.
func (c *CPU) SerializeSize() int { return cpuSerializeSize }

// Serialize writes the full architectural and hidden-accounting state into
// buf, which must be at least SerializeSize() bytes. The MMU/SFR/timer/
// keyboard wiring is not included; a caller reconstructs those separately
// and calls Deserialize on the resulting CPU to restore the rest.
func (c *CPU) Serialize(buf []byte) error {
	if len(buf) < cpuSerializeSize {
		return errors.New("u8core: serialize buffer too small")
	}

	buf[0] = cpuSerializeVersion
	be := binary.BigEndian
	off := 1

	copy(buf[off:], c.reg.GR[:])
	off += 16

	buf[off] = c.reg.CSR
	buf[off+1] = c.reg.DSR
	buf[off+2] = c.reg.LCSR
	buf[off+3] = c.reg.ECSR1
	buf[off+4] = c.reg.ECSR2
	buf[off+5] = c.reg.ECSR3
	off += 6

	be.PutUint16(buf[off:], c.reg.PC)
	off += 2
	be.PutUint16(buf[off:], c.reg.LR)
	off += 2
	be.PutUint16(buf[off:], c.reg.ELR1)
	off += 2
	be.PutUint16(buf[off:], c.reg.ELR2)
	off += 2
	be.PutUint16(buf[off:], c.reg.ELR3)
	off += 2

	be.PutUint16(buf[off:], c.reg.EA)
	off += 2
	be.PutUint16(buf[off:], c.reg.SP)
	off += 2

	buf[off] = c.reg.PSW
	buf[off+1] = c.reg.EPSW1
	buf[off+2] = c.reg.EPSW2
	buf[off+3] = c.reg.EPSW3
	off += 4

	buf[off] = uint8(c.standby.State())
	off++

	kind, index := c.mailbox.Peek()
	buf[off] = uint8(kind)
	buf[off+1] = index
	off += 2

	buf[off] = boolByte(c.usedEAInc)
	off++

	be.PutUint32(buf[off:], uint32(c.cycleCount))
	off += 4
	be.PutUint16(buf[off:], uint16(c.intMaskCycle))
	off += 2
	buf[off] = uint8(c.nextAccess)
	off++
	buf[off] = uint8(c.eaIncDelay)
	off++
	buf[off] = boolByte(c.setDSR)

	return nil
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// Deserialize restores CPU state from buf, which must be at least
// SerializeSize() bytes. Returns an error if the buffer is too small or
// the version does not match. The MMU/SFR/timer/keyboard/standby
// references are left unchanged; only the fields they own (standby's
// state, the mailbox) are overwritten.
func (c *CPU) Deserialize(buf []byte) error {
	if len(buf) < cpuSerializeSize {
		return errors.New("u8core: deserialize buffer too small")
	}
	if buf[0] != cpuSerializeVersion {
		return errors.New("u8core: unsupported serialize version")
	}

	be := binary.BigEndian
	off := 1

	copy(c.reg.GR[:], buf[off:off+16])
	off += 16

	c.reg.CSR = buf[off]
	c.reg.DSR = buf[off+1]
	c.reg.LCSR = buf[off+2]
	c.reg.ECSR1 = buf[off+3]
	c.reg.ECSR2 = buf[off+4]
	c.reg.ECSR3 = buf[off+5]
	off += 6

	c.reg.PC = be.Uint16(buf[off:])
	off += 2
	c.reg.LR = be.Uint16(buf[off:])
	off += 2
	c.reg.ELR1 = be.Uint16(buf[off:])
	off += 2
	c.reg.ELR2 = be.Uint16(buf[off:])
	off += 2
	c.reg.ELR3 = be.Uint16(buf[off:])
	off += 2

	c.reg.EA = be.Uint16(buf[off:])
	off += 2
	c.reg.SP = be.Uint16(buf[off:])
	off += 2

	c.reg.PSW = buf[off]
	c.reg.EPSW1 = buf[off+1]
	c.reg.EPSW2 = buf[off+2]
	c.reg.EPSW3 = buf[off+3]
	off += 4

	c.standby.Enter(StandbyState(buf[off]))
	off++

	kind, index := InterruptKind(buf[off]), buf[off+1]
	off += 2
	if kind == InterruptNone {
		c.mailbox.Clear()
	} else {
		c.mailbox.Send(kind, index)
	}

	c.usedEAInc = buf[off] != 0
	off++

	c.cycleCount = int(be.Uint32(buf[off:]))
	off += 4
	c.intMaskCycle = int(be.Uint16(buf[off:]))
	off += 2
	c.nextAccess = DataSegmentSource(buf[off])
	off++
	c.eaIncDelay = int(buf[off])
	off++
	c.setDSR = buf[off] != 0

	return nil
}
