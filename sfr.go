package u8core

import "sync/atomic"

// SFR offsets within the 0xF000-0xF0FF window (spec.md section 4.4).
const (
	sfrDSR    = 0x000
	sfrSTPACP = 0x008
	sfrSBYCON = 0x009
	sfrIE0    = 0x010
	sfrIE1    = 0x011
	sfrIRQ0   = 0x014
	sfrIRQ1   = 0x015
	sfrTM0D   = 0x020 // 16-bit, little-endian at 0x020/0x021
	sfrTM0C   = 0x022 // 16-bit, little-endian at 0x022/0x023
	sfrTMSTR0 = 0x025
	sfrKI0    = 0x040
	sfrKI1    = 0x041
	sfrKIM0   = 0x042
	sfrKIM1   = 0x043
	sfrKOM0   = 0x044
	sfrKOM1   = 0x045
	sfrKO0    = 0x046
	sfrKO1    = 0x047
)

// IRQ0 bit assignments.
const (
	irqBitKeyboard = 1 << 1
	irqBitTimer    = 1 << 5
)

// KeyboardSource is the host-supplied key matrix: given the masked KO
// lines (KO AND NOT KOM), it returns the active-low KI reading. Must be
// reentrant (spec.md section 6).
type KeyboardSource interface {
	GetKI(maskedKO uint16) uint16
}

// SFRExtension lets a host register additional SFR behavior for an
// offset this dispatcher does not special-case (spec.md section 6).
type SFRExtension interface {
	ReadSFR(offset uint16) (byte, bool)
	WriteSFR(offset uint16, value byte) bool
}

// SFRDispatcher maps the 256-byte 0xF000-0xF0FF window to per-SFR
// semantics. Bytes are its own storage, not aliased into the MMU's RAM
// buffer, since several offsets (IRQ0, KI0/1, TM0C) are touched from a
// peripheral thread concurrently with the core thread and need atomic
// access (spec.md section 5).
type SFRDispatcher struct {
	bytes [sfrSize]byte32 // one atomic.Uint32-backed byte per offset; only the low 8 bits are used

	dsr *uint8 // the register DSR this dispatcher must mirror

	standby *Standby
	kbd     KeyboardSource
	ext     SFRExtension

	stpAcceptor int // knock-sequence progress: 0, 1 (saw 0x5X), 2 (armed)
}

// byte32 wraps atomic.Uint32 to store a single byte with lock-free
// read-modify-write bit operations, per spec.md section 5's
// "per-byte atomic fetch_or/fetch_and is sufficient" guidance.
type byte32 struct{ v atomic.Uint32 }

func (b *byte32) load() byte          { return byte(b.v.Load()) }
func (b *byte32) store(val byte)      { b.v.Store(uint32(val)) }
func (b *byte32) or(mask byte) byte   { return byte(b.v.Or(uint32(mask))) }
func (b *byte32) and(mask byte) byte  { return byte(b.v.And(uint32(mask))) }

// NewSFRDispatcher wires a dispatcher to the register it mirrors (DSR),
// the standby state machine, and the keyboard source.
func NewSFRDispatcher(dsr *uint8, standby *Standby, kbd KeyboardSource) *SFRDispatcher {
	return &SFRDispatcher{dsr: dsr, standby: standby, kbd: kbd}
}

// SetExtension installs a host-supplied SFR handler consulted for
// offsets this dispatcher does not special-case.
func (s *SFRDispatcher) SetExtension(ext SFRExtension) { s.ext = ext }

// rawByte/rawWord give Timer/Keyboard direct atomic access to their
// backing bytes without going through Read/Write's side effects.
func (s *SFRDispatcher) rawByte(offset uint16) *byte32 { return &s.bytes[offset] }

func (s *SFRDispatcher) rawWord(offset uint16) uint16 {
	return uint16(s.bytes[offset].load()) | uint16(s.bytes[offset+1].load())<<8
}

func (s *SFRDispatcher) setRawWord(offset uint16, v uint16) {
	s.bytes[offset].store(byte(v))
	s.bytes[offset+1].store(byte(v >> 8))
}

// Read services a data-space read at the given 0-0xFF SFR offset.
func (s *SFRDispatcher) Read(offset uint16) (byte, Status) {
	switch offset {
	case sfrDSR:
		return *s.dsr, MemOK
	case sfrSTPACP:
		return 0, MemOK
	case sfrSBYCON:
		return 0, MemOK
	case sfrTMSTR0:
		return 0, MemOK
	case sfrKI0:
		// The reference firmware reads 0xE7 unconditionally on the low
		// byte; only KI1 reflects the latched scan result.
		return 0xE7, MemOK
	default:
		if s.ext != nil {
			if v, ok := s.ext.ReadSFR(offset); ok {
				return v, MemOK
			}
		}
		return s.bytes[offset].load(), MemOK
	}
}

// Write services a data-space write at the given 0-0xFF SFR offset.
func (s *SFRDispatcher) Write(offset uint16, data byte) Status {
	switch offset {
	case sfrDSR:
		*s.dsr = data
		s.bytes[offset].store(data)
	case sfrSTPACP:
		s.writeSTPACP(data)
	case sfrSBYCON:
		s.writeSBYCON(data)
	case sfrTM0C:
		s.bytes[offset].store(0)
	case sfrTM0C + 1:
		s.bytes[offset].store(0)
	case sfrTMSTR0:
		s.bytes[offset].store(data & 1)
	case sfrKI0, sfrKI1:
		// scan-result registers: read-only, writes discarded.
	case sfrKO0, sfrKO1:
		s.bytes[offset].store(data)
		s.scanKeyboardSync()
	default:
		if s.ext != nil && s.ext.WriteSFR(offset, data) {
			return MemOK
		}
		s.bytes[offset].store(data)
	}
	return MemOK
}

// writeSTPACP advances the two-byte "knock" sequence that arms STOP
// mode: the low nibble is ignored (data masked to its high nibble), the
// first high-nibble 0x5 advances the latch, followed by 0xA completes
// the arm; any other byte resets the latch to 0.
func (s *SFRDispatcher) writeSTPACP(data byte) {
	data &= 0xF0
	switch {
	case s.stpAcceptor == 0 && data == 0x50:
		s.stpAcceptor = 1
	case s.stpAcceptor == 1 && data == 0xA0:
		s.stpAcceptor = 2
	default:
		s.stpAcceptor = 0
	}
}

// writeSBYCON enters HALT on bit 0, or STOP on bit 1 if the STPACP
// knock sequence is armed; the latch is reset only when STOP is entered.
func (s *SFRDispatcher) writeSBYCON(data byte) {
	if data&1 != 0 {
		s.standby.Enter(StandbyHalt)
	}
	if s.stpAcceptor == 2 && data&2 != 0 {
		s.standby.Enter(StandbyStop)
		s.stpAcceptor = 0
	}
}

// scanKeyboardSync runs the keyboard scan triggered by a KO write from
// the core thread (spec.md section 4.5's "synchronous scan" entry point).
func (s *SFRDispatcher) scanKeyboardSync() {
	if s.kbd == nil {
		return
	}
	ko := s.rawWord(sfrKO0)
	kom := s.rawWord(sfrKOM0)
	ki := s.kbd.GetKI(ko &^ kom)
	s.setRawWord(sfrKI0, ki)
	kim := s.rawWord(sfrKIM0)
	if ^ki&kim != 0 {
		s.bytes[sfrIRQ0].or(irqBitKeyboard)
	}
}

// ScanKeyboardAsync is the peripheral-thread entry point: identical scan,
// plus an unconditional standby wake on a detected keypress (spec.md
// section 4.5).
func (s *SFRDispatcher) ScanKeyboardAsync() {
	if s.kbd == nil {
		return
	}
	ko := s.rawWord(sfrKO0)
	kom := s.rawWord(sfrKOM0)
	ki := s.kbd.GetKI(ko &^ kom)
	s.setRawWord(sfrKI0, ki)
	kim := s.rawWord(sfrKIM0)
	if ^ki&kim != 0 {
		s.bytes[sfrIRQ0].or(irqBitKeyboard)
		s.standby.Exit()
	}
}
