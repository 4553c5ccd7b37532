package u8core

import "encoding/binary"

// Registers holds the programmer-visible state of the nX-U8/U16 core.
//
// GR is the single owned 16-byte general-register bank. R0-R15, ER0-ER14
// and XR0/XR4/XR8/XR12 and QR0/QR8 are little-endian overlays of this one
// buffer, not independent storage: a write through any view must be
// observable through every other view immediately (spec.md section 4.1,
// section 9 "cyclic register aliasing").
type Registers struct {
	GR [16]byte

	CSR   uint8 // code segment register (4 bits used)
	DSR   uint8 // data segment register (4 bits used)
	LCSR  uint8 // link CSR, the tier-0 counterpart of ECSR1-3
	ECSR1 uint8
	ECSR2 uint8
	ECSR3 uint8

	PC   uint16
	LR   uint16
	ELR1 uint16
	ELR2 uint16
	ELR3 uint16

	EA uint16
	SP uint16

	PSW   uint8
	EPSW1 uint8
	EPSW2 uint8
	EPSW3 uint8
}

// PSW bitfields: {C, Z, S, OV, MIE, HC, ELevel[2]}.
const (
	pswELevelMask uint8 = 0x03
	pswHC         uint8 = 1 << 2
	pswMIE        uint8 = 1 << 3
	pswOV         uint8 = 1 << 4
	pswS          uint8 = 1 << 5
	pswZ          uint8 = 1 << 6
	pswC          uint8 = 1 << 7
)

// flagC etc. report the named PSW bit.
func (r *Registers) flagC() bool  { return r.PSW&pswC != 0 }
func (r *Registers) flagZ() bool  { return r.PSW&pswZ != 0 }
func (r *Registers) flagS() bool  { return r.PSW&pswS != 0 }
func (r *Registers) flagOV() bool { return r.PSW&pswOV != 0 }
func (r *Registers) flagHC() bool { return r.PSW&pswHC != 0 }
func (r *Registers) flagMIE() bool {
	return r.PSW&pswMIE != 0
}

// ELevel returns the current exception tier (0-3).
func (r *Registers) ELevel() uint8 { return r.PSW & pswELevelMask }

// setELevel replaces the ELevel field in place, preserving the flag bits.
func (r *Registers) setELevel(tier uint8) {
	r.PSW = (r.PSW &^ pswELevelMask) | (tier & pswELevelMask)
}

// setFlag sets or clears a single PSW bit.
func (r *Registers) setFlag(bit uint8, on bool) {
	if on {
		r.PSW |= bit
	} else {
		r.PSW &^= bit
	}
}

// R returns the value of 8-bit general register n (0-15).
func (r *Registers) R(n int) uint8 { return r.GR[n] }

// SetR stores an 8-bit value into general register n.
func (r *Registers) SetR(n int, v uint8) { r.GR[n] = v }

// ER returns the value of 16-bit register pair n (n must be even, 0-14),
// read little-endian from the shared GR bank.
func (r *Registers) ER(n int) uint16 {
	return binary.LittleEndian.Uint16(r.GR[n : n+2])
}

// SetER stores a 16-bit value into register pair n (n must be even).
func (r *Registers) SetER(n int, v uint16) {
	binary.LittleEndian.PutUint16(r.GR[n:n+2], v)
}

// XR returns the value of 32-bit register quad n (n in {0,4,8,12}).
func (r *Registers) XR(n int) uint32 {
	return binary.LittleEndian.Uint32(r.GR[n : n+4])
}

// SetXR stores a 32-bit value into register quad n (n in {0,4,8,12}).
func (r *Registers) SetXR(n int, v uint32) {
	binary.LittleEndian.PutUint32(r.GR[n:n+4], v)
}

// QR returns the value of 64-bit register octet n (n in {0,8}).
func (r *Registers) QR(n int) uint64 {
	return binary.LittleEndian.Uint64(r.GR[n : n+8])
}

// SetQR stores a 64-bit value into register octet n (n in {0,8}).
func (r *Registers) SetQR(n int, v uint64) {
	binary.LittleEndian.PutUint64(r.GR[n:n+8], v)
}

// elrAt, ecsrAt and epswAt return pointers to the save/restore register
// for the given exception tier (0-3), per spec.md section 3's invariant
// on PSW.ELevel selecting which of (LR|ELR1|ELR2|ELR3) etc. is "current".
func (r *Registers) elrAt(tier uint8) *uint16 {
	switch tier {
	case 1:
		return &r.ELR1
	case 2:
		return &r.ELR2
	case 3:
		return &r.ELR3
	default:
		return &r.LR
	}
}

func (r *Registers) ecsrAt(tier uint8) *uint8 {
	switch tier {
	case 1:
		return &r.ECSR1
	case 2:
		return &r.ECSR2
	case 3:
		return &r.ECSR3
	default:
		return &r.LCSR
	}
}

// epswAt returns nil at tier 0: there is no EPSW shadow to save or
// restore outside a nested exception, per spec.md section 3.
func (r *Registers) epswAt(tier uint8) *uint8 {
	switch tier {
	case 1:
		return &r.EPSW1
	case 2:
		return &r.EPSW2
	case 3:
		return &r.EPSW3
	default:
		return nil
	}
}

// currentELR, currentECSR and currentEPSW select the register for the
// current PSW.ELevel; they are used by save/restore instructions that operate on "whatever
// is current" rather than a specific tier.
func (r *Registers) currentELR() *uint16 { return r.elrAt(r.ELevel()) }
func (r *Registers) currentECSR() *uint8 { return r.ecsrAt(r.ELevel()) }
func (r *Registers) currentEPSW() *uint8 { return r.epswAt(r.ELevel()) }

// Zero resets every architectural register to 0 (coreZero, spec.md section 3).
func (r *Registers) Zero() {
	*r = Registers{}
}
