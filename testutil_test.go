package u8core

// stubKeyboardSource is a KeyboardSource that reports every key as
// released (active-low lines all high).
type stubKeyboardSource struct{}

func (stubKeyboardSource) GetKI(maskedKO uint16) uint16 { return 0xFFFF }

// fixedKeyboardSource is a KeyboardSource that always returns a
// caller-supplied KI reading, for tests that need a specific key held.
type fixedKeyboardSource struct{ ki uint16 }

func (f fixedKeyboardSource) GetKI(maskedKO uint16) uint16 { return f.ki }

// newTestCPU wires a fully-initialized CPU with the given code and data
// images, for package-level opcode and core-behavior tests.
func newTestCPU(code, data []byte) *CPU {
	var dsrMirror uint8
	standby := &Standby{}
	sfr := NewSFRDispatcher(&dsrMirror, standby, stubKeyboardSource{})
	mmu := NewMMU(sfr)
	mmu.Init(code, data)
	timer := NewTimer(sfr, standby)
	kbd := NewKeyboard(sfr)
	return NewCPU(mmu, sfr, timer, kbd, standby)
}

// codeWords packs a sequence of 16-bit code words into a little-endian
// byte image suitable for newTestCPU/mmu.Init.
func codeWords(words ...uint16) []byte {
	out := make([]byte, len(words)*2)
	for i, w := range words {
		out[i*2] = byte(w)
		out[i*2+1] = byte(w >> 8)
	}
	return out
}
