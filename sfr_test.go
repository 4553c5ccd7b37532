package u8core

import "testing"

func newTestSFR(kbd KeyboardSource) (*SFRDispatcher, *Standby, *uint8) {
	var dsr uint8
	standby := &Standby{}
	return NewSFRDispatcher(&dsr, standby, kbd), standby, &dsr
}

func TestSFRDSRMirrors(t *testing.T) {
	s, _, dsr := newTestSFR(stubKeyboardSource{})
	s.Write(sfrDSR, 0x07)
	if *dsr != 0x07 {
		t.Errorf("mirrored DSR = %#x, want 0x07", *dsr)
	}
	if v, _ := s.Read(sfrDSR); v != 0x07 {
		t.Errorf("Read(sfrDSR) = %#x, want 0x07", v)
	}
}

func TestSFRSTPACPKnockThenSBYCONEntersStop(t *testing.T) {
	s, standby, _ := newTestSFR(stubKeyboardSource{})
	s.Write(sfrSTPACP, 0x50)
	s.Write(sfrSTPACP, 0xA0)
	s.Write(sfrSBYCON, 0x02)
	if standby.State() != StandbyStop {
		t.Errorf("standby state = %v, want STOP", standby.State())
	}
}

func TestSFRSTPACPWrongOrderDoesNotArm(t *testing.T) {
	s, standby, _ := newTestSFR(stubKeyboardSource{})
	s.Write(sfrSTPACP, 0xA0) // wrong first byte
	s.Write(sfrSTPACP, 0x50)
	s.Write(sfrSTPACP, 0xA0)
	s.Write(sfrSBYCON, 0x02)
	if standby.State() != StandbyStop {
		t.Errorf("standby state = %v, want STOP after a correct retry", standby.State())
	}

	s2, standby2, _ := newTestSFR(stubKeyboardSource{})
	s2.Write(sfrSTPACP, 0x50)
	s2.Write(sfrSBYCON, 0x02) // no 0xA0 second knock
	if standby2.State() == StandbyStop {
		t.Errorf("standby entered STOP without completing the knock sequence")
	}
}

func TestSFRSBYCONBit0EntersHalt(t *testing.T) {
	s, standby, _ := newTestSFR(stubKeyboardSource{})
	s.Write(sfrSBYCON, 0x01)
	if standby.State() != StandbyHalt {
		t.Errorf("standby state = %v, want HALT", standby.State())
	}
}

func TestSFRKeyboardScanOnKOWriteRaisesIRQ(t *testing.T) {
	// The scan latches KI = 0 (all keys held) against an unmasked KIM0, so the
	// write should raise IRQ0 bit 1.
	s, _, _ := newTestSFR(fixedKeyboardSource{ki: 0x0000})
	s.Write(sfrKIM0, 0xFF)
	s.Write(sfrKIM1, 0xFF)
	s.Write(sfrKO0, 0xFF)
	if irq, _ := s.Read(sfrIRQ0); irq&irqBitKeyboard == 0 {
		t.Errorf("IRQ0 = %#x, want keyboard bit set", irq)
	}
}

func TestSFRKIWritesAreDiscarded(t *testing.T) {
	s, _, _ := newTestSFR(fixedKeyboardSource{ki: 0x1234})
	s.Write(sfrKO0, 0xFF) // latch the scan result into KI0/KI1
	wantKI1, _ := s.Read(sfrKI1)

	s.Write(sfrKI0, 0xAA)
	s.Write(sfrKI1, 0xBB)

	if v, _ := s.Read(sfrKI0); v != 0xE7 {
		t.Errorf("Read(sfrKI0) = %#x, want the fixed 0xE7 quirk, unaffected by the write", v)
	}
	if v, _ := s.Read(sfrKI1); v != wantKI1 {
		t.Errorf("Read(sfrKI1) = %#x, want the scanned value %#x, unaffected by the write", v, wantKI1)
	}
}

func TestSFRExtensionFallback(t *testing.T) {
	s, _, _ := newTestSFR(stubKeyboardSource{})
	s.SetExtension(stubExtension{})
	s.Write(0x080, 0x42)
	if v, _ := s.Read(0x080); v != 0x99 {
		t.Errorf("Read(0x080) = %#x, want 0x99 from the extension", v)
	}
}

type stubExtension struct{}

func (stubExtension) ReadSFR(offset uint16) (byte, bool)  { return 0x99, true }
func (stubExtension) WriteSFR(offset uint16, value byte) bool { return true }
