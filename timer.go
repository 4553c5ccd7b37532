package u8core

// TimerStep is the per-tick increment applied to the free-running timer
// counter (a compile-time constant on the reference platform).
const TimerStep = 1

// Timer models the single timer channel: a 16-bit counter (TM0C) that
// increments by TimerStep on every Tick while TMSTR0 bit 0 is set,
// reloading and raising IRQ0 bit 5 on reaching TM0D (spec.md section 4.5).
type Timer struct {
	sfr     *SFRDispatcher
	standby *Standby
}

// NewTimer wires a Timer to the SFR bytes it reads and mutates and the
// standby state machine it may wake.
func NewTimer(sfr *SFRDispatcher, standby *Standby) *Timer {
	return &Timer{sfr: sfr, standby: standby}
}

// Tick advances the counter by one step; call from the host's periodic
// peripheral thread (spec.md section 4.5's "asynchronous progress" entry
// point). It is safe to call concurrently with core-thread SFR writes:
// all touched bytes (TM0C, IRQ0) use the dispatcher's atomic byte cells.
func (t *Timer) Tick() {
	if t.sfr.rawByte(sfrTMSTR0).load()&1 == 0 {
		return
	}

	counter := t.sfr.rawWord(sfrTM0C) + TimerStep
	reload := t.sfr.rawWord(sfrTM0D)

	if counter >= reload {
		t.sfr.setRawWord(sfrTM0C, 0)
		t.sfr.rawByte(sfrIRQ0).or(irqBitTimer)
		if t.sfr.rawByte(sfrIE0).load()&irqBitTimer != 0 {
			t.standby.Exit()
		}
		return
	}
	t.sfr.setRawWord(sfrTM0C, counter)
}

// PendingInterrupt reports whether the timer's IRQ0 bit is both set and
// unmasked by IE0 (spec.md section 4.6's producer side of the mailbox).
func (t *Timer) PendingInterrupt() bool {
	irq := t.sfr.rawByte(sfrIRQ0).load()
	ie := t.sfr.rawByte(sfrIE0).load()
	return irq&ie&irqBitTimer != 0
}

// ClearInterrupt clears the timer's IRQ0 bit once delivered.
func (t *Timer) ClearInterrupt() {
	t.sfr.rawByte(sfrIRQ0).and(^byte(irqBitTimer))
}

// TimerInterruptIndex is the mailbox index the timer raises (spec.md
// section 6's vector table, 0x0008 + n*4).
const TimerInterruptIndex = 4
