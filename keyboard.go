package u8core

// Keyboard models the matrix scanner: writes to KO (masked by KOM)
// trigger a scan against the host-supplied KeyboardSource, latching the
// result into KI and raising IRQ0 bit 1 when any unmasked key reads low
// (spec.md section 4.5).
//
// Unlike Timer, Keyboard's scan logic itself lives on SFRDispatcher
// (scanKeyboardSync/ScanKeyboardAsync) since it must run synchronously
// inside the KO write that triggers it; this type is a thin host-facing
// handle for the asynchronous entry point and interrupt bookkeeping.
type Keyboard struct {
	sfr *SFRDispatcher
}

// NewKeyboard wires a Keyboard to the SFR bytes it reads.
func NewKeyboard(sfr *SFRDispatcher) *Keyboard { return &Keyboard{sfr: sfr} }

// Scan runs the periodic-thread scan (spec.md section 4.5's
// "asynchronous progress" entry point); call from the host's peripheral
// tick loop to catch key transitions the core thread's own KO writes
// would have missed.
func (k *Keyboard) Scan() { k.sfr.ScanKeyboardAsync() }

// PendingInterrupt reports whether the keyboard's IRQ0 bit is both set
// and unmasked by IE0.
func (k *Keyboard) PendingInterrupt() bool {
	irq := k.sfr.rawByte(sfrIRQ0).load()
	ie := k.sfr.rawByte(sfrIE0).load()
	return irq&ie&irqBitKeyboard != 0
}

// ClearInterrupt clears the keyboard's IRQ0 bit once delivered.
func (k *Keyboard) ClearInterrupt() {
	k.sfr.rawByte(sfrIRQ0).and(^byte(irqBitKeyboard))
}

// KeyboardInterruptIndex is the mailbox index the keyboard raises.
const KeyboardInterruptIndex = 0
