package dma

// Dmc is the DMC channel's sample-fetch DMA: a 4-cycle CPU stall that
// fetches one byte from the address the DMC's reader advanced to. The
// APU calls Request when its sample buffer empties; the bus starts the
// stall with Begin on the next cycle boundary it controls and calls
// Step once per stolen CPU cycle until it gets the byte back.
type Dmc struct {
	hasRequest bool
	reqAddr    uint16

	active     bool
	cyclesLeft uint8
	activeAddr uint16
}

// Request latches a pending sample fetch at addr. A request already
// pending, or a transfer already active, is left alone — the DMC only
// ever has one outstanding fetch.
func (d *Dmc) Request(addr uint16) {
	if !d.hasRequest && !d.active {
		d.hasRequest = true
		d.reqAddr = addr
	}
}

// Pending reports whether a fetch is latched and waiting for Begin.
func (d *Dmc) Pending() bool { return d.hasRequest }

// Active reports whether the stall is in progress.
func (d *Dmc) Active() bool { return d.active }

// Begin promotes a pending request into an active 4-cycle stall.
func (d *Dmc) Begin() {
	if d.active || !d.hasRequest {
		return
	}
	d.active = true
	d.activeAddr = d.reqAddr
	d.hasRequest = false
	d.cyclesLeft = 4
}

// Step advances the stall by one CPU cycle. It returns the address to
// read and true on the final stolen cycle, or (0, false) otherwise.
func (d *Dmc) Step() (uint16, bool) {
	if !d.active {
		return 0, false
	}

	d.cyclesLeft--
	if d.cyclesLeft == 0 {
		d.active = false
		return d.activeAddr, true
	}
	return 0, false
}
