// Package dma implements the two DMA controllers that steal CPU cycles
// on the NES: OAM DMA (triggered by a write to $4014) and DMC DMA
// (triggered by the APU's delta-modulation channel refilling its
// sample buffer). Both are driven one CPU cycle at a time by the bus,
// which calls Step and acts on the returned operation.
package dma

// OamOpKind tags what the bus should do on this cycle of an OAM
// transfer.
type OamOpKind uint8

const (
	// OamOpNone means the CPU is not stalled this cycle; the bus
	// should not call Oam.Step again until a new transfer starts.
	OamOpNone OamOpKind = iota
	// OamOpDummy is an idle stall cycle (the alignment cycle, plus
	// the extra cycle charged when DMA starts on an odd CPU cycle).
	OamOpDummy
	// OamOpRead means the bus should read Address and hold it in a
	// latch for the following write cycle.
	OamOpRead
	// OamOpWrite means the bus should write the latched byte to the
	// next sequential OAM slot.
	OamOpWrite
)

// OamResult is what Oam.Step returns for one CPU cycle.
type OamResult struct {
	Kind    OamOpKind
	Address uint16 // valid when Kind == OamOpRead
}

// Oam is the $4014 OAM DMA state machine: a 256-iteration read/write
// pump, sourced from one CPU page, that steals 513 or 514 CPU cycles
// (514 if the transfer starts on an odd CPU cycle, to align the first
// read with the even half of the cycle pair).
type Oam struct {
	active     bool
	page       uint8
	cycle      uint16
	needsDummy bool
}

// Active reports whether a transfer is in progress and the CPU should
// stay stalled.
func (o *Oam) Active() bool { return o.active }

// Start begins a transfer reading from page*0x100. cpuOddCycle is
// whether the CPU cycle on which $4014 was written is odd; if so an
// extra alignment dummy cycle is inserted before the first read.
func (o *Oam) Start(page uint8, cpuOddCycle bool) {
	o.active = true
	o.page = page
	o.cycle = 0
	o.needsDummy = cpuOddCycle
}

// Step advances the transfer by one CPU cycle and reports what the bus
// should do. Call it once per stalled CPU cycle; it clears Active once
// the 256th byte has been written.
func (o *Oam) Step() OamResult {
	if !o.active {
		return OamResult{Kind: OamOpNone}
	}

	if o.needsDummy {
		o.needsDummy = false
		return OamResult{Kind: OamOpDummy}
	}

	phase := o.cycle & 1
	index := o.cycle >> 1

	var result OamResult
	if phase == 0 {
		result = OamResult{Kind: OamOpRead, Address: (uint16(o.page) << 8) | index}
	} else {
		result = OamResult{Kind: OamOpWrite}
	}

	o.cycle++

	if index == 255 && phase == 1 {
		o.active = false
	}

	return result
}
