package apu

// Synth is a delta-based resampler: instead of sampling the mixer's
// instantaneous output on a fixed CPU-cycle cadence (which aliases
// badly once the signal's edges don't land on sample boundaries), it
// accumulates signed deltas at their exact CPU-cycle time and
// resolves them into evenly spaced output samples at EndFrame. This
// mirrors the add_delta/step_cpu_cycle/end_frame/read_samples_f32
// contract of a blip_buf-style synthesizer on the standard library
// alone (see DESIGN.md). Each output sample is the accumulated level
// after all deltas that fall before that sample's cycle boundary; no
// interpolation, sinc kernel or other band-limiting filter is applied.
type Synth struct {
	cpuHz      float64
	sampleRate float64

	tCPU    uint32
	level   float64 // accumulated signal level since the last delta
	pending []synthEvent

	out []float32
}

type synthEvent struct {
	tCPU  uint32
	level float64
}

// NewSynth creates a Synth with the given CPU clock and initial output
// sample rate.
func NewSynth(cpuHz float64, sampleRate int) *Synth {
	s := &Synth{cpuHz: cpuHz}
	s.SetRates(cpuHz, sampleRate)
	return s
}

// SetRates reconfigures the clock ratio, clearing any buffered state
// (matching blip_buf's own clear-on-rate-change behavior).
func (s *Synth) SetRates(cpuHz float64, sampleRate int) {
	s.cpuHz = cpuHz
	s.sampleRate = float64(sampleRate)
	s.tCPU = 0
	s.level = 0
	s.pending = s.pending[:0]
	s.out = s.out[:0]
}

// AddDelta records a signed step change in the mixer's output level
// at the current CPU cycle.
func (s *Synth) AddDelta(delta float64) {
	if delta == 0 {
		return
	}
	s.pending = append(s.pending, synthEvent{tCPU: s.tCPU, level: delta})
}

// StepCPUCycle advances the synth's internal CPU-cycle clock by one.
func (s *Synth) StepCPUCycle() {
	s.tCPU++
}

// EndFrame resolves every delta accumulated since the last EndFrame
// into output samples covering exactly s.tCPU CPU cycles, appending
// them to the internal output queue, and resets the cycle clock.
func (s *Synth) EndFrame() {
	clocks := s.tCPU
	if clocks == 0 {
		s.pending = s.pending[:0]
		return
	}

	ratio := s.sampleRate / s.cpuHz
	sampleCount := int(float64(clocks)*ratio) + 1

	level := s.level
	events := s.pending
	ei := 0
	for i := 0; i < sampleCount; i++ {
		cycleBoundary := uint32(float64(i+1) / ratio)
		for ei < len(events) && events[ei].tCPU < cycleBoundary {
			level += events[ei].level
			ei++
		}
		s.out = append(s.out, float32(level))
	}
	for ; ei < len(events); ei++ {
		level += events[ei].level
	}

	s.level = level
	s.pending = s.pending[:0]
	s.tCPU = 0
}

// SamplesAvailable reports how many resolved samples are queued.
func (s *Synth) SamplesAvailable() int { return len(s.out) }

// ReadSamplesF32 copies up to len(out) queued samples into out without
// rescaling them, and returns how many were written.
func (s *Synth) ReadSamplesF32(out []float32) int {
	n := copy(out, s.out)
	s.out = s.out[n:]
	return n
}
