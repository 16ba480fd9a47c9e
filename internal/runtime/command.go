package runtime

import "gones/internal/input"

// Command is sent from the UI goroutine to the console goroutine.
// Commands never block the sender: Send enqueues onto a buffered
// channel and drops silently if the console has fallen behind, the
// same fire-and-forget contract crossbeam_channel gives the original
// AppControl senders.
type Command interface {
	isCommand()
}

// LoadROM requests the console load a new cartridge image.
type LoadROM struct{ Data []byte }

// Reset requests a full console reset (equivalent to pressing the
// reset button on the front of the machine).
type Reset struct{}

// Pause toggles whether the console advances time at all.
type Pause struct{ Paused bool }

// SetButton updates one controller button's state.
type SetButton struct {
	Controller int
	Button     input.Button
	Pressed    bool
}

// SetChannelMute mutes or unmutes one APU channel.
type SetChannelMute struct {
	Channel ApuChannel
	Muted   bool
}

// ApuChannel names one of the five APU voices for muting.
type ApuChannel int

const (
	ChannelPulse1 ApuChannel = iota
	ChannelPulse2
	ChannelTriangle
	ChannelNoise
	ChannelDMC
)

func (LoadROM) isCommand()        {}
func (Reset) isCommand()          {}
func (Pause) isCommand()          {}
func (SetButton) isCommand()      {}
func (SetChannelMute) isCommand() {}
