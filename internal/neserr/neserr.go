// Package neserr collects the error types the emulator core can return
// across package boundaries, so callers (the runtime, the shell, tests)
// can distinguish failure kinds with errors.As instead of string
// matching.
package neserr

import "fmt"

// RomParseError reports a malformed or truncated iNES file.
type RomParseError struct {
	Reason string
}

func (e *RomParseError) Error() string {
	return fmt.Sprintf("rom parse: %s", e.Reason)
}

// UnsupportedMapperError reports an iNES mapper ID this core does not
// implement. The cartridge fails to load rather than silently falling
// back to NROM.
type UnsupportedMapperError struct {
	MapperID uint8
}

func (e *UnsupportedMapperError) Error() string {
	return fmt.Sprintf("unsupported mapper: %d", e.MapperID)
}

// AudioInitError reports failure to stand up the audio output device.
type AudioInitError struct {
	Reason string
}

func (e *AudioInitError) Error() string {
	return fmt.Sprintf("audio init: %s", e.Reason)
}

// BusOpenBusError is not a fatal error but a sentinel value some
// callers (tracing, tests) want to detect: the bus had no driver for
// an address and returned its open-bus latch.
type BusOpenBusError struct {
	Address uint16
}

func (e *BusOpenBusError) Error() string {
	return fmt.Sprintf("open bus read at $%04X", e.Address)
}

// IllegalOpcodeError reports a CPU opcode byte with no entry in the
// documented-or-stable-unofficial instruction table.
type IllegalOpcodeError struct {
	Opcode uint8
	PC     uint16
}

func (e *IllegalOpcodeError) Error() string {
	return fmt.Sprintf("illegal opcode $%02X at $%04X", e.Opcode, e.PC)
}
