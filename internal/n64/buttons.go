// Package n64 turns decoded GameCube controller samples into N64 controller
// state, applying the remapping table and calibration scalars from the
// configuration store.
package n64

import "github.com/soar/gcinput/internal/config"

// Bit positions of the N64 BUTTONS word as the emulator core consumes it.
const (
	bitDPadRight uint32 = 0x0001
	bitDPadLeft  uint32 = 0x0002
	bitDPadDown  uint32 = 0x0004
	bitDPadUp    uint32 = 0x0008
	bitStart     uint32 = 0x0010
	bitZ         uint32 = 0x0020
	bitB         uint32 = 0x0040
	bitA         uint32 = 0x0080
	bitCRight    uint32 = 0x0100
	bitCLeft     uint32 = 0x0200
	bitCDown     uint32 = 0x0400
	bitCUp       uint32 = 0x0800
	bitR         uint32 = 0x1000
	bitL         uint32 = 0x2000
)

// Bit returns the BUTTONS-word bit for a logical button.
func Bit(b config.Button) uint32 {
	switch b {
	case config.ButtonA:
		return bitA
	case config.ButtonB:
		return bitB
	case config.ButtonStart:
		return bitStart
	case config.ButtonZ:
		return bitZ
	case config.ButtonL:
		return bitL
	case config.ButtonR:
		return bitR
	case config.ButtonDPadLeft:
		return bitDPadLeft
	case config.ButtonDPadRight:
		return bitDPadRight
	case config.ButtonDPadDown:
		return bitDPadDown
	case config.ButtonDPadUp:
		return bitDPadUp
	case config.ButtonCLeft:
		return bitCLeft
	case config.ButtonCRight:
		return bitCRight
	case config.ButtonCDown:
		return bitCDown
	case config.ButtonCUp:
		return bitCUp
	}
	return 0
}

// Buttons is the pressed state of every N64 button.
type Buttons struct {
	A         bool `json:"a"`
	B         bool `json:"b"`
	Start     bool `json:"start"`
	Z         bool `json:"z"`
	L         bool `json:"l"`
	R         bool `json:"r"`
	DPadLeft  bool `json:"dpadLeft"`
	DPadRight bool `json:"dpadRight"`
	DPadDown  bool `json:"dpadDown"`
	DPadUp    bool `json:"dpadUp"`
	CLeft     bool `json:"cLeft"`
	CRight    bool `json:"cRight"`
	CDown     bool `json:"cDown"`
	CUp       bool `json:"cUp"`
}

// Press marks a logical button as pressed.
func (b *Buttons) Press(btn config.Button) {
	switch btn {
	case config.ButtonA:
		b.A = true
	case config.ButtonB:
		b.B = true
	case config.ButtonStart:
		b.Start = true
	case config.ButtonZ:
		b.Z = true
	case config.ButtonL:
		b.L = true
	case config.ButtonR:
		b.R = true
	case config.ButtonDPadLeft:
		b.DPadLeft = true
	case config.ButtonDPadRight:
		b.DPadRight = true
	case config.ButtonDPadDown:
		b.DPadDown = true
	case config.ButtonDPadUp:
		b.DPadUp = true
	case config.ButtonCLeft:
		b.CLeft = true
	case config.ButtonCRight:
		b.CRight = true
	case config.ButtonCDown:
		b.CDown = true
	case config.ButtonCUp:
		b.CUp = true
	}
}

// Value packs the pressed buttons into the BUTTONS word.
func (b Buttons) Value() uint32 {
	var v uint32
	press := func(pressed bool, bit uint32) {
		if pressed {
			v |= bit
		}
	}
	press(b.A, bitA)
	press(b.B, bitB)
	press(b.Start, bitStart)
	press(b.Z, bitZ)
	press(b.L, bitL)
	press(b.R, bitR)
	press(b.DPadLeft, bitDPadLeft)
	press(b.DPadRight, bitDPadRight)
	press(b.DPadDown, bitDPadDown)
	press(b.DPadUp, bitDPadUp)
	press(b.CLeft, bitCLeft)
	press(b.CRight, bitCRight)
	press(b.CDown, bitCDown)
	press(b.CUp, bitCUp)
	return v
}
