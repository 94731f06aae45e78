package n64

import (
	"github.com/soar/gcinput/internal/adapter"
	"github.com/soar/gcinput/internal/config"
)

// Remapper applies a configuration to raw controller samples. The
// configuration is copied at construction and never mutated, so a Remapper
// may be shared across goroutines.
type Remapper struct {
	cfg config.Config
}

func NewRemapper(cfg config.Config) *Remapper {
	return &Remapper{cfg: cfg}
}

// State remaps one GameCube sample to N64 controller state.
//
// Digital buttons go through the remapping table directly. The analog
// triggers count as presses of the l/r mappings above the trigger threshold,
// the C stick steers the c_stick_* mappings once outside its deadzone, and
// the control stick feeds the axes through the deadzone and sensitivity
// calibration.
func (r *Remapper) State(c adapter.ControllerState) State {
	var s State
	s.Connected = c.Connected
	if !c.Connected {
		return s
	}

	m := r.cfg.ControllerMapping
	press := func(active bool, target config.Button) {
		if active {
			s.Buttons.Press(target)
		}
	}

	press(c.A, m.A)
	press(c.B, m.B)
	press(c.X, m.X)
	press(c.Y, m.Y)
	press(c.Start, m.Start)
	press(c.Z, m.Z)
	press(c.L || c.TriggerLeft > r.cfg.TriggerThreshold, m.L)
	press(c.R || c.TriggerRight > r.cfg.TriggerThreshold, m.R)
	press(c.Left, m.DPadLeft)
	press(c.Right, m.DPadRight)
	press(c.Down, m.DPadDown)
	press(c.Up, m.DPadUp)

	cx, cy := c.SubstickWithDeadzone(r.cfg.CStickDeadzone)
	press(cx < 0, m.CStickLeft)
	press(cx > 0, m.CStickRight)
	press(cy < 0, m.CStickDown)
	press(cy > 0, m.CStickUp)

	s.StickX, s.StickY = c.StickWithDeadzone(r.cfg.ControlStickDeadzone, r.cfg.ControlStickSensitivity)
	return s
}
