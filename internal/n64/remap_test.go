package n64

import (
	"testing"

	"github.com/soar/gcinput/internal/adapter"
	"github.com/soar/gcinput/internal/config"
)

func neutralSample() adapter.ControllerState {
	return adapter.ControllerState{
		Connected: true,
		StickX:    128, StickY: 128,
		SubstickX: 128, SubstickY: 128,
	}
}

func TestBitPatterns(t *testing.T) {
	want := map[config.Button]uint32{
		config.ButtonDPadRight: 0x0001,
		config.ButtonDPadLeft:  0x0002,
		config.ButtonDPadDown:  0x0004,
		config.ButtonDPadUp:    0x0008,
		config.ButtonStart:     0x0010,
		config.ButtonZ:         0x0020,
		config.ButtonB:         0x0040,
		config.ButtonA:         0x0080,
		config.ButtonCRight:    0x0100,
		config.ButtonCLeft:     0x0200,
		config.ButtonCDown:     0x0400,
		config.ButtonCUp:       0x0800,
		config.ButtonR:         0x1000,
		config.ButtonL:         0x2000,
	}
	for b, bits := range want {
		if got := Bit(b); got != bits {
			t.Errorf("Bit(%s) = %#06x, want %#06x", b, got, bits)
		}

		var btns Buttons
		btns.Press(b)
		if got := btns.Value(); got != bits {
			t.Errorf("Press(%s).Value() = %#06x, want %#06x", b, got, bits)
		}
	}
}

func TestButtonsValueCombines(t *testing.T) {
	var b Buttons
	b.Press(config.ButtonA)
	b.Press(config.ButtonZ)
	b.Press(config.ButtonCUp)
	if got := b.Value(); got != 0x0080|0x0020|0x0800 {
		t.Errorf("combined value = %#06x", got)
	}
}

// The default configuration must reproduce the plugin's historical fixed
// behavior: x and y double as C buttons, the GC Z button acts as N64 L, and
// the GC L trigger acts as N64 Z.
func TestRemapDefaults(t *testing.T) {
	r := NewRemapper(config.Defaults())

	tests := []struct {
		name   string
		mutate func(*adapter.ControllerState)
		want   uint32
	}{
		{"a", func(c *adapter.ControllerState) { c.A = true }, 0x0080},
		{"b", func(c *adapter.ControllerState) { c.B = true }, 0x0040},
		{"x is c-right", func(c *adapter.ControllerState) { c.X = true }, 0x0100},
		{"y is c-left", func(c *adapter.ControllerState) { c.Y = true }, 0x0200},
		{"start", func(c *adapter.ControllerState) { c.Start = true }, 0x0010},
		{"gc z is n64 l", func(c *adapter.ControllerState) { c.Z = true }, 0x2000},
		{"gc l is n64 z", func(c *adapter.ControllerState) { c.L = true }, 0x0020},
		{"r", func(c *adapter.ControllerState) { c.R = true }, 0x1000},
		{"dpad left", func(c *adapter.ControllerState) { c.Left = true }, 0x0002},
		{"dpad right", func(c *adapter.ControllerState) { c.Right = true }, 0x0001},
		{"dpad down", func(c *adapter.ControllerState) { c.Down = true }, 0x0004},
		{"dpad up", func(c *adapter.ControllerState) { c.Up = true }, 0x0008},
		{"c-stick left", func(c *adapter.ControllerState) { c.SubstickX = 0 }, 0x0200},
		{"c-stick right", func(c *adapter.ControllerState) { c.SubstickX = 255 }, 0x0100},
		{"c-stick down", func(c *adapter.ControllerState) { c.SubstickY = 0 }, 0x0400},
		{"c-stick up", func(c *adapter.ControllerState) { c.SubstickY = 255 }, 0x0800},
		{"left trigger above threshold", func(c *adapter.ControllerState) { c.TriggerLeft = 169 }, 0x0020},
		{"right trigger above threshold", func(c *adapter.ControllerState) { c.TriggerRight = 169 }, 0x1000},
		{"left trigger at threshold", func(c *adapter.ControllerState) { c.TriggerLeft = 168 }, 0},
		{"c-stick inside deadzone", func(c *adapter.ControllerState) { c.SubstickX = 150 }, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := neutralSample()
			tt.mutate(&c)
			if got := r.State(c).Value(); got != tt.want {
				t.Errorf("value = %#06x, want %#06x", got, tt.want)
			}
		})
	}
}

func TestRemapCustomMapping(t *testing.T) {
	cfg := config.Defaults()
	cfg.ControllerMapping.A = config.ButtonStart
	cfg.ControllerMapping.Start = config.ButtonA
	cfg.ControllerMapping.CStickUp = config.ButtonDPadUp
	r := NewRemapper(cfg)

	c := neutralSample()
	c.A = true
	c.SubstickY = 255
	s := r.State(c)
	if !s.Buttons.Start || s.Buttons.A {
		t.Errorf("a press was not rerouted to Start: %+v", s.Buttons)
	}
	if !s.Buttons.DPadUp || s.Buttons.CUp {
		t.Errorf("c-stick up was not rerouted to DPadUp: %+v", s.Buttons)
	}
}

func TestRemapSharedTarget(t *testing.T) {
	// Two physical inputs mapped to the same logical button must OR.
	r := NewRemapper(config.Defaults())
	c := neutralSample()
	c.Y = true         // CLeft by default
	c.SubstickX = 0    // also CLeft
	s := r.State(c)
	if got := s.Value(); got != 0x0200 {
		t.Errorf("value = %#06x, want %#06x", got, uint32(0x0200))
	}
}

func TestRemapStickAxes(t *testing.T) {
	r := NewRemapper(config.Defaults())
	c := neutralSample()
	c.StickX = 255
	c.StickY = 0
	s := r.State(c)
	if s.StickX != 89 || s.StickY != -90 {
		t.Errorf("axes = (%d, %d), want (89, -90)", s.StickX, s.StickY)
	}
	if s.Value() != 0 {
		t.Errorf("stick movement set button bits: %#06x", s.Value())
	}
}

func TestRemapDisconnected(t *testing.T) {
	r := NewRemapper(config.Defaults())
	c := neutralSample()
	c.Connected = false
	c.A = true
	c.StickX = 255
	s := r.State(c)
	if s.Connected || s.Value() != 0 || s.StickX != 0 {
		t.Errorf("disconnected sample produced output: %+v", s)
	}
}

func TestComputeDelta(t *testing.T) {
	r := NewRemapper(config.Defaults())

	old := r.State(neutralSample())
	if d := ComputeDelta(old, old); !d.IsEmpty() {
		t.Errorf("identical states produced a delta: %+v", d)
	}

	c := neutralSample()
	c.B = true
	c.StickX = 255
	cur := r.State(c)

	d := ComputeDelta(old, cur)
	if d.IsEmpty() {
		t.Fatal("changed state produced an empty delta")
	}
	if d.Buttons == nil || !d.Buttons.B {
		t.Errorf("button change missing from delta: %+v", d)
	}
	if d.StickX == nil || *d.StickX != 89 {
		t.Errorf("stick change missing from delta: %+v", d)
	}
	if d.StickY != nil || d.Connected != nil {
		t.Errorf("unchanged fields present in delta: %+v", d)
	}
}
