package adapter

// ReadLen is the size of one adapter report: a report ID byte followed by
// nine bytes for each of the four channels.
const ReadLen = 37

// NumChannels is the number of controller ports on the adapter.
const NumChannels = 4

// Channel identifies one of the adapter's controller ports.
type Channel int

// ClampChannel converts an arbitrary port number to a valid Channel,
// saturating at the first and last port.
func ClampChannel(n int) Channel {
	if n < 0 {
		return 0
	}
	if n >= NumChannels {
		return NumChannels - 1
	}
	return Channel(n)
}

// State is one raw 37-byte adapter report.
type State [ReadLen]byte

// Connected reports whether a controller is present on the given channel.
// The high nibble of the status byte is 0 for none, 1 for wired and 2 for
// wireless.
func (s State) Connected(ch Channel) bool {
	return s[1+9*int(ch)]>>4 != 0
}

// AnyConnected reports whether any of the four channels has a controller.
func (s State) AnyConnected() bool {
	for ch := Channel(0); ch < NumChannels; ch++ {
		if s.Connected(ch) {
			return true
		}
	}
	return false
}

// Controller decodes the sample for the given channel.
func (s State) Controller(ch Channel) ControllerState {
	base := 1 + 9*int(ch)
	b1 := s[base+1]
	b2 := s[base+2]

	return ControllerState{
		Connected: s.Connected(ch),

		A: b1&(1<<0) != 0,
		B: b1&(1<<1) != 0,
		X: b1&(1<<2) != 0,
		Y: b1&(1<<3) != 0,

		Left:  b1&(1<<4) != 0,
		Right: b1&(1<<5) != 0,
		Down:  b1&(1<<6) != 0,
		Up:    b1&(1<<7) != 0,

		Start: b2&(1<<0) != 0,
		Z:     b2&(1<<1) != 0,
		R:     b2&(1<<2) != 0,
		L:     b2&(1<<3) != 0,

		StickX:       s[base+3],
		StickY:       s[base+4],
		SubstickX:    s[base+5],
		SubstickY:    s[base+6],
		TriggerLeft:  s[base+7],
		TriggerRight: s[base+8],
	}
}

// ControllerState is one controller's decoded sample. Sticks and triggers
// are the raw unsigned bytes from the report; sticks are centered at 128.
type ControllerState struct {
	Connected bool

	A bool
	B bool
	X bool
	Y bool

	Left  bool
	Right bool
	Down  bool
	Up    bool

	Start bool
	Z     bool
	R     bool
	L     bool

	StickX       uint8
	StickY       uint8
	SubstickX    uint8
	SubstickY    uint8
	TriggerLeft  uint8
	TriggerRight uint8
}

// axisWithDeadzone maps a raw stick byte to a signed axis value.
// Displacement from center within the deadzone reads as zero; beyond it the
// value is scaled so that a displacement of sensitivity reaches full scale,
// saturating past that.
func axisWithDeadzone(raw, deadzone, sensitivity uint8) int8 {
	d := int32(raw) - 128
	if d > -int32(deadzone) && d < int32(deadzone) {
		return 0
	}
	if sensitivity == 0 {
		// A zero sensitivity would divide away all output; treat it as
		// maximum responsiveness instead.
		sensitivity = 1
	}
	v := d * 127 / int32(sensitivity)
	if v > 127 {
		v = 127
	}
	if v < -127 {
		v = -127
	}
	return int8(v)
}

// StickWithDeadzone returns the control stick as signed axes after applying
// the deadzone and sensitivity calibration.
func (c ControllerState) StickWithDeadzone(deadzone, sensitivity uint8) (int8, int8) {
	return axisWithDeadzone(c.StickX, deadzone, sensitivity),
		axisWithDeadzone(c.StickY, deadzone, sensitivity)
}

// SubstickWithDeadzone returns the C stick as signed displacement from
// center, zeroed within the deadzone. The C stick only steers digital
// outputs so no sensitivity scaling is applied.
func (c ControllerState) SubstickWithDeadzone(deadzone uint8) (int8, int8) {
	sub := func(raw uint8) int8 {
		d := int32(raw) - 128
		if d > -int32(deadzone) && d < int32(deadzone) {
			return 0
		}
		if d < -127 {
			d = -127
		}
		return int8(d)
	}
	return sub(c.SubstickX), sub(c.SubstickY)
}

// Any reports whether the sample shows any input at all, using the same raw
// stick thresholds on every axis so it works without calibration.
func (c ControllerState) Any() bool {
	return c.A || c.B || c.X || c.Y ||
		c.Start || c.Left || c.Right || c.Down || c.Up ||
		c.L || c.R || c.Z ||
		c.StickX < 64 || c.StickX > 192 ||
		c.StickY < 64 || c.StickY > 192
}
