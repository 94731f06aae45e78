package n64

// State is the logical N64 controller state produced by the remapper.
type State struct {
	Connected bool    `json:"connected"`
	Buttons   Buttons `json:"buttons"`
	StickX    int8    `json:"stickX"`
	StickY    int8    `json:"stickY"`
}

// Value packs the state's buttons into the BUTTONS word.
func (s State) Value() uint32 {
	return s.Buttons.Value()
}

// Delta carries only the parts of a State that changed between two samples.
type Delta struct {
	Connected *bool    `json:"connected,omitempty"`
	Buttons   *Buttons `json:"buttons,omitempty"`
	StickX    *int8    `json:"stickX,omitempty"`
	StickY    *int8    `json:"stickY,omitempty"`
}

// IsEmpty reports whether the delta carries no changes.
func (d *Delta) IsEmpty() bool {
	return d.Connected == nil && d.Buttons == nil && d.StickX == nil && d.StickY == nil
}

// ComputeDelta compares two states field group by field group.
func ComputeDelta(old, cur State) *Delta {
	d := &Delta{}
	if old.Connected != cur.Connected {
		d.Connected = &cur.Connected
	}
	if old.Buttons != cur.Buttons {
		d.Buttons = &cur.Buttons
	}
	if old.StickX != cur.StickX {
		d.StickX = &cur.StickX
	}
	if old.StickY != cur.StickY {
		d.StickY = &cur.StickY
	}
	return d
}
