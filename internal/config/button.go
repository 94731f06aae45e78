package config

import "fmt"

// Button is one of the N64 controller's named inputs. The set is closed:
// parsing is case sensitive and anything outside the enumeration below is
// rejected.
type Button string

const (
	ButtonA         Button = "A"
	ButtonB         Button = "B"
	ButtonStart     Button = "Start"
	ButtonZ         Button = "Z"
	ButtonL         Button = "L"
	ButtonR         Button = "R"
	ButtonDPadLeft  Button = "DPadLeft"
	ButtonDPadRight Button = "DPadRight"
	ButtonDPadDown  Button = "DPadDown"
	ButtonDPadUp    Button = "DPadUp"
	ButtonCLeft     Button = "CLeft"
	ButtonCRight    Button = "CRight"
	ButtonCDown     Button = "CDown"
	ButtonCUp       Button = "CUp"
)

// Buttons lists every valid Button token.
var Buttons = []Button{
	ButtonA, ButtonB, ButtonStart, ButtonZ, ButtonL, ButtonR,
	ButtonDPadLeft, ButtonDPadRight, ButtonDPadDown, ButtonDPadUp,
	ButtonCLeft, ButtonCRight, ButtonCDown, ButtonCUp,
}

// ParseButton converts a token from the configuration file to a Button.
// Matching is exact; 'l' is not 'L'.
func ParseButton(s string) (Button, error) {
	for _, b := range Buttons {
		if s == string(b) {
			return b, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownValue, s)
}

// Valid reports whether b is a member of the closed Button set.
func (b Button) Valid() bool {
	_, err := ParseButton(string(b))
	return err == nil
}

func (b Button) String() string {
	return string(b)
}

// MarshalText implements encoding.TextMarshaler.
func (b Button) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownValue, string(b))
	}
	return []byte(b), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Button) UnmarshalText(text []byte) error {
	parsed, err := ParseButton(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
