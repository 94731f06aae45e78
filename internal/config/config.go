// Package config is the configuration store for the GameCube adapter input
// core. It loads, validates and persists the analog calibration scalars and
// the GameCube-to-N64 button remapping table.
//
// Validation is a single atomic pass: a configuration file that is missing a
// key, carries an unknown key or value, or holds a scalar outside [0,255] is
// invalid as a whole and gets overwritten with the defaults. There is no
// field-level recovery.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Error kinds reported by Load. LoadOrCreate collapses all of them into the
// same recovery action.
var (
	ErrMissing      = errors.New("config file missing")
	ErrMalformed    = errors.New("malformed config")
	ErrOutOfRange   = errors.New("value out of range")
	ErrUnknownKey   = errors.New("unknown key")
	ErrUnknownValue = errors.New("unknown value")
)

// Mapping assigns an N64 button to every GameCube button. The key set is
// fixed; the control stick itself cannot be remapped.
type Mapping struct {
	A           Button `toml:"a"`
	B           Button `toml:"b"`
	X           Button `toml:"x"`
	Y           Button `toml:"y"`
	Start       Button `toml:"start"`
	Z           Button `toml:"z"`
	L           Button `toml:"l"`
	R           Button `toml:"r"`
	DPadLeft    Button `toml:"d_pad_left"`
	DPadRight   Button `toml:"d_pad_right"`
	DPadDown    Button `toml:"d_pad_down"`
	DPadUp      Button `toml:"d_pad_up"`
	CStickLeft  Button `toml:"c_stick_left"`
	CStickRight Button `toml:"c_stick_right"`
	CStickDown  Button `toml:"c_stick_down"`
	CStickUp    Button `toml:"c_stick_up"`
}

// Config holds the calibration scalars and the button remapping table. Once
// loaded it is immutable and may be shared freely without synchronization.
type Config struct {
	ControlStickDeadzone    uint8   `toml:"control_stick_deadzone"`
	ControlStickSensitivity uint8   `toml:"control_stick_sensitivity"`
	CStickDeadzone          uint8   `toml:"c_stick_deadzone"`
	TriggerThreshold        uint8   `toml:"trigger_threshold"`
	ControllerMapping       Mapping `toml:"controller_mapping"`
}

// Defaults returns the built-in configuration. Pure, no I/O.
func Defaults() Config {
	return Config{
		ControlStickDeadzone:    20,
		ControlStickSensitivity: 180,
		CStickDeadzone:          40,
		TriggerThreshold:        168,
		ControllerMapping: Mapping{
			A:           ButtonA,
			B:           ButtonB,
			X:           ButtonCRight,
			Y:           ButtonCLeft,
			Start:       ButtonStart,
			Z:           ButtonL,
			L:           ButtonZ,
			R:           ButtonR,
			DPadLeft:    ButtonDPadLeft,
			DPadRight:   ButtonDPadRight,
			DPadDown:    ButtonDPadDown,
			DPadUp:      ButtonDPadUp,
			CStickLeft:  ButtonCLeft,
			CStickRight: ButtonCRight,
			CStickDown:  ButtonCDown,
			CStickUp:    ButtonCUp,
		},
	}
}

// mappingKeys is the on-disk key order. Persist writes entries in this order
// and Load requires every key to be present exactly once.
var mappingKeys = []string{
	"a", "b", "x", "y", "start", "z", "l", "r",
	"d_pad_left", "d_pad_right", "d_pad_down", "d_pad_up",
	"c_stick_left", "c_stick_right", "c_stick_down", "c_stick_up",
}

// field returns the Mapping entry for an on-disk key, or nil if the key is
// not part of the fixed set.
func (m *Mapping) field(key string) *Button {
	switch key {
	case "a":
		return &m.A
	case "b":
		return &m.B
	case "x":
		return &m.X
	case "y":
		return &m.Y
	case "start":
		return &m.Start
	case "z":
		return &m.Z
	case "l":
		return &m.L
	case "r":
		return &m.R
	case "d_pad_left":
		return &m.DPadLeft
	case "d_pad_right":
		return &m.DPadRight
	case "d_pad_down":
		return &m.DPadDown
	case "d_pad_up":
		return &m.DPadUp
	case "c_stick_left":
		return &m.CStickLeft
	case "c_stick_right":
		return &m.CStickRight
	case "c_stick_down":
		return &m.CStickDown
	case "c_stick_up":
		return &m.CStickUp
	}
	return nil
}

// scalarKeys is the fixed set of top-level keys, in on-disk order.
var scalarKeys = []string{
	"control_stick_deadzone",
	"control_stick_sensitivity",
	"c_stick_deadzone",
	"trigger_threshold",
}

// Load reads and validates the configuration at path. A missing file is
// reported as ErrMissing; everything else that is wrong with the file is one
// of ErrMalformed, ErrOutOfRange, ErrUnknownKey or ErrUnknownValue. On any
// error the returned Config is the zero value and must not be used.
//
// The file is decoded into a plain tree first so that key matching stays
// byte-exact. Decoding straight into the Config struct would let the TOML
// library's field matching decide which key spellings are acceptable.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, fmt.Errorf("%w: %s", ErrMissing, path)
		}
		return Config{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var cfg Config
	scalars := map[string]*uint8{
		"control_stick_deadzone":    &cfg.ControlStickDeadzone,
		"control_stick_sensitivity": &cfg.ControlStickSensitivity,
		"c_stick_deadzone":          &cfg.CStickDeadzone,
		"trigger_threshold":         &cfg.TriggerThreshold,
	}

	for key := range raw {
		if _, ok := scalars[key]; !ok && key != "controller_mapping" {
			return Config{}, fmt.Errorf("%w: %s", ErrUnknownKey, key)
		}
	}

	for _, key := range scalarKeys {
		v, ok := raw[key]
		if !ok {
			return Config{}, fmt.Errorf("%w: missing key %s", ErrMalformed, key)
		}
		n, ok := v.(int64)
		if !ok {
			return Config{}, fmt.Errorf("%w: %s is not an integer", ErrMalformed, key)
		}
		if n < 0 || n > 255 {
			return Config{}, fmt.Errorf("%w: %s = %d", ErrOutOfRange, key, n)
		}
		*scalars[key] = uint8(n)
	}

	table, ok := raw["controller_mapping"].(map[string]any)
	if !ok {
		return Config{}, fmt.Errorf("%w: missing [controller_mapping] section", ErrMalformed)
	}
	for key, value := range table {
		dst := cfg.ControllerMapping.field(key)
		if dst == nil {
			return Config{}, fmt.Errorf("%w: controller_mapping.%s", ErrUnknownKey, key)
		}
		s, ok := value.(string)
		if !ok {
			return Config{}, fmt.Errorf("%w: controller_mapping.%s is not a string", ErrMalformed, key)
		}
		b, err := ParseButton(s)
		if err != nil {
			return Config{}, fmt.Errorf("controller_mapping.%s: %w", key, err)
		}
		*dst = b
	}
	for _, key := range mappingKeys {
		if *cfg.ControllerMapping.field(key) == "" {
			return Config{}, fmt.Errorf("%w: missing key controller_mapping.%s", ErrMalformed, key)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every invariant in one pass. Any single violation makes
// the whole configuration invalid.
func (c Config) Validate() error {
	// The scalars are uint8 and therefore in range by construction; the
	// range check on parsed input happens in Load before narrowing.
	m := c.ControllerMapping
	for _, key := range mappingKeys {
		b := *m.field(key)
		if !b.Valid() {
			return fmt.Errorf("%w: controller_mapping.%s = %q", ErrUnknownValue, key, string(b))
		}
	}
	return nil
}

const fileHeader = `# Configuration for the gcinput plugin.
#
# To revert to defaults simply delete this file.
# The default configuration includes all supported controller mappings.
# It is currently not possible to change the mapping of the control stick.
#
# In the controller mappings below, the left side is the GameCube controller
# button, and the right side is the N64 controller button.
#
# Be aware that the values are case sensitive, and an invalid configuration
# file will be overwritten with the defaults.

`

// Persist writes c to path in the canonical text form, overwriting any
// existing file. The canonical form uses TOML literal strings for the button
// tokens, which is why this is a fixed writer rather than a TOML marshaller.
func Persist(c Config, path string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.WriteString(fileHeader)
	fmt.Fprintf(&buf, "control_stick_deadzone = %d\n", c.ControlStickDeadzone)
	fmt.Fprintf(&buf, "control_stick_sensitivity = %d\n", c.ControlStickSensitivity)
	fmt.Fprintf(&buf, "c_stick_deadzone = %d\n", c.CStickDeadzone)
	fmt.Fprintf(&buf, "trigger_threshold = %d\n", c.TriggerThreshold)
	buf.WriteString("\n[controller_mapping]\n")
	m := c.ControllerMapping
	for _, key := range mappingKeys {
		fmt.Fprintf(&buf, "%s = '%s'\n", key, *m.field(key))
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// LoadOrCreate is the load boundary used at startup. A missing file causes
// the defaults to be written and returned; an invalid file is overwritten
// with the defaults. The caller always receives a usable configuration.
func LoadOrCreate(path string) Config {
	cfg, err := Load(path)
	if err == nil {
		return cfg
	}

	if !errors.Is(err, ErrMissing) {
		log.Printf("Invalid configuration (%v), reverting to defaults", err)
	}

	cfg = Defaults()
	if werr := Persist(cfg, path); werr != nil {
		log.Printf("Could not write default configuration to %s: %v", path, werr)
	}
	return cfg
}

// DefaultPath returns the conventional location of the configuration file,
// rooted in the user's configuration directory.
func DefaultPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".gcinput", "config.toml")
	}
	return filepath.Join(base, "gcinput", "config.toml")
}
