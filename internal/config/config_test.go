package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing test config: %v", err)
	}
	return path
}

func validConfig() string {
	return `control_stick_deadzone = 20
control_stick_sensitivity = 180
c_stick_deadzone = 40
trigger_threshold = 168

[controller_mapping]
a = 'A'
b = 'B'
x = 'CRight'
y = 'CLeft'
start = 'Start'
z = 'L'
l = 'Z'
r = 'R'
d_pad_left = 'DPadLeft'
d_pad_right = 'DPadRight'
d_pad_down = 'DPadDown'
d_pad_up = 'DPadUp'
c_stick_left = 'CLeft'
c_stick_right = 'CRight'
c_stick_down = 'CDown'
c_stick_up = 'CUp'
`
}

func TestLoadValid(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != Defaults() {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestLoadWithComments(t *testing.T) {
	content := "# leading comment\n" + strings.Replace(validConfig(),
		"[controller_mapping]", "# section below\n[controller_mapping]", 1)
	cfg, err := Load(writeConfig(t, content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != Defaults() {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(string) string
		wantErr error
	}{
		{
			name:    "scalar above range",
			mutate:  func(s string) string { return strings.Replace(s, "trigger_threshold = 168", "trigger_threshold = 256", 1) },
			wantErr: ErrOutOfRange,
		},
		{
			name:    "scalar below range",
			mutate:  func(s string) string { return strings.Replace(s, "c_stick_deadzone = 40", "c_stick_deadzone = -1", 1) },
			wantErr: ErrOutOfRange,
		},
		{
			name:    "scalar not an integer",
			mutate:  func(s string) string { return strings.Replace(s, "c_stick_deadzone = 40", "c_stick_deadzone = 'x'", 1) },
			wantErr: ErrMalformed,
		},
		{
			name:    "lowercase button value",
			mutate:  func(s string) string { return strings.Replace(s, "z = 'L'", "z = 'l'", 1) },
			wantErr: ErrUnknownValue,
		},
		{
			name:    "unrecognized button value",
			mutate:  func(s string) string { return strings.Replace(s, "a = 'A'", "a = 'Turbo'", 1) },
			wantErr: ErrUnknownValue,
		},
		{
			name:    "uppercase mapping key",
			mutate:  func(s string) string { return strings.Replace(s, "a = 'A'", "A = 'A'", 1) },
			wantErr: ErrUnknownKey,
		},
		{
			name:    "unknown mapping key",
			mutate:  func(s string) string { return s + "turbo = 'A'\n" },
			wantErr: ErrUnknownKey,
		},
		{
			name:    "unknown top-level key",
			mutate:  func(s string) string { return "rumble = 1\n" + s },
			wantErr: ErrUnknownKey,
		},
		{
			name:    "missing scalar",
			mutate:  func(s string) string { return strings.Replace(s, "control_stick_deadzone = 20\n", "", 1) },
			wantErr: ErrMalformed,
		},
		{
			name:    "missing mapping key",
			mutate:  func(s string) string { return strings.Replace(s, "c_stick_up = 'CUp'\n", "", 1) },
			wantErr: ErrMalformed,
		},
		{
			name:    "duplicate mapping key",
			mutate:  func(s string) string { return s + "a = 'B'\n" },
			wantErr: ErrMalformed,
		},
		{
			name:    "missing mapping section",
			mutate:  func(s string) string { return strings.SplitAfter(s, "trigger_threshold = 168\n")[0] },
			wantErr: ErrMalformed,
		},
		{
			name:    "syntax error",
			mutate:  func(s string) string { return s + "not toml at all\n" },
			wantErr: ErrMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.mutate(validConfig())))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, ErrMissing) {
		t.Errorf("got error %v, want ErrMissing", err)
	}
}

func TestPersistLoadIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := Persist(Defaults(), path); err != nil {
		t.Fatalf("persist: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != Defaults() {
		t.Errorf("round trip of defaults changed the configuration: %+v", cfg)
	}
}

func TestPersistLoadRoundTrip(t *testing.T) {
	custom := Defaults()
	custom.ControlStickDeadzone = 0
	custom.ControlStickSensitivity = 255
	custom.TriggerThreshold = 1
	custom.ControllerMapping.A = ButtonCDown
	custom.ControllerMapping.Z = ButtonZ
	custom.ControllerMapping.CStickUp = ButtonStart

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := Persist(custom, path); err != nil {
		t.Fatalf("persist: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != custom {
		t.Errorf("round trip changed the configuration:\ngot  %+v\nwant %+v", cfg, custom)
	}
}

func TestPersistRejectsInvalid(t *testing.T) {
	bad := Defaults()
	bad.ControllerMapping.B = Button("b")
	if err := Persist(bad, filepath.Join(t.TempDir(), "config.toml")); !errors.Is(err, ErrUnknownValue) {
		t.Errorf("got error %v, want ErrUnknownValue", err)
	}
}

func TestLoadOrCreateMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	cfg := LoadOrCreate(path)
	if cfg != Defaults() {
		t.Errorf("got %+v, want defaults", cfg)
	}

	// The defaults must have been materialized on disk.
	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("load after create: %v", err)
	}
	if reloaded != Defaults() {
		t.Errorf("created file does not contain the defaults: %+v", reloaded)
	}
}

func TestLoadOrCreateOverwritesInvalid(t *testing.T) {
	content := strings.Replace(validConfig(), "trigger_threshold = 168", "trigger_threshold = 256", 1)
	path := writeConfig(t, content)

	cfg := LoadOrCreate(path)
	if cfg != Defaults() {
		t.Errorf("got %+v, want defaults", cfg)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading rewritten file: %v", err)
	}
	if strings.Contains(string(data), "256") {
		t.Error("invalid file was not overwritten with the defaults")
	}
	if reloaded, err := Load(path); err != nil || reloaded != Defaults() {
		t.Errorf("rewritten file: cfg %+v, err %v", reloaded, err)
	}
}

func TestLoadOrCreateKeepsValid(t *testing.T) {
	custom := Defaults()
	custom.CStickDeadzone = 7
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := Persist(custom, path); err != nil {
		t.Fatalf("persist: %v", err)
	}
	if cfg := LoadOrCreate(path); cfg != custom {
		t.Errorf("valid user configuration was not kept: %+v", cfg)
	}
}

func TestParseButton(t *testing.T) {
	for _, b := range Buttons {
		got, err := ParseButton(string(b))
		if err != nil || got != b {
			t.Errorf("ParseButton(%q) = %q, %v", b, got, err)
		}
	}
	for _, s := range []string{"a", "start", "cup", "DPADLEFT", "", "A "} {
		if _, err := ParseButton(s); !errors.Is(err, ErrUnknownValue) {
			t.Errorf("ParseButton(%q) accepted an invalid token", s)
		}
	}
}
