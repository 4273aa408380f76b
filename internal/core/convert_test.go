package core

import (
	"errors"
	"reflect"
	"testing"
)

// ----------------------------------------------------------------------------
// CleanCell Tests
// ----------------------------------------------------------------------------

func TestCleanCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain value", input: "Pikachu", want: "Pikachu"},
		{name: "surrounding whitespace", input: "  45 \t", want: "45"},
		{name: "excel formula wrapper", input: `="0045"`, want: "0045"},
		{name: "bare formula prefix", input: "=45", want: "45"},
		{name: "surrounding double quotes", input: `"Fire"`, want: "Fire"},
		{name: "surrounding single quotes", input: `'Fire'`, want: "Fire"},
		{name: "empty", input: "", want: ""},
		{name: "only whitespace", input: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanCell(tt.input); got != tt.want {
				t.Errorf("CleanCell(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// ParseNumber Tests
// ----------------------------------------------------------------------------

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantOK  bool
		wantErr bool
	}{
		// Valid
		{name: "integer", input: "45", want: 45, wantOK: true},
		{name: "decimal", input: "0.25", want: 0.25, wantOK: true},
		{name: "leading decimal point", input: ".5", want: 0.5, wantOK: true},
		{name: "trailing decimal point", input: "2.", want: 2, wantOK: true},
		{name: "negative", input: "-1.5", want: -1.5, wantOK: true},
		{name: "scientific notation", input: "1e2", want: 100, wantOK: true},
		{name: "whitespace trimmed", input: "  60 ", want: 60, wantOK: true},
		{name: "quoted", input: `"4"`, want: 4, wantOK: true},

		// Absent
		{name: "empty", input: "", wantOK: false},
		{name: "whitespace only", input: "  ", wantOK: false},

		// Invalid
		{name: "text", input: "abc", wantOK: true, wantErr: true},
		{name: "NaN", input: "NaN", wantOK: true, wantErr: true},
		{name: "infinity", input: "Inf", wantOK: true, wantErr: true},
		{name: "overflow", input: "1e999", wantOK: true, wantErr: true},
		{name: "hex", input: "0x10", wantOK: true, wantErr: true},
		{name: "trailing garbage", input: "45kg", wantOK: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := ParseNumber(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseNumber(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidNumber) {
				t.Errorf("error should wrap ErrInvalidNumber, got %v", err)
			}
			if ok != tt.wantOK {
				t.Errorf("ParseNumber(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseNumber(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseInteger(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantOK  bool
		wantErr error
	}{
		{name: "integer", input: "255", want: 255, wantOK: true},
		{name: "integral float", input: "45.0", want: 45, wantOK: true},
		{name: "empty", input: "", wantOK: false},
		{name: "fractional", input: "45.5", wantOK: true, wantErr: ErrNotInteger},
		{name: "not a number", input: "fast", wantOK: true, wantErr: ErrInvalidNumber},
		{name: "too large", input: "1e12", wantOK: true, wantErr: ErrNotInteger},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := ParseInteger(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseInteger(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseInteger(%q) unexpected error: %v", tt.input, err)
			}
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ParseInteger(%q) = (%d, %v), want (%d, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// ParseAbilities Tests
// ----------------------------------------------------------------------------

func TestParseAbilities(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "semicolon separated", input: "Overgrow; Chlorophyll", want: []string{"Overgrow", "Chlorophyll"}},
		{name: "comma separated", input: "Static,Lightning Rod", want: []string{"Static", "Lightning Rod"}},
		{name: "mixed separators", input: "Guts; No Guard, Steadfast", want: []string{"Guts", "No Guard", "Steadfast"}},
		{name: "empties dropped", input: " ;Levitate;; , ", want: []string{"Levitate"}},
		{name: "case-insensitive dedupe keeps first casing", input: "Pressure; pressure; PRESSURE; Snow Cloak", want: []string{"Pressure", "Snow Cloak"}},
		{name: "empty input", input: "", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAbilities(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseAbilities(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// ParseBoolLike Tests
// ----------------------------------------------------------------------------

func TestParseBoolLike(t *testing.T) {
	truthy := []string{"true", "TRUE", "True", "1", "1.0", "yes", "YES", "y", " Y "}
	falsy := []string{"false", "False", "0", "0.0", "no", "No", "n", "N"}
	unknown := []string{"", "  ", "maybe", "2", "1.00", "t", "f", "on"}

	for _, s := range truthy {
		if got := ParseBoolLike(s); got == nil || !*got {
			t.Errorf("ParseBoolLike(%q) = %v, want true", s, got)
		}
	}
	for _, s := range falsy {
		if got := ParseBoolLike(s); got == nil || *got {
			t.Errorf("ParseBoolLike(%q) = %v, want false", s, got)
		}
	}
	for _, s := range unknown {
		if got := ParseBoolLike(s); got != nil {
			t.Errorf("ParseBoolLike(%q) = %v, want nil", s, *got)
		}
	}
}
