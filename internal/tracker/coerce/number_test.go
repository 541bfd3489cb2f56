package coerce

import (
	"encoding/json"
	"math"
	"testing"
)

func TestToNumber(t *testing.T) {
	testCases := []struct {
		name  string
		in    any
		want  float64
		valid bool
	}{
		{"json number", float64(30), 30, true},
		{"integer string", "30", 30, true},
		{"padded string", "  45 ", 45, true},
		{"decimal string", "12.5", 12.5, true},
		{"leading dot", ".5", 0.5, true},
		{"trailing dot", "5.", 5, true},
		{"signed", "-7", -7, true},
		{"exponent", "1e2", 100, true},
		{"hex", "0x10", 16, true},
		{"octal", "0o17", 15, true},
		{"binary", "0b101", 5, true},
		{"infinity", "Infinity", math.Inf(1), true},
		{"negative infinity", "-Infinity", math.Inf(-1), true},
		{"empty string", "", 0, true},
		{"null", nil, 0, true},
		{"true", true, 1, true},
		{"false", false, 0, true},
		{"empty array", []any{}, 0, true},
		{"single element array", []any{"9"}, 9, true},
		{"word", "thirty", math.NaN(), false},
		{"trailing garbage", "30min", math.NaN(), false},
		{"signed hex", "-0x10", math.NaN(), false},
		{"go style inf", "inf", math.NaN(), false},
		{"underscores", "1_000", math.NaN(), false},
		{"undefined", Undefined, math.NaN(), false},
		{"object", map[string]any{"a": 1.0}, math.NaN(), false},
		{"multi element array", []any{"1", "2"}, math.NaN(), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ToNumber(tc.in)
			if got.Valid() != tc.valid {
				t.Fatalf("expected valid=%v, got %v", tc.valid, got.Valid())
			}
			if !tc.valid {
				if !math.IsNaN(got.Float64()) {
					t.Errorf("expected NaN, got %v", got.Float64())
				}
				return
			}
			if got.Float64() != tc.want {
				t.Errorf("expected %v, got %v", tc.want, got.Float64())
			}
		})
	}
}

func TestToNumber_InvalidKeepsRaw(t *testing.T) {
	got := ToNumber("abc")
	if got.Raw() != "abc" {
		t.Errorf("expected raw abc, got %q", got.Raw())
	}
	if got.String() != "NaN" {
		t.Errorf("expected NaN string, got %q", got.String())
	}
}

func TestNumber_MarshalJSON(t *testing.T) {
	testCases := []struct {
		name string
		in   Number
		want string
	}{
		{"integer", Valid(30), "30"},
		{"fraction", Valid(12.5), "12.5"},
		{"negative zero", Valid(math.Copysign(0, -1)), "0"},
		{"large", Valid(1e21), "1e+21"},
		{"tiny", Valid(1e-7), "1e-7"},
		{"nan", Invalid("abc"), "null"},
		{"infinity", Valid(math.Inf(1)), "null"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := json.Marshal(struct {
				D Number `json:"d"`
			}{D: tc.in})
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			want := `{"d":` + tc.want + `}`
			if string(b) != want {
				t.Errorf("expected %s, got %s", want, b)
			}
		})
	}
}

func TestHeadLimit(t *testing.T) {
	testCases := []struct {
		name  string
		limit any
		want  int
	}{
		{"within range", "2", 2},
		{"zero", "0", 0},
		{"beyond length", "10", 5},
		{"fraction truncates", "2.9", 2},
		{"negative counts from end", "-1", 4},
		{"very negative", "-10", 0},
		{"not a number", "abc", 0},
		{"infinity", "Infinity", 5},
		{"negative infinity", "-Infinity", 0},
		{"exponent", "1e1", 5},
		{"repeated parameter", []any{"1", "2"}, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HeadLimit(5, ToNumber(tc.limit)); got != tc.want {
				t.Errorf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestTruthy(t *testing.T) {
	testCases := []struct {
		name string
		in   any
		want bool
	}{
		{"undefined", Undefined, false},
		{"null", nil, false},
		{"empty string", "", false},
		{"zero", float64(0), false},
		{"nan", math.NaN(), false},
		{"false", false, false},
		{"string zero", "0", true},
		{"text", "2024-01-01", true},
		{"number", float64(1), true},
		{"empty array", []any{}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Truthy(tc.in); got != tc.want {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
