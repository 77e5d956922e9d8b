package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"solarbom/internal/pricing"
)

type line struct {
	Name     string        `json:"component"`
	Quantity int           `json:"quantity"`
	Price    pricing.Money `json:"price"`
	Note     string        `json:"note,omitempty"`
}

type quote struct {
	Lines   []line                    `json:"lines"`
	Totals  map[pricing.Component]int `json:"totals,omitempty"`
	Ratio   float64                   `json:"ratio"`
	Skipped *string                   `json:"skipped,omitempty"`
	Secret  string                    `json:"-"`
	hidden  int
}

func TestDeterministicEncode(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		wantJSON string
	}{
		{
			name: "struct keys sorted and floats rounded",
			input: struct {
				Name  string  `json:"name"`
				Score float64 `json:"score"`
				Count int     `json:"count"`
			}{
				Name:  "battens",
				Score: 0.123456789,
				Count: 42,
			},
			wantJSON: `{"count":42,"name":"battens","score":0.123457}`,
		},
		{
			name: "omitempty zero values dropped",
			input: struct {
				Name  string `json:"name"`
				Count int    `json:"count,omitempty"`
			}{
				Name: "lead",
			},
			wantJSON: `{"name":"lead"}`,
		},
		{
			name: "map with sorted keys",
			input: map[string]interface{}{
				"zebra": "last",
				"alpha": "first",
				"beta":  "second",
			},
			wantJSON: `{"alpha":"first","beta":"second","zebra":"last"}`,
		},
		{
			name:     "money keeps its own encoding",
			input:    line{Name: "Battens", Quantity: 6, Price: pricing.MustMoney("0.24")},
			wantJSON: `{"component":"Battens","price":0.24,"quantity":6}`,
		},
		{
			name:     "text marshaler map keys",
			input:    map[pricing.Component]int{pricing.ArcBox: 2, pricing.Battens: 6},
			wantJSON: `{"Arc Box":2,"Battens":6}`,
		},
		{
			name:     "nil value",
			input:    nil,
			wantJSON: `null`,
		},
		{
			name:     "empty slice returns null",
			input:    []string{},
			wantJSON: `null`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DeterministicEncode(tt.input)
			if err != nil {
				t.Fatalf("DeterministicEncode() error = %v", err)
			}
			if string(got) != tt.wantJSON {
				t.Errorf("DeterministicEncode() = %s, want %s", got, tt.wantJSON)
			}
		})
	}
}

func TestDeterministicEncode_OmitsHiddenAndNil(t *testing.T) {
	q := quote{
		Lines:  []line{{Name: "Lead", Quantity: 3, Price: pricing.MustMoney("34.20")}},
		Ratio:  1.0 / 3.0,
		Secret: "do not print",
		hidden: 7,
	}

	got, err := DeterministicEncode(q)
	if err != nil {
		t.Fatalf("DeterministicEncode() error = %v", err)
	}

	want := `{"lines":[{"component":"Lead","price":34.20,"quantity":3}],"ratio":0.333333}`
	if string(got) != want {
		t.Errorf("DeterministicEncode() = %s, want %s", got, want)
	}
}

func TestDeterministicEncode_Consistency(t *testing.T) {
	data := map[string]interface{}{
		"lines": []line{
			{Name: "Solar Panels", Quantity: 4, Price: pricing.MustMoney("112")},
			{Name: "Battens", Quantity: 21, Price: pricing.MustMoney("0.24")},
		},
		"totals": map[pricing.Component]int{
			pricing.SolarPanels: 4,
			pricing.Battens:     21,
			pricing.Lead:        3,
		},
		"meta": map[string]interface{}{
			"version": "1.0",
			"score":   0.123456789,
		},
	}

	var first []byte
	for i := 0; i < 10; i++ {
		encoded, err := DeterministicEncode(data)
		if err != nil {
			t.Fatalf("DeterministicEncode() error = %v", err)
		}
		if i == 0 {
			first = encoded
			continue
		}
		if !bytes.Equal(first, encoded) {
			t.Errorf("Encoding is not deterministic:\nrun 0: %s\nrun %d: %s", first, i, encoded)
		}
	}
}

func TestDeterministicEncode_NoHTMLEscaping(t *testing.T) {
	got, err := DeterministicEncode(map[string]string{"explanation": "2 x £19.52 = £39.04 (<frames> & more)"})
	if err != nil {
		t.Fatalf("DeterministicEncode() error = %v", err)
	}
	want := `{"explanation":"2 x £19.52 = £39.04 (<frames> & more)"}`
	if string(got) != want {
		t.Errorf("DeterministicEncode() = %s, want %s", got, want)
	}
}

func TestRoundFloat(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{"round to 6 decimal places", 0.123456789, 0.123457},
		{"no rounding needed", 0.123456, 0.123456},
		{"round down", 0.1234564, 0.123456},
		{"zero", 0.0, 0.0},
		{"negative", -0.123456789, -0.123457},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RoundFloat(tt.input)
			if got != tt.want {
				t.Errorf("RoundFloat(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDeterministicEncodeIndented(t *testing.T) {
	data := map[string]interface{}{
		"name":  "test",
		"price": pricing.MustMoney("9.15"),
	}

	got, err := DeterministicEncodeIndented(data, "  ")
	if err != nil {
		t.Fatalf("DeterministicEncodeIndented() error = %v", err)
	}

	want := "{\n  \"name\": \"test\",\n  \"price\": 9.15\n}"
	if string(got) != want {
		t.Errorf("DeterministicEncodeIndented() = %s, want %s", got, want)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(got, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal result: %v", err)
	}
}
