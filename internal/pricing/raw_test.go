package pricing

import (
	"encoding/json"
	"math"
	"testing"
)

func TestCoerceNumber(t *testing.T) {
	cases := []struct {
		in       string
		fallback float64
		want     float64
	}{
		{"12", 0, 12},
		{"0,15", 0, 0.15},
		{" 1 000,5 ", 0, 1000.5},
		{"1,5,0", 9, 9},
		{"-3.25", 0, -3.25},
		{"", 1, 1},
		{"abc", 1, 1},
		{"Infinity", 2, 2},
		{"1e400", 2, 2},
		{"NaN", 5, 5},
	}
	for _, tc := range cases {
		got := CoerceNumber(tc.in, tc.fallback)
		if math.IsNaN(got) {
			t.Fatalf("CoerceNumber(%q) returned NaN", tc.in)
		}
		nearlyEqual(t, "CoerceNumber("+tc.in+")", got, tc.want)
	}
}

func TestRawUnmarshalJSON(t *testing.T) {
	var doc struct {
		A Raw `json:"a"`
		B Raw `json:"b"`
		C Raw `json:"c"`
		D Raw `json:"d"`
		E Raw `json:"e"`
		F Raw `json:"f"`
	}
	err := json.Unmarshal([]byte(`{"a": 12.5, "b": "0,15", "c": null, "d": true, "e": {"x": 1}, "f": false}`), &doc)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if doc.A != "12.5" || doc.B != "0,15" || doc.C != "" || doc.D != "1" || doc.E != "" || doc.F != "0" {
		t.Fatalf("unexpected values: %+v", doc)
	}
}

func TestRawMarshalJSON(t *testing.T) {
	out, err := json.Marshal(struct {
		A Raw `json:"a"`
		B Raw `json:"b"`
	}{A: "1,5"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"a":"1,5","b":null}` {
		t.Fatalf("unexpected json %s", out)
	}
}

func TestFloatKeepsExactValue(t *testing.T) {
	if Float(0.1) != "0.1" || Float(1.1) != "1.1" || Int(10) != "10" {
		t.Fatalf("unexpected formatting: %q %q %q", Float(0.1), Float(1.1), Int(10))
	}
	if Float(0.1).Number(0) != 0.1 {
		t.Fatalf("Float round trip lost precision")
	}
}
