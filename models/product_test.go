package models

import "testing"

func TestDecodeFeatureList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty blob", "", []string{}},
		{"json null", "null", []string{}},
		{"malformed blob", "{not json", []string{}},
		{"list", `["a","b"]`, []string{"a", "b"}},
	}

	for _, tt := range tests {
		got := DecodeFeatureList(tt.raw)
		if got == nil {
			t.Errorf("%s: decoded list must never be nil", tt.name)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
				break
			}
		}
	}
}

func TestEncodeFeatureList(t *testing.T) {
	if got := EncodeFeatureList(nil); got != "[]" {
		t.Errorf("nil list should encode as [], got %q", got)
	}
	if got := EncodeFeatureList([]string{"x"}); got != `["x"]` {
		t.Errorf("got %q", got)
	}
}

func TestFeatureRoundTripThroughProduct(t *testing.T) {
	p := Product{Features: []string{"waterproof", "lightweight"}}
	p.EncodeFeatures()

	q := Product{FeaturesRaw: p.FeaturesRaw}
	q.DecodeFeatures()

	if len(q.Features) != 2 || q.Features[0] != "waterproof" || q.Features[1] != "lightweight" {
		t.Fatalf("round trip lost features: %v", q.Features)
	}
}
