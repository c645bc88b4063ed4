package catalog

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cableworks/storefront/internal/domain"
)

func TestMapToProduct(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want domain.Product
	}{
		{
			name: "array columns and numeric fields",
			raw: `{
				"id": "cat6",
				"name": " Cat6 UTP ",
				"category": "Network Cables",
				"price": 29.99,
				"stock": 45,
				"image_url": "/img/cat6.png",
				"specifications": ["Shield: Foil", " ", "Gauge: 23 AWG"],
				"applications": ["Office LAN"],
				"features": []
			}`,
			want: domain.Product{
				ID:             "cat6",
				Name:           "Cat6 UTP",
				Category:       "Network Cables",
				Price:          29.99,
				Stock:          45,
				ImageURL:       "/img/cat6.png",
				Specifications: []string{"Shield: Foil", "Gauge: 23 AWG"},
				Applications:   []string{"Office LAN"},
				Features:       []string{},
			},
		},
		{
			name: "numeric id, string numbers and newline lists",
			raw: `{
				"id": 42,
				"name": "RG6",
				"price": "18.50",
				"stock": "3",
				"specifications": "Jacket: PVC\nImpedance: 75 ohm\n",
				"applications": null
			}`,
			want: domain.Product{
				ID:             "42",
				Name:           "RG6",
				Price:          18.5,
				Stock:          3,
				Specifications: []string{"Jacket: PVC", "Impedance: 75 ohm"},
				Applications:   []string{},
				Features:       []string{},
			},
		},
		{
			name: "invalid numbers clamp to zero",
			raw:  `{"id": "x", "price": -5, "stock": "lots", "features": {"bad": true}}`,
			want: domain.Product{
				ID:             "x",
				Specifications: []string{},
				Applications:   []string{},
				Features:       []string{},
			},
		},
		{
			name: "non-finite numbers clamp to zero",
			raw:  `{"id": "x", "price": "NaN", "stock": "-Inf"}`,
			want: domain.Product{
				ID:             "x",
				Specifications: []string{},
				Applications:   []string{},
				Features:       []string{},
			},
		},
		{
			name: "infinite price and huge stock",
			raw:  `{"id": "x", "price": "+Inf", "stock": "1e30"}`,
			want: domain.Product{
				ID:             "x",
				Stock:          math.MaxInt32,
				Specifications: []string{},
				Applications:   []string{},
				Features:       []string{},
			},
		},
		{
			name: "fractional stock truncates",
			raw:  `{"id": "x", "price": 1e2, "stock": 7.9}`,
			want: domain.Product{
				ID:             "x",
				Price:          100,
				Stock:          7,
				Specifications: []string{},
				Applications:   []string{},
				Features:       []string{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var record productRecord
			if err := json.Unmarshal([]byte(tt.raw), &record); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}

			got := MapToProduct(&record)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("MapToProduct() mismatch (-want +got):\n%s", diff)
			}
			if _, err := json.Marshal(got); err != nil {
				t.Errorf("json.Marshal(MapToProduct()) error = %v", err)
			}
		})
	}
}

func TestDecodeScalar(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{``, ""},
		{`null`, ""},
		{`" abc "`, "abc"},
		{`12.5`, "12.5"},
		{`true`, ""},
	}

	for _, tt := range tests {
		if got := decodeScalar(json.RawMessage(tt.raw)); got != tt.want {
			t.Errorf("decodeScalar(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
