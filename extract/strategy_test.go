package extract

import (
	"reflect"
	"testing"
)

func TestDefaultStrategyOrder(t *testing.T) {
	want := []string{"direct-column", "structured-pattern", "fixed-width-table", "line-context"}

	var got []string
	for _, s := range DefaultStrategies() {
		got = append(got, s.Name())
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("strategy order = %v, want %v", got, want)
	}
}

func TestGet(t *testing.T) {
	if s := Get("fixed-width-table"); s == nil {
		t.Error("expected fixed-width-table to be registered")
	}
	if s := Get("no-such-strategy"); s != nil {
		t.Errorf("expected nil for unknown strategy, got %v", s.Name())
	}
}

func TestLooksLikeSKU(t *testing.T) {
	tests := []struct {
		tok  string
		want bool
	}{
		{"SKU-100", true},
		{"A1-B2", true},
		{"0123", true},
		{"W1NE", true},
		{"Red", false},     // no digit
		{"12", false},      // too short
		{"123", false},     // purely numeric reads as a quantity
		{"SKU 1", false},   // whitespace
		{"SKU_100", false}, // underscore outside the identifier alphabet
		{"", false},
	}

	for _, tt := range tests {
		if got := looksLikeSKU(tt.tok); got != tt.want {
			t.Errorf("looksLikeSKU(%q) = %v, want %v", tt.tok, got, tt.want)
		}
	}
}

func TestSplitColumns(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"SKU-1  Wine  2", []string{"SKU-1", "Wine", "2"}},
		{"SKU-1\tWine\t2", []string{"SKU-1", "Wine", "2"}},
		{"SKU-1 Wine 2", []string{"SKU-1 Wine 2"}},
		{"  a   b  ", []string{"a", "b"}},
		{"", nil},
	}

	for _, tt := range tests {
		got := splitColumns(tt.in)
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitColumns(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSplitQuoted(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{`SKU-1 "Red Wine" 4`, []string{"SKU-1", "Red Wine", "4"}},
		{`"a b" "c d"`, []string{"a b", "c d"}},
		{`plain tokens here`, []string{"plain", "tokens", "here"}},
		{`"unterminated quote`, []string{"unterminated quote"}},
	}

	for _, tt := range tests {
		if got := splitQuoted(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitQuoted(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsHeader(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"SKU  Description  Qty", true},
		{"Item Code  Name  Quantity  Location", true},
		{"sku,name,qty", true},
		{"SKU-100  Red Wine Bottle  12", false},
		{"just some prose", false},
	}

	for _, tt := range tests {
		if got := isHeader(tt.line); got != tt.want {
			t.Errorf("isHeader(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}
