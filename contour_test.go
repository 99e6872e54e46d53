package main

import (
	"reflect"
	"testing"
)

func TestParseLevelsDropsNonNumericTokens(t *testing.T) {
	got := parseLevels("1, abc, 3")
	want := []float64{1, 3}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("parseLevels(%q) = %v, want %v", "1, abc, 3", got, want)
	}
}

func TestParseLevelsDropsEmptyTokens(t *testing.T) {
	got := parseLevels("1,,3")
	want := []float64{1, 3}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("parseLevels(%q) = %v, want %v", "1,,3", got, want)
	}
}

func TestParseLevelsPreservesOrderAndDuplicates(t *testing.T) {
	got := parseLevels("5, 1, 5, 0.5")
	want := []float64{5, 1, 5, 0.5}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("parseLevels order = %v, want %v", got, want)
	}
}

func TestParseLevelsHandlesWhitespaceAndSigns(t *testing.T) {
	got := parseLevels("  -2 ,1e3,  +4.5  ")
	want := []float64{-2, 1000, 4.5}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("parseLevels = %v, want %v", got, want)
	}
}

func TestParseLevelsEmptyString(t *testing.T) {
	if got := parseLevels(""); len(got) != 0 {
		t.Fatalf("parseLevels(\"\") = %v, want empty", got)
	}
	if got := parseLevels(" , , "); len(got) != 0 {
		t.Fatalf("parseLevels of only separators = %v, want empty", got)
	}
}

func TestFormatLevelsJoinsWithCommaSpace(t *testing.T) {
	got := formatLevels([]float64{10, 50, 100.5})
	if got != "10, 50, 100.5" {
		t.Fatalf("formatLevels = %q, want %q", got, "10, 50, 100.5")
	}
	if got := formatLevels(nil); got != "" {
		t.Fatalf("formatLevels(nil) = %q, want empty", got)
	}
}

func TestLevelsRoundTrip(t *testing.T) {
	cases := [][]float64{
		{},
		{1},
		{10, 50, 100, 250},
		{5, 1, 5},
		{-3.25, 0, 1e6},
	}
	for _, levels := range cases {
		got := parseLevels(formatLevels(levels))
		if len(got) != len(levels) {
			t.Fatalf("round trip of %v = %v", levels, got)
		}
		for i := range levels {
			if got[i] != levels[i] {
				t.Fatalf("round trip of %v = %v", levels, got)
			}
		}
	}
}

func TestLevelsFieldDefersStoreSyncWhileEditing(t *testing.T) {
	var lf levelsField
	lf.syncFromStore([]float64{10, 50})
	if lf.field.Value != "10, 50" {
		t.Fatalf("initial text = %q, want %q", lf.field.Value, "10, 50")
	}

	lf.beginEdit([]float64{10, 50})
	lf.handleKey(",")
	lf.handleKey("7")

	// External update must not clobber in-progress typing.
	lf.syncFromStore([]float64{999})
	if lf.field.Value != "10, 50,7" {
		t.Fatalf("text while editing = %q, want %q", lf.field.Value, "10, 50,7")
	}

	lf.endEdit([]float64{999})
	if lf.field.Value != "999" {
		t.Fatalf("text after blur = %q, want %q", lf.field.Value, "999")
	}
	if lf.editing {
		t.Fatal("field still editing after endEdit")
	}

	// Blurred fields follow the store again.
	lf.syncFromStore([]float64{1, 2})
	if lf.field.Value != "1, 2" {
		t.Fatalf("text after sync = %q, want %q", lf.field.Value, "1, 2")
	}
}
