package common

import (
	"reflect"
	"testing"
)

func TestParsePairs(t *testing.T) {
	got, err := ParsePairs(" default=location.json, , cafe = cafe/hours.json ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Pair{
		{Key: "default", Value: "location.json"},
		{Key: "cafe", Value: "cafe/hours.json"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestParsePairsErrors(t *testing.T) {
	for _, in := range []string{"location.json", "=x.json", "a=", "a=x,a=y"} {
		if _, err := ParsePairs(in); err == nil {
			t.Errorf("ParsePairs(%q): expected error", in)
		}
	}
}
