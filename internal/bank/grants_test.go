package bank

import (
	"reflect"
	"testing"
)

var knownDeps = []string{"Science", "Mathematics", "English"}

func TestParseGradeGrantsSeparators(t *testing.T) {
	cases := []struct {
		raw   string
		dep   string
		grade string
	}{
		{"Science|Grade 5", "Science", "Grade 5"},
		{"Science: Grade 5", "Science", "Grade 5"},
		{"Science - Grade 5", "Science", "Grade 5"},
		{"science|Grade 5", "Science", "Grade 5"}, // department match is case-insensitive
		{"  Mathematics :  Grade 8  ", "Mathematics", "Grade 8"},
	}
	for _, c := range cases {
		grants, dropped := ParseGradeGrants([]string{c.raw}, knownDeps)
		if len(dropped) != 0 {
			t.Fatalf("%q: unexpectedly dropped", c.raw)
		}
		got, ok := grants[c.dep]
		if !ok || len(got) != 1 || got[0] != c.grade {
			t.Fatalf("%q: got %v, want %s -> [%s]", c.raw, grants, c.dep, c.grade)
		}
	}
}

func TestParseGradeGrantsSubstringFallback(t *testing.T) {
	// No recognized separator layout; the department is found as a substring
	// and the grade is everything after the first token. "Grade 5 Science"
	// therefore yields grade "5 Science", matching how legacy grants behaved.
	grants, dropped := ParseGradeGrants([]string{"Grade 5 Science"}, knownDeps)
	if len(dropped) != 0 {
		t.Fatalf("unexpectedly dropped: %v", dropped)
	}
	if got := grants["Science"]; len(got) != 1 || got[0] != "5 Science" {
		t.Fatalf("got %v, want Science -> [5 Science]", grants)
	}
}

func TestParseGradeGrantsDropped(t *testing.T) {
	raws := []string{
		"Science|Grade 5",
		"History|Grade 5", // unknown department
		"",
		"Science|", // missing grade
		"gibberish",
	}
	grants, dropped := ParseGradeGrants(raws, knownDeps)
	if len(grants) != 1 || len(grants["Science"]) != 1 {
		t.Fatalf("grants = %v", grants)
	}
	want := []string{"History|Grade 5", "", "Science|", "gibberish"}
	if !reflect.DeepEqual(dropped, want) {
		t.Fatalf("dropped = %v, want %v", dropped, want)
	}
}

func TestParseGradeGrantsDedup(t *testing.T) {
	grants, _ := ParseGradeGrants([]string{"Science|Grade 5", "Science: Grade 5"}, knownDeps)
	if got := grants["Science"]; len(got) != 1 {
		t.Fatalf("duplicate grant kept twice: %v", got)
	}
}

func TestDisplayName(t *testing.T) {
	cases := map[string]string{
		"laws_of-motion":  "laws of motion",
		"photosynthesis":  "photosynthesis",
		"the__solar_sys":  "the solar sys",
		"  spaced   out ": "spaced out",
		"":                "",
	}
	for in, want := range cases {
		if got := DisplayName(in); got != want {
			t.Fatalf("DisplayName(%q) = %q, want %q", in, got, want)
		}
	}
}
