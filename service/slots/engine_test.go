package slots

import (
	"errors"
	"testing"
)

func mustParse(t *testing.T, s string) TimeOfDay {
	t.Helper()
	tod, err := ParseTimeOfDay(s)
	if err != nil {
		t.Fatalf("ParseTimeOfDay(%q): %v", s, err)
	}
	return tod
}

func TestParseTimeOfDayRoundTrip(t *testing.T) {
	for _, s := range []string{"00:00", "09:00", "09:05", "13:30", "23:59"} {
		tod, err := ParseTimeOfDay(s)
		if err != nil {
			t.Fatalf("ParseTimeOfDay(%q): %v", s, err)
		}
		if got := tod.Format(); got != s {
			t.Errorf("round trip of %q = %q", s, got)
		}
	}
}

func TestParseTimeOfDayTruncatesSeconds(t *testing.T) {
	tod, err := ParseTimeOfDay("09:30:00")
	if err != nil {
		t.Fatalf("ParseTimeOfDay: %v", err)
	}
	if got := tod.Format(); got != "09:30" {
		t.Errorf("got %q, want 09:30", got)
	}
}

func TestParseTimeOfDayRejectsMalformed(t *testing.T) {
	for _, s := range []string{"", "9", "24:00", "12:60", "ab:cd", "12-30", "-1:00"} {
		if _, err := ParseTimeOfDay(s); !errors.Is(err, ErrFormat) {
			t.Errorf("ParseTimeOfDay(%q) err = %v, want ErrFormat", s, err)
		}
	}
}

func TestOverlapsSymmetry(t *testing.T) {
	cases := []struct {
		a, b Interval
		want bool
	}{
		{Interval{540, 570}, Interval{550, 560}, true},  // containment
		{Interval{540, 570}, Interval{560, 590}, true},  // partial
		{Interval{540, 570}, Interval{570, 600}, false}, // touching endpoints
		{Interval{540, 570}, Interval{600, 630}, false}, // disjoint
	}
	for _, c := range cases {
		if got := Overlaps(c.a, c.b); got != c.want {
			t.Errorf("Overlaps(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
		}
		if got := Overlaps(c.b, c.a); got != c.want {
			t.Errorf("Overlaps(%v, %v) = %v, want %v (symmetry)", c.b, c.a, got, c.want)
		}
	}
}

func TestOverlapsSelf(t *testing.T) {
	iv := Interval{Start: 600, End: 630}
	if !Overlaps(iv, iv) {
		t.Error("a non-empty interval must overlap itself")
	}
}

func TestGenerateTilesWindow(t *testing.T) {
	start := mustParse(t, "09:00")
	end := mustParse(t, "17:00")
	generated := Generate(start, end, 30, nil)

	if len(generated) != 16 {
		t.Fatalf("got %d slots, want 16", len(generated))
	}
	prev := Interval{Start: -1, End: start}
	for _, s := range generated {
		iv := s.Interval()
		if iv.Start <= prev.Start {
			t.Errorf("slot starts not strictly increasing at %v", s)
		}
		if iv.Start != prev.End {
			t.Errorf("gap or overlap before %v", s)
		}
		if iv.End-iv.Start != 30 {
			t.Errorf("slot %v is not 30 minutes", s)
		}
		prev = iv
	}
	if prev.End != end {
		t.Errorf("last slot ends at %v, want %v", prev.End, end)
	}
}

func TestGenerateLastSlotMayOverrun(t *testing.T) {
	// 45-minute slots in a 09:00-10:00 window: the second slot runs past
	// the end of the working window and is still emitted untruncated.
	generated := Generate(mustParse(t, "09:00"), mustParse(t, "10:00"), 45, nil)
	if len(generated) != 2 {
		t.Fatalf("got %d slots, want 2", len(generated))
	}
	if generated[1].EndTime != "10:30" {
		t.Errorf("last slot ends %q, want 10:30", generated[1].EndTime)
	}
}

func TestGenerateOverrunPastMidnight(t *testing.T) {
	// 30-minute slots in a 23:00-23:45 window: the second slot ends past
	// midnight. Its rendered end reads "24:00", which is not a parseable
	// time of day, but its span must still be usable for overlap checks.
	generated := Generate(mustParse(t, "23:00"), mustParse(t, "23:45"), 30, nil)
	if len(generated) != 2 {
		t.Fatalf("got %d slots, want 2", len(generated))
	}
	last := generated[1]
	if last.EndTime != "24:00" {
		t.Errorf("last slot ends %q, want 24:00", last.EndTime)
	}
	iv := last.Interval()
	if iv.Start != 23*60+30 || iv.End != 24*60 {
		t.Errorf("last slot span = %v, want [1410, 1440)", iv)
	}
	if !Overlaps(iv, Interval{Start: mustParse(t, "23:30"), End: mustParse(t, "23:59")}) {
		t.Error("overrun slot must still participate in overlap checks")
	}
}

func TestGenerateEmptyWindow(t *testing.T) {
	if got := Generate(mustParse(t, "17:00"), mustParse(t, "09:00"), 30, nil); len(got) != 0 {
		t.Errorf("inverted window produced %d slots", len(got))
	}
	if got := Generate(mustParse(t, "09:00"), mustParse(t, "09:00"), 30, nil); len(got) != 0 {
		t.Errorf("zero-length window produced %d slots", len(got))
	}
}

func TestGenerateBreakContainmentPolicy(t *testing.T) {
	brk := &Interval{Start: mustParse(t, "13:00"), End: mustParse(t, "13:30")}
	generated := Generate(mustParse(t, "09:00"), mustParse(t, "17:00"), 30, brk)

	for _, s := range generated {
		if s.StartTime == "13:00" && s.EndTime == "13:30" {
			t.Error("slot fully inside the break window must be suppressed")
		}
	}

	// A slot straddling the break boundary is kept: the break exclusion is
	// a containment check, not an overlap check.
	brk = &Interval{Start: mustParse(t, "13:00"), End: mustParse(t, "13:30")}
	generated = Generate(mustParse(t, "09:15"), mustParse(t, "17:00"), 30, brk)
	found := false
	for _, s := range generated {
		if s.StartTime == "12:45" && s.EndTime == "13:15" {
			found = true
		}
	}
	if !found {
		t.Error("slot straddling the break boundary must still be emitted")
	}
}
