package tax

import "testing"

func TestDefaultTableEntries(t *testing.T) {
	table := DefaultTable()
	entries := table.Entries()
	if len(entries) != 13 {
		t.Fatalf("expected 13 provinces, got %d", len(entries))
	}
	if entries[0].Province != "Alberta" || entries[12].Province != "Yukon" {
		t.Fatalf("unexpected entry order: first=%q last=%q", entries[0].Province, entries[12].Province)
	}
}

func TestRateLookup(t *testing.T) {
	table := DefaultTable()

	bps, ok := table.Rate("Ontario")
	if !ok || bps != 1300 {
		t.Fatalf("Ontario: expected 1300 bps, got %d ok=%v", bps, ok)
	}
	bps, ok = table.Rate("Quebec")
	if !ok || bps != 1490 {
		t.Fatalf("Quebec: expected 1490 bps, got %d ok=%v", bps, ok)
	}
	if _, ok := table.Rate("ontario"); ok {
		t.Fatal("lookup must be case-sensitive")
	}
	if _, ok := table.Rate("Atlantis"); ok {
		t.Fatal("unknown province must miss")
	}
}

func TestEntriesAreACopy(t *testing.T) {
	table := DefaultTable()
	entries := table.Entries()
	entries[0].RateBps = 9999
	if bps, _ := table.Rate("Alberta"); bps != 500 {
		t.Fatalf("table mutated through Entries copy: %d", bps)
	}
}

func TestPercentString(t *testing.T) {
	cases := map[int]string{
		500:  "5",
		1200: "12",
		1300: "13",
		1490: "14.9",
	}
	for bps, want := range cases {
		if got := PercentString(bps); got != want {
			t.Fatalf("PercentString(%d) = %q, want %q", bps, got, want)
		}
	}
}
