package ledger

import (
	"slices"
	"testing"

	"github.com/david-rodelgo/gastoscompartidos/internal/calculator"
)

func TestKey(t *testing.T) {
	tests := []struct {
		transfer calculator.Transfer
		want     string
	}{
		{calculator.Transfer{From: "B", To: "A", Amount: 50}, "B-A-50.00"},
		{calculator.Transfer{From: "B", To: "A", Amount: 33.333333}, "B-A-33.33"},
		{calculator.Transfer{From: "B", To: "A", Amount: 12.5}, "B-A-12.50"},
		{calculator.Transfer{From: "x-1", To: "y-2", Amount: 0.996}, "x-1-y-2-1.00"},
		// Binary values just below a half cent round down.
		{calculator.Transfer{From: "B", To: "A", Amount: 5.005}, "B-A-5.00"},
		{calculator.Transfer{From: "B", To: "A", Amount: 1.005}, "B-A-1.00"},
		{calculator.Transfer{From: "B", To: "A", Amount: 0.015}, "B-A-0.01"},
		// Exact halves round up.
		{calculator.Transfer{From: "B", To: "A", Amount: 0.125}, "B-A-0.13"},
		{calculator.Transfer{From: "B", To: "A", Amount: 10.03}, "B-A-10.03"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := Key(tt.transfer); got != tt.want {
				t.Errorf("Key(%+v) = %q, want %q", tt.transfer, got, tt.want)
			}
		})
	}
}

func sameSet(a, b []string) bool {
	a, b = slices.Clone(a), slices.Clone(b)
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(a, b)
}

func TestToggle(t *testing.T) {
	t.Run("adds missing key", func(t *testing.T) {
		got := Toggle([]string{"a"}, "b")
		if !sameSet(got, []string{"a", "b"}) {
			t.Errorf("Toggle = %v, want [a b]", got)
		}
	})

	t.Run("removes present key", func(t *testing.T) {
		got := Toggle([]string{"a", "b", "c"}, "b")
		if !slices.Equal(got, []string{"a", "c"}) {
			t.Errorf("Toggle = %v, want [a c]", got)
		}
	})

	t.Run("does not modify input", func(t *testing.T) {
		in := []string{"a", "b"}
		Toggle(in, "a")
		Toggle(in[:1], "z")
		if !slices.Equal(in, []string{"a", "b"}) {
			t.Errorf("input modified: %v", in)
		}
	})

	t.Run("twice is identity", func(t *testing.T) {
		for _, start := range [][]string{nil, {"a"}, {"a", "b", "c"}} {
			for _, key := range []string{"a", "b", "zz"} {
				got := Toggle(Toggle(start, key), key)
				if !sameSet(got, start) {
					t.Errorf("Toggle(Toggle(%v, %q)) = %v", start, key, got)
				}
			}
		}
	})
}

func TestIsSettled(t *testing.T) {
	confirmed := []string{"B-A-50.00"}
	if !IsSettled(confirmed, "B-A-50.00") {
		t.Error("expected B-A-50.00 to be settled")
	}
	if IsSettled(confirmed, "B-A-50.01") {
		t.Error("expected B-A-50.01 not to be settled")
	}
	if IsSettled(nil, "B-A-50.00") {
		t.Error("expected nothing settled in an empty ledger")
	}
}

func TestOrphanedAndPrune(t *testing.T) {
	transfers := []calculator.Transfer{
		{From: "B", To: "A", Amount: 30},
		{From: "C", To: "A", Amount: 30},
	}
	confirmed := []string{"old-key", "C-A-30.00", "B-A-45.00"}

	orphans := Orphaned(confirmed, transfers)
	if !slices.Equal(orphans, []string{"old-key", "B-A-45.00"}) {
		t.Errorf("Orphaned = %v", orphans)
	}

	pruned := Prune(confirmed, transfers)
	if !slices.Equal(pruned, []string{"C-A-30.00"}) {
		t.Errorf("Prune = %v", pruned)
	}
	if len(confirmed) != 3 {
		t.Errorf("Prune modified its input: %v", confirmed)
	}
}
