package prediction

import "testing"

func TestNormalizeUserKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "Ann", want: "ann"},
		{in: "  ANN  ", want: "ann"},
		{in: "\tann\n", want: "ann"},
		{in: "Ann  Lee", want: "ann  lee"},
		{in: "ann.lee@example.com", want: "ann.lee@example.com"},
		{in: "", want: ""},
	}
	for _, tc := range tests {
		if got := NormalizeUserKey(tc.in); got != tc.want {
			t.Fatalf("NormalizeUserKey(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestForMatch(t *testing.T) {
	t.Parallel()

	items := []Prediction{
		{ID: "1", MatchID: "m1"},
		{ID: "2", MatchID: "m2"},
		{ID: "3", MatchID: "m1"},
	}
	got := ForMatch(items, "m1")
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Fatalf("unexpected filter result: %+v", got)
	}
}
