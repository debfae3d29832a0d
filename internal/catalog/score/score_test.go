package score

import "testing"

func TestParse(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input   string
		want    Score
		wantErr bool
	}{
		{"4.50", 450, false},
		{"4.5", 450, false},
		{"4", 400, false},
		{"0", 0, false},
		{"0.05", 5, false},
		{"5.00", 500, false},
		{".5", 50, false},
		{"", 0, true},
		{"-1", 0, true},
		{"5.01", 0, true},
		{"7.50", 0, true},
		{"600", 0, true},
		{"4.505", 0, true},
		{"4.", 0, true},
		{"abc", 0, true},
	}
	for _, tc := range cases {
		got, err := Parse(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("Parse(%q) expected error, got %v", tc.input, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("Parse(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestString(t *testing.T) {
	t.Parallel()

	cases := []struct {
		score Score
		want  string
	}{
		{450, "4.50"},
		{400, "4.00"},
		{5, "0.05"},
		{0, "0.00"},
		{467, "4.67"},
	}
	for _, tc := range cases {
		if got := tc.score.String(); got != tc.want {
			t.Fatalf("Score(%d).String() = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestBand(t *testing.T) {
	t.Parallel()

	cases := []struct {
		score Score
		want  int
	}{
		{450, 5},  // 4.50 rounds up
		{449, 4},  // 4.49 rounds down
		{50, 1},   // 0.50 rounds to 1
		{0, 1},    // clamped to minimum band
		{49, 1},   // 0.49 clamped up to 1
		{500, 5},  // 5.00
		{1000, 5}, // out-of-range clamped down
	}
	for _, tc := range cases {
		if got := tc.score.Band(); got != tc.want {
			t.Fatalf("Score(%d).Band() = %d, want %d", tc.score, got, tc.want)
		}
	}
}

func TestWeightedMean(t *testing.T) {
	t.Parallel()

	t.Run("spec example fields", func(t *testing.T) {
		t.Parallel()
		// A (weight 2, 4.50) and B (weight 1, 3.00) => 4.00.
		got, ok := WeightedMean([]Weighted{
			{Score: 450, Weight: 2},
			{Score: 300, Weight: 1},
		})
		if !ok {
			t.Fatal("expected a mean")
		}
		if got != 400 {
			t.Fatalf("mean = %s, want 4.00", got)
		}
	})

	t.Run("spec example categories", func(t *testing.T) {
		t.Parallel()
		// Tech (weight 1, 4.00) and Security (weight 2, 5.00) => 4.67.
		got, ok := WeightedMean([]Weighted{
			{Score: 400, Weight: 1},
			{Score: 500, Weight: 2},
		})
		if !ok {
			t.Fatal("expected a mean")
		}
		if got != 467 {
			t.Fatalf("mean = %s, want 4.67", got)
		}
	})

	t.Run("empty input yields no score", func(t *testing.T) {
		t.Parallel()
		if _, ok := WeightedMean(nil); ok {
			t.Fatal("expected no mean for empty input")
		}
	})

	t.Run("zero weights yield no score", func(t *testing.T) {
		t.Parallel()
		if _, ok := WeightedMean([]Weighted{{Score: 400, Weight: 0}}); ok {
			t.Fatal("expected no mean when all weights are zero")
		}
	})

	t.Run("single entry equals its score", func(t *testing.T) {
		t.Parallel()
		got, ok := WeightedMean([]Weighted{{Score: 317, Weight: 7}})
		if !ok || got != 317 {
			t.Fatalf("mean = %v (%v), want 3.17", got, ok)
		}
	})

	t.Run("identical scores collapse to common value", func(t *testing.T) {
		t.Parallel()
		got, ok := WeightedMean([]Weighted{
			{Score: 275, Weight: 1},
			{Score: 275, Weight: 3},
			{Score: 275, Weight: 9},
		})
		if !ok || got != 275 {
			t.Fatalf("mean = %v (%v), want 2.75", got, ok)
		}
	})

	t.Run("mean stays within score bounds", func(t *testing.T) {
		t.Parallel()
		entries := []Weighted{
			{Score: 120, Weight: 3},
			{Score: 480, Weight: 5},
			{Score: 333, Weight: 2},
		}
		got, ok := WeightedMean(entries)
		if !ok {
			t.Fatal("expected a mean")
		}
		if got < 120 || got > 480 {
			t.Fatalf("mean %s escaped [1.20, 4.80]", got)
		}
	})

	t.Run("half-up rounding", func(t *testing.T) {
		t.Parallel()
		// (1.00 + 1.01) / 2 = 1.005 which must round up to 1.01.
		got, ok := WeightedMean([]Weighted{
			{Score: 100, Weight: 1},
			{Score: 101, Weight: 1},
		})
		if !ok || got != 101 {
			t.Fatalf("mean = %v (%v), want 1.01", got, ok)
		}
	})
}
