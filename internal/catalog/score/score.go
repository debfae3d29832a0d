// Package score defines the decimal score value used across the catalog.
//
// Scores are stored in integer hundredths (4.50 is 450) so aggregation and
// rounding stay exact decimal arithmetic instead of binary floating point.
package score

import (
	"fmt"
	"strconv"
	"strings"
)

// Score is a non-negative decimal score held in hundredths.
type Score int64

// Max is the highest score an analysis result may carry (5.00).
const Max Score = 500

// MinBand and MaxBand bound the display band used for color coding.
const (
	MinBand = 1
	MaxBand = 5
)

// FromHundredths builds a Score from raw hundredths.
func FromHundredths(value int64) Score {
	return Score(value)
}

// Parse reads a decimal score string with at most two fractional digits.
func Parse(value string) (Score, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("score is required")
	}
	whole, frac, hasFrac := strings.Cut(value, ".")
	if whole == "" {
		whole = "0"
	}
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid score %q", value)
	}
	if units < 0 || strings.HasPrefix(whole, "-") {
		return 0, fmt.Errorf("score cannot be negative")
	}
	hundredths := units * 100
	if hasFrac {
		if frac == "" || len(frac) > 2 {
			return 0, fmt.Errorf("score %q must have at most two decimal places", value)
		}
		for len(frac) < 2 {
			frac += "0"
		}
		fracValue, err := strconv.ParseInt(frac, 10, 64)
		if err != nil || fracValue < 0 {
			return 0, fmt.Errorf("invalid score %q", value)
		}
		hundredths += fracValue
	}
	if Score(hundredths) > Max {
		return 0, fmt.Errorf("score %q exceeds the maximum %s", value, Max)
	}
	return Score(hundredths), nil
}

// Hundredths returns the raw hundredths value.
func (s Score) Hundredths() int64 {
	return int64(s)
}

// String renders the score with exactly two decimal places.
func (s Score) String() string {
	return fmt.Sprintf("%d.%02d", int64(s)/100, int64(s)%100)
}

// Band maps the score to an integer presentation band.
// The score is rounded to the nearest integer, half up, then clamped to
// [MinBand, MaxBand].
func (s Score) Band() int {
	band := int((int64(s) + 50) / 100)
	if band < MinBand {
		return MinBand
	}
	if band > MaxBand {
		return MaxBand
	}
	return band
}

// Weighted pairs a score with a positive integer weight.
type Weighted struct {
	Score  Score
	Weight int
}

// WeightedMean returns the weight-weighted arithmetic mean of the supplied
// scores, rounded half up to two decimal places. The bool is false when no
// entry carries a positive weight, which callers must treat as "no score"
// rather than zero.
func WeightedMean(entries []Weighted) (Score, bool) {
	var sum int64
	var totalWeight int64
	for _, entry := range entries {
		if entry.Weight <= 0 {
			continue
		}
		sum += entry.Score.Hundredths() * int64(entry.Weight)
		totalWeight += int64(entry.Weight)
	}
	if totalWeight == 0 {
		return 0, false
	}
	// Half-up rounding of sum/totalWeight in integer hundredths.
	return Score((2*sum + totalWeight) / (2 * totalWeight)), true
}
