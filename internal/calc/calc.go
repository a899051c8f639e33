// Package calc provides the studio calculators: tempo-synced delay and
// reverb times, LFO rates and the EQ frequency band chart.
package calc

import (
	"errors"
	"fmt"
	"math"
)

// Tempo bounds accepted by the calculators.
const (
	MinBPM = 1
	MaxBPM = 999
)

var (
	// ErrInvalidBPM is returned for a tempo outside [MinBPM, MaxBPM],
	// including NaN and infinities.
	ErrInvalidBPM = errors.New("bpm must be between 1 and 999")

	// ErrInvalidBars is returned for a bar count that is NaN or infinite.
	ErrInvalidBars = errors.New("bars must be a finite number")
)

// ValidBPM reports whether bpm is a finite tempo within bounds.
func ValidBPM(bpm float64) bool {
	return bpm >= MinBPM && bpm <= MaxBPM
}

// Timings holds note and effect durations in milliseconds for one tempo.
type Timings struct {
	BPM float64

	Whole        int
	Half         int
	Quarter      int
	Eighth       int
	Sixteenth    int
	ThirtySecond int

	DottedQuarter int
	DottedEighth  int

	TripletQuarter int
	TripletEighth  int

	PreDelay   int
	ShortDecay int
	LongDecay  int

	// LFO rates in Hz, formatted with three decimals.
	QuarterHz string
	EighthHz  string
}

// Compute returns the timings for bpm.
func Compute(bpm float64) (Timings, error) {
	if !ValidBPM(bpm) {
		return Timings{}, fmt.Errorf("%w: %v", ErrInvalidBPM, bpm)
	}

	q := 60000 / bpm
	ms := func(v float64) int { return int(math.Round(v)) }

	return Timings{
		BPM: bpm,

		Whole:        ms(q * 4),
		Half:         ms(q * 2),
		Quarter:      ms(q),
		Eighth:       ms(q / 2),
		Sixteenth:    ms(q / 4),
		ThirtySecond: ms(q / 8),

		DottedQuarter: ms(q * 1.5),
		DottedEighth:  ms(q * 0.75),

		TripletQuarter: ms(q * 2 / 3),
		TripletEighth:  ms(q / 3),

		PreDelay:   ms(q / 16),
		ShortDecay: ms(q * 2),
		LongDecay:  ms(q * 4),

		QuarterHz: fmt.Sprintf("%.3f", bpm/60),
		EighthHz:  fmt.Sprintf("%.3f", bpm/30),
	}, nil
}

// Row is one labeled value in a display group.
type Row struct {
	Label string
	Value string
}

// Group is a titled set of rows.
type Group struct {
	Title string
	Rows  []Row
}

// Groups lays the timings out the way the calculator shows them.
func (t Timings) Groups() []Group {
	msRow := func(label string, v int) Row { return Row{label, fmt.Sprintf("%d ms", v)} }
	return []Group{
		{"Note Values", []Row{
			msRow("Whole Note", t.Whole),
			msRow("Half Note", t.Half),
			msRow("1/4 Note", t.Quarter),
			msRow("1/8 Note", t.Eighth),
			msRow("1/16 Note", t.Sixteenth),
			msRow("1/32 Note", t.ThirtySecond),
		}},
		{"Dotted", []Row{
			msRow("Dotted 1/4", t.DottedQuarter),
			msRow("Dotted 1/8", t.DottedEighth),
		}},
		{"Triplets", []Row{
			msRow("1/4 Triplet", t.TripletQuarter),
			msRow("1/8 Triplet", t.TripletEighth),
		}},
		{"Reverb", []Row{
			msRow("Pre-Delay", t.PreDelay),
			msRow("Short Decay", t.ShortDecay),
			msRow("Long Decay", t.LongDecay),
		}},
		{"LFO Rate", []Row{
			{"1/4 Note", t.QuarterHz + " Hz"},
			{"1/8 Note", t.EighthHz + " Hz"},
		}},
	}
}

// BarsToSeconds converts a bar count to seconds. beatsPerBar <= 0 means 4.
func BarsToSeconds(bars, bpm float64, beatsPerBar int) (float64, error) {
	if !ValidBPM(bpm) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidBPM, bpm)
	}
	if math.IsNaN(bars) || math.IsInf(bars, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidBars, bars)
	}
	if beatsPerBar <= 0 {
		beatsPerBar = 4
	}
	return bars * float64(beatsPerBar) * 60 / bpm, nil
}
