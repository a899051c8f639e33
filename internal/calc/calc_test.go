package calc

import (
	"errors"
	"math"
	"testing"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		bpm  float64
		want Timings
	}{
		{
			bpm: 120,
			want: Timings{
				BPM: 120, Whole: 2000, Half: 1000, Quarter: 500, Eighth: 250, Sixteenth: 125, ThirtySecond: 63,
				DottedQuarter: 750, DottedEighth: 375, TripletQuarter: 333, TripletEighth: 167,
				PreDelay: 31, ShortDecay: 1000, LongDecay: 2000, QuarterHz: "2.000", EighthHz: "4.000",
			},
		},
		{
			bpm: 128,
			want: Timings{
				BPM: 128, Whole: 1875, Half: 938, Quarter: 469, Eighth: 234, Sixteenth: 117, ThirtySecond: 59,
				DottedQuarter: 703, DottedEighth: 352, TripletQuarter: 313, TripletEighth: 156,
				PreDelay: 29, ShortDecay: 938, LongDecay: 1875, QuarterHz: "2.133", EighthHz: "4.267",
			},
		},
	}

	for _, tt := range tests {
		got, err := Compute(tt.bpm)
		if err != nil {
			t.Fatalf("Compute(%v) error = %v", tt.bpm, err)
		}
		if got != tt.want {
			t.Errorf("Compute(%v) =\n%+v\nwant\n%+v", tt.bpm, got, tt.want)
		}
	}
}

func TestCompute_Invalid(t *testing.T) {
	for _, bpm := range []float64{0, -10, math.NaN(), math.Inf(1), math.Inf(-1), 1e-300, 0.5, MaxBPM + 1, 1e300} {
		if _, err := Compute(bpm); !errors.Is(err, ErrInvalidBPM) {
			t.Errorf("Compute(%v) error = %v, want ErrInvalidBPM", bpm, err)
		}
	}
}

func TestCompute_Bounds(t *testing.T) {
	for _, bpm := range []float64{MinBPM, MaxBPM} {
		got, err := Compute(bpm)
		if err != nil {
			t.Fatalf("Compute(%v) error = %v", bpm, err)
		}
		if got.Whole <= 0 || got.Whole < got.ThirtySecond {
			t.Errorf("Compute(%v) = %+v", bpm, got)
		}
	}
	if got, _ := Compute(MinBPM); got.Whole != 240000 {
		t.Errorf("whole note at %d BPM = %d ms, want 240000", MinBPM, got.Whole)
	}
}

func TestTimings_Groups(t *testing.T) {
	tm, _ := Compute(120)
	groups := tm.Groups()
	if len(groups) != 5 {
		t.Fatalf("got %d groups, want 5", len(groups))
	}
	if got := groups[0].Rows[2]; got.Label != "1/4 Note" || got.Value != "500 ms" {
		t.Errorf("quarter row = %+v", got)
	}
	if got := groups[4].Rows[0].Value; got != "2.000 Hz" {
		t.Errorf("LFO row = %q", got)
	}
}

func TestBarsToSeconds(t *testing.T) {
	tests := []struct {
		bars        float64
		bpm         float64
		beatsPerBar int
		want        float64
	}{
		{4, 120, 4, 8},
		{1, 60, 0, 4},
		{2, 90, 3, 4},
	}

	for _, tt := range tests {
		got, err := BarsToSeconds(tt.bars, tt.bpm, tt.beatsPerBar)
		if err != nil {
			t.Fatalf("BarsToSeconds error = %v", err)
		}
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("BarsToSeconds(%v, %v, %d) = %v, want %v", tt.bars, tt.bpm, tt.beatsPerBar, got, tt.want)
		}
	}

	for _, bpm := range []float64{0, math.NaN(), math.Inf(1), 1e-300, 1e6} {
		if _, err := BarsToSeconds(1, bpm, 4); !errors.Is(err, ErrInvalidBPM) {
			t.Errorf("BarsToSeconds(1, %v, 4): expected ErrInvalidBPM, got %v", bpm, err)
		}
	}
	for _, bars := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := BarsToSeconds(bars, 120, 4); !errors.Is(err, ErrInvalidBars) {
			t.Errorf("BarsToSeconds(%v, 120, 4): expected ErrInvalidBars, got %v", bars, err)
		}
	}
}

func TestPresetsAndBands(t *testing.T) {
	p := Presets()
	if len(p) != 5 || p[2].Label != "House" || p[2].BPM != 128 {
		t.Errorf("unexpected presets %+v", p)
	}
	p[0].BPM = 1
	if Presets()[0].BPM != 80 {
		t.Error("Presets() must return a copy")
	}

	if len(FrequencyBands()) != 7 {
		t.Errorf("want 7 bands")
	}

	tests := []struct {
		hz   float64
		want string
		ok   bool
	}{
		{40, "Sub Bass", true},
		{250, "Low Mids", true},
		{3000, "Presence", true},
		{20000, "Air", true},
		{10, "", false},
		{25000, "", false},
	}
	for _, tt := range tests {
		b, ok := BandFor(tt.hz)
		if ok != tt.ok || b.Name != tt.want {
			t.Errorf("BandFor(%v) = %q, %v; want %q, %v", tt.hz, b.Name, ok, tt.want, tt.ok)
		}
	}
}
