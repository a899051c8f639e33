package calc

// Preset is a named starting tempo.
type Preset struct {
	Label string
	BPM   float64
}

// Band is one region of the audible spectrum.
type Band struct {
	Name   string
	LowHz  float64
	HighHz float64
	Range  string
	Desc   string
}

var presets = []Preset{
	{"Chill", 80},
	{"Hip-Hop", 90},
	{"House", 128},
	{"Trap", 140},
	{"D&B", 174},
}

var bands = []Band{
	{"Sub Bass", 20, 60, "20-60 Hz", "Feel, don't hear. Avoid rumble."},
	{"Bass", 60, 250, "60-250 Hz", "The foundation. Kick & bass power."},
	{"Low Mids", 250, 500, "250-500 Hz", "Warmth. Can get muddy."},
	{"Mids", 500, 2000, "500-2k Hz", "Body of most instruments."},
	{"Presence", 2000, 5000, "2k-5k Hz", "Vocals & clarity."},
	{"Brilliance", 5000, 10000, "5k-10k Hz", "Sibilance & definition."},
	{"Air", 10000, 20000, "10k-20k Hz", "Sparkle & openness."},
}

// Presets returns the tempo presets.
func Presets() []Preset {
	return append([]Preset(nil), presets...)
}

// FrequencyBands returns the spectrum chart, low to high.
func FrequencyBands() []Band {
	return append([]Band(nil), bands...)
}

// BandFor returns the band containing hz. Boundaries belong to the upper
// band.
func BandFor(hz float64) (Band, bool) {
	for _, b := range bands {
		if hz >= b.LowHz && hz < b.HighHz {
			return b, true
		}
	}
	if hz == bands[len(bands)-1].HighHz {
		return bands[len(bands)-1], true
	}
	return Band{}, false
}
