package main

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// chime plays a short rising two-note tune. A nil or muted chime is silent.
type chime struct {
	enabled bool
}

func newChime(mute bool) (*chime, error) {
	if mute {
		return &chime{}, nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return &chime{}, err
	}
	return &chime{enabled: true}, nil
}

// tune builds the notes; each is a sine tone played for d.
func tune(d time.Duration, freqs ...float64) (beep.Streamer, error) {
	notes := make([]beep.Streamer, 0, len(freqs))
	for _, f := range freqs {
		sine, err := generators.SineTone(sampleRate, f)
		if err != nil {
			return nil, err
		}
		notes = append(notes, beep.Take(sampleRate.N(d), sine))
	}
	return &effects.Volume{Streamer: beep.Seq(notes...), Base: 2, Volume: -2}, nil
}

func (c *chime) play() {
	if c == nil || !c.enabled {
		return
	}
	s, err := tune(90*time.Millisecond, 660, 880, 1320)
	if err != nil {
		return
	}
	speaker.Play(s)
}

func (c *chime) close() {
	if c == nil || !c.enabled {
		return
	}
	speaker.Close()
	c.enabled = false
}
