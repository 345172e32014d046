package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/sirupsen/logrus"

	"github.com/distantorigin/discord-monitor/internal/logging"
)

// SampleRate is used for every generated cue
const SampleRate = beep.SampleRate(44100)

// Cue identifies a short notification sound
type Cue int

const (
	Success Cue = iota
	Failure
)

type note struct {
	freq float64 // 0 is a rest
	dur  time.Duration
}

var cues = map[Cue][]note{
	Success: {{660, 90 * time.Millisecond}, {0, 20 * time.Millisecond}, {880, 140 * time.Millisecond}},
	Failure: {{440, 160 * time.Millisecond}, {0, 30 * time.Millisecond}, {330, 260 * time.Millisecond}},
}

var (
	speakerOnce  sync.Once
	speakerReady bool
	enabled      bool
	volumeDB     = -1.5
)

// Init turns cues on or off. Silent runs pass false.
func Init(on bool) {
	enabled = on
}

// Enabled reports whether Play makes any sound
func Enabled() bool {
	return enabled
}

func ensureSpeakerInitialized() bool {
	speakerOnce.Do(func() {
		if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
			logging.Warn("Audio unavailable", logrus.Fields{"error": err})
			return
		}
		speakerReady = true
	})
	return speakerReady
}

// Render builds the streamer for c and returns its length in samples
func Render(c Cue, sr beep.SampleRate) (beep.Streamer, int, error) {
	notes, ok := cues[c]
	if !ok {
		return nil, 0, fmt.Errorf("unknown cue %d", int(c))
	}

	parts := make([]beep.Streamer, 0, len(notes))
	total := 0
	for _, n := range notes {
		samples := sr.N(n.dur)
		total += samples
		if n.freq == 0 {
			parts = append(parts, beep.Silence(samples))
			continue
		}
		tone, err := generators.SineTone(sr, n.freq)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to generate tone: %w", err)
		}
		parts = append(parts, beep.Take(samples, tone))
	}

	return &effects.Volume{
		Streamer: beep.Seq(parts...),
		Base:     2,
		Volume:   volumeDB,
		Silent:   false,
	}, total, nil
}

// Play plays c and blocks until it finishes
func Play(c Cue) {
	if !enabled {
		return
	}

	streamer, _, err := Render(c, SampleRate)
	if err != nil {
		logging.Warn("Couldn't play sound", logrus.Fields{"error": err})
		return
	}
	if !ensureSpeakerInitialized() {
		return
	}

	done := make(chan struct{})
	speaker.Play(beep.Seq(streamer, beep.Callback(func() {
		close(done)
	})))
	<-done
}

// StopAll stops anything currently playing
func StopAll() {
	if !speakerReady {
		return
	}
	speaker.Clear()
}
