package audio

import (
	"math"
	"testing"

	"github.com/gopxl/beep/v2"

	"github.com/vovakirdan/tui-racer/internal/config"
)

func soundConfig() config.SoundConfig {
	return config.SoundConfig{Enabled: true, Rate: 44100, BufferMS: 50}
}

func TestRingWrapAround(t *testing.T) {
	r := NewRing(4)
	r.Write([][2]float64{{1, 1}, {2, 2}, {3, 3}})

	out := make([][2]float64, 2)
	r.Stream(out)
	if out[0][0] != 1 || out[1][0] != 2 {
		t.Fatalf("Stream() = %v, expected samples 1 and 2", out)
	}

	r.Write([][2]float64{{4, 4}, {5, 5}, {6, 6}})
	if r.Len() != 4 {
		t.Errorf("Len() = %d, expected 4", r.Len())
	}

	out = make([][2]float64, 4)
	r.Stream(out)
	for i, want := range []float64{3, 4, 5, 6} {
		if out[i][0] != want {
			t.Errorf("sample %d = %v, expected %v", i, out[i][0], want)
		}
	}
}

func TestRingUnderrunFillsSilence(t *testing.T) {
	r := NewRing(8)
	r.Write([][2]float64{{0.5, 0.5}})

	out := [][2]float64{{9, 9}, {9, 9}, {9, 9}}
	n, ok := r.Stream(out)
	if n != 3 || !ok {
		t.Errorf("Stream() = %d, %v, expected 3, true", n, ok)
	}
	if out[0][0] != 0.5 || out[1] != [2]float64{} || out[2] != [2]float64{} {
		t.Errorf("Stream() = %v, expected one sample then silence", out)
	}
	if r.Underruns() != 1 {
		t.Errorf("Underruns() = %d, expected 1", r.Underruns())
	}
}

func TestRingOverrun(t *testing.T) {
	r := NewRing(2)
	if n := r.Write(make([][2]float64, 5)); n != 2 {
		t.Errorf("Write() = %d, expected 2", n)
	}
	if r.Overruns() != 1 {
		t.Errorf("Overruns() = %d, expected 1", r.Overruns())
	}
}

func TestDisabledAudio(t *testing.T) {
	cfg := soundConfig()
	cfg.Enabled = false
	a := New(cfg, 60, nil)

	a.Tick()
	a.Start(nil)
	if a.AdjustSpeed() != 1.0 {
		t.Errorf("AdjustSpeed() = %v, expected 1.0", a.AdjustSpeed())
	}
	if err := a.Stop(); err != nil {
		t.Errorf("Stop() = %v, expected nil", err)
	}
}

func TestTickProducesOneFrameOfSamples(t *testing.T) {
	a := New(soundConfig(), 60, nil)

	for i := 0; i < 3; i++ {
		a.Tick()
	}

	want := 3 * 44100 * 1000 * 1.001 / 60 / 1000
	if got := float64(a.ring.Len()); math.Abs(got-want) > 1 {
		t.Errorf("ring fill = %v, expected about %v", got, want)
	}
}

func TestTickRendersSource(t *testing.T) {
	a := New(soundConfig(), 60, nil)
	a.SetSource(beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{0.25, -0.25}
		}
		return len(samples), true
	}))

	a.Tick()

	out := make([][2]float64, 10)
	a.ring.Stream(out)
	if out[9] != [2]float64{0.25, -0.25} {
		t.Errorf("sample = %v, expected source output", out[9])
	}
}

func TestTickExhaustedSourcePadsSilence(t *testing.T) {
	a := New(soundConfig(), 60, nil)
	a.SetSource(beep.Silence(10))

	a.Tick()
	a.Tick()

	if a.ring.Len() < 1400 {
		t.Errorf("ring fill = %d, expected two full frames", a.ring.Len())
	}
}

func TestAdjustSpeed(t *testing.T) {
	a := New(soundConfig(), 60, nil)

	if got := a.AdjustSpeed(); math.Abs(got-MinSpeed) > 1e-9 {
		t.Errorf("AdjustSpeed() on empty ring = %v, expected %v", got, MinSpeed)
	}

	a.ring.Write(make([][2]float64, a.target))
	if got := a.AdjustSpeed(); math.Abs(got-1) > 1e-9 {
		t.Errorf("AdjustSpeed() at target = %v, expected 1", got)
	}

	a.ring.Write(make([][2]float64, a.target*2))
	if got := a.AdjustSpeed(); got != MaxSpeed {
		t.Errorf("AdjustSpeed() over target = %v, expected %v", got, MaxSpeed)
	}
}

type countingOutput struct{ samples chan int }

func (o *countingOutput) Play(s [][2]float64) error {
	select {
	case o.samples <- len(s):
	default:
	}
	return nil
}

func TestStartAndStop(t *testing.T) {
	a := New(soundConfig(), 60, nil)
	out := &countingOutput{samples: make(chan int, 1)}

	a.Start(out)
	if a.ring.Len() == 0 {
		t.Error("Start() should prime the ring")
	}
	<-out.samples

	if err := a.Stop(); err != nil {
		t.Errorf("Stop() = %v", err)
	}
	if err := a.Stop(); err != nil {
		t.Errorf("second Stop() = %v, expected nil", err)
	}
}
