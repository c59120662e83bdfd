package haptic

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/tui-racer/internal/config"
)

func openTest(t *testing.T) (*Device, *time.Time) {
	t.Helper()
	cfg := config.Default().Controls
	d, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	now := time.Unix(100, 0)
	d.now = func() time.Time { return now }
	return d, &now
}

func TestOpenDisabled(t *testing.T) {
	cfg := config.Default().Controls
	cfg.Haptic = false
	if _, err := Open(cfg); !errors.Is(err, ErrDisabled) {
		t.Errorf("Open() = %v, expected ErrDisabled", err)
	}

	cfg.Haptic = true
	cfg.MaxForce = 0
	if _, err := Open(cfg); err == nil {
		t.Error("Open() with no force range should fail")
	}
}

func TestRumbleExpires(t *testing.T) {
	d, now := openTest(t)

	d.Rumble(1)
	if d.Force() != 9000 {
		t.Errorf("Force() = %d, expected 9000", d.Force())
	}
	if d.Offset(3) != 1 || d.Offset(4) != -1 {
		t.Error("Offset() should alternate while rumbling")
	}

	*now = now.Add(25 * time.Millisecond)
	if d.Force() != 0 || d.Offset(3) != 0 {
		t.Error("effect should expire after the force duration")
	}
}

func TestRumbleZeroStops(t *testing.T) {
	d, _ := openTest(t)
	d.Rumble(0.5)
	if got := d.Force(); got != 8750 {
		t.Errorf("Force() = %d, expected 8750", got)
	}
	d.Rumble(0)
	if d.Force() != 0 {
		t.Error("Rumble(0) should stop the effect")
	}
}

func TestCloseTwice(t *testing.T) {
	d, _ := openTest(t)
	if err := d.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	d.Rumble(1)
	if d.Force() != 0 {
		t.Error("closed device should ignore effects")
	}
	if err := d.Close(); err == nil {
		t.Error("second Close() should report an error")
	}
}
