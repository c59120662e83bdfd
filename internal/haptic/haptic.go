// Package haptic provides force feedback for the cabinet. Terminals have no
// motor, so the device turns rumble into a short screen shake that the
// video collaborator applies to each frame.
package haptic

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/vovakirdan/tui-racer/internal/config"
)

// ErrDisabled is returned by Open when force feedback is switched off.
var ErrDisabled = errors.New("haptic: disabled")

// Device is a force-feedback device.
type Device struct {
	mu        sync.Mutex
	minForce  int
	maxForce  int
	duration  time.Duration
	intensity float64
	until     time.Time
	closed    bool
	now       func() time.Time
}

// Open creates a device from the controls configuration.
func Open(cfg config.ControlsConfig) (*Device, error) {
	if !cfg.Haptic {
		return nil, ErrDisabled
	}
	if cfg.MaxForce <= 0 {
		return nil, fmt.Errorf("haptic: invalid force range %d..%d", cfg.MinForce, cfg.MaxForce)
	}
	d := time.Duration(cfg.ForceDuration) * time.Millisecond
	if d <= 0 {
		d = 20 * time.Millisecond
	}
	return &Device{
		minForce: cfg.MinForce,
		maxForce: cfg.MaxForce,
		duration: d,
		now:      time.Now,
	}, nil
}

// Rumble starts an effect at intensity in [0, 1] lasting one force
// duration. Zero stops any running effect.
func (d *Device) Rumble(intensity float64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	if intensity <= 0 {
		d.intensity = 0
		d.until = time.Time{}
		return
	}
	if intensity > 1 {
		intensity = 1
	}
	d.intensity = intensity
	d.until = d.now().Add(d.duration)
}

// Force returns the current effect strength mapped onto the configured
// force range, or 0 when idle.
func (d *Device) Force() int {
	i := d.active()
	if i == 0 {
		return 0
	}
	return d.minForce + int(i*float64(d.maxForce-d.minForce))
}

// Offset returns the horizontal shake to apply to frame number frame:
// alternating -1/+1 while an effect runs, 0 otherwise.
func (d *Device) Offset(frame uint64) int {
	if d.active() == 0 {
		return 0
	}
	if frame%2 == 0 {
		return -1
	}
	return 1
}

// Close stops the device. Further effects are ignored.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return errors.New("haptic: already closed")
	}
	d.closed = true
	d.intensity = 0
	return nil
}

func (d *Device) active() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed || d.intensity == 0 || !d.now().Before(d.until) {
		return 0
	}
	return d.intensity
}
