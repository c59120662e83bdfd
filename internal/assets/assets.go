// Package assets loads track packs. The base pack is required at startup;
// the regional pack is only required when a game starts with the regional
// option enabled.
package assets

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-racer/internal/config"
	"github.com/vovakirdan/tui-racer/internal/core"
)

//go:embed tracks/base.yaml
var baseYAML []byte

// ErrRegionalMissing is returned when the regional pack is not installed.
var ErrRegionalMissing = errors.New("assets: regional track pack not found")

// RegionalFile is the regional pack location relative to the resource path.
var RegionalFile = filepath.Join("tracks", "japanese.yaml")

// Pack is a set of courses.
type Pack struct {
	Name    string   `yaml:"name"`
	Courses []Course `yaml:"courses"`
}

// Course is one stage of road.
type Course struct {
	Name      string    `yaml:"name"`
	TimeBonus int       `yaml:"time_bonus"` // seconds added at the start
	Palette   Palette   `yaml:"palette"`
	Sections  []Section `yaml:"sections"`
}

// Palette colors a course.
type Palette struct {
	Sky   core.Color `yaml:"sky"`
	Road  core.Color `yaml:"road"`
	Grass core.Color `yaml:"grass"`
	Edge  core.Color `yaml:"edge"`
}

// Section is a stretch of road with constant curvature.
type Section struct {
	Length int     `yaml:"length"` // road segments
	Curve  float64 `yaml:"curve"`  // positive bends right
}

// Length returns the course length in road segments.
func (c Course) Length() int {
	n := 0
	for _, s := range c.Sections {
		n += s.Length
	}
	return n
}

// CurveAt returns the curvature at segment pos, wrapping around the course.
func (c Course) CurveAt(pos int) float64 {
	total := c.Length()
	if total == 0 {
		return 0
	}
	pos %= total
	if pos < 0 {
		pos += total
	}
	for _, s := range c.Sections {
		if pos < s.Length {
			return s.Curve
		}
		pos -= s.Length
	}
	return 0
}

// ParsePack decodes and validates a pack.
func ParsePack(data []byte) (*Pack, error) {
	var p Pack
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("assets: parse pack: %w", err)
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *Pack) validate() error {
	if len(p.Courses) == 0 {
		return fmt.Errorf("assets: pack %q has no courses", p.Name)
	}
	for i, c := range p.Courses {
		if len(c.Sections) == 0 {
			return fmt.Errorf("assets: course %d (%s) has no sections", i, c.Name)
		}
		for j, s := range c.Sections {
			if s.Length <= 0 {
				return fmt.Errorf("assets: course %s section %d: length must be positive", c.Name, j)
			}
		}
	}
	return nil
}

// LoadBase loads the base pack from path, or the built-in pack when path
// is empty.
func LoadBase(path string) (*Pack, error) {
	if path == "" {
		return ParsePack(baseYAML)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("assets: read %s: %w", path, err)
	}
	return ParsePack(data)
}

// Assets is the asset collaborator.
type Assets struct {
	base     *Pack
	regional *Pack
	japanese bool
	resPath  string
	logger   *log.Logger
}

// New creates the collaborator over a loaded base pack.
func New(base *Pack, cfg config.Config, logger *log.Logger) *Assets {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Assets{
		base:     base,
		japanese: cfg.Engine.Japanese,
		resPath:  config.ExpandPath(cfg.Data.ResPath),
		logger:   logger,
	}
}

// RegionalRequired reports whether games need the regional pack.
func (a *Assets) RegionalRequired() bool {
	return a.japanese
}

// LoadRegional loads the regional pack. A pack already loaded is kept.
func (a *Assets) LoadRegional() error {
	if a.regional != nil {
		return nil
	}
	path := filepath.Join(a.resPath, RegionalFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrRegionalMissing, path)
	}
	if err != nil {
		return fmt.Errorf("assets: read %s: %w", path, err)
	}
	p, err := ParsePack(data)
	if err != nil {
		return err
	}
	a.regional = p
	a.logger.Info("regional pack loaded", "path", path, "courses", len(p.Courses))
	return nil
}

// Active returns the pack games race on.
func (a *Assets) Active() *Pack {
	if a.japanese && a.regional != nil {
		return a.regional
	}
	return a.base
}

// CourseNames lists the courses of the base pack, used by the menu before
// any regional pack is loaded.
func (a *Assets) CourseNames() []string {
	names := make([]string, len(a.base.Courses))
	for i, c := range a.base.Courses {
		names[i] = c.Name
	}
	return names
}

// LoadPadMapping reads optional pad button overrides from
// <res_path>/pad.yaml. A missing file returns nil and no error.
func LoadPadMapping(resPath string) (map[string]int, error) {
	path := filepath.Join(config.ExpandPath(resPath), "pad.yaml")
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("assets: read %s: %w", path, err)
	}
	var m map[string]int
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("assets: parse %s: %w", path, err)
	}
	return m, nil
}
