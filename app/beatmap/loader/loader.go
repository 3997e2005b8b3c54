// Package loader reads object list fixtures: difficulty settings plus already positioned hit objects.
// It doesn't parse map files.
package loader

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/Givikap120/flowaim-sr/app/beatmap/difficulty"
	"github.com/Givikap120/flowaim-sr/app/beatmap/objects"
	"github.com/Givikap120/flowaim-sr/framework/math/mutils"
	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

var ErrNoObjects = errors.New("object list is empty")

type rawDifficulty struct {
	HP float64 `yaml:"hp"`
	CS float64 `yaml:"cs"`
	OD float64 `yaml:"od"`
	AR float64 `yaml:"ar"`
}

type rawObject struct {
	Type     string       `yaml:"type"`
	Time     float64      `yaml:"time"`
	EndTime  float64      `yaml:"end_time"`
	X        float64      `yaml:"x"`
	Y        float64      `yaml:"y"`
	Path     [][2]float64 `yaml:"path"`
	Repeats  int          `yaml:"repeats"`
	Nested   int          `yaml:"nested"`
	NewCombo bool         `yaml:"new_combo"`
}

type rawMap struct {
	Title      string        `yaml:"title"`
	Difficulty rawDifficulty `yaml:"difficulty"`
	Mods       string        `yaml:"mods"`
	ClockRate  float64       `yaml:"clock_rate"`
	Objects    []rawObject   `yaml:"objects"`
}

// Beatmap is a loaded object list
type Beatmap struct {
	Title string

	Difficulty *difficulty.Difficulty

	// Mods declared in the file, not applied to Difficulty
	Mods difficulty.Modifier

	// ClockRate declared in the file, already applied to Difficulty. Zero when not set.
	ClockRate float64

	HitObjects []objects.IHitObject

	// Hash identifies the file contents
	Hash string
}

func defaultDifficulty() rawDifficulty {
	return rawDifficulty{HP: 5, CS: 5, OD: 5, AR: 5}
}

// Load reads object list from YAML or JSON file
func Load(path string) (*Beatmap, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read object list: %w", err)
	}

	beatmap, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return beatmap, nil
}

// Parse decodes object list. JSON is accepted as it's a subset of YAML.
func Parse(data []byte) (*Beatmap, error) {
	raw := rawMap{Difficulty: defaultDifficulty()}

	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode object list: %w", err)
	}

	if len(raw.Objects) == 0 {
		return nil, ErrNoObjects
	}

	mods, err := difficulty.ParseMods(raw.Mods)
	if err != nil {
		return nil, fmt.Errorf("invalid mods: %w", err)
	}

	d := raw.Difficulty
	for _, v := range []float64{d.HP, d.CS, d.OD, d.AR} {
		if !mutils.IsFinite(v) || v < 0 || v > 11 {
			return nil, fmt.Errorf("invalid difficulty settings %+v", d)
		}
	}

	if !mutils.IsFinite(raw.ClockRate) || raw.ClockRate < 0 {
		return nil, fmt.Errorf("invalid clock rate %v", raw.ClockRate)
	}

	beatmap := &Beatmap{
		Title:      raw.Title,
		Difficulty: difficulty.NewDifficulty(d.HP, d.CS, d.OD, d.AR),
		Mods:       mods,
		ClockRate:  raw.ClockRate,
		HitObjects: make([]objects.IHitObject, 0, len(raw.Objects)),
	}

	if raw.ClockRate > 0 {
		beatmap.Difficulty.SetCustomSpeed(raw.ClockRate)
	}

	lastTime := math.Inf(-1)

	for i, o := range raw.Objects {
		hitObject, err := o.toHitObject()
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}

		if hitObject.GetStartTime() < lastTime {
			return nil, fmt.Errorf("object %d: starts at %v, before previous object at %v", i, hitObject.GetStartTime(), lastTime)
		}

		lastTime = hitObject.GetStartTime()

		beatmap.HitObjects = append(beatmap.HitObjects, hitObject)
	}

	sum := sha256.Sum256(data)
	beatmap.Hash = hex.EncodeToString(sum[:])

	return beatmap, nil
}

func (o rawObject) toHitObject() (objects.IHitObject, error) {
	for _, v := range []float64{o.Time, o.EndTime, o.X, o.Y} {
		if !mutils.IsFinite(v) {
			return nil, fmt.Errorf("non-finite value %v", v)
		}
	}

	switch strings.ToLower(o.Type) {
	case "", "circle":
		return objects.NewCircle(o.Time, mgl64.Vec2{o.X, o.Y}, o.NewCombo), nil
	case "slider":
		if len(o.Path) == 0 {
			return nil, errors.New("slider without path")
		}

		if o.EndTime < o.Time {
			return nil, fmt.Errorf("slider ends at %v before it starts at %v", o.EndTime, o.Time)
		}

		path := make([]mgl64.Vec2, len(o.Path))
		for i, p := range o.Path {
			if !mutils.IsFinite(p[0]) || !mutils.IsFinite(p[1]) {
				return nil, fmt.Errorf("non-finite path point %v", p)
			}

			path[i] = mgl64.Vec2{p[0], p[1]}
		}

		return objects.NewSlider(o.Time, o.EndTime, path, o.Repeats, o.Nested, o.NewCombo), nil
	case "spinner":
		if o.EndTime < o.Time {
			return nil, fmt.Errorf("spinner ends at %v before it starts at %v", o.EndTime, o.Time)
		}

		return objects.NewSpinner(o.Time, o.EndTime), nil
	}

	return nil, fmt.Errorf("unknown object type %q", o.Type)
}
