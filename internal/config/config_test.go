package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/talgya/playersim/internal/options"
	"github.com/talgya/playersim/internal/random"
)

func defaultFile() File {
	return Default(10, 7, options.DefaultMix(0.05, 0.1, 1.0), options.AcquisitionPreset{DecayRate: 0.05, NoiseScale: 0.4, NoiseDecayRate: 0.01})
}

func TestDefaultFileBuildsSamePlanAsPresets(t *testing.T) {
	f := defaultFile()
	fromFile, err := f.Build(random.New(0))
	if err != nil {
		t.Fatal(err)
	}
	p := options.DefaultBuildParams(10, 7, options.DefaultMix(0.05, 0.1, 1.0), f.Acquisitions[0])
	fromPresets, err := options.BuildGameOptions(random.New(0), p)
	if err != nil {
		t.Fatal(err)
	}
	for d := 0; d < 7; d++ {
		if fromFile.AcquiredOn(d) != fromPresets.AcquiredOn(d) {
			t.Fatalf("day %d: file %d, presets %d", d, fromFile.AcquiredOn(d), fromPresets.AcquiredOn(d))
		}
	}
}

func TestWriteParseKeepsArchetypes(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, defaultFile()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "time: 7h0m0s") {
		t.Fatalf("durations should be written as strings:\n%s", buf.String())
	}

	f, err := Parse(&buf)
	if err != nil {
		t.Fatal(err)
	}
	archetypes, err := f.ResolveArchetypes()
	if err != nil {
		t.Fatal(err)
	}
	hardcore, ok := archetypes.Find(options.ArchHardcore)
	if !ok {
		t.Fatal("hardcore missing after round trip")
	}
	if got := len(hardcore.SessionsOn(time.Tuesday)); got != 3 {
		t.Fatalf("hardcore tuesday slots = %d, want 3", got)
	}
	if got := hardcore.Purchases.Pick(0.05).Name; got != "none" {
		t.Fatalf("hardcore Pick(0.05) = %s", got)
	}
}

func TestLoadFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	var buf bytes.Buffer
	if err := Write(&buf, defaultFile()); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if f.Players != 10 || f.Days != 7 || len(f.Archetypes) != 4 {
		t.Fatalf("loaded %+v", f)
	}
}

const duplicateSlot = `
players: 5
days: 2
sessions:
  - {name: night, time: 20h, time_stdev: 1h, duration: 1h, duration_stdev: 5m}
purchases:
  - {name: none}
stages:
  - {name: strong, duration: 1m, duration_stdev: 10s, interval_ratio: 2, score: 1000, score_stdev: 100}
archetypes:
  - label: bot
    sessions:
      - {day: monday, slot: night, probability: 1}
      - {day: monday, slot: night, probability: 0.5}
    purchases: [{profile: none, weight: 1}]
    stages: [{profile: strong, weight: 1}]
    lifetime: {points: [{at: 0, value: 1}]}
mixes:
  - [{archetype: bot, weight: 1}]
acquisitions:
  - {decay_rate: 0, noise_scale: 0, noise_decay_rate: 0}
`

func TestDuplicateSlotRejected(t *testing.T) {
	f, err := Parse(strings.NewReader(duplicateSlot))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Build(random.New(0)); !errors.Is(err, options.ErrDuplicateSession) {
		t.Fatalf("err = %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"unknown field": "players: 1\nplayerz: 2\n",
		"bad duration":  "sessions:\n  - {name: x, time: soon}\n",
	}
	for name, doc := range tests {
		if _, err := Parse(strings.NewReader(doc)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestBuildErrors(t *testing.T) {
	tests := map[string]func(*File){
		"unknown slot": func(f *File) { f.Archetypes[0].Sessions[0].Slot = "brunch" },
		"unknown day":  func(f *File) { f.Archetypes[0].Sessions[0].Day = "someday" },
		"no lifetime":  func(f *File) { f.Archetypes[0].Lifetime.Points = nil },
		"bad profile":  func(f *File) { f.Archetypes[1].Purchases[0].Profile = "whale" },
		"schedule":     func(f *File) { f.OptionsDays = []int{0} },
	}
	for name, mutate := range tests {
		f := defaultFile()
		mutate(&f)
		if _, err := f.Build(random.New(0)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}
