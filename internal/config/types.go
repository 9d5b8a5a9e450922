// Package config reads and writes preset files describing session slots,
// spend and stage profiles, archetypes and the per-day acquisition plan.
package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/talgya/playersim/internal/curve"
	"github.com/talgya/playersim/internal/options"
)

// File mirrors the YAML schema.
type File struct {
	Version         string                      `yaml:"version"`
	Players         int                         `yaml:"players"`
	Days            int                         `yaml:"days"`
	Sessions        []SessionCfg                `yaml:"sessions"`
	Purchases       []PurchaseCfg               `yaml:"purchases"`
	Stages          []StageCfg                  `yaml:"stages"`
	Archetypes      []ArchetypeCfg              `yaml:"archetypes"`
	Mixes           []options.MixPreset         `yaml:"mixes"`
	Acquisitions    []options.AcquisitionPreset `yaml:"acquisitions"`
	OptionsDays     []int                       `yaml:"options_days,omitempty"`     // default: mix 0 every day
	AcquisitionDays []int                       `yaml:"acquisition_days,omitempty"` // default: acquisition 0 every day
	Rules           options.GameRules           `yaml:"rules,omitempty"`
	Notes           string                      `yaml:"notes,omitempty"`
}

type SessionCfg struct {
	Name          string   `yaml:"name"`
	Time          Duration `yaml:"time"`
	TimeStdev     Duration `yaml:"time_stdev"`
	Duration      Duration `yaml:"duration"`
	DurationStdev Duration `yaml:"duration_stdev"`
}

type PurchaseCfg struct {
	Name        string  `yaml:"name"`
	Amount      float64 `yaml:"amount"`
	AmountStdev float64 `yaml:"amount_stdev"`
	Spends      float64 `yaml:"spends"`
	SpendsStdev float64 `yaml:"spends_stdev"`
	ForcedRatio float64 `yaml:"forced_ratio"`
}

type StageCfg struct {
	Name          string   `yaml:"name"`
	Duration      Duration `yaml:"duration"`
	DurationStdev Duration `yaml:"duration_stdev"`
	IntervalRatio float64  `yaml:"interval_ratio"`
	Score         float64  `yaml:"score"`
	ScoreStdev    float64  `yaml:"score_stdev"`
}

type ArchetypeCfg struct {
	Label     string      `yaml:"label"`
	Drift     float64     `yaml:"drift,omitempty"`
	Sessions  []SlotCfg   `yaml:"sessions"`
	Purchases []WeightCfg `yaml:"purchases"`
	Stages    []WeightCfg `yaml:"stages"`
	Lifetime  LifetimeCfg `yaml:"lifetime"`
}

// SlotCfg is one weekday table row.
type SlotCfg struct {
	Day         string  `yaml:"day"`
	Slot        string  `yaml:"slot"`
	Probability float64 `yaml:"probability"`
}

// WeightCfg references a purchase or stage profile by name.
type WeightCfg struct {
	Profile string  `yaml:"profile"`
	Weight  float64 `yaml:"weight"`
}

type LifetimeCfg struct {
	Modulo bool          `yaml:"modulo,omitempty"`
	Points []curve.Point `yaml:"points"`
}

// Duration is a time.Duration written as a Go duration string ("1h30m").
type Duration time.Duration

// D returns the value as a time.Duration.
func (d Duration) D() time.Duration {
	return time.Duration(d)
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = Duration(parsed)
	return nil
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}
