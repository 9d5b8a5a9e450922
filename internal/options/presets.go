package options

import (
	"math"
	"time"

	"github.com/talgya/playersim/internal/curve"
	"github.com/talgya/playersim/internal/weighted"
)

// Archetype labels of the built-in presets.
const (
	ArchBot      = "bot"
	ArchHardcore = "hardcore"
	ArchCasual   = "casual"
	ArchChurner  = "churner"
)

var (
	weekdays  = []time.Weekday{time.Tuesday, time.Wednesday, time.Thursday, time.Friday}
	everyDay  = []time.Weekday{time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday}
	churnDays = []time.Weekday{time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Sunday}
)

// DefaultSessionSlots returns the morning, noon, afternoon and night slots.
func DefaultSessionSlots() []*SessionOptions {
	return []*SessionOptions{
		{Name: "morning", TimeMean: 7 * time.Hour, TimeStdev: 30 * time.Minute, DurationMean: 30 * time.Minute, DurationStdev: 10 * time.Minute},
		{Name: "noon", TimeMean: 12 * time.Hour, TimeStdev: 30 * time.Minute, DurationMean: 45 * time.Minute, DurationStdev: 15 * time.Minute},
		{Name: "afternoon", TimeMean: 17 * time.Hour, TimeStdev: time.Hour, DurationMean: 30 * time.Minute, DurationStdev: 20 * time.Minute},
		{Name: "night", TimeMean: 20 * time.Hour, TimeStdev: 3 * time.Hour, DurationMean: 2 * time.Hour, DurationStdev: time.Minute},
	}
}

// DefaultPurchaseProfiles returns the hardcore, casual and non-buyer profiles.
func DefaultPurchaseProfiles() []*PurchaseOptions {
	return []*PurchaseOptions{
		{Name: "hardcore", AmountMean: 8, AmountStdev: 3, SpendsMean: 3, SpendsStdev: 1, ForcedRatio: 0.8},
		{Name: "casual", AmountMean: 2, AmountStdev: 1, SpendsMean: 1, SpendsStdev: 1, ForcedRatio: 0.2},
		{Name: "none"},
	}
}

// DefaultStageProfiles returns the strong, medium and weak stage profiles.
func DefaultStageProfiles() []*StageOptions {
	return []*StageOptions{
		{Name: "strong", DurationMean: time.Minute, DurationStdev: 10 * time.Second, IntervalRatio: 2, ScoreMean: 1000, ScoreStdev: 100},
		{Name: "medium", DurationMean: time.Minute, DurationStdev: 10 * time.Second, IntervalRatio: 4, ScoreMean: 700, ScoreStdev: 300},
		{Name: "weak", DurationMean: time.Minute, DurationStdev: 10 * time.Second, IntervalRatio: 5, ScoreMean: 500, ScoreStdev: 500},
	}
}

// DefaultArchetypes builds the bot, hardcore, casual and churner presets.
// Lifetime control points are placed relative to the simulated days.
func DefaultArchetypes(days int) Archetypes {
	slots := byName(DefaultSessionSlots(), func(s *SessionOptions) string { return s.Name })
	buys := byName(DefaultPurchaseProfiles(), func(p *PurchaseOptions) string { return p.Name })
	plays := byName(DefaultStageProfiles(), func(s *StageOptions) string { return s.Name })
	morning, noon, afternoon, night := slots["morning"], slots["noon"], slots["afternoon"], slots["night"]
	n := float64(days)

	bot := &PlayerOptions{
		Label: ArchBot,
		Sessions: mustTable(Every(everyDay,
			SessionChance{morning, 1.0},
			SessionChance{noon, 1.0},
			SessionChance{afternoon, 1.0},
			SessionChance{night, 1.0},
		)),
		Purchases: weighted.Single(buys["none"]),
		Stages:    weighted.Single(plays["strong"]),
		Lifetime:  curve.Constant(1.0),
	}

	hardcoreTable := []SessionEntry{{Day: time.Monday, Session: night, Probability: 0.5}}
	hardcoreTable = append(hardcoreTable, Every(weekdays,
		SessionChance{morning, 0.3},
		SessionChance{noon, 0.5},
		SessionChance{night, 1.0},
	)...)
	hardcoreTable = append(hardcoreTable,
		SessionEntry{Day: time.Saturday, Session: morning, Probability: 0.5},
		SessionEntry{Day: time.Sunday, Session: afternoon, Probability: 0.8},
	)
	hardcore := &PlayerOptions{
		Label:    ArchHardcore,
		Sessions: mustTable(hardcoreTable),
		Purchases: weighted.MustNew(
			weighted.Entry[*PurchaseOptions]{Outcome: buys["none"], Weight: 0.1},
			weighted.Entry[*PurchaseOptions]{Outcome: buys["casual"], Weight: 0.6},
			weighted.Entry[*PurchaseOptions]{Outcome: buys["hardcore"], Weight: 1.0},
		),
		Stages: weighted.MustNew(
			weighted.Entry[*StageOptions]{Outcome: plays["strong"], Weight: 0.3},
			weighted.Entry[*StageOptions]{Outcome: plays["medium"], Weight: 0.8},
			weighted.Entry[*StageOptions]{Outcome: plays["weak"], Weight: 1.0},
		),
		Lifetime: lifetime(
			curve.Point{Position: 0, Value: 0.7},
			curve.Point{Position: 6, Value: 1.0},
			curve.Point{Position: n * 0.1, Value: 0.7},
			curve.Point{Position: n * 0.3, Value: 0.5},
			curve.Point{Position: n * 0.6, Value: 0.2},
			curve.Point{Position: n * 0.8, Value: 0.1},
		),
		Drift: 0.1,
	}

	casual := &PlayerOptions{
		Label: ArchCasual,
		Sessions: mustTable(Every(weekdays,
			SessionChance{noon, 0.5},
			SessionChance{night, 0.5},
		)),
		Purchases: weighted.MustNew(
			weighted.Entry[*PurchaseOptions]{Outcome: buys["hardcore"], Weight: 0.2},
			weighted.Entry[*PurchaseOptions]{Outcome: buys["casual"], Weight: 0.7},
			weighted.Entry[*PurchaseOptions]{Outcome: buys["none"], Weight: 1.0},
		),
		Stages: weighted.MustNew(
			weighted.Entry[*StageOptions]{Outcome: plays["strong"], Weight: 0.1},
			weighted.Entry[*StageOptions]{Outcome: plays["medium"], Weight: 0.5},
			weighted.Entry[*StageOptions]{Outcome: plays["weak"], Weight: 1.0},
		),
		Lifetime: lifetime(
			curve.Point{Position: 0, Value: 0.7},
			curve.Point{Position: n * 0.01, Value: 1.0},
			curve.Point{Position: n * 0.1, Value: 0.5},
			curve.Point{Position: n * 0.3, Value: 0.2},
			curve.Point{Position: n * 0.6, Value: 0.1},
		),
		Drift: 0.2,
	}

	churner := &PlayerOptions{
		Label:    ArchChurner,
		Sessions: mustTable(Every(churnDays, SessionChance{night, 1.0})),
		Purchases: weighted.MustNew(
			weighted.Entry[*PurchaseOptions]{Outcome: buys["hardcore"], Weight: 0.1},
			weighted.Entry[*PurchaseOptions]{Outcome: buys["casual"], Weight: 0.5},
			weighted.Entry[*PurchaseOptions]{Outcome: buys["none"], Weight: 0.6},
		),
		Stages: weighted.MustNew(
			weighted.Entry[*StageOptions]{Outcome: plays["strong"], Weight: 0.05},
			weighted.Entry[*StageOptions]{Outcome: plays["medium"], Weight: 0.3},
			weighted.Entry[*StageOptions]{Outcome: plays["weak"], Weight: 1.0},
		),
		Lifetime: lifetime(
			curve.Point{Position: 0, Value: 1.0},
			curve.Point{Position: 1, Value: 1.0},
			curve.Point{Position: 2, Value: 0.5},
			curve.Point{Position: math.Max(6, n*0.1), Value: 0.3},
			curve.Point{Position: math.Max(6, n*0.2), Value: 0.1},
			curve.Point{Position: math.Max(6, n*0.3), Value: 0.0},
		),
	}

	return Archetypes{bot, hardcore, casual, churner}
}

// DefaultMix is the hardcore/casual/churner mix the CLI flags describe.
func DefaultMix(hardcore, casual, churner float64) MixPreset {
	return MixPreset{
		{Archetype: ArchHardcore, Weight: hardcore},
		{Archetype: ArchCasual, Weight: casual},
		{Archetype: ArchChurner, Weight: churner},
	}
}

// DefaultBuildParams is a single mix preset and a single acquisition preset
// applied to every day over the built-in archetypes.
func DefaultBuildParams(players, days int, mix MixPreset, acq AcquisitionPreset) BuildParams {
	return BuildParams{
		Players:         players,
		Days:            days,
		OptionsDays:     Uniform(days),
		AcquisitionDays: Uniform(days),
		Mixes:           []MixPreset{mix},
		Acquisitions:    []AcquisitionPreset{acq},
		Archetypes:      DefaultArchetypes(days),
	}
}

func lifetime(points ...curve.Point) *curve.Interpolator {
	return curve.MustNew(curve.Dedup(points))
}

func mustTable(entries []SessionEntry) SessionTable {
	t, err := NewSessionTable(entries...)
	if err != nil {
		panic(err)
	}
	return t
}

func byName[T any](items []T, name func(T) string) map[string]T {
	out := make(map[string]T, len(items))
	for _, it := range items {
		out[name(it)] = it
	}
	return out
}
