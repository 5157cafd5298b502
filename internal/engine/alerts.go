package engine

import (
	"sort"
	"time"

	"dailycoach/internal/models"

	"github.com/google/uuid"
)

// MaxAlerts is how many alerts the banner list shows at once
const MaxAlerts = 3

// AlertInput is the history slice every detector reads from
type AlertInput struct {
	Now                  time.Time
	Goal                 models.FitnessGoal
	ScheduledDaysPerWeek int

	Sessions     []models.WorkoutSessionSummary
	Progressions []models.ExerciseProgressionRecord

	TodayProteinGrams  float64
	TargetProteinGrams float64

	TodayHydrationLiters  float64
	TargetHydrationLiters float64

	CurrentWeightKg  float64
	PreviousWeightKg *float64
}

// AlertEngine runs the alert detectors and ranks their output.
// It holds no state besides the ID generator and is safe for concurrent use
// as long as the generator is.
type AlertEngine struct {
	newID func() string
}

// AlertOption configures an AlertEngine
type AlertOption func(*AlertEngine)

// WithIDGenerator replaces the UUID generator, mostly for tests
func WithIDGenerator(gen func() string) AlertOption {
	return func(e *AlertEngine) {
		if gen != nil {
			e.newID = gen
		}
	}
}

// NewAlertEngine creates an alert engine with random UUID alert IDs
func NewAlertEngine(opts ...AlertOption) *AlertEngine {
	e := &AlertEngine{newID: uuid.NewString}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Detector scans one slice of history and returns zero or more alerts
type Detector struct {
	Name   string
	Detect func(in AlertInput) []models.ProactiveAlert
}

// Detectors returns the detectors in canonical order.
// The order is the tie-break between alerts of equal priority.
func (e *AlertEngine) Detectors() []Detector {
	return []Detector{
		{Name: "consistency", Detect: e.DetectConsistency},
		{Name: "stagnation", Detect: e.DetectStagnation},
		{Name: "progression", Detect: e.DetectProgression},
		{Name: "nutrition", Detect: e.DetectNutrition},
		{Name: "hydration", Detect: e.DetectHydration},
		{Name: "weight_change", Detect: e.DetectWeightChange},
		{Name: "fatigue", Detect: e.DetectFatigue},
	}
}

// CollectAlerts runs every detector and returns all alerts ranked, without truncation.
// Out-of-range input is clamped first, the same way BuildBriefing does it.
func (e *AlertEngine) CollectAlerts(in AlertInput) []models.ProactiveAlert {
	in, _ = normalizeAlertInput(in)
	detectors := e.Detectors()
	groups := make([][]models.ProactiveAlert, 0, len(detectors))
	for _, d := range detectors {
		groups = append(groups, d.Detect(in))
	}
	return MergeAlerts(groups...)
}

// GetAllAlerts returns at most MaxAlerts alerts, most urgent first
func (e *AlertEngine) GetAllAlerts(in AlertInput) []models.ProactiveAlert {
	return TopAlerts(e.CollectAlerts(in), MaxAlerts)
}

// MergeAlerts concatenates detector output in the given order and stable-sorts
// it by priority, so equal priorities keep detector order.
func MergeAlerts(groups ...[]models.ProactiveAlert) []models.ProactiveAlert {
	merged := make([]models.ProactiveAlert, 0)
	for _, g := range groups {
		merged = append(merged, g...)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Priority.Rank() < merged[j].Priority.Rank()
	})
	return merged
}

// TopAlerts truncates a ranked list to n entries
func TopAlerts(alerts []models.ProactiveAlert, n int) []models.ProactiveAlert {
	if n < 0 {
		n = 0
	}
	if len(alerts) > n {
		return alerts[:n]
	}
	return alerts
}

func (e *AlertEngine) newAlert(in AlertInput, a models.ProactiveAlert) models.ProactiveAlert {
	a.ID = e.newID()
	a.CreatedAt = in.Now
	a.Dismissible = true
	if a.Metadata == nil {
		a.Metadata = map[string]any{}
	}
	return a
}
