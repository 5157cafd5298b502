package briefing

import (
	"context"
	"errors"
	"testing"
	"time"

	"dailycoach/internal/dismissal"
	"dailycoach/internal/engine"
	"dailycoach/internal/models"
	"dailycoach/internal/repository"
)

type fakeStore struct {
	users     map[int]models.UserProfile
	checkins  map[int]models.DailyState
	schedules map[int]repository.WeeklySchedule
	sessions  map[int][]models.WorkoutSessionSummary
	nutrition map[int]models.NutritionProgress
	weights   map[int][]models.WeightSample
	lastDone  map[int]time.Time
	water     map[int]float64
	failNutr  error
}

type fakeUsers struct{ *fakeStore }

func (f fakeUsers) GetByID(_ context.Context, id int, _ time.Time) (*models.UserProfile, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (f fakeUsers) ListActive(_ context.Context, _ time.Time) ([]models.UserProfile, error) {
	var out []models.UserProfile
	for id := 1; id <= len(f.users); id++ {
		out = append(out, f.users[id])
	}
	return out, nil
}

func (f fakeUsers) UpdateWeight(_ context.Context, id int, weightKg float64) error {
	u := f.users[id]
	u.WeightKg = weightKg
	f.users[id] = u
	return nil
}

type fakeCheckins struct{ *fakeStore }

func (f fakeCheckins) GetForDay(_ context.Context, userID int, _ time.Time) (*models.DailyState, error) {
	s, ok := f.checkins[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (f fakeCheckins) Save(_ context.Context, userID int, _ time.Time, s models.DailyState) error {
	f.checkins[userID] = s
	return nil
}

type fakeSchedules struct{ *fakeStore }

func (f fakeSchedules) Get(_ context.Context, userID int) (*repository.WeeklySchedule, error) {
	ws := f.schedules[userID]
	return &ws, nil
}

func (f fakeSchedules) Save(_ context.Context, userID int, ws repository.WeeklySchedule) error {
	f.schedules[userID] = ws
	return nil
}

type fakeWorkouts struct{ *fakeStore }

func (f fakeWorkouts) SessionsSince(_ context.Context, userID int, _ time.Time) ([]models.WorkoutSessionSummary, error) {
	return f.sessions[userID], nil
}

func (f fakeWorkouts) LastCompleted(_ context.Context, userID int) (*time.Time, error) {
	last, ok := f.lastDone[userID]
	if !ok {
		return nil, nil
	}
	return &last, nil
}

func (f fakeWorkouts) Progressions(context.Context, int) ([]models.ExerciseProgressionRecord, error) {
	return nil, nil
}

func (f fakeWorkouts) SaveSession(_ context.Context, userID int, s models.WorkoutSessionSummary) error {
	f.sessions[userID] = append(f.sessions[userID], s)
	return nil
}

type fakeNutrition struct{ *fakeStore }

func (f fakeNutrition) GetForDay(_ context.Context, userID int, _ time.Time) (*models.NutritionProgress, error) {
	if f.failNutr != nil {
		return nil, f.failNutr
	}
	n := f.nutrition[userID]
	n.HydrationLiters += f.water[userID]
	return &n, nil
}

func (f fakeNutrition) AddWater(_ context.Context, userID int, _ time.Time, liters float64) error {
	f.water[userID] += liters
	return nil
}

type fakeWeights struct{ *fakeStore }

func (f fakeWeights) Latest(_ context.Context, userID, limit int) ([]models.WeightSample, error) {
	w := f.weights[userID]
	if len(w) > limit {
		w = w[:limit]
	}
	return w, nil
}

// Record keeps samples newest first, like the Postgres query
func (f fakeWeights) Record(_ context.Context, userID int, weightKg float64, at time.Time) error {
	f.weights[userID] = append([]models.WeightSample{{WeightKg: weightKg, RecordedAt: at}}, f.weights[userID]...)
	return nil
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users: map[int]models.UserProfile{
			1: {ID: 1, Name: "Alex", WeightKg: 80, HeightCm: 180, Age: 30, Gender: models.GenderMale,
				FitnessGoal: models.GoalFatLoss, ExperienceLevel: models.ExperienceIntermediate},
			2: {ID: 2, Name: "Sam", WeightKg: 60, HeightCm: 165, Age: 28, Gender: models.GenderFemale,
				FitnessGoal: models.GoalMaintenance, ExperienceLevel: models.ExperienceBeginner},
		},
		checkins: map[int]models.DailyState{
			1: {SleepHours: 8, SleepQuality: 8, StressLevel: 3, SorenessLevel: 2, EnergyLevel: 7},
		},
		schedules: map[int]repository.WeeklySchedule{
			1: {ScheduledDaysPerWeek: 3, PreferredDays: []int{0, 2, 4}},
		},
		sessions: map[int][]models.WorkoutSessionSummary{},
		nutrition: map[int]models.NutritionProgress{
			1: {ProteinGrams: 10, HydrationLiters: 0.2, MealsCompleted: 1, TotalMeals: 4},
		},
		weights: map[int][]models.WeightSample{
			1: {
				{WeightKg: 82, RecordedAt: testNow.Add(-2 * time.Hour)},
				{WeightKg: 81, RecordedAt: testNow.Add(-72 * time.Hour)},
				{WeightKg: 79, RecordedAt: testNow.Add(-240 * time.Hour)},
			},
		},
		lastDone: map[int]time.Time{},
		water:    map[int]float64{},
	}
}

func (f *fakeStore) stores() Stores {
	return Stores{
		Users:     fakeUsers{f},
		Checkins:  fakeCheckins{f},
		Schedules: fakeSchedules{f},
		Workouts:  fakeWorkouts{f},
		Nutrition: fakeNutrition{f},
		Weights:   fakeWeights{f},
	}
}

func hasAlert(b engine.Briefing, key string) bool {
	for _, a := range b.Alerts {
		if a.Key == key {
			return true
		}
	}
	return false
}

func TestSnapshot(t *testing.T) {
	svc := NewService(newFakeStore().stores(), nil, nil, nil)

	snap, err := svc.Snapshot(context.Background(), 1, testNow)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.Profile.WeightKg != 82 {
		t.Errorf("weight = %v, want latest sample 82", snap.Profile.WeightKg)
	}
	if snap.PreviousWeightKg == nil || *snap.PreviousWeightKg != 81 {
		t.Errorf("previous weight = %v, want 81", snap.PreviousWeightKg)
	}
	if !snap.Schedule.IsScheduledWorkoutDay {
		t.Error("Sunday is a preferred day, want scheduled")
	}
	if snap.Schedule.DaysSinceLastWorkout != NoHistoryDays {
		t.Errorf("DaysSinceLastWorkout = %d, want %d", snap.Schedule.DaysSinceLastWorkout, NoHistoryDays)
	}
}

func TestSnapshotErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown user", func(t *testing.T) {
		svc := NewService(newFakeStore().stores(), nil, nil, nil)
		_, err := svc.Snapshot(ctx, 42, testNow)
		if !errors.Is(err, repository.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("no check-in", func(t *testing.T) {
		svc := NewService(newFakeStore().stores(), nil, nil, nil)
		_, err := svc.BuildForUser(ctx, 2, testNow)
		if !errors.Is(err, ErrNoCheckin) {
			t.Errorf("err = %v, want ErrNoCheckin", err)
		}
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		fs := newFakeStore()
		boom := errors.New("connection reset")
		fs.failNutr = boom
		svc := NewService(fs.stores(), nil, nil, nil)
		_, err := svc.Snapshot(ctx, 1, testNow)
		if !errors.Is(err, boom) {
			t.Errorf("err = %v, want wrapped %v", err, boom)
		}
	})
}

func TestBuildForUserHidesDismissedAlerts(t *testing.T) {
	ctx := context.Background()
	store := dismissal.NewMemoryStore(24 * time.Hour)
	svc := NewService(newFakeStore().stores(), nil, store, nil)

	before, err := svc.BuildForUser(ctx, 1, testNow)
	if err != nil {
		t.Fatalf("BuildForUser: %v", err)
	}
	if !hasAlert(before, "consistency-behind") {
		t.Fatalf("want consistency-behind alert, got %+v", before.Alerts)
	}

	if err := svc.Dismiss(ctx, 1, "consistency-behind", testNow); err != nil {
		t.Fatalf("Dismiss: %v", err)
	}

	after, err := svc.BuildForUser(ctx, 1, testNow.Add(time.Hour))
	if err != nil {
		t.Fatalf("BuildForUser: %v", err)
	}
	if hasAlert(after, "consistency-behind") {
		t.Error("dismissed alert is still shown")
	}
	if len(after.Alerts) == 0 || len(after.Alerts) > engine.MaxAlerts {
		t.Errorf("got %d alerts, want 1..%d", len(after.Alerts), engine.MaxAlerts)
	}

	expired, _ := svc.BuildForUser(ctx, 1, testNow.Add(25*time.Hour))
	if !hasAlert(expired, "consistency-behind") {
		t.Error("alert should come back after the dismissal expires")
	}
}

func TestDismissWithoutStore(t *testing.T) {
	svc := NewService(newFakeStore().stores(), nil, nil, nil)
	if err := svc.Dismiss(context.Background(), 1, "fatigue-hard", testNow); err == nil {
		t.Error("want error without a dismissal store")
	}
}

func TestForEachActiveSkipsMissingCheckin(t *testing.T) {
	svc := NewService(newFakeStore().stores(), nil, nil, nil)

	var got []int
	err := svc.ForEachActive(context.Background(), testNow, func(u models.UserProfile, b engine.Briefing) error {
		got = append(got, u.ID)
		if b.UserID != u.ID {
			t.Errorf("briefing user = %d, want %d", b.UserID, u.ID)
		}
		return errors.New("send failed")
	})
	if err != nil {
		t.Fatalf("ForEachActive: %v", err)
	}
	if len(got) != 1 || got[0] != 1 {
		t.Errorf("visited %v, want [1]", got)
	}
}
