package localstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"habitquest/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleProfile() *domain.Profile {
	p := domain.NewProfile("user-1")
	p.Username = "TestWarrior"
	p.Archetype = domain.ArchetypeWrath
	p.Difficulty = domain.DifficultyMedium
	p.XP = 820
	p.CurrentStreak = 6
	p.LongestStreak = 9
	p.CurrentDay = 7
	p.DayStarted = time.Date(2025, 3, 13, 7, 0, 0, 0, time.UTC)
	p.LastSubmitDate = "2025-03-18"
	p.Habits = []*domain.Habit{
		{
			ID: "h1", Name: "Morning run", Kind: domain.KindPower, XP: 25,
			Frequency: domain.FreqDaily, Streak: 6,
			CompletedDates: []string{"2025-03-17", "2025-03-18"},
		},
		{
			ID: "h2", Name: "Doomscrolling", Kind: domain.KindDemon, XP: 30,
			Frequency: domain.FreqDaily, Streak: 2, Relapses: 1,
			CompletedDates: []string{"2025-03-18"},
		},
	}
	p.Achievements[domain.AchFirstBlood] = true
	p.History = []domain.DayHistoryEntry{
		{Date: "2025-03-17", DayNumber: 5, SuccessfulCount: 2, TotalCount: 2, IsPerfect: true, XPEarned: 105},
		{Date: "2025-03-18", DayNumber: 6, SuccessfulCount: 1, TotalCount: 2, XPEarned: 25},
	}
	return p
}

func TestStore_SaveAndLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p := sampleProfile()

	require.NoError(t, s.SaveProfile(ctx, p))

	got, err := s.LoadProfile(ctx, "user-1")
	require.NoError(t, err)

	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, p.Username, got.Username)
	assert.Equal(t, p.XP, got.XP)
	assert.Equal(t, p.CurrentStreak, got.CurrentStreak)
	assert.Equal(t, p.LastSubmitDate, got.LastSubmitDate)
	require.Len(t, got.Habits, 2)
	assert.Equal(t, p.Habits[0].CompletedDates, got.Habits[0].CompletedDates)
	assert.True(t, got.Achievements[domain.AchFirstBlood])

	require.Len(t, got.History, 2)
	assert.Equal(t, "2025-03-17", got.History[0].Date)
	assert.True(t, got.History[0].IsPerfect)
	assert.Equal(t, "2025-03-18", got.History[1].Date)
}

func TestStore_SaveIsIdempotentPerDay(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p := sampleProfile()

	require.NoError(t, s.SaveProfile(ctx, p))

	// Resubmitting the same day replaces its row instead of duplicating it.
	p.History[1].SuccessfulCount = 2
	p.History[1].IsPerfect = true
	require.NoError(t, s.SaveProfile(ctx, p))

	got, err := s.LoadProfile(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, got.History, 2)
	assert.True(t, got.History[1].IsPerfect)
}

func TestStore_HistorySurvivesSnapshotOverwrite(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p := sampleProfile()
	require.NoError(t, s.SaveProfile(ctx, p))

	// A later flush whose in-memory history is shorter (hydrated from the
	// hosted store, say) must not erase locally recorded days.
	p.History = p.History[1:]
	require.NoError(t, s.SaveProfile(ctx, p))

	got, err := s.LoadProfile(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, got.History, 2)
}

func TestStore_LoadMissingProfile(t *testing.T) {
	s := newTestStore(t)
	_, err := s.LoadProfile(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_ClearRemovesEverything(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.SaveProfile(ctx, sampleProfile()))

	require.NoError(t, s.Clear(ctx, "user-1"))

	_, err := s.LoadProfile(ctx, "user-1")
	assert.ErrorIs(t, err, ErrNotFound)

	history, err := s.History(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestStore_ClearWhileAnotherConnectionIsHeld(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "snapshots.db"))
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.SaveProfile(ctx, sampleProfile()))

	// Pin one pooled connection in an open transaction so Clear is served by
	// a different one, the interleaving a background flush produces.
	tx, err := s.db.BeginTx(ctx, nil)
	require.NoError(t, err)
	defer tx.Rollback()

	require.NoError(t, s.Clear(ctx, "user-1"))

	// History must be gone regardless of which connection ran the delete; a
	// surviving row would be re-attached to the next profile saved here.
	history, err := s.History(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, history)

	_, err = s.LoadProfile(ctx, "user-1")
	assert.ErrorIs(t, err, ErrNotFound)
}
