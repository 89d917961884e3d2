// Command seed populates the hosted store with a synthetic mid-program
// profile for manual testing: two weeks of submitted days, a mixed habit
// roster with one relapse-scarred demon, and the early achievements.
//
// Requires HABITQUEST_REMOTE_URL, HABITQUEST_SERVICE_KEY (a key with write
// access) and HABITQUEST_SEED_USER (the profile id to overwrite).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"habitquest/internal/dateutil"
	"habitquest/internal/domain"
	"habitquest/internal/remote"
)

const seedDays = 14

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	baseURL := os.Getenv("HABITQUEST_REMOTE_URL")
	serviceKey := os.Getenv("HABITQUEST_SERVICE_KEY")
	userID := os.Getenv("HABITQUEST_SEED_USER")
	if baseURL == "" || serviceKey == "" || userID == "" {
		return fmt.Errorf("HABITQUEST_REMOTE_URL, HABITQUEST_SERVICE_KEY and HABITQUEST_SEED_USER must be set")
	}

	client := remote.NewClient(remote.Config{
		BaseURL:    baseURL,
		APIKey:     serviceKey,
		TimeoutMs:  15000,
		MaxRetries: 2,
	}, remote.NewLogObserver(os.Stderr))

	profile := buildProfile(userID, time.Now())

	ctx := context.Background()
	if err := client.DeleteDayLogs(ctx, userID); err != nil {
		return fmt.Errorf("clearing old day logs: %w", err)
	}
	if err := client.UpsertProfile(ctx, remote.RowFromProfile(profile)); err != nil {
		return fmt.Errorf("writing profile: %w", err)
	}
	if err := client.InsertDayLogs(ctx, remote.LogRowsFromHistory(userID, profile.History)); err != nil {
		return fmt.Errorf("writing day logs: %w", err)
	}

	fmt.Printf("Seeded %s: day %d, %d XP, streak %d, %d history rows\n",
		userID, profile.CurrentDay, profile.XP, profile.CurrentStreak, len(profile.History))
	return nil
}

// buildProfile fabricates a plausible day-15 state: habits completed most
// days, one demon relapse mid-run, perfect days sprinkled in.
func buildProfile(userID string, now time.Time) *domain.Profile {
	p := domain.NewProfile(userID)
	p.Username = "SeedWarrior"
	p.Archetype = domain.ArchetypeSpecter
	p.Difficulty = domain.DifficultyMedium
	p.DayStarted = dateutil.Midnight(now.AddDate(0, 0, -seedDays))
	p.CurrentDay = seedDays + 1

	info, _ := domain.ArchetypeByID(p.Archetype)
	templates := append(append([]domain.HabitTemplate{}, info.Demons...), info.Powers...)
	for _, t := range templates {
		p.Habits = append(p.Habits, &domain.Habit{
			ID:             uuid.New().String(),
			Name:           t.Name,
			Kind:           t.Kind,
			XP:             t.XP,
			Frequency:      t.Frequency,
			CompletedDates: []string{},
			CreatedAt:      p.DayStarted,
		})
	}

	relapseDay := seedDays / 2
	for dayNum := 1; dayNum <= seedDays; dayNum++ {
		date := dateutil.DayKey(p.DayStarted.AddDate(0, 0, dayNum-1))

		successful := 0
		relapses := 0
		dayXP := 0
		snapshots := make([]domain.HabitSnapshot, 0, len(p.Habits))
		for i, h := range p.Habits {
			// One habit sits out every third day to keep the record honest.
			missed := dayNum%3 == 0 && i == len(p.Habits)-1
			relapsed := h.IsDemon() && dayNum == relapseDay && i == 0

			status := domain.StatusCompleted
			switch {
			case relapsed:
				status = domain.StatusRelapsed
				relapses++
				h.Streak = 0
				h.Relapses++
				h.LastRelapseDate = date
			case missed:
				status = domain.StatusMissed
				h.Streak = 0
			default:
				h.CompletedDates = append(h.CompletedDates, date)
				h.Streak++
				if h.Streak > h.LongestStreak {
					h.LongestStreak = h.Streak
				}
				successful++
				dayXP += h.XP
			}
			snapshots = append(snapshots, domain.HabitSnapshot{
				HabitID: h.ID, Name: h.Name, Kind: h.Kind,
				Status: status, XP: h.XP, Streak: h.Streak,
			})
		}

		isPerfect := successful == len(p.Habits)
		if isPerfect {
			dayXP += domain.PerfectDayBonus
			p.PerfectDaysCount++
			p.PerfectDayRun++
		} else {
			p.PerfectDayRun = 0
		}
		p.XP += dayXP
		p.TotalXPEarned += dayXP
		p.CurrentStreak++
		if p.CurrentStreak > p.LongestStreak {
			p.LongestStreak = p.CurrentStreak
		}

		p.History = append(p.History, domain.DayHistoryEntry{
			Date:            date,
			DayNumber:       dayNum,
			Habits:          snapshots,
			SuccessfulCount: successful,
			TotalCount:      len(p.Habits),
			IsPerfect:       isPerfect,
			RelapseCount:    relapses,
			XPEarned:        dayXP,
		})
		p.TotalDaysCompleted++
		p.LastSubmitDate = date
	}

	p.Achievements[domain.AchFirstBlood] = true
	for a, threshold := range domain.StreakAchievements {
		if p.CurrentStreak >= threshold {
			p.Achievements[a] = true
		}
	}
	if p.PerfectDayRun >= domain.PerfectWeekRun {
		p.Achievements[domain.AchPerfectWeek] = true
	}
	if p.PerfectDaysCount >= domain.PerfectMonthCount {
		p.Achievements[domain.AchPerfectMonth] = true
	}

	p.UpdatedAt = now.UTC()
	return p
}
