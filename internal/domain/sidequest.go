package domain

import (
	"hash/fnv"
	"sort"
)

// SideQuest is an optional bonus task outside the core habit list. Quests are
// reassigned each calendar day and contribute supplemental XP only; they never
// affect streaks or the perfect-day check.
type SideQuest struct {
	ID   string
	Name string
	XP   int
}

// sideQuestCatalog is the fixed pool quests are drawn from.
var sideQuestCatalog = []SideQuest{
	{ID: "sq-sunlight", Name: "Get 10 Minutes of Sunlight", XP: 10},
	{ID: "sq-stretch", Name: "Stretch for 5 Minutes", XP: 10},
	{ID: "sq-gratitude", Name: "Write One Thing You're Grateful For", XP: 10},
	{ID: "sq-coldface", Name: "Splash Cold Water on Your Face", XP: 5},
	{ID: "sq-walk", Name: "Take a 15 Minute Walk", XP: 15},
	{ID: "sq-noweat", Name: "Eat Nothing for 12 Hours Straight", XP: 15},
	{ID: "sq-tidy", Name: "Tidy Your Desk", XP: 10},
	{ID: "sq-message", Name: "Message Someone You Respect", XP: 15},
	{ID: "sq-plan", Name: "Plan Tomorrow Before Bed", XP: 10},
	{ID: "sq-silence", Name: "Sit in Silence for 5 Minutes", XP: 10},
	{ID: "sq-pushups", Name: "Do 20 Push-Ups", XP: 15},
	{ID: "sq-journal", Name: "Journal Three Sentences", XP: 10},
}

// SideQuestsPerDay is how many quests are assigned each calendar date.
const SideQuestsPerDay = 3

// SideQuestByID looks up a catalog quest.
func SideQuestByID(id string) (SideQuest, bool) {
	for _, q := range sideQuestCatalog {
		if q.ID == id {
			return q, true
		}
	}
	return SideQuest{}, false
}

// SideQuestsForDate deterministically picks the day's quest assignment from
// the catalog. The same date and archetype always yield the same set, so
// reassignment on every load is stable within a calendar day.
func SideQuestsForDate(date string, archetype Archetype) []SideQuest {
	type scored struct {
		quest SideQuest
		score uint32
	}
	scoredQuests := make([]scored, 0, len(sideQuestCatalog))
	for _, q := range sideQuestCatalog {
		h := fnv.New32a()
		h.Write([]byte(date))
		h.Write([]byte(archetype))
		h.Write([]byte(q.ID))
		scoredQuests = append(scoredQuests, scored{quest: q, score: h.Sum32()})
	}
	sort.Slice(scoredQuests, func(i, j int) bool {
		if scoredQuests[i].score != scoredQuests[j].score {
			return scoredQuests[i].score < scoredQuests[j].score
		}
		return scoredQuests[i].quest.ID < scoredQuests[j].quest.ID
	})

	picked := make([]SideQuest, 0, SideQuestsPerDay)
	for i := 0; i < SideQuestsPerDay && i < len(scoredQuests); i++ {
		picked = append(picked, scoredQuests[i].quest)
	}
	return picked
}
