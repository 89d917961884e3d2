package domain

// HabitTemplate is a preset habit offered during onboarding customization.
type HabitTemplate struct {
	Name      string
	Kind      HabitKind
	XP        int
	Frequency Frequency
}

// ArchetypeInfo describes a selectable persona and its starter habit set.
type ArchetypeInfo struct {
	ID      Archetype
	Title   string
	Tagline string
	Demons  []HabitTemplate
	Powers  []HabitTemplate
}

// Archetypes is the fixed persona catalog, in display order.
var Archetypes = []ArchetypeInfo{
	{
		ID:      ArchetypeSpecter,
		Title:   "The Specter",
		Tagline: "Cut the noise. Move unseen.",
		Demons: []HabitTemplate{
			{Name: "No PMO", Kind: KindDemon, XP: 30, Frequency: FreqDaily},
			{Name: "No Social Media Scrolling", Kind: KindDemon, XP: 20, Frequency: FreqDaily},
			{Name: "No Late Night Phone", Kind: KindDemon, XP: 15, Frequency: FreqDaily},
		},
		Powers: []HabitTemplate{
			{Name: "Meditation", Kind: KindPower, XP: 25, Frequency: FreqDaily},
			{Name: "Cold Shower", Kind: KindPower, XP: 20, Frequency: FreqDaily},
			{Name: "Read 20 Pages", Kind: KindPower, XP: 15, Frequency: FreqDaily},
		},
	},
	{
		ID:      ArchetypeAscendant,
		Title:   "The Ascendant",
		Tagline: "Climb every day.",
		Demons: []HabitTemplate{
			{Name: "No Porn", Kind: KindDemon, XP: 30, Frequency: FreqDaily},
			{Name: "No Smoking", Kind: KindDemon, XP: 25, Frequency: FreqDaily},
			{Name: "No Procrastination", Kind: KindDemon, XP: 15, Frequency: FreqDaily},
		},
		Powers: []HabitTemplate{
			{Name: "Workout", Kind: KindPower, XP: 25, Frequency: FreqThreePerWk},
			{Name: "Healthy Breakfast", Kind: KindPower, XP: 15, Frequency: FreqDaily},
			{Name: "Study 1 Hour", Kind: KindPower, XP: 20, Frequency: FreqWeekdays},
		},
	},
	{
		ID:      ArchetypeWrath,
		Title:   "The Wrath",
		Tagline: "Burn the old self down.",
		Demons: []HabitTemplate{
			{Name: "No Gaming Addiction", Kind: KindDemon, XP: 25, Frequency: FreqDaily},
			{Name: "No Energy Drinks", Kind: KindDemon, XP: 15, Frequency: FreqDaily},
			{Name: "No Negative Self-Talk", Kind: KindDemon, XP: 20, Frequency: FreqDaily},
		},
		Powers: []HabitTemplate{
			{Name: "Morning Run", Kind: KindPower, XP: 25, Frequency: FreqThreePerWk},
			{Name: "Drink 2L Water", Kind: KindPower, XP: 15, Frequency: FreqDaily},
			{Name: "Learn New Skill", Kind: KindPower, XP: 20, Frequency: FreqFivePerWk},
		},
	},
	{
		ID:      ArchetypeSovereign,
		Title:   "The Sovereign",
		Tagline: "Rule the hours.",
		Demons: []HabitTemplate{
			{Name: "No Wasted Time", Kind: KindDemon, XP: 20, Frequency: FreqDaily},
			{Name: "No Excuses", Kind: KindDemon, XP: 20, Frequency: FreqDaily},
			{Name: "No Sleeping In", Kind: KindDemon, XP: 15, Frequency: FreqWeekdays},
		},
		Powers: []HabitTemplate{
			{Name: "Wake at 5 AM", Kind: KindPower, XP: 25, Frequency: FreqWeekdays},
			{Name: "Deep Work 2 Hours", Kind: KindPower, XP: 25, Frequency: FreqWeekdays},
			{Name: "Review Goals", Kind: KindPower, XP: 15, Frequency: FreqDaily},
		},
	},
}

// ArchetypeByID looks up a persona, returning ok=false for unknown ids.
func ArchetypeByID(id Archetype) (ArchetypeInfo, bool) {
	for _, a := range Archetypes {
		if a.ID == id {
			return a, true
		}
	}
	return ArchetypeInfo{}, false
}
