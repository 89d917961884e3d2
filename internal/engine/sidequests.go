package engine

import "habitquest/internal/domain"

// QuestView pairs a side quest with its completion state for today.
type QuestView struct {
	domain.SideQuest
	Completed bool
}

// RefreshSideQuests rolls the daily quest assignment when the stored
// assignment belongs to a previous date. Safe to call on every load.
func (e *Engine) RefreshSideQuests() {
	e.mu.Lock()
	defer e.mu.Unlock()

	p := e.profile
	if p.Archetype == "" {
		return
	}
	today := e.today()
	if p.SideQuestsDate == today && len(p.DailySideQuests) > 0 {
		return
	}

	quests := domain.SideQuestsForDate(today, p.Archetype)
	ids := make([]string, len(quests))
	for i, q := range quests {
		ids[i] = q.ID
	}
	p.DailySideQuests = ids
	p.CompletedSideQuests = []string{}
	p.SideQuestsDate = today
	e.touch()
}

// SideQuests returns today's assignment with completion flags.
func (e *Engine) SideQuests() []QuestView {
	e.mu.Lock()
	defer e.mu.Unlock()

	done := make(map[string]bool, len(e.profile.CompletedSideQuests))
	for _, id := range e.profile.CompletedSideQuests {
		done[id] = true
	}

	var out []QuestView
	for _, id := range e.profile.DailySideQuests {
		q, ok := domain.SideQuestByID(id)
		if !ok {
			continue
		}
		out = append(out, QuestView{SideQuest: q, Completed: done[id]})
	}
	return out
}

// CompleteSideQuest awards a quest's XP once per day. Returns the XP earned,
// or 0 when the quest isn't assigned today or is already done.
func (e *Engine) CompleteSideQuest(id string) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	p := e.profile
	assigned := false
	for _, qid := range p.DailySideQuests {
		if qid == id {
			assigned = true
			break
		}
	}
	if !assigned {
		return 0
	}
	for _, qid := range p.CompletedSideQuests {
		if qid == id {
			return 0
		}
	}
	q, ok := domain.SideQuestByID(id)
	if !ok {
		return 0
	}

	p.CompletedSideQuests = append(p.CompletedSideQuests, id)
	p.XP += q.XP
	p.TotalXPEarned += q.XP
	e.touch()
	return q.XP
}
