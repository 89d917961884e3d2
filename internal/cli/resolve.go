package cli

import (
	"fmt"
	"strings"

	"habitquest/internal/domain"
)

// resolveHabit finds a habit by exact id, unique id prefix, or unique
// case-insensitive name match. Ambiguous references list the candidates.
func resolveHabit(habits []*domain.Habit, ref string) (*domain.Habit, error) {
	if ref == "" {
		return nil, fmt.Errorf("empty habit reference")
	}

	for _, h := range habits {
		if h.ID == ref {
			return h, nil
		}
	}

	var matches []*domain.Habit
	lower := strings.ToLower(ref)
	for _, h := range habits {
		if strings.HasPrefix(h.ID, ref) || strings.Contains(strings.ToLower(h.Name), lower) {
			matches = append(matches, h)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no habit matches %q", ref)
	case 1:
		return matches[0], nil
	default:
		names := make([]string, len(matches))
		for i, h := range matches {
			names[i] = fmt.Sprintf("%q (%s)", h.Name, h.ID[:8])
		}
		return nil, fmt.Errorf("%q is ambiguous: %s", ref, strings.Join(names, ", "))
	}
}
