package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"habitquest/internal/cli/formatter"
	"habitquest/internal/domain"
	"habitquest/internal/onboarding"
)

func newOnboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "onboard",
		Short: "Set up your profile, archetype and starting habits",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("onboarding needs an interactive terminal")
			}

			flow := onboarding.NewFlow(app.Engine)
			if flow.Current() == onboarding.StepDone {
				fmt.Println("Already onboarded. Use 'habitquest habit add' to extend your roster, or 'habitquest reset' to start over.")
				return nil
			}

			if err := runOnboarding(flow); err != nil {
				return err
			}

			if flow.Current() != onboarding.StepDone {
				fmt.Println("Onboarding not finished; progress so far is saved. Run 'habitquest onboard' to continue.")
				return flushAndReport(app)
			}

			ov := app.Engine.Overview()
			fmt.Printf("\n%s\n\nWelcome, %s. Day 1 of %d starts now.\nRun 'habitquest today' to see your habits.\n",
				formatter.Header("The program begins"), formatter.Bold(ov.Username), domain.ProgramDays)
			return flushAndReport(app)
		},
	}
}

// runOnboarding drives the wizard until done or the user bails out. Esc on a
// form steps back; Esc from the welcome screen exits.
func runOnboarding(flow *onboarding.Flow) error {
	for {
		step := flow.Current()
		if step == onboarding.StepDone {
			return nil
		}

		form, apply := stepForm(flow, step)
		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				if step == onboarding.StepWelcome {
					return nil
				}
				flow.Back()
				continue
			}
			return err
		}
		apply()
	}
}

// stepForm builds the huh form for one wizard step and the callback that
// feeds its answers into the flow.
func stepForm(flow *onboarding.Flow, step onboarding.Step) (*huh.Form, func()) {
	switch step {
	case onboarding.StepWelcome:
		var begin bool
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title("66 days. One transformation.").
				Description("Pick your demons to slay and powers to build, then show up every day.").
				Affirmative("Begin").
				Negative("Not yet").
				Value(&begin),
		)).WithTheme(questHuhTheme())
		return form, func() {
			if begin {
				flow.Begin()
			}
		}

	case onboarding.StepProfile:
		var name string
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("What should we call you?").
				Placeholder("warrior name").
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("a name is required")
					}
					return nil
				}).
				Value(&name),
		)).WithTheme(questHuhTheme())
		return form, func() { flow.SetName(name) }

	case onboarding.StepCommitment:
		var answers domain.CommitmentAnswers
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewMultiSelect[string]().
					Title("What do you struggle with most?").
					Options(
						huh.NewOption("Procrastination", "procrastination"),
						huh.NewOption("Addiction", "addiction"),
						huh.NewOption("Low energy", "low-energy"),
						huh.NewOption("No discipline", "no-discipline"),
						huh.NewOption("Distraction", "distraction"),
					).
					Value(&answers.Struggles),
				huh.NewSelect[string]().
					Title("How serious are you this time?").
					Options(
						huh.NewOption("Dead serious", "dead-serious"),
						huh.NewOption("Serious", "serious"),
						huh.NewOption("Testing the waters", "testing"),
					).
					Value(&answers.Seriousness),
				huh.NewInput().
					Title("Who are you becoming?").
					Placeholder("one sentence").
					Value(&answers.Identity),
			),
			huh.NewGroup(
				huh.NewConfirm().
					Title("Commit to the full 66 days?").
					Affirmative("I commit").
					Negative("No").
					Value(&answers.Ready),
			),
		).WithTheme(questHuhTheme())
		return form, func() {
			if answers.Ready {
				flow.SetCommitment(answers)
			}
		}

	case onboarding.StepArchetype:
		var chosen string
		options := make([]huh.Option[string], 0, len(domain.Archetypes))
		for _, a := range domain.Archetypes {
			label := fmt.Sprintf("%s — %s", a.Title, a.Tagline)
			options = append(options, huh.NewOption(label, string(a.ID)))
		}
		form := huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().
				Title("Choose your archetype").
				Options(options...).
				Value(&chosen),
		)).WithTheme(questHuhTheme())
		return form, func() { flow.ChooseArchetype(domain.Archetype(chosen)) }

	case onboarding.StepDifficulty:
		var chosen string
		form := huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().
				Title("Choose your difficulty").
				Options(
					huh.NewOption("Easy — ease in", string(domain.DifficultyEasy)),
					huh.NewOption("Medium — the honest default", string(domain.DifficultyMedium)),
					huh.NewOption("Extreme — no mercy", string(domain.DifficultyExtreme)),
				).
				Value(&chosen),
		)).WithTheme(questHuhTheme())
		return form, func() { flow.ChooseDifficulty(domain.Difficulty(chosen)) }

	default: // StepCustomize
		snap := flow.Snapshot()
		info, _ := domain.ArchetypeByID(snap.Archetype)
		templates := append(append([]domain.HabitTemplate{}, info.Demons...), info.Powers...)

		picked := make([]int, 0, len(templates))
		options := make([]huh.Option[int], 0, len(templates))
		for i, t := range templates {
			label := fmt.Sprintf("[%s] %s (%d XP, %s)",
				t.Kind, t.Name, t.XP, formatter.FrequencyLabel(t.Frequency))
			options = append(options, huh.NewOption(label, i).Selected(true))
		}
		form := huh.NewForm(huh.NewGroup(
			huh.NewMultiSelect[int]().
				Title("Your starting habits").
				Description("Deselect any you want to drop; you can add more later.").
				Options(options...).
				Validate(func(sel []int) error {
					if len(sel) == 0 {
						return fmt.Errorf("keep at least one habit")
					}
					return nil
				}).
				Value(&picked),
		)).WithTheme(questHuhTheme())
		return form, func() {
			chosen := make([]domain.HabitTemplate, 0, len(picked))
			for _, i := range picked {
				chosen = append(chosen, templates[i])
			}
			flow.ConfirmHabits(chosen)
		}
	}
}
