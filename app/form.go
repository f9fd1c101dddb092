package app

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/ayoisaiah/ontask/internal/config"
	"github.com/ayoisaiah/ontask/internal/models"
	"github.com/ayoisaiah/ontask/internal/session"
)

const otherBehavior = "Other"

var (
	whoOptions = []string{"Peers", "Teacher", "Para", "None", "Other"}

	whereOptions = []string{"Classroom", "Small Group Room", "Hallway", "Cafeteria", "Playground", "Library"}

	behaviorOptions = []string{
		"Verbal Outburst",
		"Physical Aggression",
		"Off-Task Behavior",
		"Compliance",
		"Self-Injury",
		"Tantrum",
		"Withdrawal",
		"Positive Participation",
		"Disruptive Behavior",
		"Attention Seeking",
		"Fidgeting",
		otherBehavior,
	}
)

// startForm holds the answers to the start form.
type startForm struct {
	params        session.Params
	behaviorOther string
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " is required")
		}

		return nil
	}
}

// newStartForm prefills the form from the config and command-line flags.
func newStartForm(cfg *config.Config) *startForm {
	f := &startForm{}

	f.params.Observer = cfg.Observer.Name
	f.params.Student = cfg.CLI.Student
	f.params.Status = cfg.CLI.Status
	f.params.Behavior = cfg.CLI.Behavior

	if f.params.Status == "" {
		f.params.Status = models.OnTask
	}

	return f
}

// complete reports whether the flags already answered every required field.
func (f *startForm) complete(cfg *config.Config) bool {
	return f.params.Observer != "" && cfg.CLI.Student != "" && cfg.CLI.Status != ""
}

func (f *startForm) build(recent []string) *huh.Form {
	statusOpts := make([]huh.Option[models.Status], len(models.Statuses))
	for i, s := range models.Statuses {
		statusOpts[i] = huh.NewOption(s.Label(), s)
	}

	behaviorOpts := append(
		[]huh.Option[string]{huh.NewOption("None", "")},
		huh.NewOptions(behaviorOptions...)...,
	)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Observer").
				Validate(required("observer")).
				Value(&f.params.Observer),
			huh.NewInput().
				Title("Student").
				Description("Initials or an identifier").
				Suggestions(recent).
				Validate(required("student")).
				Value(&f.params.Student),
			huh.NewSelect[models.Status]().
				Title("Primary status").
				Description("Time not tagged with an episode is recorded with this status").
				Options(statusOpts...).
				Value(&f.params.Status),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Behavior").
				Options(behaviorOpts...).
				Value(&f.params.Behavior),
			huh.NewInput().
				Title("Describe the behavior").
				Value(&f.behaviorOther),
		).WithHideFunc(func() bool {
			return f.params.Behavior != "" && f.params.Behavior != otherBehavior && f.behaviorOther == ""
		}),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Who else is present?").
				Options(huh.NewOptions(whoOptions...)...).
				Value(&f.params.Context.Who),
			huh.NewInput().
				Title("What is happening?").
				Placeholder("Independent reading").
				Value(&f.params.Context.What),
			huh.NewInput().
				Title("When").
				Placeholder("Period 2").
				Value(&f.params.Context.When),
			huh.NewSelect[string]().
				Title("Where").
				Options(huh.NewOptions(whereOptions...)...).
				Value(&f.params.Context.Where),
			huh.NewInput().
				Title("Why is this student being observed?").
				Value(&f.params.Context.Why),
		),
	)
}

// result returns the session parameters from the answers.
func (f *startForm) result() session.Params {
	p := f.params

	if p.Behavior == otherBehavior && strings.TrimSpace(f.behaviorOther) != "" {
		p.Behavior = strings.TrimSpace(f.behaviorOther)
	}

	if p.Context.Who == nil {
		p.Context.Who = []string{}
	}

	return p
}

// runStartForm asks for anything the flags did not supply.
func runStartForm(cfg *config.Config, recent []string) (session.Params, error) {
	f := newStartForm(cfg)

	if f.complete(cfg) {
		return f.result(), nil
	}

	if err := f.build(recent).Run(); err != nil {
		return session.Params{}, err
	}

	return f.result(), nil
}
