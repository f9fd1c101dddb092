package app

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/ontask/internal/models"
	"github.com/ayoisaiah/ontask/store"
)

// observationEdit holds the fields that may be changed after an observation
// is saved. Nil fields are left alone.
type observationEdit struct {
	Behavior *string
	Notes    *string
	Observer *string
	Student  *string
	Who      *[]string
	What     *string
	When     *string
	Where    *string
	Why      *string
	// Prompts replaces the logged prompts. Each entry is a prompt type,
	// optionally followed by "=" and an effectiveness rating.
	Prompts *[]string
	// Now stamps prompts that were not logged before.
	Now time.Time
}

func (e observationEdit) empty() bool {
	for _, s := range []*string{
		e.Behavior, e.Notes, e.Observer, e.Student,
		e.What, e.When, e.Where, e.Why,
	} {
		if s != nil {
			return false
		}
	}

	return e.Who == nil && e.Prompts == nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

// parsePrompts turns "Type" or "Type=rating" specs into prompts. Prompts
// whose type was already logged keep their original timestamp.
func parsePrompts(specs []string, existing []models.Prompt, now time.Time) ([]models.Prompt, error) {
	logged := make(map[string]time.Time, len(existing))
	for _, p := range existing {
		if _, ok := logged[p.Type]; !ok {
			logged[p.Type] = p.Timestamp
		}
	}

	prompts := make([]models.Prompt, 0, len(specs))

	for _, spec := range specs {
		typ, rating, _ := strings.Cut(spec, "=")

		typ = strings.TrimSpace(typ)
		rating = strings.ToLower(strings.TrimSpace(rating))

		if typ == "" {
			continue
		}

		if !models.ValidEffectiveness(rating) {
			return nil, errInvalidEffectiveness.Fmt(rating, typ)
		}

		at, ok := logged[typ]
		if !ok {
			at = now
		}

		prompts = append(prompts, models.Prompt{
			Type:          typ,
			Timestamp:     at,
			Effectiveness: rating,
		})
	}

	return prompts, nil
}

// apply returns a copy of obs with the edit applied.
func (e observationEdit) apply(obs *models.Observation) (*models.Observation, error) {
	updated := *obs
	updated.Context = obs.Context.Clone()

	if e.Observer != nil {
		updated.Observer = strings.TrimSpace(*e.Observer)
		if updated.Observer == "" {
			return nil, errEmptyField.Fmt("observer")
		}
	}

	if e.Student != nil {
		updated.Student = strings.TrimSpace(*e.Student)
		if updated.Student == "" {
			return nil, errEmptyField.Fmt("student")
		}
	}

	setString(&updated.Behavior, e.Behavior)
	setString(&updated.Context.What, e.What)
	setString(&updated.Context.When, e.When)
	setString(&updated.Context.Where, e.Where)
	setString(&updated.Context.Why, e.Why)

	if e.Notes != nil {
		updated.Context.Notes = *e.Notes
	}

	if e.Who != nil {
		who := []string{}

		for _, w := range *e.Who {
			if w = strings.TrimSpace(w); w != "" {
				who = append(who, w)
			}
		}

		updated.Context.Who = who
	}

	if e.Prompts != nil {
		prompts, err := parsePrompts(*e.Prompts, obs.Context.Prompts, e.Now)
		if err != nil {
			return nil, err
		}

		updated.Context.Prompts = prompts
	}

	return &updated, nil
}

// confirm waits for the user to press ENTER.
func confirm(w io.Writer, r io.Reader, msg string) {
	fmt.Fprint(w, pterm.Warning.Sprint(msg))

	reader := bufio.NewReader(r)

	_, _ = reader.ReadString('\n')
}

// editObservation updates an observation. It requests for confirmation
// before proceeding with the operation.
func editObservation(
	w io.Writer,
	r io.Reader,
	db store.DB,
	obs *models.Observation,
	e observationEdit,
	opts tableOpts,
) (*models.Observation, error) {
	if e.empty() {
		return nil, errNothingToEdit
	}

	updated, err := e.apply(obs)
	if err != nil {
		return nil, err
	}

	printObservationsTable(w, []*models.Observation{updated}, opts)

	confirm(w, r, "The observation above will be updated. Press ENTER to proceed")

	if err := db.UpdateObservation(updated); err != nil {
		return nil, err
	}

	return updated, nil
}
