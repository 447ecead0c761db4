// Package wizard implements the multi-step form state holder used by the
// impact-assessment wizard and the compliance-scan funnel. The holder owns
// one user's accumulated answers for one session; it is never shared across
// users, so no locking is required.
package wizard

import (
	"context"
	"errors"
)

// FormData is the single accumulating answer record that step components
// read and partially update.
type FormData map[string]any

// Step is one named position in the fixed, ordered sequence.
type Step struct {
	Name string
	// Required lists the form fields that must be non-empty before the
	// advance affordance is enabled. Validation lives in the UI gating,
	// not in Patch.
	Required []string
}

// Persister is the external collaborator the wizard hands its accumulated
// form data to. SaveDraft upserts and returns the persisted identity;
// Complete transitions the persisted entity to its completed state.
type Persister interface {
	SaveDraft(ctx context.Context, id string, form FormData) (string, error)
	Complete(ctx context.Context, id string) error
}

// ErrNoSteps is returned by New when the step sequence is empty.
var ErrNoSteps = errors.New("wizard: at least one step is required")

// Wizard holds a current-step pointer over a fixed step sequence and the
// accumulating form data. Transitions are strictly linear; completion is a
// status flag on the persisted entity, not a wizard step.
type Wizard struct {
	steps     []Step
	current   int
	form      FormData
	persisted string // identity assigned by the first successful draft save
	persister Persister
}

// New creates a wizard at the first step with form data seeded from seed
// (nil for an empty form). Pass the persisted id when resuming an existing
// draft so SubmitFinal does not re-create it.
func New(steps []Step, persister Persister, seed FormData) (*Wizard, error) {
	if len(steps) == 0 {
		return nil, ErrNoSteps
	}
	w := &Wizard{steps: steps, persister: persister}
	w.Reset(seed)
	return w, nil
}

// Resume seeds the wizard from a previously persisted draft.
func (w *Wizard) Resume(id string, form FormData) {
	w.Reset(form)
	w.persisted = id
}

// Step returns the current step.
func (w *Wizard) Step() Step {
	return w.steps[w.current]
}

// StepIndex returns the zero-based current step position.
func (w *Wizard) StepIndex() int {
	return w.current
}

// AtLastStep reports whether the wizard is on the final step.
func (w *Wizard) AtLastStep() bool {
	return w.current == len(w.steps)-1
}

// Advance moves to the next step. A no-op, not an error, at the last step.
func (w *Wizard) Advance() {
	if w.current < len(w.steps)-1 {
		w.current++
	}
}

// Retreat moves to the previous step. A no-op at the first step.
func (w *Wizard) Retreat() {
	if w.current > 0 {
		w.current--
	}
}

// CanAdvance reports whether every required field of the current step is
// non-empty. The UI disables the advance affordance while this is false;
// Advance itself does not re-check.
func (w *Wizard) CanAdvance() bool {
	for _, field := range w.steps[w.current].Required {
		v, ok := w.form[field]
		if !ok || v == nil {
			return false
		}
		if s, isString := v.(string); isString && s == "" {
			return false
		}
	}
	return true
}

// Patch shallow-merges a partial update into the form data. Last write wins
// per field; no history is retained and no validation is performed here.
func (w *Wizard) Patch(partial FormData) {
	for k, v := range partial {
		w.form[k] = v
	}
}

// Get returns the current value of a form field.
func (w *Wizard) Get(field string) (any, bool) {
	v, ok := w.form[field]
	return v, ok
}

// Form returns a copy of the accumulated form data.
func (w *Wizard) Form() FormData {
	out := make(FormData, len(w.form))
	for k, v := range w.form {
		out[k] = v
	}
	return out
}

// Reset reinitializes the form data and returns to the first step. Used when
// starting a new assessment instance, optionally pre-seeded with values
// inferred from a prior audit.
func (w *Wizard) Reset(seed FormData) {
	w.form = make(FormData, len(seed))
	for k, v := range seed {
		w.form[k] = v
	}
	w.current = 0
	w.persisted = ""
}

// PersistedID returns the identity assigned by the first successful draft
// save, empty while the form has never been saved.
func (w *Wizard) PersistedID() string {
	return w.persisted
}

// SubmitDraft hands the accumulated form data to the persister. On failure
// the local form data is kept intact so the user can retry the same action
// without data loss.
func (w *Wizard) SubmitDraft(ctx context.Context) error {
	id, err := w.persister.SaveDraft(ctx, w.persisted, w.Form())
	if err != nil {
		return err
	}
	w.persisted = id
	return nil
}

// SubmitFinal completes the assessment. If no draft has ever been saved it
// performs an implicit draft save first, then the completion transition.
// As with SubmitDraft, failures leave local state untouched.
func (w *Wizard) SubmitFinal(ctx context.Context) error {
	if w.persisted == "" {
		if err := w.SubmitDraft(ctx); err != nil {
			return err
		}
	}
	return w.persister.Complete(ctx, w.persisted)
}
