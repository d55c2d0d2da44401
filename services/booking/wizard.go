package booking

import (
	"regexp"

	"harborview/models"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Wizard drives one booking draft through the fixed, linear checkout
// steps: RoomDetails -> GuestInfo -> Payment -> Confirmation. Invalid
// transitions are no-ops, not errors; the UI disables the buttons.
type Wizard struct {
	Draft *models.BookingDraft
}

func NewWizard(d *models.BookingDraft) *Wizard {
	if d.Step == "" {
		d.Step = models.StepRoomDetails
	}
	return &Wizard{Draft: d}
}

func (w *Wizard) CurrentStep() models.WizardStep {
	return w.Draft.Step
}

// IsStepValid reports whether the given step's requirements are met.
// Confirmation is terminal and never validated.
func (w *Wizard) IsStepValid(step models.WizardStep) bool {
	d := w.Draft
	switch step {
	case models.StepRoomDetails:
		return d.RoomID != ""
	case models.StepGuestInfo:
		return d.Guest.FirstName != "" &&
			d.Guest.LastName != "" &&
			d.Guest.Phone != "" &&
			emailPattern.MatchString(d.Guest.Email)
	case models.StepPayment:
		switch d.PaymentMethod {
		case models.PaymentMethodCash:
			return true
		case models.PaymentMethodCard:
			return d.CardComplete
		default:
			return false
		}
	default:
		return false
	}
}

// CanProceed reports whether the current step would allow forward
// progress. On the payment step this gates the submit action rather
// than a bare Next transition.
func (w *Wizard) CanProceed() bool {
	if w.Draft.Step == models.StepConfirmation {
		return false
	}
	return w.IsStepValid(w.Draft.Step)
}

// Next advances to the following step when the current one is valid.
// Advancing out of Payment never happens here: that transition is owned
// by the payment orchestration and only fires on success.
func (w *Wizard) Next() bool {
	step := w.Draft.Step
	if step == models.StepPayment || step == models.StepConfirmation {
		return false
	}
	if !w.IsStepValid(step) {
		return false
	}
	w.Draft.Step = models.StepOrder[step.Index()+1]
	return true
}

// Back moves to the previous step, clearing any payment error. Guest info
// and the chosen payment method are preserved. No-op on the initial and
// terminal steps.
func (w *Wizard) Back() bool {
	step := w.Draft.Step
	if step == models.StepRoomDetails || step == models.StepConfirmation {
		return false
	}
	w.Draft.Error = ""
	w.Draft.ErrorCode = ""
	w.Draft.Step = models.StepOrder[step.Index()-1]
	return true
}

// JumpTo moves directly to a previously-completed step, the current step,
// or exactly one step ahead when the current step is valid. Confirmation
// can never be jumped into or out of.
func (w *Wizard) JumpTo(target models.WizardStep) bool {
	current := w.Draft.Step
	if current == models.StepConfirmation || target == models.StepConfirmation {
		return false
	}
	ti, ci := target.Index(), current.Index()
	if ti < 0 {
		return false
	}
	switch {
	case ti <= ci:
		w.Draft.Step = target
		return true
	case ti == ci+1 && w.IsStepValid(current):
		w.Draft.Step = target
		return true
	default:
		return false
	}
}

// completePayment is the terminal transition, taken only after a
// successful booking creation.
func (w *Wizard) completePayment(result *models.BookingResult) {
	w.Draft.BookingResult = result
	w.Draft.Step = models.StepConfirmation
	w.Draft.Error = ""
	w.Draft.ErrorCode = ""
	w.Draft.Processing = false
}
