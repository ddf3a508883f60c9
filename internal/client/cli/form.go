package cli

import "fmt"

// formState tracks the generation workflow so the prompt can offer the
// right follow-up: a fresh form, a retry, or "generate another".
type formState int

const (
	formIdle formState = iota
	formSubmitting
	formSucceeded
	formFailed
)

func (s formState) String() string {
	switch s {
	case formIdle:
		return "idle"
	case formSubmitting:
		return "submitting"
	case formSucceeded:
		return "succeeded"
	case formFailed:
		return "failed"
	default:
		return fmt.Sprintf("formState(%d)", int(s))
	}
}

// genForm is the generation form's state machine. Begin is only legal from
// idle; a new round (generate another, or retry after a failure) goes
// through Reset first. Illegal transitions return an error instead of
// corrupting the state.
type genForm struct {
	state formState
}

func (f *genForm) State() formState { return f.state }

// Begin moves idle -> submitting.
func (f *genForm) Begin() error {
	if f.state != formIdle {
		return fmt.Errorf("cannot begin submission from %s", f.state)
	}
	f.state = formSubmitting
	return nil
}

// Succeed moves submitting -> succeeded.
func (f *genForm) Succeed() error {
	if f.state != formSubmitting {
		return fmt.Errorf("cannot succeed from %s", f.state)
	}
	f.state = formSucceeded
	return nil
}

// Fail moves submitting -> failed.
func (f *genForm) Fail() error {
	if f.state != formSubmitting {
		return fmt.Errorf("cannot fail from %s", f.state)
	}
	f.state = formFailed
	return nil
}

// Reset returns to idle from any terminal state. Resetting mid-submission
// is not allowed.
func (f *genForm) Reset() error {
	if f.state == formSubmitting {
		return fmt.Errorf("cannot reset while submitting")
	}
	f.state = formIdle
	return nil
}
