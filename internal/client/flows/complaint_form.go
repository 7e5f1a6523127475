package flows

import (
	"context"
	"sync"
	"time"

	"github.com/yigit/hostelmess/internal/client"
	"github.com/yigit/hostelmess/internal/client/hooks"
)

// FormState is where the complaint form is in its submit cycle.
type FormState string

const (
	FormIdle       FormState = "idle"
	FormSubmitting FormState = "submitting"
	FormSubmitted  FormState = "submitted"
)

// ConfirmationDelay is how long the "submitted" confirmation stays up.
const ConfirmationDelay = 3 * time.Second

// ComplaintCreator files a complaint. *hooks.ComplaintsHook satisfies it.
type ComplaintCreator interface {
	CreateComplaint(ctx context.Context, in client.NewComplaint) error
}

// ComplaintForm is the student's complaint form.
type ComplaintForm struct {
	creator ComplaintCreator
	// afterFunc schedules the return to idle; time.AfterFunc outside tests.
	afterFunc func(d time.Duration, f func())

	mu    sync.Mutex
	input client.NewComplaint
	state FormState
	err   string
}

func NewComplaintForm(creator ComplaintCreator) *ComplaintForm {
	return &ComplaintForm{
		creator: creator,
		afterFunc: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
		state: FormIdle,
	}
}

// SetCategory, SetDescription and SetPhoto fill in the form.
func (f *ComplaintForm) SetCategory(category string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.input.Category = category
}

func (f *ComplaintForm) SetDescription(description string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.input.Description = description
}

func (f *ComplaintForm) SetPhoto(photo *client.Photo) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.input.Photo = photo
}

// Input returns the current form values.
func (f *ComplaintForm) Input() client.NewComplaint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.input
}

// State returns the submit state and the last error message.
func (f *ComplaintForm) State() (FormState, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state, f.err
}

// Submit files the complaint. On success the form is cleared and shows the
// confirmation until ConfirmationDelay has passed. On failure it returns to
// idle with the inputs kept.
func (f *ComplaintForm) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.state == FormSubmitting {
		f.mu.Unlock()
		return nil
	}
	f.state = FormSubmitting
	f.err = ""
	input := f.input
	f.mu.Unlock()

	err := f.creator.CreateComplaint(ctx, input)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.state = FormIdle
		f.err = hooks.Message(err, "Failed to submit complaint")
		return err
	}

	f.state = FormSubmitted
	f.input = client.NewComplaint{}
	f.afterFunc(ConfirmationDelay, f.reset)
	return nil
}

func (f *ComplaintForm) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == FormSubmitted {
		f.state = FormIdle
	}
}
