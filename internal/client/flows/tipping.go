package flows

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"sync"

	"github.com/yigit/hostelmess/internal/app/models"
	"github.com/yigit/hostelmess/internal/app/models/dto"
)

var ErrNoWorker = errors.New("select a worker to tip")

// TipAPI builds UPI deep links.
type TipAPI interface {
	TipLink(ctx context.Context, workerID, amount string) (*dto.TipLinkResponse, error)
}

// Opener hands a link to whatever handles it on this machine.
type Opener func(link string) error

// DefaultOpener opens link with the platform's URL handler.
func DefaultOpener(link string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", link)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", link)
	default:
		cmd = exec.Command("xdg-open", link)
	}
	_, err := startDetached(cmd)
	return err
}

// startDetached starts cmd and reaps it in the background. The returned
// channel is closed once the process has exited.
func startDetached(cmd *exec.Cmd) (<-chan struct{}, error) {
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = cmd.Wait()
	}()
	return done, nil
}

// Tipping is the worker picker with its UPI deep link. No payment is recorded.
type Tipping struct {
	api  TipAPI
	open Opener

	mu       sync.Mutex
	selected *models.Worker
	amount   string
}

func NewTipping(api TipAPI, open Opener) *Tipping {
	if open == nil {
		open = DefaultOpener
	}
	return &Tipping{api: api, open: open}
}

// Select picks the worker to tip.
func (t *Tipping) Select(worker models.Worker) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selected = &worker
}

// SetAmount sets the optional tip amount in rupees.
func (t *Tipping) SetAmount(amount string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.amount = amount
}

// Selected returns the picked worker.
func (t *Tipping) Selected() (models.Worker, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.selected == nil {
		return models.Worker{}, false
	}
	return *t.selected, true
}

// Link fetches the deep link for the selected worker.
func (t *Tipping) Link(ctx context.Context) (*dto.TipLinkResponse, error) {
	t.mu.Lock()
	selected, amount := t.selected, t.amount
	t.mu.Unlock()

	if selected == nil {
		return nil, ErrNoWorker
	}
	return t.api.TipLink(ctx, selected.ID, amount)
}

// Pay opens the deep link.
func (t *Tipping) Pay(ctx context.Context) (*dto.TipLinkResponse, error) {
	link, err := t.Link(ctx)
	if err != nil {
		return nil, err
	}
	if err := t.open(link.Link); err != nil {
		return link, err
	}
	return link, nil
}

// Close clears the selection.
func (t *Tipping) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selected = nil
	t.amount = ""
}
