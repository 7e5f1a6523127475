package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/hostelmess/internal/app/models"
	"github.com/yigit/hostelmess/internal/pkg/email"
	"github.com/yigit/hostelmess/internal/pkg/websocket"
)

type listenerHub interface {
	AddListener(listener chan websocket.Event)
	RemoveListener(listener chan websocket.Event)
}

// NotificationService mails the committee about every new complaint. It
// listens on the realtime hub so request handling never waits on SMTP.
type NotificationService struct {
	hub    listenerHub
	mailer email.EmailService
	events chan websocket.Event
	logger zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(hub listenerHub, mailer email.EmailService, logger zerolog.Logger) *NotificationService {
	return &NotificationService{
		hub:    hub,
		mailer: mailer,
		events: make(chan websocket.Event, 32),
		logger: logger,
	}
}

// Run consumes hub events until ctx is cancelled.
func (n *NotificationService) Run(ctx context.Context) {
	n.hub.AddListener(n.events)
	defer n.hub.RemoveListener(n.events)

	for {
		select {
		case <-ctx.Done():
			return
		case event := <-n.events:
			n.handle(event)
		}
	}
}

func (n *NotificationService) handle(event websocket.Event) {
	if event.Table != TableComplaints || event.Action != websocket.ActionInsert {
		return
	}

	complaint, ok := event.Record.(*models.Complaint)
	if !ok {
		n.logger.Warn().Str("complaintID", event.ID).Msg("Complaint event without record, skipping notification")
		return
	}

	if err := n.mailer.SendComplaintNotification(complaint); err != nil {
		n.logger.Error().Err(err).Str("complaintID", complaint.ID).Msg("Complaint notification failed")
	}
}
