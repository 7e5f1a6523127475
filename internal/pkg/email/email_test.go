package email

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/hostelmess/internal/app/models"
	"gopkg.in/gomail.v2"
)

type recordingDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *recordingDialer) DialAndSend(m ...*gomail.Message) error {
	d.sent = append(d.sent, m...)
	return d.err
}

func newTestService(cfg SMTPConfig, d dialer) *EmailServiceImpl {
	return &EmailServiceImpl{config: cfg, dialer: d, logger: zerolog.Nop()}
}

func sampleComplaint() *models.Complaint {
	return &models.Complaint{
		ID:          "c1",
		StudentName: "Arjun Singh",
		Category:    "Taste Issues",
		Description: "Dal <too> salty",
		Timestamp:   time.Date(2024, 1, 15, 12, 30, 0, 0, time.UTC),
		Status:      models.StatusPending,
	}
}

func TestSendComplaintNotification(t *testing.T) {
	d := &recordingDialer{}
	svc := newTestService(SMTPConfig{Host: "smtp.local", FromEmail: "mess@hostel.edu", FromName: "Mess Committee", CommitteeEmail: "committee@hostel.edu"}, d)

	require.NoError(t, svc.SendComplaintNotification(sampleComplaint()))
	require.Len(t, d.sent, 1)

	msg := d.sent[0]
	assert.Equal(t, []string{"committee@hostel.edu"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"New mess complaint: Taste Issues"}, msg.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Dal &lt;too&gt; salty")
}

func TestSendComplaintNotificationSkippedWhenUnconfigured(t *testing.T) {
	d := &recordingDialer{}
	svc := newTestService(SMTPConfig{}, d)

	require.NoError(t, svc.SendComplaintNotification(sampleComplaint()))
	assert.Empty(t, d.sent)
}

func TestSendComplaintNotificationError(t *testing.T) {
	d := &recordingDialer{err: errors.New("connection refused")}
	svc := newTestService(SMTPConfig{Host: "smtp.local", CommitteeEmail: "committee@hostel.edu"}, d)

	assert.ErrorContains(t, svc.SendComplaintNotification(sampleComplaint()), "connection refused")
}
