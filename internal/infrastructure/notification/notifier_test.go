package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulsefit/internal/shared/logger"
)

type fakeEmail struct {
	welcomes  int
	reminders int
	fail      bool
}

func (f *fakeEmail) SendWelcomeEmail(to, name, tempPassword string) error {
	if f.fail {
		return errors.New("smtp down")
	}
	f.welcomes++
	return nil
}

func (f *fakeEmail) SendRenewalReminderEmail(to, name, planName string, daysLeft int) error {
	if f.fail {
		return errors.New("smtp down")
	}
	f.reminders++
	return nil
}

type fakeSMS struct {
	enabled bool
	sent    int
	fail    bool
}

func (f *fakeSMS) Enabled() bool { return f.enabled }

func (f *fakeSMS) Send(ctx context.Context, phone, message string) error {
	if f.fail {
		return errors.New("gateway down")
	}
	f.sent++
	return nil
}

func TestNotifier_ReminderFansOutToBothChannels(t *testing.T) {
	email := &fakeEmail{}
	smsCh := &fakeSMS{enabled: true}
	n := NewNotifier(email, smsCh, logger.NewLogger())

	err := n.SendRenewalReminder(context.Background(), "Ana", "ana@example.com", "+34600111222", "Monthly", 3)
	require.NoError(t, err)
	assert.Equal(t, 1, email.reminders)
	assert.Equal(t, 1, smsCh.sent)
}

func TestNotifier_ReminderSucceedsWhenOneChannelDelivers(t *testing.T) {
	email := &fakeEmail{}
	smsCh := &fakeSMS{enabled: true, fail: true}
	n := NewNotifier(email, smsCh, logger.NewLogger())

	err := n.SendRenewalReminder(context.Background(), "Ana", "ana@example.com", "+34600111222", "Monthly", 3)
	require.NoError(t, err)
	assert.Equal(t, 1, email.reminders)
}

func TestNotifier_ReminderFailsWhenAllChannelsFail(t *testing.T) {
	email := &fakeEmail{fail: true}
	smsCh := &fakeSMS{enabled: true, fail: true}
	n := NewNotifier(email, smsCh, logger.NewLogger())

	err := n.SendRenewalReminder(context.Background(), "Ana", "ana@example.com", "+34600111222", "Monthly", 3)
	assert.Error(t, err)
}

func TestNotifier_ReminderFailsWithoutContactChannel(t *testing.T) {
	n := NewNotifier(&fakeEmail{}, &fakeSMS{}, logger.NewLogger())

	err := n.SendRenewalReminder(context.Background(), "Ana", "", "", "Monthly", 3)
	assert.Error(t, err)
}

func TestNotifier_ReminderSkipsDisabledSMSGateway(t *testing.T) {
	email := &fakeEmail{}
	smsCh := &fakeSMS{enabled: false}
	n := NewNotifier(email, smsCh, logger.NewLogger())

	err := n.SendRenewalReminder(context.Background(), "Ana", "ana@example.com", "+34600111222", "Monthly", 3)
	require.NoError(t, err)
	assert.Equal(t, 0, smsCh.sent)
}

func TestNotifier_WelcomeRequiresEmail(t *testing.T) {
	email := &fakeEmail{}
	n := NewNotifier(email, &fakeSMS{}, logger.NewLogger())

	assert.Error(t, n.SendWelcome(context.Background(), "Ana", "", "Temp1234!"))

	require.NoError(t, n.SendWelcome(context.Background(), "Ana", "ana@example.com", "Temp1234!"))
	assert.Equal(t, 1, email.welcomes)
}
