package usecases

import "context"

// NotificationSender delivers renewal reminders and welcome messages over
// whatever channels are configured (email, SMS). Implementations must be
// safe for concurrent use.
type NotificationSender interface {
	SendRenewalReminder(ctx context.Context, name, email, phone, planName string, daysLeft int) error
	SendWelcome(ctx context.Context, name, email, tempPassword string) error
}

// PasswordHasher abstracts bcrypt so use cases stay testable.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) error
}

// TempPasswordGenerator produces the temporary password issued when staff
// provision a member login.
type TempPasswordGenerator interface {
	Generate() (string, error)
}

// SweepLocker serializes the expiry sweep across processes. TryLock returns
// false without error when another holder owns the lock.
type SweepLocker interface {
	TryLock(ctx context.Context) (bool, error)
	Unlock(ctx context.Context) error
}
