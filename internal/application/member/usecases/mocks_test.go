package usecases

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"pulsefit/internal/domain/member"
	"pulsefit/internal/domain/payment"
	"pulsefit/internal/domain/plan"
	"pulsefit/internal/domain/user"
	"pulsefit/internal/shared/logger"
)

func testLogger() logger.Interface {
	return logger.NewLogger()
}

// memoryMemberRepo is an in-memory MemberRepository good enough for use case
// tests: it honors the (nil, nil) not-found contract and keeps insertion
// order for paging.
type memoryMemberRepo struct {
	mu      sync.Mutex
	nextID  uint
	members []*member.Member

	failCreate bool
	failUpdate bool
}

func newMemoryMemberRepo() *memoryMemberRepo {
	return &memoryMemberRepo{nextID: 1}
}

func (r *memoryMemberRepo) Create(_ context.Context, m *member.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate {
		return errDatabaseDown
	}
	if m.ID() == 0 {
		_ = m.SetID(r.nextID)
	}
	if m.ID() >= r.nextID {
		r.nextID = m.ID() + 1
	}
	r.members = append(r.members, m)
	return nil
}

func (r *memoryMemberRepo) Update(_ context.Context, m *member.Member) error {
	if r.failUpdate {
		return errDatabaseDown
	}
	return nil
}

func (r *memoryMemberRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, m := range r.members {
		if m.ID() == id {
			r.members = append(r.members[:i], r.members[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *memoryMemberRepo) GetByID(_ context.Context, id uint) (*member.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.members {
		if m.ID() == id {
			return m, nil
		}
	}
	return nil, nil
}

func (r *memoryMemberRepo) GetByMemberID(_ context.Context, memberID string) (*member.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.members {
		if m.MemberID() == memberID {
			return m, nil
		}
	}
	return nil, nil
}

func (r *memoryMemberRepo) GetByEmail(_ context.Context, email string) (*member.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.members {
		if m.Email() != "" && strings.EqualFold(m.Email(), email) {
			return m, nil
		}
	}
	return nil, nil
}

func (r *memoryMemberRepo) GetByUserID(_ context.Context, userID uint) (*member.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.members {
		if m.UserID() != nil && *m.UserID() == userID {
			return m, nil
		}
	}
	return nil, nil
}

func (r *memoryMemberRepo) ExistsByMemberID(_ context.Context, memberID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.members {
		if m.MemberID() == memberID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryMemberRepo) List(_ context.Context, filter member.MemberFilter) ([]*member.Member, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	page, pageSize := filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = len(r.members)
	}
	start := (page - 1) * pageSize
	if start >= len(r.members) {
		return nil, int64(len(r.members)), nil
	}
	end := start + pageSize
	if end > len(r.members) {
		end = len(r.members)
	}
	return r.members[start:end], int64(len(r.members)), nil
}

func (r *memoryMemberRepo) ListByPersistedStatus(_ context.Context, status member.Status, limit, offset int) ([]*member.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*member.Member
	for _, m := range r.members {
		if m.Status() == status {
			matched = append(matched, m)
		}
	}
	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (r *memoryMemberRepo) CountByPersistedStatus(_ context.Context, status member.Status) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, m := range r.members {
		if m.Status() == status {
			n++
		}
	}
	return n, nil
}

func (r *memoryMemberRepo) CountEndingBetween(_ context.Context, from, to time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, m := range r.members {
		if !m.SubscriptionEnd().Before(from) && !m.SubscriptionEnd().After(to) {
			n++
		}
	}
	return n, nil
}

type memoryPaymentRepo struct {
	mu       sync.Mutex
	nextID   uint
	payments []*payment.Payment

	failCreate bool
}

func newMemoryPaymentRepo() *memoryPaymentRepo {
	return &memoryPaymentRepo{nextID: 1}
}

func (r *memoryPaymentRepo) Create(_ context.Context, p *payment.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate {
		return errDatabaseDown
	}
	_ = p.SetID(r.nextID)
	r.nextID++
	r.payments = append(r.payments, p)
	return nil
}

func (r *memoryPaymentRepo) GetBySID(_ context.Context, sid string) (*payment.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.payments {
		if p.SID() == sid {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memoryPaymentRepo) ListByMemberID(_ context.Context, memberID uint) ([]*payment.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*payment.Payment
	for _, p := range r.payments {
		if p.MemberID() == memberID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memoryPaymentRepo) List(_ context.Context, _ payment.PaymentFilter) ([]*payment.Payment, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.payments, int64(len(r.payments)), nil
}

func (r *memoryPaymentRepo) BulkDelete(_ context.Context, sids []string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doomed := make(map[string]bool, len(sids))
	for _, sid := range sids {
		doomed[sid] = true
	}
	var kept []*payment.Payment
	var deleted int64
	for _, p := range r.payments {
		if doomed[p.SID()] {
			deleted++
			continue
		}
		kept = append(kept, p)
	}
	r.payments = kept
	return deleted, nil
}

func (r *memoryPaymentRepo) SumCompletedByMemberID(_ context.Context, memberID uint) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := decimal.Zero
	for _, p := range r.payments {
		if p.MemberID() == memberID && p.Status().IsCompleted() {
			total = total.Add(p.Amount())
		}
	}
	return total, nil
}

func (r *memoryPaymentRepo) TotalCompletedSince(_ context.Context, since time.Time) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := decimal.Zero
	for _, p := range r.payments {
		if p.Status().IsCompleted() && !p.PaidAt().Before(since) {
			total = total.Add(p.Amount())
		}
	}
	return total, nil
}

type memoryPlanRepo struct {
	mu     sync.Mutex
	nextID uint
	plans  []*plan.Plan
}

func newMemoryPlanRepo() *memoryPlanRepo {
	return &memoryPlanRepo{nextID: 1}
}

func (r *memoryPlanRepo) Create(_ context.Context, p *plan.Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_ = p.SetID(r.nextID)
	r.nextID++
	r.plans = append(r.plans, p)
	return nil
}

func (r *memoryPlanRepo) Update(_ context.Context, _ *plan.Plan) error { return nil }

func (r *memoryPlanRepo) Delete(_ context.Context, _ uint) error { return nil }

func (r *memoryPlanRepo) GetBySID(_ context.Context, sid string) (*plan.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.plans {
		if p.SID() == sid {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memoryPlanRepo) GetByName(_ context.Context, name string) (*plan.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.plans {
		if strings.EqualFold(p.Name(), name) {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memoryPlanRepo) List(_ context.Context, includeInactive bool) ([]*plan.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*plan.Plan
	for _, p := range r.plans {
		if includeInactive || p.IsActive() {
			out = append(out, p)
		}
	}
	return out, nil
}

type memoryUserRepo struct {
	mu     sync.Mutex
	nextID uint
	users  []*user.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{nextID: 1}
}

func (r *memoryUserRepo) Create(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_ = u.SetID(r.nextID)
	r.nextID++
	r.users = append(r.users, u)
	return nil
}

func (r *memoryUserRepo) Update(_ context.Context, _ *user.User) error { return nil }

func (r *memoryUserRepo) Delete(_ context.Context, _ uint) error { return nil }

func (r *memoryUserRepo) GetByID(_ context.Context, id uint) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID() == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memoryUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email(), email) {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memoryUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	u, _ := r.GetByEmail(ctx, email)
	return u != nil, nil
}

// mockNotifier records reminders and can be told to fail.
type mockNotifier struct {
	mu        sync.Mutex
	reminders []string
	welcomes  []string
	fail      bool
}

func (n *mockNotifier) SendRenewalReminder(_ context.Context, name, _, _, _ string, _ int) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return errNotifierDown
	}
	n.reminders = append(n.reminders, name)
	return nil
}

func (n *mockNotifier) SendWelcome(_ context.Context, name, _, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return errNotifierDown
	}
	n.welcomes = append(n.welcomes, name)
	return nil
}

type mockHasher struct{}

func (mockHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (mockHasher) Verify(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return errBadPassword
	}
	return nil
}

type mockTempPass struct{}

func (mockTempPass) Generate() (string, error) { return "Temp1234!", nil }

type mockLocker struct {
	denied bool
	locks  int
}

func (l *mockLocker) TryLock(_ context.Context) (bool, error) {
	if l.denied {
		return false, nil
	}
	l.locks++
	return true, nil
}

func (l *mockLocker) Unlock(_ context.Context) error { return nil }

var (
	errDatabaseDown = &stubErr{"database down"}
	errNotifierDown = &stubErr{"notifier down"}
	errBadPassword  = &stubErr{"bad password"}
)

type stubErr struct{ msg string }

func (e *stubErr) Error() string { return e.msg }
