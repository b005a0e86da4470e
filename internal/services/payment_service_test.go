package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"mindcaddy/internal/models/db_models"
	"mindcaddy/internal/models/request_models"
	"mindcaddy/internal/repositories"
	mem "mindcaddy/pkg/memcache"
	"mindcaddy/pkg/utils"
)

type fakePlanRepo struct {
	plans map[string]*db_models.Plan
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: map[string]*db_models.Plan{
		"free":     {Code: "free", Name: "Free", Currency: "USD"},
		"premium":  {Code: "premium", Name: "Premium", PriceMinor: 1499, Currency: "USD"},
		"ultimate": {Code: "ultimate", Name: "Ultimate", PriceMinor: 4999, Currency: "USD"},
	}}
}

func (r *fakePlanRepo) GetPlanByCode(ctx context.Context, code string) (*db_models.Plan, error) {
	return r.plans[code], nil
}

func (r *fakePlanRepo) GetActivePlans(ctx context.Context) ([]db_models.Plan, error) {
	out := make([]db_models.Plan, 0, len(r.plans))
	for _, p := range r.plans {
		out = append(out, *p)
	}
	return out, nil
}

type fakeBillingRepo struct {
	mu   sync.Mutex
	txns map[string]*db_models.Transaction
	subs []db_models.Subscription
}

func newFakeBillingRepo() *fakeBillingRepo {
	return &fakeBillingRepo{txns: make(map[string]*db_models.Transaction)}
}

func (r *fakeBillingRepo) InsertTransaction(ctx context.Context, txn *db_models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if txn.ID == uuid.Nil {
		txn.ID = uuid.New()
	}
	cp := *txn
	r.txns[txn.ProviderTxnID] = &cp
	return nil
}

func (r *fakeBillingRepo) GetTransactionByProviderTxnID(ctx context.Context, providerTxnID string) (*db_models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	txn, ok := r.txns[providerTxnID]
	if !ok {
		return nil, nil
	}
	cp := *txn
	return &cp, nil
}

func (r *fakeBillingRepo) MarkTransactionFailed(ctx context.Context, id uuid.UUID) error {
	return r.setStatus(id, db_models.TxnStatusFailed, nil)
}

func (r *fakeBillingRepo) MarkTransactionPaid(ctx context.Context, id uuid.UUID, paidAt int64) error {
	return r.setStatus(id, db_models.TxnStatusPaid, &paidAt)
}

func (r *fakeBillingRepo) setStatus(id uuid.UUID, status db_models.TransactionStatus, paidAt *int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, txn := range r.txns {
		if txn.ID == id {
			txn.Status = status
			if paidAt != nil {
				txn.PaidAt = paidAt
			}
		}
	}
	return nil
}

func (r *fakeBillingRepo) SetTransactionMetadata(ctx context.Context, id uuid.UUID, metadata []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, txn := range r.txns {
		if txn.ID == id {
			txn.Metadata = metadata
		}
	}
	return nil
}

func (r *fakeBillingRepo) AttachTransactionAccount(ctx context.Context, providerTxnID string, accountID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if txn, ok := r.txns[providerTxnID]; ok && txn.AccountID == nil {
		id := accountID
		txn.AccountID = &id
	}
	return nil
}

func (r *fakeBillingRepo) HasSubscriptionForProviderSubID(ctx context.Context, providerSubID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.subs {
		if s.ProviderSubID == providerSubID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBillingRepo) InsertSubscription(ctx context.Context, sub *db_models.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs = append(r.subs, *sub)
	return nil
}

type recordingMail struct {
	mu       sync.Mutex
	upgrades []string
}

func (m *recordingMail) SendPasswordResetCode(to, code string) error { return nil }

func (m *recordingMail) SendUpgradeConfirmation(to, tierName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upgrades = append(m.upgrades, to+":"+tierName)
	return nil
}

func newPaymentServiceForTest(t *testing.T, billing repositories.IBillingRepository, accounts repositories.AccountRepository, pending mem.PendingTierStore, mail IMailService) PaymentService {
	t.Helper()

	cfg := PayOSConfig{
		ClientID:    "test-client",
		ApiKey:      "test-key",
		ChecksumKey: "test-checksum",
	}
	svc, err := NewPaymentService(cfg, billing, accounts, newFakePlanRepo(), pending, mail)
	if err != nil {
		t.Fatalf("NewPaymentService: %v", err)
	}
	return svc
}

func TestResolveCapturedTier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		tierParam string
		stored    string
		want      db_models.SubscriptionTier
	}{
		{"param wins", "ultimate", "premium", db_models.TierUltimate},
		{"falls back to stored", "", "premium", db_models.TierPremium},
		{"garbage param falls back", "platinum", "ultimate", db_models.TierUltimate},
		{"nothing captured defaults to free", "", "", db_models.TierFree},
		{"garbage everywhere defaults to free", "x", "y", db_models.TierFree},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := resolveCapturedTier(tt.tierParam, tt.stored); got != tt.want {
				t.Errorf("resolveCapturedTier(%q, %q) = %s, want %s", tt.tierParam, tt.stored, got, tt.want)
			}
		})
	}
}

func TestCaptureSuccess_Idempotent(t *testing.T) {
	t.Parallel()

	pending := mem.NewPendingTiers()
	pending.Set(123456, "premium", time.Hour)
	svc := newPaymentServiceForTest(t, newFakeBillingRepo(), newFakeAccountRepo(), pending, &recordingMail{})

	for i := 0; i < 3; i++ {
		capture, err := svc.CaptureSuccess(context.Background(), "", 123456)
		if err != nil {
			t.Fatalf("capture %d: %v", i+1, err)
		}
		if capture.Tier != "premium" {
			t.Errorf("capture %d tier = %s, want premium", i+1, capture.Tier)
		}
		if capture.Plan == nil || capture.Plan.Code != "premium" {
			t.Errorf("capture %d should carry the premium plan summary", i+1)
		}
	}
}

func TestCaptureSuccess_DirectVisitDefaultsToFree(t *testing.T) {
	t.Parallel()

	svc := newPaymentServiceForTest(t, newFakeBillingRepo(), newFakeAccountRepo(), mem.NewPendingTiers(), &recordingMail{})

	capture, err := svc.CaptureSuccess(context.Background(), "", 0)
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if capture.Tier != "free" {
		t.Errorf("tier = %s, want free", capture.Tier)
	}
}

func TestCompleteSignup_EntitlesCapturedTier(t *testing.T) {
	t.Parallel()

	accounts := newFakeAccountRepo()
	pending := mem.NewPendingTiers()
	pending.Set(777, "ultimate", time.Hour)
	mail := &recordingMail{}
	svc := newPaymentServiceForTest(t, newFakeBillingRepo(), accounts, pending, mail)

	resp, err := svc.CompleteSignup(context.Background(), request_models.CompleteSignupRequest{
		Tier:        "ultimate",
		DisplayName: "Jordan",
		Username:    "jordan9",
		Email:       "jordan@example.com",
		Password:    "secret123",
	})
	if err != nil {
		t.Fatalf("CompleteSignup: %v", err)
	}
	if resp.SubscriptionTier != "ultimate" {
		t.Errorf("tier = %s, want ultimate", resp.SubscriptionTier)
	}
	if !resp.IsSubscribed {
		t.Error("paid tier must imply IsSubscribed")
	}

	stored, _ := accounts.FindByEmail(context.Background(), "jordan@example.com")
	if stored == nil {
		t.Fatal("account was not persisted")
	}
	if stored.SubscriptionTier != db_models.TierUltimate || !stored.IsSubscribed {
		t.Errorf("stored entitlement = %s/%v, want ultimate/true", stored.SubscriptionTier, stored.IsSubscribed)
	}
	if stored.SubscriptionStartsAt == nil || stored.SubscriptionEndsAt == nil {
		t.Error("paid signup should carry a subscription period")
	}

	if len(mail.upgrades) != 1 {
		t.Errorf("sent %d upgrade mails, want 1", len(mail.upgrades))
	}
}

func TestCompleteSignup_NoCaptureLandsOnFree(t *testing.T) {
	t.Parallel()

	accounts := newFakeAccountRepo()
	mail := &recordingMail{}
	svc := newPaymentServiceForTest(t, newFakeBillingRepo(), accounts, mem.NewPendingTiers(), mail)

	resp, err := svc.CompleteSignup(context.Background(), request_models.CompleteSignupRequest{
		DisplayName: "Casey",
		Username:    "casey",
		Email:       "casey@example.com",
		Password:    "secret123",
	})
	if err != nil {
		t.Fatalf("CompleteSignup: %v", err)
	}
	if resp.SubscriptionTier != "free" {
		t.Errorf("tier = %s, want free", resp.SubscriptionTier)
	}
	if resp.IsSubscribed {
		t.Error("free signup must not be marked subscribed")
	}
	if len(mail.upgrades) != 0 {
		t.Error("free signup must not send an upgrade mail")
	}
}

func TestCompleteSignup_DuplicateEmailKeepsCapturedTier(t *testing.T) {
	t.Parallel()

	existing := &db_models.Account{
		Email:            "taken@example.com",
		Username:         "taken",
		SubscriptionTier: db_models.TierFree,
	}
	accounts := newFakeAccountRepo(existing)
	pending := mem.NewPendingTiers()
	pending.Set(555, "premium", time.Hour)
	svc := newPaymentServiceForTest(t, newFakeBillingRepo(), accounts, pending, &recordingMail{})

	req := request_models.CompleteSignupRequest{
		Tier:        "premium",
		DisplayName: "Taken",
		Username:    "someone-else",
		Email:       "taken@example.com",
		Password:    "secret123",
	}

	_, err := svc.CompleteSignup(context.Background(), req)
	if !errors.Is(err, utils.ErrEmailAlreadyExists) {
		t.Fatalf("err = %v, want ErrEmailAlreadyExists", err)
	}

	// The capture survives the conflict so a corrected retry still gets the
	// paid tier.
	if tier, ok := pending.Peek(555); !ok || tier != "premium" {
		t.Errorf("pending tier after conflict = %q/%v, want premium/true", tier, ok)
	}

	req.Email = "fresh@example.com"
	req.Username = "fresh"
	resp, err := svc.CompleteSignup(context.Background(), req)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if resp.SubscriptionTier != "premium" {
		t.Errorf("retry tier = %s, want premium", resp.SubscriptionTier)
	}
}

func TestCompleteSignup_AfterWebhookRecordsSubscription(t *testing.T) {
	t.Parallel()

	billing := newFakeBillingRepo()
	accounts := newFakeAccountRepo()
	pending := mem.NewPendingTiers()
	pending.Set(888, "premium", time.Hour)
	ctx := context.Background()

	// The provider confirmed the payment before the buyer had an account.
	if err := billing.InsertTransaction(ctx, &db_models.Transaction{
		AmountMinor:   1499,
		Currency:      "USD",
		Status:        db_models.TxnStatusPaid,
		Provider:      "payos",
		ProviderTxnID: "payos:888",
		Metadata:      datatypes.JSON([]byte(`{"plan_code":"premium"}`)),
	}); err != nil {
		t.Fatalf("seed transaction: %v", err)
	}

	svc := newPaymentServiceForTest(t, billing, accounts, pending, &recordingMail{})

	req := request_models.CompleteSignupRequest{
		Tier:        "premium",
		OrderCode:   888,
		DisplayName: "Riley",
		Username:    "riley",
		Email:       "riley@example.com",
		Password:    "secret123",
	}
	resp, err := svc.CompleteSignup(ctx, req)
	if err != nil {
		t.Fatalf("CompleteSignup: %v", err)
	}
	if resp.SubscriptionTier != "premium" || !resp.IsSubscribed {
		t.Errorf("entitlement = %s/%v, want premium/true", resp.SubscriptionTier, resp.IsSubscribed)
	}

	account, _ := accounts.FindByEmail(ctx, "riley@example.com")
	if account == nil {
		t.Fatal("account was not persisted")
	}

	txn, _ := billing.GetTransactionByProviderTxnID(ctx, "payos:888")
	if txn.AccountID == nil || *txn.AccountID != account.ID {
		t.Error("paid transaction was not attached to the new account")
	}

	if len(billing.subs) != 1 {
		t.Fatalf("recorded %d subscriptions, want 1", len(billing.subs))
	}
	sub := billing.subs[0]
	if sub.AccountID != account.ID {
		t.Errorf("subscription account = %s, want %s", sub.AccountID, account.ID)
	}
	if sub.Status != db_models.SubStatusActive {
		t.Errorf("subscription status = %s, want active", sub.Status)
	}
	if sub.ProviderSubID != "payos:888" {
		t.Errorf("subscription provider sub id = %s, want payos:888", sub.ProviderSubID)
	}
	if sub.EndsAt <= sub.StartsAt {
		t.Errorf("subscription window %d..%d is empty", sub.StartsAt, sub.EndsAt)
	}

	// A form re-submission for the same paid order must not stack rows.
	if _, err := svc.CompleteSignup(ctx, req); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if len(billing.subs) != 1 {
		t.Errorf("retry recorded %d subscriptions, want 1", len(billing.subs))
	}
}

func TestCompleteSignup_DuplicateUsernameConflicts(t *testing.T) {
	t.Parallel()

	existing := &db_models.Account{Email: "a@example.com", Username: "golfer"}
	svc := newPaymentServiceForTest(t, newFakeBillingRepo(), newFakeAccountRepo(existing), mem.NewPendingTiers(), &recordingMail{})

	_, err := svc.CompleteSignup(context.Background(), request_models.CompleteSignupRequest{
		DisplayName: "B",
		Username:    "golfer",
		Email:       "b@example.com",
		Password:    "secret123",
	})
	if !errors.Is(err, utils.ErrUsernameTaken) {
		t.Fatalf("err = %v, want ErrUsernameTaken", err)
	}
}
