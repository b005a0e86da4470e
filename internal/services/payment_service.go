package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/payOSHQ/payos-lib-golang"

	dbm "mindcaddy/internal/models/db_models"
	"mindcaddy/internal/models/request_models"
	"mindcaddy/internal/models/response_models"
	"mindcaddy/internal/repositories"
	mem "mindcaddy/pkg/memcache"
	"mindcaddy/pkg/utils"
)

// pendingTierTTL is how long a started checkout keeps its tier around for
// the success page and the post-payment signup to fall back on.
const pendingTierTTL = 24 * time.Hour

type PayOSConfig struct {
	ClientID     string
	ApiKey       string
	ChecksumKey  string
	ReturnURL    string // success page, tier appended as ?tier=
	CancelURL    string
	ProviderName string // stored on Transaction.Provider
}

type PaymentService interface {
	CreateCheckoutForTier(ctx context.Context, tier string, accountID *uuid.UUID) (*response_models.CreateCheckoutResponse, error)
	CaptureSuccess(ctx context.Context, tierParam string, orderCode int64) (*response_models.SuccessCaptureResponse, error)
	CompleteSignup(ctx context.Context, request request_models.CompleteSignupRequest) (response_models.AccountResponse, error)
	HandleWebhook(c *gin.Context)
}

type paymentService struct {
	cfg          PayOSConfig
	billingRepo  repositories.IBillingRepository
	accountRepo  repositories.AccountRepository
	planRepo     repositories.IPlanRepository
	pendingTiers mem.PendingTierStore
	mailService  IMailService
}

func NewPaymentService(
	cfg PayOSConfig,
	billingRepo repositories.IBillingRepository,
	accountRepo repositories.AccountRepository,
	planRepo repositories.IPlanRepository,
	pendingTiers mem.PendingTierStore,
	mailService IMailService,
) (PaymentService, error) {
	if cfg.ClientID == "" || cfg.ApiKey == "" || cfg.ChecksumKey == "" {
		return nil, errors.New("missing payOS credentials")
	}
	if cfg.ProviderName == "" {
		cfg.ProviderName = "payos"
	}

	return &paymentService{
		cfg:          cfg,
		billingRepo:  billingRepo,
		accountRepo:  accountRepo,
		planRepo:     planRepo,
		pendingTiers: pendingTiers,
		mailService:  mailService,
	}, nil
}

func providerTxnID(orderCode int64) string {
	return fmt.Sprintf("payos:%d", orderCode)
}

func (p *paymentService) CreateCheckoutForTier(ctx context.Context, tier string, accountID *uuid.UUID) (*response_models.CreateCheckoutResponse, error) {
	if !dbm.ValidTier(tier) || tier == string(dbm.TierFree) {
		return nil, utils.ErrUnknownTier
	}

	plan, err := p.planRepo.GetPlanByCode(ctx, tier)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if plan == nil {
		return nil, utils.ErrPlanNotFound
	}

	amount := plan.PriceMinor
	if amount <= 0 {
		return nil, fmt.Errorf("plan %s is not billable (amount=%d)", plan.Code, amount)
	}

	// payOS expects an int64 order code; unix seconds plus a short random
	// suffix keeps it unique enough within 13 digits.
	orderCode := time.Now().Unix()%1_000_000_000 + int64(rand.Intn(9000)+1000)

	txn := &dbm.Transaction{
		AccountID:     accountID,
		AmountMinor:   amount,
		Currency:      strings.ToUpper(plan.Currency),
		Status:        dbm.TxnStatusPending,
		Provider:      p.cfg.ProviderName,
		ProviderTxnID: providerTxnID(orderCode),
	}

	if err := p.billingRepo.InsertTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	if clientErr := payos.Key(p.cfg.ClientID, p.cfg.ApiKey, p.cfg.ChecksumKey); clientErr != nil {
		return nil, fmt.Errorf("payos client init: %w", clientErr)
	}

	item := payos.Item{
		Name:     fmt.Sprintf("%s (%s)", plan.Name, plan.Code),
		Price:    int(amount),
		Quantity: 1,
	}

	body := payos.CheckoutRequestType{
		OrderCode:   orderCode,
		Amount:      int(amount),
		Items:       []payos.Item{item},
		Description: fmt.Sprintf("Membership %s", plan.Code),
		CancelUrl:   p.cfg.CancelURL,
		ReturnUrl:   fmt.Sprintf("%s?tier=%s", p.cfg.ReturnURL, plan.Code),
	}

	resp, err := payos.CreatePaymentLink(body)
	if err != nil {
		if markErr := p.billingRepo.MarkTransactionFailed(ctx, txn.ID); markErr != nil {
			log.Printf("failed to mark transaction %s failed: %v", txn.ID, markErr)
		}
		return nil, fmt.Errorf("payos create link: %w", err)
	}

	// Remember the tier for the return leg, and snapshot provider payload
	// for traceability.
	p.pendingTiers.Set(orderCode, plan.Code, pendingTierTTL)

	meta := map[string]any{
		"payos_link": resp,
		"plan_id":    plan.ID,
		"plan_code":  plan.Code,
	}
	if bytes, _ := json.Marshal(meta); bytes != nil {
		if metaErr := p.billingRepo.SetTransactionMetadata(ctx, txn.ID, bytes); metaErr != nil {
			log.Printf("failed to store metadata for transaction %s: %v", txn.ID, metaErr)
		}
	}

	return &response_models.CreateCheckoutResponse{
		OrderCode:    orderCode,
		Amount:       amount,
		Currency:     txn.Currency,
		PaymentURL:   resp.CheckoutUrl,
		Tier:         plan.Code,
		ProviderName: p.cfg.ProviderName,
	}, nil
}

// resolveCapturedTier picks the tier the success page and signup should run
// with: URL parameter first, then the stored pending tier, then free. A user
// landing on the page directly still gets a working (free) flow.
func resolveCapturedTier(tierParam, storedTier string) dbm.SubscriptionTier {
	if dbm.ValidTier(tierParam) {
		return dbm.SubscriptionTier(tierParam)
	}
	if dbm.ValidTier(storedTier) {
		return dbm.SubscriptionTier(storedTier)
	}
	return dbm.TierFree
}

// CaptureSuccess backs the payment success page. It is read-only and
// idempotent: reloading the page re-reads the same capture, never re-charges
// and never re-creates anything. Payment truth arrives via the webhook.
func (p *paymentService) CaptureSuccess(ctx context.Context, tierParam string, orderCode int64) (*response_models.SuccessCaptureResponse, error) {
	stored := ""
	if orderCode != 0 {
		if t, ok := p.pendingTiers.Peek(orderCode); ok {
			stored = t
		}
	}

	tier := resolveCapturedTier(tierParam, stored)

	out := &response_models.SuccessCaptureResponse{Tier: string(tier)}

	plan, err := p.planRepo.GetPlanByCode(ctx, string(tier))
	if err == nil && plan != nil {
		pr := toPlanResponse(*plan)
		out.Plan = &pr
	}

	return out, nil
}

// CompleteSignup is the AccountSetupPending -> AccountEntitled transition.
// Duplicate email or username surfaces as a conflict without touching the
// captured tier, so the user can retry the form without re-paying.
func (p *paymentService) CompleteSignup(ctx context.Context, request request_models.CompleteSignupRequest) (response_models.AccountResponse, error) {
	stored := ""
	if request.OrderCode != 0 {
		if t, ok := p.pendingTiers.Peek(request.OrderCode); ok {
			stored = t
		}
	}
	tier := resolveCapturedTier(request.Tier, stored)

	existing, err := p.accountRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return response_models.AccountResponse{}, utils.ErrDatabaseError
	}
	if existing != nil {
		// Re-submission after a partial failure: if this email already paid
		// for this order, upgrading is the idempotent completion. Anything
		// else is a genuine conflict.
		if request.OrderCode != 0 {
			if txn := p.paidTransaction(ctx, request.OrderCode); txn != nil {
				p.attachOrder(ctx, request.OrderCode, existing.ID)
				resp, err := p.entitle(ctx, existing, tier)
				if err == nil {
					p.recordSubscription(ctx, txn, existing.ID)
				}
				return resp, err
			}
		}
		return response_models.AccountResponse{}, utils.ErrEmailAlreadyExists
	}

	byUsername, err := p.accountRepo.FindByUsername(ctx, request.Username)
	if err != nil {
		return response_models.AccountResponse{}, utils.ErrDatabaseError
	}
	if byUsername != nil {
		return response_models.AccountResponse{}, utils.ErrUsernameTaken
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return response_models.AccountResponse{}, utils.ErrDatabaseError
	}

	account := &dbm.Account{
		Name:             request.DisplayName,
		Username:         request.Username,
		Email:            request.Email,
		PasswordHash:     hashedPassword,
		Role:             dbm.RoleUser,
		SubscriptionTier: dbm.TierFree,
	}

	if err := p.accountRepo.Insert(ctx, account); err != nil {
		return response_models.AccountResponse{}, utils.ErrDatabaseError
	}

	if request.OrderCode != 0 {
		p.attachOrder(ctx, request.OrderCode, account.ID)
	}

	resp, err := p.entitle(ctx, account, tier)
	if err != nil {
		return resp, err
	}

	// The webhook usually lands before the buyer has an account, so the
	// subscription row for a pre-signup purchase is written here.
	if request.OrderCode != 0 {
		if txn := p.paidTransaction(ctx, request.OrderCode); txn != nil {
			p.recordSubscription(ctx, txn, account.ID)
		}
	}

	return resp, nil
}

// entitle writes the tier snapshot, keeping the invariant that a paid tier
// implies IsSubscribed.
func (p *paymentService) entitle(ctx context.Context, account *dbm.Account, tier dbm.SubscriptionTier) (response_models.AccountResponse, error) {
	var startsAt, endsAt *int64
	isSubscribed := tier != dbm.TierFree
	if isSubscribed {
		now := time.Now().Unix()
		ends := time.Now().AddDate(0, 1, 0).Unix()
		startsAt, endsAt = &now, &ends
	}

	if err := p.accountRepo.UpdateEntitlement(ctx, account.ID.String(), tier, isSubscribed, startsAt, endsAt); err != nil {
		return response_models.AccountResponse{}, utils.ErrDatabaseError
	}

	account.SubscriptionTier = tier
	account.IsSubscribed = isSubscribed
	account.SubscriptionStartsAt = startsAt
	account.SubscriptionEndsAt = endsAt

	if isSubscribed && p.mailService != nil {
		if err := p.mailService.SendUpgradeConfirmation(account.Email, string(tier)); err != nil {
			log.Printf("upgrade confirmation mail failed for %s: %v", account.Email, err)
		}
	}

	return toAccountResponse(account), nil
}

func (p *paymentService) paidTransaction(ctx context.Context, orderCode int64) *dbm.Transaction {
	txn, err := p.billingRepo.GetTransactionByProviderTxnID(ctx, providerTxnID(orderCode))
	if err != nil {
		log.Printf("failed to look up order %d: %v", orderCode, err)
		return nil
	}
	if txn == nil || txn.Status != dbm.TxnStatusPaid {
		return nil
	}
	return txn
}

func (p *paymentService) attachOrder(ctx context.Context, orderCode int64, accountID uuid.UUID) {
	if err := p.billingRepo.AttachTransactionAccount(ctx, providerTxnID(orderCode), accountID); err != nil {
		log.Printf("failed to attach order %d to account %s: %v", orderCode, accountID, err)
	}
}

// recordSubscription writes the subscription row for a paid transaction; the
// caller already owns the account snapshot. Best-effort: a failure here is
// logged, not surfaced, so the signup itself still completes.
func (p *paymentService) recordSubscription(ctx context.Context, txn *dbm.Transaction, accountID uuid.UUID) {
	if err := p.activateSubscription(ctx, txn, accountID); err != nil {
		log.Printf("failed to record subscription for txn %s: %v", txn.ProviderTxnID, err)
	}
}

func (p *paymentService) HandleWebhook(c *gin.Context) {
	if err := payos.Key(p.cfg.ClientID, p.cfg.ApiKey, p.cfg.ChecksumKey); err != nil {
		log.Printf("payos key init failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment provider unavailable"})
		return
	}

	rawBody, err := io.ReadAll(c.Request.Body)
	if err != nil {
		log.Printf("Error reading request body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	var body payos.WebhookType
	if err := json.Unmarshal(rawBody, &body); err != nil {
		log.Printf("Error parsing webhook data: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook payload"})
		return
	}

	data, payosErr := payos.VerifyPaymentWebhookData(body)
	if payosErr != nil {
		log.Printf("Error verifying webhook data: %v", payosErr)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Failed to verify webhook data"})
		return
	}

	ctx := c.Request.Context()
	orderCode := data.OrderCode

	txn, err := p.billingRepo.GetTransactionByProviderTxnID(ctx, providerTxnID(orderCode))
	if err != nil {
		log.Printf("webhook: lookup failed for order %d: %v", orderCode, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process transaction"})
		return
	}
	if txn == nil {
		// Ack 200 to avoid a retry storm; log for investigation.
		log.Printf("webhook: transaction not found for order %d", orderCode)
		c.JSON(http.StatusOK, gin.H{"message": "ignored"})
		return
	}

	// Idempotency: a paid transaction stays paid no matter how many times
	// the provider redelivers.
	if txn.Status != dbm.TxnStatusPaid {
		// Activation is idempotent (keyed on the provider txn id), so it runs
		// before the paid mark: a redelivery after a failed mark retries both.
		if txn.AccountID != nil {
			if err := p.activateSubscription(ctx, txn, *txn.AccountID); err != nil {
				log.Printf("webhook: failed to activate subscription for order %d: %v", orderCode, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process transaction"})
				return
			}
		}

		if err := p.billingRepo.MarkTransactionPaid(ctx, txn.ID, time.Now().Unix()); err != nil {
			log.Printf("webhook: failed to mark order %d paid: %v", orderCode, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process transaction"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

// activateSubscription records the subscription window for a purchase and
// flips the entitlement snapshot on the account. Idempotent: each provider
// transaction activates at most one subscription. A pre-signup purchase has
// no account yet; CompleteSignup calls back in once one exists.
func (p *paymentService) activateSubscription(ctx context.Context, txn *dbm.Transaction, accountID uuid.UUID) error {
	type meta struct {
		PlanID   uuid.UUID `json:"plan_id"`
		PlanCode string    `json:"plan_code"`
	}
	var m meta
	if err := json.Unmarshal(txn.Metadata, &m); err != nil || m.PlanCode == "" {
		return fmt.Errorf("missing plan info in transaction metadata")
	}

	plan, err := p.planRepo.GetPlanByCode(ctx, m.PlanCode)
	if err != nil {
		return fmt.Errorf("plan lookup while activating: %w", err)
	}
	if plan == nil {
		return fmt.Errorf("plan %s not found while activating", m.PlanCode)
	}

	exists, err := p.billingRepo.HasSubscriptionForProviderSubID(ctx, txn.ProviderTxnID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	starts := time.Now()
	var ends time.Time
	switch plan.Period {
	case dbm.PeriodYear:
		ends = starts.AddDate(1, 0, 0)
	default:
		ends = starts.AddDate(0, 1, 0)
	}

	sub := dbm.Subscription{
		AccountID: accountID,
		PlanID:    plan.ID,
		Status:    dbm.SubStatusActive,
		StartsAt:  starts.Unix(),
		EndsAt:    ends.Unix(),
		AutoRenew: true,

		Provider:      p.cfg.ProviderName,
		ProviderSubID: txn.ProviderTxnID,

		Metadata: jsonRaw(map[string]any{
			"activated_by_txn": txn.ID,
			"amount_minor":     txn.AmountMinor,
			"currency":         txn.Currency,
		}),
	}

	if err := p.billingRepo.InsertSubscription(ctx, &sub); err != nil {
		return err
	}

	startsAt := sub.StartsAt
	endsAt := sub.EndsAt
	return p.accountRepo.UpdateEntitlement(ctx, accountID.String(), plan.Tier(), true, &startsAt, &endsAt)
}

func jsonRaw(v any) []byte {
	b, _ := json.Marshal(v)
	return b
}
