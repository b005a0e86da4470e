package services

import (
	"context"
	"log"
	"time"

	"mindcaddy/internal/models/db_models"
	"mindcaddy/internal/models/request_models"
	"mindcaddy/internal/models/response_models"
	"mindcaddy/internal/repositories"
	mem "mindcaddy/pkg/memcache"
	"mindcaddy/pkg/utils"
)

const resetCodeTTL = 15 * time.Minute

type AccountServiceInterface interface {
	Login(ctx context.Context, request request_models.LoginRequest) (response_models.AccountLoginResponse, error)
	CreateAccount(ctx context.Context, request request_models.SignUpRequest) error
	GetAccount(ctx context.Context, id string) (response_models.AccountResponse, error)
	Logout(token string)
	ForgotPassword(ctx context.Context, email string) error
	ResetPasswordWithCode(ctx context.Context, request request_models.ForgotPasswordRequest) error
	GetAllAccounts(ctx context.Context) ([]response_models.AccountResponse, error)
	SetTier(ctx context.Context, id string, tier db_models.SubscriptionTier) (response_models.AccountResponse, error)
	EnsureAdmin(ctx context.Context, email, password string) error
}

type AccountService struct {
	accountRepo repositories.AccountRepository
	mailService IMailService
	resetTokens mem.ResetTokenStore
	denylist    mem.TokenDenylist
}

func NewAccountService(
	accountRepo repositories.AccountRepository,
	mailService IMailService,
	resetTokens mem.ResetTokenStore,
	denylist mem.TokenDenylist,
) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
		mailService: mailService,
		resetTokens: resetTokens,
		denylist:    denylist,
	}
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (response_models.AccountLoginResponse, error) {
	account, err := a.accountRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return response_models.AccountLoginResponse{}, utils.ErrDatabaseError
	}
	if account == nil {
		return response_models.AccountLoginResponse{}, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(account.PasswordHash, request.Password); err != nil {
		return response_models.AccountLoginResponse{}, utils.ErrInvalidCredentials
	}

	token, err := utils.CreateToken(account.ID, account.Role)
	if err != nil {
		return response_models.AccountLoginResponse{}, utils.ErrInvalidCredentials
	}

	return response_models.AccountLoginResponse{
		Token:            token,
		SubscriptionTier: string(account.SubscriptionTier),
		IsSubscribed:     account.IsSubscribed,
	}, nil
}

func (a *AccountService) CreateAccount(ctx context.Context, request request_models.SignUpRequest) error {
	existing, err := a.accountRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existing != nil {
		return utils.ErrEmailAlreadyExists
	}

	byUsername, err := a.accountRepo.FindByUsername(ctx, request.Username)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if byUsername != nil {
		return utils.ErrUsernameTaken
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return utils.ErrDatabaseError
	}

	newAccount := &db_models.Account{
		Name:             request.DisplayName,
		Username:         request.Username,
		Email:            request.Email,
		PasswordHash:     hashedPassword,
		Role:             db_models.RoleUser,
		SubscriptionTier: db_models.TierFree,
		IsSubscribed:     false,
	}

	if err := a.accountRepo.Insert(ctx, newAccount); err != nil {
		return utils.ErrDatabaseError
	}

	return nil
}

func (a *AccountService) GetAccount(ctx context.Context, id string) (response_models.AccountResponse, error) {
	account, err := a.accountRepo.FindByID(ctx, id)
	if err != nil {
		return response_models.AccountResponse{}, utils.ErrDatabaseError
	}
	if account == nil {
		return response_models.AccountResponse{}, utils.ErrAccountNotFound
	}

	return toAccountResponse(account), nil
}

func (a *AccountService) Logout(token string) {
	if token == "" {
		return
	}
	a.denylist.Revoke(token, utils.TokenTTL())
}

func (a *AccountService) ForgotPassword(ctx context.Context, email string) error {
	account, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if account == nil {
		// Do not reveal whether the email exists.
		return nil
	}

	code, err := utils.GenerateOtpCode(6)
	if err != nil {
		return utils.ErrDatabaseError
	}

	a.resetTokens.Set(code, account.Email, resetCodeTTL)

	if err := a.mailService.SendPasswordResetCode(account.Email, code); err != nil {
		log.Printf("failed to send reset code to %s: %v", account.Email, err)
	}

	return nil
}

func (a *AccountService) ResetPasswordWithCode(ctx context.Context, request request_models.ForgotPasswordRequest) error {
	email := a.resetTokens.Consume(request.Token)
	if email == "" || email != request.Email {
		return utils.ErrInvalidResetToken
	}

	account, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if account == nil {
		return utils.ErrAccountNotFound
	}

	hashedPassword, err := utils.HashPassword(request.NewPassword)
	if err != nil {
		return utils.ErrDatabaseError
	}

	if err := a.accountRepo.UpdatePassword(ctx, account.ID.String(), hashedPassword); err != nil {
		return utils.ErrDatabaseError
	}

	return nil
}

func (a *AccountService) GetAllAccounts(ctx context.Context) ([]response_models.AccountResponse, error) {
	accounts, err := a.accountRepo.ListAll(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	result := make([]response_models.AccountResponse, 0, len(accounts))
	for i := range accounts {
		result = append(result, toAccountResponse(&accounts[i]))
	}
	return result, nil
}

// SetTier is the admin override. It keeps the entitlement invariant: a paid
// tier implies subscribed, a downgrade to free clears the flag and the
// period.
func (a *AccountService) SetTier(ctx context.Context, id string, tier db_models.SubscriptionTier) (response_models.AccountResponse, error) {
	if !db_models.ValidTier(string(tier)) {
		return response_models.AccountResponse{}, utils.ErrUnknownTier
	}

	account, err := a.accountRepo.FindByID(ctx, id)
	if err != nil {
		return response_models.AccountResponse{}, utils.ErrDatabaseError
	}
	if account == nil {
		return response_models.AccountResponse{}, utils.ErrAccountNotFound
	}

	var startsAt, endsAt *int64
	isSubscribed := tier != db_models.TierFree
	if isSubscribed {
		now := time.Now().Unix()
		ends := time.Now().AddDate(0, 1, 0).Unix()
		startsAt, endsAt = &now, &ends
	}

	if err := a.accountRepo.UpdateEntitlement(ctx, id, tier, isSubscribed, startsAt, endsAt); err != nil {
		return response_models.AccountResponse{}, utils.ErrDatabaseError
	}

	account.SubscriptionTier = tier
	account.IsSubscribed = isSubscribed
	account.SubscriptionStartsAt = startsAt
	account.SubscriptionEndsAt = endsAt
	return toAccountResponse(account), nil
}

// EnsureAdmin provisions the admin account from the environment at startup.
// No admin credential hint ever ships to a client.
func (a *AccountService) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	existing, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existing != nil {
		return nil
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return utils.ErrDatabaseError
	}

	admin := &db_models.Account{
		Name:             "Administrator",
		Username:         "admin",
		Email:            email,
		PasswordHash:     hashedPassword,
		Role:             db_models.RoleAdmin,
		SubscriptionTier: db_models.TierFree,
	}

	if err := a.accountRepo.Insert(ctx, admin); err != nil {
		return utils.ErrDatabaseError
	}

	log.Printf("provisioned admin account for %s", email)
	return nil
}

func toAccountResponse(account *db_models.Account) response_models.AccountResponse {
	return response_models.AccountResponse{
		ID:                 account.ID.String(),
		Name:               account.Name,
		Username:           account.Username,
		Email:              account.Email,
		Role:               account.Role,
		SubscriptionTier:   string(account.SubscriptionTier),
		IsSubscribed:       account.IsSubscribed,
		SubscriptionEndsAt: account.SubscriptionEndsAt,
		CreatedAt:          account.CreatedAt,
	}
}
