package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"

	"mindcaddy/internal/models/db_models"
	mem "mindcaddy/pkg/memcache"
	"mindcaddy/pkg/utils"
)

type fakeCoach struct {
	reply      string
	err        error
	delay      time.Duration
	replyCalls int
}

func (f *fakeCoach) Reply(ctx context.Context, systemPrompt string, history []utils.ChatTurn, userMessage string) (string, error) {
	f.replyCalls++
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeCoach) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	return pgvector.Vector{}, errors.New("no embeddings in tests")
}

type fakeChatRepo struct {
	conversations map[uuid.UUID]*db_models.Conversation
	messages      map[uuid.UUID][]db_models.ChatMessage
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{
		conversations: make(map[uuid.UUID]*db_models.Conversation),
		messages:      make(map[uuid.UUID][]db_models.ChatMessage),
	}
}

func (r *fakeChatRepo) CreateConversation(ctx context.Context, conv *db_models.Conversation) error {
	if conv.ID == uuid.Nil {
		conv.ID = uuid.New()
	}
	r.conversations[conv.ID] = conv
	return nil
}

func (r *fakeChatRepo) FindConversation(ctx context.Context, id uuid.UUID) (*db_models.Conversation, error) {
	return r.conversations[id], nil
}

func (r *fakeChatRepo) AppendMessages(ctx context.Context, messages []db_models.ChatMessage) error {
	for _, m := range messages {
		r.messages[m.ConversationID] = append(r.messages[m.ConversationID], m)
	}
	return nil
}

func (r *fakeChatRepo) ListMessages(ctx context.Context, conversationID uuid.UUID) ([]db_models.ChatMessage, error) {
	return r.messages[conversationID], nil
}

type fakeTechniqueRepo struct{}

func (fakeTechniqueRepo) List(ctx context.Context) ([]db_models.Technique, error) { return nil, nil }
func (fakeTechniqueRepo) FindByID(ctx context.Context, id string) (*db_models.Technique, error) {
	return nil, nil
}
func (fakeTechniqueRepo) Create(ctx context.Context, technique *db_models.Technique) error {
	return nil
}
func (fakeTechniqueRepo) NearestToVector(ctx context.Context, vector pgvector.Vector, limit int) ([]db_models.Technique, error) {
	return nil, nil
}

type fakeAccountRepo struct {
	byID map[string]*db_models.Account
}

func newFakeAccountRepo(accounts ...*db_models.Account) *fakeAccountRepo {
	r := &fakeAccountRepo{byID: make(map[string]*db_models.Account)}
	for _, a := range accounts {
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		r.byID[a.ID.String()] = a
	}
	return r
}

func (r *fakeAccountRepo) Insert(ctx context.Context, account *db_models.Account) error {
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	r.byID[account.ID.String()] = account
	return nil
}

func (r *fakeAccountRepo) FindByID(ctx context.Context, id string) (*db_models.Account, error) {
	return r.byID[id], nil
}

func (r *fakeAccountRepo) FindByEmail(ctx context.Context, email string) (*db_models.Account, error) {
	for _, a := range r.byID {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, nil
}

func (r *fakeAccountRepo) FindByUsername(ctx context.Context, username string) (*db_models.Account, error) {
	for _, a := range r.byID {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, nil
}

func (r *fakeAccountRepo) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	if a, ok := r.byID[id]; ok {
		a.PasswordHash = passwordHash
	}
	return nil
}

func (r *fakeAccountRepo) UpdateEntitlement(ctx context.Context, id string, tier db_models.SubscriptionTier, isSubscribed bool, startsAt, endsAt *int64) error {
	a, ok := r.byID[id]
	if !ok {
		return errors.New("no such account")
	}
	a.SubscriptionTier = tier
	a.IsSubscribed = isSubscribed
	a.SubscriptionStartsAt = startsAt
	a.SubscriptionEndsAt = endsAt
	return nil
}

func (r *fakeAccountRepo) ListAll(ctx context.Context) ([]db_models.Account, error) {
	out := make([]db_models.Account, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, *a)
	}
	return out, nil
}

func newChatServiceForTest(coach *fakeCoach, accounts *fakeAccountRepo, guestCeiling, memberCeiling int) (ChatServiceInterface, *fakeChatRepo) {
	repo := newFakeChatRepo()
	svc := NewChatService(
		ChatConfig{ReplyTimeout: 50 * time.Millisecond},
		coach,
		repo,
		fakeTechniqueRepo{},
		accounts,
		mem.NewUsageCredits(guestCeiling, time.Hour),
		mem.NewUsageCredits(memberCeiling, time.Hour),
	)
	return svc, repo
}

func TestChatSend_GuestCreditsRunOut(t *testing.T) {
	t.Parallel()

	coach := &fakeCoach{reply: "Commit to your routine."}
	svc, _ := newChatServiceForTest(coach, newFakeAccountRepo(), 5, 1)

	input := ChatSendInput{GuestSessionID: uuid.New().String(), Message: "I keep choking on the first tee"}

	for i := 0; i < 5; i++ {
		resp, err := svc.Send(context.Background(), input)
		if err != nil {
			t.Fatalf("send %d: %v", i+1, err)
		}
		if resp.RemainingCredits == nil {
			t.Fatalf("send %d: guest reply should carry remaining credits", i+1)
		}
		if want := 4 - i; *resp.RemainingCredits != want {
			t.Errorf("send %d remaining = %d, want %d", i+1, *resp.RemainingCredits, want)
		}
	}

	upstreamCalls := coach.replyCalls

	_, err := svc.Send(context.Background(), input)
	if !errors.Is(err, utils.ErrOutOfCredits) {
		t.Fatalf("6th send err = %v, want ErrOutOfCredits", err)
	}
	if coach.replyCalls != upstreamCalls {
		t.Error("over-limit send must not reach the upstream provider")
	}
}

func TestChatSend_FreeMemberSingleCredit(t *testing.T) {
	t.Parallel()

	account := &db_models.Account{SubscriptionTier: db_models.TierFree, Role: db_models.RoleUser}
	accounts := newFakeAccountRepo(account)
	coach := &fakeCoach{reply: "Pick a small target."}
	svc, _ := newChatServiceForTest(coach, accounts, 5, 1)

	input := ChatSendInput{AccountID: &account.ID, Message: "help with putting nerves"}

	resp, err := svc.Send(context.Background(), input)
	if err != nil {
		t.Fatalf("first send: %v", err)
	}
	if resp.RemainingCredits == nil || *resp.RemainingCredits != 0 {
		t.Errorf("first send remaining = %v, want 0", resp.RemainingCredits)
	}

	_, err = svc.Send(context.Background(), input)
	if !errors.Is(err, utils.ErrOutOfCredits) {
		t.Fatalf("second send err = %v, want ErrOutOfCredits", err)
	}
}

func TestChatSend_PaidMemberUnmetered(t *testing.T) {
	t.Parallel()

	account := &db_models.Account{
		SubscriptionTier: db_models.TierPremium,
		IsSubscribed:     true,
		Role:             db_models.RoleUser,
	}
	accounts := newFakeAccountRepo(account)
	coach := &fakeCoach{reply: "Nice swing thought."}
	svc, _ := newChatServiceForTest(coach, accounts, 1, 1)

	for i := 0; i < 10; i++ {
		resp, err := svc.Send(context.Background(), ChatSendInput{AccountID: &account.ID, Message: "another question"})
		if err != nil {
			t.Fatalf("send %d: %v", i+1, err)
		}
		if resp.RemainingCredits != nil {
			t.Errorf("send %d: paid member should not see a credit meter", i+1)
		}
	}
}

func TestChatSend_UpstreamTimeoutFallsBack(t *testing.T) {
	t.Parallel()

	coach := &fakeCoach{reply: "too slow", delay: 5 * time.Second}
	svc, repo := newChatServiceForTest(coach, newFakeAccountRepo(), 5, 1)

	start := time.Now()
	resp, err := svc.Send(context.Background(), ChatSendInput{GuestSessionID: uuid.New().String(), Message: "hello"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("send took %v, fallback should honor the reply timeout", elapsed)
	}
	if resp.Reply != FallbackReply {
		t.Errorf("reply = %q, want the fallback line", resp.Reply)
	}

	// The fallback exchange is still persisted.
	convID, _ := uuid.Parse(resp.ConversationID)
	msgs, _ := repo.ListMessages(context.Background(), convID)
	if len(msgs) != 2 {
		t.Errorf("persisted %d messages, want 2", len(msgs))
	}
}

func TestChatSend_UpstreamErrorFallsBack(t *testing.T) {
	t.Parallel()

	coach := &fakeCoach{err: errors.New("rate limited")}
	svc, _ := newChatServiceForTest(coach, newFakeAccountRepo(), 5, 1)

	resp, err := svc.Send(context.Background(), ChatSendInput{GuestSessionID: uuid.New().String(), Message: "hello"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if resp.Reply != FallbackReply {
		t.Errorf("reply = %q, want the fallback line", resp.Reply)
	}
}

func TestChatSend_CallerCancellationNotPersisted(t *testing.T) {
	t.Parallel()

	coach := &fakeCoach{reply: "never delivered", delay: time.Second}
	svc, repo := newChatServiceForTest(coach, newFakeAccountRepo(), 5, 1)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := svc.Send(ctx, ChatSendInput{GuestSessionID: uuid.New().String(), Message: "hello"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}

	for _, msgs := range repo.messages {
		if len(msgs) != 0 {
			t.Error("aborted send must not persist messages")
		}
	}
}

func TestChatSend_EmptyMessageRejected(t *testing.T) {
	t.Parallel()

	coach := &fakeCoach{reply: "unused"}
	svc, _ := newChatServiceForTest(coach, newFakeAccountRepo(), 5, 1)

	_, err := svc.Send(context.Background(), ChatSendInput{GuestSessionID: uuid.New().String(), Message: "   \n "})
	if !errors.Is(err, utils.ErrEmptyMessage) {
		t.Fatalf("err = %v, want ErrEmptyMessage", err)
	}
	if coach.replyCalls != 0 {
		t.Error("empty message must not reach the upstream provider")
	}
}

func TestChatHistory_OwnerOnly(t *testing.T) {
	t.Parallel()

	coach := &fakeCoach{reply: "ok"}
	svc, _ := newChatServiceForTest(coach, newFakeAccountRepo(), 5, 1)

	owner := uuid.New().String()
	resp, err := svc.Send(context.Background(), ChatSendInput{GuestSessionID: owner, Message: "first"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	history, err := svc.History(context.Background(), ChatViewerInput{GuestSessionID: owner, ConversationID: resp.ConversationID})
	if err != nil {
		t.Fatalf("owner history: %v", err)
	}
	if len(history.Messages) != 2 {
		t.Errorf("owner sees %d messages, want 2", len(history.Messages))
	}

	_, err = svc.History(context.Background(), ChatViewerInput{GuestSessionID: uuid.New().String(), ConversationID: resp.ConversationID})
	if !errors.Is(err, utils.ErrConversationNotFound) {
		t.Fatalf("stranger history err = %v, want ErrConversationNotFound", err)
	}
}

func TestChatCredits_Report(t *testing.T) {
	t.Parallel()

	coach := &fakeCoach{reply: "ok"}
	premium := &db_models.Account{SubscriptionTier: db_models.TierUltimate, IsSubscribed: true}
	accounts := newFakeAccountRepo(premium)
	svc, _ := newChatServiceForTest(coach, accounts, 5, 1)

	session := uuid.New().String()
	if _, err := svc.Send(context.Background(), ChatSendInput{GuestSessionID: session, Message: "one"}); err != nil {
		t.Fatalf("send: %v", err)
	}

	credits, err := svc.Credits(context.Background(), nil, session)
	if err != nil {
		t.Fatalf("credits: %v", err)
	}
	if credits.Unlimited {
		t.Error("guest credits should be metered")
	}
	if credits.Remaining != 4 || credits.Ceiling != 5 {
		t.Errorf("guest credits = %d/%d, want 4/5", credits.Remaining, credits.Ceiling)
	}

	paid, err := svc.Credits(context.Background(), &premium.ID, "")
	if err != nil {
		t.Fatalf("paid credits: %v", err)
	}
	if !paid.Unlimited {
		t.Error("paid member should report unlimited")
	}
}
