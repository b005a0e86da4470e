package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"mindcaddy/internal/entitlement"
	"mindcaddy/internal/models/db_models"
	"mindcaddy/internal/models/response_models"
	"mindcaddy/internal/repositories"
	mem "mindcaddy/pkg/memcache"
	"mindcaddy/pkg/utils"
)

// FallbackReply is returned verbatim when the AI provider fails or times
// out. A canned coaching line beats a raw error in the chat window.
const FallbackReply = "Take a breath and reset your routine. Pick one target, commit to it, and swing free. We can dig deeper into this when you are back on a stable connection."

const coachSystemPrompt = "You are a mental performance coach for golfers. " +
	"Keep replies short, practical, and encouraging. Draw on sport psychology: " +
	"pre-shot routines, breathing, focus on process over outcome. Never give " +
	"swing mechanics advice; stay on the mental game."

const historyWindow = 10

type ChatConfig struct {
	// ReplyTimeout bounds each upstream completion call. A timeout resolves
	// to FallbackReply, not an error.
	ReplyTimeout time.Duration
}

type ChatSendInput struct {
	AccountID      *uuid.UUID // nil for guests
	GuestSessionID string
	ConversationID string // empty starts a new conversation
	Message        string
}

type ChatViewerInput struct {
	AccountID      *uuid.UUID
	GuestSessionID string
	ConversationID string
}

type ChatServiceInterface interface {
	Send(ctx context.Context, input ChatSendInput) (response_models.ChatReplyResponse, error)
	History(ctx context.Context, input ChatViewerInput) (response_models.ChatHistoryResponse, error)
	Credits(ctx context.Context, accountID *uuid.UUID, guestSessionID string) (response_models.ChatCreditsResponse, error)
}

type ChatService struct {
	cfg           ChatConfig
	coach         utils.CoachClientInterface
	chatRepo      repositories.IChatRepository
	techniqueRepo repositories.ITechniqueRepository
	accountRepo   repositories.AccountRepository
	guestCredits  mem.CreditStore
	memberCredits mem.CreditStore
}

func NewChatService(
	cfg ChatConfig,
	coach utils.CoachClientInterface,
	chatRepo repositories.IChatRepository,
	techniqueRepo repositories.ITechniqueRepository,
	accountRepo repositories.AccountRepository,
	guestCredits mem.CreditStore,
	memberCredits mem.CreditStore,
) ChatServiceInterface {
	if cfg.ReplyTimeout <= 0 {
		cfg.ReplyTimeout = 20 * time.Second
	}
	return &ChatService{
		cfg:           cfg,
		coach:         coach,
		chatRepo:      chatRepo,
		techniqueRepo: techniqueRepo,
		accountRepo:   accountRepo,
		guestCredits:  guestCredits,
		memberCredits: memberCredits,
	}
}

func (s *ChatService) resolveViewer(ctx context.Context, accountID *uuid.UUID) (entitlement.Viewer, error) {
	if accountID == nil {
		return entitlement.Anonymous(), nil
	}
	account, err := s.accountRepo.FindByID(ctx, accountID.String())
	if err != nil {
		return entitlement.Viewer{}, utils.ErrDatabaseError
	}
	if account == nil {
		return entitlement.Anonymous(), nil
	}
	return entitlement.SignedIn(account), nil
}

func (s *ChatService) creditStoreFor(viewer entitlement.Viewer) (mem.CreditStore, string) {
	if viewer.Account == nil {
		return s.guestCredits, ""
	}
	return s.memberCredits, "acct:" + viewer.Account.ID.String()
}

// Send relays one user message to the coach AI. Free viewers are charged one
// credit per attempted send, before the upstream call, so aborted or failed
// calls still count against the ceiling.
func (s *ChatService) Send(ctx context.Context, input ChatSendInput) (response_models.ChatReplyResponse, error) {
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return response_models.ChatReplyResponse{}, utils.ErrEmptyMessage
	}

	viewer, err := s.resolveViewer(ctx, input.AccountID)
	if err != nil {
		return response_models.ChatReplyResponse{}, err
	}

	if d := entitlement.Decide(viewer, entitlement.FeatureAIChat); d.Verdict != entitlement.VerdictAllow {
		return response_models.ChatReplyResponse{}, utils.ErrFeatureLocked
	}

	var remaining *int
	if CreditBound(viewer) {
		store, key := s.creditStoreFor(viewer)
		if key == "" {
			if input.GuestSessionID == "" {
				return response_models.ChatReplyResponse{}, utils.ErrSignInRequired
			}
			key = "guest:" + input.GuestSessionID
		}
		left, atLimit := store.Spend(key)
		if atLimit {
			return response_models.ChatReplyResponse{}, utils.ErrOutOfCredits
		}
		remaining = &left
	}

	conv, history, err := s.loadOrCreateConversation(ctx, input, message)
	if err != nil {
		return response_models.ChatReplyResponse{}, err
	}

	reply := s.completeWithFallback(ctx, history, message)
	if ctx.Err() != nil {
		// Caller aborted the send: nothing is appended, no error surfaced to
		// a user who is no longer looking.
		return response_models.ChatReplyResponse{}, ctx.Err()
	}

	exchange := []db_models.ChatMessage{
		{ConversationID: conv.ID, Role: db_models.ChatRoleUser, Content: message},
		{ConversationID: conv.ID, Role: db_models.ChatRoleAssistant, Content: reply},
	}
	if err := s.chatRepo.AppendMessages(ctx, exchange); err != nil {
		return response_models.ChatReplyResponse{}, utils.ErrDatabaseError
	}

	return response_models.ChatReplyResponse{
		ConversationID:   conv.ID.String(),
		Reply:            reply,
		RemainingCredits: remaining,
	}, nil
}

func (s *ChatService) loadOrCreateConversation(ctx context.Context, input ChatSendInput, firstMessage string) (*db_models.Conversation, []utils.ChatTurn, error) {
	if input.ConversationID == "" {
		title := firstMessage
		if len(title) > 60 {
			title = title[:60]
		}
		conv := &db_models.Conversation{
			AccountID:      input.AccountID,
			GuestSessionID: input.GuestSessionID,
			Title:          title,
		}
		if input.AccountID != nil {
			conv.GuestSessionID = ""
		}
		if err := s.chatRepo.CreateConversation(ctx, conv); err != nil {
			return nil, nil, utils.ErrDatabaseError
		}
		return conv, nil, nil
	}

	id, err := uuid.Parse(input.ConversationID)
	if err != nil {
		return nil, nil, utils.ErrConversationNotFound
	}

	conv, err := s.chatRepo.FindConversation(ctx, id)
	if err != nil {
		return nil, nil, utils.ErrDatabaseError
	}
	if conv == nil || !conv.OwnedBy(input.AccountID, input.GuestSessionID) {
		return nil, nil, utils.ErrConversationNotFound
	}

	messages, err := s.chatRepo.ListMessages(ctx, conv.ID)
	if err != nil {
		return nil, nil, utils.ErrDatabaseError
	}
	if len(messages) > historyWindow {
		messages = messages[len(messages)-historyWindow:]
	}

	history := make([]utils.ChatTurn, 0, len(messages))
	for _, m := range messages {
		history = append(history, utils.ChatTurn{Role: m.Role, Content: m.Content})
	}

	return conv, history, nil
}

// completeWithFallback calls the provider under the reply timeout. Upstream
// failure and timeout both resolve to FallbackReply; only the caller's own
// cancellation is left for Send to detect via ctx.Err().
func (s *ChatService) completeWithFallback(ctx context.Context, history []utils.ChatTurn, message string) string {
	callCtx, cancel := context.WithTimeout(ctx, s.cfg.ReplyTimeout)
	defer cancel()

	reply, err := s.coach.Reply(callCtx, s.systemPrompt(callCtx, message), history, message)
	if err != nil {
		if !errors.Is(ctx.Err(), context.Canceled) {
			log.Printf("coach completion failed: %v", err)
		}
		return FallbackReply
	}
	return reply
}

// systemPrompt folds the nearest catalog techniques into the coach persona so
// replies can point at concrete routines. Retrieval failures degrade to the
// bare persona.
func (s *ChatService) systemPrompt(ctx context.Context, message string) string {
	vector, err := s.coach.GetEmbedding(ctx, message)
	if err != nil {
		return coachSystemPrompt
	}

	techniques, err := s.techniqueRepo.NearestToVector(ctx, vector, 3)
	if err != nil || len(techniques) == 0 {
		return coachSystemPrompt
	}

	var sb strings.Builder
	sb.WriteString(coachSystemPrompt)
	sb.WriteString("\n\nTechniques from the library you may reference:\n")
	for _, t := range techniques {
		sb.WriteString(fmt.Sprintf("- %s (%s): %s\n", t.Name, t.Category, t.Summary))
	}
	return sb.String()
}

func (s *ChatService) History(ctx context.Context, input ChatViewerInput) (response_models.ChatHistoryResponse, error) {
	id, err := uuid.Parse(input.ConversationID)
	if err != nil {
		return response_models.ChatHistoryResponse{}, utils.ErrConversationNotFound
	}

	conv, err := s.chatRepo.FindConversation(ctx, id)
	if err != nil {
		return response_models.ChatHistoryResponse{}, utils.ErrDatabaseError
	}
	if conv == nil || !conv.OwnedBy(input.AccountID, input.GuestSessionID) {
		return response_models.ChatHistoryResponse{}, utils.ErrConversationNotFound
	}

	messages, err := s.chatRepo.ListMessages(ctx, conv.ID)
	if err != nil {
		return response_models.ChatHistoryResponse{}, utils.ErrDatabaseError
	}

	out := response_models.ChatHistoryResponse{
		ConversationID: conv.ID.String(),
		Messages:       make([]response_models.ChatMessageResponse, 0, len(messages)),
	}
	for _, m := range messages {
		out.Messages = append(out.Messages, response_models.ChatMessageResponse{
			Role:      m.Role,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}
	return out, nil
}

func (s *ChatService) Credits(ctx context.Context, accountID *uuid.UUID, guestSessionID string) (response_models.ChatCreditsResponse, error) {
	viewer, err := s.resolveViewer(ctx, accountID)
	if err != nil {
		return response_models.ChatCreditsResponse{}, err
	}

	if !CreditBound(viewer) {
		return response_models.ChatCreditsResponse{Unlimited: true}, nil
	}

	store, key := s.creditStoreFor(viewer)
	if key == "" {
		key = "guest:" + guestSessionID
	}
	return response_models.ChatCreditsResponse{
		Remaining: store.Remaining(key),
		Ceiling:   store.Ceiling(),
	}, nil
}
