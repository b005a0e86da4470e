package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mindcaddy/internal/models/request_models"
	"mindcaddy/internal/services"
	"mindcaddy/pkg/utils"
)

type ChatController struct {
	chatService services.ChatServiceInterface
}

func NewChatController(chatService services.ChatServiceInterface) *ChatController {
	return &ChatController{
		chatService: chatService,
	}
}

// Send godoc
// @Summary Send a chat message to the coach
// @Description Relay one message to the AI coach and persist both turns. Guests and free members spend one credit per send; paid members are unmetered.
// @Tags Chat
// @Accept json
// @Produce json
// @Param X-Guest-Session header string false "Guest session id (anonymous callers)"
// @Param request body request_models.ChatSendRequest true "Message payload"
// @Success 200 {object} utils.APIResponse
// @Failure 402 {object} utils.APIResponse
// @Router /chat/send [post]
func (ch *ChatController) Send(c *gin.Context) {
	var req request_models.ChatSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	reply, err := ch.chatService.Send(c.Request.Context(), services.ChatSendInput{
		AccountID:      currentAccountID(c),
		GuestSessionID: guestSessionID(c),
		ConversationID: req.ConversationID,
		Message:        req.Message,
	})
	if err != nil {
		// The client went away mid-completion; nothing was persisted and
		// there is nobody left to answer.
		if errors.Is(err, context.Canceled) {
			c.Abort()
			return
		}
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, reply, "")
}

// History godoc
// @Summary Conversation history
// @Description Return the messages of one conversation, oldest first. Only the owner (account or guest session) may read it.
// @Tags Chat
// @Produce json
// @Param X-Guest-Session header string false "Guest session id (anonymous callers)"
// @Param conversationId path string true "Conversation ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /chat/history/{conversationId} [get]
func (ch *ChatController) History(c *gin.Context) {
	conversationID := c.Param("conversationId")
	if conversationID == "" {
		utils.RespondError(c, http.StatusBadRequest, "conversation id is required")
		return
	}

	history, err := ch.chatService.History(c.Request.Context(), services.ChatViewerInput{
		AccountID:      currentAccountID(c),
		GuestSessionID: guestSessionID(c),
		ConversationID: conversationID,
	})
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, history, "")
}

// Credits godoc
// @Summary Remaining chat credits
// @Description Report the caller's remaining free-chat credits. Paid members report unlimited.
// @Tags Chat
// @Produce json
// @Param X-Guest-Session header string false "Guest session id (anonymous callers)"
// @Success 200 {object} utils.APIResponse
// @Router /chat/credits [get]
func (ch *ChatController) Credits(c *gin.Context) {
	credits, err := ch.chatService.Credits(c.Request.Context(), currentAccountID(c), guestSessionID(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, credits, "")
}
