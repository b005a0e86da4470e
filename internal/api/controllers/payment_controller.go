package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mindcaddy/internal/models/request_models"
	"mindcaddy/internal/services"
	"mindcaddy/pkg/utils"
)

type PaymentController struct {
	paymentService services.PaymentService
}

func NewPaymentController(paymentService services.PaymentService) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
	}
}

// CreateCheckout godoc
// @Summary Create a checkout for a paid tier
// @Description Start a payment for the premium or ultimate plan. Works for guests (pay first, sign up after) and for signed-in members upgrading.
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body request_models.CreateCheckoutRequest true "Checkout payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /payments/checkout [post]
func (p *PaymentController) CreateCheckout(c *gin.Context) {
	var request request_models.CreateCheckoutRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	checkout, err := p.paymentService.CreateCheckoutForTier(c.Request.Context(), request.Tier, currentAccountID(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, checkout, "Checkout created")
}

// CaptureSuccess godoc
// @Summary Capture the paid tier on the success return
// @Description Called when the provider redirects back after payment. Resolves which tier was bought (query param first, then the pending order record, defaulting to free) so the signup form can carry it. Safe to call repeatedly.
// @Tags Payments
// @Produce json
// @Param tier query string false "Tier from the return URL"
// @Param orderCode query int false "Provider order code"
// @Success 200 {object} utils.APIResponse
// @Router /payments/success [get]
func (p *PaymentController) CaptureSuccess(c *gin.Context) {
	orderCode, _ := strconv.ParseInt(c.Query("orderCode"), 10, 64)

	capture, err := p.paymentService.CaptureSuccess(c.Request.Context(), c.Query("tier"), orderCode)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, capture, "")
}

// CompleteSignup godoc
// @Summary Create the account after payment
// @Description Finish the pay-then-signup flow: create the account and entitle it to the captured tier. Re-submitting for an email that already completed this flow is not an error.
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body request_models.CompleteSignupRequest true "Signup payload"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /payments/complete-signup [post]
func (p *PaymentController) CompleteSignup(c *gin.Context) {
	var request request_models.CompleteSignupRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	account, err := p.paymentService.CompleteSignup(c.Request.Context(), request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, account, "Welcome aboard")
}

func (p *PaymentController) HandleWebhook(c *gin.Context) {
	p.paymentService.HandleWebhook(c)
}
