package handlers

import (
	"strconv"

	"parkpro/internal/services"
	"parkpro/internal/utils"
	"parkpro/internal/validators"
	"parkpro/pkg/logger"

	"github.com/gin-gonic/gin"
)

type FastagHandler struct {
	fastagService *services.FastagService
	logger        *logger.Logger
}

func NewFastagHandler(fastagService *services.FastagService, logger *logger.Logger) *FastagHandler {
	return &FastagHandler{
		fastagService: fastagService,
		logger:        logger,
	}
}

func (h *FastagHandler) Recharge(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.RechargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request format")
		return
	}

	if verrs := validators.ValidateStruct(&req); len(verrs) > 0 {
		utils.ValidationErrorResponse(c, verrs.Fields())
		return
	}

	resp, err := h.fastagService.Recharge(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Recharge initiated successfully", resp)
}

type rechargeRazorpayConfirm struct {
	OrderID   string `json:"razorpay_order_id" binding:"required"`
	PaymentID string `json:"razorpay_payment_id" binding:"required"`
	Signature string `json:"razorpay_signature" binding:"required"`
}

func (h *FastagHandler) ConfirmRazorpayRecharge(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req rechargeRazorpayConfirm
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request format")
		return
	}

	resp, err := h.fastagService.ConfirmRazorpayRecharge(c.Request.Context(), userID, req.OrderID, req.PaymentID, req.Signature)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Recharge confirmed successfully", resp)
}

type rechargeUpiConfirm struct {
	TxnID string `json:"txn_id" binding:"required"`
}

func (h *FastagHandler) ConfirmUpiRecharge(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req rechargeUpiConfirm
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request format")
		return
	}

	resp, err := h.fastagService.ConfirmUpiRecharge(c.Request.Context(), userID, req.TxnID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Recharge confirmed successfully", resp)
}

func (h *FastagHandler) GetBalance(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	balance, err := h.fastagService.Balance(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Balance retrieved successfully", gin.H{"wallet_balance": balance})
}

func (h *FastagHandler) GetHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)

	txns, err := h.fastagService.History(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Transactions retrieved successfully", txns)
}
