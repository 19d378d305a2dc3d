package handlers

import (
	"parkpro/internal/services"
	"parkpro/internal/utils"
	"parkpro/internal/validators"
	"parkpro/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingHandler struct {
	bookingService *services.BookingService
	logger         *logger.Logger
}

func NewBookingHandler(bookingService *services.BookingService, logger *logger.Logger) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		logger:         logger,
	}
}

// CreateBooking books the slot named in the path for the authenticated
// user.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request format")
		return
	}
	req.SlotCode = c.Param("id")

	if verrs := validators.ValidateStruct(&req); len(verrs) > 0 {
		utils.ValidationErrorResponse(c, verrs.Fields())
		return
	}

	resp, err := h.bookingService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Booking created successfully", resp)
}

// ReserveBooking places a short UPI reservation hold.
func (h *BookingHandler) ReserveBooking(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request format")
		return
	}

	if verrs := validators.ValidateStruct(&req); len(verrs) > 0 {
		utils.ValidationErrorResponse(c, verrs.Fields())
		return
	}

	resp, err := h.bookingService.Reserve(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Slot reserved successfully", resp)
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	bookingID, err := primitive.ObjectIDFromHex(c.Param("bookingId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	booking, err := h.bookingService.Cancel(c.Request.Context(), userID, bookingID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Booking cancelled successfully", booking)
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	bookingID, err := primitive.ObjectIDFromHex(c.Param("bookingId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	booking, err := h.bookingService.Get(c.Request.Context(), userID, bookingID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Booking retrieved successfully", booking)
}

// GetUserBookings lists the bookings of the user named in the path. Users
// may only read their own history.
func (h *BookingHandler) GetUserBookings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	requested, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID")
		return
	}

	if requested != userID && c.GetString("user_role") != "admin" {
		utils.ForbiddenResponse(c)
		return
	}

	bookings, err := h.bookingService.ListForUser(c.Request.Context(), requested)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Bookings retrieved successfully", bookings)
}

func (h *BookingHandler) GetSlotBookings(c *gin.Context) {
	bookings, err := h.bookingService.ListForSlot(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Bookings retrieved successfully", bookings)
}

type razorpayVerifyRequest struct {
	OrderID   string `json:"razorpay_order_id" binding:"required"`
	PaymentID string `json:"razorpay_payment_id" binding:"required"`
	Signature string `json:"razorpay_signature" binding:"required"`
}

// VerifyRazorpayPayment reconciles a client-side razorpay payment.
func (h *BookingHandler) VerifyRazorpayPayment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req razorpayVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request format")
		return
	}

	booking, err := h.bookingService.VerifyRazorpayPayment(c.Request.Context(), userID, req.OrderID, req.PaymentID, req.Signature)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Payment verified successfully", booking)
}

type manualVerifyRequest struct {
	BookingID string `json:"booking_id" binding:"required"`
	Status    string `json:"status" binding:"required,oneof=success failed"`
}

// VerifyPayment is the manual UPI confirmation endpoint, available only
// when the deployment allows it. The request's status field reports the
// out-of-band payment outcome.
func (h *BookingHandler) VerifyPayment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req manualVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request format")
		return
	}

	bookingID, err := primitive.ObjectIDFromHex(req.BookingID)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	booking, err := h.bookingService.VerifyPayment(c.Request.Context(), userID, bookingID, req.Status == "success")
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Payment verification recorded", booking)
}
