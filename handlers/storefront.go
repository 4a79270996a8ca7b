package handlers

import (
	"net/http"

	"carrental/models"
	"carrental/services"

	"github.com/gin-gonic/gin"
)

// QuoteRequest 報價請求
type QuoteRequest struct {
	CarID       string   `json:"carId" binding:"required"`
	PickupDate  string   `json:"pickupDate" binding:"required,isodate"`
	ReturnDate  string   `json:"returnDate" binding:"required,isodate"`
	ExtraIDs    []string `json:"extras"`
	InsuranceID string   `json:"insurance"`
}

// GetExtras 可加購項目
func (h *Handler) GetExtras(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, "查詢成功", models.DefaultExtras())
}

// GetInsurancePackages 保險方案
func (h *Handler) GetInsurancePackages(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, "查詢成功", models.DefaultInsurancePackages())
}

// QuoteReservation 計算租車報價
func (h *Handler) QuoteReservation(c *gin.Context) {
	var input QuoteRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		BindErrorResponse(c, err)
		return
	}
	quote, err := h.Reservations.Quote(c.Request.Context(), input.CarID, input.PickupDate, input.ReturnDate, input.ExtraIDs, input.InsuranceID)
	if err != nil {
		ServiceErrorResponse(c, h.Logger, "報價失敗", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "報價成功", quote)
}

// CreateReservation 前台訪客訂車
func (h *Handler) CreateReservation(c *gin.Context) {
	var input services.ReservationRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		BindErrorResponse(c, err)
		return
	}
	result, err := h.Reservations.Reserve(c.Request.Context(), input)
	if err != nil {
		ServiceErrorResponse(c, h.Logger, "訂車失敗", err)
		return
	}
	SuccessResponse(c, http.StatusCreated, bookingMessage("訂車成功", result.BookingResult), result)
}

// GetDashboardStats 後台首頁統計
func (h *Handler) GetDashboardStats(c *gin.Context) {
	stats, err := h.Stats.Dashboard(c.Request.Context())
	if err != nil {
		ServiceErrorResponse(c, h.Logger, "查詢統計失敗", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "查詢成功", stats)
}
