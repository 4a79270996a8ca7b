package handlers

import (
	"net/http"
	"strconv"

	"carrental/models"
	"carrental/services"

	"github.com/gin-gonic/gin"
)

// GetBookings 取得訂單列表，可用 search、status、from/to 篩選
func (h *Handler) GetBookings(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		bookings []models.Booking
		err      error
	)
	switch {
	case c.Query("search") != "":
		bookings, err = h.Bookings.Search(ctx, c.Query("search"))
	case c.Query("status") != "":
		bookings, err = h.Bookings.FilterByStatus(ctx, models.BookingStatus(c.Query("status")))
	case c.Query("from") != "" || c.Query("to") != "":
		bookings, err = h.Bookings.FilterByPickupDateRange(ctx, c.Query("from"), c.Query("to"))
	default:
		bookings, err = h.Bookings.List(ctx)
	}
	if err != nil {
		ServiceErrorResponse(c, h.Logger, "查詢訂單失敗", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "查詢成功", bookings)
}

// GetBooking 取得單一訂單
func (h *Handler) GetBooking(c *gin.Context) {
	booking, err := h.Bookings.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		ServiceErrorResponse(c, h.Logger, "查詢訂單失敗", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "查詢成功", booking)
}

// CreateBooking 新增訂單；validateCustomer=true 時先確認客戶存在且為 Active
func (h *Handler) CreateBooking(c *gin.Context) {
	var input models.Booking
	if err := c.ShouldBindJSON(&input); err != nil {
		BindErrorResponse(c, err)
		return
	}

	guarded := false
	if v := c.Query("validateCustomer"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			ErrorResponse(c, http.StatusBadRequest, "validateCustomer 參數錯誤", err.Error())
			return
		}
		guarded = parsed
	}

	ctx := c.Request.Context()
	var (
		result *services.BookingResult
		err    error
	)
	if guarded {
		result, err = h.Bookings.CreateWithCustomerValidation(ctx, input, input.CustomerID)
	} else {
		result, err = h.Bookings.Create(ctx, input)
	}
	if err != nil {
		ServiceErrorResponse(c, h.Logger, "新增訂單失敗", err)
		return
	}
	SuccessResponse(c, http.StatusCreated, bookingMessage("訂單新增成功", result), result)
}

// UpdateBooking 以完整資料更新訂單並同步車輛可用性
func (h *Handler) UpdateBooking(c *gin.Context) {
	var input models.Booking
	if err := c.ShouldBindJSON(&input); err != nil {
		BindErrorResponse(c, err)
		return
	}
	result, err := h.Bookings.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		ServiceErrorResponse(c, h.Logger, "更新訂單失敗", err)
		return
	}
	SuccessResponse(c, http.StatusOK, bookingMessage("訂單更新成功", result), result)
}

// DeleteBooking 刪除訂單並釋放車輛
func (h *Handler) DeleteBooking(c *gin.Context) {
	result, err := h.Bookings.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		ServiceErrorResponse(c, h.Logger, "刪除訂單失敗", err)
		return
	}
	SuccessResponse(c, http.StatusOK, bookingMessage("訂單刪除成功", result), result)
}

// bookingMessage 車輛可用性同步失敗時提示，訂單本身仍已寫入
func bookingMessage(message string, result *services.BookingResult) string {
	if result.SideEffectsOK() {
		return message
	}
	return message + "，但車輛可用性同步失敗"
}
