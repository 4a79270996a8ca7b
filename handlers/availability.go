package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SyncAllAvailability 依訂單重新計算所有車輛的可用性
func (h *Handler) SyncAllAvailability(c *gin.Context) {
	report, err := h.Availability.SyncAll(c.Request.Context())
	if err != nil {
		ServiceErrorResponse(c, h.Logger, "同步車輛可用性失敗", err)
		return
	}
	message := "同步完成"
	if report.Failed > 0 {
		message = "同步完成，部分車輛失敗"
	}
	SuccessResponse(c, http.StatusOK, message, report)
}

// SyncCarAvailability 重新計算單一車輛的可用性
func (h *Handler) SyncCarAvailability(c *gin.Context) {
	carID := c.Param("carId")
	if _, err := h.Cars.GetByID(c.Request.Context(), carID); err != nil {
		ServiceErrorResponse(c, h.Logger, "同步車輛可用性失敗", err)
		return
	}

	outcome := h.Availability.RecomputeCar(c.Request.Context(), carID)
	if !outcome.OK() {
		c.JSON(http.StatusInternalServerError, APIResponse{
			Status:  false,
			Message: "同步車輛可用性失敗",
			Data:    outcome,
			Error:   outcome.Error,
		})
		return
	}
	SuccessResponse(c, http.StatusOK, "同步完成", outcome)
}

// GetBookedCars 有 Pending/Active 訂單的車輛 id
func (h *Handler) GetBookedCars(c *gin.Context) {
	ids, err := h.Availability.BookedCarIDs(c.Request.Context())
	if err != nil {
		ServiceErrorResponse(c, h.Logger, "查詢已預訂車輛失敗", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "查詢成功", ids)
}

// GetAvailableCars 沒有 Pending/Active 訂單的車輛 id
func (h *Handler) GetAvailableCars(c *gin.Context) {
	ids, err := h.Availability.AvailableCarIDs(c.Request.Context())
	if err != nil {
		ServiceErrorResponse(c, h.Logger, "查詢可租車輛失敗", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "查詢成功", ids)
}
