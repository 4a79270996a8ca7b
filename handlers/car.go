package handlers

import (
	"net/http"
	"strconv"

	"carrental/models"
	"carrental/services"

	"github.com/gin-gonic/gin"
)

// GetCars 取得車輛列表，可用 search、category、available 篩選
func (h *Handler) GetCars(c *gin.Context) {
	var (
		cars []models.Car
		err  error
	)
	switch {
	case c.Query("search") != "":
		cars, err = h.Cars.Search(c.Request.Context(), c.Query("search"))
	case c.Query("category") != "":
		cars, err = h.Cars.FilterByCategory(c.Request.Context(), models.CarCategory(c.Query("category")))
	case c.Query("available") != "":
		available, perr := strconv.ParseBool(c.Query("available"))
		if perr != nil {
			ErrorResponse(c, http.StatusBadRequest, "available 參數錯誤", perr.Error())
			return
		}
		if available {
			cars, err = h.Cars.ListAvailable(c.Request.Context())
		} else {
			cars, err = h.Cars.ListUnavailable(c.Request.Context())
		}
	default:
		cars, err = h.Cars.List(c.Request.Context())
	}
	if err != nil {
		ServiceErrorResponse(c, h.Logger, "查詢車輛失敗", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "查詢成功", cars)
}

// BrowseCars 前台車輛篩選
func (h *Handler) BrowseCars(c *gin.Context) {
	var filter services.FleetFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		BindErrorResponse(c, err)
		return
	}
	cars, err := h.Cars.Browse(c.Request.Context(), filter)
	if err != nil {
		ServiceErrorResponse(c, h.Logger, "查詢車輛失敗", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "查詢成功", cars)
}

// GetCar 取得單一車輛
func (h *Handler) GetCar(c *gin.Context) {
	car, err := h.Cars.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		ServiceErrorResponse(c, h.Logger, "查詢車輛失敗", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "查詢成功", car)
}

// CreateCar 新增車輛
func (h *Handler) CreateCar(c *gin.Context) {
	var input models.Car
	if err := c.ShouldBindJSON(&input); err != nil {
		BindErrorResponse(c, err)
		return
	}
	car, err := h.Cars.Create(c.Request.Context(), input)
	if err != nil {
		ServiceErrorResponse(c, h.Logger, "新增車輛失敗", err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "車輛新增成功", car)
}

// UpdateCar 以完整資料更新車輛
func (h *Handler) UpdateCar(c *gin.Context) {
	var input models.Car
	if err := c.ShouldBindJSON(&input); err != nil {
		BindErrorResponse(c, err)
		return
	}
	if err := services.ValidateCar(&input); err != nil {
		ServiceErrorResponse(c, h.Logger, "更新車輛失敗", err)
		return
	}
	car, err := h.Cars.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		ServiceErrorResponse(c, h.Logger, "更新車輛失敗", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "車輛更新成功", car)
}

// DeleteCar 刪除車輛
func (h *Handler) DeleteCar(c *gin.Context) {
	if err := h.Cars.Delete(c.Request.Context(), c.Param("id")); err != nil {
		ServiceErrorResponse(c, h.Logger, "刪除車輛失敗", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "車輛刪除成功", nil)
}
