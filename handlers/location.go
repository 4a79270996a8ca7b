package handlers

import (
	"net/http"

	"carrental/models"

	"github.com/gin-gonic/gin"
)

// GetLocations 取得據點列表，可用 search、status、city 篩選
func (h *Handler) GetLocations(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		locations []models.Location
		err       error
	)
	switch {
	case c.Query("search") != "":
		locations, err = h.Locations.Search(ctx, c.Query("search"))
	case c.Query("status") != "":
		locations, err = h.Locations.FilterByStatus(ctx, models.LocationStatus(c.Query("status")))
	case c.Query("city") != "":
		locations, err = h.Locations.FilterByCity(ctx, c.Query("city"))
	default:
		locations, err = h.Locations.List(ctx)
	}
	if err != nil {
		ServiceErrorResponse(c, h.Logger, "查詢據點失敗", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "查詢成功", locations)
}

// GetLocation 取得單一據點
func (h *Handler) GetLocation(c *gin.Context) {
	location, err := h.Locations.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		ServiceErrorResponse(c, h.Logger, "查詢據點失敗", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "查詢成功", location)
}

// CreateLocation 新增據點
func (h *Handler) CreateLocation(c *gin.Context) {
	var input models.Location
	if err := c.ShouldBindJSON(&input); err != nil {
		BindErrorResponse(c, err)
		return
	}
	location, err := h.Locations.Create(c.Request.Context(), input)
	if err != nil {
		ServiceErrorResponse(c, h.Logger, "新增據點失敗", err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "據點新增成功", location)
}

// UpdateLocation 更新據點
func (h *Handler) UpdateLocation(c *gin.Context) {
	var input models.Location
	if err := c.ShouldBindJSON(&input); err != nil {
		BindErrorResponse(c, err)
		return
	}
	location, err := h.Locations.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		ServiceErrorResponse(c, h.Logger, "更新據點失敗", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "據點更新成功", location)
}

// DeleteLocation 刪除據點
func (h *Handler) DeleteLocation(c *gin.Context) {
	if err := h.Locations.Delete(c.Request.Context(), c.Param("id")); err != nil {
		ServiceErrorResponse(c, h.Logger, "刪除據點失敗", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "據點刪除成功", nil)
}
