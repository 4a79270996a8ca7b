package handlers

import (
	"net/http"

	"carrental/models"

	"github.com/gin-gonic/gin"
)

// GetCustomers 取得客戶列表，可用 search、status 篩選
func (h *Handler) GetCustomers(c *gin.Context) {
	var (
		customers []models.Customer
		err       error
	)
	switch {
	case c.Query("search") != "":
		customers, err = h.Customers.Search(c.Request.Context(), c.Query("search"))
	case c.Query("status") != "":
		customers, err = h.Customers.FilterByStatus(c.Request.Context(), models.CustomerStatus(c.Query("status")))
	default:
		customers, err = h.Customers.List(c.Request.Context())
	}
	if err != nil {
		ServiceErrorResponse(c, h.Logger, "查詢客戶失敗", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "查詢成功", customers)
}

// LookupCustomer 依 email、身分證號或電話查詢客戶
func (h *Handler) LookupCustomer(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		customer *models.Customer
		err      error
	)
	switch {
	case c.Query("email") != "":
		customer, err = h.Customers.FindByEmail(ctx, c.Query("email"))
	case c.Query("nationalId") != "":
		customer, err = h.Customers.FindByNationalID(ctx, c.Query("nationalId"))
	case c.Query("phone") != "":
		customer, err = h.Customers.FindByPhone(ctx, c.Query("phone"))
	default:
		ErrorResponse(c, http.StatusBadRequest, "缺少查詢條件", "one of email, nationalId or phone is required")
		return
	}
	if err != nil {
		ServiceErrorResponse(c, h.Logger, "查詢客戶失敗", err)
		return
	}
	if customer == nil {
		ErrorResponse(c, http.StatusNotFound, "客戶不存在", "no customer matches the lookup")
		return
	}
	SuccessResponse(c, http.StatusOK, "查詢成功", customer)
}

// GetCustomer 取得單一客戶
func (h *Handler) GetCustomer(c *gin.Context) {
	customer, err := h.Customers.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		ServiceErrorResponse(c, h.Logger, "查詢客戶失敗", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "查詢成功", customer)
}

// CreateCustomer 新增客戶
func (h *Handler) CreateCustomer(c *gin.Context) {
	var input models.Customer
	if err := c.ShouldBindJSON(&input); err != nil {
		BindErrorResponse(c, err)
		return
	}
	customer, err := h.Customers.Create(c.Request.Context(), input)
	if err != nil {
		ServiceErrorResponse(c, h.Logger, "新增客戶失敗", err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "客戶新增成功", customer)
}

// UpdateCustomer 更新客戶
func (h *Handler) UpdateCustomer(c *gin.Context) {
	var input models.Customer
	if err := c.ShouldBindJSON(&input); err != nil {
		BindErrorResponse(c, err)
		return
	}
	customer, err := h.Customers.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		ServiceErrorResponse(c, h.Logger, "更新客戶失敗", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "客戶更新成功", customer)
}

// DeleteCustomer 刪除客戶
func (h *Handler) DeleteCustomer(c *gin.Context) {
	if err := h.Customers.Delete(c.Request.Context(), c.Param("id")); err != nil {
		ServiceErrorResponse(c, h.Logger, "刪除客戶失敗", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "客戶刪除成功", nil)
}
