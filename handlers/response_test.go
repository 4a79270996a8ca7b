package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"carrental/services"

	"github.com/gin-gonic/gin"
	gomysql "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestServiceErrorResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name  string
		err   error
		code  int
		field string
	}{
		{"validation", &services.ValidationError{Field: "carId", Message: "is required"}, http.StatusUnprocessableEntity, "carId"},
		{"not found", fmt.Errorf("car x: %w", services.ErrNotFound), http.StatusNotFound, ""},
		{"duplicate", fmt.Errorf("failed to create car: %w", &gomysql.MySQLError{Number: 1062, Message: "Duplicate entry"}), http.StatusConflict, ""},
		{"store failure", errors.New("connection reset"), http.StatusInternalServerError, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			ServiceErrorResponse(c, zap.NewNop(), "failed", tt.err)

			assert.Equal(t, tt.code, w.Code)
			var resp APIResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Status)
			assert.Equal(t, tt.field, resp.Field)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestRegisterValidators(t *testing.T) {
	require.NoError(t, RegisterValidators())

	type payload struct {
		Date   string `binding:"isodate"`
		Status string `binding:"bookingstatus"`
	}
	engine := gin.New()
	engine.POST("/", func(c *gin.Context) {
		var p payload
		if err := c.ShouldBindJSON(&p); err != nil {
			BindErrorResponse(c, err)
			return
		}
		SuccessResponse(c, http.StatusOK, "ok", p)
	})

	for body, code := range map[string]int{
		`{"Date":"2024-07-01","Status":"Active"}`: http.StatusOK,
		`{"Date":"07/01/2024","Status":"Active"}`: http.StatusBadRequest,
		`{"Date":"2024-07-01","Status":"Lost"}`:   http.StatusBadRequest,
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(w, req)
		assert.Equal(t, code, w.Code, body)
	}
}
