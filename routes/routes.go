package routes

import (
	"net/http"
	"time"

	"carrental/handlers"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLogger 以 zap 記錄每個請求
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		}
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			logger.Error("Request completed", fields...)
		case c.Writer.Status() >= http.StatusBadRequest:
			logger.Warn("Request completed", fields...)
		default:
			logger.Info("Request completed", fields...)
		}
	}
}

// CORSMiddleware 允許後台與前台網頁跨域呼叫
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// NewRouter 建立 gin 引擎並掛上所有路由
func NewRouter(h *handlers.Handler, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(logger), CORSMiddleware())

	api := r.Group("/api")
	{
		Path(api, h)
	}
	return r
}

func Path(router *gin.RouterGroup, h *handlers.Handler) {
	// 版本控制
	v1 := router.Group("/v1")
	{
		// 測試路由
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(200, gin.H{"message": "pong"})
		})

		// 車輛路由
		cars := v1.Group("/cars")
		{
			cars.GET("", h.GetCars)
			cars.GET("/browse", h.BrowseCars) // 前台篩選
			cars.POST("", h.CreateCar)
			cars.GET("/:id", h.GetCar)
			cars.PUT("/:id", h.UpdateCar)
			cars.DELETE("/:id", h.DeleteCar)
		}

		// 客戶路由
		customers := v1.Group("/customers")
		{
			customers.GET("", h.GetCustomers)
			customers.GET("/lookup", h.LookupCustomer)
			customers.POST("", h.CreateCustomer)
			customers.GET("/:id", h.GetCustomer)
			customers.PUT("/:id", h.UpdateCustomer)
			customers.DELETE("/:id", h.DeleteCustomer)
		}

		// 訂單路由：寫入後會同步車輛可用性
		bookings := v1.Group("/bookings")
		{
			bookings.GET("", h.GetBookings)
			bookings.POST("", h.CreateBooking)
			bookings.GET("/:id", h.GetBooking)
			bookings.PUT("/:id", h.UpdateBooking)
			bookings.DELETE("/:id", h.DeleteBooking)
		}

		// 據點路由
		locations := v1.Group("/locations")
		{
			locations.GET("", h.GetLocations)
			locations.POST("", h.CreateLocation)
			locations.GET("/:id", h.GetLocation)
			locations.PUT("/:id", h.UpdateLocation)
			locations.DELETE("/:id", h.DeleteLocation)
		}

		// 可用性維護
		availability := v1.Group("/availability")
		{
			availability.POST("/sync", h.SyncAllAvailability)
			availability.POST("/sync/:carId", h.SyncCarAvailability)
			availability.GET("/booked", h.GetBookedCars)
			availability.GET("/available", h.GetAvailableCars)
		}

		// 前台訂車
		catalog := v1.Group("/catalog")
		{
			catalog.GET("/extras", h.GetExtras)
			catalog.GET("/insurance", h.GetInsurancePackages)
		}
		reservations := v1.Group("/reservations")
		{
			reservations.POST("/quote", h.QuoteReservation)
			reservations.POST("", h.CreateReservation)
		}

		v1.GET("/dashboard/stats", h.GetDashboardStats)
	}
}
