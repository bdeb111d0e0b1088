package routes

import (
	"time"

	"okclinic/config"
	"okclinic/handlers"
	"okclinic/middleware"
	"okclinic/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers account endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/send-signup-code", hb.Auth.SendSignupCode)
		api.POST("/verify-signup-code", hb.Auth.VerifySignupCode)
		api.POST("/signup", hb.Auth.Signup)
		api.POST("/signin", hb.Auth.Signin)
		api.POST("/request-reset", hb.Auth.RequestReset)
		api.POST("/verify-reset-code", hb.Auth.VerifyResetCode)
		api.POST("/reset-password", hb.Auth.ResetPassword)

		// Protected routes (Require Authentication)
		api.PUT("/update-profile", middleware.JWTAuthMiddleware(hb.UserRepo, hb.AuthCache), hb.Auth.UpdateProfile)
	}
}

// RegisterCustomerRoutes registers the signed-in customer's endpoints.
func RegisterCustomerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo, hb.AuthCache))
	{
		api.GET("/pets", hb.Pets.ListPets)
		api.POST("/pets", hb.Pets.CreatePet)

		api.GET("/bookings", hb.Bookings.ListMyBookings)
		api.POST("/bookings", hb.Bookings.CreateBooking)
		api.POST("/bookings/:id/cancel", hb.Bookings.CancelBooking)

		api.GET("/feedback", hb.Feedback.ListMyFeedback)
		api.POST("/feedback", hb.Feedback.SubmitFeedback)

		api.GET("/invoices", hb.Invoices.ListMyInvoices)
		api.POST("/invoices", hb.Invoices.CreateInvoice)
		api.POST("/invoices/:id/pay", hb.Invoices.PayInvoice)

		api.GET("/services", hb.Catalog.ListActiveServices)

		staff := api.Group("")
		staff.Use(middleware.RequireRole(models.RoleAdmin))
		staff.GET("/bookings/admin", hb.Bookings.ListAllBookings)
		staff.GET("/invoices/admin", hb.Invoices.ListAllInvoices)
	}
}

// RegisterAdminRoutes registers the staff console endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo, hb.AuthCache), middleware.RequireRole(models.RoleAdmin))
	{
		api.GET("/users", hb.Admin.ListUsers)
		api.PUT("/users/:id", hb.Admin.UpdateUser)
		api.DELETE("/users/:id", hb.Admin.DeleteUser)

		api.GET("/pets", hb.Admin.ListPets)
		api.PUT("/pets/:id", hb.Admin.UpdatePet)
		api.DELETE("/pets/:id", hb.Admin.DeletePet)

		api.GET("/bookings", hb.Bookings.ListAllBookings)
		api.PUT("/bookings/:id", hb.Bookings.UpdateBookingStatus)
		api.DELETE("/bookings/:id", hb.Bookings.DeleteBooking)

		api.GET("/invoices", hb.Invoices.ListAllInvoices)
		api.PUT("/invoices/:id", hb.Invoices.UpdateInvoice)
		api.DELETE("/invoices/:id", hb.Invoices.DeleteInvoice)

		api.GET("/feedbacks", hb.Feedback.ListAllFeedback)
		api.PUT("/feedbacks/:id", hb.Feedback.ReviewFeedback)
		api.DELETE("/feedbacks/:id", hb.Feedback.DeleteFeedback)

		api.GET("/services", hb.Catalog.ListAllServices)
		api.POST("/services", hb.Catalog.CreateService)
		api.PUT("/services/:id", hb.Catalog.UpdateService)
		api.DELETE("/services/:id", hb.Catalog.DeleteService)
	}
}

// RegisterHealthRoute registers the health check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.Health)
}

// RegisterRoutes registers all routes with the Gin engine.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	origins := config.AppConfig.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterCustomerRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
