package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/drjidental/clinic_backend/config"
	"github.com/drjidental/clinic_backend/controllers"
)

// RegisterAuthRoutes sets up the customer authentication routes.
func RegisterAuthRoutes(e *echo.Echo, cfg *config.AppConfig, authController *controllers.AuthController) {
	e.POST("/api/auth/signup", authController.Signup)
	e.POST("/api/auth/verify-email", authController.VerifyEmail)
	e.POST("/api/auth/login", authController.Login)
	e.POST("/api/auth/forgot-password", authController.ForgotPassword)
	e.POST("/api/auth/reset-password", authController.ResetPassword)
	e.POST("/api/auth/token/refresh", authController.RefreshToken)
}
