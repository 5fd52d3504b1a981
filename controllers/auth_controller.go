package controllers

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/drjidental/clinic_backend/config"
	"github.com/drjidental/clinic_backend/middleware"
	"github.com/drjidental/clinic_backend/models"
	"github.com/drjidental/clinic_backend/repositories"
	"github.com/drjidental/clinic_backend/utils"
)

// UserStore is the account persistence surface the auth flows need.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Create(ctx context.Context, user *models.User) (primitive.ObjectID, error)
	Activate(ctx context.Context, email string) error
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}

// OTPStore issues, checks and consumes one-time passcodes.
type OTPStore interface {
	Issue(ctx context.Context, email, purpose string) (*models.OTP, error)
	Verify(ctx context.Context, email, code, purpose string) (*models.OTP, error)
	Delete(ctx context.Context, otp *models.OTP) error
}

// OTPMailer delivers one-time codes to customers.
type OTPMailer interface {
	SendOTPEmail(email, code, purpose string) error
}

// AuthController handles customer signup, verification, login and
// password reset.
type AuthController struct {
	users  UserStore
	otps   OTPStore
	mailer OTPMailer
	redis  *redis.Client
	cfg    *config.AppConfig
	logger *log.Logger
}

// NewAuthController creates a new auth controller
func NewAuthController(users UserStore, otps OTPStore, mailer OTPMailer, rdb *redis.Client, cfg *config.AppConfig) *AuthController {
	return &AuthController{
		users:  users,
		otps:   otps,
		mailer: mailer,
		redis:  rdb,
		cfg:    cfg,
		logger: log.New(os.Stdout, "[AUTH] ", log.LstdFlags),
	}
}

// Signup creates an inactive customer account and emails a verification
// code. The account cannot sign in until the code is verified.
func (ac *AuthController) Signup(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Validation error.",
			Errors:  err.Error(),
		})
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid email format",
		})
	}

	if err := utils.ValidateStrongPassword(req.Password); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: err.Error(),
			Errors:  map[string]string{"password": err.Error()},
		})
	}

	if req.Password != req.ConfirmPassword {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Passwords do not match.",
			Errors:  map[string]string{"confirmPassword": "Passwords do not match."},
		})
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to process password",
		})
	}

	user := &models.User{
		Email:    email,
		Password: hashedPassword,
		FullName: utils.SanitizeInput(req.Name),
		IsActive: false,
		IsStaff:  false,
	}
	if _, err := ac.users.Create(ctx, user); err != nil {
		if err == repositories.ErrEmailTaken {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "An account with this email already exists.",
				Errors:  map[string]string{"email": "An account with this email already exists."},
			})
		}
		ac.logger.Printf("Failed to create user: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to create account",
		})
	}

	otp, err := ac.otps.Issue(ctx, email, models.OTPPurposeSignup)
	if err != nil {
		ac.logger.Printf("Failed to issue signup OTP for %s: %v", email, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to generate verification code",
		})
	}

	// The signup flow depends on the email arriving, so a mail failure is
	// surfaced rather than swallowed.
	if err := ac.mailer.SendOTPEmail(email, otp.Code, models.OTPPurposeSignup); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to send verification email",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Verification code sent to your email. Please verify within 5 minutes.",
	})
}

// VerifyEmail checks the signup code and activates the account. The
// consumed code is deleted; a wrong or expired code changes nothing.
func (ac *AuthController) VerifyEmail(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	var req models.VerifyEmailRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Validation error.",
			Errors:  err.Error(),
		})
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid email format",
		})
	}

	if err := utils.ValidateOTPAttempts(ctx, email, ac.redis); err != nil {
		return c.JSON(http.StatusTooManyRequests, models.Response{
			Success: false,
			Message: "Too many attempts. Please try again later.",
		})
	}

	otp, err := ac.otps.Verify(ctx, email, req.OTP, models.OTPPurposeSignup)
	if err != nil {
		if err == repositories.ErrOTPInvalid {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "Invalid or expired verification code.",
			})
		}
		ac.logger.Printf("OTP verify failed for %s: %v", email, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to verify code",
		})
	}

	if err := ac.users.Activate(ctx, email); err != nil {
		ac.logger.Printf("Failed to activate %s: %v", email, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to activate account",
		})
	}

	if err := ac.otps.Delete(ctx, otp); err != nil {
		// Account already active; the leftover code just ages out.
		ac.logger.Printf("Failed to delete consumed OTP for %s: %v", email, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Email verified. You can now sign in.",
	})
}

// Login checks credentials and returns the token pair. Unverified
// accounts and staff accounts are refused with distinct messages.
func (ac *AuthController) Login(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Validation error.",
			Errors:  err.Error(),
		})
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid email format",
		})
	}

	user, err := ac.users.FindByEmail(ctx, email)
	if err != nil {
		if err == repositories.ErrNotFound {
			return c.JSON(http.StatusUnauthorized, models.Response{
				Success: false,
				Message: "Invalid email or password.",
			})
		}
		ac.logger.Printf("Failed to look up %s: %v", email, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to find user",
		})
	}

	if err := utils.CheckPassword(req.Password, user.Password); err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: "Invalid email or password.",
		})
	}

	if !user.IsActive {
		return c.JSON(http.StatusForbidden, models.Response{
			Success: false,
			Message: "Please verify your email before signing in.",
		})
	}
	if user.IsStaff {
		return c.JSON(http.StatusForbidden, models.Response{
			Success: false,
			Message: "Use the admin site to sign in as staff.",
		})
	}

	access, refresh, err := middleware.GenerateTokenPair(ac.cfg.JWTSecret, user.ID.Hex(), user.Email)
	if err != nil {
		ac.logger.Printf("Failed to generate tokens for %s: %v", email, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to generate token",
		})
	}

	return c.JSON(http.StatusOK, models.LoginResponse{
		Access:  access,
		Refresh: refresh,
		User: models.PublicUser{
			ID:    user.ID.Hex(),
			Email: user.Email,
		},
	})
}

// ForgotPassword emails a reset code to an existing customer account.
// Mirrors the signup validation error when no account exists.
func (ac *AuthController) ForgotPassword(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	var req models.ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Validation error.",
			Errors:  err.Error(),
		})
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid email format",
		})
	}

	user, err := ac.users.FindByEmail(ctx, email)
	if err != nil {
		if err == repositories.ErrNotFound {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "No customer account found with this email.",
			})
		}
		ac.logger.Printf("Failed to look up %s: %v", email, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to check user",
		})
	}
	if user.IsStaff {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "No customer account found with this email.",
		})
	}

	otp, err := ac.otps.Issue(ctx, email, models.OTPPurposeForgotPassword)
	if err != nil {
		ac.logger.Printf("Failed to issue reset OTP for %s: %v", email, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to generate reset code",
		})
	}

	if err := ac.mailer.SendOTPEmail(email, otp.Code, models.OTPPurposeForgotPassword); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to send reset email",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Password reset code sent to your email. Valid for 5 minutes.",
		Data: map[string]interface{}{
			"email": utils.MaskEmail(email),
		},
	})
}

// ResetPassword verifies the reset code and replaces the password. The
// consumed code is deleted on success.
func (ac *AuthController) ResetPassword(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	var req models.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Validation error.",
			Errors:  err.Error(),
		})
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid email format",
		})
	}

	if err := utils.ValidateStrongPassword(req.NewPassword); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: err.Error(),
			Errors:  map[string]string{"newPassword": err.Error()},
		})
	}

	if err := utils.ValidateOTPAttempts(ctx, email, ac.redis); err != nil {
		return c.JSON(http.StatusTooManyRequests, models.Response{
			Success: false,
			Message: "Too many attempts. Please try again later.",
		})
	}

	otp, err := ac.otps.Verify(ctx, email, req.OTP, models.OTPPurposeForgotPassword)
	if err != nil {
		if err == repositories.ErrOTPInvalid {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "Invalid or expired reset code.",
			})
		}
		ac.logger.Printf("OTP verify failed for %s: %v", email, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to verify code",
		})
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to process password",
		})
	}

	if err := ac.users.UpdatePassword(ctx, email, hashedPassword); err != nil {
		ac.logger.Printf("Failed to update password for %s: %v", email, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to update password",
		})
	}

	if err := ac.otps.Delete(ctx, otp); err != nil {
		ac.logger.Printf("Failed to delete consumed OTP for %s: %v", email, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Password reset successfully. You can now sign in.",
	})
}

// RefreshToken exchanges a refresh token for a fresh pair. The account
// must still exist and be active.
func (ac *AuthController) RefreshToken(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	var req models.RefreshTokenRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Validation error.",
			Errors:  err.Error(),
		})
	}

	claims, err := middleware.ParseRefreshToken(ac.cfg.JWTSecret, req.Refresh)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: "Invalid or expired refresh token",
		})
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: "Invalid or expired refresh token",
		})
	}

	user, err := ac.users.FindByID(ctx, userID)
	if err != nil || !user.IsActive {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: "Invalid or expired refresh token",
		})
	}

	access, refresh, err := middleware.GenerateTokenPair(ac.cfg.JWTSecret, user.ID.Hex(), user.Email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to generate token",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data: map[string]string{
			"access":  access,
			"refresh": refresh,
		},
	})
}
