package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	storage_go "github.com/supabase-community/storage-go"

	"referral-platform/internal/identity"
	"referral-platform/internal/middleware"
)

// AuthHandler fronts the hosted auth service.
type AuthHandler struct {
	Identity *identity.Service
	Storage  *storage_go.Client
}

func NewAuthHandler(svc *identity.Service, storage *storage_go.Client) *AuthHandler {
	return &AuthHandler{Identity: svc, Storage: storage}
}

// SignupRequest defines the JSON struct we expect from the client.
type SignupRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Username  string `json:"username" binding:"required,min=3"`
	Role      string `json:"role" binding:"omitempty,oneof=referrer business"`
	Phone     string `json:"phone"`
}

// Signup creates an identity with the profile attached, falling back to the
// two-phase path when the provider rejects the combined call.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	result, err := h.Identity.SignUp(identity.SignupParams{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Role:      req.Role,
		Phone:     req.Phone,
	})
	if err != nil {
		if errors.Is(err, identity.ErrProfilePending) {
			// The identity exists; only the profile write failed. The client
			// can retry the profile update against /api/me.
			log.Println("Signup left profile pending:", err)
			c.JSON(http.StatusBadGateway, gin.H{
				"error": "Account created but profile could not be saved. Please retry.",
				"phase": result.Phase,
			})
			return
		}
		log.Println("Sign up error:", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":       "Account created successfully.",
		"user_id":       result.Identity.ID,
		"email":         result.Identity.Email,
		"phase":         result.Phase,
		"used_fallback": result.UsedFallback,
	})
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	session, err := h.Identity.SignIn(req.Email, req.Password)
	if err != nil {
		log.Println("Login failed for", req.Email, ":", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Login successful.",
		"access_token":  session.AccessToken,
		"refresh_token": session.RefreshToken,
		"expires_in":    session.ExpiresIn,
		"user":          session.Identity,
	})
}

// OAuthRedirect sends the browser to the third-party provider. The provider
// redirects back to redirect_to with the session in the URL fragment.
func (h *AuthHandler) OAuthRedirect(c *gin.Context) {
	provider := c.Param("provider")
	redirectTo := c.Query("redirect_to")

	url, err := h.Identity.OAuthURL(provider, redirectTo)
	if err != nil {
		log.Println("OAuth authorize error:", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported provider or provider error"})
		return
	}
	c.Redirect(http.StatusFound, url)
}

// Logout invalidates the session server-side. Clients must drop their copy
// and navigate to the login view.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := c.GetString(middleware.CtxToken)
	if err := h.Identity.SignOut(token); err != nil {
		log.Println("Logout error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out."})
}

func (h *AuthHandler) Me(c *gin.Context) {
	token := c.GetString(middleware.CtxToken)
	id, err := h.Identity.Me(token)
	if err != nil {
		log.Println("Failed to fetch current user:", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
		return
	}
	c.JSON(http.StatusOK, id)
}

// UpdateMeRequest carries profile fields; role and tier changes go through
// the admin API, never this endpoint.
type UpdateMeRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Username  *string `json:"username"`
	Phone     *string `json:"phone"`
}

func (h *AuthHandler) UpdateMe(c *gin.Context) {
	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	fields := map[string]interface{}{}
	if req.FirstName != nil {
		fields["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		fields["last_name"] = *req.LastName
	}
	if req.Username != nil {
		fields["username"] = *req.Username
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
		fields["phone_verified"] = false
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	token := c.GetString(middleware.CtxToken)
	if err := h.Identity.UpdateProfile(token, fields); err != nil {
		log.Println("Profile update failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated."})
}

// UploadAvatar stores the file in the avatars bucket and points the profile
// at its public URL.
func (h *AuthHandler) UploadAvatar(c *gin.Context) {
	file, header, err := c.Request.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar file required"})
		return
	}
	defer file.Close()

	userID := c.GetString(middleware.CtxUserID)
	path := userID + "/" + header.Filename

	if _, err := h.Storage.UploadFile("avatars", path, file); err != nil {
		log.Println("Avatar upload failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
		return
	}
	url := h.Storage.GetPublicUrl("avatars", path).SignedURL

	token := c.GetString(middleware.CtxToken)
	if err := h.Identity.UpdateProfile(token, map[string]interface{}{"avatar": url}); err != nil {
		log.Println("Failed to save avatar URL:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload saved but profile not updated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"avatar": url})
}

type SendPhoneCodeRequest struct {
	Phone string `json:"phone" binding:"required"`
}

func (h *AuthHandler) SendPhoneCode(c *gin.Context) {
	var req SendPhoneCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	token := c.GetString(middleware.CtxToken)
	code, err := h.Identity.SendPhoneCode(token, req.Phone)
	if err != nil {
		log.Println("Failed to start phone verification:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not send verification code"})
		return
	}

	// No SMS gateway is wired up yet; the code is logged for development.
	log.Printf("Phone verification code for %s: %s", req.Phone, code)
	c.JSON(http.StatusOK, gin.H{"message": "Verification code sent."})
}

type VerifyPhoneRequest struct {
	Code string `json:"code" binding:"required,len=6"`
}

func (h *AuthHandler) VerifyPhone(c *gin.Context) {
	var req VerifyPhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	token := c.GetString(middleware.CtxToken)
	err := h.Identity.VerifyPhoneCode(token, req.Code)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Phone verified."})
	case errors.Is(err, identity.ErrCodeMismatch), errors.Is(err, identity.ErrNoVerification):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, identity.ErrAlreadyVerified):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Println("Phone verification error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error."})
	}
}
