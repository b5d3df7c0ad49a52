package handlers

import (
	"net/http"

	"clinicrecord-backend/internal/models"
	"clinicrecord-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Register creates a new account and triggers the verification email.
func Register(c *gin.Context) {
	var input models.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Invalid registration input", err.Error())
		return
	}

	user, err := Accounts.Register(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.APIResponse(c, http.StatusCreated, true, "User registered successfully! Check your email for the verification code.", user)
}

// VerifyEmail consumes the emailed OTP and activates the account.
func VerifyEmail(c *gin.Context) {
	var input models.VerifyEmailInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Invalid input", err.Error())
		return
	}

	if err := Accounts.VerifyEmail(c.Request.Context(), input.Email, input.OTP); err != nil {
		respondError(c, err)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "User verified successfully!", nil)
}

// ResendVerifyEmail sends a fresh verification code.
func ResendVerifyEmail(c *gin.Context) {
	var input models.VerifyEmailInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Invalid input", err.Error())
		return
	}

	if err := Accounts.ResendVerifyEmail(c.Request.Context(), input.Email); err != nil {
		respondError(c, err)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "OTP sent successfully!", nil)
}

// Login checks credentials and returns a JWT plus a profile summary.
func Login(c *gin.Context) {
	var input models.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Invalid login input", nil)
		return
	}

	token, user, err := Accounts.Login(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Login successful", gin.H{
		"token": token,
		"user": gin.H{
			"id":         user.ID,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"email":      user.Email,
			"is_doctor":  user.IsDoctor,
			"is_patient": user.IsPatient,
		},
	})
}
