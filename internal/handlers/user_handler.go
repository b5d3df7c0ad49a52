package handlers

import (
	"net/http"

	"clinicrecord-backend/internal/models"
	"clinicrecord-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// GetMe returns the profile of the logged-in user.
func GetMe(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	user, err := Accounts.Get(c.Request.Context(), caller.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "User details fetched successfully!", user)
}

// UpdateMe patches the caller's own profile.
func UpdateMe(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	var input models.UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Invalid profile input", err.Error())
		return
	}

	user, err := Accounts.UpdateProfile(c.Request.Context(), caller, input)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "User details updated successfully!", user)
}

// DeleteMe removes the caller's account.
func DeleteMe(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	if err := Accounts.Delete(c.Request.Context(), caller); err != nil {
		respondError(c, err)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "User deleted successfully!", nil)
}
