package handlers

import (
	"fmt"
	"net/http"

	"clinicrecord-backend/internal/models"
	"clinicrecord-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// RequestPermission answers POST /medical-record/request-permission/.
// Re-requesting while a pending request exists returns that request with a
// 200 instead of creating a duplicate.
func RequestPermission(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	var input models.RequestPermissionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Invalid permission request input", err.Error())
		return
	}

	result, err := Permissions.Request(c.Request.Context(), caller, input)
	if err != nil {
		respondError(c, err)
		return
	}

	if !result.Created {
		utils.APIResponse(c, http.StatusOK, true, "A pending request for this record already exists", result.Request)
		return
	}

	notify(result.Request.PatientID,
		"New record access request",
		"A doctor asked for access to your medical record.",
		map[string]string{"request_id": fmt.Sprint(result.Request.ID)})

	utils.APIResponse(c, http.StatusCreated, true, "Permission request sent", result.Request)
}

// RespondPermission answers PUT /medical-record/permission-request/respond/.
func RespondPermission(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	var input models.RespondPermissionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Invalid response input", err.Error())
		return
	}

	request, err := Permissions.Respond(c.Request.Context(), caller, input)
	if err != nil {
		respondError(c, err)
		return
	}

	notify(request.DoctorID,
		"Permission request "+request.Status,
		"The patient has responded to your record access request.",
		map[string]string{"request_id": fmt.Sprint(request.ID)})

	utils.APIResponse(c, http.StatusOK, true, "Request "+request.Status, request)
}

// DeleteRequestsToPatient answers DELETE /medical-record/delete-requests-to-patient/
// and revokes every request addressed to the caller.
func DeleteRequestsToPatient(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	deleted, err := Permissions.DeleteRequestsToPatient(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Permission requests deleted", gin.H{
		"deleted": deleted,
	})
}
