package handlers

import (
	"net/http"

	"clinicrecord-backend/internal/models"
	"clinicrecord-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ListRecords answers GET /medical-records/. Patients get their own record(s);
// doctors get every record grouped by the owning patient's email.
func ListRecords(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	if caller.IsDoctor {
		grouped, err := Records.ListGrouped(c.Request.Context(), caller)
		if err != nil {
			respondError(c, err)
			return
		}
		utils.APIResponse(c, http.StatusOK, true, "Medical records by patient", grouped)
		return
	}

	records, err := Records.ListForPatient(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.APIResponse(c, http.StatusOK, true, "Your medical records", records)
}

// CreateRecord answers POST /medical-records/. One record per patient: a
// repeat create returns the existing record id with a 200 instead of a 201.
func CreateRecord(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	var input models.CreateRecordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Invalid medical record input", err.Error())
		return
	}

	result, err := Records.Create(c.Request.Context(), caller, input)
	if err != nil {
		respondError(c, err)
		return
	}

	if !result.Created {
		utils.APIResponse(c, http.StatusOK, true, "Patient already has a medical record", gin.H{
			"id": result.Record.ID,
		})
		return
	}
	utils.APIResponse(c, http.StatusCreated, true, "Medical record created", result.Record)
}

// GetRecord answers GET /medical-records/:id/.
func GetRecord(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	record, err := Records.Get(c.Request.Context(), caller, utils.StringToUint64(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.APIResponse(c, http.StatusOK, true, "Medical record", record)
}

// UpdateRecord answers PUT /medical-records/:id/. Requires an approved,
// edit-enabled permission; an identical payload is reported as "no changes"
// and leaves the history untouched.
func UpdateRecord(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	var input models.UpdateRecordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Invalid medical record input", err.Error())
		return
	}

	result, err := Records.Update(c.Request.Context(), caller, utils.StringToUint64(c.Param("id")), input)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Medical record updated"
	if result.NoChanges() {
		message = "No changes detected"
	}
	utils.APIResponse(c, http.StatusOK, true, message, gin.H{
		"record":         result.Record,
		"changed_fields": result.ChangedFields,
	})
}

// DeleteRecord answers DELETE /medical-records/:id/ and cascades over history
// and permission requests.
func DeleteRecord(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	if err := Records.Delete(c.Request.Context(), caller, utils.StringToUint64(c.Param("id"))); err != nil {
		respondError(c, err)
		return
	}
	utils.APIResponse(c, http.StatusOK, true, "Medical record deleted", nil)
}

// ListVersions answers GET /medical-records/:id/versions/.
func ListVersions(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	versions, err := Records.Versions(c.Request.Context(), caller, utils.StringToUint64(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.APIResponse(c, http.StatusOK, true, "Medical record versions", versions)
}

// GetVersion answers GET /medical-records/:id/version/:history_id/.
func GetVersion(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	version, err := Records.Version(c.Request.Context(), caller,
		utils.StringToUint64(c.Param("id")), utils.StringToUint64(c.Param("history_id")))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.APIResponse(c, http.StatusOK, true, "Medical record version", version)
}
