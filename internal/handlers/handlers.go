package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"clinicrecord-backend/internal/middleware"
	"clinicrecord-backend/internal/models"
	"clinicrecord-backend/internal/services"
	"clinicrecord-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Package-level services, wired once from main. Handlers stay plain functions
// so the route table reads flat.
var (
	Accounts    *services.AccountService
	Records     *services.RecordService
	Permissions *services.PermissionService
	Messages    *services.MessageService
)

// Setup injects the service layer. Must run before SetupRoutes.
func Setup(accounts *services.AccountService, records *services.RecordService,
	permissions *services.PermissionService, messages *services.MessageService) {
	Accounts = accounts
	Records = records
	Permissions = permissions
	Messages = messages
}

// respondError translates a service error into the matching HTTP status. The
// service message is shown to the caller for the expected classes; anything
// else is a 500 with the detail kept in the server log.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.APIResponse(c, http.StatusBadRequest, false, err.Error(), nil)
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.APIResponse(c, http.StatusUnauthorized, false, err.Error(), nil)
	case errors.Is(err, services.ErrNotAuthorized):
		utils.APIResponse(c, http.StatusForbidden, false, err.Error(), nil)
	case errors.Is(err, services.ErrNotFound):
		utils.APIResponse(c, http.StatusNotFound, false, err.Error(), nil)
	default:
		log.Printf("[API] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		utils.APIResponse(c, http.StatusInternalServerError, false, "Something went wrong", nil)
	}
}

// mustCaller fetches the authenticated caller or ends the request.
func mustCaller(c *gin.Context) (models.Caller, bool) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		utils.APIResponse(c, http.StatusUnauthorized, false, "Unauthorized", nil)
		return models.Caller{}, false
	}
	return caller, true
}

// notify pushes an FCM notification to one user without blocking the request.
// Best-effort: a missing token or a send failure is only logged.
func notify(userID uint64, title, body string, data map[string]string) {
	go func() {
		user, err := Accounts.Get(context.Background(), userID)
		if err != nil {
			log.Printf("[Notify] lookup user %d failed: %v", userID, err)
			return
		}
		_ = utils.SendNotification(user.FCMToken, title, body, data)
	}()
}
