package handlers

import (
	"fmt"
	"net/http"

	"clinicrecord-backend/internal/models"
	"clinicrecord-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SendMessage answers POST /messages/send/.
func SendMessage(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	var input models.SendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Invalid message input", err.Error())
		return
	}

	message, err := Messages.Send(c.Request.Context(), caller, input)
	if err != nil {
		respondError(c, err)
		return
	}

	notify(message.RecipientID,
		"New message",
		"You have a new message in your inbox.",
		map[string]string{"message_id": fmt.Sprint(message.ID)})

	utils.APIResponse(c, http.StatusCreated, true, "Message sent", message)
}

// ListMessages answers GET /messages/ and GET /messages/:sender_email/.
func ListMessages(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	messages, err := Messages.Inbox(c.Request.Context(), caller, c.Param("sender_email"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.APIResponse(c, http.StatusOK, true, "Messages", messages)
}

// MarkMessageRead answers POST /messages/read/:id/.
func MarkMessageRead(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	if err := Messages.MarkRead(c.Request.Context(), caller, utils.StringToUint64(c.Param("id"))); err != nil {
		respondError(c, err)
		return
	}
	utils.APIResponse(c, http.StatusOK, true, "Message marked as read", nil)
}
