package handler

import (
	"reclaim/internal/usecase"
	"reclaim/pkg/errors"
	"reclaim/pkg/response"

	"github.com/labstack/echo/v4"
)

type MessageHandler struct {
	messagingUseCase *usecase.MessagingUseCase
	attachments      *usecase.AttachmentPipeline
}

func NewMessageHandler(messagingUseCase *usecase.MessagingUseCase, attachments *usecase.AttachmentPipeline) *MessageHandler {
	return &MessageHandler{
		messagingUseCase: messagingUseCase,
		attachments:      attachments,
	}
}

type sendMessageRequest struct {
	ReceiverID string `json:"receiver_id" validate:"required"`
	ItemID     string `json:"item_id"`
	Content    string `json:"content"`
	PhotoURL   string `json:"photo_url"`
	ReplyToID  string `json:"reply_to_id"`
}

func (h *MessageHandler) SendMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	senderID := c.Get("uid").(string)

	message, err := h.messagingUseCase.SendMessage(c.Request().Context(), senderID, usecase.SendMessageInput{
		ReceiverID: req.ReceiverID,
		ItemID:     req.ItemID,
		Content:    req.Content,
		PhotoURL:   req.PhotoURL,
		ReplyToID:  req.ReplyToID,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

func (h *MessageHandler) Inbox(c echo.Context) error {
	userID := c.Get("uid").(string)

	conversations, err := h.messagingUseCase.Inbox(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, conversations)
}

type openConversationRequest struct {
	CounterpartyID string `json:"counterparty_id" validate:"required"`
	ItemID         string `json:"item_id"`
}

func (h *MessageHandler) OpenConversation(c echo.Context) error {
	var req openConversationRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	committed, err := h.messagingUseCase.OpenConversation(c.Request().Context(), userID, req.CounterpartyID, req.ItemID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"marked_read": committed,
	})
}

func (h *MessageHandler) MarkMessageRead(c echo.Context) error {
	messageID := c.Param("id")
	userID := c.Get("uid").(string)

	if err := h.messagingUseCase.MarkMessageRead(c.Request().Context(), userID, messageID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"status": "read",
	})
}

func (h *MessageHandler) UnreadCount(c echo.Context) error {
	userID := c.Get("uid").(string)

	count, err := h.messagingUseCase.UnreadTotal(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"count": count,
	})
}

// UploadAttachment stages and uploads a photo attachment, returning the URL
// to put in a later send.
func (h *MessageHandler) UploadAttachment(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("File is required", err))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Failed to open uploaded file", err))
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	staged, err := h.attachments.Stage(file, contentType, fileHeader.Filename)
	if err != nil {
		return response.Error(c, err)
	}

	url, err := h.attachments.Upload(c.Request().Context(), staged)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, map[string]interface{}{
		"photo_url": url,
	})
}
