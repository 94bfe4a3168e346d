package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"site-notify-api/internal/middleware"
	"site-notify-api/internal/services"
	"site-notify-api/pkg/lambda"
)

// NewsletterHandler handles newsletter broadcast requests
type NewsletterHandler struct {
	newsletterService services.NewsletterService
	logger            *logrus.Logger
}

// NewNewsletterHandler creates a new newsletter handler
func NewNewsletterHandler(newsletterService services.NewsletterService, logger *logrus.Logger) *NewsletterHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &NewsletterHandler{
		newsletterService: newsletterService,
		logger:            logger,
	}
}

// BroadcastResponse is the success body for a newsletter broadcast
type BroadcastResponse struct {
	Success        bool   `json:"success"`
	EmailID        string `json:"emailId"`
	RecipientCount int    `json:"recipientCount"`
	RequestID      string `json:"requestId"`
}

// @Summary Send newsletter
// @Description Broadcast a newsletter to all subscribers and registered user email addresses
// @Tags newsletter
// @Accept json
// @Produce json
// @Param Authorization header string true "Service credential"
// @Param request body services.BroadcastRequest true "Newsletter content"
// @Success 200 {object} BroadcastResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /newsletter/send [post]
func (h *NewsletterHandler) SendNewsletter(c *gin.Context) {
	requestID := c.GetString(middleware.RequestIDKey)
	credential := middleware.BearerToken(c.GetHeader("Authorization"))

	var req services.BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, newErrorResponse("Subject and content are required", requestID))
		return
	}

	result, err := h.newsletterService.Broadcast(c.Request.Context(), credential, &req)
	if err != nil {
		status := h.broadcastStatus(err)
		h.logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"status":     status,
			"error":      err.Error(),
		}).Error("Newsletter broadcast failed")
		c.JSON(status, newErrorResponse(messageForStatus(status, err), requestID))
		return
	}

	c.JSON(http.StatusOK, BroadcastResponse{
		Success:        true,
		EmailID:        result.EmailID,
		RecipientCount: result.RecipientCount,
		RequestID:      requestID,
	})
}

// HandleSend handles newsletter broadcasts for Lambda
func (h *NewsletterHandler) HandleSend(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	requestID := requestIDFrom(req)

	if resp := preflightResponse(req, postMethods); resp != nil {
		return resp, nil
	}
	if req.Method != http.MethodPost {
		return jsonResponse(http.StatusMethodNotAllowed,
			newErrorResponse("Method not allowed", requestID), requestID, postMethods), nil
	}

	credential := middleware.BearerToken(headerValue(req, "Authorization"))

	var broadcastReq services.BroadcastRequest
	if err := json.Unmarshal(req.Body, &broadcastReq); err != nil {
		return jsonResponse(http.StatusBadRequest,
			newErrorResponse("Subject and content are required", requestID), requestID, postMethods), nil
	}

	result, err := h.newsletterService.Broadcast(ctx, credential, &broadcastReq)
	if err != nil {
		status := h.broadcastStatus(err)
		h.logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"status":     status,
			"error":      err.Error(),
		}).Error("Newsletter broadcast failed")
		return jsonResponse(status, newErrorResponse(messageForStatus(status, err), requestID), requestID, postMethods), nil
	}

	return jsonResponse(http.StatusOK, BroadcastResponse{
		Success:        true,
		EmailID:        result.EmailID,
		RecipientCount: result.RecipientCount,
		RequestID:      requestID,
	}, requestID, postMethods), nil
}

// broadcastStatus maps broadcast failures to status codes. Credential
// failures surface as a generic 500 rather than 401 so the endpoint does
// not confirm to probers that a service key exists.
func (h *NewsletterHandler) broadcastStatus(err error) int {
	if status := statusForError(err); status == http.StatusBadRequest {
		return status
	}
	return http.StatusInternalServerError
}
