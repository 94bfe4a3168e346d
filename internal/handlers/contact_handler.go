package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"site-notify-api/internal/middleware"
	"site-notify-api/internal/models"
	"site-notify-api/internal/services"
	"site-notify-api/pkg/lambda"
)

// ContactHandler handles contact form submissions and admin replies
type ContactHandler struct {
	contactService services.ContactService
	logger         *logrus.Logger
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contactService services.ContactService, logger *logrus.Logger) *ContactHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ContactHandler{
		contactService: contactService,
		logger:         logger,
	}
}

// SubmitContactResponse is the success body for a contact submission
type SubmitContactResponse struct {
	Success   bool   `json:"success"`
	EmailID   string `json:"emailId"`
	ContactID string `json:"contactId"`
	RequestID string `json:"requestId"`
}

// ContactMessageResponse is the success body for a contact message fetch
type ContactMessageResponse struct {
	Success   bool                   `json:"success"`
	Contact   *models.ContactMessage `json:"contact"`
	RequestID string                 `json:"requestId"`
}

// ReplyResponse is the success body for an admin reply
type ReplyResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	RequestID string `json:"requestId"`
}

// @Summary Submit contact message
// @Description Accept a visitor contact form submission, store it, and notify the site admin by email
// @Tags contact
// @Accept json
// @Produce json
// @Param request body services.SubmitContactRequest true "Contact form data"
// @Success 200 {object} SubmitContactResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	requestID := c.GetString(middleware.RequestIDKey)

	var req services.SubmitContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, newErrorResponse("All fields are required", requestID))
		return
	}

	result, err := h.contactService.SubmitContact(c.Request.Context(), &req)
	if err != nil {
		status := statusForError(err)
		h.logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"status":     status,
			"error":      err.Error(),
		}).Error("Contact submission failed")
		c.JSON(status, newErrorResponse(messageForStatus(status, err), requestID))
		return
	}

	c.JSON(http.StatusOK, SubmitContactResponse{
		Success:   true,
		EmailID:   result.EmailID,
		ContactID: result.ContactID,
		RequestID: requestID,
	})
}

// @Summary Reply to contact message
// @Description Send an admin reply to a stored contact message and mark it replied
// @Tags contact
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param request body services.ReplyRequest true "Reply data"
// @Success 200 {object} ReplyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /contact/reply [post]
func (h *ContactHandler) ReplyToContact(c *gin.Context) {
	requestID := c.GetString(middleware.RequestIDKey)
	token := middleware.BearerToken(c.GetHeader("Authorization"))

	// Decoded without binding enforcement: the service checks the credential
	// before field presence, so auth failures outrank validation failures.
	var req services.ReplyRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		if token == "" {
			c.JSON(http.StatusUnauthorized, newErrorResponse("Missing authorization header", requestID))
			return
		}
		c.JSON(http.StatusBadRequest, newErrorResponse("Invalid request body", requestID))
		return
	}

	if _, err := h.contactService.ReplyToContact(c.Request.Context(), token, &req); err != nil {
		status := statusForError(err)
		h.logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"message_id": req.MessageID,
			"status":     status,
			"error":      err.Error(),
		}).Error("Contact reply failed")
		c.JSON(status, newErrorResponse(messageForStatus(status, err), requestID))
		return
	}

	c.JSON(http.StatusOK, ReplyResponse{
		Success:   true,
		Message:   "Reply sent successfully",
		RequestID: requestID,
	})
}

// @Summary Get contact message
// @Description Fetch a stored contact message by id; requires an admin bearer token
// @Tags contact
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Contact message id"
// @Success 200 {object} ContactMessageResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /contact/{id} [get]
func (h *ContactHandler) GetContact(c *gin.Context) {
	requestID := c.GetString(middleware.RequestIDKey)
	token := middleware.BearerToken(c.GetHeader("Authorization"))

	message, err := h.contactService.GetMessage(c.Request.Context(), token, c.Param("id"))
	if err != nil {
		status := statusForError(err)
		h.logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"message_id": c.Param("id"),
			"status":     status,
			"error":      err.Error(),
		}).Error("Contact fetch failed")
		c.JSON(status, newErrorResponse(messageForStatus(status, err), requestID))
		return
	}

	c.JSON(http.StatusOK, ContactMessageResponse{
		Success:   true,
		Contact:   message,
		RequestID: requestID,
	})
}

// HandleSubmit handles contact submissions for Lambda
func (h *ContactHandler) HandleSubmit(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	requestID := requestIDFrom(req)

	if resp := preflightResponse(req, postMethods); resp != nil {
		return resp, nil
	}
	if req.Method != http.MethodPost {
		return jsonResponse(http.StatusMethodNotAllowed,
			newErrorResponse("Method not allowed", requestID), requestID, postMethods), nil
	}

	var submitReq services.SubmitContactRequest
	if err := json.Unmarshal(req.Body, &submitReq); err != nil {
		return jsonResponse(http.StatusBadRequest,
			newErrorResponse("All fields are required", requestID), requestID, postMethods), nil
	}

	result, err := h.contactService.SubmitContact(ctx, &submitReq)
	if err != nil {
		status := statusForError(err)
		h.logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"status":     status,
			"error":      err.Error(),
		}).Error("Contact submission failed")
		return jsonResponse(status, newErrorResponse(messageForStatus(status, err), requestID), requestID, postMethods), nil
	}

	return jsonResponse(http.StatusOK, SubmitContactResponse{
		Success:   true,
		EmailID:   result.EmailID,
		ContactID: result.ContactID,
		RequestID: requestID,
	}, requestID, postMethods), nil
}

// HandleReply handles admin replies for Lambda
func (h *ContactHandler) HandleReply(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	requestID := requestIDFrom(req)

	if resp := preflightResponse(req, postMethods); resp != nil {
		return resp, nil
	}
	if req.Method != http.MethodPost {
		return jsonResponse(http.StatusMethodNotAllowed,
			newErrorResponse("Method not allowed", requestID), requestID, postMethods), nil
	}

	token := middleware.BearerToken(headerValue(req, "Authorization"))

	var replyReq services.ReplyRequest
	if err := json.Unmarshal(req.Body, &replyReq); err != nil {
		if token == "" {
			return jsonResponse(http.StatusUnauthorized,
				newErrorResponse("Missing authorization header", requestID), requestID, postMethods), nil
		}
		return jsonResponse(http.StatusBadRequest,
			newErrorResponse("Invalid request body", requestID), requestID, postMethods), nil
	}

	if _, err := h.contactService.ReplyToContact(ctx, token, &replyReq); err != nil {
		status := statusForError(err)
		h.logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"message_id": replyReq.MessageID,
			"status":     status,
			"error":      err.Error(),
		}).Error("Contact reply failed")
		return jsonResponse(status, newErrorResponse(messageForStatus(status, err), requestID), requestID, postMethods), nil
	}

	return jsonResponse(http.StatusOK, ReplyResponse{
		Success:   true,
		Message:   "Reply sent successfully",
		RequestID: requestID,
	}, requestID, postMethods), nil
}

// requestIDFrom returns the caller-supplied correlation id or mints one
func requestIDFrom(req *lambda.Request) string {
	if id := headerValue(req, "X-Request-ID"); id != "" {
		return id
	}
	return uuid.New().String()
}

// headerValue does a case-insensitive header lookup. API Gateway does not
// normalize header casing.
func headerValue(req *lambda.Request, name string) string {
	if v, ok := req.Headers[name]; ok {
		return v
	}
	for k, v := range req.Headers {
		if http.CanonicalHeaderKey(k) == http.CanonicalHeaderKey(name) {
			return v
		}
	}
	return ""
}

// postMethods is the method list every endpoint advertises; the lambda
// entrypoints only accept POST.
const postMethods = "POST, OPTIONS"

func corsHeaders(allowMethods string) map[string]string {
	return map[string]string{
		"Content-Type":                 "application/json",
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": allowMethods,
		"Access-Control-Allow-Headers": "Origin, Content-Type, Accept, Authorization",
	}
}

// preflightResponse answers CORS preflight requests; nil means the request
// is not a preflight and handling should continue.
func preflightResponse(req *lambda.Request, allowMethods string) *lambda.Response {
	if req.Method != http.MethodOptions {
		return nil
	}
	return &lambda.Response{
		StatusCode: http.StatusNoContent,
		Headers:    corsHeaders(allowMethods),
	}
}

// jsonResponse marshals a body and stamps the CORS and correlation headers.
// The advertised methods must match what the endpoint's preflight offered.
func jsonResponse(status int, body interface{}, requestID, allowMethods string) *lambda.Response {
	payload, err := json.Marshal(body)
	if err != nil {
		payload = []byte(`{"error": "Failed to marshal response", "request_id": "` + requestID + `"}`)
		status = http.StatusInternalServerError
	}
	headers := corsHeaders(allowMethods)
	headers["X-Request-ID"] = requestID
	return &lambda.Response{
		StatusCode: status,
		Headers:    headers,
		Body:       payload,
	}
}
