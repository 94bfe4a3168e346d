package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"site-notify-api/internal/middleware"
	"site-notify-api/internal/models"
	"site-notify-api/internal/repositories"
	"site-notify-api/internal/services"
	"site-notify-api/pkg/lambda"
)

// mockContactService scripts ContactService outcomes per test
type mockContactService struct {
	submitResult *services.SubmitContactResult
	submitErr    error
	replyResult  *services.ReplyResult
	replyErr     error
	getResult    *models.ContactMessage
	getErr       error
	lastToken    string
}

func (m *mockContactService) SubmitContact(ctx context.Context, req *services.SubmitContactRequest) (*services.SubmitContactResult, error) {
	if m.submitErr != nil {
		return nil, m.submitErr
	}
	return m.submitResult, nil
}

func (m *mockContactService) ReplyToContact(ctx context.Context, token string, req *services.ReplyRequest) (*services.ReplyResult, error) {
	m.lastToken = token
	if m.replyErr != nil {
		return nil, m.replyErr
	}
	return m.replyResult, nil
}

func (m *mockContactService) GetMessage(ctx context.Context, token, id string) (*models.ContactMessage, error) {
	m.lastToken = token
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.getResult == nil {
		return nil, repositories.NotFoundError("contact_message", id)
	}
	return m.getResult, nil
}

func newContactRouter(svc services.ContactService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RequestID())
	handler := NewContactHandler(svc, nil)
	router.POST("/api/v1/contact", handler.SubmitContact)
	router.POST("/api/v1/contact/reply", handler.ReplyToContact)
	router.GET("/api/v1/contact/:id", handler.GetContact)
	return router
}

func TestSubmitContactHTTP_Success(t *testing.T) {
	svc := &mockContactService{
		submitResult: &services.SubmitContactResult{ContactID: "c-1", EmailID: "e-1"},
	}
	router := newContactRouter(svc)

	body, _ := json.Marshal(map[string]string{
		"name": "Jane", "email": "jane@example.com", "subject": "Hi", "message": "Hello",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200; body: %s", w.Code, w.Body.String())
	}

	var resp SubmitContactResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !resp.Success || resp.ContactID != "c-1" || resp.EmailID != "e-1" {
		t.Errorf("Unexpected response: %+v", resp)
	}
	if resp.RequestID == "" {
		t.Error("Response must carry a request id")
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header should be set")
	}
}

func TestSubmitContactHTTP_MissingField(t *testing.T) {
	router := newContactRouter(&mockContactService{})

	body, _ := json.Marshal(map[string]string{"name": "Jane"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400", w.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if resp.Error == "" || resp.RequestID == "" || resp.Timestamp == "" {
		t.Errorf("Error body incomplete: %+v", resp)
	}
}

func TestSubmitContactHTTP_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", fmt.Errorf("%w: invalid email address format", services.ErrValidation), http.StatusBadRequest},
		{"storage", fmt.Errorf("%w: insert failed", services.ErrStorage), http.StatusInternalServerError},
		{"delivery", fmt.Errorf("%w: smtp down", services.ErrDelivery), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newContactRouter(&mockContactService{submitErr: tt.err})

			body, _ := json.Marshal(map[string]string{
				"name": "n", "email": "a@b.co", "subject": "s", "message": "m",
			})
			req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("Status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestSubmitContactHTTP_InternalErrorIsGeneric(t *testing.T) {
	router := newContactRouter(&mockContactService{
		submitErr: fmt.Errorf("%w: dsn user:secret@host", services.ErrStorage),
	})

	body, _ := json.Marshal(map[string]string{
		"name": "n", "email": "a@b.co", "subject": "s", "message": "m",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if resp.Error != "Internal server error" {
		t.Errorf("Internal detail leaked to client: %q", resp.Error)
	}
}

func TestReplyHTTP_StatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unauthorized", fmt.Errorf("%w: bad token", services.ErrUnauthorized), http.StatusUnauthorized},
		{"forbidden", fmt.Errorf("%w: admin role required", services.ErrForbidden), http.StatusForbidden},
		{"validation", fmt.Errorf("%w: message_id required", services.ErrValidation), http.StatusBadRequest},
		{"not found", repositories.NotFoundError("contact_message", "x"), http.StatusNotFound},
		{"storage", fmt.Errorf("%w: locked", services.ErrStorage), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newContactRouter(&mockContactService{replyErr: tt.err})

			body, _ := json.Marshal(map[string]string{"message_id": "m-1", "reply": "r"})
			req := httptest.NewRequest(http.MethodPost, "/api/v1/contact/reply", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer some-token")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("Status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestReplyHTTP_Success(t *testing.T) {
	svc := &mockContactService{replyResult: &services.ReplyResult{MessageID: "m-1", EmailID: "e-1"}}
	router := newContactRouter(svc)

	body, _ := json.Marshal(map[string]string{"message_id": "m-1", "reply": "r"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contact/reply", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer admin-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
	if svc.lastToken != "admin-token" {
		t.Errorf("Token forwarded = %q, want stripped bearer value", svc.lastToken)
	}

	var resp ReplyResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !resp.Success || resp.Message != "Reply sent successfully" {
		t.Errorf("Unexpected response: %+v", resp)
	}
}

func TestGetContactHTTP_Success(t *testing.T) {
	msg := models.NewContactMessage("Jane", "jane@example.com", "Subject", "Body")
	svc := &mockContactService{getResult: msg}
	router := newContactRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/contact/"+msg.ID, nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
	if svc.lastToken != "admin-token" {
		t.Errorf("Token forwarded = %q, want stripped bearer value", svc.lastToken)
	}

	var resp ContactMessageResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !resp.Success || resp.Contact == nil || resp.Contact.ID != msg.ID {
		t.Errorf("Unexpected response: %+v", resp)
	}
	if resp.RequestID == "" {
		t.Error("Response must carry a request id")
	}
}

func TestGetContactHTTP_StatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unauthorized", fmt.Errorf("%w: missing bearer token", services.ErrUnauthorized), http.StatusUnauthorized},
		{"forbidden", fmt.Errorf("%w: admin role required", services.ErrForbidden), http.StatusForbidden},
		{"not found", repositories.NotFoundError("contact_message", "x"), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newContactRouter(&mockContactService{getErr: tt.err})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/contact/x", nil)
			req.Header.Set("Authorization", "Bearer some-token")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("Status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestHandleSubmitLambda_MethodHandling(t *testing.T) {
	handler := NewContactHandler(&mockContactService{
		submitResult: &services.SubmitContactResult{ContactID: "c-1", EmailID: "e-1"},
	}, nil)

	// Preflight
	resp, err := handler.HandleSubmit(context.Background(), &lambda.Request{Method: http.MethodOptions})
	if err != nil {
		t.Fatalf("HandleSubmit(OPTIONS) failed: %v", err)
	}
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("OPTIONS status = %d, want 204", resp.StatusCode)
	}
	if resp.Headers["Access-Control-Allow-Origin"] != "*" {
		t.Error("Preflight must carry CORS headers")
	}

	// Wrong method
	resp, err = handler.HandleSubmit(context.Background(), &lambda.Request{Method: http.MethodGet})
	if err != nil {
		t.Fatalf("HandleSubmit(GET) failed: %v", err)
	}
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET status = %d, want 405", resp.StatusCode)
	}

	// Valid POST
	body, _ := json.Marshal(map[string]string{
		"name": "n", "email": "a@b.co", "subject": "s", "message": "m",
	})
	resp, err = handler.HandleSubmit(context.Background(), &lambda.Request{
		Method: http.MethodPost,
		Body:   body,
	})
	if err != nil {
		t.Fatalf("HandleSubmit(POST) failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("POST status = %d, want 200; body: %s", resp.StatusCode, resp.Body)
	}

	var out SubmitContactResponse
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		t.Fatalf("Failed to decode lambda body: %v", err)
	}
	if out.ContactID != "c-1" || out.RequestID == "" {
		t.Errorf("Unexpected lambda response: %+v", out)
	}
}

func TestHandleReplyLambda_AuthHeader(t *testing.T) {
	svc := &mockContactService{replyResult: &services.ReplyResult{MessageID: "m-1", EmailID: "e-1"}}
	handler := NewContactHandler(svc, nil)

	body, _ := json.Marshal(map[string]string{"message_id": "m-1", "reply": "r"})
	resp, err := handler.HandleReply(context.Background(), &lambda.Request{
		Method:  http.MethodPost,
		Headers: map[string]string{"authorization": "Bearer lower-case-header"},
		Body:    body,
	})
	if err != nil {
		t.Fatalf("HandleReply() failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Status = %d, want 200; body: %s", resp.StatusCode, resp.Body)
	}
	if svc.lastToken != "lower-case-header" {
		t.Errorf("Token = %q; header lookup must be case-insensitive", svc.lastToken)
	}
}

func TestLambdaResponseMethodsMatchPreflight(t *testing.T) {
	handler := NewContactHandler(&mockContactService{
		submitResult: &services.SubmitContactResult{ContactID: "c-1", EmailID: "e-1"},
	}, nil)

	preflight, err := handler.HandleSubmit(context.Background(), &lambda.Request{Method: http.MethodOptions})
	if err != nil {
		t.Fatalf("HandleSubmit(OPTIONS) failed: %v", err)
	}

	body, _ := json.Marshal(map[string]string{
		"name": "n", "email": "a@b.co", "subject": "s", "message": "m",
	})
	resp, err := handler.HandleSubmit(context.Background(), &lambda.Request{
		Method: http.MethodPost,
		Body:   body,
	})
	if err != nil {
		t.Fatalf("HandleSubmit(POST) failed: %v", err)
	}

	offered := preflight.Headers["Access-Control-Allow-Methods"]
	if offered == "" {
		t.Fatal("Preflight must advertise allowed methods")
	}
	if got := resp.Headers["Access-Control-Allow-Methods"]; got != offered {
		t.Errorf("Response methods = %q, preflight offered %q", got, offered)
	}
}

func TestRequestIDPropagation(t *testing.T) {
	handler := NewContactHandler(&mockContactService{
		submitResult: &services.SubmitContactResult{ContactID: "c-1", EmailID: "e-1"},
	}, nil)

	body, _ := json.Marshal(map[string]string{
		"name": "n", "email": "a@b.co", "subject": "s", "message": "m",
	})
	resp, err := handler.HandleSubmit(context.Background(), &lambda.Request{
		Method:  http.MethodPost,
		Headers: map[string]string{"X-Request-ID": "caller-id-7"},
		Body:    body,
	})
	if err != nil {
		t.Fatalf("HandleSubmit() failed: %v", err)
	}

	var out SubmitContactResponse
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if out.RequestID != "caller-id-7" {
		t.Errorf("RequestID = %q, want caller-supplied id", out.RequestID)
	}
	if resp.Headers["X-Request-ID"] != "caller-id-7" {
		t.Error("Response header should echo the request id")
	}
}
