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
	"site-notify-api/internal/repositories"
	"site-notify-api/internal/services"
	"site-notify-api/pkg/lambda"
)

// mockNewsletterService scripts NewsletterService outcomes per test
type mockNewsletterService struct {
	result         *services.BroadcastResult
	err            error
	lastCredential string
}

func (m *mockNewsletterService) Broadcast(ctx context.Context, credential string, req *services.BroadcastRequest) (*services.BroadcastResult, error) {
	m.lastCredential = credential
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func newNewsletterRouter(svc services.NewsletterService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RequestID())
	handler := NewNewsletterHandler(svc, nil)
	router.POST("/api/v1/newsletter/send", handler.SendNewsletter)
	return router
}

func TestSendNewsletterHTTP_Success(t *testing.T) {
	svc := &mockNewsletterService{
		result: &services.BroadcastResult{EmailID: "e-1", RecipientCount: 42},
	}
	router := newNewsletterRouter(svc)

	body, _ := json.Marshal(map[string]string{"subject": "March", "content": "<p>news</p>"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/newsletter/send", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer service-key")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
	if svc.lastCredential != "service-key" {
		t.Errorf("Credential forwarded = %q, want stripped bearer value", svc.lastCredential)
	}

	var resp BroadcastResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !resp.Success || resp.RecipientCount != 42 || resp.EmailID != "e-1" {
		t.Errorf("Unexpected response: %+v", resp)
	}
}

func TestSendNewsletterHTTP_MissingFields(t *testing.T) {
	router := newNewsletterRouter(&mockNewsletterService{})

	body, _ := json.Marshal(map[string]string{"subject": "only subject"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/newsletter/send", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400", w.Code)
	}
}

func TestSendNewsletterHTTP_CredentialFailureIsGeneric(t *testing.T) {
	// A rejected credential must read as a plain server error, with no
	// hint that an auth check exists on this endpoint.
	svc := &mockNewsletterService{
		err: fmt.Errorf("%w: credential rejected", repositories.ErrUnauthorized),
	}
	router := newNewsletterRouter(svc)

	body, _ := json.Marshal(map[string]string{"subject": "s", "content": "c"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/newsletter/send", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer wrong")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Status = %d, want 500", w.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if resp.Error != "Internal server error" {
		t.Errorf("Error = %q, want generic message", resp.Error)
	}
}

func TestSendNewsletterHTTP_ValidationStays400(t *testing.T) {
	svc := &mockNewsletterService{
		err: fmt.Errorf("%w: subject and content are required", services.ErrValidation),
	}
	router := newNewsletterRouter(svc)

	body, _ := json.Marshal(map[string]string{"subject": " ", "content": "c"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/newsletter/send", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400", w.Code)
	}
}

func TestHandleSendLambda(t *testing.T) {
	svc := &mockNewsletterService{
		result: &services.BroadcastResult{EmailID: "e-1", RecipientCount: 3},
	}
	handler := NewNewsletterHandler(svc, nil)

	resp, err := handler.HandleSend(context.Background(), &lambda.Request{Method: http.MethodOptions})
	if err != nil {
		t.Fatalf("HandleSend(OPTIONS) failed: %v", err)
	}
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("OPTIONS status = %d, want 204", resp.StatusCode)
	}

	resp, err = handler.HandleSend(context.Background(), &lambda.Request{Method: http.MethodGet})
	if err != nil {
		t.Fatalf("HandleSend(GET) failed: %v", err)
	}
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET status = %d, want 405", resp.StatusCode)
	}

	body, _ := json.Marshal(map[string]string{"subject": "s", "content": "c"})
	resp, err = handler.HandleSend(context.Background(), &lambda.Request{
		Method:  http.MethodPost,
		Headers: map[string]string{"Authorization": "Bearer the-key"},
		Body:    body,
	})
	if err != nil {
		t.Fatalf("HandleSend(POST) failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST status = %d, want 200; body: %s", resp.StatusCode, resp.Body)
	}
	if svc.lastCredential != "the-key" {
		t.Errorf("Credential = %q, want forwarded bearer value", svc.lastCredential)
	}

	var out BroadcastResponse
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		t.Fatalf("Failed to decode lambda body: %v", err)
	}
	if out.RecipientCount != 3 || out.RequestID == "" {
		t.Errorf("Unexpected lambda response: %+v", out)
	}
}
