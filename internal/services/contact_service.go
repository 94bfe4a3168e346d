package services

import (
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"site-notify-api/internal/models"
	"site-notify-api/internal/repositories"
)

// adminNotificationTemplate renders the email sent to the site administrator
// when a contact form submission arrives. The submitted fields are already
// entity-escaped in storage, so they are injected as pre-escaped HTML.
var adminNotificationTemplate = template.Must(template.New("admin_notification").Parse(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>New contact message</title></head>
<body>
    <h2>New contact message</h2>
    <p><strong>From:</strong> {{.Name}} ({{.Email}})</p>
    <p><strong>Subject:</strong> {{.Subject}}</p>
    <hr>
    <p>{{.Message}}</p>
    <hr>
    <p>Message ID: {{.ContactID}}<br>
    Received: {{.ReceivedAt}}</p>
</body>
</html>
`))

// replyTemplate renders the email sent back to the original sender. The admin
// reply text is escaped here; the quoted original is escaped in storage.
var replyTemplate = template.Must(template.New("contact_reply").Parse(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>{{.Subject}}</title></head>
<body>
    <p>{{.Reply}}</p>
    <hr>
    <p><em>Your original message:</em></p>
    <blockquote>{{.Original}}</blockquote>
</body>
</html>
`))

// contactService implements the ContactService interface
type contactService struct {
	contactRepo repositories.ContactMessageRepository
	profileRepo repositories.ProfileRepository
	mailer      Mailer
	verifier    TokenVerifier
	validator   *validator.Validate
	adminEmail  string
	logger      *logrus.Logger
}

// NewContactService creates a new contact service instance
func NewContactService(
	contactRepo repositories.ContactMessageRepository,
	profileRepo repositories.ProfileRepository,
	mailer Mailer,
	verifier TokenVerifier,
	adminEmail string,
	logger *logrus.Logger,
) ContactService {
	if logger == nil {
		logger = logrus.New()
	}
	return &contactService{
		contactRepo: contactRepo,
		profileRepo: profileRepo,
		mailer:      mailer,
		verifier:    verifier,
		validator:   validator.New(),
		adminEmail:  adminEmail,
		logger:      logger,
	}
}

// SubmitContact validates and stores a submission, then notifies the admin.
// The stored row is kept even when the notification fails to send.
func (s *contactService) SubmitContact(ctx context.Context, req *SubmitContactRequest) (*SubmitContactResult, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty request", ErrValidation)
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: name, email, subject and message are required", ErrValidation)
	}
	if strings.TrimSpace(req.Name) == "" ||
		strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Subject) == "" ||
		strings.TrimSpace(req.Message) == "" {
		return nil, fmt.Errorf("%w: name, email, subject and message are required", ErrValidation)
	}

	if !models.IsValidEmail(req.Email) {
		return nil, fmt.Errorf("%w: invalid email address format", ErrValidation)
	}

	message := models.NewContactMessage(req.Name, req.Email, req.Subject, req.Message)

	if err := s.contactRepo.Create(ctx, message); err != nil {
		s.logger.WithError(err).WithField("contact_id", message.ID).Error("Failed to store contact message")
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	html, err := renderAdminNotification(message)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDelivery, err)
	}

	emailID, err := s.mailer.Send(ctx, &EmailMessage{
		To:      []string{s.adminEmail},
		Subject: "New contact message: " + message.Subject,
		HTML:    html,
	})
	if err != nil {
		// The stored row is deliberately not rolled back.
		s.logger.WithError(err).WithField("contact_id", message.ID).Error("Failed to send admin notification")
		return nil, fmt.Errorf("%w: %v", ErrDelivery, err)
	}

	s.logger.WithFields(logrus.Fields{
		"contact_id": message.ID,
		"email_id":   emailID,
	}).Info("Contact message stored and admin notified")

	return &SubmitContactResult{ContactID: message.ID, EmailID: emailID}, nil
}

// ReplyToContact authorizes the caller, records the reply in one update and
// emails the original sender. A delivery failure after the update leaves the
// row in status replied.
func (s *contactService) ReplyToContact(ctx context.Context, token string, req *ReplyRequest) (*ReplyResult, error) {
	if err := s.authorizeAdmin(ctx, token); err != nil {
		return nil, err
	}

	if req == nil || strings.TrimSpace(req.MessageID) == "" || strings.TrimSpace(req.Reply) == "" {
		return nil, fmt.Errorf("%w: message_id and reply are required", ErrValidation)
	}

	message, err := s.contactRepo.GetByID(ctx, req.MessageID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	replySubject := strings.TrimSpace(req.ReplySubject)
	if replySubject == "" {
		replySubject = "Re: " + message.Subject
	}

	repliedAt := time.Now().UTC()
	if err := s.contactRepo.MarkReplied(ctx, message.ID, req.Reply, replySubject, repliedAt); err != nil {
		s.logger.WithError(err).WithField("contact_id", message.ID).Error("Failed to record reply")
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	html, err := renderReply(replySubject, req.Reply, message)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDelivery, err)
	}

	emailID, err := s.mailer.Send(ctx, &EmailMessage{
		To:      []string{message.Email},
		Subject: replySubject,
		HTML:    html,
	})
	if err != nil {
		// The status change is deliberately not reverted.
		s.logger.WithError(err).WithField("contact_id", message.ID).Error("Reply recorded but email delivery failed")
		return nil, fmt.Errorf("%w: %v", ErrDelivery, err)
	}

	s.logger.WithFields(logrus.Fields{
		"contact_id": message.ID,
		"email_id":   emailID,
	}).Info("Reply recorded and sent")

	return &ReplyResult{MessageID: message.ID, EmailID: emailID}, nil
}

// GetMessage fetches a stored contact message for an admin caller. The
// credential check runs before the id is looked at, matching the reply path.
func (s *contactService) GetMessage(ctx context.Context, token, id string) (*models.ContactMessage, error) {
	if err := s.authorizeAdmin(ctx, token); err != nil {
		return nil, err
	}
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: message id is required", ErrValidation)
	}
	return s.contactRepo.GetByID(ctx, id)
}

// authorizeAdmin verifies the bearer credential and confirms the caller's
// profile carries the admin role.
func (s *contactService) authorizeAdmin(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("%w: missing bearer token", ErrUnauthorized)
	}

	userID, err := s.verifier.Verify(token)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return fmt.Errorf("%w: no profile for authenticated user", ErrForbidden)
		}
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if !profile.IsAdmin() {
		return fmt.Errorf("%w: admin role required", ErrForbidden)
	}
	return nil
}

// renderAdminNotification builds the admin notification HTML body
func renderAdminNotification(message *models.ContactMessage) (string, error) {
	data := struct {
		Name       template.HTML
		Email      template.HTML
		Subject    template.HTML
		Message    template.HTML
		ContactID  string
		ReceivedAt string
	}{
		Name:       template.HTML(message.Name),
		Email:      template.HTML(message.Email),
		Subject:    template.HTML(message.Subject),
		Message:    template.HTML(strings.ReplaceAll(message.Message, "\n", "<br>")),
		ContactID:  message.ID,
		ReceivedAt: message.CreatedAt.Format(time.RFC3339),
	}

	var buf strings.Builder
	if err := adminNotificationTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render admin notification: %w", err)
	}
	return buf.String(), nil
}

// renderReply builds the reply email HTML body. The raw reply text is escaped
// here; the quoted original message was escaped before storage.
func renderReply(subject, reply string, message *models.ContactMessage) (string, error) {
	data := struct {
		Subject  string
		Reply    template.HTML
		Original template.HTML
	}{
		Subject:  subject,
		Reply:    template.HTML(strings.ReplaceAll(models.EscapeHTML(reply), "\n", "<br>")),
		Original: template.HTML(strings.ReplaceAll(message.Message, "\n", "<br>")),
	}

	var buf strings.Builder
	if err := replyTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render reply email: %w", err)
	}
	return buf.String(), nil
}
