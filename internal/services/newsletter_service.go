package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"html/template"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"site-notify-api/internal/models"
	"site-notify-api/internal/repositories"
)

// newsletterTemplate wraps the broadcast body. Content is authored by a
// trusted admin and is embedded unescaped; only the subject is escaped.
var newsletterTemplate = template.Must(template.New("newsletter").Parse(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>{{.Subject}}</title></head>
<body>
    <h1>{{.Subject}}</h1>
    <div>{{.Content}}</div>
</body>
</html>
`))

// newsletterService implements the NewsletterService interface
type newsletterService struct {
	subscriptionRepo repositories.SubscriptionRepository
	profileRepo      repositories.ProfileRepository
	sendRepo         repositories.NewsletterSendRepository
	mailer           Mailer
	validator        *validator.Validate
	serviceKey       string
	logger           *logrus.Logger
}

// NewNewsletterService creates a new newsletter service instance
func NewNewsletterService(
	subscriptionRepo repositories.SubscriptionRepository,
	profileRepo repositories.ProfileRepository,
	sendRepo repositories.NewsletterSendRepository,
	mailer Mailer,
	serviceKey string,
	logger *logrus.Logger,
) NewsletterService {
	if logger == nil {
		logger = logrus.New()
	}
	return &newsletterService{
		subscriptionRepo: subscriptionRepo,
		profileRepo:      profileRepo,
		sendRepo:         sendRepo,
		mailer:           mailer,
		validator:        validator.New(),
		serviceKey:       serviceKey,
		logger:           logger,
	}
}

// Broadcast sends one batched email to the union of active subscription
// addresses and profile addresses. The forwarded credential is evaluated by
// the datastore layer before any query; the handler itself performs no
// identity check.
func (s *newsletterService) Broadcast(ctx context.Context, credential string, req *BroadcastRequest) (*BroadcastResult, error) {
	if err := s.evaluateCredential(credential); err != nil {
		return nil, err
	}

	if req == nil || s.validator.Struct(req) != nil ||
		strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("%w: subject and content are required", ErrValidation)
	}

	subscribed, err := s.subscriptionRepo.ListActiveEmails(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	profileEmails, err := s.profileRepo.ListEmailAddresses(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	recipients := dedupeEmails(subscribed, profileEmails)
	if len(recipients) == 0 {
		s.logger.Info("Newsletter broadcast skipped: no recipients")
		return &BroadcastResult{RecipientCount: 0}, nil
	}

	html, err := renderNewsletter(req.Subject, req.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDelivery, err)
	}

	emailID, err := s.mailer.Send(ctx, &EmailMessage{
		To:      recipients,
		Subject: req.Subject,
		HTML:    html,
	})
	if err != nil {
		s.logger.WithError(err).Error("Newsletter delivery failed")
		return nil, fmt.Errorf("%w: %v", ErrDelivery, err)
	}

	// Best-effort audit row: the email already went out, so a failure here is
	// logged and does not change the reported outcome.
	audit := models.NewNewsletterSend(req.Subject, req.Content, len(recipients))
	if err := s.sendRepo.Create(ctx, audit); err != nil {
		s.logger.WithError(err).WithField("send_id", audit.ID).Warn("Failed to record newsletter send")
	}

	s.logger.WithFields(logrus.Fields{
		"email_id":        emailID,
		"recipient_count": len(recipients),
	}).Info("Newsletter broadcast sent")

	return &BroadcastResult{EmailID: emailID, RecipientCount: len(recipients)}, nil
}

// evaluateCredential is the datastore-side access-control evaluation: the raw
// Authorization value is compared against the configured service credential.
func (s *newsletterService) evaluateCredential(credential string) error {
	if s.serviceKey == "" {
		return fmt.Errorf("%w: no service credential configured", repositories.ErrUnauthorized)
	}
	if subtle.ConstantTimeCompare([]byte(credential), []byte(s.serviceKey)) != 1 {
		return fmt.Errorf("%w: credential rejected", repositories.ErrUnauthorized)
	}
	return nil
}

// dedupeEmails unions the address lists and removes duplicates. Output order
// is stable for testability but carries no meaning.
func dedupeEmails(lists ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, list := range lists {
		for _, email := range list {
			if email == "" {
				continue
			}
			if _, ok := seen[email]; ok {
				continue
			}
			seen[email] = struct{}{}
			out = append(out, email)
		}
	}
	sort.Strings(out)
	return out
}

// renderNewsletter builds the broadcast HTML body, converting newlines in the
// trusted content to line breaks without escaping it.
func renderNewsletter(subject, content string) (string, error) {
	data := struct {
		Subject string
		Content template.HTML
	}{
		Subject: subject,
		Content: template.HTML(strings.ReplaceAll(content, "\n", "<br>")),
	}

	var buf strings.Builder
	if err := newsletterTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render newsletter: %w", err)
	}
	return buf.String(), nil
}
