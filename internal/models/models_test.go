package models

import (
	"strings"
	"testing"
)

// TestEscapeHTML tests entity escaping of untrusted form input
func TestEscapeHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "hello world", "hello world"},
		{"ampersand", "fish & chips", "fish &amp; chips"},
		{"angle brackets", "<script>alert(1)</script>", "&lt;script&gt;alert(1)&lt;/script&gt;"},
		{"double quote", `say "hi"`, "say &quot;hi&quot;"},
		{"single quote", "it's fine", "it&#39;s fine"},
		{"all five", `<a href="x">&'`, "&lt;a href=&quot;x&quot;&gt;&amp;&#39;"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapeHTML(tt.input); got != tt.want {
				t.Errorf("EscapeHTML(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestEscapeHTMLSinglePass verifies escaping runs in one pass so an existing
// entity is escaped once, not recursively
func TestEscapeHTMLSinglePass(t *testing.T) {
	got := EscapeHTML("&amp;")
	if got != "&amp;amp;" {
		t.Errorf("EscapeHTML(\"&amp;\") = %q, want %q", got, "&amp;amp;")
	}
}

// TestIsValidEmail tests the email format check
func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@sub.example.co",
		"a@b.cd",
		"weird+tag@example.org",
	}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}

	invalid := []string{
		"",
		"plainaddress",
		"no-at-sign.example.com",
		"no-domain@",
		"@no-local.com",
		"no-tld@example",
		"spaces in@example.com",
		"user@exa mple.com",
		"two@@example.com",
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

// TestNewContactMessage tests construction of a pending contact message
func TestNewContactMessage(t *testing.T) {
	msg := NewContactMessage("Jane <Doe>", "jane@example.com", `Hello & "goodbye"`, "It's <b>bold</b>")

	if msg.ID == "" {
		t.Error("Expected generated ID, got empty string")
	}
	if msg.Status != ContactStatusPending {
		t.Errorf("Expected status %q, got %q", ContactStatusPending, msg.Status)
	}
	if msg.Name != "Jane &lt;Doe&gt;" {
		t.Errorf("Name not escaped: %q", msg.Name)
	}
	if msg.Subject != "Hello &amp; &quot;goodbye&quot;" {
		t.Errorf("Subject not escaped: %q", msg.Subject)
	}
	if msg.Message != "It&#39;s &lt;b&gt;bold&lt;/b&gt;" {
		t.Errorf("Message not escaped: %q", msg.Message)
	}
	if msg.Reply != nil || msg.RepliedAt != nil {
		t.Error("New message should have no reply data")
	}
	if msg.CreatedAt.IsZero() || msg.UpdatedAt.IsZero() {
		t.Error("Timestamps should be set")
	}
	if err := msg.Validate(); err != nil {
		t.Errorf("New contact message validation failed: %v", err)
	}
}

// TestContactMessageReplySubject tests the default reply subject fallback
func TestContactMessageReplySubject(t *testing.T) {
	msg := NewContactMessage("Jane", "jane@example.com", "Question about hosting", "hi")

	if got := msg.ReplySubjectOrDefault(); got != "Re: Question about hosting" {
		t.Errorf("ReplySubjectOrDefault() = %q, want default prefix", got)
	}

	custom := "Custom subject"
	msg.ReplySubject = &custom
	if got := msg.ReplySubjectOrDefault(); got != custom {
		t.Errorf("ReplySubjectOrDefault() = %q, want %q", got, custom)
	}

	if msg.IsReplied() {
		t.Error("IsReplied() should be false for pending message")
	}
	msg.Status = ContactStatusReplied
	if !msg.IsReplied() {
		t.Error("IsReplied() should be true for replied message")
	}
}

// TestProfileRoles tests the admin role check and email accessor
func TestProfileRoles(t *testing.T) {
	email := "admin@example.com"
	admin := &Profile{ID: "u-1", Email: &email, Role: RoleAdmin}
	if err := admin.Validate(); err != nil {
		t.Errorf("Admin profile validation failed: %v", err)
	}
	if !admin.IsAdmin() {
		t.Error("Expected IsAdmin() true for admin role")
	}
	if admin.GetEmail() != email {
		t.Errorf("GetEmail() = %q, want %q", admin.GetEmail(), email)
	}

	user := &Profile{ID: "u-2", Role: RoleUser}
	if user.IsAdmin() {
		t.Error("Expected IsAdmin() false for user role")
	}
	if user.GetEmail() != "" {
		t.Errorf("GetEmail() = %q, want empty for nil email", user.GetEmail())
	}

	bad := &Profile{ID: "u-3", Role: "owner"}
	if err := bad.Validate(); err == nil {
		t.Error("Expected validation error for unknown role")
	}
}

// TestNewNewsletterSend tests the broadcast audit record constructor
func TestNewNewsletterSend(t *testing.T) {
	send := NewNewsletterSend("March update", "<p>News</p>", 12)
	if send.ID == "" {
		t.Error("Expected generated ID")
	}
	if send.RecipientCount != 12 {
		t.Errorf("RecipientCount = %d, want 12", send.RecipientCount)
	}
	if send.SentAt.IsZero() {
		t.Error("SentAt should be set")
	}
	if err := send.Validate(); err != nil {
		t.Errorf("Newsletter send validation failed: %v", err)
	}
}

// TestContactMessageValidate tests required field enforcement
func TestContactMessageValidate(t *testing.T) {
	msg := NewContactMessage("Jane", "jane@example.com", "Subject", "Body")

	msg.Name = "   "
	if err := msg.Validate(); err == nil || !strings.Contains(err.Error(), "name") {
		t.Errorf("Expected name validation error, got %v", err)
	}
}
