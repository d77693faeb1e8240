package notifications

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sfm-backend/internal/contacts"
)

func testContact() contacts.Contact {
	return contacts.Contact{
		ID:          "c1",
		Name:        "Jamie Lee",
		Email:       "jamie@example.com",
		Company:     "Acme",
		ProjectType: contacts.ProjectTypeEcommerce,
		Budget:      contacts.Budget10To25k,
		Message:     "We need a storefront.",
		Source:      contacts.SourceWebsite,
	}
}

func TestNewBrevoClientRequiresKeyAndSender(t *testing.T) {
	if c := NewBrevoClient("", "sender@example.com", "", "inbox@example.com", false); c != nil {
		t.Fatalf("expected nil client without api key")
	}
	if c := NewBrevoClient("key", "", "", "inbox@example.com", false); c != nil {
		t.Fatalf("expected nil client without sender")
	}
}

func TestNotifyNewContactSendsToInbox(t *testing.T) {
	var captured brevoSendRequest
	var apiKey string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey = r.Header.Get("api-key")
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"messageId":"msg-1"}`))
	}))
	defer srv.Close()

	client := NewBrevoClient("key-123", "noreply@silverfoxmedia.co", "SilverFox Media", "information@silverfoxmedia.co", false)
	client.endpoint = srv.URL

	if err := client.NotifyNewContact(context.Background(), testContact()); err != nil {
		t.Fatalf("NotifyNewContact error: %v", err)
	}

	if apiKey != "key-123" {
		t.Fatalf("expected api key header, got %q", apiKey)
	}
	if len(captured.To) != 1 || captured.To[0].Email != "information@silverfoxmedia.co" {
		t.Fatalf("expected notification to the agency inbox, got %+v", captured.To)
	}
	if !strings.Contains(captured.Subject, "Jamie Lee") {
		t.Fatalf("expected lead name in subject, got %q", captured.Subject)
	}
	if !strings.Contains(captured.HtmlContent, "We need a storefront.") {
		t.Fatalf("expected message in html body")
	}
	if !strings.Contains(captured.HtmlContent, "$10,000 - $25,000") {
		t.Fatalf("expected budget label in html body")
	}
}

func TestNotifyNewContactPropagatesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewBrevoClient("bad-key", "noreply@silverfoxmedia.co", "", "information@silverfoxmedia.co", false)
	client.endpoint = srv.URL

	if err := client.NotifyNewContact(context.Background(), testContact()); err == nil {
		t.Fatalf("expected error for rejected send")
	}
}
