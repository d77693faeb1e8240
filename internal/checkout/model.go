package checkout

type CreateSessionRequest struct {
	TemplateID string `json:"templateId" validate:"required"`
}

type CreateProductRequest struct {
	TemplateID string `json:"templateId" validate:"required"`
}

type CreateSessionResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

type PurchasedTemplate struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	DownloadURL string `json:"downloadUrl,omitempty"`
}

type SessionDetails struct {
	SessionID     string             `json:"sessionId"`
	PaymentStatus string             `json:"paymentStatus"`
	Paid          bool               `json:"paid"`
	CustomerEmail string             `json:"customerEmail,omitempty"`
	AmountTotal   int64              `json:"amountTotal"`
	Currency      string             `json:"currency"`
	Template      *PurchasedTemplate `json:"template,omitempty"`
}

type WebhookResult struct {
	EventID   string `json:"eventId"`
	EventType string `json:"eventType"`
	Handled   bool   `json:"handled"`
}
