package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"sfm-backend/internal/templates"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/webhook"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidPrice     = errors.New("template has no purchasable price")
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrSessionNotFound  = errors.New("session not found")
	ErrNotConfigured    = errors.New("payments not configured")
)

const metadataTemplateID = "templateId"

// TemplateStore is the subset of the template repository checkout needs.
type TemplateStore interface {
	GetByID(ctx context.Context, id string) (templates.Template, error)
	IncrementSales(ctx context.Context, id string) error
	SetStripeRefs(ctx context.Context, id, productID, priceID string) (templates.Template, error)
}

type Service struct {
	gateway       Gateway
	store         TemplateStore
	webhookSecret string
	clientURL     string
}

func NewService(gateway Gateway, store TemplateStore, webhookSecret, clientURL string) *Service {
	return &Service{
		gateway:       gateway,
		store:         store,
		webhookSecret: webhookSecret,
		clientURL:     strings.TrimRight(clientURL, "/"),
	}
}

// CreateSession opens a hosted checkout for a single published template.
// An unpublished template is reported exactly like a missing one.
func (s *Service) CreateSession(ctx context.Context, templateID string) (CreateSessionResponse, error) {
	if s.gateway == nil {
		return CreateSessionResponse{}, ErrNotConfigured
	}

	tpl, err := s.store.GetByID(ctx, strings.TrimSpace(templateID))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return CreateSessionResponse{}, ErrTemplateNotFound
		}
		return CreateSessionResponse{}, err
	}
	if !tpl.IsPublished {
		return CreateSessionResponse{}, ErrTemplateNotFound
	}

	amount := EffectiveAmountCents(tpl.Price, tpl.SalePrice)
	if amount <= 0 {
		return CreateSessionResponse{}, ErrInvalidPrice
	}

	in := SessionInput{
		Name:        tpl.Title,
		Description: tpl.ShortDescription,
		AmountCents: amount,
		Currency:    "usd",
		Metadata:    map[string]string{metadataTemplateID: tpl.ID},
		SuccessURL:  s.clientURL + "/templates/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:   s.clientURL + "/templates/" + tpl.Slug,
	}
	if tpl.FeaturedImage != "" {
		in.Images = []string{tpl.FeaturedImage}
	}

	created, err := s.gateway.CreateSession(ctx, in)
	if err != nil {
		return CreateSessionResponse{}, err
	}
	return CreateSessionResponse{SessionID: created.ID, URL: created.URL}, nil
}

// HandleWebhook verifies the payload signature before touching anything.
// A completed checkout increments the template's sales counter once per
// delivered event; every other event type is acknowledged untouched.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) (WebhookResult, error) {
	event, err := webhook.ConstructEvent(payload, signature, s.webhookSecret)
	if err != nil {
		return WebhookResult{}, ErrInvalidSignature
	}

	result := WebhookResult{EventID: event.ID, EventType: string(event.Type)}
	if event.Type != "checkout.session.completed" {
		return result, nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return result, err
	}

	templateID := sess.Metadata[metadataTemplateID]
	if templateID == "" {
		return result, nil
	}

	if err := s.store.IncrementSales(ctx, templateID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return result, ErrTemplateNotFound
		}
		return result, err
	}

	result.Handled = true
	return result, nil
}

// GetSession reports payment state for the success page. The download link
// is only attached once the session is actually paid.
func (s *Service) GetSession(ctx context.Context, sessionID string) (SessionDetails, error) {
	if s.gateway == nil {
		return SessionDetails{}, ErrNotConfigured
	}

	sess, err := s.gateway.GetSession(ctx, strings.TrimSpace(sessionID))
	if err != nil {
		return SessionDetails{}, ErrSessionNotFound
	}

	details := SessionDetails{
		SessionID:     sess.ID,
		PaymentStatus: sess.PaymentStatus,
		Paid:          sess.PaymentStatus == string(stripe.CheckoutSessionPaymentStatusPaid),
		CustomerEmail: sess.CustomerEmail,
		AmountTotal:   sess.AmountTotal,
		Currency:      sess.Currency,
	}

	if templateID := sess.Metadata[metadataTemplateID]; templateID != "" {
		tpl, err := s.store.GetByID(ctx, templateID)
		if err == nil {
			purchased := &PurchasedTemplate{
				ID:    tpl.ID,
				Title: tpl.Title,
				Slug:  tpl.Slug,
			}
			if details.Paid {
				purchased.DownloadURL = tpl.DownloadURL
			}
			details.Template = purchased
		}
	}
	return details, nil
}

// SyncProduct mirrors a template into the Stripe catalog and records the
// resulting product and price IDs on the template.
func (s *Service) SyncProduct(ctx context.Context, templateID string) (templates.Template, error) {
	if s.gateway == nil {
		return templates.Template{}, ErrNotConfigured
	}

	tpl, err := s.store.GetByID(ctx, strings.TrimSpace(templateID))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return templates.Template{}, ErrTemplateNotFound
		}
		return templates.Template{}, err
	}

	amount := EffectiveAmountCents(tpl.Price, tpl.SalePrice)
	if amount <= 0 {
		return templates.Template{}, ErrInvalidPrice
	}

	in := ProductInput{
		Name:        tpl.Title,
		Description: tpl.ShortDescription,
		AmountCents: amount,
		Currency:    "usd",
	}
	if tpl.FeaturedImage != "" {
		in.Images = []string{tpl.FeaturedImage}
	}

	productID, priceID, err := s.gateway.CreateProduct(ctx, in)
	if err != nil {
		return templates.Template{}, err
	}

	updated, err := s.store.SetStripeRefs(ctx, tpl.ID, productID, priceID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return templates.Template{}, ErrTemplateNotFound
		}
		return templates.Template{}, err
	}
	return updated, nil
}

// EffectiveAmountCents converts the charged price to integer cents, taking
// the sale price when one is set below the list price. Decimal arithmetic
// keeps amounts like 49.99 from drifting a cent through float rounding.
func EffectiveAmountCents(listPrice, salePrice float64) int64 {
	p := decimal.NewFromFloat(listPrice)
	if salePrice > 0 {
		sp := decimal.NewFromFloat(salePrice)
		if sp.LessThan(p) {
			p = sp
		}
	}
	return p.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
