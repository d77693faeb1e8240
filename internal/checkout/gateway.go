package checkout

import (
	"context"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/checkout/session"
	"github.com/stripe/stripe-go/v81/price"
	"github.com/stripe/stripe-go/v81/product"
)

// SessionInput describes the single-item hosted checkout to create.
type SessionInput struct {
	Name        string
	Description string
	Images      []string
	AmountCents int64
	Currency    string
	Metadata    map[string]string
	SuccessURL  string
	CancelURL   string
}

// Session is the slice of a Stripe checkout session the rest of the
// service cares about.
type Session struct {
	ID            string
	URL           string
	PaymentStatus string
	CustomerEmail string
	AmountTotal   int64
	Currency      string
	Metadata      map[string]string
}

type ProductInput struct {
	Name        string
	Description string
	Images      []string
	AmountCents int64
	Currency    string
}

// Gateway abstracts the Stripe API surface used by the checkout service.
type Gateway interface {
	CreateSession(ctx context.Context, in SessionInput) (Session, error)
	GetSession(ctx context.Context, id string) (Session, error)
	CreateProduct(ctx context.Context, in ProductInput) (productID, priceID string, err error)
}

// StripeGateway talks to the live Stripe API through the package-level
// clients; stripe.Key must be set before use.
type StripeGateway struct{}

func NewStripeGateway(apiKey string) *StripeGateway {
	stripe.Key = apiKey
	return &StripeGateway{}
}

func (g *StripeGateway) CreateSession(ctx context.Context, in SessionInput) (Session, error) {
	productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
		Name: stripe.String(in.Name),
	}
	if in.Description != "" {
		productData.Description = stripe.String(in.Description)
	}
	if len(in.Images) > 0 {
		productData.Images = stripe.StringSlice(in.Images)
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(in.SuccessURL),
		CancelURL:          stripe.String(in.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:    stripe.String(in.Currency),
					UnitAmount:  stripe.Int64(in.AmountCents),
					ProductData: productData,
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}

	created, err := session.New(params)
	if err != nil {
		return Session{}, err
	}
	return fromStripeSession(created), nil
}

func (g *StripeGateway) GetSession(ctx context.Context, id string) (Session, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	found, err := session.Get(id, params)
	if err != nil {
		return Session{}, err
	}
	return fromStripeSession(found), nil
}

func (g *StripeGateway) CreateProduct(ctx context.Context, in ProductInput) (string, string, error) {
	productParams := &stripe.ProductParams{
		Name: stripe.String(in.Name),
	}
	if in.Description != "" {
		productParams.Description = stripe.String(in.Description)
	}
	if len(in.Images) > 0 {
		productParams.Images = stripe.StringSlice(in.Images)
	}
	productParams.Context = ctx

	created, err := product.New(productParams)
	if err != nil {
		return "", "", err
	}

	priceParams := &stripe.PriceParams{
		Product:    stripe.String(created.ID),
		UnitAmount: stripe.Int64(in.AmountCents),
		Currency:   stripe.String(in.Currency),
	}
	priceParams.Context = ctx

	createdPrice, err := price.New(priceParams)
	if err != nil {
		return "", "", err
	}
	return created.ID, createdPrice.ID, nil
}

func fromStripeSession(s *stripe.CheckoutSession) Session {
	out := Session{
		ID:            s.ID,
		URL:           s.URL,
		PaymentStatus: string(s.PaymentStatus),
		AmountTotal:   s.AmountTotal,
		Currency:      string(s.Currency),
		Metadata:      s.Metadata,
	}
	if s.CustomerDetails != nil {
		out.CustomerEmail = s.CustomerDetails.Email
	}
	return out
}
