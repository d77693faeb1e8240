package templates

import "time"

const (
	PlatformWordpress   = "wordpress"
	PlatformWebflow     = "webflow"
	PlatformShopify     = "shopify"
	PlatformWix         = "wix"
	PlatformSquarespace = "squarespace"
	PlatformReact       = "react"

	CategoryApartment  = "apartment"
	CategoryAutoDealer = "auto-dealer"
	CategoryBusiness   = "business"
	CategoryEcommerce  = "ecommerce"
	CategoryPortfolio  = "portfolio"
	CategoryOther      = "other"
)

var validPlatforms = map[string]struct{}{
	PlatformWordpress:   {},
	PlatformWebflow:     {},
	PlatformShopify:     {},
	PlatformWix:         {},
	PlatformSquarespace: {},
	PlatformReact:       {},
}

var validCategories = map[string]struct{}{
	CategoryApartment:  {},
	CategoryAutoDealer: {},
	CategoryBusiness:   {},
	CategoryEcommerce:  {},
	CategoryPortfolio:  {},
	CategoryOther:      {},
}

func IsValidPlatform(value string) bool {
	_, ok := validPlatforms[value]
	return ok
}

func IsValidCategory(value string) bool {
	_, ok := validCategories[value]
	return ok
}

type SEO struct {
	MetaTitle       string   `bson:"metaTitle,omitempty" json:"metaTitle,omitempty"`
	MetaDescription string   `bson:"metaDescription,omitempty" json:"metaDescription,omitempty"`
	Keywords        []string `bson:"keywords,omitempty" json:"keywords,omitempty"`
}

type Template struct {
	ID               string    `bson:"_id,omitempty" json:"id"`
	Title            string    `bson:"title" json:"title"`
	Slug             string    `bson:"slug" json:"slug"`
	Description      string    `bson:"description" json:"description"`
	ShortDescription string    `bson:"shortDescription" json:"shortDescription"`
	FeaturedImage    string    `bson:"featuredImage" json:"featuredImage"`
	Images           []string  `bson:"images,omitempty" json:"images,omitempty"`
	PreviewURL       string    `bson:"previewUrl,omitempty" json:"previewUrl,omitempty"`
	Price            float64   `bson:"price" json:"price"`
	SalePrice        float64   `bson:"salePrice,omitempty" json:"salePrice,omitempty"`
	Category         string    `bson:"category" json:"category"`
	Platform         string    `bson:"platform" json:"platform"`
	Features         []string  `bson:"features,omitempty" json:"features,omitempty"`
	StripeProductID  string    `bson:"stripeProductId,omitempty" json:"stripeProductId,omitempty"`
	StripePriceID    string    `bson:"stripePriceId,omitempty" json:"stripePriceId,omitempty"`
	DownloadURL      string    `bson:"downloadUrl,omitempty" json:"downloadUrl,omitempty"`
	Featured         bool      `bson:"featured" json:"featured"`
	Order            int       `bson:"order" json:"order"`
	SEO              *SEO      `bson:"seo,omitempty" json:"seo,omitempty"`
	IsPublished      bool      `bson:"isPublished" json:"isPublished"`
	SalesCount       int64     `bson:"salesCount" json:"salesCount"`
	CreatedAt        time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time `bson:"updatedAt" json:"updatedAt"`
}

type CreateRequest struct {
	Title            string   `json:"title" validate:"required"`
	Description      string   `json:"description" validate:"required"`
	ShortDescription string   `json:"shortDescription" validate:"required,max=200"`
	FeaturedImage    string   `json:"featuredImage" validate:"required"`
	Images           []string `json:"images"`
	PreviewURL       string   `json:"previewUrl" validate:"omitempty,url"`
	Price            *float64 `json:"price" validate:"required,gt=0"`
	SalePrice        *float64 `json:"salePrice" validate:"omitempty,gt=0"`
	Category         string   `json:"category" validate:"omitempty,oneof=apartment auto-dealer business ecommerce portfolio other"`
	Platform         string   `json:"platform" validate:"required,oneof=wordpress webflow shopify wix squarespace react"`
	Features         []string `json:"features"`
	DownloadURL      string   `json:"downloadUrl" validate:"omitempty,url"`
	Featured         *bool    `json:"featured"`
	Order            *int     `json:"order"`
	SEO              *SEO     `json:"seo"`
	IsPublished      *bool    `json:"isPublished"`
}

// UpdateRequest merges the present fields only. Slug and salesCount are not
// client-writable: the slug is derived once at creation, the counter only
// moves through the verified checkout completion.
type UpdateRequest struct {
	Title            *string  `json:"title" validate:"omitempty,min=1"`
	Description      *string  `json:"description" validate:"omitempty,min=1"`
	ShortDescription *string  `json:"shortDescription" validate:"omitempty,min=1,max=200"`
	FeaturedImage    *string  `json:"featuredImage" validate:"omitempty,min=1"`
	Images           []string `json:"images"`
	PreviewURL       *string  `json:"previewUrl" validate:"omitempty,url"`
	Price            *float64 `json:"price" validate:"omitempty,gt=0"`
	SalePrice        *float64 `json:"salePrice" validate:"omitempty,gte=0"`
	Category         *string  `json:"category" validate:"omitempty,oneof=apartment auto-dealer business ecommerce portfolio other"`
	Platform         *string  `json:"platform" validate:"omitempty,oneof=wordpress webflow shopify wix squarespace react"`
	Features         []string `json:"features"`
	DownloadURL      *string  `json:"downloadUrl" validate:"omitempty,url"`
	Featured         *bool    `json:"featured"`
	Order            *int     `json:"order"`
	SEO              *SEO     `json:"seo"`
	IsPublished      *bool    `json:"isPublished"`
}

type PublicListFilter struct {
	Category string
	Platform string
	Featured bool
}

type AdminListFilter struct {
	Category string
	Platform string
}
