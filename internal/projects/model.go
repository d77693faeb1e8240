package projects

import "time"

const (
	CategoryWebsite   = "website"
	CategoryEcommerce = "ecommerce"
	CategoryWebapp    = "webapp"
	CategoryRedesign  = "redesign"
)

var validCategories = map[string]struct{}{
	CategoryWebsite:   {},
	CategoryEcommerce: {},
	CategoryWebapp:    {},
	CategoryRedesign:  {},
}

func IsValidCategory(value string) bool {
	_, ok := validCategories[value]
	return ok
}

// SEO is the optional metadata sub-document shared by the content entities.
type SEO struct {
	MetaTitle       string   `bson:"metaTitle,omitempty" json:"metaTitle,omitempty"`
	MetaDescription string   `bson:"metaDescription,omitempty" json:"metaDescription,omitempty"`
	Keywords        []string `bson:"keywords,omitempty" json:"keywords,omitempty"`
}

type Project struct {
	ID               string    `bson:"_id,omitempty" json:"id"`
	Title            string    `bson:"title" json:"title"`
	Slug             string    `bson:"slug" json:"slug"`
	Description      string    `bson:"description" json:"description"`
	ShortDescription string    `bson:"shortDescription" json:"shortDescription"`
	FeaturedImage    string    `bson:"featuredImage" json:"featuredImage"`
	Images           []string  `bson:"images,omitempty" json:"images,omitempty"`
	LiveURL          string    `bson:"liveUrl,omitempty" json:"liveUrl,omitempty"`
	Technologies     []string  `bson:"technologies,omitempty" json:"technologies,omitempty"`
	Category         string    `bson:"category" json:"category"`
	Client           string    `bson:"client,omitempty" json:"client,omitempty"`
	CompletedDate    string    `bson:"completedDate,omitempty" json:"completedDate,omitempty"`
	Featured         bool      `bson:"featured" json:"featured"`
	Order            int       `bson:"order" json:"order"`
	SEO              *SEO      `bson:"seo,omitempty" json:"seo,omitempty"`
	IsPublished      bool      `bson:"isPublished" json:"isPublished"`
	CreatedAt        time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time `bson:"updatedAt" json:"updatedAt"`
}

type CreateRequest struct {
	Title            string   `json:"title" validate:"required"`
	Description      string   `json:"description" validate:"required"`
	ShortDescription string   `json:"shortDescription" validate:"required,max=200"`
	FeaturedImage    string   `json:"featuredImage" validate:"required"`
	Images           []string `json:"images"`
	LiveURL          string   `json:"liveUrl" validate:"omitempty,url"`
	Technologies     []string `json:"technologies"`
	Category         string   `json:"category" validate:"omitempty,oneof=website ecommerce webapp redesign"`
	Client           string   `json:"client"`
	CompletedDate    string   `json:"completedDate" validate:"omitempty,date"`
	Featured         *bool    `json:"featured"`
	Order            *int     `json:"order"`
	SEO              *SEO     `json:"seo"`
	IsPublished      *bool    `json:"isPublished"`
}

// UpdateRequest is a partial merge; absent fields are left untouched. The
// slug is deliberately not re-derived when the title changes.
type UpdateRequest struct {
	Title            *string  `json:"title" validate:"omitempty,min=1"`
	Description      *string  `json:"description" validate:"omitempty,min=1"`
	ShortDescription *string  `json:"shortDescription" validate:"omitempty,min=1,max=200"`
	FeaturedImage    *string  `json:"featuredImage" validate:"omitempty,min=1"`
	Images           []string `json:"images"`
	LiveURL          *string  `json:"liveUrl" validate:"omitempty,url"`
	Technologies     []string `json:"technologies"`
	Category         *string  `json:"category" validate:"omitempty,oneof=website ecommerce webapp redesign"`
	Client           *string  `json:"client"`
	CompletedDate    *string  `json:"completedDate" validate:"omitempty,date"`
	Featured         *bool    `json:"featured"`
	Order            *int     `json:"order"`
	SEO              *SEO     `json:"seo"`
	IsPublished      *bool    `json:"isPublished"`
}

type PublicListFilter struct {
	Category string
	Featured bool
}

type AdminListFilter struct {
	Category string
}
