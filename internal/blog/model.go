package blog

import "time"

const (
	CategoryWebDevelopment = "web-development"
	CategoryUXDesign       = "ux-design"
	CategorySEO            = "seo"
	CategoryMarketing      = "marketing"
	CategoryTutorials      = "tutorials"
	CategoryNews           = "news"

	defaultAuthorName = "SilverFox Media"
)

var validCategories = map[string]struct{}{
	CategoryWebDevelopment: {},
	CategoryUXDesign:       {},
	CategorySEO:            {},
	CategoryMarketing:      {},
	CategoryTutorials:      {},
	CategoryNews:           {},
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

type Post struct {
	ID            string     `bson:"_id,omitempty" json:"id"`
	Title         string     `bson:"title" json:"title"`
	Slug          string     `bson:"slug" json:"slug"`
	Content       string     `bson:"content" json:"content"`
	Excerpt       string     `bson:"excerpt" json:"excerpt"`
	FeaturedImage string     `bson:"featuredImage,omitempty" json:"featuredImage,omitempty"`
	AuthorID      string     `bson:"author,omitempty" json:"author,omitempty"`
	AuthorName    string     `bson:"authorName" json:"authorName"`
	Category      string     `bson:"category" json:"category"`
	Tags          []string   `bson:"tags,omitempty" json:"tags,omitempty"`
	SEO           *SEO       `bson:"seo,omitempty" json:"seo,omitempty"`
	IsPublished   bool       `bson:"isPublished" json:"isPublished"`
	PublishedAt   *time.Time `bson:"publishedAt,omitempty" json:"publishedAt,omitempty"`
	Views         int64      `bson:"views" json:"views"`
	CreatedAt     time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time  `bson:"updatedAt" json:"updatedAt"`
}

type CreateRequest struct {
	Title         string   `json:"title" validate:"required"`
	Content       string   `json:"content" validate:"required"`
	Excerpt       string   `json:"excerpt" validate:"required,max=300"`
	FeaturedImage string   `json:"featuredImage"`
	AuthorName    string   `json:"authorName"`
	Category      string   `json:"category" validate:"omitempty,oneof=web-development ux-design seo marketing tutorials news"`
	Tags          []string `json:"tags"`
	SEO           *SEO     `json:"seo"`
	IsPublished   *bool    `json:"isPublished"`
}

type UpdateRequest struct {
	Title         *string  `json:"title" validate:"omitempty,min=1"`
	Content       *string  `json:"content" validate:"omitempty,min=1"`
	Excerpt       *string  `json:"excerpt" validate:"omitempty,min=1,max=300"`
	FeaturedImage *string  `json:"featuredImage"`
	AuthorName    *string  `json:"authorName"`
	Category      *string  `json:"category" validate:"omitempty,oneof=web-development ux-design seo marketing tutorials news"`
	Tags          []string `json:"tags"`
	SEO           *SEO     `json:"seo"`
	IsPublished   *bool    `json:"isPublished"`
}

type PublicListFilter struct {
	Category string
	Tag      string
}
