package contacts

import "time"

const (
	StatusNew        = "new"
	StatusContacted  = "contacted"
	StatusQualified  = "qualified"
	StatusProposal   = "proposal"
	StatusClosedWon  = "closed-won"
	StatusClosedLost = "closed-lost"

	ProjectTypeNewWebsite  = "new-website"
	ProjectTypeRedesign    = "redesign"
	ProjectTypeEcommerce   = "ecommerce"
	ProjectTypeSEO         = "seo"
	ProjectTypeMaintenance = "maintenance"
	ProjectTypeOther       = "other"

	BudgetUnder5k = "under-5k"
	Budget5kTo10k = "5k-10k"
	Budget10To25k = "10k-25k"
	Budget25kPlus = "25k-plus"
	BudgetNotSure = "not-sure"

	SourceWebsite = "website"
)

var validStatuses = map[string]struct{}{
	StatusNew:        {},
	StatusContacted:  {},
	StatusQualified:  {},
	StatusProposal:   {},
	StatusClosedWon:  {},
	StatusClosedLost: {},
}

func IsValidStatus(value string) bool {
	_, ok := validStatuses[value]
	return ok
}

type Contact struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	Name          string    `bson:"name" json:"name"`
	Email         string    `bson:"email" json:"email"`
	Phone         string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Company       string    `bson:"company,omitempty" json:"company,omitempty"`
	ProjectType   string    `bson:"projectType" json:"projectType"`
	Budget        string    `bson:"budget" json:"budget"`
	Timeline      string    `bson:"timeline,omitempty" json:"timeline,omitempty"`
	Message       string    `bson:"message" json:"message"`
	PreferredDate string    `bson:"preferredDate,omitempty" json:"preferredDate,omitempty"`
	PreferredTime string    `bson:"preferredTime,omitempty" json:"preferredTime,omitempty"`
	Source        string    `bson:"source" json:"source"`
	Status        string    `bson:"status" json:"status"`
	Notes         string    `bson:"notes,omitempty" json:"notes,omitempty"`
	IsRead        bool      `bson:"isRead" json:"isRead"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

type SubmitRequest struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"omitempty,phone"`
	Company       string `json:"company"`
	ProjectType   string `json:"projectType" validate:"omitempty,oneof=new-website redesign ecommerce seo maintenance other"`
	Budget        string `json:"budget" validate:"omitempty,oneof=under-5k 5k-10k 10k-25k 25k-plus not-sure"`
	Timeline      string `json:"timeline"`
	Message       string `json:"message" validate:"required"`
	PreferredDate string `json:"preferredDate" validate:"omitempty,date"`
	PreferredTime string `json:"preferredTime" validate:"omitempty,clock"`
	Source        string `json:"source"`
}

type AdminUpdateRequest struct {
	Status *string `json:"status" validate:"omitempty,oneof=new contacted qualified proposal closed-won closed-lost"`
	Notes  *string `json:"notes"`
}

type ListFilter struct {
	Status string
}

type Stats struct {
	Total       int64            `json:"total"`
	NewCount    int64            `json:"newCount"`
	UnreadCount int64            `json:"unreadCount"`
	ByStatus    map[string]int64 `json:"byStatus"`
}
