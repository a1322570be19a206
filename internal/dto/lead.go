package dto

import "time"

// Lead statuses
const (
	StatusInbox        = "INBOX"
	StatusScreening    = "SCREENING"
	StatusNew          = "NEW"
	StatusAttempted    = "ATTEMPTED"
	StatusContacted    = "CONTACTED"
	StatusMeeting      = "MEETING"
	StatusWon          = "WON"
	StatusLost         = "LOST"
	StatusDisqualified = "DISQUALIFIED"
)

// LeadStatuses lists every valid status value
var LeadStatuses = []string{
	StatusInbox, StatusScreening, StatusNew, StatusAttempted, StatusContacted,
	StatusMeeting, StatusWon, StatusLost, StatusDisqualified,
}

// RenderQualities lists every valid render_quality value
var RenderQualities = []string{"GOOD", "MEDIUM", "BAD"}

// Lead represents a row of the leads table
// @Description A prospective business contact
type Lead struct {
	ID               string                 `json:"id"`
	CompanyName      string                 `json:"company_name"`
	TradeName        *string                `json:"trade_name"`
	CNPJ             *string                `json:"cnpj"`
	Phone            *string                `json:"phone"`
	Email            *string                `json:"email"`
	InstagramURL     *string                `json:"instagram_url"`
	WebsiteURL       *string                `json:"website_url"`
	RenderQuality    *string                `json:"render_quality"`
	DecisionMaker    *string                `json:"decision_maker"`
	ExtraInfo        map[string]interface{} `json:"extra_info"`
	Status           string                 `json:"status"`
	Priority         int                    `json:"priority"`
	Score            int                    `json:"score"`
	Source           *string                `json:"source"`
	Notes            *string                `json:"notes"`
	Owner            *string                `json:"owner"`
	UF               *string                `json:"uf"`
	City             *string                `json:"city"`
	FirstContactDate *time.Time             `json:"first_contact_date"`
	LastContactDate  *time.Time             `json:"last_contact_date"`
	NextFollowupDate *time.Time             `json:"next_followup_date"`
	DateAdded        time.Time              `json:"date_added"`
	DeletedAt        *time.Time             `json:"deletedAt"`
}

// LeadInput is the create/import shape of a lead. Extraction candidates use
// the same shape so a reviewed preview can be posted back to /leads/batch.
// @Description Lead creation payload
type LeadInput struct {
	CompanyName      string                 `json:"company_name" example:"CONSTRUTORA EXEMPLO LTDA"`
	TradeName        string                 `json:"trade_name,omitempty"`
	CNPJ             string                 `json:"cnpj,omitempty" example:"12345678000199"`
	Phone            *string                `json:"phone"`
	Email            *string                `json:"email"`
	InstagramURL     *string                `json:"instagram_url,omitempty"`
	WebsiteURL       *string                `json:"website_url,omitempty"`
	RenderQuality    *string                `json:"render_quality,omitempty" binding:"omitempty,oneof=GOOD MEDIUM BAD"`
	DecisionMaker    *string                `json:"decision_maker,omitempty"`
	ExtraInfo        map[string]interface{} `json:"extra_info,omitempty"`
	Checklist        interface{}            `json:"checklist,omitempty"`
	Status           string                 `json:"status,omitempty" binding:"omitempty,oneof=INBOX SCREENING NEW ATTEMPTED CONTACTED MEETING WON LOST DISQUALIFIED"`
	Priority         *int                   `json:"priority,omitempty" binding:"omitempty,min=0,max=10"`
	Source           *string                `json:"source,omitempty"`
	Notes            *string                `json:"notes,omitempty"`
	Owner            *string                `json:"owner,omitempty"`
	UF               *string                `json:"uf,omitempty"`
	City             *string                `json:"city,omitempty"`
	FirstContactDate *time.Time             `json:"first_contact_date,omitempty"`
	LastContactDate  *time.Time             `json:"last_contact_date,omitempty"`
	NextFollowupDate *time.Time             `json:"next_followup_date,omitempty"`
}

// LeadPatch is a partial update keyed by column name
type LeadPatch map[string]interface{}

// LeadFilter narrows queries over active leads.
// A nil Owner with Unassigned=false matches every active lead.
type LeadFilter struct {
	Owner      *string
	Unassigned bool
}

// LeadListMeta carries pagination and owner counters for the leads table view
type LeadListMeta struct {
	Total           int            `json:"total"`
	OwnerTotals     map[string]int `json:"ownerTotals"`
	UnassignedTotal int            `json:"unassignedTotal"`
	Page            int            `json:"page"`
	LastPage        int            `json:"last_page"`
}

// LeadListResponse is a page of active leads
type LeadListResponse struct {
	Data []Lead       `json:"data"`
	Meta LeadListMeta `json:"meta"`
}

// IDsRequest carries a list of lead ids for batch operations
type IDsRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

// BatchUpdateRequest applies the same patch to many leads
type BatchUpdateRequest struct {
	IDs  []string               `json:"ids" binding:"required,min=1"`
	Data map[string]interface{} `json:"data" binding:"required"`
}

// CountResponse reports how many rows an operation touched
type CountResponse struct {
	Count int `json:"count"`
}

// CleanupResult is the outcome of a duplicate cleanup run
type CleanupResult struct {
	DeletedCount int      `json:"deletedCount"`
	IDs          []string `json:"ids"`
}

// DivideRequest asks for the active leads in a scope to be split between the two owners.
// joaoCount is accepted for older clients.
type DivideRequest struct {
	PrimaryCount *int   `json:"primaryCount" binding:"omitempty,min=0"`
	JoaoCount    *int   `json:"joaoCount" binding:"omitempty,min=0"`
	SourceOwner  string `json:"sourceOwner" example:"unassigned"`
}

// DivideResult reports how a division assigned leads
type DivideResult struct {
	PrimaryOwner   string `json:"primaryOwner"`
	PrimaryCount   int    `json:"primaryCount"`
	SecondaryOwner string `json:"secondaryOwner"`
	SecondaryCount int    `json:"secondaryCount"`
	Total          int    `json:"total"`
}
