package services

import (
	"context"
	"time"

	"dashformance/leads-api/internal/dto"
)

// LeadStore persists leads. "Active" means deletedAt is null.
// Implementations map missing rows to dto.ErrLeadNotFound, unique violations
// to dto.ErrLeadConflict and connection failures to dto.ErrDatabaseUnavailable.
type LeadStore interface {
	CreateLead(ctx context.Context, lead *dto.Lead) (*dto.Lead, error)
	// UpsertLeadsByCNPJ creates or refreshes leads keyed by cnpj in one
	// transaction, clearing deletedAt, and returns the number of rows written
	UpsertLeadsByCNPJ(ctx context.Context, leads []dto.Lead) (int, error)

	GetLead(ctx context.Context, id string) (*dto.Lead, error)
	// ListLeads pages active leads, newest first
	ListLeads(ctx context.Context, offset, limit int) ([]dto.Lead, error)
	// ListActiveLeads returns every active lead, oldest first
	ListActiveLeads(ctx context.Context) ([]dto.Lead, error)
	// ListActiveLeadIDs returns the ids of active leads matching filter, oldest first
	ListActiveLeadIDs(ctx context.Context, filter dto.LeadFilter) ([]string, error)
	CountActiveLeads(ctx context.Context, filter dto.LeadFilter) (int, error)
	// ListTrashedLeads returns soft-deleted leads, most recently deleted first
	ListTrashedLeads(ctx context.Context) ([]dto.Lead, error)

	UpdateLead(ctx context.Context, id string, patch dto.LeadPatch) (*dto.Lead, error)
	UpdateLeads(ctx context.Context, ids []string, patch dto.LeadPatch) (int, error)
	// SetLeadsDeleted soft-deletes (deletedAt set) or restores (deletedAt nil) leads
	SetLeadsDeleted(ctx context.Context, ids []string, deletedAt *time.Time) (int, error)
	HardDeleteLead(ctx context.Context, id string) error

	// ExistingCNPJs returns which of cnpjs belong to active leads
	ExistingCNPJs(ctx context.Context, cnpjs []string) (map[string]struct{}, error)
	// ExistingEmails returns which of the normalized emails belong to active
	// leads, compared case-insensitively
	ExistingEmails(ctx context.Context, emails []string) (map[string]struct{}, error)
	// ActivePhones returns the raw phone of every active lead that has one
	ActivePhones(ctx context.Context) ([]string, error)
}

// CompanySearcher queries the company registry
type CompanySearcher interface {
	FetchPage(ctx context.Context, params dto.SearchParams, page int) (*dto.SearchPage, error)
	// FetchCompanyDetails never fails; an empty map means no enrichment
	FetchCompanyDetails(ctx context.Context, cnpj string) map[string]interface{}
	Configured() bool
}
