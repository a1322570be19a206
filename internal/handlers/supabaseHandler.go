package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"dashformance/leads-api/internal/dto"
	"dashformance/leads-api/internal/normalize"

	"github.com/sirupsen/logrus"
	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"
)

const (
	// supabasePageSize is the row window of paginated reads
	supabasePageSize = 1000
	// emailChunkSize bounds the ilike terms of one OR filter
	emailChunkSize = 50
)

// SupabaseHandler stores leads through the Supabase PostgREST API.
// PostgREST calls carry no context; ctx is only checked before each call.
type SupabaseHandler struct {
	client *supabase.Client
	table  string
	log    *logrus.Entry
}

// NewSupabaseHandler creates a new SupabaseHandler instance
// url is the Supabase project URL (e.g., "https://xxx.supabase.co")
// key is the Supabase service role key
func NewSupabaseHandler(url, key, table string, logger *logrus.Logger) (*SupabaseHandler, error) {
	if url == "" {
		return nil, fmt.Errorf("supabase URL is required")
	}
	if key == "" {
		return nil, fmt.Errorf("supabase key is required")
	}
	if table == "" {
		table = "leads"
	}

	log := logger.WithField("component", "SupabaseHandler")
	log.WithField("url", url).Info("[SupabaseHandler] Initializing")

	client, err := supabase.NewClient(url, key, &supabase.ClientOptions{})
	if err != nil {
		log.WithError(err).Error("[SupabaseHandler] Failed to create client")
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}

	return &SupabaseHandler{
		client: client,
		table:  table,
		log:    log,
	}, nil
}

func (h *SupabaseHandler) from() *postgrest.QueryBuilder {
	return h.client.From(h.table)
}

func (h *SupabaseHandler) active(columns string) *postgrest.FilterBuilder {
	return h.from().Select(columns, "", false).Is("deletedAt", "null")
}

// CreateLead inserts one lead
func (h *SupabaseHandler) CreateLead(ctx context.Context, lead *dto.Lead) (*dto.Lead, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, _, err := h.from().Insert(lead, false, "", "representation", "").Execute()
	if err != nil {
		return nil, mapPostgrestError(err)
	}
	leads, err := decodeLeads(data)
	if err != nil {
		return nil, err
	}
	if len(leads) == 0 {
		return lead, nil
	}
	return &leads[0], nil
}

// UpsertLeadsByCNPJ inserts new cnpjs and refreshes existing ones, clearing deletedAt
func (h *SupabaseHandler) UpsertLeadsByCNPJ(ctx context.Context, leads []dto.Lead) (int, error) {
	if len(leads) == 0 {
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	cnpjs := make([]string, 0, len(leads))
	for _, lead := range leads {
		if lead.CNPJ == nil {
			return 0, fmt.Errorf("lead %s has no cnpj", lead.ID)
		}
		cnpjs = append(cnpjs, *lead.CNPJ)
	}

	existing := make(map[string]string, len(cnpjs))
	for chunk := range slices.Chunk(cnpjs, inChunkSize) {
		data, _, err := h.from().Select("id,cnpj", "", false).In("cnpj", chunk).Execute()
		if err != nil {
			return 0, mapPostgrestError(err)
		}
		var rows []struct {
			ID   string `json:"id"`
			CNPJ string `json:"cnpj"`
		}
		if err := json.Unmarshal(data, &rows); err != nil {
			return 0, fmt.Errorf("failed to parse query response: %w", err)
		}
		for _, row := range rows {
			existing[row.CNPJ] = row.ID
		}
	}

	var inserts []dto.Lead
	var refreshes []map[string]interface{}
	for _, lead := range leads {
		if id, ok := existing[*lead.CNPJ]; ok {
			refreshes = append(refreshes, refreshPayload(id, lead))
			continue
		}
		lead.DeletedAt = nil
		inserts = append(inserts, lead)
	}

	if len(inserts) > 0 {
		if _, _, err := h.from().Upsert(inserts, "cnpj", "minimal", "").Execute(); err != nil {
			return 0, mapPostgrestError(err)
		}
	}
	if len(refreshes) > 0 {
		if _, _, err := h.from().Upsert(refreshes, "cnpj", "minimal", "").Execute(); err != nil {
			return len(inserts), mapPostgrestError(err)
		}
	}

	h.log.WithFields(logrus.Fields{
		"inserted":  len(inserts),
		"refreshed": len(refreshes),
	}).Debug("[SupabaseHandler] Upsert by cnpj complete")
	return len(leads), nil
}

// GetLead returns a lead by id
func (h *SupabaseHandler) GetLead(ctx context.Context, id string) (*dto.Lead, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, _, err := h.from().Select("*", "", false).Eq("id", id).Execute()
	if err != nil {
		return nil, mapPostgrestError(err)
	}
	return firstLead(data)
}

// ListLeads pages active leads, newest first
func (h *SupabaseHandler) ListLeads(ctx context.Context, offset, limit int) ([]dto.Lead, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, _, err := h.active("*").
		Order("date_added", &postgrest.OrderOpts{Ascending: false}).
		Range(offset, offset+limit-1, "").
		Execute()
	if err != nil {
		return nil, mapPostgrestError(err)
	}
	return decodeLeads(data)
}

// ListActiveLeads returns every active lead, oldest first
func (h *SupabaseHandler) ListActiveLeads(ctx context.Context) ([]dto.Lead, error) {
	var all []dto.Lead
	err := h.paginate(ctx, func(from, to int) *postgrest.FilterBuilder {
		return h.active("*").
			Order("date_added", &postgrest.OrderOpts{Ascending: true}).
			Order("id", &postgrest.OrderOpts{Ascending: true}).
			Range(from, to, "")
	}, func(data []byte) (int, error) {
		leads, err := decodeLeads(data)
		all = append(all, leads...)
		return len(leads), err
	})
	return all, err
}

// ListActiveLeadIDs returns the ids of active leads matching filter, oldest first
func (h *SupabaseHandler) ListActiveLeadIDs(ctx context.Context, filter dto.LeadFilter) ([]string, error) {
	var ids []string
	err := h.paginate(ctx, func(from, to int) *postgrest.FilterBuilder {
		return withFilter(h.active("id"), filter).
			Order("date_added", &postgrest.OrderOpts{Ascending: true}).
			Order("id", &postgrest.OrderOpts{Ascending: true}).
			Range(from, to, "")
	}, func(data []byte) (int, error) {
		var rows []struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(data, &rows); err != nil {
			return 0, fmt.Errorf("failed to parse query response: %w", err)
		}
		for _, row := range rows {
			ids = append(ids, row.ID)
		}
		return len(rows), nil
	})
	return ids, err
}

// CountActiveLeads counts active leads matching filter
func (h *SupabaseHandler) CountActiveLeads(ctx context.Context, filter dto.LeadFilter) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	query := h.from().Select("id", "exact", true).Is("deletedAt", "null")
	_, count, err := withFilter(query, filter).Execute()
	if err != nil {
		return 0, mapPostgrestError(err)
	}
	return int(count), nil
}

// ListTrashedLeads returns soft-deleted leads, most recently deleted first
func (h *SupabaseHandler) ListTrashedLeads(ctx context.Context) ([]dto.Lead, error) {
	var all []dto.Lead
	err := h.paginate(ctx, func(from, to int) *postgrest.FilterBuilder {
		return h.from().Select("*", "", false).
			Not("deletedAt", "is", "null").
			Order("deletedAt", &postgrest.OrderOpts{Ascending: false}).
			Range(from, to, "")
	}, func(data []byte) (int, error) {
		leads, err := decodeLeads(data)
		all = append(all, leads...)
		return len(leads), err
	})
	return all, err
}

// UpdateLead patches one lead and returns it
func (h *SupabaseHandler) UpdateLead(ctx context.Context, id string, patch dto.LeadPatch) (*dto.Lead, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkPatch(patch); err != nil {
		return nil, err
	}

	data, _, err := h.from().Update(patch, "representation", "").Eq("id", id).Execute()
	if err != nil {
		return nil, mapPostgrestError(err)
	}
	return firstLead(data)
}

// UpdateLeads applies the same patch to many leads
func (h *SupabaseHandler) UpdateLeads(ctx context.Context, ids []string, patch dto.LeadPatch) (int, error) {
	if err := checkPatch(patch); err != nil {
		return 0, err
	}

	updated := 0
	for chunk := range slices.Chunk(ids, inChunkSize) {
		if err := ctx.Err(); err != nil {
			return updated, err
		}
		data, _, err := h.from().Update(patch, "representation", "").In("id", chunk).Execute()
		if err != nil {
			return updated, mapPostgrestError(err)
		}
		var rows []struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(data, &rows); err != nil {
			return updated, fmt.Errorf("failed to parse update response: %w", err)
		}
		updated += len(rows)
	}

	h.log.WithFields(logrus.Fields{"ids": len(ids), "updated": updated}).Debug("[SupabaseHandler] Batch update complete")
	return updated, nil
}

// SetLeadsDeleted soft-deletes or restores many leads
func (h *SupabaseHandler) SetLeadsDeleted(ctx context.Context, ids []string, deletedAt *time.Time) (int, error) {
	var value interface{}
	if deletedAt != nil {
		value = deletedAt.UTC()
	}
	return h.UpdateLeads(ctx, ids, dto.LeadPatch{"deletedAt": value})
}

// HardDeleteLead removes a lead row
func (h *SupabaseHandler) HardDeleteLead(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, _, err := h.from().Delete("representation", "").Eq("id", id).Execute()
	if err != nil {
		return mapPostgrestError(err)
	}
	_, err = firstLead(data)
	return err
}

// ExistingCNPJs returns which of cnpjs belong to active leads
func (h *SupabaseHandler) ExistingCNPJs(ctx context.Context, cnpjs []string) (map[string]struct{}, error) {
	found := make(map[string]struct{})
	for chunk := range slices.Chunk(cnpjs, inChunkSize) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, _, err := h.active("cnpj").In("cnpj", chunk).Execute()
		if err != nil {
			return nil, mapPostgrestError(err)
		}
		var rows []struct {
			CNPJ string `json:"cnpj"`
		}
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, fmt.Errorf("failed to parse query response: %w", err)
		}
		for _, row := range rows {
			found[row.CNPJ] = struct{}{}
		}
	}
	return found, nil
}

// ExistingEmails returns which of the normalized emails belong to active leads.
// ilike treats _ as a wildcard, so matches are confirmed client side.
func (h *SupabaseHandler) ExistingEmails(ctx context.Context, emails []string) (map[string]struct{}, error) {
	wanted := make(map[string]bool, len(emails))
	for _, email := range emails {
		wanted[normalize.Email(email)] = true
	}

	found := make(map[string]struct{})
	for chunk := range slices.Chunk(emails, emailChunkSize) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		terms := make([]string, 0, len(chunk))
		for _, email := range chunk {
			terms = append(terms, "email.ilike."+quoteFilterValue(normalize.Email(email)))
		}

		data, _, err := h.active("email").Or(strings.Join(terms, ","), "").Execute()
		if err != nil {
			return nil, mapPostgrestError(err)
		}
		var rows []struct {
			Email *string `json:"email"`
		}
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, fmt.Errorf("failed to parse query response: %w", err)
		}
		for _, row := range rows {
			if row.Email == nil {
				continue
			}
			if key := normalize.Email(*row.Email); wanted[key] {
				found[key] = struct{}{}
			}
		}
	}
	return found, nil
}

// ActivePhones returns the phone of every active lead that has one
func (h *SupabaseHandler) ActivePhones(ctx context.Context) ([]string, error) {
	var phones []string
	err := h.paginate(ctx, func(from, to int) *postgrest.FilterBuilder {
		return h.active("phone").
			Not("phone", "is", "null").
			Order("id", &postgrest.OrderOpts{Ascending: true}).
			Range(from, to, "")
	}, func(data []byte) (int, error) {
		var rows []struct {
			Phone *string `json:"phone"`
		}
		if err := json.Unmarshal(data, &rows); err != nil {
			return 0, fmt.Errorf("failed to parse query response: %w", err)
		}
		for _, row := range rows {
			if row.Phone != nil {
				phones = append(phones, *row.Phone)
			}
		}
		return len(rows), nil
	})
	return phones, err
}

// paginate runs query over consecutive row windows until a short page is returned
func (h *SupabaseHandler) paginate(ctx context.Context, query func(from, to int) *postgrest.FilterBuilder, consume func([]byte) (int, error)) error {
	for from := 0; ; from += supabasePageSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, _, err := query(from, from+supabasePageSize-1).Execute()
		if err != nil {
			return mapPostgrestError(err)
		}
		n, err := consume(data)
		if err != nil {
			return err
		}
		if n < supabasePageSize {
			return nil
		}
	}
}

func withFilter(query *postgrest.FilterBuilder, filter dto.LeadFilter) *postgrest.FilterBuilder {
	if filter.Owner != nil {
		query = query.Eq("owner", *filter.Owner)
	}
	if filter.Unassigned {
		query = query.Or("owner.is.null,owner.eq.", "")
	}
	return query
}

func firstLead(data []byte) (*dto.Lead, error) {
	leads, err := decodeLeads(data)
	if err != nil {
		return nil, err
	}
	if len(leads) == 0 {
		return nil, dto.ErrLeadNotFound
	}
	return &leads[0], nil
}

// quoteFilterValue wraps a value for use inside a PostgREST logic filter
func quoteFilterValue(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `"`, `\"`)
	return `"` + v + `"`
}

// mapPostgrestError translates PostgREST failures into store errors.
// postgrest-go reports API errors as "(CODE) message".
func mapPostgrestError(err error) error {
	if err == nil {
		return nil
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "(23505)"):
		return fmt.Errorf("%w: %s", dto.ErrLeadConflict, msg)
	case strings.Contains(msg, "(PGRST116)"):
		return dto.ErrLeadNotFound
	case strings.Contains(msg, "(PGRST000)"), strings.Contains(msg, "(PGRST001)"), strings.Contains(msg, "(PGRST002)"):
		return fmt.Errorf("%w: %s", dto.ErrDatabaseUnavailable, msg)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%w: %v", dto.ErrDatabaseUnavailable, err)
	}
	return fmt.Errorf("supabase query failed: %w", err)
}
