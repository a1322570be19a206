package handlers

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"dashformance/leads-api/internal/dto"
)

// inChunkSize bounds the values of one IN filter
const inChunkSize = 200

// refreshColumns are overwritten when an upsert hits an existing cnpj.
// Ownership, priority and contact history are left as they are.
var refreshColumns = []string{
	"company_name", "trade_name", "phone", "email", "status", "notes",
	"extra_info", "source", "uf", "city", "score",
}

// patchColumns are the columns a LeadPatch may write
var patchColumns = map[string]bool{
	"company_name":       true,
	"trade_name":         true,
	"cnpj":               true,
	"phone":              true,
	"email":              true,
	"instagram_url":      true,
	"website_url":        true,
	"render_quality":     true,
	"decision_maker":     true,
	"extra_info":         true,
	"status":             true,
	"priority":           true,
	"score":              true,
	"first_contact_date": true,
	"last_contact_date":  true,
	"next_followup_date": true,
	"notes":              true,
	"owner":              true,
	"uf":                 true,
	"city":               true,
	"deletedAt":          true,
}

// checkPatch rejects columns outside patchColumns
func checkPatch(patch dto.LeadPatch) error {
	for column := range patch {
		if !patchColumns[column] {
			return fmt.Errorf("column %q cannot be updated", column)
		}
	}
	return nil
}

// refreshPayload is the PostgREST body that refreshes an existing row
func refreshPayload(id string, lead dto.Lead) map[string]interface{} {
	return map[string]interface{}{
		"id":           id,
		"cnpj":         lead.CNPJ,
		"company_name": lead.CompanyName,
		"trade_name":   lead.TradeName,
		"phone":        lead.Phone,
		"email":        lead.Email,
		"status":       lead.Status,
		"notes":        lead.Notes,
		"extra_info":   lead.ExtraInfo,
		"source":       lead.Source,
		"uf":           lead.UF,
		"city":         lead.City,
		"score":        lead.Score,
		"deletedAt":    nil,
	}
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
}

// rowTime decodes timestamps with or without a zone; zoneless values are UTC
type rowTime struct {
	time.Time
}

func (t *rowTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

func (t *rowTime) ptr() *time.Time {
	if t == nil {
		return nil
	}
	v := t.Time
	return &v
}

// leadRow is a lead as PostgREST returns it
type leadRow struct {
	dto.Lead
	FirstContactDate *rowTime `json:"first_contact_date"`
	LastContactDate  *rowTime `json:"last_contact_date"`
	NextFollowupDate *rowTime `json:"next_followup_date"`
	DateAdded        rowTime  `json:"date_added"`
	DeletedAt        *rowTime `json:"deletedAt"`
}

func (r leadRow) lead() dto.Lead {
	lead := r.Lead
	lead.FirstContactDate = r.FirstContactDate.ptr()
	lead.LastContactDate = r.LastContactDate.ptr()
	lead.NextFollowupDate = r.NextFollowupDate.ptr()
	lead.DateAdded = r.DateAdded.Time
	lead.DeletedAt = r.DeletedAt.ptr()
	if lead.ExtraInfo == nil {
		lead.ExtraInfo = map[string]interface{}{}
	}
	return lead
}

// decodeLeads parses a PostgREST array of lead rows
func decodeLeads(data []byte) ([]dto.Lead, error) {
	var rows []leadRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse query response: %w", err)
	}
	leads := make([]dto.Lead, 0, len(rows))
	for _, row := range rows {
		leads = append(leads, row.lead())
	}
	return leads, nil
}
