package services

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"dashformance/leads-api/internal/dto"
	"dashformance/leads-api/internal/normalize"

	"github.com/google/uuid"
)

// updatableFields is the allowlist of columns a patch may touch
var updatableFields = map[string]bool{
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
	"first_contact_date": true,
	"last_contact_date":  true,
	"next_followup_date": true,
	"notes":              true,
	"owner":              true,
	"uf":                 true,
	"city":               true,
}

// nullableTextFields are stored as NULL when blank, "-" or "--"
var nullableTextFields = []string{
	"cnpj", "phone", "email", "instagram_url", "website_url", "render_quality",
	"decision_maker", "notes", "owner", "uf", "city",
}

var dateFields = []string{"first_contact_date", "last_contact_date", "next_followup_date"}

// scoreFields are the patch keys that change the derived score
var scoreFields = []string{"instagram_url", "website_url", "render_quality", "extra_info"}

// ManualCNPJ builds the placeholder registry id of a lead created without one
func ManualCNPJ(now time.Time) string {
	return fmt.Sprintf("MANUAL-%d-%d", now.UnixMilli(), rand.IntN(1000))
}

// SanitizeForCreate turns a create payload into a new lead row
func SanitizeForCreate(in dto.LeadInput, now time.Time) dto.Lead {
	lead := dto.Lead{
		ID:               uuid.New().String(),
		CompanyName:      strings.TrimSpace(in.CompanyName),
		TradeName:        normalize.NullIfEmpty(in.TradeName),
		CNPJ:             normalize.NullIfEmpty(in.CNPJ),
		Phone:            normalize.NullIfEmptyPtr(in.Phone),
		Email:            normalize.NullIfEmptyPtr(in.Email),
		InstagramURL:     normalize.NullIfEmptyPtr(in.InstagramURL),
		WebsiteURL:       normalize.NullIfEmptyPtr(in.WebsiteURL),
		RenderQuality:    normalize.NullIfEmptyPtr(in.RenderQuality),
		DecisionMaker:    normalize.NullIfEmptyPtr(in.DecisionMaker),
		Status:           in.Status,
		Source:           normalize.NullIfEmptyPtr(in.Source),
		Notes:            normalize.NullIfEmptyPtr(in.Notes),
		Owner:            normalize.NullIfEmptyPtr(in.Owner),
		UF:               normalize.NullIfEmptyPtr(in.UF),
		City:             normalize.NullIfEmptyPtr(in.City),
		FirstContactDate: in.FirstContactDate,
		LastContactDate:  in.LastContactDate,
		NextFollowupDate: in.NextFollowupDate,
		DateAdded:        now.UTC(),
	}

	if lead.Status == "" {
		lead.Status = dto.StatusNew
	}
	if in.Priority != nil {
		lead.Priority = *in.Priority
	}
	if lead.CNPJ == nil {
		manual := ManualCNPJ(now)
		lead.CNPJ = &manual
	}

	lead.ExtraInfo = map[string]interface{}{}
	for k, v := range in.ExtraInfo {
		lead.ExtraInfo[k] = v
	}
	if in.Checklist != nil {
		lead.ExtraInfo["checklist"] = in.Checklist
	}

	lead.Score = CalculateScore(&lead)
	return lead
}

// SanitizeForUpdate keeps the allowlisted keys of a patch, normalizes their
// values and rejects values of the wrong shape
func SanitizeForUpdate(data map[string]interface{}) (dto.LeadPatch, error) {
	patch := dto.LeadPatch{}
	verr := &dto.ValidationError{}

	for key, value := range data {
		if updatableFields[key] {
			patch[key] = value
		}
	}

	for _, key := range nullableTextFields {
		value, ok := patch[key]
		if !ok || value == nil {
			continue
		}
		s, isString := value.(string)
		if !isString {
			verr.Add(key, "must be a string or null")
			delete(patch, key)
			continue
		}
		if v := normalize.NullIfEmpty(s); v != nil {
			patch[key] = *v
		} else {
			patch[key] = nil
		}
	}

	for _, key := range []string{"company_name", "trade_name"} {
		value, ok := patch[key]
		if !ok || value == nil {
			continue
		}
		s, isString := value.(string)
		if !isString {
			verr.Add(key, "must be a string")
			continue
		}
		patch[key] = strings.TrimSpace(s)
	}

	if value, ok := patch["status"]; ok {
		s, isString := value.(string)
		if !isString || !slices.Contains(dto.LeadStatuses, s) {
			verr.Add("status", "must be one of "+strings.Join(dto.LeadStatuses, ", "))
		}
	}

	if value, ok := patch["render_quality"]; ok && value != nil {
		if !slices.Contains(dto.RenderQualities, value.(string)) {
			verr.Add("render_quality", "must be one of GOOD, MEDIUM, BAD")
		}
	}

	if value, ok := patch["priority"]; ok {
		priority, valid := toInt(value)
		if !valid || priority < 0 || priority > 10 {
			verr.Add("priority", "must be an integer between 0 and 10")
		} else {
			patch["priority"] = priority
		}
	}

	for _, key := range dateFields {
		value, ok := patch[key]
		if !ok || value == nil {
			continue
		}
		s, isString := value.(string)
		if !isString {
			verr.Add(key, "must be a date string or null")
			continue
		}
		if strings.TrimSpace(s) == "" {
			patch[key] = nil
			continue
		}
		t, err := ParseDate(s)
		if err != nil {
			verr.Add(key, "must be RFC3339 or YYYY-MM-DD")
			continue
		}
		patch[key] = t
	}

	if value, ok := patch["extra_info"]; ok && value != nil {
		if _, isObject := value.(map[string]interface{}); !isObject {
			verr.Add("extra_info", "must be an object")
		}
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return patch, nil
}

// ParseDate accepts RFC3339 timestamps and plain dates
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func touchesScore(patch dto.LeadPatch) bool {
	for _, key := range scoreFields {
		if _, ok := patch[key]; ok {
			return true
		}
	}
	return false
}

// applyPatch returns a copy of lead with the score-relevant fields of patch applied
func applyPatch(lead dto.Lead, patch dto.LeadPatch) dto.Lead {
	str := func(v interface{}) *string {
		if s, ok := v.(string); ok {
			return &s
		}
		return nil
	}
	if v, ok := patch["instagram_url"]; ok {
		lead.InstagramURL = str(v)
	}
	if v, ok := patch["website_url"]; ok {
		lead.WebsiteURL = str(v)
	}
	if v, ok := patch["render_quality"]; ok {
		lead.RenderQuality = str(v)
	}
	if v, ok := patch["extra_info"]; ok {
		lead.ExtraInfo, _ = v.(map[string]interface{})
	}
	return lead
}

func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}
