package services

import (
	"context"
	"fmt"
	"maps"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"dashformance/leads-api/internal/dto"
	"dashformance/leads-api/internal/metrics"
	"dashformance/leads-api/internal/normalize"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultPageSize is the default page size of the leads table
	DefaultPageSize = 50
	// ScopeUnassigned and ScopeAll are the division scopes besides an owner name
	ScopeUnassigned = "unassigned"
	ScopeAll        = "all"

	// machineNotePrefix marks notes written by the extraction pipeline
	machineNotePrefix = "deep discovery"
)

// LeadsService implements lead management on top of a LeadStore
type LeadsService struct {
	store  LeadStore
	owners []string
	log    *logrus.Entry

	now  func() time.Time
	intN func(n int) int
}

// NewLeadsService creates a LeadsService. owners must hold the two principals
// leads are divided between; the first is the primary owner.
func NewLeadsService(store LeadStore, owners []string, logger *logrus.Logger) *LeadsService {
	return &LeadsService{
		store:  store,
		owners: owners,
		log:    logger.WithField("component", "LeadsService"),
		now:    time.Now,
		intN:   rand.IntN,
	}
}

// Owners returns the configured principals
func (s *LeadsService) Owners() []string {
	return s.owners
}

// Create sanitizes and stores one lead
func (s *LeadsService) Create(ctx context.Context, input dto.LeadInput) (*dto.Lead, error) {
	lead := SanitizeForCreate(input, s.now())
	created, err := s.store.CreateLead(ctx, &lead)
	if err != nil {
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}
	s.log.WithField("id", created.ID).Info("[LeadsService] Lead created")
	return created, nil
}

// CreateMany upserts a batch of leads by cnpj, reviving soft-deleted rows.
// Within the batch the first lead of each cnpj wins.
func (s *LeadsService) CreateMany(ctx context.Context, inputs []dto.LeadInput) (int, error) {
	if len(inputs) == 0 {
		return 0, nil
	}

	now := s.now()
	seen := make(map[string]bool, len(inputs))
	leads := make([]dto.Lead, 0, len(inputs))
	for _, input := range inputs {
		lead := SanitizeForCreate(input, now)
		if seen[*lead.CNPJ] {
			continue
		}
		seen[*lead.CNPJ] = true
		leads = append(leads, lead)
	}

	count, err := s.store.UpsertLeadsByCNPJ(ctx, leads)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert leads: %w", err)
	}
	s.log.WithFields(logrus.Fields{"received": len(inputs), "upserted": count}).Info("[LeadsService] Batch upserted")
	return count, nil
}

// FindAll returns one page of active leads, newest first, with owner counters
func (s *LeadsService) FindAll(ctx context.Context, page, limit int) (*dto.LeadListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}

	leads, err := s.store.ListLeads(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}

	total, err := s.store.CountActiveLeads(ctx, dto.LeadFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to count leads: %w", err)
	}

	ownerTotals := make(map[string]int, len(s.owners))
	for _, owner := range s.owners {
		n, err := s.store.CountActiveLeads(ctx, dto.LeadFilter{Owner: &owner})
		if err != nil {
			return nil, fmt.Errorf("failed to count leads of %s: %w", owner, err)
		}
		ownerTotals[owner] = n
	}

	unassigned, err := s.store.CountActiveLeads(ctx, dto.LeadFilter{Unassigned: true})
	if err != nil {
		return nil, fmt.Errorf("failed to count unassigned leads: %w", err)
	}

	if leads == nil {
		leads = []dto.Lead{}
	}
	return &dto.LeadListResponse{
		Data: leads,
		Meta: dto.LeadListMeta{
			Total:           total,
			OwnerTotals:     ownerTotals,
			UnassignedTotal: unassigned,
			Page:            page,
			LastPage:        (total + limit - 1) / limit,
		},
	}, nil
}

// FindOne returns a lead by id, trashed or not
func (s *LeadsService) FindOne(ctx context.Context, id string) (*dto.Lead, error) {
	return s.store.GetLead(ctx, id)
}

// FindAllTrashed returns soft-deleted leads, most recently deleted first
func (s *LeadsService) FindAllTrashed(ctx context.Context) ([]dto.Lead, error) {
	leads, err := s.store.ListTrashedLeads(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list trashed leads: %w", err)
	}
	if leads == nil {
		leads = []dto.Lead{}
	}
	return leads, nil
}

// Update applies a sanitized patch to one lead, recomputing its score when
// a score input changes
func (s *LeadsService) Update(ctx context.Context, id string, data map[string]interface{}) (*dto.Lead, error) {
	patch, err := SanitizeForUpdate(data)
	if err != nil {
		return nil, err
	}
	if len(patch) == 0 {
		return s.store.GetLead(ctx, id)
	}
	return s.updateScored(ctx, id, patch)
}

func (s *LeadsService) updateScored(ctx context.Context, id string, patch dto.LeadPatch) (*dto.Lead, error) {
	if touchesScore(patch) {
		current, err := s.store.GetLead(ctx, id)
		if err != nil {
			return nil, err
		}
		next := applyPatch(*current, patch)
		patch = maps.Clone(patch)
		patch["score"] = CalculateScore(&next)
	}
	return s.store.UpdateLead(ctx, id, patch)
}

// UpdateMany applies the same sanitized patch to many leads
func (s *LeadsService) UpdateMany(ctx context.Context, ids []string, data map[string]interface{}) (int, error) {
	patch, err := SanitizeForUpdate(data)
	if err != nil {
		return 0, err
	}
	if len(patch) == 0 || len(ids) == 0 {
		return 0, nil
	}

	// the score depends on each lead's own fields
	if touchesScore(patch) {
		count := 0
		for _, id := range ids {
			if _, err := s.updateScored(ctx, id, patch); err != nil {
				return count, err
			}
			count++
		}
		return count, nil
	}

	return s.store.UpdateLeads(ctx, ids, patch)
}

// Disqualify moves a lead out of the pipeline
func (s *LeadsService) Disqualify(ctx context.Context, id string) (*dto.Lead, error) {
	return s.store.UpdateLead(ctx, id, dto.LeadPatch{"status": dto.StatusDisqualified})
}

// Remove soft-deletes one lead
func (s *LeadsService) Remove(ctx context.Context, id string) (*dto.Lead, error) {
	return s.store.UpdateLead(ctx, id, dto.LeadPatch{"deletedAt": s.now().UTC()})
}

// Restore brings a soft-deleted lead back
func (s *LeadsService) Restore(ctx context.Context, id string) (*dto.Lead, error) {
	return s.store.UpdateLead(ctx, id, dto.LeadPatch{"deletedAt": nil})
}

// RemoveMany soft-deletes many leads
func (s *LeadsService) RemoveMany(ctx context.Context, ids []string) (int, error) {
	now := s.now().UTC()
	return s.store.SetLeadsDeleted(ctx, ids, &now)
}

// RestoreMany brings many soft-deleted leads back
func (s *LeadsService) RestoreMany(ctx context.Context, ids []string) (int, error) {
	return s.store.SetLeadsDeleted(ctx, ids, nil)
}

// HardDelete removes a lead permanently
func (s *LeadsService) HardDelete(ctx context.Context, id string) error {
	if err := s.store.HardDeleteLead(ctx, id); err != nil {
		return err
	}
	s.log.WithField("id", id).Warn("[LeadsService] Lead permanently deleted")
	return nil
}

// CleanupDuplicates soft-deletes active leads that share a normalized email
// or phone with an older or more complete lead. Leads carrying notes typed by
// an operator are never deleted. The email and phone passes run over the same
// snapshot, so a lead marked by the email pass still takes part in the phone pass.
func (s *LeadsService) CleanupDuplicates(ctx context.Context) (*dto.CleanupResult, error) {
	leads, err := s.store.ListActiveLeads(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active leads: %w", err)
	}

	marked := make(map[string]bool)
	var ids []string
	mark := func(id string) {
		if !marked[id] {
			marked[id] = true
			ids = append(ids, id)
		}
	}

	emailKey := func(l dto.Lead) string { return normalize.EmailKeyPtr(l.Email) }
	phoneKey := func(l dto.Lead) string { return normalize.PhoneKeyPtr(l.Phone) }

	for _, key := range []func(dto.Lead) string{emailKey, phoneKey} {
		for _, group := range groupLeads(leads, key) {
			for _, id := range resolveGroup(group) {
				mark(id)
			}
		}
	}

	result := &dto.CleanupResult{DeletedCount: 0, IDs: []string{}}
	if len(ids) == 0 {
		s.log.WithField("scanned", len(leads)).Info("[LeadsService] No duplicates found")
		return result, nil
	}

	now := s.now().UTC()
	if _, err := s.store.SetLeadsDeleted(ctx, ids, &now); err != nil {
		return nil, fmt.Errorf("failed to delete duplicates: %w", err)
	}

	result.DeletedCount = len(ids)
	result.IDs = ids
	metrics.RecordCleanup(len(ids))
	s.log.WithFields(logrus.Fields{
		"scanned": len(leads),
		"deleted": len(ids),
	}).Info("[LeadsService] Duplicate cleanup finished")
	return result, nil
}

// groupLeads partitions leads by key, keeping first-seen order and skipping empty keys
func groupLeads(leads []dto.Lead, key func(dto.Lead) string) [][]dto.Lead {
	index := make(map[string]int)
	var groups [][]dto.Lead
	for _, lead := range leads {
		k := key(lead)
		if k == "" {
			continue
		}
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], lead)
	}
	return groups
}

// resolveGroup returns the ids to delete from one group of duplicates.
// Members are expected oldest first.
func resolveGroup(group []dto.Lead) []string {
	if len(group) < 2 {
		return nil
	}

	var noted []string
	for _, lead := range group {
		if hasUserNotes(lead) {
			noted = append(noted, lead.ID)
		}
	}

	var doomed []string
	if len(noted) > 0 {
		for _, lead := range group {
			if !slices.Contains(noted, lead.ID) {
				doomed = append(doomed, lead.ID)
			}
		}
		return doomed
	}

	keep := 0
	best := completeness(group[0])
	for i := 1; i < len(group); i++ {
		if c := completeness(group[i]); c > best {
			best, keep = c, i
		}
	}
	for i, lead := range group {
		if i != keep {
			doomed = append(doomed, lead.ID)
		}
	}
	return doomed
}

func hasUserNotes(lead dto.Lead) bool {
	if lead.Notes == nil {
		return false
	}
	notes := strings.ToLower(strings.TrimSpace(*lead.Notes))
	return notes != "" && !strings.HasPrefix(notes, machineNotePrefix)
}

func completeness(lead dto.Lead) int {
	score := 0
	if normalize.EmailKeyPtr(lead.Email) != "" {
		score++
	}
	if normalize.PhoneKeyPtr(lead.Phone) != "" {
		score++
	}
	return score
}

// DivideLeads shuffles the active leads of scope and assigns the first
// primaryCount of them to the primary owner and the rest to the secondary one
func (s *LeadsService) DivideLeads(ctx context.Context, primaryCount int, scope string) (*dto.DivideResult, error) {
	if len(s.owners) < 2 {
		return nil, fmt.Errorf("lead division needs two owners, have %d", len(s.owners))
	}
	if primaryCount < 0 {
		verr := &dto.ValidationError{}
		verr.Add("primaryCount", "must not be negative")
		return nil, verr
	}

	filter, err := s.scopeFilter(scope)
	if err != nil {
		return nil, err
	}

	ids, err := s.store.ListActiveLeadIDs(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads to divide: %w", err)
	}

	s.shuffle(ids)
	split := min(primaryCount, len(ids))
	primary, secondary := s.owners[0], s.owners[1]

	if split > 0 {
		if _, err := s.store.UpdateLeads(ctx, ids[:split], dto.LeadPatch{"owner": primary}); err != nil {
			return nil, fmt.Errorf("failed to assign leads to %s: %w", primary, err)
		}
	}
	if split < len(ids) {
		if _, err := s.store.UpdateLeads(ctx, ids[split:], dto.LeadPatch{"owner": secondary}); err != nil {
			return nil, fmt.Errorf("failed to assign leads to %s: %w", secondary, err)
		}
	}

	s.log.WithFields(logrus.Fields{
		"scope":     scope,
		"total":     len(ids),
		"primary":   split,
		"secondary": len(ids) - split,
	}).Info("[LeadsService] Leads divided")

	return &dto.DivideResult{
		PrimaryOwner:   primary,
		PrimaryCount:   split,
		SecondaryOwner: secondary,
		SecondaryCount: len(ids) - split,
		Total:          len(ids),
	}, nil
}

func (s *LeadsService) scopeFilter(scope string) (dto.LeadFilter, error) {
	switch scope {
	case "", ScopeUnassigned:
		return dto.LeadFilter{Unassigned: true}, nil
	case ScopeAll:
		return dto.LeadFilter{}, nil
	}
	if slices.Contains(s.owners, scope) {
		owner := scope
		return dto.LeadFilter{Owner: &owner}, nil
	}
	verr := &dto.ValidationError{}
	verr.Add("sourceOwner", fmt.Sprintf("must be %s, %s or one of %s", ScopeUnassigned, ScopeAll, strings.Join(s.owners, ", ")))
	return dto.LeadFilter{}, verr
}

// shuffle is an in-place Fisher-Yates shuffle
func (s *LeadsService) shuffle(ids []string) {
	for i := len(ids) - 1; i > 0; i-- {
		j := s.intN(i + 1)
		ids[i], ids[j] = ids[j], ids[i]
	}
}
