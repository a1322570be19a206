package services

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"dashformance/leads-api/internal/dto"
	"dashformance/leads-api/internal/logger"
	"dashformance/leads-api/internal/normalize"
)

// memStore is an in-memory LeadStore. Rows are kept in insertion order, oldest first.
type memStore struct {
	mu    sync.Mutex
	leads []dto.Lead

	upserts      [][]dto.Lead
	bulkPatches  []dto.LeadPatch
	phoneScans   int
	failUpsert   error
	failList     error
	failExisting error
}

func newMemStore(leads ...dto.Lead) *memStore {
	return &memStore{leads: leads}
}

func (m *memStore) find(id string) int {
	for i := range m.leads {
		if m.leads[i].ID == id {
			return i
		}
	}
	return -1
}

func (m *memStore) findCNPJ(cnpj string) int {
	for i := range m.leads {
		if m.leads[i].CNPJ != nil && *m.leads[i].CNPJ == cnpj {
			return i
		}
	}
	return -1
}

func (m *memStore) active() []dto.Lead {
	var out []dto.Lead
	for _, l := range m.leads {
		if l.DeletedAt == nil {
			out = append(out, l)
		}
	}
	return out
}

func matchesFilter(l dto.Lead, f dto.LeadFilter) bool {
	switch {
	case f.Unassigned:
		return l.Owner == nil || *l.Owner == ""
	case f.Owner != nil:
		return l.Owner != nil && *l.Owner == *f.Owner
	}
	return true
}

func (m *memStore) CreateLead(_ context.Context, lead *dto.Lead) (*dto.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if lead.CNPJ != nil && m.findCNPJ(*lead.CNPJ) >= 0 {
		return nil, dto.ErrLeadConflict
	}
	m.leads = append(m.leads, *lead)
	created := *lead
	return &created, nil
}

func (m *memStore) UpsertLeadsByCNPJ(_ context.Context, leads []dto.Lead) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failUpsert != nil {
		return 0, m.failUpsert
	}
	m.upserts = append(m.upserts, leads)
	for _, lead := range leads {
		i := m.findCNPJ(*lead.CNPJ)
		if i < 0 {
			m.leads = append(m.leads, lead)
			continue
		}
		existing := &m.leads[i]
		existing.CompanyName = lead.CompanyName
		existing.TradeName = lead.TradeName
		existing.Phone = lead.Phone
		existing.Email = lead.Email
		existing.Status = lead.Status
		existing.Notes = lead.Notes
		existing.ExtraInfo = lead.ExtraInfo
		existing.Source = lead.Source
		existing.UF = lead.UF
		existing.City = lead.City
		existing.Score = lead.Score
		existing.DeletedAt = nil
	}
	return len(leads), nil
}

func (m *memStore) GetLead(_ context.Context, id string) (*dto.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.find(id)
	if i < 0 {
		return nil, dto.ErrLeadNotFound
	}
	lead := m.leads[i]
	return &lead, nil
}

func (m *memStore) ListLeads(_ context.Context, offset, limit int) ([]dto.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	active := m.active()
	sort.SliceStable(active, func(i, j int) bool { return active[i].DateAdded.After(active[j].DateAdded) })
	if offset >= len(active) {
		return nil, nil
	}
	return active[offset:min(offset+limit, len(active))], nil
}

func (m *memStore) ListActiveLeads(_ context.Context) ([]dto.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failList != nil {
		return nil, m.failList
	}
	return m.active(), nil
}

func (m *memStore) ListActiveLeadIDs(_ context.Context, filter dto.LeadFilter) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []string
	for _, l := range m.active() {
		if matchesFilter(l, filter) {
			ids = append(ids, l.ID)
		}
	}
	return ids, nil
}

func (m *memStore) CountActiveLeads(_ context.Context, filter dto.LeadFilter) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, l := range m.active() {
		if matchesFilter(l, filter) {
			n++
		}
	}
	return n, nil
}

func (m *memStore) ListTrashedLeads(_ context.Context) ([]dto.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []dto.Lead
	for _, l := range m.leads {
		if l.DeletedAt != nil {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DeletedAt.After(*out[j].DeletedAt) })
	return out, nil
}

func (m *memStore) UpdateLead(_ context.Context, id string, patch dto.LeadPatch) (*dto.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.find(id)
	if i < 0 {
		return nil, dto.ErrLeadNotFound
	}
	applyTestPatch(&m.leads[i], patch)
	lead := m.leads[i]
	return &lead, nil
}

func (m *memStore) UpdateLeads(_ context.Context, ids []string, patch dto.LeadPatch) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bulkPatches = append(m.bulkPatches, patch)
	n := 0
	for _, id := range ids {
		if i := m.find(id); i >= 0 {
			applyTestPatch(&m.leads[i], patch)
			n++
		}
	}
	return n, nil
}

func (m *memStore) SetLeadsDeleted(_ context.Context, ids []string, deletedAt *time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, id := range ids {
		if i := m.find(id); i >= 0 {
			m.leads[i].DeletedAt = deletedAt
			n++
		}
	}
	return n, nil
}

func (m *memStore) HardDeleteLead(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.find(id)
	if i < 0 {
		return dto.ErrLeadNotFound
	}
	m.leads = slices.Delete(m.leads, i, i+1)
	return nil
}

func (m *memStore) ExistingCNPJs(_ context.Context, cnpjs []string) (map[string]struct{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failExisting != nil {
		return nil, m.failExisting
	}
	found := map[string]struct{}{}
	for _, l := range m.active() {
		if l.CNPJ != nil && slices.Contains(cnpjs, *l.CNPJ) {
			found[*l.CNPJ] = struct{}{}
		}
	}
	return found, nil
}

func (m *memStore) ExistingEmails(_ context.Context, emails []string) (map[string]struct{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	found := map[string]struct{}{}
	for _, l := range m.active() {
		if l.Email == nil {
			continue
		}
		if key := normalize.Email(*l.Email); slices.Contains(emails, key) {
			found[key] = struct{}{}
		}
	}
	return found, nil
}

func (m *memStore) ActivePhones(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.phoneScans++
	var phones []string
	for _, l := range m.active() {
		if l.Phone != nil && *l.Phone != "" {
			phones = append(phones, *l.Phone)
		}
	}
	return phones, nil
}

func (m *memStore) byCNPJ(cnpj string) *dto.Lead {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.findCNPJ(cnpj); i >= 0 {
		lead := m.leads[i]
		return &lead
	}
	return nil
}

func (m *memStore) activeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.active())
}

func applyTestPatch(lead *dto.Lead, patch dto.LeadPatch) {
	str := func(v interface{}) *string {
		if s, ok := v.(string); ok {
			return &s
		}
		return nil
	}
	for key, value := range patch {
		switch key {
		case "company_name":
			lead.CompanyName = value.(string)
		case "status":
			lead.Status = value.(string)
		case "owner":
			lead.Owner = str(value)
		case "notes":
			lead.Notes = str(value)
		case "email":
			lead.Email = str(value)
		case "phone":
			lead.Phone = str(value)
		case "website_url":
			lead.WebsiteURL = str(value)
		case "instagram_url":
			lead.InstagramURL = str(value)
		case "render_quality":
			lead.RenderQuality = str(value)
		case "extra_info":
			lead.ExtraInfo, _ = value.(map[string]interface{})
		case "priority":
			lead.Priority = value.(int)
		case "score":
			lead.Score = value.(int)
		case "deletedAt":
			if t, ok := value.(time.Time); ok {
				lead.DeletedAt = &t
			} else {
				lead.DeletedAt = nil
			}
		}
	}
}

// fakeSearcher serves registry pages from a function of the page number
type fakeSearcher struct {
	mu         sync.Mutex
	configured bool
	pageFunc   func(page int) ([]dto.Company, error)
	details    map[string]map[string]interface{}
	fetched    []int
	detailHits int
}

func newFakeSearcher(pages ...[]dto.Company) *fakeSearcher {
	return &fakeSearcher{
		configured: true,
		pageFunc: func(page int) ([]dto.Company, error) {
			if page > len(pages) {
				return nil, nil
			}
			return pages[page-1], nil
		},
		details: map[string]map[string]interface{}{},
	}
}

func (f *fakeSearcher) FetchPage(_ context.Context, _ dto.SearchParams, page int) (*dto.SearchPage, error) {
	f.mu.Lock()
	f.fetched = append(f.fetched, page)
	f.mu.Unlock()

	results, err := f.pageFunc(page)
	if err != nil {
		return nil, err
	}
	return &dto.SearchPage{Results: results}, nil
}

func (f *fakeSearcher) FetchCompanyDetails(_ context.Context, cnpj string) map[string]interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.detailHits++
	return f.details[cnpj]
}

func (f *fakeSearcher) Configured() bool {
	return f.configured
}

// company builds a registry record; empty email or phone leaves the contact list out
func company(cnpj, email, phone string) dto.Company {
	c := dto.Company{
		"cnpj":         cnpj,
		"razao_social": "EMPRESA " + cnpj + " LTDA",
	}
	if email != "" {
		c["contato_email"] = []interface{}{map[string]interface{}{"email": email}}
	}
	if phone != "" {
		c["contato_telefonico"] = []interface{}{map[string]interface{}{"completo": phone}}
	}
	return c
}

func strPtr(s string) *string {
	return &s
}

var leadSeq int

// storedLead builds an active lead row added at the given time
func storedLead(added time.Time, mutate ...func(*dto.Lead)) dto.Lead {
	leadSeq++
	lead := dto.Lead{
		ID:          fmt.Sprintf("lead-%03d", leadSeq),
		CompanyName: fmt.Sprintf("Empresa %d", leadSeq),
		CNPJ:        strPtr(fmt.Sprintf("%014d", leadSeq)),
		Status:      dto.StatusNew,
		ExtraInfo:   map[string]interface{}{},
		DateAdded:   added,
	}
	for _, fn := range mutate {
		fn(&lead)
	}
	return lead
}

func newTestLeadsService(store LeadStore) *LeadsService {
	return NewLeadsService(store, []string{"joao", "vitor"}, logger.Discard())
}
