package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"dashformance/leads-api/internal/dto"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultTimelineDays is the window of the timeline chart
	DefaultTimelineDays = 30
	// NoRegion buckets leads whose state is unknown
	NoRegion = "Sem UF"

	unassignedOwner = "unassigned"
	day             = 24 * time.Hour
)

// funnelStatuses are the stages shown on the funnel, in pipeline order
var funnelStatuses = []string{
	dto.StatusInbox, dto.StatusNew, dto.StatusAttempted, dto.StatusContacted,
	dto.StatusMeeting, dto.StatusWon, dto.StatusLost, dto.StatusDisqualified,
}

var regionStates = []struct {
	region string
	states []string
}{
	{"Sudeste", []string{"SP", "RJ", "MG", "ES"}},
	{"Sul", []string{"PR", "SC", "RS"}},
	{"Nordeste", []string{"BA", "PE", "CE", "MA", "PB", "RN", "AL", "SE", "PI"}},
	{"Centro-Oeste", []string{"GO", "MT", "MS", "DF"}},
	{"Norte", []string{"AM", "PA", "AC", "RO", "RR", "AP", "TO"}},
}

// StatsService aggregates dashboard figures from a snapshot of the active leads
type StatsService struct {
	store  LeadStore
	owners []string
	log    *logrus.Entry
	now    func() time.Time
}

// NewStatsService creates a StatsService
func NewStatsService(store LeadStore, owners []string, logger *logrus.Logger) *StatsService {
	return &StatsService{
		store:  store,
		owners: owners,
		log:    logger.WithField("component", "StatsService"),
		now:    time.Now,
	}
}

func (s *StatsService) activeLeads(ctx context.Context) ([]dto.Lead, error) {
	leads, err := s.store.ListActiveLeads(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active leads: %w", err)
	}
	s.log.WithField("leads", len(leads)).Debug("[StatsService] Snapshot loaded")
	return leads, nil
}

// Overview counts active leads by status, owner and recency
func (s *StatsService) Overview(ctx context.Context) (*dto.StatsOverview, error) {
	leads, err := s.activeLeads(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	midnight := startOfDay(now)
	weekAgo := now.Add(-7 * day)
	monthAgo := now.Add(-30 * day)

	overview := &dto.StatsOverview{
		Total:    len(leads),
		ByStatus: map[string]int{},
		ByOwner:  map[string]int{},
	}
	for _, lead := range leads {
		overview.ByStatus[lead.Status]++

		owner := unassignedOwner
		if lead.Owner != nil && *lead.Owner != "" {
			owner = *lead.Owner
		}
		overview.ByOwner[owner]++

		if !lead.DateAdded.Before(midnight) {
			overview.AddedToday++
		}
		if !lead.DateAdded.Before(weekAgo) {
			overview.AddedThisWeek++
		}
		if !lead.DateAdded.Before(monthAgo) {
			overview.AddedThisMonth++
		}
	}
	return overview, nil
}

// Funnel returns the count and share of each pipeline stage
func (s *StatsService) Funnel(ctx context.Context) ([]dto.FunnelStage, error) {
	leads, err := s.activeLeads(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, lead := range leads {
		counts[lead.Status]++
	}

	stages := make([]dto.FunnelStage, 0, len(funnelStatuses))
	for _, status := range funnelStatuses {
		stages = append(stages, dto.FunnelStage{
			Status:     status,
			Count:      counts[status],
			Percentage: percentage(counts[status], len(leads)),
		})
	}
	return stages, nil
}

// Timeline returns leads added and won per UTC day over the last days days, oldest first
func (s *StatsService) Timeline(ctx context.Context, days int) ([]dto.TimelinePoint, error) {
	if days <= 0 {
		days = DefaultTimelineDays
	}

	leads, err := s.activeLeads(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	points := make([]dto.TimelinePoint, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		key := now.Add(-time.Duration(days-1-i) * day).Format("2006-01-02")
		points[i] = dto.TimelinePoint{Date: key}
		index[key] = i
	}

	start := now.Add(-time.Duration(days) * day)
	for _, lead := range leads {
		if lead.DateAdded.Before(start) {
			continue
		}
		i, ok := index[lead.DateAdded.UTC().Format("2006-01-02")]
		if !ok {
			continue
		}
		points[i].Added++
		if lead.Status == dto.StatusWon {
			points[i].Won++
		}
	}
	return points, nil
}

// Performance returns the pipeline outcome of each configured owner
func (s *StatsService) Performance(ctx context.Context) (map[string]dto.OwnerPerformance, error) {
	leads, err := s.activeLeads(ctx)
	if err != nil {
		return nil, err
	}

	result := make(map[string]dto.OwnerPerformance, len(s.owners))
	for _, owner := range s.owners {
		result[owner] = dto.OwnerPerformance{}
	}

	for _, lead := range leads {
		if lead.Owner == nil {
			continue
		}
		perf, ok := result[*lead.Owner]
		if !ok {
			continue
		}
		perf.Total++
		switch lead.Status {
		case dto.StatusWon:
			perf.Won++
		case dto.StatusContacted:
			perf.Contacted++
		case dto.StatusMeeting:
			perf.Meeting++
		}
		result[*lead.Owner] = perf
	}

	for owner, perf := range result {
		perf.ConversionRate = percentage(perf.Won, perf.Total)
		result[owner] = perf
	}
	return result, nil
}

// Geo counts active leads per Brazilian region
func (s *StatsService) Geo(ctx context.Context) (*dto.GeoStats, error) {
	leads, err := s.activeLeads(ctx)
	if err != nil {
		return nil, err
	}

	geo := &dto.GeoStats{ByRegion: map[string]int{NoRegion: 0}}
	for _, r := range regionStates {
		geo.ByRegion[r.region] = 0
	}

	for _, lead := range leads {
		geo.ByRegion[regionOf(leadUF(lead))]++
		geo.Total++
	}
	return geo, nil
}

// SalesForce returns today, week and month activity per configured owner.
// Weeks start on Sunday and months on the first, both in local time.
func (s *StatsService) SalesForce(ctx context.Context) (map[string]dto.SalesForceStats, error) {
	leads, err := s.activeLeads(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	today := startOfDay(now)
	tomorrow := today.AddDate(0, 0, 1)
	week := today.AddDate(0, 0, -int(today.Weekday()))
	month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	result := make(map[string]dto.SalesForceStats, len(s.owners))
	for _, owner := range s.owners {
		result[owner] = dto.SalesForceStats{}
	}

	for _, lead := range leads {
		if lead.Owner == nil {
			continue
		}
		st, ok := result[*lead.Owner]
		if !ok {
			continue
		}

		if lead.Status != dto.StatusWon && lead.Status != dto.StatusLost {
			st.TotalActive++
		}

		contacted := lead.LastContactDate
		if contacted != nil {
			if !contacted.Before(today) {
				st.Today.Contacted++
			}
			if !contacted.Before(week) {
				st.Week.Contacted++
			}
			if !contacted.Before(month) {
				st.Month.Contacted++
			}
		}

		switch lead.Status {
		case dto.StatusMeeting:
			// week and month count every open meeting, there is no status history
			st.Week.Meetings++
			st.Month.Meetings++
			if f := lead.NextFollowupDate; f != nil && !f.Before(today) && f.Before(tomorrow) {
				st.Today.Meetings++
			}
		case dto.StatusWon:
			if contacted != nil {
				if !contacted.Before(today) {
					st.Today.Won++
				}
				if !contacted.Before(week) {
					st.Week.Won++
				}
				if !contacted.Before(month) {
					st.Month.Won++
				}
			}
		}

		result[*lead.Owner] = st
	}

	for owner, st := range result {
		st.Score = dto.ActivityScore{
			Today: activityScore(st.Today),
			Week:  activityScore(st.Week),
			Month: activityScore(st.Month),
		}
		result[owner] = st
	}
	return result, nil
}

func activityScore(a dto.ActivityCounts) int {
	return a.Contacted + a.Meetings*3 + a.Won*10
}

// leadUF returns the state of a lead from its column or its registry payload
func leadUF(lead dto.Lead) string {
	if lead.UF != nil && *lead.UF != "" {
		return *lead.UF
	}
	info := lead.ExtraInfo
	if uf, ok := info["uf"].(string); ok && uf != "" {
		return uf
	}
	if estado, ok := info["estado"].(map[string]interface{}); ok {
		if uf, ok := estado["sigla"].(string); ok && uf != "" {
			return uf
		}
	}
	if endereco, ok := info["endereco"].(map[string]interface{}); ok {
		if uf, ok := endereco["uf"].(string); ok && uf != "" {
			return uf
		}
	}
	return ""
}

func regionOf(uf string) string {
	uf = strings.ToUpper(strings.TrimSpace(uf))
	for _, r := range regionStates {
		for _, state := range r.states {
			if state == uf {
				return r.region
			}
		}
	}
	return NoRegion
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// percentage rounds half up, matching the dashboard charts
func percentage(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Floor(float64(part)*100/float64(total) + 0.5))
}
