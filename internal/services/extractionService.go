package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dashformance/leads-api/internal/dto"
	"dashformance/leads-api/internal/metrics"
	"dashformance/leads-api/internal/normalize"
	"dashformance/leads-api/internal/ratelimit"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	// MaxPages is the hard cap on registry pages scanned by one run
	MaxPages = 100
	// DefaultExtractLimit is the target of a persisted run when none is given
	DefaultExtractLimit = 200
	// DefaultPreviewLimit is the target of a dry run when none is given
	DefaultPreviewLimit = 50

	// NotePrefix starts the notes of every lead written by extraction
	NotePrefix = "Deep Discovery"
	// LeadSource tags leads imported from the registry
	LeadSource = "casa_dos_dados"
)

var errNoResults = errors.New("API returned 0 results")

// ExtractionService runs deep discovery: it walks registry result pages,
// drops known companies, enriches the rest and stores or previews them
type ExtractionService struct {
	searcher CompanySearcher
	leads    *LeadsService
	store    LeadStore
	throttle *ratelimit.Throttle
	log      *logrus.Entry
	maxPages int
}

// NewExtractionService creates an ExtractionService
func NewExtractionService(searcher CompanySearcher, leads *LeadsService, store LeadStore, throttle *ratelimit.Throttle, logger *logrus.Logger) *ExtractionService {
	if throttle == nil {
		throttle = ratelimit.NewThrottle(ratelimit.DefaultMaxConcurrent, 0, ratelimit.DefaultJitter)
	}
	return &ExtractionService{
		searcher: searcher,
		leads:    leads,
		store:    store,
		throttle: throttle,
		log:      logger.WithField("component", "Extraction"),
		maxPages: MaxPages,
	}
}

// extractionRun is the state threaded through every page of one run
type extractionRun struct {
	params   dto.SearchParams
	target   int
	dryRun   bool
	page     int
	hasMore  bool
	accepted int
	index    *dedupIndex
	result   *dto.ExtractionResult
}

// Search returns one raw page of registry results
func (s *ExtractionService) Search(ctx context.Context, params dto.SearchParams, page int) (*dto.SearchPage, error) {
	if !s.searcher.Configured() {
		return nil, dto.ErrMissingAPIKey
	}
	if page < 1 {
		page = 1
	}
	return s.searcher.FetchPage(ctx, params, page)
}

// ExtractAndSave collects up to target new leads. With dryRun the leads are
// returned as candidates, otherwise each page is upserted as soon as it is
// processed. Failures after the run started are reported in the result's
// Error field along with the work done so far; only configuration errors
// are returned.
func (s *ExtractionService) ExtractAndSave(ctx context.Context, params dto.SearchParams, target int, dryRun bool) (*dto.ExtractionResult, error) {
	if !s.searcher.Configured() {
		return nil, dto.ErrMissingAPIKey
	}
	if target <= 0 {
		target = DefaultExtractLimit
		if dryRun {
			target = DefaultPreviewLimit
		}
	}

	run := &extractionRun{
		params:  params,
		target:  target,
		dryRun:  dryRun,
		page:    1,
		hasMore: true,
		index:   newDedupIndex(s.store),
		result:  &dto.ExtractionResult{Candidates: []dto.LeadInput{}},
	}

	s.log.WithFields(logrus.Fields{
		"target":             target,
		"dry_run":            dryRun,
		"enrich_concurrency": s.throttle.MaxConcurrent(),
	}).Info("[Extraction] Starting deep discovery")

	var runErr error
	for run.accepted < run.target && run.hasMore && run.page <= s.maxPages {
		if runErr = s.processPage(ctx, run); runErr != nil {
			break
		}
	}

	result := run.result
	result.PagesScanned = run.page - 1
	result.SearchExhausted = !run.hasMore
	result.PageCapReached = runErr == nil && run.hasMore && run.page > s.maxPages && run.accepted < run.target

	outcome := "ok"
	if runErr != nil {
		result.Error = extractionError(ctx, runErr)
		outcome = strings.ToLower(result.Error.Code)
		s.log.WithFields(logrus.Fields{"page": run.page, "error": runErr.Error()}).Error("[Extraction] Run stopped early")
	}
	metrics.RecordExtraction(dryRun, outcome, run.accepted, result.TotalDuplicates, result.TotalChecked)

	s.log.WithFields(logrus.Fields{
		"accepted":         run.accepted,
		"duplicates":       result.TotalDuplicates,
		"checked":          result.TotalChecked,
		"pages":            result.PagesScanned,
		"search_exhausted": result.SearchExhausted,
		"page_cap_reached": result.PageCapReached,
	}).Info("[Extraction] Deep discovery complete")

	return result, nil
}

// processPage fetches, filters, enriches and commits one page, then advances the run
func (s *ExtractionService) processPage(ctx context.Context, run *extractionRun) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	log := s.log.WithField("page", run.page)

	page, err := s.searcher.FetchPage(ctx, run.params, run.page)
	if err != nil {
		return err
	}

	if len(page.Results) == 0 {
		if run.page == 1 {
			return errNoResults
		}
		log.Info("[Extraction] No more results, search exhausted")
		run.hasMore = false
		return nil
	}
	run.result.TotalChecked += len(page.Results)

	fresh, stored, err := run.index.filterPage(ctx, page.Results)
	if err != nil {
		return err
	}
	run.result.TotalDuplicates += len(page.Results) - len(fresh)

	if len(fresh) == 0 {
		log.Info("[Extraction] Page is all duplicates, skipping")
		run.page++
		return nil
	}

	// records past the quota are only enriched when an earlier batch loses
	// some of its records to duplicates revealed by enrichment
	for len(fresh) > 0 && run.accepted < run.target {
		batch := fresh
		if remaining := run.target - run.accepted; len(batch) > remaining {
			batch = batch[:remaining]
		}
		fresh = fresh[len(batch):]

		if err := s.commitBatch(ctx, run, stored, batch, log); err != nil {
			return err
		}
	}

	run.page++
	return nil
}

// commitBatch enriches a batch, rechecks it against the index and stores or collects the survivors
func (s *ExtractionService) commitBatch(ctx context.Context, run *extractionRun, stored *storedKeys, batch []dto.Company, log *logrus.Entry) error {
	enriched := s.enrichPage(ctx, batch)
	leads := make([]dto.LeadInput, 0, len(enriched))
	for _, company := range enriched {
		leads = append(leads, companyToLead(company, run.page))
	}

	// enrichment can surface contacts the first lookup never saw
	if err := run.index.refresh(ctx, stored, leads); err != nil {
		return err
	}

	accepted := make([]dto.LeadInput, 0, len(leads))
	for _, lead := range leads {
		if !run.index.accept(stored, lead) {
			run.result.TotalDuplicates++
			continue
		}
		accepted = append(accepted, lead)
	}

	if run.dryRun {
		run.result.Candidates = append(run.result.Candidates, accepted...)
		run.accepted += len(accepted)
	} else if len(accepted) > 0 {
		count, err := s.leads.CreateMany(ctx, accepted)
		if err != nil {
			return err
		}
		run.result.TotalSaved += count
		run.accepted += count
	}

	log.WithFields(logrus.Fields{
		"new":      len(batch),
		"accepted": len(accepted),
		"total":    run.accepted,
	}).Info("[Extraction] Page processed")
	return nil
}

// enrichPage fetches registry details for every company concurrently.
// A failed lookup leaves the company as it was.
func (s *ExtractionService) enrichPage(ctx context.Context, companies []dto.Company) []dto.Company {
	enriched := make([]dto.Company, len(companies))

	var g errgroup.Group
	for i, company := range companies {
		g.Go(func() error {
			enriched[i] = company

			cnpj := company.CNPJ()
			if cnpj == "" {
				return nil
			}

			release, err := s.throttle.Acquire(ctx)
			if err != nil {
				return nil
			}
			defer release()

			if details := s.searcher.FetchCompanyDetails(ctx, cnpj); len(details) > 0 {
				enriched[i] = company.Merge(details)
			}
			return nil
		})
	}
	_ = g.Wait()

	return enriched
}

// companyToLead maps a registry record to the lead creation shape
func companyToLead(company dto.Company, page int) dto.LeadInput {
	name := company.RazaoSocial()
	tradeName := company.NomeFantasia()
	if tradeName == "" {
		tradeName = name
	}
	notes := fmt.Sprintf("%s (Page %d)", NotePrefix, page)
	source := LeadSource

	return dto.LeadInput{
		CompanyName: name,
		TradeName:   tradeName,
		CNPJ:        company.CNPJ(),
		Phone:       normalize.NullIfEmpty(company.DisplayPhone()),
		Email:       normalize.NullIfEmpty(company.FirstEmail()),
		ExtraInfo:   map[string]interface{}(company),
		Status:      dto.StatusNew,
		Source:      &source,
		Notes:       &notes,
		UF:          normalize.NullIfEmpty(company.UF()),
		City:        normalize.NullIfEmpty(company.City()),
	}
}

// extractionError classifies the error that stopped a run. A provider timeout
// is a provider error; only the caller giving up counts as cancellation.
func extractionError(ctx context.Context, err error) *dto.ExtractionError {
	var providerErr *dto.ProviderError
	switch {
	case ctx.Err() != nil:
		return &dto.ExtractionError{Code: dto.ExtractionCancelled, Message: err.Error()}
	case errors.Is(err, errNoResults):
		return &dto.ExtractionError{Code: dto.ExtractionNoResults, Message: err.Error()}
	case errors.As(err, &providerErr):
		return &dto.ExtractionError{Code: dto.ExtractionProviderError, Message: providerErr.Error(), Status: providerErr.Status}
	default:
		return &dto.ExtractionError{Code: dto.ExtractionPersistenceError, Message: err.Error()}
	}
}
