package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"dashformance/leads-api/internal/dto"
	"dashformance/leads-api/internal/metrics"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultPageSize is the number of records requested per page when the caller sets none
	DefaultPageSize = 40
	// RequestTimeout bounds every call to the registry
	RequestTimeout = 30 * time.Second
)

// CasaDadosHandler talks to the Casa dos Dados company registry
type CasaDadosHandler struct {
	apiKey     string
	searchURL  string
	detailsURL string
	httpClient *http.Client
	cache      *DetailsCache
	log        *logrus.Entry
}

// NewCasaDadosHandler creates a registry client. An empty apiKey is accepted so
// the service can start; every call then fails with dto.ErrMissingAPIKey.
func NewCasaDadosHandler(apiKey, searchURL, detailsURL string, logger *logrus.Logger) *CasaDadosHandler {
	return &CasaDadosHandler{
		apiKey:     apiKey,
		searchURL:  searchURL,
		detailsURL: strings.TrimRight(detailsURL, "/"),
		httpClient: &http.Client{Timeout: RequestTimeout},
		log:        logger.WithField("component", "CasaDadosHandler"),
	}
}

// SetDetailsCache enables caching of company details
func (h *CasaDadosHandler) SetDetailsCache(cache *DetailsCache) {
	h.cache = cache
}

// Configured reports whether an API key is set
func (h *CasaDadosHandler) Configured() bool {
	return h.apiKey != ""
}

// FetchPage runs one page of an advanced search
func (h *CasaDadosHandler) FetchPage(ctx context.Context, params dto.SearchParams, page int) (*dto.SearchPage, error) {
	if !h.Configured() {
		return nil, dto.ErrMissingAPIKey
	}

	payload := BuildSearchPayload(params, page)
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode search payload: %w", err)
	}

	h.log.WithFields(logrus.Fields{"page": page, "limite": payload["limite"]}).Debug("[CasaDadosHandler] Fetching search page")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.searchURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	h.setHeaders(req)

	resp, err := h.httpClient.Do(req)
	if err != nil {
		metrics.RecordProviderRequest("search", err)
		return nil, &dto.ProviderError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordProviderRequest("search", err)
		return nil, &dto.ProviderError{Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		perr := &dto.ProviderError{Status: resp.StatusCode, Body: string(respBody)}
		metrics.RecordProviderRequest("search", perr)
		h.log.WithFields(logrus.Fields{"page": page, "status": resp.StatusCode}).Warn("[CasaDadosHandler] Search failed")
		return nil, perr
	}

	result, err := decodeSearchPage(respBody)
	metrics.RecordProviderRequest("search", err)
	if err != nil {
		return nil, &dto.ProviderError{Status: resp.StatusCode, Body: string(respBody), Err: err}
	}

	h.log.WithFields(logrus.Fields{"page": page, "results": len(result.Results)}).Info("[CasaDadosHandler] Search page fetched")
	return result, nil
}

// FetchCompanyDetails returns the detail record of one company.
// Enrichment is best effort: any failure yields an empty map.
func (h *CasaDadosHandler) FetchCompanyDetails(ctx context.Context, cnpj string) map[string]interface{} {
	if !h.Configured() || cnpj == "" {
		return map[string]interface{}{}
	}

	if h.cache != nil {
		if details, ok := h.cache.Get(ctx, cnpj); ok {
			return details
		}
	}

	details, err := h.fetchDetails(ctx, cnpj)
	metrics.RecordProviderRequest("details", err)
	if err != nil {
		h.log.WithFields(logrus.Fields{"cnpj": cnpj, "error": err.Error()}).Warn("[CasaDadosHandler] Details fetch failed, continuing without enrichment")
		return map[string]interface{}{}
	}

	if h.cache != nil && len(details) > 0 {
		h.cache.Set(ctx, cnpj, details)
	}
	return details
}

func (h *CasaDadosHandler) fetchDetails(ctx context.Context, cnpj string) (map[string]interface{}, error) {
	endpoint := h.detailsURL + "/" + url.PathEscape(cnpj)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	h.setHeaders(req)

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, &dto.ProviderError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &dto.ProviderError{Status: resp.StatusCode, Body: string(body)}
	}

	var details map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		return nil, fmt.Errorf("failed to decode details response: %w", err)
	}
	if details == nil {
		return nil, errors.New("empty details response")
	}
	return details, nil
}

func (h *CasaDadosHandler) setHeaders(req *http.Request) {
	req.Header.Set("api-key", h.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}

// decodeSearchPage reads results from "cnpjs", falling back to "leads"
func decodeSearchPage(body []byte) (*dto.SearchPage, error) {
	var raw struct {
		Cnpjs []dto.Company `json:"cnpjs"`
		Leads []dto.Company `json:"leads"`
		Total *int          `json:"total"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	results := raw.Cnpjs
	if results == nil {
		results = raw.Leads
	}
	if results == nil {
		results = []dto.Company{}
	}
	return &dto.SearchPage{Results: results, Total: raw.Total}, nil
}

// BuildSearchPayload translates search filters into the registry request body.
// UF codes are uppercased, city and neighbourhood names lowercased,
// situacao_cadastral defaults to ATIVA and the contact flags are nested under mais_filtros.
func BuildSearchPayload(params dto.SearchParams, page int) map[string]interface{} {
	if page < 1 {
		page = 1
	}
	limite := params.Limite
	if limite <= 0 {
		limite = DefaultPageSize
	}

	payload := map[string]interface{}{
		"pagina": page,
		"limite": limite,
	}

	if len(params.UF) > 0 {
		payload["uf"] = mapStrings(params.UF, strings.ToUpper)
	}
	if len(params.Municipio) > 0 {
		payload["municipio"] = mapStrings(params.Municipio, strings.ToLower)
	}
	if len(params.Bairro) > 0 {
		payload["bairro"] = mapStrings(params.Bairro, strings.ToLower)
	}
	if len(params.CEP) > 0 {
		payload["cep"] = params.CEP
	}
	if len(params.DDD) > 0 {
		payload["ddd"] = params.DDD
	}
	if len(params.CodigoAtividadePrincipal) > 0 {
		payload["codigo_atividade_principal"] = params.CodigoAtividadePrincipal
	}
	if len(params.CodigoAtividadeSecundaria) > 0 {
		payload["codigo_atividade_secundaria"] = params.CodigoAtividadeSecundaria
	}
	if params.IncluirAtividadeSecundaria != nil {
		payload["incluir_atividade_secundaria"] = *params.IncluirAtividadeSecundaria
	}
	if len(params.CodigoNaturezaJuridica) > 0 {
		payload["codigo_natureza_juridica"] = params.CodigoNaturezaJuridica
	}

	if len(params.SituacaoCadastral) > 0 {
		payload["situacao_cadastral"] = params.SituacaoCadastral
	} else {
		payload["situacao_cadastral"] = []string{"ATIVA"}
	}

	if params.MatrizFilial != "" {
		payload["matriz_filial"] = params.MatrizFilial
	}
	if len(params.BuscaTextual) > 0 {
		payload["busca_textual"] = params.BuscaTextual
	}
	if params.DataAbertura != nil {
		payload["data_abertura"] = params.DataAbertura
	}
	if params.CapitalSocial != nil {
		payload["capital_social"] = params.CapitalSocial
	}
	if params.MEI != nil {
		payload["mei"] = params.MEI
	}
	if params.Simples != nil {
		payload["simples"] = params.Simples
	}

	extra := map[string]bool{}
	flags := []struct {
		key string
		on  bool
	}{
		{"somente_matriz", params.SomenteMatriz},
		{"somente_filial", params.SomenteFilial},
		{"com_email", params.ComEmail},
		{"com_telefone", params.ComTelefone},
		{"somente_fixo", params.SomenteFixo},
		{"somente_celular", params.SomenteCelular},
		{"excluir_email_contab", params.ExcluirEmailContab},
	}
	for _, f := range flags {
		if f.on {
			extra[f.key] = true
		}
	}
	if len(extra) > 0 {
		payload["mais_filtros"] = extra
	}

	return payload
}

func mapStrings(in []string, fn func(string) string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = fn(s)
	}
	return out
}
