package controllers

import (
	"context"
	"net/http"

	"dashformance/leads-api/internal/dto"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Extractor runs registry searches and deep discovery
type Extractor interface {
	Search(ctx context.Context, params dto.SearchParams, page int) (*dto.SearchPage, error)
	ExtractAndSave(ctx context.Context, params dto.SearchParams, target int, dryRun bool) (*dto.ExtractionResult, error)
}

// ExtractionController handles registry search and extraction requests
type ExtractionController struct {
	extractor Extractor
	log       *logrus.Entry
}

// NewExtractionController creates a new ExtractionController instance
func NewExtractionController(extractor Extractor, logger *logrus.Logger) *ExtractionController {
	return &ExtractionController{
		extractor: extractor,
		log:       logger.WithField("component", "ExtractionController"),
	}
}

// Search godoc
// @Summary      Search the company registry
// @Description  Run one page of a Casa dos Dados advanced search. Results are returned as-is, without deduplication or enrichment.
// @Tags         extraction
// @Accept       json
// @Produce      json
// @Param        request body dto.SearchRequest true "Search filters and page"
// @Success      200 {object} dto.SearchPage
// @Failure      400 {object} dto.APIError "Validation error"
// @Failure      500 {object} dto.APIError "API key not configured"
// @Failure      502 {object} dto.APIError "Registry error"
// @Router       /extraction/search [post]
func (ctrl *ExtractionController) Search(c *gin.Context) {
	var req dto.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	page, err := ctrl.extractor.Search(c.Request.Context(), req.Params, req.Page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Extract godoc
// @Summary      Extract and save new leads
// @Description  Walk registry pages until limit new leads are saved, the search is exhausted or 100 pages were scanned. Partial progress is reported with an error field when a page fails.
// @Tags         extraction
// @Accept       json
// @Produce      json
// @Param        request body dto.ExtractionRequest true "Search filters and target count (default 200)"
// @Success      200 {object} dto.ExtractionResult
// @Failure      400 {object} dto.APIError "Validation error"
// @Failure      500 {object} dto.APIError "API key not configured"
// @Router       /extraction/extract [post]
func (ctrl *ExtractionController) Extract(c *gin.Context) {
	ctrl.run(c, false)
}

// Preview godoc
// @Summary      Preview new leads
// @Description  Same as extract but nothing is written; new leads are returned as candidates that can be posted to /leads/batch.
// @Tags         extraction
// @Accept       json
// @Produce      json
// @Param        request body dto.ExtractionRequest true "Search filters and target count (default 50)"
// @Success      200 {object} dto.ExtractionResult
// @Failure      400 {object} dto.APIError "Validation error"
// @Failure      500 {object} dto.APIError "API key not configured"
// @Router       /extraction/preview [post]
func (ctrl *ExtractionController) Preview(c *gin.Context) {
	ctrl.run(c, true)
}

func (ctrl *ExtractionController) run(c *gin.Context, dryRun bool) {
	var req dto.ExtractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	result, err := ctrl.extractor.ExtractAndSave(c.Request.Context(), req.Params, req.Limit, dryRun)
	if err != nil {
		respondError(c, err)
		return
	}

	if result.Error != nil {
		ctrl.log.WithFields(logrus.Fields{
			"code":    result.Error.Code,
			"dry_run": dryRun,
		}).Warn("[ExtractionController] Extraction finished with error")
	}
	c.JSON(http.StatusOK, result)
}
