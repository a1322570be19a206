package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"dashformance/leads-api/internal/dto"

	"github.com/gin-gonic/gin"
)

// LeadManager is the lead management surface used by LeadsController
type LeadManager interface {
	Create(ctx context.Context, input dto.LeadInput) (*dto.Lead, error)
	CreateMany(ctx context.Context, inputs []dto.LeadInput) (int, error)
	FindAll(ctx context.Context, page, limit int) (*dto.LeadListResponse, error)
	FindOne(ctx context.Context, id string) (*dto.Lead, error)
	FindAllTrashed(ctx context.Context) ([]dto.Lead, error)
	Update(ctx context.Context, id string, data map[string]interface{}) (*dto.Lead, error)
	UpdateMany(ctx context.Context, ids []string, data map[string]interface{}) (int, error)
	Disqualify(ctx context.Context, id string) (*dto.Lead, error)
	Remove(ctx context.Context, id string) (*dto.Lead, error)
	Restore(ctx context.Context, id string) (*dto.Lead, error)
	RemoveMany(ctx context.Context, ids []string) (int, error)
	RestoreMany(ctx context.Context, ids []string) (int, error)
	HardDelete(ctx context.Context, id string) error
	CleanupDuplicates(ctx context.Context) (*dto.CleanupResult, error)
	DivideLeads(ctx context.Context, primaryCount int, scope string) (*dto.DivideResult, error)
}

// LeadsController handles lead CRUD and maintenance requests
type LeadsController struct {
	leads LeadManager
}

// NewLeadsController creates a new LeadsController instance
func NewLeadsController(leads LeadManager) *LeadsController {
	return &LeadsController{leads: leads}
}

// Create godoc
// @Summary      Create a lead
// @Description  Create one lead. A placeholder CNPJ is generated when none is given.
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        request body dto.LeadInput true "Lead"
// @Success      201 {object} dto.Lead
// @Failure      400 {object} dto.APIError
// @Failure      409 {object} dto.APIError "CNPJ already exists"
// @Router       /leads [post]
func (ctrl *LeadsController) Create(c *gin.Context) {
	var input dto.LeadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err)
		return
	}
	if input.CompanyName == "" {
		respondBadRequest(c, errors.New("company_name is required"))
		return
	}

	lead, err := ctrl.leads.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, lead)
}

// CreateMany godoc
// @Summary      Import leads
// @Description  Upsert a batch of leads by CNPJ. Existing rows are refreshed and restored from the trash.
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        request body []dto.LeadInput true "Leads"
// @Success      201 {object} dto.CountResponse
// @Failure      400 {object} dto.APIError
// @Router       /leads/batch [post]
func (ctrl *LeadsController) CreateMany(c *gin.Context) {
	var inputs []dto.LeadInput
	if err := c.ShouldBindJSON(&inputs); err != nil {
		respondBadRequest(c, err)
		return
	}

	count, err := ctrl.leads.CreateMany(c.Request.Context(), inputs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CountResponse{Count: count})
}

// FindAll godoc
// @Summary      List leads
// @Description  Page through active leads, newest first
// @Tags         leads
// @Produce      json
// @Param        page  query int false "Page number (default 1)"
// @Param        limit query int false "Page size (default 50)"
// @Success      200 {object} dto.LeadListResponse
// @Failure      400 {object} dto.APIError
// @Router       /leads [get]
func (ctrl *LeadsController) FindAll(c *gin.Context) {
	page, err := queryInt(c, "page", 1)
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	limit, err := queryInt(c, "limit", 50)
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	result, err := ctrl.leads.FindAll(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// FindAllTrashed godoc
// @Summary      List trashed leads
// @Tags         leads
// @Produce      json
// @Success      200 {array} dto.Lead
// @Router       /leads/trashed [get]
func (ctrl *LeadsController) FindAllTrashed(c *gin.Context) {
	leads, err := ctrl.leads.FindAllTrashed(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, leads)
}

// FindOne godoc
// @Summary      Get a lead
// @Tags         leads
// @Produce      json
// @Param        id path string true "Lead ID"
// @Success      200 {object} dto.Lead
// @Failure      404 {object} dto.APIError
// @Router       /leads/{id} [get]
func (ctrl *LeadsController) FindOne(c *gin.Context) {
	lead, err := ctrl.leads.FindOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

// Update godoc
// @Summary      Update a lead
// @Description  Apply a partial update. Unknown fields are ignored; dates accept RFC3339 or YYYY-MM-DD.
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        id      path string true "Lead ID"
// @Param        request body object true "Fields to change"
// @Success      200 {object} dto.Lead
// @Failure      400 {object} dto.APIError
// @Failure      404 {object} dto.APIError
// @Router       /leads/{id} [patch]
func (ctrl *LeadsController) Update(c *gin.Context) {
	var data map[string]interface{}
	if err := c.ShouldBindJSON(&data); err != nil {
		respondBadRequest(c, err)
		return
	}

	lead, err := ctrl.leads.Update(c.Request.Context(), c.Param("id"), data)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

// UpdateMany godoc
// @Summary      Update many leads
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        request body dto.BatchUpdateRequest true "IDs and fields to change"
// @Success      200 {object} dto.CountResponse
// @Failure      400 {object} dto.APIError
// @Router       /leads/batch/update [post]
func (ctrl *LeadsController) UpdateMany(c *gin.Context) {
	var req dto.BatchUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	count, err := ctrl.leads.UpdateMany(c.Request.Context(), req.IDs, req.Data)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CountResponse{Count: count})
}

// Disqualify godoc
// @Summary      Disqualify a lead
// @Tags         leads
// @Produce      json
// @Param        id path string true "Lead ID"
// @Success      200 {object} dto.Lead
// @Failure      404 {object} dto.APIError
// @Router       /leads/{id}/disqualify [post]
func (ctrl *LeadsController) Disqualify(c *gin.Context) {
	lead, err := ctrl.leads.Disqualify(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

// Remove godoc
// @Summary      Move a lead to the trash
// @Tags         leads
// @Produce      json
// @Param        id path string true "Lead ID"
// @Success      200 {object} dto.Lead
// @Failure      404 {object} dto.APIError
// @Router       /leads/{id} [delete]
func (ctrl *LeadsController) Remove(c *gin.Context) {
	lead, err := ctrl.leads.Remove(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

// Restore godoc
// @Summary      Restore a lead from the trash
// @Tags         leads
// @Produce      json
// @Param        id path string true "Lead ID"
// @Success      200 {object} dto.Lead
// @Failure      404 {object} dto.APIError
// @Router       /leads/{id}/restore [post]
func (ctrl *LeadsController) Restore(c *gin.Context) {
	lead, err := ctrl.leads.Restore(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

// HardDelete godoc
// @Summary      Permanently delete a lead
// @Tags         leads
// @Param        id path string true "Lead ID"
// @Success      204
// @Failure      404 {object} dto.APIError
// @Router       /leads/{id}/hard-delete [delete]
func (ctrl *LeadsController) HardDelete(c *gin.Context) {
	if err := ctrl.leads.HardDelete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveMany godoc
// @Summary      Move many leads to the trash
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        request body dto.IDsRequest true "Lead IDs"
// @Success      200 {object} dto.CountResponse
// @Failure      400 {object} dto.APIError
// @Router       /leads/batch/delete [post]
func (ctrl *LeadsController) RemoveMany(c *gin.Context) {
	ctrl.batch(c, ctrl.leads.RemoveMany)
}

// RestoreMany godoc
// @Summary      Restore many leads from the trash
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        request body dto.IDsRequest true "Lead IDs"
// @Success      200 {object} dto.CountResponse
// @Failure      400 {object} dto.APIError
// @Router       /leads/batch/restore [post]
func (ctrl *LeadsController) RestoreMany(c *gin.Context) {
	ctrl.batch(c, ctrl.leads.RestoreMany)
}

func (ctrl *LeadsController) batch(c *gin.Context, op func(context.Context, []string) (int, error)) {
	var req dto.IDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	count, err := op(c.Request.Context(), req.IDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CountResponse{Count: count})
}

// CleanupDuplicates godoc
// @Summary      Remove duplicate leads
// @Description  Trash active leads sharing an email or phone with a better lead. Leads with operator notes are always kept.
// @Tags         leads
// @Produce      json
// @Success      200 {object} dto.CleanupResult
// @Router       /leads/cleanup-duplicates [post]
func (ctrl *LeadsController) CleanupDuplicates(c *gin.Context) {
	result, err := ctrl.leads.CleanupDuplicates(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// DivideLeads godoc
// @Summary      Divide leads between the owners
// @Description  Shuffle the active leads of sourceOwner (unassigned, all or an owner) and give primaryCount of them to the first owner, the rest to the second.
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        request body dto.DivideRequest true "Division"
// @Success      200 {object} dto.DivideResult
// @Failure      400 {object} dto.APIError
// @Router       /leads/divide [post]
func (ctrl *LeadsController) DivideLeads(c *gin.Context) {
	var req dto.DivideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	count := req.PrimaryCount
	if count == nil {
		count = req.JoaoCount
	}
	if count == nil {
		respondBadRequest(c, errors.New("primaryCount is required"))
		return
	}

	result, err := ctrl.leads.DivideLeads(c.Request.Context(), *count, req.SourceOwner)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// queryInt reads a positive integer query parameter
func queryInt(c *gin.Context, key string, fallback int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, errors.New(key + " must be a positive integer")
	}
	return n, nil
}
