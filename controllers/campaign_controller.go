package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"retail-hub/middleware"
	"retail-hub/models"
	"retail-hub/services"
)

type CampaignController struct {
	campaigns *services.CampaignService
	admin     *services.AdminService
	log       *zap.Logger
}

func NewCampaignController(campaigns *services.CampaignService, admin *services.AdminService, log *zap.Logger) *CampaignController {
	return &CampaignController{campaigns: campaigns, admin: admin, log: log}
}

// @Summary Get all campaigns
// @Description Get campaigns in creation order
// @Tags Campaigns
// @Produce json
// @Success 200 {object} models.Response
// @Router /campaigns [get]
func (ctrl *CampaignController) ListCampaigns(c *gin.Context) {
	campaigns, err := ctrl.campaigns.ListCampaigns(c.Request.Context())
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Campaigns retrieved",
		Data:    campaigns,
	})
}

// @Summary Get campaign by ID
// @Tags Campaigns
// @Produce json
// @Param campaignID path string true "Campaign ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /campaigns/{campaignID} [get]
func (ctrl *CampaignController) GetCampaign(c *gin.Context) {
	campaign, err := ctrl.campaigns.GetCampaign(c.Request.Context(), c.Param("campaignID"))
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Campaign retrieved",
		Data:    campaign,
	})
}

// @Summary Create campaign
// @Tags Campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CampaignRequest true "Campaign"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /campaigns [post]
func (ctrl *CampaignController) CreateCampaign(c *gin.Context) {
	var req models.CampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	principal, _ := middleware.GetPrincipal(c)
	campaign, err := ctrl.admin.CreateCampaign(c.Request.Context(), principal, req)
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Campaign created",
		Data:    campaign,
	})
}

// @Summary Update campaign
// @Description Replace the editable fields of a campaign. The campaignID in the body is ignored.
// @Tags Campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param campaignID path string true "Campaign ID"
// @Param request body models.CampaignRequest true "Campaign"
// @Success 200 {object} models.UpdateResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /campaigns/{campaignID} [put]
func (ctrl *CampaignController) UpdateCampaign(c *gin.Context) {
	var req models.CampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	principal, _ := middleware.GetPrincipal(c)
	campaign, err := ctrl.admin.UpdateCampaign(c.Request.Context(), principal, c.Param("campaignID"), req)
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}

	c.JSON(http.StatusOK, models.UpdateResponse{
		Success: true,
		Result:  campaign,
	})
}

// @Summary Campaign editor workspace
// @Description List campaigns and pick the selected one, the first one, or a blank template
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param selected query string false "Selected campaign ID"
// @Success 200 {object} models.Response
// @Router /admin/campaigns/workspace [get]
func (ctrl *CampaignController) Workspace(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)
	workspace, err := ctrl.admin.Workspace(c.Request.Context(), principal, c.Query("selected"))
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Campaign workspace retrieved",
		Data:    workspace,
	})
}

// @Summary Save campaign from the admin editor
// @Description Create when campaignID is empty, otherwise update, and reselect the saved campaign
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CampaignRequest true "Campaign form"
// @Success 200 {object} models.Response
// @Router /admin/campaigns/workspace [post]
func (ctrl *CampaignController) SaveCampaign(c *gin.Context) {
	var req models.CampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	principal, _ := middleware.GetPrincipal(c)
	workspace, err := ctrl.admin.SaveCampaign(c.Request.Context(), principal, req)
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Campaign saved",
		Data:    workspace,
	})
}
