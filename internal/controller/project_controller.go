package controller

import (
	"fmt"
	"log/slog"
	"net/http"

	"ev-energy-analytics/internal/model"
	"ev-energy-analytics/internal/repository"
	"ev-energy-analytics/internal/service"

	"github.com/gin-gonic/gin"
)

// ProjectController handles project and configuration HTTP requests
type ProjectController struct {
	projects       repository.ProjectRepository
	profileService service.ProfileService
	logger         *slog.Logger
}

// NewProjectController creates a new project controller
func NewProjectController(
	projects repository.ProjectRepository,
	profileService service.ProfileService,
	logger *slog.Logger,
) *ProjectController {
	return &ProjectController{
		projects:       projects,
		profileService: profileService,
		logger:         logger,
	}
}

// requireProject resolves the project_id path parameter and verifies the
// project exists. Writes the error response itself and returns "" on failure.
func (c *ProjectController) requireProject(ctx *gin.Context) string {
	projectID := ctx.Param("project_id")
	exists, err := c.projects.ProjectExists(projectID)
	if err != nil {
		c.logger.Error("failed to check project existence",
			"project_id", projectID,
			"error", err.Error(),
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to verify project existence",
		})
		return ""
	}
	if !exists {
		ctx.JSON(http.StatusNotFound, gin.H{
			"error":   "Project not found",
			"message": fmt.Sprintf("Project with ID %s does not exist", projectID),
		})
		return ""
	}
	return projectID
}

// CreateProject handles POST /v1/projects
func (c *ProjectController) CreateProject(ctx *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	project := &model.Project{Name: req.Name, Description: req.Description}
	if err := c.projects.CreateProject(project); err != nil {
		c.logger.Error("failed to create project",
			"name", req.Name,
			"error", err.Error(),
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to create project",
		})
		return
	}

	c.logger.Info("project created", "project_id", project.ID, "name", project.Name)
	ctx.JSON(http.StatusCreated, project)
}

// ListProjects handles GET /v1/projects
func (c *ProjectController) ListProjects(ctx *gin.Context) {
	projects, err := c.projects.ListProjects()
	if err != nil {
		c.logger.Error("failed to list projects", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to list projects",
		})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"projects": projects})
}

// GetProject handles GET /v1/projects/{project_id}
func (c *ProjectController) GetProject(ctx *gin.Context) {
	projectID := ctx.Param("project_id")
	project, err := c.projects.GetProject(projectID)
	if err != nil {
		c.logger.Error("failed to get project",
			"project_id", projectID,
			"error", err.Error(),
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to retrieve project",
		})
		return
	}
	if project == nil {
		ctx.JSON(http.StatusNotFound, gin.H{
			"error":   "Project not found",
			"message": fmt.Sprintf("Project with ID %s does not exist", projectID),
		})
		return
	}
	ctx.JSON(http.StatusOK, project)
}

// DeleteProject handles DELETE /v1/projects/{project_id}
func (c *ProjectController) DeleteProject(ctx *gin.Context) {
	projectID := c.requireProject(ctx)
	if projectID == "" {
		return
	}
	if err := c.projects.DeleteProject(projectID); err != nil {
		c.logger.Error("failed to delete project",
			"project_id", projectID,
			"error", err.Error(),
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to delete project",
		})
		return
	}
	c.logger.Info("project deleted", "project_id", projectID)
	ctx.Status(http.StatusNoContent)
}

// PutGenerationConfig handles PUT /v1/projects/{project_id}/generation
func (c *ProjectController) PutGenerationConfig(ctx *gin.Context) {
	projectID := c.requireProject(ctx)
	if projectID == "" {
		return
	}
	var cfg model.GenerationConfig
	if err := ctx.ShouldBindJSON(&cfg); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}
	cfg.ProjectID = projectID
	if err := c.projects.UpsertGenerationConfig(&cfg); err != nil {
		c.logger.Error("failed to save generation config",
			"project_id", projectID,
			"error", err.Error(),
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to save generation config",
		})
		return
	}
	ctx.JSON(http.StatusOK, cfg)
}

// GetGenerationConfig handles GET /v1/projects/{project_id}/generation
func (c *ProjectController) GetGenerationConfig(ctx *gin.Context) {
	projectID := c.requireProject(ctx)
	if projectID == "" {
		return
	}
	cfg, err := c.projects.GetGenerationConfig(projectID)
	if err != nil {
		c.logger.Error("failed to get generation config",
			"project_id", projectID,
			"error", err.Error(),
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to retrieve generation config",
		})
		return
	}
	if cfg == nil {
		ctx.JSON(http.StatusNotFound, gin.H{
			"error":   "Generation config not found",
			"message": "Project has no generation config",
		})
		return
	}
	ctx.JSON(http.StatusOK, cfg)
}

// PutStorageConfig handles PUT /v1/projects/{project_id}/storage
func (c *ProjectController) PutStorageConfig(ctx *gin.Context) {
	projectID := c.requireProject(ctx)
	if projectID == "" {
		return
	}
	var cfg model.StorageConfig
	if err := ctx.ShouldBindJSON(&cfg); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}
	cfg.ProjectID = projectID
	if err := c.projects.UpsertStorageConfig(&cfg); err != nil {
		c.logger.Error("failed to save storage config",
			"project_id", projectID,
			"error", err.Error(),
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to save storage config",
		})
		return
	}
	ctx.JSON(http.StatusOK, cfg)
}

// GetStorageConfig handles GET /v1/projects/{project_id}/storage
func (c *ProjectController) GetStorageConfig(ctx *gin.Context) {
	projectID := c.requireProject(ctx)
	if projectID == "" {
		return
	}
	cfg, err := c.projects.GetStorageConfig(projectID)
	if err != nil {
		c.logger.Error("failed to get storage config",
			"project_id", projectID,
			"error", err.Error(),
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to retrieve storage config",
		})
		return
	}
	if cfg == nil {
		ctx.JSON(http.StatusNotFound, gin.H{
			"error":   "Storage config not found",
			"message": "Project has no storage config",
		})
		return
	}
	ctx.JSON(http.StatusOK, cfg)
}

// PutGridConfig handles PUT /v1/projects/{project_id}/grid
func (c *ProjectController) PutGridConfig(ctx *gin.Context) {
	projectID := c.requireProject(ctx)
	if projectID == "" {
		return
	}
	var cfg model.GridConfig
	if err := ctx.ShouldBindJSON(&cfg); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}
	cfg.ProjectID = projectID
	if err := c.projects.UpsertGridConfig(&cfg); err != nil {
		c.logger.Error("failed to save grid config",
			"project_id", projectID,
			"error", err.Error(),
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to save grid config",
		})
		return
	}
	ctx.JSON(http.StatusOK, cfg)
}

// GetGridConfig handles GET /v1/projects/{project_id}/grid
func (c *ProjectController) GetGridConfig(ctx *gin.Context) {
	projectID := c.requireProject(ctx)
	if projectID == "" {
		return
	}
	cfg, err := c.projects.GetGridConfig(projectID)
	if err != nil {
		c.logger.Error("failed to get grid config",
			"project_id", projectID,
			"error", err.Error(),
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to retrieve grid config",
		})
		return
	}
	if cfg == nil {
		ctx.JSON(http.StatusNotFound, gin.H{
			"error":   "Grid config not found",
			"message": "Project has no grid config",
		})
		return
	}
	ctx.JSON(http.StatusOK, cfg)
}

// ListHubs handles GET /v1/projects/{project_id}/hubs
func (c *ProjectController) ListHubs(ctx *gin.Context) {
	projectID := c.requireProject(ctx)
	if projectID == "" {
		return
	}
	hubs, err := c.projects.ListHubs(projectID)
	if err != nil {
		c.logger.Error("failed to list hubs",
			"project_id", projectID,
			"error", err.Error(),
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to list charging hubs",
		})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"hubs": hubs})
}

// CreateHub handles POST /v1/projects/{project_id}/hubs
func (c *ProjectController) CreateHub(ctx *gin.Context) {
	projectID := c.requireProject(ctx)
	if projectID == "" {
		return
	}
	var hub model.ChargingHub
	if err := ctx.ShouldBindJSON(&hub); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}
	hub.ProjectID = projectID
	if err := c.projects.CreateHub(&hub); err != nil {
		c.logger.Error("failed to create hub",
			"project_id", projectID,
			"error", err.Error(),
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to create charging hub",
		})
		return
	}
	c.logger.Info("hub created", "project_id", projectID, "hub_id", hub.ID)
	ctx.JSON(http.StatusCreated, hub)
}

// UpdateHub handles PUT /v1/projects/{project_id}/hubs/{hub_id}
func (c *ProjectController) UpdateHub(ctx *gin.Context) {
	projectID := c.requireProject(ctx)
	if projectID == "" {
		return
	}
	var hub model.ChargingHub
	if err := ctx.ShouldBindJSON(&hub); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}
	hub.ID = ctx.Param("hub_id")
	hub.ProjectID = projectID
	if err := c.projects.UpdateHub(&hub); err != nil {
		c.logger.Error("failed to update hub",
			"project_id", projectID,
			"hub_id", hub.ID,
			"error", err.Error(),
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to update charging hub",
		})
		return
	}
	ctx.JSON(http.StatusOK, hub)
}

// DeleteHub handles DELETE /v1/projects/{project_id}/hubs/{hub_id}
func (c *ProjectController) DeleteHub(ctx *gin.Context) {
	projectID := c.requireProject(ctx)
	if projectID == "" {
		return
	}
	hubID := ctx.Param("hub_id")
	if err := c.projects.DeleteHub(hubID); err != nil {
		c.logger.Error("failed to delete hub",
			"project_id", projectID,
			"hub_id", hubID,
			"error", err.Error(),
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to delete charging hub",
		})
		return
	}
	ctx.Status(http.StatusNoContent)
}

// ListChargingProfiles handles GET /v1/projects/{project_id}/charging-profiles
func (c *ProjectController) ListChargingProfiles(ctx *gin.Context) {
	projectID := c.requireProject(ctx)
	if projectID == "" {
		return
	}
	profiles, err := c.projects.ListChargingProfiles(projectID)
	if err != nil {
		c.logger.Error("failed to list charging profiles",
			"project_id", projectID,
			"error", err.Error(),
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to list charging profiles",
		})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"charging_profiles": profiles})
}

// CreateChargingProfile handles POST /v1/projects/{project_id}/charging-profiles.
// The new profile gets a default flat behaviour record derived from its
// fleet's annual volume.
func (c *ProjectController) CreateChargingProfile(ctx *gin.Context) {
	projectID := c.requireProject(ctx)
	if projectID == "" {
		return
	}
	var profile model.ChargingProfile
	if err := ctx.ShouldBindJSON(&profile); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}
	profile.ProjectID = projectID
	if err := c.projects.CreateChargingProfile(&profile); err != nil {
		c.logger.Error("failed to create charging profile",
			"project_id", projectID,
			"error", err.Error(),
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to create charging profile",
		})
		return
	}

	behaviour, err := c.profileService.DefaultBehaviour(profile.ID)
	if err == nil {
		if err := c.projects.UpsertBehaviour(behaviour); err != nil {
			c.logger.Warn("failed to seed default behaviour",
				"charging_profile_id", profile.ID,
				"error", err.Error(),
			)
		} else {
			profile.Behaviour = behaviour
		}
	}

	c.logger.Info("charging profile created",
		"project_id", projectID,
		"charging_profile_id", profile.ID,
	)
	ctx.JSON(http.StatusCreated, profile)
}

// GetChargingProfile handles GET /v1/projects/{project_id}/charging-profiles/{profile_id}
func (c *ProjectController) GetChargingProfile(ctx *gin.Context) {
	projectID := c.requireProject(ctx)
	if projectID == "" {
		return
	}
	profileID := ctx.Param("profile_id")
	profile, err := c.projects.GetChargingProfile(profileID)
	if err != nil {
		c.logger.Error("failed to get charging profile",
			"charging_profile_id", profileID,
			"error", err.Error(),
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to retrieve charging profile",
		})
		return
	}
	if profile == nil {
		ctx.JSON(http.StatusNotFound, gin.H{
			"error":   "Charging profile not found",
			"message": fmt.Sprintf("Charging profile with ID %s does not exist", profileID),
		})
		return
	}
	ctx.JSON(http.StatusOK, profile)
}

// DeleteChargingProfile handles DELETE /v1/projects/{project_id}/charging-profiles/{profile_id}
func (c *ProjectController) DeleteChargingProfile(ctx *gin.Context) {
	projectID := c.requireProject(ctx)
	if projectID == "" {
		return
	}
	profileID := ctx.Param("profile_id")
	if err := c.projects.DeleteChargingProfile(profileID); err != nil {
		c.logger.Error("failed to delete charging profile",
			"charging_profile_id", profileID,
			"error", err.Error(),
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to delete charging profile",
		})
		return
	}
	ctx.Status(http.StatusNoContent)
}

// PutBehaviour handles PUT /v1/projects/{project_id}/charging-profiles/{profile_id}/behaviour
func (c *ProjectController) PutBehaviour(ctx *gin.Context) {
	projectID := c.requireProject(ctx)
	if projectID == "" {
		return
	}
	var behaviour model.ChargingProfileBehaviour
	if err := ctx.ShouldBindJSON(&behaviour); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}
	behaviour.ChargingProfileID = ctx.Param("profile_id")
	if err := c.projects.UpsertBehaviour(&behaviour); err != nil {
		c.logger.Error("failed to save behaviour",
			"charging_profile_id", behaviour.ChargingProfileID,
			"error", err.Error(),
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to save behaviour",
		})
		return
	}
	ctx.JSON(http.StatusOK, behaviour)
}

// CalibrateBehaviour handles POST /v1/projects/{project_id}/charging-profiles/{profile_id}/behaviour/calibrate
func (c *ProjectController) CalibrateBehaviour(ctx *gin.Context) {
	projectID := c.requireProject(ctx)
	if projectID == "" {
		return
	}
	profileID := ctx.Param("profile_id")
	behaviour, err := c.profileService.Calibrate(profileID)
	if err != nil {
		c.logger.Error("failed to calibrate behaviour",
			"charging_profile_id", profileID,
			"error", err.Error(),
		)
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "Calibration failed",
			"message": err.Error(),
		})
		return
	}
	ctx.JSON(http.StatusOK, behaviour)
}

// CreateCostEntry handles POST /v1/projects/{project_id}/costs
func (c *ProjectController) CreateCostEntry(ctx *gin.Context) {
	projectID := c.requireProject(ctx)
	if projectID == "" {
		return
	}
	var entry model.CostEntry
	if err := ctx.ShouldBindJSON(&entry); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}
	if entry.CostType != "Capex" && entry.CostType != "Opex" {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid cost_type",
			"message": "cost_type must be Capex or Opex",
		})
		return
	}
	entry.ProjectID = projectID
	if err := c.projects.CreateCostEntry(&entry); err != nil {
		c.logger.Error("failed to create cost entry",
			"project_id", projectID,
			"error", err.Error(),
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to create cost entry",
		})
		return
	}
	ctx.JSON(http.StatusCreated, entry)
}

// ListCostEntries handles GET /v1/projects/{project_id}/costs
func (c *ProjectController) ListCostEntries(ctx *gin.Context) {
	projectID := c.requireProject(ctx)
	if projectID == "" {
		return
	}
	entries, err := c.projects.ListCostEntries(projectID)
	if err != nil {
		c.logger.Error("failed to list cost entries",
			"project_id", projectID,
			"error", err.Error(),
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to list cost entries",
		})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"cost_entries": entries})
}

// DeleteCostEntry handles DELETE /v1/projects/{project_id}/costs/{cost_id}
func (c *ProjectController) DeleteCostEntry(ctx *gin.Context) {
	projectID := c.requireProject(ctx)
	if projectID == "" {
		return
	}
	costID := ctx.Param("cost_id")
	if err := c.projects.DeleteCostEntry(costID); err != nil {
		c.logger.Error("failed to delete cost entry",
			"cost_id", costID,
			"error", err.Error(),
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to delete cost entry",
		})
		return
	}
	ctx.Status(http.StatusNoContent)
}
