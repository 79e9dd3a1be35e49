package repository

import (
	"errors"

	"ev-energy-analytics/internal/model"

	"gorm.io/gorm"
)

// ProjectRepository defines persistence for projects and their
// configuration entities. Config getters return (nil, nil) when no record
// exists: absence is a normal state the pipeline pattern-matches on, not an
// error.
type ProjectRepository interface {
	CreateProject(project *model.Project) error
	GetProject(id string) (*model.Project, error)
	ListProjects() ([]model.Project, error)
	DeleteProject(id string) error
	ProjectExists(id string) (bool, error)

	GetGenerationConfig(projectID string) (*model.GenerationConfig, error)
	UpsertGenerationConfig(cfg *model.GenerationConfig) error
	GetStorageConfig(projectID string) (*model.StorageConfig, error)
	UpsertStorageConfig(cfg *model.StorageConfig) error
	GetGridConfig(projectID string) (*model.GridConfig, error)
	UpsertGridConfig(cfg *model.GridConfig) error

	ListHubs(projectID string) ([]model.ChargingHub, error)
	CreateHub(hub *model.ChargingHub) error
	UpdateHub(hub *model.ChargingHub) error
	DeleteHub(id string) error

	CreateChargingProfile(profile *model.ChargingProfile) error
	GetChargingProfile(id string) (*model.ChargingProfile, error)
	ListChargingProfiles(projectID string) ([]model.ChargingProfile, error)
	DeleteChargingProfile(id string) error
	GetBehaviour(chargingProfileID string) (*model.ChargingProfileBehaviour, error)
	UpsertBehaviour(behaviour *model.ChargingProfileBehaviour) error

	CreateCostEntry(entry *model.CostEntry) error
	ListCostEntries(projectID string) ([]model.CostEntry, error)
	DeleteCostEntry(id string) error
}

// projectRepository implements ProjectRepository on gorm.
type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) CreateProject(project *model.Project) error {
	return r.db.Create(project).Error
}

func (r *projectRepository) GetProject(id string) (*model.Project, error) {
	var project model.Project
	err := r.db.Where("id = ?", id).First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) ListProjects() ([]model.Project, error) {
	var projects []model.Project
	err := r.db.Order("created_at DESC").Find(&projects).Error
	return projects, err
}

func (r *projectRepository) DeleteProject(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.Project{}).Error
}

func (r *projectRepository) ProjectExists(id string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Project{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *projectRepository) GetGenerationConfig(projectID string) (*model.GenerationConfig, error) {
	var cfg model.GenerationConfig
	err := r.db.Where("project_id = ?", projectID).First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *projectRepository) UpsertGenerationConfig(cfg *model.GenerationConfig) error {
	existing, err := r.GetGenerationConfig(cfg.ProjectID)
	if err != nil {
		return err
	}
	if existing != nil {
		cfg.ID = existing.ID
		cfg.CreatedAt = existing.CreatedAt
		return r.db.Save(cfg).Error
	}
	return r.db.Create(cfg).Error
}

func (r *projectRepository) GetStorageConfig(projectID string) (*model.StorageConfig, error) {
	var cfg model.StorageConfig
	err := r.db.Where("project_id = ?", projectID).First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *projectRepository) UpsertStorageConfig(cfg *model.StorageConfig) error {
	existing, err := r.GetStorageConfig(cfg.ProjectID)
	if err != nil {
		return err
	}
	if existing != nil {
		cfg.ID = existing.ID
		cfg.CreatedAt = existing.CreatedAt
		return r.db.Save(cfg).Error
	}
	return r.db.Create(cfg).Error
}

func (r *projectRepository) GetGridConfig(projectID string) (*model.GridConfig, error) {
	var cfg model.GridConfig
	err := r.db.Where("project_id = ?", projectID).First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *projectRepository) UpsertGridConfig(cfg *model.GridConfig) error {
	existing, err := r.GetGridConfig(cfg.ProjectID)
	if err != nil {
		return err
	}
	if existing != nil {
		cfg.ID = existing.ID
		cfg.CreatedAt = existing.CreatedAt
		return r.db.Save(cfg).Error
	}
	return r.db.Create(cfg).Error
}

func (r *projectRepository) ListHubs(projectID string) ([]model.ChargingHub, error) {
	var hubs []model.ChargingHub
	err := r.db.
		Preload("ChargingProfile").
		Preload("ChargingProfile.Behaviour").
		Where("project_id = ?", projectID).
		Order("priority ASC").
		Find(&hubs).Error
	return hubs, err
}

func (r *projectRepository) CreateHub(hub *model.ChargingHub) error {
	return r.db.Create(hub).Error
}

func (r *projectRepository) UpdateHub(hub *model.ChargingHub) error {
	return r.db.Save(hub).Error
}

func (r *projectRepository) DeleteHub(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.ChargingHub{}).Error
}

func (r *projectRepository) CreateChargingProfile(profile *model.ChargingProfile) error {
	return r.db.Create(profile).Error
}

func (r *projectRepository) GetChargingProfile(id string) (*model.ChargingProfile, error) {
	var profile model.ChargingProfile
	err := r.db.Preload("Behaviour").Where("id = ?", id).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *projectRepository) ListChargingProfiles(projectID string) ([]model.ChargingProfile, error) {
	var profiles []model.ChargingProfile
	err := r.db.Preload("Behaviour").Where("project_id = ?", projectID).Find(&profiles).Error
	return profiles, err
}

func (r *projectRepository) DeleteChargingProfile(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.ChargingProfile{}).Error
}

func (r *projectRepository) GetBehaviour(chargingProfileID string) (*model.ChargingProfileBehaviour, error) {
	var behaviour model.ChargingProfileBehaviour
	err := r.db.Where("charging_profile_id = ?", chargingProfileID).First(&behaviour).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &behaviour, nil
}

func (r *projectRepository) UpsertBehaviour(behaviour *model.ChargingProfileBehaviour) error {
	existing, err := r.GetBehaviour(behaviour.ChargingProfileID)
	if err != nil {
		return err
	}
	if existing != nil {
		behaviour.ID = existing.ID
		behaviour.CreatedAt = existing.CreatedAt
		return r.db.Save(behaviour).Error
	}
	return r.db.Create(behaviour).Error
}

func (r *projectRepository) CreateCostEntry(entry *model.CostEntry) error {
	return r.db.Create(entry).Error
}

func (r *projectRepository) ListCostEntries(projectID string) ([]model.CostEntry, error) {
	var entries []model.CostEntry
	err := r.db.Where("project_id = ?", projectID).Order("created_at ASC").Find(&entries).Error
	return entries, err
}

func (r *projectRepository) DeleteCostEntry(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.CostEntry{}).Error
}
