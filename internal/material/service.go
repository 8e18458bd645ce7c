package material

import (
	"log/slog"
	"time"

	"github.com/worktrack/backend/internal"
)

// Repository defines the data access methods for materials.
type Repository interface {
	GetAll() ([]*Material, error)
	GetByID(id int64) (*Material, error)
	ExistsByName(name string) (bool, error)
	Create(m *Material) error
	Update(m *Material) error
	Delete(id int64) error
	Exists(id int64) (bool, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetAllMaterials() ([]*Material, error) {
	materials, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list materials", "error", err)
		return nil, err
	}
	return materials, nil
}

func (s *Service) GetMaterialByID(id int64) (*Material, error) {
	m, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrMaterialNotFound
	}
	return m, nil
}

func (s *Service) CreateMaterial(dto MaterialDTO) (*Material, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	taken, err := s.repo.ExistsByName(dto.Name)
	if err != nil {
		s.logger.Error("failed to check material name", "error", err)
		return nil, err
	}
	if taken {
		return nil, internal.ErrMaterialNameTaken
	}

	now := time.Now()
	m := &Material{
		Name:          dto.Name,
		Description:   dto.Description,
		Unit:          dto.Unit,
		StockQuantity: dto.StockQuantity,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(m); err != nil {
		s.logger.Error("failed to create material", "error", err)
		return nil, err
	}

	s.logger.Info("material created", "material_id", m.ID, "name", m.Name)
	return m, nil
}

func (s *Service) UpdateMaterial(id int64, dto MaterialDTO) (*Material, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	m, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrMaterialNotFound
	}

	// conflict check excludes the material's own current name
	if dto.Name != m.Name {
		taken, err := s.repo.ExistsByName(dto.Name)
		if err != nil {
			s.logger.Error("failed to check material name", "error", err)
			return nil, err
		}
		if taken {
			return nil, internal.ErrMaterialNameTaken
		}
	}

	m.Name = dto.Name
	m.Description = dto.Description
	m.Unit = dto.Unit
	m.StockQuantity = dto.StockQuantity
	m.UpdatedAt = time.Now()

	if err := s.repo.Update(m); err != nil {
		s.logger.Error("failed to update material", "error", err, "material_id", id)
		return nil, err
	}

	return m, nil
}

// DeleteMaterial hard-deletes the row. Orders referencing the material keep
// working; the database clears their material_id.
func (s *Service) DeleteMaterial(id int64) error {
	exists, err := s.repo.Exists(id)
	if err != nil {
		s.logger.Error("failed to check material existence", "error", err, "material_id", id)
		return err
	}
	if !exists {
		return internal.ErrMaterialNotFound
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete material", "error", err, "material_id", id)
		return err
	}

	s.logger.Info("material deleted", "material_id", id)
	return nil
}
