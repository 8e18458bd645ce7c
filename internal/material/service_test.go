package material_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/worktrack/backend/internal"
	"github.com/worktrack/backend/internal/material"
)

func TestMaterialService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Material Service Suite")
}

type mockMaterialRepository struct {
	materials map[int64]*material.Material
	nextID    int64
}

func newMockMaterialRepository() *mockMaterialRepository {
	return &mockMaterialRepository{
		materials: make(map[int64]*material.Material),
		nextID:    1,
	}
}

func (m *mockMaterialRepository) GetAll() ([]*material.Material, error) {
	result := make([]*material.Material, 0, len(m.materials))
	for _, mat := range m.materials {
		result = append(result, mat)
	}
	return result, nil
}

func (m *mockMaterialRepository) GetByID(id int64) (*material.Material, error) {
	mat, ok := m.materials[id]
	if !ok {
		return nil, errors.New("material not found")
	}
	copied := *mat
	return &copied, nil
}

func (m *mockMaterialRepository) ExistsByName(name string) (bool, error) {
	for _, mat := range m.materials {
		if mat.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockMaterialRepository) Create(mat *material.Material) error {
	mat.ID = m.nextID
	m.nextID++
	copied := *mat
	m.materials[mat.ID] = &copied
	return nil
}

func (m *mockMaterialRepository) Update(mat *material.Material) error {
	copied := *mat
	m.materials[mat.ID] = &copied
	return nil
}

func (m *mockMaterialRepository) Delete(id int64) error {
	delete(m.materials, id)
	return nil
}

func (m *mockMaterialRepository) Exists(id int64) (bool, error) {
	_, ok := m.materials[id]
	return ok, nil
}

var _ = Describe("MaterialService", func() {
	var (
		service *material.Service
		repo    *mockMaterialRepository
	)

	BeforeEach(func() {
		repo = newMockMaterialRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = material.NewService(repo, logger)
	})

	validDTO := func() material.MaterialDTO {
		return material.MaterialDTO{
			Name:          "Steel sheet 2mm",
			Description:   "Cold rolled",
			Unit:          "kg",
			StockQuantity: 1200,
		}
	}

	Describe("CreateMaterial", func() {
		It("should persist a valid material", func() {
			m, err := service.CreateMaterial(validDTO())

			Expect(err).ToNot(HaveOccurred())
			Expect(m.ID).To(BeNumerically(">", 0))
			Expect(m.Unit).To(Equal("kg"))
		})

		It("should reject a duplicate name", func() {
			_, err := service.CreateMaterial(validDTO())
			Expect(err).ToNot(HaveOccurred())

			_, err = service.CreateMaterial(validDTO())
			Expect(err).To(Equal(internal.ErrMaterialNameTaken))
		})

		It("should reject negative stock", func() {
			dto := validDTO()
			dto.StockQuantity = -5

			_, err := service.CreateMaterial(dto)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("UpdateMaterial", func() {
		It("should allow keeping one's own name", func() {
			m, err := service.CreateMaterial(validDTO())
			Expect(err).ToNot(HaveOccurred())

			dto := validDTO()
			dto.StockQuantity = 1000
			updated, err := service.UpdateMaterial(m.ID, dto)
			Expect(err).ToNot(HaveOccurred())
			Expect(updated.StockQuantity).To(Equal(1000.0))
		})

		It("should reject taking another material's name", func() {
			first, err := service.CreateMaterial(validDTO())
			Expect(err).ToNot(HaveOccurred())

			other := validDTO()
			other.Name = "Aluminium rod 10mm"
			_, err = service.CreateMaterial(other)
			Expect(err).ToNot(HaveOccurred())

			dto := validDTO()
			dto.Name = "Aluminium rod 10mm"
			_, err = service.UpdateMaterial(first.ID, dto)
			Expect(err).To(Equal(internal.ErrMaterialNameTaken))
		})
	})

	Describe("DeleteMaterial", func() {
		It("should hard-delete the row", func() {
			m, err := service.CreateMaterial(validDTO())
			Expect(err).ToNot(HaveOccurred())

			Expect(service.DeleteMaterial(m.ID)).To(Succeed())
			_, err = service.GetMaterialByID(m.ID)
			Expect(err).To(Equal(internal.ErrMaterialNotFound))
		})

		It("should return not found for a missing material", func() {
			Expect(service.DeleteMaterial(42)).To(Equal(internal.ErrMaterialNotFound))
		})
	})
})
