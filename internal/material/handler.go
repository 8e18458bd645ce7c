package material

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/worktrack/backend/internal/transport"
	"github.com/worktrack/backend/pkg/logger"
)

type ServiceAPI interface {
	GetAllMaterials() ([]*Material, error)
	GetMaterialByID(id int64) (*Material, error)
	CreateMaterial(dto MaterialDTO) (*Material, error)
	UpdateMaterial(id int64, dto MaterialDTO) (*Material, error)
	DeleteMaterial(id int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     service,
	}
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid material ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) GetAllMaterials(w http.ResponseWriter, r *http.Request) {
	materials, err := h.Service.GetAllMaterials()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, materials)
}

func (h *Handler) GetMaterial(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	m, err := h.Service.GetMaterialByID(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, m)
}

func (h *Handler) CreateMaterial(w http.ResponseWriter, r *http.Request) {
	var dto MaterialDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	m, err := h.Service.CreateMaterial(dto)
	if err != nil {
		h.Logger.Error("CreateMaterial: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, m)
}

func (h *Handler) UpdateMaterial(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var dto MaterialDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	m, err := h.Service.UpdateMaterial(id, dto)
	if err != nil {
		h.Logger.Error("UpdateMaterial: service error", "error", err, "material_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, m)
}

func (h *Handler) DeleteMaterial(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteMaterial(id); err != nil {
		h.Logger.Error("DeleteMaterial: service error", "error", err, "material_id", id)
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
