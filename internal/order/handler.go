package order

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/worktrack/backend/internal/auth"
	"github.com/worktrack/backend/internal/transport"
	"github.com/worktrack/backend/pkg/logger"
)

type ServiceAPI interface {
	CreateOrder(dto OrderDTO, caller *auth.User) (*OrderResponse, error)
	GetAllOrders(caller *auth.User) ([]*OrderResponse, error)
	GetOrdersByStatus(statusName string, caller *auth.User) ([]*OrderResponse, error)
	GetOrderByID(id int64, caller *auth.User) (*OrderResponse, error)
	UpdateOrderStatus(id int64, dto StatusChangeDTO, caller *auth.User) (*OrderResponse, error)
	UpdateOrder(id int64, dto OrderDTO, caller *auth.User) (*OrderResponse, error)
	DeleteOrder(id int64, caller *auth.User) error
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
		h.WriteError(w, http.StatusBadRequest, "invalid order ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) caller(w http.ResponseWriter, r *http.Request) (*auth.User, bool) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return nil, false
	}
	return u, true
}

func (h *Handler) GetAllOrders(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	orders, err := h.Service.GetAllOrders(caller)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, orders)
}

func (h *Handler) GetOrdersByStatus(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	orders, err := h.Service.GetOrdersByStatus(chi.URLParam(r, "status"), caller)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, orders)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	o, err := h.Service.GetOrderByID(id, caller)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, o)
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var dto OrderDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	o, err := h.Service.CreateOrder(dto, caller)
	if err != nil {
		h.Logger.Error("CreateOrder: service error", "error", err, "product", dto.Product)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, o)
}

func (h *Handler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var dto OrderDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	o, err := h.Service.UpdateOrder(id, dto, caller)
	if err != nil {
		h.Logger.Error("UpdateOrder: service error", "error", err, "order_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, o)
}

func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var dto StatusChangeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	o, err := h.Service.UpdateOrderStatus(id, dto, caller)
	if err != nil {
		h.Logger.Error("UpdateOrderStatus: service error", "error", err, "order_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, o)
}

func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteOrder(id, caller); err != nil {
		h.Logger.Error("DeleteOrder: service error", "error", err, "order_id", id)
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
