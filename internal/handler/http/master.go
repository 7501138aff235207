package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/cmlabs-hris/timeclock-go/internal/domain/directory"
	"github.com/cmlabs-hris/timeclock-go/internal/handler/http/response"
	"github.com/cmlabs-hris/timeclock-go/internal/service/master"
	"github.com/go-chi/chi/v5"
)

type MasterHandler interface {
	ListDepartments(w http.ResponseWriter, r *http.Request)
	AddDepartment(w http.ResponseWriter, r *http.Request)
	RemoveDepartment(w http.ResponseWriter, r *http.Request)

	ListPositions(w http.ResponseWriter, r *http.Request)
	AddPosition(w http.ResponseWriter, r *http.Request)
	RemovePosition(w http.ResponseWriter, r *http.Request)
}

type masterHandlerImpl struct {
	masterService master.MasterService
}

func NewMasterHandler(masterService master.MasterService) MasterHandler {
	return &masterHandlerImpl{masterService: masterService}
}

func (h *masterHandlerImpl) ListDepartments(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.ListDepartments(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *masterHandlerImpl) AddDepartment(w http.ResponseWriter, r *http.Request) {
	var req directory.NameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("AddDepartment decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.masterService.AddDepartment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	writeAdded(w, "Department", result)
}

func (h *masterHandlerImpl) RemoveDepartment(w http.ResponseWriter, r *http.Request) {
	if err := h.masterService.RemoveDepartment(r.Context(), nameParam(r)); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Department removed", nil)
}

func (h *masterHandlerImpl) ListPositions(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.ListPositions(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *masterHandlerImpl) AddPosition(w http.ResponseWriter, r *http.Request) {
	var req directory.NameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("AddPosition decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.masterService.AddPosition(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	writeAdded(w, "Position", result)
}

func (h *masterHandlerImpl) RemovePosition(w http.ResponseWriter, r *http.Request) {
	if err := h.masterService.RemovePosition(r.Context(), nameParam(r)); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Position removed", nil)
}

func writeAdded(w http.ResponseWriter, kind string, result directory.AddResponse) {
	if result.Added {
		response.Created(w, kind+" added", result)
		return
	}
	response.SuccessWithMessage(w, kind+" already exists", result)
}

func nameParam(r *http.Request) string {
	name := chi.URLParam(r, "name")
	if unescaped, err := url.PathUnescape(name); err == nil {
		return unescaped
	}
	return name
}
