package sitecfg

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clearflow/clearflow-cms/internal/platform/httpx"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountPublic registers the read-only config routes.
func (h *Handler) MountPublic(r chi.Router) {
	r.Get("/system/config/contact", h.contact)
	r.Get("/about-us", h.aboutUs)
}

// MountAdmin registers the config mutation routes behind authentication.
func (h *Handler) MountAdmin(r chi.Router) {
	r.Put("/system/config/contact", h.saveContact)
	r.Post("/about-us", h.saveAboutUs)
}

func (h *Handler) contact(w http.ResponseWriter, r *http.Request) {
	info, err := h.service.Contact(r.Context())
	if err != nil {
		h.logger.Error("load contact config", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, info)
}

func (h *Handler) saveContact(w http.ResponseWriter, r *http.Request) {
	var info ContactInfo
	if err := httpx.DecodeJSON(r, &info); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed request body")
		return
	}
	if err := h.service.SaveContact(r.Context(), info); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, info)
}

func (h *Handler) aboutUs(w http.ResponseWriter, r *http.Request) {
	about, err := h.service.AboutUs(r.Context())
	if err != nil {
		h.logger.Error("load about-us", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, about)
}

func (h *Handler) saveAboutUs(w http.ResponseWriter, r *http.Request) {
	var about AboutUs
	if err := httpx.DecodeJSON(r, &about); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed request body")
		return
	}
	if err := h.service.SaveAboutUs(r.Context(), about); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, about)
}
