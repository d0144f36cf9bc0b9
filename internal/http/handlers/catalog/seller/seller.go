// Package seller реализует HTTP-обработчик витрины продавца.
package seller

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/video-storefront/internal/http/response"
	"github.com/magabrotheeeer/video-storefront/internal/lib/sl"
	"github.com/magabrotheeeer/video-storefront/internal/models"
	"github.com/magabrotheeeer/video-storefront/internal/services/catalog"
)

// Service описывает интерфейс витрины продавца.
type Service interface {
	ListBySeller(ctx context.Context, sellerUsername string) ([]*models.Product, error)
}

// Handler обрабатывает запросы витрины продавца.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Витрина продавца
// @Description Возвращает опубликованные товары продавца по его username.
// @Tags Catalog
// @Produce  json
// @Param username path string true "Username продавца"
// @Success 200 {object} map[string]any "Товары продавца"
// @Failure 404 {object} response.ErrorResponse "Продавец не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /sellers/{username}/products [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.seller"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username := chi.URLParam(r, "username")

	products, err := h.service.ListBySeller(r.Context(), username)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("seller not found"))
			return
		}
		log.Error("failed to list seller products", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list seller products"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"seller":   username,
		"products": products,
	}))
}
