// Package categories реализует HTTP-обработчик списка категорий каталога.
package categories

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/video-storefront/internal/http/response"
	"github.com/magabrotheeeer/video-storefront/internal/lib/sl"
)

// Service описывает интерфейс списка категорий.
type Service interface {
	ListCategories(ctx context.Context) ([]string, error)
}

// Handler обрабатывает запросы списка категорий.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Категории каталога
// @Description Возвращает список категорий опубликованных товаров.
// @Tags Catalog
// @Produce  json
// @Success 200 {object} map[string]any "Категории"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /categories [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.categories"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		log.Error("failed to list categories", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list categories"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"categories": categories,
	}))
}
