// Package list реализует HTTP-обработчик листинга опубликованных товаров.
//
// Поддерживает фильтр по категории (query-параметр category) и пагинацию
// через limit/offset.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/video-storefront/internal/http/response"
	"github.com/magabrotheeeer/video-storefront/internal/lib/sl"
	"github.com/magabrotheeeer/video-storefront/internal/models"
)

// Service описывает интерфейс чтения каталога.
type Service interface {
	ListPublished(ctx context.Context, category string, limit, offset int) ([]*models.Product, error)
}

// Handler обрабатывает запросы листинга каталога.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список опубликованных товаров
// @Description Возвращает опубликованные товары каталога, опционально по категории.
// @Tags Catalog
// @Produce  json
// @Param category query string false "Категория"
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {object} map[string]any "Список товаров"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /products [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	category := r.URL.Query().Get("category")

	products, err := h.service.ListPublished(r.Context(), category, limit, offset)
	if err != nil {
		log.Error("failed to list products", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list products"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"products": products,
		"count":    len(products),
	}))
}
