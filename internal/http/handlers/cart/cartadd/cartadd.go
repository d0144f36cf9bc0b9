// Package cartadd реализует HTTP-обработчик добавления товара в корзину.
package cartadd

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/video-storefront/internal/http/middlewarectx"
	"github.com/magabrotheeeer/video-storefront/internal/http/response"
	"github.com/magabrotheeeer/video-storefront/internal/lib/sl"
)

// Service описывает интерфейс изменения корзины.
type Service interface {
	Add(ctx context.Context, userUID string, productID int) error
}

// Handler обрабатывает добавление товара в корзину.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Добавить товар в корзину
// @Description Увеличивает количество товара в корзине пользователя на единицу.
// @Tags Cart
// @Security BearerAuth
// @Produce  json
// @Param id path int true "ID товара"
// @Success 200 {object} map[string]any "Товар добавлен"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Неавторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /cart/items/{id} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.add"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("failed to get user uid from context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	productID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	if err := h.service.Add(r.Context(), userUID, productID); err != nil {
		log.Error("failed to add product to cart", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not add product to cart"))
		return
	}

	log.Info("product added to cart", slog.Int("product_id", productID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"product_id": productID,
	}))
}
