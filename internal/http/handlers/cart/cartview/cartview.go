// Package cartview реализует HTTP-обработчик просмотра корзины.
package cartview

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/video-storefront/internal/http/middlewarectx"
	"github.com/magabrotheeeer/video-storefront/internal/http/response"
	"github.com/magabrotheeeer/video-storefront/internal/lib/sl"
	"github.com/magabrotheeeer/video-storefront/internal/models"
)

// Service описывает интерфейс чтения корзины.
type Service interface {
	Get(ctx context.Context, userUID string) (*models.Cart, error)
}

// Handler обрабатывает просмотр корзины.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Содержимое корзины
// @Description Возвращает позиции корзины с подытогами и общей суммой.
// @Tags Cart
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} map[string]any "Корзина"
// @Failure 401 {object} response.ErrorResponse "Неавторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /cart [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.view"
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

	cart, err := h.service.Get(r.Context(), userUID)
	if err != nil {
		log.Error("failed to read cart", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read cart"))
		return
	}

	render.JSON(w, r, response.OKWithData(cart))
}
