// Package checkoutsuccess реализует HTTP-обработчик возврата с успешной оплаты.
//
// Сюда платёжный провайдер возвращает пользователя после оплаты, и только
// здесь корзина очищается. Пользователь, отменивший оплату, на этот маршрут
// не попадает и возвращается к нетронутой корзине.
package checkoutsuccess

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/video-storefront/internal/http/middlewarectx"
	"github.com/magabrotheeeer/video-storefront/internal/http/response"
	"github.com/magabrotheeeer/video-storefront/internal/lib/sl"
)

// CartService описывает интерфейс очистки корзины.
type CartService interface {
	Clear(ctx context.Context, userUID string) error
}

// Handler обрабатывает возврат с успешной оплаты.
type Handler struct {
	log         *slog.Logger
	cartService CartService
}

// New создает новый Handler.
func New(log *slog.Logger, cartService CartService) *Handler {
	return &Handler{log: log, cartService: cartService}
}

// ServeHTTP godoc
// @Summary Возврат с успешной оплаты
// @Description Подтверждает возврат пользователя со страницы оплаты и очищает корзину.
// @Tags Checkout
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} response.Response "Оплата подтверждена"
// @Failure 401 {object} response.ErrorResponse "Неавторизован"
// @Router /checkout-success [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.checkout.success"
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

	// Ошибка очистки не мешает пользователю увидеть подтверждение:
	// заказ уже оплачен, корзина доочистится при следующем оформлении.
	if err := h.cartService.Clear(r.Context(), userUID); err != nil {
		log.Error("failed to clear cart after payment", sl.Err(err))
	} else {
		log.Info("cart cleared after successful payment")
	}

	render.JSON(w, r, response.OK())
}
