// Package checkoutcreate реализует HTTP-обработчик оформления заказа.
//
// Обработчик забирает содержимое корзины пользователя и создаёт checkout-сессию
// у платёжного провайдера. Дальше пользователь уходит на платёжную страницу по
// полученному URL. Корзина при этом сохраняется: её очищает обработчик
// checkout-success после возврата с оплаты, отменивший оплату пользователь
// возвращается к нетронутой корзине.
package checkoutcreate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/video-storefront/internal/http/middlewarectx"
	"github.com/magabrotheeeer/video-storefront/internal/http/response"
	"github.com/magabrotheeeer/video-storefront/internal/lib/sl"
	"github.com/magabrotheeeer/video-storefront/internal/models"
	"github.com/magabrotheeeer/video-storefront/internal/services/checkout"
)

// CartService описывает интерфейс чтения корзины.
type CartService interface {
	Items(ctx context.Context, userUID string) ([]models.CartItem, error)
}

// CheckoutService описывает интерфейс создания checkout-сессии.
type CheckoutService interface {
	CreateCheckout(ctx context.Context, userUID string, items []models.CartItem) (string, error)
}

// Handler обрабатывает оформление заказа.
type Handler struct {
	log             *slog.Logger
	cartService     CartService
	checkoutService CheckoutService
}

// New создает новый Handler.
func New(log *slog.Logger, cartService CartService, checkoutService CheckoutService) *Handler {
	return &Handler{log: log, cartService: cartService, checkoutService: checkoutService}
}

// ServeHTTP godoc
// @Summary Оформить заказ
// @Description Создаёт checkout-сессию платёжного провайдера из корзины пользователя.
// @Tags Checkout
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} map[string]any "URL платёжной страницы"
// @Failure 400 {object} response.ErrorResponse "Пустая корзина"
// @Failure 401 {object} response.ErrorResponse "Неавторизован"
// @Failure 502 {object} response.ErrorResponse "Провайдер недоступен"
// @Router /checkout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.checkout.create"
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

	items, err := h.cartService.Items(r.Context(), userUID)
	if err != nil {
		log.Error("failed to read cart items", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read cart"))
		return
	}

	checkoutURL, err := h.checkoutService.CreateCheckout(r.Context(), userUID, items)
	if err != nil {
		if errors.Is(err, checkout.ErrEmptyCart) {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("cart is empty"))
			return
		}
		log.Error("failed to create checkout session", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("payment provider unavailable"))
		return
	}

	log.Info("checkout session created")
	render.JSON(w, r, response.OKWithData(map[string]any{
		"checkout_url": checkoutURL,
	}))
}
