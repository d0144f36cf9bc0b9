// Package tokenissue реализует HTTP-обработчик выдачи токена скачивания.
package tokenissue

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/video-storefront/internal/http/middlewarectx"
	"github.com/magabrotheeeer/video-storefront/internal/http/response"
	"github.com/magabrotheeeer/video-storefront/internal/lib/sl"
	"github.com/magabrotheeeer/video-storefront/internal/services/entitlement"
)

// Service описывает интерфейс выдачи токенов скачивания.
type Service interface {
	Issue(ctx context.Context, productID int, userUID string) (string, error)
}

// Handler обрабатывает выдачу токена скачивания.
type Handler struct {
	log     *slog.Logger
	service Service
}

// downloadPath строит путь скачивания относительно точки монтирования API.
func downloadPath(productID int, token string) string {
	return "/api/v1/downloads/" + strconv.Itoa(productID) + "?token=" + token
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Выдать токен скачивания
// @Description Выпускает подписанный токен скачивания товара для текущего пользователя.
// @Tags Download
// @Security BearerAuth
// @Produce  json
// @Param id path int true "ID товара"
// @Success 200 {object} map[string]any "Токен и ссылка на скачивание"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Неавторизован"
// @Failure 404 {object} response.ErrorResponse "Товар не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /products/{id}/download-token [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.download.tokenissue"
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

	token, err := h.service.Issue(r.Context(), productID, userUID)
	if err != nil {
		if errors.Is(err, entitlement.ErrProductNotFound) {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("product not found"))
			return
		}
		log.Error("failed to issue download token", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not issue download token"))
		return
	}

	log.Info("download token issued", slog.Int("product_id", productID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"token":        token,
		"download_url": downloadPath(productID, token),
	}))
}
