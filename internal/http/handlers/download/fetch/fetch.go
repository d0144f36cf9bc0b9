// Package fetch реализует HTTP-обработчик скачивания видео по токену.
//
// Токен передаётся query-параметром token и проверяется без обращения
// к сессии: подписанный токен сам по себе даёт право на скачивание,
// пока не истёк его срок. Товар из URL обязан совпадать с товаром,
// зашитым в токен.
package fetch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/video-storefront/internal/http/response"
	"github.com/magabrotheeeer/video-storefront/internal/lib/dltoken"
	"github.com/magabrotheeeer/video-storefront/internal/lib/sl"
	"github.com/magabrotheeeer/video-storefront/internal/models"
	"github.com/magabrotheeeer/video-storefront/internal/services/catalog"
)

// Service описывает интерфейс проверки токена скачивания.
type Service interface {
	Verify(token string) (*dltoken.Payload, error)
}

// CatalogService описывает интерфейс чтения товара для отдачи файла.
type CatalogService interface {
	GetProduct(ctx context.Context, id int) (*models.Product, error)
}

// FileStore описывает интерфейс чтения файлов медиа-хранилища.
type FileStore interface {
	Open(filename string) (io.ReadCloser, error)
}

// Handler обрабатывает скачивание файла по токену.
type Handler struct {
	log            *slog.Logger
	service        Service
	catalogService CatalogService
	files          FileStore
}

// New создает новый Handler.
func New(log *slog.Logger, service Service, catalogService CatalogService, files FileStore) *Handler {
	return &Handler{log: log, service: service, catalogService: catalogService, files: files}
}

// ServeHTTP godoc
// @Summary Скачать видео по токену
// @Description Отдаёт файл товара, если токен скачивания валиден и не истёк.
// @Tags Download
// @Produce  octet-stream
// @Param id path int true "ID товара"
// @Param token query string true "Токен скачивания"
// @Success 200 {file} binary "Файл товара"
// @Failure 400 {object} response.ErrorResponse "Невалидный или истёкший токен"
// @Failure 404 {object} response.ErrorResponse "Товар или файл не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /downloads/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.download.fetch"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	productID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	payload, err := h.service.Verify(r.URL.Query().Get("token"))
	if err != nil {
		if errors.Is(err, dltoken.ErrExpired) {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("download token has expired"))
			return
		}
		log.Info("rejected download with invalid token", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid download token"))
		return
	}
	if payload.ProductID != productID {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("token does not match this product"))
		return
	}

	product, err := h.catalogService.GetProduct(r.Context(), productID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("product not found"))
			return
		}
		log.Error("failed to read product", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read product"))
		return
	}
	if product.Filename == "" {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("product has no file"))
		return
	}

	file, err := h.files.Open(product.Filename)
	if err != nil {
		log.Error("failed to open product file", sl.Err(err))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("file not found"))
		return
	}
	defer func() {
		_ = file.Close()
	}()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="`+product.Filename+`"`)
	if _, err := io.Copy(w, file); err != nil {
		log.Error("failed to stream product file", sl.Err(err))
	}
}
