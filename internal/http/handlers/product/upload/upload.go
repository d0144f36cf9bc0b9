// Package upload реализует HTTP-обработчик загрузки товара продавцом.
//
// Товар приходит multipart-формой: метаданные полями формы, видео — файлом
// в поле video. Цена передаётся строкой и парсится в decimal.
package upload

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/video-storefront/internal/http/middlewarectx"
	"github.com/magabrotheeeer/video-storefront/internal/http/response"
	"github.com/magabrotheeeer/video-storefront/internal/lib/sl"
	"github.com/magabrotheeeer/video-storefront/internal/models"
)

// Service описывает интерфейс создания товара.
type Service interface {
	CreateProduct(ctx context.Context, product models.Product) (int, error)
}

// FileStore описывает интерфейс записи файлов медиа-хранилища.
type FileStore interface {
	Save(src io.Reader, originalName string) (string, error)
}

// Handler обрабатывает загрузку товара продавцом.
type Handler struct {
	log           *slog.Logger
	service       Service
	files         FileStore
	maxUploadSize int64
}

// New создает новый Handler.
func New(log *slog.Logger, service Service, files FileStore, maxUploadSize int64) *Handler {
	return &Handler{log: log, service: service, files: files, maxUploadSize: maxUploadSize}
}

// ServeHTTP godoc
// @Summary Загрузить товар
// @Description Создаёт товар продавца: метаданные в полях формы, видео в поле video.
// @Tags Product
// @Security BearerAuth
// @Accept  mpfd
// @Produce  json
// @Param title formData string true "Название"
// @Param short_desc formData string true "Краткое описание"
// @Param full_desc formData string false "Полное описание"
// @Param price formData string true "Цена, например 9.99"
// @Param category formData string true "Категория"
// @Param published formData bool false "Опубликовать сразу"
// @Param video formData file true "Видеофайл"
// @Success 200 {object} map[string]any "Созданный товар"
// @Failure 400 {object} response.ErrorResponse "Некорректная форма"
// @Failure 401 {object} response.ErrorResponse "Неавторизован"
// @Failure 403 {object} response.ErrorResponse "Нет прав продавца"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /seller/products [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.upload"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	sellerUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || sellerUID == "" {
		log.Error("failed to get user uid from context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		log.Error("failed to parse multipart form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to parse upload form"))
		return
	}

	form := models.DummyProduct{
		Title:     r.FormValue("title"),
		ShortDesc: r.FormValue("short_desc"),
		FullDesc:  r.FormValue("full_desc"),
		Price:     r.FormValue("price"),
		Category:  r.FormValue("category"),
		Published: r.FormValue("published") == "true",
	}
	if err := validator.New().Struct(form); err != nil {
		validateErr := err.(validator.ValidationErrors)
		log.Error("invalid upload form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(validateErr))
		return
	}

	price, err := decimal.NewFromString(form.Price)
	if err != nil || price.IsNegative() {
		log.Error("invalid price in upload form", slog.String("price", form.Price))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("price must be a non-negative number"))
		return
	}

	video, header, err := r.FormFile("video")
	if err != nil {
		log.Error("missing video file in upload form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("video file is required"))
		return
	}
	defer func() {
		_ = video.Close()
	}()

	filename, err := h.files.Save(video, header.Filename)
	if err != nil {
		log.Error("failed to save video file", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not save video file"))
		return
	}

	productID, err := h.service.CreateProduct(r.Context(), models.Product{
		SellerUID: sellerUID,
		Title:     form.Title,
		ShortDesc: form.ShortDesc,
		FullDesc:  form.FullDesc,
		Price:     price,
		Category:  form.Category,
		Filename:  filename,
		Published: form.Published,
	})
	if err != nil {
		log.Error("failed to create product", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create product"))
		return
	}

	log.Info("product uploaded",
		slog.Int("product_id", productID),
		slog.String("filename", filename))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"product_id": productID,
		"filename":   filename,
	}))
}
