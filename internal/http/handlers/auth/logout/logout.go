// Package logout реализует HTTP-обработчик выхода из сессии.
package logout

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/video-storefront/internal/http/middlewarectx"
	"github.com/magabrotheeeer/video-storefront/internal/http/response"
)

// Handler завершает сессию, истекая cookie.
type Handler struct {
	log *slog.Logger
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Выход из сессии
// @Description Истекает cookie сессии. Сам JWT остаётся валиден до конца TTL.
// @Tags Auth
// @Produce  json
// @Success 200 {object} map[string]any "Успешный выход"
// @Router /logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middlewarectx.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	render.JSON(w, r, response.OKWithData(map[string]any{
		"logged_out": true,
	}))
}
