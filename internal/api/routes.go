package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/0x0BSoD/newsBoard/internal/logging"
)

type ctxKey struct{}

type UserChecker interface {
	UserExists(ctx context.Context, id int64) (bool, error)
}

func NewRouter(h *Handler, users UserChecker) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/preferences/categories", h.Categories)
		r.Post("/users", h.CreateUser)
		r.Get("/users/{name}/boards", h.UserBoards)

		r.With(optionalUser(users)).Get("/users/{name}", h.Profile)
		r.With(optionalUser(users)).Get("/boards/{id}/articles", h.BoardArticles)

		r.Group(func(r chi.Router) {
			r.Use(requireUser(users))

			r.Get("/feed", h.Feed)
			r.Get("/preferences", h.Preferences)
			r.Put("/preferences", h.SetPreferences)
			r.Put("/profile", h.EditProfile)
			r.Post("/boards", h.CreateBoard)
			r.Post("/boards/{name}/articles", h.SaveArticle)
			r.Post("/sources", h.AddSource)
		})
	})

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		logging.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}

// resolveUser returns the user ID from the header, or 0 when absent or unknown.
func resolveUser(r *http.Request, users UserChecker) (int64, error) {
	raw := r.Header.Get(UserHeader)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, nil
	}
	ok, err := users.UserExists(r.Context(), id)
	if err != nil || !ok {
		return 0, err
	}
	return id, nil
}

func requireUser(users UserChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := resolveUser(r, users)
			if err != nil {
				respondErr(w, r, err)
				return
			}
			if id == 0 {
				respondError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
		})
	}
}

func optionalUser(users UserChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := resolveUser(r, users)
			if err != nil {
				respondErr(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
		})
	}
}

func userID(r *http.Request) int64 {
	id, _ := r.Context().Value(ctxKey{}).(int64)
	return id
}
