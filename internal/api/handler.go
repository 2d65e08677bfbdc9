// Package api serves the JSON HTTP interface of the bookmarking service.
package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/0x0BSoD/newsBoard/internal/bookmarks"
	"github.com/0x0BSoD/newsBoard/internal/model"
)

// UserHeader carries the authenticated user ID, set by the upstream auth proxy.
const UserHeader = "X-User-ID"

type SourceStorage interface {
	AddSource(ctx context.Context, source model.Source) (int64, error)
}

type FeedProber func(ctx context.Context, url string) error

type Handler struct {
	svc     *bookmarks.Service
	sources SourceStorage
	probe   FeedProber
}

func NewHandler(svc *bookmarks.Service, sources SourceStorage, probe FeedProber) *Handler {
	return &Handler{svc: svc, sources: sources, probe: probe}
}

type boardView struct {
	ID   int64  `json:"pk"`
	Name string `json:"name"`
}

type userView struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Description string `json:"description"`
	CanEdit     bool   `json:"can_edit"`
}

func newUserView(u model.User, viewerID int64) userView {
	return userView{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Description: u.Description,
		CanEdit:     viewerID != 0 && viewerID == u.ID,
	}
}

type boardArticleView struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Pic      string `json:"pic"`
	Overview string `json:"overview"`
	Link     string `json:"link"`
	CanSave  bool   `json:"can_save"`
}

func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	views, err := h.svc.Feed(r.Context(), userID(r), query)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"article_data": views, "query": query})
}

func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"preferences": bookmarks.PreferenceCategories()})
}

func (h *Handler) Preferences(w http.ResponseWriter, r *http.Request) {
	prefs, err := h.svc.Preferences(r.Context(), userID(r))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"user_selected": prefs})
}

func (h *Handler) SetPreferences(w http.ResponseWriter, r *http.Request) {
	var req preferencesRequest
	if err := decode(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}
	if err := h.svc.SetPreferences(r.Context(), userID(r), req.Preferences); err != nil {
		respondErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	var req createBoardRequest
	if err := decode(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}

	in := &bookmarks.ArticleInput{Title: req.Title, Overview: req.Overview, Link: req.Link, Pic: req.Pic}
	board, err := h.svc.CreateBoard(r.Context(), userID(r), req.Name, in)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, boardView{ID: board.ID, Name: board.Name})
}

func (h *Handler) SaveArticle(w http.ResponseWriter, r *http.Request) {
	var req articleRequest
	if err := decode(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}

	board, err := h.svc.SaveToBoard(r.Context(), userID(r), chi.URLParam(r, "name"), req.input())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"message": "Article saved successfully!",
		"board":   boardView{ID: board.ID, Name: board.Name},
	})
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decode(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}

	u, err := h.svc.CreateUser(r.Context(), model.User{Name: req.Name, Email: req.Email, Description: req.Description})
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, newUserView(u, u.ID))
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.User(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newUserView(u, userID(r)))
}

func (h *Handler) EditProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := decode(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}

	u, err := h.svc.UpdateProfile(r.Context(), userID(r), req.Name, req.Description)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newUserView(u, u.ID))
}

func (h *Handler) UserBoards(w http.ResponseWriter, r *http.Request) {
	boards, err := h.svc.Boards(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		respondErr(w, r, err)
		return
	}

	out := make([]boardView, 0, len(boards))
	for _, b := range boards {
		out = append(out, boardView{ID: b.ID, Name: b.Name})
	}
	respondJSON(w, http.StatusOK, map[string]any{"board_data": out})
}

func (h *Handler) BoardArticles(w http.ResponseWriter, r *http.Request) {
	boardID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid board id")
		return
	}

	board, views, err := h.svc.BoardArticles(r.Context(), userID(r), boardID)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	out := make([]boardArticleView, 0, len(views))
	for _, v := range views {
		out = append(out, boardArticleView(v))
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"board":        boardView{ID: board.ID, Name: board.Name},
		"article_data": out,
	})
}

func (h *Handler) AddSource(w http.ResponseWriter, r *http.Request) {
	var req sourceRequest
	if err := decode(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}

	if err := h.probe(r.Context(), req.URL); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "failed to fetch feed: "+err.Error())
		return
	}

	id, err := h.sources.AddSource(r.Context(), model.Source{Name: strings.TrimSpace(req.Name), FeedURL: req.URL})
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"id": id})
}
