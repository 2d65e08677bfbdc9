package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/0x0BSoD/newsBoard/internal/bookmarks"
)

const maxBodyBytes = 1 << 20

var (
	errBadRequest = errors.New("bad request")

	validate = validator.New(validator.WithRequiredStructEnabled())
)

type articleRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	Overview string `json:"overview" validate:"max=300"`
	Link     string `json:"link" validate:"omitempty,url,max=500"`
	Pic      string `json:"pic" validate:"omitempty,url,max=500"`
}

func (a articleRequest) input() bookmarks.ArticleInput {
	return bookmarks.ArticleInput{Title: a.Title, Overview: a.Overview, Link: a.Link, Pic: a.Pic}
}

type createBoardRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Title    string `json:"title" validate:"max=200"`
	Overview string `json:"overview" validate:"max=300"`
	Link     string `json:"link" validate:"omitempty,url,max=500"`
	Pic      string `json:"pic" validate:"omitempty,url,max=500"`
}

type preferencesRequest struct {
	Preferences []string `json:"preferences" validate:"dive,max=200"`
}

type sourceRequest struct {
	Name string `json:"name" validate:"required,max=200"`
	URL  string `json:"url" validate:"required,url"`
}

type createUserRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Email       string `json:"email" validate:"required,email,max=254"`
	Description string `json:"description" validate:"max=2000"`
}

type profileRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

// decode reads a JSON body into dst and validates it.
func decode(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: malformed JSON", errBadRequest)
	}
	return validate.Struct(dst)
}
