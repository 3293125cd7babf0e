package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/desichan/desichan/shared/domain"
	mw "github.com/desichan/desichan/shared/middleware"
	"github.com/desichan/desichan/shared/utils"
	"github.com/desichan/desichan/shared/validation"
)

const (
	jsonField  = "json"
	mediaField = "media"
)

// parseContentRequest reads a create request. Multipart bodies carry the JSON in the "json" field
// and an optional file in "media"; plain JSON bodies carry no file. cleanup is always safe to call.
func parseContentRequest[T any](w http.ResponseWriter, r *http.Request, h *Handler) (body T, upload *domain.Upload, cleanup func(), err error) {
	cleanup = func() {}

	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		err = utils.DecodeValidate(r.Body, &body)
		return
	}

	if err = validation.ValidateAndParseMultipart(r, w, h.cfg.Public.Media.MaxSizeBytes); err != nil {
		return
	}
	if r.MultipartForm != nil {
		cleanup = func() { r.MultipartForm.RemoveAll() }
	}

	jsonPayload := r.FormValue(jsonField)
	if jsonPayload == "" {
		err = fmt.Errorf("%w: missing %q field", validation.ErrInvalidForm, jsonField)
		return
	}
	if err = utils.DecodeValidate(strings.NewReader(jsonPayload), &body); err != nil {
		return
	}

	files := r.MultipartForm.File[mediaField]
	switch len(files) {
	case 0:
		return
	case 1:
	default:
		err = fmt.Errorf("%w: only one file per %q field", validation.ErrInvalidForm, mediaField)
		return
	}

	var closer io.Closer
	upload, closer, err = validation.ValidateUpload(files[0], h.cfg.Public.Media.AllowedImageMimeTypes, h.cfg.Public.Media.AllowedVideoMimeTypes)
	if err != nil {
		return
	}
	removeForm := cleanup
	cleanup = func() {
		closer.Close()
		removeForm()
	}
	return
}

// writeRequestError maps upload and form errors onto 413/400, everything else goes through the status mapping.
func writeRequestError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, validation.ErrPayloadTooLarge):
		http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
	case errors.Is(err, validation.ErrInvalidMimeType), errors.Is(err, validation.ErrInvalidForm):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		utils.WriteErrorAndStatusCode(w, err)
	}
}

// idParam parses a positive integer URL parameter.
func idParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive integer", name)
	}
	return id, nil
}

// currentUser is for routes behind NeedAuth; it writes 401 itself when the context has no user.
func currentUser(w http.ResponseWriter, r *http.Request) *domain.User {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Please sign-in", http.StatusUnauthorized)
	}
	return user
}
