// internal/adapters/in/http/handlers/helpers.go
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	usecase "storefront/internal/application/usecase"
	common "storefront/internal/domain/common"
)

// maxUploadBytes bounds multipart request memory (per request).
const maxUploadBytes = 32 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// writeError maps errors onto HTTP statuses in one place. Sentinels
// with a dedicated message are checked first; everything else resolves
// through the shared kind it wraps. Unknown errors are logged and
// masked.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrNotLoggedIn):
		writeMessage(w, http.StatusForbidden, "not logged in")
	case errors.Is(err, usecase.ErrNotPrivileged):
		writeMessage(w, http.StatusForbidden, "not authorized, not admin nor staff")
	case errors.Is(err, usecase.ErrNotAdmin):
		writeMessage(w, http.StatusForbidden, "not authorized, not admin")
	case errors.Is(err, common.ErrForbidden):
		writeMessage(w, http.StatusForbidden, "not authorized")

	case errors.Is(err, usecase.ErrInvalidPaging):
		writeMessage(w, http.StatusUnprocessableEntity, "request body invalid")

	case errors.Is(err, common.ErrUnauthorized):
		writeMessage(w, http.StatusUnauthorized, err.Error())

	case errors.Is(err, common.ErrNotFound):
		writeMessage(w, http.StatusNotFound, err.Error())

	case errors.Is(err, common.ErrConflict):
		writeMessage(w, http.StatusConflict, err.Error())

	case errors.Is(err, common.ErrInvalidState),
		errors.Is(err, common.ErrInvalidInput):
		writeMessage(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, common.ErrTimeout):
		writeMessage(w, http.StatusGatewayTimeout, "upstream timeout")

	case errors.Is(err, common.ErrUpstream):
		writeMessage(w, http.StatusBadGateway, err.Error())

	default:
		log.Printf("[http] unhandled error: %v", err)
		writeMessage(w, http.StatusInternalServerError, "error occurred")
	}
}

func decodeJSON(r *http.Request, dst any) error {
	defer func() { _, _ = io.Copy(io.Discard, r.Body) }()
	return json.NewDecoder(r.Body).Decode(dst)
}

// pagingBody is the shared list-request payload.
type pagingBody struct {
	StartFrom int `json:"start_from"`
	Limit     int `json:"limit"`
}

func readPaging(w http.ResponseWriter, r *http.Request) (pagingBody, bool) {
	var body pagingBody
	if err := decodeJSON(r, &body); err != nil {
		writeMessage(w, http.StatusUnprocessableEntity, "request body invalid")
		return body, false
	}
	return body, true
}

// readMultipartImages parses a multipart form carrying image files
// under the "images" field and an optional JSON document under "data".
func readMultipartImages(r *http.Request, dataDst any) ([][]byte, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, err
	}

	if dataDst != nil {
		raw := r.FormValue("data")
		if raw != "" {
			if err := json.Unmarshal([]byte(raw), dataDst); err != nil {
				return nil, err
			}
		}
	}

	if r.MultipartForm == nil {
		return nil, nil
	}
	var images [][]byte
	for _, fh := range r.MultipartForm.File["images"] {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
		_ = f.Close()
		if err != nil {
			return nil, err
		}
		images = append(images, data)
	}
	return images, nil
}
