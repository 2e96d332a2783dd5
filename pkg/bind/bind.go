// Package bind decodes and validates an HTTP request body into a struct.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/shashiranjanraj/dinein/config"
	"github.com/shashiranjanraj/dinein/pkg/validate"
)

// ErrNoFile is returned by File when the multipart field is absent.
var ErrNoFile = errors.New("no file uploaded")

// JSON decodes r.Body as JSON into dest and runs validation.
// The body is capped at MAX_BODY_BYTES (default 4 MB).
// Returns (errs, nil) when there are validation failures.
// Returns (nil, err) when the body is malformed JSON or too large.
func JSON(r *http.Request, dest interface{}) (errs map[string]string, err error) {
	r.Body = http.MaxBytesReader(nil, r.Body, config.MaxBodyBytes())

	dec := json.NewDecoder(r.Body)
	if err = dec.Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
		}
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	errs = validate.Struct(dest)
	if validate.HasErrors(errs) {
		return errs, nil
	}

	return nil, nil
}

// Multipart parses a multipart/form-data body capped at MAX_UPLOAD_BYTES.
func Multipart(r *http.Request) error {
	limit := config.MaxUploadBytes()
	r.Body = http.MaxBytesReader(nil, r.Body, limit)

	if err := r.ParseMultipartForm(limit); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("upload too large (max %d bytes)", maxErr.Limit)
		}
		return fmt.Errorf("invalid multipart body: %w", err)
	}
	return nil
}

// File returns the named part of an already parsed multipart form. The
// caller closes the returned reader.
func File(r *http.Request, field string) (io.ReadCloser, string, error) {
	if r.MultipartForm == nil || r.MultipartForm.File[field] == nil {
		return nil, "", ErrNoFile
	}

	f, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, "", ErrNoFile
		}
		return nil, "", err
	}
	return f, header.Filename, nil
}
