package validation

import (
	"errors"
	"fmt"
	"net/http"
)

// multipartOverhead covers the json form field and multipart boundaries on top of the media limit.
const multipartOverhead = 1 << 20

// ValidateAndParseMultipart caps the request body and parses the multipart form.
// Once the cap is hit the server stops reading, so oversized uploads may see a connection reset.
func ValidateAndParseMultipart(r *http.Request, w http.ResponseWriter, maxMediaSize int64) error {
	maxSize := maxMediaSize + multipartOverhead
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || r.ContentLength > maxSize {
			return fmt.Errorf("%w: failed to parse multipart form", ErrPayloadTooLarge)
		}
		return fmt.Errorf("%w: %v", ErrInvalidForm, err)
	}
	return nil
}
