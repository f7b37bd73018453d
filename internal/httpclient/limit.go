package httpclient

import (
	"errors"
	"fmt"
	"io"
)

// ResponseTooLargeError reports that an upstream body blew past its cap.
// The catalog, renderer and completion endpoints all return bounded JSON;
// anything bigger is a broken upstream, not data worth streaming.
type ResponseTooLargeError struct {
	Limit int64
}

func (e ResponseTooLargeError) Error() string {
	return fmt.Sprintf("response body exceeded limit of %d bytes", e.Limit)
}

// IsResponseTooLarge reports whether err is (or wraps) a ResponseTooLargeError.
func IsResponseTooLarge(err error) bool {
	var limitErr ResponseTooLargeError
	return errors.As(err, &limitErr)
}

// ReadAllWithLimit drains a response body of at most limit bytes. Every
// outbound client in this module reads through it so a misbehaving upstream
// cannot balloon memory. A limit <= 0 disables the cap.
func ReadAllWithLimit(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}
	// Read one byte past the cap to tell "exactly at" from "over".
	lr := &io.LimitedReader{R: r, N: limit + 1}
	data, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, ResponseTooLargeError{Limit: limit}
	}
	return data, nil
}
