package httputil

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	DefaultTimeout      = 300 * time.Second
	MaxResponseBodySize = 32 * 1024 * 1024 // 32 MB; SVG answers are kilobytes, anything near this is garbage
)

// DefaultClient is a shared http.Client. Per-call deadlines come from the
// request context; this timeout is only the hard upper bound.
var DefaultClient = &http.Client{
	Timeout: DefaultTimeout,
}

// ReadBody reads a response body with a size limit to prevent memory
// exhaustion. Returns an error if the body exceeds MaxResponseBodySize.
func ReadBody(body io.ReadCloser) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(body, MaxResponseBodySize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > MaxResponseBodySize {
		return nil, fmt.Errorf("response body exceeds %d bytes limit", MaxResponseBodySize)
	}
	return data, nil
}
