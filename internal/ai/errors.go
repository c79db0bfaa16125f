package ai

import (
	"errors"
	"fmt"
)

// rawContentPreview bounds how much upstream content is echoed into errors.
const rawContentPreview = 200

var errNoContent = errors.New("no content returned from chat api")

// SearchAPIError reports a non-2xx answer from the search endpoint.
type SearchAPIError struct {
	StatusCode int
	Body       string
}

func (e *SearchAPIError) Error() string {
	return fmt.Sprintf("search api error %d: %s", e.StatusCode, e.Body)
}

// SummarizeAPIError reports a failed summarization call. StatusCode is zero
// when the HTTP exchange succeeded but the payload was unusable; Body then
// holds the leading raw content.
type SummarizeAPIError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *SummarizeAPIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("chat api error %d: %s", e.StatusCode, e.Body)
	}
	if e.Body != "" {
		return fmt.Sprintf("failed to parse response: %v (content: %q)", e.Err, e.Body)
	}
	return fmt.Sprintf("chat api: %v", e.Err)
}

func (e *SummarizeAPIError) Unwrap() error { return e.Err }

func preview(s string) string {
	r := []rune(s)
	if len(r) > rawContentPreview {
		return string(r[:rawContentPreview])
	}
	return s
}
