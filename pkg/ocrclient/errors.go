package ocrclient

import "fmt"

// NotFoundError reports that the local input file does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}

// TransportError reports a failure reaching the OCR API or an unusable
// response: network errors, auth rejections, non-2xx statuses, undecodable or
// empty responses. The batch loop skips the item and moves on.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("ocr api %s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
