package utils

import (
	"io"
)

// maxDrain bounds how much of an unread body is discarded before close.
const maxDrain = 64 << 10

// DrainClose discards what is left of an HTTP response body, up to a limit,
// then closes it so the underlying connection can be reused.
func DrainClose(rc io.ReadCloser) {
	_, _ = io.CopyN(io.Discard, rc, maxDrain)
	_ = rc.Close()
}
