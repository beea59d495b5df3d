// SPDX-License-Identifier: EPL-2.0

package device

import "errors"

var (
	ErrInvalidConfig     = errors.New("invalid device config")
	ErrUnknownBackend    = errors.New("unknown device backend")
	ErrUnsupportedFormat = errors.New("format not supported by backend")
	ErrAlreadyStarted    = errors.New("device already started")
	ErrNotStarted        = errors.New("device not started")
	ErrClosed            = errors.New("device closed")
)
