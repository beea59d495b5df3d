// SPDX-License-Identifier: EPL-2.0

package loader

import "errors"

var (
	ErrUnknownFormat      = errors.New("no decoder registered for format")
	ErrSampleRateMismatch = errors.New("sample rate does not match device")
	ErrChannelMismatch    = errors.New("channel layout cannot be converted")
	ErrDuplicateName      = errors.New("sound name already loaded")
	ErrNotFound           = errors.New("sound not found")
	ErrEmptyName          = errors.New("sound name is empty")
	ErrClosed             = errors.New("library closed")
)
