// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
)

// ErrSticky is a failure whose state changes must be kept by the host.
// The instruction still fails, but its writes are committed.
type ErrSticky struct {
	cause error
}

// Sticky marks err as sticky. A nil err stays nil.
func Sticky(err error) error {
	if err == nil {
		return nil
	}
	return &ErrSticky{cause: err}
}

func (e *ErrSticky) Error() string {
	return e.cause.Error()
}

func (e *ErrSticky) Unwrap() error {
	return e.cause
}

// Cause implements the causer interface of github.com/pkg/errors.
func (e *ErrSticky) Cause() error {
	return e.cause
}

// IsSticky reports whether any error in err's chain is sticky.
func IsSticky(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var se *ErrSticky
	return errors.As(e, &se)
}
