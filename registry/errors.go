// SPDX-FileCopyrightText: Copyright 2026 The Skillz Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"errors"
	"fmt"
)

// ErrorKind discriminates the failure modes of registry operations.
type ErrorKind int

const (
	// ErrBadRoot means the configured skills root does not exist or is not a
	// directory. Fatal for the Load call that observed it.
	ErrBadRoot ErrorKind = iota

	// ErrNotFound means a lookup slug is not registered. Recoverable; the
	// caller decides the next step.
	ErrNotFound
)

// RegistryError is returned by Load and Get.
type RegistryError struct {
	Kind ErrorKind
	msg  string
}

// Error implements the error interface.
func (e *RegistryError) Error() string {
	return e.msg
}

func badRootErrorf(format string, args ...any) *RegistryError {
	return &RegistryError{Kind: ErrBadRoot, msg: fmt.Sprintf(format, args...)}
}

func notFoundErrorf(format string, args ...any) *RegistryError {
	return &RegistryError{Kind: ErrNotFound, msg: fmt.Sprintf(format, args...)}
}

// IsNotFound reports whether err is a registry lookup miss.
func IsNotFound(err error) bool {
	var rerr *RegistryError
	return errors.As(err, &rerr) && rerr.Kind == ErrNotFound
}
