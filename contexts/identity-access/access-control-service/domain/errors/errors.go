package errors

import "errors"

var (
	ErrUnauthorized       = errors.New("caller lacks the required role")
	ErrInvalidUserID      = errors.New("invalid user id")
	ErrRoleAlreadyGranted = errors.New("role already granted")
	ErrRoleNotGranted     = errors.New("role not granted")
	ErrAdministratorFixed = errors.New("administrator role is fixed at initialization")
)
