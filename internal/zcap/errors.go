package zcap

import "errors"

var (
	ErrBadRequest          = errors.New("remote rejected the request")
	ErrUnauthorized        = errors.New("invocation unauthorized")
	ErrForbidden           = errors.New("invocation forbidden")
	ErrNotFound            = errors.New("remote resource not found")
	ErrConflict            = errors.New("remote state conflict")
	ErrBadGateway          = errors.New("remote bad gateway")
	ErrInternalServerError = errors.New("remote internal server error")
)
