package domain

import "errors"

// Domain errors
var (
	ErrInvalidPDF      = errors.New("invalid pdf")
	ErrGroupNotFound   = errors.New("group not found")
	ErrInvalidEndpoint = errors.New("invalid endpoint name")
)
