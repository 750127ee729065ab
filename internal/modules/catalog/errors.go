package catalog

import "errors"

var (
	ErrValidation          = errors.New("validation failed")
	ErrNotFound            = errors.New("service not found")
	ErrNotOwner            = errors.New("service belongs to another provider")
	ErrProviderNotApproved = errors.New("provider is not approved")
)
