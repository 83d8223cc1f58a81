package types

import "errors"

var (
	ErrProviderNotFound = errors.New("provider not found")
	ErrReceiverNotFound = errors.New("receiver not found")
	ErrListingNotFound  = errors.New("food listing not found")
	ErrClaimNotFound    = errors.New("claim not found")

	ErrUnknownTable  = errors.New("unknown table")
	ErrUnknownColumn = errors.New("unknown column")

	ErrInvalidListing = errors.New("invalid food listing")
)
