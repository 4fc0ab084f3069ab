package service

import "errors"

var (
	ErrInvalidIdentityToken = errors.New("invalid identity token")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrAdminAlreadyExists   = errors.New("admin already exists")

	ErrAlreadyRegistered    = errors.New("already registered with this account")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrReceiptRequired      = errors.New("receipt image is required")
	ErrReceiptNotImage      = errors.New("receipt must be an image")
	ErrInvalidFamilyMember  = errors.New("invalid family member")
	ErrInvalidStatus        = errors.New("invalid status")

	ErrImageNotFound = errors.New("image not found")
)
