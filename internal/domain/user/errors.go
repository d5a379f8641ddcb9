package user

import "errors"

var (
	ErrUserNotFound              = errors.New("user not found")
	ErrManagerAccessRequired     = errors.New("manager access required")
	ErrOwnerAccessRequired       = errors.New("owner access required")
	ErrPermissionDenied          = errors.New("permission denied")
	ErrEmailAlreadyRegistered    = errors.New("email already registered")
	ErrEmployeeAlreadyLinked     = errors.New("employee already linked to a user")
	ErrCannotChangeOwnerRole     = errors.New("owner role cannot be changed")
	ErrInvalidRole               = errors.New("invalid role")
	ErrUserBelongsToOtherCompany = errors.New("user belongs to another company")
)
