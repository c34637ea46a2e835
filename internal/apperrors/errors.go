package apperrors

import (
	"errors"
)

var (
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserNotFound      = errors.New("user not found")
	ErrUserInactive      = errors.New("user is inactive")
	ErrRoleInvalid       = errors.New("role is invalid")

	ErrAccountNotFound     = errors.New("account not found")
	ErrAccountNotOwned     = errors.New("account is owned by another user")
	ErrAccountNotActive    = errors.New("account is not active")
	ErrAccountNumberTaken  = errors.New("account number already taken")
	ErrBalanceInsufficient = errors.New("insufficient balance")

	ErrOperationNotFound        = errors.New("operation not found")
	ErrOperationNotOwned        = errors.New("operation belongs to another user")
	ErrOperationNotPending      = errors.New("only pending operations can be approved or rejected")
	ErrOperationTypeInvalid     = errors.New("operation type is invalid")
	ErrOperationAmountInvalid   = errors.New("operation amount must be positive")
	ErrOperationAccountRequired = errors.New("required account reference is missing")
)
