package domain

import "errors"

// Common domain errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInternalServer = errors.New("internal server error")
	ErrDuplicateEntry = errors.New("duplicate entry")
	ErrConfiguration  = errors.New("missing or invalid system configuration")
)

// Auth errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrTokenRevoked       = errors.New("token revoked")
)

// Member and station errors
var (
	ErrMemberNotFound    = errors.New("member not found")
	ErrStationNotFound   = errors.New("station not found")
	ErrStationHasMembers = errors.New("station still has members assigned")
)

// Ledger errors
var (
	ErrAccountNotFound      = errors.New("savings account not found")
	ErrSavingsTypeNotFound  = errors.New("savings type not found")
	ErrAccountAlreadyExists = errors.New("savings account of this type already exists for member")
	ErrInsufficientFunds    = errors.New("insufficient balance")
	ErrLoanNotFound         = errors.New("loan not found")
	ErrLoanTypeNotFound     = errors.New("loan type not found")
	ErrLoanNotActive        = errors.New("loan is not active")
	ErrDurationExceedsMax   = errors.New("duration exceeds loan type maximum")
	ErrOverpaymentRejected  = errors.New("payment exceeds outstanding balance")
	ErrSettingNotFound      = errors.New("system setting not found")
)
