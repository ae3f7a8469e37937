package service

import (
	"errors"

	"github.com/Skotchmaster/online_bookstore/internal/repo"
)

var (
	ErrValidation      = errors.New("validation")      // 400
	ErrUnauthenticated = errors.New("unauthenticated") // 401
	ErrForbidden       = errors.New("forbidden")       // 403

	ErrConflict           = repo.ErrConflict           // 409
	ErrStorageUnavailable = repo.ErrStorageUnavailable // 503
)
