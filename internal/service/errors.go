package service

import (
	"errors"

	"github.com/Freeeeeet/tuition_site/internal/model"
	"github.com/Freeeeeet/tuition_site/internal/validation"
)

var (
	ErrNotFound     = model.ErrNotFound
	ErrValidation   = validation.ErrInvalid
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
	ErrUnavailable  = errors.New("service unavailable")
)
