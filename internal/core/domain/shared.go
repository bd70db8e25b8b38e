package domain

import (
	"strings"

	"github.com/google/uuid"
)

type ID string

func NewID() ID {
	return ID(uuid.NewString())
}

func ValidateID(id string) bool {
	return strings.TrimSpace(id) != ""
}

type Event interface {
	GetName() string
	GetEntityName() string
}
