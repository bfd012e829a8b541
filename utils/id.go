package utils

import (
	"MindWellGo/config"

	"github.com/google/uuid"
)

func GenerateID() string {
	id := uuid.New().String()
	config.Logger.Debugw("generated id", "id", id)
	return id
}
