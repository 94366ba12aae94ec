// Package orgs serves the organization provisioning API: create, lookup,
// update, and delete.
package orgs

import (
	"orgvault/internal/app/registry"

	"go.uber.org/zap"
)

type Handler struct {
	Log      *zap.Logger
	Registry *registry.Registry
}

func NewHandler(reg *registry.Registry, logger *zap.Logger) *Handler {
	return &Handler{
		Log:      logger,
		Registry: reg,
	}
}
