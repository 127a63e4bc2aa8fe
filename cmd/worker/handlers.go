package main

import (
	"github.com/hibiken/asynq"

	newsletterJob "inkwell-backend/internal/domains/newsletter/job"
	statsJob "inkwell-backend/internal/domains/stats/job"
	"inkwell-backend/internal/shared"
	"inkwell-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	broadcast *newsletterJob.BroadcastHandler
	reconcile *statsJob.ReconcileHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		broadcast: newsletterJob.NewBroadcastHandler(c.BroadcastService),
		reconcile: statsJob.NewReconcileHandler(c.StatsService),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	// Newsletter tasks
	mux.HandleFunc(shared.TypeBroadcastPost, h.broadcast.ProcessTask)

	// Maintenance tasks
	mux.HandleFunc(shared.TypeReconcileRollups, h.reconcile.ProcessTask)
}
