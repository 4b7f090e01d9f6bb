package leaderboard

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the leaderboard feature.
func NewFeature(service *Service, refreshInterval time.Duration) *Feature {
	return &Feature{service: service, handler: NewHandler(service, refreshInterval)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "leaderboard"
}

// IsEnabled reports whether a result store is available.
func (f *Feature) IsEnabled() bool {
	return f.service != nil && f.service.reader != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
