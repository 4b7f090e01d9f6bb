package leaderboard

import (
	"errors"
	"time"

	"puzzle-leaderboard/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Handler handles HTTP requests for the leaderboard.
type Handler struct {
	service *Service
	limiter *rate.Limiter
}

// NewHandler creates a new HTTP handler. Manual refreshes are allowed once per
// refreshInterval.
func NewHandler(service *Service, refreshInterval time.Duration) *Handler {
	return &Handler{
		service: service,
		limiter: rate.NewLimiter(rate.Every(refreshInterval), 1),
	}
}

// RegisterRoutes registers the leaderboard routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/leaderboard")
	group.Get("/latest", h.HandleLatest)
	group.Get("/preview", h.HandlePreview)
	group.Post("/refresh", h.HandleRefresh)
	group.Get("/:date", h.HandleByDate)
}

// HandleLatest returns the most recent stored board.
func (h *Handler) HandleLatest(c *fiber.Ctx) error {
	board, err := h.service.Latest(c.Context())
	if err != nil {
		return h.fail(c, "Latest board lookup failed", err)
	}
	return c.JSON(board)
}

// HandleByDate returns the stored board for a date (YYYY-MM-DD).
func (h *Handler) HandleByDate(c *fiber.Ctx) error {
	date, err := time.Parse(time.DateOnly, c.Params("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "date must be formatted as YYYY-MM-DD",
		})
	}

	board, err := h.service.ByDate(c.Context(), date)
	if err != nil {
		return h.fail(c, "Board lookup failed", err)
	}
	return c.JSON(board)
}

// HandlePreview returns the live board without storing or posting it.
func (h *Handler) HandlePreview(c *fiber.Ctx) error {
	board, err := h.service.Preview(c.Context())
	if err != nil {
		return h.fail(c, "Live preview failed", err)
	}
	return c.JSON(board)
}

// HandleRefresh runs one reconciliation pass.
func (h *Handler) HandleRefresh(c *fiber.Ctx) error {
	if !h.limiter.Allow() {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error": "refresh rate limit exceeded",
		})
	}

	out, err := h.service.Refresh(c.Context())
	if err != nil {
		return h.fail(c, "Manual refresh failed", err)
	}
	return c.JSON(out)
}

func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}

	logger.WithRayID(h.service.logger, c).Error(msg, zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}
