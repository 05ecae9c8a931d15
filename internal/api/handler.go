package api

import (
	"time"

	"github.com/Behyna/paymentbot/internal/queue"
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	queue     *queue.Queue
	startedAt time.Time
}

func NewHandler(q *queue.Queue) *Handler {
	return &Handler{queue: q, startedAt: time.Now()}
}

func (h *Handler) Pong(c *fiber.Ctx) error {
	return c.SendString("pong")
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":        "healthy",
		"service":       "paymentbot",
		"queueDepth":    h.queue.Len(),
		"queueCapacity": h.queue.Cap(),
		"uptimeSeconds": int64(time.Since(h.startedAt).Seconds()),
	})
}
