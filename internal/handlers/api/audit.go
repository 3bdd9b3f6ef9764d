package api

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"tuberank/internal/jobs"
	"tuberank/internal/models"
)

// AuditHandler enqueues audits and reports job status.
type AuditHandler struct {
	queue *jobs.AuditQueue
}

// NewAuditHandler creates an audit handler.
func NewAuditHandler(queue *jobs.AuditQueue) *AuditHandler {
	return &AuditHandler{queue: queue}
}

// Enqueue accepts a video or channel URL and queues it for auditing.
func (h *AuditHandler) Enqueue(c fiber.Ctx) error {
	var body struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	body.URL = strings.TrimSpace(body.URL)
	if body.URL == "" {
		return jsonError(c, fiber.StatusBadRequest, "url is required")
	}

	job, err := h.queue.Enqueue(body.URL)
	if err != nil {
		if errors.Is(err, jobs.ErrQueueFull) {
			return jsonError(c, fiber.StatusServiceUnavailable, "audit queue is full, try again later")
		}
		return jsonError(c, fiber.StatusServiceUnavailable, "audit queue is unavailable")
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"status": "ok",
		"data": fiber.Map{
			"job_id": job.ID,
			"state":  job.Status,
		},
	})
}

// Get returns the current state of an audit job, including its report
// once completed.
func (h *AuditHandler) Get(c fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("jobID"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid job id")
	}

	job := h.queue.Get(jobID)
	if job == nil {
		return jsonError(c, fiber.StatusNotFound, "audit job not found")
	}

	resp := fiber.Map{
		"job_id":     job.ID,
		"url":        job.URL,
		"state":      job.Status,
		"created_at": job.CreatedAt,
	}
	if job.CompletedAt != nil {
		resp["completed_at"] = job.CompletedAt
	}
	switch job.Status {
	case models.JobCompleted:
		resp["report"] = job.Report
	case models.JobFailed:
		resp["error"] = job.Error
	}

	return jsonSuccess(c, resp)
}
