// Package handlers implements the HTTP surface of the sskeld service.
package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/gogpu/sskel"
	"github.com/gogpu/sskel/internal/skeld/store"
	"github.com/gogpu/sskel/wkt"
)

type Handler struct {
	jobs *store.Store
}

func New(jobs *store.Store) *Handler {
	return &Handler{jobs: jobs}
}

// BuildSkeleton computes the straight skeleton of the WKT POLYGON in the
// request body, stores the result under a fresh job id, and returns the
// summary.
func (h *Handler) BuildSkeleton(c fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "request body must be a WKT POLYGON",
		})
	}

	rings, err := wkt.UnmarshalWKT(string(body))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	b := sskel.NewBuilder()
	for _, ring := range rings {
		if err := b.EnterContour(ring); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}

	sk, err := b.ConstructSkeleton()
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	job := &store.Job{
		ID:               uuid.NewString(),
		PolygonWKT:       string(body),
		SkeletonWKT:      wkt.MarshalSkeleton(sk),
		SVG:              sk.SVG(),
		SkeletonVertices: sk.SkeletonVertexCount(),
		Bisectors:        sk.BisectorCount(),
		CreatedAt:        time.Now().UTC(),
	}
	if err := h.jobs.Save(c.Context(), job); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to store result",
		})
	}

	return c.JSON(fiber.Map{
		"id":                job.ID,
		"skeleton_wkt":      job.SkeletonWKT,
		"skeleton_vertices": job.SkeletonVertices,
		"bisectors":         job.Bisectors,
	})
}

// GetSkeleton returns a stored job by id.
func (h *Handler) GetSkeleton(c fiber.Ctx) error {
	job, err := h.jobs.Get(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "job not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load result",
		})
	}

	return c.JSON(fiber.Map{
		"id":                job.ID,
		"polygon_wkt":       job.PolygonWKT,
		"skeleton_wkt":      job.SkeletonWKT,
		"skeleton_vertices": job.SkeletonVertices,
		"bisectors":         job.Bisectors,
		"created_at":        job.CreatedAt,
	})
}

// GetSkeletonSVG returns the stored rendering of a job as SVG.
func (h *Handler) GetSkeletonSVG(c fiber.Ctx) error {
	job, err := h.jobs.Get(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "job not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load result",
		})
	}

	c.Set(fiber.HeaderContentType, "image/svg+xml")
	return c.SendString(job.SVG)
}
