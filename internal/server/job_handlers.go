// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"questboard/internal/middleware"
	"questboard/internal/models"
	"questboard/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// GetJobs handles GET /api/jobs?category=&q=&page=&limit=
func (s *Server) GetJobs(c *fiber.Ctx) error {
	filter := repository.JobFilter{
		Category: c.Query("category"),
		Search:   c.Query("q"),
		Page:     c.QueryInt("page", 1),
		Limit:    c.QueryInt("limit", 20),
	}

	jobs, total, err := s.jobService.List(c.Context(), filter)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"jobs":  jobs,
		"total": total,
		"page":  filter.Page,
	})
}

// GetJobBySlug handles GET /api/jobs/:slug
func (s *Server) GetJobBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")

	job, err := s.jobService.GetBySlug(c.Context(), slug)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(job)
}

// CreateJob handles POST /api/jobs (admin only)
func (s *Server) CreateJob(c *fiber.Ctx) error {
	var req models.Job
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	job, err := s.jobService.Create(c.Context(), middleware.UserID(c), &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(job)
}

// UpdateJob handles PATCH /api/jobs/:id (admin only)
func (s *Server) UpdateJob(c *fiber.Ctx) error {
	jobID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title       *string `json:"title"`
		Location    *string `json:"location"`
		Category    *string `json:"category"`
		SalaryMin   *int    `json:"salary_min"`
		SalaryMax   *int    `json:"salary_max"`
		Description *string `json:"description"`
		Tags        *string `json:"tags"`
		Published   *bool   `json:"published"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	job, svcErr := s.jobService.Update(c.Context(), middleware.UserID(c), jobID, func(job *models.Job) {
		if req.Title != nil {
			job.Title = *req.Title
		}
		if req.Location != nil {
			job.Location = *req.Location
		}
		if req.Category != nil {
			job.Category = *req.Category
		}
		if req.SalaryMin != nil {
			job.SalaryMin = *req.SalaryMin
		}
		if req.SalaryMax != nil {
			job.SalaryMax = *req.SalaryMax
		}
		if req.Description != nil {
			job.Description = *req.Description
		}
		if req.Tags != nil {
			job.Tags = *req.Tags
		}
		if req.Published != nil {
			job.Published = *req.Published
		}
	})
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(job)
}

// DeleteJob handles DELETE /api/jobs/:id (admin only)
func (s *Server) DeleteJob(c *fiber.Ctx) error {
	jobID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.jobService.Delete(c.Context(), middleware.UserID(c), jobID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": true})
}
