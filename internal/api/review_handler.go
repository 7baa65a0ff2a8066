package api

import (
	"strconv"

	"review-service/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// pageParam reads the zero-indexed page query parameter, defaulting to 0.
func pageParam(c *fiber.Ctx) (int, bool) {
	raw := c.Query("page")
	if raw == "" {
		return 0, true
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return page, true
}

func invalidPage(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid page parameter"})
}

func (h *ReviewHandler) Recent(c *fiber.Ctx) error {
	page, ok := pageParam(c)
	if !ok {
		return invalidPage(c)
	}

	reviews, err := h.reviewService.GetRecentReviews(c.UserContext(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(reviews)
}

func (h *ReviewHandler) Star(c *fiber.Ctx) error {
	page, ok := pageParam(c)
	if !ok {
		return invalidPage(c)
	}

	reviews, err := h.reviewService.GetReviewsByStar(c.UserContext(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(reviews)
}

func (h *ReviewHandler) Detail(c *fiber.Ctx) error {
	detail, err := h.reviewService.GetReviewsByAddress(c.UserContext(), c.Query("address"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(detail)
}

func (h *ReviewHandler) Others(c *fiber.Ctx) error {
	page, ok := pageParam(c)
	if !ok {
		return invalidPage(c)
	}

	reviews, err := h.reviewService.GetOtherReviews(c.UserContext(), c.Query("address"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(reviews)
}

func (h *ReviewHandler) Search(c *fiber.Ctx) error {
	results, err := h.reviewService.SearchReviewsGroupedByAddress(c.UserContext(), c.Query("address"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(results)
}

func (h *ReviewHandler) Submit(c *fiber.Ctx) error {
	userID, err := GetUserIDFromLocals(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	var req service.SubmitReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON", "details": err.Error()})
	}

	summary, err := h.reviewService.SubmitReview(c.UserContext(), req, userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(summary)
}

func (h *ReviewHandler) Delete(c *fiber.Ctx) error {
	userID, err := GetUserIDFromLocals(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	reviewID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid review ID format"})
	}

	if err := h.reviewService.DeleteReview(c.UserContext(), reviewID, userID); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
