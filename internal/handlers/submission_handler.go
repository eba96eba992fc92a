package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"marketplace-service/internal/models"
	"marketplace-service/internal/services"
	"marketplace-service/internal/valuation"

	"github.com/gofiber/fiber/v3"
)

type SubmissionHandler struct {
	submissionService     *services.SubmissionService
	recommendationService *services.RecommendationService
}

func NewSubmissionHandler(submissionService *services.SubmissionService, recommendationService *services.RecommendationService) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService:     submissionService,
		recommendationService: recommendationService,
	}
}

func (sh *SubmissionHandler) Register(app *fiber.App) {
	group := app.Group("marketplace/api/v1/submissions")

	group.Post("/", sh.CreateSubmission)
	group.Get("/", sh.ListSubmissions)
	group.Get("/:id", sh.GetSubmission)
	group.Patch("/:id/action", sh.ChooseAction)
	group.Post("/:id/image", sh.UploadImage)
	group.Post("/:id/solutions", sh.GenerateSolutions)
	group.Post("/:id/pickup", sh.SchedulePickup)
	group.Put("/:id/pickup-status", sh.UpdatePickupStatus)
}

func (sh *SubmissionHandler) CreateSubmission(c fiber.Ctx) error {
	var req models.CreateSubmissionRequest
	if err := c.Bind().Body(&req); err != nil {
		slog.Error("error parsing request", "error", err)
		return c.Status(http.StatusBadRequest).JSON(models.CreateErrorResponse("INVALID_REQUEST", "Invalid request body"))
	}

	submission, err := sh.submissionService.CreateSubmission(c.Context(), &req)
	if err != nil {
		if errors.Is(err, valuation.ErrInvalidInput) || errors.Is(err, valuation.ErrInvalidUnit) || errors.Is(err, valuation.ErrUnknownCrop) {
			return c.Status(http.StatusBadRequest).JSON(models.CreateErrorResponse("INVALID_REQUEST", err.Error()))
		}
		return c.Status(http.StatusBadRequest).JSON(models.CreateErrorResponse("CREATION_FAILED", err.Error()))
	}

	return c.Status(http.StatusCreated).JSON(models.CreateSuccessResponse(submission))
}

func (sh *SubmissionHandler) ListSubmissions(c fiber.Ctx) error {
	submissions, err := sh.submissionService.ListSubmissions(c.Context())
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(models.CreateErrorResponse("FETCH_FAILED", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(models.CreateSuccessResponse(submissions))
}

func (sh *SubmissionHandler) GetSubmission(c fiber.Ctx) error {
	submission, err := sh.submissionService.GetSubmission(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(models.CreateErrorResponse("NOT_FOUND", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(models.CreateSuccessResponse(submission))
}

func (sh *SubmissionHandler) ChooseAction(c fiber.Ctx) error {
	var req models.ChooseActionRequest
	if err := c.Bind().Body(&req); err != nil {
		slog.Error("error parsing request", "error", err)
		return c.Status(http.StatusBadRequest).JSON(models.CreateErrorResponse("INVALID_REQUEST", "Invalid request body"))
	}

	submission, err := sh.submissionService.ChooseAction(c.Context(), c.Params("id"), req.Action)
	if err != nil {
		if errors.Is(err, services.ErrActionAlreadyChosen) {
			return c.Status(http.StatusConflict).JSON(models.CreateErrorResponse("ACTION_ALREADY_CHOSEN", err.Error()))
		}
		return c.Status(http.StatusBadRequest).JSON(models.CreateErrorResponse("ACTION_FAILED", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(models.CreateSuccessResponse(submission))
}

func (sh *SubmissionHandler) UploadImage(c fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(models.CreateErrorResponse("INVALID_REQUEST", "Image file is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(models.CreateErrorResponse("INVALID_REQUEST", "Failed to open uploaded file"))
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(models.CreateErrorResponse("INVALID_REQUEST", "Failed to read uploaded file"))
	}

	contentType := fileHeader.Header.Get("Content-Type")
	url, err := sh.submissionService.UploadWasteImage(c.Context(), c.Params("id"), data, contentType)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(models.CreateErrorResponse("UPLOAD_FAILED", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(models.CreateSuccessResponse(map[string]string{
		"image_url": url,
	}))
}

func (sh *SubmissionHandler) GenerateSolutions(c fiber.Ctx) error {
	submission, err := sh.submissionService.GetSubmission(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(models.CreateErrorResponse("NOT_FOUND", err.Error()))
	}

	result, err := sh.recommendationService.GenerateSolutions(c.Context(), submission)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(models.CreateErrorResponse("GENERATION_FAILED", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(models.CreateSuccessResponse(result))
}

func (sh *SubmissionHandler) SchedulePickup(c fiber.Ctx) error {
	var req models.SchedulePickupRequest
	if err := c.Bind().Body(&req); err != nil {
		slog.Error("error parsing request", "error", err)
		return c.Status(http.StatusBadRequest).JSON(models.CreateErrorResponse("INVALID_REQUEST", "Invalid request body"))
	}

	submission, err := sh.submissionService.SchedulePickup(c.Context(), c.Params("id"), req.PickupDate)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(models.CreateErrorResponse("SCHEDULE_FAILED", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(models.CreateSuccessResponse(submission))
}

func (sh *SubmissionHandler) UpdatePickupStatus(c fiber.Ctx) error {
	var req struct {
		Status models.PickupStatus `json:"status"`
	}
	if err := c.Bind().Body(&req); err != nil {
		slog.Error("error parsing request", "error", err)
		return c.Status(http.StatusBadRequest).JSON(models.CreateErrorResponse("INVALID_REQUEST", "Invalid request body"))
	}

	if err := sh.submissionService.UpdatePickupStatus(c.Context(), c.Params("id"), req.Status); err != nil {
		return c.Status(http.StatusBadRequest).JSON(models.CreateErrorResponse("UPDATE_FAILED", err.Error()))
	}

	return c.Status(http.StatusOK).JSON(models.CreateSuccessResponse(map[string]string{
		"message": "Pickup status updated successfully",
	}))
}
