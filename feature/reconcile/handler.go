package reconcile

import (
	"errors"
	"io/fs"

	"record-reconciler/core/logger"
	recon "record-reconciler/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for reconciliations.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the reconcile routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/reconcile")
	group.Post("/", h.HandleReconcile)
	group.Get("/runs", h.HandleListRuns)
	group.Get("/runs/:id", h.HandleGetRun)
}

// StatusFor maps a service error to an HTTP status code.
func StatusFor(err error) int {
	var malformed *recon.MalformedRecordError
	switch {
	case errors.As(err, &malformed):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, recon.ErrInvalidOptions),
		errors.Is(err, fs.ErrNotExist):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrRunNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrHistoryDisabled):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// HandleReconcile runs a reconciliation between two locations.
// @Summary Reconcile two record files
// @Description Matches the records of input_a and input_b by key and writes the reconciled file to output.
// @Description Locations are local paths or s3://bucket/key objects.
// @Tags reconcile
// @Accept json
// @Produce json
// @Param request body Request true "Reconciliation request"
// @Success 200 {object} Report "Run report"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 422 {object} map[string]string "Malformed record"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /reconcile [post]
func (h *Handler) HandleReconcile(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body: " + err.Error(),
		})
	}

	report, err := h.service.Run(c.Context(), req)
	if err != nil {
		l.Error("Reconcile request failed", zap.Error(err))
		body := fiber.Map{"error": err.Error()}
		if report != nil {
			body["run_id"] = report.Run.ID
		}
		return c.Status(StatusFor(err)).JSON(body)
	}

	return c.JSON(report)
}

// HandleListRuns returns the most recent runs.
// @Summary List reconciliation runs
// @Description Returns recorded runs, most recent first.
// @Tags reconcile
// @Produce json
// @Param limit query int false "Maximum number of runs (default 20, max 500)"
// @Success 200 {array} models.Run "Runs"
// @Failure 503 {object} map[string]string "Run history not configured"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /reconcile/runs [get]
func (h *Handler) HandleListRuns(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	runs, err := h.service.ListRuns(c.Context(), c.QueryInt("limit", defaultListLimit))
	if err != nil {
		l.Error("Listing runs failed", zap.Error(err))
		return c.Status(StatusFor(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(runs)
}

// HandleGetRun returns one run.
// @Summary Get a reconciliation run
// @Tags reconcile
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} models.Run "Run"
// @Failure 404 {object} map[string]string "Run not found"
// @Failure 503 {object} map[string]string "Run history not configured"
// @Router /reconcile/runs/{id} [get]
func (h *Handler) HandleGetRun(c *fiber.Ctx) error {
	run, err := h.service.GetRun(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(StatusFor(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(run)
}
