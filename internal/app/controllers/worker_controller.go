package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/hostelmess/internal/app/models/dto"
	"github.com/yigit/hostelmess/internal/app/services"
	"github.com/yigit/hostelmess/internal/middleware"
)

// WorkerController serves the tipping roster
type WorkerController struct {
	workerService services.WorkerService
}

// NewWorkerController creates a new WorkerController
func NewWorkerController(workerService services.WorkerService) *WorkerController {
	return &WorkerController{
		workerService: workerService,
	}
}

// GetWorkers lists mess workers by name
// @Summary Mess workers
// @Tags workers
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Worker}
// @Router /workers [get]
func (c *WorkerController) GetWorkers(ctx *gin.Context) {
	workers, err := c.workerService.ListWorkers(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(workers))
}

// GetWorker returns one worker
// @Summary Worker details
// @Tags workers
// @Produce json
// @Param id path string true "Worker ID"
// @Success 200 {object} dto.APIResponse{data=models.Worker}
// @Failure 404 {object} dto.ErrorResponse
// @Router /workers/{id} [get]
func (c *WorkerController) GetWorker(ctx *gin.Context) {
	worker, err := c.workerService.GetWorker(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(worker))
}

// GetTipLink builds the UPI deep link for a worker
// @Summary UPI tip link
// @Tags workers
// @Produce json
// @Param id path string true "Worker ID"
// @Param amount query string false "Amount in rupees"
// @Success 200 {object} dto.APIResponse{data=dto.TipLinkResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /workers/{id}/tip-link [get]
func (c *WorkerController) GetTipLink(ctx *gin.Context) {
	link, err := c.workerService.TipLink(ctx.Request.Context(), ctx.Param("id"), ctx.Query("amount"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(link))
}
