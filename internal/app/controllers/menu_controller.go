package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/hostelmess/internal/app/models/dto"
	"github.com/yigit/hostelmess/internal/app/services"
	"github.com/yigit/hostelmess/internal/middleware"
)

// MenuController serves the weekly menu
type MenuController struct {
	menuService services.MenuService
}

// NewMenuController creates a new MenuController
func NewMenuController(menuService services.MenuService) *MenuController {
	return &MenuController{
		menuService: menuService,
	}
}

// GetWeeklyMenu lists the menu for every day
// @Summary Weekly menu
// @Tags menu
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.MenuItem}
// @Router /menu [get]
func (c *MenuController) GetWeeklyMenu(ctx *gin.Context) {
	items, err := c.menuService.GetWeeklyMenu(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(items))
}

// GetTodayMenu returns one day's menu, today unless ?day= is given
// @Summary Menu of a day
// @Tags menu
// @Produce json
// @Param day query string false "Weekday name"
// @Success 200 {object} dto.APIResponse{data=dto.TodayMenuResponse}
// @Failure 404 {object} dto.ErrorResponse "No menu rows at all"
// @Router /menu/today [get]
func (c *MenuController) GetTodayMenu(ctx *gin.Context) {
	item, err := c.menuService.GetMenuForDay(ctx.Request.Context(), ctx.Query("day"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.TodayMenuResponse{
		Day:  item.Day,
		Menu: item,
	}))
}

// UpdateMenu replaces the four meal lists of a day
// @Summary Update a day's menu
// @Tags menu
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Menu item ID"
// @Param request body dto.UpdateMenuRequest true "Meal lists"
// @Success 200 {object} dto.APIResponse{data=models.MenuItem}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /menu/{id} [put]
func (c *MenuController) UpdateMenu(ctx *gin.Context) {
	var req dto.UpdateMenuRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	item, err := c.menuService.UpdateMenu(ctx.Request.Context(), ctx.Param("id"), req.Meals())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(item))
}
