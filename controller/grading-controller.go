package controller

import (
	"carwash/app_error"
	"carwash/repository"
	"carwash/service"
	"carwash/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type GradingController struct {
	gradingService *service.GradingService
}

func NewGradingController(db *gorm.DB) *GradingController {
	return &GradingController{
		gradingService: service.NewGradingService(db),
	}
}

func setupGradingController(db *gorm.DB) []RouteInfo {
	e := NewGradingController(db)
	finance := []repository.Permission{repository.PermissionFinance}
	return prefixRoutes("grading", []RouteInfo{
		{Method: "GET", Path: "/parameters", HandlerFunc: e.getParametersHandler(), Authenticated: true},
		{Method: "PUT", Path: "/parameters", HandlerFunc: e.saveParameterHandler(), Authenticated: true, RequiredRoles: finance},
		{Method: "GET", Path: "/estimations", HandlerFunc: e.getEstimationsHandler(), Authenticated: true},
		{Method: "PUT", Path: "/estimations", HandlerFunc: e.saveEstimationHandler(), Authenticated: true, RequiredRoles: finance},
	})
}

// @id GetGradingParameters
// @Description Fetches the parameters a shift is graded on
// @Tags grading
// @Produce json
// @Success 200 {array} GradingParameterResponse
// @Security BearerAuth
// @Router /grading/parameters [get]
func (e *GradingController) getParametersHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		parameters, err := e.gradingService.GetParameters()
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, utils.Map(parameters, toGradingParameterResponse))
	}
}

// @id SaveGradingParameter
// @Description Creates or updates a grading parameter
// @Tags grading
// @Accept json
// @Produce json
// @Param parameter body GradingParameterCreate true "Parameter to save"
// @Success 200 {object} GradingParameterResponse
// @Security BearerAuth
// @Router /grading/parameters [put]
func (e *GradingController) saveParameterHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var parameterCreate GradingParameterCreate
		if err := c.BindJSON(&parameterCreate); err != nil {
			return
		}
		parameter, err := e.gradingService.SaveParameter(&repository.GradingParameter{
			ID:            parameterCreate.ID,
			Name:          parameterCreate.Name,
			WeightPercent: parameterCreate.WeightPercent,
		})
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, toGradingParameterResponse(parameter))
	}
}

// @id GetEstimations
// @Description Fetches the estimations selectable for each grading parameter
// @Tags grading
// @Produce json
// @Success 200 {array} EstimationResponse
// @Security BearerAuth
// @Router /grading/estimations [get]
func (e *GradingController) getEstimationsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		estimations, err := e.gradingService.GetEstimations()
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, utils.Map(estimations, toEstimationResponse))
	}
}

// @id SaveEstimation
// @Description Creates or updates an estimation
// @Tags grading
// @Accept json
// @Produce json
// @Param estimation body EstimationCreate true "Estimation to save"
// @Success 200 {object} EstimationResponse
// @Security BearerAuth
// @Router /grading/estimations [put]
func (e *GradingController) saveEstimationHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var estimationCreate EstimationCreate
		if err := c.BindJSON(&estimationCreate); err != nil {
			return
		}
		estimation, err := e.gradingService.SaveEstimation(&repository.Estimation{
			ID:            estimationCreate.ID,
			Name:          estimationCreate.Name,
			WeightPercent: estimationCreate.WeightPercent,
			Score:         estimationCreate.Score,
		})
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, toEstimationResponse(estimation))
	}
}

type GradingParameterCreate struct {
	ID            int     `json:"id"`
	Name          string  `json:"name" binding:"required"`
	WeightPercent float64 `json:"weight_percent"`
}

type EstimationCreate struct {
	ID            int     `json:"id"`
	Name          string  `json:"name" binding:"required"`
	WeightPercent float64 `json:"weight_percent"`
	Score         *int    `json:"score"`
}

type GradingParameterResponse struct {
	ID            int     `json:"id" binding:"required"`
	Name          string  `json:"name" binding:"required"`
	WeightPercent float64 `json:"weight_percent" binding:"required"`
}

type EstimationResponse struct {
	ID            int     `json:"id" binding:"required"`
	Name          string  `json:"name" binding:"required"`
	WeightPercent float64 `json:"weight_percent" binding:"required"`
	Score         *int    `json:"score"`
}

func toGradingParameterResponse(parameter *repository.GradingParameter) *GradingParameterResponse {
	return &GradingParameterResponse{
		ID:            parameter.ID,
		Name:          parameter.Name,
		WeightPercent: parameter.WeightPercent,
	}
}

func toEstimationResponse(estimation *repository.Estimation) *EstimationResponse {
	return &EstimationResponse{
		ID:            estimation.ID,
		Name:          estimation.Name,
		WeightPercent: estimation.WeightPercent,
		Score:         estimation.Score,
	}
}
