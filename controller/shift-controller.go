package controller

import (
	"bytes"
	"carwash/app_error"
	"carwash/metrics"
	"carwash/payroll"
	"carwash/repository"
	"carwash/service"
	"carwash/utils"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const (
	defaultReportDays = 30
	xlsxContentType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type ShiftController struct {
	shiftService *service.ShiftService
	hub          *ShiftHub
}

func NewShiftController(shiftService *service.ShiftService, hub *ShiftHub) *ShiftController {
	return &ShiftController{
		shiftService: shiftService,
		hub:          hub,
	}
}

func setupShiftController(shiftService *service.ShiftService, hub *ShiftHub) []RouteInfo {
	e := NewShiftController(shiftService, hub)
	finance := []repository.Permission{repository.PermissionFinance}
	return prefixRoutes("shifts", []RouteInfo{
		{Method: "POST", Path: "/calculate", HandlerFunc: e.calculatePayoutHandler(), Authenticated: true},
		{Method: "GET", Path: "", HandlerFunc: e.getShiftsHandler(), Authenticated: true, RequiredRoles: finance},
		{Method: "PUT", Path: "", HandlerFunc: e.saveShiftHandler(), Authenticated: true, RequiredRoles: finance},
		{Method: "GET", Path: "/export", HandlerFunc: e.exportShiftsHandler(), Authenticated: true, RequiredRoles: finance},
		{Method: "GET", Path: "/:shift_id", HandlerFunc: e.getShiftHandler(), Authenticated: true, RequiredRoles: finance},
		{Method: "PUT", Path: "/:shift_id/grades", HandlerFunc: e.gradeShiftHandler(), Authenticated: true, RequiredRoles: finance},
		{Method: "GET", Path: "/:shift_id/ws", HandlerFunc: e.webSocketHandler(), Authenticated: true, RequiredRoles: finance},
	})
}

// @id CalculatePayout
// @Description Calculates the payout of a shift from posted data without storing anything
// @Tags shift
// @Accept json
// @Produce json
// @Param input body payroll.PayoutInput true "Salary, bonus and grading of the shift"
// @Success 200 {object} CalculationResponse
// @Security BearerAuth
// @Router /shifts/calculate [post]
func (e *ShiftController) calculatePayoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input payroll.PayoutInput
		if err := c.BindJSON(&input); err != nil {
			return
		}
		payout := payroll.CalculatePayout(input)
		metrics.PayoutsCalculated.WithLabelValues(string(payout.Status)).Inc()
		c.JSON(200, toCalculationResponse(input, payout))
	}
}

// @id GetShifts
// @Description Fetches the shift reports of a date range with their payouts
// @Tags shift
// @Produce json
// @Param from query string false "First shift date (YYYY-MM-DD), defaults to 30 days before to"
// @Param to query string false "Last shift date (YYYY-MM-DD), defaults to today"
// @Param pos_id query int false "Point of sale"
// @Success 200 {array} ShiftResponse
// @Security BearerAuth
// @Router /shifts [get]
func (e *ShiftController) getShiftsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, err := parseShiftFilter(c.Request.URL.Query(), time.Now())
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		summaries, err := e.shiftService.ListShiftReports(filter)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, utils.Map(summaries, toShiftResponse))
	}
}

// @id GetShift
// @Description Fetches a shift report with its grading, average score and payout
// @Tags shift
// @Produce json
// @Param shift_id path int true "Shift Id"
// @Success 200 {object} ShiftResponse
// @Security BearerAuth
// @Router /shifts/{shift_id} [get]
func (e *ShiftController) getShiftHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		summary := e.getShiftSummary(c)
		if summary == nil {
			return
		}
		c.JSON(200, toShiftResponse(summary))
	}
}

// @id SaveShift
// @Description Creates or updates a shift report
// @Tags shift
// @Accept json
// @Produce json
// @Param shift body ShiftCreate true "Shift to save"
// @Success 200 {object} ShiftResponse
// @Security BearerAuth
// @Router /shifts [put]
func (e *ShiftController) saveShiftHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var shiftCreate ShiftCreate
		if err := c.BindJSON(&shiftCreate); err != nil {
			return
		}
		shift, err := shiftCreate.toModel()
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		shift, err = e.shiftService.SaveShift(shift)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		summary, err := e.shiftService.GetShiftReport(shift.ID)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, toShiftResponse(summary))
	}
}

// @id GradeShift
// @Description Selects estimations for grading parameters of a shift and recalculates its payout
// @Tags shift
// @Accept json
// @Produce json
// @Param shift_id path int true "Shift Id"
// @Param grades body []service.GradeInput true "Selected estimations, a null estimation_id clears the grade"
// @Success 200 {object} ShiftResponse
// @Security BearerAuth
// @Router /shifts/{shift_id}/grades [put]
func (e *ShiftController) gradeShiftHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		shiftId, err := strconv.Atoi(c.Param("shift_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var grades []service.GradeInput
		if err := c.BindJSON(&grades); err != nil {
			return
		}
		summary, err := e.shiftService.GradeShift(c.Request.Context(), shiftId, grades)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, toShiftResponse(summary))
	}
}

// @id ExportShifts
// @Description Exports the shift payouts of a date range as an xlsx workbook
// @Tags shift
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param from query string false "First shift date (YYYY-MM-DD), defaults to 30 days before to"
// @Param to query string false "Last shift date (YYYY-MM-DD), defaults to today"
// @Param pos_id query int false "Point of sale"
// @Success 200 {file} file
// @Security BearerAuth
// @Router /shifts/export [get]
func (e *ShiftController) exportShiftsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, err := parseShiftFilter(c.Request.URL.Query(), time.Now())
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var buf bytes.Buffer
		if err := e.shiftService.ExportShiftReports(&buf, filter); err != nil {
			app_error.Respond(c, err)
			return
		}
		filename := fmt.Sprintf("shifts_%s_%s.xlsx", filter.From.Format(time.DateOnly), filter.To.Format(time.DateOnly))
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(200, xlsxContentType, buf.Bytes())
	}
}

// @id ShiftWebSocket
// @Description Websocket for payout updates of a shift. The current state is sent on connect, every regrading afterwards.
// @Tags shift
// @Param shift_id path int true "Shift Id"
// @Param token query string false "Auth token, browsers cannot set headers on websocket requests"
// @Success 200 {object} ShiftResponse
// @Security BearerAuth
// @Router /shifts/{shift_id}/ws [get]
func (e *ShiftController) webSocketHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		summary := e.getShiftSummary(c)
		if summary == nil {
			return
		}
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		shiftId := summary.Shift.ID
		e.hub.Serve(conn, shiftId, func() (*service.ShiftSummary, error) {
			return e.shiftService.GetShiftReport(shiftId)
		})
	}
}

func (e *ShiftController) getShiftSummary(c *gin.Context) *service.ShiftSummary {
	shiftId, err := strconv.Atoi(c.Param("shift_id"))
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return nil
	}
	summary, err := e.shiftService.GetShiftReport(shiftId)
	if err != nil {
		app_error.Respond(c, err)
		return nil
	}
	return summary
}

// parseShiftFilter reads from, to and pos_id. Missing bounds default to the
// defaultReportDays days up to today.
func parseShiftFilter(query url.Values, now time.Time) (repository.ShiftFilter, error) {
	filter := repository.ShiftFilter{
		To: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
	}
	if to := query.Get("to"); to != "" {
		parsed, err := time.Parse(time.DateOnly, to)
		if err != nil {
			return filter, fmt.Errorf("invalid to date: %w", err)
		}
		filter.To = parsed
	}
	filter.From = filter.To.AddDate(0, 0, -defaultReportDays)
	if from := query.Get("from"); from != "" {
		parsed, err := time.Parse(time.DateOnly, from)
		if err != nil {
			return filter, fmt.Errorf("invalid from date: %w", err)
		}
		filter.From = parsed
	}
	if filter.From.After(filter.To) {
		return filter, errors.New("from must not be after to")
	}
	if posId := query.Get("pos_id"); posId != "" {
		parsed, err := strconv.Atoi(posId)
		if err != nil {
			return filter, fmt.Errorf("invalid pos_id: %w", err)
		}
		filter.PosID = &parsed
	}
	return filter, nil
}

type ShiftCreate struct {
	ID          int                 `json:"id"`
	WorkerID    int                 `json:"worker_id" binding:"required"`
	WorkerName  string              `json:"worker_name" binding:"required"`
	PosID       int                 `json:"pos_id" binding:"required"`
	ShiftDate   string              `json:"shift_date" binding:"required"`
	DailySalary decimal.NullDecimal `json:"daily_salary"`
	BonusPayout decimal.NullDecimal `json:"bonus_payout"`
}

func (s ShiftCreate) toModel() (*repository.ShiftReport, error) {
	shiftDate, err := time.Parse(time.DateOnly, s.ShiftDate)
	if err != nil {
		return nil, fmt.Errorf("invalid shift_date: %w", err)
	}
	return &repository.ShiftReport{
		ID:          s.ID,
		WorkerID:    s.WorkerID,
		WorkerName:  s.WorkerName,
		PosID:       s.PosID,
		ShiftDate:   shiftDate,
		DailySalary: s.DailySalary,
		BonusPayout: s.BonusPayout,
	}, nil
}

type ShiftResponse struct {
	ID             int                  `json:"id" binding:"required"`
	WorkerID       int                  `json:"worker_id" binding:"required"`
	WorkerName     string               `json:"worker_name" binding:"required"`
	PosID          int                  `json:"pos_id" binding:"required"`
	ShiftDate      string               `json:"shift_date" binding:"required"`
	DailySalary    decimal.NullDecimal  `json:"daily_salary"`
	BonusPayout    decimal.NullDecimal  `json:"bonus_payout"`
	Grading        *payroll.GradingInfo `json:"grading"`
	GradedCount    int                  `json:"graded_count"`
	ParameterCount int                  `json:"parameter_count"`
	AverageScore   *float64             `json:"average_score"`
	Payout         payroll.Payout       `json:"payout" binding:"required"`
}

type CalculationResponse struct {
	GradedCount    int            `json:"graded_count"`
	ParameterCount int            `json:"parameter_count"`
	AverageScore   *float64       `json:"average_score"`
	Payout         payroll.Payout `json:"payout" binding:"required"`
}

func toShiftResponse(summary *service.ShiftSummary) *ShiftResponse {
	response := &ShiftResponse{
		ID:           summary.Shift.ID,
		WorkerID:     summary.Shift.WorkerID,
		WorkerName:   summary.Shift.WorkerName,
		PosID:        summary.Shift.PosID,
		ShiftDate:    summary.Shift.ShiftDate.Format(time.DateOnly),
		DailySalary:  summary.Shift.DailySalary,
		BonusPayout:  summary.Shift.BonusPayout,
		Grading:      summary.Grading,
		AverageScore: summary.AverageScore,
		Payout:       summary.Payout,
	}
	if summary.Grading != nil {
		response.GradedCount, response.ParameterCount = summary.Grading.Progress()
	}
	return response
}

func toCalculationResponse(input payroll.PayoutInput, payout payroll.Payout) *CalculationResponse {
	response := &CalculationResponse{Payout: payout}
	if input.Grading != nil {
		response.GradedCount, response.ParameterCount = input.Grading.Progress()
		if average, ok := payroll.AverageScore(*input.Grading); ok {
			response.AverageScore = &average
		}
	}
	return response
}
