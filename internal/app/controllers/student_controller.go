package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campuscrm/admitdesk/internal/app/models/dto"
	"github.com/campuscrm/admitdesk/internal/app/services"
	"github.com/campuscrm/admitdesk/internal/middleware"
)

// StudentController handles prospective-student record operations
type StudentController struct {
	studentService services.StudentService
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService, logger zerolog.Logger) *StudentController {
	return &StudentController{
		studentService: studentService,
		logger:         logger,
	}
}

// BulkIngest handles a spreadsheet upload
// @Summary Bulk ingest students
// @Description Stores the valid rows of an upload batch, skipping duplicates. Returns insert and reject counts.
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkIngestRequest true "Upload rows"
// @Success 200 {object} dto.APIResponse{data=dto.BulkIngestResult} "Ingest summary"
// @Failure 400 {object} dto.ErrorResponse "No valid students found"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /students/bulk [post]
func (c *StudentController) BulkIngest(ctx *gin.Context) {
	var req dto.BulkIngestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid bulk ingest payload")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	result, err := c.studentService.BulkIngest(ctx.Request.Context(), currentUserID(ctx), req.Rows)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.BulkIngestResult{
		Inserted: result.Inserted,
		Rejected: result.Rejected,
	}))
}

// List handles the calling list
// @Summary List visible students
// @Description Returns the caller's visible student records, most recent first. SUPER_ADMIN sees all records, everyone else their own uploads.
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Student} "Visible students"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /students [get]
func (c *StudentController) List(ctx *gin.Context) {
	students, err := c.studentService.ListVisible(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(students))
}

// Update handles a call-record update
// @Summary Update call record
// @Description Overwrites a student's call-tracking fields and stamps the caller's name as last updater
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.UpdateStudentRequest true "Call record fields"
// @Success 204 "Record updated"
// @Failure 400 {object} dto.ErrorResponse "Unknown status or interest"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [put]
func (c *StudentController) Update(ctx *gin.Context) {
	studentID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || studentID <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	update := services.CallRecordUpdate{
		Status:     req.Status,
		Interest:   req.Interest,
		Notes:      req.Notes,
		PrevCourse: req.PrevCourse,
	}

	if err := c.studentService.UpdateCallRecord(ctx.Request.Context(), currentUserID(ctx), studentID, update); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Stats handles the dashboard aggregates
// @Summary Dashboard statistics
// @Description Returns total and grouped student counts. SUPER_ADMIN and ADMIN see global numbers, FACULTY their own uploads.
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardStats} "Dashboard statistics"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /dashboard/stats [get]
func (c *StudentController) Stats(ctx *gin.Context) {
	stats, err := c.studentService.GetDashboardStats(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	response := dto.DashboardStats{
		Total:          stats.Total,
		InterestGroups: make(map[string]int64, len(stats.InterestGroups)),
		StatusGroups:   make(map[string]int64, len(stats.StatusGroups)),
	}
	for interest, count := range stats.InterestGroups {
		response.InterestGroups[string(interest)] = count
	}
	for status, count := range stats.StatusGroups {
		response.StatusGroups[string(status)] = count
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}
