package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ekinura/schoolboard/internal/app/models/dto"
	"github.com/ekinura/schoolboard/internal/app/services"
	"github.com/ekinura/schoolboard/internal/middleware"
	"github.com/ekinura/schoolboard/internal/pkg/schema"
)

// SchoolController handles school record endpoints
type SchoolController struct {
	schoolService services.SchoolService
}

// NewSchoolController creates a new SchoolController
func NewSchoolController(schoolService services.SchoolService) *SchoolController {
	return &SchoolController{
		schoolService: schoolService,
	}
}

// CreateSchool handles school submission
// @Summary Add a school record
// @Description Validates the submitted fields, stores the optional image best-effort, and inserts the record
// @Tags schools
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "School name"
// @Param address formData string true "Address"
// @Param city formData string true "City"
// @Param state formData string true "State"
// @Param contact formData string true "Contact number, 10-15 digits"
// @Param email_id formData string true "Email address"
// @Param image formData file false "School image"
// @Success 200 {object} dto.SubmitResponse
// @Failure 400 {object} dto.SubmitResponse
// @Failure 500 {object} dto.FailureResponse
// @Router /api/schools [post]
func (c *SchoolController) CreateSchool(ctx *gin.Context) {
	// Explicit parse step: every field arrives as text and stays text
	// until the schema has accepted it.
	input := schema.SchoolInput{
		Name:    ctx.PostForm("name"),
		Address: ctx.PostForm("address"),
		City:    ctx.PostForm("city"),
		State:   ctx.PostForm("state"),
		Contact: ctx.PostForm("contact"),
		EmailID: ctx.PostForm("email_id"),
	}

	// The file part is optional; a missing part means no image.
	file, err := ctx.FormFile("image")
	if err != nil {
		file = nil
	}

	id, fieldErrs, err := c.schoolService.AddSchool(ctx.Request.Context(), input, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if len(fieldErrs) > 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewValidationFailure(fieldErrs))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSubmitSuccess(id))
}

// ListSchools handles school listing
// @Summary List school records
// @Description Returns every stored record, most recent first
// @Tags schools
// @Produce json
// @Success 200 {object} dto.ListResponse
// @Failure 500 {object} dto.FailureResponse
// @Router /api/schools [get]
func (c *SchoolController) ListSchools(ctx *gin.Context) {
	schools, err := c.schoolService.ListSchools(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListSuccess(schools))
}
