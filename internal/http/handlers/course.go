package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/akademus/akademus-api/internal/http/response"
	"github.com/akademus/akademus-api/internal/platform/logger"
	"github.com/akademus/akademus-api/internal/services"
)

type CourseHandler struct {
	log           *logger.Logger
	courseService services.CourseService
}

func NewCourseHandler(log *logger.Logger, courseService services.CourseService) *CourseHandler {
	return &CourseHandler{
		log:           log.With("handler", "CourseHandler"),
		courseService: courseService,
	}
}

type createCourseRequest struct {
	Title string `json:"title" binding:"required"`
}

type updateCourseRequest struct {
	Title *string `json:"title"`
}

// POST /courses
func (h *CourseHandler) Create(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	var req createCourseRequest
	if err := bindJSON(c, &req); err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	course, err := h.courseService.Create(c.Request.Context(), ownerID, services.CreateCourseInput{Title: req.Title})
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	response.RespondCreated(c, course)
}

// GET /courses
func (h *CourseHandler) List(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	courses, err := h.courseService.ListForOwner(c.Request.Context(), ownerID)
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	response.RespondOK(c, courses)
}

// GET /courses/:id
func (h *CourseHandler) Get(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	course, err := h.courseService.GetOne(c.Request.Context(), id, ownerID)
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	response.RespondOK(c, course)
}

// PATCH /courses/:id
func (h *CourseHandler) Update(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	var req updateCourseRequest
	if err := bindJSON(c, &req); err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	course, err := h.courseService.Update(c.Request.Context(), id, ownerID, services.UpdateCourseInput{Title: req.Title})
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	response.RespondOK(c, course)
}

// DELETE /courses/:id
func (h *CourseHandler) Delete(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	if err := h.courseService.Remove(c.Request.Context(), id, ownerID); err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	response.RespondNoContent(c)
}
