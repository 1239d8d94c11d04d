package student

import (
	"net/http"

	"gymdesk-service/internal/domain/student"
	"gymdesk-service/internal/pkg/response"
	studentsvc "gymdesk-service/internal/service/student"

	"github.com/gin-gonic/gin"
)

type StudentHandler struct {
	studentService *studentsvc.Service
}

func NewStudentHandler(studentService *studentsvc.Service) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

func (h *StudentHandler) Register(c *gin.Context) {
	var req student.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	st, err := h.studentService.Register(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to register student", err)
		return
	}

	response.Success(c, http.StatusCreated, "student registered successfully", st)
}

func (h *StudentHandler) ListStudents(c *gin.Context) {
	list, err := h.studentService.List(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to list students", err)
		return
	}

	response.Success(c, http.StatusOK, "students retrieved", list)
}

func (h *StudentHandler) GetStudent(c *gin.Context) {
	st, err := h.studentService.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, "student not found", err)
		return
	}

	response.Success(c, http.StatusOK, "student retrieved", st)
}

func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	var req student.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	st, err := h.studentService.Edit(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.FromError(c, "failed to update student", err)
		return
	}

	response.Success(c, http.StatusOK, "student updated successfully", st)
}

func (h *StudentHandler) SearchStudents(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		response.Error(c, http.StatusBadRequest, "name query parameter is required", nil)
		return
	}

	list, err := h.studentService.SearchByName(c.Request.Context(), name)
	if err != nil {
		response.FromError(c, "failed to search students", err)
		return
	}

	response.Success(c, http.StatusOK, "students retrieved", list)
}
