package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-course-admin/internal/application"
	"github.com/oksasatya/go-ddd-course-admin/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-course-admin/internal/domain/repository"
	"github.com/oksasatya/go-ddd-course-admin/pkg/response"
)

type CourseHandler struct {
	Svc *application.CourseService
}

func NewCourseHandler(svc *application.CourseService) *CourseHandler {
	return &CourseHandler{Svc: svc}
}

type createTextRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description" binding:"required,max=1000"`
}

type updateTextRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
}

type textQuery struct {
	Name        string `form:"name"`
	Description string `form:"description"`
}

func (h *CourseHandler) Create(c *gin.Context) {
	var req createTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	course, err := h.Svc.Create(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, course)
}

func (h *CourseHandler) List(c *gin.Context) {
	var q textQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	courses, err := h.Svc.FindAll(c.Request.Context(), repo.TextFilter{Name: q.Name, Description: q.Description})
	if err != nil {
		_ = c.Error(err)
		return
	}
	if courses == nil {
		courses = []*entity.Course{}
	}
	response.Success(c, http.StatusOK, courses)
}

func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.Svc.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, course)
}

func (h *CourseHandler) Update(c *gin.Context) {
	var req updateTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	course, err := h.Svc.Update(c.Request.Context(), c.Param("id"), application.TextInput{Name: req.Name, Description: req.Description})
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, course)
}

func (h *CourseHandler) Delete(c *gin.Context) {
	id, err := h.Svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, id)
}

func (h *CourseHandler) CreateContent(c *gin.Context) {
	var req createTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	content, err := h.Svc.CreateContent(c.Request.Context(), c.Param("id"), req.Name, req.Description)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, content)
}

func (h *CourseHandler) ListContents(c *gin.Context) {
	var q textQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	contents, err := h.Svc.FindAllContents(c.Request.Context(), c.Param("id"), repo.TextFilter{Name: q.Name, Description: q.Description})
	if err != nil {
		_ = c.Error(err)
		return
	}
	if contents == nil {
		contents = []*entity.Content{}
	}
	response.Success(c, http.StatusOK, contents)
}

func (h *CourseHandler) UpdateContent(c *gin.Context) {
	var req updateTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	content, err := h.Svc.UpdateContent(c.Request.Context(), c.Param("id"), c.Param("contentId"), application.TextInput{Name: req.Name, Description: req.Description})
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, content)
}

func (h *CourseHandler) DeleteContent(c *gin.Context) {
	id, err := h.Svc.DeleteContent(c.Request.Context(), c.Param("id"), c.Param("contentId"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, id)
}
