package drafts

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/extract"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/shared/util"
)

const maxImportSize = 10 << 20 // 10MB

// Handler wires the resume editor endpoints to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the resume editor routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	r := rg.Group("/resume")

	r.GET("", h.snapshot)
	r.DELETE("/session", h.discard)
	r.PUT("/info", h.updateInfo)

	r.POST("/education", h.addEducation)
	r.PUT("/education/:idx", h.setEducation)
	r.DELETE("/education/:idx", h.removeEducation)

	r.POST("/sections", h.addSection)
	r.PUT("/sections/:name/include", h.setInclude)
	r.POST("/sections/:name/items", h.addItem)
	r.PUT("/sections/:name/items/:idx", h.setItem)
	r.DELETE("/sections/:name/items/:idx", h.removeItem)
	r.POST("/sections/:name/items/:idx/points", h.addPoint)
	r.PUT("/sections/:name/items/:idx/points/:pointIdx", h.setPoint)
	r.DELETE("/sections/:name/items/:idx/points/:pointIdx", h.removePoint)

	r.POST("/save", h.save)
	r.POST("/submit", h.submit)
	r.POST("/import", h.importSource)
}

func (h *Handler) snapshot(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	body, err := h.Svc.Snapshot(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to build draft snapshot", nil)
		return
	}
	c.Data(http.StatusOK, "application/json", body)
}

func (h *Handler) discard(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	h.Svc.Discard(userID)
	c.Status(http.StatusNoContent)
}

func (h *Handler) updateInfo(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req personalInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	body, err := h.Svc.UpdateInfo(c.Request.Context(), userID, req.toModel())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", body)
}

func (h *Handler) addEducation(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	body, err := h.Svc.AddEducation(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Data(http.StatusCreated, "application/json", body)
}

func (h *Handler) setEducation(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	idx, ok := indexParam(c, "idx")
	if !ok {
		return
	}

	var req educationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	entry, err := req.toModel()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	body, err := h.Svc.SetEducation(c.Request.Context(), userID, idx, entry)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", body)
}

func (h *Handler) removeEducation(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	idx, ok := indexParam(c, "idx")
	if !ok {
		return
	}

	body, err := h.Svc.RemoveEducation(c.Request.Context(), userID, idx)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", body)
}

func (h *Handler) addSection(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req addSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	name, err := ParseSectionName(req.Name)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	body, err := h.Svc.AddSection(c.Request.Context(), userID, name)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Data(http.StatusCreated, "application/json", body)
}

func (h *Handler) setInclude(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	name, ok := sectionParam(c)
	if !ok {
		return
	}

	var req includeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	body, err := h.Svc.SetInclude(c.Request.Context(), userID, name, req.Include)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", body)
}

func (h *Handler) addItem(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	name, ok := sectionParam(c)
	if !ok {
		return
	}

	body, err := h.Svc.AddItem(c.Request.Context(), userID, name)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Data(http.StatusCreated, "application/json", body)
}

func (h *Handler) setItem(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	name, ok := sectionParam(c)
	if !ok {
		return
	}
	idx, ok := indexParam(c, "idx")
	if !ok {
		return
	}

	var req sectionItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	item, err := req.toModel()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	body, err := h.Svc.SetItem(c.Request.Context(), userID, name, idx, item)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", body)
}

func (h *Handler) removeItem(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	name, ok := sectionParam(c)
	if !ok {
		return
	}
	idx, ok := indexParam(c, "idx")
	if !ok {
		return
	}

	body, err := h.Svc.RemoveItem(c.Request.Context(), userID, name, idx)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", body)
}

func (h *Handler) addPoint(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	name, ok := sectionParam(c)
	if !ok {
		return
	}
	idx, ok := indexParam(c, "idx")
	if !ok {
		return
	}

	body, err := h.Svc.AddPoint(c.Request.Context(), userID, name, idx)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Data(http.StatusCreated, "application/json", body)
}

func (h *Handler) setPoint(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	name, ok := sectionParam(c)
	if !ok {
		return
	}
	idx, ok := indexParam(c, "idx")
	if !ok {
		return
	}
	pointIdx, ok := indexParam(c, "pointIdx")
	if !ok {
		return
	}

	var req descriptionPointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	body, err := h.Svc.SetPoint(c.Request.Context(), userID, name, idx, pointIdx, req.toModel())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", body)
}

func (h *Handler) removePoint(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	name, ok := sectionParam(c)
	if !ok {
		return
	}
	idx, ok := indexParam(c, "idx")
	if !ok {
		return
	}
	pointIdx, ok := indexParam(c, "pointIdx")
	if !ok {
		return
	}

	body, err := h.Svc.RemovePoint(c.Request.Context(), userID, name, idx, pointIdx)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", body)
}

func (h *Handler) save(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if err := h.Svc.SaveDraft(c.Request.Context(), userID); err != nil {
		respond.Error(c, http.StatusBadGateway, "storage_error", "failed to save draft; please retry", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"saved": true})
}

func (h *Handler) submit(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	validationErrs, err := h.Svc.Submit(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusBadGateway, "storage_error", "failed to save final resume; please retry", nil)
		return
	}
	if len(validationErrs) > 0 {
		respond.Error(c, http.StatusUnprocessableEntity, "validation_error", FormatWarnings(validationErrs), validationErrs)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"submitted": true})
}

func (h *Handler) importSource(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	fileName, err := util.SanitizeFileName(fileHeader.Filename)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid file name", nil)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	text, err := extract.FromReader(c.Request.Context(), file, fileHeader.Header.Get("Content-Type"), fileName)
	if err != nil {
		respond.Error(c, http.StatusUnprocessableEntity, "unsupported_file", "could not extract text from file", nil)
		return
	}

	if err := h.Svc.ImportSource(c.Request.Context(), userID, text); err != nil {
		respond.Error(c, http.StatusBadGateway, "storage_error", "failed to store imported resume text; please retry", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"characters": len(text)})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "unexpected error", nil)
	}
}

func sectionParam(c *gin.Context) (SectionName, bool) {
	name, err := ParseSectionName(c.Param("name"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return "", false
	}
	return name, true
}

func indexParam(c *gin.Context, key string) (int, bool) {
	idx, err := strconv.Atoi(c.Param(key))
	if err != nil || idx < 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", key+" must be a non-negative integer", nil)
		return 0, false
	}
	return idx, true
}
