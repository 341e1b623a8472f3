package resumes

import (
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"careercraft-backend/internal/shared/server/middleware"
	"careercraft-backend/internal/shared/server/respond"
	"careercraft-backend/internal/shared/storage/kv"
	"careercraft-backend/resume/model"
	"careercraft-backend/resume/render"
)

const maxPhotoSize = 2 << 20 // 2MB

var photoTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
}

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches resume builder routes. The group is expected to be
// gated by login.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resume/open", h.open)
	rg.GET("/resume/editor", h.current)
	rg.PATCH("/resume/editor/fields", h.setField)
	rg.POST("/resume/editor/items/:section", h.addItem)
	rg.PATCH("/resume/editor/items/:section/:index", h.setItemField)
	rg.DELETE("/resume/editor/items/:section/:index", h.removeItem)
	rg.POST("/resume/editor/responsibilities/:index", h.addResponsibility)
	rg.PATCH("/resume/editor/responsibilities/:index/:line", h.setResponsibility)
	rg.DELETE("/resume/editor/responsibilities/:index/:line", h.removeResponsibility)
	rg.PUT("/resume/editor/photo", h.uploadPhoto)
	rg.DELETE("/resume/editor/photo", h.clearPhoto)
	rg.POST("/resume/draft", h.saveDraft)
	rg.POST("/resume/submit", h.submit)
	rg.GET("/resume", h.preview)
	rg.GET("/resume/export", h.export)
}

func owner(c *gin.Context) string {
	return kv.UserOwner(middleware.IdentityFromContext(c).Email)
}

type openRequest struct {
	Template string `json:"template"`
}

func (h *Handler) open(c *gin.Context) {
	var req openRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	tmpl := model.Professional
	if strings.TrimSpace(req.Template) != "" {
		t, err := model.ParseTemplate(req.Template)
		if err != nil {
			h.fail(c, err)
			return
		}
		tmpl = t
	}
	cur, err := h.Svc.Open(c.Request.Context(), owner(c), tmpl)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, toEditorResponse(cur))
}

func (h *Handler) current(c *gin.Context) {
	cur, err := h.Svc.Current(owner(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, toEditorResponse(cur))
}

type fieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func (h *Handler) setField(c *gin.Context) {
	var req fieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	h.edit(c, func(r *model.Record) error { return r.SetField(req.Field, req.Value) })
}

func (h *Handler) addItem(c *gin.Context) {
	section := model.Section(c.Param("section"))
	h.edit(c, func(r *model.Record) error { return r.AddItem(section) })
}

func (h *Handler) setItemField(c *gin.Context) {
	index, ok := intParam(c, "index")
	if !ok {
		return
	}
	var req fieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	section := model.Section(c.Param("section"))
	h.edit(c, func(r *model.Record) error { return r.SetItemField(section, index, req.Field, req.Value) })
}

func (h *Handler) removeItem(c *gin.Context) {
	index, ok := intParam(c, "index")
	if !ok {
		return
	}
	section := model.Section(c.Param("section"))
	h.edit(c, func(r *model.Record) error { return r.RemoveItem(section, index) })
}

func (h *Handler) addResponsibility(c *gin.Context) {
	index, ok := intParam(c, "index")
	if !ok {
		return
	}
	h.edit(c, func(r *model.Record) error { return r.AddResponsibility(index) })
}

func (h *Handler) setResponsibility(c *gin.Context) {
	index, ok := intParam(c, "index")
	if !ok {
		return
	}
	line, ok := intParam(c, "line")
	if !ok {
		return
	}
	var req fieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	h.edit(c, func(r *model.Record) error { return r.SetResponsibility(index, line, req.Value) })
}

func (h *Handler) removeResponsibility(c *gin.Context) {
	index, ok := intParam(c, "index")
	if !ok {
		return
	}
	line, ok := intParam(c, "line")
	if !ok {
		return
	}
	h.edit(c, func(r *model.Record) error { return r.RemoveResponsibility(index, line) })
}

func (h *Handler) uploadPhoto(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPhotoSize+(64<<10))

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "photo is required", nil)
		return
	}
	if fileHeader.Size > maxPhotoSize {
		respond.Error(c, http.StatusRequestEntityTooLarge, "photo_too_large", "Photo must be 2MB or smaller.", nil)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read photo", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoSize+1))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read photo", nil)
		return
	}
	if len(data) > maxPhotoSize {
		respond.Error(c, http.StatusRequestEntityTooLarge, "photo_too_large", "Photo must be 2MB or smaller.", nil)
		return
	}
	contentType := http.DetectContentType(data)
	if !photoTypes[contentType] {
		respond.Error(c, http.StatusUnsupportedMediaType, "validation_error", "Photo must be a PNG, JPEG or GIF image.", gin.H{"contentType": contentType})
		return
	}
	dataURL := "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
	h.edit(c, func(r *model.Record) error { return r.SetPhoto(dataURL) })
}

func (h *Handler) clearPhoto(c *gin.Context) {
	h.edit(c, func(r *model.Record) error { return r.SetPhoto("") })
}

func (h *Handler) edit(c *gin.Context, fn func(*model.Record) error) {
	cur, err := h.Svc.Edit(owner(c), fn)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, toEditorResponse(cur))
}

func (h *Handler) saveDraft(c *gin.Context) {
	if err := h.Svc.SaveDraft(c.Request.Context(), owner(c)); err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, gin.H{"saved": true})
}

func (h *Handler) submit(c *gin.Context) {
	rec, err := h.Svc.Submit(c.Request.Context(), owner(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, gin.H{"resume": rec, "redirect": "/resume-builder/preview"})
}

func (h *Handler) preview(c *gin.Context) {
	rec, err := h.Svc.Submitted(c.Request.Context(), owner(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, gin.H{"resume": rec})
}

func (h *Handler) export(c *gin.Context) {
	format, err := render.ParseFormat(c.DefaultQuery("format", "pdf"))
	if err != nil {
		h.fail(c, err)
		return
	}
	doc, err := h.Svc.Export(c.Request.Context(), owner(c), format)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+doc.FileName+`"`)
	c.Data(http.StatusOK, doc.ContentType, doc.Body)
}

func (h *Handler) fail(c *gin.Context, err error) {
	var invalid *model.ValidationError
	var export *ExportError
	switch {
	case errors.As(err, &invalid):
		respond.Error(c, http.StatusUnprocessableEntity, "validation_error", "Please fill in all required fields.", gin.H{
			"template": invalid.Template,
			"missing":  invalid.Missing,
		})
	case errors.As(err, &export):
		respond.Error(c, http.StatusInternalServerError, "export_failed", export.Message(), gin.H{"format": export.Format})
	case errors.Is(err, ErrNotOpen):
		respond.Error(c, http.StatusConflict, "resume_not_open", "Open the resume builder first.", gin.H{"redirect": CreatePath})
	case errors.Is(err, ErrNoResume):
		respond.Error(c, http.StatusNotFound, "no_resume", "No resume found. Please create one first.", gin.H{"redirect": CreatePath})
	case errors.Is(err, ErrCorruptResume):
		respond.Error(c, http.StatusUnprocessableEntity, "corrupt_resume", "Saved resume could not be read. Please create it again.", gin.H{"redirect": CreatePath})
	case errors.Is(err, model.ErrLastItem):
		respond.Error(c, http.StatusConflict, "last_item", "At least one entry is required.", nil)
	case errors.Is(err, model.ErrIndex):
		respond.Error(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case errors.Is(err, model.ErrUnknownField),
		errors.Is(err, model.ErrUnknownSection),
		errors.Is(err, model.ErrUnknownTemplate),
		errors.Is(err, model.ErrPhoto),
		errors.Is(err, render.ErrUnsupportedFormat):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process resume", nil)
	}
}

func intParam(c *gin.Context, name string) (int, bool) {
	n, err := strconv.Atoi(c.Param(name))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", name+" must be a number", nil)
		return 0, false
	}
	return n, true
}
