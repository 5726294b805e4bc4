package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"github.com/gravadigital/hotelops-dashboard/internal/backend"
	"github.com/gravadigital/hotelops-dashboard/internal/domain/guest"
	"github.com/gravadigital/hotelops-dashboard/internal/domain/notification"
	"github.com/gravadigital/hotelops-dashboard/internal/logger"
	"github.com/gravadigital/hotelops-dashboard/internal/middleware/session"
	"github.com/gravadigital/hotelops-dashboard/internal/response"
	"github.com/gravadigital/hotelops-dashboard/internal/storage"
	"github.com/gravadigital/hotelops-dashboard/internal/web"
)

const (
	homePath           = "/"
	genericContentType = "application/octet-stream"

	// multipartOverhead covers the boundaries and part headers around the file
	multipartOverhead = 64 << 10
)

type DashboardHandler struct {
	previews    storage.PreviewStore
	maxFileSize int64
	log         *log.Logger
}

func NewDashboardHandler(previews storage.PreviewStore, maxFileSize int64) *DashboardHandler {
	return &DashboardHandler{
		previews:    previews,
		maxFileSize: maxFileSize,
		log:         logger.Handler("dashboard"),
	}
}

type notifyForm struct {
	Channel string `form:"channel"`
	To      string `form:"to"`
	Message string `form:"message"`
}

// Show handles GET /
func (h *DashboardHandler) Show(c *gin.Context) {
	view := session.View(c)
	c.HTML(http.StatusOK, web.DashboardTemplate, web.NewPage(view.State()))
}

// Scan handles POST /scan
func (h *DashboardHandler) Scan(c *gin.Context) {
	view := session.View(c)
	defer h.backHome(c)

	if h.maxFileSize > 0 {
		limit := h.maxFileSize + multipartOverhead
		if c.Request.ContentLength > limit {
			view.ReportError(h.sizeLimitMessage())
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			view.ReportError(h.sizeLimitMessage())
			return
		}
		view.ReportError("No file provided")
		return
	}
	defer file.Close()

	if h.maxFileSize > 0 && header.Size > h.maxFileSize {
		view.ReportError(h.sizeLimitMessage())
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		h.log.Error("Failed to read upload", "filename", header.Filename, "error", err)
		view.ReportError("Failed to read the selected file")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == genericContentType {
		contentType = mimetype.Detect(data).String()
	}

	_, _ = view.UploadDocument(c.Request.Context(), backend.Upload{
		Filename:    header.Filename,
		ContentType: contentType,
		Data:        data,
	})
}

// SaveGuest handles POST /guest
func (h *DashboardHandler) SaveGuest(c *gin.Context) {
	view := session.View(c)
	defer h.backHome(c)

	var draft guest.Draft
	if err := c.ShouldBind(&draft); err != nil {
		view.ReportError("Invalid guest form")
		return
	}
	view.EditDraft(draft)

	_, _ = view.SaveGuest(c.Request.Context())
}

// Notify handles POST /notify
func (h *DashboardHandler) Notify(c *gin.Context) {
	view := session.View(c)
	defer h.backHome(c)

	var form notifyForm
	if err := c.ShouldBind(&form); err != nil {
		view.ReportError("Invalid notification form")
		return
	}
	view.EditNotification(notification.Request{
		Channel: notification.ParseChannel(form.Channel),
		To:      form.To,
		Message: form.Message,
	})

	_, _ = view.SendNotification(c.Request.Context())
}

// RefreshGuests handles GET /guests/refresh
func (h *DashboardHandler) RefreshGuests(c *gin.Context) {
	view := session.View(c)
	_ = view.LoadGuests(c.Request.Context())
	h.backHome(c)
}

// DismissToast handles POST /toast/dismiss
func (h *DashboardHandler) DismissToast(c *gin.Context) {
	session.View(c).DismissToast()
	h.backHome(c)
}

// Preview handles GET /preview/:id. Only the session's current preview is served.
func (h *DashboardHandler) Preview(c *gin.Context) {
	id := c.Param("id")
	view := session.View(c)
	current := view.State().Preview
	if current.IsZero() || current.ID != id {
		response.NotFoundError(c, "Preview not found")
		return
	}

	obj, err := h.previews.Get(c.Request.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		view.ForgetPreview(id)
		response.NotFoundError(c, "Preview not found")
		return
	}
	if err != nil {
		h.log.Error("Failed to load preview", "id", id, "error", err)
		response.InternalServerError(c, "Failed to load preview")
		return
	}

	c.Header("Cache-Control", "private, no-store")
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", obj.Filename))
	c.Data(http.StatusOK, obj.ContentType, obj.Data)
}

// State handles GET /api/state
func (h *DashboardHandler) State(c *gin.Context) {
	response.SuccessResponse(c, http.StatusOK, "", session.View(c).State())
}

func (h *DashboardHandler) sizeLimitMessage() string {
	return "File size exceeds " + formatSize(h.maxFileSize) + " limit"
}

// formatSize renders a byte count in the largest whole unit
func formatSize(n int64) string {
	switch {
	case n >= 1<<20 && n%(1<<20) == 0:
		return fmt.Sprintf("%d MB", n>>20)
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%d KB", n>>10)
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}

func (h *DashboardHandler) backHome(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, homePath)
}
