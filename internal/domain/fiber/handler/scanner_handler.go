package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/fadilmartias/resume-ats-scanner/internal/config"
	"github.com/fadilmartias/resume-ats-scanner/internal/dto"
	"github.com/fadilmartias/resume-ats-scanner/internal/extract"
	"github.com/fadilmartias/resume-ats-scanner/internal/logger"
	"github.com/fadilmartias/resume-ats-scanner/internal/middleware"
	"github.com/fadilmartias/resume-ats-scanner/internal/response"
	"github.com/fadilmartias/resume-ats-scanner/internal/service"
	"github.com/fadilmartias/resume-ats-scanner/internal/usecase"
	"github.com/fadilmartias/resume-ats-scanner/internal/util"
	"github.com/fadilmartias/resume-ats-scanner/internal/view"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

const megabyte = 1 << 20

var errNoSession = errors.New("no session attached to request")

type ScannerHandler struct {
	uc       *usecase.ScannerUsecase
	renderer *view.Renderer
	title    string
	maxMB    int
	logger   *zap.Logger
}

func NewScannerHandler(uc *usecase.ScannerUsecase, renderer *view.Renderer, cfg *config.AppConfig, log *zap.Logger) *ScannerHandler {
	maxMB := cfg.MaxUploadMB
	if maxMB <= 0 {
		maxMB = 5
	}
	return &ScannerHandler{
		uc:       uc,
		renderer: renderer,
		title:    cfg.Name,
		maxMB:    maxMB,
		logger:   logger.OrNop(log),
	}
}

func (h *ScannerHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.Index)
	router.Post("/resume", h.UploadResume)
	router.Post("/job-description", h.SetJobDescription)
	router.Post("/review", h.Review)
	router.Get("/questions", h.Questions)
	router.Post("/questions", h.Ask)
	router.Post("/comparison/files", h.UploadComparison)
	router.Post("/comparison", h.Compare)
}

func (h *ScannerHandler) Index(c *fiber.Ctx) error {
	state := middleware.SessionState(c)
	if state == nil {
		return h.fail(c, errNoSession)
	}
	return h.respond(c, "Success get scanner state", usecase.BuildView(state), nil)
}

func (h *ScannerHandler) UploadResume(c *fiber.Ctx) error {
	file, err := h.formFile(c, "resume")
	if err != nil {
		return h.dispatchError(c, err)
	}
	body, err := file.Open()
	if err != nil {
		return h.dispatchError(c, fmt.Errorf("open %s: %w", file.Filename, err))
	}
	defer body.Close()

	return h.dispatch(c, "Success upload resume", usecase.UploadResume{Name: file.Filename, Body: body})
}

func (h *ScannerHandler) SetJobDescription(c *fiber.Ctx) error {
	var req dto.JobDescriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return h.dispatchError(c, fiber.NewError(fiber.StatusBadRequest, "invalid job description form"))
	}
	// parsed values alias the request buffer; the session keeps them
	return h.dispatch(c, "Success save job description", usecase.SetJobDescription{
		Enabled:     req.Enabled,
		Company:     utils.CopyString(req.CompanyName),
		Post:        utils.CopyString(req.JobPost),
		Description: utils.CopyString(req.Description),
	})
}

func (h *ScannerHandler) Review(c *fiber.Ctx) error {
	return h.dispatch(c, "Success review resume", usecase.Review{})
}

func (h *ScannerHandler) Ask(c *fiber.Ctx) error {
	var req dto.QuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return h.dispatchError(c, fiber.NewError(fiber.StatusBadRequest, "invalid question form"))
	}
	return h.dispatch(c, "Success answer question", usecase.Ask{Question: utils.CopyString(req.Question)})
}

// Questions lists the Q&A history of the active resume as JSON.
func (h *ScannerHandler) Questions(c *fiber.Ctx) error {
	state := middleware.SessionState(c)
	if state == nil {
		return h.fail(c, errNoSession)
	}

	items, pagination, err := h.uc.QuestionHistory(state, c.QueryInt("page", 1), c.QueryInt("page_size", response.DefaultPageSize))
	if err != nil {
		return h.fail(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get question history",
		Data:       items,
		Pagination: &pagination,
	})
}

func (h *ScannerHandler) UploadComparison(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return h.dispatchError(c, fiber.NewError(fiber.StatusBadRequest, "resumes files are required"))
	}
	headers := form.File["resumes"]
	if len(headers) == 0 {
		return h.dispatchError(c, fiber.NewError(fiber.StatusBadRequest, "resumes files are required"))
	}

	files := make([]usecase.UploadedFile, 0, len(headers))
	for _, header := range headers {
		if err := h.checkFile(header); err != nil {
			return h.dispatchError(c, err)
		}
		body, err := header.Open()
		if err != nil {
			return h.dispatchError(c, fmt.Errorf("open %s: %w", header.Filename, err))
		}
		defer body.Close()
		files = append(files, usecase.UploadedFile{Name: header.Filename, Body: body})
	}

	return h.dispatch(c, "Success upload comparison resumes", usecase.UploadComparison{Files: files})
}

func (h *ScannerHandler) Compare(c *fiber.Ctx) error {
	var req dto.CompareRequest
	if err := c.BodyParser(&req); err != nil {
		return h.dispatchError(c, fiber.NewError(fiber.StatusBadRequest, "invalid comparison form"))
	}
	return h.dispatch(c, "Success compare resumes", usecase.Compare{
		First:  utils.CopyString(req.First),
		Second: utils.CopyString(req.Second),
	})
}

func (h *ScannerHandler) dispatch(c *fiber.Ctx, message string, action usecase.Action) error {
	state := middleware.SessionState(c)
	if state == nil {
		return h.fail(c, errNoSession)
	}
	scanView, err := h.uc.Dispatch(c.UserContext(), state, action)
	return h.respond(c, message, scanView, err)
}

// dispatchError reports a request that failed before reaching the usecase,
// keeping the current page for browsers.
func (h *ScannerHandler) dispatchError(c *fiber.Ctx, err error) error {
	state := middleware.SessionState(c)
	if state == nil {
		return h.fail(c, errNoSession)
	}
	return h.respond(c, "", usecase.BuildView(state), err)
}

// respond answers JSON clients with the standard envelope and browsers with
// the re-rendered page, the error shown in a banner.
func (h *ScannerHandler) respond(c *fiber.Ctx, message string, scanView dto.ScanView, err error) error {
	if wantsJSON(c) {
		if err != nil {
			return h.fail(c, err)
		}
		return util.SuccessResponse(c, util.SuccessResponseFormat{
			Message: message,
			Data:    scanView,
		})
	}

	page := view.Page{Title: h.title, MaxUploadMB: h.maxMB, View: scanView}
	status := fiber.StatusOK
	if err != nil {
		status = statusOf(err)
		page.Error = publicMessage(err)
		h.logFailure(c, status, err)
	}
	c.Status(status).Type("html", "utf-8")
	return h.renderer.Render(c, page)
}

// ErrorHandler answers errors that reach the fiber app, such as a body over
// the size limit, with the same negotiation as the routes.
func (h *ScannerHandler) ErrorHandler(c *fiber.Ctx, err error) error {
	scanView := dto.ScanView{}
	if state := middleware.SessionState(c); state != nil {
		scanView = usecase.BuildView(state)
	}
	return h.respond(c, "", scanView, err)
}

func (h *ScannerHandler) fail(c *fiber.Ctx, err error) error {
	status := statusOf(err)
	h.logFailure(c, status, err)
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Code:    status,
		Message: publicMessage(err),
	}, err)
}

func (h *ScannerHandler) logFailure(c *fiber.Ctx, status int, err error) {
	if status < fiber.StatusInternalServerError {
		return
	}
	h.logger.Error("request failed",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", status),
		zap.Error(err),
	)
}

func (h *ScannerHandler) formFile(c *fiber.Ctx, field string) (*multipart.FileHeader, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("%s file is required", field))
	}
	if err := h.checkFile(file); err != nil {
		return nil, err
	}
	return file, nil
}

func (h *ScannerHandler) checkFile(file *multipart.FileHeader) error {
	if file.Size > int64(h.maxMB)*megabyte {
		return fiber.NewError(fiber.StatusRequestEntityTooLarge,
			fmt.Sprintf("%s is too large (max %dMB)", file.Filename, h.maxMB))
	}
	if strings.ToLower(filepath.Ext(file.Filename)) != ".pdf" {
		return fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("unsupported file type for %s, upload a PDF", file.Filename))
	}
	return nil
}

func wantsJSON(c *fiber.Ctx) bool {
	return c.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMEApplicationJSON
}

func statusOf(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, extract.ErrExtraction):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, usecase.ErrNoResume), errors.Is(err, usecase.ErrInvalidSelection):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrCompletion):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func publicMessage(err error) string {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Message
	case errors.Is(err, extract.ErrExtraction):
		return "Could not read the PDF. Make sure the file is a valid, text-based PDF."
	case errors.Is(err, usecase.ErrNoResume):
		return "Upload a resume first."
	case errors.Is(err, usecase.ErrInvalidSelection):
		return "Select two different resumes from the comparison set."
	case errors.Is(err, service.ErrCompletion):
		return "The language model request failed. Please try again."
	default:
		return "Internal server error"
	}
}
