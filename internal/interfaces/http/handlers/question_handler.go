package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/askchem/askchem/internal/application/export"
	"github.com/askchem/askchem/internal/application/tutor"
	"github.com/askchem/askchem/internal/dispatch"
	"github.com/askchem/askchem/internal/domain/answer"
	"github.com/askchem/askchem/internal/infrastructure/monitoring/logging"
	"github.com/askchem/askchem/internal/interfaces/http/middleware"
	pkgerrors "github.com/askchem/askchem/pkg/errors"
)

// AskRequest is the POST body for /questions/ask.
type AskRequest struct {
	Question  string `json:"question" binding:"required"`
	StudentID string `json:"student_id"`
	Mode      string `json:"mode"`
	Subject   string `json:"subject"`
}

// AskResponse is the success envelope: the flat-plus-nested answer contract
// alongside the rendered five-section view.
type AskResponse struct {
	RequestID    string                  `json:"request_id"`
	AttemptID    string                  `json:"attempt_id,omitempty"`
	Kind         string                  `json:"kind"`
	QuestionType string                  `json:"question_type"`
	Solver       string                  `json:"solver,omitempty"`
	TopicTags    []string                `json:"topic_tags,omitempty"`
	Answer       answer.Answer           `json:"answer"`
	Rendered     answer.RenderedResponse `json:"rendered"`
}

// OutOfDomainResponse is the distinct payload for gate rejections. No answer
// envelope: the question never entered the solver trial.
type OutOfDomainResponse struct {
	RequestID string `json:"request_id"`
	Kind      string `json:"kind"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

const outOfDomainMessage = "This question is outside chemistry. Ask about reactions, name reactions, or chemical tests from the syllabus."

// QuestionHandler serves the ask and export endpoints.
type QuestionHandler struct {
	tutor   *tutor.Service
	builder *export.Builder
	maxLen  int
	logger  logging.Logger
}

// NewQuestionHandler wires the handler. maxLen <= 0 disables the length
// check; a nil builder disables the export route's body.
func NewQuestionHandler(svc *tutor.Service, builder *export.Builder, maxLen int, logger logging.Logger) *QuestionHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &QuestionHandler{
		tutor:   svc,
		builder: builder,
		maxLen:  maxLen,
		logger:  logger.Named("http.question"),
	}
}

// Ask runs one question through the engine and returns the dual-contract
// answer plus the rendered envelope. Out-of-domain questions get their own
// payload shape instead of an answer.
func (h *QuestionHandler) Ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeAppError(c, pkgerrors.New(pkgerrors.ErrCodeValidation, "question is required"))
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeAppError(c, pkgerrors.New(pkgerrors.ErrCodeValidation, "question must not be blank"))
		return
	}
	if h.maxLen > 0 && len(req.Question) > h.maxLen {
		writeAppError(c, pkgerrors.New(pkgerrors.ErrCodeQuestionTooLong, "question exceeds the maximum length"))
		return
	}

	resp, err := h.tutor.Ask(c.Request.Context(), tutor.AskRequest{
		RequestID: middleware.GetRequestID(c),
		StudentID: req.StudentID,
		Question:  req.Question,
		Mode:      req.Mode,
		Subject:   req.Subject,
	})
	if err != nil {
		writeAppError(c, err)
		return
	}

	if resp.Kind == dispatch.KindOutOfDomain {
		c.JSON(http.StatusOK, OutOfDomainResponse{
			RequestID: resp.RequestID,
			Kind:      string(resp.Kind),
			Code:      pkgerrors.ErrCodeOutOfDomain.String(),
			Message:   outOfDomainMessage,
		})
		return
	}

	c.JSON(http.StatusOK, AskResponse{
		RequestID:    resp.RequestID,
		AttemptID:    resp.AttemptID.String(),
		Kind:         string(resp.Kind),
		QuestionType: resp.QuestionType,
		Solver:       resp.SolverName,
		TopicTags:    resp.TopicTags,
		Answer:       resp.Answer,
		Rendered:     resp.Rendered,
	})
}

// ExportRequest is the POST body for /questions/export.
type ExportRequest struct {
	Question string `json:"question" binding:"required"`
	Mode     string `json:"mode"`
	Subject  string `json:"subject"`
}

// Export answers the question and packages it as a learning object for the
// downstream PDF renderer. Questions the engine cannot answer are a 422: the
// export exists only for answerable material.
func (h *QuestionHandler) Export(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeAppError(c, pkgerrors.New(pkgerrors.ErrCodeValidation, "question is required"))
		return
	}

	resp, err := h.tutor.Ask(c.Request.Context(), tutor.AskRequest{
		RequestID: middleware.GetRequestID(c),
		Question:  req.Question,
		Mode:      req.Mode,
		Subject:   req.Subject,
	})
	if err != nil {
		writeAppError(c, err)
		return
	}

	if resp.Kind != dispatch.KindAnswered && resp.Kind != dispatch.KindClarification {
		code := pkgerrors.ErrCodeNoMatch
		if resp.Kind == dispatch.KindOutOfDomain {
			code = pkgerrors.ErrCodeOutOfDomain
		}
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, ErrorResponse{Error: ErrorBody{
			Code:    code.String(),
			Message: "question cannot be exported: the engine produced no answer",
		}})
		return
	}

	obj, err := h.builder.Build(req.Question, resp.Answer)
	if err != nil {
		writeAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, obj)
}
