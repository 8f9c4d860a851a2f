package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/askchem/askchem/internal/application/mastery"
	"github.com/askchem/askchem/internal/domain/attempt"
	pkgerrors "github.com/askchem/askchem/pkg/errors"
)

// MasteryHandler serves the student progress endpoints.
type MasteryHandler struct {
	mastery  *mastery.Service
	attempts attempt.Repository
}

func NewMasteryHandler(svc *mastery.Service, attempts attempt.Repository) *MasteryHandler {
	return &MasteryHandler{mastery: svc, attempts: attempts}
}

// Progress returns the per-topic mastery table plus the error-kind histogram
// for one student, weakest topics first.
func (h *MasteryHandler) Progress(c *gin.Context) {
	overview, err := h.mastery.Overview(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// AttemptsResponse pages a student's attempt history, newest first.
type AttemptsResponse struct {
	StudentID string             `json:"student_id"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
	Attempts  []*attempt.Attempt `json:"attempts"`
}

// Attempts lists a student's attempt history.
func (h *MasteryHandler) Attempts(c *gin.Context) {
	studentID := c.Param("id")
	if studentID == "" {
		writeAppError(c, pkgerrors.New(pkgerrors.ErrCodeValidation, "student id is required"))
		return
	}

	limit := queryInt(c, "limit", 50)
	offset := queryInt(c, "offset", 0)
	if limit < 1 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := h.attempts.ListByStudent(c.Request.Context(), studentID, limit, offset)
	if err != nil {
		writeAppError(c, err)
		return
	}
	if rows == nil {
		rows = []*attempt.Attempt{}
	}
	c.JSON(http.StatusOK, AttemptsResponse{
		StudentID: studentID,
		Limit:     limit,
		Offset:    offset,
		Attempts:  rows,
	})
}

func queryInt(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
