package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/askchem/askchem/internal/solver"
)

// SolverInfo is one row of the catalog listing.
type SolverInfo struct {
	Position int    `json:"position"`
	Name     string `json:"name"`
}

// CatalogHandler exposes the solver trial order for operators and curriculum
// reviewers.
type CatalogHandler struct {
	registry *solver.Registry
}

func NewCatalogHandler(registry *solver.Registry) *CatalogHandler {
	return &CatalogHandler{registry: registry}
}

// Solvers lists the catalog in trial order. Position is the first-match
// priority: lower positions are tried first.
func (h *CatalogHandler) Solvers(c *gin.Context) {
	ordered := h.registry.Ordered()
	rows := make([]SolverInfo, 0, len(ordered))
	for i, s := range ordered {
		rows = append(rows, SolverInfo{Position: i + 1, Name: s.Name()})
	}
	c.JSON(http.StatusOK, gin.H{"count": len(rows), "solvers": rows})
}
