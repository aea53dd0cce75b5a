package handlers

import (
	"net/http"
	"strconv"

	"brooksportal/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// POST /api/portaloos
func (a API) AddPortaloo(c *gin.Context) {
	var in models.Portaloo
	if !BindJSONOrError(c, &in) {
		return
	}
	unit, err := a.portaloos(c).Add(in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, unit)
}

// GET /api/portaloos
//
// Repeated status and colour parameters narrow the grid; with none, the
// whole fleet comes back.
func (a API) ListPortaloos(c *gin.Context) {
	statuses := c.QueryArray("status")
	colours := c.QueryArray("colour")

	svc := a.portaloos(c)
	var (
		units []models.Portaloo
		err   error
	)
	if len(statuses) == 0 && len(colours) == 0 {
		units, err = svc.List()
	} else {
		units, err = svc.ListByStatusAndColour(statuses, colours)
	}
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"portaloos": units})
}

// POST /api/portaloos/:id/book
func (a API) BookPortaloo(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	var in models.RentalInput
	if !BindJSONOrError(c, &in) {
		return
	}
	unit, err := a.portaloos(c).Book(id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, unit)
}

// PATCH /api/portaloos/:id
func (a API) UpdatePortaloo(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	var patch models.PortalooUpdate
	if !BindJSONOrError(c, &patch) {
		return
	}
	unit, err := a.portaloos(c).Update(id, patch)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, unit)
}

// GET /api/portaloos/ending-today
func (a API) PortaloosEndingToday(c *gin.Context) {
	units, err := a.portaloos(c).EndingToday()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"portaloos": units})
}

// GET /api/portaloos/ending-soon?days=2
func (a API) PortaloosEndingSoon(c *gin.Context) {
	days := 2
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid days", err)
			return
		}
		days = parsed
	}
	units, err := a.portaloos(c).EndingWithin(days)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"portaloos": units})
}
