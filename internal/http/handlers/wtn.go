package handlers

import (
	"encoding/base64"
	"net/http"
	"strings"

	"brooksportal/internal/domain/models"

	"github.com/gin-gonic/gin"
)

type wtnRequest struct {
	models.WTNInput
	// Signature is the PNG from the signing canvas, sent as a data URL or
	// bare base64. Absent means no signature was captured.
	Signature string `json:"signature"`
}

// POST /api/bookings/:id/waste-transfer-note
func (a API) CreateWTN(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	var req wtnRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	signature, err := decodeSignature(req.Signature)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "signature is not valid base64 PNG data", err)
		return
	}

	note, err := a.wtn(c).CreateForBooking(id, req.WTNInput, signature)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, note)
}

// GET /api/bookings/:id/waste-transfer-note
func (a API) GetWTN(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	note, found, err := a.wtn(c).GetForBooking(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !found {
		RespondError(c, http.StatusNotFound, "no waste transfer note for this booking", nil)
		return
	}
	c.JSON(http.StatusOK, note)
}

// GET /api/bookings/:id/waste-transfer-note/pdf
func (a API) DownloadWTNPDF(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	svc := a.wtn(c)
	note, found, err := svc.GetForBooking(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !found {
		RespondError(c, http.StatusNotFound, "no waste transfer note for this booking", nil)
		return
	}

	doc, filename, err := svc.RenderDocument(note)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to render document", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", doc)
}

func decodeSignature(raw string) ([]byte, error) {
	if raw == "" {
		return nil, nil
	}
	// data:image/png;base64,iVBOR... from the canvas, or bare base64
	if _, rest, found := strings.Cut(raw, "base64,"); found {
		raw = rest
	}
	return base64.StdEncoding.DecodeString(raw)
}
