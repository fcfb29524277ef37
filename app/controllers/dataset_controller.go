package controllers

import (
	"net/http"
	"strconv"

	"medisync/app/dto"
	"medisync/app/services"
)

type DatasetController struct {
	Dataset     *services.DatasetService
	PreviewRows int
}

func NewDatasetController(dataset *services.DatasetService, previewRows int) *DatasetController {
	return &DatasetController{Dataset: dataset, PreviewRows: previewRows}
}

// Preview serves the first rows of the stroke dataset. An optional
// ?rows= overrides the configured preview size, capped by it.
func (c *DatasetController) Preview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	n := c.PreviewRows
	if raw := r.URL.Query().Get("rows"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v < n {
			n = v
		}
	}
	header, rows := c.Dataset.Preview(n)
	writeJSON(w, http.StatusOK, dto.DatasetPreviewResponse{
		Columns: header,
		Rows:    rows,
		Total:   c.Dataset.Rows(),
	})
}
