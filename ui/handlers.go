package ui

import (
	"encoding/json"
	"net/http"

	"github.com/second-order-ai/singapore-postcode-geocoding/domain/core"
	"github.com/second-order-ai/singapore-postcode-geocoding/domain/identify"
	"github.com/second-order-ai/singapore-postcode-geocoding/domain/postcode"
	"github.com/second-order-ai/singapore-postcode-geocoding/domain/table"
	"github.com/second-order-ai/singapore-postcode-geocoding/internal"
	"github.com/second-order-ai/singapore-postcode-geocoding/internal/errors"
)

// conversionRequest is the JSON body for identify/convert calls. Omitted
// config sections fall back to the Singapore defaults with the server's
// sampling knobs.
type conversionRequest struct {
	Columns    []string                   `json:"columns"`
	Rows       [][]interface{}            `json:"rows"`
	Validation *postcode.ValidationConfig `json:"validation,omitempty"`
	Identify   *identify.Config           `json:"identify,omitempty"`
}

// tablePayload is the JSON rendering of a table
type tablePayload struct {
	Columns []string        `json:"columns"`
	Rows    [][]interface{} `json:"rows"`
}

// identifyResponse carries the ranked candidates
type identifyResponse struct {
	RequestID  string               `json:"request_id"`
	Candidates []identify.Candidate `json:"candidates"`
}

// convertResponse carries the full conversion outcome
type convertResponse struct {
	RequestID  string               `json:"request_id"`
	Success    bool                 `json:"success"`
	Chosen     *identify.Candidate  `json:"chosen,omitempty"`
	Candidates []identify.Candidate `json:"candidates"`
	Table      tablePayload         `json:"table"`
}

// errorResponse is the JSON error body
type errorResponse struct {
	RequestID string `json:"request_id"`
	Code      string `json:"code"`
	Error     string `json:"error"`
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) handleIdentify(w http.ResponseWriter, r *http.Request) {
	requestID := core.RequestID(core.NewID())
	identifier, tbl, ok := a.prepare(w, r, requestID)
	if !ok {
		return
	}

	ranked, err := identifier.Rank(tbl)
	if err != nil {
		writeError(w, requestID, err)
		return
	}
	writeJSON(w, http.StatusOK, identifyResponse{
		RequestID:  requestID.String(),
		Candidates: ranked,
	})
}

func (a *App) handleConvert(w http.ResponseWriter, r *http.Request) {
	requestID := core.RequestID(core.NewID())
	identifier, tbl, ok := a.prepare(w, r, requestID)
	if !ok {
		return
	}

	outcome, err := identifier.Convert(tbl)
	if err != nil {
		writeError(w, requestID, err)
		return
	}
	internal.DefaultLogger.Info("request %s: convert success=%t over %d rows", requestID, outcome.Success, tbl.NumRows())
	writeJSON(w, http.StatusOK, convertResponse{
		RequestID:  requestID.String(),
		Success:    outcome.Success,
		Chosen:     outcome.Chosen,
		Candidates: outcome.Candidates,
		Table:      renderTable(outcome.Table),
	})
}

// prepare decodes the request body and builds the identifier and table.
// Responds with an error itself when ok is false.
func (a *App) prepare(w http.ResponseWriter, r *http.Request, requestID core.RequestID) (*identify.Identifier, *table.Table, bool) {
	var req conversionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, requestID, errors.InvalidInput("malformed request body: "+err.Error()))
		return nil, nil, false
	}
	if len(req.Columns) == 0 {
		writeError(w, requestID, errors.InvalidInput("at least one column is required"))
		return nil, nil, false
	}

	vcfg := postcode.DefaultValidationConfig()
	if req.Validation != nil {
		vcfg = *req.Validation
	}
	icfg := identify.DefaultConfig()
	icfg.SampleSize = a.defaults.SampleSize
	icfg.SuccessThreshold = a.defaults.SuccessThreshold
	icfg.Seed = a.defaults.Seed
	if req.Identify != nil {
		icfg = *req.Identify
		if icfg.Pattern == "" {
			icfg.Pattern = postcode.DefaultPattern
		}
	}

	identifier, err := identify.NewIdentifier(vcfg, a.refs, icfg)
	if err != nil {
		writeError(w, requestID, err)
		return nil, nil, false
	}

	rows := make([]table.Row, len(req.Rows))
	for i, rawRow := range req.Rows {
		row := make(table.Row, len(req.Columns))
		for j, cell := range rawRow {
			if j < len(req.Columns) {
				row[req.Columns[j]] = table.FromAny(cell)
			}
		}
		rows[i] = row
	}
	return identifier, table.New(req.Columns, rows), true
}

// renderTable converts a table into plain JSON values
func renderTable(tbl *table.Table) tablePayload {
	columns := tbl.Columns()
	rows := make([][]interface{}, tbl.NumRows())
	for i := 0; i < tbl.NumRows(); i++ {
		row := make([]interface{}, len(columns))
		for j, col := range columns {
			row[j] = toJSONValue(tbl.Value(i, col))
		}
		rows[i] = row
	}
	return tablePayload{Columns: columns, Rows: rows}
}

func toJSONValue(v table.Value) interface{} {
	switch v.Kind {
	case table.KindNumber:
		return v.Num
	case table.KindText:
		return v.Text
	case table.KindBool:
		return v.Boolean
	default:
		return nil
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		internal.DefaultLogger.Error("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, requestID core.RequestID, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.CodeConfigInvalid, errors.CodeInvalidInput, errors.CodeColumnNotFound, errors.CodeReferenceEmpty:
		status = http.StatusBadRequest
	}
	internal.DefaultLogger.Warn("request %s failed: %v", requestID, err)
	writeJSON(w, status, errorResponse{
		RequestID: requestID.String(),
		Code:      errors.GetCode(err),
		Error:     err.Error(),
	})
}
