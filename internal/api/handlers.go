package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/parcel-planner/internal/econ"
	"github.com/sells-group/parcel-planner/internal/fit"
	"github.com/sells-group/parcel-planner/internal/model"
)

// maxBodyBytes bounds request bodies; fit/econ payloads are tiny.
const maxBodyBytes = 1 << 20

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRules(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.rules.AsMap())
}

// handleFit runs the fit stage for the parcel in the request body. A missing
// or null parcel is a valid request and yields found=false.
func (s *Server) handleFit(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var c coercer
	rawParcel, _ := body["parcel"].(map[string]any)
	parcel := decodeParcel(rawParcel, &c)
	if s.rejectCoerced(w, r, c.coerced) {
		return
	}

	res, err := fit.Compute(parcel, s.rules)
	if err != nil {
		zap.L().Error("fit: rule set unreadable",
			zap.String("request_id", RequestIDFrom(r.Context())),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.metrics.fits.WithLabelValues(fitOutcome(res)).Inc()
	writeJSON(w, http.StatusOK, res)
}

// handleEcon runs the econ stage for a fit result echoed back by the client
// plus the user's financial inputs.
func (s *Server) handleEcon(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rawFit, ok := body["fit"].(map[string]any)
	if !ok {
		writeError(w, http.StatusBadRequest, "fit is required")
		return
	}

	var c coercer
	f := decodeFit(rawFit, &c)
	in := decodeEconInputs(body, &c)
	if s.rejectCoerced(w, r, c.coerced) {
		return
	}

	res := econ.Compute(f, in)
	s.metrics.econs.WithLabelValues(boolLabel(res.Eligible)).Inc()
	writeJSON(w, http.StatusOK, res)
}

// rejectCoerced logs fields that were defaulted to zero. With ?strict=true
// the request is rejected instead.
func (s *Server) rejectCoerced(w http.ResponseWriter, r *http.Request, fields []string) bool {
	if len(fields) == 0 {
		return false
	}
	if r.URL.Query().Get("strict") == "true" {
		writeError(w, http.StatusBadRequest, "non-numeric values for: "+strings.Join(fields, ", "))
		return true
	}
	zap.L().Warn("api: non-numeric inputs defaulted to zero",
		zap.String("request_id", RequestIDFrom(r.Context())),
		zap.Strings("fields", fields),
	)
	return false
}

func decodeBody(r *http.Request) (map[string]any, error) {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.UseNumber()

	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		if err == io.EOF {
			return map[string]any{}, nil
		}
		return nil, err
	}
	if body == nil {
		body = map[string]any{}
	}
	return body, nil
}

func fitOutcome(res *model.FitResult) string {
	switch {
	case !res.Found:
		return "not_found"
	case res.MaxHouses > 0:
		return "fits"
	default:
		return "no_fit"
	}
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// writeJSON encodes v before writing the status. An encode failure is sent
// as a 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		zap.L().Error("api: encode response", zap.Error(err))
		buf.Reset()
		status = http.StatusInternalServerError
		_ = json.NewEncoder(&buf).Encode(map[string]string{"error": "response could not be encoded"})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
