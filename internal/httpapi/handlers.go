package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/wasteworks/wte-api/internal/pathway"
)

// Reference lookup outcome labels.
const (
	outcomeHit  = "hit"
	outcomeMiss = "miss"
)

// calcHandler builds the handler for one calculation route. The quantity
// comes from the query parameter named by quantityField, with optional
// "unit" and "type" parameters. Converters that take no waste type ignore
// the latter.
func (s *Server) calcHandler(conv pathway.Converter, quantityField string) http.HandlerFunc {
	method := string(conv.Method())

	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		raw := query.Get(quantityField)
		if raw == "" {
			s.writeError(w, r, http.StatusBadRequest, codeInvalidInput,
				fmt.Sprintf("missing query parameter %q", quantityField))
			return
		}
		quantity, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			s.writeError(w, r, http.StatusBadRequest, codeInvalidInput,
				fmt.Sprintf("query parameter %q must be a number", quantityField))
			return
		}

		result, err := conv.Convert(pathway.Input{
			Quantity:  quantity,
			Unit:      query.Get("unit"),
			WasteType: query.Get("type"),
		})
		if err != nil {
			if invalidInput(err) {
				s.metrics.ConversionsTotal.WithLabelValues(method, "invalid").Inc()
				s.writeError(w, r, http.StatusBadRequest, codeInvalidInput, err.Error())
				return
			}
			s.logger.Error().Err(err).Str("conversion_method", method).Msg("conversion failed")
			s.metrics.ConversionsTotal.WithLabelValues(method, "error").Inc()
			s.writeError(w, r, http.StatusInternalServerError, codeInternal, "conversion failed")
			return
		}

		s.metrics.ConversionsTotal.WithLabelValues(method, "ok").Inc()
		s.writeJSON(w, http.StatusOK, calcResponse{
			Result:    result,
			RequestID: requestID(r.Context()),
		})
	}
}

// respondCounty finishes a county route: 404 when the lookup missed,
// otherwise the stored record plus the conversion of its canonical
// feedstock figure.
func (s *Server) respondCounty(w http.ResponseWriter, r *http.Request, record any, found bool, conv pathway.Converter, in pathway.Input) {
	if !found {
		s.writeError(w, r, http.StatusNotFound, codeNotFound,
			fmt.Sprintf("county %q not found", r.PathValue("county")))
		return
	}

	result, err := conv.Convert(in)
	if err != nil {
		// Reference records are validated at load, so this is a bug, not
		// bad input.
		s.logger.Error().Err(err).
			Str("conversion_method", string(conv.Method())).
			Str("county", r.PathValue("county")).
			Msg("county conversion failed")
		s.writeError(w, r, http.StatusInternalServerError, codeInternal, "conversion failed")
		return
	}

	s.writeJSON(w, http.StatusOK, countyResponse{
		Record:    record,
		Result:    result,
		RequestID: requestID(r.Context()),
	})
}

// countiesHandler builds the handler for one county-listing route, serving
// the canonical names a county route will accept.
func (s *Server) countiesHandler(dataset string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusOK, map[string]any{
			"dataset":    dataset,
			"counties":   s.store.CountyNames(dataset),
			"request_id": requestID(r.Context()),
		})
	}
}

func (s *Server) observeLookup(dataset string, found bool) {
	outcome := outcomeMiss
	if found {
		outcome = outcomeHit
	}
	s.metrics.LookupsTotal.WithLabelValues(dataset, outcome).Inc()
}

func (s *Server) handleFermentationCounty(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.store.FermentationCounty(r.PathValue("county"))
	s.observeLookup("fermentation", ok)
	s.respondCounty(w, r, rec, ok, s.converters.Fermentation,
		pathway.Input{Quantity: rec.KgPerHour})
}

func (s *Server) handleHTLCounty(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.store.HTLCounty(r.PathValue("county"))
	s.observeLookup("htl", ok)
	s.respondCounty(w, r, rec, ok, s.converters.HTL,
		pathway.Input{Quantity: rec.KgPerHour})
}

func (s *Server) handleCombustionCounty(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.store.CombustionCounty(r.PathValue("county"))
	s.observeLookup("combustion", ok)
	// Combustion converts the county's annual tonnage as a plain mass,
	// burned under the county's dominant waste stream profile.
	s.respondCounty(w, r, rec, ok, s.converters.Combustion,
		pathway.Input{Quantity: rec.WasteTons, Unit: "ton", WasteType: rec.DominantType})
}

func (s *Server) handleDigestionCounty(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.store.DigestionCounty(r.PathValue("county"))
	s.observeLookup("digestion", ok)
	s.respondCounty(w, r, rec, ok, s.converters.Digestion,
		pathway.Input{Quantity: rec.KgPerHour})
}

// methodInfo describes one conversion method for the capability listing.
type methodInfo struct {
	Method        pathway.Method `json:"method"`
	Route         string         `json:"route"`
	QuantityField string         `json:"quantity_field"`
	Units         []string       `json:"units"`
	WasteTypes    []string       `json:"waste_types,omitempty"`
}

func (s *Server) handleMethods(w http.ResponseWriter, r *http.Request) {
	methods := []methodInfo{
		{
			Method:        s.converters.Fermentation.Method(),
			Route:         "/api/v1/fermentation/mass",
			QuantityField: "mass",
			Units:         s.converters.Fermentation.Units(),
		},
		{
			Method:        s.converters.HTL.Method(),
			Route:         "/api/v1/htl/sludge",
			QuantityField: "sludge",
			Units:         s.converters.HTL.Units(),
		},
		{
			Method:        s.converters.Combustion.Method(),
			Route:         "/api/v1/combustion/mass",
			QuantityField: "mass",
			Units:         s.converters.Combustion.Units(),
			WasteTypes:    pathway.WasteTypes(),
		},
		{
			Method:        s.converters.Digestion.Method(),
			Route:         "/api/v1/digestion/mass",
			QuantityField: "mass",
			Units:         s.converters.Digestion.Units(),
		},
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"methods":    methods,
		"request_id": requestID(r.Context()),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"uptime": s.clock.Since(s.startedAt).String(),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	datasets := s.store.Datasets()
	if len(datasets) == 0 {
		s.writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not ready",
		})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ready",
		"datasets": datasets,
	})
}
