package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/matzehuels/beltprio/pkg/belt"
	"github.com/matzehuels/beltprio/pkg/errors"
	gridio "github.com/matzehuels/beltprio/pkg/io"
	"github.com/matzehuels/beltprio/pkg/pipeline"
)

// gridRequest carries the input grid. Exactly one field must be set.
type gridRequest struct {
	Grid      json.RawMessage `json:"grid,omitempty"`      // grid document
	Blueprint string          `json:"blueprint,omitempty"` // blueprint exchange string
}

// prioritizeRequest selects entries among the scan candidates. Invalid
// indices are ignored; a selection left empty fails with EMPTY_SELECTION.
type prioritizeRequest struct {
	gridRequest
	Entries []int `json:"entries,omitempty"`
	All     bool  `json:"all,omitempty"`
}

type candidateJSON struct {
	Index  int    `json:"index"`
	ID     int    `json:"id"`
	Name   string `json:"name,omitempty"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Facing string `json:"facing"`
}

type scanResponse struct {
	Candidates []candidateJSON `json:"candidates"`
}

type splitterJSON struct {
	ID       int    `json:"id"`
	Priority string `json:"priority"`
}

type statsJSON struct {
	Entities   int `json:"entities"`
	Candidates int `json:"candidates"`
	Entries    int `json:"entries"`
	Visited    int `json:"visited"`
	Splitters  int `json:"splitters"`
	Changed    int `json:"changed,omitempty"`
}

type prioritizeResponse struct {
	RunID     string          `json:"run_id"`
	Entries   []int           `json:"entries"` // entity ids
	Splitters []splitterJSON  `json:"splitters"`
	Stats     statsJSON       `json:"stats"`
	Grid      json.RawMessage `json:"grid"`
	Blueprint string          `json:"blueprint,omitempty"`
}

type errorBody struct {
	Error errorJSON `json:"error"`
}

type errorJSON struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var req gridRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	in, err := s.load(r, req)
	if err != nil {
		writeError(w, err)
		return
	}
	candidates, err := s.runner.Scan(r.Context(), in.Grid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scanResponse{Candidates: candidatesJSON(candidates)})
}

func (s *Server) handlePrioritize(w http.ResponseWriter, r *http.Request) {
	var req prioritizeRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	in, err := s.load(r, req.gridRequest)
	if err != nil {
		writeError(w, err)
		return
	}

	var sel pipeline.Selector = pipeline.IndexSelector(req.Entries)
	if req.All {
		sel = pipeline.AllSelector{}
	}
	res, err := s.runner.Prioritize(r.Context(), in, sel)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := prioritizeResponse{
		RunID:     res.RunID.String(),
		Entries:   make([]int, len(res.Entries)),
		Splitters: []splitterJSON{},
		Stats: statsJSON{
			Entities:   res.Stats.Entities,
			Candidates: res.Stats.Candidates,
			Entries:    res.Stats.Entries,
			Visited:    res.Stats.Visited,
			Splitters:  res.Stats.Splitters,
			Changed:    res.Stats.Changed,
		},
	}
	for i, e := range res.Entries {
		resp.Entries[i] = e.ID
	}
	for _, sp := range in.Grid.Splitters() {
		if prio, ok := res.Propagation.Splitters[sp.ID]; ok {
			resp.Splitters = append(resp.Splitters, splitterJSON{ID: sp.ID, Priority: prio.String()})
		}
	}

	var doc bytes.Buffer
	if err := gridio.WriteJSON(in.Grid, &doc); err != nil {
		writeError(w, err)
		return
	}
	resp.Grid = doc.Bytes()
	if in.Blueprint != nil {
		var bp strings.Builder
		if err := s.runner.Export(res, &bp, pipeline.FormatBlueprint); err != nil {
			writeError(w, err)
			return
		}
		resp.Blueprint = strings.TrimSpace(bp.String())
	}
	writeJSON(w, http.StatusOK, resp)
}

// load builds the request grid.
func (s *Server) load(r *http.Request, req gridRequest) (*pipeline.Input, error) {
	hasGrid := len(bytes.TrimSpace(req.Grid)) > 0 && string(bytes.TrimSpace(req.Grid)) != "null"
	switch {
	case hasGrid && req.Blueprint != "":
		return nil, errors.New(errors.ErrCodeInvalidInput, "set either grid or blueprint, not both")
	case hasGrid:
		return s.runner.Load(r.Context(), pipeline.Source{Data: req.Grid, Format: "json"})
	case req.Blueprint != "":
		return s.runner.Load(r.Context(), pipeline.Source{Data: []byte(req.Blueprint), Format: pipeline.FormatBlueprint})
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "request needs a grid or a blueprint")
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	return nil
}

func candidatesJSON(candidates []*belt.Entity) []candidateJSON {
	out := make([]candidateJSON, len(candidates))
	for i, c := range candidates {
		out[i] = candidateJSON{
			Index:  i,
			ID:     c.ID,
			Name:   c.Name,
			X:      c.Pos.X,
			Y:      c.Pos.Y,
			Facing: c.Facing.String(),
		}
	}
	return out
}

func notFound(path string) error {
	return errors.New(errors.ErrCodeNotFound, "no route for %s", path)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes err as {"error": {"code", "message"}} with the status of
// its code. Errors without a code are reported as internal errors.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, errors.HTTPStatus(code), errorBody{Error: errorJSON{
		Code:    code,
		Message: errors.UserMessage(err),
	}})
}
