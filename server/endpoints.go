package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tiberiu1204/regex-lfa/internal/version"
	"github.com/tiberiu1204/regex-lfa/server/dao"
	"github.com/tiberiu1204/regex-lfa/server/serr"
)

// URLParamKeyID is the chi URL parameter that holds the ID of the main
// entity an endpoint operates on.
const URLParamKeyID = "id"

// EndpointFunc is a service-level endpoint: it takes the request and returns
// the complete result to render, leaving status-code and body writing to the
// Endpoint wrapper.
type EndpointFunc func(req *http.Request) EndpointResult

// Endpoint adapts an EndpointFunc into an http.HandlerFunc, converting
// panics to HTTP-500s on the way.
func Endpoint(ep EndpointFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		defer panicTo500(w, req)
		result := ep(req)
		result.writeResponse(w, req)
	}
}

// requireIDParam gets the ID of the main entity being referenced in the URI
// and returns it. It panics if the key is not there or is not parsable,
// which the Endpoint wrapper turns into an HTTP-500; routes must only use it
// under a {id} pattern.
func requireIDParam(r *http.Request) uuid.UUID {
	idStr := chi.URLParam(r, URLParamKeyID)
	id, err := uuid.Parse(idStr)
	if err != nil {
		panic(fmt.Sprintf("ID param is not a UUID: %q", idStr))
	}
	return id
}

func (ps *PatternServer) newRouter() chi.Router {
	r := chi.NewRouter()

	r.Route("/patterns", func(r chi.Router) {
		r.Post("/", Endpoint(ps.epCreatePattern))
		r.Get("/", Endpoint(ps.epGetAllPatterns))
		r.Route("/{id:[0-9a-fA-F-]+}", func(r chi.Router) {
			r.Get("/", Endpoint(ps.epGetPattern))
			r.Delete("/", Endpoint(ps.epDeletePattern))
			r.Post("/match", Endpoint(ps.epMatchPattern))
		})
	})

	r.Post("/match", Endpoint(ps.epMatchExpr))
	r.Get("/info", Endpoint(ps.epGetInfo))

	return r
}

type PatternModel struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Expr    string `json:"expr"`
	States  int    `json:"states"`
	Created string `json:"created"`
}

type CreatePatternRequest struct {
	Name string `json:"name"`
	Expr string `json:"expr"`
}

type MatchRequest struct {
	Expr string `json:"expr,omitempty"`
	Word string `json:"word"`
}

type MatchResponse struct {
	Matched bool   `json:"matched"`
	Word    string `json:"word"`
	Expr    string `json:"expr,omitempty"`
}

type InfoResponse struct {
	Version string `json:"version"`
}

func (ps *PatternServer) epCreatePattern(req *http.Request) EndpointResult {
	var data CreatePatternRequest
	if err := parseJSON(req, &data); err != nil {
		return jsonBadRequest(err.Error(), "%s", err.Error())
	}

	p, err := ps.CreatePattern(req.Context(), data.Name, data.Expr)
	if err != nil {
		if errors.Is(err, serr.ErrAlreadyExists) {
			return jsonConflict(err.Error(), "%s", err.Error())
		} else if errors.Is(err, serr.ErrBadArgument) {
			return jsonBadRequest(err.Error(), "%s", err.Error())
		}
		return jsonInternalServerError("%s", err.Error())
	}

	return jsonCreated(daoToPatternModel(p), "pattern %q created as %s", p.Name, p.ID)
}

func (ps *PatternServer) epGetAllPatterns(req *http.Request) EndpointResult {
	all, err := ps.GetAllPatterns(req.Context())
	if err != nil {
		return jsonInternalServerError("%s", err.Error())
	}

	models := make([]PatternModel, len(all))
	for i := range all {
		models[i] = daoToPatternModel(all[i])
	}

	return jsonOK(models, "%d patterns returned", len(models))
}

func (ps *PatternServer) epGetPattern(req *http.Request) EndpointResult {
	id := requireIDParam(req)

	p, err := ps.GetPattern(req.Context(), id)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return jsonNotFound("no pattern with ID %s", id)
		}
		return jsonInternalServerError("%s", err.Error())
	}

	return jsonOK(daoToPatternModel(p))
}

func (ps *PatternServer) epDeletePattern(req *http.Request) EndpointResult {
	id := requireIDParam(req)

	p, err := ps.DeletePattern(req.Context(), id)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return jsonNotFound("no pattern with ID %s", id)
		}
		return jsonInternalServerError("%s", err.Error())
	}

	return jsonOK(daoToPatternModel(p), "pattern %q deleted", p.Name)
}

func (ps *PatternServer) epMatchPattern(req *http.Request) EndpointResult {
	id := requireIDParam(req)

	var data MatchRequest
	if err := parseJSON(req, &data); err != nil {
		return jsonBadRequest(err.Error(), "%s", err.Error())
	}

	matched, err := ps.Match(req.Context(), id, data.Word)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return jsonNotFound("no pattern with ID %s", id)
		}
		return jsonInternalServerError("%s", err.Error())
	}

	return jsonOK(MatchResponse{Matched: matched, Word: data.Word}, "pattern %s matched against %q: %t", id, data.Word, matched)
}

func (ps *PatternServer) epMatchExpr(req *http.Request) EndpointResult {
	var data MatchRequest
	if err := parseJSON(req, &data); err != nil {
		return jsonBadRequest(err.Error(), "%s", err.Error())
	}

	matched, err := ps.MatchExpr(data.Expr, data.Word)
	if err != nil {
		if errors.Is(err, serr.ErrBadArgument) {
			return jsonBadRequest(err.Error(), "%s", err.Error())
		}
		return jsonInternalServerError("%s", err.Error())
	}

	return jsonOK(MatchResponse{Matched: matched, Word: data.Word, Expr: data.Expr}, "%q matched against %q: %t", data.Expr, data.Word, matched)
}

func (ps *PatternServer) epGetInfo(req *http.Request) EndpointResult {
	return jsonOK(InfoResponse{Version: version.ServerCurrent}, "version info requested")
}

func daoToPatternModel(p dao.Pattern) PatternModel {
	return PatternModel{
		ID:      p.ID.String(),
		Name:    p.Name,
		Expr:    p.Expr,
		States:  p.Compiled.Len(),
		Created: p.Created.Format(time.RFC3339),
	}
}
