package api

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jsphweid/scorepad/collab"
	"github.com/jsphweid/scorepad/constants"
	"github.com/jsphweid/scorepad/layout"
	"github.com/jsphweid/scorepad/midi"
	"github.com/jsphweid/scorepad/model"
	"github.com/jsphweid/scorepad/notation"
	"github.com/jsphweid/scorepad/playback"
	"github.com/jsphweid/scorepad/render"
	"github.com/jsphweid/scorepad/store"
	"github.com/pkg/errors"
	"github.com/rs/cors"
)

type API struct {
	store store.Store
	hub   *collab.Hub
}

func New(s store.Store, hub *collab.Hub) *API {
	return &API{store: s, hub: hub}
}

func (a *API) Router() *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/parse", a.handleParse).Methods(http.MethodPost)
	router.HandleFunc("/stringify", a.handleStringify).Methods(http.MethodPost)
	router.HandleFunc("/frequencies", a.handleFrequencies).Methods(http.MethodPost)
	router.HandleFunc("/export/{format:midi|svg|png}", a.handleExport).Methods(http.MethodPost)

	router.HandleFunc("/compositions", a.handleListCompositions).Methods(http.MethodGet)
	router.HandleFunc("/compositions", a.handleCreateComposition).Methods(http.MethodPost)
	router.HandleFunc("/compositions/{id}", a.handleGetComposition).Methods(http.MethodGet)
	router.HandleFunc("/compositions/{id}", a.handleUpdateComposition).Methods(http.MethodPut)
	router.HandleFunc("/compositions/{id}", a.handleDeleteComposition).Methods(http.MethodDelete)
	router.HandleFunc("/compositions/{id}/{format:midi|svg|png}", a.handleExportComposition).Methods(http.MethodGet)

	router.HandleFunc("/ws/{id}", a.handleSocket)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "no route for "+r.URL.Path)
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, r.Method+" not allowed on "+r.URL.Path)
	})
	return router
}

// Handler is the router behind a CORS policy for the given origins.
func (a *API) Handler(origins []string) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(a.Router())
}

// Autosave stores notation coming from a collaboration room on the
// composition with the same id.
func Autosave(s store.Store) collab.SaveFunc {
	return func(id, text string) {
		if len(text) > constants.MaxNotationBytes {
			log.Printf("not saving %v: notation is %v bytes", id, len(text))
			return
		}
		c, err := s.Get(id)
		if err != nil {
			log.Printf("could not load %v for autosave: %v", id, err)
			return
		}
		c.Notation = text
		if _, err := s.Update(c); err != nil {
			log.Printf("could not autosave %v: %v", id, err)
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func writeStoreError(w http.ResponseWriter, err error) {
	switch errors.Cause(err) {
	case store.ErrNotFound:
		writeError(w, http.StatusNotFound, store.ErrNotFound.Error())
	case store.ErrInvalid:
		writeError(w, http.StatusBadRequest, store.ErrInvalid.Error())
	default:
		log.Printf("store error: %v", err)
		writeError(w, http.StatusInternalServerError, "storage failure")
	}
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxNotationBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Could not decode request body: "+err.Error())
		return false
	}
	return true
}

func (a *API) handleParse(w http.ResponseWriter, r *http.Request) {
	var input model.NotationRequestBody
	if !decode(w, r, &input) {
		return
	}
	writeJSON(w, http.StatusOK, notation.Parse(input.Notation))
}

func (a *API) handleStringify(w http.ResponseWriter, r *http.Request) {
	var score model.Score
	if !decode(w, r, &score) {
		return
	}
	writeJSON(w, http.StatusOK, model.NotationResponse{Notation: notation.Stringify(score)})
}

func frequencies(s model.Score) []model.FrequencyResult {
	res := make([]model.FrequencyResult, 0)
	for _, e := range playback.Schedule(s) {
		res = append(res, model.FrequencyResult{
			Name:      e.Name,
			Frequency: e.Frequency,
			Midi:      e.Midi,
			Start:     e.Start.Seconds(),
			Length:    e.Length.Seconds(),
		})
	}
	return res
}

func (a *API) handleFrequencies(w http.ResponseWriter, r *http.Request) {
	var input model.NotationRequestBody
	if !decode(w, r, &input) {
		return
	}
	writeJSON(w, http.StatusOK, frequencies(notation.Parse(input.Notation)))
}

var contentTypes = map[string]string{
	"midi": "audio/midi",
	"svg":  "image/svg+xml",
	"png":  "image/png",
}

func export(w http.ResponseWriter, r *http.Request, format, text string) {
	score := notation.Parse(text)
	theme := render.ThemeByName(r.URL.Query().Get("theme"))

	var buf bytes.Buffer
	switch format {
	case "midi":
		buf.Write(midi.Encode(score))
	case "svg":
		buf.WriteString(render.SVG(layout.Layout(score), theme))
	case "png":
		if err := render.PNG(&buf, layout.Layout(score), theme); err != nil {
			log.Printf("could not render png: %v", err)
			writeError(w, http.StatusInternalServerError, "could not render png")
			return
		}
	default:
		writeError(w, http.StatusNotFound, "unknown format "+format)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (a *API) handleExport(w http.ResponseWriter, r *http.Request) {
	var input model.NotationRequestBody
	if !decode(w, r, &input) {
		return
	}
	export(w, r, mux.Vars(r)["format"], input.Notation)
}

func (a *API) handleListCompositions(w http.ResponseWriter, r *http.Request) {
	list, err := a.store.List(r.URL.Query().Get("userId"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (a *API) handleCreateComposition(w http.ResponseWriter, r *http.Request) {
	var input model.CompositionRequestBody
	if !decode(w, r, &input) {
		return
	}
	c, err := a.store.Create(model.Composition{
		Title:    input.Title,
		Notation: input.Notation,
		UserID:   input.UserID,
		IsPublic: input.IsPublic,
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (a *API) handleGetComposition(w http.ResponseWriter, r *http.Request) {
	c, err := a.store.Get(mux.Vars(r)["id"])
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// handleUpdateComposition replaces title, notation and visibility. The owner
// never changes.
func (a *API) handleUpdateComposition(w http.ResponseWriter, r *http.Request) {
	var input model.CompositionRequestBody
	if !decode(w, r, &input) {
		return
	}
	c, err := a.store.Get(mux.Vars(r)["id"])
	if err != nil {
		writeStoreError(w, err)
		return
	}
	c.Title = input.Title
	c.Notation = input.Notation
	c.IsPublic = input.IsPublic

	updated, err := a.store.Update(c)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (a *API) handleDeleteComposition(w http.ResponseWriter, r *http.Request) {
	if err := a.store.Delete(mux.Vars(r)["id"]); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleExportComposition(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	c, err := a.store.Get(vars["id"])
	if err != nil {
		writeStoreError(w, err)
		return
	}
	export(w, r, vars["format"], c.Notation)
}

func (a *API) handleSocket(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, err := a.store.Get(id); err != nil {
		writeStoreError(w, err)
		return
	}
	a.hub.Serve(w, r, id)
}
