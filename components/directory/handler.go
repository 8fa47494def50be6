package directory

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	source "github.com/goliatone/go-fiche/pkg/directory"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type errorResponse struct {
	Message string `json:"message"`
}

type handlers struct {
	opts Options
}

func (h *handlers) guarded(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.opts.Guard != nil {
			if err := h.opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}
		next(w, r)
	})
}

func (h *handlers) query(r *http.Request) source.Query {
	values := r.URL.Query()
	return source.Query{
		Limit:  clampLimit(parseInt(values.Get(source.ParamLimit)), h.opts),
		Page:   parseInt(values.Get(source.ParamPage)),
		Search: values.Get(h.opts.SearchParam),
	}
}

func (h *handlers) etablissements(w http.ResponseWriter, r *http.Request) {
	q := h.query(r)
	if sigle := r.URL.Query().Get(source.ParamSigle); sigle != "" {
		q.Search = sigle
	}
	page, err := h.opts.Source.Etablissements(r.Context(), q)
	respond(w, r, h, page, err)
}

func (h *handlers) encadreurs(w http.ResponseWriter, r *http.Request) {
	q := h.query(r)
	id := r.URL.Query().Get(source.ParamID)
	if id == "" {
		page, err := h.opts.Source.Encadreurs(r.Context(), q)
		respond(w, r, h, page, err)
		return
	}
	rec, err := h.opts.Source.Encadreur(r.Context(), id)
	switch {
	case errors.Is(err, source.ErrNotFound):
		respond(w, r, h, source.Paginate([]source.EncadreurRecord{}, q), nil)
	case err != nil:
		respond(w, r, h, source.Page[source.EncadreurRecord]{}, err)
	default:
		respond(w, r, h, source.Paginate([]source.EncadreurRecord{rec}, q), nil)
	}
}

func (h *handlers) specialites(w http.ResponseWriter, r *http.Request) {
	page, err := h.opts.Source.Specialites(r.Context(), h.query(r))
	respond(w, r, h, page, err)
}

func (h *handlers) parcours(w http.ResponseWriter, r *http.Request) {
	page, err := h.opts.Source.Parcours(r.Context(), h.query(r))
	respond(w, r, h, page, err)
}

func (h *handlers) inscriptions(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	page, err := h.opts.Source.Inscriptions(r.Context(), source.InscriptionQuery{
		Query:                 h.query(r),
		Niveau:                values.Get(source.ParamNiveau),
		Parcours:              values.Get(source.ParamParcours),
		AnneeUniv:             values.Get(source.ParamAnneeUniv),
		Etudiant:              values.Get(source.ParamEtudiant),
		EtatFormationPratique: values.Get(source.ParamEtatFormationPratique),
	})
	respond(w, r, h, page, err)
}

func respond[T any](w http.ResponseWriter, r *http.Request, h *handlers, page source.Page[T], err error) {
	if err != nil {
		h.opts.Logger.Warn("directory: lookup failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusBadGateway, "directory lookup failed")
		return
	}
	if page.Data == nil {
		page.Data = []T{}
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(page)
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Message: message})
}

func writeGuardError(w http.ResponseWriter, err error) {
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		if c := httpErr.StatusCode(); c > 0 {
			code = c
		}
	}
	writeError(w, code, http.StatusText(code))
}

func parseInt(raw string) int {
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
