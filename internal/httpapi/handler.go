package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/Freeeeeet/tuition_site/internal/content"
	"github.com/Freeeeeet/tuition_site/internal/model"
	"github.com/Freeeeeet/tuition_site/internal/service"
	"github.com/Freeeeeet/tuition_site/internal/wizard"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxBodyBytes = 64 << 10

type Handler struct {
	pages       *content.Catalog
	submissions *service.SubmissionService
	requests    *service.RequestService
	dashboard   *service.DashboardService
	auth        *service.AuthService
	export      *service.ExportService
	logger      *zap.Logger
}

// ---- public ----

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) listPages(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, h.pages.List())
}

func (h *Handler) getPage(w http.ResponseWriter, r *http.Request) {
	page, ok := h.pages.Get(chi.URLParam(r, "slug"))
	if !ok {
		RespondWithError(w, http.StatusNotFound, "Page not found")
		return
	}
	RespondWithJSON(w, http.StatusOK, page)
}

func (h *Handler) listForms(w http.ResponseWriter, r *http.Request) {
	forms := make([]*wizard.Form, 0)
	for _, name := range wizard.Names() {
		f, _ := wizard.Lookup(name)
		forms = append(forms, f)
	}
	RespondWithJSON(w, http.StatusOK, forms)
}

func (h *Handler) getForm(w http.ResponseWriter, r *http.Request) {
	form, ok := wizard.Lookup(chi.URLParam(r, "name"))
	if !ok {
		RespondWithError(w, http.StatusNotFound, "Form not found")
		return
	}
	RespondWithJSON(w, http.StatusOK, form)
}

func (h *Handler) submitParent(w http.ResponseWriter, r *http.Request) {
	var in service.ParentInput
	if !decode(w, r, &in) {
		return
	}
	p, err := h.submissions.SubmitParent(r.Context(), in)
	if err != nil {
		h.logFailure(r, "submit parent", err)
		respondWithServiceError(w, err, "Failed to submit form")
		return
	}
	RespondWithJSON(w, http.StatusCreated, p)
}

func (h *Handler) submitTutor(w http.ResponseWriter, r *http.Request) {
	var in service.TutorInput
	if !decode(w, r, &in) {
		return
	}
	t, err := h.submissions.SubmitTutor(r.Context(), in)
	if err != nil {
		h.logFailure(r, "submit tutor", err)
		respondWithServiceError(w, err, "Failed to submit form")
		return
	}
	RespondWithJSON(w, http.StatusCreated, t)
}

func (h *Handler) createRequest(w http.ResponseWriter, r *http.Request) {
	var in service.RequestInput
	if !decode(w, r, &in) {
		return
	}
	req, err := h.requests.CreateRequest(r.Context(), in)
	if err != nil {
		h.logFailure(r, "create request", err)
		respondWithServiceError(w, err, "Failed to submit form")
		return
	}
	RespondWithJSON(w, http.StatusCreated, req)
}

// RequestStatusView is what a parent sees when checking a request.
type RequestStatusView struct {
	ID           uuid.UUID           `json:"id"`
	Subject      string              `json:"subject"`
	Level        string              `json:"level"`
	Status       model.RequestStatus `json:"status"`
	StatusLabel  string              `json:"status_label"`
	MatchSummary string              `json:"match_summary,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

func (h *Handler) requestStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	req, err := h.requests.GetRequest(r.Context(), id)
	if err != nil {
		h.logFailure(r, "get request status", err)
		respondWithServiceError(w, err, "Failed to load request")
		return
	}
	RespondWithJSON(w, http.StatusOK, RequestStatusView{
		ID:           req.ID,
		Subject:      req.Subject,
		Level:        req.Level,
		Status:       req.Status,
		StatusLabel:  req.Status.Display().Text,
		MatchSummary: req.MatchSummary,
		CreatedAt:    req.CreatedAt,
		UpdatedAt:    req.UpdatedAt,
	})
}

// ---- admin ----

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decode(w, r, &req) {
		return
	}
	token, expiresAt, err := h.auth.Login(r.Context(), req.Password)
	if err != nil {
		RespondWithError(w, http.StatusUnauthorized, "Invalid password")
		return
	}
	RespondWithJSON(w, http.StatusOK, loginResponse{Token: token, ExpiresAt: expiresAt})
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboard.Stats(r.Context())
	if err != nil {
		h.logFailure(r, "load stats", err)
		respondWithServiceError(w, err, "Failed to load stats")
		return
	}
	RespondWithJSON(w, http.StatusOK, stats)
}

type listResponse struct {
	Items  interface{} `json:"items"`
	Count  int         `json:"count"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	kind, ok := parseKind(w, r)
	if !ok {
		return
	}
	filter, ok := parseFilter(w, r)
	if !ok {
		return
	}

	var (
		items interface{}
		count int
		err   error
	)
	switch kind {
	case model.KindParent:
		var rows []*model.ParentSubmission
		rows, err = h.submissions.ListParents(r.Context(), filter)
		items, count = rows, len(rows)
	case model.KindTutor:
		var rows []*model.TutorSubmission
		rows, err = h.submissions.ListTutors(r.Context(), filter)
		items, count = rows, len(rows)
	case model.KindRequest:
		var rows []*model.TutorRequest
		rows, err = h.requests.ListRequests(r.Context(), filter)
		items, count = rows, len(rows)
	}
	if err != nil {
		h.logFailure(r, "list "+string(kind), err)
		respondWithServiceError(w, err, "Failed to load records")
		return
	}

	filter = filter.Normalize()
	RespondWithJSON(w, http.StatusOK, listResponse{Items: items, Count: count, Limit: filter.Limit, Offset: filter.Offset})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	kind, ok := parseKind(w, r)
	if !ok {
		return
	}
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var (
		record interface{}
		err    error
	)
	switch kind {
	case model.KindParent:
		record, err = h.submissions.GetParent(r.Context(), id)
	case model.KindTutor:
		record, err = h.submissions.GetTutor(r.Context(), id)
	case model.KindRequest:
		record, err = h.requests.GetRequest(r.Context(), id)
	}
	if err != nil {
		h.logFailure(r, "get "+string(kind), err)
		respondWithServiceError(w, err, "Failed to load record")
		return
	}
	RespondWithJSON(w, http.StatusOK, record)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	kind, ok := parseKind(w, r)
	if !ok {
		return
	}
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var upd service.StatusUpdate
	if !decode(w, r, &upd) {
		return
	}

	var (
		record interface{}
		err    error
	)
	switch kind {
	case model.KindParent:
		record, err = h.submissions.UpdateParentStatus(r.Context(), id, upd)
	case model.KindTutor:
		record, err = h.submissions.UpdateTutorStatus(r.Context(), id, upd)
	case model.KindRequest:
		record, err = h.requests.UpdateRequestStatus(r.Context(), id, upd)
	}
	if err != nil {
		h.logFailure(r, "update "+string(kind)+" status", err)
		respondWithServiceError(w, err, "Failed to update status")
		return
	}
	RespondWithJSON(w, http.StatusOK, record)
}

func (h *Handler) runMatching(w http.ResponseWriter, r *http.Request) {
	if kind, _ := model.ParseKind(chi.URLParam(r, "kind")); kind != model.KindRequest {
		RespondWithError(w, http.StatusNotFound, "Matching is only available for requests")
		return
	}
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	req, err := h.requests.RunMatching(r.Context(), id)
	if err != nil {
		h.logFailure(r, "run matching", err)
		respondWithServiceError(w, err, "Failed to run matching")
		return
	}
	RespondWithJSON(w, http.StatusOK, req)
}

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	kind, ok := parseKind(w, r)
	if !ok {
		return
	}
	filter, ok := parseFilter(w, r)
	if !ok {
		return
	}

	// buffered so a failing store still yields a JSON error
	var buf bytes.Buffer
	n, err := h.export.Export(r.Context(), kind, filter, &buf)
	if err != nil {
		h.logFailure(r, "export "+string(kind), err)
		respondWithServiceError(w, err, "Failed to export records")
		return
	}

	h.logger.Info("CSV export", zap.String("kind", string(kind)), zap.Int("rows", n))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+service.Filename(kind, time.Now())+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// ---- helpers ----

func decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return false
	}
	return true
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid id")
		return uuid.Nil, false
	}
	return id, true
}

func parseKind(w http.ResponseWriter, r *http.Request) (model.Kind, bool) {
	kind, ok := model.ParseKind(chi.URLParam(r, "kind"))
	if !ok {
		RespondWithError(w, http.StatusNotFound, "Unknown collection")
		return "", false
	}
	return kind, true
}

func parseFilter(w http.ResponseWriter, r *http.Request) (model.ListFilter, bool) {
	q := r.URL.Query()
	filter := model.ListFilter{Status: q.Get("status"), Query: q.Get("q")}

	for name, dst := range map[string]*int{"limit": &filter.Limit, "offset": &filter.Offset} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			RespondWithError(w, http.StatusBadRequest, "Invalid "+name)
			return model.ListFilter{}, false
		}
		*dst = n
	}
	return filter, true
}

func (h *Handler) logFailure(r *http.Request, op string, err error) {
	if code := statusFromError(err); code < 500 {
		h.logger.Debug("Request rejected", zap.String("op", op), zap.Int("status", code), zap.Error(err))
		return
	}
	h.logger.Error("Request failed", zap.String("op", op), zap.Error(err))
}
