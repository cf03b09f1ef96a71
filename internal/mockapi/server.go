package mockapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/natasilva/task-tracker-front/internal/api"
	"github.com/natasilva/task-tracker-front/internal/calendar"
	"github.com/natasilva/task-tracker-front/internal/sl"
)

type errorResponse struct {
	Error string `json:"error"`
}

type server struct {
	store *Store
	log   *slog.Logger
}

// New returns the HTTP handler serving store.
func New(store *Store, log *slog.Logger) http.Handler {
	if log == nil {
		log = sl.Discard()
	}
	s := &server{store: store, log: log}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLog)
	r.Use(middleware.Recoverer)

	r.Post("/users/login", s.login)
	r.Get("/users/", s.listUsers)
	r.Get("/services/", s.listServices)
	r.Route("/results", func(r chi.Router) {
		r.Get("/", s.listResults)
		r.Post("/", s.createResult)
		r.Get("/{id}", s.readResult)
		r.Patch("/{id}", s.updateResult)
	})
	r.Get("/targets/report", s.targetReport)
	return r
}

func (s *server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("client_request_id", r.Header.Get(api.RequestIDHeader)),
		)
	})
}

func (s *server) fail(w http.ResponseWriter, r *http.Request, status int, msg string, err error) {
	log := s.log.With(slog.String("request_id", middleware.GetReqID(r.Context())))
	if err != nil {
		log.Warn(msg, sl.Err(err))
	} else {
		log.Warn(msg)
	}
	render.Status(r, status)
	render.JSON(w, r, errorResponse{Error: msg})
}

func (s *server) login(w http.ResponseWriter, r *http.Request) {
	var creds api.Credentials
	if err := render.DecodeJSON(r.Body, &creds); err != nil {
		s.fail(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}
	user := s.store.login(creds.CPF, creds.Password)
	if user == nil {
		render.JSON(w, r, map[string]any{})
		return
	}
	render.JSON(w, r, map[string]any{"user": user})
}

func (s *server) listUsers(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, s.store.users())
}

func (s *server) listServices(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, s.store.serviceList())
}

func parsePeriod(r *http.Request) (calendar.Date, calendar.Date, error) {
	q := r.URL.Query()
	from, err := calendar.ParseISO(q.Get("initialDate"))
	if err != nil {
		return calendar.Date{}, calendar.Date{}, err
	}
	to, err := calendar.ParseISO(q.Get("endDate"))
	if err != nil {
		return calendar.Date{}, calendar.Date{}, err
	}
	if from.After(to) {
		return calendar.Date{}, calendar.Date{}, errors.New("initialDate is after endDate")
	}
	return from, to, nil
}

func (s *server) listResults(w http.ResponseWriter, r *http.Request) {
	from, to, err := parsePeriod(r)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, "invalid period", err)
		return
	}
	registered, _ := strconv.ParseBool(r.URL.Query().Get("registered"))
	userID := api.ID(r.URL.Query().Get("id_user"))

	out := s.store.listResults(userID, registered, from, to)
	if out == nil {
		out = []api.Result{}
	}
	render.JSON(w, r, out)
}

func (s *server) readResult(w http.ResponseWriter, r *http.Request) {
	detail, ok := s.store.result(api.ID(chi.URLParam(r, "id")))
	if !ok {
		s.fail(w, r, http.StatusNotFound, "result not found", nil)
		return
	}
	render.JSON(w, r, detail)
}

func (s *server) createResult(w http.ResponseWriter, r *http.Request) {
	var nr api.NewResult
	if err := render.DecodeJSON(r.Body, &nr); err != nil {
		s.fail(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}
	id, err := s.store.createResult(nr)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, "invalid validation_date", err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]any{"id": id})
}

func (s *server) updateResult(w http.ResponseWriter, r *http.Request) {
	var upd api.ResultUpdate
	if err := render.DecodeJSON(r.Body, &upd); err != nil {
		s.fail(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}
	id := api.ID(chi.URLParam(r, "id"))
	if !s.store.updateResult(id, upd.Items) {
		s.fail(w, r, http.StatusNotFound, "result not found", nil)
		return
	}
	render.JSON(w, r, map[string]any{"id": id})
}

func (s *server) targetReport(w http.ResponseWriter, r *http.Request) {
	from, to, err := parsePeriod(r)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, "invalid period", err)
		return
	}
	userID := api.ID(r.URL.Query().Get("id_user"))
	if userID == "" {
		s.fail(w, r, http.StatusBadRequest, "id_user is required", nil)
		return
	}
	out := s.store.targetReport(userID, from, to)
	if out == nil {
		out = []api.TargetReportRow{}
	}
	render.JSON(w, r, out)
}
