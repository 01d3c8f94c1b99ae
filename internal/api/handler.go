package api

import (
	"encoding/json"
	"time"

	cache "github.com/Code-Hex/go-generics-cache"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"schedsim/internal/job"
	"schedsim/internal/metrics"
	"schedsim/internal/sched"
)

// DefaultCacheTTL bounds how long a computed response is served from cache.
const DefaultCacheTTL = 5 * time.Minute

// ErrorResponse represents error response structure
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// ScheduleRequest is the body of the schedule and compare endpoints.
type ScheduleRequest struct {
	Processes []sched.Process `json:"processes"`
	Quantum   int             `json:"quantum,omitempty"` // round-robin override
	Levels    []int           `json:"levels,omitempty"`  // MLFQ override
}

type ScheduleResponse struct {
	Success bool                  `json:"success"`
	Summary sched.RunSummary      `json:"summary"`
	Results []sched.ProcessResult `json:"results"`
	Metrics metrics.Report        `json:"metrics"`
	Events  []sched.Event         `json:"events,omitempty"`
}

type CompareResponse struct {
	Success bool              `json:"success"`
	Reports []metrics.Report  `json:"reports"`
	Errors  map[string]string `json:"errors,omitempty"`
}

type PolicyInfo struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

type Params struct {
	Config   sched.Config
	CacheTTL time.Duration
}

type Handler struct {
	cfg       sched.Config
	cacheTTL  time.Duration
	responses *cache.Cache[string, []byte]
}

func NewHandler(params Params) *Handler {
	ttl := params.CacheTTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Handler{
		cfg:       params.Config,
		cacheTTL:  ttl,
		responses: cache.New[string, []byte](),
	}
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "status": "ok"})
}

func (h *Handler) ListPolicies(c *fiber.Ctx) error {
	names := sched.Names()
	out := make([]PolicyInfo, len(names))
	for i, n := range names {
		out[i] = PolicyInfo{Name: n, Title: sched.Title(n)}
	}
	return c.JSON(out)
}

// Schedule runs one policy. ?trace=true adds the dispatch trace.
func (h *Handler) Schedule(c *fiber.Ctx) error {
	name, err := sched.Canonical(c.Params("policy"))
	if err != nil {
		return h.handleError(c, err)
	}
	req, err := h.bind(c)
	if err != nil {
		return h.handleError(c, err)
	}
	trace := c.QueryBool("trace")

	key, err := cacheKey(name, trace, req)
	if err != nil {
		return h.handleError(c, err)
	}
	return h.cached(c, key, func() (any, error) {
		policy, err := sched.New(name, h.configFor(req))
		if err != nil {
			return nil, err
		}
		s, err := policy.Schedule(req.Processes)
		if err != nil {
			return nil, err
		}
		resp := ScheduleResponse{
			Success: true,
			Summary: s.Summary,
			Results: s.Results,
			Metrics: metrics.Summarize(s),
		}
		if trace {
			resp.Events = s.Events
		}
		return resp, nil
	})
}

// Compare runs every policy over the same workload.
func (h *Handler) Compare(c *fiber.Ctx) error {
	req, err := h.bind(c)
	if err != nil {
		return h.handleError(c, err)
	}
	key, err := cacheKey("compare", false, req)
	if err != nil {
		return h.handleError(c, err)
	}
	return h.cached(c, key, func() (any, error) {
		outcomes, err := sched.Compare(req.Processes, h.configFor(req))
		if err != nil {
			return nil, err
		}
		resp := CompareResponse{Success: true, Reports: metrics.SummarizeAll(outcomes)}
		for _, o := range outcomes {
			if o.Err == nil {
				continue
			}
			if resp.Errors == nil {
				resp.Errors = make(map[string]string)
			}
			resp.Errors[o.Policy] = o.Err.Error()
		}
		return resp, nil
	})
}

func (h *Handler) bind(c *fiber.Ctx) (ScheduleRequest, error) {
	var req ScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return req, errors.Wrapf(sched.ErrInvalidInput, "invalid request format: %v", err)
	}
	if len(req.Processes) > job.MaxProcesses {
		return req, errors.Wrapf(sched.ErrInvalidInput, "%d processes exceed the limit of %d", len(req.Processes), job.MaxProcesses)
	}
	return req, nil
}

func (h *Handler) configFor(req ScheduleRequest) sched.Config {
	cfg := h.cfg
	if req.Quantum != 0 {
		cfg.RoundRobin.Quantum = req.Quantum
	}
	if len(req.Levels) > 0 {
		cfg.MLFQ.Quantums = append([]int(nil), req.Levels...)
	}
	return cfg
}

// cached serves key from the response cache, or computes, encodes and stores
// it. Failed computations are not cached.
func (h *Handler) cached(c *fiber.Ctx, key string, compute func() (any, error)) error {
	if body, ok := h.responses.Get(key); ok {
		c.Set("X-Cache-Hit", "true")
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(body)
	}
	resp, err := compute()
	if err != nil {
		return h.handleError(c, err)
	}
	body, err := json.Marshal(resp)
	if err != nil {
		return h.handleError(c, errors.Wrap(err, "encode response"))
	}
	h.responses.Set(key, body, cache.WithExpiration(h.cacheTTL))
	c.Set("X-Cache-Hit", "false")
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}

func cacheKey(name string, trace bool, req ScheduleRequest) (string, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return "", errors.Wrap(err, "cache key")
	}
	if trace {
		name += "+trace"
	}
	return name + "|" + string(data), nil
}

func (h *Handler) handleError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, sched.ErrUnknownPolicy):
		status = fiber.StatusNotFound
	case errors.Is(err, sched.ErrInvalidInput):
		status = fiber.StatusBadRequest
	default:
		logrus.WithError(err).WithField("req_id", requestID(c)).Error("request failed")
	}
	return c.Status(status).JSON(ErrorResponse{Success: false, Error: err.Error()})
}
