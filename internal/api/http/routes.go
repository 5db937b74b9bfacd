package httpapi

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gorilla/schema"

	"github.com/i474232898/business-hours/internal/business"
	"github.com/i474232898/business-hours/internal/hours"
	"github.com/i474232898/business-hours/internal/store"
)

var (
	validate = validator.New()
	decoder  = schema.NewDecoder()
)

func init() {
	decoder.IgnoreUnknownKeys(true)
}

const refreshTimeout = 30 * time.Second

type handler struct {
	service   *business.Service
	locations map[string]business.Location
	order     []business.Location
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *business.Service, locations []business.Location) {
	h := &handler{
		service:   service,
		locations: make(map[string]business.Location, len(locations)),
		order:     locations,
	}
	for _, loc := range locations {
		h.locations[loc.Key] = loc
	}

	v1 := app.Group("/api/v1")
	v1.Get("/locations", h.listLocations)
	v1.Get("/locations/:key", h.resolveLocation, h.overview)
	v1.Get("/locations/:key/status", h.resolveLocation, h.status)
	v1.Get("/locations/:key/schedule", h.resolveLocation, h.schedule)
	v1.Get("/locations/:key/history", h.resolveLocation, h.history)
	v1.Post("/locations/:key/refresh", h.resolveLocation, h.refresh)
}

type locationSummary struct {
	Key          string     `json:"key"`
	Path         string     `json:"path"`
	Loaded       bool       `json:"loaded"`
	LocationName string     `json:"locationName,omitempty"`
	FetchedAt    *time.Time `json:"fetchedAt,omitempty"`
}

func (h *handler) listLocations(c *fiber.Ctx) error {
	out := make([]locationSummary, 0, len(h.order))
	for _, loc := range h.order {
		sum := locationSummary{Key: loc.Key, Path: loc.Path}
		if snap, err := h.service.GetLatest(loc); err == nil {
			sum.Loaded = true
			sum.LocationName = snap.LocationName
			sum.FetchedAt = &snap.FetchedAt
		}
		out = append(out, sum)
	}
	return c.JSON(fiber.Map{"locations": out})
}

func (h *handler) resolveLocation(c *fiber.Ctx) error {
	loc, ok := h.locations[c.Params("key")]
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "unknown location")
	}
	c.Locals("location", loc)
	return c.Next()
}

func location(c *fiber.Ctx) business.Location {
	return c.Locals("location").(business.Location)
}

func (h *handler) overview(c *fiber.Ctx) error {
	q, err := h.instant(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	ov, err := h.service.Overview(location(c), q)
	if err != nil {
		return notLoaded(err)
	}
	return c.JSON(ov)
}

func (h *handler) status(c *fiber.Ctx) error {
	q, err := h.instant(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	st, err := h.service.Status(location(c), q)
	if err != nil {
		return notLoaded(err)
	}
	return c.JSON(fiber.Map{
		"at":     q,
		"status": st,
		"color":  st.Class.Color(),
	})
}

func (h *handler) schedule(c *fiber.Ctx) error {
	q, err := h.instant(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	snap, rows, err := h.service.Schedule(location(c), q.Day)
	if err != nil {
		return notLoaded(err)
	}
	return c.JSON(fiber.Map{
		"locationName": snap.LocationName,
		"rows":         rows,
		"intervals":    snap.Timeline.Intervals(),
	})
}

func (h *handler) history(c *fiber.Ctx) error {
	var req historyQuery
	if err := req.bind(c); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	loc := location(c)
	snapshots, err := h.service.GetRange(loc, req.From, req.To)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "no schedule history for requested range")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load schedule history")
	}

	return c.JSON(fiber.Map{
		"location":  loc,
		"from":      req.From,
		"to":        req.To,
		"snapshots": snapshots,
	})
}

func (h *handler) refresh(c *fiber.Ctx) error {
	loc := location(c)
	ctx, cancel := context.WithTimeout(c.UserContext(), refreshTimeout)
	defer cancel()

	if err := h.service.FetchAndStore(ctx, loc); err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "failed to fetch schedule")
	}
	ov, err := h.service.Overview(loc, h.service.Now())
	if err != nil {
		return notLoaded(err)
	}
	return c.JSON(ov)
}

func notLoaded(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "schedule not loaded yet")
	}
	return fiber.NewError(fiber.StatusInternalServerError, "failed to evaluate schedule")
}

// instantQuery optionally pins the evaluation to a day and time instead of now.
type instantQuery struct {
	Day  string `schema:"day" validate:"required_with=Time,omitempty,len=3"`
	Time string `schema:"time" validate:"required_with=Day,omitempty,len=8"`
}

func (h *handler) instant(c *fiber.Ctx) (hours.QueryInstant, error) {
	values, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err != nil {
		return hours.QueryInstant{}, err
	}
	var q instantQuery
	if err := decoder.Decode(&q, values); err != nil {
		return hours.QueryInstant{}, err
	}
	if err := validate.Struct(q); err != nil {
		return hours.QueryInstant{}, err
	}
	if q.Day == "" {
		return h.service.Now(), nil
	}
	return hours.NewQueryInstant(q.Day, q.Time)
}

// historyQuery holds query parameters for the history endpoint.
type historyQuery struct {
	From time.Time `validate:"required"`
	To   time.Time `validate:"required,gtefield=From"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return errors.New("from and to query parameters are required")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return err
	}
	to, err := parseTime(toStr)
	if err != nil {
		return err
	}

	h.From = from
	h.To = to
	return nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}
