package server

import (
	"github.com/gofiber/fiber/v2"
	bolt "go.etcd.io/bbolt"
	"golang.org/x/xerrors"

	"github.com/vulnboard/vulnboard/pkg/db"
	"github.com/vulnboard/vulnboard/pkg/duration"
	"github.com/vulnboard/vulnboard/pkg/estimate"
)

type durationRequest struct {
	Value string `json:"value"`
}

type durationResponse struct {
	ISO8601      string  `json:"iso8601"`
	Human        string  `json:"human"`
	TotalSeconds float64 `json:"total_seconds"`
}

func newDurationResponse(d duration.Duration) durationResponse {
	return durationResponse{
		ISO8601:      d.FormatISO8601(),
		Human:        d.FormatHumanShort(),
		TotalSeconds: d.TotalSeconds(),
	}
}

type estimateRequest struct {
	Optimistic  string `json:"optimistic"`
	Likely      string `json:"likely"`
	Pessimistic string `json:"pessimistic"`
}

type estimateResponse struct {
	Optimistic    durationResponse `json:"optimistic"`
	Likely        durationResponse `json:"likely"`
	Pessimistic   durationResponse `json:"pessimistic"`
	Expected      durationResponse `json:"expected"`
	StdDevSeconds float64          `json:"std_dev_seconds"`
}

func newEstimateResponse(e estimate.Estimate) estimateResponse {
	return estimateResponse{
		Optimistic:    newDurationResponse(e.Optimistic),
		Likely:        newDurationResponse(e.Likely),
		Pessimistic:   newDurationResponse(e.Pessimistic),
		Expected:      newDurationResponse(e.Expected()),
		StdDevSeconds: e.StdDev(),
	}
}

func postDuration(c *fiber.Ctx) error {
	var req durationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	d, err := duration.New(req.Value)
	if err != nil {
		return badRequest(c, err)
	}
	return c.JSON(newDurationResponse(d))
}

func parseEstimate(c *fiber.Ctx) (estimate.Estimate, error) {
	var req estimateRequest
	if err := c.BodyParser(&req); err != nil {
		return estimate.Estimate{}, err
	}
	e, err := estimate.New(req.Optimistic, req.Likely, req.Pessimistic)
	if err != nil {
		return estimate.Estimate{}, err
	}
	if err = e.Validate(); err != nil {
		return estimate.Estimate{}, err
	}
	return e, nil
}

func postEstimate(c *fiber.Ctx) error {
	e, err := parseEstimate(c)
	if err != nil {
		return badRequest(c, err)
	}
	return c.JSON(newEstimateResponse(e))
}

func (s Server) putEstimate(c *fiber.Ctx) error {
	e, err := parseEstimate(c)
	if err != nil {
		return badRequest(c, err)
	}
	vulnID := c.Params("vuln")
	err = s.dbc.BatchUpdate(func(tx *bolt.Tx) error {
		return s.dbc.PutEstimate(tx, vulnID, e)
	})
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(newEstimateResponse(e))
}

func (s Server) getEstimate(c *fiber.Ctx) error {
	vulnID := c.Params("vuln")
	e, err := s.dbc.GetEstimate(vulnID)
	if xerrors.Is(err, db.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	} else if err != nil {
		return internalError(c, err)
	}
	return c.JSON(newEstimateResponse(e))
}
