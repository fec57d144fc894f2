package handlers

import (
	"fmt"
	"net/http"
	"time"

	"rfphub/internal/ai"
	"rfphub/internal/cache"
	"rfphub/internal/database"
	"rfphub/internal/email"
	"rfphub/internal/mailbox"
	"rfphub/internal/models"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// GenerateRFPHandler turns a free-text procurement query into a structured
// RFP payload. The extractor never fails, so the response is always a
// well-formed structure, possibly populated by the deterministic fallback.
func GenerateRFPHandler(extractor *ai.Extractor) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.GenerateRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: fmt.Sprintf("Invalid request body: %v", err),
			})
		}

		if req.Query == "" {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Query is required"})
		}

		structured := extractor.GenerateRFPStructure(c.Request().Context(), req.Query)
		return c.JSON(http.StatusOK, structured)
	}
}

// CreateRFPHandler persists a new RFP record in Draft status
func CreateRFPHandler(rfps *database.RFPService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.CreateRFPRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: fmt.Sprintf("Invalid request body: %v", err),
			})
		}

		if req.Title == "" {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Title is required"})
		}

		rfp, err := rfps.Create(c.Request().Context(), req.Title, req.OriginalQuery, req.StructuredData)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		}

		return c.JSON(http.StatusCreated, rfp)
	}
}

// ListRFPsHandler returns all RFPs, newest first
func ListRFPsHandler(rfps *database.RFPService) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := rfps.List(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusOK, list)
	}
}

// GetRFPHandler returns one RFP with its received proposals
func GetRFPHandler(rfps *database.RFPService, proposals *database.ProposalService) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		id := c.Param("id")

		rfp, err := rfps.GetByID(ctx, id)
		if err != nil {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Error: fmt.Sprintf("RFP %s not found", id)})
		}

		received, err := proposals.ListByRFP(ctx, id)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		}

		return c.JSON(http.StatusOK, models.RFPDetailResponse{RFP: rfp, Proposals: received})
	}
}

// SendRFPHandler dispatches an RFP to the selected vendors and transitions
// it to Sent. Individual delivery failures are logged and swallowed; the
// status transition happens after the batch regardless.
func SendRFPHandler(rfps *database.RFPService, vendors *database.VendorService, sender *email.Service, logger zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		id := c.Param("id")

		var req models.SendRFPRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: fmt.Sprintf("Invalid request body: %v", err),
			})
		}

		rfp, err := rfps.GetByID(ctx, id)
		if err != nil {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Error: fmt.Sprintf("RFP %s not found", id)})
		}

		recipients, err := vendors.GetByIDs(ctx, req.VendorIDs)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		}

		for _, vendor := range recipients {
			if ok := sender.SendRFP(vendor.Email, rfp); !ok {
				logger.Warn().Str("vendor", vendor.Email).Str("rfp_id", rfp.ID).Msg("RFP delivery failed")
			}
		}

		if err := rfps.UpdateStatus(ctx, id, models.StatusSent); err != nil {
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		}

		return c.JSON(http.StatusOK, map[string]string{"message": "RFPs sent successfully"})
	}
}

// CompareProposalsHandler aggregates the proposals for an RFP into a ranked
// recommendation, caching the result briefly
func CompareProposalsHandler(proposals *database.ProposalService, extractor *ai.Extractor, comparisons *cache.ComparisonCache, ttlMinutes int) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		id := c.Param("id")

		if cached, found := comparisons.Get(id); found {
			return c.JSON(http.StatusOK, cached)
		}

		received, err := proposals.ListByRFP(ctx, id)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		}

		comparison := extractor.CompareProposals(ctx, received)
		comparisons.Set(id, comparison, time.Duration(ttlMinutes)*time.Minute)

		return c.JSON(http.StatusOK, comparison)
	}
}

// CheckEmailsHandler runs one reply-ingestion poll cycle. The response is
// always 200; a failed cycle is reported through the status field rather
// than an error status so callers keep a uniform surface.
func CheckEmailsHandler(poller *mailbox.Poller, logger zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		count, err := poller.Poll(c.Request().Context())

		status := "ok"
		if err != nil {
			// Poll already logged the cause; surface only that the cycle
			// failed
			status = "failed"
		}

		return c.JSON(http.StatusOK, models.CheckEmailsResponse{
			Message: fmt.Sprintf("Emails checked. Found %d new replies.", count),
			Count:   count,
			Status:  status,
		})
	}
}
