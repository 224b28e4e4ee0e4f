package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/maozinhas/api/internal/models"
	"github.com/maozinhas/api/internal/services"
)

type workerListQuery struct {
	models.SearchFilters
	UID      string   `form:"uid"`
	Featured bool     `form:"featured"`
	Nearby   bool     `form:"nearby"`
	Limit    int      `form:"limit"`
	Page     int      `form:"page"`
	PageSize int      `form:"pageSize"`
	Lat      *float64 `form:"lat"`
	Lng      *float64 `form:"lng"`
	RadiusKm float64  `form:"radiusKm"`
}

// splitSubServices accepts both repeated params and comma-separated values.
func splitSubServices(values []string) []string {
	var out []string
	for _, v := range values {
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// ListWorkers serves GET /workers. uid, featured and nearby select the
// lookup, featured and nearby listings; otherwise it runs a filtered search.
func ListWorkers(ws *services.WorkerService, ss *services.SearchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q workerListQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid query parameters"))
			return
		}
		ctx := c.Request.Context()

		switch {
		case strings.TrimSpace(q.UID) != "":
			worker, err := ws.GetByAuthID(ctx, q.UID)
			if err != nil {
				respondError(c, "worker", err)
				return
			}
			c.JSON(http.StatusOK, models.SuccessResponse(worker, ""))

		case q.Featured:
			workers, err := ss.Featured(ctx, q.Limit)
			if err != nil {
				respondError(c, "worker", err)
				return
			}
			c.JSON(http.StatusOK, models.SuccessResponse(workers, ""))

		case q.Nearby:
			nq := models.NearbyQuery{
				City:     q.City,
				State:    q.State,
				Category: q.Category,
				Limit:    q.Limit,
				RadiusKm: q.RadiusKm,
			}
			if q.Lat != nil && q.Lng != nil {
				nq.Origin = &models.Coordinates{Latitude: *q.Lat, Longitude: *q.Lng}
			}
			workers, err := ss.Nearby(ctx, nq)
			if err != nil {
				respondError(c, "worker", err)
				return
			}
			c.JSON(http.StatusOK, models.SuccessResponse(workers, ""))

		default:
			filters := q.SearchFilters
			filters.SubServices = splitSubServices(filters.SubServices)
			result, err := ss.Search(ctx, filters, q.Page, q.PageSize)
			if err != nil {
				respondError(c, "worker", err)
				return
			}
			c.JSON(http.StatusOK, models.PaginatedResponse(result))
		}
	}
}

// placeholderUID identifies self-registered workers until they link an account.
// A uid sent in the body is never trusted.
func placeholderUID(now time.Time) string {
	return fmt.Sprintf("self-%d-%s", now.UnixMilli(), uuid.NewString()[:8])
}

func CreateWorker(ws *services.WorkerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in models.CreateWorkerInput
		if err := bindJSON(c, &in); err != nil {
			respondError(c, "worker", err)
			return
		}
		in.UID = placeholderUID(time.Now())

		worker, err := ws.Create(c.Request.Context(), in)
		if err != nil {
			respondError(c, "worker", err)
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(worker, "worker registered, awaiting approval"))
	}
}

// GetWorker returns the worker and counts a view. A failed increment is logged only.
func GetWorker(ws *services.WorkerService, stats *services.StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.Param("id"))
		worker, err := ws.GetByID(c.Request.Context(), id)
		if err != nil {
			respondError(c, "worker", err)
			return
		}
		if err := stats.IncrementViews(c.Request.Context(), id); err != nil {
			_ = c.Error(err)
		}
		c.JSON(http.StatusOK, models.SuccessResponse(worker, ""))
	}
}

func UpdateWorker(ws *services.WorkerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch models.WorkerPatch
		if err := bindJSON(c, &patch); err != nil {
			respondError(c, "worker", err)
			return
		}

		worker, err := ws.Update(c.Request.Context(), strings.TrimSpace(c.Param("id")), &patch)
		if err != nil {
			respondError(c, "worker", err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(worker, "worker updated"))
	}
}

func ContactWorker(ws *services.WorkerService, stats *services.StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.Param("id"))
		if _, err := ws.GetByID(c.Request.Context(), id); err != nil {
			respondError(c, "worker", err)
			return
		}
		if err := stats.IncrementContacts(c.Request.Context(), id); err != nil {
			respondError(c, "worker", err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "contact registered"))
	}
}

func AddPortfolio(ws *services.WorkerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Media []string `json:"media"`
		}
		if err := bindJSON(c, &req); err != nil {
			respondError(c, "worker", err)
			return
		}

		worker, err := ws.AddPortfolio(c.Request.Context(), strings.TrimSpace(c.Param("id")), req.Media)
		if err != nil {
			respondError(c, "worker", err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(worker, "portfolio updated"))
	}
}

// SetWorkerStatus is the moderation endpoint.
func SetWorkerStatus(ws *services.WorkerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Status   models.WorkerStatus `json:"status"`
			Verified *bool               `json:"verified"`
		}
		if err := bindJSON(c, &req); err != nil {
			respondError(c, "worker", err)
			return
		}

		worker, err := ws.SetStatus(c.Request.Context(), strings.TrimSpace(c.Param("id")), req.Status, req.Verified)
		if err != nil {
			respondError(c, "worker", err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(worker, "worker status updated"))
	}
}
