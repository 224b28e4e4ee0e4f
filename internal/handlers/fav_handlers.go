package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/maozinhas/api/internal/models"
	"github.com/maozinhas/api/internal/services"
)

type favouriteRequest struct {
	WorkerID string `json:"workerId"`
}

// ListFavourites returns the favourite worker ids, or the worker records with ?expand=true.
func ListFavourites(f *services.FavouriteService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := strings.TrimSpace(c.Param("id"))

		if c.Query("expand") == "true" {
			workers, err := f.ListResolved(c.Request.Context(), userId)
			if err != nil {
				respondError(c, "user", err)
				return
			}
			c.JSON(http.StatusOK, models.SuccessResponse(workers, ""))
			return
		}

		ids, err := f.List(c.Request.Context(), userId)
		if err != nil {
			respondError(c, "user", err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(ids, ""))
	}
}

func AddToFavourites(f *services.FavouriteService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req favouriteRequest
		if err := bindJSON(c, &req); err != nil {
			respondError(c, "user", err)
			return
		}

		if err := f.Add(c.Request.Context(), strings.TrimSpace(c.Param("id")), req.WorkerID); err != nil {
			respondError(c, "user", err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "worker added to favourites"))
	}
}

// RemoveFromFavourite reads workerId from the body, falling back to the query string.
func RemoveFromFavourite(f *services.FavouriteService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req favouriteRequest
		if err := bindJSON(c, &req); err != nil {
			respondError(c, "user", err)
			return
		}
		if req.WorkerID == "" {
			req.WorkerID = c.Query("workerId")
		}

		if err := f.Remove(c.Request.Context(), strings.TrimSpace(c.Param("id")), req.WorkerID); err != nil {
			respondError(c, "user", err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "worker removed from favourites"))
	}
}
