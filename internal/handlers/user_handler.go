package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/maozinhas/api/internal/models"
	"github.com/maozinhas/api/internal/services"
)

// CreateUser registers a seeker account. Workers register through POST /workers.
func CreateUser(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in models.CreateSeekerInput
		if err := bindJSON(c, &in); err != nil {
			respondError(c, "user", err)
			return
		}

		user, err := u.CreateSeeker(c.Request.Context(), in)
		if err != nil {
			respondError(c, "user", err)
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(user, "user created"))
	}
}

// FindUser serves GET /users?uid=.
func FindUser(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := strings.TrimSpace(c.Query("uid"))
		if uid == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("uid is required"))
			return
		}
		user, err := u.GetByAuthID(c.Request.Context(), uid)
		if err != nil {
			respondError(c, "user", err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(user, ""))
	}
}

func GetUser(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := u.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
		if err != nil {
			respondError(c, "user", err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(user, ""))
	}
}

func UpdateUser(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch models.UserPatch
		if err := bindJSON(c, &patch); err != nil {
			respondError(c, "user", err)
			return
		}

		user, err := u.Update(c.Request.Context(), strings.TrimSpace(c.Param("id")), &patch)
		if err != nil {
			respondError(c, "user", err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(user, "user updated"))
	}
}

func ListSearchHistory(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		history, err := u.SearchHistory(c.Request.Context(), strings.TrimSpace(c.Param("id")))
		if err != nil {
			respondError(c, "user", err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(history, ""))
	}
}

func AddSearchHistory(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Category   models.Category `json:"category"`
			PostalCode string          `json:"postalCode"`
		}
		if err := bindJSON(c, &req); err != nil {
			respondError(c, "user", err)
			return
		}

		if err := u.AddSearch(c.Request.Context(), strings.TrimSpace(c.Param("id")), req.Category, req.PostalCode); err != nil {
			respondError(c, "user", err)
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(nil, "search recorded"))
	}
}
