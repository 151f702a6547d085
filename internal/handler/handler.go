package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/inkwell-hq/inkwell/internal/dto"
	"github.com/inkwell-hq/inkwell/internal/middleware"
	"github.com/inkwell-hq/inkwell/pkg/apperror"
	"github.com/inkwell-hq/inkwell/pkg/response"
)

// parseIDParam reads a UUID path parameter, writing the error response itself
// when the value is malformed.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Error(c, apperror.New(http.StatusBadRequest, "invalid "+name, apperror.ErrBadRequest))
		return uuid.Nil, false
	}
	return id, true
}

// actingUser pulls the authenticated identity set by the auth middleware.
func actingUser(c *gin.Context) (dto.AuthUser, bool) {
	user, ok := middleware.AuthUser(c)
	if !ok {
		response.Error(c, apperror.ErrUnauthorized)
		return dto.AuthUser{}, false
	}
	return user, true
}

func listPagination(params dto.ListParams, total int64) response.Pagination {
	return response.Pagination{
		TotalRecords: total,
		Limit:        params.Limit,
		Offset:       params.Offset,
	}
}
