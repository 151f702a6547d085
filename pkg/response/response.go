package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/inkwell-hq/inkwell/pkg/apperror"
)

// Pagination is the envelope block reporting totals independent of paging.
type Pagination struct {
	TotalRecords int64 `json:"total_records"`
	Limit        int   `json:"limit"`
	Offset       int   `json:"offset"`
}

// Sort echoes the applied ordering back to the client.
type Sort struct {
	Order string `json:"order"`
	Prop  string `json:"prop"`
}

type listEnvelope struct {
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
	Sort       Sort        `json:"sort"`
}

// List writes the standard paginated list envelope.
func List(c *gin.Context, data interface{}, pagination Pagination, sort Sort) {
	c.JSON(http.StatusOK, listEnvelope{
		Data:       data,
		Pagination: pagination,
		Sort:       sort,
	})
}

type listErrorItem struct {
	StatusCode int    `json:"status_code"`
	Detail     string `json:"detail"`
}

// Error writes a standardized error response
func Error(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	if code == http.StatusInternalServerError {
		zap.L().Error("internal error", zap.Error(err), zap.String("path", c.FullPath()))
	}

	if listErr, ok := err.(*apperror.ListError); ok {
		items := make([]listErrorItem, 0, len(listErr.Errors))
		for _, sub := range listErr.Errors {
			items = append(items, listErrorItem{StatusCode: sub.Code, Detail: sub.Message})
		}
		c.JSON(code, gin.H{"errors": items})
		return
	}

	c.JSON(code, gin.H{"error": err.Error()})
}
