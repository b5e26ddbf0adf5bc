package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/babelink/errors"
)

// DataResponse is the success envelope returned by /invoke.
type DataResponse struct {
	Data any `json:"data"`
}

// RespondWithError writes err as an error envelope. AppErrors keep their
// status and code; anything else becomes INTERNAL_ERROR.
func RespondWithError(c *gin.Context, err error) {
	appErr := apperrors.Wrap(err)
	status := appErr.HTTPStatus
	if status == 0 {
		status = http.StatusInternalServerError
	}
	c.JSON(status, appErr.ToResponse())
}

// RespondOK sends a 200 response wrapping data.
func RespondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, DataResponse{Data: data})
}
