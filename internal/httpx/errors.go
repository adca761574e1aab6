package httpx

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/ordenes-admin/internal/lock"
	"github.com/MikeMC777/ordenes-admin/internal/order"
	"github.com/MikeMC777/ordenes-admin/internal/proof"
)

// HTTPError represents a standard error in JSON.
// swagger:model
type HTTPError struct {
	// example: order not found
	Error string `json:"error"`
}

// StatusOf maps domain errors onto HTTP status codes.
func StatusOf(err error) int {
	var verr *order.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, order.ErrNotFound), errors.Is(err, proof.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, lock.ErrBusy):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Fail records err on the context and writes it as an HTTPError.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(StatusOf(err), HTTPError{Error: err.Error()})
}

// ParamID reads a positive integer path parameter.
func ParamID(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &order.ValidationError{Field: name, Value: raw, Reason: "must be a positive integer"}
	}
	return id, nil
}
