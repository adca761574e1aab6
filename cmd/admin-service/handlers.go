package main

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/MikeMC777/ordenes-admin/docs"
	"github.com/MikeMC777/ordenes-admin/internal/cleanup"
	"github.com/MikeMC777/ordenes-admin/internal/httpx"
	"github.com/MikeMC777/ordenes-admin/internal/lock"
	"github.com/MikeMC777/ordenes-admin/internal/order"
	"github.com/MikeMC777/ordenes-admin/internal/proof"
)

type app struct {
	views   *order.Assembler
	status  *order.StatusManager
	proofs  proof.Repository
	cleanup *cleanup.Orchestrator
	locker  lock.Locker
	now     func() time.Time
}

func newRouter(a app) *gin.Engine {
	r := gin.New()
	r.Use(httpx.RequestID(), httpx.Logger(), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		orders := v1.Group("/orders")
		orders.GET("", listOrdersHandler(a.views, a.now))
		orders.GET("/years", listYearsHandler(a.views, a.now))
		orders.GET("/statuses", listStatusesHandler(a.status))
		orders.GET("/:id", getOrderHandler(a.views))
		orders.PUT("/:id/status", updateOrderStatusHandler(a.status, a.locker))
		orders.GET("/:id/proofs", listProofsHandler(a.proofs))
		orders.DELETE("/:id", deleteOrderHandler(a.cleanup, a.locker))
	}
	return r
}

// listOrdersHandler godoc
// @Summary  List orders for the dashboard
// @Tags     orders
// @Produce  json
// @Param    filter  query  string  false  "all, daily, monthly, yearly or custom"
// @Param    year    query  int     false  "year for the yearly filter"
// @Param    start   query  string  false  "custom range start (YYYY-MM-DD)"
// @Param    end     query  string  false  "custom range end (YYYY-MM-DD)"
// @Param    date    query  string  false  "single day for the custom filter (YYYY-MM-DD)"
// @Param    status  query  []string false "restrict to these statuses"
// @Param    limit   query  int     false  "page size inside the filter window (default 200, max 500)"
// @Param    offset  query  int     false  "rows to skip inside the filter window"
// @Success  200  {object}  order.ListResponse
// @Failure  400  {object}  httpx.HTTPError
// @Failure  500  {object}  httpx.HTTPError
// @Router   /orders [get]
func listOrdersHandler(views *order.Assembler, now func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		var fq order.FilterQuery
		if err := c.ShouldBindQuery(&fq); err != nil {
			httpx.Fail(c, &order.ValidationError{Field: "query", Reason: err.Error()})
			return
		}
		spec, err := order.ParseFilterSpec(fq, views.Location())
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		q := order.ListQuery{}
		for _, s := range c.QueryArray("status") {
			q.Statuses = append(q.Statuses, order.Status(s))
		}
		if q.Limit, err = queryInt(c, "limit"); err != nil {
			httpx.Fail(c, err)
			return
		}
		if q.Offset, err = queryInt(c, "offset"); err != nil {
			httpx.Fail(c, err)
			return
		}

		rows, err := views.List(c.Request.Context(), q, spec, now())
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, order.ListResponse{Filter: spec.Kind, Count: len(rows), Items: rows})
	}
}

// listYearsHandler godoc
// @Summary  Years offered by the yearly filter
// @Tags     orders
// @Produce  json
// @Success  200  {object}  order.YearsResponse
// @Router   /orders/years [get]
func listYearsHandler(views *order.Assembler, now func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, order.YearsResponse{Years: order.YearOptions(now().In(views.Location()))})
	}
}

// listStatusesHandler godoc
// @Summary  Configured order statuses
// @Tags     orders
// @Produce  json
// @Success  200  {object}  order.StatusesResponse
// @Router   /orders/statuses [get]
func listStatusesHandler(mgr *order.StatusManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, order.StatusesResponse{Statuses: mgr.Allowed().Values()})
	}
}

// getOrderHandler godoc
// @Summary  Get one order with its items
// @Tags     orders
// @Produce  json
// @Param    id   path  int  true  "order id"
// @Success  200  {object}  order.View
// @Failure  400  {object}  httpx.HTTPError
// @Failure  404  {object}  httpx.HTTPError
// @Router   /orders/{id} [get]
func getOrderHandler(views *order.Assembler) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		v, err := views.Get(c.Request.Context(), id)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, v)
	}
}

// updateOrderStatusHandler godoc
// @Summary  Change the status of an order
// @Tags     orders
// @Accept   json
// @Produce  json
// @Param    id    path  int                        true  "order id"
// @Param    body  body  order.UpdateStatusRequest  true  "new status"
// @Success  200  {object}  order.UpdateStatusRequest
// @Failure  400  {object}  httpx.HTTPError
// @Failure  404  {object}  httpx.HTTPError
// @Failure  409  {object}  httpx.HTTPError
// @Failure  500  {object}  httpx.HTTPError
// @Router   /orders/{id}/status [put]
func updateOrderStatusHandler(mgr *order.StatusManager, locker lock.Locker) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		var req order.UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, &order.ValidationError{Field: "body", Reason: "invalid json"})
			return
		}

		unlock, err := locker.TryLock(c.Request.Context(), orderLockKey(id))
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		defer unlock()

		if err := mgr.SetStatus(c.Request.Context(), id, req.Status); err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id, "status": req.Status})
	}
}

// listProofsHandler godoc
// @Summary  Payment proofs attached to an order
// @Tags     proofs
// @Produce  json
// @Param    id   path  int  true  "order id"
// @Success  200  {array}   proof.Proof
// @Failure  400  {object}  httpx.HTTPError
// @Failure  500  {object}  httpx.HTTPError
// @Router   /orders/{id}/proofs [get]
func listProofsHandler(proofs proof.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		out, err := proofs.ListByOrder(c.Request.Context(), id)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// deleteResponse is the aggregate outcome of a cascade delete.
type deleteResponse struct {
	Message string          `json:"message" example:"2 of 3 proofs cleaned up; order deleted"`
	Stage   cleanup.Stage   `json:"failed_stage,omitempty"`
	Error   string          `json:"error,omitempty"`
	Report  *cleanup.Report `json:"report,omitempty"`
}

// deleteOrderHandler godoc
// @Summary  Delete an order and its payment proofs
// @Description Proofs are removed one by one (blob, then row); failures are reported per proof. The order row is removed last.
// @Tags     orders
// @Produce  json
// @Param    id   path  int  true  "order id"
// @Success  200  {object}  deleteResponse
// @Failure  400  {object}  httpx.HTTPError
// @Failure  404  {object}  deleteResponse
// @Failure  409  {object}  httpx.HTTPError
// @Failure  500  {object}  deleteResponse
// @Router   /orders/{id} [delete]
func deleteOrderHandler(orch *cleanup.Orchestrator, locker lock.Locker) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		unlock, err := locker.TryLock(c.Request.Context(), orderLockKey(id))
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		defer unlock()

		rep, err := orch.DeleteOrder(c.Request.Context(), id)
		if err == nil {
			c.JSON(http.StatusOK, deleteResponse{Message: rep.Summary(), Report: rep})
			return
		}

		_ = c.Error(err)
		var fe *cleanup.FatalError
		if !errors.As(err, &fe) {
			c.JSON(http.StatusInternalServerError, deleteResponse{Error: err.Error()})
			return
		}
		msg := fe.Summary()
		if rep != nil {
			msg = rep.Summary()
		}
		code := http.StatusInternalServerError
		if errors.Is(err, order.ErrNotFound) {
			code = http.StatusNotFound
		}
		c.JSON(code, deleteResponse{Message: msg, Stage: fe.Stage, Error: err.Error(), Report: rep})
	}
}

// queryInt reads an optional non-negative integer query value; absent means 0.
func queryInt(c *gin.Context, name string) (int, error) {
	v := c.Query(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, &order.ValidationError{Field: name, Value: v, Reason: "must be a non-negative integer"}
	}
	return n, nil
}

func orderLockKey(id int64) string { return "order:" + strconv.FormatInt(id, 10) }
