// @title        Orders admin API
// @version      1.0
// @description  Review orders, change their status and delete them with their payment proofs.
// @BasePath     /api/v1
package main

//go:generate swag init -g main.go -d .,../../internal -o ../../docs

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/ordenes-admin/internal/blob"
	"github.com/MikeMC777/ordenes-admin/internal/cleanup"
	"github.com/MikeMC777/ordenes-admin/internal/config"
	"github.com/MikeMC777/ordenes-admin/internal/database"
	"github.com/MikeMC777/ordenes-admin/internal/health"
	"github.com/MikeMC777/ordenes-admin/internal/lock"
	"github.com/MikeMC777/ordenes-admin/internal/order"
	"github.com/MikeMC777/ordenes-admin/internal/proof"
)

func main() {
	cfg := config.Load()
	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := database.Open(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()
	if err := database.InitSchema(ctx, pool); err != nil {
		log.Fatal(err)
	}

	orders := order.NewPGRepo(pool)
	proofs := proof.NewPGRepo(pool)
	blobs := blob.NewHTTPStore(cfg.StorageURL, cfg.StorageBucket, cfg.StorageKey)

	deps := []health.Pinger{pool}
	var locker lock.Locker = lock.NewLocal()
	if cfg.RedisAddr != "" {
		rl := lock.NewRedis(cfg.RedisAddr, "ordenes-admin", cfg.LockTTL)
		defer rl.Close()
		locker = rl
		deps = append(deps, rl)
	}

	a := app{
		views:   order.NewAssembler(orders, cfg.Location()),
		status:  order.NewStatusManager(orders, order.ParseStatusSet(cfg.OrderStatuses)),
		proofs:  proofs,
		cleanup: cleanup.New(orders, proofs, blobs, blob.PublicPrefix(cfg.StorageBucket)),
		locker:  locker,
		now:     time.Now,
	}

	hs := health.NewServer(deps...)
	go hs.Watch(ctx, 15*time.Second)
	gl, err := net.Listen("tcp", cfg.HealthGRPCAddr)
	if err != nil {
		log.Fatal(err)
	}
	go func() {
		log.Printf("admin-service grpc health listening on %s", cfg.HealthGRPCAddr)
		if err := hs.Serve(gl); err != nil {
			log.Printf("grpc health server: %v", err)
		}
	}()

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: newRouter(a)}
	go func() {
		log.Printf("admin-service listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
	hs.Stop()
}
