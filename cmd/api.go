package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	httpDelivery "reportdesk/internal/delivery/http"
	"reportdesk/internal/repository"
	"reportdesk/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Run the reportdesk HTTP API",
	RunE:  Start,
}

func Start(cmd *cobra.Command, args []string) error {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appDep, err := NewAppDependency(ctx)
	if err != nil {
		return err
	}

	repo := repository.NewRepository(appDep.db, appDep.log)
	services := service.NewService(appDep.cfg, appDep.log, appDep.db, repo, appDep.cache)
	httpHandler := httpDelivery.NewHttpAPIHandler(appDep.echo, appDep.log, appDep.validator, services)
	apiServer := NewHTTPServer(appDep, httpHandler)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(apiServer.Start)
	g.Go(func() error {
		<-gctx.Done()
		return apiServer.Stop()
	})

	err = g.Wait()
	appDep.log.Info("Received shutdown signal, shutting down gracefully")

	// Waits for any in-flight unit of work before closing the handle.
	if closeErr := services.SystemService.Close(); closeErr != nil {
		appDep.log.Error("Failed to close database", zap.Error(closeErr))
	}
	return err
}
