package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/ianschenck/envflag"
	"go.uber.org/automaxprocs/maxprocs"
	"k8s.io/klog/v2"

	"github.com/pathwise/fsprobe/cmds"
	"github.com/pathwise/fsprobe/pkg/logger"
	"github.com/pathwise/fsprobe/pkg/observability"
)

var vendorVersion = "dev" // overridden by the linker

type configuration struct {
	// Alternative mount-table file to scan for filesystem-name lookups.
	mountsFile string

	// Address to serve prometheus metrics on; empty disables the
	// metrics server.
	metricsAddr string

	// Whether to ship traces to an OTLP collector, and on which port.
	tracingEnabled bool
	tracingPort    string
}

func loadConfig() configuration {
	var cfg configuration
	envflag.StringVar(&cfg.mountsFile, "FSPROBE_MOUNTS_FILE", "", "Mount-table file to scan instead of the platform default")
	envflag.StringVar(&cfg.metricsAddr, "FSPROBE_METRICS_ADDR", "", "Address to serve prometheus metrics on")
	envflag.BoolVar(&cfg.tracingEnabled, "FSPROBE_TRACING_ENABLED", false, "Ship traces to an OTLP collector")
	envflag.StringVar(&cfg.tracingPort, "FSPROBE_TRACING_PORT", "4318", "OTLP collector port")
	envflag.Parse()
	return cfg
}

func main() {
	klog.InitFlags(nil)
	_ = flag.Set("logtostderr", "true")
	flag.Parse()

	ctx := context.Background()
	log := logger.NewLogger(ctx)
	ctx = context.WithValue(ctx, logger.LoggerKey{}, log)

	undoMaxprocs, maxprocsError := maxprocs.Set(maxprocs.Logger(func(msg string, keysAndValues ...interface{}) {
		log.Klogr.WithValues("component", "maxprocs").V(2).Info(fmt.Sprintf(msg, keysAndValues...))
	}))
	defer undoMaxprocs()

	if maxprocsError != nil {
		log.Error(maxprocsError, "Failed to set GOMAXPROCS")
	}

	if err := handle(ctx); err != nil {
		log.Error(err, "Fatal error")
		os.Exit(1)
	}

	os.Exit(0)
}

func handle(ctx context.Context) error {
	cfg := loadConfig()

	if cfg.tracingEnabled {
		observability.InitTracer(ctx, "fsprobe", vendorVersion, cfg.tracingPort)
		defer func() {
			if observability.TracerProvider != nil {
				if err := observability.TracerProvider.Shutdown(context.Background()); err != nil {
					klog.Errorf("Failed to shut down tracer provider: %v", err)
				}
			}
		}()
	}

	if cfg.metricsAddr != "" {
		metricsCtx, stopMetrics := context.WithCancel(ctx)
		defer stopMetrics()
		go observability.StartMetricsServer(metricsCtx, cfg.metricsAddr)
	}

	rootCmd := cmds.NewRootCmd(vendorVersion, cfg.mountsFile)
	return rootCmd.ExecuteContext(ctx)
}
