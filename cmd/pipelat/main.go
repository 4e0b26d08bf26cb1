// Command pipelat estimates end-to-end latency of multi-stage compute
// pipelines. It either evaluates a single JSON pipeline definition and
// prints a report, or serves the estimation API over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pipelat/pipelat/config"
	"github.com/pipelat/pipelat/loader"
	"github.com/pipelat/pipelat/logger"
	"github.com/pipelat/pipelat/observability"
	"github.com/pipelat/pipelat/report"
	"github.com/pipelat/pipelat/resource"
	"github.com/pipelat/pipelat/server"
	"github.com/pipelat/pipelat/stages"
	"github.com/pipelat/pipelat/version"
)

func main() {
	var (
		definitionPath = flag.String("f", "", "pipeline definition JSON file to estimate")
		profilesDir    = flag.String("profiles", "", "directory of hardware profile YAML files (overrides config)")
		configFile     = flag.String("config", "", "configuration file path")
		serve          = flag.Bool("serve", false, "serve the estimation API over HTTP")
		timeline       = flag.Bool("timeline", false, "render an ASCII timeline with the report")
		showVersion    = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Short())
		return
	}

	var opts []config.LoaderOption
	if *configFile != "" {
		opts = append(opts, config.WithConfigFile(*configFile))
	}
	cfg, err := config.LoadApp(opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *profilesDir != "" {
		cfg.Profiles = *profilesDir
	}

	logger.Init(cfg.Logger)
	log := logger.GetGlobalLogger()

	resources := resource.NewRegistry()
	if cfg.Profiles != "" {
		if err := resources.LoadDir(cfg.Profiles); err != nil {
			log.WithError(err).Error("Failed to load hardware profiles", logger.F{
				logger.FieldPath: cfg.Profiles,
			})
			os.Exit(1)
		}
	}
	stageReg := stages.Builtin()

	switch {
	case *serve:
		runServer(cfg, resources, stageReg, log)
	case *definitionPath != "":
		if err := runOnce(*definitionPath, resources, stageReg, *timeline); err != nil {
			log.WithError(err).Error("Estimation failed")
			os.Exit(1)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}

// runOnce estimates a single definition file and renders the report to
// stdout.
func runOnce(path string, resources *resource.Registry, stageReg *stages.Registry, timeline bool) error {
	def, err := loader.Load(path)
	if err != nil {
		return err
	}
	p, err := loader.Build(def, resources, stageReg)
	if err != nil {
		return err
	}
	if _, err := p.Run(context.Background()); err != nil {
		return err
	}
	summary, err := p.Summary()
	if err != nil {
		return err
	}

	if err := report.Render(os.Stdout, summary); err != nil {
		return err
	}
	if timeline {
		fmt.Println()
		if err := report.RenderTimeline(os.Stdout, summary, 60); err != nil {
			return err
		}
	}
	return nil
}

// runServer starts the HTTP estimation service and blocks until SIGINT or
// SIGTERM.
func runServer(cfg config.App, resources *resource.Registry, stageReg *stages.Registry, log *logger.Logger) {
	ctx := context.Background()

	provider, err := observability.Init(ctx, cfg.Observability)
	if err != nil {
		log.WithError(err).Error("Failed to initialize observability")
		os.Exit(1)
	}
	defer func() {
		if err := provider.Shutdown(ctx); err != nil {
			log.WithError(err).Warn("Observability shutdown error")
		}
	}()

	var metrics *observability.Metrics
	if cfg.Observability.Enabled {
		metrics, err = observability.NewMetrics(observability.Meter("pipelat"))
		if err != nil {
			log.WithError(err).Error("Failed to create metrics instruments")
			os.Exit(1)
		}
	}

	cfg.Server.ApplyDefaults()
	if err := cfg.Server.Validate(); err != nil {
		log.WithError(err).Error("Invalid server configuration")
		os.Exit(1)
	}

	srv := server.New(cfg.Server, log)
	srv.ApplyDefaults("pipelat", func(context.Context) []observability.Health {
		return []observability.Health{
			{Name: "profiles", Status: profilesHealth(resources)},
			{Name: "stages", Status: observability.HealthStatusUp},
		}
	})

	svc := server.NewEstimateService(resources, stageReg, metrics, log)
	svc.RegisterRoutes(srv.GinEngine())

	if err := srv.Start(ctx); err != nil {
		log.WithError(err).Error("Failed to start server")
		os.Exit(1)
	}

	log.Info("Estimation service ready", logger.F{
		"addr":    srv.Addr(),
		"version": version.Short(),
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	if err := srv.Stop(ctx); err != nil {
		log.WithError(err).Error("Shutdown error")
		os.Exit(1)
	}
}

// profilesHealth reports degraded when no hardware profiles are loaded,
// since every estimate would then fail resolution.
func profilesHealth(resources *resource.Registry) observability.HealthStatus {
	if len(resources.Names()) == 0 {
		return observability.HealthStatusDegraded
	}
	return observability.HealthStatusUp
}
