package server

import (
	"context"
	"io"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/pipelat/pipelat/errors"
	"github.com/pipelat/pipelat/loader"
	"github.com/pipelat/pipelat/logger"
	"github.com/pipelat/pipelat/observability"
	"github.com/pipelat/pipelat/pipeline"
	"github.com/pipelat/pipelat/resource"
	"github.com/pipelat/pipelat/stages"
)

// EstimateService exposes the latency estimation API over HTTP. Each
// estimate request builds a fresh pipeline from the posted definition, so
// concurrent requests never share mutable state.
type EstimateService struct {
	resources *resource.Registry
	stages    *stages.Registry
	metrics   *observability.Metrics
	log       *logger.Logger
}

// NewEstimateService creates the estimation API service. metrics may be nil
// when observability is disabled.
func NewEstimateService(resources *resource.Registry, stageReg *stages.Registry, metrics *observability.Metrics, log *logger.Logger) *EstimateService {
	return &EstimateService{
		resources: resources,
		stages:    stageReg,
		metrics:   metrics,
		log:       log.WithComponent("api"),
	}
}

// RegisterRoutes mounts the estimation API under /api/v1.
func (s *EstimateService) RegisterRoutes(engine *gin.Engine) {
	v1 := engine.Group("/api/v1")
	v1.POST("/estimate", s.handleEstimate)
	v1.GET("/profiles", s.handleListProfiles)
	v1.GET("/profiles/:name", s.handleGetProfile)
	v1.GET("/stages", s.handleListStages)
}

// EstimateResponse carries the run summary plus the per-group spans of every
// component.
type EstimateResponse struct {
	Summary *pipeline.Summary                `json:"summary"`
	Results map[string]pipeline.TimingResult `json:"results"`
}

func (s *EstimateService) handleEstimate(c *gin.Context) {
	ctx, span := observability.StartSpan(c.Request.Context(), observability.SpanEstimate)
	defer span.End()

	started := time.Now()

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		RespondWithError(c, apperrors.InvalidInput("body", err.Error()))
		return
	}

	def, err := loader.Parse(body)
	if err != nil {
		s.fail(c, ctx, "", started, err)
		return
	}

	p, err := loader.Build(def, s.resources, s.stages)
	if err != nil {
		s.fail(c, ctx, def.Name, started, err)
		return
	}

	if _, err := p.Run(ctx); err != nil {
		s.fail(c, ctx, def.Name, started, err)
		return
	}

	summary, err := p.Summary()
	if err != nil {
		s.fail(c, ctx, def.Name, started, err)
		return
	}
	results, err := p.Results()
	if err != nil {
		s.fail(c, ctx, def.Name, started, err)
		return
	}

	if s.metrics != nil {
		s.metrics.RecordEstimate(ctx, def.Name, "ok", summary.TotalLatency, time.Since(started))
	}
	s.log.Info("Estimate computed", logger.F{
		logger.FieldPipeline: def.Name,
		logger.FieldLatency:  summary.TotalLatency,
		logger.FieldRunID:    summary.RunID,
	})

	RespondOK(c, EstimateResponse{Summary: summary, Results: results})
}

func (s *EstimateService) fail(c *gin.Context, ctx context.Context, name string, started time.Time, err error) {
	observability.SetSpanError(ctx, err)
	if s.metrics != nil {
		code := "INTERNAL_ERROR"
		component := ""
		if appErr, ok := apperrors.AsAppError(err); ok {
			code = string(appErr.Code)
			if v, ok := appErr.Details["component"].(string); ok {
				component = v
			}
		}
		s.metrics.RecordError(ctx, code, component)
		if name != "" {
			s.metrics.RecordEstimate(ctx, name, "error", 0, time.Since(started))
		}
	}
	s.log.WithError(err).Error("Estimate failed", logger.F{
		logger.FieldPipeline: name,
	})
	RespondWithError(c, err)
}

// ProfileInfo describes one registered hardware profile.
type ProfileInfo struct {
	Name string        `json:"name"`
	Spec resource.Spec `json:"spec"`
}

func (s *EstimateService) handleListProfiles(c *gin.Context) {
	names := s.resources.Names()
	profiles := make([]ProfileInfo, 0, len(names))
	for _, name := range names {
		res, err := s.resources.Get(name)
		if err != nil {
			continue
		}
		profiles = append(profiles, ProfileInfo{Name: name, Spec: res.Spec()})
	}
	RespondOK(c, profiles)
}

func (s *EstimateService) handleGetProfile(c *gin.Context) {
	res, err := s.resources.Get(c.Param("name"))
	if err != nil {
		RespondWithError(c, err)
		return
	}
	RespondOK(c, ProfileInfo{Name: res.Name(), Spec: res.Spec()})
}

func (s *EstimateService) handleListStages(c *gin.Context) {
	RespondOK(c, gin.H{"stages": s.stages.Names()})
}
