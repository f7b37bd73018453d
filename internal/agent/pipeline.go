package agent

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"inspector/internal/logging"
	reviewcontext "inspector/internal/review/context"
	"inspector/internal/review/ports"
	"inspector/internal/tools"
	"inspector/internal/tools/builtin"
)

// Result is the outcome of a full inspection run.
type Result struct {
	ActorName string
	Report    string
	Leaves    LeafReports
	Usage     ports.TokenUsage
}

// Pipeline wires the specialist tasks and the final aggregation. The four
// leaf tasks run in parallel with disjoint tool sets; a leaf failure degrades
// its axis to N/A instead of failing the run. Only the up-front actor
// resolution is fatal.
type Pipeline struct {
	engine  *Engine
	api     builtin.BuildSource
	source  *reviewcontext.SourceAdapter
	pricing *reviewcontext.PricingAdapter
	search  *reviewcontext.SearchAdapter
	logger  logging.Logger
}

// NewPipeline builds the inspection pipeline.
func NewPipeline(
	llm ports.LLMClient,
	api builtin.BuildSource,
	source *reviewcontext.SourceAdapter,
	pricing *reviewcontext.PricingAdapter,
	search *reviewcontext.SearchAdapter,
	logger logging.Logger,
) *Pipeline {
	logger = logging.OrNop(logger)
	return &Pipeline{
		engine:  NewEngine(llm, logger),
		api:     api,
		source:  source,
		pricing: pricing,
		search:  search,
		logger:  logger,
	}
}

// Run inspects the named actor and returns the final report.
func (p *Pipeline) Run(ctx context.Context, actorName string, pedantic bool) (*Result, error) {
	identity, err := p.api.ResolveIdentity(ctx, actorName)
	if err != nil {
		return nil, err
	}
	build, err := p.api.LatestBuild(ctx, identity)
	if err != nil {
		return nil, err
	}
	session := &builtin.Session{API: p.api, Identity: identity, Build: build}

	registries, err := p.roleRegistries(session)
	if err != nil {
		return nil, err
	}

	type leaf struct {
		label  string
		task   Task
		report *string
	}
	result := &Result{ActorName: actorName}
	leaves := []leaf{
		{"code quality", CodeQualityTask(actorName, pedantic), &result.Leaves.CodeQuality},
		{"actor quality", ActorQualityTask(actorName, pedantic), &result.Leaves.ActorQuality},
		{"uniqueness", UniquenessTask(actorName, pedantic), &result.Leaves.Uniqueness},
		{"pricing", PricingTask(actorName, pedantic), &result.Leaves.Pricing},
	}

	usages := make([]ports.TokenUsage, len(leaves))
	g, gctx := errgroup.WithContext(ctx)
	for i, l := range leaves {
		i, l := i, l
		g.Go(func() error {
			taskResult, err := p.engine.Run(gctx, l.task, registries[l.task.Role.Key])
			if err != nil {
				p.logger.Warn("%s evaluation failed: %v", l.label, err)
				*l.report = fmt.Sprintf(
					"The %s evaluation could not be completed (%v). Grade this category as \"N/A\".",
					l.label, err)
				return nil
			}
			*l.report = taskResult.Report
			usages[i] = taskResult.Usage
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, usage := range usages {
		result.Usage.Add(usage)
	}

	finalResult, err := p.engine.Run(ctx, FinalTask(actorName, pedantic, result.Leaves), nil)
	if err != nil {
		return nil, fmt.Errorf("final assessment: %w", err)
	}
	result.Usage.Add(finalResult.Usage)
	result.Report = finalResult.Report

	p.logger.Info("inspection of %s finished, %d tokens used", actorName, result.Usage.TotalTokens)
	return result, nil
}

// roleRegistries builds the per-role tool sets. Each role can reach only the
// tools listed here.
func (p *Pipeline) roleRegistries(session *builtin.Session) (map[string]*tools.Registry, error) {
	codeQuality, err := tools.NewRegistry(
		builtin.NewCodeContext(session, p.source),
	)
	if err != nil {
		return nil, err
	}
	actorQuality, err := tools.NewRegistry(
		builtin.NewActorReadme(session),
		builtin.NewActorInputSchema(session),
	)
	if err != nil {
		return nil, err
	}
	uniqueness, err := tools.NewRegistry(
		builtin.NewActorReadme(session),
		builtin.NewSearchRelatedActors(p.search),
	)
	if err != nil {
		return nil, err
	}
	pricing, err := tools.NewRegistry(
		builtin.NewActorPricing(p.pricing),
		builtin.NewSearchRelatedActors(p.search),
		builtin.NewPlatformPricing(),
	)
	if err != nil {
		return nil, err
	}
	return map[string]*tools.Registry{
		codeQualityRole.Key:  codeQuality,
		actorQualityRole.Key: actorQuality,
		uniquenessRole.Key:   uniqueness,
		pricingRole.Key:      pricing,
	}, nil
}
