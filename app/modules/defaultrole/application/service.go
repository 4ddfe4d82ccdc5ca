package defaultroleservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	defaultroledb "github.com/guildstone/rolekeeper-bot/app/modules/defaultrole/infrastructure/repositories"
	"github.com/guildstone/rolekeeper-bot/internal/discordgw"
	"github.com/guildstone/rolekeeper-bot/internal/observability/attr"
	defaultrolemetrics "github.com/guildstone/rolekeeper-bot/internal/observability/metrics/defaultrolemetrics"
	"github.com/guildstone/rolekeeper-bot/internal/results"
	"github.com/guildstone/rolekeeper-bot/internal/sharedtypes"
)

// DefaultRoleService implements the Service interface.
type DefaultRoleService struct {
	repo    defaultroledb.Repository
	gateway discordgw.Gateway
	logger  *slog.Logger
	metrics defaultrolemetrics.DefaultRoleMetrics
	tracer  trace.Tracer
}

// NewDefaultRoleService creates a new DefaultRoleService.
func NewDefaultRoleService(
	repo defaultroledb.Repository,
	gateway discordgw.Gateway,
	logger *slog.Logger,
	metrics defaultrolemetrics.DefaultRoleMetrics,
	tracer trace.Tracer,
) *DefaultRoleService {
	return &DefaultRoleService{
		repo:    repo,
		gateway: gateway,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
	}
}

// operationFunc is the signature for service operation functions.
type operationFunc func(ctx context.Context) (results.OperationResult, error)

// withTelemetry wraps a service operation with tracing, metrics, and panic
// recovery. This standardizes observability across all service methods.
func (s *DefaultRoleService) withTelemetry(
	ctx context.Context,
	operationName string,
	userID sharedtypes.UserID,
	op operationFunc,
) (result results.OperationResult, err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("user_id", userID.String()),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.String("user_id", userID.String()),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName)
			span.RecordError(err)
			result = results.OperationResult{}
		}
	}()

	result, err = op(ctx)
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("user_id", userID.String()),
			attr.Error(wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName)
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.Failure != nil {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("user_id", userID.String()),
			attr.Any("failure_payload", result.Failure),
		)
	}

	return result, nil
}
