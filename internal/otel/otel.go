package otel

import (
	"context"
	"sync"

	eventbus "github.com/TheRealReal/graphql-client/internal/eventbus"
	events "github.com/TheRealReal/graphql-client/internal/events"
	reqid "github.com/TheRealReal/graphql-client/internal/reqid"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
)

// Setup configures OpenTelemetry and attaches eventbus subscribers.
// If endpoint is empty, no telemetry is configured.
func Setup(endpoint, service string) (func(context.Context) error, error) {
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}
	exp, err := otlptracegrpc.New(context.Background(),
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithDialOption(grpc.WithInsecure()))
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(service),
		)),
	)
	otel.SetTracerProvider(tp)

	sub := &subscriber{tracer: otel.Tracer("graphql-client")}
	sub.register()

	return tp.Shutdown, nil
}

type subscriber struct {
	tracer        trace.Tracer
	batchSpans    sync.Map // batch name -> trace.Span
	dispatchSpans sync.Map // rid -> trace.Span
}

func (s *subscriber) register() {
	eventbus.Subscribe(func(ctx context.Context, e events.BatchStart) {
		_, span := s.tracer.Start(ctx, "graphql.batch")
		span.SetAttributes(
			attribute.String("graphql.batch.name", e.Name),
			attribute.Int("graphql.batch.size", e.Size),
		)
		s.batchSpans.Store(e.Name, span)
	})

	eventbus.Subscribe(func(ctx context.Context, e events.BatchFinish) {
		v, ok := s.batchSpans.LoadAndDelete(e.Name)
		if !ok {
			return
		}
		span := v.(trace.Span)
		if e.Err != nil {
			span.RecordError(e.Err)
		}
		span.End()
	})

	eventbus.Subscribe(func(ctx context.Context, e events.DispatchStart) {
		rid, _ := reqid.FromContext(ctx)
		_, span := s.tracer.Start(ctx, "graphql.dispatch")
		span.SetAttributes(
			attribute.String("graphql.operation.name", e.OperationName),
			attribute.String("graphql.operation.type", e.OperationType),
		)
		s.dispatchSpans.Store(rid, span)
	})

	eventbus.Subscribe(func(ctx context.Context, e events.DispatchFinish) {
		rid, _ := reqid.FromContext(ctx)
		v, ok := s.dispatchSpans.LoadAndDelete(rid)
		if !ok {
			return
		}
		span := v.(trace.Span)
		span.SetAttributes(attribute.String("graphql.response.state", e.State))
		if e.Err != nil {
			span.RecordError(e.Err)
		}
		span.End()
	})
}
