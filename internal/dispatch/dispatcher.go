package dispatch

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/Animesh-Ghosh/parking-lot/internal/logging"
)

// Dispatcher turns command lines into engine calls and writes the replies
// to out, one line per message. It is not safe for concurrent use.
type Dispatcher struct {
	engine     Engine
	out        io.Writer
	tracer     trace.Tracer
	lineNumber int
}

type Option func(*Dispatcher)

func WithTracer(tracer trace.Tracer) Option {
	return func(d *Dispatcher) {
		d.tracer = tracer
	}
}

func New(engine Engine, out io.Writer, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		engine: engine,
		out:    out,
		tracer: noop.NewTracerProvider().Tracer("dispatch"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Process reads lines from src until exit, end of input, or the first
// error. Output already written for earlier lines is left in place.
func (d *Dispatcher) Process(ctx context.Context, src LineSource) error {
	ctx, span := d.tracer.Start(ctx, "shell.run")
	defer span.End()

	span.AddEvent("shell_started")

	for {
		line, ok, err := src.Next()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return fmt.Errorf("reading commands: %w", err)
		}
		if !ok {
			span.AddEvent("input_exhausted")
			return nil
		}

		done, err := d.Execute(ctx, line)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
		if done {
			span.AddEvent("shell_ended")
			return nil
		}
	}
}

// Execute runs a single line. done is true after exit.
func (d *Dispatcher) Execute(ctx context.Context, line string) (done bool, err error) {
	d.lineNumber++

	ctx, span := d.tracer.Start(ctx, "shell.process_command",
		trace.WithAttributes(
			attribute.String("command.input", line),
			attribute.Int("command.line_number", d.lineNumber),
		))
	defer span.End()

	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false, d.unknown(ctx, span, line)
	}

	name, args := parts[0], parts[1:]
	cmd, found := commands[name]
	if !found || len(args) != cmd.arity {
		return false, d.unknown(ctx, span, line)
	}
	span.SetAttributes(attribute.String("command.name", name))

	if cmd.run == nil {
		logging.Debug(ctx, "exit requested", "line", d.lineNumber)
		return true, nil
	}

	lines, err := cmd.run(ctx, d.engine, args)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logging.Warn(ctx, "command failed", "line", d.lineNumber, "command", name, "error", err)
		return false, &CommandError{LineNumber: d.lineNumber, Line: line, Err: err}
	}

	for _, l := range lines {
		if _, err := fmt.Fprintln(d.out, l); err != nil {
			return false, fmt.Errorf("writing output: %w", err)
		}
	}
	logging.Debug(ctx, "command dispatched", "line", d.lineNumber, "command", name)
	return false, nil
}

func (d *Dispatcher) unknown(ctx context.Context, span trace.Span, line string) error {
	err := &DispatchError{LineNumber: d.lineNumber, Line: line}
	span.AddEvent("unknown_command")
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	logging.Warn(ctx, "unrecognized command", "line", d.lineNumber, "input", line)
	return err
}
