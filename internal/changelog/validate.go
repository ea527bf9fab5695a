package changelog

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/thoreinstein/changelint/internal/errors"
	"github.com/thoreinstein/changelint/internal/validator"
)

// DefaultConcurrency bounds how many change sets are validated at once.
const DefaultConcurrency = 4

// Validator checks a ChangeLog against a target database.
type Validator struct {
	target      validator.Capability
	concurrency int
	mode        validator.RenderMode
	logger      *slog.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithTarget sets the database change sets are validated against.
// Without it the target is unknown.
func WithTarget(target validator.Capability) Option {
	return func(v *Validator) {
		v.target = target
	}
}

// WithConcurrency bounds the number of change sets validated in parallel.
// Values below one fall back to DefaultConcurrency.
func WithConcurrency(n int) Option {
	return func(v *Validator) {
		if n > 0 {
			v.concurrency = n
		}
	}
}

// WithRenderMode sets the render mode of the returned result.
func WithRenderMode(mode validator.RenderMode) Option {
	return func(v *Validator) {
		v.mode = mode
	}
}

// WithLogger sets the logger used for progress output.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// NewValidator creates a Validator.
func NewValidator(opts ...Option) *Validator {
	v := &Validator{
		concurrency: DefaultConcurrency,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate checks every change set in cl and merges the outcomes into one
// result, scoped by change set identity and in changelog order regardless
// of which change set finished first.
//
// The only error returned is the context's, when it is cancelled before
// all change sets are checked.
func (v *Validator) Validate(ctx context.Context, cl *ChangeLog) (*validator.Result, error) {
	results := make([]*validator.Result, len(cl.ChangeSets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(v.concurrency)
	for i, cs := range cl.ChangeSets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = v.validateChangeSet(cs)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "validating changelog")
	}

	out := validator.New(validator.WithRenderMode(v.mode))
	seen := make(map[string]bool, len(cl.ChangeSets))
	for i, cs := range cl.ChangeSets {
		out.AddAllScoped(results[i], cs)

		if cs.ID == nil {
			continue
		}
		id := cs.String()
		if seen[id] {
			out.AddError(fmt.Sprintf("duplicate change set identifier, %s", id))
		}
		seen[id] = true
	}

	v.logger.Info("validated changelog",
		"path", cl.Path,
		"change_sets", len(cl.ChangeSets),
		"errors", len(out.Errors()),
		"warnings", len(out.Warnings()),
	)
	return out, nil
}

func (v *Validator) validateChangeSet(cs *ChangeSet) *validator.Result {
	r := validator.New()
	r.CheckRequiredField("id", cs.ID)
	r.CheckRequiredField("author", cs.Author)
	for _, name := range cs.unknownDBMS() {
		r.AddWarning(fmt.Sprintf("dbms %q is not a known database", name))
	}

	if !cs.AppliesTo(v.target) {
		v.logger.Debug("skipping change set", "change_set", cs.String(), "dbms", cs.DBMS)
		return r
	}

	r.CheckRequiredField("changes", cs.Changes)
	for _, c := range cs.Changes {
		r.AddAll(c.Validate(v.target))
	}

	v.logger.Debug("validated change set",
		"change_set", cs.String(),
		"changes", len(cs.Changes),
		"errors", len(r.Errors()),
		"warnings", len(r.Warnings()),
	)
	return r
}
