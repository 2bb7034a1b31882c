// Package progress carries weighted progress scopes through a context so
// multi-request catalog operations can report how far along they are.
//
// A root scope is installed with WithReporter. Operations call Begin to size
// the current scope and Child to hand a slice of it to a sub-call. Scopes are
// meant for the sequential call model of the catalog client and are not safe
// for concurrent use.
package progress

import (
	"context"
)

// Reporter receives the overall completion fraction (0..1) and the name of
// the task that was last begun.
type Reporter func(fraction float64, task string)

type scopeKey struct{}

type scope struct {
	parent *scope
	work   float64 // units of parent.total this scope stands for
	total  float64
	done   float64
	task   string
	report Reporter
}

// WithReporter installs a root scope that forwards progress to r.
func WithReporter(ctx context.Context, r Reporter) context.Context {
	return context.WithValue(ctx, scopeKey{}, &scope{report: r, work: 1, total: 1})
}

func from(ctx context.Context) *scope {
	s, _ := ctx.Value(scopeKey{}).(*scope)
	return s
}

// Begin sizes the current scope to total units and names it. It returns ctx
// unchanged when no reporter is installed.
func Begin(ctx context.Context, task string, total int) context.Context {
	s := from(ctx)
	if s == nil || total <= 0 {
		return ctx
	}
	child := &scope{parent: s, work: s.total - s.done, total: float64(total), task: task}
	child.root().announce(task)
	return context.WithValue(ctx, scopeKey{}, child)
}

// Child returns a context whose scope accounts for work units of the
// current scope. Work reported inside the child is scaled accordingly.
func Child(ctx context.Context, work int) context.Context {
	s := from(ctx)
	if s == nil || work <= 0 {
		return ctx
	}
	child := &scope{parent: s, work: float64(work), total: 1}
	return context.WithValue(ctx, scopeKey{}, child)
}

// Worked records n units of progress in the current scope.
func Worked(ctx context.Context, n int) {
	if s := from(ctx); s != nil && n > 0 {
		s.advance(float64(n))
	}
}

// Done marks the current scope as complete.
func Done(ctx context.Context) {
	if s := from(ctx); s != nil {
		s.advance(s.total - s.done)
	}
}

func (s *scope) advance(n float64) {
	if s.done+n > s.total {
		n = s.total - s.done
	}
	if n <= 0 {
		return
	}
	s.done += n
	if s.parent == nil {
		if s.report != nil {
			s.report(s.done/s.total, s.task)
		}
		return
	}
	s.parent.advance(n / s.total * s.work)
}

func (s *scope) root() *scope {
	for s.parent != nil {
		s = s.parent
	}
	return s
}

func (s *scope) announce(task string) {
	if task != "" {
		s.task = task
	}
}
