package replay

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-relbuf/pkg/addedrelations"
	"github.com/dd0wney/cluso-relbuf/pkg/logging"
	"github.com/dd0wney/cluso-relbuf/pkg/metrics"
	"github.com/dd0wney/cluso-relbuf/pkg/relation"
)

// Runner replays scripts against fresh buffers
type Runner struct {
	logger  logging.Logger
	metrics *metrics.Registry
}

// NewRunner creates a runner. A nil logger discards output and a nil
// registry disables metrics.
func NewRunner(logger logging.Logger, reg *metrics.Registry) *Runner {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Runner{logger: logger, metrics: reg}
}

// session is the state of one replay: the buffer plays the part of the
// enclosing transaction's added-relations container.
type session struct {
	buf       *addedrelations.Buffer[*relation.Relation]
	relations map[string]*relation.Relation
	names     map[*relation.Relation]string
}

// Run executes every step of s in order and returns the trace. The context
// is checked between steps.
func (r *Runner) Run(ctx context.Context, s *Script) (*Trace, error) {
	id := uuid.NewString()
	logger := r.logger.With(logging.Session(id), logging.String("script", s.Name))
	timer := logging.StartTimer(logger, "replay finished")
	logger.Info("replay started", logging.Count(len(s.Steps)))

	trace, err := r.run(ctx, s, logger)
	if trace != nil {
		trace.Session = id
	}

	status := "success"
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = "cancelled"
	case err != nil:
		status = "error"
	}
	if r.metrics != nil {
		r.metrics.RecordReplay(status, timer.Elapsed())
	}

	if err != nil {
		timer.EndError(err, logging.String("status", status))
		return trace, err
	}
	timer.End(logging.String("status", status), logging.Count(len(trace.Steps)))
	return trace, nil
}

func (r *Runner) run(ctx context.Context, s *Script, logger logging.Logger) (*Trace, error) {
	sess, err := newSession(s)
	if err != nil {
		return nil, err
	}
	sess.buf.WithLogger(logger)
	if r.metrics != nil {
		sess.buf.WithMetrics(r.metrics)
	}

	trace := &Trace{Script: s.Name, Steps: make([]StepResult, 0, len(s.Steps))}
	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			trace.Stats = sess.buf.Stats()
			return trace, stepError(i+1, step.Op, err)
		}

		result, err := sess.apply(i+1, step)
		if err != nil {
			trace.Stats = sess.buf.Stats()
			return trace, err
		}
		trace.Steps = append(trace.Steps, result)
		if r.metrics != nil {
			r.metrics.RecordReplayStep(step.Op)
		}
	}
	trace.Stats = sess.buf.Stats()
	return trace, nil
}

func newSession(s *Script) (*session, error) {
	sess := &session{
		buf:       addedrelations.New[*relation.Relation](s.Config),
		relations: make(map[string]*relation.Relation),
		names:     make(map[*relation.Relation]string),
	}

	var nextID uint64
	bind := func(name string, rel *relation.Relation) {
		sess.relations[name] = rel
		sess.names[rel] = name
	}

	for _, spec := range s.Relations {
		kind, err := relation.ParseKind(spec.Kind)
		if err != nil {
			return nil, stepError(0, "", err)
		}
		nextID++
		if kind == relation.KindEdge {
			bind(spec.Name, relation.NewEdge(nextID, spec.Type, spec.Out, spec.In))
		} else {
			bind(spec.Name, relation.NewProperty(nextID, spec.Type, spec.Out, relation.ParseValue(spec.Value)))
		}
	}

	for _, g := range s.Generate {
		kind, err := relation.ParseKind(g.Kind)
		if err != nil {
			return nil, stepError(0, "", err)
		}
		for i := 1; i <= g.Count; i++ {
			nextID++
			name := g.Prefix + strconv.Itoa(i)
			v := uint64(i)
			if kind == relation.KindEdge {
				bind(name, relation.NewEdge(nextID, g.Type, v, v+1))
			} else {
				bind(name, relation.NewProperty(nextID, g.Type, v, relation.IntValue(int64(i))))
			}
		}
	}
	return sess, nil
}

func (s *session) apply(index int, step Step) (StepResult, error) {
	result := StepResult{Index: index, Op: step.Op}

	switch step.Op {
	case OpAdd, OpRemove:
		if step.Range != nil {
			result.Arg = step.Range.String()
		} else {
			result.Arg = step.Relation
		}
		for name := range step.targets() {
			rel, ok := s.relations[name]
			if !ok {
				return result, unknownRelation(index, step.Op, name)
			}
			if step.Op == OpAdd {
				s.buf.Add(rel)
			} else {
				s.buf.Remove(rel)
			}
		}
		result.Output = fmt.Sprintf("pending=%d len=%d", s.buf.Pending(), s.buf.Len())

	case OpIsEmpty:
		result.Output = strconv.FormatBool(s.buf.IsEmpty())

	case OpView:
		filter, desc, err := compileFilter(step.Filter)
		if err != nil {
			return result, stepError(index, step.Op, err)
		}
		result.Arg = desc
		result.Output = s.render(s.buf.View(filter))

	case OpAll:
		result.Output = s.render(s.buf.All())

	default:
		return result, stepError(index, step.Op, fmt.Errorf("%w: unknown operation", ErrInvalidScript))
	}
	return result, nil
}

func (s *session) render(rels []*relation.Relation) string {
	names := make([]string, len(rels))
	for i, rel := range rels {
		names[i] = s.names[rel]
	}
	return formatNames(names)
}

// compileFilter turns a script filter into a relation filter and a stable
// description for the trace.
func compileFilter(f *Filter) (relation.Filter, string, error) {
	if f == nil {
		return relation.All(), "*", nil
	}

	var filters []relation.Filter
	var desc []string
	if f.Kind != "" {
		kind, err := relation.ParseKind(f.Kind)
		if err != nil {
			return nil, "", err
		}
		filters = append(filters, relation.OfKind(kind))
		desc = append(desc, "kind="+kind.String())
	}
	if f.Type != "" {
		filters = append(filters, relation.OfType(f.Type))
		desc = append(desc, "type="+f.Type)
	}
	if f.Vertex != nil {
		filters = append(filters, relation.IncidentOn(*f.Vertex))
		desc = append(desc, "vertex="+strconv.FormatUint(*f.Vertex, 10))
	}
	if len(desc) == 0 {
		return relation.All(), "*", nil
	}
	return relation.And(filters...), joinWords(desc), nil
}
