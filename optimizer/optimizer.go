package optimizer

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/go-faster/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var ErrInvalidOptions = errors.New("invalid optimizer options")

// State of one variational run. Terminal states are Converged,
// MaxIterExceeded and Failed.
type State int

const (
	Initialized State = iota
	CircuitBuilt
	Sampled
	ParamsUpdated
	Converged
	MaxIterExceeded
	Failed
)

func (s State) String() string {
	switch s {
	case Initialized:
		return "initialized"
	case CircuitBuilt:
		return "circuit_built"
	case Sampled:
		return "sampled"
	case ParamsUpdated:
		return "params_updated"
	case Converged:
		return "converged"
	case MaxIterExceeded:
		return "max_iter_exceeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

func (s State) Terminal() bool {
	return s == Converged || s == MaxIterExceeded || s == Failed
}

// Objective maps a flat angle vector to an energy. It builds the circuit for
// theta and samples it, so every evaluation walks the loop through
// CircuitBuilt and Sampled.
type Objective func(theta []float64) (float64, error)

type Options struct {
	Dim       int     // length of the flat angle vector, 2 per round
	Restarts  int     // independent starts with fresh random angles
	MaxIter   int     // objective evaluation budget per restart
	Tolerance float64 // simplex value spread below which a restart converges
	Seed      int64
}

type Outcome struct {
	BestTheta  []float64
	BestValue  float64
	Iterations int
	Trace      []float64
	Converged  bool
}

// Loop drives multi-start Nelder-Mead over the ansatz angles. The loop owns
// the parameters; callers only observe them through the outcome.
type Loop struct {
	obj   Objective
	opts  Options
	state State
	rng   *rand.Rand

	iterations int
	trace      []float64
}

func New(obj Objective, opts Options) (*Loop, error) {
	var err error
	if obj == nil {
		err = multierr.Append(err, errors.Wrap(ErrInvalidOptions, "objective is nil"))
	}
	if opts.Dim <= 0 {
		err = multierr.Append(err, errors.Wrapf(ErrInvalidOptions, "dim(%d) must be positive", opts.Dim))
	}
	if opts.Restarts <= 0 {
		err = multierr.Append(err, errors.Wrapf(ErrInvalidOptions, "restarts(%d) must be positive", opts.Restarts))
	}
	if opts.MaxIter <= 0 {
		err = multierr.Append(err, errors.Wrapf(ErrInvalidOptions, "maxIter(%d) must be positive", opts.MaxIter))
	}
	if opts.Tolerance <= 0 {
		err = multierr.Append(err, errors.Wrapf(ErrInvalidOptions, "tolerance(%g) must be positive", opts.Tolerance))
	}
	if err != nil {
		return nil, err
	}
	return &Loop{
		obj:   obj,
		opts:  opts,
		state: Initialized,
		rng:   rand.New(rand.NewSource(opts.Seed)),
	}, nil
}

func (l *Loop) State() State {
	return l.state
}

// Run executes all restarts and returns the best outcome seen. A failing
// objective evaluation aborts the whole run without retry.
func (l *Loop) Run() (*Outcome, error) {
	best := &Outcome{BestValue: math.Inf(1)}
	anyConverged := false
	for r := 0; r < l.opts.Restarts; r++ {
		start := l.randomAngles()
		zap.L().Debug(fmt.Sprintf("optimizer restart %d/%d from %v", r+1, l.opts.Restarts, start))
		theta, value, converged, err := l.nelderMead(start)
		if err != nil {
			l.state = Failed
			return nil, err
		}
		if converged {
			anyConverged = true
		}
		if value < best.BestValue {
			best.BestValue = value
			best.BestTheta = theta
		}
	}
	best.Iterations = l.iterations
	best.Trace = l.trace
	best.Converged = anyConverged
	if anyConverged {
		l.state = Converged
	} else {
		l.state = MaxIterExceeded
	}
	zap.L().Debug(fmt.Sprintf("optimizer finished/state:%s/best:%g/iterations:%d",
		l.state, best.BestValue, best.Iterations))
	return best, nil
}

// evaluate walks one full loop iteration: the objective builds and samples
// the circuit for theta, then the caller updates the simplex.
func (l *Loop) evaluate(theta []float64) (float64, error) {
	l.state = CircuitBuilt
	v, err := l.obj(theta)
	if err != nil {
		return 0, err
	}
	l.state = Sampled
	l.iterations++
	l.trace = append(l.trace, v)
	l.state = ParamsUpdated
	return v, nil
}

func (l *Loop) randomAngles() []float64 {
	theta := make([]float64, l.opts.Dim)
	for i := range theta {
		theta[i] = l.rng.Float64() * 2 * math.Pi
	}
	return theta
}
