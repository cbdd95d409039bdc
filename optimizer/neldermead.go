package optimizer

import (
	"math"
	"sort"
)

// Nelder-Mead coefficients.
const (
	nmReflect  = 1.0
	nmExpand   = 2.0
	nmContract = 0.5
	nmShrink   = 0.5
	nmStep     = 0.25 // initial simplex edge, in radians
)

type vertex struct {
	point []float64
	value float64
}

// nelderMead minimizes the objective from one starting point. It returns the
// best point, its value and whether the simplex collapsed below tolerance
// before the evaluation budget ran out.
func (l *Loop) nelderMead(start []float64) ([]float64, float64, bool, error) {
	dim := l.opts.Dim
	simplex := make([]vertex, dim+1)
	evals := 0

	eval := func(p []float64) (float64, error) {
		evals++
		return l.evaluate(p)
	}

	v0, err := eval(start)
	if err != nil {
		return nil, 0, false, err
	}
	simplex[0] = vertex{point: append([]float64(nil), start...), value: v0}
	for i := 0; i < dim; i++ {
		p := append([]float64(nil), start...)
		p[i] += nmStep
		v, err := eval(p)
		if err != nil {
			return nil, 0, false, err
		}
		simplex[i+1] = vertex{point: p, value: v}
	}

	for evals < l.opts.MaxIter {
		sort.Slice(simplex, func(a, b int) bool { return simplex[a].value < simplex[b].value })
		if math.Abs(simplex[dim].value-simplex[0].value) < l.opts.Tolerance {
			return simplex[0].point, simplex[0].value, true, nil
		}

		centroid := make([]float64, dim)
		for i := 0; i < dim; i++ {
			for j := 0; j < dim; j++ {
				centroid[j] += simplex[i].point[j] / float64(dim)
			}
		}

		reflected := combine(centroid, simplex[dim].point, 1+nmReflect, -nmReflect)
		rv, err := eval(reflected)
		if err != nil {
			return nil, 0, false, err
		}
		switch {
		case rv < simplex[0].value:
			expanded := combine(centroid, simplex[dim].point, 1+nmExpand, -nmExpand)
			ev, err := eval(expanded)
			if err != nil {
				return nil, 0, false, err
			}
			if ev < rv {
				simplex[dim] = vertex{point: expanded, value: ev}
			} else {
				simplex[dim] = vertex{point: reflected, value: rv}
			}
		case rv < simplex[dim-1].value:
			simplex[dim] = vertex{point: reflected, value: rv}
		default:
			contracted := combine(centroid, simplex[dim].point, 1-nmContract, nmContract)
			cv, err := eval(contracted)
			if err != nil {
				return nil, 0, false, err
			}
			if cv < simplex[dim].value {
				simplex[dim] = vertex{point: contracted, value: cv}
			} else {
				// shrink towards the best vertex
				for i := 1; i <= dim; i++ {
					p := combine(simplex[0].point, simplex[i].point, 1-nmShrink, nmShrink)
					v, err := eval(p)
					if err != nil {
						return nil, 0, false, err
					}
					simplex[i] = vertex{point: p, value: v}
				}
			}
		}
	}

	sort.Slice(simplex, func(a, b int) bool { return simplex[a].value < simplex[b].value })
	return simplex[0].point, simplex[0].value, false, nil
}

func combine(a, b []float64, ca, cb float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = ca*a[i] + cb*b[i]
	}
	return out
}
