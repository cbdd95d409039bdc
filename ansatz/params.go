package ansatz

// Angles is one round's variational pair.
type Angles struct {
	Gamma float64
	Beta  float64
}

// Params is the ordered (gamma, beta) sequence for p rounds. It is owned
// and mutated by the optimizer loop; circuit construction only reads the
// current values.
type Params []Angles

// Flatten returns the parameters as [gamma_1..gamma_p, beta_1..beta_p],
// the layout classical optimizers work on.
func (p Params) Flatten() []float64 {
	out := make([]float64, 0, 2*len(p))
	for _, a := range p {
		out = append(out, a.Gamma)
	}
	for _, a := range p {
		out = append(out, a.Beta)
	}
	return out
}

// FromFlat rebuilds a Params sequence from the flattened layout. The
// slice length must be even; the first half is gammas, the second betas.
func FromFlat(theta []float64) Params {
	p := len(theta) / 2
	params := make(Params, p)
	for k := 0; k < p; k++ {
		params[k] = Angles{Gamma: theta[k], Beta: theta[p+k]}
	}
	return params
}
