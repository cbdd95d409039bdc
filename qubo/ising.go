package qubo

// IsingModel is the Z-basis image of a QUBO under x_i = (1 - Z_i)/2:
// H = sum_{i<j} J_ij Z_i Z_j + sum_i h_i Z_i + Const.
type IsingModel struct {
	N     int
	J     [][]float64 // upper triangular, J[i][j] for i<j
	H     []float64
	Const float64
}

// ToIsing converts the problem into its Ising form. The mapping follows
// x_i x_j = (1 - Z_i - Z_j + Z_i Z_j)/4 for the off-diagonal part and
// x_i = (1 - Z_i)/2 for diagonal and linear parts.
func (p *Problem) ToIsing() *IsingModel {
	n := p.N
	m := &IsingModel{
		N:     n,
		J:     make([][]float64, n),
		H:     make([]float64, n),
		Const: p.ConstOffset,
	}
	for i := 0; i < n; i++ {
		m.J[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			// off-diagonal couplings enter twice in x^T Q x
			c := p.Q[i][j] + p.Q[j][i]
			m.J[i][j] += c / 4.0
			m.H[i] += -c / 4.0
			m.H[j] += -c / 4.0
			m.Const += c / 4.0
		}
	}
	for i := 0; i < n; i++ {
		m.H[i] += -(p.Q[i][i] / 2.0) - (p.Linear[i] / 2.0)
		m.Const += (p.Q[i][i] / 2.0) + (p.Linear[i] / 2.0)
	}
	return m
}
