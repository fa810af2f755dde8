package fu

func Mean(a []float64) float64 {
	var c float64
	for _, x := range a {
		c += x
	}
	return c / float64(len(a))
}

func Mse(a, b []float64) float64 {
	var c float64
	for i, x := range a {
		q := x - b[i]
		c += q * q
	}
	return c / float64(len(a))
}

// Indmaxd returns the index of the maximal value
func Indmaxd(a []float64) int {
	j := 0
	for i, x := range a {
		if x > a[j] {
			j = i
		}
	}
	return j
}

// Onehot encodes class index c as a width-wide one-hot vector
func Onehot(c, width int) []float64 {
	r := make([]float64, width)
	r[c] = 1
	return r
}

func Mini(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func Maxi(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Fnzi returns the first non-zero int value
func Fnzi(a ...int) int {
	for _, x := range a {
		if x != 0 {
			return x
		}
	}
	return 0
}
