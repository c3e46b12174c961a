package vector

// Polymorphic operators over Vector.
//
// Binary operators require both operands to be dense; any other combination
// fails with ErrShapeMismatch. Unary operators accept any Vector and always
// return a Dense.

func binaryOp(op string, a, b Vector, f func(x, y Dense) (Dense, error)) (Vector, error) {
	x, ok := asDense(a)
	if !ok {
		return nil, kindMismatch(op, lenOf(b), a)
	}
	y, ok := asDense(b)
	if !ok {
		return nil, kindMismatch(op, x.n, b)
	}
	out, err := f(x, y)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func unary(v Vector) Dense {
	if d, ok := asDense(v); ok {
		return d
	}
	if v == nil {
		return Empty
	}
	return FromValues(v.Values())
}

func lenOf(v Vector) int {
	if v == nil {
		return 0
	}
	return v.Len()
}

// Add returns a + b.
func Add(a, b Vector) (Vector, error) {
	return binaryOp("add", a, b, Dense.Add)
}

// Sub returns a - b.
func Sub(a, b Vector) (Vector, error) {
	return binaryOp("subtract", a, b, Dense.Sub)
}

// Mul returns the elementwise product of a and b.
func Mul(a, b Vector) (Vector, error) {
	return binaryOp("multiply", a, b, Dense.Mul)
}

// Div returns the elementwise quotient of a and b.
func Div(a, b Vector) (Vector, error) {
	return binaryOp("divide", a, b, Dense.Div)
}

// Dot returns the pairwise product sum of a and b.
func Dot(a, b Vector) (float64, error) {
	x, ok := asDense(a)
	if !ok {
		return 0, kindMismatch("dot", lenOf(b), a)
	}
	return x.Dot(b)
}

// AddScalar returns v + s.
func AddScalar(v Vector, s float64) Vector { return unary(v).AddScalar(s) }

// SubScalar returns v - s.
func SubScalar(v Vector, s float64) Vector { return unary(v).SubScalar(s) }

// SubFrom returns s - v.
func SubFrom(s float64, v Vector) Vector { return unary(v).SubFrom(s) }

// MulScalar returns v * s.
func MulScalar(v Vector, s float64) Vector { return unary(v).MulScalar(s) }

// DivScalar returns v / s.
func DivScalar(v Vector, s float64) Vector { return unary(v).DivScalar(s) }

// DivFrom returns s / v.
func DivFrom(s float64, v Vector) Vector { return unary(v).DivFrom(s) }

// Pow raises every component of v to x.
func Pow(v Vector, x float64) Vector { return unary(v).Pow(x) }

// Abs returns |v|.
func Abs(v Vector) Vector { return unary(v).Abs() }

// Sqrt returns the component-wise square root of v.
func Sqrt(v Vector) Vector { return unary(v).Sqrt() }

// Log returns the component-wise natural logarithm of v.
func Log(v Vector) Vector { return unary(v).Log() }

// Exp returns the component-wise exponential of v.
func Exp(v Vector) Vector { return unary(v).Exp() }

// Neg returns -v.
func Neg(v Vector) Vector { return unary(v).Neg() }
