package fibonacci

import "math/big"

// Matrix computes F(n) (0-based) by exponentiation of [[1,1],[1,0]],
// using the identity M^n = [[F(n+1), F(n)], [F(n), F(n-1)]].
// Time O(log n) big-int multiplications.
func Matrix(n int) *big.Int {
	if n <= 0 {
		return big.NewInt(0)
	}
	if n == 1 {
		return big.NewInt(1)
	}

	m := matrixPow(mat2{
		big.NewInt(1), big.NewInt(1),
		big.NewInt(1), big.NewInt(0),
	}, n)
	return m.b
}

// mat2 is a 2x2 big-int matrix [[a, b], [c, d]].
type mat2 struct {
	a, b, c, d *big.Int
}

func matrixMul(x, y mat2) mat2 {
	mul := func(p, q *big.Int) *big.Int { return new(big.Int).Mul(p, q) }
	add := func(p, q *big.Int) *big.Int { return new(big.Int).Add(p, q) }
	return mat2{
		a: add(mul(x.a, y.a), mul(x.b, y.c)),
		b: add(mul(x.a, y.b), mul(x.b, y.d)),
		c: add(mul(x.c, y.a), mul(x.d, y.c)),
		d: add(mul(x.c, y.b), mul(x.d, y.d)),
	}
}

func matrixPow(m mat2, p int) mat2 {
	if p == 1 {
		return m
	}
	if p%2 == 0 {
		half := matrixPow(m, p/2)
		return matrixMul(half, half)
	}
	return matrixMul(m, matrixPow(m, p-1))
}

// FastDoubling computes F(n) (0-based) via the doubling identities
// F(2k) = F(k)*(2*F(k+1) - F(k)) and F(2k+1) = F(k)^2 + F(k+1)^2.
// Time O(log n) big-int multiplications.
func FastDoubling(n int) *big.Int {
	if n < 0 {
		return big.NewInt(0)
	}
	f, _ := fibPair(n)
	return f
}

// fibPair returns (F(k), F(k+1)).
func fibPair(k int) (*big.Int, *big.Int) {
	if k == 0 {
		return big.NewInt(0), big.NewInt(1)
	}

	a, b := fibPair(k / 2)

	// c = a * (2b - a)
	c := new(big.Int).Lsh(b, 1)
	c.Sub(c, a)
	c.Mul(c, a)

	// d = a^2 + b^2
	d := new(big.Int).Mul(a, a)
	d.Add(d, new(big.Int).Mul(b, b))

	if k%2 == 0 {
		return c, d
	}
	return d, new(big.Int).Add(c, d)
}

// Lucas returns the nth Lucas number: L(0)=2, L(1)=1,
// L(n) = L(n-1) + L(n-2). Related to Fibonacci by L(n) = F(n-1) + F(n+1).
func Lucas(n int) *big.Int {
	if n <= 0 {
		return big.NewInt(2)
	}
	if n == 1 {
		return big.NewInt(1)
	}

	a, b := big.NewInt(2), big.NewInt(1)
	for i := 2; i <= n; i++ {
		a.Add(a, b)
		a, b = b, a
	}
	return b
}
