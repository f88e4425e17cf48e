package curve

import (
	"encoding/hex"
	"errors"
	"math/big"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func pad32(v *big.Int) []byte {
	out := make([]byte, 32)
	v.FillBytes(out)
	return out
}

func scalar(v uint32) *secp256k1.ModNScalar {
	var s secp256k1.ModNScalar
	s.SetInt(v)
	return &s
}

// baseMult returns k*G through the same affine conversion verification uses
func baseMult(t *testing.T, k uint32) *Point {
	t.Helper()
	var r secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(scalar(k), &r)
	p, err := fromJacobian(&r)
	require.NoError(t, err)
	return p
}

// samePoint compares by x coordinate and y parity, which fixes a point
func samePoint(t *testing.T, want, got *Point) {
	t.Helper()
	require.Equal(t, want.IsInfinity(), got.IsInfinity())
	assert.Equal(t, want.XBytes(), got.XBytes())
	assert.Equal(t, want.HasEvenY(), got.HasEvenY())
}

func TestParams(t *testing.T) {
	params := Params()

	assert.Equal(t, "fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f",
		hex.EncodeToString(pad32(params.P)))
	assert.Equal(t, "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141",
		hex.EncodeToString(pad32(params.N)))
}

func TestGenerator(t *testing.T) {
	g := baseMult(t, 1)
	require.False(t, g.IsInfinity())
	assert.True(t, g.IsOnCurve())
	assert.True(t, g.HasEvenY())

	x := g.XBytes()
	assert.Equal(t, pad32(Params().Gx), x[:])
	assert.Equal(t, Params().Gy.Bit(0) == 0, g.HasEvenY())
}

func TestParseFieldElement(t *testing.T) {
	p := Params().P

	_, err := ParseFieldElement(pad32(new(big.Int).Sub(p, big.NewInt(1))))
	assert.NoError(t, err)

	_, err = ParseFieldElement(pad32(p))
	assert.ErrorIs(t, err, ErrFieldOverflow)

	_, err = ParseFieldElement(pad32(new(big.Int).Add(p, big.NewInt(1))))
	assert.ErrorIs(t, err, ErrFieldOverflow)

	_, err = ParseFieldElement(make([]byte, 31))
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestParseScalar(t *testing.T) {
	n := Params().N

	s, err := ParseScalar(pad32(new(big.Int).Sub(n, big.NewInt(1))))
	require.NoError(t, err)
	assert.False(t, s.IsZero())

	_, err = ParseScalar(pad32(n))
	assert.ErrorIs(t, err, ErrScalarOverflow)

	_, err = ParseScalar(make([]byte, 33))
	assert.ErrorIs(t, err, ErrInvalidLength)

	zero, err := ParseScalar(make([]byte, 32))
	require.NoError(t, err)
	assert.True(t, zero.IsZero())
}

func TestReduceScalar(t *testing.T) {
	n := Params().N

	var digest [32]byte
	copy(digest[:], pad32(new(big.Int).Add(n, big.NewInt(5))))

	s := ReduceScalar(&digest)
	assert.True(t, s.Equals(scalar(5)))
}

func TestLiftX(t *testing.T) {
	g := baseMult(t, 1)
	gx := g.XBytes()

	lifted, err := LiftX(gx[:])
	require.NoError(t, err)
	samePoint(t, g, lifted)
	assert.True(t, lifted.HasEvenY())

	// BIP-340 vector 1 public key
	pk := mustHex(t, "DFF1D77F2A671C5F36183726DB2341BE58FEAE1DA2DECED843240F7B502BA659")
	lifted, err = LiftX(pk)
	require.NoError(t, err)
	assert.True(t, lifted.IsOnCurve())
	assert.True(t, lifted.HasEvenY())
	xb := lifted.XBytes()
	assert.Equal(t, pk, xb[:])
}

func TestLiftXRejects(t *testing.T) {
	tests := []struct {
		name string
		x    string
		want error
	}{
		{
			name: "not on curve",
			x:    "EEFDEA4CDB677750A420FEE807EACF21EB9898AE79B9768766E4FAA04A2D4A34",
			want: ErrNotOnCurve,
		},
		{
			name: "equal to field prime plus one",
			x:    "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC30",
			want: ErrFieldOverflow,
		},
		{
			name: "short",
			x:    "00",
			want: ErrInvalidLength,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LiftX(mustHex(t, tt.x))
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestSchnorrCombination(t *testing.T) {
	g := baseMult(t, 1)

	// 5*G - 5*G = infinity
	r, err := SchnorrCombination(scalar(5), scalar(5), g)
	require.NoError(t, err)
	assert.True(t, r.IsInfinity())
	assert.False(t, r.HasEvenY())

	// 3*G - 1*G = 2*G
	r, err = SchnorrCombination(scalar(3), scalar(1), g)
	require.NoError(t, err)
	samePoint(t, baseMult(t, 2), r)

	// 0*G - (n-1)*G = G
	var nMinusOne secp256k1.ModNScalar
	nMinusOne.SetInt(1)
	nMinusOne.Negate()
	r, err = SchnorrCombination(scalar(0), &nMinusOne, g)
	require.NoError(t, err)
	samePoint(t, g, r)
}

func TestSchnorrCombinationInvalidInputs(t *testing.T) {
	g := baseMult(t, 1)

	_, err := SchnorrCombination(nil, scalar(1), g)
	assert.ErrorIs(t, err, ErrNilScalar)

	_, err = SchnorrCombination(scalar(1), scalar(1), &Point{infinity: true})
	assert.ErrorIs(t, err, ErrInvalidPoint)

	_, err = SchnorrCombination(scalar(1), scalar(1), nil)
	assert.ErrorIs(t, err, ErrInvalidPoint)
}

func TestFromJacobianInfinity(t *testing.T) {
	var zero, one secp256k1.FieldVal
	one.SetInt(1)

	var base secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(scalar(0), &base)

	tests := []struct {
		name string
		p    secp256k1.JacobianPoint
	}{
		{name: "zero times G", p: base},
		{name: "zero x and y", p: secp256k1.MakeJacobianPoint(&zero, &zero, &one)},
		{name: "zero z", p: secp256k1.MakeJacobianPoint(&one, &one, &zero)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.p
			r, err := fromJacobian(&p)
			require.NoError(t, err)
			assert.True(t, r.IsInfinity())
			assert.False(t, r.HasEvenY())
			assert.Equal(t, [32]byte{}, r.XBytes())
		})
	}

	r := baseMult(t, 0)
	assert.True(t, r.IsInfinity())
}

func TestFromJacobianOffCurve(t *testing.T) {
	var one, two secp256k1.FieldVal
	one.SetInt(1)
	two.SetInt(2)

	p := secp256k1.MakeJacobianPoint(&one, &two, &one)
	_, err := fromJacobian(&p)
	assert.ErrorIs(t, err, ErrArithmetic)
}

func TestPointClear(t *testing.T) {
	p := baseMult(t, 1)
	p.Clear()
	x := p.XBytes()
	assert.Equal(t, [32]byte{}, x)

	var nilPoint *Point
	nilPoint.Clear()
}
