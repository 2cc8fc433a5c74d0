// Package triplet parses whitespace separated 3-D point datasets into row ordered points
package triplet

import (
	"bufio"
	"errors"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	mat_ "github.com/aouyang1/go-solvematrix/mat"
	"gonum.org/v1/gonum/mat"
)

// Size is the number of values making up a single point
const Size = 3

var (
	ErrNotATriplet = errors.New("line is not a triplet")
	ErrNotFinite   = errors.New("value is not finite")
	ErrNoRows      = errors.New("dataset has no rows")
)

// Points holds parsed triplets in input order. Every row has exactly Size finite values.
type Points [][]float64

// Len returns the number of points
func (p Points) Len() int {
	return len(p)
}

// Dense returns the points as an N×3 matrix. Empty points return ErrNoRows since a
// matrix cannot have zero rows.
func (p Points) Dense() (*mat.Dense, error) {
	if len(p) == 0 {
		return nil, ErrNoRows
	}
	return mat_.NewDenseFromArray(p)
}

// Parse reads all of r and groups its whitespace separated tokens into triplets. Triplets
// may span line breaks and blank lines are ignored. A token stream that ends in the middle
// of a triplet returns ErrNotATriplet and a token that is not a finite float returns the
// *strconv.NumError describing it. No partial result is returned on error.
func Parse(r io.Reader) (Points, error) {
	var points Points
	var pending []float64

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), math.MaxInt32)
	for scanner.Scan() {
		for _, tok := range strings.Fields(scanner.Text()) {
			val, err := parseValue(tok)
			if err != nil {
				return nil, err
			}
			pending = append(pending, val)
			if len(pending) == Size {
				points = append(points, pending)
				pending = make([]float64, 0, Size)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(pending) != 0 {
		return nil, ErrNotATriplet
	}
	return points, nil
}

// ParseString parses an in-memory dataset
func ParseString(s string) (Points, error) {
	return Parse(strings.NewReader(s))
}

// ReadFile opens and parses the dataset at path. The file is closed before returning.
func ReadFile(path string) (Points, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f)
}

func parseValue(tok string) (float64, error) {
	val, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return 0, &strconv.NumError{Func: "ParseFloat", Num: tok, Err: ErrNotFinite}
	}
	return val, nil
}
