// Implements the VOQMatrix, which holds the virtual output queue occupancy of a switch.
// Packets are counted, never stored: arrivals increment a cell, departures decrement it.

package sim

import (
	"fmt"
	"strings"
)

// VOQMatrix is the n×n virtual-output-queue occupancy matrix of a crossbar switch.
// Cell (i, j) is the number of packets buffered at input i destined for output j.
// Storage is row-major in a single slice; every cell is >= 0 at all times.
type VOQMatrix struct {
	n     int
	cells []int
}

// NewVOQMatrix returns a zeroed n×n matrix. Panics if n < 1.
func NewVOQMatrix(n int) *VOQMatrix {
	if n < 1 {
		panic(fmt.Sprintf("NewVOQMatrix: n must be >= 1, got %d", n))
	}
	return &VOQMatrix{n: n, cells: make([]int, n*n)}
}

// Ports returns the matrix dimension.
func (q *VOQMatrix) Ports() int {
	return q.n
}

// At returns the occupancy of VOQ (input, output).
func (q *VOQMatrix) At(input, output int) int {
	return q.cells[input*q.n+output]
}

// Enqueue buffers one packet at input for output.
func (q *VOQMatrix) Enqueue(input, output int) {
	q.cells[input*q.n+output]++
}

// Dequeue removes one packet from VOQ (input, output) if it is non-empty.
// Returns false and leaves the matrix untouched when the queue is empty.
func (q *VOQMatrix) Dequeue(input, output int) bool {
	idx := input*q.n + output
	if q.cells[idx] == 0 {
		return false
	}
	q.cells[idx]--
	return true
}

// Weight returns the summed occupancy along the pairings of m.
func (q *VOQMatrix) Weight(m Matching) int {
	w := 0
	for in, out := range m {
		w += q.cells[in*q.n+out]
	}
	return w
}

// Len returns the total number of buffered packets.
func (q *VOQMatrix) Len() int {
	total := 0
	for _, c := range q.cells {
		total += c
	}
	return total
}

func (q *VOQMatrix) String() string {
	var sb strings.Builder
	for i := 0; i < q.n; i++ {
		sb.WriteString("[")
		for j := 0; j < q.n; j++ {
			sb.WriteString(fmt.Sprint(q.At(i, j)))
			if j < q.n-1 {
				sb.WriteString(" ")
			}
		}
		sb.WriteString("]")
		if i < q.n-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
