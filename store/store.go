// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package store implements the three binary artifacts of spec.md §6:
// Initial State, Evolution, and Tangent-Velocity. Each is a sequence of
// N×7 (or 2×N, for tangent velocity) row-major float64 arrays. gosl's io
// package is a text/buffer writer (used by the teacher for VTU/PVD output)
// with no raw binary float codec, so this package uses encoding/binary
// directly — see DESIGN.md.
package store

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
	"os"

	"github.com/cpmech/gosl/chk"
	gio "github.com/cpmech/gosl/io"
	"github.com/jdOchoa2/Barnes-Hut/body"
	"github.com/jdOchoa2/Barnes-Hut/model"
)

var byteOrder = binary.LittleEndian

// rowsFromBodies flattens bodies into N×7 rows (m,x,y,z,px,py,pz).
func rowsFromBodies(bodies []body.Body) []model.Row {
	rows := make([]model.Row, len(bodies))
	for i, b := range bodies {
		rows[i] = model.Row{b.M, b.R[0], b.R[1], b.R[2], b.P[0], b.P[1], b.P[2]}
	}
	return rows
}

// bodiesFromRows is the inverse of rowsFromBodies.
func bodiesFromRows(rows []model.Row) []body.Body {
	bodies := make([]body.Body, len(rows))
	for i, r := range rows {
		bodies[i] = body.Body{
			M: r[0],
			R: body.Vec3{r[1], r[2], r[3]},
			P: body.Vec3{r[4], r[5], r[6]},
		}
	}
	return bodies
}

func writeRows(w io.Writer, rows []model.Row) error {
	for _, r := range rows {
		for _, v := range r {
			if err := binary.Write(w, byteOrder, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func readRows(r io.Reader, n int) ([]model.Row, error) {
	rows := make([]model.Row, n)
	for i := range rows {
		for k := 0; k < 7; k++ {
			if err := binary.Read(r, byteOrder, &rows[i][k]); err != nil {
				return nil, err
			}
		}
	}
	return rows, nil
}

// WriteInitialState writes the N×7 Initial State artifact (spec.md §6).
func WriteInitialState(path string, rows []model.Row) error {
	f, err := os.Create(path)
	if err != nil {
		chk.Panic("store: WriteInitialState: cannot create %q: %v", path, err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	if err := writeRows(w, rows); err != nil {
		chk.Panic("store: WriteInitialState: write failed: %v", err)
	}
	return w.Flush()
}

// ReadInitialState reads back the N×7 Initial State artifact. The caller
// must know N out-of-band (spec.md §6).
func ReadInitialState(path string, n int) ([]body.Body, error) {
	buf, err := gio.ReadFile(path)
	if err != nil {
		chk.Panic("store: ReadInitialState: cannot read %q: %v", path, err)
	}
	rows, err := readRows(bufReader(buf), n)
	if err != nil {
		chk.Panic("store: ReadInitialState: malformed artifact %q: %v", path, err)
	}
	return bodiesFromRows(rows), nil
}

func bufReader(b []byte) io.Reader {
	return &byteReader{buf: b}
}

// byteReader is a minimal io.Reader over an in-memory byte slice, used so
// ReadInitialState can reuse readRows without pulling in bytes.Reader just
// for this one call site.
type byteReader struct {
	buf []byte
	pos int
}

func (r *byteReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.buf) {
		return 0, io.EOF
	}
	n := copy(p, r.buf[r.pos:])
	r.pos += n
	return n, nil
}

// EvolutionWriter appends one N×7 snapshot per call to an Evolution
// artifact (spec.md §6).
type EvolutionWriter struct {
	f *os.File
	w *bufio.Writer
}

// NewEvolutionWriter creates (truncating) the Evolution artifact at path.
func NewEvolutionWriter(path string) (*EvolutionWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		chk.Panic("store: NewEvolutionWriter: cannot create %q: %v", path, err)
	}
	return &EvolutionWriter{f: f, w: bufio.NewWriter(f)}, nil
}

// Save implements integrator.Sink: it writes one N×7 snapshot.
func (e *EvolutionWriter) Save(step int, bodies []body.Body) error {
	return writeRows(e.w, rowsFromBodies(bodies))
}

// Close flushes and closes the underlying file.
func (e *EvolutionWriter) Close() error {
	if err := e.w.Flush(); err != nil {
		return err
	}
	return e.f.Close()
}

// ReadEvolutionSnapshot reads the snap-th (0-based) N×7 snapshot from an
// Evolution artifact. Callers must know N and the total snapshot count
// out-of-band (spec.md §6).
func ReadEvolutionSnapshot(path string, n, snap int) ([]body.Body, error) {
	f, err := os.Open(path)
	if err != nil {
		chk.Panic("store: ReadEvolutionSnapshot: cannot open %q: %v", path, err)
	}
	defer f.Close()

	const rowBytes = 7 * 8
	offset := int64(snap) * int64(n) * int64(rowBytes)
	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		chk.Panic("store: ReadEvolutionSnapshot: seek failed: %v", err)
	}

	r := bufio.NewReader(f)
	rows, err := readRows(r, n)
	if err != nil {
		chk.Panic("store: ReadEvolutionSnapshot: malformed artifact %q at snapshot %d: %v", path, snap, err)
	}
	return bodiesFromRows(rows), nil
}

// TangentVelocitySample is one (r, vt) pair of the Tangent-Velocity
// artifact (spec.md §6).
type TangentVelocitySample struct {
	R  float64 // |pos - center|, kpc
	Vt float64 // tangential speed magnitude, kpc/Gyr
}

// NormalVector returns n_hat for the disk's inclination alpha and
// ascending node beta (spec.md §6).
func NormalVector(alpha, beta float64) body.Vec3 {
	tanA := math.Tan(alpha)
	return body.Vec3{
		math.Sqrt(1-tanA*tanA) * math.Sin(beta),
		tanA * math.Sin(beta),
		math.Cos(beta),
	}
}

// TangentVelocity computes the per-body (r, vt) samples of spec.md §6,
// scaled from internal to physical kpc/kpc-per-Gyr units by
// iniRadius/0.4.
func TangentVelocity(bodies []body.Body, alpha, beta, iniRadius float64) []TangentVelocitySample {
	n := NormalVector(alpha, beta)
	center := body.Center()
	factor := iniRadius / 0.4
	out := make([]TangentVelocitySample, len(bodies))
	for i, b := range bodies {
		d := b.R.Sub(center)
		r := d.Norm()
		vel := b.Velocity()
		vt := 0.0
		if r > 0 {
			vt = math.Abs(vel.Dot(d.Cross(n)) / r)
		}
		out[i] = TangentVelocitySample{R: r * factor, Vt: vt * factor}
	}
	return out
}

// WriteTangentVelocity appends one 2×N tangent-velocity snapshot: the N
// radii, then the N tangential speeds.
func WriteTangentVelocity(w io.Writer, samples []TangentVelocitySample) error {
	for _, s := range samples {
		if err := binary.Write(w, byteOrder, s.R); err != nil {
			return err
		}
	}
	for _, s := range samples {
		if err := binary.Write(w, byteOrder, s.Vt); err != nil {
			return err
		}
	}
	return nil
}
