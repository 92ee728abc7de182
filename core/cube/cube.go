// Licensed to NASA JPL under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. NASA JPL licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

// Package cube gives random access into band-sequential binary cube files:
// little-endian 32-bit floats, element (band, line, sample) at byte offset
// 4*(band*lines*samples + line*samples + sample). The file carries no header
// of its own, shape comes from the paired text header.
package cube

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
)

const bytesPerValue = 4

// Dims - cube shape. All three must be positive.
type Dims struct {
	Bands   int
	Lines   int
	Samples int
}

func (d Dims) Validate() error {
	if d.Bands <= 0 || d.Lines <= 0 || d.Samples <= 0 {
		return fmt.Errorf("invalid cube dimensions: %v bands x %v lines x %v samples", d.Bands, d.Lines, d.Samples)
	}
	return nil
}

func (d Dims) ElementCount() int64 {
	return int64(d.Bands) * int64(d.Lines) * int64(d.Samples)
}

func (d Dims) ByteCount() int64 {
	return d.ElementCount() * bytesPerValue
}

// offset - byte offset of the first sample of a line within a band
func (d Dims) offset(band int, line int) int64 {
	return bytesPerValue * (int64(band)*int64(d.Lines)*int64(d.Samples) + int64(line)*int64(d.Samples))
}

func (d Dims) checkBand(band int) error {
	if band < 0 || band >= d.Bands {
		return fmt.Errorf("band %v out of range, cube has %v bands", band, d.Bands)
	}
	return nil
}

func (d Dims) checkRows(band int, startLine int, numLines int) error {
	if err := d.checkBand(band); err != nil {
		return err
	}
	if startLine < 0 || numLines <= 0 || startLine+numLines > d.Lines {
		return fmt.Errorf("lines %v-%v out of range, cube has %v lines", startLine, startLine+numLines-1, d.Lines)
	}
	return nil
}

func decodeValues(buf []byte, values []float32) {
	for i := range values {
		values[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*bytesPerValue:]))
	}
}

func encodeValues(values []float32, buf []byte) {
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[i*bytesPerValue:], math.Float32bits(v))
	}
}

// Reader - read-only view over an existing cube file. Safe to read any
// band/line range in any order, nothing is held in memory beyond the
// request being served.
type Reader struct {
	file *os.File
	dims Dims
}

// OpenReader - opens a cube read only, checking the file size matches the
// shape the header promised
func OpenReader(path string, dims Dims) (*Reader, error) {
	if err := dims.Validate(); err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}

	if info.Size() != dims.ByteCount() {
		file.Close()
		return nil, fmt.Errorf("cube file %v is %v bytes, expected %v for %v bands x %v lines x %v samples",
			path, info.Size(), dims.ByteCount(), dims.Bands, dims.Lines, dims.Samples)
	}

	return &Reader{file: file, dims: dims}, nil
}

func (r *Reader) Dims() Dims {
	return r.dims
}

// ReadRows - reads numLines whole rows of one band starting at startLine.
// Returns numLines*samples values in row-major order.
func (r *Reader) ReadRows(band int, startLine int, numLines int) ([]float32, error) {
	if err := r.dims.checkRows(band, startLine, numLines); err != nil {
		return nil, err
	}

	buf := make([]byte, numLines*r.dims.Samples*bytesPerValue)
	if _, err := r.file.ReadAt(buf, r.dims.offset(band, startLine)); err != nil {
		return nil, err
	}

	values := make([]float32, numLines*r.dims.Samples)
	decodeValues(buf, values)
	return values, nil
}

// ReadBand - one whole band, lines*samples values
func (r *Reader) ReadBand(band int) ([]float32, error) {
	return r.ReadRows(band, 0, r.dims.Lines)
}

// ReadSpectrum - one value per band for a single pixel, what the spectral
// profile plot in a viewer wants
func (r *Reader) ReadSpectrum(line int, sample int) ([]float32, error) {
	if line < 0 || line >= r.dims.Lines || sample < 0 || sample >= r.dims.Samples {
		return nil, fmt.Errorf("pixel (%v, %v) out of range, cube is %v lines x %v samples", line, sample, r.dims.Lines, r.dims.Samples)
	}

	values := make([]float32, r.dims.Bands)
	buf := make([]byte, bytesPerValue)

	for band := 0; band < r.dims.Bands; band++ {
		offset := r.dims.offset(band, line) + int64(sample)*bytesPerValue
		if _, err := r.file.ReadAt(buf, offset); err != nil {
			return nil, err
		}
		values[band] = math.Float32frombits(binary.LittleEndian.Uint32(buf))
	}

	return values, nil
}

func (r *Reader) Close() error {
	return r.file.Close()
}
