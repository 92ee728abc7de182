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

package cube

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteReadRoundTrip(t *testing.T) {
	dims := Dims{Bands: 2, Lines: 4, Samples: 3}
	path := filepath.Join(t.TempDir(), "test.dat")

	w, err := CreateWriter(path, dims)
	assert.NoError(t, err)

	// Pre-sized before any writes
	info, err := os.Stat(path)
	assert.NoError(t, err)
	assert.Equal(t, dims.ByteCount(), info.Size())

	// Band 0: value = line*10 + sample, band 1: value = 100 + line*10 + sample
	for band := 0; band < dims.Bands; band++ {
		values := make([]float32, dims.Lines*dims.Samples)
		for line := 0; line < dims.Lines; line++ {
			for sample := 0; sample < dims.Samples; sample++ {
				values[line*dims.Samples+sample] = float32(band*100 + line*10 + sample)
			}
		}
		assert.NoError(t, w.WriteRows(band, 0, values))
		assert.NoError(t, w.Flush())
	}
	assert.NoError(t, w.Close())

	r, err := OpenReader(path, dims)
	assert.NoError(t, err)
	defer r.Close()

	// Partial row read from the middle of band 1
	rows, err := r.ReadRows(1, 2, 2)
	assert.NoError(t, err)
	assert.Equal(t, []float32{120, 121, 122, 130, 131, 132}, rows)

	band, err := r.ReadBand(0)
	assert.NoError(t, err)
	assert.Len(t, band, dims.Lines*dims.Samples)
	assert.Equal(t, float32(0), band[0])
	assert.Equal(t, float32(32), band[len(band)-1])

	// One value per band for a single pixel
	spectrum, err := r.ReadSpectrum(3, 1)
	assert.NoError(t, err)
	assert.Equal(t, []float32{31, 131}, spectrum)

	// Out of range requests are rejected
	_, err = r.ReadRows(2, 0, 1)
	assert.Error(t, err)
	_, err = r.ReadRows(0, 3, 2)
	assert.Error(t, err)
	_, err = r.ReadSpectrum(4, 0)
	assert.Error(t, err)
}

func TestOpenReaderSizeCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.dat")
	assert.NoError(t, os.WriteFile(path, make([]byte, 10), 0644))

	_, err := OpenReader(path, Dims{Bands: 1, Lines: 2, Samples: 2})
	assert.ErrorContains(t, err, "expected 16")
}

func TestCreateWriterAllocationError(t *testing.T) {
	badPath := filepath.Join(t.TempDir(), "no-such-dir", "out.dat")

	_, err := CreateWriter(badPath, Dims{Bands: 1, Lines: 1, Samples: 1})

	var allocErr *AllocationError
	assert.True(t, errors.As(err, &allocErr))
	assert.Equal(t, badPath, allocErr.Path)

	// Nothing left behind
	_, statErr := os.Stat(badPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestWriteRowsValidation(t *testing.T) {
	dims := Dims{Bands: 1, Lines: 2, Samples: 3}
	w, err := CreateWriter(filepath.Join(t.TempDir(), "v.dat"), dims)
	assert.NoError(t, err)
	defer w.Close()

	// Not a whole number of rows
	assert.Error(t, w.WriteRows(0, 0, make([]float32, 4)))
	// Past the end of the band
	assert.Error(t, w.WriteRows(0, 1, make([]float32, 6)))

	assert.NoError(t, w.WriteRows(0, 1, make([]float32, 3)))
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float32{1, 0.25, 0, 0.75, 0.5})
	assert.Equal(t, 0.0, s.Min)
	assert.Equal(t, 1.0, s.Max)
	assert.InDelta(t, 0.5, s.Mean, 1e-9)
	assert.Equal(t, 0.0, s.Percentile2)
	assert.Equal(t, 1.0, s.Percentile98)

	assert.Equal(t, BandSummary{}, Summarize([]float32{}))
}
