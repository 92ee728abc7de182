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

package radcorr

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Trojan32vd/HSI-cl/core/cube"
	"github.com/Trojan32vd/HSI-cl/core/envi"
	"github.com/Trojan32vd/HSI-cl/core/fileaccess"
	"github.com/Trojan32vd/HSI-cl/core/logger"
	"github.com/Trojan32vd/HSI-cl/core/utils"
)

const testWorkingHeader = `ENVI
description = {Reflectance}
samples = 3
lines = 4
bands = 2
data type = 4
interleave = bsq
`

const testSourceHeader = `ENVI
description = {AFX radiance in mW units [scaled * 250.0]}
samples = 3
lines = 4
bands = 2
data type = 4
wavelength = {
 500.000000,
 1500.000000}
sensor type = AFX-10
`

// Writes a 2 band x 4 line x 3 sample cube of all the same value per band
func writeTestCube(t *testing.T, path string, bandValues map[int]float32) {
	t.Helper()

	dims := cube.Dims{Bands: 2, Lines: 4, Samples: 3}
	w, err := cube.CreateWriter(path, dims)
	assert.NoError(t, err)

	for band, value := range bandValues {
		values := make([]float32, dims.Lines*dims.Samples)
		for i := range values {
			values[i] = value
		}
		assert.NoError(t, w.WriteRows(band, 0, values))
	}

	assert.NoError(t, w.Flush())
	assert.NoError(t, w.Close())
}

func makeTestInputs(t *testing.T, dir string) (FilePair, FilePair) {
	t.Helper()

	working := FilePair{
		DataPath:   filepath.Join(dir, "scene_reflectance.dat"),
		HeaderPath: filepath.Join(dir, "scene_reflectance.dat.hdr"),
	}
	source := FilePair{
		DataPath:   filepath.Join(dir, "scene_radiance.dat"),
		HeaderPath: filepath.Join(dir, "scene_radiance.hdr"),
	}

	assert.NoError(t, os.WriteFile(working.HeaderPath, []byte(testWorkingHeader), 0644))
	assert.NoError(t, os.WriteFile(source.HeaderPath, []byte(testSourceHeader), 0644))
	writeTestCube(t, working.DataPath, map[int]float32{0: 0.5, 1: 0.5})

	return working, source
}

func TestRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	working, source := makeTestInputs(t, dir)
	outPath := filepath.Join(dir, "scene_radcorr.dat")

	params := DefaultParams()
	params.BandStats = true

	summary, err := Run(working, source, outPath, params, &fileaccess.FSAccess{}, &logger.NullLogger{})
	assert.NoError(t, err)

	assert.Equal(t, 2, summary.Bands)
	assert.Equal(t, 4, summary.Lines)
	assert.Equal(t, 3, summary.Samples)
	assert.Equal(t, 250.0, summary.RadianceScale)
	assert.True(t, summary.ScaleFromHeader)
	assert.Empty(t, summary.Warnings)
	assert.NotEmpty(t, summary.RunId)

	assert.Len(t, summary.BandReports, 2)
	assert.Equal(t, 1.0, summary.BandReports[0].Factor)
	assert.Equal(t, 2.0, summary.BandReports[1].Factor)

	// Band 0 has the 500nm centre wavelength so passes through unchanged,
	// band 1 doubles and 0.5*2.0 lands exactly on the clip boundary
	r, err := cube.OpenReader(outPath, cube.Dims{Bands: 2, Lines: 4, Samples: 3})
	assert.NoError(t, err)
	defer r.Close()

	band0, err := r.ReadBand(0)
	assert.NoError(t, err)
	band1, err := r.ReadBand(1)
	assert.NoError(t, err)
	for i := range band0 {
		assert.Equal(t, float32(0.5), band0[i])
		assert.Equal(t, float32(1.0), band1[i])
	}

	assert.NotNil(t, summary.BandReports[1].Stats)
	assert.Equal(t, 1.0, summary.BandReports[1].Stats.Max)

	// Output header parses back to the same shape
	h, err := envi.ReadHeaderFile(outPath + ".hdr")
	assert.NoError(t, err)
	m, _, err := envi.BuildModel(h, h)
	assert.NoError(t, err)
	assert.Equal(t, 2, m.Bands)
	assert.Equal(t, []float64{500, 1500}, m.Wavelengths)
	assert.Equal(t, "AFX-10", m.SensorType)

	// Run summary landed next to the cube
	loaded := RunSummary{}
	assert.NoError(t, (&fileaccess.FSAccess{}).ReadJSON("", outPath+".run.json", &loaded, false))
	assert.Equal(t, summary.RunId, loaded.RunId)
}

func TestRunClipsBothEnds(t *testing.T) {
	dir := t.TempDir()
	working, source := makeTestInputs(t, dir)

	// Band 1 doubles: -0.25 becomes -0.5 and must clip up to 0
	writeTestCube(t, working.DataPath, map[int]float32{0: 0.5, 1: -0.25})
	outLow := filepath.Join(dir, "cliplow_radcorr.dat")

	_, err := Run(working, source, outLow, DefaultParams(), &fileaccess.FSAccess{}, &logger.NullLogger{})
	assert.NoError(t, err)

	r, err := cube.OpenReader(outLow, cube.Dims{Bands: 2, Lines: 4, Samples: 3})
	assert.NoError(t, err)
	band1, err := r.ReadBand(1)
	assert.NoError(t, err)
	assert.NoError(t, r.Close())
	for i := range band1 {
		assert.Equal(t, float32(0), band1[i])
	}

	// And 0.75 becomes 1.5 which must clip down to 1
	writeTestCube(t, working.DataPath, map[int]float32{0: 0.5, 1: 0.75})
	outHigh := filepath.Join(dir, "cliphigh_radcorr.dat")

	_, err = Run(working, source, outHigh, DefaultParams(), &fileaccess.FSAccess{}, &logger.NullLogger{})
	assert.NoError(t, err)

	r, err = cube.OpenReader(outHigh, cube.Dims{Bands: 2, Lines: 4, Samples: 3})
	assert.NoError(t, err)
	band1, err = r.ReadBand(1)
	assert.NoError(t, err)
	assert.NoError(t, r.Close())
	for i := range band1 {
		assert.Equal(t, float32(1), band1[i])
	}
}

func TestRunChunkSizeInvariance(t *testing.T) {
	dir := t.TempDir()
	working, source := makeTestInputs(t, dir)

	outSmall := filepath.Join(dir, "small_radcorr.dat")
	outBig := filepath.Join(dir, "big_radcorr.dat")

	smallParams := DefaultParams()
	smallParams.ChunkRows = 1
	_, err := Run(working, source, outSmall, smallParams, &fileaccess.FSAccess{}, &logger.NullLogger{})
	assert.NoError(t, err)

	_, err = Run(working, source, outBig, DefaultParams(), &fileaccess.FSAccess{}, &logger.NullLogger{})
	assert.NoError(t, err)

	assert.NoError(t, utils.FilesEqual(outSmall, outBig))
}

func TestRunDimensionMismatchWritesNothing(t *testing.T) {
	dir := t.TempDir()
	working, source := makeTestInputs(t, dir)

	// Source header disagrees on samples
	bad := []byte("samples = 9\nlines = 4\nbands = 2\n")
	assert.NoError(t, os.WriteFile(source.HeaderPath, bad, 0644))

	outPath := filepath.Join(dir, "mismatch_radcorr.dat")
	_, err := Run(working, source, outPath, DefaultParams(), &fileaccess.FSAccess{}, &logger.NullLogger{})

	var mismatch *envi.DimensionMismatchError
	assert.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "samples", mismatch.Key)

	// No output artifacts of any kind
	for _, path := range []string{outPath, outPath + ".hdr", outPath + ".run.json"} {
		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr))
	}
}

func TestRunNoWavelengthsIsIdentity(t *testing.T) {
	dir := t.TempDir()
	working, source := makeTestInputs(t, dir)

	// Source header without wavelengths or a parsable scale
	plain := []byte("description = {Radiance}\nsamples = 3\nlines = 4\nbands = 2\n")
	assert.NoError(t, os.WriteFile(source.HeaderPath, plain, 0644))

	outPath := filepath.Join(dir, "identity_radcorr.dat")
	summary, err := Run(working, source, outPath, DefaultParams(), &fileaccess.FSAccess{}, &logger.NullLogger{})
	assert.NoError(t, err)

	// No header scale: default applied and reported as a warning
	assert.Equal(t, 1000.0, summary.RadianceScale)
	assert.False(t, summary.ScaleFromHeader)
	assert.Len(t, summary.Warnings, 1)

	// Both bands fall back to factor 1.0
	assert.Equal(t, 1.0, summary.BandReports[0].Factor)
	assert.Equal(t, 1.0, summary.BandReports[1].Factor)

	assert.NoError(t, utils.FilesEqual(working.DataPath, outPath))
}

func TestDefaultOutputPath(t *testing.T) {
	assert.Equal(t, "/data/afx102_radcorr.dat", DefaultOutputPath("/data/afx102_reflectance.dat"))
	assert.Equal(t, "/data/cube.dat.radcorr", DefaultOutputPath("/data/cube.dat"))
}
