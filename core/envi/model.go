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

package envi

import "fmt"

// Model - the validated view over two parsed headers that the correction
// pipeline needs. Built once, immutable afterwards.
type Model struct {
	Samples int
	Lines   int
	Bands   int

	// One entry per band when present. May legally be absent (correction
	// degrades to identity) and may legally be the wrong length (warning,
	// bands beyond the table get factor 1.0).
	Wavelengths []float64

	// Description text from the source header, lists flattened with spaces.
	// The radiance scale heuristic digs through this.
	Description string

	// Optional pass-through fields, copied to the output header if present
	WavelengthUnits string
	AcquisitionDate string
	SensorType      string
}

// BuildModel - validates and merges the working (reflectance) and source
// (original radiance) headers. The dimensions must agree exactly, everything
// else is taken from the source header by preference.
func BuildModel(working Header, source Header) (Model, []string, error) {
	warnings := []string{}
	m := Model{}

	dims := []struct {
		key string
		dst *int
	}{
		{KeySamples, &m.Samples},
		{KeyLines, &m.Lines},
		{KeyBands, &m.Bands},
	}

	for _, dim := range dims {
		workingVal, err := working.Int(dim.key)
		if err != nil {
			return m, warnings, err
		}
		sourceVal, err := source.Int(dim.key)
		if err != nil {
			return m, warnings, err
		}

		if workingVal != sourceVal {
			return m, warnings, &DimensionMismatchError{Key: dim.key, Working: workingVal, Source: sourceVal}
		}
		if workingVal <= 0 {
			return m, warnings, fmt.Errorf("header field %v must be positive, got: %v", dim.key, workingVal)
		}

		*dim.dst = workingVal
	}

	// Wavelengths preferably come from the source header, that's the one
	// describing the instrument as it measured
	if w, ok := source.Floats(KeyWavelength); ok {
		m.Wavelengths = w
	} else if w, ok := working.Floats(KeyWavelength); ok {
		m.Wavelengths = w
	}

	if len(m.Wavelengths) > 0 && len(m.Wavelengths) != m.Bands {
		warnings = append(warnings, fmt.Sprintf("wavelength count %v does not match band count %v, bands beyond the table get no wavelength correction", len(m.Wavelengths), m.Bands))
	}

	m.Description = source.JoinedText(KeyDescription)
	m.WavelengthUnits = source.JoinedText(KeyWavelengthUnits)
	m.AcquisitionDate = source.JoinedText(KeyAcquisitionDate)
	m.SensorType = source.JoinedText(KeySensorType)

	return m, warnings, nil
}
