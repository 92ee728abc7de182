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
	"strconv"
	"strings"
)

// ExtractRadianceScale - digs the radiance scale factor out of free-text
// instrument descriptions phrased like "... mW/cm^2 ... [scaled * 1000.0]".
// The number after the last "*" and before the following "]" is the scale.
// Returns ok=false when the phrasing isn't there or the number won't parse,
// callers fall back to a default.
//
// This value is recorded for traceability only, the correction formula does
// not consume it.
func ExtractRadianceScale(description string) (float64, bool) {
	desc := strings.ToLower(description)

	if !strings.Contains(desc, "mw") || !strings.Contains(desc, "*") {
		return 0, false
	}

	text := desc[strings.LastIndex(desc, "*")+1:]
	if end := strings.Index(text, "]"); end >= 0 {
		text = text[:end]
	}

	scale, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, false
	}
	return scale, true
}

// BandFactor - the per-band correction multiplier: a linear de-trend
// centred on 500nm. Bands without a wavelength table entry are passed
// through unchanged.
func BandFactor(wavelengths []float64, band int) float64 {
	if band < len(wavelengths) {
		return 1.0 + (wavelengths[band]-500.0)/1000.0
	}
	return 1.0
}
