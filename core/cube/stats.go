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
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// BandSummary - descriptive stats for one band's values. The 2%/98%
// percentiles are what display code uses for contrast stretch, so logging
// them per band makes corrected output easy to sanity check.
type BandSummary struct {
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Mean         float64 `json:"mean"`
	Percentile2  float64 `json:"p2"`
	Percentile98 float64 `json:"p98"`
}

// Summarize - stats over a slice of band values
func Summarize(values []float32) BandSummary {
	if len(values) <= 0 {
		return BandSummary{}
	}

	vals := make([]float64, len(values))
	for i, v := range values {
		vals[i] = float64(v)
	}

	summary := BandSummary{
		Min:  floats.Min(vals),
		Max:  floats.Max(vals),
		Mean: stat.Mean(vals, nil),
	}

	sort.Float64s(vals)
	summary.Percentile2 = stat.Quantile(0.02, stat.Empirical, vals, nil)
	summary.Percentile98 = stat.Quantile(0.98, stat.Empirical, vals, nil)

	return summary
}
