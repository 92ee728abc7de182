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

import "fmt"

func ExampleExtractRadianceScale() {
	show := func(desc string) {
		scale, ok := ExtractRadianceScale(desc)
		fmt.Printf("%v|%v\n", scale, ok)
	}

	show("AFX radiance in mW/cm^2/sr/nm units [scaled * 250.5]")
	// Pattern search is case-insensitive
	show("AFX RADIANCE IN MW UNITS [SCALED * 1000]")
	// A missing closing bracket still reads to end of text
	show("mw units scaled * 42.5")
	// No scale phrasing at all
	show("plain reflectance data")
	// Phrasing present but the number won't parse
	show("mw units [scaled * banana]")

	// Output:
	// 250.5|true
	// 1000|true
	// 42.5|true
	// 0|false
	// 0|false
}

func ExampleBandFactor() {
	wavelengths := []float64{500, 1500, 2500}

	// 500nm is the centre point, identity
	fmt.Println(BandFactor(wavelengths, 0))
	fmt.Println(BandFactor(wavelengths, 1))
	fmt.Println(BandFactor(wavelengths, 2))
	// Bands past the end of the table pass through unchanged
	fmt.Println(BandFactor(wavelengths, 3))
	fmt.Println(BandFactor(nil, 0))

	// Output:
	// 1
	// 2
	// 3
	// 1
	// 1
}
