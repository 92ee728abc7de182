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

import (
	"fmt"
	"os"
	"strings"
)

// Fixed fields describing the binary layout the correction pipeline writes:
// data type 4 = 32-bit float, interleave bsq = band sequential, byte order
// 0 = little endian. These never vary for our output.
const outputDescription = "Radiometrically corrected reflectance data"

// SerializeModel - renders a model back to header text in the same grammar
// we parse. Optional fields are omitted entirely when absent, never written
// as empty values.
func SerializeModel(m Model) string {
	var sb strings.Builder

	sb.WriteString(headerMagic + "\n")
	sb.WriteString("description = {" + outputDescription + "}\n")
	fmt.Fprintf(&sb, "samples = %d\n", m.Samples)
	fmt.Fprintf(&sb, "lines = %d\n", m.Lines)
	fmt.Fprintf(&sb, "bands = %d\n", m.Bands)
	sb.WriteString("header offset = 0\n")
	sb.WriteString("file type = ENVI Standard\n")
	sb.WriteString("data type = 4\n")
	sb.WriteString("interleave = bsq\n")
	sb.WriteString("byte order = 0\n")

	if len(m.Wavelengths) > 0 {
		sb.WriteString("wavelength = {\n")
		for i, w := range m.Wavelengths {
			end := ",\n"
			if i == len(m.Wavelengths)-1 {
				end = "}\n"
			}
			fmt.Fprintf(&sb, " %0.6f%v", w, end)
		}
	}

	if len(m.WavelengthUnits) > 0 {
		fmt.Fprintf(&sb, "wavelength units = %v\n", m.WavelengthUnits)
	}
	if len(m.AcquisitionDate) > 0 {
		fmt.Fprintf(&sb, "acquisition date = %v\n", m.AcquisitionDate)
	}
	if len(m.SensorType) > 0 {
		fmt.Fprintf(&sb, "sensor type = %v\n", m.SensorType)
	}

	return sb.String()
}

// WriteHeaderFile - writes the paired header for an output cube. Callers
// must only do this once all cube data is flushed - the header existing is
// the signal to consumers that the cube is complete.
func WriteHeaderFile(path string, m Model) error {
	return os.WriteFile(path, []byte(SerializeModel(m)), 0777)
}
