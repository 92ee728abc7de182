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

// Package envi reads and writes the ENVI text header format that travels
// alongside band-sequential binary cube files. The grammar is deliberately
// small: "key = value" scalars and "key = { v1, v2, ... }" lists which may
// span multiple lines. Keys are case-insensitive, a repeated key keeps the
// last value seen.
package envi

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// FieldDataType - tag for the FieldValue variant
type FieldDataType int

const (
	// FieldText - scalar free text
	FieldText FieldDataType = iota

	// FieldInt - scalar integer (samples, lines, bands, data type...)
	FieldInt FieldDataType = iota

	// FieldFloatList - list where every element parsed as a float
	FieldFloatList FieldDataType = iota

	// FieldTextList - list fallback when elements aren't all floats
	FieldTextList FieldDataType = iota
)

// FieldValue - A variant to store an individual header value
type FieldValue struct {
	SValue      string
	IValue      int
	FloatValues []float64
	TextValues  []string
	DataType    FieldDataType
}

// TextField - short-hand for creating a scalar text field variant
func TextField(s string) FieldValue {
	return FieldValue{SValue: s, DataType: FieldText}
}

// IntField - short-hand for creating an integer field variant
func IntField(i int) FieldValue {
	return FieldValue{IValue: i, DataType: FieldInt}
}

// FloatListField - short-hand for creating a float list field variant
func FloatListField(f []float64) FieldValue {
	return FieldValue{FloatValues: f, DataType: FieldFloatList}
}

// TextListField - short-hand for creating a text list field variant
func TextListField(s []string) FieldValue {
	return FieldValue{TextValues: s, DataType: FieldTextList}
}

// Header - Map of lowercase key->field value variant
type Header map[string]FieldValue

// Keys the correction pipeline cares about. ENVI keys can contain spaces.
const (
	KeySamples         = "samples"
	KeyLines           = "lines"
	KeyBands           = "bands"
	KeyWavelength      = "wavelength"
	KeyDescription     = "description"
	KeyWavelengthUnits = "wavelength units"
	KeyAcquisitionDate = "acquisition date"
	KeySensorType      = "sensor type"
)

func (h Header) Has(key string) bool {
	_, ok := h[key]
	return ok
}

// Int - required integer field, MissingFieldError if absent
func (h Header) Int(key string) (int, error) {
	v, ok := h[key]
	if !ok {
		return 0, &MissingFieldError{Key: key}
	}
	if v.DataType != FieldInt {
		return 0, fmt.Errorf("header field %v is not an integer", key)
	}
	return v.IValue, nil
}

// Floats - float list field, ok=false if absent or not a float list
func (h Header) Floats(key string) ([]float64, bool) {
	v, ok := h[key]
	if !ok || v.DataType != FieldFloatList {
		return nil, false
	}
	return v.FloatValues, true
}

// JoinedText - field flattened to one string. List elements are joined with
// single spaces, which is what the radiance scale heuristic expects when a
// description was split over multiple lines.
func (h Header) JoinedText(key string) string {
	v, ok := h[key]
	if !ok {
		return ""
	}

	switch v.DataType {
	case FieldInt:
		return strconv.Itoa(v.IValue)
	case FieldFloatList:
		parts := make([]string, 0, len(v.FloatValues))
		for _, f := range v.FloatValues {
			parts = append(parts, fmt.Sprintf("%v", f))
		}
		return strings.Join(parts, " ")
	case FieldTextList:
		return strings.Join(v.TextValues, " ")
	}
	return v.SValue
}

// ToString - for tests. Keys sorted so output is stable, values tagged with
// their data type.
func (h Header) ToString() string {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := "["
	prefix := ""

	for _, k := range keys {
		result += prefix + k + ":"

		v := h[k]
		switch v.DataType {
		case FieldText:
			result += v.SValue + "/s"
		case FieldInt:
			result += fmt.Sprintf("%v/i", v.IValue)
		case FieldFloatList:
			result += fmt.Sprintf("%v/f", v.FloatValues)
		case FieldTextList:
			result += fmt.Sprintf("%v/sl", v.TextValues)
		}
		prefix = " "
	}
	result += "]"
	return result
}
