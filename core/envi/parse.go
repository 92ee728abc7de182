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
	"strconv"
	"strings"

	"github.com/Trojan32vd/HSI-cl/core/utils"
)

// The magic first line ENVI writes at the top of every header. Tolerated
// anywhere a declaration could start, never stored as a field.
const headerMagic = "ENVI"

// ReadHeaderFile - reads and parses a header from disk
func ReadHeaderFile(path string) (Header, error) {
	lines, err := utils.ReadFileLines(path)
	if err != nil {
		return nil, err
	}
	return ParseHeaderLines(lines)
}

// ParseHeaderText - parses a full header given as one string
func ParseHeaderText(text string) (Header, error) {
	return ParseHeaderLines(strings.Split(text, "\n"))
}

// ParseHeaderLines - the header grammar, line by line. Two states: normally
// we look for "key = value" declarations, but an unclosed "{" puts us into
// list-collecting mode for the named key until a line containing "}" shows up.
func ParseHeaderLines(lines []string) (Header, error) {
	header := Header{}

	collectKey := ""
	collectVals := []string{}

	for idx, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) <= 0 {
			continue
		}

		if len(collectKey) > 0 {
			closeBrace := strings.Index(line, "}")
			if closeBrace < 0 {
				collectVals = appendListValues(collectVals, line)
				continue
			}

			collectVals = appendListValues(collectVals, line[:closeBrace])
			header[collectKey] = coerceList(collectVals)
			collectKey = ""
			collectVals = []string{}
			continue
		}

		eq := strings.Index(line, "=")
		if eq < 0 {
			if strings.EqualFold(line, headerMagic) {
				continue
			}
			return nil, &SyntaxError{Line: idx + 1, Text: "expected key = value, got: " + line}
		}

		// Split on the first = only, descriptions can contain more of them
		key := strings.ToLower(strings.TrimSpace(line[:eq]))
		value := strings.TrimSpace(line[eq+1:])

		openBrace := strings.Index(value, "{")
		if openBrace < 0 {
			header[key] = coerceValue(value)
			continue
		}

		after := value[openBrace+1:]
		closeBrace := strings.Index(after, "}")
		if closeBrace >= 0 {
			// Single line list
			header[key] = coerceValue(strings.TrimSpace(after[:closeBrace]))
		} else {
			collectKey = key
			collectVals = appendListValues([]string{}, after)
		}
	}

	if len(collectKey) > 0 {
		return nil, &SyntaxError{Text: "unterminated list for key: " + collectKey}
	}

	return header, nil
}

func appendListValues(vals []string, segment string) []string {
	for _, piece := range strings.Split(segment, ",") {
		vals = append(vals, strings.TrimSpace(piece))
	}
	return vals
}

// coerceValue - decode an assembled scalar or single-line list value.
// A comma forces the list path - even "1, 2, 3" becomes a float list, never
// an integer. Dimension fields rely on that: samples/lines/bands can only
// ever decode as scalar integers.
func coerceValue(value string) FieldValue {
	if strings.Contains(value, ",") {
		return coerceList(strings.Split(value, ","))
	}

	if i, err := strconv.Atoi(value); err == nil {
		return IntField(i)
	}
	return TextField(value)
}

// coerceList - floats if every element parses, text list otherwise
func coerceList(pieces []string) FieldValue {
	vals := []string{}
	for _, piece := range pieces {
		piece = strings.TrimSpace(piece)
		if len(piece) > 0 {
			vals = append(vals, piece)
		}
	}

	floats := make([]float64, 0, len(vals))
	for _, v := range vals {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return TextListField(vals)
		}
		floats = append(floats, f)
	}

	if len(floats) <= 0 {
		return TextListField(vals)
	}
	return FloatListField(floats)
}
