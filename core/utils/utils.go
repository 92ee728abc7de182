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

package utils

import (
	"bufio"
	"fmt"
	"os"
)

// Simple Go helper functions
// stuff that you'd expect to be part of the std lib but aren't

const PrettyPrintIndentForJSON = "    "

// ReadFileLines - reads an entire file as individual lines. Header files are
// small so there is no issue pulling the whole thing into memory.
func ReadFileLines(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lines := []string{}
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

// FilesEqual - byte-for-byte comparison, returns a descriptive error on the
// first difference. Used by tests to prove chunked output is identical.
func FilesEqual(aPath, bPath string) error {
	abytes, err := os.ReadFile(aPath)
	if err != nil {
		return err
	}

	bbytes, err := os.ReadFile(bPath)
	if err != nil {
		return err
	}

	if len(abytes) != len(bbytes) {
		return fmt.Errorf("%v length (%v bytes) does not match %v length (%v bytes)", aPath, len(abytes), bPath, len(bbytes))
	}

	for c := range abytes {
		if abytes[c] != bbytes[c] {
			return fmt.Errorf("%v differs from %v at idx=%v '%v'!='%v'", aPath, bPath, c, string(abytes[c]), string(bbytes[c]))
		}
	}

	return nil
}
