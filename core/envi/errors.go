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

// SyntaxError - malformed header grammar. Line is 1-based, 0 means end of input.
type SyntaxError struct {
	Line int
	Text string
}

func (e *SyntaxError) Error() string {
	if e.Line <= 0 {
		return fmt.Sprintf("header syntax error: %v", e.Text)
	}
	return fmt.Sprintf("header syntax error at line %v: %v", e.Line, e.Text)
}

// MissingFieldError - a key the pipeline requires was not in the header
type MissingFieldError struct {
	Key string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("header is missing required field: %v", e.Key)
}

// DimensionMismatchError - the two input headers disagree on cube shape
type DimensionMismatchError struct {
	Key     string
	Working int
	Source  int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("dimension mismatch between headers: %v is %v in working header, %v in source header", e.Key, e.Working, e.Source)
}
