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
	"fmt"
	"os"
)

// AllocationError - the output cube could not be created or pre-sized.
// Nothing has been written when this is returned.
type AllocationError struct {
	Path string
	Err  error
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("failed to allocate output cube %v: %v", e.Path, e.Err)
}

func (e *AllocationError) Unwrap() error {
	return e.Err
}

// Writer - create/truncate access to an output cube. The file is pre-sized
// to its full extent before any data write so allocation failures surface
// up front rather than mid-run.
//
// Flush is a contract, not an optimisation hint: callers that need a
// partially written cube to survive a crash must Flush after each write,
// and the engine does exactly that per chunk.
type Writer struct {
	file *os.File
	dims Dims
	path string
}

// CreateWriter - creates (or truncates) the output cube at full size. On
// allocation failure the partial file is removed and AllocationError
// returned, so a failed create never leaves a file behind.
func CreateWriter(path string, dims Dims) (*Writer, error) {
	if err := dims.Validate(); err != nil {
		return nil, err
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, &AllocationError{Path: path, Err: err}
	}

	if err := file.Truncate(dims.ByteCount()); err != nil {
		file.Close()
		os.Remove(path)
		return nil, &AllocationError{Path: path, Err: err}
	}

	return &Writer{file: file, dims: dims, path: path}, nil
}

func (w *Writer) Dims() Dims {
	return w.dims
}

func (w *Writer) Path() string {
	return w.path
}

// WriteRows - writes whole rows of one band starting at startLine. The
// value count must be an exact multiple of the sample count.
func (w *Writer) WriteRows(band int, startLine int, values []float32) error {
	if len(values) <= 0 || len(values)%w.dims.Samples != 0 {
		return fmt.Errorf("value count %v is not a whole number of %v-sample rows", len(values), w.dims.Samples)
	}

	numLines := len(values) / w.dims.Samples
	if err := w.dims.checkRows(band, startLine, numLines); err != nil {
		return err
	}

	buf := make([]byte, len(values)*bytesPerValue)
	encodeValues(values, buf)

	_, err := w.file.WriteAt(buf, w.dims.offset(band, startLine))
	return err
}

// Flush - pushes written data to durable storage before returning
func (w *Writer) Flush() error {
	return w.file.Sync()
}

func (w *Writer) Close() error {
	return w.file.Close()
}
