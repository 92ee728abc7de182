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

// Package radcorr applies per-band radiometric correction to a reflectance
// cube, streaming row chunks through a bounded amount of memory and
// flushing the output after every chunk. The paired output header is only
// written once every data byte is durable, so a header's existence is the
// signal that a cube is complete.
package radcorr

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Trojan32vd/HSI-cl/core/cube"
	"github.com/Trojan32vd/HSI-cl/core/envi"
	"github.com/Trojan32vd/HSI-cl/core/fileaccess"
	"github.com/Trojan32vd/HSI-cl/core/logger"
)

// FilePair - a binary cube file and its companion text header
type FilePair struct {
	DataPath   string
	HeaderPath string
}

// Params - run configuration. Zero value is not useful, start from
// DefaultParams.
type Params struct {
	// Rows per processing chunk. Bounds memory use: the largest buffer
	// held at once is ChunkRows*samples float32s.
	ChunkRows int

	// Scale factor assumed when the source description doesn't carry one
	DefaultRadianceScale float64

	// Compute and log per-band stats of the corrected output. Costs one
	// band of float64s in memory, off by default.
	BandStats bool
}

func DefaultParams() Params {
	return Params{
		ChunkRows:            500,
		DefaultRadianceScale: 1000.0,
	}
}

// BandReport - per-band entry in the run summary
type BandReport struct {
	Band       int               `json:"band"`
	Wavelength float64           `json:"wavelength,omitempty"`
	Factor     float64           `json:"factor"`
	Stats      *cube.BandSummary `json:"stats,omitempty"`
}

// RunSummary - everything worth knowing about a completed run, written as
// JSON next to the output cube for traceability
type RunSummary struct {
	RunId string `json:"runId"`

	WorkingData  string `json:"workingData"`
	SourceData   string `json:"sourceData"`
	OutputData   string `json:"outputData"`
	OutputHeader string `json:"outputHeader"`

	Bands   int `json:"bands"`
	Lines   int `json:"lines"`
	Samples int `json:"samples"`

	RadianceScale   float64 `json:"radianceScale"`
	ScaleFromHeader bool    `json:"scaleFromHeader"`

	BandReports []BandReport `json:"bandReports"`
	Warnings    []string     `json:"warnings"`
}

// DefaultOutputPath - where the corrected cube goes if the caller doesn't
// say: reflectance naming swaps to radcorr, anything else gets a suffix
func DefaultOutputPath(workingDataPath string) string {
	if strings.Contains(workingDataPath, "reflectance") {
		return strings.ReplaceAll(workingDataPath, "reflectance", "radcorr")
	}
	return workingDataPath + ".radcorr"
}

// Run - the whole correction pipeline: parse and reconcile both headers,
// stream the working cube through per-band correction into a pre-sized
// output cube, then write the paired header and run summary.
//
// Bands are processed in ascending order, each as a series of row chunks
// that are read, scaled by the band factor, clipped to [0,1], written and
// flushed before the next chunk starts. If anything fails mid-run the
// output header is never written and the partial cube must be treated as
// invalid by consumers.
func Run(working FilePair, source FilePair, outDataPath string, params Params, localFS fileaccess.FileAccess, jobLog logger.ILogger) (*RunSummary, error) {
	if params.ChunkRows <= 0 {
		params.ChunkRows = DefaultParams().ChunkRows
	}

	workingHeader, err := envi.ReadHeaderFile(working.HeaderPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read working header %v", working.HeaderPath)
	}
	sourceHeader, err := envi.ReadHeaderFile(source.HeaderPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read source header %v", source.HeaderPath)
	}

	model, warnings, err := envi.BuildModel(workingHeader, sourceHeader)
	if err != nil {
		return nil, err
	}

	summary := &RunSummary{
		RunId:        uuid.New().String(),
		WorkingData:  working.DataPath,
		SourceData:   source.DataPath,
		OutputData:   outDataPath,
		OutputHeader: outDataPath + ".hdr",
		Bands:        model.Bands,
		Lines:        model.Lines,
		Samples:      model.Samples,
		Warnings:     warnings,
	}

	jobLog.Infof("Correcting %v: %v bands, %v lines, %v samples", working.DataPath, model.Bands, model.Lines, model.Samples)
	if len(model.Wavelengths) > 0 {
		jobLog.Infof("Found %v wavelength values", len(model.Wavelengths))
	}
	for _, warning := range warnings {
		jobLog.Infof("WARNING: %v", warning)
	}

	summary.RadianceScale, summary.ScaleFromHeader = ExtractRadianceScale(model.Description)
	if summary.ScaleFromHeader {
		jobLog.Infof("Found radiance scale factor: %v", summary.RadianceScale)
	} else {
		summary.RadianceScale = params.DefaultRadianceScale
		warning := fmt.Sprintf("could not read radiance scale factor from source description, assuming %v", params.DefaultRadianceScale)
		summary.Warnings = append(summary.Warnings, warning)
		jobLog.Infof("WARNING: %v", warning)
	}

	dims := cube.Dims{Bands: model.Bands, Lines: model.Lines, Samples: model.Samples}

	reader, err := cube.OpenReader(working.DataPath, dims)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open input cube %v", working.DataPath)
	}
	defer reader.Close()

	writer, err := cube.CreateWriter(outDataPath, dims)
	if err != nil {
		return nil, err
	}

	for band := 0; band < dims.Bands; band++ {
		factor := BandFactor(model.Wavelengths, band)
		jobLog.Debugf("Processing band %v/%v, factor %v", band+1, dims.Bands, factor)

		report := BandReport{Band: band, Factor: factor}
		if band < len(model.Wavelengths) {
			report.Wavelength = model.Wavelengths[band]
		}

		var bandValues []float32
		if params.BandStats {
			bandValues = make([]float32, 0, dims.Lines*dims.Samples)
		}

		for startLine := 0; startLine < dims.Lines; startLine += params.ChunkRows {
			numLines := params.ChunkRows
			if startLine+numLines > dims.Lines {
				numLines = dims.Lines - startLine
			}

			values, err := reader.ReadRows(band, startLine, numLines)
			if err != nil {
				writer.Close()
				return nil, errors.Wrapf(err, "failed reading band %v lines %v-%v", band, startLine, startLine+numLines-1)
			}

			correctChunk(values, factor)

			if err = writer.WriteRows(band, startLine, values); err != nil {
				writer.Close()
				return nil, errors.Wrapf(err, "failed writing band %v lines %v-%v", band, startLine, startLine+numLines-1)
			}

			// Durability barrier: a crash after this point loses nothing
			// written so far
			if err = writer.Flush(); err != nil {
				writer.Close()
				return nil, errors.Wrap(err, "failed to flush output cube")
			}

			if params.BandStats {
				bandValues = append(bandValues, values...)
			}
		}

		if params.BandStats {
			stats := cube.Summarize(bandValues)
			report.Stats = &stats
			jobLog.Infof("Band %v: min=%v max=%v mean=%v p2=%v p98=%v", band, stats.Min, stats.Max, stats.Mean, stats.Percentile2, stats.Percentile98)
		}

		summary.BandReports = append(summary.BandReports, report)
	}

	if err = writer.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to close output cube")
	}

	// All data bytes are durable, now (and only now) the header can appear
	if err = envi.WriteHeaderFile(summary.OutputHeader, model); err != nil {
		return nil, errors.Wrapf(err, "failed to write output header %v", summary.OutputHeader)
	}

	if err = localFS.WriteJSON("", outDataPath+".run.json", summary); err != nil {
		return nil, errors.Wrap(err, "failed to write run summary")
	}

	jobLog.Infof("Radiometric correction complete: %v", outDataPath)
	return summary, nil
}

// correctChunk - scale then clip to [0,1] in place. The multiply happens in
// float64 before narrowing back, matching how the numbers behaved upstream.
func correctChunk(values []float32, factor float64) {
	for i, v := range values {
		corrected := float64(v) * factor
		if corrected < 0 {
			corrected = 0
		} else if corrected > 1 {
			corrected = 1
		}
		values[i] = float32(corrected)
	}
}
