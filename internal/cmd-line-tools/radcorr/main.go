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

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/Trojan32vd/HSI-cl/core/fileaccess"
	"github.com/Trojan32vd/HSI-cl/core/logger"
	"github.com/Trojan32vd/HSI-cl/core/radcorr"
)

func main() {
	fmt.Println("==================================")
	fmt.Println("=  HSI radiometric correction    =")
	fmt.Println("==================================")

	// This can run against local files, or stage everything through S3...

	var argSource = flag.String("source", "local", "Where input files live: local, cloud")
	var argWorkingData = flag.String("working-data", "", "Path to reflectance cube file")
	var argWorkingHeader = flag.String("working-header", "", "Path to reflectance header file")
	var argSourceData = flag.String("source-data", "", "Path to original radiance cube file")
	var argSourceHeader = flag.String("source-header", "", "Path to original radiance header file")
	var argOut = flag.String("out", "", "Output cube path (default derived from working-data)")
	var argChunkRows = flag.Int("chunk-rows", radcorr.DefaultParams().ChunkRows, "Rows per processing chunk")
	var argBandStats = flag.Bool("band-stats", false, "Log per-band stats of corrected output")
	var argBucket = flag.String("bucket", "", "S3 bucket, cloud mode only (paths become keys)")
	var argQuiet = flag.Bool("quiet", false, "Only log errors")

	flag.Parse()

	if len(*argWorkingData) <= 0 || len(*argWorkingHeader) <= 0 {
		log.Fatalln("working-data and working-header must be set")
	}
	if len(*argSourceData) <= 0 || len(*argSourceHeader) <= 0 {
		log.Fatalln("source-data and source-header must be set")
	}

	ilog := &logger.StdOutLogger{}
	if *argQuiet {
		ilog.SetLogLevel(logger.LogError)
	}

	params := radcorr.DefaultParams()
	params.ChunkRows = *argChunkRows
	params.BandStats = *argBandStats

	outPath := *argOut
	if len(outPath) <= 0 {
		outPath = radcorr.DefaultOutputPath(*argWorkingData)
	}

	localFS := &fileaccess.FSAccess{}

	var summary *radcorr.RunSummary
	var err error

	switch *argSource {
	case "local":
		working := radcorr.FilePair{DataPath: *argWorkingData, HeaderPath: *argWorkingHeader}
		source := radcorr.FilePair{DataPath: *argSourceData, HeaderPath: *argSourceHeader}

		summary, err = radcorr.Run(working, source, outPath, params, localFS, ilog)
		if err != nil {
			log.Fatalf("Correction failed: %v", err)
		}
	case "cloud":
		if len(*argBucket) <= 0 {
			log.Fatalln("bucket must be set for cloud runs")
		}

		sess, sessErr := session.NewSession(&aws.Config{Region: aws.String(os.Getenv("AWS_DEFAULT_REGION"))})
		if sessErr != nil {
			log.Fatalf("AWS session failed: %v", sessErr)
		}
		remoteFS := fileaccess.MakeS3Access(s3.New(sess))

		summary, err = runCloud(remoteFS, *argBucket, *argWorkingData, *argWorkingHeader, *argSourceData, *argSourceHeader, outPath, params, ilog)
		if err != nil {
			log.Fatalf("Correction failed: %v", err)
		}
	default:
		log.Fatalf("Unexpected source: %v", *argSource)
	}

	fmt.Printf("Output saved to: %v (run %v)\n", summary.OutputData, summary.RunId)
}

// runCloud - stages inputs from S3 to a temp dir, corrects locally, then
// uploads the results. Cube bytes go up before the header so the
// header-last completion convention holds in the bucket too.
func runCloud(remoteFS fileaccess.S3Access, bucket string, workingData, workingHeader, sourceData, sourceHeader, outKey string, params radcorr.Params, ilog logger.ILogger) (*radcorr.RunSummary, error) {
	workingDir, err := os.MkdirTemp("", "radcorr")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(workingDir)

	stage := func(key string) (string, error) {
		ilog.Infof("Downloading s3://%v/%v", bucket, key)
		data, err := remoteFS.ReadObject(bucket, key)
		if err != nil {
			return "", err
		}

		localPath := filepath.Join(workingDir, path.Base(key))
		return localPath, os.WriteFile(localPath, data, 0777)
	}

	working := radcorr.FilePair{}
	source := radcorr.FilePair{}

	if working.DataPath, err = stage(workingData); err != nil {
		return nil, err
	}
	if working.HeaderPath, err = stage(workingHeader); err != nil {
		return nil, err
	}
	if source.DataPath, err = stage(sourceData); err != nil {
		return nil, err
	}
	if source.HeaderPath, err = stage(sourceHeader); err != nil {
		return nil, err
	}

	outLocal := filepath.Join(workingDir, path.Base(outKey))
	summary, err := radcorr.Run(working, source, outLocal, params, &fileaccess.FSAccess{}, ilog)
	if err != nil {
		return nil, err
	}

	upload := func(localPath string, key string) error {
		ilog.Infof("Uploading s3://%v/%v", bucket, key)
		data, err := os.ReadFile(localPath)
		if err != nil {
			return err
		}
		return remoteFS.WriteObject(bucket, key, data)
	}

	// Data first, header second, summary last
	if err = upload(outLocal, outKey); err != nil {
		return nil, err
	}
	if err = upload(outLocal+".hdr", outKey+".hdr"); err != nil {
		return nil, err
	}
	if err = remoteFS.WriteJSON(bucket, outKey+".run.json", summary); err != nil {
		return nil, err
	}

	summary.OutputData = "s3://" + bucket + "/" + outKey
	return summary, nil
}
