// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package analysis loads declaration sets and builds the partial order and the flows of their program points.
package analysis

import (
	"fmt"
	"os"
	"time"

	"github.com/awslabs/ar-pptflow/analysis/config"
	"github.com/awslabs/ar-pptflow/analysis/dataflow"
	"github.com/awslabs/ar-pptflow/analysis/decls"
	"github.com/awslabs/ar-pptflow/analysis/ppt"
)

// LoadedPoints represents a declaration set with its partial order built.
type LoadedPoints struct {
	// Points are the top-level program points, in declaration order
	Points *ppt.Map
	// Analyzer is the analyzer that built the partial order. It is needed to bind slices.
	Analyzer *dataflow.Analyzer
}

// LoadPoints reads the declaration files, builds the partial order of the declared points and their flows, and
// splits the conditional points. When the config asks for dumps, the point and flow dumps are written to report
// files.
func LoadPoints(cfg *config.Config, logger *config.LogGroup, filenames []string) (LoadedPoints, error) {
	if len(filenames) == 0 {
		return LoadedPoints{}, fmt.Errorf("no declaration file")
	}
	start := time.Now()
	d, err := decls.Load(filenames...)
	if err != nil {
		return LoadedPoints{}, fmt.Errorf("could not load declarations: %w", err)
	}
	logger.Debugf("Loaded %d program points from %d files", d.Points.Len(), len(filenames))

	a := dataflow.NewAnalyzer(cfg, logger)
	if err := a.BuildRelations(d.Points); err != nil {
		return LoadedPoints{}, fmt.Errorf("failed to build partial order: %w", err)
	}
	if err := d.SplitConditionals(); err != nil {
		return LoadedPoints{}, err
	}
	logger.Infof("Partial order built in %3.4f s", time.Since(start).Seconds())

	if cfg.DumpPoints {
		if err := writeReport(cfg, logger, "points-*.txt", func(f *os.File) error {
			return dataflow.DumpPoints(f, d.Points)
		}); err != nil {
			return LoadedPoints{}, err
		}
	}
	if cfg.DumpFlow {
		if err := writeReport(cfg, logger, "flow-*.txt", func(f *os.File) error {
			return dataflow.DumpFlow(f, d.Points)
		}); err != nil {
			return LoadedPoints{}, err
		}
	}
	return LoadedPoints{Points: d.Points, Analyzer: a}, nil
}

func writeReport(cfg *config.Config, logger *config.LogGroup, pattern string, write func(*os.File) error) error {
	f, err := cfg.CreateReportFile(pattern)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := write(f); err != nil {
		return fmt.Errorf("could not write report %s: %w", f.Name(), err)
	}
	logger.Infof("Report written in %s", f.Name())
	return nil
}
