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

package config

import (
	"fmt"
	"os"
	"path"

	"gopkg.in/yaml.v3"
)

var (
	// The global config file
	configFile string
)

// SetGlobalConfig sets the global config filename
func SetGlobalConfig(filename string) {
	configFile = filename
}

// LoadGlobal loads the config file that has been set by SetGlobalConfig
func LoadGlobal() (*Config, error) {
	return Load(configFile)
}

// Config holds the options of the program point relation builder and of the derivation step.
// To add elements to a config file, add fields to this struct.
// If some field is not defined in the config file, it keeps its default value from NewDefault.
// private fields are not populated from a yaml file, but computed after initialization
type Config struct {
	Options `yaml:"options"`

	// Derivations selects which derived variables are created at each program point
	Derivations DerivationOptions `yaml:"derivations"`
}

// DerivationOptions enables or disables each kind of derived variable
type DerivationOptions struct {
	// SequenceLength enables size(a[]) for every array variable a[]
	SequenceLength bool `yaml:"sequence-length"`

	// SequenceLengthShift enables size(a[])-1 for every array variable a[]. Has no effect if SequenceLength is false.
	SequenceLengthShift bool `yaml:"sequence-length-shift"`

	// SequencesUnion enables union(a[], b[]) for every pair of string array variables
	SequencesUnion bool `yaml:"sequences-union"`
}

// Options are the general options of the tool
type Options struct {
	// ReportsDir is the directory where the dumps are written. If the config enables a dump but does not specify a
	// ReportsDir, then a temporary directory is created next to the config file.
	ReportsDir string `yaml:"reports-dir"`

	// DumpPoints writes the partial order of every program point in a file named points-*.out in the reports dir
	DumpPoints bool `yaml:"dump-points"`

	// DumpFlow writes the flow tables of every program point in a file named flow-*.out in the reports dir
	DumpFlow bool `yaml:"dump-flow"`

	// CheckAcyclic checks that the variable partial order has no cycle before computing the flows. A cycle makes
	// the transitive flow computation diverge.
	CheckAcyclic bool `yaml:"check-acyclic"`

	// Loglevel controls the verbosity of the tool
	LogLevel int `yaml:"log-level"`

	// Suppress warnings
	SilenceWarn bool `yaml:"silence-warn"`
}

// NewDefault returns the default config: every derivation enabled, no dumps, info logging.
func NewDefault() *Config {
	return &Config{
		Derivations: DerivationOptions{
			SequenceLength:      true,
			SequenceLengthShift: true,
			SequencesUnion:      true,
		},
		Options: Options{
			ReportsDir:   "",
			DumpPoints:   false,
			DumpFlow:     false,
			CheckAcyclic: true,
			LogLevel:     int(InfoLevel),
			SilenceWarn:  false,
		},
	}
}

// Load reads a configuration from a file
func Load(filename string) (*Config, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}
	return LoadFromBytes(filename, b)
}

// LoadFromBytes reads a configuration from the contents of a file. The filename is used to resolve relative paths
// and to place the reports directory.
func LoadFromBytes(filename string, b []byte) (*Config, error) {
	cfg := NewDefault()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("could not unmarshal config file %s: %w", filename, err)
	}

	if cfg.DumpPoints || cfg.DumpFlow {
		if err := setReportsDir(cfg, filename); err != nil {
			return nil, err
		}
	}

	// If logLevel has not been specified (i.e. it is 0) set the default to Info
	if cfg.LogLevel == 0 {
		cfg.LogLevel = int(InfoLevel)
	}
	if cfg.LogLevel < int(ErrLevel) || cfg.LogLevel > int(TraceLevel) {
		return nil, fmt.Errorf("invalid log-level %d in %s: must be between %d and %d", cfg.LogLevel, filename,
			ErrLevel, TraceLevel)
	}

	return cfg, nil
}

func setReportsDir(c *Config, filename string) error {
	if c.ReportsDir == "" {
		tmpdir, err := os.MkdirTemp(path.Dir(filename), "*-report")
		if err != nil {
			return fmt.Errorf("could not create temp dir for reports")
		}
		c.ReportsDir = tmpdir
	} else {
		err := os.Mkdir(c.ReportsDir, 0750)
		if err != nil {
			if !os.IsExist(err) {
				return fmt.Errorf("could not create directory %s", c.ReportsDir)
			}
		}
	}
	return nil
}

// CreateReportFile creates a new file in the reports directory with a name matching the pattern, as in os.CreateTemp.
func (c Config) CreateReportFile(pattern string) (*os.File, error) {
	if c.ReportsDir == "" {
		return nil, fmt.Errorf("no reports directory configured")
	}
	f, err := os.CreateTemp(c.ReportsDir, pattern)
	if err != nil {
		return nil, fmt.Errorf("could not create report file %s in %s: %w", pattern, c.ReportsDir, err)
	}
	return f, nil
}

// Verbose returns true is the configuration verbosity setting is larger than Info (i.e. Debug or Trace)
func (c Config) Verbose() bool {
	return c.LogLevel >= int(DebugLevel)
}
