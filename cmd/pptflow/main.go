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

package main

import (
	"fmt"
	"os"

	"github.com/awslabs/ar-pptflow/analysis"
	"github.com/awslabs/ar-pptflow/cmd/pptflow/dump"
	"github.com/awslabs/ar-pptflow/cmd/pptflow/flow"
	"github.com/awslabs/ar-pptflow/cmd/pptflow/slice"
	"github.com/awslabs/ar-pptflow/cmd/pptflow/tools"
)

const usage = `pptflow: program point partial order and flows
Usage:
  pptflow [tool] [options] <declaration file(s)>
Tools:
  - dump: prints the partial order of every program point, and the flows computed from it
  - flow: prints where the samples or the invariants of one program point flow to
  - slice: prints the adjacencies of a slice of one program point
Examples:
  Dump everything: pptflow dump -config config.yaml decls.yaml
  Print a sample flow: pptflow flow -point 'pkg.Stack.push(int):::EXIT' decls.yaml`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "error: expected subcommand\n%s\n", usage)
		os.Exit(2)
	}

	// hardcode help flag
	if snd := os.Args[1]; snd == "-help" || snd == "--help" {
		fmt.Println(usage)
		return
	}

	// hardcode version flag
	if snd := os.Args[1]; snd == "-version" || snd == "--version" {
		fmt.Println(analysis.Version)
		return
	}

	args := os.Args[2:]
	switch cmd := os.Args[1]; cmd {
	case "dump":
		flags, err := dump.NewFlags(args)
		if err != nil {
			errExit(err)
		}
		if err := dump.Run(flags); err != nil {
			errExit(err)
		}
	case "flow":
		flags, err := flow.NewFlags(args)
		if err != nil {
			errExit(err)
		}
		if err := flow.Run(flags); err != nil {
			errExit(err)
		}
	case "slice":
		flags, err := slice.NewFlags(args)
		if err != nil {
			errExit(err)
		}
		if err := slice.Run(flags); err != nil {
			errExit(err)
		}
	default:
		fmt.Fprintf(os.Stderr, "error: unexpected command: %v\n", cmd)
		fmt.Fprintf(os.Stderr, "usage:\n%s\n", usage)
		os.Exit(2)
	}
}

func errExit(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	hint := tools.HintForErrorMessage(err.Error())
	if hint != "" {
		fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
	}
	os.Exit(2)
}
