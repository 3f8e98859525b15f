// Copyright 2026 EngFlow Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command cpp2load is a thin driver over the source package: it loads one
// file (or stdin) and either prints the classified debug dump or reports
// accumulated diagnostics. It performs no lexing, parsing, or code
// generation of its own.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/cpp2run/cpp2load/source"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cpp2load",
	Short: "Load and classify a mixed legacy/modern source file",
	Long: `cpp2load drives the source-loading front end over one file (or stdin,
given "-" or "stdin") and reports what it classified, without performing
any downstream lexing, parsing, or code generation.`,
}

var dumpCmd = &cobra.Command{
	Use:   "dump <path|->",
	Short: "Print the classified line dump for a source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

var checkCmd = &cobra.Command{
	Use:   "check <path|->",
	Short: "Load a source file and report accumulated diagnostics",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(dumpCmd, checkCmd)
}

func loadWithSignals(path string) (*source.Source, error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return source.Load(ctx, path)
}

func runDump(cmd *cobra.Command, args []string) error {
	path := args[0]
	src, err := loadWithSignals(path)
	if err != nil {
		return err
	}
	if err := src.WriteDebugDump(cmd.OutOrStdout()); err != nil {
		return err
	}
	printErrors(src, path, cmd.ErrOrStderr())
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]
	src, loadErr := loadWithSignals(path)
	if src == nil {
		return loadErr
	}
	hadError := printErrors(src, path, cmd.ErrOrStderr())
	if loadErr != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, loadErr)
		os.Exit(2)
	}
	if hadError {
		os.Exit(1)
	}
	return nil
}

// printErrors writes one "path:line:column: message" line per accumulated
// diagnostic and reports whether any were written.
func printErrors(src *source.Source, path string, w interface{ Write([]byte) (int, error) }) bool {
	entries := src.Errors()
	for _, e := range entries {
		fmt.Fprintf(w, "%s:%s: %s\n", path, e.Where, e.Message)
	}
	return len(entries) > 0
}
