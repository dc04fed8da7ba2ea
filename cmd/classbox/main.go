/*
 * classbox - a partial interpreter for compiled class files
 * Copyright (c) 2026 by the classbox authors.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Command classbox is the CLI launcher around the core interpreter: it
// parses a class file and either dumps its structure or runs it.
package main

import (
	"bytes"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jacobin-run/classbox/internal/classfile"
	"github.com/jacobin-run/classbox/internal/globals"
	"github.com/jacobin-run/classbox/internal/shutdown"
	"github.com/jacobin-run/classbox/internal/trace"
	"github.com/jacobin-run/classbox/internal/vm"
)

func main() {
	opts := globals.Default()

	root := &cobra.Command{
		Use:           "classbox <class-file>",
		Short:         "A partial interpreter for compiled class files",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			trace.SetVerbose(opts.Trace)
			trace.Enabled = opts.Trace
			trace.Instructions = opts.Trace

			path := args[0]
			if !strings.HasSuffix(path, ".class") {
				path += ".class"
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			cf, err := classfile.Parse(bytes.NewReader(data))
			if err != nil {
				return err
			}

			if opts.Dump {
				dumpClass(cmd.OutOrStdout(), cf)
				return nil
			}

			var image vm.RuntimeImageProvider
			if opts.RuntimeImagePath != "" {
				image = dirRuntimeImage{root: opts.RuntimeImagePath}
			}
			machine := vm.New(cmd.OutOrStdout(), vm.SystemClock{}, image)
			return machine.RunMain(cf.ThisClassName)
		},
	}

	root.Flags().BoolVar(&opts.Dump, "dump", false, "print the parsed class structure instead of executing")
	root.Flags().BoolVar(&opts.Trace, "trace", false, "enable per-instruction execution trace")
	root.Flags().StringVar(&opts.RuntimeImagePath, "runtime-image", "", "directory providing classes absent from the filesystem")

	if err := root.Execute(); err != nil {
		trace.Error(err.Error())
		shutdown.Exit(shutdown.AppException)
	}
}
