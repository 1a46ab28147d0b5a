// workflow-activities-pdf - workflow activities for manipulating PDF files
// Copyright (C) 2025  The workflow-activities-pdf authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Pdf-activity runs the PDF workflow activities on files.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/vertigis/workflow-activities-pdf/activity"
	"github.com/vertigis/workflow-activities-pdf/tools/internal/buildinfo"
	"github.com/vertigis/workflow-activities-pdf/tools/internal/profile"
)

var (
	outArg     = flag.String("o", "", "output `file` (default \"out.pdf\", or stdout for run), - for stdout")
	force      = flag.Bool("f", false, "overwrite output file if it exists")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to `file`")
	memprofile = flag.String("memprofile", "", "write memory profile to `file`")
	version    = flag.Bool("version", false, "print version information and exit")
)

// errUsage is returned by the commands when the arguments are invalid.
// The usage message of the command has been printed already.
var errUsage = errors.New("invalid arguments")

// A command reads its arguments and runs one activity.
type command struct {
	name  string
	args  string
	help  string
	run   func(args []string) ([]byte, error)
	isPDF bool
}

var commands = []*command{
	{"create", "[options]", "create a PDF file with one blank page", runCreate, true},
	{"merge", "a.pdf b.pdf ...", "concatenate the pages of PDF files", runMerge, true},
	{"text", "[options] in.pdf TEXT", "draw a text on a page", runText, true},
	{"image", "[options] in.pdf image", "draw a JPEG or PNG image on a page", runImage, true},
	{"georef", "[options] in.pdf", "add a georeferenced viewport to a page", runGeoref, true},
	{"run", "NAME input.json", "run an activity on a JSON input record", runJSON, false},
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "pdf-activity - run PDF workflow activities on files\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", buildinfo.Short("pdf-activity"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  pdf-activity [options] <command> [arguments]\n\n")
		fmt.Fprintf(os.Stderr, "Commands:\n")
		for _, cmd := range commands {
			fmt.Fprintf(os.Stderr, "  %s %s\n        %s\n", cmd.name, cmd.args, cmd.help)
		}
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nActivities for the run command: %s\n",
			strings.Join(activity.Names(), ", "))
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  pdf-activity -o blank.pdf create -title \"Site plan\" -lang en-US\n")
		fmt.Fprintf(os.Stderr, "  pdf-activity -o all.pdf merge a.pdf b.pdf\n")
		fmt.Fprintf(os.Stderr, "  pdf-activity -o map.pdf georef -page-bounds 0,0,100,100 -map-bounds 10,10,10,20,20,20,20,10 -wkt @gcs.wkt in.pdf\n")
	}
	flag.Parse()

	if *version {
		fmt.Println(buildinfo.Long("pdf-activity"))
		return
	}
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0), flag.Args()[1:]); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, "pdf-activity:", err)
		}
		os.Exit(1)
	}
}

func run(name string, args []string) (err error) {
	idx := slices.IndexFunc(commands, func(cmd *command) bool { return cmd.name == name })
	if idx < 0 {
		fmt.Fprintf(os.Stderr, "pdf-activity: unknown command %q\n\n", name)
		flag.Usage()
		return errUsage
	}
	cmd := commands[idx]

	out := *outArg
	if out == "" {
		out = "-"
		if cmd.isPDF {
			out = "out.pdf"
		}
	}
	if out != "-" && !*force {
		if _, err := os.Stat(out); !os.IsNotExist(err) {
			return fmt.Errorf("output file %q already exists", out)
		}
	}

	stop, err := profile.Start(*cpuprofile, *memprofile)
	if err != nil {
		return err
	}
	defer func() {
		if stopErr := stop(); err == nil {
			err = stopErr
		}
	}()

	data, err := cmd.run(args)
	if err != nil {
		return err
	}
	return writeOutput(out, data, cmd.isPDF)
}

func writeOutput(out string, data []byte, isPDF bool) error {
	if out == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}

	err := os.WriteFile(out, data, 0o644)
	if err != nil {
		return err
	}
	what := "JSON output"
	if isPDF {
		what = "PDF file"
	}
	fmt.Fprintf(os.Stderr, "wrote %s %q (%d bytes)\n", what, out, len(data))
	return nil
}

func runJSON(args []string) ([]byte, error) {
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: pdf-activity [-o out.json] run NAME input.json")
		return nil, errUsage
	}
	name, fname := args[0], args[1]

	var input []byte
	var err error
	if fname == "-" {
		input, err = io.ReadAll(os.Stdin)
	} else {
		input, err = os.ReadFile(fname)
	}
	if err != nil {
		return nil, err
	}
	return activity.Run(context.Background(), name, input)
}
