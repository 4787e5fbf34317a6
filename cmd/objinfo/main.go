// objinfo is a CLI utility that parses Wavefront OBJ files and reports what
// the viewer would upload for them.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/Faultbox/objview/pkg/mesh"
	"github.com/Faultbox/objview/pkg/objfile"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info", "stat":
		os.Exit(cmdInfo(args))
	case "check":
		os.Exit(cmdCheck(args))
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`objinfo - Wavefront OBJ inspection utility

Usage:
  objinfo <command> [options]

Commands:
  info [-strict] <file.obj>       Show geometry and indexed mesh statistics
  check [-strict] <file.obj>...   Validate files, exit 1 if any fails

Options:
  -strict   Reject polygons instead of fan-triangulating them

Examples:
  objinfo info models/cube.obj
  objinfo check -strict models/*.obj`)
}

func buildOptions(strict bool) []mesh.Option {
	if strict {
		return nil
	}
	return []mesh.Option{mesh.WithTriangulation()}
}

func cmdInfo(args []string) int {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	strict := fs.Bool("strict", false, "Reject polygons")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objinfo info [-strict] <file.obj>")
		return 1
	}
	path := fs.Arg(0)

	g, err := objfile.ParseFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		return 1
	}
	b, err := mesh.Build(g, buildOptions(*strict)...)
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %s: %v", path, err)))
		return 1
	}

	fmt.Println(renderReport(g, b))
	return 0
}

func cmdCheck(args []string) int {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	strict := fs.Bool("strict", false, "Reject polygons")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objinfo check [-strict] <file.obj>...")
		return 1
	}

	failed := 0
	for _, path := range fs.Args() {
		_, err := mesh.Load(path, buildOptions(*strict)...)
		fmt.Println(renderCheck(path, err))
		if err != nil {
			failed++
		}
	}

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d files failed\n", failed, fs.NArg())
		return 1
	}
	return 0
}

// errorKind names the failure class of a load error.
func errorKind(err error) string {
	var pe *objfile.ParseError
	var be *mesh.BuildError
	switch {
	case errors.As(err, &pe):
		return "parse"
	case errors.As(err, &be):
		return "build"
	default:
		return "error"
	}
}
