package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: gmi2html <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert gemtext files to HTML fragments")
	fmt.Fprintln(w, "  serve      Serve conversions over HTTP")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "A gemtext file, a directory, or \"-\" may be given without 'convert'.")
	fmt.Fprintln(w, "Run 'gmi2html help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: gmi2html convert [input] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert gemtext to HTML fragments, one output line per input line.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    .gmi file, directory, or \"-\" (default: input.defaultDir, then stdin)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory (\"-\" = stdout)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto, max 8)")
	fmt.Fprintln(w)
	printLayoutUsage(w)
	printCommonUsage(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  gmi2html convert index.gmi")
	fmt.Fprintln(w, "  gmi2html convert capsule/ -o public/")
	fmt.Fprintln(w, "  cat index.gmi | gmi2html - > index.html")
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: gmi2html serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve conversions over HTTP.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Endpoints:")
	fmt.Fprintln(w, "  POST /convert    Gemtext body in, HTML fragment out")
	fmt.Fprintln(w, "  GET  /health     Liveness probe")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "      --addr <host:port>    Listen address (default: 127.0.0.1:8965)")
	fmt.Fprintln(w, "      --max-body <n>        Maximum request body in bytes")
	fmt.Fprintln(w, "      --cache-addr <addr>   Valkey/Redis address for the result cache")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	printLayoutUsage(w)
	printCommonUsage(w)
}

func printLayoutUsage(w io.Writer) {
	fmt.Fprintln(w, "Layout:")
	fmt.Fprintln(w, "      --no-separators       Omit the blank line after each classified line")
	fmt.Fprintln(w, "      --keep-open           Leave a list or preformatted block open at EOF")
	fmt.Fprintln(w, "      --legacy              Both of the above")
	fmt.Fprintln(w)
}

func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed output")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  GMI2HTML_CONFIG, GMI2HTML_INPUT_DIR, GMI2HTML_OUTPUT_DIR, GMI2HTML_WORKERS,")
	fmt.Fprintln(w, "  GMI2HTML_ADDR, GMI2HTML_CACHE_ADDR, GMI2HTML_CACHE_PASSWORD")
	fmt.Fprintln(w)
}

// runHelp prints help for a command, or the main usage.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: gmi2html version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: gmi2html help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n\n", args[0])
		printUsage(env.Stderr)
	}
}
