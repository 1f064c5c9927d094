package main

import (
	"fmt"
	"os"
	"runtime"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	args := os.Args[1:]
	var sourcePath, outDir, configPath string

	// Parse flags
	filtered := args[:0]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--source", "-s":
			if i+1 < len(args) {
				sourcePath = args[i+1]
				i++
			} else {
				fmt.Fprintf(os.Stderr, "Error: --source requires a file path\n")
				os.Exit(1)
			}
		case "--out", "-o":
			if i+1 < len(args) {
				outDir = args[i+1]
				i++
			} else {
				fmt.Fprintf(os.Stderr, "Error: --out requires a directory\n")
				os.Exit(1)
			}
		case "--config", "-c":
			if i+1 < len(args) {
				configPath = args[i+1]
				i++
			} else {
				fmt.Fprintf(os.Stderr, "Error: --config requires a file path\n")
				os.Exit(1)
			}
		default:
			filtered = append(filtered, args[i])
		}
	}

	if len(filtered) == 0 {
		generateCmd(sourcePath, outDir, configPath)
		return
	}

	switch filtered[0] {
	case "help", "-h", "--help":
		printUsage()
	case "version", "-V", "--version":
		printVersion()
	case "generate":
		generateCmd(sourcePath, outDir, configPath)
	case "history":
		historyCmd(filtered[1:], configPath)
	case "clean":
		cleanCmd(filtered[1:], configPath)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n", filtered[0])
		fmt.Fprintf(os.Stderr, "Run 'iconmill help' for usage.\n")
		os.Exit(1)
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func printVersion() {
	fmt.Printf("iconmill %s (%s) %s/%s\n", version, buildDate, runtime.GOOS, runtime.GOARCH)
}

func printUsage() {
	fmt.Printf("iconmill %s - Generate desktop app icon assets from one SVG\n", version)
	fmt.Println(`
Usage:
  iconmill [options]              Convert icons/app-icon.svg next to the binary
  iconmill [options] generate    Same, explicitly

Options:
  --source, -s <file>    Source SVG (default: icons/app-icon.svg next to binary)
  --out, -o <dir>        Output directory (default: directory of the source)
  --config, -c <path>    Path to iconmill-config.json

Commands:
  generate               Convert the SVG into PNG, ICO and ICNS assets
  history [days]         Show recorded generation runs (default: all)
  clean <days|all>       Remove history entries older than N days
  version, -V            Show version and build date
  help, -h, --help       Show this help message

Config resolution:
  1. --config <path>                        (explicit)
  2. iconmill-config.json next to binary    (portable)
  3. ~/.config/iconmill/iconmill-config.json (user default)

Outputs:
  icon.png (512x512), 32x32.png, 128x128.png, 128x128@2x.png,
  Windows store tiles (Square*Logo.png, StoreLogo.png),
  icon.icns (via iconutil when available), icon.ico (16-256px frames)`)
}
