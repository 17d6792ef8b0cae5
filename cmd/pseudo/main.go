/*
pseudo is a console utility running and inspecting pseudocode programs.
Usage is

	pseudo [--config <file>] [--lang <name> | --lang-file <file>] [-v] <command>

Commands are:

	run <file>      run program, "-" reads standard input;
	tokens <file>   print token stream;
	tree <file>     print syntax tree;
	grammar         print language grammar;
	langs           list built-in keyword languages;
	version         print version.

run accepts --timeout <duration>, --vars (print final variables), --watch (re-run on file change)
and --no-color flags.
Settings not given on command line are read from config file, see internal/config package.
*/
package main

import (
	"os"

	"github.com/ava12/pseudo/cmd/pseudo/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
