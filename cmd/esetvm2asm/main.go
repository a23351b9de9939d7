// Command esetvm2asm assembles ESET-VM2 source into a bit-packed binary
// image: Lexer -> Parser -> Encoder, then a single file write.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/eset-vm2/assembler/encoder"
	"github.com/eset-vm2/assembler/internal/config"
	"github.com/eset-vm2/assembler/internal/listing"
	"github.com/eset-vm2/assembler/lexer"
	"github.com/eset-vm2/assembler/parser"
)

const usage = "usage: esetvm2asm [-config PATH] [-listing] [-quiet] <input> <output>"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	fs := flag.NewFlagSet("esetvm2asm", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("config", "", "path to a TOML configuration file")
	showListing := fs.Bool("listing", false, "open a read-only listing viewer after a successful assembly")
	quiet := fs.Bool("quiet", false, "suppress warnings and the success message")

	if err := fs.Parse(argv); err != nil {
		return 1
	}

	args := fs.Args()
	if len(args) != 2 {
		fmt.Println(usage)
		return 1
	}
	inputPath, outputPath := args[0], args[1]

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Println(err)
			return 1
		}
		cfg = loaded
	}

	program, image, err := assemble(inputPath, cfg)
	if err != nil {
		var parseErr *parser.ParseError
		var asmErr *encoder.AssembleError
		switch {
		case errors.As(err, &parseErr):
			fmt.Printf("Parser error on line %d: %s\n", parseErr.Line, parseErr.Message)
			return 2
		case errors.As(err, &asmErr):
			fmt.Printf("Assembler error: %s\n", asmErr.Message)
			return 3
		default:
			fmt.Println(err)
			return 1
		}
	}

	if !*quiet && cfg.Assembler.WarnDataSizeMismatch {
		for _, w := range image.Warnings {
			fmt.Println(w)
		}
	}

	out, err := os.Create(outputPath)
	if err != nil {
		fmt.Println(err)
		return 1
	}
	_, writeErr := image.WriteTo(out)
	closeErr := out.Close()
	if writeErr != nil {
		fmt.Println(writeErr)
		return 1
	}
	if closeErr != nil {
		fmt.Println(closeErr)
		return 1
	}

	if !*quiet {
		fmt.Println("All ok")
	}

	if *showListing {
		if err := listing.Show(program, image, cfg); err != nil {
			fmt.Println(err)
			return 1
		}
	}

	return 0
}

func assemble(inputPath string, cfg *config.Config) (*parser.Program, *encoder.Image, error) {
	in, err := os.Open(inputPath)
	if err != nil {
		return nil, nil, err
	}
	defer in.Close()

	lines, err := lexer.Lex(in)
	if err != nil {
		return nil, nil, err
	}

	opts := parser.Options{StrictRegisterBound: cfg.Assembler.StrictRegisterBound}
	program, err := parser.ParseWithOptions(lines, opts)
	if err != nil {
		return nil, nil, err
	}

	image, err := encoder.Assemble(program)
	if err != nil {
		return nil, nil, err
	}

	return program, image, nil
}
