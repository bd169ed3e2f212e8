// interop packs documents into Interop wrapper files and reads them back.
//
// A wrapper file is a sequence of Interop values in their msgpack wrapper
// form. Each value remembers the mid-end that encoded it, and unpack always
// decodes through that same mid-end.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/pwnedgod/interop"
	"github.com/pwnedgod/interop/logger"
	"github.com/pwnedgod/interop/logger/std"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type app struct {
	log logger.Logger
}

func run(args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) error {
	if len(args) == 0 {
		printHelp(stderr)
		return errors.New("missing command")
	}

	var (
		originName string
		inPath     string
		outPath    string
		verbose    bool
	)

	command, args := args[0], args[1:]

	flagSet := pflag.NewFlagSet("interop "+command, pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&inPath, "in", "i", "-", "input file, - for stdin")
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")

	switch command {
	case "pack":
		flagSet.StringVar(&originName, "origin", interop.OriginMsgpack.String(), "mid-end to encode with ("+originNames()+")")
		flagSet.StringVarP(&outPath, "out", "o", "-", "output file, - for stdout")
	case "unpack":
		flagSet.StringVarP(&outPath, "out", "o", "-", "output file, - for stdout")
	case "inspect":
	case "help", "-h", "--help":
		printHelp(stdout)
		return nil
	default:
		printHelp(stderr)
		return fmt.Errorf("unknown command %q", command)
	}

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if flagSet.NArg() > 0 {
		return fmt.Errorf("unexpected argument: %s", flagSet.Arg(0))
	}

	var origin interop.Origin
	if command == "pack" {
		var err error
		if origin, err = interop.ParseOrigin(originName); err != nil {
			return err
		}
	}

	in, err := openInput(inPath, stdin)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := openOutput(outPath, stdout)
	if err != nil {
		return err
	}

	a := &app{log: std.NewLoggerWithWriters(stderr, stderr, verbose)}

	switch command {
	case "pack":
		err = a.pack(origin, in, out)
	case "unpack":
		err = a.unpack(in, out)
	case "inspect":
		err = a.inspect(in, out)
	}

	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	return err
}

// pack reads one YAML or JSON document and writes it as a single Interop.
func (a *app) pack(origin interop.Origin, r io.Reader, w io.Writer) error {
	doc, err := readDocument(r)
	if err != nil {
		return err
	}

	i, err := packValue(origin, doc)
	if err != nil {
		return fmt.Errorf("pack with %s: %w", origin, err)
	}

	if err := interop.NewWriter(w).Write(i); err != nil {
		return err
	}

	logger.Info(a.log, "packed document", logger.With("origin", i.Origin()), logger.With("size", i.Len()))
	return nil
}

// unpack decodes every Interop in r through its own origin and prints each
// value as one JSON line.
func (a *app) unpack(r io.Reader, w io.Writer) error {
	reader := interop.NewReader(r)

	count := 0
	for ; ; count++ {
		i, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read wrapper %d: %w", count, err)
		}

		logger.Debug(a.log, "read wrapper", logger.With("index", count), logger.With("origin", i.Origin()))

		value, err := unpackValue(i)
		if err != nil {
			return fmt.Errorf("unpack wrapper %d: %w", count, err)
		}

		if err := writeJSONLine(w, value); err != nil {
			return err
		}
	}

	logger.Info(a.log, "unpacked documents", logger.With("count", count))
	return nil
}

func (a *app) inspect(r io.Reader, w io.Writer) error {
	reader := interop.NewReader(r)

	for count := 0; ; count++ {
		i, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read wrapper %d: %w", count, err)
		}

		wellformed := true
		if err := i.Check(); err != nil {
			wellformed = false
			logger.Error(a.log, "payload is not well-formed", logger.With("index", count), logger.With("error", err))
		}

		if _, err := fmt.Fprintf(w, "origin=%s size=%d wellformed=%t\n", i.Origin(), i.Len(), wellformed); err != nil {
			return err
		}
	}
}

func originNames() string {
	var names []string
	for _, o := range interop.Origins() {
		names = append(names, o.String())
	}
	return strings.Join(names, ", ")
}

func openInput(path string, stdin io.Reader) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(stdin), nil
	}
	return os.Open(path)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

func openOutput(path string, stdout io.Writer) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopWriteCloser{stdout}, nil
	}
	return os.Create(path)
}

func printHelp(w io.Writer) {
	fmt.Fprintf(w, `interop packs documents into Interop wrapper files and reads them back.

Every packed value remembers the mid-end that encoded it. unpack and
inspect always decode a value through that same mid-end.

Usage:
  interop pack [--origin NAME] [-i FILE] [-o FILE] [-v]
  interop unpack [-i FILE] [-o FILE] [-v]
  interop inspect [-i FILE] [-v]

Mid-ends in this build: %s

Examples:
  # Pack a YAML or JSON document with cbor
  interop pack --origin cbor -i config.yaml -o config.interop

  # Print the packed documents as JSON lines
  interop unpack -i config.interop
`, originNames())
}
