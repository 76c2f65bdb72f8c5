// Command serz converts documents between JSON, YAML and XML through the serz
// DOM, optionally renaming every object key along the way.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"github.com/guangie88/serz"
	sjson "github.com/guangie88/serz/format/json"
	sxml "github.com/guangie88/serz/format/xml"
	syaml "github.com/guangie88/serz/format/yaml"
	"github.com/guangie88/serz/i18n"
	"github.com/guangie88/serz/internal/fileio"
)

// Version of the serz command.
const Version = "0.1.0"

type cli struct {
	Config  string           `help:"YAML file with default settings (default: ${config_file})." type:"path"`
	Debug   bool             `help:"Enable debug logging." short:"d"`
	Lang    string           `help:"Language of error messages." enum:"en,ja" default:"en"`
	Version kong.VersionFlag `help:"Show version information." short:"v"`
	Convert convertCmd       `cmd:"" help:"Convert a document to another format."`
	Check   checkCmd         `cmd:"" help:"Parse documents and report the ones that fail."`
}

// env carries what the commands share.
type env struct {
	log    *logrus.Logger
	cfg    *Config
	stdin  io.Reader
	stdout io.Writer
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command line in args and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var c cli
	exit := -1
	parser, err := kong.New(&c,
		kong.Name("serz"),
		kong.Description("Convert documents between JSON, YAML and XML."),
		kong.Vars{"version": Version, "config_file": DefaultConfigFile},
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { exit = code }),
		kong.UsageOnError(),
	)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	kctx, err := parser.Parse(args)
	if exit >= 0 {
		return exit
	}
	if err != nil {
		fmt.Fprintf(stderr, "serz: %v\n", err)
		return 2
	}

	log := logrus.New()
	log.SetOutput(stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if c.Debug {
		log.SetLevel(logrus.DebugLevel)
	}

	i18n.SetLanguage(c.Lang)
	defer i18n.SetLanguage("en")

	path, required := c.Config, true
	if path == "" {
		path, required = DefaultConfigFile, false
	}
	cfg, err := LoadConfig(path, required)
	if err != nil {
		log.WithError(err).Error("cannot load configuration")
		return 2
	}
	log.WithField("config", path).Debug("configuration loaded")

	if err := kctx.Run(&env{log: log, cfg: cfg, stdin: stdin, stdout: stdout}); err != nil {
		log.Error(err)
		return 1
	}
	return 0
}

type convertCmd struct {
	From       string `help:"Input format: json, yaml or xml. Inferred from the input file name when unset."`
	To         string `help:"Output format: json, yaml or xml. Inferred from the output file name when unset."`
	Input      string `help:"Input file. Reads stdin when unset." short:"i" type:"path"`
	Output     string `help:"Output file. Writes stdout when unset." short:"o" type:"path"`
	KeyCase    string `help:"Rename object keys: snake, camel, lower-camel or kebab." short:"k"`
	Root       string `help:"Root element name for XML output."`
	Compact    bool   `help:"Write JSON without indentation." short:"c"`
	MaxDepth   int    `help:"Reject input nested deeper than this. 0 disables the limit; negative uses the config file." default:"-1"`
	StrictKeys bool   `help:"Reject input with repeated object keys."`
}

func (c *convertCmd) Run(e *env) error {
	from := firstNonEmpty(c.From, e.cfg.From, formatOf(c.Input), "json")
	to := firstNonEmpty(c.To, e.cfg.To, formatOf(c.Output), from)
	for _, f := range []string{from, to} {
		if err := checkFormat(f); err != nil {
			return err
		}
	}
	rename, err := serz.KeyCase(firstNonEmpty(c.KeyCase, e.cfg.KeyCase)).Func()
	if err != nil {
		return err
	}
	log := e.log.WithFields(logrus.Fields{"from": from, "to": to})

	opts := readOptions{
		maxDepth: depthLimit(c.MaxDepth, e.cfg),
		strict:   c.StrictKeys || e.cfg.DuplicateKeys == "error",
	}
	var v serz.Value
	if c.Input == "" || c.Input == "-" {
		log.Debug("reading stdin")
		v, err = readDoc(from, e.stdin, opts)
	} else {
		log.WithField("input", c.Input).Debug("reading file")
		v, err = readFile(from, c.Input, opts)
	}
	if err != nil {
		return err
	}
	if rename != nil {
		v = serz.Rekey(v, rename)
	}

	w := writeOptions{
		root:    firstNonEmpty(c.Root, e.cfg.Root, "root"),
		compact: c.Compact || e.cfg.Compact,
	}
	if c.Output == "" || c.Output == "-" {
		return writeDoc(to, v, e.stdout, w)
	}
	log.WithField("output", c.Output).Debug("writing file")
	return fileio.WriteFile(c.Output, strings.ToUpper(to), func(out io.Writer) error {
		return writeDoc(to, v, out, w)
	})
}

type checkCmd struct {
	Format   string   `help:"Format of every file. Inferred from each file name when unset." short:"f"`
	MaxDepth int      `help:"Reject input nested deeper than this. 0 disables the limit; negative uses the config file." default:"-1"`
	Strict   bool     `help:"Reject input with repeated object keys."`
	Files    []string `arg:"" help:"Files to check." type:"path"`
}

func (c *checkCmd) Run(e *env) error {
	opts := readOptions{
		maxDepth: depthLimit(c.MaxDepth, e.cfg),
		strict:   c.Strict || e.cfg.DuplicateKeys == "error",
	}
	failed := 0
	for _, path := range c.Files {
		format := firstNonEmpty(c.Format, formatOf(path))
		if format == "" {
			e.log.WithField("file", path).Error("cannot infer format")
			failed++
			continue
		}
		if err := checkFormat(format); err != nil {
			return err
		}
		if _, err := readFile(format, path, opts); err != nil {
			e.log.WithField("file", path).Error(err)
			failed++
			continue
		}
		fmt.Fprintf(e.stdout, "%s: ok\n", path)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(c.Files))
	}
	return nil
}

type readOptions struct {
	maxDepth int
	strict   bool
}

type writeOptions struct {
	root    string
	compact bool
}

func readDoc(format string, r io.Reader, o readOptions) (serz.Value, error) {
	switch format {
	case "yaml":
		opts := []syaml.Option{syaml.WithMaxDepth(o.maxDepth)}
		if o.strict {
			opts = append(opts, syaml.WithDuplicateKeys(syaml.DuplicateError))
		}
		return syaml.ParseReader(r, opts...)
	case "xml":
		return sxml.ParseReader(r, sxml.WithMaxDepth(o.maxDepth))
	}
	opts := []sjson.Option{sjson.WithMaxDepth(o.maxDepth)}
	if o.strict {
		opts = append(opts, sjson.WithDuplicateKeys(sjson.DuplicateError))
	}
	return sjson.ParseReader(r, opts...)
}

func readFile(format, path string, o readOptions) (serz.Value, error) {
	f, err := fileio.Open(path, strings.ToUpper(format))
	if err != nil {
		return serz.Value{}, err
	}
	defer f.Close()
	return readDoc(format, f, o)
}

func writeDoc(format string, v serz.Value, w io.Writer, o writeOptions) error {
	switch format {
	case "yaml":
		return syaml.SerializeTo(v, w)
	case "xml":
		if err := sxml.SerializeTo(v, o.root, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err
	}
	out := sjson.Serialize(v)
	if o.compact {
		out = sjson.SerializeCompact(v)
	}
	_, err := w.Write(append(out, '\n'))
	return err
}

// depthLimit prefers a limit given on the command line over the config file.
func depthLimit(flag int, cfg *Config) int {
	if flag >= 0 {
		return flag
	}
	return cfg.MaxDepth
}

// formatOf infers the format from the extension of path.
func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	case ".xml":
		return "xml"
	}
	return ""
}

func firstNonEmpty(s ...string) string {
	for _, v := range s {
		if v != "" {
			return v
		}
	}
	return ""
}
