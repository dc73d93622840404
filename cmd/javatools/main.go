// Package main provides the javatools CLI, a one-shot Java class
// introspection tool for editors and scripts. Each invocation answers a
// single query and writes framed text to stdout:
//
//	javatools [flags] class:<name>
//	javatools [flags] classInfo:<name>
//	javatools [flags] methods:<name> [namespace-hint]
//	javatools [flags] module:<name>
//	javatools [flags] field:<dotted.path>
//	javatools [flags] find:<file name or glob>
//	javatools [flags] compare:<a>,<b>
//
// Classes are read from class files on the classpath, assembled from the
// project's build output, --classpath entries, the config file and the JDK
// under --java-home.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"javatools/internal/classpath"
	"javatools/internal/config"
	"javatools/internal/diff"
	"javatools/internal/inspect"
	"javatools/internal/introspect"
	"javatools/internal/locate"
	"javatools/internal/meta"
	"javatools/internal/render"
	"javatools/internal/resolve"
	"javatools/internal/staticfield"
	"javatools/internal/validate"
)

// jdkRoots are probed when no java home is configured.
var jdkRoots = classpath.StandardJDKRoots

const usageHint = "<methods:className> or <class:className> or <module:className> commands are expected"

// messageError is written to stderr as is, without the ERROR prefix.
type messageError struct{ msg string }

func (e *messageError) Error() string { return e.msg }

func usage(msg string) error { return &messageError{msg: msg + "\n" + usageHint} }

// Options holds the parsed command-line flags.
type Options struct {
	Classpath  []string
	JavaHome   string
	Project    string
	ConfigPath string
	Verbose    bool
	MaxDiff    int
}

// app wires one invocation. log may be preset by tests; otherwise it is
// built before the command runs.
type app struct {
	opt    Options
	stdout io.Writer
	log    *zap.Logger
}

// env is everything a query needs, opened once per invocation.
type env struct {
	cp        *classpath.Path
	resolver  *resolve.Resolver
	extractor *inspect.Extractor
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, nil))
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdout, stderr io.Writer, log *zap.Logger) int {
	a := &app{stdout: stdout, log: log}
	cmd := a.command()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		var me *messageError
		if errors.As(err, &me) {
			fmt.Fprintln(stderr, me.msg)
		} else {
			fmt.Fprintln(stderr, "ERROR:", err)
		}
		return 1
	}
	return 0
}

func (a *app) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "javatools [flags] <command:arg> [namespace-hint]",
		Short:         "Java class introspection for editors and scripts",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.log != nil {
				return nil
			}
			cfg := zap.NewProductionConfig()
			cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			if a.opt.Verbose {
				cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			cfg.OutputPaths = []string{"stderr"}
			logger, err := cfg.Build()
			if err != nil {
				return errors.Wrap(err, "failed to initialize logger")
			}
			a.log = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.dispatch(args)
		},
	}
	f := cmd.Flags()
	f.StringArrayVarP(&a.opt.Classpath, "classpath", "c", nil, "classpath entries (repeatable, path-list separated)")
	f.StringVar(&a.opt.JavaHome, "java-home", "", "JDK home providing jmods or rt.jar")
	f.StringVar(&a.opt.Project, "project", ".", "project root used for build output detection and config lookup")
	f.StringVar(&a.opt.ConfigPath, "config", "", "settings file (default: .javatools.yaml|.yml|.toml in --project)")
	f.BoolVarP(&a.opt.Verbose, "verbose", "v", false, "log class loading to stderr")
	f.IntVar(&a.opt.MaxDiff, "max-diff-bytes", 2_000_000, "max bytes for compare: diffs (0 = no limit)")
	return cmd
}

// splitCommand separates "name:arg". The argument keeps any further colons.
// ok is false when there is no colon at all.
func splitCommand(s string) (name, arg string, ok bool) {
	name, arg, ok = strings.Cut(s, ":")
	return strings.TrimSpace(name), strings.TrimSpace(arg), ok
}

func (a *app) dispatch(args []string) error {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return usage("No argument has been passed")
	}
	command := strings.TrimSpace(args[0])
	name, arg, ok := splitCommand(command)
	if !ok {
		return usage(fmt.Sprintf("Unknown command: '%s'", command))
	}
	hint := ""
	if len(args) > 1 {
		hint = args[1]
	}

	var handler func(e *env) error
	switch name {
	case "class":
		handler = func(e *env) error { return a.class(e, arg) }
	case "classInfo":
		handler = func(e *env) error { return a.classInfo(e, arg) }
	case "methods":
		handler = func(e *env) error { return a.methods(e, arg, hint) }
	case "module":
		handler = func(e *env) error { return a.module(e, arg) }
	case "field":
		handler = func(e *env) error { return a.field(e, arg) }
	case "find":
		handler = func(e *env) error { return a.find(e, arg) }
	case "compare":
		handler = func(e *env) error { return a.compare(e, arg) }
	default:
		return usage(fmt.Sprintf("Unknown command: '%s'", command))
	}
	if arg == "" {
		return usage(fmt.Sprintf("No argument has been passed for '%s'", name))
	}

	e, err := a.open()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := e.cp.Close(); cerr != nil {
			a.log.Warn("failed to close classpath", zap.Error(cerr))
		}
	}()
	return handler(e)
}

// open assembles the classpath: JDK first, then configured and flag
// entries, then the detected project output. Without a configured JDK the
// classpath must bring java.lang.Object itself, otherwise a JDK is looked
// up under jdkRoots.
func (a *app) open() (*env, error) {
	info := meta.Detect(a.opt.Project)
	cfg, err := config.Resolve(a.opt.ConfigPath, info.ConfigRoot)
	if err != nil {
		return nil, err
	}
	cfg.Apply(config.Overrides{Classpath: a.opt.Classpath, JavaHome: a.opt.JavaHome})

	jdk, err := classpath.JDK(cfg.JavaHome)
	if err != nil {
		return nil, err
	}
	specs := append(append([]string(nil), cfg.Classpath...), info.Classpath()...)
	cp, err := classpath.Open(append(jdk, specs...), a.log)
	if err != nil {
		return nil, err
	}
	if !cp.Bootstrapped() && cfg.JavaHome == "" {
		if home, ok := classpath.Discover(jdkRoots, a.log); ok {
			if jdk, err = classpath.JDK(home); err == nil {
				_ = cp.Close()
				if cp, err = classpath.Open(append(jdk, specs...), a.log); err != nil {
					return nil, err
				}
			}
		}
	}
	if !cp.Bootstrapped() {
		_ = cp.Close()
		return nil, classpath.ErrNoJDK
	}
	a.log.Debug("classpath assembled",
		zap.String("config", cfg.Path),
		zap.String("module", info.Module),
		zap.String("build", info.Build),
		zap.String("jdk", info.JDK),
		zap.Int("count", cp.Len()),
		zap.Strings("entries", cp.Entries()))

	rt := introspect.New(cp, a.log)
	return &env{
		cp:        cp,
		resolver:  resolve.New(rt, cfg.ResolverNamespaces(), cfg.BaseNamespace, a.log),
		extractor: inspect.NewExtractor(rt, a.log),
	}, nil
}

func (a *app) class(e *env, name string) error {
	found, err := e.resolver.ResolveByShortName(resolve.TrimClassSuffix(name))
	if err != nil {
		return err
	}
	return render.ClassMatches(a.stdout, found)
}

func (a *app) report(e *env, name string) (*inspect.ClassReport, error) {
	cls, err := e.resolver.ResolveDefault(resolve.TrimClassSuffix(name))
	if err != nil {
		return nil, err
	}
	r, err := e.extractor.Extract(cls)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to extract %v", cls.Name())
	}
	if err := validate.Report(r); err != nil {
		return nil, err
	}
	return r, nil
}

func (a *app) classInfo(e *env, name string) error {
	r, err := a.report(e, name)
	if err != nil {
		return err
	}
	return render.ClassInfo(a.stdout, r)
}

func (a *app) methods(e *env, name, hint string) error {
	cls, err := e.resolver.ResolveWithHint(name, hint)
	if err != nil {
		if errors.Is(err, introspect.ErrClassNotFound) || errors.Is(err, resolve.ErrAmbiguousClass) {
			a.log.Debug("methods: resolution failed", zap.String("name", name), zap.Error(err))
			return &messageError{msg: fmt.Sprintf("Class '%s' cannot be found", name)}
		}
		return err
	}
	return render.Methods(a.stdout, cls)
}

func (a *app) module(e *env, name string) error {
	loc, err := locate.Locate(e.resolver, name)
	if err != nil {
		return err
	}
	switch {
	case loc.Ambiguous():
		_, err = fmt.Fprintln(a.stdout, loc.Advisory())
		return err
	case !loc.Found():
		return nil
	}
	return render.Module(a.stdout, loc.Path, name)
}

func (a *app) field(e *env, path string) error {
	out, err := staticfield.Dump(e.resolver, path)
	if err != nil {
		return err
	}
	return render.Field(a.stdout, out)
}

func (a *app) find(e *env, pattern string) error {
	matches, err := e.cp.Glob(pattern)
	if err != nil {
		return err
	}
	for _, m := range matches {
		if err := render.Find(a.stdout, m.Entry, m.Item); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) compare(e *env, arg string) error {
	left, right, ok := strings.Cut(arg, ",")
	left, right = strings.TrimSpace(left), strings.TrimSpace(right)
	if !ok || left == "" || right == "" {
		return usage(fmt.Sprintf("Malformed argument: '%s', expected compare:<class>,<class>", arg))
	}
	ra, err := a.report(e, left)
	if err != nil {
		return err
	}
	rb, err := a.report(e, right)
	if err != nil {
		return err
	}
	body, err := diff.Reports(ra, rb, diff.Options{MaxBytes: a.opt.MaxDiff})
	if err != nil {
		return err
	}
	_, err = io.WriteString(a.stdout, body)
	return err
}
