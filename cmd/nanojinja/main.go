package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nanojinja/nanojinja/internal/config"
	"github.com/nanojinja/nanojinja/pkg/bindings"
	"github.com/nanojinja/nanojinja/pkg/jinja"
	"github.com/nanojinja/nanojinja/pkg/starlark"
	v "github.com/nanojinja/nanojinja/pkg/validator"
)

var (
	valuesFile string
	scriptFile string
	setValues  []string
	outputFile string
)

var logger *zap.Logger

var rootCmd = cobra.Command{
	Use:   "nanojinja",
	Short: "A minimal template renderer with for loops, if blocks and substitutions",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logger, err = initLogger(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		if valuesFile == "" {
			valuesFile = cfg.ValuesFile
		}
		if scriptFile == "" {
			scriptFile = cfg.ScriptFile
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var renderCmd = cobra.Command{
	Use:   "render [template]",
	Short: "Render a template file, use - to read from stdin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := readTemplate(args[0])
		if err != nil {
			return err
		}

		ctx, err := collectBindings()
		if err != nil {
			return err
		}
		logger.Debug("bindings collected", zap.Int("count", len(ctx)))

		tpl, err := jinja.NewWithValues(source, ctx)
		if err != nil {
			return err
		}
		out, err := tpl.Render()
		if err != nil {
			return err
		}

		return writeOutput(out)
	},
}

var checkCmd = cobra.Command{
	Use:   "check [templates...]",
	Short: "Parse template files and report the first syntax error",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sources := make([]jinja.TemplateString, 0, len(args))
		for _, path := range args {
			source, err := readTemplate(path)
			if err != nil {
				return err
			}
			sources = append(sources, jinja.TemplateString(source))
		}
		ctx, err := collectBindings()
		if err != nil {
			return err
		}
		// Without bindings, identifier range bounds cannot resolve, so
		// templates must be parseable standalone.
		if len(ctx) == 0 {
			if err := v.Each(sources); err != nil {
				return err
			}
		}
		for i, source := range sources {
			tpl, err := jinja.NewWithValues(string(source), ctx)
			if err != nil {
				return fmt.Errorf("%s: %w", args[i], err)
			}
			var unbound []string
			for _, name := range tpl.Vars() {
				if _, ok := ctx[name]; !ok {
					unbound = append(unbound, name)
				}
			}
			logger.Info("template checked",
				zap.String("path", args[i]),
				zap.Strings("variables", tpl.Vars()),
				zap.Strings("unbound", unbound),
			)
		}
		return nil
	},
}

var astCmd = cobra.Command{
	Use:   "ast [template]",
	Short: "Print the parsed control tree of a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := readTemplate(args[0])
		if err != nil {
			return err
		}

		ctx, err := collectBindings()
		if err != nil {
			return err
		}

		tpl, err := jinja.NewWithValues(source, ctx)
		if err != nil {
			return err
		}
		fmt.Print(tpl.Pretty())
		fmt.Println("variables:", tpl.Vars())
		return nil
	},
}

// collectBindings layers the binding sources: values file, then the
// binding script, then --set pairs. Later sources win.
func collectBindings() (jinja.Context, error) {
	var fileCtx jinja.Context
	if valuesFile != "" {
		var err error
		fileCtx, err = bindings.Load(valuesFile)
		if err != nil {
			return nil, err
		}
		logger.Debug("values file loaded", zap.String("path", valuesFile))
	}

	var scriptCtx jinja.Context
	if scriptFile != "" {
		eval := starlark.NewEvaluator()
		eval.LoadContext(fileCtx)
		if err := eval.ExecFile(scriptFile, nil); err != nil {
			return nil, err
		}
		var err error
		scriptCtx, err = eval.Bindings()
		if err != nil {
			return nil, err
		}
		logger.Debug("binding script executed", zap.String("path", scriptFile))
	}

	setCtx, err := bindings.ParseSet(setValues)
	if err != nil {
		return nil, err
	}

	return bindings.Merge(fileCtx, scriptCtx, setCtx), nil
}

func readTemplate(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading template: %w", err)
	}
	return string(data), nil
}

func writeOutput(out string) error {
	if outputFile == "" {
		fmt.Print(out)
		return nil
	}
	if err := os.WriteFile(outputFile, []byte(out), 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return cfg.Build()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&valuesFile, "values", "f", "", "Path to a YAML bindings file")
	rootCmd.PersistentFlags().StringVar(&scriptFile, "script", "", "Path to a Starlark binding script")
	rootCmd.PersistentFlags().StringArrayVar(&setValues, "set", []string{}, "Bind a variable as name=value, may be repeated")

	renderCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write output to a file instead of stdout")
	rootCmd.AddCommand(&renderCmd)

	rootCmd.AddCommand(&checkCmd)
	rootCmd.AddCommand(&astCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
