package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/viant/afs"
	"github.com/viant/testid/annotator"
	"github.com/viant/testid/cache"
	"github.com/viant/testid/parser"
	"github.com/viant/testid/repository"
	"github.com/viant/testid/transform"
)

// errPending is returned by check when some files lack annotations
var errPending = errors.New("files need annotation")

const annotateLongDescription = `Annotate component root elements in the given paths (default: current directory).

Files are rewritten in place unless --output names a directory that receives
the annotated copies. The attribute name is resolved from --attribute,
--options, testid.yaml, the project's .swcrc plugin entry and finally the
data-test-id default.`

func newAnnotateCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "annotate [paths...]",
		Short: "Inject test ids into JSX/TSX sources",
		Long:  annotateLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool(dryRunFlagName)
			output, _ := cmd.Flags().GetString(outputFlagName)
			_, err := run(cmd, v, args, runArgs{dryRun: dryRun, output: output})
			return err
		},
	}
	cmd.Flags().Bool(dryRunFlagName, false, "report what would change without writing")
	cmd.Flags().StringP(outputFlagName, "o", "", "write annotated copies under this directory instead of in place")
	return cmd
}

func newCheckCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "check [paths...]",
		Short: "Fail when any JSX/TSX source lacks test ids",
		Long:  "Check reports the files annotate would change and exits non-zero when there are any.",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := run(cmd, v, args, runArgs{dryRun: true, check: true})
			if err != nil {
				return err
			}
			if changed := report.Changed(); changed > 0 {
				return fmt.Errorf("%d %w", changed, errPending)
			}
			return nil
		},
	}
}

type runArgs struct {
	dryRun bool
	check  bool
	output string
}

func run(cmd *cobra.Command, v *viper.Viper, args []string, runArgs runArgs) (*annotator.Report, error) {
	verbose, _ := cmd.Flags().GetBool(verboseFlagName)
	logger := configureLogger(v, verbose)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	paths := parsePaths(args)
	config, from := resolveConfig(v, paths[0])
	logger.Info("resolved configuration", "attribute", config.AttributeName, "from", from)

	fs := afs.New()
	options := []annotator.Option{
		annotator.WithFS(fs),
		annotator.WithParser(parser.New(parser.WithMaxFileSize(v.GetInt(maxFileSizeKey)))),
		annotator.WithLogger(logger),
		annotator.WithConcurrency(v.GetInt(concurrencyKey)),
		annotator.WithContinueOnError(),
	}
	if runArgs.dryRun {
		options = append(options, annotator.WithDryRun())
	}
	if runArgs.output != "" {
		output, err := filepath.Abs(runArgs.output)
		if err != nil {
			return nil, err
		}
		options = append(options, annotator.WithOutput(output))
	}
	if !runArgs.check && !v.GetBool(noCacheKey) {
		store, err := cache.Open(ctx, v.GetString(cachePathKey))
		if err != nil {
			logger.Warn("annotation cache disabled", "error", err)
		} else {
			defer store.Close()
			options = append(options, annotator.WithCache(store))
		}
	}
	a := annotator.New(config, options...)

	report := &annotator.Report{DryRun: runArgs.dryRun}
	for _, location := range paths {
		info, err := os.Stat(location)
		if err != nil {
			return nil, fmt.Errorf("failed to inspect %s: %w", location, err)
		}
		if !info.IsDir() {
			result, err := a.AnnotateFile(ctx, location)
			if err != nil {
				return nil, err
			}
			report.Add(result)
			continue
		}
		dirReport, err := a.AnnotateDir(ctx, location)
		if errors.Is(err, annotator.ErrNoSources) {
			logger.Warn("no sources found", "path", location)
			continue
		}
		if err != nil {
			return nil, err
		}
		report.Add(dirReport.Files...)
	}

	renderReport(cmd.OutOrStdout(), report, config.AttributeName)
	if failed := report.Failed(); failed > 0 {
		return report, fmt.Errorf("%d file(s) failed to annotate", failed)
	}
	return report, nil
}

// parsePaths returns absolute paths for args, defaulting to the working directory
func parsePaths(args []string) []string {
	if len(args) == 0 {
		args = []string{"."}
	}
	paths := make([]string, 0, len(args))
	for _, arg := range args {
		location, err := filepath.Abs(arg)
		if err != nil {
			location = arg
		}
		paths = append(paths, location)
	}
	return paths
}

// resolveConfig applies the precedence flag > env > testid.yaml (all through viper),
// then the project's plugin options, then the default. It returns the source used.
func resolveConfig(v *viper.Viper, location string) (transform.Config, string) {
	if attribute := strings.TrimSpace(v.GetString(attributeKey)); attribute != "" {
		return transform.Config{AttributeName: attribute}.WithDefaults(), attributeKey
	}
	if options := v.GetString(optionsKey); strings.TrimSpace(options) != "" {
		return transform.ParseConfig(options), optionsKey
	}
	project, err := repository.New().DetectProject(location)
	if err != nil {
		slog.Debug("project detection failed", "path", location, "error", err)
		return transform.DefaultConfig(), "default"
	}
	if options, from := repository.PluginOptions(project); from != "" {
		return transform.ParseConfig(options), from
	}
	return transform.DefaultConfig(), "default"
}
