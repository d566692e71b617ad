package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mrz1836/keysmith/internal/config"
	"github.com/mrz1836/keysmith/internal/constants"
	"github.com/mrz1836/keysmith/internal/errors"
	"github.com/mrz1836/keysmith/internal/tui"
)

// AddConfigCommand adds the config command and its subcommands to the root command.
func AddConfigCommand(root *cobra.Command, flags *GlobalFlags, state *runState) {
	root.AddCommand(newConfigCmd(flags, state))
}

// newConfigCmd creates the config command.
func newConfigCmd(flags *GlobalFlags, state *runState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect keysmith configuration",
		Long: `Inspect keysmith configuration.

Configuration is read from ~/.keysmith/config.yaml, then ./.keysmith/config.yaml,
then KEYSMITH_* environment variables (KEYSMITH_TEXT_DEFAULT_FORMAT=ed25519).
--config FILE replaces both files.`,
	}

	cmd.AddCommand(newConfigShowCmd(flags, state))
	return cmd
}

// newConfigShowCmd creates the 'config show' subcommand for displaying configuration.
func newConfigShowCmd(flags *GlobalFlags, state *runState) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display the effective keysmith configuration with source annotations.

Each value is annotated with where it comes from:
  - default: Built-in default value
  - global: From ~/.keysmith/config.yaml
  - project: From ./.keysmith/config.yaml
  - file: From the file given with --config
  - env: From a KEYSMITH_* environment variable

Examples:
  keysmith config show             # YAML with source comments
  keysmith config show --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd.Context(), cmd.OutOrStdout(), flags, state)
		},
	}
}

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	// SourceDefault indicates the value is a built-in default.
	SourceDefault ConfigSource = "default"
	// SourceGlobal indicates the value came from global config.
	SourceGlobal ConfigSource = "global"
	// SourceProject indicates the value came from project config.
	SourceProject ConfigSource = "project"
	// SourceFile indicates the value came from the --config file.
	SourceFile ConfigSource = "file"
	// SourceEnv indicates the value came from an environment variable.
	SourceEnv ConfigSource = "env"
)

// ConfigValueWithSource represents a configuration value with its source.
type ConfigValueWithSource struct {
	Value  any          `json:"value" yaml:"value"`
	Source ConfigSource `json:"source" yaml:"source"`
}

// AnnotatedConfig maps section name to key to annotated value.
type AnnotatedConfig map[string]map[string]ConfigValueWithSource

// configValues holds the dotted keys set in one config file.
type configValues map[string]any

// configLayer is one config file and what it set.
type configLayer struct {
	source ConfigSource
	values configValues
}

// runConfigShow executes the config show command.
func runConfigShow(ctx context.Context, w io.Writer, flags *GlobalFlags, state *runState) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	doc, annotated, err := buildAnnotatedConfig(state.cfg, configLayers(flags.ConfigFile))
	if err != nil {
		return err
	}

	if flags.Output == OutputJSON {
		return tui.NewJSONOutput(w).JSON(annotated)
	}
	return outputYAML(w, doc)
}

// configLayers returns the config files in precedence order, highest first.
func configLayers(explicitPath string) []configLayer {
	if explicitPath != "" {
		return []configLayer{{source: SourceFile, values: loadConfigFile(explicitPath)}}
	}

	layers := []configLayer{{source: SourceProject, values: loadConfigFile(config.ProjectConfigPath())}}
	if globalPath, err := config.GlobalConfigPath(); err == nil {
		layers = append(layers, configLayer{source: SourceGlobal, values: loadConfigFile(globalPath)})
	}
	return layers
}

// loadConfigFile loads a config file into a map of dotted keys for source
// determination. A missing or unreadable file yields nil.
func loadConfigFile(path string) configValues {
	data, err := os.ReadFile(path) //nolint:gosec // Config file path
	if err != nil {
		return nil
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil
	}

	result := make(configValues)
	flattenConfig("", raw, result)
	return result
}

func flattenConfig(prefix string, in map[string]any, out configValues) {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok {
			flattenConfig(key, nested, out)
			continue
		}
		out[key] = v
	}
}

// determineSource determines where a configuration value came from.
func determineSource(key string, layers []configLayer) ConfigSource {
	envKey := constants.EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
	if os.Getenv(envKey) != "" {
		return SourceEnv
	}

	for _, layer := range layers {
		if _, ok := layer.values[key]; ok {
			return layer.source
		}
	}
	return SourceDefault
}

// buildAnnotatedConfig encodes cfg as a YAML node tree, attaches each
// value's source as a line comment, and collects the same annotations for
// JSON output.
func buildAnnotatedConfig(cfg *config.Config, layers []configLayer) (*yaml.Node, AnnotatedConfig, error) {
	doc := &yaml.Node{}
	if err := doc.Encode(cfg); err != nil {
		return nil, nil, fmt.Errorf("encoding configuration: %w: %w", errors.ErrConfigInvalid, err)
	}

	annotated := make(AnnotatedConfig)
	for i := 0; i+1 < len(doc.Content); i += 2 {
		section, body := doc.Content[i].Value, doc.Content[i+1]
		values := make(map[string]ConfigValueWithSource)

		for j := 0; j+1 < len(body.Content); j += 2 {
			keyNode, valueNode := body.Content[j], body.Content[j+1]
			source := determineSource(section+"."+keyNode.Value, layers)
			valueNode.LineComment = string(source)

			var value any
			if err := valueNode.Decode(&value); err != nil {
				return nil, nil, fmt.Errorf("decoding %s.%s: %w: %w", section, keyNode.Value, errors.ErrConfigInvalid, err)
			}
			values[keyNode.Value] = ConfigValueWithSource{Value: value, Source: source}
		}
		annotated[section] = values
	}

	doc.HeadComment = "effective keysmith configuration\nsources: env > project > global > default"
	return doc, annotated, nil
}

// outputYAML outputs the configuration in YAML format with source comments.
func outputYAML(w io.Writer, doc *yaml.Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("writing configuration: %w: %w", errors.ErrIO, err)
	}
	return enc.Close()
}
