package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	engine "github.com/rxtech-lab/argo-lab/internal/backtest/engine/engine_v1"
	"github.com/rxtech-lab/argo-lab/internal/version"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"
)

const (
	schemaName       = "backtest-engine-v1-config.json"
	sampleConfigName = "backtest-engine-v1-config.yaml"
)

func getSchemaReference(schemaName string) string {
	return "# yaml-language-server: $schema=" + schemaName + "\n"
}

func validateSchemaName(name string) error {
	if name == "" {
		return fmt.Errorf("schema name cannot be empty")
	}

	if filepath.Ext(name) != ".json" {
		return fmt.Errorf("schema name %q must have .json extension", name)
	}

	return nil
}

func generateSchemaFile(config engine.BacktestEngineV1Config, schemaPath string) error {
	schemaJSON, err := config.GenerateSchemaJSON()
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(schemaPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(schemaPath, []byte(schemaJSON), 0644); err != nil {
		return fmt.Errorf("failed to write schema to file: %w", err)
	}

	return nil
}

// generateSampleConfig writes config as YAML headed by a schema reference.
// An existing file is left untouched.
func generateSampleConfig(config engine.BacktestEngineV1Config, samplePath, schemaName string) error {
	if _, err := os.Stat(samplePath); err == nil {
		return nil
	}

	yamlBytes, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal sample config to yaml: %w", err)
	}

	content := append([]byte(getSchemaReference(schemaName)), yamlBytes...)

	if err := os.WriteFile(samplePath, content, 0644); err != nil {
		return fmt.Errorf("failed to write sample config to file: %w", err)
	}

	return nil
}

func generate(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return fmt.Errorf("output directory cannot be empty")
	}

	if err := validateSchemaName(schemaName); err != nil {
		return err
	}

	config := engine.DefaultConfig()
	schemaPath := filepath.Join(dir, schemaName)
	samplePath := filepath.Join(dir, sampleConfigName)

	if err := generateSchemaFile(config, schemaPath); err != nil {
		return err
	}

	if err := generateSampleConfig(config, samplePath, schemaName); err != nil {
		return err
	}

	log.Printf("Schema successfully generated at %s", schemaPath)

	return nil
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:    "generate",
		Usage:   "Generate the backtest config JSON schema and a sample config",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "Output directory",
				Value:   "./config",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return generate(cmd.String("dir"))
		},
	}
}

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
