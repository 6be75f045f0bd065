package engine

import (
	"encoding/json"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-lab/pkg/errors"
	"gopkg.in/yaml.v3"
)

// PriceRange bounds the multiplier applied to the entry price when sampling a trade's final price.
type PriceRange struct {
	Low  float64 `yaml:"low" json:"low" jsonschema:"title=Low,description=Lowest final price as a multiple of entry,exclusiveMinimum=0" validate:"gt=0"`
	High float64 `yaml:"high" json:"high" jsonschema:"title=High,description=Highest final price as a multiple of entry,exclusiveMinimum=0" validate:"gt=0,gtefield=Low"`
}

type BacktestEngineV1Config struct {
	InitialBalance float64                 `yaml:"initial_balance" json:"initial_balance" jsonschema:"title=Initial Balance,description=Starting balance of the simulated account,exclusiveMinimum=0" validate:"gt=0"`
	Iterations     int                     `yaml:"iterations" json:"iterations" jsonschema:"title=Iterations,description=Number of random draws to simulate,minimum=0" validate:"gte=0"`
	Seed           optional.Option[uint64] `yaml:"seed" json:"seed" jsonschema:"title=Seed,description=Optional random seed; omitted means seeded from the clock"`
	PriceRange     PriceRange              `yaml:"price_range" json:"price_range" jsonschema:"title=Price Range,description=Uniform range of the final price multiplier"`
	Symbol         string                  `yaml:"symbol" json:"symbol" jsonschema:"title=Symbol,description=Label attached to every simulated signal" validate:"required"`
	// Version pins the engine version the config was written for.
	Version optional.Option[string] `yaml:"version" json:"version" jsonschema:"title=Version,description=Engine version this config targets"`
}

// configDocument mirrors BacktestEngineV1Config with pointer fields in place of optionals.
type configDocument struct {
	InitialBalance float64    `yaml:"initial_balance"`
	Iterations     int        `yaml:"iterations"`
	Seed           *uint64    `yaml:"seed,omitempty"`
	PriceRange     PriceRange `yaml:"price_range"`
	Symbol         string     `yaml:"symbol"`
	Version        *string    `yaml:"version,omitempty"`
}

// UnmarshalYAML decodes onto the current values, so fields missing from the document keep their defaults.
func (c *BacktestEngineV1Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	doc := c.toDocument()
	if err := unmarshal(&doc); err != nil {
		return err
	}

	c.InitialBalance = doc.InitialBalance
	c.Iterations = doc.Iterations
	c.PriceRange = doc.PriceRange
	c.Symbol = doc.Symbol

	c.Seed = optional.None[uint64]()
	if doc.Seed != nil {
		c.Seed = optional.Some(*doc.Seed)
	}

	c.Version = optional.None[string]()
	if doc.Version != nil {
		c.Version = optional.Some(*doc.Version)
	}

	return nil
}

// MarshalYAML writes optionals as plain values, omitting the ones that are unset.
func (c BacktestEngineV1Config) MarshalYAML() (interface{}, error) {
	return c.toDocument(), nil
}

func (c *BacktestEngineV1Config) toDocument() configDocument {
	doc := configDocument{
		InitialBalance: c.InitialBalance,
		Iterations:     c.Iterations,
		PriceRange:     c.PriceRange,
		Symbol:         c.Symbol,
	}

	if c.Seed.IsSome() {
		seed := c.Seed.Unwrap()
		doc.Seed = &seed
	}

	if c.Version.IsSome() {
		v := c.Version.Unwrap()
		doc.Version = &v
	}

	return doc
}

// Validate checks field constraints.
func (c *BacktestEngineV1Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid backtest config", err)
	}

	return nil
}

// ParseConfig decodes YAML over DefaultConfig and validates the result.
func ParseConfig(content string) (BacktestEngineV1Config, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal([]byte(content), &config); err != nil {
		return BacktestEngineV1Config{}, errors.Wrap(errors.ErrCodeBacktestConfigError, "failed to parse backtest config", err)
	}

	if err := config.Validate(); err != nil {
		return BacktestEngineV1Config{}, err
	}

	return config, nil
}

// GenerateSchema generates a JSON schema for the BacktestEngineV1Config
func (c *BacktestEngineV1Config) GenerateSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			switch t.String() {
			case "optional.Option[uint64]":
				return &jsonschema.Schema{Type: "integer"}
			case "optional.Option[string]":
				return &jsonschema.Schema{Type: "string"}
			}

			return nil
		},
	}

	schema := reflector.Reflect(c)
	schema.Title = "backtest-engine-v1-config"
	schema.Description = "Configuration schema for BacktestEngineV1"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema, nil
}

func (c *BacktestEngineV1Config) GenerateSchemaJSON() (string, error) {
	schema, err := c.GenerateSchema()
	if err != nil {
		return "", err
	}

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}

// DefaultConfig returns the settings of the classic exercise: 10000 balance, 100 draws,
// final price within ±5% of entry.
func DefaultConfig() BacktestEngineV1Config {
	return BacktestEngineV1Config{
		InitialBalance: 10000,
		Iterations:     100,
		Seed:           optional.None[uint64](),
		PriceRange:     PriceRange{Low: 0.95, High: 1.05},
		Symbol:         "SIM",
		Version:        optional.None[string](),
	}
}

// TestConfig returns a seeded config for deterministic runs.
func TestConfig(seed uint64, iterations int) BacktestEngineV1Config {
	config := DefaultConfig()
	config.Seed = optional.Some(seed)
	config.Iterations = iterations

	return config
}
