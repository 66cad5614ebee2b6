package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mockdata-labs/fabricate/internal/config"
	"github.com/mockdata-labs/fabricate/internal/factory"
	"github.com/mockdata-labs/fabricate/internal/schema"
)

var (
	genModel string
	genCount int
	genSeed  int64
	genOut   string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate documents and print them as JSON",
	Long:  `Load schemas from the schema directory, generate documents for one model and write them to stdout or a file as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		schemas, err := schema.LoadDir(cfg.SchemaDir)
		if err != nil {
			return fmt.Errorf("failed to load schemas: %w", err)
		}
		if len(schemas) == 0 {
			return fmt.Errorf("no schemas found in %s", cfg.SchemaDir)
		}

		target, err := pickModel(schemas, genModel)
		if err != nil {
			return err
		}
		for _, s := range schemas {
			if err := factory.RegisterModel(s); err != nil {
				return fmt.Errorf("failed to register %s: %w", s.Name, err)
			}
		}

		count := genCount
		if count <= 0 {
			count = cfg.Count
		}
		seed := genSeed
		if seed == 0 {
			seed = cfg.Seed
		}

		color.Cyan("🎲 Generating %d %s document(s)...", count, target.Name)

		docs, err := factory.New(target, factory.WithSeed(seed)).Build(count)
		if err != nil {
			return fmt.Errorf("generation failed: %w", err)
		}

		out, err := json.MarshalIndent(docs, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode documents: %w", err)
		}

		if genOut != "" {
			if err := os.WriteFile(genOut, out, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", genOut, err)
			}
			color.Green("✅ Wrote %d document(s) to %s", len(docs), genOut)
			return nil
		}

		fmt.Println(string(out))
		return nil
	},
}

func pickModel(schemas []*schema.Schema, name string) (*schema.Schema, error) {
	if name == "" {
		if len(schemas) == 1 {
			return schemas[0], nil
		}
		names := make([]string, 0, len(schemas))
		for _, s := range schemas {
			names = append(names, s.Name)
		}
		return nil, fmt.Errorf("multiple schemas found, pick one with --model: %v", names)
	}
	for _, s := range schemas {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("unknown model %q", name)
}

func init() {
	generateCmd.Flags().StringVarP(&genModel, "model", "m", "", "Model name to generate")
	generateCmd.Flags().IntVarP(&genCount, "count", "n", 0, "Number of documents (default from config)")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "Random seed for reproducible output")
	generateCmd.Flags().StringVarP(&genOut, "out", "o", "", "Write JSON to a file instead of stdout")
	rootCmd.AddCommand(generateCmd)
}
