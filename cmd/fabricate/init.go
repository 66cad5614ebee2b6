package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mockdata-labs/fabricate/internal/config"
)

const exampleSchema = `name: User
fields:
  name:
    type: string
    required: true
  email:
    type: string
    required: true
    unique: true
  age:
    type: number
    min: 18
    max: 65
  isActive:
    type: boolean
  createdAt:
    type: date
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a fabricate project",
	Long:  `Create fabricate.yaml and a schemas directory with an example schema.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.DefaultConfig()

		if _, err := os.Stat("fabricate.yaml"); err == nil {
			return fmt.Errorf("fabricate.yaml already exists")
		}

		out, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		if err := os.WriteFile("fabricate.yaml", out, 0644); err != nil {
			return fmt.Errorf("failed to write fabricate.yaml: %w", err)
		}

		if err := os.MkdirAll(cfg.SchemaDir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", cfg.SchemaDir, err)
		}

		example := filepath.Join(cfg.SchemaDir, "user.yaml")
		if _, err := os.Stat(example); os.IsNotExist(err) {
			if err := os.WriteFile(example, []byte(exampleSchema), 0644); err != nil {
				return fmt.Errorf("failed to write example schema: %w", err)
			}
		}

		color.Green("✅ Initialized fabricate project")
		color.White("   fabricate.yaml")
		color.White("   %s/user.yaml", cfg.SchemaDir)
		fmt.Println()
		color.Cyan("Next: fabricate generate --model User")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
