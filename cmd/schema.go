package cmd

import (
	"github.com/spf13/cobra"

	"github.com/initializ/agentcheck/schemas"
)

var schemaSample bool

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the agent config JSON Schema",
	Long:  "Print the embedded agent config JSON Schema (" + schemas.SchemaID + "), or with --sample an example document that conforms to it.",
	Args:  cobra.NoArgs,
	RunE:  runSchema,
}

func init() {
	schemaCmd.Flags().BoolVar(&schemaSample, "sample", false, "print the sample agent document instead of the schema")
}

func runSchema(cmd *cobra.Command, _ []string) error {
	data := schemas.AgentConfigV1Schema
	if schemaSample {
		data = schemas.SampleAgentYAML
	}
	_, err := cmd.OutOrStdout().Write(data)
	return err
}
