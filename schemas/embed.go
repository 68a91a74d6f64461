// Package schemas provides the embedded agent configuration schema and sample document.
package schemas

import _ "embed"

// SchemaVersion is the only configuration version the schema accepts.
const SchemaVersion = "1.0.0"

// SchemaID identifies the schema to editors and other consuming tools. It is
// opaque metadata and is never resolved.
const SchemaID = "agent-config/v" + SchemaVersion

// AgentConfigV1Schema is the JSON Schema for agent configuration files.
//
//go:embed agent.schema.json
var AgentConfigV1Schema []byte

// SampleAgentYAML is an agent configuration that conforms to AgentConfigV1Schema.
//
//go:embed samples/agent.yaml
var SampleAgentYAML []byte
