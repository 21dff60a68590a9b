package swagger

import _ "embed"

// OpenAPI holds the embedded OpenAPI 3 document served at /openapi.yaml.
//
//go:embed openapi.yaml
var OpenAPI []byte
