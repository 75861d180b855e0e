package messages

import (
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// messageSchema structurally validates a decoded message before it is
// interpreted. Unknown types and malformed payloads fail here, so protocol
// drift between host and client builds is rejected instead of skipped.
const messageSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "oneOf": [
    {
      "properties": {
        "type": { "const": "load" }
      },
      "required": ["type"],
      "additionalProperties": false
    },
    {
      "properties": {
        "type": { "const": "loaded" }
      },
      "required": ["type"],
      "additionalProperties": false
    },
    {
      "properties": {
        "type": { "const": "server_info" },
        "serverInfo": {
          "type": "object",
          "properties": {
            "players": {
              "type": "array",
              "items": { "type": "string" }
            }
          },
          "required": ["players"],
          "additionalProperties": false
        }
      },
      "required": ["type", "serverInfo"],
      "additionalProperties": false
    }
  ]
}`

var compiledMessageSchema = jsonschema.MustCompileString("message.schema.json", messageSchema)
