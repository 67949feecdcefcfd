package schema

import "github.com/tlind/huemcp/pkg/bridge"

// stateDocument builds the JSON Schema describing which raw state writes a
// light with the given capabilities accepts. The property set follows the
// fixed bridge key vocabulary; bri, xy and ct only appear when the light
// reports those channels.
func stateDocument(caps capabilities) map[string]any {
	properties := map[string]any{
		bridge.KeyOn: map[string]any{
			"type": "boolean",
		},
		bridge.KeyAlert: map[string]any{
			"type": "string",
			"enum": []any{"none", "select", "lselect"},
		},
	}

	if caps.dimmable {
		properties[bridge.KeyBri] = map[string]any{
			"type":    "integer",
			"minimum": 0,
			"maximum": 254,
		}
	}

	if caps.color {
		properties[bridge.KeyXY] = map[string]any{
			"type":     "array",
			"items":    map[string]any{"type": "number", "minimum": 0, "maximum": 1},
			"minItems": 2,
			"maxItems": 2,
		}
		properties[bridge.KeyEffect] = map[string]any{
			"type": "string",
			"enum": []any{bridge.EffectNone, bridge.EffectColorloop},
		}
	}

	if caps.colorTemp {
		properties[bridge.KeyCT] = map[string]any{
			"type":    "integer",
			"minimum": 153,
			"maximum": 500,
		}
	}

	return map[string]any{
		"$schema":              "https://json-schema.org/draft/2020-12/schema",
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
		"minProperties":        1,
	}
}
