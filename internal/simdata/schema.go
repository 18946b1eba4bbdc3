package simdata

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

var metadataSchema = map[string]any{
	"type":     "object",
	"required": []any{"columns"},
	"properties": map[string]any{
		"columns": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"models": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
	},
}

var indexSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type":     "object",
		"required": []any{"image_id", "variants"},
		"properties": map[string]any{
			"image_id":        map[string]any{"type": "string", "minLength": 1},
			"object_label":    map[string]any{"type": "string"},
			"attack_word":     map[string]any{"type": "string"},
			"postit_area_pct": map[string]any{"type": "number"},
			"variants": map[string]any{
				"type": "object",
				"additionalProperties": map[string]any{
					"type":     "object",
					"required": []any{"row_index"},
					"properties": map[string]any{
						"row_index": map[string]any{"type": "integer", "minimum": 0},
					},
				},
			},
		},
	},
}

var propertiesSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type":     "object",
		"required": []any{"model"},
		"properties": map[string]any{
			"model": map[string]any{"type": "string"},
		},
	},
}

func validateAsset(name string, schema map[string]any, raw []byte) error {
	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidAsset, name, err)
	}
	if result.Valid() {
		return nil
	}

	var errs []string
	for _, desc := range result.Errors() {
		errs = append(errs, desc.String())
	}
	return fmt.Errorf("%w: %s: %s", ErrInvalidAsset, name, strings.Join(errs, ", "))
}
