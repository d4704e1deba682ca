package frames

import "github.com/invopop/jsonschema"

type updateTitleSchema struct {
	Type  string `json:"type" jsonschema:"enum=UpdateTitle"`
	Title string `json:"title" jsonschema:"description=New title for the caption surface"`
}

type changeSceneSchema struct {
	Type  string `json:"type" jsonschema:"enum=ChangeScene"`
	Index int    `json:"index" jsonschema:"minimum=0,description=Scene index to load"`
}

type speechSchema struct {
	Type    string `json:"type" jsonschema:"enum=Speech"`
	VtbName string `json:"vtb_name" jsonschema:"description=Actor that speaks"`
	Message string `json:"message" jsonschema:"description=Caption text"`
	Motion  string `json:"motion,omitempty" jsonschema:"description=Motion group to trigger on the actor"`
	Waker   string `json:"waker,omitempty" jsonschema:"description=Token echoed back once the next audio clip finished playing"`
	Voice   bool   `json:"voice,omitempty" jsonschema:"description=Whether an audio clip follows"`
}

// ControlSchema describes every control event the client understands.
func ControlSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{DoNotReference: true, Anonymous: true}

	oneOf := make([]*jsonschema.Schema, 0, 3)
	for _, v := range []any{updateTitleSchema{}, changeSceneSchema{}, speechSchema{}} {
		schema := reflector.Reflect(v)
		schema.Version = ""
		oneOf = append(oneOf, schema)
	}

	return &jsonschema.Schema{
		Version:     jsonschema.Version,
		Title:       "ema-avatar control event",
		Description: "Text messages sent by the backend on /ws/{actor}",
		OneOf:       oneOf,
	}
}
