package extract

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/eino/schema"
	"github.com/eino-contrib/jsonschema"
	"github.com/tbxark/intentagent/types"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ParametersSchema renders the slots of a tool as an object schema whose
// properties keep declaration order.
func ParametersSchema(tool types.ToolDescriptor) *jsonschema.Schema {
	props := orderedmap.New[string, *jsonschema.Schema]()
	for _, s := range tool.Slots {
		props.Set(s.Name, &jsonschema.Schema{
			Type:        "string",
			Description: s.Description,
		})
	}
	return &jsonschema.Schema{
		Type:       "object",
		Properties: props,
		Required:   append([]string(nil), tool.Required...),
	}
}

func ToolInfo(tool types.ToolDescriptor) *schema.ToolInfo {
	return &schema.ToolInfo{
		Name:        tool.Name,
		Desc:        tool.Description,
		ParamsOneOf: schema.NewParamsOneOfByJSONSchema(ParametersSchema(tool)),
	}
}

type toolDocument struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Parameters  *jsonschema.Schema `json:"parameters"`
}

// ToolJSON is the function definition placed in text prompts.
func ToolJSON(tool types.ToolDescriptor) (string, error) {
	doc := toolDocument{
		Name:        tool.Name,
		Description: tool.Description,
		Parameters:  ParametersSchema(tool),
	}
	out, err := sonic.MarshalString(doc)
	if err != nil {
		return "", fmt.Errorf("marshal tool %s: %w", tool.Name, err)
	}
	return out, nil
}
