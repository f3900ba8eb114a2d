// Package tool describes the callable tools advertised to the model.
package tool

// Param is a single tool parameter in a JSON-schema object.
type Param struct {
	Name        string
	Type        string // "string" or "number"
	Description string
	Required    bool
}

// Spec declares a tool: its name, what it does, and its parameters.
// The same specs feed both the chat-completions tool schema and the MCP
// tool registry.
type Spec struct {
	Name        string
	Description string
	Params      []Param
}

// Required returns the names of the required parameters, in declaration order.
func (s Spec) Required() []string {
	var out []string
	for _, p := range s.Params {
		if p.Required {
			out = append(out, p.Name)
		}
	}
	return out
}
