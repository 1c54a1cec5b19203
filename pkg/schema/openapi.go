package schema

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

const (
	extensionOrder    = "x-regform-order"
	extensionTrim     = "x-regform-trim"
	extensionMessages = "x-regform-messages"
)

// FromOpenAPI derives a schema from a JSON request body schema. Property
// constraints map onto rule chains: required -> Required, minLength -> Min,
// maxLength -> Max, enum -> OneOf. Message keys default to the
// "<field><Rule>" convention (usernameMin, favFoodOptions, ...) and can be
// overridden per property through x-regform-messages.
func FromOpenAPI(body *openapi3.Schema, messages Messages) (*Schema, error) {
	if body == nil {
		return nil, errors.New("schema: request body schema is nil")
	}
	if len(body.Properties) == 0 {
		return nil, errors.New("schema: request body has no properties")
	}

	required := make(map[string]struct{}, len(body.Required))
	for _, name := range body.Required {
		required[name] = struct{}{}
	}

	var fields []*Field
	for _, name := range propertyOrder(body) {
		ref := body.Properties[name]
		if ref == nil || ref.Value == nil {
			return nil, fmt.Errorf("schema: property %q is unresolved", name)
		}
		_, isRequired := required[name]
		field, err := fieldFromProperty(name, ref.Value, isRequired)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}

	return New(messages, fields...)
}

func fieldFromProperty(name string, prop *openapi3.Schema, required bool) (*Field, error) {
	overrides := stringMap(prop.Extensions[extensionMessages])
	key := func(rule, suffix string) MessageKey {
		if custom := strings.TrimSpace(overrides[rule]); custom != "" {
			return MessageKey(custom)
		}
		return MessageKey(name + suffix)
	}

	var field *Field
	switch typ := firstType(prop.Type); typ {
	case "boolean":
		field = Boolean(name)
	case "string", "":
		field = String(name)
	default:
		return nil, fmt.Errorf("schema: property %q has unsupported type %q", name, typ)
	}

	if trim, _ := prop.Extensions[extensionTrim].(bool); trim {
		field.Trim()
	}
	if required {
		field.Required(key(RuleRequired, "Required"))
	}
	if field.typ == TypeString {
		if prop.MinLength > 0 {
			field.Min(int(prop.MinLength), key("minLength", "Min"))
		}
		if prop.MaxLength != nil {
			field.Max(int(*prop.MaxLength), key("maxLength", "Max"))
		}
	}
	if len(prop.Enum) > 0 {
		allowed := make([]string, 0, len(prop.Enum))
		for _, v := range prop.Enum {
			allowed = append(allowed, fmt.Sprint(v))
		}
		field.OneOf(allowed, key("enum", "Options"))
	}
	return field, nil
}

func propertyOrder(body *openapi3.Schema) []string {
	var order []string
	seen := make(map[string]struct{}, len(body.Properties))
	if raw, ok := body.Extensions[extensionOrder].([]any); ok {
		for _, item := range raw {
			name, ok := item.(string)
			if !ok {
				continue
			}
			if _, exists := body.Properties[name]; !exists {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			order = append(order, name)
		}
	}

	var rest []string
	for name := range body.Properties {
		if _, ok := seen[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

func firstType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func stringMap(value any) map[string]string {
	raw, ok := value.(map[string]any)
	if !ok || len(raw) == 0 {
		return nil
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}
