package data

import (
	"encoding/json"
	"fmt"

	yaml "gopkg.in/yaml.v3"
)

// ParseJSONOrYAML works like json.Unmarshal but also accepts YAML. YAML is converted to JSON
// first, so the json struct tags of target apply to both formats.
func ParseJSONOrYAML(data []byte, target interface{}) error {
	if json.Valid(data) {
		return json.Unmarshal(data, target)
	}
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("not valid JSON or YAML: %w", err)
	}
	converted, err := jsonCompatible(doc, "$")
	if err != nil {
		return err
	}
	jsonData, err := json.Marshal(converted)
	if err != nil {
		return err
	}
	return json.Unmarshal(jsonData, target)
}

// jsonCompatible replaces the interface-keyed maps that the YAML decoder produces for
// non-string keys with string-keyed maps, failing if a key is not a string. path locates value
// in error messages.
func jsonCompatible(value interface{}, path string) (interface{}, error) {
	switch value := value.(type) {
	case []interface{}:
		for i, item := range value {
			converted, err := jsonCompatible(item, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			value[i] = converted
		}
		return value, nil
	case map[string]interface{}:
		for key, item := range value {
			converted, err := jsonCompatible(item, path+"."+key)
			if err != nil {
				return nil, err
			}
			value[key] = converted
		}
		return value, nil
	case map[interface{}]interface{}:
		ret := make(map[string]interface{}, len(value))
		for key, item := range value {
			name, ok := key.(string)
			if !ok {
				return nil, fmt.Errorf("YAML map key %v in %s is a %T; only string keys are allowed", key, path, key)
			}
			converted, err := jsonCompatible(item, path+"."+name)
			if err != nil {
				return nil, err
			}
			ret[name] = converted
		}
		return ret, nil
	default:
		return value, nil
	}
}
