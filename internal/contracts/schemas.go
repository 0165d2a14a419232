package contracts

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/MinYonhee/api-urban-valle/schemas"
)

// Registry holds compiled schemas keyed as "<Name><Kind>/<version>",
// e.g. "ContactCreatedEvent/1.0.0" or "PropertyRequest/1.0.0".
type Registry struct {
	compiled map[string]*jsonschema.Schema
}

var roots = map[string]string{
	"events":   "Event",
	"requests": "Request",
}

var defaultRegistry *Registry

func init() {
	reg, err := NewRegistry(schemas.SchemasFS)
	if err != nil {
		panic(fmt.Sprintf("contracts: %v", err))
	}
	defaultRegistry = reg
}

// NewRegistry compiles every *.json under events/ and requests/ of fsys.
func NewRegistry(fsys fs.FS) (*Registry, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	var paths []string
	for root := range roots {
		if _, err := fs.Stat(fsys, root); err != nil {
			continue
		}
		err := fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(path, ".json") {
				return nil
			}
			file, err := fsys.Open(path)
			if err != nil {
				return err
			}
			defer file.Close()
			if err := compiler.AddResource(path, file); err != nil {
				return fmt.Errorf("failed to add schema resource %s: %w", path, err)
			}
			paths = append(paths, path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("error walking schema resources: %w", err)
		}
	}

	reg := &Registry{compiled: make(map[string]*jsonschema.Schema, len(paths))}
	for _, path := range paths {
		key := generateKeyFromPath(path)
		if key == "" {
			return nil, fmt.Errorf("schema path %s must look like <root>/<name>/v<N>.json", path)
		}
		schema, err := compiler.Compile(path)
		if err != nil {
			return nil, fmt.Errorf("could not compile schema %s: %w", path, err)
		}
		reg.compiled[key] = schema
	}
	return reg, nil
}

// generateKeyFromPath turns "events/contact-created/v1.json" into
// "ContactCreatedEvent/1.0.0".
func generateKeyFromPath(path string) string {
	parts := strings.Split(strings.TrimSuffix(path, ".json"), "/")
	if len(parts) != 3 || !strings.HasPrefix(parts[2], "v") {
		return ""
	}
	suffix, ok := roots[parts[0]]
	if !ok {
		return ""
	}

	caser := cases.Title(language.English)
	var name strings.Builder
	for _, p := range strings.Split(parts[1], "-") {
		name.WriteString(caser.String(p))
	}
	name.WriteString(suffix)

	return fmt.Sprintf("%s/%s.0.0", name.String(), strings.TrimPrefix(parts[2], "v"))
}

// Validate checks body against the schema registered under name/version.
func (r *Registry) Validate(name, version string, body []byte) error {
	key := fmt.Sprintf("%s/%s", name, version)
	schema, ok := r.compiled[key]
	if !ok {
		return fmt.Errorf("schema '%s' version '%s' not found", name, version)
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("body is not valid JSON: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("JSON schema validation failed: %w", err)
	}
	return nil
}

// ValidateEvent validates an outgoing event body, e.g. ("ContactCreated", "1.0.0").
func ValidateEvent(eventType, eventVersion string, body []byte) error {
	return defaultRegistry.Validate(eventType+"Event", eventVersion, body)
}

// ValidateRequest validates an incoming request body, e.g. ("Property", "1.0.0").
func ValidateRequest(requestType, version string, body []byte) error {
	return defaultRegistry.Validate(requestType+"Request", version, body)
}
