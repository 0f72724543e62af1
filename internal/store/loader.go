package store

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/apidocs/internal/apimeta"
	ferrors "git.home.luguber.info/inful/apidocs/internal/foundation/errors"
	"git.home.luguber.info/inful/apidocs/internal/logfields"
)

//go:embed schema/type.schema.json
var typeSchemaJSON []byte

var typeSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	if err := compiler.AddResource("type.schema.json", bytes.NewReader(typeSchemaJSON)); err != nil {
		return nil, err
	}
	return compiler.Compile("type.schema.json")
})

// LoadDir reads generator output for every version from <dir>/<version>/.
// Each .json, .yaml or .yml file holds a single type, a list of types, or an
// object keyed by type name. Every type is validated against the embedded
// schema before it is decoded. A declared version without a directory loads
// as empty.
func LoadDir(dir string, versions []string) (map[string]map[string]apimeta.Type, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryMetadata, "metadata directory not readable").
			Fatal().WithContext("file", dir).Build()
	}

	out := make(map[string]map[string]apimeta.Type, len(versions))
	for _, version := range versions {
		versionDir := filepath.Join(dir, version)
		files, err := metadataFiles(versionDir)
		if err != nil {
			return nil, err
		}
		types := make(map[string]apimeta.Type)
		for _, file := range files {
			docs, err := LoadFile(file)
			if err != nil {
				return nil, err
			}
			for _, t := range docs {
				if _, dup := types[t.Name]; dup {
					return nil, ferrors.MetadataError("duplicate type in version").
						WithContext("file", file).
						WithContext("type", t.Name).
						WithContext("version", version).
						Build()
				}
				types[t.Name] = t
			}
		}
		if len(files) == 0 {
			slog.Warn("No metadata files for version", logfields.Version(version), logfields.Path(versionDir))
		}
		out[version] = types
	}
	return out, nil
}

func metadataFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "read metadata directory").
			WithContext("file", dir).Build()
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".json", ".yaml", ".yml":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// LoadFile decodes and validates the types contained in a single file.
func LoadFile(path string) ([]apimeta.Type, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "read metadata file").
			WithContext("file", path).Build()
	}

	var raw any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	default:
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryMetadata, "decode metadata file").
			Fatal().WithContext("file", path).Build()
	}

	docs, err := splitDocuments(raw)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryMetadata, "unexpected metadata layout").
			Fatal().WithContext("file", path).Build()
	}

	schema, err := typeSchema()
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryInternal, "compile metadata schema").Fatal().Build()
	}

	types := make([]apimeta.Type, 0, len(docs))
	for _, doc := range docs {
		if err := schema.Validate(doc); err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryValidation, "metadata failed schema validation").
				Fatal().
				WithContext("file", path).
				WithContext("issues", validationIssues(err)).
				Build()
		}
		encoded, err := json.Marshal(doc)
		if err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryMetadata, "re-encode metadata").
				Fatal().WithContext("file", path).Build()
		}
		var t apimeta.Type
		if err := json.Unmarshal(encoded, &t); err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryMetadata, "decode metadata type").
				Fatal().WithContext("file", path).Build()
		}
		types = append(types, t)
	}
	return types, nil
}

// splitDocuments normalizes the three accepted file layouts to a list of type documents.
func splitDocuments(raw any) ([]any, error) {
	switch v := raw.(type) {
	case []any:
		return v, nil
	case map[string]any:
		if _, single := v["name"].(string); single {
			return []any{v}, nil
		}
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		docs := make([]any, 0, len(keys))
		for _, k := range keys {
			doc, ok := v[k].(map[string]any)
			if !ok {
				return nil, fmt.Errorf("entry %q is not an object", k)
			}
			if _, named := doc["name"]; !named {
				doc["name"] = k
			}
			docs = append(docs, doc)
		}
		return docs, nil
	default:
		return nil, fmt.Errorf("expected object or array, got %T", raw)
	}
}

func validationIssues(err error) []string {
	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{err.Error()}
	}
	var issues []string
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if len(node.Causes) == 0 {
			loc := node.InstanceLocation
			if loc == "" {
				loc = "#"
			}
			issues = append(issues, loc+": "+node.Message)
			return
		}
		for _, c := range node.Causes {
			walk(c)
		}
	}
	walk(verr)
	return issues
}
