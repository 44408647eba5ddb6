package contracts

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas
var schemasFS embed.FS

// Имена зарегистрированных контрактов удалённого API.
const (
	KosListingSchema = "kos-listing"
	KosReviewSchema  = "kos-review"
)

var compiledSchemas = make(map[string]*jsonschema.Schema)

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	// Добавляем все схемы как ресурсы и компилируем.
	// API нам не принадлежит, поэтому схемы описывают наблюдаемую форму ответов.
	err := fs.WalkDir(schemasFS, "schemas", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}

		file, err := schemasFS.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()

		if err := compiler.AddResource(path, file); err != nil {
			log.Fatalf("failed to add schema resource %s: %v", path, err)
		}

		schema, err := compiler.Compile(path)
		if err != nil {
			log.Fatalf("could not compile schema %s: %v", path, err)
		}

		compiledSchemas[generateKeyFromPath(path)] = schema
		return nil
	})
	if err != nil {
		log.Fatalf("error walking and compiling schemas: %v", err)
	}
}

// generateKeyFromPath преобразует путь вида "schemas/kos-listing.json"
// в ключ вида "kos-listing".
func generateKeyFromPath(path string) string {
	trimmed := strings.TrimPrefix(path, "schemas/")
	return strings.TrimSuffix(trimmed, ".json")
}

// Validate проверяет сырое JSON-тело по зарегистрированной схеме.
// Несовпадение — не фатальная ошибка для вызывающего кода: удалённый API
// может меняться, и шлюз только логирует расхождение.
func Validate(schemaName string, raw []byte) error {
	schema, ok := compiledSchemas[schemaName]
	if !ok {
		return fmt.Errorf("unknown schema %q", schemaName)
	}

	var payload interface{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return fmt.Errorf("payload is not valid JSON: %w", err)
	}

	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("payload does not match schema %q: %w", schemaName, err)
	}
	return nil
}
