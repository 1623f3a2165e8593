// Package knowledge loads the static product knowledge base and flattens it into
// short text passages suitable for embedding.
package knowledge

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

var ErrNotFound = errors.New("knowledge base not found")

// Plan fields accept any scalar so "price": 29 and "price": "$29/month" both load.
type Plan struct {
	Plan     Scalar   `json:"plan" yaml:"plan" toml:"plan"`
	Price    Scalar   `json:"price" yaml:"price" toml:"price"`
	Limits   Scalar   `json:"limits" yaml:"limits" toml:"limits"`
	Quality  Scalar   `json:"quality" yaml:"quality" toml:"quality"`
	Features []string `json:"features" yaml:"features" toml:"features"`
}

// Scalar is a string, number or bool rendered as text; null decodes to "".
type Scalar string

func (s *Scalar) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	switch {
	case raw == "null":
		*s = ""
	case strings.HasPrefix(raw, `"`):
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Scalar(str)
	case strings.HasPrefix(raw, "{"), strings.HasPrefix(raw, "["):
		return fmt.Errorf("expected a scalar, got %s", raw)
	default:
		// numbers and booleans keep their literal text
		*s = Scalar(raw)
	}
	return nil
}

func (s *Scalar) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar", node.Line)
	}
	if node.Tag == "!!null" {
		*s = ""
		return nil
	}
	*s = Scalar(node.Value)
	return nil
}

func (s *Scalar) UnmarshalTOML(v interface{}) error {
	switch v.(type) {
	case map[string]interface{}, []interface{}:
		return fmt.Errorf("expected a scalar, got %T", v)
	}
	*s = Scalar(fmt.Sprint(v))
	return nil
}

func (s Scalar) String() string {
	return string(s)
}

// KnowledgeBase mirrors the knowledge file; every section is optional.
type KnowledgeBase struct {
	Pricing  []Plan   `json:"pricing" yaml:"pricing" toml:"pricing"`
	Policies []string `json:"policies" yaml:"policies" toml:"policies"`
	Product  []string `json:"product" yaml:"product" toml:"product"`
}

// Load reads the knowledge base at path. The format follows the file extension:
// .yaml/.yml and .toml are accepted, anything else is decoded as JSON.
func Load(path string) (*KnowledgeBase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w at %s: %w", ErrNotFound, path, err)
		}
		return nil, fmt.Errorf("read knowledge base %s: %w", path, err)
	}

	var kb KnowledgeBase
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &kb)
	case ".toml":
		err = toml.Unmarshal(data, &kb)
	default:
		err = json.Unmarshal(data, &kb)
	}
	if err != nil {
		return nil, fmt.Errorf("decode knowledge base %s: %w", path, err)
	}
	return &kb, nil
}

// LoadTexts loads the knowledge base and returns its passages.
func LoadTexts(path string) ([]string, error) {
	kb, err := Load(path)
	if err != nil {
		return nil, err
	}
	return Flatten(*kb), nil
}

// Flatten produces one passage per plan, then one for all policies and one for all
// product bullets. Empty sections produce no passage.
func Flatten(kb KnowledgeBase) []string {
	texts := make([]string, 0, len(kb.Pricing)+2)

	for _, plan := range kb.Pricing {
		details := []string{
			"Plan: " + plan.Plan.String(),
			"Price: " + plan.Price.String(),
			"Limits: " + plan.Limits.String(),
			"Quality: " + plan.Quality.String(),
		}
		if len(plan.Features) > 0 {
			details = append(details, "Features: "+strings.Join(plan.Features, ", "))
		}
		texts = append(texts, strings.Join(details, " | "))
	}

	if len(kb.Policies) > 0 {
		texts = append(texts, "Policies: "+strings.Join(kb.Policies, "; "))
	}
	if len(kb.Product) > 0 {
		texts = append(texts, "Product: "+strings.Join(kb.Product, " | "))
	}

	return texts
}
