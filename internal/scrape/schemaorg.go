package scrape

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// pageSource 基于 schema.org Recipe 标注（JSON-LD）读取字段，
// 标题、简介、图片在缺失时回退到 OpenGraph / 普通 meta 标签。
type pageSource struct {
	recipe map[string]interface{}
	doc    *goquery.Document
	url    string
}

func newPageSource(doc *goquery.Document, pageURL string) *pageSource {
	src := &pageSource{doc: doc, url: pageURL}

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		var payload interface{}
		// 部分站点嵌入残缺 JSON，跳过继续找
		if err := json.Unmarshal([]byte(sel.Text()), &payload); err != nil {
			return true
		}
		if node := findRecipeNode(payload); node != nil {
			src.recipe = node
			return false
		}
		return true
	})

	return src
}

// findRecipeNode walks a decoded JSON-LD payload looking for a node typed as
// schema.org Recipe, descending into arrays and @graph containers.
func findRecipeNode(payload interface{}) map[string]interface{} {
	switch v := payload.(type) {
	case map[string]interface{}:
		if isRecipeType(v["@type"]) {
			return v
		}
		if graph, ok := v["@graph"]; ok {
			return findRecipeNode(graph)
		}
	case []interface{}:
		for _, item := range v {
			if node := findRecipeNode(item); node != nil {
				return node
			}
		}
	}
	return nil
}

func isRecipeType(v interface{}) bool {
	switch t := v.(type) {
	case string:
		return strings.EqualFold(t, "Recipe")
	case []interface{}:
		for _, e := range t {
			if s, ok := e.(string); ok && strings.EqualFold(s, "Recipe") {
				return true
			}
		}
	}
	return false
}

// Title returns the recipe name, falling back to og:title and the document
// title. The only accessor whose absence makes the page unusable.
func (s *pageSource) Title() (string, error) {
	if v, ok := s.stringField("name"); ok {
		return v, nil
	}
	if v, ok := s.metaContent(`meta[property="og:title"]`); ok {
		return v, nil
	}
	if title := strings.TrimSpace(s.doc.Find("title").First().Text()); title != "" {
		return title, nil
	}
	return "", ErrUnsupported
}

func (s *pageSource) TotalTime() (int, error) {
	return s.durationField("totalTime")
}

func (s *pageSource) CookTime() (int, error) {
	return s.durationField("cookTime")
}

func (s *pageSource) PrepTime() (int, error) {
	return s.durationField("prepTime")
}

// Yields returns the raw yield text ("4 servings", "serves 6", ...).
func (s *pageSource) Yields() (string, error) {
	raw, ok := s.field("recipeYield")
	if !ok {
		return "", ErrUnsupported
	}
	if v := flattenText(raw); v != "" {
		return v, nil
	}
	return "", ErrUnsupported
}

func (s *pageSource) Description() (string, error) {
	if v, ok := s.stringField("description"); ok {
		return v, nil
	}
	if v, ok := s.metaContent(`meta[property="og:description"]`, `meta[name="description"]`); ok {
		return v, nil
	}
	return "", ErrUnsupported
}

// Instructions joins the recipe steps with newlines. Handles the three common
// encodings: a plain string, a list of strings, and a list of HowToStep /
// HowToSection objects.
func (s *pageSource) Instructions() (string, error) {
	raw, ok := s.field("recipeInstructions")
	if !ok {
		return "", ErrUnsupported
	}
	steps := flattenInstructions(raw)
	if len(steps) == 0 {
		return "", ErrUnsupported
	}
	return strings.Join(steps, "\n"), nil
}

func (s *pageSource) Image() (string, error) {
	if raw, ok := s.field("image"); ok {
		if v := imageRef(raw); v != "" {
			return v, nil
		}
	}
	if v, ok := s.metaContent(`meta[property="og:image"]`); ok {
		return v, nil
	}
	return "", ErrUnsupported
}

// Ingredients returns the raw ingredient lines in page order.
func (s *pageSource) Ingredients() ([]string, error) {
	raw, ok := s.field("recipeIngredient")
	if !ok {
		// 旧版 schema.org 用 ingredients
		raw, ok = s.field("ingredients")
	}
	if !ok {
		return nil, ErrUnsupported
	}

	list, ok := raw.([]interface{})
	if !ok {
		return nil, ErrUnsupported
	}
	names := make([]string, 0, len(list))
	for _, e := range list {
		if v, ok := e.(string); ok {
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				names = append(names, trimmed)
			}
		}
	}
	if len(names) == 0 {
		return nil, ErrUnsupported
	}
	return names, nil
}

func (s *pageSource) field(key string) (interface{}, bool) {
	if s.recipe == nil {
		return nil, false
	}
	raw, ok := s.recipe[key]
	if !ok || raw == nil {
		return nil, false
	}
	return raw, true
}

func (s *pageSource) stringField(key string) (string, bool) {
	raw, ok := s.field(key)
	if !ok {
		return "", false
	}
	v, ok := raw.(string)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func (s *pageSource) durationField(key string) (int, error) {
	raw, ok := s.field(key)
	if !ok {
		return 0, ErrUnsupported
	}
	minutes, err := coerceMinutes(raw)
	if err != nil {
		return 0, ErrUnsupported
	}
	return minutes, nil
}

func (s *pageSource) metaContent(selectors ...string) (string, bool) {
	for _, sel := range selectors {
		content, exists := s.doc.Find(sel).First().Attr("content")
		if exists {
			if trimmed := strings.TrimSpace(content); trimmed != "" {
				return trimmed, true
			}
		}
	}
	return "", false
}

// flattenText renders a scalar-or-list JSON value as one trimmed string.
func flattenText(raw interface{}) string {
	switch v := raw.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return formatFloat(v)
	case []interface{}:
		for _, e := range v {
			if text := flattenText(e); text != "" {
				return text
			}
		}
	}
	return ""
}

func flattenInstructions(raw interface{}) []string {
	switch v := raw.(type) {
	case string:
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return []string{trimmed}
		}
	case []interface{}:
		var steps []string
		for _, e := range v {
			steps = append(steps, flattenInstructions(e)...)
		}
		return steps
	case map[string]interface{}:
		// HowToSection 嵌套一层 itemListElement
		if nested, ok := v["itemListElement"]; ok {
			return flattenInstructions(nested)
		}
		if text, ok := v["text"].(string); ok {
			if trimmed := strings.TrimSpace(text); trimmed != "" {
				return []string{trimmed}
			}
		}
	}
	return nil
}

func imageRef(raw interface{}) string {
	switch v := raw.(type) {
	case string:
		return strings.TrimSpace(v)
	case map[string]interface{}:
		if u, ok := v["url"].(string); ok {
			return strings.TrimSpace(u)
		}
	case []interface{}:
		for _, e := range v {
			if ref := imageRef(e); ref != "" {
				return ref
			}
		}
	}
	return ""
}

var _ Source = (*pageSource)(nil)
