package scrape

import (
	"errors"
	"strings"
	"testing"
)

const fullRecipePage = `<!DOCTYPE html>
<html><head>
<title>Ignored Page Title</title>
<script type="application/ld+json">
{
  "@context": "https://schema.org",
  "@type": "Recipe",
  "name": "Classic Pancakes",
  "description": "Fluffy breakfast pancakes.",
  "totalTime": "PT25M",
  "cookTime": "PT10M",
  "prepTime": "PT15M",
  "recipeYield": "4 servings",
  "image": "https://example.com/pancakes.jpg",
  "recipeIngredient": ["200g flour", "2 eggs", "300ml milk"],
  "recipeInstructions": [
    {"@type": "HowToStep", "text": "Whisk the batter."},
    {"@type": "HowToStep", "text": "Fry until golden."}
  ]
}
</script>
</head><body></body></html>`

func parsePage(t *testing.T, html string) Source {
	t.Helper()
	src, err := Parse(strings.NewReader(html), "https://example.com/recipe")
	if err != nil {
		t.Fatalf("parse page: %v", err)
	}
	return src
}

func TestPageSourceFullRecipe(t *testing.T) {
	src := parsePage(t, fullRecipePage)

	title, err := src.Title()
	if err != nil || title != "Classic Pancakes" {
		t.Errorf("title = %q, %v", title, err)
	}
	total, err := src.TotalTime()
	if err != nil || total != 25 {
		t.Errorf("total time = %d, %v", total, err)
	}
	cook, err := src.CookTime()
	if err != nil || cook != 10 {
		t.Errorf("cook time = %d, %v", cook, err)
	}
	prep, err := src.PrepTime()
	if err != nil || prep != 15 {
		t.Errorf("prep time = %d, %v", prep, err)
	}
	yields, err := src.Yields()
	if err != nil || yields != "4 servings" {
		t.Errorf("yields = %q, %v", yields, err)
	}
	desc, err := src.Description()
	if err != nil || desc != "Fluffy breakfast pancakes." {
		t.Errorf("description = %q, %v", desc, err)
	}
	image, err := src.Image()
	if err != nil || image != "https://example.com/pancakes.jpg" {
		t.Errorf("image = %q, %v", image, err)
	}
	instructions, err := src.Instructions()
	if err != nil || instructions != "Whisk the batter.\nFry until golden." {
		t.Errorf("instructions = %q, %v", instructions, err)
	}
	ingredients, err := src.Ingredients()
	if err != nil || len(ingredients) != 3 || ingredients[0] != "200g flour" {
		t.Errorf("ingredients = %v, %v", ingredients, err)
	}
}

func TestPageSourceGraphContainer(t *testing.T) {
	page := `<html><head>
<script type="application/ld+json">
{
  "@context": "https://schema.org",
  "@graph": [
    {"@type": "WebSite", "name": "Some Cooking Site"},
    {"@type": ["Recipe", "Thing"], "name": "Graph Soup", "recipeIngredient": ["water"]}
  ]
}
</script>
</head><body></body></html>`

	src := parsePage(t, page)
	title, err := src.Title()
	if err != nil || title != "Graph Soup" {
		t.Errorf("title = %q, %v", title, err)
	}
	ingredients, err := src.Ingredients()
	if err != nil || len(ingredients) != 1 {
		t.Errorf("ingredients = %v, %v", ingredients, err)
	}
}

func TestPageSourceOpenGraphFallback(t *testing.T) {
	page := `<html><head>
<title>Doc Title Soup</title>
<meta property="og:title" content="OG Soup">
<meta property="og:description" content="From the meta tags.">
<meta property="og:image" content="https://example.com/og.jpg">
</head><body></body></html>`

	src := parsePage(t, page)

	title, err := src.Title()
	if err != nil || title != "OG Soup" {
		t.Errorf("title = %q, %v", title, err)
	}
	desc, err := src.Description()
	if err != nil || desc != "From the meta tags." {
		t.Errorf("description = %q, %v", desc, err)
	}
	image, err := src.Image()
	if err != nil || image != "https://example.com/og.jpg" {
		t.Errorf("image = %q, %v", image, err)
	}

	// 没有结构化数据的字段逐个报告不支持
	if _, err := src.TotalTime(); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported for total time, got %v", err)
	}
	if _, err := src.Ingredients(); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported for ingredients, got %v", err)
	}
	if _, err := src.Yields(); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported for yields, got %v", err)
	}
}

func TestPageSourceTitleFallsBackToDocumentTitle(t *testing.T) {
	page := `<html><head><title> Plain Title </title></head><body></body></html>`
	src := parsePage(t, page)

	title, err := src.Title()
	if err != nil || title != "Plain Title" {
		t.Errorf("title = %q, %v", title, err)
	}
}

func TestPageSourceEmptyPage(t *testing.T) {
	src := parsePage(t, `<html><head></head><body></body></html>`)

	if _, err := src.Title(); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported for title, got %v", err)
	}
}

func TestPageSourceInvalidJSONSkipped(t *testing.T) {
	page := `<html><head>
<script type="application/ld+json">{not json)</script>
<script type="application/ld+json">{"@type": "Recipe", "name": "Second Script"}</script>
</head><body></body></html>`

	src := parsePage(t, page)
	title, err := src.Title()
	if err != nil || title != "Second Script" {
		t.Errorf("title = %q, %v", title, err)
	}
}

func TestPageSourceInstructionVariants(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected string
	}{
		{
			name:     "纯字符串",
			payload:  `"Mix everything and bake."`,
			expected: "Mix everything and bake.",
		},
		{
			name:     "字符串数组",
			payload:  `["Mix.", "Bake."]`,
			expected: "Mix.\nBake.",
		},
		{
			name:     "HowToSection 嵌套",
			payload:  `[{"@type": "HowToSection", "name": "Dough", "itemListElement": [{"@type": "HowToStep", "text": "Knead."}]}, {"@type": "HowToStep", "text": "Rest."}]`,
			expected: "Knead.\nRest.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := `<html><head><script type="application/ld+json">` +
				`{"@type": "Recipe", "name": "X", "recipeInstructions": ` + tt.payload + `}` +
				`</script></head><body></body></html>`
			src := parsePage(t, page)
			got, err := src.Instructions()
			if err != nil {
				t.Fatalf("instructions: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestPageSourceImageVariants(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected string
	}{
		{
			name:     "字符串",
			payload:  `"https://example.com/a.jpg"`,
			expected: "https://example.com/a.jpg",
		},
		{
			name:     "数组取第一个",
			payload:  `["https://example.com/a.jpg", "https://example.com/b.jpg"]`,
			expected: "https://example.com/a.jpg",
		},
		{
			name:     "ImageObject",
			payload:  `{"@type": "ImageObject", "url": "https://example.com/obj.jpg"}`,
			expected: "https://example.com/obj.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := `<html><head><script type="application/ld+json">` +
				`{"@type": "Recipe", "name": "X", "image": ` + tt.payload + `}` +
				`</script></head><body></body></html>`
			src := parsePage(t, page)
			got, err := src.Image()
			if err != nil {
				t.Fatalf("image: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestPageSourceLegacyIngredientsKey(t *testing.T) {
	page := `<html><head><script type="application/ld+json">
{"@type": "Recipe", "name": "Legacy", "ingredients": ["salt", "pepper"]}
</script></head><body></body></html>`

	src := parsePage(t, page)
	ingredients, err := src.Ingredients()
	if err != nil || len(ingredients) != 2 {
		t.Errorf("ingredients = %v, %v", ingredients, err)
	}
}
