package generic

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestParseJSONLDGraph(t *testing.T) {
	doc := parse(t, `<script type="application/ld+json">
{"@graph":[{"@type":"BreadcrumbList"},{"@type":["Product","Thing"],"name":" Pleated Midi Skirt ",
 "brand":"Aster","category":"Skirts","color":"olive","sku":"SK-1",
 "image":[{"url":"https://cdn.example/s1.jpg"}],"offers":[{"price":2499,"priceCurrency":"INR"}]}]}
</script>`)

	p := Parse(doc)
	assert.Equal(t, "Pleated Midi Skirt", p.Title)
	assert.Equal(t, "Aster", p.Brand)
	assert.Equal(t, "Skirts", p.Category)
	assert.Equal(t, "olive", p.Color)
	assert.Equal(t, "INR 2499", p.DiscountedPrice)
	assert.Equal(t, []string{"https://cdn.example/s1.jpg"}, p.Images)
	require.Len(t, p.Variants, 1)
	assert.Equal(t, "SK-1", p.Variants[0].SKU)
}

func TestParseOpenGraphFallback(t *testing.T) {
	doc := parse(t, `<html><head>
<script type="application/ld+json">{"@type":"Organization","name":"Shop"}</script>
<meta property="og:title" content="Canvas Sneakers">
<meta property="og:description" content="Low-top sneakers">
<meta property="og:image" content="https://cdn.example/a.jpg">
<meta property="og:image" content="https://cdn.example/b.jpg">
<meta property="product:price:amount" content="899">
<meta property="product:price:currency" content="INR">
</head><body><h1>ignored</h1></body></html>`)

	p := Parse(doc)
	assert.Equal(t, "Canvas Sneakers", p.Title)
	assert.Equal(t, "Low-top sneakers", p.Description)
	assert.Equal(t, "INR 899", p.DiscountedPrice)
	assert.Len(t, p.Images, 2)
}

func TestParseHeadingFallback(t *testing.T) {
	p := Parse(parse(t, `<body><h1> Wool Scarf </h1></body>`))
	assert.Equal(t, "Wool Scarf", p.Title)
	assert.Empty(t, p.Images)
}
