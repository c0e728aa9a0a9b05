// Package extractor pulls a product price out of a retailer page. The page
// structure is an unstable external contract, so the lookup is a single
// deterministic path behind configurable selectors: fail fast and log, no
// fallback chains.
package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"
)

// ErrNoPrice is returned when the page yields no parseable price: the
// heading is missing, no price container follows it, or the container text
// is not numeric.
var ErrNoPrice = errors.New("no price found")

var priceNumber = regexp.MustCompile(`\d+(?:\.\d+)?`)

// Selectors configures where the extractor looks for the product title and
// the price container near it.
type Selectors struct {
	// Heading selects the product title element. The first match anchors
	// the price lookup.
	Heading string

	// Price selects price containers. The first match after the heading,
	// in document order, is taken as the product price.
	Price string
}

// DefaultSelectors matches the retailer's current product page markup.
func DefaultSelectors() Selectors {
	return Selectors{
		Heading: "h1",
		Price:   "[class*=price]",
	}
}

// Extractor locates and parses prices in raw HTML documents.
type Extractor struct {
	selectors Selectors
	log       *logrus.Entry
}

// New returns an Extractor using the given selectors.
func New(selectors Selectors, log *logrus.Entry) *Extractor {
	return &Extractor{selectors: selectors, log: log}
}

// Price extracts the product price from a page. The url is used for logging
// only.
func (e *Extractor) Price(page string, url string) (decimal.Decimal, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parse page: %w", err)
	}

	heading := doc.Find(e.selectors.Heading).First()
	if heading.Length() == 0 {
		e.log.Warnf("no %q heading on page: %s", e.selectors.Heading, url)
		return decimal.Decimal{}, fmt.Errorf("%w: page has no %q heading", ErrNoPrice, e.selectors.Heading)
	}

	matches := make(map[*html.Node]struct{})
	for _, n := range doc.Find(e.selectors.Price).Nodes {
		matches[n] = struct{}{}
	}

	container := firstAfter(doc.Nodes[0], heading.Nodes[0], matches)
	if container == nil {
		e.log.Warnf("no %q container after heading on page: %s", e.selectors.Price, url)
		return decimal.Decimal{}, fmt.Errorf("%w: no %q container after heading", ErrNoPrice, e.selectors.Price)
	}

	price, err := parsePrice(nodeText(container))
	if err != nil {
		e.log.Warnf("unparseable price on page %s: %v", url, err)
		return decimal.Decimal{}, err
	}

	e.log.Debugf("extracted price %s from %s", price, url)
	return price, nil
}

// firstAfter returns the first node from matches that follows heading in
// document order. The heading's own subtree does not count as following it.
func firstAfter(root, heading *html.Node, matches map[*html.Node]struct{}) *html.Node {
	var found *html.Node
	seen := false

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if found != nil || n == nil {
			return
		}
		if n == heading {
			seen = true
			return
		}
		if seen {
			if _, ok := matches[n]; ok {
				found = n
				return
			}
		}
		for child := n.FirstChild; child != nil && found == nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)
	return found
}

// nodeText collects the text content of a node's subtree.
func nodeText(node *html.Node) string {
	var buffer bytes.Buffer
	var collect func(n *html.Node)
	collect = func(n *html.Node) {
		if n == nil {
			return
		}
		if n.Type == html.TextNode {
			buffer.WriteString(n.Data)
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			collect(child)
		}
	}
	collect(node)
	return buffer.String()
}

// parsePrice strips currency markers and thousands separators from the
// container text and parses the first decimal number left over.
func parsePrice(text string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(text, ",", "")
	raw := priceNumber.FindString(cleaned)
	if raw == "" {
		return decimal.Decimal{}, fmt.Errorf("%w: no numeric value in %q", ErrNoPrice, strings.TrimSpace(text))
	}

	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q: %v", ErrNoPrice, raw, err)
	}
	return price, nil
}
