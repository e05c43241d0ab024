// Package importer turns a recipe web page into an unsaved recipe draft.
package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"syscall"
	"time"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

const maxPageBytes = 5 << 20

var (
	ErrNoRecipe   = errors.New("no recipe found on page")
	ErrInvalidURL = errors.New("invalid recipe url")
	// ErrBlockedHost is returned when a page resolves to a loopback,
	// private or link-local address
	ErrBlockedHost = errors.New("recipe url points to a non-public address")
)

// RecipeDraft mirrors the editable recipe fields
type RecipeDraft struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	ServingSize     int    `json:"serving_size"`
	Instructions    string `json:"instructions"`
	CountryOfOrigin string `json:"country_of_origin,omitempty"`
	ImageURL        string `json:"image_url,omitempty"`
	SourceURL       string `json:"source_url"`
}

type Importer struct {
	client *http.Client
}

// New uses client as given; nil gets a client that only dials public addresses
func New(client *http.Client) *Importer {
	if client == nil {
		client = publicClient()
	}
	return &Importer{client: client}
}

func publicClient() *http.Client {
	dialer := &net.Dialer{
		Timeout: 10 * time.Second,
		Control: refusePrivate,
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	// a proxy would hide the real destination from the dial check
	transport.Proxy = nil
	transport.DialContext = dialer.DialContext
	return &http.Client{Timeout: 30 * time.Second, Transport: transport}
}

// refusePrivate runs after DNS resolution, so redirects and rebinding are
// checked too
func refusePrivate(_, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}
	ip := net.ParseIP(host)
	if ip == nil || !publicIP(ip) {
		return fmt.Errorf("%w: %s", ErrBlockedHost, host)
	}
	return nil
}

func publicIP(ip net.IP) bool {
	return !(ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() ||
		ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() ||
		ip.IsInterfaceLocalMulticast() || ip.IsMulticast())
}

// Import fetches pageURL and extracts a draft from it
func (i *Importer) Import(ctx context.Context, pageURL string) (*RecipeDraft, error) {
	u, err := url.Parse(pageURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w %q", ErrInvalidURL, pageURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "meal-planner/1.0 (+recipe import)")
	req.Header.Set("Accept", "text/html")

	resp, err := i.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", u, resp.StatusCode)
	}
	return ParseRecipePage(io.LimitReader(resp.Body, maxPageBytes), u.String())
}

// ParseRecipePage reads schema.org Recipe JSON-LD, falling back to
// OpenGraph tags and <title>
func ParseRecipePage(r io.Reader, pageURL string) (*RecipeDraft, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	draft := &RecipeDraft{SourceURL: pageURL}

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		node := findRecipeNode(s.Text())
		if node == nil {
			return true
		}
		fillFromJSONLD(draft, node)
		return false
	})

	if draft.Name == "" {
		draft.Name = metaContent(doc, "og:title")
	}
	if draft.Name == "" {
		draft.Name = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if draft.Description == "" {
		draft.Description = metaContent(doc, "og:description")
	}
	if draft.Description == "" {
		draft.Description, _ = doc.Find(`meta[name="description"]`).Attr("content")
		draft.Description = strings.TrimSpace(draft.Description)
	}
	if draft.ImageURL == "" {
		draft.ImageURL = metaContent(doc, "og:image")
	}

	if draft.Name == "" {
		return nil, ErrNoRecipe
	}
	draft.ImageURL = resolveURL(pageURL, draft.ImageURL)
	return draft, nil
}

func metaContent(doc *goquery.Document, property string) string {
	v, _ := doc.Find(fmt.Sprintf(`meta[property=%q]`, property)).First().Attr("content")
	return strings.TrimSpace(v)
}

// findRecipeNode accepts a single object, an array, or an @graph wrapper
func findRecipeNode(raw string) map[string]interface{} {
	var doc interface{}
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &doc); err != nil {
		return nil
	}
	return searchRecipe(doc)
}

func searchRecipe(v interface{}) map[string]interface{} {
	switch t := v.(type) {
	case []interface{}:
		for _, item := range t {
			if node := searchRecipe(item); node != nil {
				return node
			}
		}
	case map[string]interface{}:
		if isRecipeType(t["@type"]) {
			return t
		}
		if graph, ok := t["@graph"]; ok {
			return searchRecipe(graph)
		}
	}
	return nil
}

func isRecipeType(v interface{}) bool {
	for _, s := range stringList(v) {
		if s == "Recipe" {
			return true
		}
	}
	return false
}

func fillFromJSONLD(d *RecipeDraft, node map[string]interface{}) {
	d.Name = firstString(node["name"])
	d.Description = firstString(node["description"])
	d.Category = firstString(node["recipeCategory"])
	d.CountryOfOrigin = firstString(node["recipeCuisine"])
	d.ServingSize = parseYield(node["recipeYield"])
	d.ImageURL = imageURL(node["image"])
	d.Instructions = instructions(node["recipeInstructions"])
}

func firstString(v interface{}) string {
	list := stringList(v)
	if len(list) == 0 {
		return ""
	}
	return strings.TrimSpace(list[0])
}

func stringList(v interface{}) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// parseYield takes the first number out of "4 servings", 4 or ["4", "4 人分"]
func parseYield(v interface{}) int {
	switch t := v.(type) {
	case float64:
		return int(t)
	case []interface{}:
		for _, item := range t {
			if n := parseYield(item); n > 0 {
				return n
			}
		}
	case string:
		digits := strings.FieldsFunc(t, func(r rune) bool { return !unicode.IsDigit(r) })
		if len(digits) > 0 {
			n, _ := strconv.Atoi(digits[0])
			return n
		}
	}
	return 0
}

func imageURL(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case []interface{}:
		if len(t) > 0 {
			return imageURL(t[0])
		}
	case map[string]interface{}:
		return firstString(t["url"])
	}
	return ""
}

// instructions flattens HowToStep / HowToSection lists into numbered lines
func instructions(v interface{}) string {
	var steps []string
	collectSteps(v, &steps)

	if len(steps) == 1 {
		return steps[0]
	}
	var b strings.Builder
	for i, step := range steps {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s", i+1, step)
	}
	return b.String()
}

func collectSteps(v interface{}, steps *[]string) {
	switch t := v.(type) {
	case string:
		if s := strings.TrimSpace(t); s != "" {
			*steps = append(*steps, s)
		}
	case []interface{}:
		for _, item := range t {
			collectSteps(item, steps)
		}
	case map[string]interface{}:
		if items, ok := t["itemListElement"]; ok {
			collectSteps(items, steps)
			return
		}
		if text, ok := t["text"].(string); ok {
			collectSteps(text, steps)
		}
	}
}

func resolveURL(base, ref string) string {
	if ref == "" {
		return ""
	}
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}
