// Package link builds canonical product-detail URLs on the retailer's site.
package link

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const DefaultHost = "www.systembolaget.se"

var ErrUnknownCategory = errors.New("unknown category")

// segments maps a Varugrupp label to the site's URL section.
var segments = map[string]string{
	"Okryddad sprit":         "sprit",
	"Vitt vin":               "vita-viner",
	"Rött vin":               "roda-viner",
	"Mousserande vin":        "mousserande-viner",
	"Öl":                     "ol",
	"Tequila och Mezcal":     "sprit",
	"Whisky":                 "sprit",
	"Rosévin":                "roseviner",
	"Cognac":                 "sprit",
	"Kryddad sprit":          "sprit",
	"Portvin":                "aperitif-dessert",
	"Montilla":               "aperitif-dessert",
	"Rom":                    "sprit",
	"Likör":                  "sprit",
	"Gin":                    "sprit",
	"Brandy och Vinsprit":    "sprit",
	"Glögg och Glühwein":     "aperitif-dessert",
	"Cider":                  "cider-och-blanddrycker",
	"Vin av flera typer":     "aperitif-dessert",
	"Smaksatt sprit":         "sprit",
	"Fruktvin":               "aperitif-dessert",
	"Övrig sprit":            "sprit",
	"Alkoholfritt":           "alkoholfritt",
	"Sprit av frukt":         "sprit",
	"Bitter":                 "sprit",
	"Sherry":                 "aperitif-dessert",
	"Grappa och Marc":        "sprit",
	"Övrigt starkvin":        "aperitif-dessert",
	"Mjöd":                   "aperitif-dessert",
	"Aperitif":               "aperitif-dessert",
	"Smaksatt vin":           "aperitif-dessert",
	"Sake":                   "aperitif-dessert",
	"Calvados":               "sprit",
	"Genever":                "sprit",
	"Blanddrycker":           "cider-och-blanddrycker",
	"Vermouth":               "aperitif-dessert",
	"Drinkar och Cocktails":  "sprit",
	"Armagnac":               "sprit",
	"Aniskryddad sprit":      "sprit",
	"Punsch":                 "sprit",
	"Madeira":                "aperitif-dessert",
	"Vita":                   "vita-viner",
	"Snaps":                  "sprit",
	"Röda":                   "roda-viner",
	"Rosé":                   "roseviner",
}

var (
	invalidChars = regexp.MustCompile(`[^A-Za-z0-9\-]+`)
	hyphenRuns   = regexp.MustCompile(`-{2,}`)
)

type Builder struct {
	Host string
}

func NewBuilder(host string) *Builder {
	if host == "" {
		host = DefaultHost
	}
	return &Builder{Host: host}
}

// Build returns https://<host>/dryck/<segment>/<slug>-<id>.
func (b *Builder) Build(id int64, category, name string) (string, error) {
	segment, ok := Segment(category)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	return "https://" + b.Host + "/dryck/" + segment + "/" + Slug(name) + "-" + strconv.FormatInt(id, 10), nil
}

// Segment returns the URL section for a Varugrupp label.
func Segment(category string) (string, bool) {
	s, ok := segments[category]
	return s, ok
}

// Slug lowercases name, turns spaces into hyphens and reduces it to ASCII
// letters, digits and single hyphens. Accents are stripped from their base
// letter, so "Tegnér" becomes "tegner".
func Slug(name string) string {
	s := strings.ReplaceAll(strings.ToLower(name), " ", "-")

	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	if folded, _, err := transform.String(t, s); err == nil {
		s = folded
	}

	s = invalidChars.ReplaceAllString(s, "")
	return hyphenRuns.ReplaceAllString(s, "-")
}
