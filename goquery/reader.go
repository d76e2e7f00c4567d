package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/propcap"
)

// parseDoc parses the snapshot's HTML. Parse failures surface as EINVALID;
// the engine treats any reader error as the source being absent.
func parseDoc(snap *propcap.PageSnapshot) (*goquery.Document, error) {
	if snap == nil {
		return nil, propcap.Errorf(propcap.EINVALID, "page snapshot required")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(snap.HTML))
	if err != nil {
		return nil, propcap.Errorf(propcap.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// firstText returns the trimmed text of the first element matching the
// selector, or nil. An empty selector matches nothing.
func firstText(doc *goquery.Document, selector string) *string {
	if selector == "" {
		return nil
	}
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return nil
	}
	return propcap.TrimOrNil(sel.Text())
}

// uniqueStrings de-duplicates preserving first-seen order, dropping empties
// and truncating to limit (0 = no cap).
func uniqueStrings(items []string, limit int) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range items {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}
