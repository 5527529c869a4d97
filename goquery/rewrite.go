package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagemd"
)

// Apply implements pagemd.Locator.
func (l *Locator) Apply(rewrites []pagemd.Rewrite) {
	ApplyRewrites(rewrites)
}

// ApplyRewrites points each referenced element's src at its rewrite value.
// References without a node are ignored.
func ApplyRewrites(rewrites []pagemd.Rewrite) {
	for _, rw := range rewrites {
		if rw.Ref.Node == nil {
			continue
		}
		goquery.NewDocumentFromNode(rw.Ref.Node).Selection.SetAttr("src", rw.Value)
	}
}
