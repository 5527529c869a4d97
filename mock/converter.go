package mock

import (
	"github.com/fwojciec/pagemd"
	"golang.org/x/net/html"
)

var _ pagemd.Converter = (*Converter)(nil)

// Converter is a mock implementation of pagemd.Converter.
type Converter struct {
	ConvertFn func(n *html.Node) (string, error)
}

func (c *Converter) Convert(n *html.Node) (string, error) {
	return c.ConvertFn(n)
}
