package mock

import "github.com/mwalczyk/docdive"

var _ docdive.Converter = (*Converter)(nil)

// Converter is a mock implementation of docdive.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
