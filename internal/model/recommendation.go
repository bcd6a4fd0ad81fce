package model

import (
	"errors"
	"strings"
)

// ErrMissingCategory is returned when a request has no product category
var ErrMissingCategory = errors.New("product category is required")

// Request is what a caller asks for: a product category and desired attributes
type Request struct {
	Product    string   `json:"product" yaml:"product"`
	Attributes []string `json:"attributes" yaml:"attributes"`
}

// Validate checks the request shape and normalizes whitespace
func (r *Request) Validate() error {
	r.Product = strings.TrimSpace(r.Product)
	if r.Product == "" {
		return ErrMissingCategory
	}

	attrs := make([]string, 0, len(r.Attributes))
	for _, a := range r.Attributes {
		if a = strings.TrimSpace(a); a != "" {
			attrs = append(attrs, a)
		}
	}
	r.Attributes = attrs
	return nil
}

// QueryTerms returns the lowercased product type followed by the lowercased attributes
func (r Request) QueryTerms() []string {
	terms := []string{strings.ToLower(strings.TrimSpace(r.Product))}
	for _, a := range r.Attributes {
		if a = strings.TrimSpace(a); a != "" {
			terms = append(terms, strings.ToLower(a))
		}
	}
	return terms
}

// Recommendation is the single selected product for one evidence stream
type Recommendation struct {
	Product       string   `json:"product"`
	Description   string   `json:"description"`
	Sources       []string `json:"sources"`
	BuyLink       string   `json:"buy_link"`
	ImageURL      string   `json:"image_url"`
	ValidityScore int      `json:"validity_score"`
	Attributes    []string `json:"attributes"`
}

// Result holds at most one recommendation per stream
type Result struct {
	Forum *Recommendation `json:"reddit"`
	Video *Recommendation `json:"youtube"`
}

// Empty reports whether neither stream produced a recommendation
func (r Result) Empty() bool {
	return r.Forum == nil && r.Video == nil
}
