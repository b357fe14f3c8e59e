package workflow

import "math/rand/v2"

// Catalog maps verification links to the code the user receives after
// completing the task behind the link.
type Catalog map[string]string

// DefaultCatalog returns the built-in verification links.
func DefaultCatalog() Catalog {
	return Catalog{
		"https://linkvertise.com/32828":   "6234767",
		"https://linkvertise.com/32dgdf8": "62etdfgdf767",
		"https://linkvertise.com/abcd12":  "abc1234",
		"https://linkvertise.com/xyz987":  "xyz5678",
		"https://linkvertise.com/test123": "test456",
		"https://linkvertise.com/demo789": "demo321",
	}
}

// Pick returns one link/code pair chosen uniformly at random.
// The catalog must be non-empty; New enforces that at construction.
func (c Catalog) Pick() (link, code string) {
	links := make([]string, 0, len(c))
	for l := range c {
		links = append(links, l)
	}
	link = links[rand.IntN(len(links))]
	return link, c[link]
}
