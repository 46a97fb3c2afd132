// Package fonts serves the built-in typefaces used on answer sheets.
package fonts

import (
	"fmt"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// Load returns the TTF bytes of a built-in face: "regular", "bold" or "italic".
func Load(name string) ([]byte, error) {
	switch name {
	case "regular":
		return goregular.TTF, nil
	case "bold":
		return gobold.TTF, nil
	case "italic":
		return goitalic.TTF, nil
	default:
		return nil, fmt.Errorf("fonts: unknown built-in face %q", name)
	}
}
