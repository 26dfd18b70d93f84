package vanilla_test

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formcalc/pkg/themes"
)

func acmeManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    "acme",
		Version: "0.1.0",
		Tokens:  map[string]string{"brand": "#123456"},
		Templates: map[string]string{
			themes.PagePartial: "acme/result.tpl",
		},
	}
}
