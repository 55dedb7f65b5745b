package rules

import (
	"github.com/donaldgifford/kantfmt/internal/rules/kantis"
)

func init() {
	// Rules are registered in visiting order.
	Register(kantis.NewSingleLambda)
	Register(kantis.NewTrailingComma)
	Register(kantis.NewSameLine)
	Register(kantis.NewSupertypeTerminator)
}
