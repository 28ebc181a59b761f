package api

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

// CheckoutNotFoundMessage is the error message of a 404 for an unknown
// checkout. Other 404s, such as an unmatched route, carry a different one.
const CheckoutNotFoundMessage = "Checkout not found"

//go:embed api.yaml
var rawSpec []byte

var (
	swaggerOnce sync.Once
	swagger     *openapi3.T
	swaggerErr  error
)

// GetSwagger returns the parsed OpenAPI document embedded in the binary.
// The document is loaded once and shared; callers must not modify it.
func GetSwagger() (*openapi3.T, error) {
	swaggerOnce.Do(func() {
		loader := openapi3.NewLoader()

		doc, err := loader.LoadFromData(rawSpec)
		if err != nil {
			swaggerErr = fmt.Errorf("load embedded openapi spec: %w", err)
			return
		}

		swagger = doc
	})

	return swagger, swaggerErr
}
