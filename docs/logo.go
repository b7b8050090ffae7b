// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package docs

import (
	"github.com/z5labs/apidocs/swagger"

	"github.com/swaggest/openapi-go/openapi3"
)

// LogoExtension is the info extension the reference viewer reads its logo from.
const LogoExtension = "x-logo"

// XLogo sets the [LogoExtension] of every document which has none yet.
func XLogo(url, altText string) swagger.DocumentRule {
	return swagger.DocumentRuleFunc(func(spec *openapi3.Spec, ctx swagger.DocumentContext) {
		if _, exists := spec.Info.MapOfAnything[LogoExtension]; exists {
			return
		}
		if spec.Info.MapOfAnything == nil {
			spec.Info.MapOfAnything = make(map[string]any)
		}
		spec.Info.MapOfAnything[LogoExtension] = map[string]any{
			"url":     url,
			"altText": altText,
		}
	})
}
