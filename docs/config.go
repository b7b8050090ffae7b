// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package docs

import (
	"github.com/z5labs/apidocs/swagger"
)

// LogoConfig is the logo shown by the reference viewer.
type LogoConfig struct {
	URL     string `yaml:"url" json:"url"`
	AltText string `yaml:"alt_text" json:"alt_text"`
}

// InfoConfig is the document template as loaded from configuration.
//
//	title: Sample API
//	description: Pets as a service.
//	contact:
//	  name: Platform
//	  email: platform@example.com
//	logo:
//	  url: https://example.com/logo.png
//	  alt_text: Sample
type InfoConfig struct {
	Title          string           `yaml:"title" json:"title"`
	Version        string           `yaml:"version" json:"version"`
	Description    string           `yaml:"description" json:"description"`
	TermsOfService string           `yaml:"terms_of_service" json:"terms_of_service"`
	Contact        *swagger.Contact `yaml:"contact" json:"contact"`
	License        *swagger.License `yaml:"license" json:"license"`
	Logo           *LogoConfig      `yaml:"logo" json:"logo"`
}

// Info converts c into a document template.
func (c InfoConfig) Info() swagger.Info {
	info := swagger.Info{
		Title:          c.Title,
		Version:        c.Version,
		Description:    c.Description,
		TermsOfService: c.TermsOfService,
		Contact:        c.Contact,
		License:        c.License,
	}
	if c.Logo != nil {
		info.Extensions = map[string]any{
			LogoExtension: map[string]any{
				"url":     c.Logo.URL,
				"altText": c.Logo.AltText,
			},
		}
	}
	return info.Clone()
}
