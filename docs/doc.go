// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package docs assembles the API documentation of a service.
//
// [AddVersionedDocumentation] registers one document per discovered API
// version and [AddDocumentation] a single unversioned one. Both attach the
// same operation rules, in order: [ResponseHeaders], [AuthResponses] and
// [DefaultValues], followed by any caller supplied [Configure] step.
//
// [UseVersionedDocumentation] serves the documents with an interactive
// explorer listing every version, while [UseDocumentation] serves one
// document with the read-only reference viewer.
package docs
