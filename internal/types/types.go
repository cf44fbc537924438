// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles:
// storage, views, and handlers can all import types without depending
// on each other.
package types

// Buddy represents one tracked contact and the timezone they live in.
//
// Struct tags serve three purposes:
//
//  1. json:"...": the key used in the persisted blob and in API bodies.
//     The keys match the blob layout, so existing lists keep loading.
//
//  2. yaml:"...": the key used by `export --format yaml` / `import`.
//
//  3. validate:"...": rules checked by go-playground/validator.
//     "timezone" accepts any name time.LoadLocation can resolve, except
//     the empty string and "Local".
type Buddy struct {
	Name          string `json:"name"                     yaml:"name"                     validate:"required"`
	TwitterHandle string `json:"twitter_handle,omitempty" yaml:"twitter_handle,omitempty"`
	TZ            string `json:"tz"                       yaml:"tz"                       validate:"required,timezone"`

	// Avatar is derived from TwitterHandle or Name; never user supplied.
	Avatar string `json:"avatar" yaml:"avatar,omitempty"`
}
