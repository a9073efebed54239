// Package catalog defines the entities of the library discovery catalog:
// packages, their published releases, and the natural keys correlating them.
// All values are read-only projections built fresh from the document index.
package catalog

import (
	"fmt"
	"time"
)

// PackageReference identifies a package by its code-hosting coordinates.
// It is the correlation key between a Package and its Releases.
type PackageReference struct {
	Organization string `json:"organization"`
	Repository   string `json:"repository"`
}

// String returns the canonical "organization/repository" form.
func (r PackageReference) String() string {
	return fmt.Sprintf("%s/%s", r.Organization, r.Repository)
}

// ArtifactCoordinate identifies one published artifact version.
type ArtifactCoordinate struct {
	Group    string `json:"group"`
	Artifact string `json:"artifact"`
	Version  string `json:"version"`
}

// String returns the canonical "group/artifact@version" form.
func (c ArtifactCoordinate) String() string {
	return fmt.Sprintf("%s/%s@%s", c.Group, c.Artifact, c.Version)
}

// Package is a cataloged software library.
//
// ID is the storage-internal document identifier. It is not a stable public
// handle and must never cross the system boundary; Sanitize strips it.
type Package struct {
	ID           string    `json:"id,omitempty"`
	Organization string    `json:"organization"`
	Repository   string    `json:"repository"`
	Description  string    `json:"description,omitempty"`
	Keywords     []string  `json:"keywords,omitempty"`
	Readme       string    `json:"readme,omitempty"`
	Stars        int       `json:"stars"`
	Forks        int       `json:"forks"`
	Targets      []string  `json:"targets,omitempty"`
	Dependencies []string  `json:"dependencies,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Reference returns the package's natural key.
func (p Package) Reference() PackageReference {
	return PackageReference{Organization: p.Organization, Repository: p.Repository}
}

// Release is one published version of a Package.
type Release struct {
	ID         string             `json:"id,omitempty"`
	Reference  PackageReference   `json:"reference"`
	Coordinate ArtifactCoordinate `json:"coordinate"`
	Target     string             `json:"target,omitempty"`
	ReleasedAt time.Time          `json:"released_at"`
}

// Sanitize returns a copy of p with the storage-internal identifier removed.
// Every public operation that returns Packages applies it before results
// leave the system.
func Sanitize(p Package) Package {
	p.ID = ""
	return p
}

// SanitizeAll applies Sanitize to every package in the slice, in place.
func SanitizeAll(pkgs []Package) []Package {
	for i := range pkgs {
		pkgs[i].ID = ""
	}
	return pkgs
}
