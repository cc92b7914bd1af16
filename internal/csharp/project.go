package csharp

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/julianshen/apiview/internal/decl"
)

// Project is the subset of an SDK-style .csproj the loader cares about.
type Project struct {
	AssemblyName string
	Version      string
	Dependencies []decl.Dependency
}

type projectXML struct {
	PropertyGroups []struct {
		AssemblyName   string `xml:"AssemblyName"`
		PackageID      string `xml:"PackageId"`
		Version        string `xml:"Version"`
		PackageVersion string `xml:"PackageVersion"`
	} `xml:"PropertyGroup"`
	ItemGroups []struct {
		PackageReferences []struct {
			Include string `xml:"Include,attr"`
			Version string `xml:"Version,attr"`
		} `xml:"PackageReference"`
	} `xml:"ItemGroup"`
}

// ReadProject parses the .csproj at path. The assembly name defaults to the
// file name without extension.
func ReadProject(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project: %w", err)
	}
	var px projectXML
	if err := xml.Unmarshal(data, &px); err != nil {
		return nil, fmt.Errorf("parse project %s: %w", path, err)
	}

	p := &Project{AssemblyName: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))}
	for _, pg := range px.PropertyGroups {
		switch {
		case pg.AssemblyName != "":
			p.AssemblyName = pg.AssemblyName
		case pg.PackageID != "":
			p.AssemblyName = pg.PackageID
		}
		switch {
		case pg.PackageVersion != "":
			p.Version = pg.PackageVersion
		case pg.Version != "" && p.Version == "":
			p.Version = pg.Version
		}
	}
	for _, ig := range px.ItemGroups {
		for _, ref := range ig.PackageReferences {
			if ref.Include == "" {
				continue
			}
			p.Dependencies = append(p.Dependencies, decl.Dependency{Name: ref.Include, Version: ref.Version})
		}
	}
	sort.SliceStable(p.Dependencies, func(i, j int) bool {
		return p.Dependencies[i].Name < p.Dependencies[j].Name
	})
	return p, nil
}

// findProject returns the single .csproj directly inside dir, or "" when
// there is none or more than one.
func findProject(dir string) string {
	matches, err := filepath.Glob(filepath.Join(dir, "*.csproj"))
	if err != nil || len(matches) != 1 {
		return ""
	}
	return matches[0]
}
