package extract

import (
	"strings"

	"github.com/julianshen/apiview/internal/decl"
	"github.com/julianshen/apiview/internal/token"
)

// InternalsVisibleToID anchors every line of the "Exposes internals to:"
// header so reviewers can comment on it.
const InternalsVisibleToID = "InternalsVisibleToAttribute"

// friendExclusions filter out friend assemblies that exist only for tests,
// benchmarks or mocking.
var friendExclusions = []string{".Tests", ".Perf", "DynamicProxyGenAssembly2"}

// dependencyHeader lists the module's package dependencies. Names are
// commentable; versions are plain text.
func (r *run) dependencyHeader(deps []decl.Dependency) {
	if len(deps) == 0 {
		return
	}
	r.b.NewLine()
	r.b.Text("Dependencies:")
	r.b.NewLine()
	for _, d := range deps {
		r.b.Append(token.Token{Value: d.Name, DefinitionID: d.Name, Kind: token.Text})
		r.b.Text("-" + d.Version)
		r.b.NewLine()
	}
	r.b.NewLine()
}

// internalsHeader lists the assemblies named by InternalsVisibleTo
// attributes on the module.
func (r *run) internalsHeader(attrs []decl.Attribute) {
	friends := friendAssemblies(attrs)
	if len(friends) == 0 {
		return
	}
	r.b.Text("Exposes internals to:")
	r.b.NewLine()
	for _, f := range friends {
		r.b.Append(token.Token{Value: f, DefinitionID: InternalsVisibleToID, Kind: token.Text})
		r.b.NewLine()
	}
	r.b.NewLine()
}

// friendAssemblies returns the friend assembly names, cut at the first comma
// so public key suffixes are dropped.
func friendAssemblies(attrs []decl.Attribute) []string {
	var out []string
	for _, a := range attrs {
		if strings.TrimSuffix(a.Name, "Attribute") != "InternalsVisibleTo" || len(a.Args) == 0 {
			continue
		}
		name := a.Args[0]
		if excludedFriend(name) {
			continue
		}
		if i := strings.IndexByte(name, ','); i > 0 {
			name = name[:i]
		}
		out = append(out, name)
	}
	return out
}

func excludedFriend(name string) bool {
	for _, x := range friendExclusions {
		if strings.Contains(name, x) {
			return true
		}
	}
	return false
}
