package parser

import (
	"strings"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSharpFile(t *testing.T) {
	p := NewParser()
	source := []byte(`namespace Contoso
{
    public class Foo
    {
        public int Bar;
    }
}
`)
	tree, err := p.Parse("Foo.cs", source)
	require.NoError(t, err)
	defer tree.Close()
	assert.NotNil(t, tree.RootNode())
	assert.False(t, tree.HasError())
	assert.Equal(t, source, tree.Source())
}

func TestParseUnknownExtension(t *testing.T) {
	p := NewParser()
	source := []byte(`some content`)
	_, err := p.Parse("file.xyz", source)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "unsupported"),
		"error should contain 'unsupported', got: %s", err.Error())
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("src/Foo.cs"))
	assert.False(t, Supported("main.go"))
	assert.Equal(t, "csharp", Language("Foo.cs"))
	assert.Equal(t, "", Language("Foo.txt"))
}

func TestUsingsExtraction(t *testing.T) {
	p := NewParser()
	source := []byte(`using System;
using System.Collections.Generic;
using static System.Math;
using Json = System.Text.Json;

namespace Contoso { }
`)
	tree, err := p.Parse("Usings.cs", source)
	require.NoError(t, err)
	defer tree.Close()

	assert.Equal(t, []string{"System", "System.Collections.Generic"}, tree.Usings())
}

func TestWalkVisitsAllNodes(t *testing.T) {
	p := NewParser()
	tree, err := p.Parse("A.cs", []byte(`class A { } class B { }`))
	require.NoError(t, err)
	defer tree.Close()

	var classes []string
	Walk(tree.RootNode(), func(n *sitter.Node) {
		if n.Type() == "class_declaration" {
			classes = append(classes, tree.Content(n.ChildByFieldName("name")))
		}
	})
	assert.Equal(t, []string{"A", "B"}, classes)
}

func TestWalkNilNode(t *testing.T) {
	called := false
	Walk(nil, func(*sitter.Node) { called = true })
	assert.False(t, called)
}

func TestChildByType(t *testing.T) {
	p := NewParser()
	tree, err := p.Parse("A.cs", []byte(`public class A : B { }`))
	require.NoError(t, err)
	defer tree.Close()

	class := ChildByType(tree.RootNode(), "class_declaration")
	require.NotNil(t, class)
	assert.NotNil(t, ChildByType(class, "base_list"))
	assert.Len(t, ChildrenByType(class, "modifier"), 1)
	assert.Nil(t, ChildByType(nil, "x"))
}

func TestExtractUsingPath(t *testing.T) {
	tests := map[string]string{
		"using System;":               "System",
		"global using System.Linq;":   "System.Linq",
		"using static System.Math;":   "",
		"using J = System.Text.Json;": "",
	}
	for in, want := range tests {
		assert.Equal(t, want, extractUsingPath(in), in)
	}
}
