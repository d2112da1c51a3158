package generate_test

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// fixture is one test case read from a markdown file in testdata.
//
// A case starts at a `## Test: <name>` heading and contains exactly one `fc`
// fence holding the program.  The other fences are optional:
//
//	options  settings, one per line: `declaration-order`, `print <symbol>`,
//	         `qmark <symbol>`
//	args     space separated arguments to main
//	input    whitespace separated values returned by qmark
//	output   the expected output of print, one value per line
//	result   the expected result of main
//	errors   the expected error kinds, one per line, in position order
//	ir       lines which must each appear somewhere in the module text
type fixture struct {
	Name    string
	Source  string
	Options []string
	Args    string
	Input   string
	Output  *string
	Result  *string
	Errors  []string
	IR      []string
}

var fixtureFences = map[string]bool{
	"fc":      true,
	"options": true,
	"args":    true,
	"input":   true,
	"output":  true,
	"result":  true,
	"errors":  true,
	"ir":      true,
}

// extractFixtures reads all the test cases of a markdown document.
func extractFixtures(src []byte) ([]*fixture, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var fixtures []*fixture
	var current *fixture

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			heading := nodeText(n, src)
			if strings.HasPrefix(heading, "Test: ") {
				current = &fixture{Name: strings.TrimPrefix(heading, "Test: ")}
				fixtures = append(fixtures, current)
			}
		case *ast.FencedCodeBlock:
			lang := string(n.Language(src))
			if !fixtureFences[lang] {
				return ast.WalkStop, fmt.Errorf("unknown fence language `%s`", lang)
			} else if current == nil {
				return ast.WalkStop, fmt.Errorf("`%s` fence outside of a test case", lang)
			}

			content := fenceContent(n, src)
			switch lang {
			case "fc":
				if current.Source != "" {
					return ast.WalkStop, fmt.Errorf("multiple fc fences in test `%s`", current.Name)
				}
				current.Source = content
			case "options":
				current.Options = nonEmptyLines(content)
			case "args":
				current.Args = strings.TrimSpace(content)
			case "input":
				current.Input = content
			case "output":
				current.Output = &content
			case "result":
				result := strings.TrimSpace(content)
				current.Result = &result
			case "errors":
				current.Errors = nonEmptyLines(content)
			case "ir":
				current.IR = nonEmptyLines(content)
			}
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	for _, fx := range fixtures {
		if fx.Source == "" {
			return nil, fmt.Errorf("test `%s` has no fc fence", fx.Name)
		}
	}

	return fixtures, nil
}

// nodeText extracts the plain text of a markdown node.
func nodeText(node ast.Node, src []byte) string {
	var buf bytes.Buffer

	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if t, ok := n.(*ast.Text); ok {
				buf.Write(t.Segment.Value(src))
			}
		}
		return ast.WalkContinue, nil
	})

	return buf.String()
}

// fenceContent extracts the content of a fenced code block.
func fenceContent(block *ast.FencedCodeBlock, src []byte) string {
	var buf bytes.Buffer

	for i := 0; i < block.Lines().Len(); i++ {
		line := block.Lines().At(i)
		buf.Write(line.Value(src))
	}

	return buf.String()
}

func nonEmptyLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	return lines
}
