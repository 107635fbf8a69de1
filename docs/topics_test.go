package docs_test

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/etnz/subwise/cmd"
	"github.com/etnz/subwise/docs"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func TestTopics(t *testing.T) {
	// Every topic listed in readme.md exists, and every topic is listed.
	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	var listed []string
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if matches := topicRegex.FindStringSubmatch(scanner.Text()); len(matches) > 1 {
			listed = append(listed, strings.TrimSpace(matches[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning readme.md: %v", err)
	}

	for _, topic := range listed {
		if _, err := docs.Topic(topic); err != nil {
			t.Errorf("failed to get topic %q: %v", topic, err)
		}
	}
	for _, topic := range docs.List() {
		if !slices.Contains(listed, topic) {
			t.Errorf("topic %q is not listed in readme.md", topic)
		}
	}

	all, err := docs.Topics("*")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(all, "# Recurring transactions") {
		t.Errorf("'*' does not expand to every topic")
	}
}

// TestExamples checks that every command line shown in the manual runs an existing command.
func TestExamples(t *testing.T) {
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}
	commands := cmd.Completion().Sub

	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			for _, line := range examples(t, file) {
				args := fields(strings.TrimPrefix(line, "$ "))
				if len(args) == 0 || args[0] != "sw" {
					t.Errorf("%s: example %q does not run sw", file, line)
					continue
				}
				name := command(args[1:])
				if _, ok := commands[name]; !ok {
					t.Errorf("%s: example %q runs unknown command %q", file, line, name)
				}
			}
		})
	}
}

// examples returns the lines of the bash code blocks of a markdown file.
func examples(t *testing.T, file string) []string {
	t.Helper()
	content, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("failed to read %s: %v", file, err)
	}
	root := goldmark.DefaultParser().Parse(text.NewReader(content))

	var lines []string
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !entering || !ok || fcb.Info == nil {
			return ast.WalkContinue, nil
		}
		if string(fcb.Info.Segment.Value(content)) != "bash" {
			return ast.WalkContinue, nil
		}
		for i := 0; i < fcb.Lines().Len(); i++ {
			line := fcb.Lines().At(i)
			if l := strings.TrimSpace(string(line.Value(content))); l != "" {
				lines = append(lines, l)
			}
		}
		return ast.WalkSkipChildren, nil
	})
	return lines
}

// command skips the global flags and returns the command name.
func command(args []string) string {
	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "-plain":
		case strings.HasPrefix(args[i], "-"):
			i++ // value
		default:
			return args[i]
		}
	}
	return ""
}

// fields splits a command line on spaces, keeping double quoted arguments together.
func fields(line string) []string {
	var args []string
	var cur strings.Builder
	quoted, inArg := false, false
	for _, r := range line {
		switch {
		case r == '"':
			quoted, inArg = !quoted, true
		case r == ' ' && !quoted:
			if inArg {
				args = append(args, cur.String())
				cur.Reset()
			}
			inArg = false
		default:
			cur.WriteRune(r)
			inArg = true
		}
	}
	if inArg {
		args = append(args, cur.String())
	}
	return args
}
