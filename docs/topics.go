// Package docs holds the user manual, as markdown topics.
package docs

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed *.md
var docs embed.FS

// Readme is the topic listing every other one.
const Readme = "readme"

// Topic returns the content of a documentation topic.
func Topic(topic string) (string, error) {
	content, err := docs.ReadFile(topic + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", topic, err)
	}
	return string(content), nil
}

// Topics returns the content of several topics, concatenated. "*" stands for every topic.
func Topics(topics ...string) (string, error) {
	var b strings.Builder
	for _, topic := range topics {
		names := []string{topic}
		if topic == "*" {
			names = List()
		}
		for _, name := range names {
			content, err := Topic(name)
			if err != nil {
				return "", err
			}
			b.WriteString(content)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

// List returns the names of the topics, except the readme, sorted.
func List() []string {
	entries, _ := fs.Glob(docs, "*.md")
	var topics []string
	for _, e := range entries {
		if name := strings.TrimSuffix(e, ".md"); name != Readme {
			topics = append(topics, name)
		}
	}
	sort.Strings(topics)
	return topics
}
