// Package mermaid builds Mermaid.js diagram text. These are the
// deterministic builders used when no provider-generated diagram is
// available; the frontend renders the text as-is.
package mermaid

import (
	"fmt"
	"strings"
)

// Clean extracts valid Mermaid code from raw LLM output: strips markdown
// fences and leading prose before the diagram declaration.
func Clean(content string) string {
	if idx := strings.Index(content, "```mermaid"); idx >= 0 {
		content = content[idx+len("```mermaid"):]
		if end := strings.Index(content, "```"); end >= 0 {
			content = content[:end]
		}
	} else if idx := strings.Index(content, "```"); idx >= 0 {
		content = content[idx+3:]
		if end := strings.Index(content, "```"); end >= 0 {
			content = content[:end]
		}
	}
	content = strings.TrimSpace(content)

	validStarts := []string{"flowchart", "graph", "sequenceDiagram", "classDiagram"}
	for _, start := range validStarts {
		if strings.HasPrefix(content, start) {
			return content
		}
	}
	for _, start := range validStarts {
		if idx := strings.Index(content, start); idx >= 0 {
			return content[idx:]
		}
	}
	return content
}

// SimpleUserFlow renders a sequential top-down flowchart from step
// descriptions.
func SimpleUserFlow(steps []string) string {
	if len(steps) == 0 {
		return "flowchart TD\n    A[Start] --> B[End]"
	}
	var b strings.Builder
	b.WriteString("flowchart TD")
	for i, step := range steps {
		b.WriteString(fmt.Sprintf("\n    %s[%s]", nodeID(i), sanitizeLabel(step)))
	}
	for i := 0; i < len(steps)-1; i++ {
		b.WriteString(fmt.Sprintf("\n    %s --> %s", nodeID(i), nodeID(i+1)))
	}
	return b.String()
}

// TechItem is the minimal shape SimpleTechStack needs.
type TechItem struct {
	Category   string
	Technology string
}

// SimpleTechStack renders a left-to-right diagram with one subgraph per
// category, connected in first-seen order.
func SimpleTechStack(items []TechItem) string {
	var order []string
	groups := make(map[string][]string)
	for _, item := range items {
		category := item.Category
		if category == "" {
			category = "Other"
		}
		if _, seen := groups[category]; !seen {
			order = append(order, category)
		}
		tech := item.Technology
		if tech == "" {
			tech = "Unknown"
		}
		groups[category] = append(groups[category], tech)
	}

	var b strings.Builder
	b.WriteString("flowchart LR")
	prev := ""
	for _, category := range order {
		safeCategory := nodeName(category)
		b.WriteString(fmt.Sprintf("\n    subgraph %s[%s]", safeCategory, category))
		for _, tech := range groups[category] {
			b.WriteString(fmt.Sprintf("\n        %s[%s]", nodeName(tech), tech))
		}
		b.WriteString("\n    end")
		if prev != "" {
			b.WriteString(fmt.Sprintf("\n    %s --> %s", prev, safeCategory))
		}
		prev = safeCategory
	}
	return b.String()
}

func nodeID(i int) string {
	return fmt.Sprintf("S%d", i+1)
}

func sanitizeLabel(s string) string {
	r := strings.NewReplacer(`"`, "'", "[", "(", "]", ")")
	return r.Replace(s)
}

func nodeName(s string) string {
	r := strings.NewReplacer(" ", "_", ".", "_", "/", "_")
	return r.Replace(s)
}
