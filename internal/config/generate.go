package config

import "strings"

// Generate renders a relocal.yaml document from collected wizard inputs.
// Pure so `relocal init` can be tested without a terminal. Empty lists are
// omitted entirely; the minimal output is a single `remote:` line.
func Generate(remote string, exclude, aptPackages []string) string {
	var b strings.Builder
	b.WriteString("remote: ")
	b.WriteString(quoteIfNeeded(remote))
	b.WriteString("\n")
	writeList(&b, "exclude", exclude)
	writeList(&b, "apt_packages", aptPackages)
	return b.String()
}

func writeList(b *strings.Builder, key string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(key)
	b.WriteString(":\n")
	for _, item := range items {
		b.WriteString("  - ")
		b.WriteString(quoteIfNeeded(item))
		b.WriteString("\n")
	}
}

// quoteIfNeeded wraps values that YAML would otherwise mangle (leading
// punctuation like ".env", "*" globs) in double quotes.
func quoteIfNeeded(s string) string {
	if s == "" {
		return `""`
	}
	if strings.ContainsAny(s, ":#{}[]&*!|>'\"%@`") || strings.HasPrefix(s, ".") || strings.HasPrefix(s, "-") {
		return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
	}
	return s
}
