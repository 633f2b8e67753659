package urlmap

// patternMacros maps macro names usable in templates ({name:macro}) to the
// expressions they stand for.
var patternMacros = map[string]string{
	"uuid":     `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`,
	"int":      `[0-9]+`,
	"float":    `[0-9]*\.?[0-9]+`,
	"slug":     `[a-zA-Z0-9]+(?:-[a-zA-Z0-9]+)*`,
	"alpha":    `[a-zA-Z]+`,
	"alphanum": `[a-zA-Z0-9]+`,
	"date":     `[0-9]{4}-[0-9]{2}-[0-9]{2}`,
	"hex":      `[0-9a-fA-F]+`,
	// Any remaining text including slashes; only sensible as the last group.
	"path": `.+`,
}

// expandMacro returns the expression for a macro name. Unknown names are
// returned unchanged and treated as a literal expression.
func expandMacro(pattern string) string {
	if expr, ok := patternMacros[pattern]; ok {
		return expr
	}
	return pattern
}
