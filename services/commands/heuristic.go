package commands

import (
	"fmt"
	"strings"
)

// ExplainHeuristically produces a deterministic local explanation for a code
// snippet: a lexical scan reporting the constructs it recognizes. Used when
// no explainer collaborator is configured - identical input always yields
// identical output.
func ExplainHeuristically(code string) string {
	if strings.TrimSpace(code) == "" {
		return "No code provided for analysis."
	}

	lineCount := 0
	for _, line := range strings.Split(code, "\n") {
		if strings.TrimSpace(line) != "" {
			lineCount++
		}
	}

	var constructs []string
	if containsAny(code, "for ", "for(", "while ", "while(") {
		constructs = append(constructs, "loops")
	}
	if containsAny(code, "if ", "if(", "elif ", "else:", "else {", "switch ") {
		constructs = append(constructs, "conditional logic")
	}
	if containsAny(code, "def ", "func ", "function ", "lambda ", "=>") {
		constructs = append(constructs, "function definitions")
	}
	if strings.Contains(code, "class ") {
		constructs = append(constructs, "class definitions")
	}
	if containsAny(code, "import ", "from ", "#include", "require(") {
		constructs = append(constructs, "imports of external modules")
	}
	if containsAny(code, "print(", "console.log", "fmt.Print", "puts ") {
		constructs = append(constructs, "printed output")
	}
	if containsAny(code, "return ", "return;") {
		constructs = append(constructs, "return statements")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "This snippet is %d line(s) of code.", lineCount)
	if len(constructs) > 0 {
		sb.WriteString(" It appears to use " + joinWithAnd(constructs) + ".")
	} else {
		sb.WriteString(" I couldn't spot any familiar constructs - it may be a plain expression or data.")
	}

	if warnings := pythonWarnings(code); len(warnings) > 0 {
		sb.WriteString("\n\nHeads up:")
		for _, warning := range warnings {
			sb.WriteString("\n• " + warning)
		}
	}

	return sb.String()
}

// pythonWarnings reports common Python issues found in the snippet
func pythonWarnings(code string) []string {
	var warnings []string
	if strings.Contains(code, "import *") {
		warnings = append(warnings, "avoid 'import *' - it pollutes the namespace, import specific names instead")
	}
	if strings.Contains(code, "eval(") {
		warnings = append(warnings, "eval() can be dangerous - consider safer alternatives like ast.literal_eval()")
	}
	if strings.Contains(code, "except:") {
		warnings = append(warnings, "bare except clause may catch too much - catch specific exceptions instead")
	}
	return warnings
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func joinWithAnd(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}
