// Package classify infers the kind of text content found on the clipboard.
package classify

import "regexp"

// Label is the inferred content kind. Its value doubles as the file extension.
type Label string

const (
	LabelCSharp     Label = "cs"
	LabelJSON       Label = "json"
	LabelJava       Label = "java"
	LabelPython     Label = "py"
	LabelHTML       Label = "html"
	LabelCSS        Label = "css"
	LabelJavaScript Label = "js"
	LabelXML        Label = "xml"
	LabelSQL        Label = "sql"
	LabelURL        Label = "url"
	LabelText       Label = "txt"
)

// Ext returns the file extension for the label, without the dot.
func (l Label) Ext() string {
	return string(l)
}

type rule struct {
	label   Label
	pattern *regexp.Regexp
}

// rules is evaluated top to bottom; the first match wins.
var rules = []rule{
	{LabelCSharp, regexp.MustCompile(`(using\s+[\w\.]+;|namespace\s+\w+)`)},
	{LabelJSON, regexp.MustCompile(`(?s)^\s*(\{|\[).*(\}|\])\s*$`)},
	{LabelJava, regexp.MustCompile(`(public\s+class|import\s+java\.|System\.out\.println)`)},
	{LabelPython, regexp.MustCompile(`(def\s+\w+\(.*\):|import\s+\w+|if\s+__name__\s*==\s*['"]__main__['"])`)},
	{LabelHTML, regexp.MustCompile(`(?i)<!DOCTYPE\s+html>|<html>|<body>`)},
	{LabelCSS, regexp.MustCompile(`(\w+\s*\{\s*\w+:|\w+\s*:\s*\w+;)`)},
	{LabelJavaScript, regexp.MustCompile(`(function\s+\w+\(.*\)|let\s+\w+\s*=|const\s+\w+\s*=|var\s+\w+\s*=)`)},
	{LabelXML, regexp.MustCompile(`<\?xml\s+version=|<\w+>\s*</\w+>`)},
	{LabelSQL, regexp.MustCompile(`(?i)(SELECT\s+.*\s+FROM|CREATE\s+TABLE|INSERT\s+INTO)`)},
	{LabelURL, regexp.MustCompile(`(?i)^https?:/`)},
}

// Classify returns the label of the first rule matching text, or LabelText.
// Callers are expected to skip empty and whitespace-only text.
func Classify(text string) Label {
	for _, r := range rules {
		if r.pattern.MatchString(text) {
			return r.label
		}
	}
	return LabelText
}

// Labels returns every label Classify can produce, in rule order, ending with LabelText.
func Labels() []Label {
	labels := make([]Label, 0, len(rules)+1)
	for _, r := range rules {
		labels = append(labels, r.label)
	}
	return append(labels, LabelText)
}

// Mismatch records a self-test sample that did not classify as expected.
type Mismatch struct {
	Expected Label
	Got      Label
	Sample   string
}

var samples = []struct {
	label Label
	text  string
}{
	{LabelCSharp, "using System; class Program { static void Main() { } }"},
	{LabelJSON, `{ "name": "John", "age": 30 }`},
	{LabelJava, `public class Main { public static void main(String[] args) { System.out.println("Hello, World!"); } }`},
	{LabelPython, "def hello(): print('Hello, World!')\n\nif __name__ == '__main__':\n    hello()"},
	{LabelHTML, "<!DOCTYPE html><html><body><h1>Hello, World!</h1></body></html>"},
	{LabelCSS, "body { font-family: Arial; color: #333; }"},
	{LabelJavaScript, "function greet(name) { console.log(`Hello, ${name}!`); }"},
	{LabelXML, `<?xml version="1.0" encoding="UTF-8"?><root><element>Content</element></root>`},
	{LabelSQL, "SELECT * FROM users WHERE age > 18;"},
	{LabelURL, "https://www.example.com/yooo/?asd=asd"},
	{LabelText, "This is just some plain text."},
}

// SelfTest classifies one representative sample per label and returns the
// samples whose result differs from the expected label.
func SelfTest() []Mismatch {
	var mismatches []Mismatch
	for _, s := range samples {
		if got := Classify(s.text); got != s.label {
			mismatches = append(mismatches, Mismatch{Expected: s.label, Got: got, Sample: s.text})
		}
	}
	return mismatches
}
