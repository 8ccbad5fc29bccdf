// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package evaluator

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/hassanmzia/AI-Research-Agent/pkg/types"
)

const systemPrompt = `You are an expert evaluator of artificial general intelligence research. Analyze research papers for their contribution to general-intelligence advancement. Provide precise, evidence-based evaluations in the requested JSON format.`

var promptFuncs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
	"pct": func(w float64) string { return fmt.Sprintf("%.0f%%", w*100) },
	"last": func(i int) bool { return i == len(Parameters)-1 },
}

// rubricPromptTmpl renders the evaluation request for one paper, enumerating
// every rubric dimension with its weight.
var rubricPromptTmpl = template.Must(template.New("rubric").Funcs(promptFuncs).Parse(`EVALUATE THIS RESEARCH PAPER FOR GENERAL-INTELLIGENCE POTENTIAL

## PAPER DETAILS
**Title:** {{.Title}}
**Authors:** {{.Authors}}
**Abstract:** {{.Abstract}}

## EVALUATION TASK
Rate this paper on each parameter below using a 1-10 scale where:
- **1-3:** No or minimal relevance
- **4-6:** Some potential but limited
- **7-8:** Strong contribution
- **9-10:** Exceptional breakthrough

## PARAMETERS TO EVALUATE
{{range $i, $p := .Parameters}}
{{inc $i}}. **{{$p.Label}} ({{pct $p.Weight}} weight)** - {{$p.Description}}{{end}}

## OUTPUT FORMAT
Provide your evaluation as a JSON object:

{
    "parameter_scores": {
{{- range $i, $p := .Parameters}}
        "{{$p.Name}}": {"score": X, "reasoning": "explanation"}{{if not (last $i)}},{{end}}
{{- end}}
    },
    "overall_assessment": "2-3 sentence summary",
    "key_innovations": ["innovation1", "innovation2"],
    "limitations": ["limitation1", "limitation2"],
    "confidence_level": "high/medium/low"
}

Be conservative: reserve scores of 7 and above for truly exceptional contributions.
Evaluate the paper now.`))

// renderPrompt fills the rubric template for one paper. At most five authors
// are listed.
func renderPrompt(paper types.CandidatePaper) (string, error) {
	authors := paper.AuthorNames()
	if len(authors) > 5 {
		authors = authors[:5]
	}

	var buf bytes.Buffer
	err := rubricPromptTmpl.Execute(&buf, struct {
		Title, Authors, Abstract string
		Parameters               []Parameter
	}{
		Title:      paper.Title,
		Authors:    strings.Join(authors, ", "),
		Abstract:   paper.Abstract,
		Parameters: Parameters,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
