package mail

import (
	"fmt"
	"html/template"
	"strings"
)

var htmlTmpl = template.Must(template.New("quote").Parse(`<html>
<body>
  <h2>New quote request</h2>
  <p><strong>Contractor:</strong> {{.ContractorName}}</p>
  {{if .ContractorEmail}}<p><strong>Contractor email:</strong> {{.ContractorEmail}}</p>{{end}}
  <p><strong>Requester email:</strong> {{.RequesterEmail}}</p>
  {{if .RequesterPhone}}<p><strong>Requester phone:</strong> {{.RequesterPhone}}</p>{{end}}
  <h3>Problem description</h3>
  <p>{{.ProblemText}}</p>
</body>
</html>
`))

// renderBodies produces the HTML part and its plain-text alternative.
func renderBodies(qr QuoteRequest) (htmlBody, textBody string, err error) {
	var sb strings.Builder
	if err := htmlTmpl.Execute(&sb, qr); err != nil {
		return "", "", err
	}

	var tb strings.Builder
	fmt.Fprintf(&tb, "New quote request\n\n")
	fmt.Fprintf(&tb, "Contractor: %s\n", qr.ContractorName)
	if qr.ContractorEmail != "" {
		fmt.Fprintf(&tb, "Contractor email: %s\n", qr.ContractorEmail)
	}
	fmt.Fprintf(&tb, "Requester email: %s\n", qr.RequesterEmail)
	if qr.RequesterPhone != "" {
		fmt.Fprintf(&tb, "Requester phone: %s\n", qr.RequesterPhone)
	}
	fmt.Fprintf(&tb, "\nProblem description:\n%s\n", qr.ProblemText)

	return sb.String(), tb.String(), nil
}
