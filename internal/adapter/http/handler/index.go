package handler

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>Payment Address Resolver</title>
</head>
<body>
  <h1>Payment Address Resolver</h1>
  <p>Resolve an endpoint with <code>GET {{.Site}}/resolve/&lt;id&gt;</code>.
  Add <code>?bip70=true</code> or send <code>Accept: application/bitcoin-paymentrequest</code>
  for a signed BIP70 PaymentRequest.</p>
  <ul>
    <li><code>POST /resolve/&lt;id&gt;</code> submit a PaymentRequest Request</li>
    <li><code>POST /payment/&lt;id&gt;</code> submit a BIP70 Payment</li>
    <li><code>POST /sf</code> register a store-and-forward endpoint</li>
    <li><code>GET /pr/&lt;id&gt;</code> fetch a returned PaymentRequest</li>
  </ul>
</body>
</html>`))

// Index serves the landing page at / and /index.html.
func Index(siteURL string) gin.HandlerFunc {
	data := struct{ Site string }{Site: siteURL}
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.Status(http.StatusOK)
		_ = indexTemplate.Execute(c.Writer, data)
	}
}
