// Package tlsroots loads trust roots for HTTPS clients and keeps the
// server certificate current.
//
// Pool combines the system roots with extra CA files or directories.
// CertReloader serves a certificate through tls.Config.GetCertificate and
// reloads it when the certificate or key file is rewritten.
package tlsroots
