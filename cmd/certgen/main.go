// Package main writes a self-signed server certificate and key for running
// the API with -tls-cert and -tls-key during development.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/atinyakov/holocron/internal/certgen"
)

func main() {
	dir := flag.String("dir", "certs", "output directory")
	hosts := flag.String("hosts", "localhost,127.0.0.1", "comma-separated DNS names and IPs")
	validFor := flag.Duration("valid-for", 365*24*time.Hour, "certificate validity")
	flag.Parse()

	certPath, keyPath, err := certgen.WriteServerCertificate(*dir, strings.Split(*hosts, ","), *validFor)
	if err != nil {
		log.Fatalf("generate certificate: %v", err)
	}
	fmt.Printf("Certificate generated: -tls-cert %s -tls-key %s\n", certPath, keyPath)
}
