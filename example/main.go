// FILE: example/main.go
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/lixenwraith/treeconfig"
)

// ServerConfig is decoded from the "server" group
type ServerConfig struct {
	Host         string        `config:"host"`
	Port         int           `config:"port"`
	ReadTimeout  time.Duration `config:"read_timeout"`
	AllowedHosts []string      `config:"allowed_hosts"`
}

func main() {
	dir, err := os.MkdirTemp("", "treeconfig-example")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	configPath := filepath.Join(dir, "app.yaml")
	yamlContent := `
server:
  port: 9090
  allowed_hosts: [a.example.com, b.example.com]
smtp:
  host: mail.example.com
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		log.Fatal(err)
	}

	// Defaults built programmatically, then extended by the file
	root := treeconfig.For("app", func(c *treeconfig.Node) {
		c.Set("debug", false)
		c.Group("server", func(s *treeconfig.Node) {
			s.Set("host", "localhost")
			s.Set("port", 8080)
			s.Set("read_timeout", "30s")
		})
	})

	if err := root.Load(configPath); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	// Missing optional overrides are not an error
	if err := root.LoadIfExists(filepath.Join(dir, "local.yaml")); err != nil {
		log.Fatalf("Failed to load local overrides: %v", err)
	}

	// Attribute-style resolution
	entry, err := root.Lookup("smtp.host")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("SMTP host: %v\n", entry.Value())

	var server ServerConfig
	if err := root.Scan("server", &server); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Server: %s:%d (timeout %s, hosts %v)\n",
		server.Host, server.Port, server.ReadTimeout, server.AllowedHosts)

	// Same root from anywhere in the process
	debug, _ := treeconfig.For("app").Bool("debug")
	fmt.Printf("Debug: %v\n", debug)

	fmt.Println("\nAs TOML:")
	if err := root.Dump(os.Stdout, treeconfig.FormatTOML); err != nil {
		log.Fatal(err)
	}
}
