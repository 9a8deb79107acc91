package config

import (
	"bytes"
	"text/template"
)

var configFileTmpl = template.Must(template.New("config").Parse(`# FlowPro server configuration

# The name of the server.
name: "{{ .Name }}"

# Logging configuration.
log:
  # Log format to use. Valid values are "json", "logfmt", and "text".
  format: "{{ .Log.Format }}"
  # Time format for the log "timestamp" field.
  # Should be described in Golang's time format.
  time_format: "{{ .Log.TimeFormat }}"
  # Path to the log file. Leave empty to write to stderr.
  #path: "{{ .Log.Path }}"

# The HTTP server configuration.
http:
  # The address on which the HTTP server will listen.
  listen_addr: "{{ .HTTP.ListenAddr }}"

  # The path to the TLS private key.
  tls_key_path: "{{ .HTTP.TLSKeyPath }}"

  # The path to the TLS certificate.
  tls_cert_path: "{{ .HTTP.TLSCertPath }}"

  # The public URL of the HTTP server. Access tokens are issued for it.
  # Make sure to use https:// if you are using TLS.
  public_url: "{{ .HTTP.PublicURL }}"

# The stats server configuration.
stats:
  # The address on which the stats server will listen.
  listen_addr: "{{ .Stats.ListenAddr }}"

# The database configuration.
db:
  # The database driver to use.
  # Valid values are "sqlite", "postgres" and "pgx".
  driver: "{{ .DB.Driver }}"
  # The database data source name.
  # This is driver specific and can be a file path or connection string.
  data_source: "{{ .DB.DataSource }}"

# Authentication configuration.
auth:
  # The path to the Ed25519 key used to sign access tokens.
  key_path: "{{ .Auth.KeyPath }}"
  # Access token lifetime in seconds.
  token_expiry: {{ .Auth.TokenExpiry }}

# Cache configuration.
cache:
  # The number of users kept in memory.
  users: {{ .Cache.Users }}

# Cron job schedules. Leave a schedule empty to disable its job.
jobs:
  # Refreshes the users, teams and open tasks gauges.
  stats: "{{ .Jobs.Stats }}"
`))

func newConfigFile(cfg *Config) string {
	var b bytes.Buffer
	configFileTmpl.Execute(&b, cfg) // nolint: errcheck
	return b.String()
}
