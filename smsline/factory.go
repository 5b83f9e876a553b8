package smsline

import "net/http"

// defaultHostAlias in a DSN selects DefaultHost.
const defaultHostAlias = "default"

// Factory builds transports from connection descriptors. All transports it
// creates share Client.
type Factory struct {
	Client *http.Client
}

func NewFactory(client *http.Client) *Factory {
	return &Factory{Client: client}
}

func (f *Factory) SupportedSchemes() []string {
	return []string{Scheme}
}

// Create returns a transport configured from dsn. It performs no network
// activity.
func (f *Factory) Create(dsn *DSN) (*Transport, error) {
	if dsn == nil {
		return nil, &InvalidDSNError{Reason: "nil DSN"}
	}
	if dsn.Scheme != Scheme {
		return nil, &UnsupportedSchemeError{Scheme: dsn.Scheme, Supported: f.SupportedSchemes()}
	}

	host := dsn.Host
	if host == defaultHostAlias {
		host = ""
	}

	cfg := Config{
		Login:    dsn.User,
		Password: dsn.Password,
		From:     dsn.Option("from"),
		Host:     host,
		Port:     dsn.Port,
	}
	return NewTransport(cfg, f.Client), nil
}

// CreateFromString parses s with ParseDSN and calls Create.
func (f *Factory) CreateFromString(s string) (*Transport, error) {
	dsn, err := ParseDSN(s)
	if err != nil {
		return nil, err
	}
	return f.Create(dsn)
}
