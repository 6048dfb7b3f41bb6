package config

import (
	"errors"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// NetAddress holds a host and port. It implements pflag.Value.
type NetAddress struct {
	Host string
	Port int
}

// Flags holds the values of the configuration flags bound by [BindFlags].
// Values are read only after the flag set has been parsed.
type Flags struct {
	serverAddress  NetAddress
	adapterAddress string
	dsn            string
	queuePath      string
	jsonConfigPath string
	hashKey        string
	token          string
	requestTimeout time.Duration
	probeInterval  time.Duration
	logLevel       string
	logFile        string
}

// BindFlags registers the configuration flags on fs.
//
// Flags:
//
//	-a, --address          status API address in form host:port
//	    --remote           remote sync endpoint base URL
//	-d, --dsn              SQLite database file
//	    --queue            sync queue file
//	-c, --config           JSON config file path
//	    --hash-key         HMAC key for outbound sync requests
//	    --token            bearer token for the remote endpoint
//	    --request-timeout  outbound request timeout (e.g. "15s")
//	    --probe-interval   connectivity probe interval (e.g. "30s")
//	    --log-level        zerolog level
//	    --log-file         log file path
func BindFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{}

	fs.VarP(&f.serverAddress, "address", "a", "status API address host:port")
	fs.StringVar(&f.adapterAddress, "remote", "", "remote sync endpoint base URL")
	fs.StringVarP(&f.dsn, "dsn", "d", "", "SQLite database file")
	fs.StringVar(&f.queuePath, "queue", "", "sync queue file")
	fs.StringVarP(&f.jsonConfigPath, "config", "c", "", "JSON config file path")
	fs.StringVar(&f.hashKey, "hash-key", "", "HMAC key for outbound sync requests")
	fs.StringVar(&f.token, "token", "", "bearer token for the remote endpoint")
	fs.DurationVar(&f.requestTimeout, "request-timeout", 0, "outbound request timeout (e.g. 15s)")
	fs.DurationVar(&f.probeInterval, "probe-interval", 0, "connectivity probe interval (e.g. 30s)")
	fs.StringVar(&f.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	fs.StringVar(&f.logFile, "log-file", "", "log file path")

	return f
}

func (f *Flags) config() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			HashKey: f.hashKey,
		},
		Storage: Storage{
			DB:    DB{DSN: f.dsn},
			Queue: Queue{Path: f.queuePath},
		},
		Server: Server{
			HTTPAddress: f.serverAddress.String(),
		},
		Adapter: Adapter{
			HTTPAddress:    f.adapterAddress,
			RequestTimeout: f.requestTimeout,
			Token:          f.token,
		},
		Workers: Workers{
			ProbeInterval: f.probeInterval,
		},
		Log: Log{
			Level: f.logLevel,
			File:  f.logFile,
		},
		JSONFilePath: f.jsonConfigPath,
	}
}

// String returns host:port, or "" when nothing is set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses host:port. The host must be "localhost" or an IP address.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}
	if port > 65535 {
		return errors.New("port number must not exceed 65535")
	}

	if host != "localhost" && host != "" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

// Type implements pflag.Value.
func (a *NetAddress) Type() string {
	return "host:port"
}
