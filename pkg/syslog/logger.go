package syslog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	DefaultAddress = "127.0.0.1"
	DefaultPort    = 514
)

// Config describes a syslog destination. Zero values take the defaults:
// tag is the program name, facility user, address 127.0.0.1, port 514,
// format rfc3164 and a UDP transport.
type Config struct {
	Tag      string
	Facility string
	Address  string
	Port     int
	Format   Format
	Hostname string

	// Transport replaces the UDP sender, mostly for tests.
	Transport Transport

	// Logger receives transport failures. It is not part of the
	// configuration identity.
	Logger *zerolog.Logger
}

type resolvedConfig struct {
	tag       string
	facility  Facility
	address   string
	port      int
	format    Format
	hostname  string
	transport Transport
	logger    zerolog.Logger
}

func (c Config) resolve() (resolvedConfig, error) {
	facility, err := ParseFacility(c.Facility)
	if err != nil {
		return resolvedConfig{}, err
	}

	r := resolvedConfig{
		tag:       c.Tag,
		facility:  facility,
		address:   c.Address,
		port:      c.Port,
		format:    Format(strings.ToLower(string(c.Format))),
		hostname:  c.Hostname,
		transport: c.Transport,
		logger:    log.Logger,
	}

	if r.tag == "" {
		r.tag = filepath.Base(os.Args[0])
	}
	if r.address == "" {
		r.address = DefaultAddress
	}
	if r.port == 0 {
		r.port = DefaultPort
	}
	if r.port < 0 || r.port > 65535 {
		return resolvedConfig{}, fmt.Errorf("invalid syslog port %d", r.port)
	}
	switch r.format {
	case "":
		r.format = FormatRFC3164
	case FormatRFC3164, FormatRFC5424:
	default:
		return resolvedConfig{}, fmt.Errorf("unknown syslog format %q", c.Format)
	}
	if r.hostname == "" {
		r.hostname, err = os.Hostname()
		if err != nil {
			r.hostname = "localhost"
		}
	}
	if c.Logger != nil {
		r.logger = *c.Logger
	}

	return r, nil
}

// key is the sorted key=value form of the resolved configuration.
func (r resolvedConfig) key() string {
	fields := map[string]string{
		"tag":       r.tag,
		"facility":  fmt.Sprint(int(r.facility)),
		"address":   r.address,
		"port":      fmt.Sprint(r.port),
		"format":    string(r.format),
		"hostname":  r.hostname,
		"transport": transportIdentity(r.transport),
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+fields[k])
	}
	return strings.Join(pairs, ",")
}

// Key returns the identity under which a Registry memoizes the logger for c.
func (c Config) Key() (string, error) {
	r, err := c.resolve()
	if err != nil {
		return "", err
	}
	return r.key(), nil
}

// transportIdentity names a transport by its type and, for reference
// kinds, its address. Two closures built from the same function literal
// share an address and therefore an identity.
func transportIdentity(t Transport) string {
	if t == nil {
		return "udp"
	}

	v := reflect.ValueOf(t)
	switch v.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Chan, reflect.Slice, reflect.UnsafePointer:
		return fmt.Sprintf("%T@%#x", t, v.Pointer())
	}
	return fmt.Sprintf("%T:%v", t, t)
}

// SysLogger wraps messages in a syslog envelope and hands them to its
// transport. It never reports failures to the caller.
type SysLogger struct {
	tag      string
	facility Facility
	address  string
	port     int
	format   Format
	hostname string

	transport Transport
	log       zerolog.Logger

	pid int
	now func() time.Time
}

func New(cfg Config) (*SysLogger, error) {
	r, err := cfg.resolve()
	if err != nil {
		return nil, err
	}
	return newSysLogger(r), nil
}

func newSysLogger(r resolvedConfig) *SysLogger {
	transport := r.transport
	if transport == nil {
		transport = NewUDPTransport(r.address, r.port)
	}

	return &SysLogger{
		tag:       r.tag,
		facility:  r.facility,
		address:   r.address,
		port:      r.port,
		format:    r.format,
		hostname:  r.hostname,
		transport: transport,
		log:       r.logger,
		pid:       os.Getpid(),
		now:       time.Now,
	}
}

func (s *SysLogger) Tag() string          { return s.tag }
func (s *SysLogger) Facility() Facility   { return s.facility }
func (s *SysLogger) Address() string      { return s.address }
func (s *SysLogger) Port() int            { return s.port }
func (s *SysLogger) Transport() Transport { return s.transport }

// Envelope wraps message in the configured header. An invalid severity is
// sent as notice.
func (s *SysLogger) Envelope(message string, severity Severity) (string, error) {
	if !severity.Valid() {
		severity = Notice
	}

	header := Header{
		Priority:  Priority(s.facility, severity),
		Timestamp: s.now(),
		Hostname:  s.hostname,
		Tag:       s.tag,
		PID:       s.pid,
	}

	if s.format == FormatRFC5424 {
		return header.RFC5424(message)
	}
	return header.RFC3164(message), nil
}

// Log sends message with the given severity. Errors are logged and
// counted, never returned, and the message is not retried.
func (s *SysLogger) Log(message string, severity Severity) {
	envelope, err := s.Envelope(message, severity)
	if err != nil {
		sendErrors.Inc()
		s.log.Error().Err(err).Msgf("Failed to build syslog envelope for message: %s", message)
		return
	}

	err = s.transport.Send([]byte(envelope))
	if err != nil {
		sendErrors.Inc()
		s.log.Error().
			Err(err).
			Str("address", s.address).
			Int("port", s.port).
			Msgf("Failed to send message: %s", message)
		return
	}

	messagesSent.Inc()
}

// Close releases the transport if it holds resources.
func (s *SysLogger) Close() error {
	if c, ok := s.transport.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Registry hands out one SysLogger per distinct configuration. Concurrent
// first use of a configuration builds exactly one instance.
type Registry struct {
	instances *xsync.MapOf[string, *SysLogger]
}

func NewRegistry() *Registry {
	return &Registry{
		instances: xsync.NewMapOf[string, *SysLogger](),
	}
}

// GetInstance returns the logger for cfg, creating it on first use.
func (r *Registry) GetInstance(cfg Config) (*SysLogger, error) {
	resolved, err := cfg.resolve()
	if err != nil {
		return nil, err
	}

	s, _ := r.instances.LoadOrCompute(resolved.key(), func() *SysLogger {
		return newSysLogger(resolved)
	})
	return s, nil
}

// Len is the number of distinct configurations seen.
func (r *Registry) Len() int {
	return r.instances.Size()
}

// Close closes and forgets every logger.
func (r *Registry) Close() error {
	var errs []error
	r.instances.Range(func(key string, s *SysLogger) bool {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
		r.instances.Delete(key)
		return true
	})
	return errors.Join(errs...)
}
