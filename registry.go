package streamer

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/juanfont/cef-streamer/pkg/syslog"
	"github.com/puzpuzpuz/xsync/v3"
)

// Registry memoizes one Logger per configuration, and one syslog sender
// per syslog configuration, so loggers sharing a destination share a
// socket. The caller owns the registry and closes it when done.
type Registry struct {
	loggers *xsync.MapOf[string, *Logger]
	syslogs *syslog.Registry
}

func NewRegistry() *Registry {
	return &Registry{
		loggers: xsync.NewMapOf[string, *Logger](),
		syslogs: syslog.NewRegistry(),
	}
}

// GetInstance returns the logger for cfg, building it on first use.
// Concurrent first calls for one configuration build a single logger.
func (r *Registry) GetInstance(cfg Config) (*Logger, error) {
	key, err := cfg.Key()
	if err != nil {
		return nil, err
	}

	var buildErr error
	l, _ := r.loggers.LoadOrCompute(key, func() *Logger {
		l, err := newLogger(cfg, r.syslogs)
		buildErr = err
		return l
	})
	if l == nil {
		r.loggers.Delete(key)
		return nil, buildErr
	}

	return l, nil
}

// Len is the number of distinct logger configurations seen.
func (r *Registry) Len() int {
	return r.loggers.Size()
}

// Close forgets every logger and closes the shared syslog senders.
func (r *Registry) Close() error {
	r.loggers.Clear()
	return r.syslogs.Close()
}

// Key is the canonical sorted key=value form of the configuration, after
// defaults are applied.
func (c Config) Key() (string, error) {
	syslogKey, err := c.Syslog.Key()
	if err != nil {
		return "", err
	}

	c.fillDefaults()
	fields := map[string]string{
		"vendor":  c.Vendor,
		"product": c.Product,
		"version": c.Version,
		"syslog":  "{" + syslogKey + "}",
	}
	if c.OnReject != nil {
		fields["on_reject"] = fmt.Sprintf("%#x", reflect.ValueOf(c.OnReject).Pointer())
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
	return strings.Join(pairs, ","), nil
}
