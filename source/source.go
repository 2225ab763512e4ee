// Package source loads rule declarations from an etcd cluster.
//
// Declaration authoring happens outside the SDK; authored declarations are
// published as JSON values under /<namespace>/rules/<rule-id>. The Client
// fetches the full set for a compilation batch and can watch the prefix for
// changes, emitting a freshly fetched set whenever a declaration is added,
// changed, or removed. The SDK only reads declarations; it never writes
// them.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"

	"github.com/typeforge/sdk/rulegraph"
)

// Config configures the declaration source connection.
type Config struct {
	// Endpoints are the etcd cluster endpoints (e.g. "localhost:2379").
	Endpoints []string

	// Namespace prefixes every key. Defaults to "typeforge".
	Namespace string

	// TLS enables mutual TLS against the cluster.
	TLS *TLSConfig
}

// TLSConfig holds the certificate material for a TLS connection.
type TLSConfig struct {
	Enabled  bool
	CertFile string
	KeyFile  string
	CAFile   string
}

// Client reads rule declarations from etcd.
//
// Thread-safety: all methods are safe for concurrent use.
type Client struct {
	client    *clientv3.Client
	namespace string

	mu         sync.Mutex
	wg         sync.WaitGroup
	closed     bool
	closedChan chan struct{}
}

// NewClient connects to the cluster and verifies connectivity. The client
// must be closed with Close when no longer needed.
func NewClient(cfg Config) (*Client, error) {
	if len(cfg.Endpoints) == 0 {
		return nil, fmt.Errorf("source endpoints cannot be empty")
	}

	namespace := cfg.Namespace
	if namespace == "" {
		namespace = "typeforge"
	}

	clientCfg := clientv3.Config{
		Endpoints:   cfg.Endpoints,
		DialTimeout: 5 * time.Second,
	}

	if cfg.TLS != nil && cfg.TLS.Enabled {
		tlsConfig, err := newTLSConfig(cfg.TLS)
		if err != nil {
			return nil, fmt.Errorf("failed to configure TLS: %w", err)
		}
		clientCfg.TLS = tlsConfig
	}

	cli, err := clientv3.New(clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create etcd client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if _, err := cli.Get(ctx, "health-check"); err != nil && err != context.DeadlineExceeded {
		cli.Close()
		return nil, fmt.Errorf("etcd health check failed: %w", err)
	}

	return &Client{
		client:     cli,
		namespace:  namespace,
		closedChan: make(chan struct{}),
	}, nil
}

// NewClientFromEnv creates a client from the TYPEFORGE_SOURCE_ENDPOINTS
// environment variable, a comma-separated endpoint list. Returns (nil, nil)
// when the variable is unset so callers can fall back to locally supplied
// declarations without treating the absence as an error.
func NewClientFromEnv() (*Client, error) {
	endpoints := os.Getenv("TYPEFORGE_SOURCE_ENDPOINTS")
	if endpoints == "" {
		return nil, nil
	}

	endpointList := strings.Split(endpoints, ",")
	for i, ep := range endpointList {
		endpointList[i] = strings.TrimSpace(ep)
	}

	return NewClient(Config{Endpoints: endpointList})
}

// Fetch returns every declaration currently published under the namespace.
// Entries that fail to parse are skipped; a registry with a malformed entry
// still compiles from the remaining declarations (the compiler's structural
// checks are the authority on declaration validity).
func (c *Client) Fetch(ctx context.Context) ([]rulegraph.Declaration, error) {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return nil, fmt.Errorf("source client is closed")
	}

	prefix := c.prefix()
	resp, err := c.client.Get(ctx, prefix, clientv3.WithPrefix())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch declarations: %w", err)
	}

	decls := make([]rulegraph.Declaration, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		var d rulegraph.Declaration
		if err := json.Unmarshal(kv.Value, &d); err != nil {
			continue
		}
		decls = append(decls, d)
	}

	return decls, nil
}

// Watch returns a channel that receives the full declaration set whenever
// the published declarations change. The current set is sent immediately.
// The channel closes when the context is cancelled or the client is closed.
func (c *Client) Watch(ctx context.Context) (<-chan []rulegraph.Declaration, error) {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return nil, fmt.Errorf("source client is closed")
	}

	ch := make(chan []rulegraph.Declaration, 1)

	decls, err := c.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	ch <- decls

	watchChan := c.client.Watch(ctx, c.prefix(), clientv3.WithPrefix())

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer close(ch)

		for {
			select {
			case <-ctx.Done():
				return
			case <-c.closedChan:
				return
			case watchResp, ok := <-watchChan:
				if !ok {
					return
				}
				if watchResp.Err() != nil {
					return
				}

				decls, err := c.Fetch(context.Background())
				if err != nil {
					continue
				}

				select {
				case ch <- decls:
				case <-ctx.Done():
					return
				case <-c.closedChan:
					return
				}
			}
		}
	}()

	return ch, nil
}

// Close releases the connection and stops background watch goroutines.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	close(c.closedChan)
	c.mu.Unlock()

	c.wg.Wait()
	return c.client.Close()
}

// prefix returns the key prefix declarations are published under.
func (c *Client) prefix() string {
	return fmt.Sprintf("/%s/rules/", c.namespace)
}
