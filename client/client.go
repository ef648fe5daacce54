package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"io"
	"net/http"
	"os"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/decred/dcrd/lru"
	"github.com/go-playground/validator/v10"
	"github.com/inscription-c/pins/constants"
	"github.com/inscription-c/pins/inscription/log"
	"github.com/pkg/errors"
)

var validate = validator.New()

// clientOptions holds the connection settings of a Client.
type clientOptions struct {
	Host          string `validate:"required,url"`
	User          string
	Password      string
	Cert          string
	TLSSkipVerify bool
	CacheSize     uint
}

type ClientOption func(*clientOptions)

// WithClientHost sets the URL of the node RPC server.
func WithClientHost(host string) ClientOption {
	return func(o *clientOptions) {
		o.Host = host
	}
}

func WithClientUser(user string) ClientOption {
	return func(o *clientOptions) {
		o.User = user
	}
}

func WithClientPassword(password string) ClientOption {
	return func(o *clientOptions) {
		o.Password = password
	}
}

// WithClientCert trusts the PEM certificate at path for TLS connections.
func WithClientCert(path string, skipVerify bool) ClientOption {
	return func(o *clientOptions) {
		o.Cert = path
		o.TLSSkipVerify = skipVerify
	}
}

// WithCacheSize bounds the number of raw transactions kept in memory.
func WithCacheSize(size uint) ClientOption {
	return func(o *clientOptions) {
		o.CacheSize = size
	}
}

// Client talks JSON-RPC to a bellscoin node over HTTP POST.
type Client struct {
	opts   *clientOptions
	http   *http.Client
	rawTxs lru.KVCache
}

// NewClient validates opts and returns a client for the node they name.
func NewClient(optFns ...ClientOption) (*Client, error) {
	opts := &clientOptions{CacheSize: constants.MaxRawTxCache}
	for _, v := range optFns {
		v(opts)
	}
	if err := validate.Struct(opts); err != nil {
		return nil, errors.Wrap(err, "rpc client options")
	}
	httpClient, err := newHTTPClient(opts)
	if err != nil {
		return nil, err
	}
	return &Client{
		opts:   opts,
		http:   httpClient,
		rawTxs: lru.NewKVCache(opts.CacheSize),
	}, nil
}

// SendRequest marshals method and params as a registered btcjson command,
// posts it and decodes the result into result, which may be nil.
func (c *Client) SendRequest(ctx context.Context, method string, result interface{}, params ...interface{}) error {
	cmd, err := btcjson.NewCmd(method, params...)
	if err != nil {
		var jerr btcjson.Error
		if errors.As(err, &jerr) {
			return errors.Errorf("%s command: %v (code: %s)", method, err, jerr.ErrorCode)
		}
		return errors.Wrapf(err, "%s command", method)
	}
	marshalledJSON, err := btcjson.MarshalCmd(btcjson.RpcVersion1, 1, cmd)
	if err != nil {
		return err
	}

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.Host, bytes.NewReader(marshalledJSON))
	if err != nil {
		return err
	}
	httpRequest.Close = true
	httpRequest.Header.Set("Content-Type", "application/json")
	httpRequest.SetBasicAuth(c.opts.User, c.opts.Password)

	log.Rpc.Tracef("%s %v", method, params)
	httpResponse, err := c.http.Do(httpRequest)
	if err != nil {
		return errors.Wrapf(err, "%s request", method)
	}
	respBytes, err := io.ReadAll(httpResponse.Body)
	_ = httpResponse.Body.Close()
	if err != nil {
		return errors.Wrapf(err, "%s: reading json reply", method)
	}

	resp := &Response{Result: result}
	if err := json.Unmarshal(respBytes, resp); err != nil {
		if httpResponse.StatusCode < 200 || httpResponse.StatusCode >= 300 {
			if len(respBytes) == 0 {
				return errors.Errorf("%s: %d %s", method, httpResponse.StatusCode, http.StatusText(httpResponse.StatusCode))
			}
			return errors.Errorf("%s: %s", method, respBytes)
		}
		return errors.Wrapf(err, "%s: decode reply", method)
	}
	if resp.Error != nil {
		return errors.Wrap(resp.Error, method)
	}
	return nil
}

// newHTTPClient returns an HTTP client trusting the configured certificate.
func newHTTPClient(opts *clientOptions) (*http.Client, error) {
	client := &http.Client{}
	if opts.Cert == "" {
		return client, nil
	}
	pem, err := os.ReadFile(opts.Cert)
	if err != nil {
		return nil, errors.Wrap(err, "read rpc cert")
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, errors.Errorf("no certificate in %s", opts.Cert)
	}
	client.Transport = &http.Transport{
		TLSClientConfig: &tls.Config{
			RootCAs:            pool,
			InsecureSkipVerify: opts.TLSSkipVerify,
		},
	}
	return client, nil
}
